package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/strideworks/trackside/internal/domain"
	"github.com/strideworks/trackside/internal/repository"
)

// AuthClient defines the interface for hosted-auth token verification.
// This allows mocking for tests.
type AuthClient interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// AuthService handles sign-up, sign-in and sign-out against the hosted
// auth provider. New identities get a profile created on first sign-in.
type AuthService struct {
	profileRepo domain.ProfileRepository
	authClient  AuthClient
	cache       *repository.RedisCache
	jwtSecret   string
}

func NewAuthService(
	profileRepo domain.ProfileRepository,
	authClient AuthClient,
	cache *repository.RedisCache,
	jwtSecret string,
) *AuthService {
	return &AuthService{
		profileRepo: profileRepo,
		authClient:  authClient,
		cache:       cache,
		jwtSecret:   jwtSecret,
	}
}

// SignInResponse contains the profile and whether it was newly created.
type SignInResponse struct {
	Profile   *domain.UserProfile
	Token     string
	IsNewUser bool
}

// SignIn verifies the hosted-auth token and returns a session token,
// creating a profile for first-time identities.
func (s *AuthService) SignIn(ctx context.Context, idToken string) (*SignInResponse, error) {
	token, err := s.authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	firebaseUID := token.UID
	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)
	if name == "" {
		name = email
	}

	existing, err := s.profileRepo.GetByFirebaseUID(ctx, firebaseUID)

	// Pre-provisioned profiles (created by a coach) are matched by
	// email and linked to the auth identity on first sign-in.
	if errors.Is(err, domain.ErrProfileNotFound) && email != "" {
		emailProfile, emailErr := s.profileRepo.GetByEmail(ctx, email)
		if emailErr == nil && emailProfile != nil {
			if emailProfile.FirebaseUID != "" {
				return nil, fmt.Errorf("email already linked to a different account")
			}
			if linkErr := s.profileRepo.UpdateFirebaseUID(ctx, emailProfile.ID, firebaseUID); linkErr != nil {
				return nil, fmt.Errorf("failed to link auth identity: %w", linkErr)
			}
			emailProfile.FirebaseUID = firebaseUID
			existing = emailProfile
			err = nil
		}
	}

	if err == nil && existing != nil {
		sessionToken, err := s.GenerateSessionToken(existing)
		if err != nil {
			return nil, fmt.Errorf("failed to generate token: %w", err)
		}
		return &SignInResponse{Profile: existing, Token: sessionToken}, nil
	}

	if errors.Is(err, domain.ErrProfileNotFound) {
		profile := &domain.UserProfile{
			FirebaseUID:   firebaseUID,
			Email:         email,
			Username:      name,
			PrimaryEvents: []string{},
			JoinDate:      time.Now().Format(domain.DateFormat),
			Role:          domain.RoleAthlete,
		}
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return nil, fmt.Errorf("failed to create profile: %w", err)
		}

		sessionToken, err := s.GenerateSessionToken(profile)
		if err != nil {
			return nil, fmt.Errorf("failed to generate token: %w", err)
		}
		return &SignInResponse{Profile: profile, Token: sessionToken, IsNewUser: true}, nil
	}

	return nil, fmt.Errorf("failed to fetch profile: %w", err)
}

// SignOut revokes a session token by denylisting it for its remaining
// lifetime. Verification rejects denylisted tokens.
func (s *AuthService) SignOut(ctx context.Context, tokenString string) error {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		// Already invalid tokens need no revocation.
		return nil
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}
	return s.cache.Set(ctx, "revoked:"+tokenString, true, remaining)
}

// IsRevoked reports whether a token has been signed out.
func (s *AuthService) IsRevoked(ctx context.Context, tokenString string) bool {
	var revoked bool
	return s.cache.Get(ctx, "revoked:"+tokenString, &revoked) == nil
}

// GenerateSessionToken creates a JWT with the profile's identity claims.
func (s *AuthService) GenerateSessionToken(profile *domain.UserProfile) (string, error) {
	claims := domain.SessionClaims{
		ProfileID: profile.ID,
		Email:     profile.Email,
		Role:      string(profile.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (s *AuthService) parseToken(tokenString string) (*domain.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*domain.SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid claims")
	}
	return claims, nil
}
