package service

import (
	"context"
	"fmt"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/strideworks/trackside/internal/domain"
	"github.com/strideworks/trackside/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockAuthClient implements AuthClient for testing.
type mockAuthClient struct {
	validTokens map[string]*auth.Token
}

func newMockAuthClient() *mockAuthClient {
	return &mockAuthClient{validTokens: make(map[string]*auth.Token)}
}

func (m *mockAuthClient) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if token, ok := m.validTokens[idToken]; ok {
		return token, nil
	}
	return nil, fmt.Errorf("invalid mock token")
}

func (m *mockAuthClient) addUser(tokenString, uid, email string) {
	m.validTokens[tokenString] = &auth.Token{
		UID: uid,
		Claims: map[string]interface{}{
			"email": email,
		},
	}
}

// memProfileRepo is an in-memory ProfileRepository for service tests.
type memProfileRepo struct {
	profiles map[string]*domain.UserProfile
	nextID   int
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: make(map[string]*domain.UserProfile)}
}

func (m *memProfileRepo) Create(ctx context.Context, p *domain.UserProfile) error {
	m.nextID++
	p.ID = fmt.Sprintf("profile-%d", m.nextID)
	m.profiles[p.ID] = p
	return nil
}

func (m *memProfileRepo) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	if p, ok := m.profiles[id]; ok {
		return p, nil
	}
	return nil, domain.ErrProfileNotFound
}

func (m *memProfileRepo) GetByFirebaseUID(ctx context.Context, uid string) (*domain.UserProfile, error) {
	for _, p := range m.profiles {
		if p.FirebaseUID == uid {
			return p, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (m *memProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	for _, p := range m.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (m *memProfileRepo) GetByCoachCode(ctx context.Context, code string) (*domain.UserProfile, error) {
	for _, p := range m.profiles {
		if p.CoachCode == code {
			return p, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (m *memProfileRepo) Update(ctx context.Context, p *domain.UserProfile) error {
	if _, ok := m.profiles[p.ID]; !ok {
		return domain.ErrProfileNotFound
	}
	m.profiles[p.ID] = p
	return nil
}

func (m *memProfileRepo) UpdateFirebaseUID(ctx context.Context, profileID, firebaseUID string) error {
	p, ok := m.profiles[profileID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.FirebaseUID = firebaseUID
	return nil
}

func (m *memProfileRepo) SetCoachCode(ctx context.Context, profileID, code string) error {
	p, ok := m.profiles[profileID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.CoachCode = code
	return nil
}

func (m *memProfileRepo) SetAvatarURL(ctx context.Context, profileID, url string) error {
	p, ok := m.profiles[profileID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.AvatarURL = url
	return nil
}

func newTestCache(t *testing.T) *repository.RedisCache {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return repository.NewRedisCache(client)
}

func TestSignInCreatesProfileForNewIdentity(t *testing.T) {
	mockAuth := newMockAuthClient()
	mockAuth.addUser("token-new", "uid-new", "new@athlete.com")

	svc := NewAuthService(newMemProfileRepo(), mockAuth, newTestCache(t), "test-secret")

	resp, err := svc.SignIn(context.Background(), "token-new")
	require.NoError(t, err)
	assert.True(t, resp.IsNewUser)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "new@athlete.com", resp.Profile.Email)
	assert.Equal(t, domain.RoleAthlete, resp.Profile.Role)
	assert.Equal(t, "uid-new", resp.Profile.FirebaseUID)
}

func TestSignInReturnsExistingProfile(t *testing.T) {
	mockAuth := newMockAuthClient()
	mockAuth.addUser("token-known", "uid-known", "known@athlete.com")

	repo := newMemProfileRepo()
	require.NoError(t, repo.Create(context.Background(), &domain.UserProfile{
		FirebaseUID: "uid-known",
		Email:       "known@athlete.com",
		Username:    "known",
		Role:        domain.RoleAthlete,
	}))

	svc := NewAuthService(repo, mockAuth, newTestCache(t), "test-secret")

	resp, err := svc.SignIn(context.Background(), "token-known")
	require.NoError(t, err)
	assert.False(t, resp.IsNewUser)
	assert.Equal(t, "known", resp.Profile.Username)
}

func TestSignInLinksPreProvisionedProfileByEmail(t *testing.T) {
	mockAuth := newMockAuthClient()
	mockAuth.addUser("token-invited", "uid-invited", "invited@athlete.com")

	repo := newMemProfileRepo()
	require.NoError(t, repo.Create(context.Background(), &domain.UserProfile{
		Email:    "invited@athlete.com",
		Username: "invited",
		Role:     domain.RoleAthlete,
	}))

	svc := NewAuthService(repo, mockAuth, newTestCache(t), "test-secret")

	resp, err := svc.SignIn(context.Background(), "token-invited")
	require.NoError(t, err)
	assert.False(t, resp.IsNewUser)
	assert.Equal(t, "uid-invited", resp.Profile.FirebaseUID)
}

func TestSignInRejectsInvalidToken(t *testing.T) {
	svc := NewAuthService(newMemProfileRepo(), newMockAuthClient(), newTestCache(t), "test-secret")

	_, err := svc.SignIn(context.Background(), "garbage")
	assert.Error(t, err)
}

func TestSignOutRevokesToken(t *testing.T) {
	mockAuth := newMockAuthClient()
	mockAuth.addUser("token-a", "uid-a", "a@athlete.com")

	svc := NewAuthService(newMemProfileRepo(), mockAuth, newTestCache(t), "test-secret")
	ctx := context.Background()

	resp, err := svc.SignIn(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, svc.IsRevoked(ctx, resp.Token))

	require.NoError(t, svc.SignOut(ctx, resp.Token))
	assert.True(t, svc.IsRevoked(ctx, resp.Token))
}

func TestSignOutIgnoresInvalidToken(t *testing.T) {
	svc := NewAuthService(newMemProfileRepo(), newMockAuthClient(), newTestCache(t), "test-secret")
	assert.NoError(t, svc.SignOut(context.Background(), "not-a-jwt"))
}
