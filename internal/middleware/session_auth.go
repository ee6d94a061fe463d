package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/strideworks/trackside/internal/domain"
)

// Context keys for storing session info extracted from the token.
const (
	ProfileIDKey = "profileID"
	EmailKey     = "email"
	RoleKey      = "role"
)

// RevocationChecker reports whether a session token has been revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) bool
}

// SessionAuth validates the trackside session JWT and extracts claims.
// revocation may be nil when sign-out denylisting is disabled.
func SessionAuth(jwtSecret string, revocation RevocationChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing authorization token",
			})
		}

		tokenString := authHeader
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenString = authHeader[7:]
		}

		if revocation != nil && revocation.IsRevoked(c.Context(), tokenString) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "token revoked",
			})
		}

		token, err := jwt.ParseWithClaims(tokenString, &domain.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid signing method")
			}
			return []byte(jwtSecret), nil
		})

		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired token",
			})
		}

		claims, ok := token.Claims.(*domain.SessionClaims)
		if !ok || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token claims",
			})
		}

		c.Locals(ProfileIDKey, claims.ProfileID)
		c.Locals(EmailKey, claims.Email)
		c.Locals(RoleKey, claims.Role)

		return c.Next()
	}
}

// RequireRole checks that the authenticated profile has one of the allowed roles.
func RequireRole(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(RoleKey).(string)
		if !ok || role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "no role found in token",
			})
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":          "insufficient permissions",
			"required_roles": allowedRoles,
		})
	}
}

// GetProfileID extracts the profile ID from the Fiber context.
// Should only be called after SessionAuth middleware.
func GetProfileID(c *fiber.Ctx) string {
	id, ok := c.Locals(ProfileIDKey).(string)
	if !ok {
		return ""
	}
	return id
}

// GetRole extracts the role from the Fiber context.
func GetRole(c *fiber.Ctx) string {
	role, ok := c.Locals(RoleKey).(string)
	if !ok {
		return ""
	}
	return role
}
