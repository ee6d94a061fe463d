package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims are the custom JWT claims issued after the hosted-auth
// token has been verified.
type SessionClaims struct {
	ProfileID string `json:"profile_id"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}
