package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims is the payload carried by the signed session cookie. The
// registered ID (jti) doubles as the Redis revocation key.
type SessionClaims struct {
	UserID uuid.UUID `json:"uid"`
	jwt.RegisteredClaims
}
