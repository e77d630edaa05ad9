package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a bearer token fails verification.
	ErrInvalidToken = errors.New("invalid token")

	// ErrMissingEmail is returned when a verified token carries no email claim.
	ErrMissingEmail = errors.New("token has no email claim")
)

// Verifier validates a bearer token and yields the verified principal's email.
type Verifier interface {
	Verify(token string) (string, error)
}

// JWTVerifier verifies HMAC-signed JWTs issued by the identity provider.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a new JWTVerifier.
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Verify parses and validates the token and returns the email claim.
func (v *JWTVerifier) Verify(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return "", ErrMissingEmail
	}
	return email, nil
}

// Ensure interface is satisfied.
var _ Verifier = (*JWTVerifier)(nil)
