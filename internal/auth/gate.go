// Package auth issues and verifies the admin capability token.
//
// There is no per-user identity: a single configured secret exchanges for a
// signed HS256 token carrying role=admin and an absolute expiry. Verification
// is stateless; nothing is persisted and nothing can be revoked early.
package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/autumnrose0910/class-notes-project/internal/errs"
)

// Gate mints and checks admin capability tokens.
type Gate struct {
	adminPassword string
	secret        []byte
	ttl           time.Duration
	now           func() time.Time
}

// NewGate builds a Gate. adminPassword may be either the plaintext shared
// secret or a bcrypt hash of it (detected by the $2 prefix).
func NewGate(adminPassword, jwtSecret string, ttl time.Duration) *Gate {
	return &Gate{
		adminPassword: adminPassword,
		secret:        []byte(jwtSecret),
		ttl:           ttl,
		now:           time.Now,
	}
}

// Issue exchanges the shared admin password for a signed capability token.
func (g *Gate) Issue(password string) (string, error) {
	if !g.passwordMatches(password) {
		return "", fmt.Errorf("issue: %w", errs.ErrUnauthorized)
	}
	now := g.now()
	claims := jwt.MapClaims{
		"role": "admin",
		"iat":  now.Unix(),
		"exp":  now.Add(g.ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString(g.secret)
}

// Verify checks the signature, expiry and role claim of a capability token.
func (g *Gate) Verify(raw string) error {
	if raw == "" {
		return fmt.Errorf("missing token: %w", errs.ErrUnauthorized)
	}
	parsed, err := jwt.Parse(raw,
		func(token *jwt.Token) (interface{}, error) { return g.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil || !parsed.Valid {
		return fmt.Errorf("invalid token: %w", errs.ErrUnauthorized)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || claims["role"] != "admin" {
		return fmt.Errorf("missing admin role: %w", errs.ErrUnauthorized)
	}
	return nil
}

func (g *Gate) passwordMatches(password string) bool {
	if strings.HasPrefix(g.adminPassword, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(g.adminPassword), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(g.adminPassword), []byte(password)) == 1
}
