// Package auth provides password hashing, JWT session tokens, and the
// middleware that enforces them.
//
// SESSION FLOW:
//  1. POST /api/register or /api/login verifies credentials against the store
//  2. The server issues a signed JWT carrying the username and role,
//     stored in an HttpOnly cookie
//  3. On later API calls, middleware validates the cookie and puts the
//     identity in the request context
//
// The persistence layer trusts this identity completely — it performs no
// authorization beyond "does this username exist". JWT keeps the server
// stateless: no session table, just an HMAC signature over the claims.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated principal extracted from a valid token.
type Identity struct {
	Username string
	Role     string
}

// TokenService handles JWT creation and validation. It holds the HMAC
// secret used to sign and verify tokens — same key for both, keep it safe.
type TokenService struct {
	secret   []byte
	lifetime time.Duration
}

// DefaultTokenLifetime is how long a session cookie stays valid before the
// user has to log in again.
const DefaultTokenLifetime = 12 * time.Hour

// NewTokenService creates a TokenService with the given secret.
// The secret should be at least 32 bytes of random data in production.
// Example: JWT_SECRET=$(openssl rand -hex 32)
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret), lifetime: DefaultTokenLifetime}, nil
}

// claims is the JWT payload. "sub" carries the username; the role rides
// along as a private claim so admin routes don't need a DB lookup.
type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Generate creates and signs a session token for the given identity.
//
// Signing algorithm: HS256 (HMAC-SHA256) — symmetric, fast, and fine for
// a single-server deployment where one process signs and verifies.
func (s *TokenService) Generate(username, role string) (string, error) {
	now := time.Now()

	c := claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
			Issuer:    "healthfinder",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// GenerateWithDuration creates a token with a custom expiry. Used in tests
// to produce already-expired tokens.
func (s *TokenService) GenerateWithDuration(username, role string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    "healthfinder",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a token string, returning the identity it
// carries. Fails on a bad signature, wrong algorithm, or expiry.
func (s *TokenService) Validate(tokenStr string) (Identity, error) {
	var c claims

	token, err := jwt.ParseWithClaims(tokenStr, &c, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything but HMAC. Without this check
		// an attacker could submit an "alg":"none" token.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("auth: unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("auth: parsing token: %w", err)
	}
	if !token.Valid || c.Subject == "" {
		return Identity{}, errors.New("auth: invalid token")
	}

	return Identity{Username: c.Subject, Role: c.Role}, nil
}
