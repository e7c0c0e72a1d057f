package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Default token TTL constants for the access/refresh pair.
// These provide sensible security defaults but can be overridden per-service.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	// Short-lived for security - typical range is 15m to 1h.
	DefaultAccessTokenTTL = 15 * time.Minute

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	// Longer-lived for user convenience - typical range is 7d to 30d.
	DefaultRefreshTokenTTL = 30 * 24 * time.Hour
)

// Token kinds carried in the "kind" claim. Access tokens authorize resource
// reads; refresh tokens only mint new access tokens.
const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

// Claims are the claims we embed in every gateway token. Keeping changes
// additive preserves compatibility with tokens already in the wild.
type Claims struct {
	jwt.RegisteredClaims

	// Kind distinguishes access tokens from refresh tokens ("access"/"refresh").
	Kind string `json:"kind"`

	// Username for the authenticated user (the token subject is the user id).
	Username string `json:"username,omitempty"`
}

// NewClaims builds minimally-correct claims for a token of the given kind.
func NewClaims(
	subject, username, kind string,
	ttl time.Duration,
	issuer string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Kind:     kind,
		Username: username,
	}
}

// NewJTI returns a unique identifier for the "jti" claim. The revocation set
// is keyed by this value, so it must never repeat across tokens.
func NewJTI() string {
	return uuid.NewString()
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateKind checks the token carries the required kind claim.
func (c *Claims) ValidateKind(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Kind != expected {
		return ErrKind
	}

	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't before nbf.
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	// Check expired (exp)
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}

	// Check if a valid token isn't used before it is valid (nbf)
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}

	return nil
}
