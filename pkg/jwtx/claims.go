package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Purpose values carried in the "purpose" claim. Session tokens leave it
// empty; anything else is a restricted-use ticket that must never pass as a
// session.
const (
	PurposeSession = ""
	PurposeMFA     = "mfa"
)

// DefaultMFATicketTTL bounds how long a pending second-factor challenge
// stays redeemable.
const DefaultMFATicketTTL = 5 * time.Minute

// Claims are the token claims used across the service. The user id rides in
// its own claim rather than "sub" to stay wire-compatible with existing
// clients.
type Claims struct {
	jwt.RegisteredClaims

	// UserID of the authenticated user.
	UserID string `json:"user_id"`

	// Purpose marks restricted-use tickets (e.g. "mfa"). Empty for
	// ordinary session tokens.
	Purpose string `json:"purpose,omitempty"`
}

// NewSessionClaims builds claims for a session token. The session id rides
// in jti so a token can be matched against its stored row; the expiry
// mirrors the row exactly, and iat and nbf are both the issue time.
func NewSessionClaims(sessionID, userID string, expiresAt, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: userID,
	}
}

// NewMFAClaims builds claims for a short-lived second-factor ticket.
func NewMFAClaims(userID string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:  userID,
		Purpose: PurposeMFA,
	}
}

// RequirePurpose ensures the token was minted for the expected use. A
// session token must never redeem an MFA challenge and vice versa.
func (c *Claims) RequirePurpose(purpose string) error {
	if c.Purpose != purpose {
		return ErrPurpose
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used
// before it is valid (nbf).
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}

	return nil
}

// ValidateExpiryWithLeeway adds a small grace period for clock skew.
func (c *Claims) ValidateExpiryWithLeeway(leeway time.Duration) error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}

	return nil
}
