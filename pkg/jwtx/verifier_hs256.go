package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// HS256Verifier validates JWTs signed using HMAC SHA-256 with a shared
// secret supplied at construction.
type HS256Verifier struct {
	secret []byte
	opts   VerifyOptions
}

// NewVerifierHS256 creates a verifier for the given secret.
func NewVerifierHS256(secret []byte, opts VerifyOptions) (*HS256Verifier, error) {
	if len(secret) < MinSecretLen {
		return nil, fmt.Errorf("jwtx: secret must be at least %d bytes, got %d", MinSecretLen, len(secret))
	}

	key := make([]byte, len(secret))
	copy(key, secret)

	return &HS256Verifier{secret: key, opts: opts}, nil
}

// Verify validates the JWT string and returns its parsed Claims. Errors are
// collapsed onto the package sentinels so callers can switch on them
// without knowing the underlying jwt library.
func (v *HS256Verifier) Verify(tokenStr string) (Claims, error) {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if v.opts.Leeway > 0 {
		parserOpts = append(parserOpts, jwt.WithLeeway(v.opts.Leeway))
	}
	parser := jwt.NewParser(parserOpts...)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return Claims{}, ErrNotYetValid
		default:
			return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrMalformed
	}

	// The parser already checked exp/nbf; keep the explicit check so the
	// guarantee doesn't silently depend on parser defaults.
	if v.opts.Leeway > 0 {
		err = claims.ValidateExpiryWithLeeway(v.opts.Leeway)
	} else {
		err = claims.ValidateExpiry()
	}
	if err != nil {
		return Claims{}, err
	}

	return *claims, nil
}
