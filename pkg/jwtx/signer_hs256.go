package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLen rejects secrets shorter than the HMAC-SHA256 block would
// make worthwhile. 32 bytes keeps the effective strength at the hash size.
const MinSecretLen = 32

// HS256Signer implements the Signer interface using HMAC SHA-256.
type HS256Signer struct {
	secret []byte
	alg    string
}

func newHS256Signer(secret []byte) (*HS256Signer, error) {
	if len(secret) < MinSecretLen {
		return nil, fmt.Errorf("jwtx: secret must be at least %d bytes, got %d", MinSecretLen, len(secret))
	}

	key := make([]byte, len(secret))
	copy(key, secret)

	return &HS256Signer{
		secret: key,
		alg:    jwt.SigningMethodHS256.Alg(),
	}, nil
}

func (s *HS256Signer) Alg() string { return s.alg }

// Sign takes your claims and turns them into a signed JWT string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Validate does a quick sanity check that we actually hold a usable secret.
func (s *HS256Signer) Validate() error {
	if len(s.secret) < MinSecretLen {
		return errors.New("jwtx: missing or short HS256 secret")
	}
	return nil
}
