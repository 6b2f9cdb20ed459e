package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
)

// Sealer encrypts small secrets (e.g. TOTP seeds) with AES-256-GCM under a
// key supplied at construction. Output format before encoding is
// [12-byte nonce][ciphertext][16-byte auth tag], base64url encoded so it
// can live in a TEXT column.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer derives a 32-byte AES key from the given key material with
// SHA-256, so callers can pass a passphrase or raw bytes of any length.
func NewSealer(key []byte) (*Sealer, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("cryptox: empty sealer key")
	}

	sum := sha256.Sum256(key)
	block, err := aes.NewCipher(sum[:])
	if err != nil {
		return nil, fmt.Errorf("cryptox: create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cryptox: create GCM: %w", err)
	}

	return &Sealer{aead: gcm}, nil
}

// Seal encrypts and authenticates plaintext with a random nonce.
func (s *Sealer) Seal(plaintext []byte) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("cryptox: generate nonce: %w", err)
	}

	// Seal appends ciphertext and auth tag to the nonce.
	box := s.aead.Seal(nonce, nonce, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(box), nil
}

// Open decrypts a value produced by Seal and verifies its auth tag.
func (s *Sealer) Open(sealed string) ([]byte, error) {
	box, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return nil, fmt.Errorf("cryptox: decode sealed value: %w", err)
	}

	nonceSize := s.aead.NonceSize()
	if len(box) < nonceSize {
		return nil, fmt.Errorf("cryptox: sealed value too short")
	}

	nonce, ciphertext := box[:nonceSize], box[nonceSize:]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("cryptox: decryption failed: %w", err)
	}

	return plaintext, nil
}
