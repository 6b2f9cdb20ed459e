package cryptox

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	h := Argon2Hasher{}

	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"empty password", ""},
		{"unicode password", "пароль🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := h.Hash(tt.password)
			require.NoError(t, err)
			require.NotEmpty(t, hash)

			// Verify PHC format
			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"),
				"hash should be in PHC format")

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6, "PHC hash should have 6 parts")
			require.Equal(t, "argon2id", parts[1])
			require.Equal(t, "v=19", parts[2])
			require.Contains(t, parts[3], "m=")
			require.Contains(t, parts[3], "t=")
			require.Contains(t, parts[3], "p=")
			require.NotEmpty(t, parts[4], "salt should not be empty")
			require.NotEmpty(t, parts[5], "hash should not be empty")
		})
	}
}

func TestHashUniqueSalts(t *testing.T) {
	h := Argon2Hasher{}
	password := "samepassword"

	hash1, err := h.Hash(password)
	require.NoError(t, err)
	hash2, err := h.Hash(password)
	require.NoError(t, err)

	// Each hash should differ due to unique salts
	require.NotEqual(t, hash1, hash2)

	// But both should verify the same password
	require.NoError(t, h.Verify(password, hash1))
	require.NoError(t, h.Verify(password, hash2))
}

func TestVerifyWrongPassword(t *testing.T) {
	h := Argon2Hasher{}
	hash, err := h.Hash("correct-password")
	require.NoError(t, err)

	tests := []struct {
		name          string
		wrongPassword string
	}{
		{"completely wrong", "wrong-password"},
		{"case difference", "Correct-Password"},
		{"extra space", "correct-password "},
		{"empty password", ""},
		{"truncated password", "correct-passwor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.Verify(tt.wrongPassword, hash)
			require.ErrorIs(t, err, ErrPasswordMismatch)
		})
	}
}

func TestVerifyInvalidHashFormat(t *testing.T) {
	h := Argon2Hasher{}

	tests := []struct {
		name        string
		invalidHash string
	}{
		{"empty hash", ""},
		{"wrong algorithm", "$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"missing parts", "$argon2id$v=19$m=19456"},
		{"malformed parameters", "$argon2id$v=19$invalid$c2FsdA$aGFzaA"},
		{"invalid base64 salt", "$argon2id$v=19$m=19456,t=2,p=1$!!!invalid!!!$aGFzaA"},
		{"invalid base64 hash", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!invalid!!!"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.Verify("test-password", tt.invalidHash)
			require.Error(t, err)
			require.False(t, errors.Is(err, ErrPasswordMismatch),
				"format errors should not read as a mismatch")
		})
	}
}

func TestPepperChangesHash(t *testing.T) {
	plain := Argon2Hasher{}
	peppered := Argon2Hasher{Pepper: "table-salt"}

	hash, err := plain.Hash("password123")
	require.NoError(t, err)

	// A hash made without the pepper must not verify under it
	require.ErrorIs(t, peppered.Verify("password123", hash), ErrPasswordMismatch)

	// And a peppered hash round-trips only with the same pepper
	pepperedHash, err := peppered.Hash("password123")
	require.NoError(t, err)
	require.NoError(t, peppered.Verify("password123", pepperedHash))
	require.ErrorIs(t, plain.Verify("password123", pepperedHash), ErrPasswordMismatch)
}

func TestVerifyPreservesPHCParameters(t *testing.T) {
	h := Argon2Hasher{}
	hash, err := h.Hash("test-password")
	require.NoError(t, err)

	require.Contains(t, hash, "m=19456", "memory parameter should be 19456 (19*1024)")
	require.Contains(t, hash, "t=2")
	require.Contains(t, hash, "p=1")

	require.NoError(t, h.Verify("test-password", hash))
}
