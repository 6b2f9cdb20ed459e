package service

import (
	"context"
	"testing"
	"time"

	"github.com/planfuse/planfuse/internal/planfuse/domain"
	"github.com/planfuse/planfuse/internal/planfuse/lockout"
	"github.com/planfuse/planfuse/internal/planfuse/store"
	"github.com/planfuse/planfuse/internal/planfuse/store/drivers/sqlite"
	"github.com/planfuse/planfuse/pkg/cryptox"
	"github.com/planfuse/planfuse/pkg/idx"
	"github.com/planfuse/planfuse/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var testSigningSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTestSealer(t *testing.T) *cryptox.Sealer {
	t.Helper()

	sealer, err := cryptox.NewSealer([]byte("test-totp-encryption-key"))
	require.NoError(t, err)
	return sealer
}

func newSessionService(t *testing.T, st store.Store) *SessionService {
	t.Helper()

	signer, err := jwtx.NewSignerHS256(testSigningSecret)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(testSigningSecret, jwtx.VerifyOptions{})
	require.NoError(t, err)

	return &SessionService{Store: st, Signer: signer, Verifier: verifier}
}

func newAuthService(t *testing.T, st store.Store) *AuthService {
	t.Helper()

	sessions := newSessionService(t, st)
	return &AuthService{
		Store:    st,
		Hasher:   cryptox.Argon2Hasher{},
		Sealer:   newTestSealer(t),
		Sessions: sessions,
		Policy:   lockout.NewPolicy(0),
		Signer:   sessions.Signer,
		Verifier: sessions.Verifier,
	}
}

// createTestUser inserts a user with the default lockout tuning and the
// given password argon2 hashed.
func createTestUser(t *testing.T, st store.Store, username, password string) domain.User {
	t.Helper()

	hash, err := cryptox.Argon2Hasher{}.Hash(password)
	require.NoError(t, err)

	user := domain.User{
		ID:                 idx.New().String(),
		Username:           username,
		PasswordHash:       hash,
		LockBaseDuration:   lockout.DefaultBaseDurationS,
		LockDurationFactor: lockout.DefaultDurationFactor,
		LockDurationCap:    lockout.DefaultDurationCapS,
		CreatedAt:          time.Now().UTC(),
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), user))
	return user
}
