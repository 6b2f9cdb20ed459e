package planfuse_test

import (
	"testing"
	"time"

	"github.com/planfuse/planfuse/pkg/planfusesdk"
	"github.com/stretchr/testify/require"
)

// TestLoginIssuesSession verifies the happy path end to end: register, log
// in, and use the session against an authenticated endpoint.
func TestLoginIssuesSession(t *testing.T) {
	baseURL := setupContainer(t)
	client := planfusesdk.NewSDKClient(baseURL)

	session := registerAndLogin(t, client, "bob")
	require.NotEmpty(t, session.Token())
	require.WithinDuration(t, time.Now().Add(24*time.Hour), session.ExpiresAt(), time.Minute)

	info, err := session.GetUserInfo(t.Context())
	require.NoError(t, err)
	require.Equal(t, "bob", info.Username)
}

// TestLoginDoesNotRevealUnknownUsernames verifies unknown usernames and
// wrong passwords are indistinguishable on the wire.
func TestLoginDoesNotRevealUnknownUsernames(t *testing.T) {
	baseURL := setupContainer(t)
	client := planfusesdk.NewSDKClient(baseURL)

	_, err := client.Register(t.Context(), "alice", defaultPassword)
	require.NoError(t, err)

	_, wrongPass := client.Login(t.Context(), "alice", "not-the-password")
	_, unknownUser := client.Login(t.Context(), "nobody", "not-the-password")

	requireAPIError(t, wrongPass, planfusesdk.ErrorCodeInvalidCredentials)
	requireAPIError(t, unknownUser, planfusesdk.ErrorCodeInvalidCredentials)
}

// TestAccountLockout drives an account into lockout and verifies even the
// correct password is rejected with 423 while the window runs.
func TestAccountLockout(t *testing.T) {
	baseURL := setupContainer(t)
	client := planfusesdk.NewSDKClient(baseURL)

	_, err := client.Register(t.Context(), "alice", defaultPassword)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := client.Login(t.Context(), "alice", "not-the-password")
		requireAPIError(t, err, planfusesdk.ErrorCodeInvalidCredentials)
	}

	_, err = client.Login(t.Context(), "alice", defaultPassword)
	requireAPIError(t, err, planfusesdk.ErrorCodeAccountLocked)
}

// TestLogoutRevokesToken verifies logout kills the session server-side even
// though the token's signature remains valid.
func TestLogoutRevokesToken(t *testing.T) {
	baseURL := setupContainer(t)
	client := planfusesdk.NewSDKClient(baseURL)

	session := registerAndLogin(t, client, "carol")
	require.NoError(t, session.Logout(t.Context()))

	_, err := session.GetUserInfo(t.Context())
	require.Error(t, err)
}

// TestRefreshRotatesSession verifies refresh supersedes the old session.
func TestRefreshRotatesSession(t *testing.T) {
	baseURL := setupContainer(t)
	client := planfusesdk.NewSDKClient(baseURL)

	session := registerAndLogin(t, client, "dave")
	oldToken := session.Token()

	require.NoError(t, session.Refresh(t.Context()))
	require.NotEqual(t, oldToken, session.Token())

	_, err := session.GetUserInfo(t.Context())
	require.NoError(t, err)

	stale := client.NewSessionFromToken(oldToken, session.ExpiresAt())
	_, err = stale.GetUserInfo(t.Context())
	require.Error(t, err)
}
