package planfuse_test

import (
	"testing"
	"time"

	"github.com/planfuse/planfuse/pkg/planfusesdk"
	"github.com/stretchr/testify/require"
)

// TestTamperedTokenRejected verifies any modification to a session token
// invalidates its signature.
func TestTamperedTokenRejected(t *testing.T) {
	baseURL := setupContainer(t)
	client := planfusesdk.NewSDKClient(baseURL)

	session := registerAndLogin(t, client, "quinn")

	tampered := client.NewSessionFromToken(session.Token()+"x", session.ExpiresAt())
	_, err := tampered.GetUserInfo(t.Context())
	requireAPIError(t, err, planfusesdk.ErrorCodeInvalidToken)
}

// TestGarbageTokenRejected verifies a token that never came from the
// service is rejected, not just tampered ones.
func TestGarbageTokenRejected(t *testing.T) {
	baseURL := setupContainer(t)
	client := planfusesdk.NewSDKClient(baseURL)

	garbage := client.NewSessionFromToken("not.a.token", time.Now().Add(time.Hour))
	_, err := garbage.GetUserInfo(t.Context())
	requireAPIError(t, err, planfusesdk.ErrorCodeInvalidToken)
}

// TestSecondLoginSupersedesFirst verifies the single-session policy: a new
// login kills the previous session for the same account.
func TestSecondLoginSupersedesFirst(t *testing.T) {
	baseURL := setupContainer(t)
	client := planfusesdk.NewSDKClient(baseURL)

	first := registerAndLogin(t, client, "ruth")

	second, err := client.Login(t.Context(), "ruth", defaultPassword)
	require.NoError(t, err)

	_, err = second.GetUserInfo(t.Context())
	require.NoError(t, err)

	_, err = first.GetUserInfo(t.Context())
	requireAPIError(t, err, planfusesdk.ErrorCodeInvalidToken)
}

// TestAuthenticatedEndpointsRejectMissingToken verifies protected routes
// cannot be reached anonymously.
func TestAuthenticatedEndpointsRejectMissingToken(t *testing.T) {
	baseURL := setupContainer(t)
	client := planfusesdk.NewSDKClient(baseURL)

	anon := client.NewSessionFromToken("", time.Now().Add(time.Hour))

	_, err := anon.GetUserInfo(t.Context())
	requireAPIError(t, err, planfusesdk.ErrorCodeInvalidToken)

	_, err = anon.ListPlans(t.Context())
	requireAPIError(t, err, planfusesdk.ErrorCodeInvalidToken)
}
