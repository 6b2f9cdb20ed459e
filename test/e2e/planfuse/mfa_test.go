package planfuse_test

import (
	"testing"
	"time"

	"github.com/planfuse/planfuse/pkg/planfusesdk"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

// TestMFAFullLifecycle enrolls a TOTP authenticator, activates it, logs in
// through the two-step challenge, then disables it and verifies plain
// password login works again.
func TestMFAFullLifecycle(t *testing.T) {
	baseURL := setupContainer(t)
	client := planfusesdk.NewSDKClient(baseURL)

	session := registerAndLogin(t, client, "erin")

	enroll, err := session.EnrollTOTP(t.Context())
	require.NoError(t, err)
	require.NotEmpty(t, enroll.Secret)

	code, err := totp.GenerateCode(enroll.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, session.ActivateTOTP(t.Context(), code))

	// Password alone is no longer enough.
	_, err = client.Login(t.Context(), "erin", defaultPassword)
	var challenge *planfusesdk.MFARequiredError
	require.ErrorAs(t, err, &challenge)
	require.NotEmpty(t, challenge.MFAToken)

	code, err = totp.GenerateCode(enroll.Secret, time.Now())
	require.NoError(t, err)
	mfaSession, err := client.CompleteMFA(t.Context(), challenge, code)
	require.NoError(t, err)

	info, err := mfaSession.GetUserInfo(t.Context())
	require.NoError(t, err)
	require.Equal(t, "erin", info.Username)

	code, err = totp.GenerateCode(enroll.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, mfaSession.DisableTOTP(t.Context(), code))

	_, err = client.Login(t.Context(), "erin", defaultPassword)
	require.NoError(t, err)
}

// TestMFAWrongCodeRejected verifies a bad TOTP code fails the challenge
// with the same error as a bad password.
func TestMFAWrongCodeRejected(t *testing.T) {
	baseURL := setupContainer(t)
	client := planfusesdk.NewSDKClient(baseURL)

	session := registerAndLogin(t, client, "frank")

	enroll, err := session.EnrollTOTP(t.Context())
	require.NoError(t, err)

	code, err := totp.GenerateCode(enroll.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, session.ActivateTOTP(t.Context(), code))

	_, err = client.Login(t.Context(), "frank", defaultPassword)
	var challenge *planfusesdk.MFARequiredError
	require.ErrorAs(t, err, &challenge)

	_, err = client.CompleteMFA(t.Context(), challenge, "000000")
	requireAPIError(t, err, planfusesdk.ErrorCodeInvalidCredentials)
}

// TestMFAActivationRequiresValidCode verifies enrollment stays pending until
// a correct code proves the authenticator was provisioned.
func TestMFAActivationRequiresValidCode(t *testing.T) {
	baseURL := setupContainer(t)
	client := planfusesdk.NewSDKClient(baseURL)

	session := registerAndLogin(t, client, "grace")

	_, err := session.EnrollTOTP(t.Context())
	require.NoError(t, err)

	err = session.ActivateTOTP(t.Context(), "000000")
	requireAPIError(t, err, planfusesdk.ErrorCodeInvalidCode)

	// Pending enrollment must not change the login flow.
	_, err = client.Login(t.Context(), "grace", defaultPassword)
	require.NoError(t, err)
}
