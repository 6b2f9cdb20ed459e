package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

func newMFAService(t *testing.T) (*MFAService, *AuthService) {
	t.Helper()
	st := newTestStore(t)
	auth := newAuthService(t, st)
	return &MFAService{Store: st, Sealer: auth.Sealer, Issuer: "PlanFuse"}, auth
}

func TestTOTPLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, auth := newMFAService(t)
	user := createTestUser(t, svc.Store, "alice", "correct horse battery")

	// Enroll. The secret comes back in plaintext exactly once and lands in
	// the store sealed, inactive.
	enrollment, err := svc.EnrollTOTP(ctx, user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, enrollment.Secret)
	require.Contains(t, enrollment.URL, "otpauth://totp/")
	require.Contains(t, enrollment.URL, "PlanFuse")
	require.Equal(t, "alice", enrollment.Account)

	stored, err := svc.Store.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.False(t, stored.TOTPActive)
	require.NotNil(t, stored.TOTPSecret)
	require.NotContains(t, *stored.TOTPSecret, enrollment.Secret)

	unsealed, err := svc.Sealer.Open(*stored.TOTPSecret)
	require.NoError(t, err)
	require.Equal(t, enrollment.Secret, string(unsealed))

	// A pending factor does not change login yet.
	result, err := auth.Authenticate(ctx, "alice", "correct horse battery")
	require.NoError(t, err)
	require.False(t, result.MFARequired())

	// Activate with a fresh code.
	code, err := totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, svc.ActivateTOTP(ctx, user.ID, code))

	stored, err = svc.Store.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, stored.TOTPActive)

	// Login now defers to the second factor.
	result, err = auth.Authenticate(ctx, "alice", "correct horse battery")
	require.NoError(t, err)
	require.True(t, result.MFARequired())

	// Disable requires a valid code and clears everything.
	code, err = totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, svc.DisableTOTP(ctx, user.ID, code))

	stored, err = svc.Store.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.False(t, stored.TOTPActive)
	require.Nil(t, stored.TOTPSecret)
}

func TestActivateTOTPWrongCode(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMFAService(t)
	user := createTestUser(t, svc.Store, "alice", "correct horse battery")

	_, err := svc.EnrollTOTP(ctx, user.ID)
	require.NoError(t, err)

	err = svc.ActivateTOTP(ctx, user.ID, "000000")
	require.ErrorIs(t, err, ErrInvalidTOTPCode)

	stored, err := svc.Store.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.False(t, stored.TOTPActive)
}

func TestActivateTOTPWithoutEnrollment(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMFAService(t)
	user := createTestUser(t, svc.Store, "alice", "correct horse battery")

	err := svc.ActivateTOTP(ctx, user.ID, "000000")
	require.ErrorIs(t, err, ErrTOTPNotEnrolled)
}

func TestEnrollTOTPStates(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMFAService(t)
	user := createTestUser(t, svc.Store, "alice", "correct horse battery")

	t.Run("re-enroll while pending replaces the secret", func(t *testing.T) {
		first, err := svc.EnrollTOTP(ctx, user.ID)
		require.NoError(t, err)

		second, err := svc.EnrollTOTP(ctx, user.ID)
		require.NoError(t, err)
		require.NotEqual(t, first.Secret, second.Secret)

		// Only the latest secret activates.
		code, err := totp.GenerateCode(first.Secret, time.Now())
		require.NoError(t, err)
		require.ErrorIs(t, svc.ActivateTOTP(ctx, user.ID, code), ErrInvalidTOTPCode)

		code, err = totp.GenerateCode(second.Secret, time.Now())
		require.NoError(t, err)
		require.NoError(t, svc.ActivateTOTP(ctx, user.ID, code))
	})

	t.Run("enroll while active is refused", func(t *testing.T) {
		_, err := svc.EnrollTOTP(ctx, user.ID)
		require.ErrorIs(t, err, ErrTOTPAlreadyActive)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.EnrollTOTP(ctx, "missing")
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestDisableTOTPGuards(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMFAService(t)
	user := createTestUser(t, svc.Store, "alice", "correct horse battery")

	t.Run("not enrolled", func(t *testing.T) {
		err := svc.DisableTOTP(ctx, user.ID, "000000")
		require.ErrorIs(t, err, ErrTOTPNotEnrolled)
	})

	t.Run("wrong code keeps the factor", func(t *testing.T) {
		enrollment, err := svc.EnrollTOTP(ctx, user.ID)
		require.NoError(t, err)

		code, err := totp.GenerateCode(enrollment.Secret, time.Now())
		require.NoError(t, err)
		require.NoError(t, svc.ActivateTOTP(ctx, user.ID, code))

		// A wrong disable code must not strip MFA. Codes are six digits,
		// so this string can never validate.
		err = svc.DisableTOTP(ctx, user.ID, strings.Repeat("x", 6))
		require.ErrorIs(t, err, ErrInvalidTOTPCode)

		stored, err := svc.Store.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.True(t, stored.TOTPActive)
	})
}
