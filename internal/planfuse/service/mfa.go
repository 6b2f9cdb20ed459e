package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/planfuse/planfuse/internal/planfuse/domain"
	"github.com/planfuse/planfuse/internal/planfuse/store"
	"github.com/planfuse/planfuse/pkg/cryptox"
	"github.com/planfuse/planfuse/pkg/slogx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

var (
	ErrInvalidTOTPCode   = errors.New("invalid TOTP code")
	ErrTOTPNotEnrolled   = errors.New("TOTP not enrolled for this user")
	ErrTOTPAlreadyActive = errors.New("TOTP already active for this user")
)

// MFAService manages the TOTP second factor lifecycle for an authenticated
// user. Secrets are sealed (AES-GCM) before they reach the store and only
// unsealed for code checks.
type MFAService struct {
	Store  store.Store
	Sealer *cryptox.Sealer
	Issuer string // Issuer name shown in authenticator apps (e.g. "PlanFuse")
}

// EnrollTOTP generates a fresh TOTP secret for the user and stores it
// sealed, inactive. The plaintext secret and otpauth URL are returned once,
// here; ActivateTOTP must confirm a code before the factor counts.
// Re-enrolling while inactive overwrites the pending secret; an active
// factor must be disabled first.
func (s *MFAService) EnrollTOTP(ctx context.Context, userID string) (domain.TOTPEnrollment, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TOTPEnrollment{}, ErrUserNotFound
		}
		return domain.TOTPEnrollment{}, fmt.Errorf("load user: %w", err)
	}
	if user.TOTPActive {
		return domain.TOTPEnrollment{}, ErrTOTPAlreadyActive
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: user.Username,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		l.Error("failed to generate TOTP key", "error", err, "user_id", userID)
		return domain.TOTPEnrollment{}, fmt.Errorf("generate TOTP key: %w", err)
	}

	sealed, err := s.Sealer.Seal([]byte(key.Secret()))
	if err != nil {
		l.Error("failed to seal TOTP secret", "error", err, "user_id", userID)
		return domain.TOTPEnrollment{}, fmt.Errorf("seal TOTP secret: %w", err)
	}

	if err := s.Store.Users().UpdateTOTPSecret(ctx, userID, sealed); err != nil {
		return domain.TOTPEnrollment{}, fmt.Errorf("store TOTP secret: %w", err)
	}

	l.Info("TOTP enrollment started", "user_id", userID)
	return domain.TOTPEnrollment{
		Secret:  key.Secret(),
		URL:     key.URL(),
		Issuer:  s.Issuer,
		Account: user.Username,
	}, nil
}

// ActivateTOTP confirms a code against the pending secret and switches the
// factor on. From the next login on, the user owes a code.
func (s *MFAService) ActivateTOTP(ctx context.Context, userID, code string) error {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("load user: %w", err)
	}
	if user.TOTPActive {
		return ErrTOTPAlreadyActive
	}
	if user.TOTPSecret == nil {
		return ErrTOTPNotEnrolled
	}

	if err := s.validateCode(ctx, user, code); err != nil {
		return err
	}

	if err := s.Store.Users().ActivateTOTP(ctx, userID); err != nil {
		return fmt.Errorf("activate TOTP: %w", err)
	}

	slogx.FromContext(ctx).Info("TOTP activated", "user_id", userID)
	return nil
}

// DisableTOTP removes the factor after verifying one last code, so a stolen
// session alone cannot strip MFA from the account.
func (s *MFAService) DisableTOTP(ctx context.Context, userID, code string) error {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("load user: %w", err)
	}
	if !user.TOTPActive || user.TOTPSecret == nil {
		return ErrTOTPNotEnrolled
	}

	if err := s.validateCode(ctx, user, code); err != nil {
		return err
	}

	if err := s.Store.Users().DisableTOTP(ctx, userID); err != nil {
		return fmt.Errorf("disable TOTP: %w", err)
	}

	slogx.FromContext(ctx).Info("TOTP disabled", "user_id", userID)
	return nil
}

// validateCode unseals the stored secret and checks the code against it.
func (s *MFAService) validateCode(ctx context.Context, user domain.User, code string) error {
	secret, err := s.Sealer.Open(*user.TOTPSecret)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to unseal TOTP secret", "error", err, "user_id", user.ID)
		return fmt.Errorf("unseal TOTP secret: %w", err)
	}
	if !totp.Validate(code, string(secret)) {
		return ErrInvalidTOTPCode
	}
	return nil
}
