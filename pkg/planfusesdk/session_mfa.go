package planfusesdk

import (
	"context"
	"net/http"
)

// EnrollTOTP initiates TOTP enrollment for the authenticated user. The
// response carries the secret and provisioning URL exactly once; the factor
// stays inactive until ActivateTOTP confirms a code.
func (s *Session) EnrollTOTP(ctx context.Context) (*TOTPEnrollResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/mfa/totp/enroll", nil, nil)
	if err != nil {
		return nil, err
	}

	var enrollResp TOTPEnrollResponse
	if err := decodeJSON(resp, &enrollResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &enrollResp, nil
}

// ActivateTOTP confirms a pending enrollment with a code from the
// authenticator app. From the next login on, a session is only issued after
// the second factor.
func (s *Session) ActivateTOTP(ctx context.Context, code string) error {
	resp, err := s.doAuthJSONRequest(ctx, http.MethodPost, "/v1/mfa/totp/activate", TOTPCodeRequest{
		Code: code,
	})
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}

// DisableTOTP removes the TOTP factor. A valid code is required so a stolen
// session alone cannot strip MFA from the account.
func (s *Session) DisableTOTP(ctx context.Context, code string) error {
	resp, err := s.doAuthJSONRequest(ctx, http.MethodDelete, "/v1/mfa/totp", TOTPCodeRequest{
		Code: code,
	})
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}
