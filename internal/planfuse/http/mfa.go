package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/planfuse/planfuse/internal/planfuse/service"
	"github.com/planfuse/planfuse/pkg/httpx"
	"github.com/planfuse/planfuse/pkg/planfusesdk"
	"github.com/planfuse/planfuse/pkg/slogx"
)

// MFAHandler handles the TOTP second factor lifecycle.
type MFAHandler struct {
	MFAService *service.MFAService
}

// HandleEnroll handles POST /v1/mfa/totp/enroll
//
//	@Summary		Enroll a TOTP second factor
//	@Description	Generates a TOTP secret for the authenticated user and returns it with a
//	@Description	provisioning URL, exactly once. The factor stays inactive until
//	@Description	/v1/mfa/totp/activate confirms a code.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	planfusesdk.TOTPEnrollResponse	"Secret and provisioning URL"
//	@Failure		400	{object}	planfusesdk.ErrorResponse		"TOTP already active"
//	@Failure		401	{object}	planfusesdk.ErrorResponse		"Invalid or missing token"
//	@Failure		500	{object}	planfusesdk.ErrorResponse		"Internal server error"
//	@Router			/v1/mfa/totp/enroll [post].
func (h *MFAHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok || userID == "" {
		planfusesdk.ErrInvalidToken.WriteError(w)
		return
	}

	enrollment, err := h.MFAService.EnrollTOTP(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrTOTPAlreadyActive) {
			planfusesdk.ErrTOTPAlreadyActive.WriteError(w)
			return
		}
		log.Error("TOTP enrollment failed", "user_id", userID, "err", err)
		planfusesdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, planfusesdk.TOTPEnrollResponse{
		Secret:  enrollment.Secret,
		URL:     enrollment.URL,
		Issuer:  enrollment.Issuer,
		Account: enrollment.Account,
	})
}

// HandleActivate handles POST /v1/mfa/totp/activate
//
//	@Summary		Activate a pending TOTP enrollment
//	@Description	Confirms one code against the pending secret and switches the factor on.
//	@Description	From the next login on, a session is only issued after the second factor.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Param			request	body	planfusesdk.TOTPCodeRequest	true	"TOTP code"
//	@Success		204		"Factor activated"
//	@Failure		400		{object}	planfusesdk.ErrorResponse	"Wrong code, not enrolled, or already active"
//	@Failure		401		{object}	planfusesdk.ErrorResponse	"Invalid or missing token"
//	@Failure		500		{object}	planfusesdk.ErrorResponse	"Internal server error"
//	@Router			/v1/mfa/totp/activate [post].
func (h *MFAHandler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok || userID == "" {
		planfusesdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req planfusesdk.TOTPCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		planfusesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.MFAService.ActivateTOTP(ctx, userID, req.Code); err != nil {
		writeMFAError(w, log, userID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDisable handles DELETE /v1/mfa/totp
//
//	@Summary		Disable the TOTP second factor
//	@Description	Removes the factor after verifying one last code, so a stolen session
//	@Description	alone cannot strip MFA from the account.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Param			request	body	planfusesdk.TOTPCodeRequest	true	"TOTP code"
//	@Success		204		"Factor disabled"
//	@Failure		400		{object}	planfusesdk.ErrorResponse	"Wrong code or not enrolled"
//	@Failure		401		{object}	planfusesdk.ErrorResponse	"Invalid or missing token"
//	@Failure		500		{object}	planfusesdk.ErrorResponse	"Internal server error"
//	@Router			/v1/mfa/totp [delete].
func (h *MFAHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok || userID == "" {
		planfusesdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req planfusesdk.TOTPCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		planfusesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.MFAService.DisableTOTP(ctx, userID, req.Code); err != nil {
		writeMFAError(w, log, userID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeMFAError(w http.ResponseWriter, log *slog.Logger, userID string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidTOTPCode):
		planfusesdk.ErrInvalidCode.WriteError(w)
	case errors.Is(err, service.ErrTOTPNotEnrolled):
		planfusesdk.ErrTOTPNotEnrolled.WriteError(w)
	case errors.Is(err, service.ErrTOTPAlreadyActive):
		planfusesdk.ErrTOTPAlreadyActive.WriteError(w)
	default:
		log.Error("TOTP management failed", "user_id", userID, "err", err)
		planfusesdk.ErrServerError.WriteError(w)
	}
}
