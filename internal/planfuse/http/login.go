package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/planfuse/planfuse/internal/planfuse/service"
	"github.com/planfuse/planfuse/pkg/httpx"
	"github.com/planfuse/planfuse/pkg/planfusesdk"
	"github.com/planfuse/planfuse/pkg/slogx"
)

// LoginHandler handles password login and MFA completion.
type LoginHandler struct {
	AuthService *service.AuthService
}

// HandleLogin handles POST /v1/auth/login
//
//	@Summary		Authenticate with username and password
//	@Description	Verifies credentials and issues a 24 hour session token. Accounts with an
//	@Description	active TOTP factor receive an MFA challenge instead; finish with /v1/auth/mfa.
//	@Description	Repeated failures lock the account progressively; locked attempts return 423.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		planfusesdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	planfusesdk.LoginResponse	"Session token or MFA challenge"
//	@Failure		400		{object}	planfusesdk.ErrorResponse	"Malformed request"
//	@Failure		401		{object}	planfusesdk.ErrorResponse	"Wrong username or password"
//	@Failure		423		{object}	planfusesdk.ErrorResponse	"Account locked"
//	@Failure		500		{object}	planfusesdk.ErrorResponse	"Internal server error"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req planfusesdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		planfusesdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Username == "" || req.Password == "" {
		planfusesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	result, err := h.AuthService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		writeLoginError(w, log, err)
		return
	}

	if result.MFARequired() {
		httpx.WriteJSON(w, http.StatusOK, planfusesdk.LoginResponse{
			MFARequired: true,
			MFAToken:    result.MFAToken,
		})
		return
	}

	setSessionCookie(w, result.Token, result.Session.ExpiresAt)
	httpx.WriteJSON(w, http.StatusOK, planfusesdk.LoginResponse{
		Token:     result.Token,
		TokenType: "Bearer",
		ExpiresAt: result.Session.ExpiresAt,
	})
}

// HandleCompleteMFA handles POST /v1/auth/mfa
//
//	@Summary		Complete an MFA login challenge
//	@Description	Redeems the short-lived ticket from /v1/auth/login with a TOTP code and
//	@Description	issues the session. Wrong codes count as failed login attempts and feed
//	@Description	the same lockout counter as wrong passwords.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		planfusesdk.MFACompleteRequest	true	"Ticket and TOTP code"
//	@Success		200		{object}	planfusesdk.TokenResponse		"Session token"
//	@Failure		400		{object}	planfusesdk.ErrorResponse		"Malformed request"
//	@Failure		401		{object}	planfusesdk.ErrorResponse		"Bad ticket or wrong code"
//	@Failure		423		{object}	planfusesdk.ErrorResponse		"Account locked"
//	@Failure		500		{object}	planfusesdk.ErrorResponse		"Internal server error"
//	@Router			/v1/auth/mfa [post].
func (h *LoginHandler) HandleCompleteMFA(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req planfusesdk.MFACompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		planfusesdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.MFAToken == "" || req.Code == "" {
		planfusesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	result, err := h.AuthService.CompleteMFA(ctx, req.MFAToken, req.Code)
	if err != nil {
		writeLoginError(w, log, err)
		return
	}

	setSessionCookie(w, result.Token, result.Session.ExpiresAt)
	httpx.WriteJSON(w, http.StatusOK, planfusesdk.TokenResponse{
		Token:     result.Token,
		TokenType: "Bearer",
		ExpiresAt: result.Session.ExpiresAt,
	})
}

// writeLoginError maps authentication failures onto the wire. Unknown
// usernames, wrong passwords and wrong codes all come out identical; lock
// responses carry the remaining window in Retry-After.
func writeLoginError(w http.ResponseWriter, log *slog.Logger, err error) {
	var lockErr *service.LockedError
	switch {
	case errors.As(err, &lockErr):
		if secs := int(time.Until(lockErr.Until).Seconds()) + 1; secs > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(secs))
		}
		planfusesdk.ErrAccountLocked.WriteError(w)
	case errors.Is(err, service.ErrWrongCredentials):
		planfusesdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrInvalidToken):
		planfusesdk.ErrInvalidToken.WriteError(w)
	case errors.Is(err, service.ErrTokenCreation):
		log.Error("token creation failed", "err", err)
		planfusesdk.ErrServerError.WriteError(w)
	default:
		log.Error("authentication failed", "err", err)
		planfusesdk.ErrServerError.WriteError(w)
	}
}

// setSessionCookie mirrors the issued token into a cookie for browser
// clients. API clients keep using the Authorization header.
func setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     httpx.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearSessionCookie expires the session cookie on logout.
func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     httpx.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}
