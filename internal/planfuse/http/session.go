package http

import (
	"net/http"

	"github.com/planfuse/planfuse/internal/planfuse/service"
	"github.com/planfuse/planfuse/pkg/httpx"
	"github.com/planfuse/planfuse/pkg/planfusesdk"
	"github.com/planfuse/planfuse/pkg/slogx"
)

// SessionHandler handles logout and refresh for an authenticated session.
type SessionHandler struct {
	SessionService *service.SessionService
}

// HandleLogout handles POST /v1/auth/logout
//
//	@Summary		Revoke the current session
//	@Description	Deletes the session row behind the presented token. The token stops
//	@Description	verifying immediately even though its signature stays valid until expiry.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Success		204	"Session revoked"
//	@Failure		401	{object}	planfusesdk.ErrorResponse	"Invalid or missing token"
//	@Failure		500	{object}	planfusesdk.ErrorResponse	"Internal server error"
//	@Router			/v1/auth/logout [post].
func (h *SessionHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	sessionID, ok := httpx.SessionIDFromContext(ctx)
	if !ok || sessionID == "" {
		planfusesdk.ErrInvalidToken.WriteError(w)
		return
	}

	if err := h.SessionService.Logout(ctx, sessionID); err != nil {
		log.Error("logout failed", "session_id", sessionID, "err", err)
		planfusesdk.ErrServerError.WriteError(w)
		return
	}

	clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleRefresh handles POST /v1/auth/refresh
//
//	@Summary		Refresh the current session
//	@Description	Supersedes the current session with a fresh 24 hour one. The old token
//	@Description	stops verifying as soon as the new session is issued.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	planfusesdk.TokenResponse	"New session token"
//	@Failure		401	{object}	planfusesdk.ErrorResponse	"Invalid or missing token"
//	@Failure		500	{object}	planfusesdk.ErrorResponse	"Internal server error"
//	@Router			/v1/auth/refresh [post].
func (h *SessionHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok || userID == "" {
		planfusesdk.ErrInvalidToken.WriteError(w)
		return
	}

	session, token, err := h.SessionService.Create(ctx, userID)
	if err != nil {
		log.Error("session refresh failed", "user_id", userID, "err", err)
		planfusesdk.ErrServerError.WriteError(w)
		return
	}

	setSessionCookie(w, token, session.ExpiresAt)
	httpx.WriteJSON(w, http.StatusOK, planfusesdk.TokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: session.ExpiresAt,
	})
}
