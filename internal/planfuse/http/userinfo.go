package http

import (
	"errors"
	"net/http"

	"github.com/planfuse/planfuse/internal/planfuse/service"
	"github.com/planfuse/planfuse/pkg/httpx"
	"github.com/planfuse/planfuse/pkg/planfusesdk"
	"github.com/planfuse/planfuse/pkg/slogx"
)

// UserInfoHandler serves the authenticated user's own account details.
type UserInfoHandler struct {
	UserService *service.UserService
}

// ServeHTTP handles GET /v1/userinfo
//
//	@Summary		Get the authenticated user's details
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	planfusesdk.UserInfoResponse	"Account details"
//	@Failure		401	{object}	planfusesdk.ErrorResponse		"Invalid or missing token"
//	@Failure		500	{object}	planfusesdk.ErrorResponse		"Internal server error"
//	@Router			/v1/userinfo [get].
func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok || userID == "" {
		planfusesdk.ErrInvalidToken.WriteError(w)
		return
	}

	user, err := h.UserService.GetUserByID(ctx, userID)
	if err != nil {
		// The row vanishing mid-session means the session outlived the
		// account; treat the token as dead.
		if errors.Is(err, service.ErrUserNotFound) {
			planfusesdk.ErrInvalidToken.WriteError(w)
			return
		}
		log.Error("userinfo lookup failed", "user_id", userID, "err", err)
		planfusesdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, planfusesdk.UserInfoResponse{
		UserID:     user.ID,
		Username:   user.Username,
		TOTPActive: user.TOTPActive,
		CreatedAt:  user.CreatedAt,
	})
}
