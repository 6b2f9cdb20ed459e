package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/planfuse/planfuse/internal/planfuse/service"
	"github.com/planfuse/planfuse/pkg/httpx"
	"github.com/planfuse/planfuse/pkg/planfusesdk"
	"github.com/planfuse/planfuse/pkg/slogx"
)

// UsersHandler handles registration, profile lookup and password changes.
type UsersHandler struct {
	UserService *service.UserService
}

// HandleRegister handles POST /v1/users
//
//	@Summary		Register a new account
//	@Description	Creates a user with the default lockout tuning. Registering does not log
//	@Description	the user in; follow up with /v1/auth/login.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		planfusesdk.RegisterRequest	true	"Username and password"
//	@Success		201		{object}	planfusesdk.UserResponse	"Created account"
//	@Failure		400		{object}	planfusesdk.ErrorResponse	"Invalid username or weak password"
//	@Failure		409		{object}	planfusesdk.ErrorResponse	"Username already taken"
//	@Failure		500		{object}	planfusesdk.ErrorResponse	"Internal server error"
//	@Router			/v1/users [post].
func (h *UsersHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req planfusesdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		planfusesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	user, err := h.UserService.Register(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidUsername):
			planfusesdk.ErrInvalidUsername.WriteError(w)
		case errors.Is(err, service.ErrWeakPassword):
			planfusesdk.ErrWeakPassword.WriteError(w)
		case errors.Is(err, service.ErrUsernameTaken):
			planfusesdk.ErrUsernameTaken.WriteError(w)
		default:
			log.Error("registration failed", "err", err)
			planfusesdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, planfusesdk.UserResponse{
		UserID:    user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	})
}

// HandleGetByUsername handles GET /v1/users/username/{username}
//
//	@Summary		Look up a public profile
//	@Tags			Users
//	@Produce		json
//	@Param			username	path		string						true	"Username"
//	@Success		200			{object}	planfusesdk.UserResponse	"Public profile"
//	@Failure		404			{object}	planfusesdk.ErrorResponse	"Unknown username"
//	@Failure		500			{object}	planfusesdk.ErrorResponse	"Internal server error"
//	@Router			/v1/users/username/{username} [get].
func (h *UsersHandler) HandleGetByUsername(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	username := r.PathValue("username")
	if username == "" {
		planfusesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	user, err := h.UserService.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			planfusesdk.ErrNotFound.WriteError(w)
			return
		}
		log.Error("profile lookup failed", "err", err)
		planfusesdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, planfusesdk.UserResponse{
		UserID:    user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	})
}

// HandleChangePassword handles PUT /v1/users/{id}
//
//	@Summary		Change the authenticated user's password
//	@Description	Self-only: the path id must match the session's user. The current
//	@Description	password is required again even though the session is authenticated.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Param			id		path	string								true	"User id"
//	@Param			request	body	planfusesdk.ChangePasswordRequest	true	"Current and new password"
//	@Success		204		"Password changed"
//	@Failure		400		{object}	planfusesdk.ErrorResponse	"Weak new password"
//	@Failure		401		{object}	planfusesdk.ErrorResponse	"Wrong current password"
//	@Failure		403		{object}	planfusesdk.ErrorResponse	"Not the session's user"
//	@Failure		500		{object}	planfusesdk.ErrorResponse	"Internal server error"
//	@Router			/v1/users/{id} [put].
func (h *UsersHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok || userID == "" {
		planfusesdk.ErrInvalidToken.WriteError(w)
		return
	}
	if r.PathValue("id") != userID {
		planfusesdk.NewAPIError(http.StatusForbidden, "forbidden",
			"users may only change their own password").WriteError(w)
		return
	}

	var req planfusesdk.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		planfusesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	err := h.UserService.ChangePassword(ctx, userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWrongCredentials):
			planfusesdk.ErrInvalidCredentials.WriteError(w)
		case errors.Is(err, service.ErrWeakPassword):
			planfusesdk.ErrWeakPassword.WriteError(w)
		default:
			log.Error("password change failed", "user_id", userID, "err", err)
			planfusesdk.ErrServerError.WriteError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
