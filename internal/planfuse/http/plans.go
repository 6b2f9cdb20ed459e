package http

import (
	"errors"
	"net/http"

	"github.com/planfuse/planfuse/internal/planfuse/service"
	"github.com/planfuse/planfuse/pkg/httpx"
	"github.com/planfuse/planfuse/pkg/planfusesdk"
	"github.com/planfuse/planfuse/pkg/slogx"
)

// PlansHandler handles the authenticated plan resource.
type PlansHandler struct {
	PlanService *service.PlanService
}

// HandleList handles GET /v1/plans
//
//	@Summary		List the authenticated user's plans
//	@Tags			Plans
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	planfusesdk.PlansResponse	"Plans ordered by name"
//	@Failure		401	{object}	planfusesdk.ErrorResponse	"Invalid or missing token"
//	@Failure		500	{object}	planfusesdk.ErrorResponse	"Internal server error"
//	@Router			/v1/plans [get].
func (h *PlansHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok || userID == "" {
		planfusesdk.ErrInvalidToken.WriteError(w)
		return
	}

	plans, err := h.PlanService.List(ctx, userID)
	if err != nil {
		log.Error("plan list failed", "user_id", userID, "err", err)
		planfusesdk.ErrServerError.WriteError(w)
		return
	}

	resp := planfusesdk.PlansResponse{Plans: make([]planfusesdk.PlanResponse, 0, len(plans))}
	for _, p := range plans {
		resp.Plans = append(resp.Plans, planfusesdk.PlanResponse{
			Name:         p.Name,
			LastModified: p.LastModified,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleCreate handles POST /v1/plans/{name}
//
//	@Summary		Create a named plan
//	@Description	Plan names are unique per owner.
//	@Tags			Plans
//	@Security		BearerAuth
//	@Produce		json
//	@Param			name	path		string						true	"Plan name"
//	@Success		201		{object}	planfusesdk.PlanResponse	"Created plan"
//	@Failure		400		{object}	planfusesdk.ErrorResponse	"Invalid plan name"
//	@Failure		401		{object}	planfusesdk.ErrorResponse	"Invalid or missing token"
//	@Failure		409		{object}	planfusesdk.ErrorResponse	"Name already used"
//	@Failure		500		{object}	planfusesdk.ErrorResponse	"Internal server error"
//	@Router			/v1/plans/{name} [post].
func (h *PlansHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok || userID == "" {
		planfusesdk.ErrInvalidToken.WriteError(w)
		return
	}

	plan, err := h.PlanService.Create(ctx, userID, r.PathValue("name"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPlanName):
			planfusesdk.ErrInvalidPlanName.WriteError(w)
		case errors.Is(err, service.ErrPlanExists):
			planfusesdk.ErrPlanExists.WriteError(w)
		default:
			log.Error("plan create failed", "user_id", userID, "err", err)
			planfusesdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, planfusesdk.PlanResponse{
		Name:         plan.Name,
		LastModified: plan.LastModified,
	})
}

// HandleDelete handles DELETE /v1/plans/{name}
//
//	@Summary		Delete a named plan
//	@Tags			Plans
//	@Security		BearerAuth
//	@Param			name	path	string	true	"Plan name"
//	@Success		204		"Plan deleted"
//	@Failure		401		{object}	planfusesdk.ErrorResponse	"Invalid or missing token"
//	@Failure		404		{object}	planfusesdk.ErrorResponse	"No such plan"
//	@Failure		500		{object}	planfusesdk.ErrorResponse	"Internal server error"
//	@Router			/v1/plans/{name} [delete].
func (h *PlansHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok || userID == "" {
		planfusesdk.ErrInvalidToken.WriteError(w)
		return
	}

	if err := h.PlanService.Delete(ctx, userID, r.PathValue("name")); err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			planfusesdk.ErrNotFound.WriteError(w)
			return
		}
		log.Error("plan delete failed", "user_id", userID, "err", err)
		planfusesdk.ErrServerError.WriteError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
