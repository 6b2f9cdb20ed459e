package planfusesdk

import (
	"context"
	"net/http"
	"net/url"
)

// Plan operations - the protected resource behind the session tokens

// ListPlans retrieves all plans owned by the authenticated user, ordered
// by name.
func (s *Session) ListPlans(ctx context.Context) (*PlansResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/plans", nil, nil)
	if err != nil {
		return nil, err
	}

	var plans PlansResponse
	if err := decodeJSON(resp, &plans, http.StatusOK); err != nil {
		return nil, err
	}

	return &plans, nil
}

// CreatePlan creates a new empty plan with the given name. Plan names are
// unique per owner.
func (s *Session) CreatePlan(ctx context.Context, name string) (*PlanResponse, error) {
	path := "/v1/plans/" + url.PathEscape(name)

	resp, err := s.doAuthRequest(ctx, http.MethodPost, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var plan PlanResponse
	if err := decodeJSON(resp, &plan, http.StatusCreated); err != nil {
		return nil, err
	}

	return &plan, nil
}

// DeletePlan deletes the named plan.
func (s *Session) DeletePlan(ctx context.Context, name string) error {
	path := "/v1/plans/" + url.PathEscape(name)

	resp, err := s.doAuthRequest(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}
