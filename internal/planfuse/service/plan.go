package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/planfuse/planfuse/internal/planfuse/domain"
	"github.com/planfuse/planfuse/internal/planfuse/store"
	"github.com/planfuse/planfuse/pkg/slogx"
)

const maxPlanNameLen = 128

var (
	ErrPlanNotFound    = errors.New("plan not found")
	ErrPlanExists      = errors.New("plan already exists")
	ErrInvalidPlanName = errors.New("invalid plan name")
)

// PlanService manages a user's plans. Plans are the protected resource
// behind session authentication; every call here runs on behalf of an
// already verified user id.
type PlanService struct {
	Store store.Store
}

// List returns the user's plans ordered by name.
func (s *PlanService) List(ctx context.Context, userID string) ([]domain.Plan, error) {
	plans, err := s.Store.Plans().ListPlansByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return plans, nil
}

// Create adds a named plan for the user. Names are unique per owner.
func (s *PlanService) Create(ctx context.Context, userID, name string) (domain.Plan, error) {
	if err := validatePlanName(name); err != nil {
		return domain.Plan{}, err
	}

	plan := domain.Plan{
		UserID:       userID,
		Name:         name,
		LastModified: time.Now().UTC(),
	}
	if err := s.Store.Plans().CreatePlan(ctx, plan); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Plan{}, ErrPlanExists
		}
		return domain.Plan{}, fmt.Errorf("create plan: %w", err)
	}

	slogx.FromContext(ctx).Info("plan created", "user_id", userID, "plan", name)
	return plan, nil
}

// Delete removes a named plan owned by the user.
func (s *PlanService) Delete(ctx context.Context, userID, name string) error {
	if err := s.Store.Plans().DeletePlan(ctx, userID, name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrPlanNotFound
		}
		return fmt.Errorf("delete plan: %w", err)
	}

	slogx.FromContext(ctx).Info("plan deleted", "user_id", userID, "plan", name)
	return nil
}

// validatePlanName enforces 1..128 characters with no control characters.
// Names travel in URL paths, so slashes are out too.
func validatePlanName(name string) error {
	n := utf8.RuneCountInString(name)
	if n == 0 || n > maxPlanNameLen {
		return ErrInvalidPlanName
	}
	for _, r := range name {
		if unicode.IsControl(r) || r == '/' {
			return ErrInvalidPlanName
		}
	}
	return nil
}
