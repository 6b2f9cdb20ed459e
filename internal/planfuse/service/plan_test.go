package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlanLifecycle(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &PlanService{Store: st}
	user := createTestUser(t, st, "alice", "correct horse battery")

	plans, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, plans)

	_, err = svc.Create(ctx, user.ID, "q3-roadmap")
	require.NoError(t, err)
	created, err := svc.Create(ctx, user.ID, "backlog")
	require.NoError(t, err)
	require.Equal(t, "backlog", created.Name)
	require.False(t, created.LastModified.IsZero())

	// Listed in name order.
	plans, err = svc.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	require.Equal(t, "backlog", plans[0].Name)
	require.Equal(t, "q3-roadmap", plans[1].Name)

	_, err = svc.Create(ctx, user.ID, "backlog")
	require.ErrorIs(t, err, ErrPlanExists)

	require.NoError(t, svc.Delete(ctx, user.ID, "backlog"))
	require.ErrorIs(t, svc.Delete(ctx, user.ID, "backlog"), ErrPlanNotFound)

	plans, err = svc.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, plans, 1)
}

func TestPlanNamesScopedPerUser(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &PlanService{Store: st}
	alice := createTestUser(t, st, "alice", "correct horse battery")
	bob := createTestUser(t, st, "bob", "correct horse battery")

	_, err := svc.Create(ctx, alice.ID, "shared-name")
	require.NoError(t, err)

	// Same name under another owner is no conflict.
	_, err = svc.Create(ctx, bob.ID, "shared-name")
	require.NoError(t, err)

	// Deleting under the wrong owner touches nothing.
	require.ErrorIs(t, svc.Delete(ctx, bob.ID, "only-alices"), ErrPlanNotFound)
}

func TestPlanNameValidation(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &PlanService{Store: st}
	user := createTestUser(t, st, "alice", "correct horse battery")

	for _, name := range []string{"", strings.Repeat("a", 129), "a/b", "tab\tname", "nl\nname"} {
		_, err := svc.Create(ctx, user.ID, name)
		require.ErrorIs(t, err, ErrInvalidPlanName, "name %q", name)
	}

	// 128 characters exactly is fine, as are spaces.
	_, err := svc.Create(ctx, user.ID, strings.Repeat("a", 128))
	require.NoError(t, err)
	_, err = svc.Create(ctx, user.ID, "weekend plans")
	require.NoError(t, err)
}
