package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akulinich/ballast/internal/contract"
	"github.com/akulinich/ballast/internal/domain"
	"github.com/akulinich/ballast/internal/testutil"
)

func TestWorkloadService_UnderutilizedDeveloperGetsSuggestions(t *testing.T) {
	env := newTestEnv(t)
	plan, _, person, items := seedPlan(t, env)
	ctx := context.Background()

	// 8 + 8 of 40 assigned, settings page (5) left in the pool.
	for _, w := range items[:2] {
		_, err := env.board.MoveItem(ctx, contract.NewMoveRequest(plan.ID, w.ID, person.ID))
		require.NoError(t, err)
	}

	view, err := env.workload.GetWorkload(ctx, contract.NewWorkloadRequest(plan.ID, person.ID))
	require.NoError(t, err)

	assert.InDelta(t, 16.0, view.Workload.AssignedPoints, 1e-9)
	assert.InDelta(t, 24.0, view.Workload.AvailablePoints, 1e-9)
	assert.Equal(t, 40, view.Workload.UtilizationPct())
	assert.True(t, view.Workload.Underutilized)
	assert.False(t, view.Workload.Overloaded)

	require.Len(t, view.Suggestions, 1)
	assert.Equal(t, items[2].ID, view.Suggestions[0].ID)
}

func TestWorkloadService_BreakdownGroupsAssignedWork(t *testing.T) {
	env := newTestEnv(t)
	plan, _, person, items := seedPlan(t, env)
	ctx := context.Background()

	for _, w := range items {
		_, err := env.board.MoveItem(ctx, contract.NewMoveRequest(plan.ID, w.ID, person.ID))
		require.NoError(t, err)
	}
	require.NoError(t, env.items.MarkDone(ctx, items[2].ID))

	view, err := env.workload.GetWorkload(ctx, contract.NewWorkloadRequest(plan.ID, person.ID))
	require.NoError(t, err)

	assert.InDelta(t, 16.0, view.Breakdown.ByStatus[domain.ItemTodo], 1e-9)
	assert.InDelta(t, 5.0, view.Breakdown.ByStatus[domain.ItemDone], 1e-9)
	assert.InDelta(t, 8.0, view.Breakdown.ByPriority[domain.PriorityHigh], 1e-9)
	assert.InDelta(t, 21.0, view.Breakdown.ByProject["(none)"], 1e-9)
}

func TestWorkloadService_ListsAssignedItemsInLaneOrder(t *testing.T) {
	env := newTestEnv(t)
	plan, _, person, _ := seedPlan(t, env)
	ctx := context.Background()

	story := testutil.NewItem(plan.ID, "Checkout story", testutil.WithKind(domain.ItemStory), testutil.WithPoints(5))
	task := testutil.NewItem(plan.ID, "Wire webhook", testutil.WithKind(domain.ItemTask), testutil.WithPoints(3))
	for _, w := range []*domain.WorkItem{story, task} {
		require.NoError(t, env.items.Create(ctx, w))
		_, err := env.board.MoveItem(ctx, contract.NewMoveRequest(plan.ID, w.ID, person.ID))
		require.NoError(t, err)
	}

	view, err := env.workload.GetWorkload(ctx, contract.NewWorkloadRequest(plan.ID, person.ID))
	require.NoError(t, err)

	require.Len(t, view.Assigned, 2)
	assert.Equal(t, story.ID, view.Assigned[0].ID)
	assert.Equal(t, task.ID, view.Assigned[1].ID)

	stories := view.ByKind(domain.ItemStory)
	require.Len(t, stories, 1)
	assert.Equal(t, story.ID, stories[0].ID)
	tasks := view.ByKind(domain.ItemTask)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)
	assert.Empty(t, view.ByKind(domain.ItemFeature))
}

func TestWorkloadService_OverloadedDeveloperGetsNoSuggestions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	plan := &domain.Plan{Name: "Crunch"}
	require.NoError(t, env.plans.Create(ctx, plan))
	dev := &domain.Container{PlanID: plan.ID, Name: "Riley", Kind: domain.ContainerPerson, Capacity: 10}
	require.NoError(t, env.containers.Create(ctx, dev))
	heavy := createItem(t, env, plan.ID, "Big refactor", 12)
	createItem(t, env, plan.ID, "Small fix", 1)

	_, err := env.board.MoveItem(ctx, contract.NewMoveRequest(plan.ID, heavy, dev.ID))
	require.NoError(t, err)

	view, err := env.workload.GetWorkload(ctx, contract.NewWorkloadRequest(plan.ID, dev.ID))
	require.NoError(t, err)

	assert.True(t, view.Workload.Overloaded)
	assert.Zero(t, view.Workload.AvailablePoints)
	assert.Empty(t, view.Suggestions)
}

func TestWorkloadService_UnknownPersonFails(t *testing.T) {
	env := newTestEnv(t)
	plan, _, _, _ := seedPlan(t, env)

	_, err := env.workload.GetWorkload(context.Background(), contract.NewWorkloadRequest(plan.ID, "nobody"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "nobody")
}
