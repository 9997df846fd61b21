package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akulinich/ballast/internal/capacity"
	"github.com/akulinich/ballast/internal/db"
	"github.com/akulinich/ballast/internal/domain"
	"github.com/akulinich/ballast/internal/repository"
	"github.com/akulinich/ballast/internal/testutil"
)

type testEnv struct {
	database   *sql.DB
	src        PlanSourceRepos
	registry   *SessionRegistry
	plans      PlanService
	containers ContainerService
	items      WorkItemService
	board      BoardService
	optimize   OptimizeService
	workload   WorkloadService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	deps := repository.NewSQLiteDependencyRepo(database)
	src := PlanSourceRepos{
		Plans:       repository.NewSQLitePlanRepo(database),
		Containers:  repository.NewSQLiteContainerRepo(database),
		WorkItems:   repository.NewSQLiteWorkItemRepo(database, deps),
		Assignments: repository.NewSQLiteAssignmentRepo(database),
	}
	registry := NewSessionRegistry()
	uow := db.NewSQLiteUnitOfWork(database)

	return &testEnv{
		database:   database,
		src:        src,
		registry:   registry,
		plans:      NewPlanService(src.Plans),
		containers: NewContainerService(src.Containers, registry),
		items:      NewWorkItemService(src.WorkItems, deps, registry),
		board:      NewBoardService(src, uow, registry),
		optimize:   NewOptimizeService(src, uow, registry),
		workload:   NewWorkloadService(src, registry, capacity.DefaultThresholds(), 0),
	}
}

// seedPlan creates a plan with two sprints, one person, and three
// unassigned items.
func seedPlan(t *testing.T, env *testEnv) (plan *domain.Plan, sprints []*domain.Container, person *domain.Container, items []*domain.WorkItem) {
	t.Helper()
	ctx := context.Background()

	plan = testutil.NewPlan("Q2 PI")
	require.NoError(t, env.plans.Create(ctx, plan))

	s1 := testutil.NewSprint(plan.ID, "Sprint 1", testutil.WithCapacity(20))
	s2 := testutil.NewSprint(plan.ID, "Sprint 2", testutil.WithCapacity(20))
	person = testutil.NewPerson(plan.ID, "Dana", testutil.WithCapacity(40))
	for _, c := range []*domain.Container{s1, s2, person} {
		require.NoError(t, env.containers.Create(ctx, c))
	}

	a := testutil.NewItem(plan.ID, "Auth flow", testutil.WithPoints(8), testutil.WithPriority(domain.PriorityHigh))
	b := testutil.NewItem(plan.ID, "Search index", testutil.WithPoints(8))
	c := testutil.NewItem(plan.ID, "Settings page", testutil.WithPoints(5), testutil.WithPriority(domain.PriorityLow))
	for _, w := range []*domain.WorkItem{a, b, c} {
		require.NoError(t, env.items.Create(ctx, w))
	}

	return plan, []*domain.Container{s1, s2}, person, []*domain.WorkItem{a, b, c}
}
