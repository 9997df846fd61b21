package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akulinich/ballast/internal/contract"
	"github.com/akulinich/ballast/internal/db"
)

const samplePlanFile = `plan: Imported PI
containers:
  - name: Sprint 1
    kind: sprint
    capacity: 20
    start: 2026-04-01
    end: 2026-04-14
  - name: Dana
    kind: person
    capacity: 40
items:
  - ref: auth
    title: Auth flow
    kind: feature
    priority: high
    points: 8
    container: Sprint 1
  - ref: search
    title: Search index
    points: 8
    depends_on: [auth]
  - ref: settings
    title: Settings page
    points: 5
    container: Sprint 1
`

func writePlanFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportService_ImportPlan(t *testing.T) {
	env := newTestEnv(t)
	svc := NewImportService(db.NewSQLiteUnitOfWork(env.database))
	ctx := context.Background()

	imported, err := svc.ImportPlan(ctx, writePlanFile(t, samplePlanFile))
	require.NoError(t, err)
	assert.Equal(t, "Imported PI", imported.Plan.Name)

	view, err := env.board.GetBoard(ctx, contract.NewBoardRequest(imported.Plan.ID))
	require.NoError(t, err)

	require.Len(t, view.Lanes, 2)
	sprint := view.Lanes[0]
	assert.Equal(t, "Sprint 1", sprint.Container.Name)
	require.Len(t, sprint.Items, 2)
	assert.Equal(t, "Auth flow", sprint.Items[0].Title)
	assert.Equal(t, "Settings page", sprint.Items[1].Title)
	assert.InDelta(t, 13, sprint.Usage.Allocated, 1e-9)

	require.Len(t, view.Unassigned, 1)
	assert.Equal(t, "Search index", view.Unassigned[0].Title)

	items, err := env.items.ListByPlan(ctx, imported.Plan.ID)
	require.NoError(t, err)
	byTitle := make(map[string][]string)
	for _, it := range items {
		byTitle[it.Title] = it.DependsOn
	}
	assert.Len(t, byTitle["Search index"], 1)
}

func TestImportService_RejectsInvalidFile(t *testing.T) {
	env := newTestEnv(t)
	svc := NewImportService(db.NewSQLiteUnitOfWork(env.database))

	bad := `plan: ""
items:
  - ref: a
    title: A
    points: -1
`
	_, err := svc.ImportPlan(context.Background(), writePlanFile(t, bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid plan file")
	assert.Contains(t, err.Error(), "plan name is required")
	assert.Contains(t, err.Error(), "points must not be negative")
}

func TestImportService_MissingFile(t *testing.T) {
	env := newTestEnv(t)
	svc := NewImportService(db.NewSQLiteUnitOfWork(env.database))

	_, err := svc.ImportPlan(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
