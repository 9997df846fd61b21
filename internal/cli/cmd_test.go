package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akulinich/ballast/internal/capacity"
	"github.com/akulinich/ballast/internal/config"
	"github.com/akulinich/ballast/internal/db"
	"github.com/akulinich/ballast/internal/domain"
	"github.com/akulinich/ballast/internal/repository"
	"github.com/akulinich/ballast/internal/service"
	"github.com/akulinich/ballast/internal/testutil"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	deps := repository.NewSQLiteDependencyRepo(database)
	src := service.PlanSourceRepos{
		Plans:       repository.NewSQLitePlanRepo(database),
		Containers:  repository.NewSQLiteContainerRepo(database),
		WorkItems:   repository.NewSQLiteWorkItemRepo(database, deps),
		Assignments: repository.NewSQLiteAssignmentRepo(database),
	}
	registry := service.NewSessionRegistry()
	uow := db.NewSQLiteUnitOfWork(database)

	return &App{
		Plans:      service.NewPlanService(src.Plans),
		Containers: service.NewContainerService(src.Containers, registry),
		Items:      service.NewWorkItemService(src.WorkItems, deps, registry),
		Board:      service.NewBoardService(src, uow, registry),
		Optimize:   service.NewOptimizeService(src, uow, registry),
		Workload:   service.NewWorkloadService(src, registry, capacity.DefaultThresholds(), 0),
		Import:     service.NewImportService(uow),

		Config:        config.Default(),
		IsInteractive: func() bool { return false },
	}
}

// runCmd executes the root command with args, capturing stdout.
func runCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	pr, pw, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = pw

	root := NewRootCmd(app)
	root.SetOut(pw)
	root.SetErr(pw)
	root.SetArgs(args)
	root.SilenceUsage = true

	var buf strings.Builder
	done := make(chan struct{})
	go func() {
		io.Copy(&buf, pr)
		close(done)
	}()

	execErr := root.Execute()

	pw.Close()
	os.Stdout = origStdout
	<-done

	return buf.String(), execErr
}

func seedBoard(t *testing.T, app *App) *domain.Plan {
	t.Helper()
	ctx := context.Background()

	plan := &domain.Plan{Name: "Q2 PI"}
	require.NoError(t, app.Plans.Create(ctx, plan))

	require.NoError(t, app.Containers.Create(ctx, &domain.Container{
		PlanID: plan.ID, Name: "Sprint 1", Kind: domain.ContainerSprint, Capacity: 20,
	}))
	require.NoError(t, app.Containers.Create(ctx, &domain.Container{
		PlanID: plan.ID, Name: "Dana", Kind: domain.ContainerPerson, Capacity: 40,
	}))
	require.NoError(t, app.Items.Create(ctx, &domain.WorkItem{
		PlanID: plan.ID, Title: "Auth flow", Points: 8, Priority: domain.PriorityHigh,
	}))
	return plan
}

func TestPlanAddAndList(t *testing.T) {
	app := testApp(t)

	out, err := runCmd(t, app, "plan", "add", "--name", "Q3 PI")
	require.NoError(t, err)
	assert.Contains(t, out, "Created plan Q3 PI")

	out, err = runCmd(t, app, "plan", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Q3 PI")
}

func TestBoardCmd_ShowsLanesAndPool(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)

	out, err := runCmd(t, app, "board", "Q2 PI")
	require.NoError(t, err)

	assert.Contains(t, out, "Sprint 1")
	assert.Contains(t, out, "Unassigned")
	assert.Contains(t, out, "Auth flow")
}

func TestMoveCmd_ResolvesNames(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)

	out, err := runCmd(t, app, "move", "Auth flow", "Sprint 1", "--plan", "Q2 PI")
	require.NoError(t, err)
	assert.Contains(t, out, "Moved Auth flow to Sprint 1")

	out, err = runCmd(t, app, "board", "Q2 PI")
	require.NoError(t, err)
	assert.Contains(t, out, "8/20 pts")
}

func TestMoveCmd_BackToPool(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)

	_, err := runCmd(t, app, "move", "Auth flow", "Sprint 1", "--plan", "Q2 PI")
	require.NoError(t, err)

	out, err := runCmd(t, app, "move", "Auth flow", "unassigned", "--plan", "Q2 PI")
	require.NoError(t, err)
	assert.Contains(t, out, "Moved Auth flow to unassigned")
}

func TestOptimizeCmd_DryRun(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)

	out, err := runCmd(t, app, "optimize", "Q2 PI", "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, out, "REBALANCE")
	assert.Contains(t, out, "Auth flow")
}

func TestOptimizeCmd_NonInteractiveNeedsYes(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)

	_, err := runCmd(t, app, "optimize", "Q2 PI")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
}

func TestOptimizeCmd_YesApplies(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)

	out, err := runCmd(t, app, "optimize", "Q2 PI", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Applied.")

	out, err = runCmd(t, app, "board", "Q2 PI")
	require.NoError(t, err)
	assert.Contains(t, out, "(empty)")
}

func TestWorkloadCmd_ShowsMeter(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)

	out, err := runCmd(t, app, "workload", "Dana", "--plan", "Q2 PI")
	require.NoError(t, err)

	assert.Contains(t, out, "DANA")
	assert.Contains(t, out, "0%")
	assert.Contains(t, out, "Could pick up")
}

func TestItemAddCmd_RejectsInvalidPriority(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)

	_, err := runCmd(t, app, "item", "add", "--plan", "Q2 PI", "--title", "Bad", "--priority", "urgent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid priority")
}

func TestPlanImportCmd(t *testing.T) {
	app := testApp(t)

	content := `plan: Imported PI
containers:
  - name: Sprint 1
    capacity: 20
items:
  - ref: auth
    title: Auth flow
    points: 8
    container: Sprint 1
`
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	out, err := runCmd(t, app, "plan", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported plan Imported PI")

	out, err = runCmd(t, app, "board", "Imported PI")
	require.NoError(t, err)
	assert.Contains(t, out, "Auth flow")
}

func TestUnknownPlanFails(t *testing.T) {
	app := testApp(t)

	_, err := runCmd(t, app, "board", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plan not found")
}
