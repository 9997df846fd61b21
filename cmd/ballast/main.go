package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/akulinich/ballast/internal/capacity"
	"github.com/akulinich/ballast/internal/cli"
	"github.com/akulinich/ballast/internal/config"
	"github.com/akulinich/ballast/internal/db"
	"github.com/akulinich/ballast/internal/repository"
	"github.com/akulinich/ballast/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load(config.DefaultPath())

	dbPath := cfg.DBPath
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".ballast", "ballast.db")
	}

	database, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	depRepo := repository.NewSQLiteDependencyRepo(database)
	src := service.PlanSourceRepos{
		Plans:       repository.NewSQLitePlanRepo(database),
		Containers:  repository.NewSQLiteContainerRepo(database),
		WorkItems:   repository.NewSQLiteWorkItemRepo(database, depRepo),
		Assignments: repository.NewSQLiteAssignmentRepo(database),
	}

	// One SessionRegistry shared by every service so a write through any
	// of them drops the plan's open allocation session.
	registry := service.NewSessionRegistry()
	uow := db.NewSQLiteUnitOfWork(database)

	thresholds := capacity.Thresholds{
		UnderutilizedPct: cfg.Workload.UnderutilizedPct,
		NoiseFloorPoints: cfg.Workload.NoiseFloorPoints,
	}

	app := &cli.App{
		Plans:      service.NewPlanService(src.Plans),
		Containers: service.NewContainerService(src.Containers, registry),
		Items:      service.NewWorkItemService(src.WorkItems, depRepo, registry),
		Board:      service.NewBoardService(src, uow, registry),
		Optimize:   service.NewOptimizeService(src, uow, registry),
		Workload:   service.NewWorkloadService(src, registry, thresholds, cfg.MaxSuggestions),
		Import:     service.NewImportService(uow),

		Config: cfg,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
