package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/akulinich/ballast/internal/db"
	"github.com/akulinich/ballast/internal/importer"
	"github.com/akulinich/ballast/internal/repository"
)

type importService struct {
	uow db.UnitOfWork
}

// NewImportService creates the plan file import service.
func NewImportService(uow db.UnitOfWork) ImportService {
	return &importService{uow: uow}
}

func (s *importService) ImportPlan(ctx context.Context, path string) (*importer.ImportedPlan, error) {
	file, err := importer.LoadPlanFile(path)
	if err != nil {
		return nil, err
	}
	if errs := importer.ValidatePlanFile(file); len(errs) > 0 {
		return nil, fmt.Errorf("invalid plan file:\n%w", errors.Join(errs...))
	}
	imported, err := importer.Convert(file)
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		plans := repository.NewSQLitePlanRepo(tx)
		containers := repository.NewSQLiteContainerRepo(tx)
		deps := repository.NewSQLiteDependencyRepo(tx)
		items := repository.NewSQLiteWorkItemRepo(tx, deps)
		assignments := repository.NewSQLiteAssignmentRepo(tx)

		if err := plans.Create(ctx, imported.Plan); err != nil {
			return fmt.Errorf("creating plan: %w", err)
		}
		for _, c := range imported.Containers {
			if err := containers.Create(ctx, c); err != nil {
				return fmt.Errorf("creating container %q: %w", c.Name, err)
			}
		}
		// Item creation persists each item's DependsOn edges as well.
		for _, it := range imported.Items {
			if err := items.Create(ctx, it); err != nil {
				return fmt.Errorf("creating item %q: %w", it.Title, err)
			}
		}
		if err := assignments.Replace(ctx, imported.Plan.ID, imported.Records); err != nil {
			return fmt.Errorf("writing placements: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return imported, nil
}
