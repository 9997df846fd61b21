package service

import (
	"context"

	"github.com/akulinich/ballast/internal/contract"
	"github.com/akulinich/ballast/internal/domain"
	"github.com/akulinich/ballast/internal/importer"
)

type PlanService interface {
	Create(ctx context.Context, p *domain.Plan) error
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	List(ctx context.Context) ([]*domain.Plan, error)
	Delete(ctx context.Context, id string) error
}

type ContainerService interface {
	Create(ctx context.Context, c *domain.Container) error
	GetByID(ctx context.Context, id string) (*domain.Container, error)
	ListByPlan(ctx context.Context, planID string) ([]domain.Container, error)
	Update(ctx context.Context, c *domain.Container) error
	Delete(ctx context.Context, id string) error
}

type WorkItemService interface {
	Create(ctx context.Context, w *domain.WorkItem) error
	GetByID(ctx context.Context, id string) (*domain.WorkItem, error)
	ListByPlan(ctx context.Context, planID string) ([]domain.WorkItem, error)
	Update(ctx context.Context, w *domain.WorkItem) error
	MarkDone(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	AddDependency(ctx context.Context, itemID, dependsOnID string) error
	RemoveDependency(ctx context.Context, itemID, dependsOnID string) error
}

type BoardService interface {
	GetBoard(ctx context.Context, req contract.BoardRequest) (*contract.BoardView, error)
	MoveItem(ctx context.Context, req contract.MoveRequest) (*contract.BoardView, error)
}

type OptimizeService interface {
	Optimize(ctx context.Context, req contract.OptimizeRequest) (*contract.OptimizeOutcome, error)
	Accept(ctx context.Context, req contract.AcceptRequest) error
}

type WorkloadService interface {
	GetWorkload(ctx context.Context, req contract.WorkloadRequest) (*contract.WorkloadView, error)
}

type ImportService interface {
	// ImportPlan loads, validates, and persists a plan file as a new plan.
	ImportPlan(ctx context.Context, path string) (*importer.ImportedPlan, error)
}
