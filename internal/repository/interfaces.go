package repository

import (
	"context"

	"github.com/akulinich/ballast/internal/domain"
)

// AssignmentRecord is one persisted item placement. Position is the item's
// index within its container's display order.
type AssignmentRecord struct {
	ItemID      string
	ContainerID string
	Position    int
}

type PlanRepo interface {
	Create(ctx context.Context, p *domain.Plan) error
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	List(ctx context.Context) ([]*domain.Plan, error)
	Touch(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type ContainerRepo interface {
	Create(ctx context.Context, c *domain.Container) error
	GetByID(ctx context.Context, id string) (*domain.Container, error)
	ListByPlan(ctx context.Context, planID string) ([]domain.Container, error)
	Update(ctx context.Context, c *domain.Container) error
	Delete(ctx context.Context, id string) error
}

type WorkItemRepo interface {
	Create(ctx context.Context, w *domain.WorkItem) error
	GetByID(ctx context.Context, id string) (*domain.WorkItem, error)
	ListByPlan(ctx context.Context, planID string) ([]domain.WorkItem, error)
	Update(ctx context.Context, w *domain.WorkItem) error
	Delete(ctx context.Context, id string) error
}

type DependencyRepo interface {
	Add(ctx context.Context, itemID, dependsOnID string) error
	Remove(ctx context.Context, itemID, dependsOnID string) error
	// ListByPlan returns dependency lists keyed by item ID.
	ListByPlan(ctx context.Context, planID string) (map[string][]string, error)
}

type AssignmentRepo interface {
	ListByPlan(ctx context.Context, planID string) ([]AssignmentRecord, error)
	// Replace wipes the plan's records and writes the new set.
	// Callers wanting atomicity run it inside a UnitOfWork transaction.
	Replace(ctx context.Context, planID string, records []AssignmentRecord) error
}
