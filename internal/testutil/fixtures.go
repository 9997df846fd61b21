package testutil

import (
	"time"

	"github.com/akulinich/ballast/internal/domain"
	"github.com/google/uuid"
)

var fixtureTime = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

// Plan options
type PlanOption func(*domain.Plan)

// NewPlan builds a plan fixture with a generated ID.
func NewPlan(name string, opts ...PlanOption) *domain.Plan {
	p := &domain.Plan{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: fixtureTime,
		UpdatedAt: fixtureTime,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Container options
type ContainerOption func(*domain.Container)

func WithCapacity(points float64) ContainerOption {
	return func(c *domain.Container) {
		c.Capacity = points
	}
}

func WithWindow(start, end time.Time) ContainerOption {
	return func(c *domain.Container) {
		c.StartDate = &start
		c.EndDate = &end
	}
}

func WithContainerKind(k domain.ContainerKind) ContainerOption {
	return func(c *domain.Container) {
		c.Kind = k
	}
}

// NewSprint builds a sprint container fixture with a generated ID.
func NewSprint(planID, name string, opts ...ContainerOption) *domain.Container {
	c := &domain.Container{
		ID:        uuid.NewString(),
		PlanID:    planID,
		Name:      name,
		Kind:      domain.ContainerSprint,
		Capacity:  20,
		CreatedAt: fixtureTime,
		UpdatedAt: fixtureTime,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewPerson builds a person container fixture with a generated ID.
func NewPerson(planID, name string, opts ...ContainerOption) *domain.Container {
	c := NewSprint(planID, name, opts...)
	c.Kind = domain.ContainerPerson
	return c
}

// WorkItem options
type ItemOption func(*domain.WorkItem)

func WithPoints(points float64) ItemOption {
	return func(w *domain.WorkItem) {
		w.Points = points
	}
}

func WithPriority(p domain.Priority) ItemOption {
	return func(w *domain.WorkItem) {
		w.Priority = p
	}
}

func WithKind(k domain.ItemKind) ItemOption {
	return func(w *domain.WorkItem) {
		w.Kind = k
	}
}

func WithStatus(s domain.ItemStatus) ItemOption {
	return func(w *domain.WorkItem) {
		w.Status = s
	}
}

func WithProject(name string) ItemOption {
	return func(w *domain.WorkItem) {
		w.Project = name
	}
}

func WithDependsOn(ids ...string) ItemOption {
	return func(w *domain.WorkItem) {
		w.DependsOn = ids
	}
}

// NewItem builds a work item fixture with a generated ID.
func NewItem(planID, title string, opts ...ItemOption) *domain.WorkItem {
	w := &domain.WorkItem{
		ID:        uuid.NewString(),
		PlanID:    planID,
		Title:     title,
		Kind:      domain.ItemFeature,
		Status:    domain.ItemTodo,
		Priority:  domain.PriorityMedium,
		Points:    5,
		CreatedAt: fixtureTime,
		UpdatedAt: fixtureTime,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}
