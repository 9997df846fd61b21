package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/akulinich/ballast/internal/allocation"
	"github.com/akulinich/ballast/internal/repository"
)

// SessionRegistry holds one live allocation session per open plan. Board
// edits and optimizer runs for the same plan share a session, so its
// generation token arbitrates between a manual move and an in-flight
// rebalance. CRUD writes that change a plan's items or containers
// invalidate its session; the next access rebuilds it from storage and any
// pending optimizer token dies with the old session.
type SessionRegistry struct {
	mu   sync.Mutex
	open map[string]*allocation.Session
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{open: make(map[string]*allocation.Session)}
}

// Get returns the plan's live session, loading it from the repositories if
// none is open.
func (r *SessionRegistry) Get(ctx context.Context, src PlanSourceRepos, planID string) (*allocation.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sess, ok := r.open[planID]; ok {
		return sess, nil
	}
	store, err := loadStore(ctx, src, planID)
	if err != nil {
		return nil, err
	}
	sess := allocation.NewSession(store)
	r.open[planID] = sess
	return sess, nil
}

// Peek returns the plan's session only if one is already open.
func (r *SessionRegistry) Peek(planID string) (*allocation.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.open[planID]
	return sess, ok
}

// Invalidate drops the plan's session so the next access reloads it.
func (r *SessionRegistry) Invalidate(planID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.open, planID)
}

// PlanSourceRepos bundles the repositories needed to rebuild a plan's
// allocation state from storage.
type PlanSourceRepos struct {
	Plans       repository.PlanRepo
	Containers  repository.ContainerRepo
	WorkItems   repository.WorkItemRepo
	Assignments repository.AssignmentRepo
}

func loadStore(ctx context.Context, src PlanSourceRepos, planID string) (*allocation.Store, error) {
	if _, err := src.Plans.GetByID(ctx, planID); err != nil {
		return nil, fmt.Errorf("loading plan %s: %w", planID, err)
	}
	containers, err := src.Containers.ListByPlan(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("loading containers for plan %s: %w", planID, err)
	}
	items, err := src.WorkItems.ListByPlan(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("loading items for plan %s: %w", planID, err)
	}
	records, err := src.Assignments.ListByPlan(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("loading assignments for plan %s: %w", planID, err)
	}

	assignment := assignmentFromRecords(records, items, containers)
	store, err := allocation.NewStore(orderItemsByPosition(items, records), containers, assignment)
	if err != nil {
		return nil, fmt.Errorf("building allocation state for plan %s: %w", planID, err)
	}
	return store, nil
}
