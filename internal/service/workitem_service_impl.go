package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/akulinich/ballast/internal/domain"
	"github.com/akulinich/ballast/internal/repository"
)

type workItemService struct {
	workItems    repository.WorkItemRepo
	dependencies repository.DependencyRepo
	sessions     *SessionRegistry
}

func NewWorkItemService(workItems repository.WorkItemRepo, dependencies repository.DependencyRepo, sessions *SessionRegistry) WorkItemService {
	return &workItemService{workItems: workItems, dependencies: dependencies, sessions: sessions}
}

func (s *workItemService) Create(ctx context.Context, w *domain.WorkItem) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	if w.Points < 0 {
		return fmt.Errorf("item points must be non-negative, got %v", w.Points)
	}
	if w.Status == "" {
		w.Status = domain.ItemTodo
	}
	if w.Priority == "" {
		w.Priority = domain.PriorityMedium
	}
	if w.Kind == "" {
		w.Kind = domain.ItemTask
	}
	now := time.Now().UTC()
	w.CreatedAt = now
	w.UpdatedAt = now
	if err := s.workItems.Create(ctx, w); err != nil {
		return err
	}
	s.sessions.Invalidate(w.PlanID)
	return nil
}

func (s *workItemService) GetByID(ctx context.Context, id string) (*domain.WorkItem, error) {
	return s.workItems.GetByID(ctx, id)
}

func (s *workItemService) ListByPlan(ctx context.Context, planID string) ([]domain.WorkItem, error) {
	return s.workItems.ListByPlan(ctx, planID)
}

func (s *workItemService) Update(ctx context.Context, w *domain.WorkItem) error {
	if w.Points < 0 {
		return fmt.Errorf("item points must be non-negative, got %v", w.Points)
	}
	w.UpdatedAt = time.Now().UTC()
	if err := s.workItems.Update(ctx, w); err != nil {
		return err
	}
	s.sessions.Invalidate(w.PlanID)
	return nil
}

func (s *workItemService) MarkDone(ctx context.Context, id string) error {
	w, err := s.workItems.GetByID(ctx, id)
	if err != nil {
		return err
	}
	w.Status = domain.ItemDone
	w.UpdatedAt = time.Now().UTC()
	if err := s.workItems.Update(ctx, w); err != nil {
		return err
	}
	s.sessions.Invalidate(w.PlanID)
	return nil
}

func (s *workItemService) Delete(ctx context.Context, id string) error {
	w, err := s.workItems.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.workItems.Delete(ctx, id); err != nil {
		return err
	}
	s.sessions.Invalidate(w.PlanID)
	return nil
}

func (s *workItemService) AddDependency(ctx context.Context, itemID, dependsOnID string) error {
	if itemID == dependsOnID {
		return fmt.Errorf("item %q cannot depend on itself", itemID)
	}
	w, err := s.workItems.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if _, err := s.workItems.GetByID(ctx, dependsOnID); err != nil {
		return err
	}
	if err := s.dependencies.Add(ctx, itemID, dependsOnID); err != nil {
		return err
	}
	s.sessions.Invalidate(w.PlanID)
	return nil
}

func (s *workItemService) RemoveDependency(ctx context.Context, itemID, dependsOnID string) error {
	w, err := s.workItems.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if err := s.dependencies.Remove(ctx, itemID, dependsOnID); err != nil {
		return err
	}
	s.sessions.Invalidate(w.PlanID)
	return nil
}
