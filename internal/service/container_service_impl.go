package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/akulinich/ballast/internal/domain"
	"github.com/akulinich/ballast/internal/repository"
)

type containerService struct {
	containers repository.ContainerRepo
	sessions   *SessionRegistry
}

func NewContainerService(containers repository.ContainerRepo, sessions *SessionRegistry) ContainerService {
	return &containerService{containers: containers, sessions: sessions}
}

func (s *containerService) Create(ctx context.Context, c *domain.Container) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.ID == domain.UnassignedID {
		return fmt.Errorf("container id %q is reserved", domain.UnassignedID)
	}
	if c.Kind == "" {
		c.Kind = domain.ContainerSprint
	}
	if c.Capacity < 0 {
		return fmt.Errorf("container capacity must be non-negative, got %v", c.Capacity)
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if err := s.containers.Create(ctx, c); err != nil {
		return err
	}
	s.sessions.Invalidate(c.PlanID)
	return nil
}

func (s *containerService) GetByID(ctx context.Context, id string) (*domain.Container, error) {
	return s.containers.GetByID(ctx, id)
}

func (s *containerService) ListByPlan(ctx context.Context, planID string) ([]domain.Container, error) {
	return s.containers.ListByPlan(ctx, planID)
}

func (s *containerService) Update(ctx context.Context, c *domain.Container) error {
	if c.Capacity < 0 {
		return fmt.Errorf("container capacity must be non-negative, got %v", c.Capacity)
	}
	c.UpdatedAt = time.Now().UTC()
	if err := s.containers.Update(ctx, c); err != nil {
		return err
	}
	s.sessions.Invalidate(c.PlanID)
	return nil
}

func (s *containerService) Delete(ctx context.Context, id string) error {
	c, err := s.containers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.containers.Delete(ctx, id); err != nil {
		return err
	}
	s.sessions.Invalidate(c.PlanID)
	return nil
}
