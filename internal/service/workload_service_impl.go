package service

import (
	"context"
	"fmt"

	"github.com/akulinich/ballast/internal/capacity"
	"github.com/akulinich/ballast/internal/contract"
	"github.com/akulinich/ballast/internal/domain"
)

type workloadService struct {
	src        PlanSourceRepos
	sessions   *SessionRegistry
	thresholds capacity.Thresholds
	maxSuggest int
}

func NewWorkloadService(src PlanSourceRepos, sessions *SessionRegistry, thresholds capacity.Thresholds, maxSuggestions int) WorkloadService {
	if maxSuggestions <= 0 {
		maxSuggestions = capacity.DefaultMaxSuggestions
	}
	return &workloadService{src: src, sessions: sessions, thresholds: thresholds, maxSuggest: maxSuggestions}
}

func (s *workloadService) GetWorkload(ctx context.Context, req contract.WorkloadRequest) (*contract.WorkloadView, error) {
	sess, err := s.sessions.Get(ctx, s.src, req.PlanID)
	if err != nil {
		return nil, err
	}
	snap := sess.Snapshot()

	var person *domain.Container
	for i := range snap.Containers {
		if snap.Containers[i].ID == req.PersonID {
			person = &snap.Containers[i]
			break
		}
	}
	if person == nil {
		return nil, fmt.Errorf("no container %s in plan %s", req.PersonID, req.PlanID)
	}

	byID := itemsByID(snap.Items)
	var assigned []domain.WorkItem
	for _, itemID := range snap.Order[person.ID] {
		assigned = append(assigned, byID[itemID])
	}

	workload := capacity.ComputeWorkload(person.Capacity, assigned, s.thresholds)
	view := &contract.WorkloadView{
		Person:    *person,
		Workload:  workload,
		Assigned:  assigned,
		Breakdown: capacity.ComputeBreakdown(assigned),
	}

	if workload.AvailablePoints > 0 {
		max := req.MaxSuggestions
		if max <= 0 {
			max = s.maxSuggest
		}
		var unassigned []domain.WorkItem
		for _, itemID := range snap.Order[domain.UnassignedID] {
			unassigned = append(unassigned, byID[itemID])
		}
		view.Suggestions = capacity.Suggest(workload.AvailablePoints, capacity.ActiveOnly(unassigned), max)
	}
	return view, nil
}
