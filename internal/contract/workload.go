package contract

import (
	"github.com/akulinich/ballast/internal/capacity"
	"github.com/akulinich/ballast/internal/domain"
)

// WorkloadRequest asks for one person's workload meter.
type WorkloadRequest struct {
	PlanID   string
	PersonID string
	// MaxSuggestions bounds the pick-up list; zero means the configured default.
	MaxSuggestions int
}

func NewWorkloadRequest(planID, personID string) WorkloadRequest {
	return WorkloadRequest{PlanID: planID, PersonID: personID}
}

// WorkloadView is the meter readout plus the person's assigned items in
// lane order, the grouped breakdown, and, when the person has room,
// suggested unassigned items.
type WorkloadView struct {
	Person      domain.Container
	Workload    capacity.Workload
	Assigned    []domain.WorkItem
	Breakdown   capacity.Breakdown
	Suggestions []domain.WorkItem
}

// ByKind splits the assigned items by work item kind, preserving lane order.
func (v *WorkloadView) ByKind(kind domain.ItemKind) []domain.WorkItem {
	var out []domain.WorkItem
	for _, item := range v.Assigned {
		if item.Kind == kind {
			out = append(out, item)
		}
	}
	return out
}
