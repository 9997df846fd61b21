package optimizer

import (
	"sort"
	"time"

	"github.com/akulinich/ballast/internal/domain"
)

// placementState tracks running allocations during one greedy pass.
type placementState struct {
	containers []domain.Container
	allocated  map[string]float64
	// placedIn records the container chosen for each already-placed item,
	// so dependents can respect its time window.
	placedIn map[string]string
	byID     map[string]domain.Container
}

func newPlacementState(containers []domain.Container) *placementState {
	ordered := make([]domain.Container, len(containers))
	copy(ordered, containers)
	// Earliest window first; undated containers keep their input order at
	// the end so "earliest available" tie-breaks stay deterministic.
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].StartDate, ordered[j].StartDate
		if (a == nil) != (b == nil) {
			return a != nil
		}
		if a != nil && b != nil && !a.Equal(*b) {
			return a.Before(*b)
		}
		return false
	})

	state := &placementState{
		containers: ordered,
		allocated:  make(map[string]float64, len(ordered)),
		placedIn:   make(map[string]string),
		byID:       make(map[string]domain.Container, len(ordered)),
	}
	for _, c := range ordered {
		state.byID[c.ID] = c
	}
	return state
}

func (s *placementState) dependenciesPlaced(item domain.WorkItem) bool {
	for _, dep := range item.DependsOn {
		if _, ok := s.placedIn[dep]; !ok {
			return false
		}
	}
	return true
}

// placeItem picks a container for the item and records the allocation.
// Preference order: the compatible container with the most remaining free
// capacity that fits the item; otherwise the container minimizing the
// resulting overload; ties go to the earliest window, then container ID.
func (s *placementState) placeItem(item domain.WorkItem, eps float64) string {
	earliest := s.earliestCompatibleStart(item)

	best := ""
	bestFree := 0.0
	for _, c := range s.containers {
		if !s.windowCompatible(c, earliest) {
			continue
		}
		free := c.Capacity - s.allocated[c.ID]
		if free+eps < item.Points {
			continue
		}
		if best == "" || free > bestFree+eps {
			best = c.ID
			bestFree = free
		}
	}

	if best == "" {
		// Nothing fits: minimize the resulting overload. Containers are
		// already in earliest-first order, so a strict improvement check
		// resolves ties toward the earliest window.
		bestOverload := 0.0
		for _, c := range s.containers {
			overload := s.allocated[c.ID] + item.Points - c.Capacity
			if best == "" || overload < bestOverload-eps {
				best = c.ID
				bestOverload = overload
			}
		}
	}

	if best == "" {
		return domain.UnassignedID
	}
	s.allocated[best] += item.Points
	s.placedIn[item.ID] = best
	return best
}

// earliestCompatibleStart returns the latest end date among the containers
// holding the item's dependencies; placing at or after it preserves soft
// dependency ordering. Nil when no dependency carries window data.
func (s *placementState) earliestCompatibleStart(item domain.WorkItem) *time.Time {
	var latest *time.Time
	for _, dep := range item.DependsOn {
		containerID, ok := s.placedIn[dep]
		if !ok {
			continue
		}
		c, ok := s.byID[containerID]
		if !ok || c.EndDate == nil {
			continue
		}
		if latest == nil || c.EndDate.After(*latest) {
			latest = c.EndDate
		}
	}
	return latest
}

func (s *placementState) windowCompatible(c domain.Container, earliest *time.Time) bool {
	if earliest == nil || c.StartDate == nil {
		return true
	}
	return !c.StartDate.Before(*earliest)
}
