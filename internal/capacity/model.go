// Package capacity computes allocated load, utilization, overload state,
// and capacity-aware suggestions. Everything here is a pure function over
// a snapshot; nothing mutates the allocation it is given.
package capacity

import "github.com/akulinich/ballast/internal/domain"

// Epsilon guards capacity comparisons against floating-point false
// positives at exact capacity.
const Epsilon = 1e-6

// Usage is the computed capacity state of one container.
type Usage struct {
	ContainerID string
	Allocated   float64
	Capacity    float64
	// Utilization is the unrounded percentage. Overload checks use this
	// raw value; display goes through UtilizationPct.
	Utilization float64
	Overloaded  bool
}

// UtilizationPct returns utilization rounded to the nearest integer
// percentage for display.
func (u Usage) UtilizationPct() int {
	if u.Utilization < 0 {
		return 0
	}
	return int(u.Utilization + 0.5)
}

// Free returns the remaining unallocated capacity, never negative.
func (u Usage) Free() float64 {
	if free := u.Capacity - u.Allocated; free > 0 {
		return free
	}
	return 0
}

// Compute derives the Usage of a container from the full item collection
// and the current assignment. Done items still count toward allocated;
// callers wanting the opposite policy filter items before calling.
//
// A zero-capacity container reports utilization 0 (not a division error)
// and is overloaded iff anything at all is allocated to it.
func Compute(c domain.Container, items []domain.WorkItem, assignment domain.Assignment) Usage {
	u := Usage{ContainerID: c.ID, Capacity: c.Capacity}
	for i := range items {
		if assignment.ContainerOf(items[i].ID) == c.ID {
			u.Allocated += items[i].Points
		}
	}
	if u.Capacity > Epsilon {
		u.Utilization = u.Allocated / u.Capacity * 100
		u.Overloaded = u.Allocated > u.Capacity+Epsilon
	} else {
		u.Overloaded = u.Allocated > Epsilon
	}
	return u
}

// ComputeAll computes Usage for every container, keyed by container ID.
func ComputeAll(containers []domain.Container, items []domain.WorkItem, assignment domain.Assignment) map[string]Usage {
	out := make(map[string]Usage, len(containers))
	for _, c := range containers {
		out[c.ID] = Compute(c, items, assignment)
	}
	return out
}

// ActiveOnly returns the items that are not done. This is the single place
// the "exclude completed work" policy lives; both the board and the meter
// go through it when a caller opts out of counting finished items.
func ActiveOnly(items []domain.WorkItem) []domain.WorkItem {
	out := make([]domain.WorkItem, 0, len(items))
	for _, item := range items {
		if item.Status != domain.ItemDone {
			out = append(out, item)
		}
	}
	return out
}
