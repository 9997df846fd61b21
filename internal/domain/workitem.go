package domain

import "time"

type WorkItem struct {
	ID       string
	PlanID   string
	Title    string
	Kind     ItemKind
	Status   ItemStatus
	Priority Priority

	// Estimated size in story points. Fractional points are allowed.
	Points float64

	// Project is a free-form grouping label used by workload breakdowns.
	Project string

	// DependsOn lists work item IDs this item should be scheduled after.
	// The optimizer treats these as a preference, never a hard block.
	DependsOn []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Remaining reports whether the item still consumes future effort.
// Done items keep counting toward allocated capacity within a window;
// callers that want the opposite policy filter explicitly.
func (w *WorkItem) Remaining() bool {
	return w.Status != ItemDone
}
