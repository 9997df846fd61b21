package capacity

import (
	"sort"

	"github.com/akulinich/ballast/internal/domain"
)

type OverloadSeverity string

const (
	SeverityHigh   OverloadSeverity = "high"
	SeverityMedium OverloadSeverity = "medium"
)

// OverloadWarning reports one container whose allocation exceeds capacity.
type OverloadWarning struct {
	ContainerID   string
	ContainerName string
	Allocated     float64
	Capacity      float64
	Overload      float64
	Severity      OverloadSeverity
}

// DetectOverloads returns a warning per overloaded container, sorted by
// overload amount descending, container name ascending on ties. The pool
// container never warns: unassigned work is backlog, not overload.
//
// Read-only and idempotent; recompute after every accepted mutation.
func DetectOverloads(containers []domain.Container, items []domain.WorkItem, assignment domain.Assignment) []OverloadWarning {
	var warnings []OverloadWarning
	for _, c := range containers {
		if c.IsPool() {
			continue
		}
		u := Compute(c, items, assignment)
		overload := u.Allocated - u.Capacity
		if overload <= Epsilon {
			continue
		}
		severity := SeverityMedium
		if overload > c.Capacity*0.2 {
			severity = SeverityHigh
		}
		warnings = append(warnings, OverloadWarning{
			ContainerID:   c.ID,
			ContainerName: c.Name,
			Allocated:     u.Allocated,
			Capacity:      u.Capacity,
			Overload:      overload,
			Severity:      severity,
		})
	}

	sort.SliceStable(warnings, func(i, j int) bool {
		if warnings[i].Overload != warnings[j].Overload {
			return warnings[i].Overload > warnings[j].Overload
		}
		return warnings[i].ContainerName < warnings[j].ContainerName
	})

	return warnings
}
