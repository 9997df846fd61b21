package allocation

import (
	"fmt"
	"sort"
	"strings"
)

// PreconditionError rejects a single-item command referencing an unknown
// item or container. The store is untouched when this is returned.
type PreconditionError struct {
	Kind string // "item" or "container"
	ID   string
}

func (e *PreconditionError) Error() string {
	if e.Kind == "placement" {
		return fmt.Sprintf("item %q is not in the given source container", e.ID)
	}
	return fmt.Sprintf("unknown %s %q", e.Kind, e.ID)
}

// ValidationError rejects a bulk assignment that is not a total function
// over the store's items. Nothing is applied when this is returned.
type ValidationError struct {
	// MissingItems are item IDs the store knows but the candidate omits.
	MissingItems []string
	// UnknownItems are candidate item IDs the store has never seen.
	UnknownItems []string
	// UnknownContainers are candidate targets that are not real containers
	// and not the unassigned pool.
	UnknownContainers []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.MissingItems) > 0 {
		parts = append(parts, "missing items "+joinSorted(e.MissingItems))
	}
	if len(e.UnknownItems) > 0 {
		parts = append(parts, "unknown items "+joinSorted(e.UnknownItems))
	}
	if len(e.UnknownContainers) > 0 {
		parts = append(parts, "unknown containers "+joinSorted(e.UnknownContainers))
	}
	if len(parts) == 0 {
		return "invalid assignment"
	}
	return "invalid assignment: " + strings.Join(parts, "; ")
}

func (e *ValidationError) empty() bool {
	return len(e.MissingItems) == 0 && len(e.UnknownItems) == 0 && len(e.UnknownContainers) == 0
}

func joinSorted(ids []string) string {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)
	return strings.Join(sorted, ", ")
}
