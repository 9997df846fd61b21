package capacity

import (
	"sort"

	"github.com/akulinich/ballast/internal/domain"
)

// DefaultMaxSuggestions bounds the suggestion list when the caller passes
// a non-positive max.
const DefaultMaxSuggestions = 5

// Suggest ranks unassigned items that fit within the available points:
// priority descending, then points descending (consume slack with the
// biggest valuable work first), then ID for determinism. Returns an empty
// list when nothing fits.
func Suggest(availablePoints float64, unassigned []domain.WorkItem, maxSuggestions int) []domain.WorkItem {
	if maxSuggestions <= 0 {
		maxSuggestions = DefaultMaxSuggestions
	}

	fitting := make([]domain.WorkItem, 0, len(unassigned))
	for _, item := range unassigned {
		if item.Points <= availablePoints+Epsilon {
			fitting = append(fitting, item)
		}
	}

	sort.SliceStable(fitting, func(i, j int) bool {
		a, b := fitting[i], fitting[j]
		if ra, rb := domain.PriorityRank(a.Priority), domain.PriorityRank(b.Priority); ra != rb {
			return ra < rb
		}
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		return a.ID < b.ID
	})

	if len(fitting) > maxSuggestions {
		fitting = fitting[:maxSuggestions]
	}
	return fitting
}
