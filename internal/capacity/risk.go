package capacity

import (
	"math"
	"sort"
	"time"

	"github.com/akulinich/ballast/internal/domain"
)

type RiskLevel string

const (
	RiskOnTrack  RiskLevel = "on_track"
	RiskAtRisk   RiskLevel = "at_risk"
	RiskCritical RiskLevel = "critical"
)

// Pace bands: how far completed progress may trail the elapsed share of
// the window before the sprint is flagged.
const (
	atRiskLagPct   = 25.0
	criticalLagPct = 50.0
)

// SprintRisk classifies one sprint window by pace: done points measured
// against the elapsed share of the window.
type SprintRisk struct {
	ContainerID   string
	ContainerName string
	Level         RiskLevel
	DonePoints    float64
	TotalPoints   float64
	// ProgressPct is done / total in percent; 100 for an empty sprint.
	ProgressPct float64
	// ElapsedPct is the share of the window already behind us, clamped
	// to [0, 100].
	ElapsedPct float64
	DaysLeft   int
}

// ComputeSprintRisk classifies a single sprint. Returns false when the
// container has no complete time window; risk is a pace readout and needs
// both endpoints.
func ComputeSprintRisk(now time.Time, c domain.Container, assigned []domain.WorkItem) (SprintRisk, bool) {
	if c.StartDate == nil || c.EndDate == nil || !c.EndDate.After(*c.StartDate) {
		return SprintRisk{}, false
	}

	r := SprintRisk{ContainerID: c.ID, ContainerName: c.Name, Level: RiskOnTrack}
	for _, item := range assigned {
		r.TotalPoints += item.Points
		if item.Status == domain.ItemDone {
			r.DonePoints += item.Points
		}
	}

	if r.TotalPoints > Epsilon {
		r.ProgressPct = r.DonePoints / r.TotalPoints * 100
	} else {
		r.ProgressPct = 100
	}

	window := c.EndDate.Sub(*c.StartDate)
	r.ElapsedPct = clampPct(now.Sub(*c.StartDate).Hours() / window.Hours() * 100)
	if daysLeft := int(math.Ceil(c.EndDate.Sub(now).Hours() / 24)); daysLeft > 0 {
		r.DaysLeft = daysLeft
	}

	remaining := r.TotalPoints - r.DonePoints
	switch {
	case remaining <= Epsilon:
		r.Level = RiskOnTrack
	case !now.Before(*c.EndDate):
		// Window over, work remains.
		r.Level = RiskCritical
	default:
		switch lag := r.ElapsedPct - r.ProgressPct; {
		case lag >= criticalLagPct:
			r.Level = RiskCritical
		case lag >= atRiskLagPct:
			r.Level = RiskAtRisk
		default:
			r.Level = RiskOnTrack
		}
	}
	return r, true
}

// AssessSprints classifies every windowed sprint, sorted worst first,
// name ascending on ties. Person and pool containers carry no window
// pace and are skipped.
func AssessSprints(now time.Time, containers []domain.Container, items []domain.WorkItem, assignment domain.Assignment) []SprintRisk {
	byID := make(map[string]domain.WorkItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	var risks []SprintRisk
	for _, c := range containers {
		if c.IsPool() || c.Kind != domain.ContainerSprint {
			continue
		}
		var assigned []domain.WorkItem
		for _, itemID := range assignment.ItemsIn(c.ID) {
			assigned = append(assigned, byID[itemID])
		}
		if r, ok := ComputeSprintRisk(now, c, assigned); ok {
			risks = append(risks, r)
		}
	}

	sort.SliceStable(risks, func(i, j int) bool {
		if risks[i].Level != risks[j].Level {
			return riskRank(risks[i].Level) < riskRank(risks[j].Level)
		}
		return risks[i].ContainerName < risks[j].ContainerName
	})
	return risks
}

func riskRank(l RiskLevel) int {
	switch l {
	case RiskCritical:
		return 0
	case RiskAtRisk:
		return 1
	default:
		return 2
	}
}

func clampPct(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
