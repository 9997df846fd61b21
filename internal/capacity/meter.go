package capacity

import "github.com/akulinich/ballast/internal/domain"

// Thresholds configures workload classification for one person.
type Thresholds struct {
	// UnderutilizedPct is the utilization percentage below which a person
	// may be flagged underutilized.
	UnderutilizedPct float64
	// NoiseFloorPoints is the minimum available points required before
	// flagging; trivial slack is never "underutilized".
	NoiseFloorPoints float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		UnderutilizedPct: 70,
		NoiseFloorPoints: 5,
	}
}

// Workload is the computed load state of one person for the active window.
type Workload struct {
	Capacity        float64
	AssignedPoints  float64
	AvailablePoints float64
	// Utilization is the unrounded percentage.
	Utilization    float64
	Overloaded     bool
	Underutilized  bool
}

// UtilizationPct returns utilization rounded to the nearest integer.
func (w Workload) UtilizationPct() int {
	if w.Utilization < 0 {
		return 0
	}
	return int(w.Utilization + 0.5)
}

// ComputeWorkload sums the given items against a person's window capacity
// and classifies the result. Items are those assigned to the person within
// the window; done items count unless the caller filtered them (ActiveOnly).
func ComputeWorkload(windowCapacity float64, items []domain.WorkItem, th Thresholds) Workload {
	w := Workload{Capacity: windowCapacity}
	for i := range items {
		w.AssignedPoints += items[i].Points
	}
	w.AvailablePoints = w.Capacity - w.AssignedPoints
	if w.AvailablePoints < 0 {
		w.AvailablePoints = 0
	}
	if w.Capacity > Epsilon {
		w.Utilization = w.AssignedPoints / w.Capacity * 100
	}
	w.Overloaded = w.Utilization >= 100
	w.Underutilized = w.Utilization < th.UnderutilizedPct &&
		w.AvailablePoints > th.NoiseFloorPoints
	return w
}

// Breakdown groups a person's assigned points along the axes the workload
// view renders.
type Breakdown struct {
	ByStatus   map[domain.ItemStatus]float64
	ByPriority map[domain.Priority]float64
	ByProject  map[string]float64
}

// ComputeBreakdown aggregates assigned points by status, priority, and
// project label.
func ComputeBreakdown(items []domain.WorkItem) Breakdown {
	b := Breakdown{
		ByStatus:   make(map[domain.ItemStatus]float64),
		ByPriority: make(map[domain.Priority]float64),
		ByProject:  make(map[string]float64),
	}
	for i := range items {
		item := &items[i]
		b.ByStatus[item.Status] += item.Points
		b.ByPriority[item.Priority] += item.Points
		project := item.Project
		if project == "" {
			project = "(none)"
		}
		b.ByProject[project] += item.Points
	}
	return b
}
