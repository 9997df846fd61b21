// Package optimizer computes replacement allocations that reduce overload
// and pack the most priority-weighted points. It is a bounded greedy
// heuristic, not an exact bin packer: dependency ordering biases placement
// but never blocks it, and the result is always a candidate the caller
// reviews and accepts explicitly.
package optimizer

import (
	"sort"

	"github.com/akulinich/ballast/internal/capacity"
	"github.com/akulinich/ballast/internal/domain"
)

// Options tunes a single optimizer run.
type Options struct {
	// Epsilon guards capacity comparisons; zero means capacity.Epsilon.
	Epsilon float64
}

func (o Options) epsilon() float64 {
	if o.Epsilon > 0 {
		return o.Epsilon
	}
	return capacity.Epsilon
}

// Result is a candidate allocation plus the diagnostics the caller needs
// to review it. The optimizer never mutates the store; the caller accepts
// the candidate via ReplaceAssignment or discards it.
type Result struct {
	Assignment domain.Assignment
	Metrics    Metrics
	Warnings   []capacity.OverloadWarning

	// Degenerate is set when the containers offer zero total capacity:
	// every item lands in the pool and the caller reports "no capacity
	// available" instead of failing.
	Degenerate bool
}

// Metrics summarizes how well the candidate packs the containers.
type Metrics struct {
	TotalPoints        float64
	TotalCapacity      float64
	OverallUtilization float64
	PerContainer       map[string]capacity.Usage
	// BalanceScore is 1 minus the variance of per-container utilization
	// (clamped to 1.0 each); 1.0 means a perfectly even spread.
	BalanceScore float64
}

// Optimize computes a candidate assignment for the given items over the
// real (non-pool) containers. The current assignment is only used as the
// fallback result for an empty item set; placement itself starts from a
// clean slate so stale manual placements cannot pin the heuristic.
func Optimize(items []domain.WorkItem, containers []domain.Container, current domain.Assignment, opts Options) Result {
	eps := opts.epsilon()

	real := realContainers(containers)

	if len(items) == 0 {
		return Result{
			Assignment: current.Clone(),
			Metrics:    computeMetrics(real, items, current.Clone()),
		}
	}

	var totalCapacity float64
	for _, c := range real {
		totalCapacity += c.Capacity
	}
	if totalCapacity <= eps {
		candidate := make(domain.Assignment, len(items))
		for _, item := range items {
			candidate[item.ID] = domain.UnassignedID
		}
		return Result{
			Assignment: candidate,
			Metrics:    computeMetrics(real, items, candidate),
			Degenerate: true,
		}
	}

	candidate := place(rankItems(items), real, eps)

	return Result{
		Assignment: candidate,
		Metrics:    computeMetrics(real, items, candidate),
		Warnings:   capacity.DetectOverloads(real, items, candidate),
	}
}

func realContainers(containers []domain.Container) []domain.Container {
	out := make([]domain.Container, 0, len(containers))
	for _, c := range containers {
		if !c.IsPool() {
			out = append(out, c)
		}
	}
	return out
}

// place runs the greedy pass. Items whose dependencies are not yet placed
// are deferred and retried once after the main pass; a second miss (cycles,
// dangling IDs) places them on priority order alone.
func place(ranked []domain.WorkItem, containers []domain.Container, eps float64) domain.Assignment {
	state := newPlacementState(containers)
	candidate := make(domain.Assignment, len(ranked))

	var deferred []domain.WorkItem
	for _, item := range ranked {
		if !state.dependenciesPlaced(item) {
			deferred = append(deferred, item)
			continue
		}
		candidate[item.ID] = state.placeItem(item, eps)
	}
	for _, item := range deferred {
		candidate[item.ID] = state.placeItem(item, eps)
	}

	return candidate
}

// rankItems orders items by priority rank, then points descending
// (largest-first reduces fragmentation), then ID for determinism.
func rankItems(items []domain.WorkItem) []domain.WorkItem {
	ranked := make([]domain.WorkItem, len(items))
	copy(ranked, items)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if ra, rb := domain.PriorityRank(a.Priority), domain.PriorityRank(b.Priority); ra != rb {
			return ra < rb
		}
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		return a.ID < b.ID
	})
	return ranked
}

func computeMetrics(containers []domain.Container, items []domain.WorkItem, assignment domain.Assignment) Metrics {
	m := Metrics{PerContainer: make(map[string]capacity.Usage, len(containers))}
	for i := range items {
		m.TotalPoints += items[i].Points
	}

	utilizations := make([]float64, 0, len(containers))
	for _, c := range containers {
		u := capacity.Compute(c, items, assignment)
		m.PerContainer[c.ID] = u
		m.TotalCapacity += c.Capacity
		ratio := 0.0
		if c.Capacity > capacity.Epsilon {
			ratio = u.Allocated / c.Capacity
		}
		if ratio > 1 {
			ratio = 1
		}
		utilizations = append(utilizations, ratio)
	}

	if m.TotalCapacity > capacity.Epsilon {
		m.OverallUtilization = m.TotalPoints / m.TotalCapacity * 100
	}
	m.BalanceScore = balanceScore(utilizations)
	return m
}

// balanceScore is 1 minus the population variance of the utilization
// ratios, floored at zero.
func balanceScore(utilizations []float64) float64 {
	if len(utilizations) == 0 {
		return 0
	}
	var mean float64
	for _, u := range utilizations {
		mean += u
	}
	mean /= float64(len(utilizations))

	var variance float64
	for _, u := range utilizations {
		d := u - mean
		variance += d * d
	}
	variance /= float64(len(utilizations))

	if score := 1 - variance; score > 0 {
		return score
	}
	return 0
}
