package optimizer

import (
	"testing"
	"time"

	"github.com/akulinich/ballast/internal/capacity"
	"github.com/akulinich/ballast/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) *time.Time {
	t := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	return &t
}

func sprintWindow(id string, cap float64, start, end int) domain.Container {
	return domain.Container{
		ID: id, Name: id, Kind: domain.ContainerSprint,
		Capacity: cap, StartDate: day(start), EndDate: day(end),
	}
}

func feature(id string, points float64, p domain.Priority, deps ...string) domain.WorkItem {
	return domain.WorkItem{
		ID: id, Title: id, Kind: domain.ItemFeature,
		Status: domain.ItemTodo, Priority: p, Points: points,
		DependsOn: deps,
	}
}

func TestOptimize_EmptyItemsReturnsCurrentUnchanged(t *testing.T) {
	containers := []domain.Container{sprintWindow("s1", 20, 0, 13)}
	current := domain.Assignment{}

	res := Optimize(nil, containers, current, Options{})

	assert.False(t, res.Degenerate)
	assert.Empty(t, res.Assignment)
	assert.Empty(t, res.Warnings)
}

func TestOptimize_ZeroTotalCapacityIsDegenerate(t *testing.T) {
	containers := []domain.Container{
		sprintWindow("s1", 0, 0, 13),
		sprintWindow("s2", 0, 14, 27),
	}
	items := []domain.WorkItem{
		feature("f1", 5, domain.PriorityHigh),
		feature("f2", 3, domain.PriorityMedium),
		feature("f3", 8, domain.PriorityLow),
	}

	res := Optimize(items, containers, domain.Assignment{"f1": "s1"}, Options{})

	assert.True(t, res.Degenerate)
	require.Len(t, res.Assignment, 3)
	for id, target := range res.Assignment {
		assert.Equal(t, domain.UnassignedID, target, "item %s", id)
	}
}

func TestOptimize_PacksIntoFreestContainer(t *testing.T) {
	containers := []domain.Container{
		sprintWindow("s1", 10, 0, 13),
		sprintWindow("s2", 20, 14, 27),
	}
	items := []domain.WorkItem{feature("f1", 8, domain.PriorityHigh)}

	res := Optimize(items, containers, domain.Assignment{}, Options{})

	assert.Equal(t, "s2", res.Assignment["f1"], "most free capacity wins")
}

func TestOptimize_HighPriorityPlacedFirst(t *testing.T) {
	// One sprint, capacity 10. The critical item must get the room even
	// though the low item is listed first.
	containers := []domain.Container{sprintWindow("s1", 10, 0, 13)}
	items := []domain.WorkItem{
		feature("low", 8, domain.PriorityLow),
		feature("crit", 8, domain.PriorityCritical),
	}

	res := Optimize(items, containers, domain.Assignment{}, Options{})

	u := res.Metrics.PerContainer["s1"]
	assert.InDelta(t, 16, u.Allocated, 1e-9, "both placed, sprint overloads")
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "s1", res.Warnings[0].ContainerID)
}

func TestOptimize_OverloadMinimizedWhenNothingFits(t *testing.T) {
	containers := []domain.Container{
		sprintWindow("tight", 2, 0, 13),
		sprintWindow("roomy", 9, 14, 27),
	}
	items := []domain.WorkItem{
		feature("f1", 9, domain.PriorityHigh),
		feature("f2", 9, domain.PriorityHigh),
	}

	res := Optimize(items, containers, domain.Assignment{}, Options{})

	// First item fills roomy exactly; the second fits nowhere and must go
	// where the overload is smallest: roomy again would overload by 9,
	// tight only by 7.
	assert.Equal(t, "roomy", res.Assignment["f1"])
	assert.Equal(t, "tight", res.Assignment["f2"])
}

func TestOptimize_DependencyBiasesLaterSprint(t *testing.T) {
	containers := []domain.Container{
		sprintWindow("s1", 10, 0, 13),
		sprintWindow("s2", 10, 14, 27),
	}
	items := []domain.WorkItem{
		feature("base", 6, domain.PriorityCritical),
		feature("dependent", 6, domain.PriorityCritical, "base"),
	}

	res := Optimize(items, containers, domain.Assignment{}, Options{})

	assert.Equal(t, "s1", res.Assignment["base"])
	assert.Equal(t, "s2", res.Assignment["dependent"], "scheduled after its dependency's window")
}

func TestOptimize_DanglingDependencyStillPlaced(t *testing.T) {
	// A dependency on an unknown item is deferred once, then placed on
	// priority order alone, never dropped.
	containers := []domain.Container{sprintWindow("s1", 20, 0, 13)}
	items := []domain.WorkItem{feature("f1", 5, domain.PriorityHigh, "ghost")}

	res := Optimize(items, containers, domain.Assignment{}, Options{})

	assert.Equal(t, "s1", res.Assignment["f1"])
}

func TestOptimize_DependencyCycleDegradesToPriorityOrder(t *testing.T) {
	containers := []domain.Container{sprintWindow("s1", 20, 0, 13)}
	items := []domain.WorkItem{
		feature("a", 5, domain.PriorityHigh, "b"),
		feature("b", 5, domain.PriorityHigh, "a"),
	}

	res := Optimize(items, containers, domain.Assignment{}, Options{})

	assert.Equal(t, "s1", res.Assignment["a"])
	assert.Equal(t, "s1", res.Assignment["b"])
}

func TestOptimize_Metrics(t *testing.T) {
	containers := []domain.Container{
		sprintWindow("s1", 10, 0, 13),
		sprintWindow("s2", 10, 14, 27),
	}
	items := []domain.WorkItem{
		feature("f1", 5, domain.PriorityHigh),
		feature("f2", 5, domain.PriorityHigh),
	}

	res := Optimize(items, containers, domain.Assignment{}, Options{})

	assert.Equal(t, 10.0, res.Metrics.TotalPoints)
	assert.Equal(t, 20.0, res.Metrics.TotalCapacity)
	assert.InDelta(t, 50, res.Metrics.OverallUtilization, 1e-9)
	assert.InDelta(t, 1.0, res.Metrics.BalanceScore, 1e-9, "an even split is perfectly balanced")
	require.Len(t, res.Metrics.PerContainer, 2)
}

func TestOptimize_DoesNotMutateInputs(t *testing.T) {
	containers := []domain.Container{sprintWindow("s1", 20, 0, 13)}
	items := []domain.WorkItem{feature("f1", 5, domain.PriorityHigh)}
	current := domain.Assignment{"f1": domain.UnassignedID}

	Optimize(items, containers, current, Options{})

	assert.Equal(t, domain.UnassignedID, current["f1"])
	assert.Equal(t, "f1", items[0].ID)
}

func TestOptimize_PoolContainerIgnoredAsTarget(t *testing.T) {
	containers := []domain.Container{
		{ID: domain.UnassignedID, Name: "Backlog", Kind: domain.ContainerPool, Capacity: 999},
		sprintWindow("s1", 20, 0, 13),
	}
	items := []domain.WorkItem{feature("f1", 5, domain.PriorityHigh)}

	res := Optimize(items, containers, domain.Assignment{}, Options{})

	assert.Equal(t, "s1", res.Assignment["f1"], "pool capacity never attracts placement")
}

func TestOptimize_WarningsMatchDetector(t *testing.T) {
	containers := []domain.Container{sprintWindow("s1", 4, 0, 13)}
	items := []domain.WorkItem{
		feature("f1", 3, domain.PriorityHigh),
		feature("f2", 3, domain.PriorityHigh),
	}

	res := Optimize(items, containers, domain.Assignment{}, Options{})

	expected := capacity.DetectOverloads([]domain.Container{containers[0]}, items, res.Assignment)
	assert.Equal(t, expected, res.Warnings)
}
