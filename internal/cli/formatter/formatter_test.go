package formatter

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akulinich/ballast/internal/capacity"
	"github.com/akulinich/ballast/internal/contract"
	"github.com/akulinich/ballast/internal/domain"
)

// ansiPattern matches ANSI escape sequences for stripping before comparison.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestPoints_DropsWholeFraction(t *testing.T) {
	assert.Equal(t, "8", Points(8))
	assert.Equal(t, "2.5", Points(2.5))
	assert.Equal(t, "0", Points(0))
}

func TestRenderMeter_CapsBarButKeepsLabel(t *testing.T) {
	got := stripANSI(RenderMeter(120, 10))

	assert.Contains(t, got, "120%")
	assert.Contains(t, got, strings.Repeat(filledBlock, 10))
	assert.NotContains(t, got, emptyBlock)
}

func TestRenderMeter_EmptyAtZero(t *testing.T) {
	got := stripANSI(RenderMeter(0, 10))

	assert.Contains(t, got, "0%")
	assert.NotContains(t, got, filledBlock)
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	got := stripANSI(RenderTable(
		[]string{"Name", "Pts"},
		[][]string{{"Auth flow", "8"}, {"Fix", "1"}},
	))

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Name")
	assert.Contains(t, lines[2], "Auth flow")
	// The Pts column starts at the same offset in every row.
	assert.Equal(t, strings.Index(lines[0], "Pts"), strings.Index(lines[2], "8"))
}

func TestFormatBoard_ListsLanesPoolAndWarnings(t *testing.T) {
	view := &contract.BoardView{
		Plan: domain.Plan{Name: "Q2 PI"},
		Lanes: []contract.Lane{
			{
				Container: domain.Container{ID: "s1", Name: "Sprint 1", Capacity: 20},
				Items: []domain.WorkItem{
					{ID: "t1", Title: "Auth flow", Points: 8, Priority: domain.PriorityHigh},
				},
				Usage: capacity.Usage{ContainerID: "s1", Allocated: 24, Capacity: 20, Utilization: 120, Overloaded: true},
			},
		},
		Unassigned: []domain.WorkItem{
			{ID: "t2", Title: "Settings page", Points: 5, Priority: domain.PriorityLow},
		},
		Warnings: []capacity.OverloadWarning{
			{ContainerID: "s1", ContainerName: "Sprint 1", Allocated: 24, Capacity: 20, Overload: 4, Severity: capacity.SeverityMedium},
		},
	}

	got := stripANSI(FormatBoard(view))

	assert.Contains(t, got, "Q2 PI")
	assert.Contains(t, got, "Sprint 1")
	assert.Contains(t, got, "Auth flow")
	assert.Contains(t, got, "Settings page")
	assert.Contains(t, got, "24/20 pts")
	assert.Contains(t, got, "+4")
	assert.Contains(t, got, "MEDIUM")
}

func TestFormatBoard_MarksSprintPace(t *testing.T) {
	view := &contract.BoardView{
		Plan: domain.Plan{Name: "Q2 PI"},
		Lanes: []contract.Lane{
			{Container: domain.Container{ID: "s1", Name: "Sprint 1", Capacity: 20}},
			{Container: domain.Container{ID: "s2", Name: "Sprint 2", Capacity: 20}},
		},
		Risks: []capacity.SprintRisk{
			{ContainerID: "s1", ContainerName: "Sprint 1", Level: capacity.RiskCritical},
			{ContainerID: "s2", ContainerName: "Sprint 2", Level: capacity.RiskOnTrack},
		},
	}

	got := stripANSI(FormatBoard(view))

	lines := strings.Split(got, "\n")
	var sprint1, sprint2 string
	for _, line := range lines {
		if strings.HasPrefix(line, "Sprint 1") {
			sprint1 = line
		}
		if strings.HasPrefix(line, "Sprint 2") {
			sprint2 = line
		}
	}
	assert.Contains(t, sprint1, "behind")
	assert.Contains(t, sprint2, "on track")
}

func TestFormatWorkload_ShowsMeterAndSuggestions(t *testing.T) {
	view := &contract.WorkloadView{
		Person: domain.Container{ID: "dev1", Name: "Dana", Kind: domain.ContainerPerson, Capacity: 40},
		Workload: capacity.Workload{
			Capacity: 40, AssignedPoints: 25, AvailablePoints: 15,
			Utilization: 62.5, Underutilized: true,
		},
		Assigned: []domain.WorkItem{
			{ID: "t5", Title: "Checkout story", Points: 25, Kind: domain.ItemStory},
		},
		Breakdown: capacity.Breakdown{
			ByStatus:   map[domain.ItemStatus]float64{domain.ItemTodo: 25},
			ByPriority: map[domain.Priority]float64{domain.PriorityMedium: 25},
			ByProject:  map[string]float64{"billing": 25},
		},
		Suggestions: []domain.WorkItem{
			{ID: "t9", Title: "Search index", Points: 8},
		},
	}

	got := stripANSI(FormatWorkload(view))

	assert.Contains(t, got, "DANA")
	assert.Contains(t, got, "63%")
	assert.Contains(t, got, "Room for 15 more pts")
	assert.Contains(t, got, "Stories")
	assert.Contains(t, got, "Checkout story")
	assert.Contains(t, got, "billing")
	assert.Contains(t, got, "Could pick up")
	assert.Contains(t, got, "Search index")
}

func TestFormatOptimizeOutcome_RendersMoves(t *testing.T) {
	outcome := &contract.OptimizeOutcome{
		Candidate: domain.Assignment{"t1": "s1"},
		Moves: []contract.ItemMove{
			{
				Item: domain.WorkItem{ID: "t1", Title: "Auth flow", Points: 8},
				From: domain.UnassignedID,
				To:   "s1",
			},
		},
		Metrics: contract.OptimizeMetrics{
			TotalPoints: 8, TotalCapacity: 20, OverallUtilization: 40, BalanceScore: 0.95,
		},
	}

	got := stripANSI(FormatOptimizeOutcome(outcome, map[string]string{"s1": "Sprint 1"}))

	assert.Contains(t, got, "REBALANCE")
	assert.Contains(t, got, "Auth flow")
	assert.Contains(t, got, "(unassigned)")
	assert.Contains(t, got, "Sprint 1")
	assert.Contains(t, got, "0.95")
}

func TestFormatOptimizeOutcome_NoMoves(t *testing.T) {
	outcome := &contract.OptimizeOutcome{
		Metrics: contract.OptimizeMetrics{BalanceScore: 1},
	}

	got := stripANSI(FormatOptimizeOutcome(outcome, nil))

	assert.Contains(t, got, "nothing to move")
}
