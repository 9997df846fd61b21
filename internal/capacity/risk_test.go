package capacity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akulinich/ballast/internal/domain"
)

func windowedSprint(id, name string, start, end time.Time) domain.Container {
	return domain.Container{
		ID:        id,
		Name:      name,
		Kind:      domain.ContainerSprint,
		Capacity:  20,
		StartDate: &start,
		EndDate:   &end,
	}
}

func TestComputeSprintRisk_Pace(t *testing.T) {
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 10)
	sprint := windowedSprint("s1", "Sprint 1", start, end)

	items := func(donePts, todoPts float64) []domain.WorkItem {
		return []domain.WorkItem{
			{ID: "a", Points: donePts, Status: domain.ItemDone},
			{ID: "b", Points: todoPts, Status: domain.ItemTodo},
		}
	}

	tests := []struct {
		name  string
		now   time.Time
		items []domain.WorkItem
		want  RiskLevel
	}{
		{
			name:  "matching pace is on track",
			now:   start.AddDate(0, 0, 5),
			items: items(10, 10),
			want:  RiskOnTrack,
		},
		{
			name:  "moderate lag is at risk",
			now:   start.AddDate(0, 0, 8),
			items: items(10, 10),
			want:  RiskAtRisk,
		},
		{
			name:  "nothing done late in the window is critical",
			now:   start.AddDate(0, 0, 6),
			items: items(0, 20),
			want:  RiskCritical,
		},
		{
			name:  "window over with work remaining is critical",
			now:   end.AddDate(0, 0, 1),
			items: items(10, 10),
			want:  RiskCritical,
		},
		{
			name:  "everything done stays on track past the end",
			now:   end.AddDate(0, 0, 1),
			items: []domain.WorkItem{{ID: "a", Points: 20, Status: domain.ItemDone}},
			want:  RiskOnTrack,
		},
		{
			name:  "empty sprint is on track",
			now:   start.AddDate(0, 0, 9),
			items: nil,
			want:  RiskOnTrack,
		},
		{
			name:  "before the window starts is on track",
			now:   start.AddDate(0, 0, -2),
			items: items(0, 20),
			want:  RiskOnTrack,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := ComputeSprintRisk(tt.now, sprint, tt.items)
			require.True(t, ok)
			assert.Equal(t, tt.want, r.Level)
		})
	}
}

func TestComputeSprintRisk_NeedsWindow(t *testing.T) {
	now := time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC)

	_, ok := ComputeSprintRisk(now, domain.Container{ID: "s1", Kind: domain.ContainerSprint}, nil)
	assert.False(t, ok)

	start := now.AddDate(0, 0, -1)
	inverted := windowedSprint("s2", "Sprint 2", start, start.AddDate(0, 0, -5))
	_, ok = ComputeSprintRisk(now, inverted, nil)
	assert.False(t, ok)
}

func TestComputeSprintRisk_Readout(t *testing.T) {
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 10)
	now := start.AddDate(0, 0, 4)
	sprint := windowedSprint("s1", "Sprint 1", start, end)

	r, ok := ComputeSprintRisk(now, sprint, []domain.WorkItem{
		{ID: "a", Points: 5, Status: domain.ItemDone},
		{ID: "b", Points: 15, Status: domain.ItemTodo},
	})
	require.True(t, ok)

	assert.InDelta(t, 25, r.ProgressPct, 1e-9)
	assert.InDelta(t, 40, r.ElapsedPct, 1e-9)
	assert.Equal(t, 6, r.DaysLeft)
	assert.InDelta(t, 5, r.DonePoints, 1e-9)
	assert.InDelta(t, 20, r.TotalPoints, 1e-9)
}

func TestAssessSprints_SortsWorstFirstAndSkipsUnwindowed(t *testing.T) {
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 10)
	now := start.AddDate(0, 0, 8)

	healthy := windowedSprint("s1", "Alpha", start, end)
	lagging := windowedSprint("s2", "Beta", start, end)
	person := domain.Container{ID: "p1", Name: "Dana", Kind: domain.ContainerPerson, Capacity: 40}
	undated := domain.Container{ID: "s3", Name: "Backlog sprint", Kind: domain.ContainerSprint}

	items := []domain.WorkItem{
		{ID: "a", Points: 16, Status: domain.ItemDone},
		{ID: "b", Points: 4, Status: domain.ItemTodo},
		{ID: "c", Points: 20, Status: domain.ItemTodo},
	}
	assignment := domain.Assignment{"a": "s1", "b": "s1", "c": "s2"}

	risks := AssessSprints(now, []domain.Container{healthy, lagging, person, undated}, items, assignment)

	require.Len(t, risks, 2)
	assert.Equal(t, "Beta", risks[0].ContainerName)
	assert.Equal(t, RiskCritical, risks[0].Level)
	assert.Equal(t, "Alpha", risks[1].ContainerName)
	assert.Equal(t, RiskOnTrack, risks[1].Level)
}
