package capacity

import (
	"testing"

	"github.com/akulinich/ballast/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectOverloads_SortedByOverloadDescending(t *testing.T) {
	containers := []domain.Container{
		sprint("s1", 20), // overload 4
		sprint("s2", 10), // overload 8
		sprint("s3", 30), // under capacity
	}
	items := []domain.WorkItem{
		item("a", 24), item("b", 18), item("c", 5),
	}
	asg := domain.Assignment{"a": "s1", "b": "s2", "c": "s3"}

	warnings := DetectOverloads(containers, items, asg)

	require.Len(t, warnings, 2)
	assert.Equal(t, "s2", warnings[0].ContainerID)
	assert.Equal(t, 8.0, warnings[0].Overload)
	assert.Equal(t, "s1", warnings[1].ContainerID)
	assert.Equal(t, 4.0, warnings[1].Overload)
}

func TestDetectOverloads_TieBrokenByName(t *testing.T) {
	beta := sprint("id-2", 10)
	beta.Name = "Beta"
	alpha := sprint("id-1", 10)
	alpha.Name = "Alpha"

	items := []domain.WorkItem{item("a", 14), item("b", 14)}
	asg := domain.Assignment{"a": "id-2", "b": "id-1"}

	warnings := DetectOverloads([]domain.Container{beta, alpha}, items, asg)

	require.Len(t, warnings, 2)
	assert.Equal(t, "Alpha", warnings[0].ContainerName)
	assert.Equal(t, "Beta", warnings[1].ContainerName)
}

func TestDetectOverloads_Severity(t *testing.T) {
	containers := []domain.Container{
		sprint("mild", 100),  // overload 10 = 10% -> medium
		sprint("severe", 10), // overload 5 = 50% -> high
	}
	items := []domain.WorkItem{item("a", 110), item("b", 15)}
	asg := domain.Assignment{"a": "mild", "b": "severe"}

	warnings := DetectOverloads(containers, items, asg)

	require.Len(t, warnings, 2)
	for _, w := range warnings {
		switch w.ContainerID {
		case "mild":
			assert.Equal(t, SeverityMedium, w.Severity)
		case "severe":
			assert.Equal(t, SeverityHigh, w.Severity)
		}
	}
}

func TestDetectOverloads_ExactCapacityIsQuiet(t *testing.T) {
	containers := []domain.Container{sprint("s1", 20)}
	items := []domain.WorkItem{item("a", 20)}
	asg := domain.Assignment{"a": "s1"}

	assert.Empty(t, DetectOverloads(containers, items, asg))
}

func TestDetectOverloads_PoolNeverWarns(t *testing.T) {
	pool := domain.Container{ID: domain.UnassignedID, Name: "Backlog", Kind: domain.ContainerPool}
	items := []domain.WorkItem{item("a", 50)}
	asg := domain.Assignment{"a": domain.UnassignedID}

	assert.Empty(t, DetectOverloads([]domain.Container{pool}, items, asg))
}

func TestDetectOverloads_Idempotent(t *testing.T) {
	containers := []domain.Container{sprint("s1", 20), sprint("s2", 5)}
	items := []domain.WorkItem{item("a", 24), item("b", 9)}
	asg := domain.Assignment{"a": "s1", "b": "s2"}

	first := DetectOverloads(containers, items, asg)
	second := DetectOverloads(containers, items, asg)

	assert.Equal(t, first, second)
}
