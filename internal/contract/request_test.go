package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akulinich/ballast/internal/domain"
)

func TestNewBoardRequest_IncludesDoneByDefault(t *testing.T) {
	req := NewBoardRequest("p1")

	assert.Equal(t, "p1", req.PlanID)
	assert.True(t, req.IncludeDone)
}

func TestNewMoveRequest_AppendsByDefault(t *testing.T) {
	req := NewMoveRequest("p1", "t1", domain.UnassignedID)

	assert.Equal(t, -1, req.Index)
	assert.Equal(t, domain.UnassignedID, req.ToContainer)
}

func TestNewWorkloadRequest_LeavesSuggestionCapToConfig(t *testing.T) {
	req := NewWorkloadRequest("p1", "dev1")

	assert.Zero(t, req.MaxSuggestions)
}
