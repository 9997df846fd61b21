// Package contract defines the request and response types exchanged
// between the CLI and the service layer. DTOs carry defaults via their
// constructors; validation happens in the service layer.
package contract

import (
	"github.com/akulinich/ballast/internal/capacity"
	"github.com/akulinich/ballast/internal/domain"
)

// BoardRequest asks for the planning board of one plan.
type BoardRequest struct {
	PlanID string
	// IncludeDone keeps completed items on the board. Capacity math
	// always counts them; this only affects what is listed.
	IncludeDone bool
}

func NewBoardRequest(planID string) BoardRequest {
	return BoardRequest{PlanID: planID, IncludeDone: true}
}

// Lane is one container column on the board plus its capacity readout.
type Lane struct {
	Container domain.Container
	Items     []domain.WorkItem
	Usage     capacity.Usage
}

// BoardView is the full board: ordered sprint lanes, the unassigned
// pool, overload warnings, and pace risks for the windowed sprints.
type BoardView struct {
	Plan       domain.Plan
	Lanes      []Lane
	Unassigned []domain.WorkItem
	Warnings   []capacity.OverloadWarning
	Risks      []capacity.SprintRisk
}

// MoveRequest places an item into a container at a position.
type MoveRequest struct {
	PlanID string
	ItemID string
	// ToContainer may be domain.UnassignedID to return the item to the pool.
	ToContainer string
	// Index is clamped to the lane length; -1 appends.
	Index int
}

func NewMoveRequest(planID, itemID, to string) MoveRequest {
	return MoveRequest{PlanID: planID, ItemID: itemID, ToContainer: to, Index: -1}
}
