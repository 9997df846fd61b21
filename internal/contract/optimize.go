package contract

import (
	"github.com/akulinich/ballast/internal/allocation"
	"github.com/akulinich/ballast/internal/capacity"
	"github.com/akulinich/ballast/internal/domain"
)

// OptimizeRequest asks for a rebalanced assignment candidate.
type OptimizeRequest struct {
	PlanID string
	// DryRun computes the candidate without opening an acceptance window.
	DryRun bool
}

func NewOptimizeRequest(planID string) OptimizeRequest {
	return OptimizeRequest{PlanID: planID}
}

// ItemMove describes one difference between the current assignment and
// the candidate.
type ItemMove struct {
	Item domain.WorkItem
	From string
	To   string
}

// OptimizeOutcome carries the candidate, the moves it implies, and the
// token required to accept it. Token is zero on a dry run.
type OptimizeOutcome struct {
	Token      allocation.Token
	Candidate  domain.Assignment
	Moves      []ItemMove
	Metrics    OptimizeMetrics
	Warnings   []capacity.OverloadWarning
	Degenerate bool
}

// OptimizeMetrics summarizes the candidate for display.
type OptimizeMetrics struct {
	TotalPoints        float64
	TotalCapacity      float64
	OverallUtilization float64
	BalanceScore       float64
	PerContainer       map[string]capacity.Usage
}

// AcceptRequest applies a previously computed candidate.
type AcceptRequest struct {
	PlanID    string
	Token     allocation.Token
	Candidate domain.Assignment
}
