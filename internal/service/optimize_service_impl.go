package service

import (
	"context"
	"fmt"

	"github.com/akulinich/ballast/internal/allocation"
	"github.com/akulinich/ballast/internal/contract"
	"github.com/akulinich/ballast/internal/db"
	"github.com/akulinich/ballast/internal/optimizer"
)

type optimizeService struct {
	src      PlanSourceRepos
	uow      db.UnitOfWork
	sessions *SessionRegistry
}

func NewOptimizeService(src PlanSourceRepos, uow db.UnitOfWork, sessions *SessionRegistry) OptimizeService {
	return &optimizeService{src: src, uow: uow, sessions: sessions}
}

func (s *optimizeService) Optimize(ctx context.Context, req contract.OptimizeRequest) (*contract.OptimizeOutcome, error) {
	sess, err := s.sessions.Get(ctx, s.src, req.PlanID)
	if err != nil {
		return nil, err
	}

	var tok allocation.Token
	if !req.DryRun {
		tok = sess.Begin()
	}
	snap := sess.Snapshot()

	result := optimizer.Optimize(snap.Items, snap.Containers, snap.Assignment, optimizer.Options{})

	outcome := &contract.OptimizeOutcome{
		Token:      tok,
		Candidate:  result.Assignment,
		Warnings:   result.Warnings,
		Degenerate: result.Degenerate,
		Metrics: contract.OptimizeMetrics{
			TotalPoints:        result.Metrics.TotalPoints,
			TotalCapacity:      result.Metrics.TotalCapacity,
			OverallUtilization: result.Metrics.OverallUtilization,
			BalanceScore:       result.Metrics.BalanceScore,
			PerContainer:       result.Metrics.PerContainer,
		},
	}

	byID := itemsByID(snap.Items)
	for _, item := range snap.Items {
		from := snap.Assignment.ContainerOf(item.ID)
		to := result.Assignment.ContainerOf(item.ID)
		if from != to {
			outcome.Moves = append(outcome.Moves, contract.ItemMove{Item: byID[item.ID], From: from, To: to})
		}
	}
	return outcome, nil
}

func (s *optimizeService) Accept(ctx context.Context, req contract.AcceptRequest) error {
	sess, ok := s.sessions.Peek(req.PlanID)
	if !ok {
		return fmt.Errorf("no open session for plan %s", req.PlanID)
	}
	if err := sess.Accept(req.Token, req.Candidate); err != nil {
		return err
	}

	if err := persistAssignments(ctx, s.uow, req.PlanID, sess.Snapshot()); err != nil {
		// The store already holds the candidate; drop the session so the
		// next access reloads the persisted state instead of exposing an
		// unsaved accept.
		s.sessions.Invalidate(req.PlanID)
		return err
	}
	return nil
}
