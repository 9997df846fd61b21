package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/akulinich/ballast/internal/allocation"
	"github.com/akulinich/ballast/internal/capacity"
	"github.com/akulinich/ballast/internal/contract"
	"github.com/akulinich/ballast/internal/db"
	"github.com/akulinich/ballast/internal/domain"
	"github.com/akulinich/ballast/internal/repository"
)

type boardService struct {
	src      PlanSourceRepos
	uow      db.UnitOfWork
	sessions *SessionRegistry
}

func NewBoardService(src PlanSourceRepos, uow db.UnitOfWork, sessions *SessionRegistry) BoardService {
	return &boardService{src: src, uow: uow, sessions: sessions}
}

func (s *boardService) GetBoard(ctx context.Context, req contract.BoardRequest) (*contract.BoardView, error) {
	sess, err := s.sessions.Get(ctx, s.src, req.PlanID)
	if err != nil {
		return nil, err
	}
	plan, err := s.src.Plans.GetByID(ctx, req.PlanID)
	if err != nil {
		return nil, fmt.Errorf("loading plan %s: %w", req.PlanID, err)
	}
	view := buildBoardView(*plan, sess.Snapshot(), time.Now().UTC(), req.IncludeDone)
	return view, nil
}

func (s *boardService) MoveItem(ctx context.Context, req contract.MoveRequest) (*contract.BoardView, error) {
	sess, err := s.sessions.Get(ctx, s.src, req.PlanID)
	if err != nil {
		return nil, err
	}

	snap := sess.Snapshot()
	from := snap.Assignment.ContainerOf(req.ItemID)
	index := req.Index
	if index < 0 {
		index = math.MaxInt32
	}

	cmd := allocation.MoveCommand{ItemID: req.ItemID, From: from, To: req.ToContainer, Index: index}
	if err := sess.Move(cmd); err != nil {
		return nil, err
	}

	if err := persistAssignments(ctx, s.uow, req.PlanID, sess.Snapshot()); err != nil {
		// The move landed in the store but not in storage; drop the session
		// so the next access reloads the persisted state.
		s.sessions.Invalidate(req.PlanID)
		return nil, err
	}

	plan, err := s.src.Plans.GetByID(ctx, req.PlanID)
	if err != nil {
		return nil, fmt.Errorf("loading plan %s: %w", req.PlanID, err)
	}
	return buildBoardView(*plan, sess.Snapshot(), time.Now().UTC(), true), nil
}

// persistAssignments writes the snapshot's placements atomically and bumps
// the plan's updated_at.
func persistAssignments(ctx context.Context, uow db.UnitOfWork, planID string, snap allocation.Snapshot) error {
	records := snapshotRecords(snap)
	return uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		assigns := repository.NewSQLiteAssignmentRepo(tx)
		if err := assigns.Replace(ctx, planID, records); err != nil {
			return fmt.Errorf("saving assignments for plan %s: %w", planID, err)
		}
		plans := repository.NewSQLitePlanRepo(tx)
		if err := plans.Touch(ctx, planID); err != nil {
			return fmt.Errorf("touching plan %s: %w", planID, err)
		}
		return nil
	})
}

func buildBoardView(plan domain.Plan, snap allocation.Snapshot, now time.Time, includeDone bool) *contract.BoardView {
	byID := itemsByID(snap.Items)
	usages := capacity.ComputeAll(snap.Containers, snap.Items, snap.Assignment)

	view := &contract.BoardView{Plan: plan}
	for _, c := range snap.Containers {
		if c.IsPool() {
			continue
		}
		lane := contract.Lane{Container: c, Usage: usages[c.ID]}
		for _, itemID := range snap.Order[c.ID] {
			item := byID[itemID]
			if !includeDone && item.Status == domain.ItemDone {
				continue
			}
			lane.Items = append(lane.Items, item)
		}
		view.Lanes = append(view.Lanes, lane)
	}
	for _, itemID := range snap.Order[domain.UnassignedID] {
		item := byID[itemID]
		if !includeDone && item.Status == domain.ItemDone {
			continue
		}
		view.Unassigned = append(view.Unassigned, item)
	}
	view.Warnings = capacity.DetectOverloads(snap.Containers, snap.Items, snap.Assignment)
	view.Risks = capacity.AssessSprints(now, snap.Containers, snap.Items, snap.Assignment)
	return view
}
