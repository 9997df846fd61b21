package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/akulinich/ballast/internal/db"
	"github.com/akulinich/ballast/internal/domain"
)

// workItemColumns is the canonical SELECT column list for work_items.
const workItemColumns = `id, plan_id, title, kind, status, priority, points, project, created_at, updated_at`

// SQLiteWorkItemRepo implements WorkItemRepo over a SQLite database.
// Dependency edges live in their own table; ListByPlan joins them in so
// the optimizer sees complete items in one read.
type SQLiteWorkItemRepo struct {
	db   db.DBTX
	deps DependencyRepo
}

// NewSQLiteWorkItemRepo creates a new SQLiteWorkItemRepo.
func NewSQLiteWorkItemRepo(database db.DBTX, deps DependencyRepo) *SQLiteWorkItemRepo {
	return &SQLiteWorkItemRepo{db: database, deps: deps}
}

func (r *SQLiteWorkItemRepo) Create(ctx context.Context, w *domain.WorkItem) error {
	query := `INSERT INTO work_items (` + workItemColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		w.PlanID,
		w.Title,
		string(w.Kind),
		string(w.Status),
		string(w.Priority),
		w.Points,
		w.Project,
		w.CreatedAt.Format(time.RFC3339Nano),
		w.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting work item: %w", err)
	}
	for _, dep := range w.DependsOn {
		if err := r.deps.Add(ctx, w.ID, dep); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteWorkItemRepo) GetByID(ctx context.Context, id string) (*domain.WorkItem, error) {
	query := `SELECT ` + workItemColumns + ` FROM work_items WHERE id = ?`
	w, err := scanWorkItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("loading work item %s: %w", id, err)
	}
	depsByItem, err := r.deps.ListByPlan(ctx, w.PlanID)
	if err != nil {
		return nil, err
	}
	w.DependsOn = depsByItem[w.ID]
	return w, nil
}

func (r *SQLiteWorkItemRepo) ListByPlan(ctx context.Context, planID string) ([]domain.WorkItem, error) {
	query := `SELECT ` + workItemColumns + ` FROM work_items WHERE plan_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing work items by plan: %w", err)
	}
	defer rows.Close()

	var items []domain.WorkItem
	for rows.Next() {
		w, err := scanWorkItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning work item: %w", err)
		}
		items = append(items, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	depsByItem, err := r.deps.ListByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].DependsOn = depsByItem[items[i].ID]
	}
	return items, nil
}

func (r *SQLiteWorkItemRepo) Update(ctx context.Context, w *domain.WorkItem) error {
	query := `UPDATE work_items SET title = ?, kind = ?, status = ?, priority = ?,
		points = ?, project = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		w.Title,
		string(w.Kind),
		string(w.Status),
		string(w.Priority),
		w.Points,
		w.Project,
		nowUTC(),
		w.ID,
	)
	if err != nil {
		return fmt.Errorf("updating work item %s: %w", w.ID, err)
	}
	return nil
}

func (r *SQLiteWorkItemRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM work_items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting work item %s: %w", id, err)
	}
	return nil
}

func scanWorkItem(row rowScanner) (*domain.WorkItem, error) {
	var w domain.WorkItem
	var kind, status, priority, createdAt, updatedAt string
	if err := row.Scan(
		&w.ID, &w.PlanID, &w.Title, &kind, &status, &priority,
		&w.Points, &w.Project, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	w.Kind = domain.ItemKind(kind)
	w.Status = domain.ItemStatus(status)
	w.Priority = domain.Priority(priority)
	w.CreatedAt = parseTime(createdAt)
	w.UpdatedAt = parseTime(updatedAt)
	return &w, nil
}
