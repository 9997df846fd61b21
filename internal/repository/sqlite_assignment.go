package repository

import (
	"context"
	"fmt"

	"github.com/akulinich/ballast/internal/db"
)

// SQLiteAssignmentRepo implements AssignmentRepo over a SQLite database.
type SQLiteAssignmentRepo struct {
	db db.DBTX
}

// NewSQLiteAssignmentRepo creates a new SQLiteAssignmentRepo.
func NewSQLiteAssignmentRepo(db db.DBTX) *SQLiteAssignmentRepo {
	return &SQLiteAssignmentRepo{db: db}
}

func (r *SQLiteAssignmentRepo) ListByPlan(ctx context.Context, planID string) ([]AssignmentRecord, error) {
	query := `SELECT item_id, container_id, position FROM assignments
		WHERE plan_id = ?
		ORDER BY container_id, position, item_id`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing assignments by plan: %w", err)
	}
	defer rows.Close()

	var records []AssignmentRecord
	for rows.Next() {
		var rec AssignmentRecord
		if err := rows.Scan(&rec.ItemID, &rec.ContainerID, &rec.Position); err != nil {
			return nil, fmt.Errorf("scanning assignment: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *SQLiteAssignmentRepo) Replace(ctx context.Context, planID string, records []AssignmentRecord) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM assignments WHERE plan_id = ?`, planID); err != nil {
		return fmt.Errorf("clearing assignments for plan %s: %w", planID, err)
	}
	query := `INSERT INTO assignments (plan_id, item_id, container_id, position, updated_at)
		VALUES (?, ?, ?, ?, ?)`
	now := nowUTC()
	for _, rec := range records {
		if _, err := r.db.ExecContext(ctx, query, planID, rec.ItemID, rec.ContainerID, rec.Position, now); err != nil {
			return fmt.Errorf("inserting assignment for item %s: %w", rec.ItemID, err)
		}
	}
	return nil
}
