package repository

import (
	"context"
	"fmt"

	"github.com/akulinich/ballast/internal/db"
)

// SQLiteDependencyRepo implements DependencyRepo over a SQLite database.
type SQLiteDependencyRepo struct {
	db db.DBTX
}

// NewSQLiteDependencyRepo creates a new SQLiteDependencyRepo.
func NewSQLiteDependencyRepo(db db.DBTX) *SQLiteDependencyRepo {
	return &SQLiteDependencyRepo{db: db}
}

func (r *SQLiteDependencyRepo) Add(ctx context.Context, itemID, dependsOnID string) error {
	query := `INSERT OR IGNORE INTO dependencies (item_id, depends_on_id) VALUES (?, ?)`
	if _, err := r.db.ExecContext(ctx, query, itemID, dependsOnID); err != nil {
		return fmt.Errorf("adding dependency %s -> %s: %w", itemID, dependsOnID, err)
	}
	return nil
}

func (r *SQLiteDependencyRepo) Remove(ctx context.Context, itemID, dependsOnID string) error {
	query := `DELETE FROM dependencies WHERE item_id = ? AND depends_on_id = ?`
	if _, err := r.db.ExecContext(ctx, query, itemID, dependsOnID); err != nil {
		return fmt.Errorf("removing dependency %s -> %s: %w", itemID, dependsOnID, err)
	}
	return nil
}

func (r *SQLiteDependencyRepo) ListByPlan(ctx context.Context, planID string) (map[string][]string, error) {
	query := `SELECT d.item_id, d.depends_on_id
		FROM dependencies d
		JOIN work_items w ON d.item_id = w.id
		WHERE w.plan_id = ?
		ORDER BY d.item_id, d.depends_on_id`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing dependencies by plan: %w", err)
	}
	defer rows.Close()

	deps := make(map[string][]string)
	for rows.Next() {
		var itemID, dependsOnID string
		if err := rows.Scan(&itemID, &dependsOnID); err != nil {
			return nil, fmt.Errorf("scanning dependency: %w", err)
		}
		deps[itemID] = append(deps[itemID], dependsOnID)
	}
	return deps, rows.Err()
}
