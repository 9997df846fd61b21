package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/akulinich/ballast/internal/db"
	"github.com/akulinich/ballast/internal/domain"
)

// containerColumns is the canonical SELECT column list for containers.
const containerColumns = `id, plan_id, name, kind, capacity, start_date, end_date, created_at, updated_at`

// SQLiteContainerRepo implements ContainerRepo over a SQLite database.
type SQLiteContainerRepo struct {
	db db.DBTX
}

// NewSQLiteContainerRepo creates a new SQLiteContainerRepo.
func NewSQLiteContainerRepo(db db.DBTX) *SQLiteContainerRepo {
	return &SQLiteContainerRepo{db: db}
}

func (r *SQLiteContainerRepo) Create(ctx context.Context, c *domain.Container) error {
	query := `INSERT INTO containers (` + containerColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.PlanID,
		c.Name,
		string(c.Kind),
		c.Capacity,
		nullableTimeToString(c.StartDate, dateLayout),
		nullableTimeToString(c.EndDate, dateLayout),
		c.CreatedAt.Format(time.RFC3339Nano),
		c.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting container: %w", err)
	}
	return nil
}

func (r *SQLiteContainerRepo) GetByID(ctx context.Context, id string) (*domain.Container, error) {
	query := `SELECT ` + containerColumns + ` FROM containers WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	c, err := scanContainer(row)
	if err != nil {
		return nil, fmt.Errorf("loading container %s: %w", id, err)
	}
	return c, nil
}

func (r *SQLiteContainerRepo) ListByPlan(ctx context.Context, planID string) ([]domain.Container, error) {
	query := `SELECT ` + containerColumns + ` FROM containers
		WHERE plan_id = ?
		ORDER BY start_date IS NULL, start_date, created_at, id`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing containers by plan: %w", err)
	}
	defer rows.Close()

	var containers []domain.Container
	for rows.Next() {
		c, err := scanContainer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning container: %w", err)
		}
		containers = append(containers, *c)
	}
	return containers, rows.Err()
}

func (r *SQLiteContainerRepo) Update(ctx context.Context, c *domain.Container) error {
	query := `UPDATE containers SET name = ?, kind = ?, capacity = ?,
		start_date = ?, end_date = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		c.Name,
		string(c.Kind),
		c.Capacity,
		nullableTimeToString(c.StartDate, dateLayout),
		nullableTimeToString(c.EndDate, dateLayout),
		nowUTC(),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating container %s: %w", c.ID, err)
	}
	return nil
}

func (r *SQLiteContainerRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM containers WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting container %s: %w", id, err)
	}
	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanContainer(row rowScanner) (*domain.Container, error) {
	var c domain.Container
	var kind, createdAt, updatedAt string
	var startDate, endDate sql.NullString
	if err := row.Scan(
		&c.ID, &c.PlanID, &c.Name, &kind, &c.Capacity,
		&startDate, &endDate, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	c.Kind = domain.ContainerKind(kind)
	c.StartDate = parseNullableTime(startDate, dateLayout)
	c.EndDate = parseNullableTime(endDate, dateLayout)
	c.CreatedAt = parseTime(createdAt)
	c.UpdatedAt = parseTime(updatedAt)
	return &c, nil
}
