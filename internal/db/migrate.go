package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Statements are idempotent so the
// full list re-runs safely on every open.
func Migrate(database *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := database.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS plans (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS containers (
		id         TEXT PRIMARY KEY,
		plan_id    TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		kind       TEXT NOT NULL CHECK(kind IN ('sprint','person','pool')),
		capacity   REAL NOT NULL DEFAULT 0 CHECK(capacity >= 0),
		start_date TEXT,
		end_date   TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_containers_plan ON containers(plan_id)`,

	`CREATE TABLE IF NOT EXISTS work_items (
		id         TEXT PRIMARY KEY,
		plan_id    TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		title      TEXT NOT NULL,
		kind       TEXT NOT NULL CHECK(kind IN ('feature','story','task')),
		status     TEXT NOT NULL DEFAULT 'todo'
		           CHECK(status IN ('todo','in_progress','done')),
		priority   TEXT NOT NULL DEFAULT 'medium'
		           CHECK(priority IN ('critical','high','medium','low')),
		points     REAL NOT NULL DEFAULT 0 CHECK(points >= 0),
		project    TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_work_items_plan ON work_items(plan_id)`,

	`CREATE TABLE IF NOT EXISTS dependencies (
		item_id       TEXT NOT NULL REFERENCES work_items(id) ON DELETE CASCADE,
		depends_on_id TEXT NOT NULL REFERENCES work_items(id) ON DELETE CASCADE,
		PRIMARY KEY (item_id, depends_on_id),
		CHECK (item_id != depends_on_id)
	)`,

	`CREATE TABLE IF NOT EXISTS assignments (
		plan_id      TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		item_id      TEXT NOT NULL REFERENCES work_items(id) ON DELETE CASCADE,
		container_id TEXT NOT NULL,
		position     INTEGER NOT NULL DEFAULT 0,
		updated_at   TEXT NOT NULL,
		PRIMARY KEY (plan_id, item_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_container ON assignments(plan_id, container_id)`,
}
