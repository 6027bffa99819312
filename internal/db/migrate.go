package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema statements in order. Every statement is written
// IF NOT EXISTS, so the full list re-runs safely on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		display_name  TEXT NOT NULL DEFAULT '',
		department_id TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		status        TEXT NOT NULL DEFAULT 'not_started'
			CHECK (status IN ('not_started', 'in_progress', 'suspended', 'archived')),
		manager_id    TEXT NOT NULL DEFAULT '',
		planned_start TEXT,
		planned_end   TEXT,
		actual_start  TEXT,
		actual_end    TEXT,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS project_members (
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		user_id    TEXT NOT NULL,
		role       TEXT NOT NULL DEFAULT 'member',
		PRIMARY KEY (project_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS iterations (
		id            TEXT PRIMARY KEY,
		project_id    TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name          TEXT NOT NULL,
		status        TEXT NOT NULL DEFAULT 'not_started'
			CHECK (status IN ('not_started', 'in_progress', 'completed')),
		planned_start TEXT,
		planned_end   TEXT,
		actual_start  TEXT,
		actual_end    TEXT,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_iterations_project ON iterations(project_id)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id              TEXT PRIMARY KEY,
		project_id      TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		iteration_id    TEXT REFERENCES iterations(id) ON DELETE SET NULL,
		parent_id       TEXT REFERENCES tasks(id) ON DELETE SET NULL,
		title           TEXT NOT NULL,
		type            TEXT NOT NULL DEFAULT 'task',
		priority        TEXT NOT NULL DEFAULT 'MEDIUM',
		assignee_id     TEXT NOT NULL DEFAULT '',
		status          TEXT NOT NULL DEFAULT 'TODO'
			CHECK (status IN ('TODO', 'IN_PROGRESS', 'DONE')),
		planned_start   TEXT,
		planned_end     TEXT,
		actual_start    TEXT,
		actual_end      TEXT,
		estimated_hours REAL NOT NULL DEFAULT 0,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_parent ON tasks(parent_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_iteration ON tasks(iteration_id)`,

	`CREATE TABLE IF NOT EXISTS task_links (
		predecessor_id TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		successor_id   TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		kind           TEXT NOT NULL DEFAULT 'finish_to_start',
		PRIMARY KEY (predecessor_id, successor_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_task_links_successor ON task_links(successor_id)`,
}
