package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations holds the run-history schema as an ordered list of idempotent
// DDL statements, applied in order on every OpenDB call.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id             TEXT PRIMARY KEY,
		project_name   TEXT NOT NULL,
		solver_name    TEXT NOT NULL,
		started_at     TEXT NOT NULL,
		finished_at    TEXT NOT NULL,
		final_optimal  INTEGER NOT NULL,
		final_makespan_min INTEGER NOT NULL,
		final_priority_cost INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS run_solutions (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id         TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		seq            INTEGER NOT NULL,
		optimal        INTEGER NOT NULL,
		makespan_min   INTEGER NOT NULL,
		priority_cost  INTEGER NOT NULL,
		duration_ms    INTEGER NOT NULL,
		stats_json     TEXT NOT NULL,
		UNIQUE(run_id, seq)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_run_solutions_run_id ON run_solutions(run_id)`,
}

// Migrate applies the schema. Statements are idempotent CREATE ... IF NOT
// EXISTS forms, but duplicate-column errors are tolerated anyway since the
// migration list is re-run on every startup.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
