package db

import (
	"database/sql"
	"fmt"
)

// migrations are run in order on every open. Statements are idempotent
// (CREATE IF NOT EXISTS) so re-running is safe.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		stage TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS plans (
		session_id TEXT PRIMARY KEY REFERENCES sessions(id) ON DELETE CASCADE,
		campaign_id TEXT NOT NULL,
		client TEXT NOT NULL,
		budget REAL NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		total_spend REAL NOT NULL,
		remaining_budget REAL NOT NULL,
		version INTEGER NOT NULL,
		grouping_mode TEXT NOT NULL,
		strategy TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS placements (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		channel TEXT NOT NULL,
		vendor TEXT NOT NULL,
		ad_unit TEXT NOT NULL,
		cost_method TEXT NOT NULL,
		rate REAL NOT NULL,
		quantity REAL NOT NULL,
		total_cost REAL NOT NULL,
		status TEXT NOT NULL,
		forecast_impressions REAL NOT NULL,
		perf_impressions REAL,
		perf_clicks REAL,
		perf_spend REAL,
		perf_revenue REAL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_placements_session
		ON placements(session_id, position)`,

	`CREATE TABLE IF NOT EXISTS messages (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		role TEXT NOT NULL,
		text TEXT NOT NULL,
		created_at TEXT NOT NULL,
		suggested_replies TEXT NOT NULL DEFAULT '',
		action_type TEXT,
		action_payload TEXT,
		UNIQUE(session_id, seq)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_messages_session
		ON messages(session_id, seq)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
