package db

import (
	"database/sql"
	"fmt"
)

// migrations are idempotent schema statements, applied in order on startup.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS records (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS client_versions (
		client_id        TEXT PRIMARY KEY,
		last_mutation_id INTEGER NOT NULL DEFAULT 0,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS sync_meta (
		key   TEXT PRIMARY KEY,
		value INTEGER NOT NULL
	)`,

	`INSERT OR IGNORE INTO sync_meta (key, value) VALUES ('global_version', 0)`,
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
