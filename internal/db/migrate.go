package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations are idempotent schema statements re-run on every open.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS resources (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL CHECK (kind IN ('supplier', 'internal')),
		name TEXT NOT NULL,
		role TEXT NOT NULL CHECK (role IN ('G1', 'G2', 'TA', 'PM')),
		department TEXT NOT NULL DEFAULT '',
		real_rate REAL NOT NULL DEFAULT 0,
		official_rate REAL NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'active'
	)`,

	`CREATE TABLE IF NOT EXISTS categories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'active'
	)`,

	`CREATE TABLE IF NOT EXISTS feature_types (
		id TEXT NOT NULL,
		category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		average_mds REAL NOT NULL DEFAULT 0,
		PRIMARY KEY (category_id, id)
	)`,

	`CREATE TABLE IF NOT EXISTS calc_params (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		document TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_resources_kind ON resources(kind)`,
	`CREATE INDEX IF NOT EXISTS idx_feature_types_category ON feature_types(category_id)`,
}

// Migrate runs all schema migrations.
func Migrate(database *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := database.Exec(stmt); err != nil {
			// Tolerate re-runs of ALTER TABLE statements added later.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
