package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres database schema. Same logical layout as the
// SQLite schema; only column types differ.
func InitSchemaPostgres(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS donations (
			id TEXT PRIMARY KEY,
			donor_name TEXT NOT NULL,
			items TEXT NOT NULL,
			lat DOUBLE PRECISION,
			lng DOUBLE PRECISION,
			ready_after TEXT,
			pickup_start TEXT,
			pickup_end TEXT,
			status TEXT NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS requests (
			id TEXT PRIMARY KEY,
			ngo_name TEXT NOT NULL,
			needs TEXT NOT NULL,
			lat DOUBLE PRECISION,
			lng DOUBLE PRECISION,
			priority INTEGER NOT NULL DEFAULT 0,
			delivery_start TEXT,
			delivery_end TEXT,
			status TEXT NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS allocations (
			id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			donation_id TEXT NOT NULL,
			request_id TEXT NOT NULL,
			item_label TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			qty_kg DOUBLE PRECISION NOT NULL,
			unit TEXT NOT NULL,
			distance_km DOUBLE PRECISION NOT NULL,
			score DOUBLE PRECISION NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_donations_status ON donations(status);`,
		`CREATE INDEX IF NOT EXISTS idx_requests_status ON requests(status);`,
		`CREATE INDEX IF NOT EXISTS idx_allocations_run_id ON allocations(run_id);`,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
