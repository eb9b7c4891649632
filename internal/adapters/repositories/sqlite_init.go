package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema. Timestamps are stored as RFC3339
// text and item lists as JSON text, mirroring the document shape the intake
// layer produces.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createDonationsQuery := `
	CREATE TABLE IF NOT EXISTS donations (
		id TEXT PRIMARY KEY,
		donor_name TEXT NOT NULL,
		items TEXT NOT NULL,
		lat REAL,
		lng REAL,
		ready_after TEXT,
		pickup_start TEXT,
		pickup_end TEXT,
		status TEXT NOT NULL,
		version INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL
	);
	`

	createRequestsQuery := `
	CREATE TABLE IF NOT EXISTS requests (
		id TEXT PRIMARY KEY,
		ngo_name TEXT NOT NULL,
		needs TEXT NOT NULL,
		lat REAL,
		lng REAL,
		priority INTEGER NOT NULL DEFAULT 0,
		delivery_start TEXT,
		delivery_end TEXT,
		status TEXT NOT NULL,
		version INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL
	);
	`

	createAllocationsQuery := `
	CREATE TABLE IF NOT EXISTS allocations (
		id TEXT PRIMARY KEY,
		run_id TEXT NOT NULL,
		donation_id TEXT NOT NULL,
		request_id TEXT NOT NULL,
		item_label TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		qty_kg REAL NOT NULL,
		unit TEXT NOT NULL,
		distance_km REAL NOT NULL,
		score REAL NOT NULL,
		created_at TEXT NOT NULL
	);
	`

	createStatusIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_donations_status ON donations(status);
	`

	createRequestStatusIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_requests_status ON requests(status);
	`

	createRunIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_allocations_run_id ON allocations(run_id);
	`

	statements := []string{
		createDonationsQuery,
		createRequestsQuery,
		createAllocationsQuery,
		createStatusIndexQuery,
		createRequestStatusIndexQuery,
		createRunIndexQuery,
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
