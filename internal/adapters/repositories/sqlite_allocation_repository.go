package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"foodbridge-match-service/internal/domain"
)

// SQLite-backed implementation of the AllocationRepository port. Records are
// append-only; there is no update path.
type SqliteAllocationRepository struct{ DB *sql.DB }

func NewSqliteAllocationRepository(db *sql.DB) *SqliteAllocationRepository {
	return &SqliteAllocationRepository{DB: db}
}

// InsertBatch stores one run's records inside a single transaction so the
// run commits all allocations or none.
func (s *SqliteAllocationRepository) InsertBatch(ctx context.Context, allocations []domain.Allocation) error {
	if s.DB == nil {
		return errors.New("sqlite allocation repository: DB is nil")
	}
	if len(allocations) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert allocations: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO allocations (
		id, run_id, donation_id, request_id, item_label, category,
		qty_kg, unit, distance_km, score, created_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("insert allocations: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range allocations {
		_, err := stmt.ExecContext(ctx,
			a.ID, a.RunID, a.DonationID, a.RequestID, a.ItemLabel, a.Category,
			a.Quantity, a.Unit, a.DistanceKm, a.Score, timeToCol(a.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("insert allocations: insert id=%s: %w", a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert allocations: commit tx: %w", err)
	}
	return nil
}

func (s *SqliteAllocationRepository) List(ctx context.Context) ([]domain.Allocation, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite allocation repository: DB is nil")
	}

	query := `
	SELECT
		id, run_id, donation_id, request_id, item_label, category,
		qty_kg, unit, distance_km, score, created_at
	FROM allocations
	ORDER BY created_at DESC, id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list allocations: query allocations table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Allocation, 0, 64)
	for rows.Next() {
		var (
			a         domain.Allocation
			createdAt string
		)
		err := rows.Scan(
			&a.ID, &a.RunID, &a.DonationID, &a.RequestID, &a.ItemLabel, &a.Category,
			&a.Quantity, &a.Unit, &a.DistanceKm, &a.Score, &createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("list allocations: scan row: %w", err)
		}
		if a.CreatedAt, err = timeFromCol(createdAt); err != nil {
			return nil, fmt.Errorf("list allocations: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list allocations: row iteration: %w", err)
	}

	return out, nil
}
