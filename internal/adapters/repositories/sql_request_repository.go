package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"foodbridge-match-service/internal/domain"
	"foodbridge-match-service/internal/ports"
)

// Postgres-backed implementation of the RequestRepository port.
type SQLRequestRepository struct{ DB *sql.DB }

func NewSQLRequestRepository(db *sql.DB) *SQLRequestRepository {
	return &SQLRequestRepository{DB: db}
}

func (s *SQLRequestRepository) ListOpen(ctx context.Context) ([]*domain.Request, error) {
	if s.DB == nil {
		return nil, errors.New("sql request repository: DB is nil")
	}

	query := `SELECT ` + requestColumns + ` FROM requests WHERE status = $1 ORDER BY id;`
	rows, err := s.DB.QueryContext(ctx, query, domain.RequestOpen)
	if err != nil {
		return nil, fmt.Errorf("list open requests: query requests table: %w", err)
	}
	defer rows.Close()

	requests := make([]*domain.Request, 0, 64)
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("list open requests: %w", err)
		}
		requests = append(requests, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list open requests: row iteration: %w", err)
	}

	return requests, nil
}

func (s *SQLRequestRepository) Get(ctx context.Context, id string) (*domain.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1;`
	row := s.DB.QueryRowContext(ctx, query, id)

	r, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get request %s: %w", id, err)
	}
	return r, nil
}

func (s *SQLRequestRepository) Create(ctx context.Context, r *domain.Request) error {
	needs, err := itemsToJSON(r.Needs)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	lat, lng := locationToCols(r.Location)
	deliveryStart, deliveryEnd := windowToCols(r.DeliveryWindow)

	query := `
	INSERT INTO requests (` + requestColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = s.DB.ExecContext(ctx, query,
		r.ID, r.NGOName, needs, lat, lng,
		r.Priority, deliveryStart, deliveryEnd,
		r.Status, r.Version, timeToCol(r.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create request %s: %w", r.ID, err)
	}
	return nil
}

func (s *SQLRequestRepository) UpdateNeeds(ctx context.Context, id string, needs []domain.Item, status string, expectedVersion int) error {
	encoded, err := itemsToJSON(needs)
	if err != nil {
		return fmt.Errorf("update request %s: %w", id, err)
	}

	query := `
	UPDATE requests
	SET needs = $1, status = $2, version = version + 1
	WHERE id = $3 AND version = $4;
	`
	res, err := s.DB.ExecContext(ctx, query, encoded, status, id, expectedVersion)
	if err != nil {
		return fmt.Errorf("update request %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update request %s: rows affected: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("update request %s: %w", id, ports.ErrVersionConflict)
	}
	return nil
}
