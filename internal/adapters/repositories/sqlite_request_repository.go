package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"foodbridge-match-service/internal/domain"
	"foodbridge-match-service/internal/ports"
)

// SQLite-backed implementation of the RequestRepository port.
type SqliteRequestRepository struct{ DB *sql.DB }

func NewSqliteRequestRepository(db *sql.DB) *SqliteRequestRepository {
	return &SqliteRequestRepository{DB: db}
}

const requestColumns = `
	id, ngo_name, needs, lat, lng,
	priority, delivery_start, delivery_end,
	status, version, created_at
`

func (s *SqliteRequestRepository) ListOpen(ctx context.Context) ([]*domain.Request, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite request repository: DB is nil")
	}

	query := `SELECT ` + requestColumns + ` FROM requests WHERE status = ? ORDER BY id;`
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

func (s *SqliteRequestRepository) Get(ctx context.Context, id string) (*domain.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = ?;`
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

func (s *SqliteRequestRepository) Create(ctx context.Context, r *domain.Request) error {
	needs, err := itemsToJSON(r.Needs)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	lat, lng := locationToCols(r.Location)
	deliveryStart, deliveryEnd := windowToCols(r.DeliveryWindow)

	query := `
	INSERT INTO requests (` + requestColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
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

func (s *SqliteRequestRepository) UpdateNeeds(ctx context.Context, id string, needs []domain.Item, status string, expectedVersion int) error {
	encoded, err := itemsToJSON(needs)
	if err != nil {
		return fmt.Errorf("update request %s: %w", id, err)
	}

	query := `
	UPDATE requests
	SET needs = ?, status = ?, version = version + 1
	WHERE id = ? AND version = ?;
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

func scanRequest(row rowScanner) (*domain.Request, error) {
	var (
		r             domain.Request
		needsRaw      string
		lat, lng      sql.NullFloat64
		deliveryStart sql.NullString
		deliveryEnd   sql.NullString
		createdAt     string
	)
	err := row.Scan(
		&r.ID, &r.NGOName, &needsRaw, &lat, &lng,
		&r.Priority, &deliveryStart, &deliveryEnd,
		&r.Status, &r.Version, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	if r.Needs, err = itemsFromJSON(needsRaw); err != nil {
		return nil, err
	}
	r.Location = locationFromCols(lat, lng)
	if r.DeliveryWindow, err = windowFromCols(deliveryStart, deliveryEnd); err != nil {
		return nil, err
	}
	if r.CreatedAt, err = timeFromCol(createdAt); err != nil {
		return nil, err
	}
	return &r, nil
}
