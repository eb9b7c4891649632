package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"foodbridge-match-service/internal/domain"
	"foodbridge-match-service/internal/ports"
)

// Postgres-backed implementation of the DonationRepository port.
type SQLDonationRepository struct{ DB *sql.DB }

func NewSQLDonationRepository(db *sql.DB) *SQLDonationRepository {
	return &SQLDonationRepository{DB: db}
}

func (s *SQLDonationRepository) ListOpen(ctx context.Context) ([]*domain.Donation, error) {
	if s.DB == nil {
		return nil, errors.New("sql donation repository: DB is nil")
	}

	query := `SELECT ` + donationColumns + ` FROM donations WHERE status = $1 ORDER BY id;`
	rows, err := s.DB.QueryContext(ctx, query, domain.DonationOpen)
	if err != nil {
		return nil, fmt.Errorf("list open donations: query donations table: %w", err)
	}
	defer rows.Close()

	donations := make([]*domain.Donation, 0, 64)
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, fmt.Errorf("list open donations: %w", err)
		}
		donations = append(donations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list open donations: row iteration: %w", err)
	}

	return donations, nil
}

func (s *SQLDonationRepository) Get(ctx context.Context, id string) (*domain.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations WHERE id = $1;`
	row := s.DB.QueryRowContext(ctx, query, id)

	d, err := scanDonation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get donation %s: %w", id, err)
	}
	return d, nil
}

func (s *SQLDonationRepository) Create(ctx context.Context, d *domain.Donation) error {
	items, err := itemsToJSON(d.Items)
	if err != nil {
		return fmt.Errorf("create donation: %w", err)
	}

	lat, lng := locationToCols(d.Location)
	pickupStart, pickupEnd := windowToCols(d.PickupWindow)

	query := `
	INSERT INTO donations (` + donationColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = s.DB.ExecContext(ctx, query,
		d.ID, d.DonorName, items, lat, lng,
		timePtrToCol(d.ReadyAfter), pickupStart, pickupEnd,
		d.Status, d.Version, timeToCol(d.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create donation %s: %w", d.ID, err)
	}
	return nil
}

func (s *SQLDonationRepository) UpdateItems(ctx context.Context, id string, items []domain.Item, status string, expectedVersion int) error {
	encoded, err := itemsToJSON(items)
	if err != nil {
		return fmt.Errorf("update donation %s: %w", id, err)
	}

	query := `
	UPDATE donations
	SET items = $1, status = $2, version = version + 1
	WHERE id = $3 AND version = $4;
	`
	res, err := s.DB.ExecContext(ctx, query, encoded, status, id, expectedVersion)
	if err != nil {
		return fmt.Errorf("update donation %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update donation %s: rows affected: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("update donation %s: %w", id, ports.ErrVersionConflict)
	}
	return nil
}
