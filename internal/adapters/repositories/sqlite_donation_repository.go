package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"foodbridge-match-service/internal/domain"
	"foodbridge-match-service/internal/ports"
)

// SQLite-backed implementation of the DonationRepository port.
type SqliteDonationRepository struct{ DB *sql.DB }

func NewSqliteDonationRepository(db *sql.DB) *SqliteDonationRepository {
	return &SqliteDonationRepository{DB: db}
}

const donationColumns = `
	id, donor_name, items, lat, lng,
	ready_after, pickup_start, pickup_end,
	status, version, created_at
`

func (s *SqliteDonationRepository) ListOpen(ctx context.Context) ([]*domain.Donation, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite donation repository: DB is nil")
	}

	query := `SELECT ` + donationColumns + ` FROM donations WHERE status = ? ORDER BY id;`
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

func (s *SqliteDonationRepository) Get(ctx context.Context, id string) (*domain.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations WHERE id = ?;`
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

func (s *SqliteDonationRepository) Create(ctx context.Context, d *domain.Donation) error {
	items, err := itemsToJSON(d.Items)
	if err != nil {
		return fmt.Errorf("create donation: %w", err)
	}

	lat, lng := locationToCols(d.Location)
	pickupStart, pickupEnd := windowToCols(d.PickupWindow)

	query := `
	INSERT INTO donations (` + donationColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
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

// UpdateItems replaces the item list and status when the stored version
// still matches expectedVersion, bumping the version on success.
func (s *SqliteDonationRepository) UpdateItems(ctx context.Context, id string, items []domain.Item, status string, expectedVersion int) error {
	encoded, err := itemsToJSON(items)
	if err != nil {
		return fmt.Errorf("update donation %s: %w", id, err)
	}

	query := `
	UPDATE donations
	SET items = ?, status = ?, version = version + 1
	WHERE id = ? AND version = ?;
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

type rowScanner interface{ Scan(dest ...any) error }

func scanDonation(row rowScanner) (*domain.Donation, error) {
	var (
		d           domain.Donation
		itemsRaw    string
		lat, lng    sql.NullFloat64
		readyAfter  sql.NullString
		pickupStart sql.NullString
		pickupEnd   sql.NullString
		createdAt   string
	)
	err := row.Scan(
		&d.ID, &d.DonorName, &itemsRaw, &lat, &lng,
		&readyAfter, &pickupStart, &pickupEnd,
		&d.Status, &d.Version, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	if d.Items, err = itemsFromJSON(itemsRaw); err != nil {
		return nil, err
	}
	d.Location = locationFromCols(lat, lng)
	if d.ReadyAfter, err = timePtrFromCol(readyAfter); err != nil {
		return nil, err
	}
	if d.PickupWindow, err = windowFromCols(pickupStart, pickupEnd); err != nil {
		return nil, err
	}
	if d.CreatedAt, err = timeFromCol(createdAt); err != nil {
		return nil, err
	}
	return &d, nil
}
