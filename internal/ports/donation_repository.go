package ports

import (
	"context"
	"foodbridge-match-service/internal/domain"
)

// Port: a boundary for reading and mutating Donation documents.
type DonationRepository interface {
	// Retrieve all donations currently open for matching.
	ListOpen(ctx context.Context) ([]*domain.Donation, error)
	// Retrieve one donation by id. Returns (nil, nil) when it does not exist.
	Get(ctx context.Context, id string) (*domain.Donation, error)
	// Insert a new donation document.
	Create(ctx context.Context, d *domain.Donation) error
	// Replace the item list and status of a donation, guarded by an
	// optimistic version check. Returns ErrVersionConflict when the stored
	// version no longer matches expectedVersion.
	UpdateItems(ctx context.Context, id string, items []domain.Item, status string, expectedVersion int) error
}
