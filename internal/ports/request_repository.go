package ports

import (
	"context"
	"errors"
	"foodbridge-match-service/internal/domain"
)

// Returned by conditional writes when the stored document version has moved
// since it was read. Callers re-read and retry once before surfacing a
// partial-application warning.
var ErrVersionConflict = errors.New("document version conflict")

// Port: a boundary for reading and mutating Request documents.
type RequestRepository interface {
	// Retrieve all requests currently open for matching.
	ListOpen(ctx context.Context) ([]*domain.Request, error)
	// Retrieve one request by id. Returns (nil, nil) when it does not exist.
	Get(ctx context.Context, id string) (*domain.Request, error)
	// Insert a new request document.
	Create(ctx context.Context, r *domain.Request) error
	// Replace the needs list and status of a request, guarded by an
	// optimistic version check.
	UpdateNeeds(ctx context.Context, id string, needs []domain.Item, status string, expectedVersion int) error
}
