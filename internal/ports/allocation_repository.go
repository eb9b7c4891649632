package ports

import (
	"context"
	"foodbridge-match-service/internal/domain"
)

// Port: append-only storage for allocation audit records.
type AllocationRepository interface {
	// Persist all records of one run. Implementations must make the batch
	// atomic: either every record is stored or none is.
	InsertBatch(ctx context.Context, allocations []domain.Allocation) error
	// Retrieve stored allocation records, newest run first.
	List(ctx context.Context) ([]domain.Allocation, error)
}
