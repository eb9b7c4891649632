package domain

import "time"

// An immutable audit record describing a quantity of one item label moved
// from one donation to one request. Records are append-only: never edited,
// only superseded by a later run's records. Quantity is always in the
// canonical unit (kilograms).
type Allocation struct {
	ID         string
	RunID      string
	DonationID string
	RequestID  string
	ItemLabel  string
	Category   string
	Quantity   float64
	Unit       string
	DistanceKm float64
	Score      float64
	CreatedAt  time.Time
}

// Aggregate counts for one matching run.
type RunSummary struct {
	DonationsTouched int
	RequestsTouched  int
	Allocations      int
}

// The full output of one matching run: the ordered allocation list plus
// totals and diagnostics. Warnings carry the permissive-fallback paths
// (unknown units, vanished documents, apply conflicts) without failing
// the run.
type RunResult struct {
	RunID            string
	CreatedAt        time.Time
	Allocations      []Allocation
	TotalsByItem     map[string]float64
	TotalsByCategory map[string]float64
	Summary          RunSummary
	Warnings         []string
}
