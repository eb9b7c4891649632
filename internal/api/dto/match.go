package dto

import "time"

// Optional overrides for one matching run. Now pins the engine clock for
// reproducible runs; when absent the server uses the current UTC time.
type RunMatchingRequest struct {
	Now *time.Time `json:"now"`
}

type AllocationResponse struct {
	ID         string    `json:"id"`
	RunID      string    `json:"run_id"`
	DonationID string    `json:"donation_id"`
	RequestID  string    `json:"request_id"`
	ItemLabel  string    `json:"item_label"`
	Category   string    `json:"category,omitempty"`
	Qty        float64   `json:"qty"`
	Unit       string    `json:"unit"`
	DistanceKm float64   `json:"distance_km"`
	Score      float64   `json:"score"`
	CreatedAt  time.Time `json:"created_at"`
}

type RunSummaryResponse struct {
	DonationsTouched int `json:"donations_touched"`
	RequestsTouched  int `json:"requests_touched"`
	Allocations      int `json:"allocations"`
}

type RunMatchingResponse struct {
	RunID            string               `json:"run_id"`
	CreatedAt        time.Time            `json:"created_at"`
	Allocations      []AllocationResponse `json:"allocations"`
	TotalsByItem     map[string]float64   `json:"totals_by_item"`
	TotalsByCategory map[string]float64   `json:"totals_by_category"`
	Summary          RunSummaryResponse   `json:"summary"`
	Warnings         []string             `json:"warnings,omitempty"`
}

// One stored allocation joined with its donor and NGO names.
type AllocationListEntry struct {
	AllocationResponse
	DonorName string `json:"donor_name,omitempty"`
	NGOName   string `json:"ngo_name,omitempty"`
}

type ListAllocationsResponse struct {
	Allocations []AllocationListEntry `json:"allocations"`
}
