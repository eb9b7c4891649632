package domain

import "time"

// Request lifecycle states, mirroring the donation side.
const (
	RequestOpen      = "open"
	RequestMatched   = "matched"
	RequestFulfilled = "fulfilled"
)

// A demand-side document: itemized needs from a requesting organization.
// Priority is a 0-5 urgency scale (higher is more urgent); the scorer clamps
// anything above 5.
type Request struct {
	ID             string
	NGOName        string
	Needs          []Item
	Location       *LatLng
	Priority       int
	DeliveryWindow *TimeWindow
	Status         string
	Version        int
	CreatedAt      time.Time
}
