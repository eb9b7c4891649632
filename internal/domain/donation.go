package domain

import "time"

// Donation lifecycle states. Only DonationOpen participates in matching;
// the applier moves a donation to DonationMatched once any quantity has
// been allocated off it.
const (
	DonationOpen      = "open"
	DonationMatched   = "matched"
	DonationPickedUp  = "picked_up"
	DonationDelivered = "delivered"
	DonationClosed    = "closed"
	DonationCanceled  = "canceled"
)

// A supply-side document: itemized offered goods with a pickup location and
// optional availability constraints. Item quantities only ever decrease, and
// only through the allocation applier; delivery-status collaborators own the
// later lifecycle transitions.
type Donation struct {
	ID           string
	DonorName    string
	Items        []Item
	Location     *LatLng
	ReadyAfter   *time.Time
	PickupWindow *TimeWindow
	Status       string
	Version      int
	CreatedAt    time.Time
}
