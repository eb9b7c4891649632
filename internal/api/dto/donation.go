package dto

import "time"

type CreateDonationRequest struct {
	DonorName    string      `json:"donor_name"`
	Items        []Item      `json:"items"`
	Location     *Location   `json:"location"`
	ReadyAfter   *time.Time  `json:"ready_after"`
	PickupWindow *TimeWindow `json:"pickup_window"`
}

type DonationResponse struct {
	ID           string      `json:"id"`
	DonorName    string      `json:"donor_name"`
	Items        []Item      `json:"items"`
	Location     *Location   `json:"location"`
	ReadyAfter   *time.Time  `json:"ready_after"`
	PickupWindow *TimeWindow `json:"pickup_window"`
	Status       string      `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
}

type ListDonationsResponse struct {
	Donations []DonationResponse `json:"donations"`
}
