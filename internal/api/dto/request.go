package dto

import "time"

type CreateRequestRequest struct {
	NGOName        string      `json:"ngo_name"`
	Needs          []Item      `json:"needs"`
	Location       *Location   `json:"location"`
	Priority       int         `json:"priority"`
	DeliveryWindow *TimeWindow `json:"delivery_window"`
}

type RequestResponse struct {
	ID             string      `json:"id"`
	NGOName        string      `json:"ngo_name"`
	Needs          []Item      `json:"needs"`
	Location       *Location   `json:"location"`
	Priority       int         `json:"priority"`
	DeliveryWindow *TimeWindow `json:"delivery_window"`
	Status         string      `json:"status"`
	CreatedAt      time.Time   `json:"created_at"`
}

type ListRequestsResponse struct {
	Requests []RequestResponse `json:"requests"`
}
