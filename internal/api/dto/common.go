package dto

import "time"

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type TimeWindow struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// Wire shape of one item line, matching the stored document shape.
type Item struct {
	Name     string     `json:"name"`
	Qty      float64    `json:"qty"`
	Unit     string     `json:"unit"`
	Category string     `json:"category,omitempty"`
	ExpiryDt *time.Time `json:"expiry_dt,omitempty"`
}
