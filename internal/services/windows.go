package services

import (
	"foodbridge-match-service/internal/domain"
	"time"
)

// WindowsOverlap reports whether a donation's pickup availability can meet a
// request's delivery window. This is a loose interval-overlap test, not a
// scheduling solver: no duration or travel-time reasoning.
//
// A nil delivery window means the request is unconstrained. The effective
// pickup start is the later of readyAfter and the pickup window start;
// absence of both pickup bounds is treated as fully flexible.
func WindowsOverlap(pickup *domain.TimeWindow, readyAfter *time.Time, delivery *domain.TimeWindow) bool {
	if delivery == nil {
		return true
	}

	pickupStart := readyAfter
	var pickupEnd *time.Time
	if pickup != nil {
		if pickup.Start != nil && (pickupStart == nil || pickup.Start.After(*pickupStart)) {
			pickupStart = pickup.Start
		}
		pickupEnd = pickup.End
	}
	if pickupStart == nil && pickupEnd == nil {
		return true
	}

	// Infeasible only on strict disjointness; shared instants overlap.
	if pickupStart != nil && delivery.End != nil && pickupStart.After(*delivery.End) {
		return false
	}
	if delivery.Start != nil && pickupEnd != nil && delivery.Start.After(*pickupEnd) {
		return false
	}
	return true
}
