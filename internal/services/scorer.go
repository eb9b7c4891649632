package services

import (
	"foodbridge-match-service/internal/domain"
	"time"
)

// Fixed score weights; not configurable per run.
const (
	weightQtyFit   = 0.35
	weightDistance = 0.30
	weightExpiry   = 0.20
	weightPriority = 0.15

	// Distance credit fades linearly to zero at this radius.
	distanceFadeKm = 20.0
	// Expiry urgency fades linearly to zero at this horizon.
	expiryHorizonHours = 72.0
	// Priority is normalized assuming a 0-5 scale.
	priorityScale = 5.0
)

// QtyFitRatio measures how well one donation's offered quantity matches one
// request's remaining need: min/max, symmetric, zero when either side is
// non-positive. Purely pairwise, not a global optimum.
func QtyFitRatio(needKg, offerKg float64) float64 {
	if needKg <= 0 || offerKg <= 0 {
		return 0.0
	}
	if needKg < offerKg {
		return needKg / offerKg
	}
	return offerKg / needKg
}

// Score computes the multi-factor compatibility between one candidate
// donation and one request for a given label. hoursToExpiry is nil when no
// same-label item carries expiry metadata; that yields zero urgency credit,
// deliberately favoring donations with known expiry. A result <= 0 marks
// the candidate infeasible.
func Score(distanceKm, qtyFit float64, hoursToExpiry *float64, priority int) float64 {
	distTerm := 1.0 - distanceKm/distanceFadeKm
	if distTerm < 0 {
		distTerm = 0
	}

	qtyTerm := qtyFit
	if qtyTerm < 0 {
		qtyTerm = 0
	} else if qtyTerm > 1 {
		qtyTerm = 1
	}

	expiryTerm := 0.0
	if hoursToExpiry != nil {
		h := *hoursToExpiry
		if h > expiryHorizonHours {
			h = expiryHorizonHours
		}
		expiryTerm = 1.0 - h/expiryHorizonHours
		if expiryTerm < 0 {
			expiryTerm = 0
		}
	}

	prioTerm := float64(priority) / priorityScale
	if prioTerm < 0 {
		prioTerm = 0
	} else if prioTerm > 1 {
		prioTerm = 1
	}

	return weightQtyFit*qtyTerm + weightDistance*distTerm + weightExpiry*expiryTerm + weightPriority*prioTerm
}

// EarliestExpiryHours returns hours from now until the earliest expiry among
// the donation's items carrying this label, or nil when none has expiry
// metadata. May be negative for already-expired items (maximal urgency).
func EarliestExpiryHours(items []domain.Item, label string, now time.Time) *float64 {
	var earliest *time.Time
	for i := range items {
		it := &items[i]
		if it.ExpiryAt == nil || it.Label() != label {
			continue
		}
		if earliest == nil || it.ExpiryAt.Before(*earliest) {
			earliest = it.ExpiryAt
		}
	}
	if earliest == nil {
		return nil
	}
	h := earliest.Sub(now).Hours()
	return &h
}
