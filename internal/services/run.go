package services

import (
	"context"
	"fmt"
	"foodbridge-match-service/internal/domain"
	"foodbridge-match-service/internal/platform/obs"
	"foodbridge-match-service/internal/ports"
	"time"

	"github.com/google/uuid"
)

// RunMatching executes one full matching run: snapshot the open sets,
// compute allocations entirely in memory, apply them, and report totals.
//
// The run lock is held from snapshot read through apply. Without it, two
// concurrent runs reading overlapping snapshots would both allocate the same
// residual supply and double-spend donation quantity.
//
// now is supplied by the caller (UTC) so expiry-urgency scoring is
// deterministic and testable.
func RunMatching(
	ctx context.Context,
	now time.Time,
	locker ports.RunLocker,
	donations ports.DonationRepository,
	requests ports.RequestRepository,
	records ports.AllocationRepository,
) (_ *domain.RunResult, err error) {
	defer obs.Time(ctx, "matching.run")(&err)

	release, err := locker.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("run matching: acquire run lock: %w", err)
	}
	defer release()

	openDonations, err := donations.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("run matching: list open donations: %w", err)
	}
	openRequests, err := requests.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("run matching: list open requests: %w", err)
	}

	// The uuid suffix keeps run ids unique when callers pin the same now
	// for reproducible runs.
	runID := fmt.Sprintf("run-%d-%s", now.UnixMilli(), uuid.NewString())

	allocations, warnings := Allocate(openDonations, openRequests, runID, now)

	applyWarnings, err := ApplyAllocations(ctx, donations, requests, records, allocations)
	if err != nil {
		return nil, fmt.Errorf("run matching: %w", err)
	}
	warnings = append(warnings, applyWarnings...)

	return summarize(runID, now, allocations, warnings), nil
}

func summarize(runID string, now time.Time, allocations []domain.Allocation, warnings []string) *domain.RunResult {
	totalsByItem := map[string]float64{}
	totalsByCategory := map[string]float64{}
	touchedDon := map[string]struct{}{}
	touchedReq := map[string]struct{}{}

	for _, a := range allocations {
		totalsByItem[a.ItemLabel] += a.Quantity
		if a.Category != "" {
			totalsByCategory[a.Category] += a.Quantity
		}
		touchedDon[a.DonationID] = struct{}{}
		touchedReq[a.RequestID] = struct{}{}
	}

	return &domain.RunResult{
		RunID:            runID,
		CreatedAt:        now,
		Allocations:      allocations,
		TotalsByItem:     totalsByItem,
		TotalsByCategory: totalsByCategory,
		Summary: domain.RunSummary{
			DonationsTouched: len(touchedDon),
			RequestsTouched:  len(touchedReq),
			Allocations:      len(allocations),
		},
		Warnings: warnings,
	}
}
