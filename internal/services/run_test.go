package services

import (
	"context"
	"foodbridge-match-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMatchingEndToEnd(t *testing.T) {
	locA := &domain.LatLng{Lat: 33.45, Lng: -112.07}
	locB := &domain.LatLng{Lat: 33.46, Lng: -112.08}

	d1 := openDonation("D1", locA,
		domain.Item{Name: "Bread", Quantity: 10, Unit: "kg", Category: "bakery"},
	)
	d2 := openDonation("D2", locB,
		domain.Item{Name: "Rice", Quantity: 44, Unit: "lbs", Category: "staples"},
	)
	r1 := openRequest("R1", locA, 5,
		domain.Item{Name: "bread", Quantity: 6, Unit: "kg"},
		domain.Item{Name: "rice", Quantity: 5, Unit: "kg"},
	)

	donations := newFakeDonationRepo(d1, d2)
	requests := newFakeRequestRepo(r1)
	records := &fakeAllocationRepo{}
	locker := &fakeLocker{}

	result, err := RunMatching(context.Background(), testNow, locker, donations, requests, records)
	require.NoError(t, err)

	assert.Equal(t, 1, locker.acquired, "run holds the run lock")
	assert.Len(t, result.Allocations, 2)
	assert.Equal(t, result.Allocations, records.stored, "records persisted verbatim")

	assert.Equal(t, 2, result.Summary.DonationsTouched)
	assert.Equal(t, 1, result.Summary.RequestsTouched)
	assert.Equal(t, 2, result.Summary.Allocations)

	assert.Equal(t, 6.0, result.TotalsByItem["bread"])
	assert.Equal(t, 5.0, result.TotalsByItem["rice"])
	assert.Equal(t, 6.0, result.TotalsByCategory["bakery"])
	assert.Equal(t, 5.0, result.TotalsByCategory["staples"])

	// Physical state after apply.
	assert.Equal(t, 4.0, donations.docs["D1"].Items[0].Quantity)
	assert.Equal(t, domain.DonationMatched, donations.docs["D1"].Status)
	assert.InDelta(t, 44.0-5.0/0.45359237, donations.docs["D2"].Items[0].Quantity, 1e-9)
	assert.Equal(t, 0.0, requests.docs["R1"].Needs[0].Quantity)
	assert.Equal(t, 0.0, requests.docs["R1"].Needs[1].Quantity)
	assert.Equal(t, domain.RequestMatched, requests.docs["R1"].Status)
}

func TestRunMatchingRunIDsUniqueUnderPinnedClock(t *testing.T) {
	donations := newFakeDonationRepo()
	requests := newFakeRequestRepo()

	first, err := RunMatching(context.Background(), testNow, &fakeLocker{},
		donations, requests, &fakeAllocationRepo{})
	require.NoError(t, err)
	second, err := RunMatching(context.Background(), testNow, &fakeLocker{},
		donations, requests, &fakeAllocationRepo{})
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID,
		"audit records of distinct runs must never share a run id")
}

func TestRunMatchingEmptySnapshot(t *testing.T) {
	records := &fakeAllocationRepo{}

	result, err := RunMatching(context.Background(), testNow, &fakeLocker{},
		newFakeDonationRepo(), newFakeRequestRepo(), records)
	require.NoError(t, err)

	assert.Empty(t, result.Allocations)
	assert.Empty(t, records.stored)
	assert.Equal(t, domain.RunSummary{}, result.Summary)
	assert.NotEmpty(t, result.RunID)
}
