package services

import (
	"context"
	"errors"
	"fmt"
	"foodbridge-match-service/internal/domain"
	"foodbridge-match-service/internal/ports"
	"math"
	"slices"
)

// ApplyAllocations persists one run's allocation records and physically
// decrements the source documents.
//
// The record batch commits atomically through the repository. Each document
// decrement is then an independent read-modify-write guarded by an
// optimistic version check: on conflict it is retried once against fresh
// state, then surfaced as a warning rather than aborting the run. A
// referenced document that vanished between matching and apply is skipped;
// its allocation records stay behind as the audit trail of an allocation
// that could not be physically applied.
func ApplyAllocations(
	ctx context.Context,
	donations ports.DonationRepository,
	requests ports.RequestRepository,
	records ports.AllocationRepository,
	allocations []domain.Allocation,
) ([]string, error) {
	if len(allocations) == 0 {
		return nil, nil
	}

	if err := records.InsertBatch(ctx, allocations); err != nil {
		return nil, fmt.Errorf("apply allocations: insert records: %w", err)
	}

	decDon := map[string]map[string]float64{}
	decReq := map[string]map[string]float64{}
	for _, a := range allocations {
		addDecrement(decDon, a.DonationID, a.ItemLabel, a.Quantity)
		addDecrement(decReq, a.RequestID, a.ItemLabel, a.Quantity)
	}

	var warnings []string

	for _, id := range sortedKeys(decDon) {
		w, err := decrementWithRetry(ctx, "donation", id, decDon[id], func() (docState, error) {
			d, err := donations.Get(ctx, id)
			if err != nil || d == nil {
				return docState{}, err
			}
			return docState{items: d.Items, version: d.Version, found: true}, nil
		}, func(items []domain.Item, version int) error {
			return donations.UpdateItems(ctx, id, items, domain.DonationMatched, version)
		})
		if err != nil {
			return warnings, fmt.Errorf("apply allocations: donation %s: %w", id, err)
		}
		warnings = append(warnings, w...)
	}

	for _, id := range sortedKeys(decReq) {
		w, err := decrementWithRetry(ctx, "request", id, decReq[id], func() (docState, error) {
			r, err := requests.Get(ctx, id)
			if err != nil || r == nil {
				return docState{}, err
			}
			return docState{items: r.Needs, version: r.Version, found: true}, nil
		}, func(items []domain.Item, version int) error {
			return requests.UpdateNeeds(ctx, id, items, domain.RequestMatched, version)
		})
		if err != nil {
			return warnings, fmt.Errorf("apply allocations: request %s: %w", id, err)
		}
		warnings = append(warnings, w...)
	}

	return warnings, nil
}

type docState struct {
	items   []domain.Item
	version int
	found   bool
}

func decrementWithRetry(
	ctx context.Context,
	kind, id string,
	byLabel map[string]float64,
	read func() (docState, error),
	write func(items []domain.Item, version int) error,
) ([]string, error) {
	for attempt := 0; attempt < 2; attempt++ {
		state, err := read()
		if err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}
		if !state.found {
			return []string{fmt.Sprintf("%s %s vanished before apply; decrement skipped", kind, id)}, nil
		}

		items, changed := subtractByLabel(state.items, byLabel)
		if !changed {
			return nil, nil
		}

		err = write(items, state.version)
		if err == nil {
			return nil, nil
		}
		if !errors.Is(err, ports.ErrVersionConflict) {
			return nil, fmt.Errorf("write: %w", err)
		}
	}
	return []string{fmt.Sprintf("%s %s changed concurrently; decrement not applied", kind, id)}, nil
}

// subtractByLabel walks items in stored order, converting each label's
// canonical decrement back into the item's native unit until the full amount
// is absorbed or items run out.
func subtractByLabel(items []domain.Item, byLabel map[string]float64) ([]domain.Item, bool) {
	out := make([]domain.Item, len(items))
	copy(out, items)

	changed := false
	for _, label := range sortedKeys(byLabel) {
		remaining := byLabel[label]
		for i := range out {
			if remaining <= 0 {
				break
			}
			if out[i].Label() != label {
				continue
			}
			itemKg := ToKilograms(out[i].Quantity, out[i].Unit)
			takeKg := math.Min(itemKg, remaining)
			if takeKg <= 0 {
				continue
			}
			out[i].Quantity -= FromKilograms(takeKg, out[i].Unit)
			remaining -= takeKg
			changed = true
		}
	}
	return out, changed
}

func addDecrement(m map[string]map[string]float64, id, label string, kg float64) {
	if kg <= 0 {
		return
	}
	if m[id] == nil {
		m[id] = map[string]float64{}
	}
	m[id][label] += kg
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
