package services

import (
	"fmt"
	"foodbridge-match-service/internal/domain"
	"slices"
	"time"
)

// residualMap tracks remaining unallocated canonical quantity per label for
// one document during one run. It is owned by the allocator for the run's
// lifetime and never persisted or shared.
type residualMap map[string]float64

// supplyState pairs an open donation with its run-scoped residuals.
type supplyState struct {
	donation  *domain.Donation
	remaining residualMap
}

// demandState pairs an open request with its run-scoped residuals.
type demandState struct {
	request   *domain.Request
	remaining residualMap
}

func (d *demandState) totalNeed() float64 {
	total := 0.0
	for _, kg := range d.remaining {
		total += kg
	}
	return total
}

// Materialize builds per-label residual maps for the open snapshot.
// Residuals are derived fresh from the current item quantities: the applier
// physically decrements quantities after each run, so no committed-allocation
// subtraction is needed. Unknown units fall back to identity conversion and
// are reported through warnings.
func materialize(donations []*domain.Donation, requests []*domain.Request) (supply []*supplyState, demand []*demandState, warnings []string) {
	seenUnknown := map[string]struct{}{}
	noteUnit := func(unit string) {
		if unit == "" || KnownUnit(unit) {
			return
		}
		if _, ok := seenUnknown[unit]; ok {
			return
		}
		seenUnknown[unit] = struct{}{}
		warnings = append(warnings, fmt.Sprintf("unknown unit %q treated as %s", unit, CanonicalUnit))
	}

	sumByLabel := func(items []domain.Item) residualMap {
		rem := residualMap{}
		for _, it := range items {
			noteUnit(it.Unit)
			rem[it.Label()] += ToKilograms(it.Quantity, it.Unit)
		}
		return rem
	}

	supply = make([]*supplyState, 0, len(donations))
	for _, d := range donations {
		supply = append(supply, &supplyState{donation: d, remaining: sumByLabel(d.Items)})
	}

	demand = make([]*demandState, 0, len(requests))
	for _, r := range requests {
		demand = append(demand, &demandState{request: r, remaining: sumByLabel(r.Needs)})
	}

	return supply, demand, warnings
}

// orderDemand sorts requests by urgency: higher priority first, earlier
// required delivery start first, larger total remaining need first. Request
// ID breaks remaining ties so identical inputs produce identical runs.
func orderDemand(demand []*demandState) {
	slices.SortFunc(demand, func(a, b *demandState) int {
		if a.request.Priority != b.request.Priority {
			if a.request.Priority > b.request.Priority {
				return -1
			}
			return 1
		}

		sa, sb := windowStart(a.request.DeliveryWindow), windowStart(b.request.DeliveryWindow)
		if !sa.Equal(sb) {
			if sa.Before(sb) {
				return -1
			}
			return 1
		}

		na, nb := a.totalNeed(), b.totalNeed()
		if na != nb {
			if na > nb {
				return -1
			}
			return 1
		}

		if a.request.ID < b.request.ID {
			return -1
		}
		if a.request.ID > b.request.ID {
			return 1
		}
		return 0
	})
}

// Missing delivery-window starts sort after every concrete start.
func windowStart(w *domain.TimeWindow) time.Time {
	if w == nil || w.Start == nil {
		return time.Unix(1<<62, 0)
	}
	return *w.Start
}
