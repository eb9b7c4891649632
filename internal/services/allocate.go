package services

import (
	"foodbridge-match-service/internal/domain"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
)

// A scored donation candidate for one (request, label) pair.
type candidate struct {
	state      *supplyState
	score      float64
	distanceKm float64
	offerKg    float64
}

// Allocate computes a greedy multi-criteria allocation of open supply to
// open demand. It is pure: all state lives in run-scoped residual maps, the
// clock is the caller-supplied now, and identical inputs yield identical
// output (candidate ties break on donation ID, request ties on request ID).
func Allocate(donations []*domain.Donation, requests []*domain.Request, runID string, now time.Time) ([]domain.Allocation, []string) {
	supply, demand, warnings := materialize(donations, requests)
	orderDemand(demand)

	allocations := []domain.Allocation{}

	for _, dem := range demand {
		req := dem.request
		if req.Location == nil {
			// Never matched: geodistance is part of every score.
			continue
		}

		labels := make([]string, 0, len(dem.remaining))
		for label := range dem.remaining {
			labels = append(labels, label)
		}
		slices.Sort(labels)

		for _, label := range labels {
			needKg := dem.remaining[label]
			if needKg <= 0 {
				continue
			}

			cands := make([]candidate, 0, len(supply))
			for _, sup := range supply {
				don := sup.donation
				offerKg := sup.remaining[label]
				if offerKg <= 0 || don.Location == nil {
					continue
				}
				if !WindowsOverlap(don.PickupWindow, don.ReadyAfter, req.DeliveryWindow) {
					continue
				}

				dist := HaversineKm(*req.Location, *don.Location)
				hours := EarliestExpiryHours(don.Items, label, now)
				score := Score(dist, QtyFitRatio(needKg, offerKg), hours, req.Priority)
				if score <= 0 {
					continue
				}
				cands = append(cands, candidate{state: sup, score: score, distanceKm: dist, offerKg: offerKg})
			}
			if len(cands) == 0 {
				// Need left unmet; visible only via the run summary.
				continue
			}

			slices.SortFunc(cands, func(a, b candidate) int {
				if a.score != b.score {
					if a.score > b.score {
						return -1
					}
					return 1
				}
				// Tie-breaker ensures deterministic ordering when scores are equal.
				if a.state.donation.ID < b.state.donation.ID {
					return -1
				}
				if a.state.donation.ID > b.state.donation.ID {
					return 1
				}
				return 0
			})

			remaining := needKg
			for _, c := range cands {
				if remaining <= 0 {
					break
				}
				take := math.Min(remaining, c.state.remaining[label])
				if take <= 0 {
					continue
				}

				allocations = append(allocations, domain.Allocation{
					ID:         uuid.NewString(),
					RunID:      runID,
					DonationID: c.state.donation.ID,
					RequestID:  req.ID,
					ItemLabel:  label,
					Category:   labelCategory(c.state.donation.Items, label),
					Quantity:   round3(take),
					Unit:       CanonicalUnit,
					DistanceKm: round3(c.distanceKm),
					Score:      round4(c.score),
					CreatedAt:  now,
				})

				// Mutate residuals immediately so later iterations see
				// updated availability.
				c.state.remaining[label] -= take
				dem.remaining[label] -= take
				remaining -= take
			}
		}
	}

	return allocations, warnings
}

// labelCategory lifts the optional category hint from the first same-label
// donation item that carries one.
func labelCategory(items []domain.Item, label string) string {
	for _, it := range items {
		if it.Label() == label && it.Category != "" {
			return it.Category
		}
	}
	return ""
}

func round3(x float64) float64 { return math.Round(x*1000) / 1000 }
func round4(x float64) float64 { return math.Round(x*10000) / 10000 }
