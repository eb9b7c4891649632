package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"foodbridge-match-service/internal/domain"
	"foodbridge-match-service/internal/ports"
	"os"
	"strings"
	"time"
)

type seedLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type seedWindow struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

type donationSeed struct {
	ID           string        `json:"id"`
	DonorName    string        `json:"donor_name"`
	Items        []jsonItem    `json:"items"`
	Location     *seedLocation `json:"location"`
	ReadyAfter   *time.Time    `json:"ready_after"`
	PickupWindow *seedWindow   `json:"pickup_window"`
}

type requestSeed struct {
	ID             string        `json:"id"`
	NGOName        string        `json:"ngo_name"`
	Needs          []jsonItem    `json:"needs"`
	Location       *seedLocation `json:"location"`
	Priority       int           `json:"priority"`
	DeliveryWindow *seedWindow   `json:"delivery_window"`
}

// SeedDonationsFromJSON loads demo donations into the store. Existing ids
// are left untouched so re-seeding a database with match history does not
// resurrect consumed quantities.
func SeedDonationsFromJSON(ctx context.Context, repo ports.DonationRepository, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed donations: read %q: %w", jsonPath, err)
	}

	var data []donationSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed donations: parse json: %w", err)
	}

	now := time.Now().UTC()
	for i, row := range data {
		if strings.TrimSpace(row.ID) == "" {
			return fmt.Errorf("seed donations: missing id at index %d", i+1)
		}

		existing, err := repo.Get(ctx, row.ID)
		if err != nil {
			return fmt.Errorf("seed donations: check id=%s: %w", row.ID, err)
		}
		if existing != nil {
			continue
		}

		d := &domain.Donation{
			ID:           row.ID,
			DonorName:    row.DonorName,
			Items:        seedItems(row.Items),
			Location:     seedLatLng(row.Location),
			ReadyAfter:   row.ReadyAfter,
			PickupWindow: seedTimeWindow(row.PickupWindow),
			Status:       domain.DonationOpen,
			Version:      1,
			CreatedAt:    now,
		}
		if err := repo.Create(ctx, d); err != nil {
			return fmt.Errorf("seed donations: insert id=%s: %w", row.ID, err)
		}
	}

	return nil
}

// SeedRequestsFromJSON loads demo requests into the store, skipping ids
// that already exist.
func SeedRequestsFromJSON(ctx context.Context, repo ports.RequestRepository, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed requests: read %q: %w", jsonPath, err)
	}

	var data []requestSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed requests: parse json: %w", err)
	}

	now := time.Now().UTC()
	for i, row := range data {
		if strings.TrimSpace(row.ID) == "" {
			return fmt.Errorf("seed requests: missing id at index %d", i+1)
		}

		existing, err := repo.Get(ctx, row.ID)
		if err != nil {
			return fmt.Errorf("seed requests: check id=%s: %w", row.ID, err)
		}
		if existing != nil {
			continue
		}

		r := &domain.Request{
			ID:             row.ID,
			NGOName:        row.NGOName,
			Needs:          seedItems(row.Needs),
			Location:       seedLatLng(row.Location),
			Priority:       row.Priority,
			DeliveryWindow: seedTimeWindow(row.DeliveryWindow),
			Status:         domain.RequestOpen,
			Version:        1,
			CreatedAt:      now,
		}
		if err := repo.Create(ctx, r); err != nil {
			return fmt.Errorf("seed requests: insert id=%s: %w", row.ID, err)
		}
	}

	return nil
}

func seedItems(rows []jsonItem) []domain.Item {
	items := make([]domain.Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, domain.Item{
			Name:     r.Name,
			Quantity: r.Qty,
			Unit:     r.Unit,
			Category: r.Category,
			ExpiryAt: r.ExpiryDt,
		})
	}
	return items
}

func seedLatLng(l *seedLocation) *domain.LatLng {
	if l == nil {
		return nil
	}
	return &domain.LatLng{Lat: l.Lat, Lng: l.Lng}
}

func seedTimeWindow(w *seedWindow) *domain.TimeWindow {
	if w == nil {
		return nil
	}
	return &domain.TimeWindow{Start: w.Start, End: w.End}
}
