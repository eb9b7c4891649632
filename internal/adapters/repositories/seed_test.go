package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"foodbridge-match-service/internal/domain"
)

const donationSeedJSON = `[
  {
    "id": "don-seed-1",
    "donor_name": "Seed Bakery",
    "items": [
      {"name": "Bread", "qty": 10, "unit": "kg", "category": "bakery"}
    ],
    "location": {"lat": 33.45, "lng": -112.07}
  },
  {
    "id": "don-seed-2",
    "donor_name": "Seed Grocer",
    "items": [
      {"name": "Rice", "qty": 20, "unit": "lbs"}
    ]
  }
]`

func TestSeedDonationsFromJSON(t *testing.T) {
	ctx := context.Background()
	repo := NewSqliteDonationRepository(openTestDB(t))

	path := filepath.Join(t.TempDir(), "donations.json")
	if err := os.WriteFile(path, []byte(donationSeedJSON), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}

	if err := SeedDonationsFromJSON(ctx, repo, path); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := repo.ListOpen(ctx)
	if err != nil {
		t.Fatalf("list open: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("seeded %d donations, want 2", len(got))
	}

	// Consume one donation, then re-seed. The consumed quantity must not
	// come back.
	if err := repo.UpdateItems(ctx, "don-seed-1",
		[]domain.Item{{Name: "Bread", Quantity: 2, Unit: "kg", Category: "bakery"}},
		domain.DonationMatched, 1); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := SeedDonationsFromJSON(ctx, repo, path); err != nil {
		t.Fatalf("re-seed: %v", err)
	}
	d, err := repo.Get(ctx, "don-seed-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if d.Items[0].Quantity != 2 || d.Status != domain.DonationMatched {
		t.Errorf("re-seed overwrote existing donation: %+v", d)
	}
}

func TestSeedRequestsFromJSONBadFile(t *testing.T) {
	ctx := context.Background()
	repo := NewSqliteRequestRepository(openTestDB(t))

	if err := SeedRequestsFromJSON(ctx, repo, filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing seed file")
	}

	path := filepath.Join(t.TempDir(), "requests.json")
	if err := os.WriteFile(path, []byte(`[{"ngo_name": "No ID"}]`), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	if err := SeedRequestsFromJSON(ctx, repo, path); err == nil {
		t.Error("expected error for seed row without id")
	}
}
