package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"foodbridge-match-service/internal/adapters/lock"
	"foodbridge-match-service/internal/adapters/repositories"
	"foodbridge-match-service/internal/api/dto"

	_ "modernc.org/sqlite"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)
	if err := repositories.InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	handler := NewRouter(
		repositories.NewSqliteDonationRepository(db),
		repositories.NewSqliteRequestRepository(db),
		repositories.NewSqliteAllocationRepository(db),
		lock.NewLocalRunLock(),
	)
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	res, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return res
}

func decodeBody[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	defer res.Body.Close()
	var out T
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestDonationIntakeValidation(t *testing.T) {
	srv := newTestServer(t)

	res := postJSON(t, srv.URL+"/donations", `{"items": [{"name": "Bread", "qty": 1, "unit": "kg"}]}`)
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("missing donor_name: status = %d, want 400", res.StatusCode)
	}

	res = postJSON(t, srv.URL+"/donations", `{"donor_name": "A", "items": [{"name": "Bread", "qty": -1, "unit": "kg"}]}`)
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("negative qty: status = %d, want 400", res.StatusCode)
	}

	res = postJSON(t, srv.URL+"/requests", `{"ngo_name": "N", "priority": 9, "needs": [{"name": "Bread", "qty": 1, "unit": "kg"}]}`)
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("priority out of range: status = %d, want 400", res.StatusCode)
	}
}

func TestMatchingRunBodyValidation(t *testing.T) {
	srv := newTestServer(t)

	res := postJSON(t, srv.URL+"/matching/run", `{"now": "2026-08-29T12:00:00Z"}{"junk": 1}`)
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("trailing content: status = %d, want 400", res.StatusCode)
	}

	res = postJSON(t, srv.URL+"/matching/run", `{"nope": true}`)
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown field: status = %d, want 400", res.StatusCode)
	}
}

func TestMatchingRunOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	res := postJSON(t, srv.URL+"/donations", `{
		"donor_name": "Madison Street Bakery",
		"items": [{"name": "Bread", "qty": 10, "unit": "kg", "category": "bakery"}],
		"location": {"lat": 33.4484, "lng": -112.0740}
	}`)
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create donation: status = %d, want 201", res.StatusCode)
	}
	donation := decodeBody[dto.DonationResponse](t, res)
	if donation.Status != "open" || donation.ID == "" {
		t.Fatalf("created donation = %+v", donation)
	}

	res = postJSON(t, srv.URL+"/requests", `{
		"ngo_name": "Phoenix Family Shelter",
		"needs": [{"name": "bread", "qty": 6, "unit": "kg"}],
		"location": {"lat": 33.4519, "lng": -112.0702},
		"priority": 4
	}`)
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create request: status = %d, want 201", res.StatusCode)
	}
	res.Body.Close()

	res = postJSON(t, srv.URL+"/matching/run", `{"now": "2026-08-29T12:00:00Z"}`)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("run matching: status = %d, want 200", res.StatusCode)
	}
	run := decodeBody[dto.RunMatchingResponse](t, res)
	if len(run.Allocations) != 1 {
		t.Fatalf("allocations = %d, want 1", len(run.Allocations))
	}
	a := run.Allocations[0]
	if a.Qty != 6 || a.Unit != "kg" || a.ItemLabel != "bread" {
		t.Errorf("allocation = %+v", a)
	}
	if run.TotalsByItem["bread"] != 6 {
		t.Errorf("totals_by_item = %v", run.TotalsByItem)
	}
	if run.TotalsByCategory["bakery"] != 6 {
		t.Errorf("totals_by_category = %v", run.TotalsByCategory)
	}
	if run.Summary.Allocations != 1 || run.Summary.DonationsTouched != 1 || run.Summary.RequestsTouched != 1 {
		t.Errorf("summary = %+v", run.Summary)
	}

	// Matched documents leave the open listings.
	res, err := http.Get(srv.URL + "/donations")
	if err != nil {
		t.Fatalf("GET /donations: %v", err)
	}
	donations := decodeBody[dto.ListDonationsResponse](t, res)
	if len(donations.Donations) != 0 {
		t.Errorf("open donations after full match = %d, want 0", len(donations.Donations))
	}

	// The audit trail carries the joined display names.
	res, err = http.Get(srv.URL + "/matching/allocations")
	if err != nil {
		t.Fatalf("GET /matching/allocations: %v", err)
	}
	list := decodeBody[dto.ListAllocationsResponse](t, res)
	if len(list.Allocations) != 1 {
		t.Fatalf("stored allocations = %d, want 1", len(list.Allocations))
	}
	if list.Allocations[0].DonorName != "Madison Street Bakery" || list.Allocations[0].NGOName != "Phoenix Family Shelter" {
		t.Errorf("joined names = %q / %q", list.Allocations[0].DonorName, list.Allocations[0].NGOName)
	}

	// Rerunning on an empty snapshot allocates nothing.
	res = postJSON(t, srv.URL+"/matching/run", ``)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("rerun: status = %d, want 200", res.StatusCode)
	}
	rerun := decodeBody[dto.RunMatchingResponse](t, res)
	if len(rerun.Allocations) != 0 {
		t.Errorf("rerun allocations = %d, want 0", len(rerun.Allocations))
	}
}

func TestHealthAndRequestID(t *testing.T) {
	srv := newTestServer(t)

	res, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", res.StatusCode)
	}
	if res.Header.Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}
