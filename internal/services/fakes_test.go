package services

import (
	"context"
	"foodbridge-match-service/internal/domain"
	"foodbridge-match-service/internal/ports"
	"fmt"
	"sort"
)

// In-memory repositories backing the engine tests.

type fakeDonationRepo struct {
	docs map[string]*domain.Donation
	// Forces the next n UpdateItems calls to report a version conflict.
	conflictNext int
}

func newFakeDonationRepo(docs ...*domain.Donation) *fakeDonationRepo {
	m := map[string]*domain.Donation{}
	for _, d := range docs {
		m[d.ID] = d
	}
	return &fakeDonationRepo{docs: m}
}

func (f *fakeDonationRepo) ListOpen(ctx context.Context) ([]*domain.Donation, error) {
	out := []*domain.Donation{}
	for _, d := range f.docs {
		if d.Status == domain.DonationOpen {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeDonationRepo) Get(ctx context.Context, id string) (*domain.Donation, error) {
	d, ok := f.docs[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDonationRepo) Create(ctx context.Context, d *domain.Donation) error {
	f.docs[d.ID] = d
	return nil
}

func (f *fakeDonationRepo) UpdateItems(ctx context.Context, id string, items []domain.Item, status string, expectedVersion int) error {
	if f.conflictNext > 0 {
		f.conflictNext--
		return fmt.Errorf("update donation %s: %w", id, ports.ErrVersionConflict)
	}
	d, ok := f.docs[id]
	if !ok || d.Version != expectedVersion {
		return fmt.Errorf("update donation %s: %w", id, ports.ErrVersionConflict)
	}
	d.Items = items
	d.Status = status
	d.Version++
	return nil
}

type fakeRequestRepo struct {
	docs         map[string]*domain.Request
	conflictNext int
}

func newFakeRequestRepo(docs ...*domain.Request) *fakeRequestRepo {
	m := map[string]*domain.Request{}
	for _, r := range docs {
		m[r.ID] = r
	}
	return &fakeRequestRepo{docs: m}
}

func (f *fakeRequestRepo) ListOpen(ctx context.Context) ([]*domain.Request, error) {
	out := []*domain.Request{}
	for _, r := range f.docs {
		if r.Status == domain.RequestOpen {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRequestRepo) Get(ctx context.Context, id string) (*domain.Request, error) {
	r, ok := f.docs[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRequestRepo) Create(ctx context.Context, r *domain.Request) error {
	f.docs[r.ID] = r
	return nil
}

func (f *fakeRequestRepo) UpdateNeeds(ctx context.Context, id string, needs []domain.Item, status string, expectedVersion int) error {
	if f.conflictNext > 0 {
		f.conflictNext--
		return fmt.Errorf("update request %s: %w", id, ports.ErrVersionConflict)
	}
	r, ok := f.docs[id]
	if !ok || r.Version != expectedVersion {
		return fmt.Errorf("update request %s: %w", id, ports.ErrVersionConflict)
	}
	r.Needs = needs
	r.Status = status
	r.Version++
	return nil
}

type fakeAllocationRepo struct {
	stored []domain.Allocation
}

func (f *fakeAllocationRepo) InsertBatch(ctx context.Context, allocations []domain.Allocation) error {
	f.stored = append(f.stored, allocations...)
	return nil
}

func (f *fakeAllocationRepo) List(ctx context.Context) ([]domain.Allocation, error) {
	return f.stored, nil
}

type fakeLocker struct{ acquired int }

func (f *fakeLocker) Acquire(ctx context.Context) (func(), error) {
	f.acquired++
	return func() {}, nil
}
