package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"foodbridge-match-service/internal/domain"
	"time"
)

// Storage shape of one item line. Field names follow the document store the
// intake layer writes ("qty", "expiry_dt"), so seed files and API payloads
// stay interchangeable.
type jsonItem struct {
	Name     string     `json:"name"`
	Qty      float64    `json:"qty"`
	Unit     string     `json:"unit"`
	Category string     `json:"category,omitempty"`
	ExpiryDt *time.Time `json:"expiry_dt,omitempty"`
}

func itemsToJSON(items []domain.Item) (string, error) {
	out := make([]jsonItem, 0, len(items))
	for _, it := range items {
		out = append(out, jsonItem{
			Name:     it.Name,
			Qty:      it.Quantity,
			Unit:     it.Unit,
			Category: it.Category,
			ExpiryDt: it.ExpiryAt,
		})
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encode items: %w", err)
	}
	return string(b), nil
}

func itemsFromJSON(raw string) ([]domain.Item, error) {
	var rows []jsonItem
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
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
	return items, nil
}

// Timestamps are stored as RFC3339 text so both backends scan identically.
func timeToCol(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func timePtrToCol(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: timeToCol(*t), Valid: true}
}

func timeFromCol(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored timestamp %q: %w", s, err)
	}
	return t, nil
}

func timePtrFromCol(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := timeFromCol(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func windowToCols(w *domain.TimeWindow) (start, end sql.NullString) {
	if w == nil {
		return sql.NullString{}, sql.NullString{}
	}
	return timePtrToCol(w.Start), timePtrToCol(w.End)
}

func windowFromCols(start, end sql.NullString) (*domain.TimeWindow, error) {
	if !start.Valid && !end.Valid {
		return nil, nil
	}
	s, err := timePtrFromCol(start)
	if err != nil {
		return nil, err
	}
	e, err := timePtrFromCol(end)
	if err != nil {
		return nil, err
	}
	return &domain.TimeWindow{Start: s, End: e}, nil
}

func locationToCols(l *domain.LatLng) (lat, lng sql.NullFloat64) {
	if l == nil {
		return sql.NullFloat64{}, sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: l.Lat, Valid: true}, sql.NullFloat64{Float64: l.Lng, Valid: true}
}

func locationFromCols(lat, lng sql.NullFloat64) *domain.LatLng {
	if !lat.Valid || !lng.Valid {
		return nil
	}
	return &domain.LatLng{Lat: lat.Float64, Lng: lng.Float64}
}
