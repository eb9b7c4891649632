package handlers

import (
	"foodbridge-match-service/internal/api/dto"
	"foodbridge-match-service/internal/domain"
	"strings"
)

// Boundary normalization shared by the intake handlers.

func itemsFromDTO(rows []dto.Item) ([]domain.Item, string) {
	if len(rows) == 0 {
		return nil, "at least one item is required"
	}
	items := make([]domain.Item, 0, len(rows))
	for _, row := range rows {
		if strings.TrimSpace(row.Name) == "" {
			return nil, "item name must not be empty"
		}
		if row.Qty < 0 {
			return nil, "item qty must not be negative"
		}
		items = append(items, domain.Item{
			Name:     strings.TrimSpace(row.Name),
			Quantity: row.Qty,
			Unit:     row.Unit,
			Category: strings.TrimSpace(row.Category),
			ExpiryAt: row.ExpiryDt,
		})
	}
	return items, ""
}

func itemsToDTO(items []domain.Item) []dto.Item {
	out := make([]dto.Item, 0, len(items))
	for _, it := range items {
		out = append(out, dto.Item{
			Name:     it.Name,
			Qty:      it.Quantity,
			Unit:     it.Unit,
			Category: it.Category,
			ExpiryDt: it.ExpiryAt,
		})
	}
	return out
}

// A missing location or the (0,0) placeholder both normalize to nil; the
// engine treats nil as "never matched" rather than a point off the coast
// of Africa.
func locationFromDTO(l *dto.Location) *domain.LatLng {
	if l == nil || (l.Lat == 0 && l.Lng == 0) {
		return nil
	}
	return &domain.LatLng{Lat: l.Lat, Lng: l.Lng}
}

func locationToDTO(l *domain.LatLng) *dto.Location {
	if l == nil {
		return nil
	}
	return &dto.Location{Lat: l.Lat, Lng: l.Lng}
}

func windowFromDTO(w *dto.TimeWindow) *domain.TimeWindow {
	if w == nil || (w.Start == nil && w.End == nil) {
		return nil
	}
	return &domain.TimeWindow{Start: w.Start, End: w.End}
}

func windowToDTO(w *domain.TimeWindow) *dto.TimeWindow {
	if w == nil {
		return nil
	}
	return &dto.TimeWindow{Start: w.Start, End: w.End}
}
