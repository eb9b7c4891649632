package services

import (
	"foodbridge-match-service/internal/domain"
	"math"
)

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two coordinates
// in kilometers.
func HaversineKm(a, b domain.LatLng) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadiusKm * 2 * math.Asin(math.Sqrt(h))
}

func radians(deg float64) float64 { return deg * math.Pi / 180.0 }
