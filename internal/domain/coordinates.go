package domain

// Immutable geographic coordinates (latitude, longitude).
type LatLng struct {
	Lat float64
	Lng float64
}
