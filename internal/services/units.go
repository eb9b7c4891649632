package services

import "strings"

// CanonicalUnit is the unit every quantity is normalized to before any
// scoring or allocation arithmetic.
const CanonicalUnit = "kg"

const lbPerKgFactor = 0.45359237

// ToKilograms converts a quantity/unit pair into kilograms. Unit matching is
// case-insensitive and accepts common plural/abbreviation variants. An
// unrecognized unit is treated as already-canonical: unknown units must
// never abort a matching run.
func ToKilograms(qty float64, unit string) float64 {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "kg", "kilogram", "kilograms":
		return qty
	case "g", "gram", "grams":
		return qty / 1000.0
	case "lb", "lbs", "pound", "pounds":
		return qty * lbPerKgFactor
	default:
		return qty
	}
}

// FromKilograms converts a canonical quantity back into the given unit,
// inverting ToKilograms. Same permissive fallback for unknown units.
func FromKilograms(kg float64, unit string) float64 {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "kg", "kilogram", "kilograms":
		return kg
	case "g", "gram", "grams":
		return kg * 1000.0
	case "lb", "lbs", "pound", "pounds":
		return kg / lbPerKgFactor
	default:
		return kg
	}
}

// KnownUnit reports whether the unit string maps to a recognized conversion.
// Used only to surface the identity fallback in run warnings; conversion
// itself never fails.
func KnownUnit(unit string) bool {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "kg", "kilogram", "kilograms",
		"g", "gram", "grams",
		"lb", "lbs", "pound", "pounds":
		return true
	}
	return false
}
