package domain

import (
	"strings"
	"time"
)

// A single line of supply or demand: a named foodstuff with a quantity in
// the unit the submitter used. Category and ExpiryAt are optional hints
// carried through from intake; the matching engine uses ExpiryAt for
// urgency scoring and Category for per-category run totals.
type Item struct {
	Name     string
	Quantity float64
	Unit     string
	Category string
	ExpiryAt *time.Time
}

// CanonicalLabel is the matching key between donation items and request
// needs: lowercased, trimmed. No fuzzy matching or synonym resolution
// happens beyond this.
func CanonicalLabel(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Label returns the item's canonical matching key.
func (it Item) Label() string { return CanonicalLabel(it.Name) }
