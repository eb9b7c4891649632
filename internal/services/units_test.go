package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToKilograms(t *testing.T) {
	assert.Equal(t, 2.5, ToKilograms(2.5, "kg"))
	assert.Equal(t, 2.5, ToKilograms(2.5, "Kilograms"))
	assert.Equal(t, 0.5, ToKilograms(500, "g"))
	assert.Equal(t, 0.25, ToKilograms(250, "GRAMS"))
	assert.InDelta(t, 4.5359237, ToKilograms(10, "lbs"), 1e-9)
	assert.InDelta(t, 0.45359237, ToKilograms(1, " pound "), 1e-9)
}

func TestUnitRoundTrip(t *testing.T) {
	for _, unit := range []string{"kg", "g", "lb"} {
		q := 7.3
		require.InDelta(t, q, FromKilograms(ToKilograms(q, unit), unit), 1e-9, "unit %s", unit)
	}
}

func TestUnknownUnitFallsBackToIdentity(t *testing.T) {
	// Unknown units are treated as already-canonical, never an error.
	assert.Equal(t, 3.0, ToKilograms(3.0, "palettes"))
	assert.Equal(t, 3.0, FromKilograms(3.0, "palettes"))
	assert.False(t, KnownUnit("palettes"))
	assert.True(t, KnownUnit("Lbs"))
}

func TestZeroQuantity(t *testing.T) {
	assert.Equal(t, 0.0, ToKilograms(0, "kg"))
	assert.Equal(t, 0.0, ToKilograms(0, "crates"))
}
