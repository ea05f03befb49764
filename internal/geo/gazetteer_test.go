package geo_test

import (
	"testing"

	"grievance/backend/internal/geo"

	"github.com/stretchr/testify/assert"
)

// TestLookup verifies case-insensitive matching and the miss path.
func TestLookup(t *testing.T) {
	p, ok := geo.Lookup("Harsul")
	assert.True(t, ok)
	assert.InDelta(t, 19.8900, p.Lat, 0.0001)
	assert.InDelta(t, 75.3550, p.Lng, 0.0001)

	_, ok = geo.Lookup("  gulmandi  ")
	assert.True(t, ok, "lookup must trim whitespace")

	_, ok = geo.Lookup("Atlantis")
	assert.False(t, ok, "unknown locations must miss")

	_, ok = geo.Lookup("")
	assert.False(t, ok)
}

// TestIntensity covers every step of the intensity function, including the
// exact boundaries.
func TestIntensity(t *testing.T) {
	tests := []struct {
		count int
		want  float64
	}{
		{0, 0.1},
		{1, 0.1},
		{2, 0.3},
		{3, 0.5},
		{4, 0.5},
		{5, 0.7},
		{7, 0.7},
		{8, 0.9},
		{100, 0.9},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, geo.Intensity(tt.count), "count=%d", tt.count)
	}
}
