package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func densityOf(v float64) *float64 { return &v }

func TestEstimateCasualties_UnknownDensity(t *testing.T) {
	c := EstimateCasualties(10, nil)
	assert.False(t, c.Known)
	assert.Zero(t, c.Estimated)
	assert.Zero(t, c.Injured)
	assert.Zero(t, c.Fatalities)
}

func TestEstimateCasualties_KnownScenario(t *testing.T) {
	// 2 km blast radius over 1000 people/km2: area 12.57 km2, rate 0.02.
	c := EstimateCasualties(2, densityOf(1000))
	require.True(t, c.Known)
	assert.Equal(t, int64(251), c.Estimated)
	assert.Equal(t, int64(75), c.Injured)
	assert.Equal(t, int64(176), c.Fatalities)
}

func TestEstimateCasualties_SplitConsistency(t *testing.T) {
	for _, blast := range []float64{0.1, 1, 5, 20, 90, 300} {
		for _, density := range []float64{0, 1, 35, 1200, 25000} {
			c := EstimateCasualties(blast, densityOf(density))
			require.True(t, c.Known)
			sum := c.Injured + c.Fatalities
			assert.LessOrEqual(t, math.Abs(float64(sum-c.Estimated)), 1.0,
				"blast=%g density=%g", blast, density)

			// The 30/70 split holds to rounding.
			if c.Estimated > 10 {
				assert.InDelta(t, 0.3, float64(c.Injured)/float64(c.Estimated), 0.05)
			}
		}
	}
}

func TestEstimateCasualties_RateCap(t *testing.T) {
	// Beyond 90 km the casualty rate caps at 0.9.
	small := EstimateCasualties(90, densityOf(100))
	large := EstimateCasualties(300, densityOf(100))

	rateSmall := float64(small.Estimated) / (math.Pi * 90 * 90 * 100)
	rateLarge := float64(large.Estimated) / (math.Pi * 300 * 300 * 100)
	assert.InDelta(t, 0.9, rateSmall, 0.001)
	assert.InDelta(t, 0.9, rateLarge, 0.001)
}
