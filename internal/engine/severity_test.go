package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySeverity_Bands(t *testing.T) {
	tests := []struct {
		yieldTons float64
		want      Severity
	}{
		{0.001, SeverityLow},
		{0.0999, SeverityLow},
		{0.1, SeverityModerate},
		{0.999, SeverityModerate},
		{1.0, SeverityHigh}, // upper bounds are half-open
		{9.99, SeverityHigh},
		{10, SeveritySevere},
		{99.9, SeveritySevere},
		{100, SeverityCatastrophic},
		{1e9, SeverityCatastrophic},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifySeverity(tt.yieldTons), "yield=%g", tt.yieldTons)
	}
}

func TestClassifySeverity_MonotonicInYield(t *testing.T) {
	prev := -1
	for _, yield := range []float64{0.01, 0.1, 0.5, 1, 5, 10, 50, 100, 1e6} {
		rank := ClassifySeverity(yield).Rank()
		assert.GreaterOrEqual(t, rank, prev, "yield=%g", yield)
		prev = rank
	}
}

func TestParseSeverity(t *testing.T) {
	s, ok := ParseSeverity("severe")
	assert.True(t, ok)
	assert.Equal(t, SeveritySevere, s)

	_, ok = ParseSeverity("apocalyptic")
	assert.False(t, ok)
}

func TestSeverityRank_Unknown(t *testing.T) {
	assert.Equal(t, -1, Severity("bogus").Rank())
}
