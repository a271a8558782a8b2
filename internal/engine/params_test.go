package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() ImpactParameters {
	return ImpactParameters{
		DiameterM:      100,
		VelocityKMS:    20,
		ImpactAngleDeg: 45,
		Composition:    CompositionRocky,
	}
}

func TestValidate_Boundaries(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ImpactParameters)
		field  string
	}{
		{"zero diameter", func(p *ImpactParameters) { p.DiameterM = 0 }, "diameter_m"},
		{"negative diameter", func(p *ImpactParameters) { p.DiameterM = -5 }, "diameter_m"},
		{"oversized diameter", func(p *ImpactParameters) { p.DiameterM = 10001 }, "diameter_m"},
		{"zero velocity", func(p *ImpactParameters) { p.VelocityKMS = 0 }, "velocity_kms"},
		{"oversized velocity", func(p *ImpactParameters) { p.VelocityKMS = 100.5 }, "velocity_kms"},
		{"negative angle", func(p *ImpactParameters) { p.ImpactAngleDeg = -1 }, "impact_angle_deg"},
		{"angle above 90", func(p *ImpactParameters) { p.ImpactAngleDeg = 91 }, "impact_angle_deg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)

			_, err := Validate(p)
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
			assert.Contains(t, verr.Error(), tt.field)
		})
	}
}

func TestValidate_EdgeValuesAccepted(t *testing.T) {
	p := validParams()
	p.DiameterM = 10000
	p.VelocityKMS = 100
	p.ImpactAngleDeg = 0

	v, err := Validate(p)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, v.DensityKgM3)

	p.ImpactAngleDeg = 90
	_, err = Validate(p)
	require.NoError(t, err)
}

func TestValidate_DensityTable(t *testing.T) {
	tests := []struct {
		composition Composition
		density     float64
	}{
		{CompositionRocky, 3000},
		{CompositionMetallic, 7800},
		{CompositionIcy, 1500},
		{CompositionCarbonaceous, 2500},
		{CompositionMixed, 3500},
		{Composition("iron"), 7800},
		{Composition("metallic/iron"), 7800},
	}

	for _, tt := range tests {
		t.Run(string(tt.composition), func(t *testing.T) {
			p := validParams()
			p.Composition = tt.composition

			v, err := Validate(p)
			require.NoError(t, err)
			assert.Equal(t, tt.density, v.DensityKgM3)
			assert.False(t, v.CompositionAssumed)
		})
	}
}

func TestValidate_UnknownCompositionFallsBack(t *testing.T) {
	p := validParams()
	p.Composition = "unobtainium"

	v, err := Validate(p)
	require.NoError(t, err)
	assert.Equal(t, densityKgM3[CompositionMixed], v.DensityKgM3)
	assert.Equal(t, CompositionMixed, v.ResolvedComposition)
	assert.True(t, v.CompositionAssumed)
}
