package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Continental(t *testing.T) {
	tests := []struct {
		name string
		loc  GeoLocation
	}{
		{"kansas", GeoLocation{39.0, -98.0}},
		{"sahara", GeoLocation{25.0, 15.0}},
		{"siberia", GeoLocation{60.0, 100.0}},
		{"outback", GeoLocation{-25.0, 135.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.loc)
			assert.True(t, c.IsContinental)
			assert.Zero(t, c.OceanDepthM)
			assert.Greater(t, c.CoastalElevationM, 0.0)
			assert.Greater(t, c.DistanceFromCoastKm, 0.0)
		})
	}
}

func TestClassify_Oceanic(t *testing.T) {
	tests := []struct {
		name string
		loc  GeoLocation
	}{
		{"mid pacific", GeoLocation{0.0, -140.0}},
		{"south atlantic", GeoLocation{-10.0, -30.0}},
		{"southern ocean", GeoLocation{-55.0, 60.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.loc)
			assert.False(t, c.IsContinental)
			assert.Greater(t, c.OceanDepthM, 0.0)
			assert.Zero(t, c.CoastalElevationM)
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	locs := []GeoLocation{
		{39.0, -98.0},
		{-10.0, -30.0},
		{35.1234, 139.5678},
	}
	for _, loc := range locs {
		first := Classify(loc)
		second := Classify(loc)
		require.Equal(t, first, second, "classification of %+v drifted between calls", loc)
	}
}

func TestOceanDepth_Tiers(t *testing.T) {
	loc := GeoLocation{-10.0, -30.0}

	shelf := oceanDepthM(loc, 10)
	slope := oceanDepthM(loc, 120)
	deep := oceanDepthM(loc, 900)

	// Tiered base depth with at most a 10% deterministic variation.
	assert.InDelta(t, shelfDepthM, shelf, 0.1*shelfDepthM)
	assert.InDelta(t, slopeDepthM, slope, 0.1*slopeDepthM)
	assert.InDelta(t, deepDepthM, deep, 0.1*deepDepthM)
	assert.Less(t, shelf, slope)
	assert.Less(t, slope, deep)
}

func TestCoastalElevation_MountainBelts(t *testing.T) {
	andes := coastalElevationM(GeoLocation{-20.0, -68.0})
	plains := coastalElevationM(GeoLocation{39.0, -98.0})

	assert.Greater(t, andes, 1500.0)
	assert.Less(t, plains, 100.0)
}

func TestValidateLocation(t *testing.T) {
	require.NoError(t, ValidateLocation(GeoLocation{0, 0}))
	require.NoError(t, ValidateLocation(GeoLocation{-90, 180}))

	err := ValidateLocation(GeoLocation{-91, 0})
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "latitude", verr.Field)

	err = ValidateLocation(GeoLocation{0, 180.5})
	require.Error(t, err)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "longitude", verr.Field)
}

func TestHaversine_KnownDistance(t *testing.T) {
	// New York to London, roughly 5570 km.
	d := haversineKm(GeoLocation{40.71, -74.01}, GeoLocation{51.51, -0.13})
	assert.InDelta(t, 5570, d, 50)
}
