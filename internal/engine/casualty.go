package engine

import "math"

// Casualties is the population-density-driven estimate for the blast zone.
// Known is false when no population density was available; the estimator
// reports "unknown" rather than guessing a density, so the numeric fields
// are zero in that case.
type Casualties struct {
	Known      bool  `json:"known"`
	Estimated  int64 `json:"estimated"`
	Injured    int64 `json:"injured"`
	Fatalities int64 `json:"fatalities"`
}

// maxCasualtyRate caps the share of the affected population counted as
// casualties.
const maxCasualtyRate = 0.9

// EstimateCasualties applies the blast-area casualty model. The 30/70
// injured/fatality split is rounded so that injured+fatalities stays within
// one of the estimate.
func EstimateCasualties(blastRadiusKm float64, populationDensityPerKm2 *float64) Casualties {
	if populationDensityPerKm2 == nil {
		return Casualties{}
	}

	affectedAreaKm2 := math.Pi * blastRadiusKm * blastRadiusKm
	affectedPopulation := affectedAreaKm2 * *populationDensityPerKm2
	casualtyRate := math.Min(maxCasualtyRate, blastRadiusKm/100)

	estimated := int64(math.Round(affectedPopulation * casualtyRate))
	injured := int64(math.Round(float64(estimated) * 0.3))

	return Casualties{
		Known:      true,
		Estimated:  estimated,
		Injured:    injured,
		Fatalities: estimated - injured,
	}
}
