package engine

import "math"

// TsunamiRisk is the qualitative band for the estimated wave height.
type TsunamiRisk string

const (
	TsunamiRiskNone     TsunamiRisk = "none"
	TsunamiRiskLow      TsunamiRisk = "low"
	TsunamiRiskModerate TsunamiRisk = "moderate"
	TsunamiRiskHigh     TsunamiRisk = "high"
	TsunamiRiskVeryHigh TsunamiRisk = "very_high"
	TsunamiRiskExtreme  TsunamiRisk = "extreme"
)

// TsunamiEffect describes the oceanic-impact wave. For continental impacts
// every numeric field is zero and the risk is "none".
type TsunamiEffect struct {
	HeightM            float64     `json:"height_m"`
	Risk               TsunamiRisk `json:"risk"`
	AffectedDistanceKm float64     `json:"affected_distance_km"`
	WarningTimeHours   float64     `json:"warning_time_hours"`
}

const (
	// energyTransferFraction is the share of impact energy coupled into the
	// water column.
	energyTransferFraction = 0.10

	maxWaveHeightM        = 100
	maxAffectedDistanceKm = 2000
	minWarningTimeHours   = 0.1

	// deepWaterTsunamiSpeedKmh drives the coastal warning-time estimate.
	deepWaterTsunamiSpeedKmh = 720
)

// ComputeTsunami estimates the tsunami generated by an oceanic impact of the
// given yield. A continental classification always produces the zero record.
func ComputeTsunami(yieldTons float64, class GeoClassification) TsunamiEffect {
	if class.IsContinental {
		return TsunamiEffect{Risk: TsunamiRiskNone}
	}

	yieldKt := yieldTons / 1000
	depthM := math.Max(class.OceanDepthM, 100)

	heightM := 2.0 * math.Pow(yieldKt*energyTransferFraction, 0.25) / math.Sqrt(depthM/1000)
	heightM = math.Min(math.Max(heightM, 0), maxWaveHeightM)

	return TsunamiEffect{
		HeightM:            heightM,
		Risk:               tsunamiRisk(heightM),
		AffectedDistanceKm: math.Min(200*math.Pow(yieldKt, 0.4), maxAffectedDistanceKm),
		WarningTimeHours:   math.Max(class.DistanceFromCoastKm/deepWaterTsunamiSpeedKmh, minWarningTimeHours),
	}
}

func tsunamiRisk(heightM float64) TsunamiRisk {
	switch {
	case heightM < 1:
		return TsunamiRiskLow
	case heightM < 5:
		return TsunamiRiskModerate
	case heightM < 15:
		return TsunamiRiskHigh
	case heightM < 30:
		return TsunamiRiskVeryHigh
	default:
		return TsunamiRiskExtreme
	}
}
