package engine

import "math"

// joulesPerTonTNT converts kinetic energy to TNT-equivalent tons.
const joulesPerTonTNT = 4.184e9

// Minimum floors for the derived effect fields. Even the smallest legal
// asteroid reports at least these values.
const (
	minCraterDiameterKm = 0.1
	minFireballRadiusKm = 0.05
	minBlastRadiusKm    = 0.1
	minSeismicMagnitude = 1.0
)

// PhysicalEffects holds the mass/energy figures and damage-zone distances
// derived from validated impact parameters.
type PhysicalEffects struct {
	MassKg             float64 `json:"mass_kg"`
	KineticEnergyJ     float64 `json:"kinetic_energy_j"`
	ExplosiveYieldTons float64 `json:"explosive_yield_tons"`
	CraterDiameterKm   float64 `json:"crater_diameter_km"`
	FireballRadiusKm   float64 `json:"fireball_radius_km"`
	BlastRadiusKm      float64 `json:"blast_radius_km"`
	SeismicMagnitude   float64 `json:"seismic_magnitude"`
}

// ComputeEffects derives mass, kinetic energy, TNT-equivalent yield, and the
// crater/fireball/blast/seismic effects from validated parameters. Every
// output is monotonically increasing in diameter and velocity.
//
// The impact angle is validated and carried but does not enter these
// formulas; the empirical scaling laws used here are angle-averaged.
func ComputeEffects(v ValidatedParameters) PhysicalEffects {
	radiusM := v.DiameterM / 2
	volumeM3 := (4.0 / 3.0) * math.Pi * math.Pow(radiusM, 3)
	massKg := volumeM3 * v.DensityKgM3

	velocityMPS := v.VelocityKMS * 1000
	kineticEnergyJ := 0.5 * massKg * velocityMPS * velocityMPS
	yieldTons := kineticEnergyJ / joulesPerTonTNT

	return PhysicalEffects{
		MassKg:             massKg,
		KineticEnergyJ:     kineticEnergyJ,
		ExplosiveYieldTons: yieldTons,
		CraterDiameterKm:   craterDiameterKm(yieldTons),
		FireballRadiusKm:   fireballRadiusKm(yieldTons),
		BlastRadiusKm:      blastRadiusKm(yieldTons),
		SeismicMagnitude:   seismicMagnitude(yieldTons),
	}
}

// craterDiameterKm applies the Collins et al. 2005 crater scaling law.
func craterDiameterKm(yieldTons float64) float64 {
	return math.Max(1.16*math.Pow(yieldTons, 0.294), minCraterDiameterKm)
}

// fireballRadiusKm applies the Glasstone & Dolan 1977 fireball scaling law.
func fireballRadiusKm(yieldTons float64) float64 {
	return math.Max(0.28*math.Pow(yieldTons, 0.4), minFireballRadiusKm)
}

// blastRadiusKm estimates the 5 psi overpressure radius.
func blastRadiusKm(yieldTons float64) float64 {
	return math.Max(0.45*math.Pow(yieldTons, 0.33), minBlastRadiusKm)
}

// seismicMagnitude estimates the equivalent earthquake magnitude. Yield is
// guaranteed positive by validation, so the log is always defined.
func seismicMagnitude(yieldTons float64) float64 {
	return math.Max(0.67*math.Log10(yieldTons)+4.0, minSeismicMagnitude)
}
