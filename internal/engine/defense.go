package engine

import "math"

// Strategy describes one deflection approach as configuration: effectiveness
// grows linearly with lead time from Base up to Cap over ScaleHours. New
// strategies are added by extending the configured list, not by touching the
// assessment pipeline.
type Strategy struct {
	Type       string  `json:"type"`
	Base       float64 `json:"base"`
	Cap        float64 `json:"cap"`
	Gain       float64 `json:"gain"`
	ScaleHours float64 `json:"scale_hours"`
	CostTier   string  `json:"cost_tier"`
}

// recommendThreshold marks a strategy as recommended once its effectiveness
// clears it.
const recommendThreshold = 0.6

// KineticImpactorStrategy is the baseline deflection option.
func KineticImpactorStrategy() Strategy {
	return Strategy{Type: "kinetic", Base: 0.5, Cap: 0.9, Gain: 0.4, ScaleHours: 8760, CostTier: "medium"}
}

// GravityTractorStrategy is the slower, optional deflection option.
func GravityTractorStrategy() Strategy {
	return Strategy{Type: "gravity", Base: 0.4, Cap: 0.85, Gain: 0.45, ScaleHours: 17520, CostTier: "high"}
}

// Effectiveness is the fractional probability the strategy averts the impact
// given the lead time. Monotonically non-decreasing in timeToImpactHours.
func (s Strategy) Effectiveness(timeToImpactHours float64) float64 {
	if timeToImpactHours < 0 {
		timeToImpactHours = 0
	}
	return math.Min(s.Cap, s.Base+(timeToImpactHours/s.ScaleHours)*s.Gain)
}

// StrategyAssessment is one entry of the ranked defense list.
type StrategyAssessment struct {
	Type          string  `json:"type"`
	Effectiveness float64 `json:"effectiveness"`
	Recommended   bool    `json:"recommended"`
	CostTier      string  `json:"cost_tier"`
}

// EvaluateStrategies scores each configured strategy for the given lead
// time. Output order follows declaration order of the strategy list.
func EvaluateStrategies(strategies []Strategy, timeToImpactHours float64) []StrategyAssessment {
	out := make([]StrategyAssessment, 0, len(strategies))
	for _, s := range strategies {
		eff := s.Effectiveness(timeToImpactHours)
		out = append(out, StrategyAssessment{
			Type:          s.Type,
			Effectiveness: eff,
			Recommended:   eff > recommendThreshold,
			CostTier:      s.CostTier,
		})
	}
	return out
}

// DeflectionOutcome grades a kinetic-impactor interception attempt.
type DeflectionOutcome string

const (
	DeflectionDeflected DeflectionOutcome = "deflected"
	DeflectionPartial   DeflectionOutcome = "partial"
	DeflectionWeak      DeflectionOutcome = "weak"
	DeflectionFailed    DeflectionOutcome = "failed"
)

// Interception is the result of a head-on kinetic-impactor collision,
// derived from conservation of linear momentum.
type Interception struct {
	FinalVelocityMPS float64           `json:"final_velocity_mps"`
	SlowdownPct      float64           `json:"slowdown_pct"`
	Outcome          DeflectionOutcome `json:"outcome"`
}

// Intercept models an impactor of impactorMassKg travelling at
// impactorVelocityMPS striking the asteroid head on. Velocities are speeds;
// the impactor moves against the asteroid's direction of travel.
func Intercept(asteroidMassKg, asteroidVelocityMPS, impactorMassKg, impactorVelocityMPS float64) Interception {
	finalV := (asteroidMassKg*asteroidVelocityMPS - impactorMassKg*impactorVelocityMPS) /
		(asteroidMassKg + impactorMassKg)
	slowdown := (1 - math.Abs(finalV)/asteroidVelocityMPS) * 100

	var outcome DeflectionOutcome
	switch {
	case slowdown >= 99.9:
		outcome = DeflectionDeflected
	case slowdown >= 80:
		outcome = DeflectionPartial
	case slowdown >= 50:
		outcome = DeflectionWeak
	default:
		outcome = DeflectionFailed
	}

	return Interception{
		FinalVelocityMPS: finalV,
		SlowdownPct:      slowdown,
		Outcome:          outcome,
	}
}
