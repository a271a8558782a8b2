// Package engine implements the impact consequence calculation pipeline:
// parameter validation, physical effects, geospatial classification, tsunami
// and casualty estimation, severity tiers, and defense-strategy scoring.
//
// The engine is pure and stateless. Each Compute call allocates its own
// result; it is safe to invoke concurrently without coordination.
package engine

// Engine holds the configuration-time options of the pipeline: the ordered
// set of deflection strategies to score. It carries no per-call state.
type Engine struct {
	strategies []Strategy
}

// New builds an engine scoring the given strategies, in order. With no
// strategies, only the kinetic impactor is offered.
func New(strategies ...Strategy) *Engine {
	if len(strategies) == 0 {
		strategies = []Strategy{KineticImpactorStrategy()}
	}
	return &Engine{strategies: strategies}
}

// ComputeOptions carries the per-call collaborator inputs: the best-effort
// population density (nil when unavailable) and the deflection lead time.
type ComputeOptions struct {
	PopulationDensityPerKm2 *float64
	TimeToImpactHours       float64
}

// ImpactAssessment is the single immutable output record of one Compute
// call. A new computation produces a new, independent record.
type ImpactAssessment struct {
	Parameters     ImpactParameters     `json:"parameters"`
	Location       GeoLocation          `json:"location"`
	Classification GeoClassification    `json:"classification"`
	Effects        PhysicalEffects      `json:"effects"`
	Tsunami        TsunamiEffect        `json:"tsunami"`
	Casualties     Casualties           `json:"casualties"`
	Severity       Severity             `json:"severity"`
	Defense        []StrategyAssessment `json:"defense_strategies"`

	// CompositionAssumed is set when an unknown composition string fell back
	// to the mixed density.
	CompositionAssumed bool `json:"composition_assumed,omitempty"`
}

// Compute runs the full pipeline: validate, physical effects, geospatial
// classification, tsunami, casualties, severity, defense. A *ValidationError
// from the validator propagates to the caller unchanged; no partial
// assessment is ever returned.
func (e *Engine) Compute(params ImpactParameters, loc GeoLocation, opts ComputeOptions) (*ImpactAssessment, error) {
	validated, err := Validate(params)
	if err != nil {
		return nil, err
	}
	if err := ValidateLocation(loc); err != nil {
		return nil, err
	}

	effects := ComputeEffects(validated)
	class := Classify(loc)
	tsunami := ComputeTsunami(effects.ExplosiveYieldTons, class)
	casualties := EstimateCasualties(effects.BlastRadiusKm, opts.PopulationDensityPerKm2)
	severity := ClassifySeverity(effects.ExplosiveYieldTons)
	defense := EvaluateStrategies(e.strategies, opts.TimeToImpactHours)

	return &ImpactAssessment{
		Parameters:         params,
		Location:           loc,
		Classification:     class,
		Effects:            effects,
		Tsunami:            tsunami,
		Casualties:         casualties,
		Severity:           severity,
		Defense:            defense,
		CompositionAssumed: validated.CompositionAssumed,
	}, nil
}

// Strategies exposes the configured strategy set, e.g. for report rendering.
func (e *Engine) Strategies() []Strategy {
	out := make([]Strategy, len(e.strategies))
	copy(out, e.strategies)
	return out
}
