package engine

import (
	"fmt"
	"strings"
)

// Composition identifies the bulk material class of an asteroid. It selects
// the density used for mass estimation.
type Composition string

const (
	CompositionRocky        Composition = "rocky"
	CompositionMetallic     Composition = "metallic"
	CompositionIcy          Composition = "icy"
	CompositionCarbonaceous Composition = "carbonaceous"
	CompositionMixed        Composition = "mixed"
)

// densityKgM3 maps each known composition to its assumed bulk density.
var densityKgM3 = map[Composition]float64{
	CompositionRocky:        3000,
	CompositionMetallic:     7800,
	CompositionIcy:          1500,
	CompositionCarbonaceous: 2500,
	CompositionMixed:        3500,
}

// ImpactParameters are the caller-supplied physical inputs. The struct is a
// plain value; a recomputation passes a new value rather than mutating one.
type ImpactParameters struct {
	DiameterM      float64     `json:"diameter_m"`
	VelocityKMS    float64     `json:"velocity_kms"`
	ImpactAngleDeg float64     `json:"impact_angle_deg"`
	Composition    Composition `json:"composition"`
}

// ValidatedParameters is the output of Validate: the original parameters with
// the resolved density attached. CompositionAssumed is set when the caller
// supplied an unrecognized composition and the mixed density was used instead.
type ValidatedParameters struct {
	ImpactParameters
	DensityKgM3         float64
	CompositionAssumed  bool
	ResolvedComposition Composition
}

// ValidationError reports an out-of-range numeric field. It is fatal to the
// invocation: no partial assessment is produced.
type ValidationError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %g (valid range %g to %g)", e.Field, e.Value, e.Min, e.Max)
}

const (
	maxDiameterM   = 10000
	maxVelocityKMS = 100
	maxAngleDeg    = 90
)

// Validate range-checks the parameters and resolves the composition density.
// Unknown composition strings fall back to the mixed density rather than
// failing; out-of-range numerics return a *ValidationError naming the field.
func Validate(p ImpactParameters) (ValidatedParameters, error) {
	if p.DiameterM <= 0 || p.DiameterM > maxDiameterM {
		return ValidatedParameters{}, &ValidationError{Field: "diameter_m", Value: p.DiameterM, Min: 0, Max: maxDiameterM}
	}
	if p.VelocityKMS <= 0 || p.VelocityKMS > maxVelocityKMS {
		return ValidatedParameters{}, &ValidationError{Field: "velocity_kms", Value: p.VelocityKMS, Min: 0, Max: maxVelocityKMS}
	}
	if p.ImpactAngleDeg < 0 || p.ImpactAngleDeg > maxAngleDeg {
		return ValidatedParameters{}, &ValidationError{Field: "impact_angle_deg", Value: p.ImpactAngleDeg, Min: 0, Max: maxAngleDeg}
	}

	resolved := normalizeComposition(p.Composition)
	density, known := densityKgM3[resolved]
	if !known {
		resolved = CompositionMixed
		density = densityKgM3[CompositionMixed]
	}

	return ValidatedParameters{
		ImpactParameters:    p,
		DensityKgM3:         density,
		CompositionAssumed:  !known,
		ResolvedComposition: resolved,
	}, nil
}

// normalizeComposition folds common aliases ("iron", "metallic/iron") onto
// the canonical composition names.
func normalizeComposition(c Composition) Composition {
	s := strings.ToLower(strings.TrimSpace(string(c)))
	switch s {
	case "iron", "metallic/iron", "metal":
		return CompositionMetallic
	case "ice":
		return CompositionIcy
	}
	return Composition(s)
}
