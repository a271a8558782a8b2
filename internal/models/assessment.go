package models

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nvieira/go-asteroid-watch/internal/engine"
)

// Assessment is the persisted record of one engine computation: the inputs,
// the headline result fields flattened for querying, and the full assessment
// JSON for report rendering.
type Assessment struct {
	ID     string // deterministic, e.g. "impact_3f9a1c2b44d0e817"
	Source string // "api", "neo", "deflection"
	Name   string // place name or NEO designation, best effort

	DiameterM      float64
	VelocityKMS    float64
	ImpactAngleDeg float64
	Composition    string
	Latitude       float64
	Longitude      float64

	IsContinental      bool
	ExplosiveYieldTons float64
	CraterDiameterKm   float64
	FireballRadiusKm   float64
	BlastRadiusKm      float64
	SeismicMagnitude   float64
	TsunamiHeightM     float64
	TsunamiRisk        string
	Severity           engine.Severity
	SeverityRank       int
	CasualtiesKnown    bool
	CasualtiesEstimated int64

	Raw       []byte    // full engine.ImpactAssessment JSON
	CreatedAt time.Time // when we computed it
}

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

func (a *Assessment) Coordinates() Coordinates {
	return Coordinates{Latitude: a.Latitude, Longitude: a.Longitude}
}

// FullAssessment unmarshals the stored engine result.
func (a *Assessment) FullAssessment() (*engine.ImpactAssessment, error) {
	var full engine.ImpactAssessment
	if err := json.Unmarshal(a.Raw, &full); err != nil {
		return nil, fmt.Errorf("unmarshal stored assessment: %w", err)
	}
	return &full, nil
}

// FromAssessment flattens an engine result into a persistable record.
// The ID is derived from the inputs, so recomputing the same scenario from
// the same source produces the same record (idempotent ingestion).
func FromAssessment(source, name string, result *engine.ImpactAssessment, createdAt time.Time) (*Assessment, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("marshal assessment: %w", err)
	}

	return &Assessment{
		ID:     assessmentID(source, result),
		Source: source,
		Name:   name,

		DiameterM:      result.Parameters.DiameterM,
		VelocityKMS:    result.Parameters.VelocityKMS,
		ImpactAngleDeg: result.Parameters.ImpactAngleDeg,
		Composition:    string(result.Parameters.Composition),
		Latitude:       result.Location.Latitude,
		Longitude:      result.Location.Longitude,

		IsContinental:      result.Classification.IsContinental,
		ExplosiveYieldTons: result.Effects.ExplosiveYieldTons,
		CraterDiameterKm:   result.Effects.CraterDiameterKm,
		FireballRadiusKm:   result.Effects.FireballRadiusKm,
		BlastRadiusKm:      result.Effects.BlastRadiusKm,
		SeismicMagnitude:   result.Effects.SeismicMagnitude,
		TsunamiHeightM:     result.Tsunami.HeightM,
		TsunamiRisk:        string(result.Tsunami.Risk),
		Severity:           result.Severity,
		SeverityRank:       result.Severity.Rank(),
		CasualtiesKnown:    result.Casualties.Known,
		CasualtiesEstimated: result.Casualties.Estimated,

		Raw:       raw,
		CreatedAt: createdAt,
	}, nil
}

// assessmentID hashes the scenario key fields so identical inputs map to the
// same record.
func assessmentID(source string, result *engine.ImpactAssessment) string {
	input := fmt.Sprintf("%s|%.4f|%.4f|%.2f|%s|%.6f|%.6f",
		source,
		result.Parameters.DiameterM,
		result.Parameters.VelocityKMS,
		result.Parameters.ImpactAngleDeg,
		result.Parameters.Composition,
		result.Location.Latitude,
		result.Location.Longitude,
	)
	hash := sha256.Sum256([]byte(input))
	return "impact_" + hex.EncodeToString(hash[:8])
}
