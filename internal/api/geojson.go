package api

import (
	"github.com/nvieira/go-asteroid-watch/internal/models"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

func toGeoJSON(assessments []models.Assessment) FeatureCollection {
	features := make([]Feature, 0, len(assessments))

	for _, a := range assessments {
		f := Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{a.Longitude, a.Latitude},
			},
			Properties: map[string]any{
				"id":                a.ID,
				"name":              a.Name,
				"source":            a.Source,
				"severity":          string(a.Severity),
				"yield_tons":        a.ExplosiveYieldTons,
				"blast_radius_km":   a.BlastRadiusKm,
				"seismic_magnitude": a.SeismicMagnitude,
				"tsunami_risk":      a.TsunamiRisk,
				"is_continental":    a.IsContinental,
				"created_at":        a.CreatedAt,
			},
		}
		features = append(features, f)
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}

// toZoneGeoJSON renders one assessment as the damage-zone circles a map
// client draws: the impact point plus one feature per zone with its radius
// in meters.
func toZoneGeoJSON(a *models.Assessment) FeatureCollection {
	point := Geometry{
		Type:        "Point",
		Coordinates: []float64{a.Longitude, a.Latitude},
	}

	features := []Feature{
		{
			Type:     "Feature",
			Geometry: point,
			Properties: map[string]any{
				"id":       a.ID,
				"zone":     "impact_point",
				"severity": string(a.Severity),
			},
		},
		{
			Type:     "Feature",
			Geometry: point,
			Properties: map[string]any{
				"zone":     "blast",
				"radius_m": a.BlastRadiusKm * 1000,
			},
		},
		{
			Type:     "Feature",
			Geometry: point,
			Properties: map[string]any{
				"zone":     "fireball",
				"radius_m": a.FireballRadiusKm * 1000,
			},
		},
		{
			Type:     "Feature",
			Geometry: point,
			Properties: map[string]any{
				"zone":     "crater",
				"radius_m": a.CraterDiameterKm * 1000 / 2,
			},
		},
	}

	if !a.IsContinental && a.TsunamiHeightM > 0 {
		var affectedKm float64
		// Affected distance lives in the raw payload; fall back to blast
		// radius if the payload is missing.
		if full, err := a.FullAssessment(); err == nil {
			affectedKm = full.Tsunami.AffectedDistanceKm
		} else {
			affectedKm = a.BlastRadiusKm
		}
		features = append(features, Feature{
			Type:     "Feature",
			Geometry: point,
			Properties: map[string]any{
				"zone":     "tsunami",
				"radius_m": affectedKm * 1000,
				"risk":     a.TsunamiRisk,
			},
		})
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
