// Package lookup supplies best-effort place names and population densities
// for an impact point. It is a collaborator of the engine, not part of it:
// when no data is available it answers "unknown" and the engine degrades
// its casualty figures accordingly instead of fabricating a density.
package lookup

import "github.com/nvieira/go-asteroid-watch/internal/engine"

// Place is the result of a location lookup. Density is nil when unknown.
type Place struct {
	Name                    string
	PopulationDensityPerKm2 *float64
}

// Source resolves a location to a place. Implementations are best-effort.
type Source interface {
	Lookup(loc engine.GeoLocation) Place
}

type region struct {
	name                           string
	minLat, maxLat, minLon, maxLon float64
	densityPerKm2                  float64
}

func (r region) contains(loc engine.GeoLocation) bool {
	return loc.Latitude >= r.minLat && loc.Latitude <= r.maxLat &&
		loc.Longitude >= r.minLon && loc.Longitude <= r.maxLon
}

// regions is a coarse density table, metro areas first so they win over the
// wider regional boxes. Figures are order-of-magnitude, not census data.
var regions = []region{
	{"Greater Tokyo", 34.8, 36.2, 138.9, 140.9, 4500},
	{"New York Metro", 40.3, 41.2, -74.6, -73.2, 2000},
	{"Greater London", 51.2, 51.8, -0.6, 0.4, 1500},
	{"Greater São Paulo", -24.1, -23.2, -47.1, -46.1, 2500},
	{"Ganges Plain", 21, 31, 75, 90, 900},
	{"Eastern China", 22, 41, 105, 123, 500},
	{"Western Europe", 43, 55, -5, 20, 180},
	{"Eastern United States", 25, 47, -95, -67, 90},
	{"Western United States", 31, 49, -125, -95, 20},
	{"South America", -56, 13, -81, -34, 25},
	{"Africa", -35, 37, -17, 51, 45},
	{"Northern Asia", 50, 77, 40, 180, 3},
	{"Australia", -44, -10, 112, 154, 3},
}

// StaticSource serves the built-in coarse table. It never errors; points it
// cannot attribute come back with a nil density.
type StaticSource struct{}

func NewStaticSource() *StaticSource {
	return &StaticSource{}
}

func (s *StaticSource) Lookup(loc engine.GeoLocation) Place {
	for _, r := range regions {
		if r.contains(loc) {
			d := r.densityPerKm2
			return Place{Name: r.name, PopulationDensityPerKm2: &d}
		}
	}

	if !engine.Classify(loc).IsContinental {
		zero := 0.0
		return Place{Name: "Open Ocean", PopulationDensityPerKm2: &zero}
	}

	// Land outside every region box (e.g. polar terrain): no density data.
	return Place{Name: "Unknown"}
}
