package engine

import (
	"fmt"
	"hash/fnv"
	"math"
)

// GeoLocation is a point on the globe. The engine only uses it for
// continental/oceanic classification and coastal-distance estimation.
type GeoLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ValidateLocation range-checks a location. Same contract as Validate:
// out-of-range coordinates are fatal to the invocation.
func ValidateLocation(loc GeoLocation) error {
	if loc.Latitude < -90 || loc.Latitude > 90 {
		return &ValidationError{Field: "latitude", Value: loc.Latitude, Min: -90, Max: 90}
	}
	if loc.Longitude < -180 || loc.Longitude > 180 {
		return &ValidationError{Field: "longitude", Value: loc.Longitude, Min: -180, Max: 180}
	}
	return nil
}

// GeoClassification is the derived terrain bucket for an impact point.
// OceanDepthM is 0 for continental points; CoastalElevationM is 0 for
// oceanic ones.
type GeoClassification struct {
	IsContinental      bool    `json:"is_continental"`
	DistanceFromCoastKm float64 `json:"distance_from_coast_km"`
	OceanDepthM        float64 `json:"ocean_depth_m"`
	CoastalElevationM  float64 `json:"coastal_elevation_m"`
}

type latLonBox struct {
	name                       string
	minLat, maxLat, minLon, maxLon float64
}

func (b latLonBox) contains(loc GeoLocation) bool {
	return loc.Latitude >= b.minLat && loc.Latitude <= b.maxLat &&
		loc.Longitude >= b.minLon && loc.Longitude <= b.maxLon
}

// landmasses is a coarse one-box-per-landmass stand-in for a real land/sea
// mask. Points inside any box classify as continental.
var landmasses = []latLonBox{
	{"north-america", 15, 72, -168, -52},
	{"south-america", -56, 13, -81, -34},
	{"europe", 36, 71, -10, 40},
	{"africa", -35, 37, -17, 51},
	{"asia", 5, 77, 40, 180},
	{"australia", -44, -10, 112, 154},
	{"greenland", 60, 84, -73, -12},
	{"antarctica", -90, -65, -180, 180},
}

// mountainBelts marks regions where the coastal-elevation heuristic reports
// high terrain.
var mountainBelts = []latLonBox{
	{"andes", -55, 10, -80, -62},
	{"rockies", 30, 60, -125, -100},
	{"himalaya", 25, 40, 70, 100},
	{"alps", 43, 48, 5, 16},
}

// coastRefs is a sparse set of reference coastline points used to estimate
// distance to the nearest major coastline.
var coastRefs = []GeoLocation{
	{37.8, -122.5},  // US west coast
	{40.6, -74.0},   // US east coast
	{25.8, -80.2},   // Florida
	{49.3, -123.1},  // British Columbia
	{19.0, -104.3},  // Mexico Pacific
	{-12.0, -77.1},  // Peru
	{-34.9, -56.2},  // Rio de la Plata
	{-23.0, -43.2},  // Brazil
	{51.5, 0.1},     // North Sea
	{38.7, -9.1},    // Iberian Atlantic
	{43.3, 5.4},     // Mediterranean north
	{31.2, 29.9},    // Mediterranean south
	{6.5, 3.4},      // Gulf of Guinea
	{-33.9, 18.4},   // Cape of Good Hope
	{-1.3, 41.0},    // Horn of Africa
	{19.1, 72.8},    // Arabian Sea
	{13.1, 80.3},    // Bay of Bengal
	{1.3, 103.8},    // Malacca
	{31.2, 121.5},   // East China Sea
	{35.6, 139.8},   // Japan Pacific
	{-33.9, 151.2},  // Australia east
	{-31.9, 115.9},  // Australia west
	{61.0, -150.0},  // Alaska
	{64.1, -21.9},   // Iceland
}

// Ocean depth tiers by distance from the nearest major coastline: continental
// shelf, slope, then abyssal plain.
const (
	shelfDepthM = 100
	slopeDepthM = 1500
	deepDepthM  = 4000
)

// Classify buckets a location as continental or oceanic and estimates
// coastal distance, ocean depth, and coastal elevation. The estimates are
// coarse heuristics, not real bathymetry/DEM lookups, but they are a pure
// function of the coordinates: identical input always yields an identical
// classification.
func Classify(loc GeoLocation) GeoClassification {
	coastKm := distanceToNearestCoastKm(loc)
	if onLand(loc) {
		return GeoClassification{
			IsContinental:      true,
			DistanceFromCoastKm: coastKm,
			CoastalElevationM:  coastalElevationM(loc),
		}
	}
	return GeoClassification{
		DistanceFromCoastKm: coastKm,
		OceanDepthM:        oceanDepthM(loc, coastKm),
	}
}

func onLand(loc GeoLocation) bool {
	for _, b := range landmasses {
		if b.contains(loc) {
			return true
		}
	}
	return false
}

// oceanDepthM tiers the depth by distance from coast, then applies a
// deterministic per-coordinate variation so neighbouring points do not all
// report the same flat value.
func oceanDepthM(loc GeoLocation, coastKm float64) float64 {
	var base float64
	switch {
	case coastKm < 50:
		base = shelfDepthM
	case coastKm < 200:
		base = slopeDepthM
	default:
		base = deepDepthM
	}
	return base * (0.9 + 0.2*coordFraction(loc))
}

// coastalElevationM estimates terrain elevation for continental points:
// mountainous near the major belts, low plains elsewhere.
func coastalElevationM(loc GeoLocation) float64 {
	base := 50.0
	for _, b := range mountainBelts {
		if b.contains(loc) {
			base = 1800
			break
		}
	}
	return base * (0.9 + 0.2*coordFraction(loc))
}

// coordFraction maps a location to a stable fraction in [0,1). It replaces
// the random jitter of earlier revisions so that repeated classification of
// the same point is bit-identical.
func coordFraction(loc GeoLocation) float64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%.4f|%.4f", loc.Latitude, loc.Longitude)
	return float64(h.Sum64()%10000) / 10000
}

const earthRadiusKm = 6371.0

func distanceToNearestCoastKm(loc GeoLocation) float64 {
	nearest := math.MaxFloat64
	for _, ref := range coastRefs {
		if d := haversineKm(loc, ref); d < nearest {
			nearest = d
		}
	}
	return nearest
}

func haversineKm(a, b GeoLocation) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	s := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(s))
}
