package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/nvieira/go-asteroid-watch/internal/engine"
	"github.com/nvieira/go-asteroid-watch/internal/lookup"
)

// impact-sim runs one impact scenario from the command line and prints a
// plain-text report: no server, no database.
func main() {
	var (
		diameter    = flag.Float64("diameter", 100, "asteroid diameter in meters")
		velocity    = flag.Float64("velocity", 20, "impact velocity in km/s")
		angle       = flag.Float64("angle", 45, "impact angle in degrees from horizontal")
		composition = flag.String("composition", "rocky", "composition: rocky, metallic, icy, carbonaceous, mixed")
		lat         = flag.Float64("lat", -10, "impact latitude")
		lon         = flag.Float64("lon", -30, "impact longitude")
		leadTime    = flag.Float64("lead-time", 720, "warning lead time in hours")
		density     = flag.Float64("density", -1, "population density per km2 (overrides lookup; negative uses lookup)")
	)
	flag.Parse()

	eng := engine.New(engine.KineticImpactorStrategy(), engine.GravityTractorStrategy())
	loc := engine.GeoLocation{Latitude: *lat, Longitude: *lon}
	place := lookup.NewStaticSource().Lookup(loc)

	popDensity := place.PopulationDensityPerKm2
	if *density >= 0 {
		popDensity = density
	}

	result, err := eng.Compute(engine.ImpactParameters{
		DiameterM:      *diameter,
		VelocityKMS:    *velocity,
		ImpactAngleDeg: *angle,
		Composition:    engine.Composition(*composition),
	}, loc, engine.ComputeOptions{
		PopulationDensityPerKm2: popDensity,
		TimeToImpactHours:       *leadTime,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	printReport(result, place.Name)
}

func printReport(a *engine.ImpactAssessment, placeName string) {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("IMPACT ASSESSMENT")
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("Location:        %s (%.4f, %.4f)\n", placeName, a.Location.Latitude, a.Location.Longitude)
	terrain := "ocean"
	if a.Classification.IsContinental {
		terrain = "land"
	}
	fmt.Printf("Terrain:         %s\n", terrain)
	fmt.Printf("Composition:     %s", a.Parameters.Composition)
	if a.CompositionAssumed {
		fmt.Print(" (assumed)")
	}
	fmt.Println()

	fmt.Println()
	fmt.Println("Physical effects")
	fmt.Printf("  Mass:              %.4g kg\n", a.Effects.MassKg)
	fmt.Printf("  Kinetic energy:    %.4g J\n", a.Effects.KineticEnergyJ)
	fmt.Printf("  Explosive yield:   %.1f tons TNT\n", a.Effects.ExplosiveYieldTons)
	fmt.Printf("  Crater diameter:   %.2f km\n", a.Effects.CraterDiameterKm)
	fmt.Printf("  Fireball radius:   %.2f km\n", a.Effects.FireballRadiusKm)
	fmt.Printf("  Blast radius:      %.2f km\n", a.Effects.BlastRadiusKm)
	fmt.Printf("  Seismic magnitude: %.2f\n", a.Effects.SeismicMagnitude)

	if !a.Classification.IsContinental {
		fmt.Println()
		fmt.Println("Tsunami")
		fmt.Printf("  Wave height:       %.2f m\n", a.Tsunami.HeightM)
		fmt.Printf("  Risk:              %s\n", a.Tsunami.Risk)
		fmt.Printf("  Affected distance: %.0f km\n", a.Tsunami.AffectedDistanceKm)
		fmt.Printf("  Warning time:      %.1f h\n", a.Tsunami.WarningTimeHours)
	}

	fmt.Println()
	if a.Casualties.Known {
		fmt.Println("Casualties (estimated)")
		fmt.Printf("  Affected:   %d\n", a.Casualties.Estimated)
		fmt.Printf("  Injured:    %d\n", a.Casualties.Injured)
		fmt.Printf("  Fatalities: %d\n", a.Casualties.Fatalities)
	} else {
		fmt.Println("Casualties: unknown (no population data)")
	}

	fmt.Println()
	fmt.Printf("Severity: %s\n", strings.ToUpper(string(a.Severity)))

	fmt.Println()
	fmt.Println("Deflection options")
	for _, s := range a.Defense {
		marker := " "
		if s.Recommended {
			marker = "*"
		}
		fmt.Printf("  %s %-10s effectiveness %.1f%%  cost %s\n", marker, s.Type, s.Effectiveness*100, s.CostTier)
	}
	fmt.Println(strings.Repeat("=", 60))
}
