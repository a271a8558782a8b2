package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// NeoWs feed response: objects grouped by close-approach date.
type neoFeedResponse struct {
	ElementCount    int                    `json:"element_count"`
	NearEarthObject map[string][]neoObject `json:"near_earth_objects"`
}

type neoObject struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Hazardous         bool              `json:"is_potentially_hazardous_asteroid"`
	EstimatedDiameter neoDiameter       `json:"estimated_diameter"`
	CloseApproaches   []neoApproachData `json:"close_approach_data"`
}

type neoDiameter struct {
	Meters neoDiameterRange `json:"meters"`
}

type neoDiameterRange struct {
	Min float64 `json:"estimated_diameter_min"`
	Max float64 `json:"estimated_diameter_max"`
}

type neoApproachData struct {
	EpochMillis      int64       `json:"epoch_date_close_approach"`
	RelativeVelocity neoVelocity `json:"relative_velocity"`
}

type neoVelocity struct {
	KilometersPerSecond string `json:"kilometers_per_second"`
}

// neoCandidate is one near-Earth object reduced to the fields the engine
// needs.
type neoCandidate struct {
	ID            string
	Name          string
	Hazardous     bool
	DiameterM     float64
	VelocityKMS   float64
	CloseApproach time.Time
}

// feedURL appends the date window and API key to the configured feed
// endpoint. NeoWs caps the window at 7 days.
func feedURL(base, apiKey string, day time.Time) string {
	date := day.UTC().Format("2006-01-02")
	q := url.Values{}
	q.Set("start_date", date)
	q.Set("end_date", date)
	q.Set("api_key", apiKey)
	return base + "?" + q.Encode()
}

func (m *Manager) pollNEO(ctx context.Context, feedURL string) ([]neoCandidate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	client := &http.Client{
		Timeout: 15 * time.Second,
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error while doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
	}

	var data neoFeedResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("error decoding resp.Body: %w", err)
	}

	return flattenFeed(&data), nil
}

// flattenFeed collapses the per-date grouping into candidates, one per
// object, keyed on its first close approach. Objects with unparseable
// velocities or zero diameters are skipped.
func flattenFeed(data *neoFeedResponse) []neoCandidate {
	var candidates []neoCandidate

	for _, objects := range data.NearEarthObject {
		for _, o := range objects {
			if len(o.CloseApproaches) == 0 {
				continue
			}
			approach := o.CloseApproaches[0]

			velocity, err := strconv.ParseFloat(approach.RelativeVelocity.KilometersPerSecond, 64)
			if err != nil || velocity <= 0 {
				continue
			}

			diameter := (o.EstimatedDiameter.Meters.Min + o.EstimatedDiameter.Meters.Max) / 2
			if diameter <= 0 {
				continue
			}

			candidates = append(candidates, neoCandidate{
				ID:            o.ID,
				Name:          o.Name,
				Hazardous:     o.Hazardous,
				DiameterM:     diameter,
				VelocityKMS:   velocity,
				CloseApproach: time.UnixMilli(approach.EpochMillis),
			})
		}
	}

	return candidates
}
