package ingestion

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/nvieira/go-asteroid-watch/internal/config"
	"github.com/nvieira/go-asteroid-watch/internal/engine"
	"github.com/nvieira/go-asteroid-watch/internal/lookup"
	"github.com/nvieira/go-asteroid-watch/internal/models"
	"github.com/nvieira/go-asteroid-watch/internal/observability"
	"github.com/nvieira/go-asteroid-watch/internal/repository"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// mockAssessmentRepo implements repository.AssessmentRepository for testing
type mockAssessmentRepo struct {
	mu          sync.Mutex
	assessments map[string]*models.Assessment
	addCount    atomic.Int64
}

func newMockRepo() *mockAssessmentRepo {
	return &mockAssessmentRepo{
		assessments: make(map[string]*models.Assessment),
	}
}

func (m *mockAssessmentRepo) Add(ctx context.Context, a *models.Assessment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assessments[a.ID] = a
	m.addCount.Add(1)
	return nil
}

func (m *mockAssessmentRepo) GetByID(ctx context.Context, id string) (*models.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.assessments[id], nil
}

func (m *mockAssessmentRepo) Exists(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, exists := m.assessments[id]
	return exists, nil
}

func (m *mockAssessmentRepo) ListAssessments(ctx context.Context, opts repository.Filter) ([]models.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var results []models.Assessment
	for _, a := range m.assessments {
		results = append(results, *a)
	}
	return results, nil
}

func testConfig(feedURL string, enabled bool) *config.Config {
	return &config.Config{
		Worker: config.WorkerConfig{
			Count:      2,
			BufferSize: 20,
		},
		Sources: config.SourcesConfig{
			NEOEnabled:      enabled,
			NEOFeedURL:      feedURL,
			NEOAPIKey:       "TEST_KEY",
			NEOPollInterval: time.Minute,
		},
		Engine: config.EngineConfig{
			ReferenceLatitude:  -10,
			ReferenceLongitude: -30,
		},
	}
}

func newTestManager(cfg *config.Config, repo repository.AssessmentRepository) *Manager {
	eng := engine.New(engine.KineticImpactorStrategy())
	return NewManager(cfg, repo, nil, eng, lookup.NewStaticSource(), observability.NewMetricsForTesting())
}

// neoFeedPayload is a trimmed NeoWs feed with two objects: one 100m rocky
// body at 20 km/s and one small slow one.
func neoFeedPayload(approachMillis int64) string {
	return fmt.Sprintf(`{
		"element_count": 2,
		"near_earth_objects": {
			"2026-08-27": [
				{
					"id": "3542519",
					"name": "(2010 PK9)",
					"is_potentially_hazardous_asteroid": true,
					"estimated_diameter": {
						"meters": {"estimated_diameter_min": 80.0, "estimated_diameter_max": 120.0}
					},
					"close_approach_data": [
						{
							"epoch_date_close_approach": %d,
							"relative_velocity": {"kilometers_per_second": "20.0"}
						}
					]
				},
				{
					"id": "2465633",
					"name": "465633 (2009 JR5)",
					"is_potentially_hazardous_asteroid": false,
					"estimated_diameter": {
						"meters": {"estimated_diameter_min": 8.0, "estimated_diameter_max": 12.0}
					},
					"close_approach_data": [
						{
							"epoch_date_close_approach": %d,
							"relative_velocity": {"kilometers_per_second": "5.0"}
						}
					]
				}
			]
		}
	}`, approachMillis, approachMillis)
}

func TestManager_StartStop(t *testing.T) {
	repo := newMockRepo()
	mgr := newTestManager(testConfig("http://localhost:0", false), repo)

	ctx, cancel := context.WithCancel(context.Background())

	// Start should not block
	mgr.Start(ctx)

	time.Sleep(50 * time.Millisecond)

	cancel()
	mgr.Stop()
}

func TestManager_PollIngestsFeed(t *testing.T) {
	defer http.DefaultTransport.(*http.Transport).CloseIdleConnections()

	approach := time.Now().Add(30 * 24 * time.Hour).UnixMilli()
	var polls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		polls.Add(1)
		if r.URL.Query().Get("api_key") != "TEST_KEY" {
			http.Error(w, "missing api key", http.StatusForbidden)
			return
		}
		fmt.Fprint(w, neoFeedPayload(approach))
	}))
	defer server.Close()

	repo := newMockRepo()
	mgr := newTestManager(testConfig(server.URL, true), repo)

	ctx, cancel := context.WithCancel(context.Background())
	mgr.Start(ctx)

	// Wait for the initial poll to flow through the pool
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if repo.addCount.Load() == 2 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	mgr.Stop()

	if polls.Load() < 1 {
		t.Fatal("expected at least one feed poll")
	}
	if got := repo.addCount.Load(); got != 2 {
		t.Fatalf("expected 2 assessments added, got %d", got)
	}

	records, _ := repo.ListAssessments(context.Background(), repository.Filter{})
	for _, r := range records {
		if r.Source != "neo" {
			t.Errorf("expected source neo, got %s", r.Source)
		}
		if r.Latitude != -10 || r.Longitude != -30 {
			t.Errorf("expected assessment at reference location, got (%g, %g)", r.Latitude, r.Longitude)
		}
		if r.Composition != string(engine.CompositionRocky) {
			t.Errorf("expected rocky composition default, got %s", r.Composition)
		}
	}
}

func TestManager_PollIsIdempotent(t *testing.T) {
	defer http.DefaultTransport.(*http.Transport).CloseIdleConnections()

	approach := time.Now().Add(30 * 24 * time.Hour).UnixMilli()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, neoFeedPayload(approach))
	}))
	defer server.Close()

	repo := newMockRepo()
	mgr := newTestManager(testConfig(server.URL, false), repo)

	ctx, cancel := context.WithCancel(context.Background())
	mgr.Start(ctx)

	// Poll the same feed twice; the deterministic IDs dedupe the second run.
	mgr.poll(ctx)
	mgr.poll(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if repo.addCount.Load() >= 2 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)

	cancel()
	mgr.Stop()

	if got := repo.addCount.Load(); got != 2 {
		t.Errorf("expected 2 unique assessments after duplicate polls, got %d", got)
	}
}

func TestManager_PollErrorDoesNotCrash(t *testing.T) {
	defer http.DefaultTransport.(*http.Transport).CloseIdleConnections()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	repo := newMockRepo()
	mgr := newTestManager(testConfig(server.URL, false), repo)

	ctx, cancel := context.WithCancel(context.Background())
	mgr.Start(ctx)

	mgr.poll(ctx)

	cancel()
	mgr.Stop()

	if got := repo.addCount.Load(); got != 0 {
		t.Errorf("expected no assessments from a failed poll, got %d", got)
	}
}

func TestManager_GracefulShutdown(t *testing.T) {
	repo := newMockRepo()
	mgr := newTestManager(testConfig("http://localhost:0", false), repo)

	ctx, cancel := context.WithCancel(context.Background())
	mgr.Start(ctx)

	// Submit some work directly
	eng := engine.New()
	for i := 0; i < 20; i++ {
		result, err := eng.Compute(engine.ImpactParameters{
			DiameterM:   float64(10 + i),
			VelocityKMS: 15,
			Composition: engine.CompositionRocky,
		}, engine.GeoLocation{Latitude: -10, Longitude: -30}, engine.ComputeOptions{})
		if err != nil {
			t.Fatalf("compute failed: %v", err)
		}
		record, err := models.FromAssessment("test", fmt.Sprintf("obj-%d", i), result, time.Now())
		if err != nil {
			t.Fatalf("from assessment failed: %v", err)
		}
		mgr.pool.Submit(record)
	}

	cancel()

	// Stop should wait for in-flight work
	done := make(chan struct{})
	go func() {
		mgr.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("manager.Stop() timed out - possible goroutine leak")
	}
}
