package ingestion

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nvieira/go-asteroid-watch/internal/config"
	"github.com/nvieira/go-asteroid-watch/internal/engine"
	"github.com/nvieira/go-asteroid-watch/internal/lookup"
	"github.com/nvieira/go-asteroid-watch/internal/models"
	"github.com/nvieira/go-asteroid-watch/internal/observability"
	"github.com/nvieira/go-asteroid-watch/internal/repository"
	"github.com/nvieira/go-asteroid-watch/internal/stream"
	"github.com/nvieira/go-asteroid-watch/internal/worker"
)

// severityBroadcastFloor: assessments at this tier or above go to stream
// subscribers.
var severityBroadcastFloor = engine.SeveritySevere

// Manager polls the NASA NeoWs feed, runs each near-Earth object through
// the assessment engine as a hypothetical impact at the configured reference
// location, and hands the resulting records to a worker pool for persistence
// and streaming.
type Manager struct {
	cfg         *config.Config
	repo        repository.AssessmentRepository
	broadcaster *stream.Broadcaster
	engine      *engine.Engine
	places      lookup.Source
	metrics     *observability.Metrics
	pool        *worker.Pool
	wg          sync.WaitGroup
}

func NewManager(
	cfg *config.Config,
	repo repository.AssessmentRepository,
	broadcaster *stream.Broadcaster,
	eng *engine.Engine,
	places lookup.Source,
	metrics *observability.Metrics,
) *Manager {
	return &Manager{
		cfg:         cfg,
		repo:        repo,
		broadcaster: broadcaster,
		engine:      eng,
		places:      places,
		metrics:     metrics,
	}
}

func (m *Manager) Start(ctx context.Context) {
	processor := func(ctx context.Context, record *models.Assessment) error {
		exists, err := m.repo.Exists(ctx, record.ID)
		if err != nil {
			slog.Error("error checking existence", "id", record.ID, "error", err)
			return err
		}
		if exists {
			return nil
		}

		if err := m.repo.Add(ctx, record); err != nil {
			slog.Error("error adding assessment", "id", record.ID, "error", err)
			return err
		}
		m.metrics.NEOIngested.Inc()

		if m.broadcaster != nil && record.SeverityRank >= severityBroadcastFloor.Rank() {
			m.broadcaster.Broadcast(record)
		}

		slog.Info("added assessment", "id", record.ID, "name", record.Name, "severity", record.Severity)
		return nil
	}

	m.pool = worker.NewPool(m.cfg.Worker.Count, m.cfg.Worker.BufferSize, processor)
	m.pool.Start(ctx)

	if m.cfg.Sources.NEOEnabled {
		m.wg.Add(1)
		go m.runPoller(ctx, m.cfg.Sources.NEOPollInterval)
	}
}

func (m *Manager) runPoller(ctx context.Context, interval time.Duration) {
	defer m.wg.Done()
	slog.Info("starting poller", "source", "neo", "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Initial poll
	m.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("poller shutting down", "source", "neo")
			return
		case <-ticker.C:
			m.poll(ctx)
		}
	}
}

func (m *Manager) poll(ctx context.Context) {
	slog.Debug("polling", "source", "neo")

	url := feedURL(m.cfg.Sources.NEOFeedURL, m.cfg.Sources.NEOAPIKey, time.Now())
	candidates, err := m.pollNEO(ctx, url)
	if err != nil {
		m.metrics.NEOPolls.WithLabelValues("error").Inc()
		slog.Error("poll failed", "source", "neo", "error", err)
		return
	}
	m.metrics.NEOPolls.WithLabelValues("success").Inc()

	count := 0
	for _, candidate := range candidates {
		record, err := m.assess(candidate)
		if err != nil {
			slog.Warn("skipping object", "name", candidate.Name, "error", err)
			continue
		}
		m.pool.Submit(record)
		count++
	}

	slog.Debug("poll complete", "source", "neo", "count", count)
}

// assess runs one near-Earth object through the engine as if it struck the
// configured reference location. Composition is unknown for most objects,
// so the rocky default applies.
func (m *Manager) assess(candidate neoCandidate) (*models.Assessment, error) {
	params := engine.ImpactParameters{
		DiameterM:   candidate.DiameterM,
		VelocityKMS: candidate.VelocityKMS,
		Composition: engine.CompositionRocky,
	}
	loc := engine.GeoLocation{
		Latitude:  m.cfg.Engine.ReferenceLatitude,
		Longitude: m.cfg.Engine.ReferenceLongitude,
	}
	place := m.places.Lookup(loc)

	result, err := m.engine.Compute(params, loc, engine.ComputeOptions{
		PopulationDensityPerKm2: place.PopulationDensityPerKm2,
		TimeToImpactHours:       engine.TimeToImpactHours(candidate.CloseApproach),
	})
	if err != nil {
		return nil, err
	}
	m.metrics.AssessmentsComputed.WithLabelValues("neo", string(result.Severity)).Inc()

	return models.FromAssessment("neo", candidate.Name, result, time.Now())
}

func (m *Manager) Stop() {
	m.wg.Wait()
	m.pool.Stop()
	slog.Info("ingestion manager stopped")
}
