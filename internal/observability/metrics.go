package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the service.
type Metrics struct {
	AssessmentsComputed *prometheus.CounterVec // labels: source, severity
	ValidationErrors    prometheus.Counter
	ComputeDuration     prometheus.Histogram

	NEOPolls      *prometheus.CounterVec // labels: outcome={success,error}
	NEOIngested   prometheus.Counter
	StreamClients prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.AssessmentsComputed,
		m.ValidationErrors,
		m.ComputeDuration,
		m.NEOPolls,
		m.NEOIngested,
		m.StreamClients,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		AssessmentsComputed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "asteroid_watch",
			Name:      "assessments_computed_total",
			Help:      "Impact assessments computed, by source and severity tier.",
		}, []string{"source", "severity"}),
		ValidationErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "asteroid_watch",
			Name:      "validation_errors_total",
			Help:      "Requests rejected by parameter validation.",
		}),
		ComputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "asteroid_watch",
			Name:      "compute_duration_seconds",
			Help:      "Duration of one engine pipeline run.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		NEOPolls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "asteroid_watch",
			Name:      "neo_polls_total",
			Help:      "NASA NEO feed polls by outcome.",
		}, []string{"outcome"}),
		NEOIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "asteroid_watch",
			Name:      "neo_ingested_total",
			Help:      "Near-Earth objects turned into assessments.",
		}),
		StreamClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "asteroid_watch",
			Name:      "stream_clients",
			Help:      "Currently connected SSE subscribers.",
		}),
	}
}
