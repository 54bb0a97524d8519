package obs

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const (
	OutcomeCreated  = "created"
	OutcomeExisting = "existing"
	OutcomeGranted  = "granted"
	OutcomeSkipped  = "skipped"
	OutcomeInserted = "inserted"
	OutcomeDeleted  = "deleted"
	OutcomeUpdated  = "updated"
)

// Metrics groups the seeding counters on a dedicated registry so a run can be
// pushed as one batch job.
type Metrics struct {
	Registry *prometheus.Registry

	records  *prometheus.CounterVec
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		records: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seed_records_total",
				Help: "Rows touched by seeders, by outcome.",
			},
			[]string{"seeder", "outcome"},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seed_runs_total",
				Help: "Seeder executions by final status.",
			},
			[]string{"seeder", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "seed_duration_seconds",
				Help:    "Seeder wall time in seconds.",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60, 300},
			},
			[]string{"seeder"},
		),
	}
	m.Registry.MustRegister(m.records, m.runs, m.duration, newBuildInfo())
	return m
}

// Add counts n rows for seeder with the given outcome. A nil receiver is a no-op.
func (m *Metrics) Add(seeder, outcome string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.records.WithLabelValues(seeder, outcome).Add(float64(n))
}

// ObserveRun records one execution and its duration.
func (m *Metrics) ObserveRun(seeder string, started time.Time, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.runs.WithLabelValues(seeder, status).Inc()
	m.duration.WithLabelValues(seeder).Observe(time.Since(started).Seconds())
}

// Push sends the registry to a Pushgateway. An empty url disables pushing.
func (m *Metrics) Push(ctx context.Context, url, job string) error {
	if m == nil || url == "" {
		return nil
	}
	return push.New(url, job).Gatherer(m.Registry).PushContext(ctx)
}
