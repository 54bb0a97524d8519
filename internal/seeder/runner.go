package seeder

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"upengage.io/seeder/internal/audit"
	"upengage.io/seeder/internal/ids"
	"upengage.io/seeder/internal/obs"
)

// History records successful seeder runs.
type History interface {
	RecordSeed(ctx context.Context, name string) error
}

type Outcome struct {
	Name     string
	Tier     Tier
	Skipped  bool
	Counts   Counts
	Duration time.Duration
}

type Runner struct {
	registry *Registry
	opts     Options
	history  History
	metrics  *obs.Metrics
	log      *logrus.Entry
}

type RunnerOption func(*Runner)

func WithHistory(h History) RunnerOption {
	return func(r *Runner) { r.history = h }
}

func WithMetrics(m *obs.Metrics) RunnerOption {
	return func(r *Runner) { r.metrics = m }
}

func WithLogger(l *logrus.Entry) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

func NewRunner(registry *Registry, opts Options, options ...RunnerOption) (*Runner, error) {
	if registry == nil {
		return nil, errors.New("seeder registry is required")
	}
	r := &Runner{
		registry: registry,
		opts:     opts,
		log:      logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, o := range options {
		o(r)
	}
	return r, nil
}

// RunAll executes the default chain. Seeders whose tier is not enabled are
// reported as skipped. The first failure stops the chain.
func (r *Runner) RunAll(ctx context.Context) ([]Outcome, error) {
	ctx = ensureRunID(ctx)
	var outcomes []Outcome
	for _, s := range r.registry.Chain() {
		if !r.opts.Allows(s.Tier()) {
			r.log.WithFields(logrus.Fields{"seeder": s.Name(), "tier": s.Tier()}).Debug("seeder skipped for environment")
			outcomes = append(outcomes, Outcome{Name: s.Name(), Tier: s.Tier(), Skipped: true})
			continue
		}
		out, err := r.run(ctx, s)
		outcomes = append(outcomes, out)
		if err != nil {
			return outcomes, err
		}
	}
	return outcomes, nil
}

// Run executes one seeder by name, chained or standalone.
func (r *Runner) Run(ctx context.Context, name string) (Outcome, error) {
	s, err := r.registry.Get(name)
	if err != nil {
		return Outcome{Name: name}, err
	}
	if !r.opts.Allows(s.Tier()) {
		return Outcome{Name: name, Tier: s.Tier(), Skipped: true}, errors.Errorf("%w: %s is a %s seeder", ErrNotAllowed, name, s.Tier())
	}
	return r.run(ensureRunID(ctx), s)
}

func (r *Runner) run(ctx context.Context, s Seeder) (Outcome, error) {
	name := s.Name()
	ctx = audit.WithSeeder(ctx, name)
	log := r.log.WithFields(logrus.Fields{"seeder": name, "run_id": audit.RunIDFromContext(ctx)})
	log.Info("seeding")
	_ = audit.LogEvent(ctx, "seed.started", map[string]any{"tier": string(s.Tier())})

	started := time.Now()
	counts, err := s.Run(ctx)
	out := Outcome{Name: name, Tier: s.Tier(), Counts: counts, Duration: time.Since(started)}
	r.metrics.ObserveRun(name, started, err)
	for outcome, n := range counts {
		r.metrics.Add(name, outcome, n)
	}
	if err != nil {
		log.WithError(err).Error("seeder failed")
		_ = audit.LogEvent(ctx, "seed.failed", map[string]any{"error": err.Error(), "counts": counts})
		return out, errors.Wrapf(err, "seeder %s", name)
	}

	if r.history != nil {
		if err := r.history.RecordSeed(ctx, name); err != nil {
			return out, errors.Wrapf(err, "record seeder %s", name)
		}
	}
	_ = audit.LogEvent(ctx, "seed.completed", map[string]any{"counts": counts, "duration_ms": out.Duration.Milliseconds()})
	log.WithField("duration", out.Duration.String()).Infof("seeded %s", counts)
	return out, nil
}

func ensureRunID(ctx context.Context) context.Context {
	if audit.RunIDFromContext(ctx) != "" {
		return ctx
	}
	return audit.WithRunID(ctx, ids.New())
}
