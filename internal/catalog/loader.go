package catalog

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"upengage.io/seeder/internal/ids"
	"upengage.io/seeder/internal/tenancy"
)

var (
	ErrNotFound    = errors.New("catalog: not found")
	ErrConflict    = errors.New("catalog: conflict")
	ErrInvalidKind = errors.New("catalog: invalid kind")
)

// Entry is one reference value owned by a financer.
type Entry struct {
	ID         string
	FinancerID string
	Name       string
}

// Store persists catalog entries.
type Store interface {
	FindEntry(ctx context.Context, kind Kind, financerID, name string) (Entry, error)
	CreateEntry(ctx context.Context, kind Kind, e Entry) (Entry, error)
}

type Stats struct {
	Financers int
	Created   int
	Existing  int
}

// Loader seeds catalogs for every financer, creating only missing entries.
type Loader struct {
	store     Store
	financers tenancy.FinancerLister
	log       *logrus.Entry
	newID     ids.Generator
}

type Option func(*Loader)

func WithLogger(l *logrus.Entry) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.log = l
		}
	}
}

func WithIDGenerator(gen ids.Generator) Option {
	return func(ld *Loader) {
		if gen != nil {
			ld.newID = gen
		}
	}
}

func NewLoader(store Store, financers tenancy.FinancerLister, opts ...Option) (*Loader, error) {
	if store == nil {
		return nil, errors.New("catalog store is required")
	}
	if financers == nil {
		return nil, errors.New("financer lister is required")
	}
	l := &Loader{
		store:     store,
		financers: financers,
		log:       logrus.NewEntry(logrus.StandardLogger()),
		newID:     ids.New,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Load seeds the static entries of kind for every financer.
func (l *Loader) Load(ctx context.Context, kind Kind) (Stats, error) {
	if !kind.Valid() {
		return Stats{}, errors.Errorf("%w: %q", ErrInvalidKind, string(kind))
	}
	return l.LoadEntries(ctx, kind, Defaults(kind))
}

// LoadEntries seeds names for every financer. Existing entries are left untouched.
func (l *Loader) LoadEntries(ctx context.Context, kind Kind, names []string) (Stats, error) {
	var stats Stats
	financers, err := l.financers.ListFinancers(ctx)
	if err != nil {
		return stats, errors.Wrap(err, "list financers")
	}
	stats.Financers = len(financers)
	log := l.log.WithField("catalog", string(kind))

	for _, f := range financers {
		for _, name := range names {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			_, err := l.store.FindEntry(ctx, kind, f.ID, name)
			if err == nil {
				stats.Existing++
				continue
			}
			if !errors.Is(err, ErrNotFound) {
				return stats, errors.Wrapf(err, "find %s %q for financer %s", kind, name, f.ID)
			}
			if _, err := l.store.CreateEntry(ctx, kind, Entry{ID: l.newID(), FinancerID: f.ID, Name: name}); err != nil {
				return stats, errors.Wrapf(err, "create %s %q for financer %s", kind, name, f.ID)
			}
			stats.Created++
		}
	}
	log.WithFields(logrus.Fields{
		"financers": stats.Financers,
		"created":   stats.Created,
		"existing":  stats.Existing,
	}).Info("catalog seeded")
	return stats, nil
}

// LoadAll seeds several kinds in the given order and stops at the first error.
func (l *Loader) LoadAll(ctx context.Context, kinds ...Kind) (map[Kind]Stats, error) {
	if len(kinds) == 0 {
		kinds = AllKinds
	}
	out := make(map[Kind]Stats, len(kinds))
	for _, k := range kinds {
		stats, err := l.Load(ctx, k)
		out[k] = stats
		if err != nil {
			return out, err
		}
	}
	return out, nil
}
