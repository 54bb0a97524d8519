package modules

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"upengage.io/seeder/internal/ids"
	"upengage.io/seeder/internal/tenancy"
)

type Stats struct {
	Modules  int
	Linked   int
	Existing int
}

// Linker enables every module for every division and financer that does not
// have it yet. Existing links keep their price and active flag.
type Linker struct {
	store     Store
	divisions tenancy.DivisionLister
	financers tenancy.FinancerLister
	log       *logrus.Entry
	newID     ids.Generator
}

type Option func(*Linker)

func WithLogger(l *logrus.Entry) Option {
	return func(lk *Linker) {
		if l != nil {
			lk.log = l
		}
	}
}

func WithIDGenerator(gen ids.Generator) Option {
	return func(lk *Linker) {
		if gen != nil {
			lk.newID = gen
		}
	}
}

func NewLinker(store Store, divisions tenancy.DivisionLister, financers tenancy.FinancerLister, opts ...Option) (*Linker, error) {
	if store == nil {
		return nil, errors.New("module store is required")
	}
	if divisions == nil || financers == nil {
		return nil, errors.New("division and financer listers are required")
	}
	lk := &Linker{
		store:     store,
		divisions: divisions,
		financers: financers,
		log:       logrus.NewEntry(logrus.StandardLogger()),
		newID:     ids.NewUUID,
	}
	for _, opt := range opts {
		opt(lk)
	}
	return lk, nil
}

// Link attaches modules to divisions first, then to financers.
func (lk *Linker) Link(ctx context.Context) (Stats, error) {
	var stats Stats
	mods, err := lk.store.ListModules(ctx)
	if err != nil {
		return stats, errors.Wrap(err, "list modules")
	}
	stats.Modules = len(mods)
	if len(mods) == 0 {
		lk.log.Warn("no modules found, load the modules dataset first")
		return stats, nil
	}

	divisions, err := lk.divisions.ListDivisions(ctx)
	if err != nil {
		return stats, errors.Wrap(err, "list divisions")
	}
	for _, d := range divisions {
		if err := lk.attach(ctx, OwnerDivision, d.ID, mods, &stats); err != nil {
			return stats, err
		}
	}
	financers, err := lk.financers.ListFinancers(ctx)
	if err != nil {
		return stats, errors.Wrap(err, "list financers")
	}
	for _, f := range financers {
		if err := lk.attach(ctx, OwnerFinancer, f.ID, mods, &stats); err != nil {
			return stats, err
		}
	}
	lk.log.WithFields(logrus.Fields{
		"modules":  stats.Modules,
		"linked":   stats.Linked,
		"existing": stats.Existing,
	}).Info("modules linked")
	return stats, nil
}

func (lk *Linker) attach(ctx context.Context, owner Owner, ownerID string, mods []Module, stats *Stats) error {
	for _, m := range mods {
		linked, err := lk.store.HasModuleLink(ctx, owner, ownerID, m.ID)
		if err != nil {
			return errors.Wrapf(err, "check module %s for %s %s", m.ID, owner, ownerID)
		}
		if linked {
			stats.Existing++
			continue
		}
		if err := lk.store.CreateModuleLink(ctx, Link{
			ID:                  lk.newID(),
			Owner:               owner,
			OwnerID:             ownerID,
			ModuleID:            m.ID,
			Active:              true,
			PricePerBeneficiary: Price(m, owner),
		}); err != nil {
			return errors.Wrapf(err, "link module %s to %s %s", m.ID, owner, ownerID)
		}
		stats.Linked++
	}
	return nil
}
