package tenancy

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"upengage.io/seeder/internal/ids"
)

// ProductionDivisions are the markets the platform operates in.
// Their ids are fixed because financer snapshots reference them.
var ProductionDivisions = []Division{
	{ID: "9d1c3a52-6f0e-4b7a-8e21-3f5b2c7d9a01", Name: "Hexeko France", Country: "FR", Currency: "EUR", Language: "fr-FR"},
	{ID: "9d1c3a52-6f0e-4b7a-8e21-3f5b2c7d9a02", Name: "Hexeko Belgium", Country: "BE", Currency: "EUR", Language: "fr-BE"},
	{ID: "9d1c3a52-6f0e-4b7a-8e21-3f5b2c7d9a03", Name: "Hexeko Portugal", Country: "PT", Currency: "EUR", Language: "pt-PT"},
}

// DemoDivisions exist only where demo data is enabled and are tagged as demo.
var DemoDivisions = []Division{
	{ID: "9d1c3a52-6f0e-4b7a-8e21-3f5b2c7d9b01", Name: "Demo Division FR", Country: "FR", Currency: "EUR", Language: "fr-FR"},
	{ID: "9d1c3a52-6f0e-4b7a-8e21-3f5b2c7d9b02", Name: "Demo Division EN", Country: "GB", Currency: "GBP", Language: "en-GB"},
}

type DivisionStats struct {
	Created  int
	Existing int
	Demo     int
}

type DivisionSeeder struct {
	store DivisionStore
	log   *logrus.Entry
	newID ids.Generator
}

func NewDivisionSeeder(store DivisionStore, log *logrus.Entry) (*DivisionSeeder, error) {
	if store == nil {
		return nil, errors.New("division store is required")
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &DivisionSeeder{store: store, log: log, newID: ids.NewUUID}, nil
}

// Seed looks up or creates every production division, and the demo divisions
// when includeDemo is set. Demo divisions are marked after creation.
func (s *DivisionSeeder) Seed(ctx context.Context, includeDemo bool) (DivisionStats, error) {
	var stats DivisionStats
	if err := s.ensure(ctx, ProductionDivisions, &stats, nil); err != nil {
		return stats, err
	}
	if !includeDemo {
		return stats, nil
	}
	var demoIDs []string
	if err := s.ensure(ctx, DemoDivisions, &stats, &demoIDs); err != nil {
		return stats, err
	}
	if err := s.store.MarkDivisionsDemo(ctx, demoIDs); err != nil {
		return stats, errors.Wrap(err, "mark demo divisions")
	}
	stats.Demo = len(demoIDs)
	return stats, nil
}

func (s *DivisionSeeder) ensure(ctx context.Context, divisions []Division, stats *DivisionStats, collect *[]string) error {
	for _, d := range divisions {
		name := strings.TrimSpace(d.Name)
		existing, err := s.store.FindDivision(ctx, name)
		switch {
		case err == nil:
			stats.Existing++
			if collect != nil {
				*collect = append(*collect, existing.ID)
			}
			continue
		case !errors.Is(err, ErrNotFound):
			return errors.Wrapf(err, "find division %s", name)
		}
		if d.ID == "" {
			d.ID = s.newID()
		}
		d.Name = name
		created, err := s.store.CreateDivision(ctx, d)
		if err != nil {
			return errors.Wrapf(err, "create division %s", name)
		}
		s.log.WithField("division", name).Debug("division created")
		stats.Created++
		if collect != nil {
			*collect = append(*collect, created.ID)
		}
	}
	return nil
}
