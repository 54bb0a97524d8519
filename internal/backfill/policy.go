package backfill

import (
	"github.com/go-faster/errors"

	"upengage.io/seeder/internal/tenancy"
)

// Policy selects the relationship whose role label is migrated. It reports
// false when the user has no active relationship.
type Policy func(rels []tenancy.Relationship) (tenancy.Relationship, bool)

// LowestIDActive picks, among active relationships, the one with the smallest
// id. The result does not depend on the order rows were returned in.
func LowestIDActive(rels []tenancy.Relationship) (tenancy.Relationship, bool) {
	var (
		best  tenancy.Relationship
		found bool
	)
	for _, r := range rels {
		if !r.Active {
			continue
		}
		if !found || r.ID < best.ID {
			best = r
			found = true
		}
	}
	return best, found
}

// FirstActive picks the first active relationship in the order given.
func FirstActive(rels []tenancy.Relationship) (tenancy.Relationship, bool) {
	for _, r := range rels {
		if r.Active {
			return r, true
		}
	}
	return tenancy.Relationship{}, false
}

// PolicyByName resolves "lowest-id" or "first".
func PolicyByName(name string) (Policy, error) {
	switch name {
	case "", "lowest-id":
		return LowestIDActive, nil
	case "first":
		return FirstActive, nil
	default:
		return nil, errors.Errorf("unknown active relationship policy %q", name)
	}
}
