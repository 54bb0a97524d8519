package seeder

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
)

var (
	ErrUnknownSeeder = errors.New("seeder: unknown seeder")
	ErrNotAllowed    = errors.New("seeder: not allowed in this environment")
)

// Tier decides in which environments a seeder runs.
type Tier string

const (
	TierAlways Tier = "always"
	TierDemo   Tier = "demo"
	TierDev    Tier = "dev"
)

// Options is derived from configuration once per run. Seeders never look at
// the environment name.
type Options struct {
	IncludeDemoData bool
	IncludeDevData  bool
}

func (o Options) Allows(t Tier) bool {
	switch t {
	case TierAlways:
		return true
	case TierDemo:
		return o.IncludeDemoData
	case TierDev:
		return o.IncludeDevData
	}
	return false
}

// Counts maps an outcome (created, existing, granted ...) to a row count.
type Counts map[string]int

func (c Counts) String() string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+strconv.Itoa(c[k]))
	}
	return strings.Join(parts, " ")
}

type Seeder interface {
	Name() string
	Tier() Tier
	Run(ctx context.Context) (Counts, error)
}

type funcSeeder struct {
	name string
	tier Tier
	fn   func(ctx context.Context) (Counts, error)
}

// New adapts fn into a named Seeder.
func New(name string, tier Tier, fn func(ctx context.Context) (Counts, error)) Seeder {
	return funcSeeder{name: name, tier: tier, fn: fn}
}

func (s funcSeeder) Name() string { return s.name }

func (s funcSeeder) Tier() Tier { return s.tier }

func (s funcSeeder) Run(ctx context.Context) (Counts, error) { return s.fn(ctx) }
