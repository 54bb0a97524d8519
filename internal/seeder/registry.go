package seeder

import (
	"sort"

	"github.com/go-faster/errors"
)

// Registry keeps seeders by name. Chained seeders run, in registration order,
// when no seeder is named; standalone ones only run on request.
type Registry struct {
	byName map[string]Seeder
	chain  []string
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Seeder)}
}

// Register appends seeders to the default chain.
func (r *Registry) Register(seeders ...Seeder) error {
	for _, s := range seeders {
		if err := r.add(s); err != nil {
			return err
		}
		r.chain = append(r.chain, s.Name())
	}
	return nil
}

// RegisterStandalone adds seeders that are only run by name.
func (r *Registry) RegisterStandalone(seeders ...Seeder) error {
	for _, s := range seeders {
		if err := r.add(s); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) add(s Seeder) error {
	if s == nil || s.Name() == "" {
		return errors.New("seeder name is required")
	}
	if _, dup := r.byName[s.Name()]; dup {
		return errors.Errorf("seeder %s registered twice", s.Name())
	}
	r.byName[s.Name()] = s
	return nil
}

func (r *Registry) Get(name string) (Seeder, error) {
	s, ok := r.byName[name]
	if !ok {
		return nil, errors.Errorf("%w: %s", ErrUnknownSeeder, name)
	}
	return s, nil
}

// Chain returns the default seeders in run order.
func (r *Registry) Chain() []Seeder {
	out := make([]Seeder, 0, len(r.chain))
	for _, name := range r.chain {
		out = append(out, r.byName[name])
	}
	return out
}

// Standalone returns the seeders outside the chain, sorted by name.
func (r *Registry) Standalone() []Seeder {
	inChain := make(map[string]bool, len(r.chain))
	for _, name := range r.chain {
		inChain[name] = true
	}
	var out []Seeder
	for name, s := range r.byName {
		if !inChain[name] {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
