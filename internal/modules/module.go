package modules

import (
	"context"

	"github.com/go-faster/errors"
)

var (
	ErrNotFound = errors.New("modules: not found")
	ErrConflict = errors.New("modules: conflict")
)

// Prices are per beneficiary, in cents. Core modules are free.
const (
	DefaultDivisionPrice = 100
	DefaultFinancerPrice = 200
)

// Owner is the kind of tenant a module is attached to.
type Owner string

const (
	OwnerDivision Owner = "division"
	OwnerFinancer Owner = "financer"
)

// Module is a product feature that divisions and financers can enable.
type Module struct {
	ID       string
	Category string
	IsCore   bool
}

// Link attaches a module to a division or a financer.
type Link struct {
	ID                  string
	Owner               Owner
	OwnerID             string
	ModuleID            string
	Active              bool
	PricePerBeneficiary *int
}

type Store interface {
	ListModules(ctx context.Context) ([]Module, error)
	HasModuleLink(ctx context.Context, owner Owner, ownerID, moduleID string) (bool, error)
	CreateModuleLink(ctx context.Context, link Link) error
}

// Price returns the default price of m for owner, nil for core modules.
func Price(m Module, owner Owner) *int {
	if m.IsCore {
		return nil
	}
	p := DefaultFinancerPrice
	if owner == OwnerDivision {
		p = DefaultDivisionPrice
	}
	return &p
}
