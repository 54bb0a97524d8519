package tenancy

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

var (
	ErrNotFound = errors.New("tenancy: not found")
	ErrConflict = errors.New("tenancy: conflict")
)

// Team is an authorization scope for roles.
type Team struct {
	ID   string
	Name string
	Slug string
}

// Division groups financers by market.
type Division struct {
	ID       string
	Name     string
	Country  string
	Currency string
	Language string
	IsDemo   bool
}

// Financer is a tenant organisation. Catalog entries are scoped to it.
type Financer struct {
	ID         string
	Name       string
	DivisionID string
	Active     bool
}

type User struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Locale    string
	TeamID    string
}

// Relationship is a row of the financer_user pivot. Role is a free-form label
// that predates explicit role assignments.
type Relationship struct {
	ID         string
	UserID     string
	FinancerID string
	Active     bool
	Role       string
	Language   string
	From       time.Time
}

// FinancerLister enumerates tenants.
type FinancerLister interface {
	ListFinancers(ctx context.Context) ([]Financer, error)
}

// DivisionLister enumerates divisions.
type DivisionLister interface {
	ListDivisions(ctx context.Context) ([]Division, error)
}

// DivisionStore persists divisions.
type DivisionStore interface {
	FindDivision(ctx context.Context, name string) (Division, error)
	CreateDivision(ctx context.Context, d Division) (Division, error)
	MarkDivisionsDemo(ctx context.Context, ids []string) error
}
