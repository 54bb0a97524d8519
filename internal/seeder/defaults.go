package seeder

import (
	"context"
	"sort"

	"github.com/go-faster/errors"

	"upengage.io/seeder/internal/auth"
	"upengage.io/seeder/internal/backfill"
	"upengage.io/seeder/internal/catalog"
	"upengage.io/seeder/internal/fixtures"
	"upengage.io/seeder/internal/modules"
	"upengage.io/seeder/internal/obs"
	"upengage.io/seeder/internal/snapshot"
	"upengage.io/seeder/internal/tenancy"
)

const (
	TeamsDataset          = "production_teams"
	PermissionsSeeder     = "permissions"
	RolesSeeder           = "roles"
	RolePermissionsSeeder = "role_permissions"
	DivisionsSeeder       = "divisions"
	ModuleLinksSeeder     = "module_links"
	RolesFromPivotSeeder  = "roles_from_pivot"
	LanguageSeeder        = "financer_user_language"
	LargeUsersSeeder      = "large_users"
	catalogSeederPrefix   = "catalog_"
)

// Components are the domain services the default chain is built from.
// LargeUsers is optional.
type Components struct {
	TeamID           string
	RBAC             *auth.RBACService
	Divisions        *tenancy.DivisionSeeder
	Snapshots        *snapshot.Loader
	Datasets         []snapshot.Dataset
	Catalog          *catalog.Loader
	Modules          *modules.Linker
	RoleBackfill     *backfill.RoleBackfill
	LanguageBackfill *backfill.LanguageBackfill
	LargeUsers       *fixtures.LargeUserSeeder
}

// tableOrder lists snapshot tables parents first.
var tableOrder = map[string]int{
	"teams":                         0,
	"financers":                     1,
	"users":                         2,
	"financer_user":                 3,
	"int_communication_rh_articles": 4,
	"modules":                       5,
}

// Default builds the registry: teams, permissions, roles, role permissions,
// divisions, snapshots by tier, demo catalogs, module links, then the two
// backfills.
func Default(c Components, opts Options) (*Registry, error) {
	if c.RBAC == nil || c.Divisions == nil || c.Snapshots == nil || c.Catalog == nil ||
		c.Modules == nil || c.RoleBackfill == nil || c.LanguageBackfill == nil {
		return nil, errors.New("every seeding component is required")
	}
	if c.TeamID == "" {
		return nil, errors.New("team id is required")
	}
	reg := NewRegistry()

	teams, err := snapshot.Lookup(c.Datasets, TeamsDataset)
	if err != nil {
		return nil, err
	}
	if err := reg.Register(
		snapshotSeeder(c.Snapshots, teams),
		New(PermissionsSeeder, TierAlways, func(ctx context.Context) (Counts, error) {
			defs := auth.DefaultPermissions()
			created, err := c.RBAC.EnsurePermissions(ctx, defs)
			return Counts{obs.OutcomeCreated: created, obs.OutcomeExisting: len(defs) - created}, err
		}),
		New(RolesSeeder, TierAlways, func(ctx context.Context) (Counts, error) {
			created, err := c.RBAC.EnsureRoles(ctx, c.TeamID, auth.AllRoles)
			return Counts{obs.OutcomeCreated: created, obs.OutcomeExisting: len(auth.AllRoles) - created}, err
		}),
		New(RolePermissionsSeeder, TierAlways, func(ctx context.Context) (Counts, error) {
			res, err := c.RBAC.SyncRolePermissions(ctx, c.TeamID, auth.DefaultRolePermissions())
			return Counts{obs.OutcomeInserted: res.Links, obs.OutcomeSkipped: len(res.Missing)}, err
		}),
		New(DivisionsSeeder, TierAlways, func(ctx context.Context) (Counts, error) {
			stats, err := c.Divisions.Seed(ctx, opts.IncludeDemoData)
			return Counts{obs.OutcomeCreated: stats.Created, obs.OutcomeExisting: stats.Existing}, err
		}),
	); err != nil {
		return nil, err
	}

	for _, tier := range []Tier{TierAlways, TierDemo, TierDev} {
		for _, ds := range datasetsForTier(c.Datasets, tier) {
			if ds.Name == TeamsDataset {
				continue
			}
			if err := reg.Register(snapshotSeeder(c.Snapshots, ds)); err != nil {
				return nil, err
			}
		}
	}

	for _, kind := range catalog.AllKinds {
		if err := reg.Register(catalogSeeder(c.Catalog, kind)); err != nil {
			return nil, err
		}
	}

	if err := reg.Register(
		New(ModuleLinksSeeder, TierAlways, func(ctx context.Context) (Counts, error) {
			stats, err := c.Modules.Link(ctx)
			return Counts{obs.OutcomeCreated: stats.Linked, obs.OutcomeExisting: stats.Existing}, err
		}),
		New(RolesFromPivotSeeder, TierAlways, func(ctx context.Context) (Counts, error) {
			res, err := c.RoleBackfill.Run(ctx)
			return Counts{obs.OutcomeGranted: res.Granted, obs.OutcomeSkipped: res.Skipped()}, err
		}),
		New(LanguageSeeder, TierAlways, func(ctx context.Context) (Counts, error) {
			res, err := c.LanguageBackfill.Run(ctx)
			return Counts{obs.OutcomeUpdated: res.Updated, obs.OutcomeSkipped: res.Skipped}, err
		}),
	); err != nil {
		return nil, err
	}

	if c.LargeUsers != nil {
		if err := reg.RegisterStandalone(New(LargeUsersSeeder, TierDev, func(ctx context.Context) (Counts, error) {
			res, err := c.LargeUsers.Run(ctx)
			return Counts{obs.OutcomeInserted: res.Financers + res.Users + res.Relationships}, err
		})); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func snapshotSeeder(loader *snapshot.Loader, ds snapshot.Dataset) Seeder {
	return New(ds.Name, Tier(ds.Tier), func(ctx context.Context) (Counts, error) {
		res, err := loader.Load(ctx, ds)
		return Counts{obs.OutcomeDeleted: int(res.Deleted), obs.OutcomeInserted: int(res.Inserted)}, err
	})
}

func catalogSeeder(loader *catalog.Loader, kind catalog.Kind) Seeder {
	return New(catalogSeederPrefix+string(kind), TierDev, func(ctx context.Context) (Counts, error) {
		stats, err := loader.Load(ctx, kind)
		if err != nil {
			return nil, errors.Wrapf(err, "load %s", kind)
		}
		return Counts{obs.OutcomeCreated: stats.Created, obs.OutcomeExisting: stats.Existing}, nil
	})
}

// datasetsForTier keeps datasets of tier, parents before children.
func datasetsForTier(all []snapshot.Dataset, tier Tier) []snapshot.Dataset {
	var out []snapshot.Dataset
	for _, ds := range all {
		if Tier(ds.Tier) == tier {
			out = append(out, ds)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return rank(out[i].Table) < rank(out[j].Table)
	})
	return out
}

func rank(table string) int {
	if r, ok := tableOrder[table]; ok {
		return r
	}
	return len(tableOrder)
}
