package main

import (
	"context"
	"io/fs"
	"os"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"upengage.io/seeder/internal/auth"
	"upengage.io/seeder/internal/backfill"
	"upengage.io/seeder/internal/catalog"
	"upengage.io/seeder/internal/config"
	"upengage.io/seeder/internal/fixtures"
	"upengage.io/seeder/internal/migrate"
	"upengage.io/seeder/internal/modules"
	"upengage.io/seeder/internal/obs"
	"upengage.io/seeder/internal/permcache"
	"upengage.io/seeder/internal/seeder"
	"upengage.io/seeder/internal/snapshot"
	"upengage.io/seeder/internal/store/pg"
	"upengage.io/seeder/internal/tenancy"
)

// app holds the wired services of one invocation.
type app struct {
	cfg        *config.Configuration
	log        *logrus.Logger
	store      *pg.Store
	migrations *migrate.Manager
	metrics    *obs.Metrics
	registry   *seeder.Registry
	runner     *seeder.Runner
	closeCache func() error
}

func connect(cfg *config.Configuration) (*pg.Store, error) {
	if cfg.Database.DSN == "" {
		return nil, errors.New("missing DSN: set SEED_PG_DSN")
	}
	store, err := pg.Open(cfg.Database.DSN, pg.PoolOptions{MaxOpenConns: cfg.Database.MaxOpenConns})
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, errors.Wrap(err, "ping database")
	}
	return store, nil
}

func migrationManager(cfg *config.Configuration, store *pg.Store) *migrate.Manager {
	var (
		fsys fs.FS = migrate.Embedded
		dir        = migrate.EmbeddedDir
	)
	if cfg.Database.MigrationsDir != "" {
		fsys, dir = os.DirFS(cfg.Database.MigrationsDir), "."
	}
	return migrate.NewManager(store.DB(), fsys, dir)
}

// newApp connects to the database and cache and builds the seeder registry.
func newApp(cfg *config.Configuration, fixtureOpts config.FixtureOptions) (*app, error) {
	log := obs.Configure(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	store, err := connect(cfg)
	if err != nil {
		return nil, err
	}
	a := &app{
		cfg:        cfg,
		log:        log,
		store:      store,
		migrations: migrationManager(cfg, store),
		metrics:    obs.NewMetrics(),
	}
	cache, closeCache, err := permcache.New(cfg.Cache.RedisURL, cfg.Cache.PermissionKey)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	a.closeCache = closeCache

	reg, err := buildRegistry(cfg, store, cache, fixtureOpts)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.registry = reg
	a.runner, err = seeder.NewRunner(reg, seedOptions(cfg),
		seeder.WithHistory(a.migrations),
		seeder.WithMetrics(a.metrics),
		seeder.WithLogger(obs.Component("seeder")),
	)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func seedOptions(cfg *config.Configuration) seeder.Options {
	return seeder.Options{IncludeDemoData: cfg.IncludeDemoData(), IncludeDevData: cfg.IncludeDevData()}
}

func buildRegistry(cfg *config.Configuration, store *pg.Store, cache auth.Cache, fixtureOpts config.FixtureOptions) (*seeder.Registry, error) {
	rbac, err := auth.NewRBACService(store, auth.WithCache(cache), auth.WithLogger(obs.Component("rbac")))
	if err != nil {
		return nil, err
	}
	divisions, err := tenancy.NewDivisionSeeder(store, obs.Component("divisions"))
	if err != nil {
		return nil, err
	}
	snapshots, err := snapshot.NewLoader(store, obs.Component("snapshot"))
	if err != nil {
		return nil, err
	}
	datasets, err := snapshot.Builtin()
	if err != nil {
		return nil, err
	}
	catalogs, err := catalog.NewLoader(store, store, catalog.WithLogger(obs.Component("catalog")))
	if err != nil {
		return nil, err
	}
	linker, err := modules.NewLinker(store, store, store, modules.WithLogger(obs.Component("modules")))
	if err != nil {
		return nil, err
	}

	policy, err := backfill.PolicyByName(cfg.Backfill.ActivePolicy)
	if err != nil {
		return nil, err
	}
	backfillOpts := []backfill.Option{
		backfill.WithPageSize(cfg.Backfill.PageSize),
		backfill.WithReporter(backfill.NewConsoleReporter(os.Stderr)),
		backfill.WithLogger(obs.Component("backfill")),
		backfill.WithPolicy(policy),
	}
	if pps := cfg.Backfill.PagesPerSecond; pps > 0 {
		backfillOpts = append(backfillOpts, backfill.WithLimiter(rate.NewLimiter(rate.Limit(pps), 1)))
	}
	roles, err := backfill.NewRoleBackfill(store, rbac, cfg.GlobalTeamID, backfillOpts...)
	if err != nil {
		return nil, err
	}
	languages, err := backfill.NewLanguageBackfill(store, backfillOpts...)
	if err != nil {
		return nil, err
	}

	large, err := fixtures.NewLargeUserSeeder(store, fixtures.NewFactory(fixtureOpts.Seed, cfg.GlobalTeamID), fixtures.Options{
		Financers:        fixtureOpts.Financers,
		UsersPerFinancer: fixtureOpts.UsersPerFinancer,
		ChunkSize:        fixtureOpts.ChunkSize,
		DivisionID:       tenancy.DemoDivisions[0].ID,
	}, obs.Component("fixtures"))
	if err != nil {
		return nil, err
	}

	return seeder.Default(seeder.Components{
		TeamID:           cfg.GlobalTeamID,
		RBAC:             rbac,
		Divisions:        divisions,
		Snapshots:        snapshots,
		Datasets:         datasets,
		Catalog:          catalogs,
		Modules:          linker,
		RoleBackfill:     roles,
		LanguageBackfill: languages,
		LargeUsers:       large,
	}, seedOptions(cfg))
}

// pushMetrics sends the run's metrics when a Pushgateway is configured.
func (a *app) pushMetrics(ctx context.Context) {
	if err := a.metrics.Push(ctx, a.cfg.Metrics.PushgatewayURL, a.cfg.Metrics.Job); err != nil {
		a.log.WithError(err).Warn("push metrics failed")
	}
}

func (a *app) Close() error {
	var cacheErr error
	if a.closeCache != nil {
		cacheErr = a.closeCache()
	}
	if err := a.store.Close(); err != nil {
		return err
	}
	return cacheErr
}
