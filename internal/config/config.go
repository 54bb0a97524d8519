package config

import (
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
)

const (
	Local      = "local"
	Dev        = "dev"
	Staging    = "staging"
	Production = "production"
)

// DefaultEnvFiles are read in order when present. Later files do not override
// variables already set by earlier ones or by the process environment.
var DefaultEnvFiles = []string{".env.local", ".env"}

type DatabaseOptions struct {
	DSN            string        `env:"SEED_PG_DSN"`
	MaxOpenConns   int           `env:"SEED_PG_MAX_OPEN_CONNS" envDefault:"4"`
	ConnectTimeout time.Duration `env:"SEED_PG_CONNECT_TIMEOUT" envDefault:"10s"`
	MigrationsDir  string        `env:"MIGRATIONS_DIR"`
}

type CacheOptions struct {
	RedisURL      string `env:"REDIS_URL"`
	PermissionKey string `env:"PERMISSION_CACHE_KEY" envDefault:"spatie.permission.cache"`
}

type BackfillOptions struct {
	PageSize       int     `env:"SEED_PAGE_SIZE" envDefault:"500"`
	PagesPerSecond float64 `env:"SEED_PAGES_PER_SECOND" envDefault:"0"`
	// ActivePolicy picks among several active relationships: "lowest-id" or "first".
	ActivePolicy string `env:"SEED_ACTIVE_POLICY" envDefault:"lowest-id"`
}

type FixtureOptions struct {
	Financers        int    `env:"FAKE_FINANCERS" envDefault:"5"`
	UsersPerFinancer int    `env:"FAKE_USERS_PER_FINANCER" envDefault:"1000"`
	Seed             uint64 `env:"FAKE_SEED" envDefault:"42"`
	ChunkSize        int    `env:"FAKE_CHUNK_SIZE" envDefault:"500"`
}

type MetricsOptions struct {
	PushgatewayURL string `env:"PUSHGATEWAY_URL"`
	Job            string `env:"PUSHGATEWAY_JOB" envDefault:"seedctl"`
}

type Configuration struct {
	Environment  string `env:"APP_ENV" envDefault:"local"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat    string `env:"LOG_FORMAT" envDefault:"json"`
	GlobalTeamID string `env:"SEED_GLOBAL_TEAM_ID" envDefault:"019379b8-9d8c-7ae4-9e4c-5a7e3c1d2b10"`

	Database DatabaseOptions
	Cache    CacheOptions
	Backfill BackfillOptions
	Fixtures FixtureOptions
	Metrics  MetricsOptions
}

// LoadEnv loads the env files that exist and returns how many were read.
func LoadEnv(envFiles []string) (int, error) {
	existing := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

// Load reads env files, parses the process environment and validates the result.
func Load(envFiles []string) (*Configuration, error) {
	if _, err := LoadEnv(envFiles); err != nil {
		return nil, errors.Wrap(err, "load env files")
	}
	return Parse()
}

// Parse builds a Configuration from the current process environment.
func Parse() (*Configuration, error) {
	c := &Configuration{}
	if err := env.Parse(c); err != nil {
		return nil, errors.Wrap(err, "parse environment")
	}
	c.Environment = strings.ToLower(strings.TrimSpace(c.Environment))
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Configuration) Validate() error {
	switch c.Environment {
	case Local, Dev, Staging, Production:
	default:
		return errors.Errorf("unknown APP_ENV %q: expected local, dev, staging or production", c.Environment)
	}
	if c.Backfill.PageSize <= 0 {
		return errors.Errorf("SEED_PAGE_SIZE must be positive, got %d", c.Backfill.PageSize)
	}
	if c.Backfill.PagesPerSecond < 0 {
		return errors.Errorf("SEED_PAGES_PER_SECOND must be non-negative, got %v", c.Backfill.PagesPerSecond)
	}
	switch c.Backfill.ActivePolicy {
	case "lowest-id", "first":
	default:
		return errors.Errorf("SEED_ACTIVE_POLICY must be 'lowest-id' or 'first', got %q", c.Backfill.ActivePolicy)
	}
	if c.Fixtures.Financers <= 0 || c.Fixtures.UsersPerFinancer <= 0 {
		return errors.Errorf("FAKE_FINANCERS and FAKE_USERS_PER_FINANCER must be positive, got %d and %d",
			c.Fixtures.Financers, c.Fixtures.UsersPerFinancer)
	}
	if c.Fixtures.ChunkSize <= 0 {
		return errors.Errorf("FAKE_CHUNK_SIZE must be positive, got %d", c.Fixtures.ChunkSize)
	}
	if strings.TrimSpace(c.GlobalTeamID) == "" {
		return errors.New("SEED_GLOBAL_TEAM_ID is required")
	}
	return nil
}

// WithEnvironment returns a copy targeting another environment, as used by --env.
func (c *Configuration) WithEnvironment(name string) (*Configuration, error) {
	cp := *c
	cp.Environment = strings.ToLower(strings.TrimSpace(name))
	if err := cp.Validate(); err != nil {
		return nil, err
	}
	return &cp, nil
}

// IncludeDemoData is true for environments that receive staging demo content.
func (c *Configuration) IncludeDemoData() bool {
	switch c.Environment {
	case Local, Dev, Staging:
		return true
	}
	return false
}

// IncludeDevData is true for environments that receive development-only fixtures.
func (c *Configuration) IncludeDevData() bool {
	return c.Environment == Local || c.Environment == Dev
}
