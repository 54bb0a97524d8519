package pg

import (
	"context"
	"database/sql"
	"regexp"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"upengage.io/seeder/internal/auth"
	"upengage.io/seeder/internal/backfill"
	"upengage.io/seeder/internal/catalog"
	"upengage.io/seeder/internal/fixtures"
	"upengage.io/seeder/internal/modules"
	"upengage.io/seeder/internal/snapshot"
	"upengage.io/seeder/internal/tenancy"
)

const (
	pgErrUniqueViolation     = "23505"
	pgErrForeignKeyViolation = "23503"
)

var errNoDB = errors.New("database connection unavailable")

// Store implements every persistence port of the seeders on one Postgres pool.
type Store struct {
	db *sql.DB
	x  *sqlx.DB
}

var (
	_ auth.RBACStore         = (*Store)(nil)
	_ catalog.Store          = (*Store)(nil)
	_ tenancy.FinancerLister = (*Store)(nil)
	_ tenancy.DivisionStore  = (*Store)(nil)
	_ tenancy.DivisionLister = (*Store)(nil)
	_ modules.Store          = (*Store)(nil)
	_ backfill.Source        = (*Store)(nil)
	_ backfill.LanguageStore = (*Store)(nil)
	_ snapshot.Store         = (*Store)(nil)
	_ fixtures.Writer        = (*Store)(nil)
)

type PoolOptions struct {
	MaxOpenConns int
}

func Open(dsn string, opts PoolOptions) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	// Seeding is sequential; a small pool is enough.
	maxOpen := opts.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 4
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxOpen)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return New(db), nil
}

// New wraps an existing connection, e.g. a sqlmock one in tests.
func New(db *sql.DB) *Store {
	if db == nil {
		return &Store{}
	}
	return &Store{db: db, x: sqlx.NewDb(db, "pgx")}
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Ping(ctx context.Context) error {
	if s.db == nil {
		return errNoDB
	}
	return s.db.PingContext(ctx)
}

// --- helpers ---

func maybePgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

func isUniqueViolation(err error) bool {
	pgErr, ok := maybePgError(err)
	return ok && pgErr.Code == pgErrUniqueViolation
}

func nullIfEmpty(s string) sql.NullString {
	s = strings.TrimSpace(s)
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// quoteIdent quotes a table or column name. Only lower-case identifiers are
// accepted since every dataset name is checked against the same pattern.
func quoteIdent(name string) (string, error) {
	if !identRe.MatchString(name) {
		return "", errors.New("invalid identifier " + name)
	}
	return `"` + name + `"`, nil
}

func quoteIdents(names []string) ([]string, error) {
	out := make([]string, len(names))
	for i, n := range names {
		q, err := quoteIdent(n)
		if err != nil {
			return nil, err
		}
		out[i] = q
	}
	return out, nil
}
