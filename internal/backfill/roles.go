package backfill

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"upengage.io/seeder/internal/auth"
	"upengage.io/seeder/internal/tenancy"
)

const DefaultPageSize = 500

// UserRelationships is one user with all of their financer_user rows.
type UserRelationships struct {
	UserID        string
	Relationships []tenancy.Relationship
}

// Source pages users by ascending id, strictly after afterID ("" starts at the beginning).
type Source interface {
	UsersAfter(ctx context.Context, afterID string, limit int) ([]UserRelationships, error)
}

// Granter assigns a role within an explicit team scope. It reports false when
// the user already holds the role.
type Granter interface {
	GrantRole(ctx context.Context, teamID, userID, roleName string) (bool, error)
}

type RoleResult struct {
	Pages       int
	Processed   int
	Granted     int
	AlreadyHeld int
	NoActive    int
	EmptyRole   int
	UnknownRole int
}

// Skipped counts users for which nothing was written.
func (r RoleResult) Skipped() int {
	return r.AlreadyHeld + r.NoActive + r.EmptyRole + r.UnknownRole
}

type config struct {
	pageSize int
	limiter  *rate.Limiter
	reporter Reporter
	log      *logrus.Entry
	policy   Policy
}

type Option func(*config)

func WithPageSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithLimiter throttles page fetches.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *config) { c.limiter = l }
}

func WithReporter(r Reporter) Option {
	return func(c *config) {
		if r != nil {
			c.reporter = r
		}
	}
}

func WithLogger(l *logrus.Entry) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

func WithPolicy(p Policy) Option {
	return func(c *config) {
		if p != nil {
			c.policy = p
		}
	}
}

func newConfig(opts []Option) config {
	c := config{
		pageSize: DefaultPageSize,
		reporter: nopReporter{},
		log:      logrus.NewEntry(logrus.StandardLogger()),
		policy:   LowestIDActive,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c config) wait(ctx context.Context) error {
	if c.limiter == nil {
		return ctx.Err()
	}
	return c.limiter.Wait(ctx)
}

// RoleBackfill turns the role label of each user's active financer_user row
// into a role assignment in the configured team.
type RoleBackfill struct {
	source  Source
	granter Granter
	teamID  string
	cfg     config
}

func NewRoleBackfill(source Source, granter Granter, teamID string, opts ...Option) (*RoleBackfill, error) {
	if source == nil {
		return nil, errors.New("user source is required")
	}
	if granter == nil {
		return nil, errors.New("role granter is required")
	}
	if strings.TrimSpace(teamID) == "" {
		return nil, errors.New("team id is required")
	}
	return &RoleBackfill{source: source, granter: granter, teamID: teamID, cfg: newConfig(opts)}, nil
}

// Run walks every user once. An error aborts the remaining pages; work from
// earlier pages stays committed and a rerun skips it.
func (b *RoleBackfill) Run(ctx context.Context) (RoleResult, error) {
	var (
		res    RoleResult
		lastID string
	)
	for {
		if err := b.cfg.wait(ctx); err != nil {
			return res, err
		}
		page, err := b.source.UsersAfter(ctx, lastID, b.cfg.pageSize)
		if err != nil {
			return res, errors.Wrapf(err, "load users after %q", lastID)
		}
		if len(page) == 0 {
			return res, nil
		}
		res.Pages++
		for _, u := range page {
			if err := b.migrateUser(ctx, u, &res); err != nil {
				return res, err
			}
			res.Processed++
			lastID = u.UserID
		}
		b.cfg.reporter.Report(Progress{
			Job:       "roles_from_pivot",
			Page:      res.Pages,
			Processed: res.Processed,
			Changed:   res.Granted,
			Skipped:   res.Skipped(),
			LastID:    lastID,
		})
		if len(page) < b.cfg.pageSize {
			return res, nil
		}
	}
}

func (b *RoleBackfill) migrateUser(ctx context.Context, u UserRelationships, res *RoleResult) error {
	rel, ok := b.cfg.policy(u.Relationships)
	if !ok {
		res.NoActive++
		return nil
	}
	role := strings.TrimSpace(rel.Role)
	if role == "" {
		res.EmptyRole++
		return nil
	}
	granted, err := b.granter.GrantRole(ctx, b.teamID, u.UserID, role)
	switch {
	case errors.Is(err, auth.ErrNotFound):
		b.cfg.log.WithFields(logrus.Fields{"user_id": u.UserID, "role": role}).Warn("role does not exist, skipping user")
		res.UnknownRole++
		return nil
	case err != nil:
		return errors.Wrapf(err, "grant %s to user %s", role, u.UserID)
	case granted:
		res.Granted++
	default:
		res.AlreadyHeld++
	}
	return nil
}
