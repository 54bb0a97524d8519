package fixtures

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"upengage.io/seeder/internal/tenancy"
)

// Writer bulk inserts generated rows.
type Writer interface {
	InsertFinancers(ctx context.Context, financers []tenancy.Financer) error
	InsertUsers(ctx context.Context, users []tenancy.User) error
	InsertRelationships(ctx context.Context, rels []tenancy.Relationship) error
}

type Options struct {
	Financers        int
	UsersPerFinancer int
	ChunkSize        int
	DivisionID       string
}

type Result struct {
	Financers     int
	Users         int
	Relationships int
}

// LargeUserSeeder generates financers with many users each, for load testing
// the backfills and the admin panel.
type LargeUserSeeder struct {
	writer  Writer
	factory *Factory
	opts    Options
	log     *logrus.Entry
}

func NewLargeUserSeeder(writer Writer, factory *Factory, opts Options, log *logrus.Entry) (*LargeUserSeeder, error) {
	if writer == nil || factory == nil {
		return nil, errors.New("writer and factory are required")
	}
	if opts.Financers <= 0 || opts.UsersPerFinancer <= 0 {
		return nil, errors.Errorf("financers and users per financer must be positive, got %d and %d", opts.Financers, opts.UsersPerFinancer)
	}
	if opts.DivisionID == "" {
		return nil, errors.New("division id is required")
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = 500
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &LargeUserSeeder{writer: writer, factory: factory, opts: opts, log: log}, nil
}

func (s *LargeUserSeeder) Run(ctx context.Context) (Result, error) {
	var res Result
	financers := make([]tenancy.Financer, 0, s.opts.Financers)
	for i := 0; i < s.opts.Financers; i++ {
		financers = append(financers, s.factory.Financer(s.opts.DivisionID))
	}
	if err := s.writer.InsertFinancers(ctx, financers); err != nil {
		return res, errors.Wrap(err, "insert financers")
	}
	res.Financers = len(financers)

	for _, fin := range financers {
		domain := domainFor(fin.Name)
		for start := 0; start < s.opts.UsersPerFinancer; start += s.opts.ChunkSize {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			end := min(start+s.opts.ChunkSize, s.opts.UsersPerFinancer)
			users := make([]tenancy.User, 0, end-start)
			rels := make([]tenancy.Relationship, 0, end-start)
			for n := start; n < end; n++ {
				u := s.factory.User(domain)
				users = append(users, u)
				rels = append(rels, s.factory.Relationship(u, fin, n))
			}
			if err := s.writer.InsertUsers(ctx, users); err != nil {
				return res, errors.Wrapf(err, "insert users for %s", fin.ID)
			}
			if err := s.writer.InsertRelationships(ctx, rels); err != nil {
				return res, errors.Wrapf(err, "insert pivots for %s", fin.ID)
			}
			res.Users += len(users)
			res.Relationships += len(rels)
		}
		s.log.WithFields(logrus.Fields{"financer": fin.Name, "users": s.opts.UsersPerFinancer}).Info("financer populated")
	}
	return res, nil
}
