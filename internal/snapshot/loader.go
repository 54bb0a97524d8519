package snapshot

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"upengage.io/seeder/internal/audit"
)

// Store writes dataset rows. ReplaceRows deletes every row of the table and
// inserts records in one transaction.
type Store interface {
	ReplaceRows(ctx context.Context, table string, columns []string, records []map[string]any) (deleted int64, err error)
	AppendRows(ctx context.Context, table string, columns []string, records []map[string]any) (inserted int64, err error)
	MarkDemo(ctx context.Context, table string, ids []any) error
}

type Result struct {
	Dataset  string
	Table    string
	Deleted  int64
	Inserted int64
}

type Loader struct {
	store Store
	log   *logrus.Entry
}

func NewLoader(store Store, log *logrus.Entry) (*Loader, error) {
	if store == nil {
		return nil, errors.New("snapshot store is required")
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Loader{store: store, log: log}, nil
}

// Load writes the dataset. Replace datasets leave exactly their rows in the
// table; append datasets add rows whose id is not present yet. Rows of demo
// datasets are marked demo afterwards.
func (l *Loader) Load(ctx context.Context, d Dataset) (Result, error) {
	res := Result{Dataset: d.Name, Table: d.Table}
	if err := d.Validate(); err != nil {
		return res, err
	}
	records, err := d.Records()
	if err != nil {
		return res, err
	}
	switch d.Mode {
	case ModeReplace:
		deleted, err := l.store.ReplaceRows(ctx, d.Table, d.Columns, records)
		if err != nil {
			return res, errors.Wrapf(err, "replace %s", d.Table)
		}
		res.Deleted = deleted
		res.Inserted = int64(len(records))
		_ = audit.LogEvent(ctx, "snapshot.replaced", map[string]any{
			"dataset":  d.Name,
			"table":    d.Table,
			"deleted":  deleted,
			"inserted": res.Inserted,
		})
	case ModeAppend:
		inserted, err := l.store.AppendRows(ctx, d.Table, d.Columns, records)
		if err != nil {
			return res, errors.Wrapf(err, "append %s", d.Table)
		}
		res.Inserted = inserted
	}
	if d.Demo && len(d.Rows) > 0 {
		if err := l.store.MarkDemo(ctx, d.Table, d.IDs()); err != nil {
			return res, errors.Wrapf(err, "mark %s demo", d.Table)
		}
	}
	l.log.WithFields(logrus.Fields{
		"dataset":  d.Name,
		"table":    d.Table,
		"deleted":  res.Deleted,
		"inserted": res.Inserted,
	}).Info("snapshot loaded")
	return res, nil
}
