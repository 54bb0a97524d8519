package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-faster/errors"

	"upengage.io/seeder/internal/catalog"
)

func (s *Store) FindEntry(ctx context.Context, kind catalog.Kind, financerID, name string) (catalog.Entry, error) {
	if s.db == nil {
		return catalog.Entry{}, errNoDB
	}
	table, err := kind.Table()
	if err != nil {
		return catalog.Entry{}, err
	}
	var e catalog.Entry
	err = s.db.QueryRowContext(ctx, fmt.Sprintf(`
		select id, financer_id, name from %s
		where financer_id = $1 and name = $2
	`, table), financerID, name).Scan(&e.ID, &e.FinancerID, &e.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Entry{}, catalog.ErrNotFound
	}
	if err != nil {
		return catalog.Entry{}, err
	}
	return e, nil
}

// CreateEntry inserts e. A row with the same financer and name written by a
// concurrent run is reported as catalog.ErrConflict.
func (s *Store) CreateEntry(ctx context.Context, kind catalog.Kind, e catalog.Entry) (catalog.Entry, error) {
	if s.db == nil {
		return catalog.Entry{}, errNoDB
	}
	table, err := kind.Table()
	if err != nil {
		return catalog.Entry{}, err
	}
	_, err = s.db.ExecContext(ctx, fmt.Sprintf(`
		insert into %s (id, financer_id, name) values ($1, $2, $3)
	`, table), e.ID, e.FinancerID, e.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return catalog.Entry{}, errors.Errorf("%w: %s %q for financer %s", catalog.ErrConflict, kind, e.Name, e.FinancerID)
		}
		return catalog.Entry{}, err
	}
	return e, nil
}
