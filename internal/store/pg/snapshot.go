package pg

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Postgres accepts at most 65535 bind parameters per statement.
const maxBindParams = 65535

const maxRowsPerInsert = 1000

// ReplaceRows empties table and inserts records in one transaction, so readers
// never observe a partially loaded snapshot.
func (s *Store) ReplaceRows(ctx context.Context, table string, columns []string, records []map[string]any) (int64, error) {
	if s.x == nil {
		return 0, errNoDB
	}
	qTable, err := quoteIdent(table)
	if err != nil {
		return 0, err
	}
	insert, err := insertStatement(table, columns, "")
	if err != nil {
		return 0, err
	}

	tx, err := s.x.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `delete from `+qTable)
	if err != nil {
		return 0, err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if _, err := namedInsert(ctx, tx, insert, records, len(columns)); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return deleted, nil
}

// AppendRows inserts records whose id is not present yet.
func (s *Store) AppendRows(ctx context.Context, table string, columns []string, records []map[string]any) (int64, error) {
	if s.x == nil {
		return 0, errNoDB
	}
	insert, err := insertStatement(table, columns, ` on conflict ("id") do nothing`)
	if err != nil {
		return 0, err
	}
	return namedInsert(ctx, s.x, insert, records, len(columns))
}

func (s *Store) MarkDemo(ctx context.Context, table string, ids []any) error {
	if s.x == nil {
		return errNoDB
	}
	if len(ids) == 0 {
		return nil
	}
	qTable, err := quoteIdent(table)
	if err != nil {
		return err
	}
	query, args, err := sqlx.In(`update `+qTable+` set is_demo = true where id in (?)`, ids)
	if err != nil {
		return err
	}
	_, err = s.x.ExecContext(ctx, s.x.Rebind(query), args...)
	return err
}

func insertStatement(table string, columns []string, suffix string) (string, error) {
	qTable, err := quoteIdent(table)
	if err != nil {
		return "", err
	}
	qCols, err := quoteIdents(columns)
	if err != nil {
		return "", err
	}
	params := make([]string, len(columns))
	for i, c := range columns {
		params[i] = ":" + c
	}
	return fmt.Sprintf(`insert into %s (%s) values (%s)%s`,
		qTable, strings.Join(qCols, ", "), strings.Join(params, ", "), suffix), nil
}

// namedInsert runs a multi-row insert per chunk and returns the rows written.
func namedInsert[T any](ctx context.Context, exec sqlx.ExtContext, query string, rows []T, perRow int) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	chunk := maxRowsPerInsert
	if perRow > 0 && chunk*perRow > maxBindParams {
		chunk = maxBindParams / perRow
	}
	var total int64
	for start := 0; start < len(rows); start += chunk {
		end := min(start+chunk, len(rows))
		res, err := sqlx.NamedExecContext(ctx, exec, query, rows[start:end])
		if err != nil {
			return total, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
