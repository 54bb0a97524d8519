package pg

import (
	"context"
	"database/sql"

	"github.com/go-faster/errors"
	"github.com/jmoiron/sqlx"

	"upengage.io/seeder/internal/tenancy"
)

func (s *Store) ListFinancers(ctx context.Context) ([]tenancy.Financer, error) {
	if s.db == nil {
		return nil, errNoDB
	}
	rows, err := s.db.QueryContext(ctx, `
		select id, name, division_id, active
		from financers
		order by id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []tenancy.Financer
	for rows.Next() {
		var f tenancy.Financer
		if err := rows.Scan(&f.ID, &f.Name, &f.DivisionID, &f.Active); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) ListDivisions(ctx context.Context) ([]tenancy.Division, error) {
	if s.db == nil {
		return nil, errNoDB
	}
	rows, err := s.db.QueryContext(ctx, `
		select id, name, country, currency, language, is_demo
		from divisions
		order by id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []tenancy.Division
	for rows.Next() {
		var d tenancy.Division
		if err := rows.Scan(&d.ID, &d.Name, &d.Country, &d.Currency, &d.Language, &d.IsDemo); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) FindDivision(ctx context.Context, name string) (tenancy.Division, error) {
	if s.db == nil {
		return tenancy.Division{}, errNoDB
	}
	var d tenancy.Division
	err := s.db.QueryRowContext(ctx, `
		select id, name, country, currency, language, is_demo
		from divisions
		where name = $1
	`, name).Scan(&d.ID, &d.Name, &d.Country, &d.Currency, &d.Language, &d.IsDemo)
	if errors.Is(err, sql.ErrNoRows) {
		return tenancy.Division{}, tenancy.ErrNotFound
	}
	if err != nil {
		return tenancy.Division{}, err
	}
	return d, nil
}

func (s *Store) CreateDivision(ctx context.Context, d tenancy.Division) (tenancy.Division, error) {
	if s.db == nil {
		return tenancy.Division{}, errNoDB
	}
	_, err := s.db.ExecContext(ctx, `
		insert into divisions (id, name, country, currency, language, is_demo)
		values ($1, $2, $3, $4, $5, $6)
	`, d.ID, d.Name, d.Country, d.Currency, d.Language, d.IsDemo)
	if err != nil {
		if isUniqueViolation(err) {
			return tenancy.Division{}, tenancy.ErrConflict
		}
		return tenancy.Division{}, err
	}
	return d, nil
}

func (s *Store) MarkDivisionsDemo(ctx context.Context, ids []string) error {
	if s.x == nil {
		return errNoDB
	}
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`update divisions set is_demo = true where id in (?)`, ids)
	if err != nil {
		return err
	}
	_, err = s.x.ExecContext(ctx, s.x.Rebind(query), args...)
	return err
}
