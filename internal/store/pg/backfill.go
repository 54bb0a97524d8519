package pg

import (
	"context"
	"database/sql"

	"upengage.io/seeder/internal/backfill"
	"upengage.io/seeder/internal/tenancy"
)

// UsersAfter returns up to limit users with id greater than afterID, each with
// all of their financer_user rows, in one round trip.
func (s *Store) UsersAfter(ctx context.Context, afterID string, limit int) ([]backfill.UserRelationships, error) {
	if s.db == nil {
		return nil, errNoDB
	}
	rows, err := s.db.QueryContext(ctx, `
		with page as (
			select id from users
			where $1::uuid is null or id > $1::uuid
			order by id
			limit $2
		)
		select p.id, fu.id, fu.financer_id, fu.active, fu.role, fu.language, fu.started_at
		from page p
		left join financer_user fu on fu.user_id = p.id
		order by p.id, fu.id
	`, nullIfEmpty(afterID), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []backfill.UserRelationships
	for rows.Next() {
		var (
			userID              string
			pivotID, financerID sql.NullString
			role, language      sql.NullString
			active              sql.NullBool
			startedAt           sql.NullTime
		)
		if err := rows.Scan(&userID, &pivotID, &financerID, &active, &role, &language, &startedAt); err != nil {
			return nil, err
		}
		if len(out) == 0 || out[len(out)-1].UserID != userID {
			out = append(out, backfill.UserRelationships{UserID: userID})
		}
		if !pivotID.Valid {
			continue
		}
		cur := &out[len(out)-1]
		cur.Relationships = append(cur.Relationships, tenancy.Relationship{
			ID:         pivotID.String,
			UserID:     userID,
			FinancerID: financerID.String,
			Active:     active.Bool,
			Role:       role.String,
			Language:   language.String,
			From:       startedAt.Time,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) PivotsMissingLanguage(ctx context.Context, afterID string, limit int) ([]backfill.LanguageCandidate, error) {
	if s.db == nil {
		return nil, errNoDB
	}
	rows, err := s.db.QueryContext(ctx, `
		select fu.id, coalesce(u.locale, '')
		from financer_user fu
		join users u on u.id = fu.user_id
		where fu.language is null
		  and ($1::uuid is null or fu.id > $1::uuid)
		order by fu.id
		limit $2
	`, nullIfEmpty(afterID), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []backfill.LanguageCandidate
	for rows.Next() {
		var c backfill.LanguageCandidate
		if err := rows.Scan(&c.PivotID, &c.UserLocale); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SetPivotLanguage never overwrites a language that is already set.
func (s *Store) SetPivotLanguage(ctx context.Context, pivotID, language string) error {
	if s.db == nil {
		return errNoDB
	}
	_, err := s.db.ExecContext(ctx, `
		update financer_user set language = $2
		where id = $1 and language is null
	`, pivotID, language)
	return err
}
