package pg

import (
	"context"
	"database/sql"
	"time"

	"upengage.io/seeder/internal/tenancy"
)

type financerRow struct {
	ID         string `db:"id"`
	Name       string `db:"name"`
	DivisionID string `db:"division_id"`
	Active     bool   `db:"active"`
}

type userRow struct {
	ID        string         `db:"id"`
	Email     string         `db:"email"`
	FirstName string         `db:"first_name"`
	LastName  string         `db:"last_name"`
	Locale    sql.NullString `db:"locale"`
	TeamID    sql.NullString `db:"team_id"`
}

type relationshipRow struct {
	ID         string         `db:"id"`
	FinancerID string         `db:"financer_id"`
	UserID     string         `db:"user_id"`
	Active     bool           `db:"active"`
	Role       sql.NullString `db:"role"`
	Language   sql.NullString `db:"language"`
	StartedAt  sql.NullTime   `db:"started_at"`
}

const (
	insertFinancers = `insert into financers (id, name, division_id, active, is_demo)
		values (:id, :name, :division_id, :active, true)`
	insertUsers = `insert into users (id, email, first_name, last_name, locale, team_id, is_demo)
		values (:id, :email, :first_name, :last_name, :locale, :team_id, true)`
	insertRelationships = `insert into financer_user (id, financer_id, user_id, active, role, language, started_at)
		values (:id, :financer_id, :user_id, :active, :role, :language, :started_at)`
)

func (s *Store) InsertFinancers(ctx context.Context, financers []tenancy.Financer) error {
	if s.x == nil {
		return errNoDB
	}
	rows := make([]financerRow, len(financers))
	for i, f := range financers {
		rows[i] = financerRow{ID: f.ID, Name: f.Name, DivisionID: f.DivisionID, Active: f.Active}
	}
	_, err := namedInsert(ctx, s.x, insertFinancers, rows, 4)
	return err
}

func (s *Store) InsertUsers(ctx context.Context, users []tenancy.User) error {
	if s.x == nil {
		return errNoDB
	}
	rows := make([]userRow, len(users))
	for i, u := range users {
		rows[i] = userRow{
			ID:        u.ID,
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Locale:    nullIfEmpty(u.Locale),
			TeamID:    nullIfEmpty(u.TeamID),
		}
	}
	_, err := namedInsert(ctx, s.x, insertUsers, rows, 6)
	return err
}

func (s *Store) InsertRelationships(ctx context.Context, rels []tenancy.Relationship) error {
	if s.x == nil {
		return errNoDB
	}
	rows := make([]relationshipRow, len(rels))
	for i, r := range rels {
		rows[i] = relationshipRow{
			ID:         r.ID,
			FinancerID: r.FinancerID,
			UserID:     r.UserID,
			Active:     r.Active,
			Role:       nullIfEmpty(r.Role),
			Language:   nullIfEmpty(r.Language),
			StartedAt:  nullTime(r.From),
		}
	}
	_, err := namedInsert(ctx, s.x, insertRelationships, rows, 7)
	return err
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
