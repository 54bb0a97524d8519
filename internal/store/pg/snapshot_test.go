package pg

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-faster/errors"

	"upengage.io/seeder/internal/tenancy"
)

var teamRecords = []map[string]any{
	{"id": "t1", "name": "Global"},
	{"id": "t2", "name": "Ops"},
}

func TestReplaceRowsDeletesThenInsertsInOneTransaction(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`delete from "teams"`)).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(regexp.QuoteMeta(`insert into "teams" ("id", "name") values ($1, $2),($3, $4)`)).
		WithArgs("t1", "Global", "t2", "Ops").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	deleted, err := s.ReplaceRows(context.Background(), "teams", []string{"id", "name"}, teamRecords)
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if deleted != 4 {
		t.Fatalf("expected 4 deleted rows, got %d", deleted)
	}
	verify(t, mock)
}

func TestReplaceRowsRollsBackOnInsertFailure(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec(`delete from "teams"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`insert into "teams"`).WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	if _, err := s.ReplaceRows(context.Background(), "teams", []string{"id", "name"}, teamRecords); err == nil {
		t.Fatal("expected insert error")
	}
	verify(t, mock)
}

func TestAppendRowsSkipsExistingIDs(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta(`insert into "teams" ("id", "name") values ($1, $2),($3, $4) on conflict ("id") do nothing`)).
		WithArgs("t1", "Global", "t2", "Ops").
		WillReturnResult(sqlmock.NewResult(0, 1))

	inserted, err := s.AppendRows(context.Background(), "teams", []string{"id", "name"}, teamRecords)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if inserted != 1 {
		t.Fatalf("expected 1 inserted row, got %d", inserted)
	}
	verify(t, mock)
}

func TestSnapshotRejectsUnsafeIdentifiers(t *testing.T) {
	s, mock := newMockStore(t)
	if _, err := s.ReplaceRows(context.Background(), `teams"; drop`, []string{"id"}, nil); err == nil {
		t.Fatal("expected identifier error")
	}
	if _, err := s.AppendRows(context.Background(), "teams", []string{"Name"}, nil); err == nil {
		t.Fatal("expected identifier error")
	}
	verify(t, mock)
}

func TestMarkDemo(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta(`update "users" set is_demo = true where id in ($1, $2)`)).
		WithArgs("u1", "u2").
		WillReturnResult(sqlmock.NewResult(0, 2))

	if err := s.MarkDemo(context.Background(), "users", []any{"u1", "u2"}); err != nil {
		t.Fatalf("mark demo: %v", err)
	}
	verify(t, mock)
}

func TestNamedInsertChunksByBindLimit(t *testing.T) {
	s, mock := newMockStore(t)
	rows := make([]map[string]any, 3)
	for i := range rows {
		rows[i] = map[string]any{"id": i}
	}
	mock.ExpectExec(regexp.QuoteMeta(`insert into "t" ("id") values ($1),($2)`)).
		WithArgs(0, 1).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`insert into "t" ("id") values ($1)`)).
		WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	query, err := insertStatement("t", []string{"id"}, "")
	if err != nil {
		t.Fatalf("statement: %v", err)
	}
	n, err := namedInsert(context.Background(), s.x, query, rows, maxBindParams/2)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 rows, got %d", n)
	}
	verify(t, mock)
}

func TestFixtureWriters(t *testing.T) {
	s, mock := newMockStore(t)
	started := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(`insert into financers`).
		WithArgs("f1", "Acme", "d1", true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`insert into users`).
		WithArgs("u1", "a@acme.test", "Ada", "Lovelace", nil, "team").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`insert into financer_user`).
		WithArgs("p1", "f1", "u1", true, "beneficiary", nil, started).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := context.Background()
	if err := s.InsertFinancers(ctx, []tenancy.Financer{{ID: "f1", Name: "Acme", DivisionID: "d1", Active: true}}); err != nil {
		t.Fatalf("financers: %v", err)
	}
	if err := s.InsertUsers(ctx, []tenancy.User{{ID: "u1", Email: "a@acme.test", FirstName: "Ada", LastName: "Lovelace", TeamID: "team"}}); err != nil {
		t.Fatalf("users: %v", err)
	}
	rel := tenancy.Relationship{ID: "p1", UserID: "u1", FinancerID: "f1", Active: true, Role: "beneficiary", From: started}
	if err := s.InsertRelationships(ctx, []tenancy.Relationship{rel}); err != nil {
		t.Fatalf("pivots: %v", err)
	}
	verify(t, mock)
}
