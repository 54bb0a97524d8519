package migrate

import (
	"context"
	"testing"
	"testing/fstest"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var fixedNow = time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"sql/0001_a.up.sql":   {Data: []byte("create table a (id int);\ninsert into a values (1);")},
		"sql/0001_a.down.sql": {Data: []byte("drop table a;")},
		"sql/0002_b.up.sql":   {Data: []byte("create table b (note text default 'x;y');")},
		"sql/README.md":       {Data: []byte("ignored")},
	}
}

func expectTables(mock sqlmock.Sqlmock) {
	mock.ExpectExec(`create table if not exists schema_migrations`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`create table if not exists schema_seeds`).WillReturnResult(sqlmock.NewResult(0, 0))
}

func TestUpAppliesPendingInOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	m := NewManager(db, testFS(), "sql", WithClock(func() time.Time { return fixedNow }))

	expectTables(mock)
	mock.ExpectQuery(`select name, applied_at from schema_migrations`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "applied_at"}).AddRow("0001_a.up.sql", fixedNow))
	mock.ExpectBegin()
	mock.ExpectExec(`create table b \(note text default 'x;y'\);`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectExec(`insert into schema_migrations`).
		WithArgs("0002_b.up.sql", fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	applied, err := m.Up(context.Background())
	if err != nil {
		t.Fatalf("up: %v", err)
	}
	if len(applied) != 1 || applied[0] != "0002_b.up.sql" {
		t.Fatalf("unexpected applied list %v", applied)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDownRollsBackLatest(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	m := NewManager(db, testFS(), "sql")

	expectTables(mock)
	mock.ExpectQuery(`select name, applied_at from schema_migrations`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "applied_at"}).AddRow("0001_a.up.sql", fixedNow))
	mock.ExpectBegin()
	mock.ExpectExec(`drop table a;`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectExec(`delete from schema_migrations where name = \$1`).
		WithArgs("0001_a.up.sql").
		WillReturnResult(sqlmock.NewResult(0, 1))

	name, err := m.Down(context.Background())
	if err != nil {
		t.Fatalf("down: %v", err)
	}
	if name != "0001_a.up.sql" {
		t.Fatalf("unexpected rollback %s", name)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDownWithoutHistory(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	expectTables(mock)
	mock.ExpectQuery(`select name, applied_at from schema_migrations`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "applied_at"}))

	if _, err := NewManager(db, testFS(), "sql").Down(context.Background()); err == nil {
		t.Fatal("expected error when nothing is applied")
	}
}

func TestRecordSeedUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	m := NewManager(db, nil, "", WithClock(func() time.Time { return fixedNow }))

	expectTables(mock)
	mock.ExpectExec(`insert into schema_seeds\(name, applied_at\) values \(\$1, \$2\)\s+on conflict \(name\) do update`).
		WithArgs("permissions", fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	expectTables(mock)
	mock.ExpectQuery(`select name, applied_at from schema_seeds`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "applied_at"}).AddRow("permissions", fixedNow))

	if err := m.RecordSeed(context.Background(), "permissions"); err != nil {
		t.Fatalf("record: %v", err)
	}
	history, err := m.SeedHistory(context.Background())
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].Name != "permissions" || !history[0].AppliedAt.Equal(fixedNow) {
		t.Fatalf("unexpected history %+v", history)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestEmbeddedMigrationsPair(t *testing.T) {
	m := NewManager(nil, Embedded, EmbeddedDir)
	ups, err := m.collectSQL(".up.sql")
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	downs, err := m.collectSQL(".down.sql")
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(ups) == 0 || len(ups) != len(downs) {
		t.Fatalf("expected paired migrations, got %d up and %d down", len(ups), len(downs))
	}
	for i := range ups {
		if ups[i].Base[:4] != downs[i].Base[:4] {
			t.Fatalf("migration %s has no matching down file", ups[i].Base)
		}
	}
}

func TestSplitStatements(t *testing.T) {
	stmts := splitStatements("a;\nb 'x;y';\n  ")
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d: %q", len(stmts), stmts)
	}
}
