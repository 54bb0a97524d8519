package pg

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgconn"

	"upengage.io/seeder/internal/auth"
	"upengage.io/seeder/internal/catalog"
	"upengage.io/seeder/internal/tenancy"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return New(db), mock
}

func verify(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestNilStoreReportsUnavailable(t *testing.T) {
	s := New(nil)
	if _, err := s.FindPermission(context.Background(), "x"); !errors.Is(err, errNoDB) {
		t.Fatalf("expected errNoDB, got %v", err)
	}
	if _, err := s.AppendRows(context.Background(), "teams", []string{"id"}, nil); !errors.Is(err, errNoDB) {
		t.Fatalf("expected errNoDB, got %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestFindPermissionNotFound(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(`from permissions`).
		WithArgs("read.user", guardName).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_protected", "created_at"}))

	if _, err := s.FindPermission(context.Background(), "read.user"); !errors.Is(err, auth.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	verify(t, mock)
}

func TestCreateRoleConflict(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(`insert into roles`).
		WithArgs("r1", "team", "god", guardName, true).
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation})

	_, err := s.CreateRole(context.Background(), auth.Role{ID: "r1", TeamID: "team", Name: "god", IsProtected: true})
	if !errors.Is(err, auth.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	verify(t, mock)
}

func TestSetRolePermissionsReplacesLinks(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`select 1 from roles where id = \$1`).
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectExec(`delete from role_has_permissions where role_id = \$1`).
		WithArgs("r1").
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectExec(`insert into role_has_permissions`).
		WithArgs("read.user", "r1", guardName).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`insert into role_has_permissions`).
		WithArgs("update.user", "r1", guardName).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := s.SetRolePermissions(context.Background(), "r1", []string{"read.user", "update.user"}); err != nil {
		t.Fatalf("set permissions: %v", err)
	}
	verify(t, mock)
}

func TestSetRolePermissionsUnknownPermissionRollsBack(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`select 1 from roles`).
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectExec(`delete from role_has_permissions`).
		WithArgs("r1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`insert into role_has_permissions`).
		WithArgs("nope", "r1", guardName).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := s.SetRolePermissions(context.Background(), "r1", []string{"nope"})
	if !errors.Is(err, auth.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	verify(t, mock)
}

func TestHasRoleAndAssignRole(t *testing.T) {
	s, mock := newMockStore(t)
	a := auth.RoleAssignment{UserID: "u1", RoleID: "r1", TeamID: "team"}
	mock.ExpectQuery(`select exists`).
		WithArgs("team", "r1", "u1", userModelType).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`insert into model_has_roles`).
		WithArgs("r1", userModelType, "u1", "team").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`insert into model_has_roles`).
		WithArgs("r2", userModelType, "u1", "team").
		WillReturnError(&pgconn.PgError{Code: pgErrForeignKeyViolation})
	mock.ExpectExec(`insert into model_has_roles`).
		WithArgs("r1", userModelType, "u1", "team").
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation})

	held, err := s.HasRole(context.Background(), a)
	if err != nil || held {
		t.Fatalf("expected not held, got %v %v", held, err)
	}
	if err := s.AssignRole(context.Background(), a); err != nil {
		t.Fatalf("assign: %v", err)
	}
	a.RoleID = "r2"
	if err := s.AssignRole(context.Background(), a); !errors.Is(err, auth.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing role, got %v", err)
	}
	a.RoleID = "r1"
	if err := s.AssignRole(context.Background(), a); !errors.Is(err, auth.ErrConflict) {
		t.Fatalf("expected ErrConflict for a concurrent assignment, got %v", err)
	}
	verify(t, mock)
}

func TestCreateEntryConflictIsFatal(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(`insert into sites \(id, financer_id, name\) values \(\$1, \$2, \$3\)`).
		WithArgs("new", "fin", "Paris").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`insert into sites`).
		WithArgs("dup", "fin", "Paris").
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation})

	e, err := s.CreateEntry(context.Background(), catalog.Sites, catalog.Entry{ID: "new", FinancerID: "fin", Name: "Paris"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.ID != "new" {
		t.Fatalf("unexpected entry %+v", e)
	}
	_, err = s.CreateEntry(context.Background(), catalog.Sites, catalog.Entry{ID: "dup", FinancerID: "fin", Name: "Paris"})
	if !errors.Is(err, catalog.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if _, err := s.CreateEntry(context.Background(), catalog.Kind("users"), e); !errors.Is(err, catalog.ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
	verify(t, mock)
}

func TestLoadEntriesAbortsWhenAnotherRunCreatedTheEntry(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(`select id, name, division_id, active\s+from financers`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "division_id", "active"}).AddRow("fin", "Acme", "d1", true))
	mock.ExpectQuery(`select id, financer_id, name from contract_types`).
		WithArgs("fin", "CDI").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`insert into contract_types`).
		WithArgs("id-1", "fin", "CDI").
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation})

	loader, err := catalog.NewLoader(s, s, catalog.WithIDGenerator(func() string { return "id-1" }))
	if err != nil {
		t.Fatalf("loader: %v", err)
	}
	stats, err := loader.LoadEntries(context.Background(), catalog.ContractTypes, []string{"CDI"})
	if !errors.Is(err, catalog.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if stats.Created != 0 {
		t.Fatalf("conflicting entry counted as created: %+v", stats)
	}
	verify(t, mock)
}

func TestListFinancers(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(`select id, name, division_id, active\s+from financers\s+order by id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "division_id", "active"}).
			AddRow("f1", "Acme", "d1", true).
			AddRow("f2", "Globex", "d1", false))

	fins, err := s.ListFinancers(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(fins) != 2 || fins[1] != (tenancy.Financer{ID: "f2", Name: "Globex", DivisionID: "d1"}) {
		t.Fatalf("unexpected financers %+v", fins)
	}
	verify(t, mock)
}

func TestDivisions(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(`from divisions`).
		WithArgs("Hexeko France").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "country", "currency", "language", "is_demo"}))
	mock.ExpectExec(`insert into divisions`).
		WithArgs("d1", "Hexeko France", "FR", "EUR", "fr-FR", false).
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation})
	mock.ExpectExec(regexp.QuoteMeta(`update divisions set is_demo = true where id in ($1, $2)`)).
		WithArgs("d2", "d3").
		WillReturnResult(sqlmock.NewResult(0, 2))

	ctx := context.Background()
	if _, err := s.FindDivision(ctx, "Hexeko France"); !errors.Is(err, tenancy.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	d := tenancy.Division{ID: "d1", Name: "Hexeko France", Country: "FR", Currency: "EUR", Language: "fr-FR"}
	if _, err := s.CreateDivision(ctx, d); !errors.Is(err, tenancy.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if err := s.MarkDivisionsDemo(ctx, []string{"d2", "d3"}); err != nil {
		t.Fatalf("mark demo: %v", err)
	}
	if err := s.MarkDivisionsDemo(ctx, nil); err != nil {
		t.Fatalf("mark none: %v", err)
	}
	verify(t, mock)
}

func TestUsersAfterGroupsRelationships(t *testing.T) {
	s, mock := newMockStore(t)
	started := time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC)
	cols := []string{"id", "id", "financer_id", "active", "role", "language", "started_at"}
	mock.ExpectQuery(`with page as`).
		WithArgs(nil, 2).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("u1", "p1", "f1", false, "beneficiary", nil, nil).
			AddRow("u1", "p2", "f2", true, "financer_admin", "fr-FR", started).
			AddRow("u2", nil, nil, nil, nil, nil, nil))
	mock.ExpectQuery(`with page as`).
		WithArgs("u2", 2).
		WillReturnRows(sqlmock.NewRows(cols))

	page, err := s.UsersAfter(context.Background(), "", 2)
	if err != nil {
		t.Fatalf("users after: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 users, got %d", len(page))
	}
	if len(page[0].Relationships) != 2 || len(page[1].Relationships) != 0 {
		t.Fatalf("unexpected grouping %+v", page)
	}
	rel := page[0].Relationships[1]
	if rel.ID != "p2" || !rel.Active || rel.Role != "financer_admin" || rel.Language != "fr-FR" || !rel.From.Equal(started) {
		t.Fatalf("unexpected relationship %+v", rel)
	}

	page, err = s.UsersAfter(context.Background(), "u2", 2)
	if err != nil || len(page) != 0 {
		t.Fatalf("expected empty page, got %v %v", page, err)
	}
	verify(t, mock)
}

func TestLanguageBackfillQueries(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(`where fu.language is null`).
		WithArgs("p1", 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "locale"}).AddRow("p2", "nl-BE").AddRow("p3", ""))
	mock.ExpectExec(`update financer_user set language = \$2\s+where id = \$1 and language is null`).
		WithArgs("p2", "nl-BE").
		WillReturnResult(sqlmock.NewResult(0, 1))

	page, err := s.PivotsMissingLanguage(context.Background(), "p1", 10)
	if err != nil {
		t.Fatalf("pivots: %v", err)
	}
	if len(page) != 2 || page[0].UserLocale != "nl-BE" || page[1].UserLocale != "" {
		t.Fatalf("unexpected candidates %+v", page)
	}
	if err := s.SetPivotLanguage(context.Background(), "p2", "nl-BE"); err != nil {
		t.Fatalf("set language: %v", err)
	}
	verify(t, mock)
}
