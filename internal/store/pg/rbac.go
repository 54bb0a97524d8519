package pg

import (
	"context"
	"database/sql"

	"github.com/go-faster/errors"

	"upengage.io/seeder/internal/auth"
)

const (
	guardName     = "api"
	userModelType = `App\Models\User`
)

func (s *Store) FindPermission(ctx context.Context, name string) (auth.Permission, error) {
	if s.db == nil {
		return auth.Permission{}, errNoDB
	}
	var p auth.Permission
	err := s.db.QueryRowContext(ctx, `
		select id, name, is_protected, created_at
		from permissions
		where name = $1 and guard_name = $2
	`, name, guardName).Scan(&p.ID, &p.Name, &p.IsProtected, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.Permission{}, auth.ErrNotFound
	}
	if err != nil {
		return auth.Permission{}, err
	}
	return p, nil
}

func (s *Store) CreatePermission(ctx context.Context, perm auth.Permission) (auth.Permission, error) {
	if s.db == nil {
		return auth.Permission{}, errNoDB
	}
	err := s.db.QueryRowContext(ctx, `
		insert into permissions (id, name, guard_name, is_protected)
		values ($1, $2, $3, $4)
		returning created_at
	`, perm.ID, perm.Name, guardName, perm.IsProtected).Scan(&perm.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return auth.Permission{}, auth.ErrConflict
		}
		return auth.Permission{}, err
	}
	return perm, nil
}

func (s *Store) FindRole(ctx context.Context, teamID, name string) (auth.Role, error) {
	if s.db == nil {
		return auth.Role{}, errNoDB
	}
	var r auth.Role
	err := s.db.QueryRowContext(ctx, `
		select id, team_id, name, is_protected, created_at
		from roles
		where team_id = $1 and name = $2 and guard_name = $3
	`, teamID, name, guardName).Scan(&r.ID, &r.TeamID, &r.Name, &r.IsProtected, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.Role{}, auth.ErrNotFound
	}
	if err != nil {
		return auth.Role{}, err
	}
	return r, nil
}

func (s *Store) CreateRole(ctx context.Context, role auth.Role) (auth.Role, error) {
	if s.db == nil {
		return auth.Role{}, errNoDB
	}
	err := s.db.QueryRowContext(ctx, `
		insert into roles (id, team_id, name, guard_name, is_protected)
		values ($1, $2, $3, $4, $5)
		returning created_at
	`, role.ID, role.TeamID, role.Name, guardName, role.IsProtected).Scan(&role.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return auth.Role{}, auth.ErrConflict
		}
		return auth.Role{}, err
	}
	return role, nil
}

// SetRolePermissions deletes the role's links and recreates exactly names in
// one transaction. Unknown permission names fail the whole sync.
func (s *Store) SetRolePermissions(ctx context.Context, roleID string, names []string) error {
	if s.db == nil {
		return errNoDB
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	if err := tx.QueryRowContext(ctx, `select 1 from roles where id = $1`, roleID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auth.ErrNotFound
		}
		return err
	}

	if _, err := tx.ExecContext(ctx, `delete from role_has_permissions where role_id = $1`, roleID); err != nil {
		return err
	}

	for _, name := range names {
		res, err := tx.ExecContext(ctx, `
			insert into role_has_permissions (permission_id, role_id)
			select id, $2 from permissions where name = $1 and guard_name = $3
		`, name, roleID, guardName)
		if err != nil {
			return err
		}
		aff, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if aff == 0 {
			return errors.Errorf("%w: permission %s", auth.ErrNotFound, name)
		}
	}
	return tx.Commit()
}

func (s *Store) RolePermissions(ctx context.Context, roleID string) ([]string, error) {
	if s.db == nil {
		return nil, errNoDB
	}
	rows, err := s.db.QueryContext(ctx, `
		select p.name
		from role_has_permissions rp
		join permissions p on p.id = rp.permission_id
		where rp.role_id = $1
		order by p.name
	`, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

func (s *Store) HasRole(ctx context.Context, a auth.RoleAssignment) (bool, error) {
	if s.db == nil {
		return false, errNoDB
	}
	var held bool
	err := s.db.QueryRowContext(ctx, `
		select exists (
			select 1 from model_has_roles
			where team_id = $1 and role_id = $2 and model_id = $3 and model_type = $4
		)
	`, a.TeamID, a.RoleID, a.UserID, userModelType).Scan(&held)
	return held, err
}

// AssignRole inserts the assignment. An identical assignment written since the
// HasRole check is reported as auth.ErrConflict.
func (s *Store) AssignRole(ctx context.Context, a auth.RoleAssignment) error {
	if s.db == nil {
		return errNoDB
	}
	_, err := s.db.ExecContext(ctx, `
		insert into model_has_roles (role_id, model_type, model_id, team_id)
		values ($1, $2, $3, $4)
	`, a.RoleID, userModelType, a.UserID, a.TeamID)
	if pgErr, ok := maybePgError(err); ok {
		switch pgErr.Code {
		case pgErrForeignKeyViolation:
			return errors.Errorf("%w: role %s", auth.ErrNotFound, a.RoleID)
		case pgErrUniqueViolation:
			return errors.Errorf("%w: user %s already holds role %s", auth.ErrConflict, a.UserID, a.RoleID)
		}
	}
	return err
}
