package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-faster/errors"

	"upengage.io/seeder/internal/modules"
)

// linkTable maps an owner kind to its pivot table and owner column.
func linkTable(owner modules.Owner) (table, column string, err error) {
	switch owner {
	case modules.OwnerDivision:
		return "division_module", "division_id", nil
	case modules.OwnerFinancer:
		return "financer_module", "financer_id", nil
	}
	return "", "", errors.Errorf("unknown module owner %q", owner)
}

func (s *Store) ListModules(ctx context.Context) ([]modules.Module, error) {
	if s.db == nil {
		return nil, errNoDB
	}
	rows, err := s.db.QueryContext(ctx, `
		select id, category, is_core
		from modules
		order by id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []modules.Module
	for rows.Next() {
		var m modules.Module
		if err := rows.Scan(&m.ID, &m.Category, &m.IsCore); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) HasModuleLink(ctx context.Context, owner modules.Owner, ownerID, moduleID string) (bool, error) {
	if s.db == nil {
		return false, errNoDB
	}
	table, column, err := linkTable(owner)
	if err != nil {
		return false, err
	}
	var linked bool
	err = s.db.QueryRowContext(ctx, fmt.Sprintf(`
		select exists (select 1 from %s where %s = $1 and module_id = $2)
	`, table, column), ownerID, moduleID).Scan(&linked)
	return linked, err
}

// CreateModuleLink inserts l. A link written by a concurrent run is reported
// as modules.ErrConflict, a missing owner or module as modules.ErrNotFound.
func (s *Store) CreateModuleLink(ctx context.Context, l modules.Link) error {
	if s.db == nil {
		return errNoDB
	}
	table, column, err := linkTable(l.Owner)
	if err != nil {
		return err
	}
	price := sql.NullInt64{}
	if l.PricePerBeneficiary != nil {
		price = sql.NullInt64{Int64: int64(*l.PricePerBeneficiary), Valid: true}
	}
	_, err = s.db.ExecContext(ctx, fmt.Sprintf(`
		insert into %s (id, %s, module_id, active, price_per_beneficiary)
		values ($1, $2, $3, $4, $5)
	`, table, column), l.ID, l.OwnerID, l.ModuleID, l.Active, price)
	if pgErr, ok := maybePgError(err); ok {
		switch pgErr.Code {
		case pgErrUniqueViolation:
			return errors.Errorf("%w: module %s already linked to %s %s", modules.ErrConflict, l.ModuleID, l.Owner, l.OwnerID)
		case pgErrForeignKeyViolation:
			return errors.Errorf("%w: %s %s or module %s", modules.ErrNotFound, l.Owner, l.OwnerID, l.ModuleID)
		}
	}
	return err
}
