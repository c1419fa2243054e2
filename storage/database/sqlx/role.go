package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/kazadi/elimu/core/role"
)

var roleColumns = []string{"id", "name", "description", "created_at", "updated_at"}

type dbRole struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r dbRole) toCore() role.Role {
	return role.Role{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type roleRepository struct {
	db *sqlx.DB
}

var _ role.Repository = (*roleRepository)(nil) // interface compliance check

func NewRoleRepository(db *sqlx.DB) *roleRepository {
	return &roleRepository{db: db}
}

func (repo roleRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return role.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo roleRepository) CheckNameUniqueness(ctx context.Context, name string) error {
	query, args, err := psql.Select("1").From(`"role"`).Where(sq.Eq{"name": name}).Limit(1).ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}

	var one int
	err = repo.db.GetContext(ctx, &one, query, args...)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "checking role uniqueness")
	}
	return role.ErrRoleExists
}

func (repo roleRepository) CreateRole(ctx context.Context, rl role.Role) (role.Role, error) {
	rl.ID = uuid.New().String()
	query, args, err := psql.Insert(`"role"`).
		Columns(roleColumns...).
		Values(rl.ID, rl.Name, rl.Description, rl.CreatedAt, rl.UpdatedAt).
		ToSql()
	if err != nil {
		return role.Role{}, errors.Wrap(err, "building query")
	}

	if _, err = repo.db.ExecContext(ctx, query, args...); err != nil {
		return role.Role{}, errors.Wrap(err, "inserting role")
	}
	return rl, nil
}

func (repo roleRepository) GetRoleByID(ctx context.Context, id string) (role.Role, error) {
	if _, err := uuid.Parse(id); err != nil {
		return role.Role{}, role.ErrNotFound
	}
	return repo.getRole(ctx, sq.Eq{"id": id})
}

func (repo roleRepository) GetRoleByName(ctx context.Context, name string) (role.Role, error) {
	return repo.getRole(ctx, sq.Eq{"name": name})
}

func (repo roleRepository) getRole(ctx context.Context, pred interface{}) (role.Role, error) {
	query, args, err := psql.Select(roleColumns...).From(`"role"`).Where(pred).ToSql()
	if err != nil {
		return role.Role{}, errors.Wrap(err, "building query")
	}

	var row dbRole
	if err = repo.db.GetContext(ctx, &row, query, args...); err != nil {
		return role.Role{}, repo.trapNoRowsErr(err, "getting role")
	}
	return row.toCore(), nil
}

func (repo roleRepository) QueryAllRoles(ctx context.Context) ([]role.Role, error) {
	query, args, err := psql.Select(roleColumns...).From(`"role"`).OrderBy("name ASC").ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}

	var rows []dbRole
	if err = repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying roles")
	}
	roles := make([]role.Role, 0, len(rows))
	for _, row := range rows {
		roles = append(roles, row.toCore())
	}
	return roles, nil
}
