package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/kazadi/elimu/core/role"
)

type roleRepository struct {
	db *roleTable
}

var _ role.Repository = (*roleRepository)(nil) // interface compliance check

func NewRoleRepository(db *DB) role.Repository {
	return &roleRepository{db: db.role}
}

func (repo *roleRepository) CheckNameUniqueness(_ context.Context, name string) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, rl := range repo.db.table {
		if rl.Name == name {
			return role.ErrRoleExists
		}
	}
	return nil
}

func (repo *roleRepository) CreateRole(_ context.Context, rl role.Role) (role.Role, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rl.ID = uuid.New().String()
	repo.db.table[rl.ID] = &rl
	return rl, nil
}

func (repo *roleRepository) GetRoleByID(_ context.Context, id string) (role.Role, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if rl, ok := repo.db.table[id]; ok {
		return *rl, nil
	}
	return role.Role{}, role.ErrNotFound
}

func (repo *roleRepository) GetRoleByName(_ context.Context, name string) (role.Role, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, rl := range repo.db.table {
		if rl.Name == name {
			return *rl, nil
		}
	}
	return role.Role{}, role.ErrNotFound
}

func (repo *roleRepository) QueryAllRoles(_ context.Context) ([]role.Role, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	roles := make([]role.Role, 0, len(repo.db.table))
	for _, rl := range repo.db.table {
		roles = append(roles, *rl)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].Name < roles[j].Name })
	return roles, nil
}
