package role

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	// errors
	ErrNotFound   = errors.New("role not found")
	ErrRoleExists = errors.New("role already exists")
)

type (
	Repository interface {
		CheckNameUniqueness(ctx context.Context, name string) error
		CreateRole(ctx context.Context, rl Role) (Role, error)
		GetRoleByID(ctx context.Context, id string) (Role, error)
		GetRoleByName(ctx context.Context, name string) (Role, error)
		QueryAllRoles(ctx context.Context) ([]Role, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds a new role. Role names are unique; the check happens before
// the insert (no DB constraint backs it up).
func (svc *Service) Create(ctx context.Context, nr NewRole) (Role, error) {
	if err := svc.repo.CheckNameUniqueness(ctx, nr.Name); err != nil {
		return Role{}, err
	}
	now := time.Now().UTC()
	rl := Role{
		Name:        nr.Name,
		Description: nr.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateRole(ctx, rl)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Role, error) {
	return svc.repo.GetRoleByID(ctx, id)
}

func (svc *Service) GetByName(ctx context.Context, name string) (Role, error) {
	return svc.repo.GetRoleByName(ctx, name)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Role, error) {
	return svc.repo.QueryAllRoles(ctx)
}
