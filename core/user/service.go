package user

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/kazadi/elimu/core"
	"github.com/kazadi/elimu/core/role"
)

var (
	// errors
	ErrNotFound           = errors.New("user not found")
	ErrUserExists         = errors.New("a user with this email already exists")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type (
	Repository interface {
		CheckEmailUniqueness(ctx context.Context, email string) error
		CreateUser(ctx context.Context, usr User) (User, error)
		QueryAllUsers(ctx context.Context) ([]User, error)
		GetUserByID(ctx context.Context, id string) (User, error)
		GetUserByEmail(ctx context.Context, email string) (User, error)
	}

	Service struct {
		repo     Repository
		roleRepo role.Repository
		mailSvc  core.EmailService
	}
)

func NewService(repo Repository, roleRepo role.Repository, mailSvc core.EmailService) *Service {
	return &Service{
		repo:     repo,
		roleRepo: roleRepo,
		mailSvc:  mailSvc,
	}
}

// Signup registers a new account under an existing role and welcomes it by email.
// The email-uniqueness pre-check is application-level only.
func (svc *Service) Signup(ctx context.Context, nu NewUser) (User, role.Role, error) {
	if err := svc.repo.CheckEmailUniqueness(ctx, nu.Email); err != nil {
		return User{}, role.Role{}, err
	}

	rl, err := svc.roleRepo.GetRoleByID(ctx, nu.Role)
	if err != nil {
		if errors.Cause(err) == role.ErrNotFound {
			return User{}, role.Role{}, ErrInvalidRole
		}
		return User{}, role.Role{}, errors.Wrap(err, "finding role by ID")
	}

	now := time.Now().UTC()
	usr := User{
		FirstName: nu.FirstName,
		LastName:  nu.LastName,
		Contact:   nu.Contact,
		Email:     nu.Email,
		RoleID:    rl.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = usr.SetPassword(nu.Password); err != nil {
		return User{}, role.Role{}, errors.Wrap(err, "setting password")
	}

	usr, err = svc.repo.CreateUser(ctx, usr)
	if err != nil {
		return User{}, role.Role{}, errors.Wrap(err, "creating user")
	}

	svc.sendWelcomeEmail(usr)
	return usr, rl, nil
}

// Authenticate checks the given credentials and returns the matching user
// and its role. ErrNotFound for an unknown email; ErrInvalidCredentials for
// a password mismatch.
func (svc *Service) Authenticate(ctx context.Context, creds Credentials) (User, role.Role, error) {
	usr, err := svc.repo.GetUserByEmail(ctx, core.CleanString(creds.Email, true /* lower */))
	if err != nil {
		return User{}, role.Role{}, err
	}
	if err = usr.CheckPassword(creds.Password); err != nil {
		return User{}, role.Role{}, ErrInvalidCredentials
	}

	rl, err := svc.roleRepo.GetRoleByID(ctx, usr.RoleID)
	if err != nil {
		return User{}, role.Role{}, errors.Wrap(err, "finding role by ID")
	}
	return usr, rl, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */))
}

func (svc *Service) QueryAll(ctx context.Context) ([]User, error) {
	return svc.repo.QueryAllUsers(ctx)
}

func (svc *Service) sendWelcomeEmail(usr User) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: usr.Name(), Address: usr.Email}},
		Subject: "Welcome aboard!",
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour account has been created. Browse the catalog and enroll in your first course!\n",
			usr.FirstName,
		),
	})
}
