package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazadi/elimu/core"
	"github.com/kazadi/elimu/core/role"
	"github.com/kazadi/elimu/core/user"
	emailsvc "github.com/kazadi/elimu/services/email"
	dummydb "github.com/kazadi/elimu/storage/database/dummy"
)

func setupSvc(t *testing.T) (*user.Service, *role.Service) {
	t.Helper()
	db, err := dummydb.Open()
	require.NoError(t, err)

	conf := &core.Config{AppName: "Elimu Test", TestMode: true}
	roleRepo := dummydb.NewRoleRepository(db)
	svc := user.NewService(dummydb.NewUserRepository(db), roleRepo, emailsvc.NewConsoleServiceMock(conf))
	return svc, role.NewService(roleRepo)
}

func TestSignup(t *testing.T) {
	ctx := context.Background()
	svc, roleSvc := setupSvc(t)
	rl, err := roleSvc.Create(ctx, role.NewRole{Name: role.Student, Description: "student"})
	require.NoError(t, err)

	nu := user.NewUser{
		FirstName: "Didier",
		LastName:  "Kazadi",
		Contact:   "+243 990 000 000",
		Email:     "didier@test.cd",
		Password:  "Secretz123",
		Role:      rl.ID,
	}

	sent := len(emailsvc.SentMessages)
	usr, gotRole, err := svc.Signup(ctx, nu)
	require.NoError(t, err)
	assert.NotEmpty(t, usr.ID)
	assert.Equal(t, "Didier Kazadi", usr.Name())
	assert.Equal(t, rl.ID, usr.RoleID)
	assert.Equal(t, rl.ID, gotRole.ID)
	assert.NotEqual(t, nu.Password, usr.PasswordHash, "password must be hashed")
	assert.NoError(t, usr.CheckPassword(nu.Password))
	assert.Len(t, emailsvc.SentMessages, sent+1, "welcome email expected")

	t.Run("duplicate email", func(t *testing.T) {
		_, _, err := svc.Signup(ctx, nu)
		assert.Equal(t, user.ErrUserExists, err)
	})

	t.Run("unknown role", func(t *testing.T) {
		other := nu
		other.Email = "other@test.cd"
		other.Role = "missing-role-id"
		_, _, err := svc.Signup(ctx, other)
		assert.Equal(t, user.ErrInvalidRole, err)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc, roleSvc := setupSvc(t)
	rl, err := roleSvc.Create(ctx, role.NewRole{Name: role.Instructor, Description: "instructor"})
	require.NoError(t, err)

	_, _, err = svc.Signup(ctx, user.NewUser{
		FirstName: "Didier",
		LastName:  "Kazadi",
		Contact:   "+243 990 000 000",
		Email:     "didier@test.cd",
		Password:  "Secretz123",
		Role:      rl.ID,
	})
	require.NoError(t, err)

	usr, gotRole, err := svc.Authenticate(ctx, user.Credentials{Email: "Didier@Test.CD", Password: "Secretz123"})
	require.NoError(t, err)
	assert.Equal(t, "didier@test.cd", usr.Email)
	assert.Equal(t, role.Instructor, gotRole.Name)

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Authenticate(ctx, user.Credentials{Email: "didier@test.cd", Password: "nope1234"})
		assert.Equal(t, user.ErrInvalidCredentials, err)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Authenticate(ctx, user.Credentials{Email: "ghost@test.cd", Password: "Secretz123"})
		assert.Equal(t, user.ErrNotFound, err)
	})
}
