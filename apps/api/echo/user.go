package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/kazadi/elimu/core"
	"github.com/kazadi/elimu/core/role"
	"github.com/kazadi/elimu/core/user"
)

type (
	// UserInfo is the public view of a user returned on signup/login.
	UserInfo struct {
		Email string `json:"email"`
		Name  string `json:"name"`
		Role  string `json:"role"`
	}

	// AuthResponse is the authentication success payload.
	AuthResponse struct {
		User  UserInfo `json:"user"`
		Token string   `json:"token"`
	}
)

type userApi struct {
	conf     *core.Config
	svc      *user.Service
	validate *validator.Validate
}

func registerUserAPI(e *echo.Echo, conf *core.Config, svc *user.Service, validate *validator.Validate) {
	api := userApi{conf: conf, svc: svc, validate: validate}

	ug := e.Group("/user")
	ug.POST("/signup", api.signup)
	ug.POST("/login", api.login)
}

func (api userApi) signup(ctx echo.Context) error {
	var nu user.NewUser
	if err := ctx.Bind(&nu); err != nil {
		return errors.Wrap(err, "binding new user")
	}
	if err := nu.Validate(api.validate); err != nil {
		return err
	}

	usr, rl, err := api.svc.Signup(ctx.Request().Context(), nu)
	if err != nil {
		switch errors.Cause(err) {
		case user.ErrUserExists:
			return echo.NewHTTPError(http.StatusBadRequest, user.ErrUserExists.Error())
		case user.ErrInvalidRole:
			return echo.NewHTTPError(http.StatusBadRequest, user.ErrInvalidRole.Error())
		}
		return errors.Wrap(err, "signing up user")
	}
	return api.authenticated(ctx, http.StatusCreated, usr, rl)
}

func (api userApi) login(ctx echo.Context) error {
	var creds user.Credentials
	if err := ctx.Bind(&creds); err != nil {
		return errors.Wrap(err, "binding credentials")
	}
	if err := creds.Validate(api.validate); err != nil {
		return err
	}

	usr, rl, err := api.svc.Authenticate(ctx.Request().Context(), creds)
	if err != nil {
		switch errors.Cause(err) {
		case user.ErrNotFound:
			return echo.NewHTTPError(http.StatusNotFound, "user does not exist")
		case user.ErrInvalidCredentials:
			return echo.NewHTTPError(http.StatusBadRequest, user.ErrInvalidCredentials.Error())
		}
		return errors.Wrap(err, "authenticating user")
	}
	return api.authenticated(ctx, http.StatusOK, usr, rl)
}

func (api userApi) authenticated(ctx echo.Context, code int, usr user.User, rl role.Role) error {
	token, err := GenerateToken(api.conf, GetUserClaims(api.conf, usr, rl))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(code, AuthResponse{
		User:  UserInfo{Email: usr.Email, Name: usr.Name(), Role: rl.Name},
		Token: token,
	})
}
