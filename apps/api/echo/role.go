package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/kazadi/elimu/core/role"
)

type roleApi struct {
	svc      *role.Service
	validate *validator.Validate
}

func registerRoleAPI(e *echo.Echo, authGuard echo.MiddlewareFunc, svc *role.Service, validate *validator.Validate) {
	api := roleApi{svc: svc, validate: validate}

	e.POST("/role", api.create, authGuard)
}

func (api roleApi) create(ctx echo.Context) error {
	var nr role.NewRole
	if err := ctx.Bind(&nr); err != nil {
		return errors.Wrap(err, "binding new role")
	}
	if err := nr.Validate(api.validate); err != nil {
		return err
	}

	if _, err := api.svc.Create(ctx.Request().Context(), nr); err != nil {
		if errors.Cause(err) == role.ErrRoleExists {
			return echo.NewHTTPError(http.StatusBadRequest, role.ErrRoleExists.Error())
		}
		return errors.Wrap(err, "creating role")
	}
	return ctx.JSON(http.StatusCreated, MessageResponse{Message: "role created successfully"})
}
