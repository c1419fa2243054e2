package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/kazadi/elimu/core/course"
)

type courseApi struct {
	svc      *course.Service
	validate *validator.Validate
}

func registerCourseAPI(e *echo.Echo, authGuard echo.MiddlewareFunc, svc *course.Service, validate *validator.Validate) {
	api := courseApi{svc: svc, validate: validate}

	cg := e.Group("/course", authGuard)
	cg.GET("", api.queryAll)
	cg.GET("/instructor/:instructorId", api.queryByInstructor)

	instructorOnly := instructorMiddleware()
	cg.POST("", api.create, instructorOnly)
	cg.PUT("/:id", api.update, instructorOnly)
	cg.DELETE("/:id", api.delete, instructorOnly)
}

func (api courseApi) queryAll(ctx echo.Context) error {
	courses, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return ctx.JSON(http.StatusOK, ListResponse{Data: courses, Count: len(courses)})
}

func (api courseApi) queryByInstructor(ctx echo.Context) error {
	courses, err := api.svc.QueryByInstructor(ctx.Request().Context(), ctx.Param("instructorId"))
	if err != nil {
		return errors.Wrap(err, "querying instructor courses")
	}
	return ctx.JSON(http.StatusOK, ListResponse{Data: courses, Count: len(courses)})
}

func (api courseApi) create(ctx echo.Context) error {
	var nc course.NewCourse
	if err := ctx.Bind(&nc); err != nil {
		return errors.Wrap(err, "binding new course")
	}
	if err := nc.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	crs, err := api.svc.Create(ctx.Request().Context(), claims.Subject, nc)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, DataResponse{Data: crs, Message: "course created successfully"})
}

func (api courseApi) update(ctx echo.Context) error {
	var uc course.UpdateCourse
	if err := ctx.Bind(&uc); err != nil {
		return errors.Wrap(err, "binding course update")
	}

	crs, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), uc, api.validate)
	if err != nil {
		if errors.Cause(err) == course.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "course not found")
		}
		return errors.Wrap(err, "updating course")
	}
	return ctx.JSON(http.StatusOK, DataResponse{Data: crs, Message: "course updated successfully"})
}

func (api courseApi) delete(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if errors.Cause(err) == course.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "course not found")
		}
		return errors.Wrap(err, "deleting course")
	}
	return ctx.NoContent(http.StatusNoContent)
}
