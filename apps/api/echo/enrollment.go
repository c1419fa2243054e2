package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/kazadi/elimu/core/course"
	"github.com/kazadi/elimu/core/enrollment"
	"github.com/kazadi/elimu/core/user"
)

// EnrolledStudent is the public view of a student enrolled in a course.
type EnrolledStudent struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

type enrollmentApi struct {
	svc *enrollment.Service
}

func registerEnrollmentAPI(e *echo.Echo, authGuard echo.MiddlewareFunc, svc *enrollment.Service) {
	api := enrollmentApi{svc: svc}

	eg := e.Group("/enrolled-course", authGuard)
	eg.POST("/:courseId", api.enroll)
	eg.GET("", api.queryMine)
	eg.DELETE("/:courseId", api.unenroll)
	eg.GET("/:courseId/students", api.queryStudents)
}

func (api enrollmentApi) enroll(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	enr, err := api.svc.Enroll(ctx.Request().Context(), claims.Subject, ctx.Param("courseId"))
	if err != nil {
		switch errors.Cause(err) {
		case enrollment.ErrAlreadyEnrolled:
			return echo.NewHTTPError(http.StatusBadRequest, enrollment.ErrAlreadyEnrolled.Error())
		case course.ErrNotFound:
			return echo.NewHTTPError(http.StatusNotFound, course.ErrNotFound.Error())
		}
		return errors.Wrap(err, "enrolling student")
	}
	return ctx.JSON(http.StatusCreated, DataResponse{Data: enr, Message: "enrolled successfully"})
}

func (api enrollmentApi) queryMine(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	enrs, err := api.svc.QueryByStudent(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying enrollments")
	}
	return ctx.JSON(http.StatusOK, ListResponse{
		Data:    enrs,
		Message: "enrolled courses retrieved successfully",
		Count:   len(enrs),
	})
}

func (api enrollmentApi) unenroll(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	if err = api.svc.Unenroll(ctx.Request().Context(), claims.Subject, ctx.Param("courseId")); err != nil {
		if errors.Cause(err) == enrollment.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, enrollment.ErrNotFound.Error())
		}
		return errors.Wrap(err, "unenrolling student")
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "unenrolled successfully"})
}

func (api enrollmentApi) queryStudents(ctx echo.Context) error {
	students, err := api.svc.QueryStudents(ctx.Request().Context(), ctx.Param("courseId"))
	if err != nil {
		if errors.Cause(err) == course.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, course.ErrNotFound.Error())
		}
		return errors.Wrap(err, "querying enrolled students")
	}
	return ctx.JSON(http.StatusOK, ListResponse{Data: toEnrolledStudents(students), Count: len(students)})
}

func toEnrolledStudents(users []user.User) []EnrolledStudent {
	students := make([]EnrolledStudent, len(users))
	for i, usr := range users {
		students[i] = EnrolledStudent{
			ID:      usr.ID,
			Name:    usr.Name(),
			Email:   usr.Email,
			Contact: usr.Contact,
		}
	}
	return students
}
