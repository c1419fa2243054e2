package echoapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazadi/elimu/core/course"
	"github.com/kazadi/elimu/core/role"
)

func TestCourseCreate(t *testing.T) {
	ts := setupServer(t, nil)
	instructor, instructorToken := ts.seedUser(t, "teach@test.cd", role.Instructor)
	_, studentToken := ts.seedUser(t, "learn@test.cd", role.Student)

	body := map[string]interface{}{
		"title":       "Go for Backends",
		"description": "Services, SQL and streaming",
		"duration":    24,
		"content":     "modules 1-8",
	}

	rec := ts.do(newAuthRequest(http.MethodPost, "/course", instructorToken, body))
	checkCode(t, rec, http.StatusCreated)

	var resp struct {
		Data    course.Course `json:"data"`
		Message string        `json:"message"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, "Go for Backends", resp.Data.Title)
	assert.Equal(t, instructor.ID, resp.Data.InstructorID)
	require.NotEmpty(t, resp.Data.ID)

	t.Run("student forbidden", func(t *testing.T) {
		rec := ts.do(newAuthRequest(http.MethodPost, "/course", studentToken, body))
		checkCode(t, rec, http.StatusForbidden)

		courses, err := ts.CourseSvc.QueryAll(context.Background())
		require.NoError(t, err)
		assert.Len(t, courses, 1, "rejected request must not create a course")
	})

	t.Run("invalid duration", func(t *testing.T) {
		bad := map[string]interface{}{
			"title":       "Broken",
			"description": "x",
			"duration":    -3,
			"content":     "y",
		}
		rec := ts.do(newAuthRequest(http.MethodPost, "/course", instructorToken, bad))
		checkCode(t, rec, http.StatusBadRequest)
	})
}

func TestCourseQuery(t *testing.T) {
	ts := setupServer(t, nil)
	instructor, token := ts.seedUser(t, "teach@test.cd", role.Instructor)
	other, _ := ts.seedUser(t, "other@test.cd", role.Instructor)
	ts.seedCourse(t, instructor.ID, "Algebra")
	ts.seedCourse(t, instructor.ID, "Calculus")
	ts.seedCourse(t, other.ID, "Geometry")

	rec := ts.do(newAuthRequest(http.MethodGet, "/course", token, nil))
	checkCode(t, rec, http.StatusOK)

	var resp struct {
		Data  []course.Course `json:"data"`
		Count int             `json:"count"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, 3, resp.Count)
	assert.Len(t, resp.Data, 3)

	t.Run("by instructor", func(t *testing.T) {
		rec := ts.do(newAuthRequest(http.MethodGet, "/course/instructor/"+instructor.ID, token, nil))
		checkCode(t, rec, http.StatusOK)

		decodeBody(t, rec, &resp)
		assert.Equal(t, 2, resp.Count)
		for _, crs := range resp.Data {
			assert.Equal(t, instructor.ID, crs.InstructorID)
		}
	})

	t.Run("requires auth", func(t *testing.T) {
		rec := ts.do(newRequest(http.MethodGet, "/course", nil))
		checkCode(t, rec, http.StatusUnauthorized)
	})
}

func TestCourseUpdate(t *testing.T) {
	ts := setupServer(t, nil)
	instructor, token := ts.seedUser(t, "teach@test.cd", role.Instructor)
	crs := ts.seedCourse(t, instructor.ID, "Physics")

	rec := ts.do(newAuthRequest(http.MethodPut, "/course/"+crs.ID, token, map[string]interface{}{
		"title": "Physics II",
	}))
	checkCode(t, rec, http.StatusOK)

	var resp struct {
		Data course.Course `json:"data"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, "Physics II", resp.Data.Title)
	// untouched fields keep their values
	assert.Equal(t, crs.Description, resp.Data.Description)
	assert.Equal(t, crs.Duration, resp.Data.Duration)

	t.Run("unknown course", func(t *testing.T) {
		rec := ts.do(newAuthRequest(http.MethodPut, "/course/nope", token, map[string]interface{}{"title": "X"}))
		checkCode(t, rec, http.StatusNotFound)
	})
}

func TestCourseDelete(t *testing.T) {
	ts := setupServer(t, nil)
	instructor, token := ts.seedUser(t, "teach@test.cd", role.Instructor)
	_, studentToken := ts.seedUser(t, "learn@test.cd", role.Student)
	crs := ts.seedCourse(t, instructor.ID, "Chemistry")

	t.Run("student forbidden", func(t *testing.T) {
		rec := ts.do(newAuthRequest(http.MethodDelete, "/course/"+crs.ID, studentToken, nil))
		checkCode(t, rec, http.StatusForbidden)

		_, err := ts.CourseSvc.GetByID(context.Background(), crs.ID)
		assert.NoError(t, err, "rejected request must not delete the course")
	})

	rec := ts.do(newAuthRequest(http.MethodDelete, "/course/"+crs.ID, token, nil))
	checkCode(t, rec, http.StatusNoContent)

	t.Run("already gone", func(t *testing.T) {
		rec := ts.do(newAuthRequest(http.MethodDelete, "/course/"+crs.ID, token, nil))
		checkCode(t, rec, http.StatusNotFound)
	})
}
