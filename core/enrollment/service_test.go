package enrollment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazadi/elimu/core/course"
	"github.com/kazadi/elimu/core/enrollment"
	dummydb "github.com/kazadi/elimu/storage/database/dummy"
)

func setupSvc(t *testing.T) (*enrollment.Service, *course.Service) {
	t.Helper()
	db, err := dummydb.Open()
	require.NoError(t, err)

	courseRepo := dummydb.NewCourseRepository(db)
	svc := enrollment.NewService(dummydb.NewEnrollmentRepository(db), courseRepo)
	return svc, course.NewService(courseRepo)
}

func seedCourse(t *testing.T, courseSvc *course.Service) course.Course {
	t.Helper()
	crs, err := courseSvc.Create(context.Background(), "instructor-1", course.NewCourse{
		Title:       "Databases",
		Description: "SQL from scratch",
		Duration:    16,
		Content:     "modules 1-4",
	})
	require.NoError(t, err)
	return crs
}

func TestEnroll(t *testing.T) {
	ctx := context.Background()
	svc, courseSvc := setupSvc(t)
	crs := seedCourse(t, courseSvc)

	enr, err := svc.Enroll(ctx, "student-1", crs.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, enr.ID)
	assert.Equal(t, "student-1", enr.StudentID)
	assert.Equal(t, crs.ID, enr.CourseID)
	assert.False(t, enr.EnrolledAt.IsZero())

	t.Run("twice", func(t *testing.T) {
		_, err := svc.Enroll(ctx, "student-1", crs.ID)
		assert.Equal(t, enrollment.ErrAlreadyEnrolled, err)

		enrs, err := svc.QueryByStudent(ctx, "student-1")
		require.NoError(t, err)
		assert.Len(t, enrs, 1)
	})

	t.Run("unknown course", func(t *testing.T) {
		_, err := svc.Enroll(ctx, "student-1", "no-such-course")
		assert.Equal(t, course.ErrNotFound, err)
	})

	t.Run("same course, different student", func(t *testing.T) {
		_, err := svc.Enroll(ctx, "student-2", crs.ID)
		assert.NoError(t, err)
	})
}

func TestUnenroll(t *testing.T) {
	ctx := context.Background()
	svc, courseSvc := setupSvc(t)
	crs := seedCourse(t, courseSvc)

	t.Run("never enrolled", func(t *testing.T) {
		err := svc.Unenroll(ctx, "student-1", crs.ID)
		assert.Equal(t, enrollment.ErrNotFound, err)
	})

	_, err := svc.Enroll(ctx, "student-1", crs.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Unenroll(ctx, "student-1", crs.ID))

	enrs, err := svc.QueryByStudent(ctx, "student-1")
	require.NoError(t, err)
	assert.Empty(t, enrs)
}

func TestQueryStudents(t *testing.T) {
	ctx := context.Background()
	svc, courseSvc := setupSvc(t)
	crs := seedCourse(t, courseSvc)

	_, err := svc.QueryStudents(ctx, "no-such-course")
	assert.Equal(t, course.ErrNotFound, err)

	students, err := svc.QueryStudents(ctx, crs.ID)
	require.NoError(t, err)
	assert.Empty(t, students)
}
