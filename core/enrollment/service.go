package enrollment

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/kazadi/elimu/core/course"
	"github.com/kazadi/elimu/core/user"
)

var (
	// errors
	ErrNotFound        = errors.New("enrollment not found")
	ErrAlreadyEnrolled = errors.New("user is already enrolled in this course")
)

type (
	Repository interface {
		GetEnrollment(ctx context.Context, studentID, courseID string) (Enrollment, error)
		CreateEnrollment(ctx context.Context, enr Enrollment) (Enrollment, error)
		DeleteEnrollment(ctx context.Context, studentID, courseID string) error
		QueryEnrollmentsByStudent(ctx context.Context, studentID string) ([]Enrollment, error)
		QueryStudentsByCourse(ctx context.Context, courseID string) ([]user.User, error)
	}

	Service struct {
		repo       Repository
		courseRepo course.Repository
	}
)

func NewService(repo Repository, courseRepo course.Repository) *Service {
	return &Service{
		repo:       repo,
		courseRepo: courseRepo,
	}
}

// Enroll adds the student to the course. Duplicates are rejected by an
// existence check immediately before the insert; two concurrent requests for
// the same (student, course) pair can both pass it — there is no uniqueness
// constraint behind it.
func (svc *Service) Enroll(ctx context.Context, studentID, courseID string) (Enrollment, error) {
	if _, err := svc.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return Enrollment{}, err
	}

	_, err := svc.repo.GetEnrollment(ctx, studentID, courseID)
	switch errors.Cause(err) {
	case nil:
		return Enrollment{}, ErrAlreadyEnrolled
	case ErrNotFound:
	default:
		return Enrollment{}, errors.Wrap(err, "checking existing enrollment")
	}

	enr := Enrollment{
		StudentID:  studentID,
		CourseID:   courseID,
		EnrolledAt: time.Now().UTC(),
	}
	return svc.repo.CreateEnrollment(ctx, enr)
}

func (svc *Service) Unenroll(ctx context.Context, studentID, courseID string) error {
	return svc.repo.DeleteEnrollment(ctx, studentID, courseID)
}

func (svc *Service) QueryByStudent(ctx context.Context, studentID string) ([]Enrollment, error) {
	return svc.repo.QueryEnrollmentsByStudent(ctx, studentID)
}

func (svc *Service) QueryStudents(ctx context.Context, courseID string) ([]user.User, error) {
	if _, err := svc.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	return svc.repo.QueryStudentsByCourse(ctx, courseID)
}
