package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/kazadi/elimu/core/enrollment"
	"github.com/kazadi/elimu/core/user"
)

var enrollmentColumns = []string{"id", "student_id", "course_id", "enrolled_at"}

type dbEnrollment struct {
	ID         string    `db:"id"`
	StudentID  string    `db:"student_id"`
	CourseID   string    `db:"course_id"`
	EnrolledAt time.Time `db:"enrolled_at"`
}

func (e dbEnrollment) toCore() enrollment.Enrollment {
	return enrollment.Enrollment{
		ID:         e.ID,
		StudentID:  e.StudentID,
		CourseID:   e.CourseID,
		EnrolledAt: e.EnrolledAt,
	}
}

type enrollmentRepository struct {
	db *sqlx.DB
}

var _ enrollment.Repository = (*enrollmentRepository)(nil) // interface compliance check

func NewEnrollmentRepository(db *sqlx.DB) *enrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (repo enrollmentRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return enrollment.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo enrollmentRepository) GetEnrollment(ctx context.Context, studentID, courseID string) (enrollment.Enrollment, error) {
	query, args, err := psql.Select(enrollmentColumns...).
		From("enrolled_course").
		Where(sq.Eq{"student_id": studentID, "course_id": courseID}).
		ToSql()
	if err != nil {
		return enrollment.Enrollment{}, errors.Wrap(err, "building query")
	}

	var row dbEnrollment
	if err = repo.db.GetContext(ctx, &row, query, args...); err != nil {
		return enrollment.Enrollment{}, repo.trapNoRowsErr(err, "getting enrollment")
	}
	return row.toCore(), nil
}

func (repo enrollmentRepository) CreateEnrollment(ctx context.Context, enr enrollment.Enrollment) (enrollment.Enrollment, error) {
	enr.ID = uuid.New().String()
	query, args, err := psql.Insert("enrolled_course").
		Columns(enrollmentColumns...).
		Values(enr.ID, enr.StudentID, enr.CourseID, enr.EnrolledAt).
		ToSql()
	if err != nil {
		return enrollment.Enrollment{}, errors.Wrap(err, "building query")
	}

	if _, err = repo.db.ExecContext(ctx, query, args...); err != nil {
		return enrollment.Enrollment{}, errors.Wrap(err, "inserting enrollment")
	}
	return enr, nil
}

func (repo enrollmentRepository) DeleteEnrollment(ctx context.Context, studentID, courseID string) error {
	if _, err := uuid.Parse(courseID); err != nil {
		return enrollment.ErrNotFound
	}
	query, args, err := psql.Delete("enrolled_course").
		Where(sq.Eq{"student_id": studentID, "course_id": courseID}).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}

	res, err := repo.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "deleting enrollment")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return enrollment.ErrNotFound
	}
	return nil
}

func (repo enrollmentRepository) QueryEnrollmentsByStudent(ctx context.Context, studentID string) ([]enrollment.Enrollment, error) {
	query, args, err := psql.Select(enrollmentColumns...).
		From("enrolled_course").
		Where(sq.Eq{"student_id": studentID}).
		OrderBy("enrolled_at DESC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}

	var rows []dbEnrollment
	if err = repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying enrollments")
	}
	enrs := make([]enrollment.Enrollment, 0, len(rows))
	for _, row := range rows {
		enrs = append(enrs, row.toCore())
	}
	return enrs, nil
}

func (repo enrollmentRepository) QueryStudentsByCourse(ctx context.Context, courseID string) ([]user.User, error) {
	query, args, err := psql.Select(
		"u.id", "u.first_name", "u.last_name", "u.contact", "u.email",
		"u.password_hash", "u.role_id", "u.created_at", "u.updated_at").
		From(`enrolled_course ec`).
		Join(`"user" u ON u.id = ec.student_id`).
		Where(sq.Eq{"ec.course_id": courseID}).
		OrderBy("ec.enrolled_at ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}

	var rows []dbUser
	if err = repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying enrolled students")
	}
	students := make([]user.User, 0, len(rows))
	for _, row := range rows {
		students = append(students, row.toCore())
	}
	return students, nil
}
