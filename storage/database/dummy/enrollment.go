package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/kazadi/elimu/core/enrollment"
	"github.com/kazadi/elimu/core/user"
)

type enrollmentRepository struct {
	db    *enrollmentTable
	users *userTable
}

var _ enrollment.Repository = (*enrollmentRepository)(nil) // interface compliance check

func NewEnrollmentRepository(db *DB) enrollment.Repository {
	return &enrollmentRepository{db: db.enrollment, users: db.user}
}

func (repo *enrollmentRepository) GetEnrollment(_ context.Context, studentID, courseID string) (enrollment.Enrollment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, enr := range repo.db.table {
		if enr.StudentID == studentID && enr.CourseID == courseID {
			return *enr, nil
		}
	}
	return enrollment.Enrollment{}, enrollment.ErrNotFound
}

func (repo *enrollmentRepository) CreateEnrollment(_ context.Context, enr enrollment.Enrollment) (enrollment.Enrollment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	enr.ID = uuid.New().String()
	repo.db.table[enr.ID] = &enr
	return enr, nil
}

func (repo *enrollmentRepository) DeleteEnrollment(_ context.Context, studentID, courseID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for id, enr := range repo.db.table {
		if enr.StudentID == studentID && enr.CourseID == courseID {
			delete(repo.db.table, id)
			return nil
		}
	}
	return enrollment.ErrNotFound
}

func (repo *enrollmentRepository) QueryEnrollmentsByStudent(_ context.Context, studentID string) ([]enrollment.Enrollment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	enrs := make([]enrollment.Enrollment, 0)
	for _, enr := range repo.db.table {
		if enr.StudentID == studentID {
			enrs = append(enrs, *enr)
		}
	}
	sort.Slice(enrs, func(i, j int) bool { return enrs[i].EnrolledAt.After(enrs[j].EnrolledAt) })
	return enrs, nil
}

func (repo *enrollmentRepository) QueryStudentsByCourse(_ context.Context, courseID string) ([]user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	repo.users.RLock()
	defer repo.users.RUnlock()

	enrs := make([]enrollment.Enrollment, 0)
	for _, enr := range repo.db.table {
		if enr.CourseID == courseID {
			enrs = append(enrs, *enr)
		}
	}
	sort.Slice(enrs, func(i, j int) bool { return enrs[i].EnrolledAt.Before(enrs[j].EnrolledAt) })

	students := make([]user.User, 0, len(enrs))
	for _, enr := range enrs {
		if usr, ok := repo.users.table[enr.StudentID]; ok {
			students = append(students, *usr)
		}
	}
	return students, nil
}
