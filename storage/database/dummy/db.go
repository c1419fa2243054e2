// Package dummydb provides in-memory repositories for tests.
package dummydb

import (
	"sync"

	"github.com/kazadi/elimu/core/course"
	"github.com/kazadi/elimu/core/enrollment"
	"github.com/kazadi/elimu/core/role"
	"github.com/kazadi/elimu/core/user"
)

type (
	DB struct {
		user       *userTable
		role       *roleTable
		course     *courseTable
		enrollment *enrollmentTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	roleTable struct {
		sync.RWMutex
		table map[string]*role.Role
	}

	courseTable struct {
		sync.RWMutex
		table map[string]*course.Course
	}

	enrollmentTable struct {
		sync.RWMutex
		table map[string]*enrollment.Enrollment
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:       &userTable{table: make(map[string]*user.User)},
		role:       &roleTable{table: make(map[string]*role.Role)},
		course:     &courseTable{table: make(map[string]*course.Course)},
		enrollment: &enrollmentTable{table: make(map[string]*enrollment.Enrollment)},
	}
	return db, nil
}
