package role

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/kazadi/elimu/core"
)

// Well-known role names.
const (
	Instructor = "instructor"
	Student    = "student"
)

type Role struct {
	ID          string    `json:"id"`
	Name        string    `json:"roleName"`
	Description string    `json:"roleDescription"`
	CreatedAt   time.Time `json:"createdAt"` // UTC
	UpdatedAt   time.Time `json:"updatedAt"` // UTC
}

// NewRole contains information needed to create a new Role.
type NewRole struct {
	Name        string `json:"roleName" validate:"required"`
	Description string `json:"roleDescription" validate:"required"`
}

func (nr *NewRole) Validate(validate *validator.Validate) error {
	nr.Name = core.CleanString(nr.Name, true /* lower */)
	nr.Description = core.CleanString(nr.Description)
	return validate.Struct(nr)
}
