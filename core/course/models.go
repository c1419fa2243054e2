package course

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/kazadi/elimu/core"
)

type Course struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Duration     int       `json:"duration"` // hours
	Content      string    `json:"content"`
	InstructorID string    `json:"instructor"`
	CreatedAt    time.Time `json:"createdAt"` // UTC
	UpdatedAt    time.Time `json:"updatedAt"` // UTC
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Duration    int    `json:"duration" validate:"required,gt=0"`
	Content     string `json:"content" validate:"required"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Title = core.CleanString(nc.Title)
	nc.Description = core.CleanString(nc.Description)
	nc.Content = core.CleanString(nc.Content)
	return validate.Struct(nc)
}

// UpdateCourse defines what information may be provided to modify an
// existing Course. Empty fields keep their current values.
type UpdateCourse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    int    `json:"duration" validate:"omitempty,gt=0"`
	Content     string `json:"content"`
}

func (uc *UpdateCourse) Validate(orig Course, validate *validator.Validate) error {
	if title := core.CleanString(uc.Title); title != "" {
		uc.Title = title
	} else {
		uc.Title = orig.Title
	}
	if desc := core.CleanString(uc.Description); desc != "" {
		uc.Description = desc
	} else {
		uc.Description = orig.Description
	}
	if content := core.CleanString(uc.Content); content != "" {
		uc.Content = content
	} else {
		uc.Content = orig.Content
	}
	if uc.Duration == 0 {
		uc.Duration = orig.Duration
	}
	return validate.Struct(uc)
}
