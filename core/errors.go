package core

import "github.com/pkg/errors"

// ValidationError reports invalid input caught outside struct-tag validation.
type ValidationError struct {
	Err error
}

func NewValidationError(msg string) error {
	return &ValidationError{errors.New(msg)}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
