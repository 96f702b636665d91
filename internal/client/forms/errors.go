package forms

import (
	"errors"
	"fmt"
)

var (
	ErrBusy     = errors.New("form is busy")
	ErrNoImages = errors.New("this form has no images")
)

// ValidationError rejects a field value before anything is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
