// Package errs defines the two user-facing error kinds of the service:
// validation failures (bad input or a broken business rule) and missing
// entities. Everything else is an internal failure.
package errs

import "fmt"

// ValidationError signals invalid input or a violated business rule.
// It maps to a 400 response.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError signals that a referenced entity does not exist.
// It maps to a 404 response.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// NotFoundf builds a NotFoundError from a format string.
func NotFoundf(format string, args ...interface{}) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}
