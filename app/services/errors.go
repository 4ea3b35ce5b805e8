package services

import (
	"fmt"

	"blogcms/app/models"
	"blogcms/app/repositories"
)

var (
	// ErrNotFound reports an ID that matches no post.
	ErrNotFound = repositories.ErrNotFound
	// ErrConflict reports a title already used by another post.
	ErrConflict = repositories.ErrDuplicateTitle
)

// ValidationError carries a message per invalid form field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid post: %d field(s) failed validation", len(e.Fields))
}

func newValidationError(err error) *ValidationError {
	return &ValidationError{Fields: models.FieldErrors(err)}
}

// InternalError wraps any storage failure that is neither a missing post nor
// a title conflict.
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}
