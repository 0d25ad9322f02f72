package repository

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// UniqueViolationError reports a unique constraint failure.
// The driver error is kept as-is and reachable through errors.As.
type UniqueViolationError struct {
	Op  string
	Err error
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("%s: unique constraint violation: %v", e.Op, e.Err)
}

func (e *UniqueViolationError) Unwrap() error {
	return e.Err
}

// IsUniqueViolation reports whether err is a unique constraint failure.
func IsUniqueViolation(err error) bool {
	var uv *UniqueViolationError
	return errors.As(err, &uv)
}

// isUniqueViolation matches the PostgreSQL and SQLite driver messages.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "SQLSTATE 23505")
}

// wrapWriteError classifies a write failure.
func wrapWriteError(op string, err error) error {
	if isUniqueViolation(err) {
		return &UniqueViolationError{Op: op, Err: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func notFound(what string, key any) error {
	return fmt.Errorf("%s %v: %w", what, key, ErrNotFound)
}
