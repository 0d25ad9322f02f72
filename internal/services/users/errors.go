package users

import (
	"errors"
	"fmt"
	"log"

	"github.com/ongood/metabase-sub001/internal/repository"
)

var (
	// ErrInvariantViolation marks a programming-contract breach, such as a
	// password supplied together with a salt. It is a defect, not user error.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrTransactionFailed marks a failure inside an atomic block. The store
	// was rolled back; the cause is joined to the returned error.
	ErrTransactionFailed = errors.New("transaction failed")
)

// ValidationError reports input rejected before any write.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// IsValidationError reports whether err is a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// invariantViolation logs the defect and returns an ErrInvariantViolation.
func invariantViolation(op string, cause error) error {
	log.Printf("BUG: %s: %v", op, cause)
	return fmt.Errorf("%w: %s: %w", ErrInvariantViolation, op, cause)
}

// txError classifies an error returned from an atomic block. Caller-facing
// errors pass through unchanged; anything else becomes ErrTransactionFailed.
func txError(err error) error {
	if err == nil {
		return nil
	}

	var uv *repository.UniqueViolationError
	if errors.As(err, &uv) {
		return uv
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	if errors.Is(err, ErrInvariantViolation) || errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrTransactionFailed, err)
}
