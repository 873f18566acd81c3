package question

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks a request rejected before reaching the store.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when a question, category or page has no rows.
	ErrNotFound = errors.New("not found")
	// ErrExhausted is returned by a quiz draw with no eligible question left.
	ErrExhausted = errors.New("no eligible question")
	// ErrStoreUnavailable wraps any failure raised by the underlying store.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError names the request field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// StoreError wraps err so that it matches ErrStoreUnavailable while keeping
// the underlying cause reachable. ErrNotFound passes through unchanged.
func StoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
