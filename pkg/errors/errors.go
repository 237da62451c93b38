// Package errors defines error types and utilities for the storefront
package errors

import (
	"errors"
	"fmt"
)

// Common errors surfaced by storefront collaborators. The compute
// engines themselves report expected edge cases through return values,
// not errors; these cover the storage and configuration boundary.
var (
	// ErrCartNotFound is returned when no cart exists for a session
	ErrCartNotFound = errors.New("cart not found")

	// ErrProductNotFound is returned when a product id is unknown
	ErrProductNotFound = errors.New("product not found")

	// ErrSessionRequired is returned when an operation needs a session id
	ErrSessionRequired = errors.New("session id required")

	// ErrInvalidConfig is returned when configuration fails validation
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSourceUnavailable is returned when the product source cannot supply a snapshot
	ErrSourceUnavailable = errors.New("product source unavailable")
)

// StoreError represents a failure at the persistence boundary with the
// operation and session it belongs to.
type StoreError struct {
	Op      string // Operation that failed
	Session string // Session the cart belongs to
	Err     error  // Underlying error
}

// Error implements the error interface
func (e *StoreError) Error() string {
	return fmt.Sprintf("storefront: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target error
func (e *StoreError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewStoreError creates a new StoreError
func NewStoreError(op, session string, err error) *StoreError {
	return &StoreError{
		Op:      op,
		Session: session,
		Err:     err,
	}
}

// IsNotFound checks if an error indicates a missing cart or product
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCartNotFound) || errors.Is(err, ErrProductNotFound)
}
