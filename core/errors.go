package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a blob, record or entry for the given
	// name / id does not exist in the underlying store. It is an expected
	// condition: callers use it to drive fallback paths (session restore,
	// history resolution) and must not surface it to the user.
	ErrNotFound = errors.New("not found")

	// ErrUnsupported is returned when the backing capability for a store is
	// absent in the current environment. Callers must degrade to "feature
	// off" rather than treat it as a failure.
	ErrUnsupported = errors.New("storage capability unsupported")

	// ErrStoreClosed is returned by operations invoked after a store's
	// connection has been closed.
	ErrStoreClosed = errors.New("store closed")
)

// StoreError wraps a transactional or I/O failure that occurred inside a
// store operation. It is distinct from ErrUnsupported (capability absent) and
// ErrNotFound (expected miss): a StoreError means the capability exists but
// the operation failed, e.g. quota exceeded or a write error.
type StoreError struct {
	Op  string
	Err error
}

// Error returns the formatted error string.
func (e *StoreError) Error() string { return fmt.Sprintf("store: %s: %v", e.Op, e.Err) }

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *StoreError) Unwrap() error { return e.Err }

// NewStoreError wraps err as a StoreError for operation op. Returns nil when
// err is nil so call sites can wrap unconditionally.
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

// IsStoreError reports whether err is (or wraps) a StoreError.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
