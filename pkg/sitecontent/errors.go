package sitecontent

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrNotFound indicates a record with the given ID or slug does not exist.
	// Absence is an expected outcome; callers should branch on it rather than
	// treat it as fatal.
	ErrNotFound = errors.New("record not found")

	// ErrSlugConflict indicates a slug is already used within the domain.
	ErrSlugConflict = errors.New("slug already in use")

	// ErrValidation indicates a payload was rejected before any I/O.
	ErrValidation = errors.New("validation failed")

	// ErrCategoryCycle indicates a parent change would make a category its
	// own ancestor.
	ErrCategoryCycle = errors.New("category parent cycle")

	// ErrStoreUnavailable indicates the backing store could not be read or
	// written. It is logged and surfaced, never swallowed into an empty
	// success.
	ErrStoreUnavailable = errors.New("content store unavailable")
)

// CategoryError represents an error from a category operation.
type CategoryError struct {
	Domain Domain
	ID     string
	Op     string
	Err    error
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("category operation %s failed for %s/%s: %v", e.Op, e.Domain, e.ID, e.Err)
}

func (e *CategoryError) Unwrap() error {
	return e.Err
}

// ItemError represents an error from an item operation.
type ItemError struct {
	Domain Domain
	ID     string
	Op     string
	Err    error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item operation %s failed for %s/%s: %v", e.Op, e.Domain, e.ID, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

// StoreError represents a failure in a persistence backend. It always wraps
// ErrStoreUnavailable.
type StoreError struct {
	Backend string
	Op      string
	Err     error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store operation %s failed on backend %s: %v", e.Op, e.Backend, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
