package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every structured error below unwraps to one of these so
// callers can branch with errors.Is.
var (
	ErrValidation             = errors.New("validation error")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrReferentialIntegrity   = errors.New("referential integrity error")
	ErrUnsupportedSchema      = errors.New("unsupported schema")
	ErrStorageIO              = errors.New("storage I/O error")
	ErrNotFound               = errors.New("not found")
)

// ValidationError reports a malformed field on entity construction or update.
type ValidationError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %s: %s", e.Entity, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(entity, field, reason string) error {
	return &ValidationError{Entity: entity, Field: field, Reason: reason}
}

// TransitionError reports a forbidden status or stage change.
type TransitionError struct {
	Entity string
	ID     string
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s cannot move from %s to %s", e.Entity, e.From, e.To)
	}
	return fmt.Sprintf("%s %s cannot move from %s to %s", e.Entity, e.ID, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidStateTransition }

// IntegrityError lists every dangling or inconsistent reference found in a
// state graph.
type IntegrityError struct {
	Problems []string
}

func (e *IntegrityError) Error() string {
	if len(e.Problems) == 1 {
		return "integrity check failed: " + e.Problems[0]
	}
	return fmt.Sprintf("integrity check failed with %d problems:\n  - %s",
		len(e.Problems), strings.Join(e.Problems, "\n  - "))
}

func (e *IntegrityError) Unwrap() error { return ErrReferentialIntegrity }

// SchemaError is returned when a stored document declares a version this
// build cannot read.
type SchemaError struct {
	Version   int
	Supported int
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema version %d is not supported (this build reads up to %d)", e.Version, e.Supported)
}

func (e *SchemaError) Unwrap() error { return ErrUnsupportedSchema }

// StorageError wraps an underlying read or write failure on the store.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *StorageError) Unwrap() []error { return []error{ErrStorageIO, e.Err} }

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}
