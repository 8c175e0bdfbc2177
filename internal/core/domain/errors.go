package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrNotFound          = errors.New("not found")
	ErrDuplicateNumber   = errors.New("document number already assigned")
	ErrConcurrentUpdate  = errors.New("document was modified concurrently")
	ErrNotEditable       = errors.New("document is not editable outside draft")
	// ErrIdempotencyConflict reports a concurrent create that reused an
	// idempotency key.
	ErrIdempotencyConflict = errors.New("idempotency key already used")

	ErrDocumentNotFound = fmt.Errorf("document %w", ErrNotFound)
	ErrClientNotFound   = fmt.Errorf("client %w", ErrNotFound)
	ErrRoleNotFound     = fmt.Errorf("role %w", ErrNotFound)
)

// ValidationError identifies the input field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Field)
	}
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// InvalidTransitionError reports a lifecycle move the state machine refuses.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s (from %s to %s)", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// PermissionDeniedError carries the denied (role, resource, action) triple.
type PermissionDeniedError struct {
	Role     string
	Resource Resource
	Action   Action
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("%s: role %q cannot %s %s", ErrPermissionDenied, e.Role, e.Action, e.Resource)
}

func (e *PermissionDeniedError) Unwrap() error { return ErrPermissionDenied }
