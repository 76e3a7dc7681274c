package shared

import "errors"

// ErrorKind classifies a domain error so callers can present it differently
type ErrorKind string

const (
	KindValidation ErrorKind = "VALIDATION" // Caller input is wrong, fix and resubmit
	KindConflict   ErrorKind = "CONFLICT"   // Business rule clash with existing state
	KindNotFound   ErrorKind = "NOT_FOUND"
	KindBusiness   ErrorKind = "BUSINESS" // Operation not allowed in current state
)

// DomainError represents a domain-level error
type DomainError struct {
	Kind    ErrorKind `json:"kind"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so sentinel values work with errors.Is
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new business domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Kind:    KindBusiness,
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates an error for rejected input
func NewValidationError(code, message string) *DomainError {
	return &DomainError{
		Kind:    KindValidation,
		Code:    code,
		Message: message,
	}
}

// NewConflictError creates an error for a business-rule conflict
func NewConflictError(code, message string) *DomainError {
	return &DomainError{
		Kind:    KindConflict,
		Code:    code,
		Message: message,
	}
}

// NewNotFoundError creates an error for a missing resource
func NewNotFoundError(code, message string) *DomainError {
	return &DomainError{
		Kind:    KindNotFound,
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewNotFoundError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewConflictError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewValidationError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewConflictError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrLockNotObtained     = NewConflictError("LOCK_NOT_OBTAINED", "Another operation is in progress for this resource")
)

// KindOf returns the kind of a domain error anywhere in the chain, or "" when err is not one
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsValidation reports whether err is a validation failure
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

// IsConflict reports whether err is a business-rule conflict
func IsConflict(err error) bool {
	return KindOf(err) == KindConflict
}

// IsNotFound reports whether err is a not-found error
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
