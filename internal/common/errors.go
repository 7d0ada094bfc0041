// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Domain errors.
	ErrValidation = errors.New("validation failed")
	ErrStorage    = errors.New("storage failure")
	ErrService    = errors.New("advice service failure")

	// Lookup errors.
	ErrNotFound = errors.New("not found")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ValidationError reports input rejected at the boundary.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error for the named field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// StorageError reports a failed durable read or write.
type StorageError struct {
	Err error
	Op  string
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

// Is matches ErrStorage.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err as a storage failure of operation op.
func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// ServiceErrorKind classifies advice service failures.
type ServiceErrorKind string

// Service error kinds.
const (
	ServiceMissingCredential ServiceErrorKind = "missing_credential"
	ServiceTransport         ServiceErrorKind = "transport"
	ServiceMalformedResponse ServiceErrorKind = "malformed_response"
)

// ServiceError reports a failed call to the advice service.
type ServiceError struct {
	Err  error
	Kind ServiceErrorKind
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("advice service (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("advice service (%s)", e.Kind)
}

// Is matches ErrService.
func (e *ServiceError) Is(target error) bool {
	return target == ErrService
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err as an advice service failure.
func NewServiceError(kind ServiceErrorKind, err error) error {
	return &ServiceError{Kind: kind, Err: err}
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsRetryable determines if an error should trigger a retry.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRateLimit) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
