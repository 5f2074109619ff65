// Package domain contains business logic types and errors.
// Domain errors represent business-level failures, NOT HTTP errors.
// They are infrastructure-agnostic and can be mapped to HTTP/gRPC/etc by adapters.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound indicates the requested quote does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates business rule validation failed.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized indicates the caller presented no credential or an
	// invalid one.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates the caller exhausted its mutation quota for
	// the current window.
	ErrRateLimited = errors.New("rate limited")

	// ErrUnavailable indicates a required dependency is unavailable.
	ErrUnavailable = errors.New("unavailable")

	// ErrInternal indicates an unexpected failure in the service or a
	// dependency. The wrapped message is safe to show to callers.
	ErrInternal = errors.New("internal error")
)

// ErrQuoteNotAccessible merges "quote does not exist" and "quote owned by
// someone else" so the API cannot be used to probe other users' quotes.
var ErrQuoteNotAccessible = &NotFoundError{
	Entity:  "quote",
	Message: "Quote not found or you do not have permission to edit it",
}

// NotFoundError provides context for not found errors.
type NotFoundError struct {
	Entity string
	ID     string
	// Message overrides the generated text when set. Used where the exact
	// caller-facing wording matters.
	Message string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	if e.ID != "" {
		return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
	}

	return e.Entity + " not found"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError provides context for validation errors.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error with context.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// UnauthorizedError provides context for authentication failures.
type UnauthorizedError struct {
	Reason string
}

// Error implements the error interface.
func (e *UnauthorizedError) Error() string {
	if e.Reason != "" {
		return "unauthorized: " + e.Reason
	}

	return "unauthorized"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// NewUnauthorizedError creates an unauthorized error with context.
func NewUnauthorizedError(reason string) error {
	return &UnauthorizedError{Reason: reason}
}

// UnavailableError provides context for unavailable errors.
type UnavailableError struct {
	Service string
	Reason  string
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("service %q unavailable: %s", e.Service, e.Reason)
	}

	return fmt.Sprintf("service %q unavailable", e.Service)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

// NewUnavailableError creates an unavailable error with context.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// InternalError carries a caller-safe message for unexpected failures while
// preserving the underlying cause for logging.
type InternalError struct {
	Message string
	Cause   error
}

// Error implements the error interface, returning only the safe message.
func (e *InternalError) Error() string {
	return e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
// The cause is intentionally not part of the chain; it is surfaced only via
// logging so internals never leak through error text.
func (e *InternalError) Unwrap() error {
	return ErrInternal
}

// NewInternalError creates an internal error with a caller-safe message.
func NewInternalError(message string, cause error) error {
	return &InternalError{Message: message, Cause: cause}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsUnauthorized checks if an error is an authentication error.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsRateLimited checks if an error is a rate limit rejection.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsUnavailable checks if an error is an unavailable error.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// IsInternal checks if an error is an internal error.
func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal)
}
