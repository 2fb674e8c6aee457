package model

import "fmt"

// ValidationError marks malformed, missing or oversized input. Raised before
// any network call is made.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// AuthenticationError marks a missing or invalid session on authenticated
// routes.
type AuthenticationError struct {
	Msg string
}

func (e *AuthenticationError) Error() string { return e.Msg }

// ExternalAPIError marks a failed call to an external collaborator (URL
// fetch, narrative generator, forensics service). Status carries the
// upstream HTTP status for logging; it is never leaked verbatim to callers.
type ExternalAPIError struct {
	Service string
	Status  int
	Err     error
}

func (e *ExternalAPIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: upstream status %d", e.Service, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *ExternalAPIError) Unwrap() error { return e.Err }

// StorageError marks a persistence failure.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage: %v", e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }
