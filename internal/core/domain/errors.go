// Package domain defines the core domain models for the libros catalog client.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a client-side domain error with a structured error code.
// Codes follow the format LB-<AREA>-<NNNN>, where the number mirrors the
// HTTP status family the error originates from.
type DomainError struct {
	Code    string // Error code (e.g., "LB-BOOK-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// Wrap wraps an error with this domain error as the cause.
func (e *DomainError) Wrap(cause error) *DomainError {
	return e.WithCause(cause)
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error.
// Both DomainError and ServerError carry a code.
func GetErrorCode(err error) string {
	var se *ServerError
	if errors.As(err, &se) {
		return se.Code()
	}
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Catalog Errors (BOOK)
// ============================================================================

var (
	// ErrBookNotFound indicates the requested book code does not exist.
	ErrBookNotFound = NewDomainError("LB-BOOK-4040", "book not found")

	// ErrValidation indicates the server rejected the submitted book fields.
	ErrValidation = NewDomainError("LB-BOOK-4220", "validation failed")
)

// ============================================================================
// Session Errors (AUTH)
// ============================================================================

var (
	// ErrUnauthorized indicates the server rejected the bearer credential,
	// or that no credential was presented.
	ErrUnauthorized = NewDomainError("LB-AUTH-4010", "not authorized, please log in")

	// ErrLoginFailed indicates the login exchange did not yield a token.
	ErrLoginFailed = NewDomainError("LB-AUTH-4011", "login failed")

	// ErrSessionStore indicates the session store could not be read or written.
	ErrSessionStore = NewDomainError("LB-AUTH-5001", "session store error")
)

// ============================================================================
// Transport & Server Errors (NET, SRV)
// ============================================================================

var (
	// ErrTransport indicates no response reached the client.
	ErrTransport = NewDomainError("LB-NET-5030", "cannot reach catalog server")

	// ErrServer indicates any other server-side failure.
	ErrServer = NewDomainError("LB-SRV-5000", "unknown server error")
)

// ============================================================================
// Argument Errors (ARG)
// ============================================================================

var (
	// ErrInvalidArgument indicates an invalid argument.
	ErrInvalidArgument = NewDomainError("LB-ARG-1001", "invalid argument")

	// ErrMissingArgument indicates a required argument is missing.
	ErrMissingArgument = NewDomainError("LB-ARG-1002", "missing required argument")
)
