package common

import "errors"

// Sentinel errors for the read-path taxonomy. Repositories and services wrap
// these so callers can branch with errors.Is without seeing store internals.
var (
	// ErrNotFound marks a terminal "entity absent" outcome.
	ErrNotFound = errors.New("not found")

	// ErrTransient marks a retriable backing-store failure (timeout, connection).
	ErrTransient = errors.New("transient backing store error")

	// ErrInvalid marks a rejected caller input.
	ErrInvalid = errors.New("invalid argument")
)

// IsNotFound reports whether err is a terminal not-found outcome.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsTransient reports whether err is a retriable backing-store failure.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}

// IsInvalid reports whether err is a rejected caller input.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalid)
}

// Error represents a standardized error with code and message
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewError creates a new Error instance
func NewError(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// String returns the string representation of the error
func (e *Error) String() string {
	if e == nil {
		return ""
	}
	return e.Code + ": " + e.Message
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.String()
}
