// Package apperror defines the application error taxonomy and its mapping to
// HTTP status codes. Repository and service failures are created here so that
// handlers can translate them uniformly.
package apperror

import (
	"errors"
	"net/http"
)

// ErrorType categorizes an application error.
type ErrorType int

const (
	// UnknownError is for unspecified errors.
	UnknownError ErrorType = iota
	// ConflictError is a unique-key collision: duplicate entity, duplicate
	// review, duplicate wishlist entry.
	ConflictError
	// NotFoundError is an absent lookup.
	NotFoundError
	// InvalidKeyError is an unsupported sort or search field.
	InvalidKeyError
	// AuthError is an unknown user or bad credentials.
	AuthError
	// ValidationError is malformed input, e.g. a review rating out of range.
	ValidationError
	// DatabaseError is a failure in the persistent backend.
	DatabaseError
	// InternalError is a generic internal failure.
	InternalError
)

// AppError carries a user-facing message, a type for status mapping, and an
// optional underlying error for debugging.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying error to errors.Is / errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error type to an HTTP status code.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case ConflictError:
		return http.StatusConflict
	case NotFoundError:
		return http.StatusNotFound
	case InvalidKeyError, ValidationError:
		return http.StatusBadRequest
	case AuthError:
		return http.StatusUnauthorized
	case DatabaseError, InternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// New creates an AppError of the given type.
func New(errType ErrorType, message string, underlying error) *AppError {
	return &AppError{Type: errType, Message: message, Err: underlying}
}

// NewConflict creates a ConflictError.
func NewConflict(message string) *AppError {
	return New(ConflictError, message, nil)
}

// NewNotFound creates a NotFoundError.
func NewNotFound(message string) *AppError {
	return New(NotFoundError, message, nil)
}

// NewInvalidKey creates an InvalidKeyError.
func NewInvalidKey(message string) *AppError {
	return New(InvalidKeyError, message, nil)
}

// NewAuth creates an AuthError.
func NewAuth(message string) *AppError {
	return New(AuthError, message, nil)
}

// NewValidation creates a ValidationError.
func NewValidation(message string) *AppError {
	return New(ValidationError, message, nil)
}

// NewDatabase creates a DatabaseError wrapping the driver failure.
func NewDatabase(message string, underlying error) *AppError {
	return New(DatabaseError, message, underlying)
}

func isType(err error, t ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == t
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool { return isType(err, ConflictError) }

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool { return isType(err, NotFoundError) }

// IsInvalidKey reports whether err is an InvalidKeyError.
func IsInvalidKey(err error) bool { return isType(err, InvalidKeyError) }

// IsAuth reports whether err is an AuthError.
func IsAuth(err error) bool { return isType(err, AuthError) }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool { return isType(err, ValidationError) }
