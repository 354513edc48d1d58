package errors

import (
	"errors"
	"fmt"
)

var (
	// JWT
	ErrInvalidSigningMethod = errors.New("invalid token signing method")
	ErrInvalidToken         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token expired")
	ErrTokenIsNotAccess     = errors.New("refresh token cannot be used for access")
	ErrTokenIsNotRefresh    = errors.New("access token cannot be used for refresh")

	// Authorization
	ErrEmptyAuthHeader    = errors.New("authorization header is missing")
	ErrInvalidAuthHeader  = errors.New("invalid authorization header format")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")

	// Context
	ErrActorNotFoundInContext = errors.New("actor not found in request context")

	// Lifecycle
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrIncompleteTransition = errors.New("transition is missing required fields")

	// Common
	ErrNotFound          = errors.New("record not found")
	ErrBadRequest        = errors.New("bad request")
	ErrConflictDuplicate = errors.New("record already exists")
)

type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// HttpError carries a status code and a user-facing message. Err and Context
// are for logs only and never reach the client.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: context}
}
