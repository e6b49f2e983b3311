package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// tokens
	ErrInvalidSigningMethod = errors.New("unexpected token signing method")
	ErrInvalidToken         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token has expired")

	// authentication
	ErrEmptyAuthHeader    = errors.New("token not provided")
	ErrInvalidAuthHeader  = errors.New("invalid authorization header format")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrTooManyAttempts    = errors.New("too many failed login attempts, try again later")

	ErrUserIDNotFoundInContext = errors.New("user id not found in request context")

	// general
	ErrNotFound   = errors.New("record not found")
	ErrConflict   = errors.New("record conflicts with existing data")
	ErrBadRequest = errors.New("bad request")
)

// HttpError carries the status and user-facing message of a failure.
// Err is the internal cause; it is logged, never sent to the client.
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
	return &HttpError{
		Code:    code,
		Message: message,
		Err:     err,
		Context: context,
	}
}

func NewBadRequestError(message string) *HttpError {
	return NewHttpError(http.StatusBadRequest, message, nil, nil)
}

func NewNotFoundError(message string) *HttpError {
	return NewHttpError(http.StatusNotFound, message, ErrNotFound, nil)
}

func NewConflictError(message string, err error) *HttpError {
	return NewHttpError(http.StatusConflict, message, err, nil)
}

// StatusFor maps the sentinel errors to HTTP status codes. ok is false for unknown errors.
func StatusFor(err error) (code int, ok bool) {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, ErrConflict):
		return http.StatusConflict, true
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, true
	case errors.Is(err, ErrTooManyAttempts):
		return http.StatusTooManyRequests, true
	case errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrInvalidSigningMethod),
		errors.Is(err, ErrEmptyAuthHeader),
		errors.Is(err, ErrInvalidAuthHeader),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrUserIDNotFoundInContext):
		return http.StatusUnauthorized, true
	}
	return 0, false
}
