// utils/errors.go
package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind is the machine-readable classification surfaced by the
// approval and verification flows.
type ErrorKind string

const (
	ErrNotFound           ErrorKind = "not-found"
	ErrPermissionDenied   ErrorKind = "permission-denied"
	ErrFailedPrecondition ErrorKind = "failed-precondition"
	ErrInvalidArgument    ErrorKind = "invalid-argument"
	ErrInternal           ErrorKind = "internal"
)

// AppError carries an error kind plus a human-readable message.
type AppError struct {
	Kind    ErrorKind
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewAppError creates a new tagged error.
func NewAppError(kind ErrorKind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// AppErrorf creates a new tagged error with a formatted message.
func AppErrorf(kind ErrorKind, format string, args ...interface{}) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the error kind, defaulting to internal for untagged errors.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ErrInternal
}

// HTTPStatus maps an error kind to the HTTP status the API responds with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrPermissionDenied:
		return http.StatusForbidden
	case ErrFailedPrecondition:
		return http.StatusConflict
	case ErrInvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
