package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind classifies an application error so the HTTP boundary and the
// queue consumers can decide how to respond without string matching.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindNotFound      Kind = "not_found"
	KindDependency    Kind = "dependency"
	KindSerialization Kind = "serialization"
)

// Error represents an application error
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to an HTTP status code.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindDependency:
		return http.StatusBadGateway
	case KindSerialization:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// New creates a new Error
func New(kind Kind, message string, err error) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Validation creates a validation error for malformed or missing input.
func Validation(message string, err error) *Error {
	return New(KindValidation, message, err)
}

// NotFound creates an error for an absent record.
func NotFound(message string) *Error {
	return New(KindNotFound, message, nil)
}

// Dependency creates an error for a failed external collaborator call
// (store or bus unreachable/failed).
func Dependency(message string, err error) *Error {
	return New(KindDependency, message, err)
}

// Serialization creates an error for a payload that could not be decoded.
func Serialization(message string, err error) *Error {
	return New(KindSerialization, message, err)
}

// IsKind reports whether err wraps an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// Respond writes the error to a gin context using the envelope the
// services share: {"message": ..., "errorMessage": ...}.
func Respond(c *gin.Context, operation string, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = New(KindDependency, "internal error", err)
	}

	c.JSON(appErr.StatusCode(), gin.H{
		"message":      fmt.Sprintf("Failed to perform operation: %q", operation),
		"errorMessage": appErr.Error(),
	})
}
