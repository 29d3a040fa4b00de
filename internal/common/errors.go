// File: internal/common/errors.go
package common

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// APIError is the standard error shape returned by every endpoint.
type APIError struct {
	StatusCode int         `json:"-"`
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("APIError: StatusCode=%d, Code=%s, Message=%s", e.StatusCode, e.Code, e.Message)
}

func NewAPIError(statusCode int, code, message string) *APIError {
	return &APIError{StatusCode: statusCode, Code: code, Message: message}
}

// WithDetails returns a copy carrying extra context, so the shared
// sentinel values below are never mutated.
func (e *APIError) WithDetails(details interface{}) *APIError {
	clone := *e
	clone.Details = details
	return &clone
}

var (
	ErrBadRequest        = NewAPIError(http.StatusBadRequest, "BAD_REQUEST", "The request is invalid.")
	ErrUnauthorized      = NewAPIError(http.StatusUnauthorized, "UNAUTHORIZED", "Authentication is required. Please sign in.")
	ErrForbidden         = NewAPIError(http.StatusForbidden, "FORBIDDEN", "You do not have permission to access this resource.")
	ErrNotFound          = NewAPIError(http.StatusNotFound, "NOT_FOUND", "The requested resource could not be found.")
	ErrConflict          = NewAPIError(http.StatusConflict, "CONFLICT", "A conflict occurred with the current state of the resource.")
	ErrInvalidTransition = NewAPIError(http.StatusConflict, "INVALID_TRANSITION", "The requested status change is not allowed.")
	ErrInternalServer    = NewAPIError(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred on the server.")
)

func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// NewValidationAPIError wraps a field->message map as a 422 response.
func NewValidationAPIError(details interface{}) *APIError {
	return &APIError{
		StatusCode: http.StatusUnprocessableEntity,
		Code:       "VALIDATION_ERROR",
		Message:    "Input validation failed.",
		Details:    details,
	}
}

// NewValidationFieldError reports a single offending field by name.
func NewValidationFieldError(field, message string) *APIError {
	return NewValidationAPIError(map[string]string{field: message})
}

// FormatValidationErrors converts validator.ValidationErrors into a
// field->message map suitable for NewValidationAPIError.
func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMap := make(map[string]string)
	for _, e := range errs {
		field := strings.ToLower(e.Field())
		var message string
		switch e.Tag() {
		case "required":
			message = fmt.Sprintf("The %s field is required.", field)
		case "email":
			message = fmt.Sprintf("The %s field must be a valid email address.", field)
		case "min":
			message = fmt.Sprintf("The %s field must be at least %s characters long.", field, e.Param())
		case "max":
			message = fmt.Sprintf("The %s field may not be greater than %s characters.", field, e.Param())
		case "gte":
			message = fmt.Sprintf("The %s field must be %s or greater.", field, e.Param())
		case "oneof":
			message = fmt.Sprintf("The %s field must be one of the following values: %s.", field, e.Param())
		default:
			message = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag.", field, e.Tag())
		}
		errorMap[field] = message
	}
	return errorMap
}
