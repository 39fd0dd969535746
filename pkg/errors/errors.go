package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"mcq-generator/internal/domain"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation        ErrorType = "validation"
	ErrorTypeUnsupportedFormat ErrorType = "unsupported_format"
	ErrorTypeNoText            ErrorType = "no_text"
	ErrorTypeGeneration        ErrorType = "generation"
	ErrorTypeNotFound          ErrorType = "not_found"
	ErrorTypeUnauthorized      ErrorType = "unauthorized"
	ErrorTypeInternal          ErrorType = "internal"
)

// User-facing messages for the extraction outcomes
const (
	MessageUnsupportedFormat = "Unsupported file type. Use PDF, DOCX, or images."
	MessageNoText            = "No text could be extracted from the file. Please try another file."
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		Details:    detail,
		StatusCode: http.StatusBadRequest,
	}
}

// NewUnsupportedFormatError creates the error shown for files the dispatcher cannot route
func NewUnsupportedFormatError(cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeUnsupportedFormat,
		Message:    MessageUnsupportedFormat,
		StatusCode: http.StatusUnsupportedMediaType,
		Cause:      cause,
	}
}

// NewNoTextError creates the error shown when extraction produced nothing
func NewNoTextError(cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeNoText,
		Message:    MessageNoText,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewGenerationError creates a new question generation error
func NewGenerationError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeGeneration,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewInternalError creates a new internal server error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// FromDomain maps pipeline and store errors onto AppErrors
func FromDomain(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	var validationErr *domain.ValidationError
	switch {
	case stderrors.Is(err, domain.ErrUnsupportedType):
		return NewUnsupportedFormatError(err)
	case stderrors.Is(err, domain.ErrNoTextFound):
		return NewNoTextError(err)
	case stderrors.Is(err, domain.ErrSessionNotFound):
		e := NewNotFoundError("No MCQs available for this session.")
		e.Cause = err
		return e
	case stderrors.Is(err, domain.ErrInvalidToken):
		e := NewUnauthorizedError("Invalid token")
		e.Cause = err
		return e
	case stderrors.As(err, &validationErr):
		e := NewValidationError(validationErr.Error())
		e.Cause = err
		return e
	default:
		return NewInternalError("internal error", err)
	}
}

// GetStatusCode returns the HTTP status code for an error
func GetStatusCode(err error) int {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
