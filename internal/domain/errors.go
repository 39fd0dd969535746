package domain

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrNoTextFound     = errors.New("no text could be extracted")
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidToken    = errors.New("invalid token")
)

// UnsupportedTypeError is returned by the dispatcher for suffixes it cannot route.
type UnsupportedTypeError struct {
	Ext string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Ext == "" {
		return "unsupported file type: missing extension"
	}
	return "unsupported file type: " + e.Ext
}

func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// NoTextError reports that an extractor finished without usable text.
// Cause holds the engine failure that led there, nil when the engines ran
// but simply found nothing.
type NoTextError struct {
	Format Format
	Cause  error
}

func (e *NoTextError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: no text could be extracted: %v", e.Format, e.Cause)
	}
	return fmt.Sprintf("%s: no text could be extracted", e.Format)
}

func (e *NoTextError) Is(target error) bool {
	return target == ErrNoTextFound
}

func (e *NoTextError) Unwrap() error {
	return e.Cause
}

// EngineError wraps a failure of a parsing, rasterization or OCR engine
type EngineError struct {
	Stage string
	Page  int // 1-indexed, 0 when not page specific
	Err   error
}

func (e *EngineError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("%s failed on page %d: %v", e.Stage, e.Page, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
