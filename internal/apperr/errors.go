// Package apperr defines the error taxonomy shared by the conversion core and its boundaries.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// InvalidArgumentError reports an unsupported value supplied by the caller.
type InvalidArgumentError struct {
	Field  string
	Value  string
	Valid  []string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "invalid %s %q", e.Field, e.Value)
	if e.Reason != "" {
		sb.WriteString(": " + e.Reason)
	}
	if len(e.Valid) > 0 {
		quoted := make([]string, len(e.Valid))
		for i, v := range e.Valid {
			quoted[i] = fmt.Sprintf("%q", v)
		}
		sb.WriteString(" (valid: " + strings.Join(quoted, ", ") + ")")
	}
	return sb.String()
}

// ExtractionError reports a failure to decode text from an uploaded file.
type ExtractionError struct {
	Filename string
	Cause    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract text from %s: %v", e.Filename, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// GenerationError reports malformed structural data or a rendering failure.
type GenerationError struct {
	DocType string
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	msg := "generation failed"
	if e.DocType != "" {
		msg += " for " + e.DocType
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// ValidationError reports a document whose structure did not satisfy a strict parse.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var (
		invalid    *InvalidArgumentError
		extraction *ExtractionError
		validation *ValidationError
		generation *GenerationError
	)
	switch {
	case errors.As(err, &invalid), errors.As(err, &extraction):
		return http.StatusBadRequest
	case errors.As(err, &validation), errors.As(err, &generation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
