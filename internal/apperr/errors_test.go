package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidArgumentError_Message(t *testing.T) {
	err := &InvalidArgumentError{Field: "language", Value: "cobol", Valid: []string{"python", "javascript"}}
	assert.Equal(t, `invalid language "cobol" (valid: "python", "javascript")`, err.Error())
}

func TestInvalidArgumentError_WithReason(t *testing.T) {
	err := &InvalidArgumentError{Field: "doc_type", Reason: "could not determine document type"}
	assert.Equal(t, `invalid doc_type "": could not determine document type`, err.Error())
}

func TestExtractionError_Unwrap(t *testing.T) {
	cause := errors.New("bad xref table")
	err := &ExtractionError{Filename: "brd.pdf", Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "brd.pdf")
	assert.Contains(t, err.Error(), "bad xref table")
}

func TestGenerationError_CarriesCause(t *testing.T) {
	err := &GenerationError{DocType: "Test Case", Message: "render template", Cause: errors.New("boom")}
	assert.Equal(t, "generation failed for Test Case: render template: boom", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&InvalidArgumentError{Field: "doc_type"}, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", &ExtractionError{Filename: "a.pdf", Cause: errors.New("x")}), http.StatusBadRequest},
		{&ValidationError{Message: "no stories"}, http.StatusUnprocessableEntity},
		{&GenerationError{Message: "x"}, http.StatusUnprocessableEntity},
		{errors.New("other"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), tt.err.Error())
	}
}
