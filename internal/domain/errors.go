package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// Generation specific errors
	CodeUpstreamGenerationFailure ErrorCode = "UPSTREAM_GENERATION_FAILURE"
	CodeMalformedModelOutput      ErrorCode = "MALFORMED_MODEL_OUTPUT"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper functions for common errors

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

// NewUpstreamGenerationError wraps a failed model call (network, auth, quota).
func NewUpstreamGenerationError(cause error) *DomainError {
	return NewError(CodeUpstreamGenerationFailure, "Failed to generate quiz.", cause)
}

// NewMalformedModelOutputError wraps a model reply that carried no parseable
// JSON array even after the bracket-slicing recovery.
func NewMalformedModelOutputError(cause error) *DomainError {
	return NewError(CodeMalformedModelOutput, "Failed to generate quiz.", cause)
}
