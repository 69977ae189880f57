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
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeAccessDenied ErrorCode = "ACCESS_DENIED"
	CodeDuplicate    ErrorCode = "DUPLICATE_ENTRY"

	// Pipeline stage errors
	CodeAcquisitionFailed    ErrorCode = "ACQUISITION_FAILED"
	CodeTranscriptionFailed  ErrorCode = "TRANSCRIPTION_FAILED"
	CodeGenerationFailed     ErrorCode = "GENERATION_FAILED"
	CodeMalformedModelOutput ErrorCode = "MALFORMED_MODEL_OUTPUT"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
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

// Helper constructors for common errors

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewAccessDeniedError(message string) *DomainError {
	return NewError(CodeAccessDenied, message, nil)
}

func NewDuplicateError(message string) *DomainError {
	return NewError(CodeDuplicate, message, nil)
}

func NewAcquisitionFailedError(cause error) *DomainError {
	return NewError(CodeAcquisitionFailed, "Failed to download audio from video", cause)
}

func NewTranscriptionFailedError(cause error) *DomainError {
	return NewError(CodeTranscriptionFailed, "Failed to transcribe audio", cause)
}

func NewGenerationFailedError(cause error) *DomainError {
	return NewError(CodeGenerationFailed, "Language model request failed", cause)
}

func NewMalformedModelOutputError(message string, cause error) *DomainError {
	return NewError(CodeMalformedModelOutput, message, cause)
}
