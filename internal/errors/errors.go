package errors

import (
	"errors"
	"fmt"
)

// Sentinels usable with errors.Is.
var (
	ErrDatabase   = &AppError{Type: ErrorTypeDatabase, Code: "DATABASE_ERROR"}
	ErrGeneration = &AppError{Type: ErrorTypeGeneration, Code: "GENERATION_FAILED"}
	ErrNotFound   = &AppError{Type: ErrorTypeNotFound, Code: "NOT_FOUND"}
)

// NewNotFoundError reports a missing resource.
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewDatabaseError wraps a driver error raised while running the named statement.
func NewDatabaseError(statement string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDatabase,
		Message: fmt.Sprintf("database operation failed: %s", statement),
		Code:    "DATABASE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"statement": statement,
		},
	}
}

// NewInvalidInputError reports a rejected value for a field.
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    "INVALID_INPUT",
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// NewTimeoutError reports an operation that ran past its deadline.
func NewTimeoutError(operation string, timeout interface{}) *AppError {
	return &AppError{
		Type:    ErrorTypeTimeout,
		Message: fmt.Sprintf("operation timed out: %s", operation),
		Code:    "TIMEOUT",
		Context: map[string]interface{}{
			"operation": operation,
			"timeout":   timeout,
		},
	}
}

// NewGenerationError wraps a failed text-generation command.
func NewGenerationError(command string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeGeneration,
		Message: fmt.Sprintf("text generation failed: %s", command),
		Code:    "GENERATION_FAILED",
		Cause:   cause,
		Context: map[string]interface{}{
			"command": command,
		},
	}
}

// AsAppError unwraps err to an AppError if there is one in the chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Type == errorType
	}
	return false
}

// GetUserMessage returns the text shown to the person at the prompt.
// Database and generation failures never leak driver or process details.
func GetUserMessage(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return "An unexpected error occurred. Please try again."
	}
	switch appErr.Type {
	case ErrorTypeNotFound, ErrorTypeInvalidInput:
		return appErr.Message
	case ErrorTypeDatabase:
		return "A database error occurred. Please try again."
	case ErrorTypeTimeout:
		return "The operation timed out. Please try again."
	case ErrorTypeGeneration:
		return "I couldn't come up with anything to say just now."
	default:
		return "An unexpected error occurred. Please try again."
	}
}

// ShouldLogError is false for errors caused by what the user typed.
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeNotFound, ErrorTypeInvalidInput:
			return false
		}
	}
	return true
}
