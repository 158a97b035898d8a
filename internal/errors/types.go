// Package errors defines the structured error type shared by the gateway,
// the advice generator and the interaction loop.
package errors

import (
	"fmt"
)

// ErrorType classifies an AppError.
type ErrorType int

const (
	ErrorTypeNotFound ErrorType = iota
	ErrorTypeDatabase
	ErrorTypeInvalidInput
	ErrorTypeTimeout
	ErrorTypeGeneration
)

var errorTypeNames = map[ErrorType]string{
	ErrorTypeNotFound:     "not_found",
	ErrorTypeDatabase:     "database",
	ErrorTypeInvalidInput: "invalid_input",
	ErrorTypeTimeout:      "timeout",
	ErrorTypeGeneration:   "generation",
}

func (et ErrorType) String() string {
	if name, ok := errorTypeNames[et]; ok {
		return name
	}
	return "unknown"
}

// AppError carries a category, a stable code and the causing error.
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError with the same type and code.
func (e *AppError) Is(target error) bool {
	if appErr, ok := target.(*AppError); ok {
		return e.Type == appErr.Type && e.Code == appErr.Code
	}
	return false
}

// GetContext returns a value attached when the error was built.
func (e *AppError) GetContext(key string) (interface{}, bool) {
	value, exists := e.Context[key]
	return value, exists
}
