package cli

import (
	"go.uber.org/zap"

	"kara/internal/errors"
	"kara/internal/validation"
)

// ErrorHandler turns errors into the text shown at the prompt.
type ErrorHandler struct {
	logger *zap.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *zap.Logger) *ErrorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorHandler{logger: logger}
}

// Message returns a user-facing message for err and logs the ones worth logging.
func (eh *ErrorHandler) Message(operation string, err error) string {
	if errors.ShouldLogError(err) {
		eh.logger.Debug("operation failed", zap.String("operation", operation), zap.Error(err))
	}
	return errors.GetUserMessage(err)
}

// IsRangeError reports a parsed value outside what field allows.
func (eh *ErrorHandler) IsRangeError(err error, field string) bool {
	ve, ok := validation.AsValidationError(err)
	return ok && ve.Has(field, validation.ErrorTypeInvalidRange)
}
