package helpers

import (
	"fmt"
	"sync"

	"wacc-calculator/src/logger"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type WaccCalculatorError struct {
	Message string
	Cause   error
}

func (e *WaccCalculatorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *WaccCalculatorError) Unwrap() error {
	return e.Cause
}

// Helper to define distinct error types for type assertions if needed
type ConfigurationError struct{ WaccCalculatorError }
type NetworkError struct{ WaccCalculatorError }
type DataSourceError struct{ WaccCalculatorError }
type DatabaseError struct{ WaccCalculatorError }
type ValidationError struct{ WaccCalculatorError }

// -----------------------------------------------------------------------------

// NewValidationError builds a ValidationError with a user-facing message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{WaccCalculatorError{Message: fmt.Sprintf(format, args...)}}
}

// -----------------------------------------------------------------------------
// Error Handler
// -----------------------------------------------------------------------------

type ErrorHandler struct {
	Logger *logger.Logger

	mu         sync.Mutex
	errorCount int
}

func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{
		Logger: logger.NewLogger(nil, "ErrorHandler"),
	}
}

// -----------------------------------------------------------------------------

func (e *ErrorHandler) ErrorCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errorCount
}

// -----------------------------------------------------------------------------

func (e *ErrorHandler) ResetErrorCount() {
	e.mu.Lock()
	e.errorCount = 0
	e.mu.Unlock()
}

// -----------------------------------------------------------------------------

func (e *ErrorHandler) Handle(err error, context string) {
	if err != nil {
		e.mu.Lock()
		e.errorCount++
		e.mu.Unlock()
		e.Logger.Error("Error in %s: %v", context, err)
	}
}
