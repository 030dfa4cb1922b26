package stoplight

import "fmt"

// ErrorCode represents specific error conditions in the signal
type ErrorCode int

const (
	// No error occurred
	ErrCodeNone ErrorCode = iota
	// Cycling task has already been launched for this signal
	ErrCodeAlreadyStarted
	// Signal has not been started
	ErrCodeNotStarted
	// Operation was abandoned because its context ended
	ErrCodeCancelled
	// Signal configuration is invalid
	ErrCodeInvalidConfiguration
	// Phase value is outside the Red/Green domain
	ErrCodeInvalidPhase
)

// SignalError represents lifecycle and operation errors on a signal
type SignalError struct {
	Code      ErrorCode
	Operation string
	Message   string
}

func (e *SignalError) Error() string {
	return fmt.Sprintf("signal error during %s: %s", e.Operation, e.Message)
}

// NewSignalError creates a new signal error with custom values
func NewSignalError(code ErrorCode, operation string, message string) *SignalError {
	return &SignalError{
		Code:      code,
		Operation: operation,
		Message:   message,
	}
}

// NewAlreadyStartedError creates an error for a second launch of the cycling
// task. A signal cycles at most once per instance.
func NewAlreadyStartedError(operation string) *SignalError {
	return &SignalError{
		Code:      ErrCodeAlreadyStarted,
		Operation: operation,
		Message:   "signal has already been started",
	}
}

// NewNotStartedError creates an error for operating on a signal whose cycling
// task was never launched
func NewNotStartedError(operation string) *SignalError {
	return &SignalError{
		Code:      ErrCodeNotStarted,
		Operation: operation,
		Message:   "signal is not started",
	}
}

// ConfigurationError represents invalid signal configuration
type ConfigurationError struct {
	Component string
	Issue     string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Issue)
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(component, issue string) *ConfigurationError {
	return &ConfigurationError{
		Component: component,
		Issue:     issue,
	}
}

// CancelledError reports a blocking operation abandoned because its context
// ended before a value was delivered
type CancelledError struct {
	Operation string
	Err       error
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("%s cancelled: %v", e.Operation, e.Err)
}

func (e *CancelledError) Unwrap() error {
	return e.Err
}

// NewCancelledError creates a new cancelled error wrapping the context's error
func NewCancelledError(operation string, err error) *CancelledError {
	return &CancelledError{
		Operation: operation,
		Err:       err,
	}
}

// IsSignalError checks if an error is a SignalError
func IsSignalError(err error) bool {
	_, ok := err.(*SignalError)
	return ok
}

// IsConfigurationError checks if an error is a ConfigurationError
func IsConfigurationError(err error) bool {
	_, ok := err.(*ConfigurationError)
	return ok
}

// IsCancelled checks if an error is a CancelledError
func IsCancelled(err error) bool {
	_, ok := err.(*CancelledError)
	return ok
}

// GetErrorCode returns the error code for known error types
func GetErrorCode(err error) ErrorCode {
	switch e := err.(type) {
	case *SignalError:
		return e.Code
	case *ConfigurationError:
		return ErrCodeInvalidConfiguration
	case *CancelledError:
		return ErrCodeCancelled
	default:
		return ErrCodeNone
	}
}
