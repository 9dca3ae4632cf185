package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Setup errors — these are the fatal class
	ErrNoSources     ErrorCode = "NO_SOURCES"
	ErrSourceInvalid ErrorCode = "SOURCE_INVALID"
	ErrDestInvalid   ErrorCode = "DEST_INVALID"
	ErrExcludeParse  ErrorCode = "EXCLUDE_PARSE"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// List file errors
	ErrListOpen   ErrorCode = "LIST_OPEN"
	ErrListAppend ErrorCode = "LIST_APPEND"

	// Scan errors
	ErrDirOpen  ErrorCode = "DIR_OPEN"
	ErrFileRead ErrorCode = "FILE_READ"

	// Action errors
	ErrActionDelete ErrorCode = "ACTION_DELETE"
	ErrActionCopy   ErrorCode = "ACTION_COPY"
	ErrActionMove   ErrorCode = "ACTION_MOVE"
	ErrNameResolve  ErrorCode = "NAME_RESOLVE"
)

// DupkeepError represents a structured error with code and details
type DupkeepError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DupkeepError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DupkeepError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DupkeepError) Is(target error) bool {
	var targetErr *DupkeepError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DupkeepError with the given code and message
func New(code ErrorCode, message string) *DupkeepError {
	return &DupkeepError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DupkeepError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DupkeepError {
	return &DupkeepError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DupkeepError
func Wrap(err error, code ErrorCode, message string) *DupkeepError {
	if err == nil {
		return nil
	}
	return &DupkeepError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DupkeepError {
	if err == nil {
		return nil
	}
	return &DupkeepError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DupkeepError) WithDetail(key string, value interface{}) *DupkeepError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var dkErr *DupkeepError
	if errors.As(err, &dkErr) {
		return dkErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DupkeepError
func GetErrorCode(err error) ErrorCode {
	var dkErr *DupkeepError
	if errors.As(err, &dkErr) {
		return dkErr.Code
	}
	return ErrUnknown
}
