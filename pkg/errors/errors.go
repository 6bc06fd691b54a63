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
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrPermission    ErrorCode = "PERMISSION"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Resolution errors
	ErrSourceNotFound   ErrorCode = "SOURCE_NOT_FOUND"
	ErrLoadFailed       ErrorCode = "LOAD_FAILED"
	ErrNoSuchCode       ErrorCode = "NO_SUCH_CODE"
	ErrInvalidReference ErrorCode = "INVALID_REFERENCE"

	// Definition errors
	ErrDefinitionParse  ErrorCode = "DEFINITION_PARSE"
	ErrTransformInvalid ErrorCode = "TRANSFORM_INVALID"
	ErrNotInvertible    ErrorCode = "NOT_INVERTIBLE"
)

// CrsError represents a structured error with code and details
type CrsError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *CrsError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *CrsError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *CrsError) Is(target error) bool {
	var targetErr *CrsError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new CrsError with the given code and message
func New(code ErrorCode, message string) *CrsError {
	return &CrsError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new CrsError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *CrsError {
	return &CrsError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a CrsError
func Wrap(err error, code ErrorCode, message string) *CrsError {
	if err == nil {
		return nil
	}
	return &CrsError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *CrsError {
	if err == nil {
		return nil
	}
	return &CrsError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *CrsError) WithDetail(key string, value interface{}) *CrsError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var crsErr *CrsError
	if errors.As(err, &crsErr) {
		return crsErr.Code == code
	}
	return false
}

// HasErrorCode checks if any error in the chain has a specific error code
func HasErrorCode(err error, code ErrorCode) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		if crsErr, ok := err.(*CrsError); ok && crsErr.Code == code {
			return true
		}
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a CrsError
func GetErrorCode(err error) ErrorCode {
	var crsErr *CrsError
	if errors.As(err, &crsErr) {
		return crsErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a CrsError
func GetErrorDetails(err error) map[string]interface{} {
	var crsErr *CrsError
	if errors.As(err, &crsErr) {
		return crsErr.Details
	}
	return nil
}

// AuthorityCode returns the requested authority code recorded on a
// NO_SUCH_CODE or INVALID_REFERENCE error, or "" when none was recorded.
// Callers pattern-match on this value, so it is always the originally
// requested code, unmodified.
func AuthorityCode(err error) string {
	details := GetErrorDetails(err)
	if details == nil {
		return ""
	}
	if code, ok := details["code"].(string); ok {
		return code
	}
	return ""
}
