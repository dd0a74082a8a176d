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
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Manifest errors
	ErrManifestLoad    ErrorCode = "MANIFEST_LOAD"
	ErrManifestParse   ErrorCode = "MANIFEST_PARSE"
	ErrManifestInvalid ErrorCode = "MANIFEST_INVALID"
	ErrManifestExists  ErrorCode = "MANIFEST_EXISTS"

	// Entry errors
	ErrEntryInvalid ErrorCode = "ENTRY_INVALID"

	// Rule errors
	ErrRuleInvalid ErrorCode = "RULE_INVALID"

	// Bundler errors
	ErrBundlerNotFound ErrorCode = "BUNDLER_NOT_FOUND"
	ErrBundlerRun      ErrorCode = "BUNDLER_RUN"

	// Post-build errors
	ErrPostBuild   ErrorCode = "POST_BUILD"
	ErrAppNotFound ErrorCode = "APP_NOT_FOUND"
	ErrLaunch      ErrorCode = "LAUNCH"

	// Operation errors
	ErrOpInvalid ErrorCode = "OP_INVALID"
	ErrOpExecute ErrorCode = "OP_EXECUTE"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileCopy     ErrorCode = "FILE_COPY"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
	ErrDirRemove    ErrorCode = "DIR_REMOVE"
)

// BentoError represents a structured error with code and details
type BentoError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *BentoError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *BentoError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *BentoError) Is(target error) bool {
	var targetErr *BentoError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new BentoError with the given code and message
func New(code ErrorCode, message string) *BentoError {
	return &BentoError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new BentoError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BentoError {
	return &BentoError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a BentoError
func Wrap(err error, code ErrorCode, message string) *BentoError {
	if err == nil {
		return nil
	}
	return &BentoError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *BentoError {
	if err == nil {
		return nil
	}
	return &BentoError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *BentoError) WithDetail(key string, value interface{}) *BentoError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// GetCode extracts the error code from an error, returning ErrUnknown for
// errors that did not originate here.
func GetCode(err error) ErrorCode {
	var be *BentoError
	if errors.As(err, &be) {
		return be.Code
	}
	return ErrUnknown
}

// IsCode reports whether err carries the given code anywhere in its chain.
func IsCode(err error, code ErrorCode) bool {
	var be *BentoError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
