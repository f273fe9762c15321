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
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrAlreadyExists  ErrorCode = "ALREADY_EXISTS"
	ErrNotSupported   ErrorCode = "NOT_SUPPORTED"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Usage errors (root specs, path arguments)
	ErrInvalidRoot ErrorCode = "INVALID_ROOT"
	ErrInvalidPath ErrorCode = "INVALID_PATH"
	ErrNotDisjoint ErrorCode = "NOT_DISJOINT"
	ErrSameRoot    ErrorCode = "SAME_ROOT"

	// Storage errors
	ErrUnsupportedScheme ErrorCode = "UNSUPPORTED_SCHEME"
	ErrUnsupportedSync   ErrorCode = "UNSUPPORTED_SYNC"
	ErrStorage           ErrorCode = "STORAGE"

	// Context errors
	ErrDirNotFound      ErrorCode = "DIR_NOT_FOUND"
	ErrNotADirectory    ErrorCode = "NOT_A_DIRECTORY"
	ErrManifestConflict ErrorCode = "MANIFEST_CONFLICT"
	ErrManifestParse    ErrorCode = "MANIFEST_PARSE"
	ErrManifestWrite    ErrorCode = "MANIFEST_WRITE"
	ErrManifestCorrupt  ErrorCode = "MANIFEST_CORRUPT"
	ErrDestIsDir        ErrorCode = "DEST_IS_DIR"
	ErrDestExists       ErrorCode = "DEST_EXISTS"
	ErrLinkUnresolved   ErrorCode = "LINK_UNRESOLVED"
	ErrPathEscapedRoot  ErrorCode = "PATH_ESCAPED_ROOT"
	ErrCyclicReference  ErrorCode = "CYCLIC_REFERENCE"

	// Configuration errors
	ErrConfigLoad ErrorCode = "CONFIG_LOAD"
)

// usageCodes are surfaced to the user together with the command help.
var usageCodes = map[ErrorCode]bool{
	ErrInvalidInput: true,
	ErrInvalidRoot:  true,
	ErrInvalidPath:  true,
	ErrNotDisjoint:  true,
	ErrSameRoot:     true,
}

// SoftsyncError represents a structured error with code and details
type SoftsyncError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SoftsyncError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SoftsyncError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SoftsyncError) Is(target error) bool {
	var targetErr *SoftsyncError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// ErrorCode lets other error types report a code through GetErrorCode.
func (e *SoftsyncError) ErrorCode() ErrorCode {
	return e.Code
}

// New creates a new SoftsyncError with the given code and message
func New(code ErrorCode, message string) *SoftsyncError {
	return &SoftsyncError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SoftsyncError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SoftsyncError {
	return &SoftsyncError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SoftsyncError
func Wrap(err error, code ErrorCode, message string) *SoftsyncError {
	if err == nil {
		return nil
	}
	return &SoftsyncError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SoftsyncError {
	if err == nil {
		return nil
	}
	return &SoftsyncError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SoftsyncError) WithDetail(key string, value interface{}) *SoftsyncError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// coder is implemented by error types outside this package that carry a code.
type coder interface {
	ErrorCode() ErrorCode
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	return GetErrorCode(err) == code
}

// GetErrorCode returns the error code from an error, or ErrUnknown if it carries none
func GetErrorCode(err error) ErrorCode {
	var c coder
	if errors.As(err, &c) {
		return c.ErrorCode()
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a SoftsyncError
func GetErrorDetails(err error) map[string]interface{} {
	var softsyncErr *SoftsyncError
	if errors.As(err, &softsyncErr) {
		return softsyncErr.Details
	}
	return nil
}

// IsUsage reports whether err stems from bad command line input.
func IsUsage(err error) bool {
	return usageCodes[GetErrorCode(err)]
}
