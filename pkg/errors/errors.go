package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrorCode identifies a failure class. Codes are stable strings so
// tests and plan consumers can match on them.
type ErrorCode string

// The codes sedit reports
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Pattern and expression errors
	ErrMalformedPattern      ErrorCode = "MALFORMED_PATTERN"
	ErrInvalidRange          ErrorCode = "INVALID_RANGE"
	ErrUnsupportedExpression ErrorCode = "UNSUPPORTED_EXPRESSION"
	ErrLineOutOfBounds       ErrorCode = "LINE_OUT_OF_BOUNDS"

	// Source and target errors
	ErrSourceNotFound   ErrorCode = "SOURCE_NOT_FOUND"
	ErrPermissionDenied ErrorCode = "PERMISSION_DENIED"

	// Backup errors
	ErrBackupVerificationFailed ErrorCode = "BACKUP_VERIFICATION_FAILED"
	ErrRestoreTargetUnwritable  ErrorCode = "RESTORE_TARGET_UNWRITABLE"

	// Engine errors
	ErrTransformTimeout ErrorCode = "TRANSFORM_TIMEOUT"
	ErrWriteFailed      ErrorCode = "WRITE_FAILED"

	// Plan errors
	ErrPlanParse ErrorCode = "PLAN_PARSE"
)

// EditError carries a code, a human message, and optional structured
// details about a failed edit
type EditError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

func (e *EditError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *EditError) Unwrap() error {
	return e.Wrapped
}

// Is matches two EditErrors by code, so errors.Is works across
// separately constructed instances
func (e *EditError) Is(target error) bool {
	var targetErr *EditError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates an EditError with the given code and message
func New(code ErrorCode, message string) *EditError {
	return &EditError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates an EditError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *EditError {
	return &EditError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap attaches a code and message to an underlying error. Returns nil
// when err is nil
func Wrap(err error, code ErrorCode, message string) *EditError {
	if err == nil {
		return nil
	}
	return &EditError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *EditError {
	if err == nil {
		return nil
	}
	return &EditError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail records a key/value pair on the error
func (e *EditError) WithDetail(key string, value interface{}) *EditError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails records several key/value pairs at once
func (e *EditError) WithDetails(details map[string]interface{}) *EditError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// AsEditError extracts the EditError from an error chain.
func AsEditError(err error) (*EditError, bool) {
	var editErr *EditError
	if errors.As(err, &editErr) {
		return editErr, true
	}
	return nil, false
}

// IsErrorCode reports whether the outermost EditError in err's chain
// carries the given code
func IsErrorCode(err error, code ErrorCode) bool {
	var editErr *EditError
	if errors.As(err, &editErr) {
		return editErr.Code == code
	}
	return false
}

// GetErrorCode extracts the outermost code from err, or ErrUnknown when
// the chain holds no EditError
func GetErrorCode(err error) ErrorCode {
	var editErr *EditError
	if errors.As(err, &editErr) {
		return editErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails extracts the details map from err, or nil when the
// chain holds no EditError
func GetErrorDetails(err error) map[string]interface{} {
	var editErr *EditError
	if errors.As(err, &editErr) {
		return editErr.Details
	}
	return nil
}

// MapOS translates an operating system error into a coded read error.
// Not-exist maps to SOURCE_NOT_FOUND and permission maps to
// PERMISSION_DENIED; anything else keeps the fallback code.
func MapOS(err error, fallback ErrorCode, path string) *EditError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, fs.ErrNotExist) || errors.Is(err, os.ErrNotExist):
		return Wrapf(err, ErrSourceNotFound, "no such file: %s", path).
			WithDetail("path", path)
	case errors.Is(err, fs.ErrPermission) || errors.Is(err, os.ErrPermission):
		return Wrapf(err, ErrPermissionDenied, "permission denied: %s", path).
			WithDetail("path", path)
	default:
		return Wrapf(err, fallback, "file operation failed: %s", path).
			WithDetail("path", path)
	}
}
