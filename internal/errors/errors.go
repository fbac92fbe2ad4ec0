package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, keeping the code of a wrapped AppError
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the code of the outermost AppError in the chain, otherwise "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// HasCode reports whether err carries the given code
func HasCode(err error, code string) bool {
	return err != nil && GetCode(err) == code
}

// Predefined error codes
const (
	CodeConfigInvalid = "CONFIG_INVALID"
	CodeInternalError = "INTERNAL_ERROR"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeFileNotFound  = "FILE_NOT_FOUND"
	CodeSheetNotFound = "SHEET_NOT_FOUND"
	CodeFormatError   = "FORMAT_ERROR"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

// FileNotFound reports a path that does not resolve to a file
func FileNotFound(path string, cause error) *AppError {
	return &AppError{
		Code:    CodeFileNotFound,
		Message: fmt.Sprintf("file not found: %s", path),
		Cause:   cause,
	}
}

// SheetNotFound reports a workbook without the requested sheet
func SheetNotFound(sheet, path string) *AppError {
	return New(CodeSheetNotFound, fmt.Sprintf("sheet %q not found in %s", sheet, path))
}

// FormatError reports content that does not parse as the expected tabular shape
func FormatError(path, reason string, cause error) *AppError {
	return &AppError{
		Code:    CodeFormatError,
		Message: fmt.Sprintf("%s: %s", path, reason),
		Cause:   cause,
	}
}

func IsFileNotFound(err error) bool { return HasCode(err, CodeFileNotFound) }
func IsSheetNotFound(err error) bool { return HasCode(err, CodeSheetNotFound) }
func IsFormatError(err error) bool { return HasCode(err, CodeFormatError) }
