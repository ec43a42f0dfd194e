package errors

import (
	"fmt"
	"io"

	pkgerrors "github.com/pkg/errors"
)

// AppError is an error carrying a stable code for the caller to branch on.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Message == "" && e.Cause != nil {
		return e.Cause.Error()
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Format prints the code and the cause's stack trace for %+v.
func (e *AppError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') && e.Cause != nil {
		fmt.Fprintf(s, "[%s] %+v", e.Code, e.Cause)
		return
	}
	io.WriteString(s, e.Error())
}

const (
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeConfigInvalid   = "CONFIG_INVALID"
	CodeRNGInit         = "RNG_INIT"
	CodeCancelled       = "CANCELLED"
	CodeInternalError   = "INTERNAL_ERROR"
)

func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Newf(code, format string, args ...interface{}) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap annotates err with message and a stack trace, keeping the code of
// an inner AppError.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{Code: codeOr(err, CodeInternalError), Cause: pkgerrors.Wrap(err, message)}
}

func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &AppError{Code: codeOr(err, CodeInternalError), Cause: pkgerrors.Wrapf(err, format, args...)}
}

// WithCode files err under code and records where that happened.
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Cause: pkgerrors.WithStack(err)}
}

func codeOr(err error, fallback string) string {
	var appErr *AppError
	if pkgerrors.As(err, &appErr) {
		return appErr.Code
	}
	return fallback
}

// GetCode returns the code of the outermost AppError in err's chain, or "UNKNOWN".
func GetCode(err error) string {
	return codeOr(err, "UNKNOWN")
}

func InvalidArgument(format string, args ...interface{}) *AppError {
	return Newf(CodeInvalidArgument, format, args...)
}

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// Is and As are re-exported so callers need a single errors import.
func Is(err, target error) bool { return pkgerrors.Is(err, target) }

func As(err error, target interface{}) bool { return pkgerrors.As(err, target) }
