package errorx

import (
	"errors"
	"fmt"
)

// CodeError is an error carrying a business status code.
// It implements the error interface, wraps an underlying cause and is
// recognised by errors.Is/errors.As.
type CodeError struct {
	Code  int    // business status code
	Msg   string // user-facing message
	cause error  // wrapped underlying error
}

// Error returns "msg: cause" when a cause is present, otherwise just the msg.
func (e *CodeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.cause)
	}
	return e.Msg
}

// Unwrap exposes the cause to errors.Is/errors.As.
func (e *CodeError) Unwrap() error {
	return e.cause
}

// New creates a CodeError without a cause.
func New(code int, msg string) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  msg,
	}
}

// Newf creates a CodeError with a formatted message.
func Newf(code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// Wrap attaches a business code and message to an underlying error.
// Usage: errorx.Wrap(err, CodeNotFound, "session not found")
func Wrap(err error, code int, msg string) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   msg,
		cause: err,
	}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   fmt.Sprintf(format, args...),
		cause: err,
	}
}

// GetCode extracts the business code from an error chain, defaulting to
// CodeServerBusy for plain errors.
func GetCode(err error) int {
	var codeErr *CodeError
	if errors.As(err, &codeErr) {
		return codeErr.Code
	}
	return CodeServerBusy
}

// Business status codes.
const (
	CodeSuccess         = 1000 // ok
	CodeInvalidParam    = 1001 // bad request parameters
	CodeUserExist       = 1002 // user already registered
	CodeUserNotExist    = 1003 // user not found
	CodeInvalidPassword = 1004 // wrong password
	CodeServerBusy      = 1005 // internal failure
	CodeUnauthorized    = 1006 // missing/invalid credentials
	CodeNotFound        = 1008 // resource not found
	CodeDBError         = 1010 // database failure
	CodeCacheError      = 1011 // cache failure
)

// Predefined instances, usable directly or with errors.Is.
var (
	ErrInvalidParam = New(CodeInvalidParam, "invalid request parameters")
	ErrServerBusy   = New(CodeServerBusy, "server busy, try again later")
)

// IsNotFound reports whether err is a not-found error (including a bare
// gorm record-not-found that escaped wrapping).
func IsNotFound(err error) bool {
	var codeErr *CodeError
	if errors.As(err, &codeErr) && codeErr.Code == CodeNotFound {
		return true
	}
	return err != nil && err.Error() == "record not found"
}
