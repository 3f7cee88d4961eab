package dispatch

import (
	"errors"
	"fmt"
)

// Code is a machine-checkable error class. Clients branch on it: an
// authorization failure prompts an upgrade, not a retry.
type Code string

const (
	CodeValidation   Code = "validation_error"
	CodeNotFound     Code = "tool_not_found"
	CodeMisrouted    Code = "misrouted"
	CodeUnauthorized Code = "authorization_error"
	CodeHandler      Code = "handler_error"
	CodeTimeout      Code = "timeout"
)

// Error is a structured dispatch failure. It is the only error shape that
// crosses the dispatcher boundary.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError marks malformed input or a malformed tool definition.
func NewValidationError(format string, args ...interface{}) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError marks an unknown tool name.
func NewNotFoundError(name string) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("unknown tool: %s", name)}
}

// NewMisroutedError marks a tool invoked through the wrong execution-context path.
func NewMisroutedError(name string) *Error {
	return &Error{Code: CodeMisrouted, Message: fmt.Sprintf("tool %s is not executable on the server", name)}
}

// NewAuthorizationError marks a tier, reflink or budget failure.
func NewAuthorizationError(format string, args ...interface{}) *Error {
	return &Error{Code: CodeUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// NewHandlerError wraps a failure inside handler logic.
func NewHandlerError(err error) *Error {
	return &Error{Code: CodeHandler, Message: err.Error(), Err: err}
}

// NewTimeoutError marks a handler that exceeded its time budget.
func NewTimeoutError(name string, message string) *Error {
	return &Error{Code: CodeTimeout, Message: fmt.Sprintf("tool %s: %s", name, message)}
}

// AsError converts any error into a structured *Error, defaulting to the
// handler class.
func AsError(err error) *Error {
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return NewHandlerError(err)
}

// CodeOf returns the error class, or CodeHandler for untyped errors.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	return AsError(err).Code
}
