// Package errs defines coded errors for the harness. Helper methods wrap
// automation-library failures in a coded error so tests and reports can
// distinguish a timeout from a genuine assertion mismatch.
package errs

import (
	"errors"
	"strings"
)

// Code is a harness error code.
type Code string

const (
	InvalidArgument Code = "invalid_argument"
	NotFound        Code = "not_found"
	Timeout         Code = "timeout"
	AssertionFailed Code = "assertion_failed"
	Unavailable     Code = "unavailable"
	Internal        Code = "internal"
)

// Error is a coded harness error.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Message != "" && e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a coded error with message.
func New(code Code, message string) error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a coded error with message and cause.
func Wrap(code Code, message string, cause error) error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     cause,
	}
}

// CodeOf returns the error code, defaulting to internal.
func CodeOf(err error) Code {
	if err == nil {
		return Internal
	}
	var coded *Error
	if errors.As(err, &coded) {
		if coded.Code == "" {
			return Internal
		}
		return coded.Code
	}
	return Internal
}

// Automation classifies an automation-library failure. Playwright surfaces
// timeouts with a "Timeout ...ms exceeded" message and no typed sentinel the
// caller can match on, so classification is by message.
func Automation(message string, cause error) error {
	if cause == nil {
		return nil
	}
	code := Internal
	text := cause.Error()
	switch {
	case strings.Contains(text, "Timeout") && strings.Contains(text, "exceeded"):
		code = Timeout
	case strings.Contains(text, "Target closed") || strings.Contains(text, "browser has been closed"):
		code = Unavailable
	}
	return Wrap(code, message, cause)
}

// IsTimeout reports whether err carries the timeout code.
func IsTimeout(err error) bool {
	return CodeOf(err) == Timeout
}
