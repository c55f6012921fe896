// Package errors provides coded errors for geobox. Every failure path in the
// project carries a Code so callers can branch on the class of failure without
// string matching.
package errors

import (
	"errors"
	"fmt"
)

// Error is a coded error with an optional cause and string context.
type Error struct {
	Code    Code
	Message string
	Cause   error
	Context map[string]string
}

// New creates an error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with a formatted message.
func Newf(code Code, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates an error that records err as its cause.
func Wrap(code Code, err error, message string) *Error {
	return &Error{Code: code, Message: message, Cause: err}
}

// Wrapf creates a wrapping error with a formatted message.
func Wrapf(code Code, err error, format string, args ...interface{}) *Error {
	return Wrap(code, err, fmt.Sprintf(format, args...))
}

// AddContext attaches a key/value pair, returning the error for chaining.
func (e *Error) AddContext(key, value string) *Error {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// HasCode reports whether err or any coded error in its chain carries code.
func HasCode(err error, code Code) bool {
	for err != nil {
		var coded *Error
		if !errors.As(err, &coded) {
			return false
		}
		if coded.Code.Equals(code) {
			return true
		}
		err = coded.Cause
	}
	return false
}

// CodeOf returns the code of the outermost coded error in the chain, or the
// zero Code if there is none.
func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return Code{}
}
