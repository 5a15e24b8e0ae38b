// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for objpool's outer
// surfaces that need structured, contextual errors distinct from the pool's
// own sentinel errors; cmd/objpool-bench is the one caller.

package api

import (
	"errors"
	"fmt"

	"github.com/momentics/objpool/objpool"
)

// ErrorCode represents specific error conditions in the library. Every
// non-OK, non-Internal value here corresponds to one of objpool's own
// sentinel error kinds; CodeFor classifies an error returned by the pool
// into the matching code.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeResourceExhausted
	ErrCodeNotSupported
	ErrCodeNotFound
	ErrCodeInternal
)

// CodeFor classifies err, returned by an objpool.Pool operation, into an
// ErrorCode by matching against objpool's sentinel kinds (objpool/errors.go)
// via errors.Is. Errors that don't originate from objpool — or a nil
// err — classify as ErrCodeInternal and ErrCodeOK respectively.
func CodeFor(err error) ErrorCode {
	switch {
	case err == nil:
		return ErrCodeOK
	case errors.Is(err, objpool.ErrInvalidArgument):
		return ErrCodeInvalidArgument
	case errors.Is(err, objpool.ErrOutOfMemory):
		return ErrCodeResourceExhausted
	case errors.Is(err, objpool.ErrUnsupported):
		return ErrCodeNotSupported
	case errors.Is(err, objpool.ErrNotFound):
		return ErrCodeNotFound
	default:
		return ErrCodeInternal
	}
}

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
