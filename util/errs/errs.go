// Package errs carries the domain error kinds shared by services and controllers.
package errs

import (
	"errors"
	"fmt"
)

type ErrCode string

const (
	ErrValidation        ErrCode = "VALIDATION"
	ErrForbidden         ErrCode = "FORBIDDEN"
	ErrInvalidTransition ErrCode = "INVALID_TRANSITION"
	ErrNotFound          ErrCode = "NOT_FOUND"
	ErrConflict          ErrCode = "CONFLICT"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string {
	if e.msg == "" {
		return string(e.code)
	}
	return e.msg
}
func (e codedError) Code() ErrCode { return e.code }

func New(c ErrCode, msg string) error { return codedError{code: c, msg: msg} }

func Validation(format string, args ...any) error {
	return codedError{code: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) error {
	return codedError{code: ErrForbidden, msg: fmt.Sprintf(format, args...)}
}

func NotFound(what string) error {
	return codedError{code: ErrNotFound, msg: what + " not found"}
}

func Conflict(format string, args ...any) error {
	return codedError{code: ErrConflict, msg: fmt.Sprintf(format, args...)}
}

// InvalidTransition names both the current and the requested state.
func InvalidTransition(from, to string) error {
	return codedError{code: ErrInvalidTransition, msg: fmt.Sprintf("cannot move booking from %s to %s", from, to)}
}

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}
