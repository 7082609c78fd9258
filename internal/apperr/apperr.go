// Package apperr provides a message-template error type shared across the
// application
package apperr

import "fmt"

// Error is an application error. Sentinel values are declared with a Message
// (optionally a format template) and specialised at the call site with Fmt or
// Wrap. Specialised copies still match their sentinel under errors.Is.
type Error struct {
	Cause   error
	base    *Error
	Message string
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}

	return e.Message + ": " + e.Cause.Error()
}

// Fmt returns a copy of the error with its message formatted using args.
func (e *Error) Fmt(args ...any) *Error {
	ne := e.clone()
	ne.Message = fmt.Sprintf(e.Message, args...)

	return ne
}

// Wrap returns a copy of the error caused by err.
func (e *Error) Wrap(err error) *Error {
	ne := e.clone()
	ne.Cause = err

	return ne
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.root() == t.root()
}

func (e *Error) clone() *Error {
	ne := *e
	ne.base = e.root()

	return &ne
}

func (e *Error) root() *Error {
	if e.base != nil {
		return e.base
	}

	return e
}
