// Package herr defines the error taxonomy shared by every domain
// service: Unauthorized, NotFound, InvalidArgument and Conflict.
// Services fail fast with exactly one of these kinds; callers branch
// with errors.Is against the kind sentinels.
package herr

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure.
type Kind int

const (
	// Unauthorized means the acting staff member lacks the capability
	// required by the requested action, or nobody is signed in.
	Unauthorized Kind = iota + 1
	// NotFound means a referenced record id does not exist in its store.
	NotFound
	// InvalidArgument means malformed input: empty required strings,
	// out-of-range numbers, wrong role for a referenced id.
	InvalidArgument
	// Conflict means an invariant violation at write time: duplicate
	// generated id or a double-booked slot.
	Conflict
)

func (k Kind) String() string {
	switch k {
	case Unauthorized:
		return "unauthorized"
	case NotFound:
		return "not found"
	case InvalidArgument:
		return "invalid argument"
	case Conflict:
		return "conflict"
	}
	return "unknown"
}

// Kind sentinels for errors.Is matching.
var (
	ErrUnauthorized    = &Error{kind: Unauthorized}
	ErrNotFound        = &Error{kind: NotFound}
	ErrInvalidArgument = &Error{kind: InvalidArgument}
	ErrConflict        = &Error{kind: Conflict}
)

// Error is a classified domain error.
type Error struct {
	kind Kind
	msg  string
}

func (e *Error) Error() string {
	if e.msg == "" {
		return e.kind.String()
	}
	return e.msg
}

// Kind returns the error's classification.
func (e *Error) Kind() Kind { return e.kind }

// Is matches any *Error of the same kind, so
// errors.Is(err, herr.ErrNotFound) works regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.kind == e.kind
}

// Unauthorizedf builds an Unauthorized error.
func Unauthorizedf(format string, args ...any) error {
	return &Error{kind: Unauthorized, msg: fmt.Sprintf(format, args...)}
}

// NotFoundf builds a NotFound error.
func NotFoundf(format string, args ...any) error {
	return &Error{kind: NotFound, msg: fmt.Sprintf(format, args...)}
}

// Invalidf builds an InvalidArgument error.
func Invalidf(format string, args ...any) error {
	return &Error{kind: InvalidArgument, msg: fmt.Sprintf(format, args...)}
}

// Conflictf builds a Conflict error.
func Conflictf(format string, args ...any) error {
	return &Error{kind: Conflict, msg: fmt.Sprintf(format, args...)}
}

// KindOf reports the classification of err, or 0 when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return 0
}
