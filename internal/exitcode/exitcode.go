package exitcode

import (
	"errors"
	"fmt"
)

const (
	OK      = 0
	Failure = 1
)

// Kind classifies an error by where it came from. It never changes the exit
// code; the taxonomy only travels in the message.
type Kind int

const (
	Unclassified Kind = iota
	ParseFormat
	Resolution
	Schema
	Usage
)

func (k Kind) String() string {
	switch k {
	case ParseFormat:
		return "parse"
	case Resolution:
		return "resolution"
	case Schema:
		return "schema"
	case Usage:
		return "usage"
	default:
		return "unclassified"
	}
}

// ErrDone signals a successful early termination (help, introspection, bye).
var ErrDone = errors.New("done")

type Error struct {
	Kind  Kind
	Cause error
}

func (e *Error) Error() string {
	return e.Cause.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Cause: err}
}

// Errorf builds a classified error from a format string.
func Errorf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Cause: fmt.Errorf(format, args...)}
}

func KindOf(err error) Kind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	return Unclassified
}

func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}

func Of(err error) int {
	if err == nil || errors.Is(err, ErrDone) {
		return OK
	}
	return Failure
}
