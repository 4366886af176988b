package parquet

import (
	"errors"
	"fmt"
)

// Kind classifies the cause of an Error. It is a tag, not a distinct Go
// type, so callers compare it with Error.Kind rather than type-switching.
type Kind int

const (
	// General covers internal failures that do not fit the other kinds,
	// including malformed arguments from the caller.
	General Kind = iota

	// OutOfSpec means the input violates the Parquet format or an
	// invariant this package requires of it.
	OutOfSpec

	// Io means the error was bubbled up from the underlying sink or
	// source (the io.Writer/io.Reader the caller supplied).
	Io

	// External means the error was surfaced by a caller-provided
	// iterator rather than by this package.
	External
)

func (k Kind) String() string {
	switch k {
	case OutOfSpec:
		return "out of spec"
	case Io:
		return "io"
	case External:
		return "external"
	default:
		return "general"
	}
}

// Error is the error type returned by every fallible operation in this
// module. It carries a Kind and wraps the underlying cause so that
// errors.Is and errors.As compose through it.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("parquet: %s: %s", e.Kind, e.Err)
	}
	return fmt.Sprintf("parquet: %s: %s: %s", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// errorf constructs an *Error of the given kind, wrapping a formatted
// message. op names the operation that failed (e.g. "DecodePage"); it may
// be empty.
func errorf(kind Kind, op, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// wrap builds an *Error of the given kind around an existing error,
// preserving it for errors.Is/errors.As. An err that already carries an
// *Error of the same kind is returned as is.
func wrap(kind Kind, op string, err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) && e.Kind == kind {
		return e
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// NewOutOfSpecError builds an *Error of Kind OutOfSpec. Sub-packages
// (schema, statistics, page) use this instead of errorf, which is
// unexported, to report format violations in the same shape as the root
// package's own errors.
func NewOutOfSpecError(op, format string, args ...interface{}) *Error {
	return errorf(OutOfSpec, op, format, args...)
}

// NewGeneralError builds an *Error of Kind General for malformed caller
// arguments detected by a sub-package.
func NewGeneralError(op, format string, args ...interface{}) *Error {
	return errorf(General, op, format, args...)
}

// WrapIOError wraps err (from a caller-supplied io.Reader/io.Writer) as a
// Kind Io *Error, for use by sub-packages that perform I/O on the caller's
// behalf.
func WrapIOError(op string, err error) *Error {
	return wrap(Io, op, err)
}

// WrapExternalError wraps err (raised by a caller-provided iterator) as a
// Kind External *Error.
func WrapExternalError(op string, err error) *Error {
	return wrap(External, op, err)
}
