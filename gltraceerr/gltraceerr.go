// Package gltraceerr defines the error kinds shared across the trace
// codec, file container, and replay engine (spec §7). Every kind is a
// distinguishable error value via errors.Is; wrapping context is
// carried the same way the rest of the module carries it, with
// github.com/pkg/errors.
package gltraceerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind is one of the closed set of error categories spec §7 names.
type Kind uint8

const (
	_ Kind = iota

	// FormatError: malformed SOF, bad magic, unknown version, CRC
	// mismatch, out-of-range offset, unknown type/entrypoint id.
	FormatError

	// IOError: short read/write, blob not found, archive corruption.
	IOError

	// ReplayDivergence: return value, out-parameter, or frame-digest
	// mismatch.
	ReplayDivergence

	// HandleUnknown: a trace handle with no live mapping reached a
	// call site that needs one.
	HandleUnknown

	// ContextLost: driver reported loss; non-recoverable.
	ContextLost

	// CancelRequested: cooperative stop.
	CancelRequested

	// ConfigError: incompatible flags (e.g. write_snapshot_call with
	// trim_frame).
	ConfigError
)

// Error lets a bare Kind be used directly as the target of
// errors.Is(err, gltraceerr.FormatError).
func (k Kind) Error() string { return k.String() }

func (k Kind) String() string {
	switch k {
	case FormatError:
		return "FormatError"
	case IOError:
		return "IOError"
	case ReplayDivergence:
		return "ReplayDivergence"
	case HandleUnknown:
		return "HandleUnknown"
	case ContextLost:
		return "ContextLost"
	case CancelRequested:
		return "CancelRequested"
	case ConfigError:
		return "ConfigError"
	default:
		return "UnknownKind"
	}
}

// Location pinpoints where an error occurred, per spec §7 "a stable
// short tag, a human message, and a location (file:off + call_counter
// + frame)". Zero value means "unknown" and is omitted from Error().
type Location struct {
	FileOffset  int64
	CallCounter uint64
	Frame       int
}

func (l Location) isZero() bool {
	return l == Location{}
}

// Error is a kinded error. Kind is compared with errors.Is against
// the sentinel kind values above, independent of the wrapped message.
type Error struct {
	Kind     Kind
	msg      string
	Err      error
	Location Location
}

func (e *Error) Error() string {
	s := e.Kind.String() + ": " + e.msg
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	if !e.Location.isZero() {
		s += fmt.Sprintf(" (offset=%d call=%d frame=%d)", e.Location.FileOffset, e.Location.CallCounter, e.Location.Frame)
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's Kind, so callers
// can write errors.Is(err, gltraceerr.FormatError) directly against a
// Kind value.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// New constructs an Error of the given kind.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, msg: msg}
}

// Newf constructs an Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, msg: errors.Errorf(format, args...).Error()}
}

// Wrap attaches kind to an existing error, preserving it as the cause
// for errors.Unwrap/errors.Is/errors.As chains.
func Wrap(kind Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, msg: msg, Err: err}
}

// AddLocation sets err's Location in place if err is a *Error produced
// by this package; it is a no-op on any other error type, since plain
// errors have nowhere to carry a Location.
func AddLocation(err error, loc Location) error {
	if e, ok := err.(*Error); ok {
		e.Location = loc
	}
	return err
}

// Wrapf is Wrap with a formatted message.
func Wrapf(kind Kind, err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, msg: errors.Errorf(format, args...).Error(), Err: err}
}
