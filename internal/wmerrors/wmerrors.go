// Package wmerrors defines the error kinds used across the window manager
// core and a small helper type that carries one of those kinds alongside a
// wrapped cause.
package wmerrors

import (
	"fmt"

	"golang.org/x/xerrors"
)

// Kind classifies an error per the propagation rules of the window manager
// core: command handlers, tree mutations, the IPC server and the backend
// adapter each raise a specific kind so callers can decide whether to
// recover, log, or disconnect.
type Kind int

const (
	// KindNone is the zero value; never attached to a returned error.
	KindNone Kind = iota
	// ConfigParse is a config file load/parse failure.
	ConfigParse
	// CommandInvalid means argc/argv did not match a handler's signature.
	CommandInvalid
	// CommandFailure is a semantic command failure, e.g. no focused view.
	CommandFailure
	// TreeInvariant marks an internal bug: a tree invariant was violated.
	TreeInvariant
	// BackendError wraps a refusal or failure from the backend adapter.
	BackendError
	// IpcProtocol is a malformed frame, bad magic, or short write on the
	// IPC transport.
	IpcProtocol
	// ResourceExhausted covers arena/held-keys/other fixed-capacity limits.
	ResourceExhausted
)

func (k Kind) String() string {
	switch k {
	case ConfigParse:
		return "config_parse"
	case CommandInvalid:
		return "command_invalid"
	case CommandFailure:
		return "command_failure"
	case TreeInvariant:
		return "tree_invariant"
	case BackendError:
		return "backend_error"
	case IpcProtocol:
		return "ipc_protocol"
	case ResourceExhausted:
		return "resource_exhausted"
	default:
		return "none"
	}
}

// Error is a kinded, wrapped error.
type Error struct {
	Kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an *Error with the same Kind, matching
// errors.Is semantics for kind-based dispatch.
func (e *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return te.Kind == e.Kind
}

// New builds a kinded error with no cause.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, msg: msg}
}

// Newf builds a kinded error with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches kind and message to an existing cause, preserving it for
// errors.Unwrap/xerrors.Is chains.
func Wrap(kind Kind, msg string, cause error) error {
	if cause == nil {
		return New(kind, msg)
	}
	return &Error{Kind: kind, msg: msg, err: xerrors.Errorf("%s: %w", msg, cause)}
}

// KindOf extracts the Kind of err if it (or something it wraps) is an
// *Error, otherwise KindNone.
func KindOf(err error) Kind {
	var e *Error
	if xerrors.As(err, &e) {
		return e.Kind
	}
	return KindNone
}
