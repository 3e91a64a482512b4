// Package errors provides structured error handling for the native runtime.
//
// Errors are grouped by [Kind]. Each kind has a fixed recovery discipline:
//
//   - [KindStale]: an operation named a layout node or view id that no longer
//     exists. Expected while subtrees are torn down; callers treat it as a no-op.
//   - [KindTypeMismatch]: a downcast did not match. The original value is handed
//     back to the caller.
//   - [KindNative]: a native resource failed (for example malformed image bytes).
//     The owning view reports it and renders a fallback.
//   - [KindInvariant]: a broken contract such as element/layout child order
//     desync. These are programming errors and panic via [Invariant].
//   - [KindMisuse]: an API was driven from the wrong place. Rejected at the
//     boundary before any state is touched.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// Kind identifies the category of an error.
type Kind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown Kind = iota
	// KindStale indicates a reference to a removed layout node or view.
	KindStale
	// KindTypeMismatch indicates a failed downcast.
	KindTypeMismatch
	// KindNative indicates a native widget or resource failure.
	KindNative
	// KindInvariant indicates a violated runtime contract.
	KindInvariant
	// KindMisuse indicates an API called from an unsupported context.
	KindMisuse
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k Kind) String() string {
	switch k {
	case KindStale:
		return "stale"
	case KindTypeMismatch:
		return "type-mismatch"
	case KindNative:
		return "native"
	case KindInvariant:
		return "invariant"
	case KindMisuse:
		return "misuse"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Sentinel errors. Wrapped errors of the matching kind unwrap to these.
var (
	ErrTypeMismatch   = stderrors.New("type mismatch")
	ErrMisuse         = stderrors.New("misuse")
	ErrClosed         = stderrors.New("closed")
	ErrNativeResource = stderrors.New("native resource failure")
)

// Error represents a structured error in the runtime.
type Error struct {
	// Op is the operation that failed (e.g., "views.Image.Build").
	Op string
	// Kind categorizes the error.
	Kind Kind
	// Err is the underlying error.
	Err error
	// ViewID is the id of the view involved, if any.
	ViewID uint64
	// StackTrace contains the call stack for invariant failures.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

// New returns an Error of the given kind.
func New(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

func (e *Error) Error() string {
	if e.ViewID != 0 {
		return fmt.Sprintf("%s [%s] view=%d: %v", e.Op, e.Kind, e.ViewID, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrTypeMismatch:
		return e.Kind == KindTypeMismatch
	case ErrMisuse:
		return e.Kind == KindMisuse
	case ErrNativeResource:
		return e.Kind == KindNative
	}
	return false
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "engine.dispatch").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Handler receives errors reported by the runtime.
type Handler interface {
	// HandleError is called when an error is reported.
	HandleError(err *Error)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}

// Invariant reports a violated contract and panics with it.
func Invariant(op, format string, args ...any) {
	err := &Error{
		Op:         op,
		Kind:       KindInvariant,
		Err:        fmt.Errorf(format, args...),
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	}
	Report(err)
	panic(err)
}

// Is forwards to the standard library.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As forwards to the standard library.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}
