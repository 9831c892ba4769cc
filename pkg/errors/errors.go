// Package errors provides structured error reporting for controlkit.
//
// The registry and recycling pool never return errors from their public
// operations; misuse is absorbed as a no-op. Conditions worth surfacing are
// sent to the global [ErrorHandler] instead.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindMisuse indicates a call that was absorbed as a no-op, such as
	// discarding a control that is not tracked.
	KindMisuse
	// KindContract indicates a control that broke the Control contract.
	KindContract
	// KindConfig indicates a configuration error.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindMisuse:
		return "misuse"
	case KindContract:
		return "contract"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

var (
	// ErrNotTracked is reported when an id or control does not resolve to a
	// tracked entry.
	ErrNotTracked = errors.New("control not tracked")
	// ErrNilControl is reported when a nil control, or an interface holding
	// a nil pointer, is passed in or produced by a factory.
	ErrNilControl = errors.New("nil control")
	// ErrNoFactory is reported when a pool is used before a factory is configured.
	ErrNoFactory = errors.New("no factory configured")
	// ErrRemovalNotSignaled is reported when a control's Remove did not
	// synchronously fire its pre-removal event.
	ErrRemovalNotSignaled = errors.New("removal did not fire pre-removal event")
)

// Error represents a structured error reported by a controlkit primitive.
type Error struct {
	// Op is the operation that failed (e.g., "registry.DiscardID").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// ID is the control identifier involved, if any.
	ID string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *Error) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s [%s] id=%s: %v", e.Op, e.Kind, e.ID, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "control.Event.Trigger").
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

// ErrorHandler receives errors reported by controlkit.
type ErrorHandler interface {
	// HandleError is called when an error is reported.
	HandleError(err *Error)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool { return errors.As(err, target) }
