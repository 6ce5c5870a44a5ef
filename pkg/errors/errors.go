// Package errors provides structured error handling for the Ember runtime.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindInvalidState indicates an operation illegal for the current
	// lifecycle state, such as activating a disposed node.
	KindInvalidState
	// KindInvalidArgument indicates a rejected argument, such as a
	// negative animation duration or a nil template.
	KindInvalidArgument
	// KindTypeResolution indicates the factory could not resolve a
	// template's component type to a registered constructor.
	KindTypeResolution
	// KindValidation indicates accumulated validation diagnostics
	// crossed the caller's severity threshold.
	KindValidation
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidState:
		return "invalid state"
	case KindInvalidArgument:
		return "invalid argument"
	case KindTypeResolution:
		return "type resolution"
	case KindValidation:
		return "validation"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// EmberError represents a structured error in the Ember runtime.
type EmberError struct {
	// Op is the operation that failed (e.g., "scene.Node.Activate").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Node is the name of the component node involved, if applicable.
	Node string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *EmberError) Error() string {
	if e.Node != "" {
		return fmt.Sprintf("%s [%s] node=%s: %v", e.Op, e.Kind, e.Node, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *EmberError) Unwrap() error {
	return e.Err
}

// InvalidState returns an EmberError of KindInvalidState for op on the
// named node.
func InvalidState(op, node, format string, args ...any) *EmberError {
	return &EmberError{
		Op:   op,
		Kind: KindInvalidState,
		Node: node,
		Err:  fmt.Errorf(format, args...),
	}
}

// InvalidArgument returns an EmberError of KindInvalidArgument.
func InvalidArgument(op, format string, args ...any) *EmberError {
	return &EmberError{
		Op:   op,
		Kind: KindInvalidArgument,
		Err:  fmt.Errorf(format, args...),
	}
}

// TypeResolution returns an EmberError of KindTypeResolution wrapping a
// TypeResolutionError that names the missing registration.
func TypeResolution(op, typeName, template string) *EmberError {
	return &EmberError{
		Op:   op,
		Kind: KindTypeResolution,
		Err:  &TypeResolutionError{TypeName: typeName, Template: template},
	}
}

// Validation returns an EmberError of KindValidation for op on the named
// node.
func Validation(op, node, format string, args ...any) *EmberError {
	return &EmberError{
		Op:   op,
		Kind: KindValidation,
		Node: node,
		Err:  fmt.Errorf(format, args...),
	}
}

// TypeResolutionError reports a component type with no registered
// constructor.
type TypeResolutionError struct {
	// TypeName is the unresolved component type selector.
	TypeName string
	// Template is the name of the template that requested it.
	Template string
}

func (e *TypeResolutionError) Error() string {
	if e.Template != "" {
		return fmt.Sprintf("no component registered as %q (template %q)", e.TypeName, e.Template)
	}
	return fmt.Sprintf("no component registered as %q", e.TypeName)
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "engine.Engine.Step").
	Op string
	// Node is the name of the component node being visited, if applicable.
	Node string
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

// KindOf reports the ErrorKind of err, unwrapping as needed. Errors that
// are not EmberErrors report KindUnknown, except recovered panics which
// report KindPanic.
func KindOf(err error) ErrorKind {
	var ee *EmberError
	if stderrors.As(err, &ee) {
		return ee.Kind
	}
	var pe *PanicError
	if stderrors.As(err, &pe) {
		return KindPanic
	}
	return KindUnknown
}

// IsInvalidState reports whether err is an invalid lifecycle state error.
func IsInvalidState(err error) bool {
	return KindOf(err) == KindInvalidState
}

// IsInvalidArgument reports whether err is an invalid argument error.
func IsInvalidArgument(err error) bool {
	return KindOf(err) == KindInvalidArgument
}

// IsTypeResolution reports whether err is a type resolution error.
func IsTypeResolution(err error) bool {
	if KindOf(err) == KindTypeResolution {
		return true
	}
	var tr *TypeResolutionError
	return stderrors.As(err, &tr)
}

// IsValidation reports whether err is a validation threshold error.
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

// ErrorHandler receives errors reported by the Ember runtime.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *EmberError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
