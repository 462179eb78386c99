// Package errors provides structured error types and exit codes for ccenv.
package errors

import (
	"fmt"
	"strings"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess          = 0 // Success
	ExitRuntimeError     = 1 // Runtime error (external tool failed, I/O error, etc.)
	ExitArgumentError    = 2 // Invalid argument (unknown family, architecture, platform)
	ExitEnvironmentError = 3 // Environment error (toolchain missing, activation failed)
)

// Kind classifies an error for propagation and exit-code policy.
type Kind int

const (
	// KindRuntime covers unexpected failures: I/O errors, malformed
	// configuration, external tools crashing.
	KindRuntime Kind = iota
	// KindNotFound means no toolchain, generator or architecture matched.
	// Recoverable: callers should try a fallback or report to the user.
	KindNotFound
	// KindValidation means something was found but is unusable; the message
	// names the specific missing item.
	KindValidation
	// KindActivation means an environment mutation failed. The environment
	// is guaranteed unmodified when an error of this kind is returned.
	KindActivation
	// KindInvalidArgument means an unknown family/architecture/platform
	// string; the message enumerates the valid values.
	KindInvalidArgument
)

// Error is the base error type for ccenv. Every user-visible error carries
// an optional Suggestion with a human-actionable next step.
type Error struct {
	Kind       Kind
	Message    string
	Component  string // Originating component ("detect", "registry", ...) if applicable
	Suggestion string // Human-actionable hint ("install ninja", "valid values are: ...")
	Cause      error  // Underlying error
}

func (e *Error) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("[%s] %s", e.Component, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *Error) ExitCode() int {
	switch e.Kind {
	case KindInvalidArgument:
		return ExitArgumentError
	case KindNotFound, KindValidation, KindActivation:
		return ExitEnvironmentError
	default:
		return ExitRuntimeError
	}
}

// WithComponent tags the error with the component that produced it; Error()
// renders the tag as a "[component]" prefix.
func (e *Error) WithComponent(component string) *Error {
	e.Component = component
	return e
}

// New creates a new runtime error.
func New(message string) *Error {
	return &Error{Kind: KindRuntime, Message: message}
}

// Newf creates a new runtime error with formatting.
func Newf(format string, args ...interface{}) *Error {
	return New(fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *Error {
	return &Error{Kind: KindRuntime, Message: message, Cause: err}
}

// NotFound creates a not-found error.
func NotFound(what, name string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found: %s", what, name),
	}
}

// NotFoundWithSuggestion creates a not-found error with an actionable hint.
func NotFoundWithSuggestion(what, name, suggestion string) *Error {
	err := NotFound(what, name)
	err.Suggestion = suggestion
	return err
}

// Validation creates a validation error.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Validationf creates a validation error with formatting.
func Validationf(format string, args ...interface{}) *Error {
	return Validation(fmt.Sprintf(format, args...))
}

// Activation creates an activation error. Constructors of this kind promise
// that the process environment was left unmodified.
func Activation(message string, cause error) *Error {
	return &Error{Kind: KindActivation, Message: message, Cause: cause}
}

// InvalidArgument creates an invalid-argument error. The valid alternatives
// are embedded in both the message and the suggestion so the enumeration
// survives message rewrapping.
func InvalidArgument(what, got string, valid []string) *Error {
	return &Error{
		Kind:       KindInvalidArgument,
		Message:    fmt.Sprintf("unknown %s: %q (valid values are: %s)", what, got, strings.Join(valid, ", ")),
		Suggestion: fmt.Sprintf("valid values are: %s", strings.Join(valid, ", ")),
	}
}

// IsKind reports whether err is a ccenv error of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if e, ok := err.(*Error); ok {
		return e.ExitCode()
	}
	return ExitRuntimeError
}

// SuggestionOf returns the suggestion attached to err, or "".
func SuggestionOf(err error) string {
	if e, ok := err.(*Error); ok {
		return e.Suggestion
	}
	return ""
}

// KindOf returns the kind of a ccenv error; foreign errors are KindRuntime.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindRuntime
}

// MessageOf returns the bare message of a ccenv error, without the component
// prefix, so callers embedding it under their own tag do not double it.
func MessageOf(err error) string {
	if e, ok := err.(*Error); ok {
		return e.Message
	}
	return err.Error()
}
