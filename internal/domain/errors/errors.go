// Package errors defines the error taxonomy shared by entities, use-cases
// and adapters. Use-cases are the error boundary: every error they return
// carries a Kind, and callers branch on the Kind instead of inspecting
// concrete error types.
package errors

import "fmt"

// Kind classifies an error for the caller.
type Kind int

const (
	// KindValidation means the input failed shape/type rules before
	// reaching domain logic.
	KindValidation Kind = iota
	// KindInvariant means an entity constructor or mutator rejected a
	// structurally invalid value.
	KindInvariant
	// KindNotFound means the target id/slug/email does not exist.
	KindNotFound
	// KindConflict means a uniqueness rule was violated.
	KindConflict
	// KindUnexpected covers infrastructure failures and programming
	// errors. The message is generic; detail is logged, not returned.
	KindUnexpected
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindInvariant:
		return "invariant"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "unexpected"
	}
}

// Error is the single error type crossing the use-case boundary.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes the underlying cause, if any.
func (e *Error) Unwrap() error { return e.cause }

// Validation reports invalid input shape. The message names the first
// offending field only.
func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Invariant reports a structurally invalid value inside an entity.
func Invariant(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvariant, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing aggregate.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict reports a uniqueness violation.
func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Unexpected wraps an infrastructure failure with a generic, non-leaking
// message. The cause stays attached for logging.
func Unexpected(cause error) *Error {
	return &Error{Kind: KindUnexpected, Message: "unexpected error", cause: cause}
}

// KindOf returns the Kind of err, or KindUnexpected for foreign errors.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindUnexpected
}

// IsExpected reports whether err is an expected failure (validation,
// invariant, not-found, conflict) rather than an infrastructure one.
func IsExpected(err error) bool {
	return KindOf(err) != KindUnexpected
}
