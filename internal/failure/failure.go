// Package failure defines the error kinds reported by the redemption pipeline.
package failure

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure so callers can branch without parsing text.
type Kind string

const (
	// KindArity reports a wrong number of input fields.
	KindArity Kind = "arity"
	// KindFormat reports malformed text, including a message of the wrong size.
	KindFormat Kind = "format"
	// KindInvalidTransaction reports a previous transaction that fails structural checks.
	KindInvalidTransaction Kind = "invalid_transaction"
	// KindInvalidIndex reports an unparsable output index.
	KindInvalidIndex Kind = "invalid_index"
	// KindInvalidKey reports a private key that cannot be used.
	KindInvalidKey Kind = "invalid_key"
	// KindReferenceMismatch reports an outpoint that points at another transaction.
	KindReferenceMismatch Kind = "reference_mismatch"
	// KindNoSuchOutput reports an outpoint index past the last output.
	KindNoSuchOutput Kind = "no_such_output"
	// KindUnrecognizedScript reports a locking script without a single owner address.
	KindUnrecognizedScript Kind = "unrecognized_script"
	// KindKeyMismatch reports a key that does not own the redeemed output.
	KindKeyMismatch Kind = "key_mismatch"
	// KindDecode reports a malformed compact target.
	KindDecode Kind = "decode"
)

// Error is a classified pipeline failure.
type Error struct {
	Kind      Kind
	Operation string
	Message   string
	Cause     error
}

// Error returns the human-readable message, followed by the cause when present.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a failure of the given kind.
func New(kind Kind, operation, message string) *Error {
	return &Error{
		Kind:      kind,
		Operation: operation,
		Message:   message,
	}
}

// Wrap classifies err. A nil err yields nil.
func Wrap(err error, kind Kind, operation, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Kind:      kind,
		Operation: operation,
		Message:   message,
		Cause:     err,
	}
}

// KindOf returns the kind of the outermost classified failure in err's chain,
// or "" when err carries none.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message returns the message of the outermost classified failure without its
// cause, or err.Error() for unclassified errors.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Message
	}
	return err.Error()
}
