// Package domainerrors provides coded errors for the ledger's domain layer.
//
// Services translate infrastructure sentinels (pkg/platform/sentinel) into
// these coded errors; the transport layer maps codes onto HTTP statuses.
// Every rejection is synchronous and leaves state unchanged, so a code plus a
// human-readable message is all a caller needs to retry with corrected input.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain failure.
type Code string

const (
	// CodeInvalidInput marks empty, zero, or over-length fields.
	CodeInvalidInput Code = "invalid_input"
	// CodeBadRequest marks malformed request envelopes (undecodable JSON etc).
	CodeBadRequest Code = "bad_request"
	// CodeNotFound marks an unknown document or request id.
	CodeNotFound Code = "not_found"
	// CodeAlreadyExists marks a duplicate document derivation.
	CodeAlreadyExists Code = "already_exists"
	// CodeAlreadyFulfilled marks a double-completion attempt on a request.
	CodeAlreadyFulfilled Code = "already_fulfilled"
	// CodeUnauthorized marks a caller mismatch against the recorded
	// owner, requester, or oracle identity.
	CodeUnauthorized Code = "unauthorized"
	// CodeUnknownCorrelation marks an oracle response with no matching
	// local request.
	CodeUnknownCorrelation Code = "unknown_correlation"
	// CodeTimeout marks a cancelled or deadline-exceeded unit of work.
	CodeTimeout Code = "timeout"
	// CodeInternal marks unexpected infrastructure failures.
	CodeInternal Code = "internal"
)

// Error is a coded domain error. Construct via New or Wrap.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a coded error with a message.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error, preserving the
// cause for errors.Is/As inspection.
func Wrap(err error, code Code, message string) error {
	return &Error{Code: code, Message: message, cause: err}
}

// Is reports whether err (or anything it wraps) carries the given code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// HasCode is an alias of Is kept for call-site readability in tests.
func HasCode(err error, code Code) bool { return Is(err, code) }

// CodeOf extracts the code from err, defaulting to CodeInternal for uncoded
// errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
