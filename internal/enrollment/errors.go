package enrollment

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidInput
	KindNotFound
	KindAlreadyEnrolled
	KindCapacityExceeded
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindNotFound:
		return "not_found"
	case KindAlreadyEnrolled:
		return "already_enrolled"
	case KindCapacityExceeded:
		return "capacity_exceeded"
	case KindStorage:
		return "storage_error"
	default:
		return "unknown"
	}
}

// Error is returned by every Service operation. Message is safe to show to
// clients; Err keeps the underlying cause for logs.
type Error struct {
	Kind      Kind
	Message   string
	Retryable bool
	Err       error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches any *Error of the same kind, so the Err* values below work with
// errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrInvalidInput     = &Error{Kind: KindInvalidInput}
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrAlreadyEnrolled  = &Error{Kind: KindAlreadyEnrolled}
	ErrCapacityExceeded = &Error{Kind: KindCapacityExceeded}
	ErrStorage          = &Error{Kind: KindStorage}
)

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func NewError(kind Kind, message string) *Error {
	return newError(kind, message)
}

func storageError(op string, err error) *Error {
	return &Error{Kind: KindStorage, Message: "storage failure during " + op, Err: err}
}

// KindOf returns the kind of err, KindStorage for errors that did not come
// from this package, and KindUnknown for nil.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorage
}

// PublicMessage returns the client-facing text for err.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "internal storage error"
}
