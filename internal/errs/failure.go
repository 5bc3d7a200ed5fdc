package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a business failure. Anything that is not a *Failure is KindInternal.
type Kind string

const (
	KindInternal     Kind = "internal"
	KindInvalid      Kind = "invalid"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindState        Kind = "state"
	KindConflict     Kind = "conflict"
	KindFatal        Kind = "fatal"
)

// Failure is an expected business-logic outcome with a message safe to show to the caller.
type Failure struct {
	Kind    Kind
	Message string
	Cause   error
}

func (f *Failure) Error() string {
	if f.Cause != nil {
		return fmt.Sprintf("%s: %v", f.Message, f.Cause)
	}
	return f.Message
}

func (f *Failure) Unwrap() error { return f.Cause }

// Is matches another *Failure with the same kind and message, so sentinel failures work with errors.Is.
func (f *Failure) Is(target error) bool {
	var t *Failure
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == f.Kind && t.Message == f.Message
}

// E builds a failure of the given kind.
func E(kind Kind, msg string) *Failure {
	return &Failure{Kind: kind, Message: msg}
}

// Ef builds a failure of the given kind with a formatted message.
func Ef(kind Kind, format string, args ...any) *Failure {
	return &Failure{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithCause returns a copy of f carrying cause.
func (f *Failure) WithCause(cause error) *Failure {
	return &Failure{Kind: f.Kind, Message: f.Message, Cause: cause}
}

// KindOf reports the kind of the first *Failure in the chain.
func KindOf(err error) Kind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return KindInternal
}

// Message returns the caller-facing text of the first *Failure in the chain.
// ok is false for infrastructure errors, whose text must not leak.
func Message(err error) (msg string, ok bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f.Message, true
	}
	return "", false
}

// HTTPStatus maps a kind to the status code used by the HTTP boundary.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindInvalid:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindState, KindConflict:
		return http.StatusConflict
	case KindFatal:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
