package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOfUnwrapsChain(t *testing.T) {
	base := E(KindState, "Certificate is not available for claiming")
	wrapped := Wrap(base, "claim certificate")

	if got := KindOf(wrapped); got != KindState {
		t.Fatalf("KindOf() = %q, want %q", got, KindState)
	}
	msg, ok := Message(wrapped)
	if !ok || msg != "Certificate is not available for claiming" {
		t.Fatalf("Message() = %q, %v", msg, ok)
	}
	if !errors.Is(wrapped, E(KindState, "Certificate is not available for claiming")) {
		t.Fatalf("errors.Is() = false for equal failure")
	}
}

func TestKindOfInfrastructureError(t *testing.T) {
	err := fmt.Errorf("query artwork: %w", errors.New("disk I/O error"))
	if got := KindOf(err); got != KindInternal {
		t.Fatalf("KindOf() = %q, want internal", got)
	}
	if _, ok := Message(err); ok {
		t.Fatalf("Message() ok = true for infrastructure error")
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindUnauthorized: http.StatusUnauthorized,
		KindForbidden:    http.StatusForbidden,
		KindNotFound:     http.StatusNotFound,
		KindState:        http.StatusConflict,
		KindConflict:     http.StatusConflict,
		KindFatal:        http.StatusServiceUnavailable,
		KindInternal:     http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := HTTPStatus(kind); got != want {
			t.Fatalf("HTTPStatus(%q) = %d, want %d", kind, got, want)
		}
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "noop") != nil {
		t.Fatalf("Wrap(nil) != nil")
	}
	if Wrapf(nil, "noop %d", 1) != nil {
		t.Fatalf("Wrapf(nil) != nil")
	}
}
