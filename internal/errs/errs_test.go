package errs

import (
	"errors"
	"log/slog"
	"testing"
)

func groupAttrs(v slog.Value) map[string]slog.Value {
	out := make(map[string]slog.Value)
	for _, attr := range v.Group() {
		out[attr.Key] = attr.Value
	}
	return out
}

func TestWithStackCapturesOnce(t *testing.T) {
	root := WithStack(errors.New("disk full"))
	again := WithStack(Wrap(root, "save artwork"))

	var first, second *StackError
	if !errors.As(root, &first) || !errors.As(again, &second) {
		t.Fatalf("expected StackError in both chains")
	}
	if first != second {
		t.Fatalf("WithStack() captured a second stack")
	}
}

func TestLoggableFields(t *testing.T) {
	attrs := groupAttrs(Loggable(Wrap(E(KindForbidden, "Only artists can claim certificates"), "claim certificate")).LogValue())
	if attrs["kind"].String() != string(KindForbidden) {
		t.Fatalf("kind attr = %v", attrs["kind"])
	}
	if _, ok := attrs["stack"]; ok {
		t.Fatalf("unexpected stack attr without WithStack")
	}

	attrs = groupAttrs(Loggable(WithStack(errors.New("connection reset"))).LogValue())
	if _, ok := attrs["kind"]; ok {
		t.Fatalf("infrastructure errors must not carry a kind attr")
	}
	if attrs["stack"].String() == "" {
		t.Fatalf("stack attr missing")
	}
	if chain, ok := attrs["chain"].Any().([]string); !ok || len(chain) != 2 {
		t.Fatalf("chain attr = %v", attrs["chain"])
	}
}
