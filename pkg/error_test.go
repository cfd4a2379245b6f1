package pkg

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"
)

func TestError_Message(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"msg_only", NewError("bad thing"), "bad thing"},
		{"msg_and_cause", NewError("bad thing").Wrap(cause), "bad thing: boom"},
		{"cause_only", WrapError(cause), "boom"},
		{"empty", &Error{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_IsSentinel(t *testing.T) {
	errA := NewError("a")
	errB := NewError("b")

	derived := errA.With(slog.String("k", "v")).Wrap(errors.New("cause"))

	if !errors.Is(derived, errA) {
		t.Error("derived error should match its sentinel")
	}

	if errors.Is(derived, errB) {
		t.Error("derived error should not match an unrelated sentinel")
	}

	wrapped := fmt.Errorf("outer: %w", derived)
	if !errors.Is(wrapped, errA) {
		t.Error("fmt-wrapped error should still match its sentinel")
	}
}

func TestError_WithIsImmutable(t *testing.T) {
	base := NewError("base")
	one := base.With(slog.Int("n", 1))
	two := one.With(slog.Int("m", 2))

	if len(base.Attrs()) != 0 {
		t.Errorf("base attrs mutated: %v", base.Attrs())
	}

	if len(one.Attrs()) != 1 {
		t.Errorf("one attrs = %d, want 1", len(one.Attrs()))
	}

	if len(two.Attrs()) != 2 {
		t.Errorf("two attrs = %d, want 2", len(two.Attrs()))
	}
}

func TestWrapError_ReturnsExisting(t *testing.T) {
	orig := NewError("orig").With(slog.String("k", "v"))

	if got := WrapError(fmt.Errorf("ctx: %w", orig)); got != orig {
		t.Errorf("WrapError did not return the wrapped *Error")
	}
}

func TestError_LogValue(t *testing.T) {
	err := NewError("failed").Wrap(errors.New("cause")).With(slog.String("rule", "digit"))

	v := err.LogValue()
	if v.Kind() != slog.KindGroup {
		t.Fatalf("LogValue kind = %v, want group", v.Kind())
	}

	keys := map[string]string{}
	for _, a := range v.Group() {
		keys[a.Key] = a.Value.String()
	}

	want := map[string]string{"error": "failed", "cause": "cause", "rule": "digit"}
	for k, w := range want {
		if keys[k] != w {
			t.Errorf("attr %q = %q, want %q", k, keys[k], w)
		}
	}
}

func TestVersion(t *testing.T) {
	if Version() == "" {
		t.Error("Version should not be empty")
	}
}
