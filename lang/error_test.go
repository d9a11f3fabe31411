package lang

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrInvalidToken, "invalid token"},
		{ErrUnknownName.At(4, "nope"), `unknown name "nope" at offset 4`},
		{ErrBadArgument.At(0, "atan2"), `bad argument count "atan2" at offset 0`},
		{ErrInvalidToken.Wrap(errors.New("boom")), "invalid token: boom"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestErrorIs(t *testing.T) {
	derived := ErrUnknownName.At(4, "nope")

	if !errors.Is(derived, ErrUnknownName) {
		t.Error("derived error does not match its sentinel")
	}

	if errors.Is(derived, ErrInvalidToken) {
		t.Error("derived error matches the wrong sentinel")
	}

	// Attributes and wrapping preserve the kind.
	if !errors.Is(derived.With(slog.Int("args", 1)), ErrUnknownName) {
		t.Error("With lost the error kind")
	}

	if !errors.Is(derived.Wrap(errors.New("cause")), ErrUnknownName) {
		t.Error("Wrap lost the error kind")
	}

	if !errors.Is(fmt.Errorf("outer: %w", derived), ErrUnknownName) {
		t.Error("fmt wrapping lost the error kind")
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("cause")
	err := ErrInvalidToken.Wrap(cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
}

func TestErrorLogValue(t *testing.T) {
	err := ErrUnknownName.At(4, "nope").With(slog.Int("args", 1))

	val := err.LogValue()
	if val.Kind() != slog.KindGroup {
		t.Fatalf("got %v, want group", val.Kind())
	}

	keys := make(map[string]bool)
	for _, attr := range val.Group() {
		keys[attr.Key] = true
	}

	for _, key := range []string{"error", "token", "offset", "args"} {
		if !keys[key] {
			t.Errorf("missing attribute %q", key)
		}
	}
}
