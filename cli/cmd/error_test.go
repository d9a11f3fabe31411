package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"
)

func TestErrorSentinelMatching(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want *Error
	}{
		{"sentinel", ErrLoadEnv, ErrLoadEnv},
		{"wrapped", ErrLoadEnv.Wrap(cause), ErrLoadEnv},
		{"with_attrs", ErrBadDefine.With(slog.String("name", "2x")), ErrBadDefine},
		{
			"with_then_wrap",
			ErrLoadEnv.With(slog.String("file", "env.yaml")).Wrap(cause),
			ErrLoadEnv,
		},
		{"reformatted", fmt.Errorf("context: %w", ErrEvalExpr.Wrap(cause)), ErrEvalExpr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.want) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.want)
			}
		})
	}

	// Derived errors must not match unrelated sentinels.
	derived := ErrLoadEnv.Wrap(cause)
	if errors.Is(derived, ErrBadDefine) {
		t.Error("errors.Is matched an unrelated sentinel")
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")

	err := ErrEvalExpr.Wrap(cause)
	if !errors.Is(err, cause) {
		t.Error("wrapped cause not reachable through errors.Is")
	}

	if got := errors.Unwrap(err); got != cause {
		t.Errorf("Unwrap() = %v, want %v", got, cause)
	}
}

func TestErrorMessage(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"sentinel", ErrReadInput, "read input"},
		{"wrapped", ErrReadInput.Wrap(cause), "read input: boom"},
		{"empty", NewError(""), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
