package lang

import (
	"math"
	"strings"
	"testing"
)

func TestFormatResult(t *testing.T) {
	tests := []struct {
		val  float64
		want string
	}{
		{14, "14"},
		{2.5, "2.5"},
		{-0.111, "-0.111"},
		{1.0 / 3.0, "0.3333333333333333"},
		{1e21, "1e+21"},
		{math.Inf(1), "+Inf"},
		{math.Inf(-1), "-Inf"},
		{math.NaN(), "NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatResult(tt.val); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDiagnostic(t *testing.T) {
	env := BasicEnv()

	src := "2 + nope"

	_, err := Eval(env, src)
	if err == nil {
		t.Fatal("expected an error")
	}

	got := Diagnostic(src, err)

	want := "  2 + nope\n      ^"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDiagnosticNoPosition(t *testing.T) {
	env := NewEnv()

	_, err := Eval(env, "")
	if err == nil {
		t.Fatal("expected an error")
	}

	// ErrUnfinishedExpr carries no position.
	if got := Diagnostic("", err); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestDiagnosticTabs(t *testing.T) {
	env := BasicEnv()

	src := "\t2 + nope"

	_, err := Eval(env, src)
	if err == nil {
		t.Fatal("expected an error")
	}

	got := Diagnostic(src, err)
	if !strings.Contains(got, "\n  \t    ^") {
		t.Errorf("caret not aligned under token: %q", got)
	}
}
