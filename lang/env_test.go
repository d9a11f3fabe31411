package lang

import (
	"math"
	"slices"
	"testing"
)

func TestEnvDefine(t *testing.T) {
	env := NewEnv()

	if _, ok := env.Constant("x"); ok {
		t.Error("empty environment resolved a constant")
	}

	env.Define("x", 12.4)

	val, ok := env.Constant("x")
	if !ok || val != 12.4 {
		t.Errorf("got %v, %v", val, ok)
	}

	// Redefinition replaces the binding.
	env.Define("x", 1)

	if val, _ := env.Constant("x"); val != 1 {
		t.Errorf("got %v, want 1", val)
	}
}

func TestEnvDefineFunc(t *testing.T) {
	env := NewEnv()

	if _, ok := env.Function("twice"); ok {
		t.Error("empty environment resolved a function")
	}

	env.DefineFunc("twice", Func{
		Fn:    func(args []float64) (float64, error) { return 2 * args[0], nil },
		Arity: Exactly(1),
	})

	if got, err := Eval(env, "twice(21)"); err != nil || got != 42 {
		t.Errorf("got %v, %v", got, err)
	}
}

func TestEnvAns(t *testing.T) {
	env := NewEnv()

	if env.Ans() != 0 {
		t.Errorf("fresh ans: got %v, want 0", env.Ans())
	}

	env.SetAns(12.4)

	if env.Ans() != 12.4 {
		t.Errorf("got %v, want 12.4", env.Ans())
	}

	if val, ok := env.Constant(AnsName); !ok || val != 12.4 {
		t.Errorf("constant lookup: got %v, %v", val, ok)
	}
}

func TestEnvLookupIsPure(t *testing.T) {
	env := BasicEnv()

	before := len(env.Names())

	for range 3 {
		if _, ok := env.Constant("pi"); !ok {
			t.Fatal("pi not found")
		}

		if _, ok := env.Function("sqrt"); !ok {
			t.Fatal("sqrt not found")
		}

		if _, ok := env.Constant("no such name"); ok {
			t.Fatal("resolved a missing name")
		}
	}

	if after := len(env.Names()); after != before {
		t.Errorf("lookups mutated the environment: %d != %d", after, before)
	}
}

func TestEnvBasicDefaults(t *testing.T) {
	env := BasicEnv()

	consts := map[string]float64{
		"pi":  math.Pi,
		"tau": 2 * math.Pi,
		"e":   math.E,
	}

	for name, want := range consts {
		val, ok := env.Constant(name)
		if !ok || val != want {
			t.Errorf("constant %q: got %v, %v", name, val, ok)
		}
	}

	for _, name := range []string{"sqrt", "sin", "cos", "abs", "min", "max", "atan2"} {
		if _, ok := env.Function(name); !ok {
			t.Errorf("function %q not registered", name)
		}
	}
}

func TestEnvNames(t *testing.T) {
	env := NewEnv()
	env.Define("beta", 2)
	env.Define("alpha", 1)
	env.DefineFunc("gamma", Func{
		Fn:    func(args []float64) (float64, error) { return args[0], nil },
		Arity: Exactly(1),
	})

	got := env.Names()
	want := []string{"alpha", "beta", "gamma"}

	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestArityAccepts(t *testing.T) {
	tests := []struct {
		arity Arity
		n     int
		want  bool
	}{
		{Exactly(2), 2, true},
		{Exactly(2), 1, false},
		{Exactly(2), 3, false},
		{AtLeast(1), 1, true},
		{AtLeast(1), 100, true},
		{AtLeast(1), 0, false},
		{Arity{Min: 1, Max: 2}, 1, true},
		{Arity{Min: 1, Max: 2}, 2, true},
		{Arity{Min: 1, Max: 2}, 3, false},
	}

	for _, tt := range tests {
		if got := tt.arity.Accepts(tt.n); got != tt.want {
			t.Errorf("%+v.Accepts(%d): got %v, want %v", tt.arity, tt.n, got, tt.want)
		}
	}
}
