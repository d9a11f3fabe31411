package lang

import (
	"errors"
	"math"
	"testing"
)

// almostEqual compares values with a small relative tolerance, treating
// NaN as equal to NaN.
func almostEqual(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}

	if a == b {
		return true
	}

	return math.Abs(a-b) <= 1e-12*math.Max(math.Abs(a), math.Abs(b))
}

func TestEvalBasics(t *testing.T) {
	env := NewEnv()

	tests := []struct {
		src  string
		want float64
	}{
		{"2 + 3", 5},
		{"2-3*4", -10},
		{"2*3+4", 10},
		{"3^2-2", 7},
		{"2+---2", 0},
		{"-1", -1},
		{"2 + 3 * 4", 14},
		{"8 / 4 / 2", 1},
		{"2 ^ 3 ^ 2", 512},
		{"-3 + 4", 1},
		{"3 - -4", 7},
		{"7 % 3", 1},
		{"1.5 * 2", 3},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := Eval(env, tt.src)
			if err != nil {
				t.Fatalf("eval: %v", err)
			}

			if !almostEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvalParensAndCalls(t *testing.T) {
	env := BasicEnv()

	tests := []struct {
		src  string
		want float64
	}{
		{"(2 + 3) * 4", 20},
		{"2*(3+4)", 14},
		{"mul(2,add(3,4))", 14},
		{"sqrt(16)", 4},
		{"min(3, 1, 2)", 1},
		{"max(3, 1, 2)", 3},
		{"abs(-5)", 5},
		{"atan2(0, 1)", 0},
		{"clamp(5, 0, 1)", 1},
		{"((((7))))", 7},
		{"sub(5)", -5},
		{"mean(1, 2, 3, 4)", 2.5},
		{"median(3, 1, 2)", 2},
		{"log(8, 2)", 3},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := Eval(env, tt.src)
			if err != nil {
				t.Fatalf("eval: %v", err)
			}

			if !almostEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvalConstants(t *testing.T) {
	env := BasicEnv()

	tests := []struct {
		src  string
		want float64
	}{
		{"pi", math.Pi},
		{"tau", 2 * math.Pi},
		{"e", math.E},
		{"2pi", 2 * math.Pi},
		{"cos(pi)", -1},
		{"deg(pi)", 180},
		{"rad(180)", math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := Eval(env, tt.src)
			if err != nil {
				t.Fatalf("eval: %v", err)
			}

			if !almostEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvalImplicitMul(t *testing.T) {
	env := BasicEnv()
	env.SetAns(4)

	tests := []struct {
		src  string
		want float64
	}{
		// Implicit multiplication binds tighter than division.
		{"1/2ans", 1.0 / (2 * 4)},
		// But looser than exponentiation.
		{"2ans^2", 2 * 16},
		{"3(4+5)", 27},
		{"2sqrt(9)", 6},
		{"(2)(3)", 6},
		{"sqrt(4)sqrt(9)", 6},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := Eval(env, tt.src)
			if err != nil {
				t.Fatalf("eval: %v", err)
			}

			if !almostEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	env := BasicEnv()

	tests := []struct {
		src  string
		want error
	}{
		{"", ErrUnfinishedExpr},
		{"12 5", ErrExpectOperator},
		{",", ErrNotExpression},
		{")", ErrNotExpression},
		{"*2", ErrDisallowedUnary},
		{"/2", ErrDisallowedUnary},
		{"2 +", ErrUnfinishedExpr},
		{"!&", ErrInvalidToken},
		{"(2", ErrUnbalancedParens},
		{"(3))", ErrUnbalancedParens},
		{"1 + 2)", ErrUnbalancedParens},
		{"2,", ErrMisplacedComma},
		{"1, 2", ErrMisplacedComma},
		{"pi()", ErrBadArgument},
		{"min()", ErrBadArgument},
		{"atan2(1)", ErrBadArgument},
		{"atan2(1, 2, 3)", ErrBadArgument},
		{"sqrt", ErrBadArgument},
		{"sqrt 4", ErrBadArgument},
		{"hello(5)", ErrUnknownName},
		{"hi", ErrUnknownName},
		{"(1, 2)", ErrBadArgument},
		{"sqrt(,)", ErrNotExpression},
		{"sqrt(16", ErrUnterminatedCall},
		{"max(1, 2", ErrUnterminatedCall},
		{"sqrt((16", ErrUnbalancedParens},
		{"(sqrt(16", ErrUnterminatedCall},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := Eval(env, tt.src)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEvalErrorPosition(t *testing.T) {
	env := BasicEnv()

	_, err := Eval(env, "2 + nope")

	var ee *Error
	if !errors.As(err, &ee) {
		t.Fatalf("got %T, want *Error", err)
	}

	if ee.Pos() != 4 {
		t.Errorf("position: got %d, want 4", ee.Pos())
	}

	if ee.Text() != "nope" {
		t.Errorf("text: got %q, want %q", ee.Text(), "nope")
	}
}

func TestEvalUnterminatedCallPosition(t *testing.T) {
	env := BasicEnv()

	// The open call is reported by the name and offset of the function.
	_, err := Eval(env, "1 + sqrt(16")

	if !errors.Is(err, ErrUnterminatedCall) {
		t.Fatalf("got %v, want ErrUnterminatedCall", err)
	}

	var ee *Error
	if !errors.As(err, &ee) {
		t.Fatalf("got %T, want *Error", err)
	}

	if ee.Pos() != 4 {
		t.Errorf("position: got %d, want 4", ee.Pos())
	}

	if ee.Text() != "sqrt" {
		t.Errorf("text: got %q, want %q", ee.Text(), "sqrt")
	}
}

func TestEvalIEEESemantics(t *testing.T) {
	env := BasicEnv()

	tests := []struct {
		src    string
		verify func(float64) bool
	}{
		{"1/0", func(v float64) bool { return math.IsInf(v, 1) }},
		{"-1/0", func(v float64) bool { return math.IsInf(v, -1) }},
		{"0/0", math.IsNaN},
		{"sqrt(-1)", math.IsNaN},
		{"ln(-1)", math.IsNaN},
		{"1%0", math.IsNaN},
		{"inf", func(v float64) bool { return math.IsInf(v, 1) }},
		{"nan", math.IsNaN},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := Eval(env, tt.src)
			if err != nil {
				t.Fatalf("eval: %v", err)
			}

			if !tt.verify(got) {
				t.Errorf("got %v", got)
			}
		})
	}
}

func TestExprIncrementalFeed(t *testing.T) {
	env := BasicEnv()

	tests := []struct {
		name   string
		chunks []string
	}{
		{"operator boundary", []string{"2 +", "3"}},
		{"paren boundary", []string{"(2 + 3", ") * 4"}},
		{"call boundary", []string{"sqrt", "(16)"}},
		{"argument boundary", []string{"min(3,", "1, 2)"}},
		{"one rune at a time", []string{"2", "+", "3", "*", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			whole := ""
			for _, chunk := range tt.chunks {
				whole += chunk
			}

			want, wantErr := Eval(env, whole)

			x := NewExpr(env)
			for _, chunk := range tt.chunks {
				if err := x.Feed(chunk); err != nil {
					t.Fatalf("feed %q: %v", chunk, err)
				}
			}

			got, gotErr := x.Result()
			if (gotErr == nil) != (wantErr == nil) {
				t.Fatalf("error mismatch: got %v, want %v", gotErr, wantErr)
			}

			if !almostEqual(got, want) {
				t.Errorf("got %v, want %v", got, want)
			}
		})
	}
}

func TestExprSpent(t *testing.T) {
	env := NewEnv()

	x := NewExpr(env)
	if err := x.Feed("1 + 2"); err != nil {
		t.Fatalf("feed: %v", err)
	}

	if got, err := x.Result(); err != nil || got != 3 {
		t.Fatalf("result: got %v, %v", got, err)
	}

	if _, err := x.Result(); !errors.Is(err, ErrSpentExpr) {
		t.Errorf("second result: got %v, want ErrSpentExpr", err)
	}

	if err := x.Feed("4"); !errors.Is(err, ErrSpentExpr) {
		t.Errorf("feed after result: got %v, want ErrSpentExpr", err)
	}

	// Spent even when finalization failed.
	x = NewExpr(env)
	if _, err := x.Result(); !errors.Is(err, ErrUnfinishedExpr) {
		t.Fatalf("empty result: got %v", err)
	}

	if _, err := x.Result(); !errors.Is(err, ErrSpentExpr) {
		t.Errorf("result after failed result: got %v, want ErrSpentExpr", err)
	}
}

func TestExprSplitToken(t *testing.T) {
	// Tokens must not be split across feeds: "1." then "5" parses as two
	// numbers, which is rejected, not reassembled into 1.5.
	env := NewEnv()

	x := NewExpr(env)
	if err := x.Feed("1."); err != nil {
		t.Fatalf("feed: %v", err)
	}

	if err := x.Feed("5"); !errors.Is(err, ErrExpectOperator) {
		t.Errorf("got %v, want ErrExpectOperator", err)
	}
}

func TestExprFeedAfterError(t *testing.T) {
	// Positions stay cumulative across feeds even when a feed errors
	// partway through its chunk. The full input here is "1 1+ 2 2".
	env := NewEnv()
	x := NewExpr(env)

	pos := func(t *testing.T, err error) int {
		t.Helper()

		var ee *Error
		if !errors.As(err, &ee) {
			t.Fatalf("got %T, want *Error", err)
		}

		return ee.Pos()
	}

	err := x.Feed("1 1")
	if !errors.Is(err, ErrExpectOperator) {
		t.Fatalf("got %v, want ErrExpectOperator", err)
	}

	if got := pos(t, err); got != 2 {
		t.Errorf("first feed position: got %d, want 2", got)
	}

	err = x.Feed("+ 2 2")
	if !errors.Is(err, ErrExpectOperator) {
		t.Fatalf("got %v, want ErrExpectOperator", err)
	}

	if got := pos(t, err); got != 7 {
		t.Errorf("second feed position: got %d, want 7", got)
	}
}

func TestExprLastAnswer(t *testing.T) {
	env := BasicEnv()

	got, err := Eval(env, "2 + 2")
	if err != nil {
		t.Fatalf("eval: %v", err)
	}

	env.SetAns(got)

	got, err = Eval(env, "ans * 10")
	if err != nil {
		t.Fatalf("eval: %v", err)
	}

	if got != 40 {
		t.Errorf("got %v, want 40", got)
	}

	// Before the first SetAns, ans is undefined.
	fresh := BasicEnv()
	if _, err := Eval(fresh, "ans"); !errors.Is(err, ErrUnknownName) {
		t.Errorf("got %v, want ErrUnknownName", err)
	}
}

func TestExprCustomFunction(t *testing.T) {
	env := NewEnv()
	env.DefineFunc("strictsqrt", Func{
		Fn: func(args []float64) (float64, error) {
			if args[0] < 0 {
				return 0, ErrDomain
			}

			return math.Sqrt(args[0]), nil
		},
		Arity: Exactly(1),
	})

	if got, err := Eval(env, "strictsqrt(9)"); err != nil || got != 3 {
		t.Fatalf("got %v, %v", got, err)
	}

	if _, err := Eval(env, "strictsqrt(0-9)"); !errors.Is(err, ErrDomain) {
		t.Errorf("got %v, want ErrDomain", err)
	}
}

func TestExprSharedEnvSequential(t *testing.T) {
	// One environment across many expression instances; only SetAns
	// mutates it.
	env := BasicEnv()

	for i, src := range []string{"1+1", "2*2", "3^2"} {
		want := []float64{2, 4, 9}[i]

		got, err := Eval(env, src)
		if err != nil {
			t.Fatalf("eval %q: %v", src, err)
		}

		if got != want {
			t.Errorf("eval %q: got %v, want %v", src, got, want)
		}

		env.SetAns(got)

		if env.Ans() != got {
			t.Errorf("ans: got %v, want %v", env.Ans(), got)
		}
	}
}

func BenchmarkEval(b *testing.B) {
	env := BasicEnv()

	b.ReportAllocs()

	for b.Loop() {
		if _, err := Eval(env, "2*(3+4)-sqrt(16)^2"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExprFeed(b *testing.B) {
	env := BasicEnv()

	b.ReportAllocs()

	for b.Loop() {
		x := NewExpr(env)

		for _, chunk := range []string{"2 *", "(3 + 4)", "- 1"} {
			if err := x.Feed(chunk); err != nil {
				b.Fatal(err)
			}
		}

		if _, err := x.Result(); err != nil {
			b.Fatal(err)
		}
	}
}
