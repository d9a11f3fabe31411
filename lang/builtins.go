package lang

import (
	"math"
	"slices"
)

// builtinConsts are the constants registered by BasicEnv.
var builtinConsts = map[string]float64{
	"pi":  math.Pi,
	"tau": 2 * math.Pi,
	"e":   math.E,
	"inf": math.Inf(1),
	"nan": math.NaN(),
}

// builtinFuncs are the functions registered by BasicEnv.
// All of them follow IEEE-754 semantics; none returns ErrDomain.
var builtinFuncs = map[string]Func{
	"id":   unary(func(x float64) float64 { return x }),
	"sign": unary(sign),

	"add": {Fn: sum, Arity: AtLeast(1)},
	"sub": {Fn: diff, Arity: Arity{Min: 1, Max: 2}},
	"mul": {Fn: product, Arity: AtLeast(2)},
	"div": binary(func(a, b float64) float64 { return a / b }),
	"rem": binary(math.Mod),
	"pow": binary(math.Pow),

	"fract": unary(func(x float64) float64 { return x - math.Trunc(x) }),
	"floor": unary(math.Floor),
	"ceil":  unary(math.Ceil),
	"trunc": unary(math.Trunc),
	"round": unary(math.Round),
	"abs":   unary(math.Abs),
	"sqr":   unary(func(x float64) float64 { return x * x }),
	"cube":  unary(func(x float64) float64 { return x * x * x }),
	"sqrt":  unary(math.Sqrt),
	"cbrt":  unary(math.Cbrt),

	"isinf": unary(func(x float64) float64 { return truth(math.IsInf(x, 0)) }),
	"isnan": unary(func(x float64) float64 { return truth(math.IsNaN(x)) }),

	"min":   {Fn: minOf, Arity: AtLeast(1)},
	"max":   {Fn: maxOf, Arity: AtLeast(1)},
	"clamp": {Fn: clamp, Arity: Exactly(3)},

	"eq": binary(func(a, b float64) float64 { return truth(a == b) }),
	"ne": binary(func(a, b float64) float64 { return truth(a != b) }),
	"lt": binary(func(a, b float64) float64 { return truth(a < b) }),
	"le": binary(func(a, b float64) float64 { return truth(a <= b) }),
	"gt": binary(func(a, b float64) float64 { return truth(a > b) }),
	"ge": binary(func(a, b float64) float64 { return truth(a >= b) }),

	"all": {Fn: all, Arity: AtLeast(1)},
	"any": {Fn: anyOf, Arity: AtLeast(1)},
	"not": unary(func(x float64) float64 { return truth(x == 0) }),

	"select":        {Fn: selectOf, Arity: Exactly(3)},
	"step":          binary(step),
	"smoothstep":    {Fn: smoothstep, Arity: Exactly(3)},
	"smootherstep":  {Fn: smootherstep, Arity: Exactly(3)},

	"exp":   unary(math.Exp),
	"exp2":  unary(math.Exp2),
	"expm1": unary(math.Expm1),
	"ln":    unary(math.Log),
	"log":   binary(func(x, base float64) float64 { return math.Log(x) / math.Log(base) }),
	"log2":  unary(math.Log2),
	"log10": unary(math.Log10),
	"ln1p":  unary(math.Log1p),

	"mean":   {Fn: mean, Arity: AtLeast(1)},
	"median": {Fn: median, Arity: AtLeast(1)},
	"range":  {Fn: spread, Arity: AtLeast(1)},
	"var":    {Fn: variance, Arity: AtLeast(1)},
	"stdev":  {Fn: stdev, Arity: AtLeast(1)},

	"deg": unary(func(x float64) float64 { return x * (180 / math.Pi) }),
	"rad": unary(func(x float64) float64 { return x * (math.Pi / 180) }),

	"sin":   unary(math.Sin),
	"cos":   unary(math.Cos),
	"tan":   unary(math.Tan),
	"asin":  unary(math.Asin),
	"acos":  unary(math.Acos),
	"atan":  unary(math.Atan),
	"atan2": binary(math.Atan2),

	"sinh":  unary(math.Sinh),
	"cosh":  unary(math.Cosh),
	"tanh":  unary(math.Tanh),
	"asinh": unary(math.Asinh),
	"acosh": unary(math.Acosh),
	"atanh": unary(math.Atanh),
}

// unary wraps a one-argument math function as a Func.
func unary(fn func(float64) float64) Func {
	return Func{
		Fn:    func(args []float64) (float64, error) { return fn(args[0]), nil },
		Arity: Exactly(1),
	}
}

// binary wraps a two-argument math function as a Func.
func binary(fn func(a, b float64) float64) Func {
	return Func{
		Fn:    func(args []float64) (float64, error) { return fn(args[0], args[1]), nil },
		Arity: Exactly(2),
	}
}

// truth maps a boolean to 1 or 0.
func truth(b bool) float64 {
	if b {
		return 1
	}

	return 0
}

// sign returns 1 for positive values, -1 for negative values, and the
// value itself for zeroes and NaN.
func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return x
	}
}

func sum(args []float64) (float64, error) {
	acc := 0.0
	for _, x := range args {
		acc += x
	}

	return acc, nil
}

// diff is binary subtraction, or negation when given one argument.
func diff(args []float64) (float64, error) {
	if len(args) == 1 {
		return -args[0], nil
	}

	return args[0] - args[1], nil
}

func product(args []float64) (float64, error) {
	acc := 1.0
	for _, x := range args {
		acc *= x
	}

	return acc, nil
}

func minOf(args []float64) (float64, error) {
	acc := args[0]
	for _, x := range args[1:] {
		acc = math.Min(acc, x)
	}

	return acc, nil
}

func maxOf(args []float64) (float64, error) {
	acc := args[0]
	for _, x := range args[1:] {
		acc = math.Max(acc, x)
	}

	return acc, nil
}

func clamp(args []float64) (float64, error) {
	return math.Min(math.Max(args[0], args[1]), args[2]), nil
}

func all(args []float64) (float64, error) {
	for _, x := range args {
		if x == 0 {
			return 0, nil
		}
	}

	return 1, nil
}

func anyOf(args []float64) (float64, error) {
	for _, x := range args {
		if x != 0 {
			return 1, nil
		}
	}

	return 0, nil
}

// selectOf returns the second argument when the first is nonzero, the
// third otherwise.
func selectOf(args []float64) (float64, error) {
	if args[0] != 0 {
		return args[1], nil
	}

	return args[2], nil
}

func step(edge, x float64) float64 {
	if x < edge {
		return 0
	}

	return 1
}

func smoothstep(args []float64) (float64, error) {
	t := unlerp(args[0], args[1], args[2])

	return t * t * (3 - 2*t), nil
}

func smootherstep(args []float64) (float64, error) {
	t := unlerp(args[0], args[1], args[2])

	return t * t * t * (t*(t*6-15) + 10), nil
}

// unlerp maps x into [0, 1] relative to the edges e0 and e1.
func unlerp(e0, e1, x float64) float64 {
	return math.Min(math.Max((x-e0)/(e1-e0), 0), 1)
}

func mean(args []float64) (float64, error) {
	acc, _ := sum(args)

	return acc / float64(len(args)), nil
}

func median(args []float64) (float64, error) {
	vals := slices.Clone(args)
	slices.Sort(vals)

	n := len(vals)
	if n%2 == 0 {
		return (vals[n/2-1] + vals[n/2]) / 2, nil
	}

	return vals[n/2], nil
}

// spread returns the difference between the largest and smallest argument.
func spread(args []float64) (float64, error) {
	lo, _ := minOf(args)
	hi, _ := maxOf(args)

	return hi - lo, nil
}

func variance(args []float64) (float64, error) {
	m, _ := mean(args)

	acc := 0.0
	for _, x := range args {
		acc += (x - m) * (x - m)
	}

	return acc / float64(len(args)), nil
}

func stdev(args []float64) (float64, error) {
	v, _ := variance(args)

	return math.Sqrt(v), nil
}
