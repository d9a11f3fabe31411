package lang

import "slices"

// AnsName is the identifier bound to the last-answer slot.
const AnsName = "ans"

// Arity bounds the number of arguments a function accepts.
// A negative Max means no upper bound.
type Arity struct {
	Min int
	Max int
}

// Exactly returns an arity accepting exactly n arguments.
func Exactly(n int) Arity { return Arity{Min: n, Max: n} }

// AtLeast returns an arity accepting n or more arguments.
func AtLeast(n int) Arity { return Arity{Min: n, Max: -1} }

// Accepts reports whether a call with n arguments satisfies the arity.
func (a Arity) Accepts(n int) bool {
	return n >= a.Min && (a.Max < 0 || n <= a.Max)
}

// Func is a named callable registered in an environment.
// The argument count is validated against Arity before Fn is invoked, so Fn
// may assume it holds.
type Func struct {
	Fn    func(args []float64) (float64, error)
	Arity Arity
}

// Env holds the named bindings available to expressions: constants,
// functions, and the mutable last-answer slot.
//
// Lookups are pure and case-sensitive. The only mutations are Define,
// DefineFunc, and SetAns; concurrent use from multiple goroutines requires
// external synchronization.
type Env struct {
	funcs map[string]Func
	vars  map[string]float64
}

// NewEnv creates an environment with no bindings.
func NewEnv() *Env {
	return &Env{
		funcs: make(map[string]Func),
		vars:  make(map[string]float64),
	}
}

// BasicEnv creates an environment pre-loaded with the builtin constants
// and functions.
func BasicEnv() *Env {
	env := NewEnv()

	for name, val := range builtinConsts {
		env.Define(name, val)
	}

	for name, fn := range builtinFuncs {
		env.DefineFunc(name, fn)
	}

	return env
}

// Define binds name to a constant value, replacing any previous constant
// of the same name.
func (e *Env) Define(name string, val float64) {
	e.vars[name] = val
}

// DefineFunc binds name to a function, replacing any previous function of
// the same name.
func (e *Env) DefineFunc(name string, fn Func) {
	e.funcs[name] = fn
}

// Constant resolves a named constant, including the last-answer slot.
func (e *Env) Constant(name string) (float64, bool) {
	val, ok := e.vars[name]

	return val, ok
}

// Function resolves a named function.
func (e *Env) Function(name string) (Func, bool) {
	fn, ok := e.funcs[name]

	return fn, ok
}

// Ans returns the last-answer slot, or zero when no answer has been
// recorded. Note that the ans identifier is undefined, not zero, until the
// first SetAns.
func (e *Env) Ans() float64 {
	return e.vars[AnsName]
}

// SetAns records the result of a completed evaluation in the last-answer
// slot.
func (e *Env) SetAns(val float64) {
	e.vars[AnsName] = val
}

// Names returns all bound constant and function names in sorted order.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.vars)+len(e.funcs))

	for name := range e.vars {
		names = append(names, name)
	}

	for name := range e.funcs {
		names = append(names, name)
	}

	slices.Sort(names)

	return slices.Compact(names)
}
