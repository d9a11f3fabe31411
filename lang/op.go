package lang

import "math"

// Op enumerates the arithmetic operators recognized in expression text.
type Op int

const (
	// OpAdd is `+`. Also doubles as unary plus, disambiguated by the parser.
	OpAdd Op = iota
	// OpSub is `-`. Also doubles as unary negation, disambiguated by the parser.
	OpSub
	// OpMul is `*`.
	OpMul
	// OpDiv is `/`.
	OpDiv
	// OpRem is `%`.
	OpRem
	// OpPow is `^`, the only right-associative operator.
	OpPow
	// opIMul is implicit multiplication, inserted on the fly by the parser
	// for juxtaposition such as `2pi` or `3(4+5)`.
	opIMul
)

// prec orders operator and call-frame binding strength.
// Reduction pops frames whose precedence is >= the incoming level, which is
// correct for left associativity; right-associative operators reduce at
// precPowRight instead, one level above their own.
type prec int

const (
	// precBarrier marks an open parenthesis or function call.
	// Only an explicit `)` pops past it.
	precBarrier prec = iota + 1
	// precOperators is the floor for reducing all pending operators while
	// leaving barriers in place.
	precOperators
	precAddSub
	precMulDiv
	// precIMul binds implicit multiplication tighter than division, so
	// `1/2ans` evaluates as `1/(2*ans)`, but looser than exponentiation,
	// so `2ans^3` evaluates as `2*(ans^3)`.
	precIMul
	precPow
	// precPowRight keeps `^` right-associative.
	precPowRight
	precUnary
)

// opDesc describes an operator's symbol, evaluation, precedence,
// associativity, and whether it may be used as a unary operator.
type opDesc struct {
	text  string
	apply func(a, b float64) float64
	pre   prec
	right bool
	unary bool
}

var opTable = [...]opDesc{
	OpAdd:  {text: "+", apply: func(a, b float64) float64 { return a + b }, pre: precAddSub, unary: true},
	OpSub:  {text: "-", apply: func(a, b float64) float64 { return a - b }, pre: precAddSub, unary: true},
	OpMul:  {text: "*", apply: func(a, b float64) float64 { return a * b }, pre: precMulDiv},
	OpDiv:  {text: "/", apply: func(a, b float64) float64 { return a / b }, pre: precMulDiv},
	OpRem:  {text: "%", apply: math.Mod, pre: precMulDiv},
	OpPow:  {text: "^", apply: math.Pow, pre: precPow, right: true},
	opIMul: {text: "*", apply: func(a, b float64) float64 { return a * b }, pre: precIMul},
}

// desc returns the descriptor for an operator.
func (op Op) desc() *opDesc { return &opTable[op] }

// lookupOp maps a single operator rune to its Op.
func lookupOp(r rune) (Op, bool) {
	switch r {
	case '+':
		return OpAdd, true
	case '-':
		return OpSub, true
	case '*':
		return OpMul, true
	case '/':
		return OpDiv, true
	case '%':
		return OpRem, true
	case '^':
		return OpPow, true
	default:
		return 0, false
	}
}
