package lang

import "log/slog"

// state tracks what the parser accepts next. Needed to disambiguate unary
// from binary `+`/`-` and to require the `(` after a function name.
type state int

const (
	// expectOperand accepts a value-like token.
	expectOperand state = iota
	// expectOperator accepts an operator-like token.
	expectOperator
	// expectParen accepts only the `(` opening a function call.
	// The function identifier is held pending until it arrives, so a feed
	// boundary may fall between a function name and its argument list.
	expectParen
)

// frame is a pending operator, parenthesis, or function call on the
// operator stack.
type frame struct {
	call  func(env *Env, args []float64) (float64, error)
	name  string
	pos   int
	pre   prec
	nargs int
}

// Expr evaluates one arithmetic expression, fed incrementally as text.
//
// An Expr is bound to exactly one environment, which it only reads.
// It accumulates state across Feed calls and is finalized exactly once by
// Result; after that the instance is spent, and both Feed and Result
// return ErrSpentExpr.
type Expr struct {
	env      *Env
	frames   []frame
	operands []float64

	// Function identifier awaiting its `(` while next == expectParen.
	pendingName string
	pendingPos  int

	next  state
	read  int // Runes consumed by previous feeds
	spent bool
}

// NewExpr creates an expression bound to an environment.
func NewExpr(env *Env) *Expr {
	return &Expr{env: env}
}

// Eval evaluates a complete expression in one shot.
func Eval(env *Env, text string) (float64, error) {
	x := NewExpr(env)
	if err := x.Feed(text); err != nil {
		return 0, err
	}

	return x.Result()
}

// Feed tokenizes and parses a chunk of input, leaving the expression ready
// for more input. The chunk must contain only whole tokens. Positions in
// returned errors are rune offsets into the concatenation of all chunks
// fed so far, and remain accurate in later feeds even after a feed errors.
func (e *Expr) Feed(text string) error {
	if e.spent {
		return ErrSpentExpr
	}

	s := scanner{src: text, base: e.read}

	// Track runes actually consumed so that positions stay accurate in
	// later feeds even when this one errors partway through the chunk.
	defer func() { e.read = s.base + s.pos }()

	for {
		tok, ok, err := s.next()
		if err != nil {
			return err
		}

		if !ok {
			return nil
		}

		if err := e.parse(tok); err != nil {
			return err
		}
	}
}

// Result finalizes the expression and returns its value.
// The expression is spent afterwards, whether or not an error is returned.
func (e *Expr) Result() (float64, error) {
	if e.spent {
		return 0, ErrSpentExpr
	}

	e.spent = true

	// Must end at a value-like token.
	switch e.next {
	case expectOperand:
		return 0, ErrUnfinishedExpr
	case expectParen:
		return 0, ErrBadArgument.At(e.pendingPos, e.pendingName)
	}

	// Reduce all pending operators; only unmatched barriers survive.
	if err := e.reduce(precOperators); err != nil {
		return 0, err
	}

	// Only unmatched barriers can remain on the stack now. A call frame is
	// reported by the name of the function left open.
	if top := e.top(); top != nil {
		if top.name != "(" {
			return 0, ErrUnterminatedCall.At(top.pos, top.name)
		}

		return 0, ErrUnbalancedParens
	}

	if len(e.operands) != 1 {
		return 0, ErrUnbalancedParens
	}

	return e.operands[0], nil
}

// parse dispatches one token on the current state.
func (e *Expr) parse(tok Token) error {
	switch e.next {
	case expectOperator:
		return e.parseOperator(tok)
	case expectParen:
		return e.parseParen(tok)
	default:
		return e.parseOperand(tok)
	}
}

func (e *Expr) parseOperand(tok Token) error {
	switch tok.Kind {
	case KindNumber:
		e.operands = append(e.operands, tok.Val)
		e.next = expectOperator

	case KindIdent:
		if val, ok := e.env.Constant(tok.Text); ok {
			e.operands = append(e.operands, val)
			e.next = expectOperator

			break
		}

		if _, ok := e.env.Function(tok.Text); ok {
			// Hold the call until its `(` arrives.
			e.pendingName = tok.Text
			e.pendingPos = tok.Pos
			e.next = expectParen

			break
		}

		return ErrUnknownName.At(tok.Pos, tok.Text)

	case KindOperator:
		d := tok.Op.desc()
		if !d.unary {
			return ErrDisallowedUnary.At(tok.Pos, tok.Text)
		}

		e.push(frame{
			call:  unaryCall(tok.Op),
			name:  tok.Text,
			pos:   tok.Pos,
			pre:   precUnary,
			nargs: 1,
		})
		e.next = expectOperand

	case KindOpen:
		e.push(frame{
			call:  groupCall,
			name:  "(",
			pos:   tok.Pos,
			pre:   precBarrier,
			nargs: 1,
		})
		e.next = expectOperand

	case KindClose:
		// Catches calls with an empty argument list, eg. `min()`.
		if top := e.top(); top != nil && top.pre == precBarrier && top.nargs == 1 {
			return ErrBadArgument.At(tok.Pos, top.name)
		}

		return ErrNotExpression.At(tok.Pos, tok.Text)

	default: // KindComma
		return ErrNotExpression.At(tok.Pos, tok.Text)
	}

	return nil
}

func (e *Expr) parseParen(tok Token) error {
	if tok.Kind != KindOpen {
		// A function name not followed by `(` is not a value.
		return ErrBadArgument.At(e.pendingPos, e.pendingName)
	}

	fn, _ := e.env.Function(e.pendingName)

	e.push(frame{
		call:  funcCall(e.pendingName, e.pendingPos, fn),
		name:  e.pendingName,
		pos:   e.pendingPos,
		pre:   precBarrier,
		nargs: 1,
	})
	e.next = expectOperand

	return nil
}

func (e *Expr) parseOperator(tok Token) error {
	switch tok.Kind {
	case KindNumber:
		return ErrExpectOperator.At(tok.Pos, tok.Text)

	case KindOperator:
		return e.pushOperator(tok.Op, tok.Pos)

	case KindIdent, KindOpen:
		// Juxtaposition: insert an implicit multiplication, then retry the
		// token as an operand.
		if err := e.pushOperator(opIMul, tok.Pos); err != nil {
			return err
		}

		return e.parseOperand(tok)

	case KindComma:
		// Reduce down to the enclosing call barrier, then record one more
		// pending argument.
		if err := e.reduce(precOperators); err != nil {
			return err
		}

		top := e.top()
		if top == nil {
			return ErrMisplacedComma.At(tok.Pos, tok.Text)
		}

		top.nargs++
		e.next = expectOperand

	default: // KindClose
		// Reduce down to the barrier, then apply it.
		if err := e.reduce(precOperators); err != nil {
			return err
		}

		if err := e.apply(); err != nil {
			return err
		}

		e.next = expectOperator
	}

	return nil
}

// pushOperator reduces by precedence and pushes a binary operator frame.
func (e *Expr) pushOperator(op Op, pos int) error {
	d := op.desc()

	floor := d.pre
	if d.right {
		floor = precPowRight
	}

	if err := e.reduce(floor); err != nil {
		return err
	}

	e.push(frame{
		call:  binaryCall(op),
		name:  d.text,
		pos:   pos,
		pre:   d.pre,
		nargs: 2,
	})
	e.next = expectOperand

	return nil
}

// reduce applies all frames with precedence >= floor.
func (e *Expr) reduce(floor prec) error {
	for len(e.frames) > 0 && e.frames[len(e.frames)-1].pre >= floor {
		if err := e.apply(); err != nil {
			return err
		}
	}

	return nil
}

// apply pops the top frame, drains its arguments from the operand stack,
// and pushes the resulting value.
func (e *Expr) apply() error {
	if len(e.frames) == 0 {
		return ErrUnbalancedParens
	}

	f := e.frames[len(e.frames)-1]
	e.frames = e.frames[:len(e.frames)-1]

	if f.nargs > len(e.operands) {
		// Indicates a logic error when maintaining nargs.
		return ErrInternal.At(f.pos, f.name)
	}

	mark := len(e.operands) - f.nargs

	val, err := f.call(e.env, e.operands[mark:])
	if err != nil {
		return err
	}

	e.operands = append(e.operands[:mark], val)

	return nil
}

func (e *Expr) push(f frame) {
	e.frames = append(e.frames, f)
}

// top returns the top of the operator stack, or nil when empty.
func (e *Expr) top() *frame {
	if len(e.frames) == 0 {
		return nil
	}

	return &e.frames[len(e.frames)-1]
}

// groupCall is the frame evaluation for a bare parenthesized group.
// More than one pending argument means a comma appeared outside a call,
// eg. `(1,2)`.
func groupCall(_ *Env, args []float64) (float64, error) {
	if len(args) != 1 {
		return 0, ErrBadArgument
	}

	return args[0], nil
}

// unaryCall returns the frame evaluation for a unary `+` or `-`.
func unaryCall(op Op) func(*Env, []float64) (float64, error) {
	if op == OpSub {
		return func(_ *Env, args []float64) (float64, error) {
			return -args[0], nil
		}
	}

	return func(_ *Env, args []float64) (float64, error) {
		return args[0], nil
	}
}

// binaryCall returns the frame evaluation for a binary operator.
func binaryCall(op Op) func(*Env, []float64) (float64, error) {
	apply := op.desc().apply

	return func(_ *Env, args []float64) (float64, error) {
		return apply(args[0], args[1]), nil
	}
}

// funcCall returns the frame evaluation for a registered function,
// validating the argument count against its declared arity.
func funcCall(name string, pos int, fn Func) func(*Env, []float64) (float64, error) {
	return func(_ *Env, args []float64) (float64, error) {
		if !fn.Arity.Accepts(len(args)) {
			return 0, ErrBadArgument.At(pos, name).With(slog.Int("args", len(args)))
		}

		return fn.Fn(args)
	}
}
