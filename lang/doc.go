// Package lang implements the arithmetic expression engine.
//
// The engine is a shunting-yard variant that consumes tokens incrementally.
// An [Expr] is bound to an [Env] holding named constants and functions,
// accepts any number of [Expr.Feed] calls, and is finalized exactly once
// with [Expr.Result]. Pending operators and computed values live on two
// explicit stacks, so partial input leaves the engine in a consistent,
// resumable state between feeds.
//
// Each Feed call must contain only whole tokens. A token split across two
// calls (feeding "1." then "5") is not reassembled; it parses as two
// separate tokens and fails or yields a different value.
//
// Arithmetic follows IEEE-754 float64 semantics throughout: division by
// zero produces an infinity, 0/0 and sqrt(-1) produce NaN. The engine never
// raises a domain error on its own; [ErrDomain] exists for caller-registered
// functions that choose strict semantics.
package lang
