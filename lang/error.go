package lang

import (
	"log/slog"
	"strconv"
	"strings"
)

// Predefined error kinds (sentinel values).
//
// Errors produced while parsing carry the rune offset and text of the
// offending token; match them against these sentinels with [errors.Is].
var (
	ErrInvalidToken     = NewError("invalid token")
	ErrUnknownName      = NewError("unknown name")
	ErrDisallowedUnary  = NewError("not a unary operator")
	ErrExpectOperator   = NewError("expected an operator")
	ErrNotExpression    = NewError("not an expression")
	ErrUnfinishedExpr   = NewError("unfinished expression")
	ErrUnbalancedParens = NewError("unbalanced parentheses")
	ErrUnterminatedCall = NewError("unterminated function call")
	ErrMisplacedComma   = NewError("misplaced comma")
	ErrBadArgument      = NewError("bad argument count")
	ErrDomain           = NewError("domain error")
	ErrSpentExpr        = NewError("expression already finalized")
	ErrInternal         = NewError("internal corruption")
)

// Error represents an evaluation error with optional source position and
// structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	kind  *Error      // Sentinel this error derives from (nil for sentinels)
	err   error       // Wrapped error (for errors.Unwrap)
	text  string      // Offending token text
	pos   int         // Rune offset into the full input, -1 when unknown
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg, pos: -1}
}

// At derives a new Error located at the given rune offset with the
// offending token text. The derived error still matches the receiver's
// sentinel under errors.Is.
func (e *Error) At(pos int, text string) *Error {
	return &Error{
		msg:   e.msg,
		kind:  e.sentinel(),
		err:   e.err,
		text:  text,
		pos:   pos,
		attrs: e.attrs,
	}
}

// Pos returns the rune offset of the offending token, or -1 when the error
// carries no position.
func (e *Error) Pos() int { return e.pos }

// Text returns the offending token text, if any.
func (e *Error) Text() string { return e.text }

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(e.msg)

	if e.text != "" {
		sb.WriteString(" ")
		sb.WriteString(strconv.Quote(e.text))
	}

	if e.pos >= 0 {
		sb.WriteString(" at offset ")
		sb.WriteString(strconv.Itoa(e.pos))
	}

	if e.err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.err.Error())
	}

	return sb.String()
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is this error or the sentinel it derives from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e == t || e.kind == t
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.text != "" {
		attrs = append(attrs, slog.String("token", e.text))
	}

	if e.pos >= 0 {
		attrs = append(attrs, slog.Int("offset", e.pos))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		kind:  e.sentinel(),
		err:   err,
		text:  e.text,
		pos:   e.pos,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		kind:  e.sentinel(),
		err:   e.err,
		text:  e.text,
		pos:   e.pos,
		attrs: newAttrs,
	}
}

// sentinel resolves the error kind this error derives from.
func (e *Error) sentinel() *Error {
	if e.kind != nil {
		return e.kind
	}

	return e
}
