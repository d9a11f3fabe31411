package lang

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Kind identifies the lexical class of a Token.
type Kind int

const (
	// KindNumber is a numeric literal. A leading sign is never part of the
	// literal; sign disambiguation happens in the parser.
	KindNumber Kind = iota
	// KindIdent is a named constant, function, or the last-answer slot.
	KindIdent
	// KindOperator is one of the arithmetic operators.
	KindOperator
	// KindOpen is an opening parenthesis.
	KindOpen
	// KindClose is a closing parenthesis.
	KindClose
	// KindComma separates function-call arguments.
	KindComma
)

// String returns a human-readable name for the token kind.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindIdent:
		return "identifier"
	case KindOperator:
		return "operator"
	case KindOpen:
		return "open paren"
	case KindClose:
		return "close paren"
	case KindComma:
		return "comma"
	default:
		return "unknown"
	}
}

// Token is a single lexical element of an expression.
// Tokens are produced on demand and never retained past parsing.
type Token struct {
	Text string  // Source text of the token
	Val  float64 // Numeric value when Kind is KindNumber
	Op   Op      // Operator identity when Kind is KindOperator
	Kind Kind
	Pos  int // Rune offset from the start of the full input
}

// scanner produces tokens from one chunk of input text.
// A fresh scanner is required per chunk; base carries the rune offset of
// the chunk within the full (cumulative) input so token positions remain
// meaningful across feeds.
type scanner struct {
	src  string
	off  int // Byte offset into src
	pos  int // Rune offset into src
	base int // Rune offset of src within the full input
}

// next returns the next token in the input.
// The boolean result is false when the input is exhausted.
func (s *scanner) next() (Token, bool, error) {
	s.skipSpace()

	if s.off >= len(s.src) {
		return Token{}, false, nil
	}

	start := s.base + s.pos

	r, size := utf8.DecodeRuneInString(s.src[s.off:])
	switch {
	case r == '(':
		s.advance(size)

		return Token{Text: "(", Kind: KindOpen, Pos: start}, true, nil

	case r == ')':
		s.advance(size)

		return Token{Text: ")", Kind: KindClose, Pos: start}, true, nil

	case r == ',':
		s.advance(size)

		return Token{Text: ",", Kind: KindComma, Pos: start}, true, nil

	case r >= '0' && r <= '9' || r == '.':
		return s.scanNumber()

	case unicode.IsLetter(r):
		return s.scanIdent()
	}

	if op, ok := lookupOp(r); ok {
		s.advance(size)

		return Token{Text: string(r), Op: op, Kind: KindOperator, Pos: start}, true, nil
	}

	// Unrecognized character: report the remainder of the chunk.
	return Token{}, false, ErrInvalidToken.At(start, s.src[s.off:])
}

// scanNumber scans a numeric literal: a run of digits containing at most
// one decimal point. No exponent and no sign.
func (s *scanner) scanNumber() (Token, bool, error) {
	begin := s.off
	start := s.base + s.pos
	dot := false
	digits := 0

scan:
	for s.off < len(s.src) {
		switch c := s.src[s.off]; {
		case c >= '0' && c <= '9':
			digits++

		case c == '.':
			if dot {
				// Second decimal point in one literal.
				return Token{}, false, ErrInvalidToken.At(start, s.src[begin:s.off+1])
			}

			dot = true

		default:
			break scan
		}

		s.advance(1)
	}

	text := s.src[begin:s.off]
	if digits == 0 {
		return Token{}, false, ErrInvalidToken.At(start, text)
	}

	val, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Token{}, false, ErrInvalidToken.At(start, text).Wrap(err)
	}

	return Token{Text: text, Val: val, Kind: KindNumber, Pos: start}, true, nil
}

// scanIdent scans an identifier: a letter followed by letters or digits.
func (s *scanner) scanIdent() (Token, bool, error) {
	begin := s.off
	start := s.base + s.pos

	for s.off < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[s.off:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}

		s.advance(size)
	}

	return Token{Text: s.src[begin:s.off], Kind: KindIdent, Pos: start}, true, nil
}

// skipSpace consumes whitespace.
func (s *scanner) skipSpace() {
	for s.off < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[s.off:])
		if !unicode.IsSpace(r) {
			return
		}

		s.advance(size)
	}
}

// advance consumes size bytes (one rune) of input.
func (s *scanner) advance(size int) {
	s.off += size
	s.pos++
}
