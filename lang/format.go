package lang

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

// FormatResult renders an evaluation result the way the front-ends print
// it: shortest decimal representation that round-trips.
func FormatResult(val float64) string {
	return strconv.FormatFloat(val, 'g', -1, 64)
}

// Diagnostic renders the source line with a caret marking the position the
// error refers to. Returns "" when the error carries no position, or the
// position falls outside src.
//
// Positions are rune offsets into the full fed input, so src must be the
// concatenation of everything fed to the expression.
func Diagnostic(src string, err error) string {
	var ee *Error
	if !errors.As(err, &ee) || ee.Pos() < 0 {
		return ""
	}

	pos := ee.Pos()
	if pos > utf8.RuneCountInString(src) {
		return ""
	}

	var sb strings.Builder

	sb.WriteString("  ")
	sb.WriteString(src)
	sb.WriteString("\n  ")

	for i, r := range []rune(src) {
		if i >= pos {
			break
		}

		// Preserve tabs so the caret lines up.
		if r == '\t' {
			sb.WriteRune('\t')
		} else {
			sb.WriteRune(' ')
		}
	}

	sb.WriteString("^")

	return sb.String()
}
