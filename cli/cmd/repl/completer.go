package repl

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/pupil/lang"
)

// ctrlCommands are the available colon-prefixed commands.
var ctrlCommands = []string{"help", "list", "clear", "quit"}

// isWordBoundary returns true if the rune is a word delimiter for completion
// purposes. This includes whitespace, grouping and argument punctuation, and
// the arithmetic operator characters.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t',
		'(', ')', ',', '.',
		'+', '-', '*', '/', '%', '^':
		return true
	}

	return false
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input. Words are delimited by whitespace, operators, and
// grouping punctuation. Leading digits are excluded from the word so that
// identifiers adjacent to numbers (implicit multiplication, e.g. "2pi")
// still complete.
// Returns an empty word when the cursor sits on a boundary (after a space,
// after an operator, start of line, etc.).
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	// Walk backward from cursor to find word start.
	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	// Skip the numeric prefix, if any.
	for start < cursor {
		r, size := utf8.DecodeRuneInString(input[start:])
		if !unicode.IsDigit(r) {
			break
		}

		start += size
	}

	// Walk forward from cursor to find word end.
	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	word = input[start:end]

	return word, start, end
}

// callSite describes the innermost unclosed function call containing the
// cursor.
type callSite struct {
	name     string
	argIndex int
	inCall   bool
}

// detectCall scans backward from the cursor for an unclosed call and returns
// the called name and the zero-based index of the argument under the cursor.
func detectCall(input string, cursor int) callSite {
	if cursor > len(input) {
		cursor = len(input)
	}

	depth := 0
	commas := 0

	for pos := cursor; pos > 0; {
		r, size := utf8.DecodeLastRuneInString(input[:pos])
		pos -= size

		switch r {
		case ')':
			depth++

		case ',':
			if depth == 0 {
				commas++
			}

		case '(':
			if depth > 0 {
				depth--

				continue
			}

			name, _, _ := wordBounds(input, pos)
			if name == "" {
				return callSite{}
			}

			return callSite{name: name, argIndex: commas, inCall: true}
		}
	}

	return callSite{}
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor. It returns the matches (ranked best-first), the candidate list, and
// the word boundaries. When the current word is empty, it returns nil matches
// so the hint text remains visible.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()
	cursor := m.input.Position()

	if name, ok := strings.CutPrefix(input, ":"); ok {
		// Colon commands complete against the command list.
		word := strings.TrimSpace(name)

		if word == "" {
			return nil, ctrlCommands, 1, len(input)
		}

		return fuzzy.Find(word, ctrlCommands), ctrlCommands, 1, len(input)
	}

	word, ws, we := wordBounds(input, cursor)
	wordStart, wordEnd = ws, we

	if word == "" {
		return nil, nil, wordStart, wordEnd
	}

	candidates = m.env.Names()
	if len(candidates) == 0 {
		return nil, nil, wordStart, wordEnd
	}

	matches = fuzzy.Find(word, candidates)

	return matches, candidates, wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. Each candidate is rendered with its matched
// characters highlighted. The selected candidate (when tabbing) uses the
// selected style.
func renderCandidateBar(
	env *lang.Env,
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		selected := tabActive && i == suggIdx
		rendered := renderCandidate(env, match, selected)
		candidateWidth := lipgloss.Width(rendered)

		entryWidth := candidateWidth
		if i > 0 {
			entryWidth += sepWidth
		}

		// Check if adding this candidate would exceed width.
		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth

		// If this is the last candidate, no need to reserve ellipsis space.
		if i == len(matches)-1 {
			break
		}
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted. Functions are displayed with a "()" suffix.
func renderCandidate(env *lang.Env, match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("4")).
		Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4")).
			Bold(true)
	}

	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		ch := string(r)
		if matchSet[i] {
			b.WriteString(highlightStyle.Render(ch))
		} else {
			b.WriteString(baseStyle.Render(ch))
		}
	}

	// Add "()" suffix for functions (not applied to actual completion)
	if _, ok := env.Function(match.Str); ok {
		b.WriteString(baseStyle.Render("()"))
	}

	return b.String()
}

// paramNames are the placeholder parameter names used in signature hints.
var paramNames = []string{"x", "y", "z", "w"}

// signature renders the parameter list for a named function, e.g.
// "clamp(x, y, z)" or "max(x, ...)". Returns "" when name is not a function.
func signature(env *lang.Env, name string) (string, []string) {
	fn, ok := env.Function(name)
	if !ok {
		return "", nil
	}

	n := fn.Arity.Min
	if fn.Arity.Max > n {
		n = fn.Arity.Max
	}

	if n > len(paramNames) {
		n = len(paramNames)
	}

	params := make([]string, n, n+1)
	copy(params, paramNames[:n])

	if fn.Arity.Max < 0 {
		params = append(params, "...")
	}

	return name + "(" + strings.Join(params, ", ") + ")", params
}

// renderCallHint renders the signature hint for a call site with the current
// argument highlighted.
func renderCallHint(env *lang.Env, site callSite) string {
	sig, params := signature(env, site.name)
	if sig == "" {
		return ""
	}

	var b strings.Builder

	b.WriteString(hintStyle.Render(site.name + "("))

	for i, p := range params {
		if i > 0 {
			b.WriteString(hintStyle.Render(", "))
		}

		idx := site.argIndex
		if idx >= len(params) {
			idx = len(params) - 1
		}

		if i == idx {
			b.WriteString(activeParamStyle.Render(p))
		} else {
			b.WriteString(hintStyle.Render(p))
		}
	}

	b.WriteString(hintStyle.Render(")"))

	return b.String()
}

// formatPreview generates a preview string for an environment name shown by
// the :list command.
func formatPreview(env *lang.Env, name string) string {
	if sig, _ := signature(env, name); sig != "" {
		return sig
	}

	if val, ok := env.Constant(name); ok {
		return lang.FormatResult(val)
	}

	return ""
}
