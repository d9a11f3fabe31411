package lang

import (
	"errors"
	"testing"
)

// scanAll drains a scanner, failing the test on a lexing error.
func scanAll(t *testing.T, src string) []Token {
	t.Helper()

	s := scanner{src: src}

	var toks []Token

	for {
		tok, ok, err := s.next()
		if err != nil {
			t.Fatalf("scan %q: %v", src, err)
		}

		if !ok {
			return toks
		}

		toks = append(toks, tok)
	}
}

func TestScannerUnits(t *testing.T) {
	tests := []struct {
		src  string
		want []Token
	}{
		{
			src: "12.4 45 -0.111",
			want: []Token{
				{Text: "12.4", Val: 12.4, Kind: KindNumber, Pos: 0},
				{Text: "45", Val: 45, Kind: KindNumber, Pos: 5},
				{Text: "-", Op: OpSub, Kind: KindOperator, Pos: 8},
				{Text: "0.111", Val: 0.111, Kind: KindNumber, Pos: 9},
			},
		},
		{
			src: "fn(12, (2ans))-pi",
			want: []Token{
				{Text: "fn", Kind: KindIdent, Pos: 0},
				{Text: "(", Kind: KindOpen, Pos: 2},
				{Text: "12", Val: 12, Kind: KindNumber, Pos: 3},
				{Text: ",", Kind: KindComma, Pos: 5},
				{Text: "(", Kind: KindOpen, Pos: 7},
				{Text: "2", Val: 2, Kind: KindNumber, Pos: 8},
				{Text: "ans", Kind: KindIdent, Pos: 9},
				{Text: ")", Kind: KindClose, Pos: 12},
				{Text: ")", Kind: KindClose, Pos: 13},
				{Text: "-", Op: OpSub, Kind: KindOperator, Pos: 14},
				{Text: "pi", Kind: KindIdent, Pos: 15},
			},
		},
		{
			src: "1%2+3-5*-4/2^1",
			want: []Token{
				{Text: "1", Val: 1, Kind: KindNumber, Pos: 0},
				{Text: "%", Op: OpRem, Kind: KindOperator, Pos: 1},
				{Text: "2", Val: 2, Kind: KindNumber, Pos: 2},
				{Text: "+", Op: OpAdd, Kind: KindOperator, Pos: 3},
				{Text: "3", Val: 3, Kind: KindNumber, Pos: 4},
				{Text: "-", Op: OpSub, Kind: KindOperator, Pos: 5},
				{Text: "5", Val: 5, Kind: KindNumber, Pos: 6},
				{Text: "*", Op: OpMul, Kind: KindOperator, Pos: 7},
				{Text: "-", Op: OpSub, Kind: KindOperator, Pos: 8},
				{Text: "4", Val: 4, Kind: KindNumber, Pos: 9},
				{Text: "/", Op: OpDiv, Kind: KindOperator, Pos: 10},
				{Text: "2", Val: 2, Kind: KindNumber, Pos: 11},
				{Text: "^", Op: OpPow, Kind: KindOperator, Pos: 12},
				{Text: "1", Val: 1, Kind: KindNumber, Pos: 13},
			},
		},
		{
			src: ".5",
			want: []Token{
				{Text: ".5", Val: 0.5, Kind: KindNumber, Pos: 0},
			},
		},
		{
			src: "x2 \t y",
			want: []Token{
				{Text: "x2", Kind: KindIdent, Pos: 0},
				{Text: "y", Kind: KindIdent, Pos: 5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got := scanAll(t, tt.src)

			if len(got) != len(tt.want) {
				t.Fatalf("got %d tokens, want %d: %v", len(got), len(tt.want), got)
			}

			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d: got %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestScannerErrors(t *testing.T) {
	tests := []struct {
		src  string
		pos  int
		text string
	}{
		{src: "2 + !x", pos: 4, text: "!x"},
		{src: "1.2.3", pos: 0, text: "1.2."},
		{src: "1..2", pos: 0, text: "1.."},
		{src: ".", pos: 0, text: "."},
		{src: "a & b", pos: 2, text: "& b"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			s := scanner{src: tt.src}

			for {
				_, ok, err := s.next()
				if err != nil {
					if !errors.Is(err, ErrInvalidToken) {
						t.Fatalf("got %v, want ErrInvalidToken", err)
					}

					var ee *Error
					if !errors.As(err, &ee) {
						t.Fatal("error is not a *Error")
					}

					if ee.Pos() != tt.pos {
						t.Errorf("position: got %d, want %d", ee.Pos(), tt.pos)
					}

					if ee.Text() != tt.text {
						t.Errorf("text: got %q, want %q", ee.Text(), tt.text)
					}

					return
				}

				if !ok {
					t.Fatalf("scan %q: no error", tt.src)
				}
			}
		})
	}
}

func TestScannerBaseOffset(t *testing.T) {
	s := scanner{src: "+ 3", base: 4}

	tok, ok, err := s.next()
	if err != nil || !ok {
		t.Fatalf("next: ok=%v err=%v", ok, err)
	}

	if tok.Pos != 4 {
		t.Errorf("operator position: got %d, want 4", tok.Pos)
	}

	tok, ok, err = s.next()
	if err != nil || !ok {
		t.Fatalf("next: ok=%v err=%v", ok, err)
	}

	if tok.Pos != 6 {
		t.Errorf("number position: got %d, want 6", tok.Pos)
	}
}

func TestKindString(t *testing.T) {
	kinds := map[Kind]string{
		KindNumber:   "number",
		KindIdent:    "identifier",
		KindOperator: "operator",
		KindOpen:     "open paren",
		KindClose:    "close paren",
		KindComma:    "comma",
		Kind(99):     "unknown",
	}

	for kind, want := range kinds {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String(): got %q, want %q", int(kind), got, want)
		}
	}
}
