package lexer_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"pipebind/internal/diag"
	"pipebind/internal/lexer"
	"pipebind/internal/source"
	"pipebind/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(d *diag.Diagnostic) {
	r.diagnostics = append(r.diagnostics, *d)
}

func (r *testReporter) codes() []string {
	out := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		out = append(out, d.Code.ID())
	}
	return out
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.ex", []byte(input)))
	reporter := &testReporter{}
	return lexer.New(file, lexer.Options{Reporter: reporter}), reporter
}

type tk struct {
	Kind token.Kind
	Text string
}

func lexAll(t *testing.T, input string) ([]tk, *testReporter) {
	t.Helper()
	lx, rep := makeTestLexer(input)
	var out []tk
	for _, tok := range lx.All() {
		if tok.Kind == token.EOF {
			break
		}
		out = append(out, tk{tok.Kind, tok.Text})
	}
	return out, rep
}

func TestLexer_Tokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []tk
	}{
		{
			name:  "pipe into assign_to",
			input: `value |> assign_to(my_var)`,
			want: []tk{
				{token.Ident, "value"}, {token.PipeRight, "|>"}, {token.Ident, "assign_to"},
				{token.LParen, "("}, {token.Ident, "my_var"}, {token.RParen, ")"},
			},
		},
		{
			name:  "literals",
			input: `"str" 'cl' :ok :"quoted atom" 42 0x1F 1_000 3.14 1.0e-3 true nil`,
			want: []tk{
				{token.StringLit, `"str"`}, {token.CharlistLit, `'cl'`}, {token.AtomLit, ":ok"},
				{token.AtomLit, `:"quoted atom"`}, {token.IntLit, "42"}, {token.IntLit, "0x1F"},
				{token.IntLit, "1_000"}, {token.FloatLit, "3.14"}, {token.FloatLit, "1.0e-3"},
				{token.KwTrue, "true"}, {token.KwNil, "nil"},
			},
		},
		{
			name:  "remote call and attribute",
			input: `Enum.map(@items)`,
			want: []tk{
				{token.Alias, "Enum"}, {token.Dot, "."}, {token.Ident, "map"}, {token.LParen, "("},
				{token.At, "@"}, {token.Ident, "items"}, {token.RParen, ")"},
			},
		},
		{
			name:  "keyword key and do block",
			input: "if ok?, do: x",
			want: []tk{
				{token.Ident, "if"}, {token.Ident, "ok?"}, {token.Comma, ","}, {token.KwKey, "do"}, {token.Ident, "x"},
			},
		},
		{
			name:  "operators maximal munch",
			input: "a === b <> c ++ d != e =~ f .. g :: h",
			want: []tk{
				{token.Ident, "a"}, {token.EqEqEq, "==="}, {token.Ident, "b"}, {token.Concat, "<>"},
				{token.Ident, "c"}, {token.PlusPlus, "++"}, {token.Ident, "d"}, {token.BangEq, "!="},
				{token.Ident, "e"}, {token.MatchRe, "=~"}, {token.Ident, "f"}, {token.DotDot, ".."},
				{token.Ident, "g"}, {token.ColonColon, "::"}, {token.Ident, "h"},
			},
		},
		{
			name:  "custom operator",
			input: "a <~> b",
			want:  []tk{{token.Ident, "a"}, {token.CustomOp, "<~>"}, {token.Ident, "b"}},
		},
		{
			name:  "range is not a float",
			input: "1..10",
			want:  []tk{{token.IntLit, "1"}, {token.DotDot, ".."}, {token.IntLit, "10"}},
		},
		{
			name:  "sigil",
			input: `~r/a+b/i`,
			want:  []tk{{token.SigilLit, "~r/a+b/i"}},
		},
		{
			name:  "interpolation with nested quotes",
			input: `"a #{"b"} c"`,
			want:  []tk{{token.StringLit, `"a #{"b"} c"`}},
		},
		{
			name:  "stepped range",
			input: "1..10//2",
			want: []tk{
				{token.IntLit, "1"}, {token.DotDot, ".."}, {token.IntLit, "10"}, {token.CustomOp, "//"}, {token.IntLit, "2"},
			},
		},
		{
			name:  "char code",
			input: "?a",
			want:  []tk{{token.IntLit, "?a"}},
		},
		{
			name:  "pin",
			input: "^x = 1",
			want:  []tk{{token.Caret, "^"}, {token.Ident, "x"}, {token.Match, "="}, {token.IntLit, "1"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rep := lexAll(t, tt.input)
			if len(rep.diagnostics) != 0 {
				t.Fatalf("unexpected diagnostics: %v", rep.codes())
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLexer_Errors(t *testing.T) {
	tests := []struct {
		input string
		code  string
	}{
		{`"open`, "LEX1002"},
		{`'open`, "LEX1002"},
		{`"""never closed`, "LEX1002"},
		{"0x", "LEX1003"},
		{"12abc", "LEX1003"},
		{"a $ b", "LEX1001"},
		{`:"open`, "LEX1004"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.input), func(t *testing.T) {
			_, rep := lexAll(t, tt.input)
			if diff := cmp.Diff([]string{tt.code}, rep.codes()); diff != "" {
				t.Errorf("codes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLexer_Trivia(t *testing.T) {
	lx, _ := makeTestLexer("a # note\n\n  b")
	a := lx.Next()
	if a.AfterNewline() {
		t.Error("first token must not be after newline")
	}
	b := lx.Next()
	if !b.AfterNewline() {
		t.Error("b should follow a newline")
	}
	kinds := make([]token.TriviaKind, 0, len(b.Leading))
	for _, tr := range b.Leading {
		kinds = append(kinds, tr.Kind)
	}
	want := []token.TriviaKind{token.TriviaSpace, token.TriviaComment, token.TriviaNewline, token.TriviaSpace}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("trivia mismatch (-want +got):\n%s", diff)
	}
}

func TestLexer_Spans(t *testing.T) {
	lx, _ := makeTestLexer("ab  cd:  x")
	first := lx.Next()
	if first.Span.Start != 0 || first.Span.End != 2 {
		t.Errorf("ab span = %v", first.Span)
	}
	key := lx.Next()
	if key.Kind != token.KwKey || key.Text != "cd" || key.Span.Start != 4 || key.Span.End != 7 {
		t.Errorf("key = %+v", key)
	}
}

func TestLexer_UnicodeIdentNFC(t *testing.T) {
	// "é" как e + combining acute
	got, rep := lexAll(t, "cafe\u0301")
	if len(rep.diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.codes())
	}
	if diff := cmp.Diff([]tk{{token.Ident, "caf\u00e9"}}, got); diff != "" {
		t.Errorf("NFC mismatch (-want +got):\n%s", diff)
	}
}

func TestLexer_PeekThenNext(t *testing.T) {
	lx, _ := makeTestLexer("x y")
	p := lx.Peek()
	n := lx.Next()
	if p.Text != n.Text || n.Text != "x" {
		t.Errorf("Peek %q then Next %q", p.Text, n.Text)
	}
	if got := lx.Next(); got.Text != "y" {
		t.Errorf("second = %q", got.Text)
	}
	if got := lx.Next(); got.Kind != token.EOF {
		t.Errorf("want EOF, got %v", got.Kind)
	}
}

func TestLexer_InterpolationBodies(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"string", `"got #{u} and #{v + 1}"`, []string{"u", "v + 1"}},
		{"nested string is one body", `"a#{"b#{u}"}"`, []string{`"b#{u}"`}},
		{"escaped", `"a \#{u}"`, nil},
		{"heredoc", "\"\"\"\nx #{u}\n\"\"\"", []string{"u"}},
		{"charlist", `'a#{u}'`, []string{"u"}},
		{"quoted atom", `:"a#{u}"`, []string{"u"}},
		{"lowercase sigil", `~s(a #{u})`, []string{"u"}},
		{"sigil closed by brace", `~s{#{u}}`, []string{"u"}},
		{"uppercase sigil", `~S(a #{u})`, nil},
		{"plain", `"abc"`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, rep := makeTestLexer(tt.input)
			tok := lx.Next()
			if len(rep.diagnostics) != 0 {
				t.Fatalf("unexpected diagnostics: %v", rep.codes())
			}
			if tok.Text != tt.input {
				t.Fatalf("token text = %q", tok.Text)
			}
			var got []string
			for _, sp := range tok.Interp {
				got = append(got, tt.input[sp.Start:sp.End])
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("bodies mismatch (-want +got):\n%s", diff)
			}
			if next := lx.Next(); next.Kind != token.EOF {
				t.Errorf("trailing token %v %q", next.Kind, next.Text)
			}
		})
	}
}
