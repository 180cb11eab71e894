package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"pipebind/internal/source"
	"pipebind/internal/token"
)

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.ex", []byte("a = 1\n"))
	toks := []token.Token{
		{Kind: token.Ident, Span: source.Span{File: id, Start: 0, End: 1}, Text: "a"},
		{Kind: token.Match, Span: source.Span{File: id, Start: 2, End: 3}, Text: "=",
			Leading: []token.Trivia{{Kind: token.TriviaSpace}}},
		{Kind: token.EOF, Span: source.Span{File: id, Start: 6, End: 6}},
	}

	var pretty bytes.Buffer
	if err := FormatTokensPretty(&pretty, toks, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(pretty.String()), "\n")
	if len(lines) != 3 || !strings.Contains(lines[1], `"=" at 1:3-1:4 (leading: `) {
		t.Errorf("pretty = %q", pretty.String())
	}

	var js bytes.Buffer
	if err := FormatTokensJSON(&js, toks, fs); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(js.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 || out[1].Col != 3 || len(out[1].Leading) != 1 || out[2].Line != 2 {
		t.Errorf("json = %+v", out)
	}
	if out[0].Class != "ident" || out[1].Class != "operator" || out[2].Class != "eof" {
		t.Errorf("classes = %s %s %s", out[0].Class, out[1].Class, out[2].Class)
	}
	if out[1].Newline {
		t.Error("'=' follows a space, not a newline")
	}
}
