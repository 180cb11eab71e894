package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"pipebind/internal/source"
	"pipebind/internal/token"
)

// TokenOutput is one token of `pipebind tokenize --format json`.
type TokenOutput struct {
	Kind    string   `json:"kind"`
	Class   string   `json:"class"`
	Text    string   `json:"text,omitempty"`
	Start   uint32   `json:"start"`
	End     uint32   `json:"end"`
	Line    uint32   `json:"line"`
	Col     uint32   `json:"col"`
	Newline bool     `json:"newline,omitempty"` // a newline precedes the token
	Leading []string `json:"leading,omitempty"`
}

// tokenClass groups kinds the way the parser looks at them.
func tokenClass(tok token.Token) string {
	switch {
	case tok.Kind == token.EOF:
		return "eof"
	case tok.IsIdent():
		return "ident"
	case tok.IsKeyword():
		return "keyword"
	case tok.IsLiteral():
		return "literal"
	case tok.IsOperator():
		return "operator"
	default:
		return "punct"
	}
}

func toTokenOutput(tok token.Token, fs *source.FileSet) TokenOutput {
	start, _ := fs.Resolve(tok.Span)
	out := TokenOutput{
		Kind:    tok.Kind.String(),
		Class:   tokenClass(tok),
		Text:    tok.Text,
		Start:   tok.Span.Start,
		End:     tok.Span.End,
		Line:    start.Line,
		Col:     start.Col,
		Newline: tok.AfterNewline(),
	}
	for _, tr := range tok.Leading {
		out.Leading = append(out.Leading, tr.Kind.String())
	}
	return out
}

// untilEOF cuts the stream after the first EOF token.
func untilEOF(tokens []token.Token) []token.Token {
	for i, tok := range tokens {
		if tok.Kind == token.EOF {
			return tokens[:i+1]
		}
	}
	return tokens
}

// FormatTokensPretty prints one token per line:
//
//	3: Match        "=" at 1:3-1:4 (leading: Space)
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	var b strings.Builder
	for i, tok := range untilEOF(tokens) {
		out := toTokenOutput(tok, fs)
		_, end := fs.Resolve(tok.Span)
		fmt.Fprintf(&b, "%3d: %-12s", i+1, out.Kind)
		if out.Text != "" {
			fmt.Fprintf(&b, " %q", out.Text)
		}
		fmt.Fprintf(&b, " at %d:%d-%d:%d", out.Line, out.Col, end.Line, end.Col)
		if len(out.Leading) > 0 {
			fmt.Fprintf(&b, " (leading: %s)", strings.Join(out.Leading, ", "))
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// FormatTokensJSON writes the stream as a JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	toks := untilEOF(tokens)
	output := make([]TokenOutput, 0, len(toks))
	for _, tok := range toks {
		output = append(output, toTokenOutput(tok, fs))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
