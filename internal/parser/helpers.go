package parser

import (
	"fmt"

	"pipebind/internal/diag"
	"pipebind/internal/source"
	"pipebind/internal/token"
)

// advance съедает токен; lastSpan запоминает последний настоящий токен,
// узлы строят свой Pos через Cover(lastSpan).
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// errSpan points at the next token, or just past the last one at end of input.
func (p *Parser) errSpan() source.Span {
	next := p.lx.Peek()
	if next.Kind != token.EOF || p.lastSpan.End == 0 {
		return next.Span
	}
	return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
}

// expect consumes a k token or reports want together with what was found.
// On failure the returned token is Invalid and spans the error location.
func (p *Parser) expect(k token.Kind, code diag.Code, want string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	found := p.lx.Peek()
	sp := p.errSpan()
	p.report(code, diag.SevError, sp, want+", got "+describe(found))
	return token.Token{Kind: token.Invalid, Span: sp, Text: found.Text}, false
}

func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.errSpan(), msg)
}

// report считает ошибки и молча отбрасывает всё после MaxErrors.
func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter == nil || p.opts.Enough() {
		return false
	}
	p.opts.Reporter.Report(&diag.Diagnostic{Severity: sev, Code: code, Primary: sp, Message: msg})
	return true
}

func describe(tok token.Token) string {
	switch {
	case tok.Kind == token.EOF:
		return "end of file"
	case tok.Kind == token.Invalid:
		return "invalid token"
	case tok.IsKeyword():
		return "keyword '" + tok.Text + "'"
	}
	return fmt.Sprintf("%q", tok.Text)
}
