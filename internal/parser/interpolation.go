package parser

import (
	"pipebind/internal/ast"
	"pipebind/internal/lexer"
	"pipebind/internal/token"
)

// parseInterpolations разбирает тела #{...} литерала как обычные выражения.
// Ошибки в них идут в тот же Reporter и в тот же счётчик MaxErrors.
func (p *Parser) parseInterpolations(tok token.Token) []ast.Node {
	if len(tok.Interp) == 0 {
		return nil
	}
	var out []ast.Node
	for _, sp := range tok.Interp {
		lx := lexer.NewSpan(p.lx.File(), sp, lexer.Options{Reporter: p.opts.Reporter})
		sub := newParser(p.fs, lx, p.opts)
		out = append(out, sub.parseStmts(stopTop, false)...)
		p.opts.CurrentErrors = sub.opts.CurrentErrors
	}
	return out
}
