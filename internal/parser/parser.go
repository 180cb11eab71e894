package parser

import (
	"slices"

	"pipebind/internal/ast"
	"pipebind/internal/diag"
	"pipebind/internal/lexer"
	"pipebind/internal/source"
	"pipebind/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File *ast.File
	Bag  *diag.Bag
}

// Parser — состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	fs       *source.FileSet
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики

	// nested > 0 inside (), [] and {}: newlines are insignificant there.
	nested int
	// noDo > 0 while parsing arguments of a call without parentheses:
	// a trailing do-block belongs to the outer call.
	noDo int
}

func newParser(fs *source.FileSet, lx *lexer.Lexer, opts Options) *Parser {
	return &Parser{
		lx:       lx,
		fs:       fs,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}
}

// ParseFile — входная точка для разбора одного файла.
// Требует уже созданный lexer (на основе source.File).
func ParseFile(fs *source.FileSet, lx *lexer.Lexer, opts Options) Result {
	p := newParser(fs, lx, opts)
	start := lx.Peek().Span

	body := p.parseStmts(stopTop, false)
	file := &ast.File{
		ID:   lx.File().ID,
		Span: start.Cover(p.lx.Peek().Span),
		Body: body,
	}

	var bag *diag.Bag
	if br, ok := opts.Reporter.(diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{File: file, Bag: bag}
}

// ParseExpr parses exactly one expression from lx. Anything after it other
// than newlines is reported as SynTrailingInput.
func ParseExpr(lx *lexer.Lexer, opts Options) (ast.Node, bool) {
	p := newParser(nil, lx, opts)
	p.nested++ // выражение может занимать несколько строк
	n := p.parseExpr()
	if !p.at(token.EOF) {
		p.err(diag.SynTrailingInput, "unexpected input after expression")
		return n, false
	}
	return n, p.opts.CurrentErrors == 0
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}

// stopSet decides where a statement sequence ends.
type stopSet func(tok token.Token) bool

func stopTop(tok token.Token) bool { return tok.Kind == token.EOF }

// sectionLabels continue a do-block: `else`, `after`, `rescue`, `catch`.
func isSectionLabel(tok token.Token) bool {
	if tok.Kind == token.KwElse {
		return true
	}
	if tok.Kind != token.Ident {
		return false
	}
	switch tok.Text {
	case "after", "rescue", "catch":
		return true
	}
	return false
}

func stopBlock(tok token.Token) bool {
	return tok.Kind == token.EOF || tok.Kind == token.KwEnd || isSectionLabel(tok)
}

func stopFn(tok token.Token) bool {
	return tok.Kind == token.EOF || tok.Kind == token.KwEnd
}

// parseStmts parses a newline/';' separated expression sequence until stop.
// With stab set, `head -> body` clauses are grouped into "->" applications.
func (p *Parser) parseStmts(stop stopSet, stab bool) []ast.Node {
	savedNested, savedNoDo := p.nested, p.noDo
	p.nested, p.noDo = 0, 0
	defer func() { p.nested, p.noDo = savedNested, savedNoDo }()

	var (
		out    []ast.Node
		clause *ast.Block // тело текущей stab-клаузы
	)
	for {
		for p.at(token.Semicolon) {
			p.advance()
		}
		tok := p.lx.Peek()
		if stop(tok) {
			break
		}
		if !stab && tok.Kind == token.KwEnd {
			p.err(diag.SynUnexpectedToken, "unexpected 'end'")
			p.advance()
			continue
		}

		var heads []ast.Node
		if !(stab && tok.Kind == token.Arrow) {
			heads = append(heads, p.parseExpr())
			for stab && p.at(token.Comma) {
				p.advance()
				heads = append(heads, p.parseExpr())
			}
		}

		if stab && p.at(token.Arrow) {
			arrow := p.advance()
			headSpan := arrow.Span
			if len(heads) > 0 {
				headSpan = heads[0].Span().Cover(heads[len(heads)-1].Span())
			}
			clause = &ast.Block{Pos: arrow.Span, Kind: ast.BlockClause}
			out = append(out, &ast.OpApp{
				Pos: headSpan.Cover(arrow.Span),
				Op:  "->",
				Operands: []ast.Node{
					&ast.ListLit{Pos: headSpan, Elems: heads, Implicit: true},
					clause,
				},
			})
			continue
		}

		if len(heads) > 1 {
			p.report(diag.SynUnexpectedToken, diag.SevError, heads[1].Span(), "unexpected ',' in expression sequence")
		}
		if clause != nil {
			clause.Body = append(clause.Body, heads...)
			p.extendClause(out, clause)
		} else {
			out = append(out, heads...)
		}
		p.endStmt(stop)
	}
	return out
}

// extendClause stretches the span of the last clause to cover its body.
func (p *Parser) extendClause(out []ast.Node, clause *ast.Block) {
	if len(clause.Body) == 0 || len(out) == 0 {
		return
	}
	last := clause.Body[len(clause.Body)-1].Span()
	clause.Pos = clause.Body[0].Span().Cover(last)
	if op, ok := out[len(out)-1].(*ast.OpApp); ok && op.Op == "->" {
		op.Pos = op.Pos.Cover(last)
	}
}

// endStmt requires a separator after a statement: ';', a newline, or the end of the sequence.
func (p *Parser) endStmt(stop stopSet) {
	tok := p.lx.Peek()
	if tok.Kind == token.Semicolon || tok.AfterNewline() || stop(tok) || tok.Kind == token.Arrow {
		return
	}
	p.err(diag.SynUnexpectedToken, "unexpected "+describe(tok)+", expected newline or ';'")
	p.resyncStmt(stop)
}

// resyncStmt — пропускаем токены до начала следующей строки, ';' или конца последовательности.
func (p *Parser) resyncStmt(stop stopSet) {
	for {
		tok := p.lx.Peek()
		if tok.Kind == token.EOF || tok.Kind == token.Semicolon || stop(tok) {
			return
		}
		p.advance()
		if next := p.lx.Peek(); next.AfterNewline() {
			return
		}
	}
}
