package parser

import (
	"pipebind/internal/ast"
	"pipebind/internal/diag"
	"pipebind/internal/token"
)

// parsePrimary разбирает атом выражения: литерал, имя, контейнер, fn или скобки.
func (p *Parser) parsePrimary() ast.Node {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return &ast.Ident{Pos: tok.Span, Name: tok.Text}
	case token.Alias:
		p.advance()
		return &ast.Alias{Pos: tok.Span, Segments: []string{tok.Text}}
	case token.IntLit, token.FloatLit, token.StringLit, token.CharlistLit, token.AtomLit, token.SigilLit,
		token.KwTrue, token.KwFalse, token.KwNil:
		p.advance()
		return &ast.Literal{Pos: tok.Span, Kind: literalKind(tok.Kind), Value: tok.Text, Interp: p.parseInterpolations(tok)}
	case token.LParen:
		return p.parseParens()
	case token.LBracket:
		return p.parseList()
	case token.LBrace:
		return p.parseTuple()
	case token.Percent:
		return p.parseMap()
	case token.KwFn:
		return p.parseFn()
	case token.KwKey:
		// ключи вне контейнера: `foo a: 1` разбирается в parseCallArgs
		p.advance()
		p.report(diag.SynUnexpectedToken, diag.SevError, tok.Span, "unexpected keyword key "+tok.Text+":")
		return &ast.Bad{Pos: tok.Span}
	case token.EOF, token.KwEnd, token.RParen, token.RBracket, token.RBrace, token.KwDo, token.KwElse:
		p.err(diag.SynExpectExpression, "expected expression, got "+describe(tok))
		return &ast.Bad{Pos: p.errSpan()}
	default:
		p.advance()
		if tok.Kind != token.Invalid {
			p.report(diag.SynExpectExpression, diag.SevError, tok.Span, "expected expression, got "+describe(tok))
		}
		return &ast.Bad{Pos: tok.Span}
	}
}

func literalKind(k token.Kind) ast.LitKind {
	switch k {
	case token.IntLit:
		return ast.LitInt
	case token.FloatLit:
		return ast.LitFloat
	case token.StringLit:
		return ast.LitString
	case token.CharlistLit:
		return ast.LitCharlist
	case token.AtomLit:
		return ast.LitAtom
	case token.SigilLit:
		return ast.LitSigil
	case token.KwTrue, token.KwFalse:
		return ast.LitBool
	default:
		return ast.LitNil
	}
}

// parseParens: `(expr)`. Скобки не сохраняются в дереве; `()` — это nil.
func (p *Parser) parseParens() ast.Node {
	open := p.advance()
	p.nested++
	defer func() { p.nested-- }()

	if p.at(token.RParen) {
		closeTok := p.advance()
		return &ast.Literal{Pos: open.Span.Cover(closeTok.Span), Kind: ast.LitNil}
	}
	inner := p.withDo(p.parseExpr)
	p.expectClose(token.RParen, open, diag.SynUnclosedParen, "expected ')'")
	return inner
}

func (p *Parser) parseList() ast.Node {
	open := p.advance()
	elems, kws := p.parseSeq(token.RBracket, open, diag.SynUnclosedBracket, "expected ']'")
	return &ast.ListLit{Pos: open.Span.Cover(p.lastSpan), Elems: elems, Keywords: kws}
}

func (p *Parser) parseTuple() ast.Node {
	open := p.advance()
	elems, kws := p.parseSeq(token.RBrace, open, diag.SynUnclosedBrace, "expected '}'")
	if len(kws) > 0 {
		elems = append(elems, implicitKeywords(kws))
	}
	return &ast.TupleLit{Pos: open.Span.Cover(p.lastSpan), Elems: elems}
}

// parseMap: `%{...}`, `%Name{...}`, `%{m | k: v}`.
func (p *Parser) parseMap() ast.Node {
	pct := p.advance()
	m := &ast.MapLit{}

	if !p.at(token.LBrace) {
		// имя структуры: Alias (с точками), __MODULE__ или @attr
		m.Struct = p.parseBinaryExpr(ast.PrecUnary + 1)
	}
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after '%'")
	if !ok {
		m.Pos = pct.Span.Cover(p.lastSpan)
		return m
	}

	p.nested++
	defer func() { p.nested-- }()

	first := true
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.at(token.KwKey) {
			m.Pairs = append(m.Pairs, p.parseKeywordPair())
		} else {
			var key ast.Node
			if first {
				key = p.withDo(func() ast.Node { return p.parseBinaryExpr(ast.PrecBar + 1) })
				if p.at(token.Pipe) {
					p.advance()
					m.Update = key
					first = false
					continue
				}
			} else {
				key = p.withDo(p.parseExpr)
			}
			if _, ok := p.expect(token.FatArrow, diag.SynBadMapEntry, "expected '=>' or 'key:' in map entry"); !ok {
				p.resyncSeq(token.RBrace)
			} else {
				m.Pairs = append(m.Pairs, ast.Pair{Key: key, Value: p.withDo(p.parseExpr)})
			}
		}
		first = false
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.expectClose(token.RBrace, open, diag.SynUnclosedBrace, "expected '}'")
	m.Pos = pct.Span.Cover(p.lastSpan)
	return m
}

// parseFn: `fn head -> body; ... end`.
func (p *Parser) parseFn() ast.Node {
	fnTok := p.advance()
	body := p.parseStmts(stopFn, true)
	blk := &ast.Block{Kind: ast.BlockFn, Body: body}
	if _, ok := p.expect(token.KwEnd, diag.SynUnclosedBlock, "expected 'end' to close 'fn'"); !ok {
		p.report(diag.SynUnclosedBlock, diag.SevInfo, fnTok.Span, "'fn' opened here")
	}
	blk.Pos = fnTok.Span.Cover(p.lastSpan)
	return blk
}

// parseSeq разбирает элементы через запятую до закрывающего токена.
// Ключи `k: v` допускаются только в хвосте.
func (p *Parser) parseSeq(closeKind token.Kind, open token.Token, code diag.Code, msg string) ([]ast.Node, []ast.Pair) {
	p.nested++
	defer func() { p.nested-- }()

	var (
		elems []ast.Node
		kws   []ast.Pair
	)
	for !p.at(closeKind) && !p.at(token.EOF) {
		if p.at(token.KwKey) {
			kws = append(kws, p.parseKeywordPair())
		} else {
			e := p.withDo(p.parseExpr)
			if len(kws) > 0 {
				p.report(diag.SynUnexpectedToken, diag.SevError, e.Span(), "keyword arguments must come last")
			}
			elems = append(elems, e)
		}
		if !p.at(token.Comma) {
			if !p.at(closeKind) && !p.at(token.EOF) {
				p.err(diag.SynUnexpectedToken, "unexpected "+describe(p.lx.Peek())+" in sequence")
				p.resyncSeq(closeKind)
				if p.at(token.Comma) {
					p.advance()
					continue
				}
			}
			break
		}
		p.advance()
	}
	p.expectClose(closeKind, open, code, msg)
	return elems, kws
}

func (p *Parser) parseKeywordPair() ast.Pair {
	key := p.advance()
	val := p.withDo(p.parseExpr)
	return ast.Pair{
		Key:     &ast.Literal{Pos: key.Span, Kind: ast.LitAtom, Value: ":" + key.Text},
		Value:   val,
		Keyword: true,
	}
}

func implicitKeywords(kws []ast.Pair) *ast.ListLit {
	sp := kws[0].Key.Span().Cover(kws[len(kws)-1].Value.Span())
	return &ast.ListLit{Pos: sp, Keywords: kws, Implicit: true}
}

// expectClose reports an unclosed delimiter at the opening token.
func (p *Parser) expectClose(k token.Kind, open token.Token, code diag.Code, msg string) {
	if p.at(k) {
		p.advance()
		return
	}
	p.err(code, msg)
	if !p.at(token.EOF) {
		p.report(code, diag.SevInfo, open.Span, "unclosed "+open.Text+" opened here")
	}
}

// resyncSeq — пропускаем до ',' или закрывающего токена с учётом вложенности.
func (p *Parser) resyncSeq(closeKind token.Kind) {
	depth := 0
	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.EOF:
			return
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			if depth == 0 {
				return
			}
			depth--
		case token.Comma:
			if depth == 0 {
				return
			}
		}
		if tok.Kind == closeKind && depth == 0 {
			return
		}
		p.advance()
	}
}

// withDo parses inside delimiters where do-blocks attach again.
func (p *Parser) withDo(f func() ast.Node) ast.Node {
	saved := p.noDo
	p.noDo = 0
	defer func() { p.noDo = saved }()
	return f()
}
