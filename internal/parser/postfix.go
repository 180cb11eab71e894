package parser

import (
	"pipebind/internal/ast"
	"pipebind/internal/diag"
	"pipebind/internal/token"
)

// parsePostfixExpr: primary, затем цепочка `.name`, `.Alias`, `(args)`, `.(args)`, `[key]`,
// вызов без скобок и присоединённый do-блок.
func (p *Parser) parsePostfixExpr() ast.Node {
	n := p.parsePrimary()

	for {
		tok := p.lx.Peek()
		adjacent := len(tok.Leading) == 0

		switch {
		case tok.Kind == token.Dot:
			n = p.parseDot(n)
			continue
		case tok.Kind == token.LParen && adjacent && isCallee(n):
			n = p.parseParenCall(n)
			continue
		case tok.Kind == token.LBracket && adjacent:
			open := p.advance()
			p.nested++
			key := p.withDo(p.parseExpr)
			p.expectClose(token.RBracket, open, diag.SynUnclosedBracket, "expected ']'")
			p.nested--
			n = &ast.OpApp{Pos: n.Span().Cover(p.lastSpan), Op: "[]", Operands: []ast.Node{n, key}}
			continue
		}
		break
	}

	if isNoParensCallee(n) && !p.lx.Peek().AfterNewline() && len(p.lx.Peek().Leading) > 0 && startsArg(p.lx.Peek()) {
		n = p.parseNoParensCall(n)
	}

	if p.noDo == 0 && p.at(token.KwDo) {
		n = p.attachDo(n)
	}
	return n
}

func isCallee(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.Ident:
		return true
	case *ast.Dot:
		return true
	case *ast.Alias:
		return len(n.Segments) > 1
	}
	return false
}

func isNoParensCallee(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.Ident:
		return true
	case *ast.Dot:
		return n.Name != ""
	}
	return false
}

// parseDot: `Mod.Sub`, `Mod.fun`, `map.key`, `fun.(args)`.
func (p *Parser) parseDot(left ast.Node) ast.Node {
	p.advance() // '.'
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Alias:
		p.advance()
		if a, ok := left.(*ast.Alias); ok {
			segs := append(append([]string(nil), a.Segments...), tok.Text)
			return &ast.Alias{Pos: a.Pos.Cover(tok.Span), Segments: segs}
		}
		return &ast.Dot{Pos: left.Span().Cover(tok.Span), Left: left, Name: tok.Text}
	case token.Ident:
		p.advance()
		return &ast.Dot{Pos: left.Span().Cover(tok.Span), Left: left, Name: tok.Text}
	case token.LParen:
		// анонимный вызов fun.(args)
		d := &ast.Dot{Pos: left.Span().Cover(tok.Span), Left: left}
		return p.parseParenCall(d)
	default:
		if tok.IsKeyword() {
			// Kernel.and / map.end и подобные
			p.advance()
			return &ast.Dot{Pos: left.Span().Cover(tok.Span), Left: left, Name: tok.Text}
		}
		p.err(diag.SynExpectIdentifier, "expected name after '.', got "+describe(tok))
		return &ast.Dot{Pos: left.Span().Cover(p.lastSpan), Left: left}
	}
}

func (p *Parser) parseParenCall(callee ast.Node) ast.Node {
	open := p.advance()
	args, kws := p.parseSeq(token.RParen, open, diag.SynUnclosedParen, "expected ')'")
	if len(kws) > 0 {
		args = append(args, implicitKeywords(kws))
	}
	return &ast.Call{
		Pos:    callee.Span().Cover(p.lastSpan),
		Callee: callee,
		Args:   args,
		Parens: true,
	}
}

// parseNoParensCall: `import Foo`, `def f(a), do: a`, `if c, do: x, else: y`.
func (p *Parser) parseNoParensCall(callee ast.Node) ast.Node {
	p.noDo++
	defer func() { p.noDo-- }()

	var (
		args []ast.Node
		kws  []ast.Pair
	)
	for {
		if p.at(token.KwKey) {
			kws = append(kws, p.parseKeywordPair())
		} else {
			e := p.parseExpr()
			if len(kws) > 0 {
				p.report(diag.SynUnexpectedToken, diag.SevError, e.Span(), "keyword arguments must come last")
			}
			args = append(args, e)
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if len(kws) > 0 {
		args = append(args, implicitKeywords(kws))
	}
	return &ast.Call{Pos: callee.Span().Cover(p.lastSpan), Callee: callee, Args: args}
}

// attachDo присоединяет `do ... end` к вызову (или делает вызов из голого имени).
func (p *Parser) attachDo(n ast.Node) ast.Node {
	blk := p.parseDoBlock()
	call, ok := n.(*ast.Call)
	if !ok {
		call = &ast.Call{Callee: n}
	}
	call.Do = blk
	call.Pos = n.Span().Cover(blk.Pos)
	return call
}

func (p *Parser) parseDoBlock() *ast.Block {
	doTok := p.advance()
	blk := &ast.Block{Kind: ast.BlockDo}
	blk.Body = p.parseStmts(stopBlock, true)

	for isSectionLabel(p.lx.Peek()) {
		label := p.advance()
		blk.Sections = append(blk.Sections, ast.Section{
			Label: label.Text,
			Body:  p.parseStmts(stopBlock, true),
		})
	}
	if _, ok := p.expect(token.KwEnd, diag.SynUnclosedBlock, "expected 'end' to close 'do' block"); !ok {
		p.report(diag.SynUnclosedBlock, diag.SevInfo, doTok.Span, "'do' opened here")
	}
	blk.Pos = doTok.Span.Cover(p.lastSpan)
	return blk
}
