package parser

import (
	"pipebind/internal/ast"
	"pipebind/internal/diag"
	"pipebind/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений
func (p *Parser) parseExpr() ast.Node {
	return p.parseBinaryExpr(ast.PrecNone + 1)
}

// parseBinaryExpr реализует Pratt parsing для бинарных операторов
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) ast.Node {
	left := p.parseUnaryExpr()

	for {
		tok := p.lx.Peek()
		if p.nested == 0 && tok.AfterNewline() && !continuesLine(tok) {
			break // новая строка — новое выражение
		}
		op, prec, right, ok := binaryOp(tok)
		if !ok || prec < minPrec {
			break
		}

		opTok := p.advance()
		if opTok.Kind == token.KwNot {
			p.expect(token.KwIn, diag.SynUnexpectedToken, "expected 'in' after 'not'")
		}

		nextMinPrec := prec + 1
		if right {
			nextMinPrec = prec
		}
		rhs := p.parseBinaryExpr(nextMinPrec)

		if step, ok := rhs.(*ast.OpApp); ok && op == ".." && step.Op == "//" && len(step.Operands) == 2 {
			left = &ast.OpApp{
				Pos:      left.Span().Cover(rhs.Span()),
				Op:       "..//",
				Operands: []ast.Node{left, step.Operands[0], step.Operands[1]},
			}
			continue
		}

		left = &ast.OpApp{
			Pos:      left.Span().Cover(rhs.Span()),
			Op:       op,
			Operands: []ast.Node{left, rhs},
		}
	}
	return left
}

// parseUnaryExpr обрабатывает унарные операторы (префиксы)
func (p *Parser) parseUnaryExpr() ast.Node {
	tok := p.lx.Peek()
	if !isUnaryOp(tok.Kind) {
		return p.parsePostfixExpr()
	}
	opTok := p.advance()

	if opTok.Kind == token.At {
		return p.parseAttribute(opTok)
	}

	operandPrec := ast.PrecUnary
	if opTok.Kind == token.Amp {
		// &foo/1, &(&1 + 1): захват связывает слабее арифметики
		operandPrec = ast.PrecOr + 1
	}
	operand := p.parseBinaryExpr(operandPrec)
	if lit, ok := operand.(*ast.Literal); ok && isSignOp(opTok.Kind) && (lit.Kind == ast.LitInt || lit.Kind == ast.LitFloat) {
		// -1 это литерал, а не применение оператора
		return &ast.Literal{Pos: opTok.Span.Cover(lit.Pos), Kind: lit.Kind, Value: opTok.Text + lit.Value}
	}
	return &ast.OpApp{
		Pos:      opTok.Span.Cover(operand.Span()),
		Op:       opTok.Text,
		Operands: []ast.Node{operand},
	}
}

// parseAttribute: `@name` reads an attribute, `@name value` defines one.
func (p *Parser) parseAttribute(at token.Token) ast.Node {
	operand := p.parseBinaryExpr(ast.PrecUnary)
	if id, ok := operand.(*ast.Ident); ok && id.Span().Start == at.Span.End {
		return &ast.AttrRef{Pos: at.Span.Cover(id.Span()), Name: id.Name}
	}
	return &ast.OpApp{
		Pos:      at.Span.Cover(operand.Span()),
		Op:       "@",
		Operands: []ast.Node{operand},
	}
}
