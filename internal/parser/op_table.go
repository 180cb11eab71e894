package parser

import (
	"pipebind/internal/ast"
	"pipebind/internal/token"
)

// binaryOp возвращает текстовый оператор и его приоритет для токена в инфиксной позиции.
// Возвращает ok=false, если токен не бинарный оператор.
func binaryOp(tok token.Token) (op string, prec int, right, ok bool) {
	switch tok.Kind {
	case token.Bang, token.Caret, token.Amp, token.At, token.Arrow, token.FatArrow,
		token.Dot, token.Comma, token.Percent:
		return "", 0, false, false
	case token.KwNot:
		// в инфиксной позиции `not` встречается только как `not in`
		return "not in", ast.PrecIn, false, true
	}
	if !tok.IsOperator() {
		return "", 0, false, false
	}
	prec, right, ok = ast.BinaryPrec(tok.Text)
	return tok.Text, prec, right, ok
}

// isUnaryOp reports whether tok may start a prefix operator application.
func isUnaryOp(k token.Kind) bool {
	switch k {
	case token.Minus, token.Plus, token.Bang, token.Caret, token.KwNot, token.Amp, token.At:
		return true
	}
	return false
}

func isSignOp(k token.Kind) bool { return k == token.Minus || k == token.Plus }

// continuesLine: a binary operator at the start of a line continues the
// previous expression (`|>` pipelines). Unary-capable operators do not.
func continuesLine(tok token.Token) bool {
	switch tok.Kind {
	case token.Minus, token.Plus, token.KwNot:
		return false
	}
	_, _, _, ok := binaryOp(tok)
	return ok
}

// startsArg reports whether tok can begin an argument of a call written
// without parentheses (`import Foo`, `if ok?, do: x`, `def f(a) do`).
func startsArg(tok token.Token) bool {
	switch tok.Kind {
	case token.Ident, token.Alias, token.KwKey,
		token.IntLit, token.FloatLit, token.StringLit, token.CharlistLit, token.AtomLit, token.SigilLit,
		token.KwTrue, token.KwFalse, token.KwNil, token.KwFn,
		token.LBracket, token.LBrace, token.LParen, token.Percent, token.At, token.Bang, token.Caret, token.Amp:
		return true
	}
	return false
}
