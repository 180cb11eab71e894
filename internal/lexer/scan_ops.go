package lexer

import (
	"fmt"
	"unicode/utf8"

	"pipebind/internal/diag"
	"pipebind/internal/source"
	"pipebind/internal/token"
)

type opSpec struct {
	text string
	kind token.Kind
}

// Порядок важен: сначала длинные, потом короткие (максимальный мунч).
var ops3 = []opSpec{
	{"===", token.EqEqEq},
	{"!==", token.BangEqEq},
	{"|||", token.CustomOp},
	{"&&&", token.CustomOp},
	{"<<<", token.CustomOp},
	{">>>", token.CustomOp},
	{"<~>", token.CustomOp},
	{"^^^", token.CustomOp},
	{"<<~", token.CustomOp},
	{"~>>", token.CustomOp},
	{"<|>", token.CustomOp},
	{"+++", token.CustomOp},
	{"---", token.CustomOp},
	{"...", token.CustomOp},
}

var ops2 = []opSpec{
	{"|>", token.PipeRight},
	{"<>", token.Concat},
	{"++", token.PlusPlus},
	{"--", token.MinusMinus},
	{"==", token.EqEq},
	{"!=", token.BangEq},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{"=~", token.MatchRe},
	{"..", token.DotDot},
	{"<-", token.LArrow},
	{`\\`, token.Backslash2},
	{"::", token.ColonColon},
	{"->", token.Arrow},
	{"=>", token.FatArrow},
	{"~>", token.CustomOp},
	{"<~", token.CustomOp},
	{"//", token.CustomOp}, // шаг диапазона: 1..10//2
}

var ops1 = map[byte]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'=': token.Match,
	'!': token.Bang,
	'<': token.Lt,
	'>': token.Gt,
	'^': token.Caret,
	'&': token.Amp,
	'|': token.Pipe,
	'@': token.At,
	'%': token.Percent,
	'.': token.Dot,
	',': token.Comma,
	';': token.Semicolon,
	'(': token.LParen,
	')': token.RParen,
	'[': token.LBracket,
	']': token.RBracket,
	'{': token.LBrace,
	'}': token.RBrace,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	for _, op := range ops3 {
		if lx.tryOp(op.text) {
			return lx.emit(op.kind, start)
		}
	}
	for _, op := range ops2 {
		if lx.tryOp(op.text) {
			return lx.emit(op.kind, start)
		}
	}
	if k, ok := ops1[lx.cursor.Peek()]; ok {
		lx.cursor.Bump()
		return lx.emit(k, start)
	}

	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.errUnknownChar(sp)
	return lx.emit(token.Invalid, start)
}

func (lx *Lexer) errUnknownChar(sp source.Span) {
	r, _ := utf8.DecodeRune(lx.file.Content[sp.Start:sp.End])
	lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("unknown character %q", r))
}
