package lexer

import (
	"pipebind/internal/diag"
	"pipebind/internal/token"
)

// Поддержка: 0, 1_000, 0b1010, 0o777, 0xFF, 1.0, 1.5e-3.
// Точка становится частью числа только если за ней цифра: "1..2" — это 1, .., 2.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		var digit func(byte) bool
		switch lx.cursor.PeekAt(1) {
		case 'x':
			digit = isHex
		case 'o':
			digit = isOct
		case 'b':
			digit = isBin
		}
		if digit != nil {
			lx.cursor.Off += 2
			n := lx.eatDigits(digit)
			tok := lx.emit(token.IntLit, start)
			if n == 0 {
				lx.errLex(diag.LexBadNumber, tok.Span, "expected digits after base prefix")
				tok.Kind = token.Invalid
			}
			return tok
		}
	}

	lx.eatDigits(isDec)

	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		kind = token.FloatLit
		lx.cursor.Bump()
		lx.eatDigits(isDec)

		if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
			mark := lx.cursor.Mark()
			lx.cursor.Bump()
			if s := lx.cursor.Peek(); s == '+' || s == '-' {
				lx.cursor.Bump()
			}
			if lx.eatDigits(isDec) == 0 {
				// "1.0e" без цифр — откатываемся, 'e' станет идентификатором
				lx.cursor.Reset(mark)
			}
		}
	}

	tok := lx.emit(kind, start)
	if b := lx.cursor.Peek(); isIdentStartByte(b) {
		// 12abc: съедаем хвост, чтобы не плодить каскад ошибок
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		tok = lx.emit(token.Invalid, start)
		lx.errLex(diag.LexBadNumber, tok.Span, "invalid character in number literal")
	}
	return tok
}

// eatDigits consumes digits accepted by digit plus '_' separators and
// returns the number of digits consumed.
func (lx *Lexer) eatDigits(digit func(byte) bool) int {
	n := 0
	for {
		b := lx.cursor.Peek()
		switch {
		case digit(b):
			n++
		case b == '_' && n > 0 && digit(lx.cursor.PeekAt(1)):
		default:
			return n
		}
		lx.cursor.Bump()
	}
}

// ?a is the integer code point of a.
func (lx *Lexer) scanCharCode() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '?'
	if lx.cursor.Peek() == '\\' {
		lx.cursor.Bump()
	}
	lx.bumpRune()
	return lx.emit(token.IntLit, start)
}
