package lexer

import (
	"pipebind/internal/diag"
	"pipebind/internal/token"
)

// scanString: "..." или heredoc """ ... """. Escapes and #{...} interpolation
// stay verbatim in Token.Text; interpolation bodies are recorded in Token.Interp.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	if lx.tryOp(`"""`) {
		return lx.scanHeredoc(start, '"', token.StringLit, true)
	}
	lx.cursor.Bump() // opening '"'
	if lx.scanQuotedBody('"') {
		return lx.emit(token.StringLit, start)
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
	return tok
}

func (lx *Lexer) scanCharlist() token.Token {
	start := lx.cursor.Mark()
	if lx.tryOp("'''") {
		return lx.scanHeredoc(start, '\'', token.CharlistLit, true)
	}
	lx.cursor.Bump()
	if lx.scanQuotedBody('\'') {
		return lx.emit(token.CharlistLit, start)
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated charlist literal")
	return tok
}

// scanQuotedBody consumes up to and including the closing quote.
// Returns false on EOF.
func (lx *Lexer) scanQuotedBody(quote byte) bool {
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		switch {
		case b == quote:
			return true
		case b == '\\':
			lx.cursor.Bump()
		case b == '#' && lx.cursor.Peek() == '{':
			if !lx.scanInterpolation() {
				return false
			}
		}
	}
	return false
}

// scanInterpolation consumes "{...}" after '#'. Bodies nested inside another
// interpolation are not recorded: they belong to the outer body's own tokens.
func (lx *Lexer) scanInterpolation() bool {
	lx.cursor.Bump() // '{'
	body := lx.cursor.Mark()
	lx.interpDepth++
	ok := lx.skipInterpolation()
	lx.interpDepth--
	if ok && lx.interpDepth == 0 {
		sp := lx.cursor.SpanFrom(body)
		sp.End-- // '}'
		lx.interp = append(lx.interp, sp)
	}
	return ok
}

// skipInterpolation consumes an interpolation body after "#{" through the matching '}'.
func (lx *Lexer) skipInterpolation() bool {
	depth := 1
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		switch b {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return true
			}
		case '"', '\'':
			if !lx.scanQuotedBody(b) {
				return false
			}
		}
	}
	return false
}

func (lx *Lexer) scanHeredoc(start Mark, quote byte, kind token.Kind, interpolates bool) token.Token {
	for !lx.cursor.EOF() {
		if lx.try3(quote, quote, quote) {
			return lx.emit(kind, start)
		}
		b := lx.cursor.Bump()
		if b == '\\' {
			lx.cursor.Bump()
			continue
		}
		if interpolates && b == '#' && lx.cursor.Peek() == '{' && !lx.scanInterpolation() {
			break
		}
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated heredoc")
	return tok
}

var sigilClosers = map[byte]byte{
	'/': '/', '|': '|', '"': '"', '\'': '\'',
	'(': ')', '[': ']', '{': '}', '<': '>',
}

// scanSigil: ~r/re/i, ~w(a b c)a, ~S"raw".
func (lx *Lexer) scanSigil() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '~'
	// ~s, ~r, ~w интерполируют; ~S, ~R и многобуквенные нет
	interpolates := isLower(lx.cursor.Peek())
	for isAlpha(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	open := lx.cursor.Peek()
	closer, ok := sigilClosers[open]
	if !ok {
		tok := lx.emit(token.Invalid, start)
		lx.errLex(diag.LexUnknownChar, tok.Span, "unknown sigil delimiter")
		return tok
	}
	lx.cursor.Bump()
	if (open == '"' || open == '\'') && lx.cursor.Peek() == open && lx.cursor.PeekAt(1) == open {
		lx.cursor.Off += 2
		tok := lx.scanHeredoc(start, open, token.SigilLit, interpolates)
		lx.eatSigilModifiers()
		if tok.Kind == token.SigilLit {
			interp := tok.Interp
			tok = lx.emit(token.SigilLit, start)
			tok.Interp = interp
		}
		return tok
	}
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == '\\' {
			lx.cursor.Bump()
			continue
		}
		if interpolates && b == '#' && lx.cursor.Peek() == '{' {
			if !lx.scanInterpolation() {
				break
			}
			continue
		}
		if b == closer {
			lx.eatSigilModifiers()
			return lx.emit(token.SigilLit, start)
		}
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated sigil")
	return tok
}

func (lx *Lexer) eatSigilModifiers() {
	for isAlpha(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}

// isAtomStart: ':' followed by a name start or a quote, and not "::".
func (lx *Lexer) isAtomStart() bool {
	b := lx.cursor.PeekAt(1)
	return b == '"' || isIdentStartByte(b) || b >= utf8RuneSelf
}

// scanAtom: :ok, :error?, :"quoted atom", :Elixir.
func (lx *Lexer) scanAtom() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // ':'
	if lx.cursor.Peek() == '"' {
		lx.cursor.Bump()
		if lx.scanQuotedBody('"') {
			return lx.emit(token.AtomLit, start)
		}
		tok := lx.emit(token.Invalid, start)
		lx.errLex(diag.LexBadAtom, tok.Span, "unterminated quoted atom")
		return tok
	}
	for {
		r, sz := lx.peekRune()
		if sz == 0 || !(isIdentContinueRune(r) || r == '@' || (r == '.' && isUpper(lx.cursor.PeekAt(1)))) {
			break
		}
		lx.bumpRune()
	}
	if b := lx.cursor.Peek(); b == '?' || b == '!' {
		lx.cursor.Bump()
	}
	return lx.emit(token.AtomLit, start)
}
