package lexer

import (
	"golang.org/x/text/unicode/norm"

	"pipebind/internal/token"
)

// scanIdentOrKeyword scans an identifier, alias, keyword or keyword-list key.
// Identifiers may end in a single '?' or '!'. Non-ASCII identifiers are
// NFC-normalized so that equal names compare equal.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 {
		return token.Token{Kind: token.Invalid, Span: lx.cursor.SpanFrom(start)}
	}
	ascii := r < utf8RuneSelf
	upper := false
	if ascii {
		upper = isUpper(byte(r))
		lx.cursor.Bump()
	} else {
		if !isIdentStartRune(r) {
			lx.bumpRune()
			sp := lx.cursor.SpanFrom(start)
			lx.errUnknownChar(sp)
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		upper = isUpperRune(r)
		lx.bumpRune()
	}

	for {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		ascii = false
		lx.bumpRune()
	}

	// trailing ? / ! — но не "!=" и не "?:"
	if !upper {
		if b := lx.cursor.Peek(); (b == '?' || b == '!') && lx.cursor.PeekAt(1) != '=' {
			lx.cursor.Bump()
		}
	}

	nameSpan := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[nameSpan.Start:nameSpan.End])
	if !ascii {
		text = norm.NFC.String(text)
	}

	if lx.isKeySuffix() {
		lx.cursor.Bump() // ':'
		return token.Token{Kind: token.KwKey, Span: lx.cursor.SpanFrom(start), Text: text}
	}

	if upper {
		return token.Token{Kind: token.Alias, Span: nameSpan, Text: text}
	}
	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: nameSpan, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: nameSpan, Text: text}
}
