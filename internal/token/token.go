package token

import (
	"pipebind/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
	// Interp holds the body spans of top-level #{...} interpolations.
	Interp []source.Span
}

// IsLiteral reports whether the token is a number, string, charlist, atom, sigil, boolean or nil literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, CharlistLit, AtomLit, SigilLit, KwTrue, KwFalse, KwNil:
		return true
	default:
		return false
	}
}

// IsOperator reports whether the token can appear as a unary or binary operator.
func (t Token) IsOperator() bool {
	switch t.Kind {
	case Plus, Minus, Star, Slash, Concat, PlusPlus, MinusMinus, EqEq, BangEq, EqEqEq, BangEqEq,
		Lt, Gt, LtEq, GtEq, AndAnd, OrOr, Bang, PipeRight, Match, MatchRe, DotDot, Caret, Amp,
		LArrow, Backslash2, CustomOp, Pipe, ColonColon, At, KwAnd, KwOr, KwNot, KwIn, KwWhen:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwTrue, KwFalse, KwNil, KwDo, KwEnd, KwElse, KwFn, KwWhen, KwAnd, KwOr, KwNot, KwIn:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// AfterNewline reports whether a newline separates the token from the previous one.
func (t Token) AfterNewline() bool {
	for _, tr := range t.Leading {
		if tr.Kind == TriviaNewline {
			return true
		}
	}
	return false
}
