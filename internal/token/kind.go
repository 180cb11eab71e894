package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident is a lower-case or underscore-prefixed name, optionally ending in '?' or '!'.
	Ident
	// Alias is a capitalized module name segment.
	Alias
	// KwKey is a keyword-list key such as `name:`.
	KwKey

	// IntLit is an integer literal (decimal, 0x, 0o, 0b, underscores allowed).
	IntLit
	// FloatLit is a floating-point literal.
	FloatLit
	// StringLit is a double-quoted string literal, interpolation kept verbatim.
	StringLit
	// CharlistLit is a single-quoted charlist literal.
	CharlistLit
	// AtomLit is an atom literal: `:ok`, `:"quoted atom"`.
	AtomLit
	// SigilLit is a sigil such as `~r/re/i` or `~w(a b)`.
	SigilLit

	// KwTrue represents the 'true' keyword.
	KwTrue
	// KwFalse represents the 'false' keyword.
	KwFalse
	// KwNil represents the 'nil' keyword.
	KwNil
	// KwDo represents the 'do' keyword.
	KwDo
	// KwEnd represents the 'end' keyword.
	KwEnd
	// KwElse represents the 'else' keyword.
	KwElse
	// KwFn represents the 'fn' keyword.
	KwFn
	// KwWhen represents the 'when' keyword.
	KwWhen
	// KwAnd represents the 'and' keyword operator.
	KwAnd
	// KwOr represents the 'or' keyword operator.
	KwOr
	// KwNot represents the 'not' keyword operator.
	KwNot
	// KwIn represents the 'in' keyword operator.
	KwIn

	Plus       // +
	Minus      // -
	Star       // *
	Slash      // /
	Concat     // <>
	PlusPlus   // ++
	MinusMinus // --
	EqEq       // ==
	BangEq     // !=
	EqEqEq     // ===
	BangEqEq   // !==
	Lt         // <
	Gt         // >
	LtEq       // <=
	GtEq       // >=
	AndAnd     // &&
	OrOr       // ||
	Bang       // !
	PipeRight  // |>
	Match      // =
	MatchRe    // =~
	DotDot     // ..
	Caret      // ^
	Amp        // &
	LArrow     // <-
	Backslash2 // \\
	CustomOp   // <~>, |||, &&&, ~>, <~, >>>, <<<, ^^^ and friends
	Pipe       // |
	ColonColon // ::
	Arrow      // ->
	FatArrow   // =>
	At         // @
	Percent    // %
	Dot        // .
	Comma      // ,
	Semicolon  // ;
	LParen     // (
	RParen     // )
	LBracket   // [
	RBracket   // ]
	LBrace     // {
	RBrace     // }
)

var kindNames = [...]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	Ident:       "Ident",
	Alias:       "Alias",
	KwKey:       "KwKey",
	IntLit:      "IntLit",
	FloatLit:    "FloatLit",
	StringLit:   "StringLit",
	CharlistLit: "CharlistLit",
	AtomLit:     "AtomLit",
	SigilLit:    "SigilLit",
	KwTrue:      "KwTrue",
	KwFalse:     "KwFalse",
	KwNil:       "KwNil",
	KwDo:        "KwDo",
	KwEnd:       "KwEnd",
	KwElse:      "KwElse",
	KwFn:        "KwFn",
	KwWhen:      "KwWhen",
	KwAnd:       "KwAnd",
	KwOr:        "KwOr",
	KwNot:       "KwNot",
	KwIn:        "KwIn",
	Plus:        "Plus",
	Minus:       "Minus",
	Star:        "Star",
	Slash:       "Slash",
	Concat:      "Concat",
	PlusPlus:    "PlusPlus",
	MinusMinus:  "MinusMinus",
	EqEq:        "EqEq",
	BangEq:      "BangEq",
	EqEqEq:      "EqEqEq",
	BangEqEq:    "BangEqEq",
	Lt:          "Lt",
	Gt:          "Gt",
	LtEq:        "LtEq",
	GtEq:        "GtEq",
	AndAnd:      "AndAnd",
	OrOr:        "OrOr",
	Bang:        "Bang",
	PipeRight:   "PipeRight",
	Match:       "Match",
	MatchRe:     "MatchRe",
	DotDot:      "DotDot",
	Caret:       "Caret",
	Amp:         "Amp",
	LArrow:      "LArrow",
	Backslash2:  "Backslash2",
	CustomOp:    "CustomOp",
	Pipe:        "Pipe",
	ColonColon:  "ColonColon",
	Arrow:       "Arrow",
	FatArrow:    "FatArrow",
	At:          "At",
	Percent:     "Percent",
	Dot:         "Dot",
	Comma:       "Comma",
	Semicolon:   "Semicolon",
	LParen:      "LParen",
	RParen:      "RParen",
	LBracket:    "LBracket",
	RBracket:    "RBracket",
	LBrace:      "LBrace",
	RBrace:      "RBrace",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
