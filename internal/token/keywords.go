package token

var keywords = map[string]Kind{
	"true":  KwTrue,
	"false": KwFalse,
	"nil":   KwNil,
	"do":    KwDo,
	"end":   KwEnd,
	"else":  KwElse,
	"fn":    KwFn,
	"when":  KwWhen,
	"and":   KwAnd,
	"or":    KwOr,
	"not":   KwNot,
	"in":    KwIn,
}

// LookupKeyword returns the keyword kind for ident.
// Keywords are case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
