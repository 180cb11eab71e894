package target

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"pipebind/internal/ast"
	"pipebind/internal/token"
)

// Suggest proposes a variable name for targets that spell one out:
// `"user"` and `:user` both suggest `user`.
func Suggest(n ast.Node) (string, bool) {
	lit, ok := n.(*ast.Literal)
	if !ok {
		return "", false
	}
	var name string
	switch lit.Kind {
	case ast.LitString:
		if len(lit.Value) < 2 || !strings.HasPrefix(lit.Value, `"`) || !strings.HasSuffix(lit.Value, `"`) {
			return "", false
		}
		name = lit.Value[1 : len(lit.Value)-1]
	case ast.LitAtom:
		name = strings.TrimPrefix(lit.Value, ":")
	default:
		return "", false
	}
	if !IsVariableName(name) {
		return "", false
	}
	return name, true
}

// IsVariableName reports whether s is spelled like a host variable:
// lower-case letter or '_' first, then letters, digits and '_', with an
// optional trailing '?' or '!'. Keywords are excluded.
func IsVariableName(s string) bool {
	if s == "" {
		return false
	}
	if _, kw := token.LookupKeyword(s); kw {
		return false
	}
	body := strings.TrimRight(s, "?!")
	if len(s)-len(body) > 1 || body == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(body)
	if first != '_' && !(unicode.IsLetter(first) && !unicode.IsUpper(first)) {
		return false
	}
	for _, r := range body {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
