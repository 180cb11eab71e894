package target

import (
	"pipebind/internal/ast"
)

// Identifier is a validated binding target.
type Identifier struct {
	Name    string
	Context string // lexical context tag, "" for an ordinary local variable
}

// Result of Validate. Exactly one of Ident and Rejected is meaningful.
type Result struct {
	Ident    Identifier
	Rejected ast.Node
}

// OK reports whether the target was accepted.
func (r Result) OK() bool { return r.Rejected == nil }

// Validate accepts n only when it is a bare, unqualified identifier. Any other
// node is returned unchanged in Result.Rejected; a nil node is rejected as Bad.
func Validate(n ast.Node) Result {
	switch n := n.(type) {
	case nil:
		return Result{Rejected: &ast.Bad{}}
	case *ast.Ident:
		if n == nil || n.Name == "" {
			return Result{Rejected: orBad(n)}
		}
		return Result{Ident: Identifier{Name: n.Name, Context: n.Context}}
	default:
		return Result{Rejected: n}
	}
}

func orBad(n *ast.Ident) ast.Node {
	if n == nil {
		return &ast.Bad{}
	}
	return n
}
