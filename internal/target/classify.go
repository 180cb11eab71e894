package target

import (
	"pipebind/internal/ast"
)

// Classification is the category of a rejected binding target.
type Classification uint8

const (
	Unknown Classification = iota
	ModuleAttribute
	RemoteCall
	BinaryOrUnaryOp
	LocalCall
	TuplePattern
	ListLiteral
	StringLiteral
	NumberLiteral
	AtomLiteral
)

var classificationNames = [...]string{
	Unknown:         "Unknown",
	ModuleAttribute: "ModuleAttribute",
	RemoteCall:      "RemoteCall",
	BinaryOrUnaryOp: "BinaryOrUnaryOp",
	LocalCall:       "LocalCall",
	TuplePattern:    "TuplePattern",
	ListLiteral:     "ListLiteral",
	StringLiteral:   "StringLiteral",
	NumberLiteral:   "NumberLiteral",
	AtomLiteral:     "AtomLiteral",
}

func (c Classification) String() string {
	if int(c) < len(classificationNames) {
		return classificationNames[c]
	}
	return "Classification(?)"
}

// Classifications lists every category in declaration order.
func Classifications() []Classification {
	out := make([]Classification, 0, len(classificationNames))
	for i := range classificationNames {
		out = append(out, Classification(i))
	}
	return out
}

// ParseClassification looks a category up by name.
func ParseClassification(name string) (Classification, bool) {
	for i, s := range classificationNames {
		if s == name {
			return Classification(i), true
		}
	}
	return Unknown, false
}

// allowedOps — закрытый список операторов категории BinaryOrUnaryOp.
// Всё остальное (|>, &&, ===, ^, not, пользовательские) уходит в Unknown.
var allowedOps = map[string]struct{}{
	"+": {}, "-": {}, "*": {}, "/": {},
	"<>": {}, "++": {}, "--": {},
	"==": {}, "!=": {}, "<": {}, ">": {}, "<=": {}, ">=": {},
	"and": {}, "or": {},
}

// IsAllowedOp reports whether op belongs to the BinaryOrUnaryOp allow-list.
func IsAllowedOp(op string) bool {
	_, ok := allowedOps[op]
	return ok
}

// Classify assigns exactly one Classification to n. The first matching rule wins:
// attribute, remote call, allowed operator, local call, then literal kind.
func Classify(n ast.Node) Classification {
	switch {
	case isAttribute(n):
		return ModuleAttribute
	case isRemoteCall(n):
		return RemoteCall
	case isAllowedOpApp(n):
		return BinaryOrUnaryOp
	case isLocalCall(n):
		return LocalCall
	}
	return classifyValue(n)
}

func isAttribute(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.AttrRef:
		return true
	case *ast.OpApp:
		return n.Op == "@" && len(n.Operands) == 1
	}
	return false
}

func isRemoteCall(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.Call:
		return isQualifiedPath(n.Callee)
	case *ast.Dot:
		// Mod.fun и map.key без скобок
		return n.Name != ""
	}
	return false
}

func isQualifiedPath(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.Dot:
		return n.Name != ""
	case *ast.Alias:
		return len(n.Segments) > 1
	}
	return false
}

func isAllowedOpApp(n ast.Node) bool {
	op, ok := n.(*ast.OpApp)
	if !ok || len(op.Operands) == 0 || len(op.Operands) > 2 {
		return false
	}
	return IsAllowedOp(op.Op)
}

func isLocalCall(n ast.Node) bool {
	call, ok := n.(*ast.Call)
	if !ok {
		return false
	}
	_, ok = call.Callee.(*ast.Ident)
	return ok
}

func classifyValue(n ast.Node) Classification {
	switch n := n.(type) {
	case *ast.TupleLit:
		return TuplePattern
	case *ast.ListLit:
		return ListLiteral
	case *ast.Literal:
		switch n.Kind {
		case ast.LitString:
			return StringLiteral
		case ast.LitCharlist:
			// 'abc' — список кодов символов
			return ListLiteral
		case ast.LitInt, ast.LitFloat:
			return NumberLiteral
		case ast.LitAtom, ast.LitBool, ast.LitNil:
			return AtomLiteral
		default:
			return Unknown
		}
	default:
		return Unknown
	}
}
