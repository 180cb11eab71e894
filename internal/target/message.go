package target

import (
	"fmt"
	"strings"

	"pipebind/internal/ast"
	"pipebind/internal/diag"
)

// CorrectedUsage is the fixed example every diagnostic shows.
const CorrectedUsage = "assign_to(value, my_var)"

// Diagnostic is the rendered explanation for one rejected target.
type Diagnostic struct {
	Classification Classification
	Source         string // ast.Render of the rejected node
	Message        string
	CorrectedUsage string
	CounterExample string // "" for Unknown
}

type template struct {
	category string // с артиклем: "a string literal"
	hint     string
	counter  string
}

// templates — единственная таблица текстов; индекс = Classification.
var templates = [...]template{
	Unknown: {
		hint: "assign_to/2 only binds bare variable names.",
	},
	ModuleAttribute: {
		category: "a module attribute",
		hint:     "Module attributes are compile-time constants and cannot be bound at runtime.",
		counter:  "assign_to(value, @my_attr)",
	},
	RemoteCall: {
		category: "a remote function call",
		hint:     "The result of a qualified call cannot be a binding target.",
		counter:  "assign_to(value, Module.function())",
	},
	BinaryOrUnaryOp: {
		category: "an operator expression",
		hint:     "Operator expressions are evaluated, not bound.",
		counter:  "assign_to(value, a + b)",
	},
	LocalCall: {
		category: "a local function call",
		hint:     "The result of a function call cannot be a binding target.",
		counter:  "assign_to(value, my_func())",
	},
	TuplePattern: {
		category: "a tuple pattern",
		hint:     "Destructuring is not supported; bind the whole value and match on it afterwards.",
		counter:  "assign_to(value, {a, b})",
	},
	ListLiteral: {
		category: "a list literal",
		hint:     "Destructuring is not supported; bind the whole value and match on it afterwards.",
		counter:  "assign_to(value, [a, b])",
	},
	StringLiteral: {
		category: "a string literal",
		hint:     "The target is a variable name, not a string holding one.",
		counter:  `assign_to(value, "my_var")`,
	},
	NumberLiteral: {
		category: "a number literal",
		hint:     "Literals cannot be bound to.",
		counter:  "assign_to(value, 123)",
	},
	AtomLiteral: {
		category: "an atom literal",
		hint:     "The target is a variable name, not an atom naming one.",
		counter:  "assign_to(value, :my_var)",
	},
}

func templateFor(c Classification) template {
	if int(c) < len(templates) {
		return templates[c]
	}
	return templates[Unknown]
}

// Render builds the diagnostic for node under classification c.
// The message always contains ast.Render(node).
func Render(c Classification, node ast.Node) Diagnostic {
	src := ast.Render(node)
	t := templateFor(c)

	var sb strings.Builder
	if t.category == "" {
		fmt.Fprintf(&sb, "invalid binding target `%s`: expected a bare variable name\n", src)
	} else {
		fmt.Fprintf(&sb, "invalid binding target `%s`: %s is not a variable name\n", src, t.category)
	}
	sb.WriteString(t.hint)
	sb.WriteString("\n\n  correct:   ")
	sb.WriteString(CorrectedUsage)
	if t.counter != "" {
		sb.WriteString("\n  incorrect: ")
		sb.WriteString(t.counter)
	}

	return Diagnostic{
		Classification: c,
		Source:         src,
		Message:        sb.String(),
		CorrectedUsage: CorrectedUsage,
		CounterExample: t.counter,
	}
}

// ClassifyAndRender classifies node and renders its diagnostic in one step.
func ClassifyAndRender(node ast.Node) (Classification, Diagnostic) {
	c := Classify(node)
	return c, Render(c, node)
}

// Category returns the prose name of c, e.g. "a string literal"; "" for Unknown.
func Category(c Classification) string { return templateFor(c).category }

// Headline returns the first line of the message.
func (d Diagnostic) Headline() string {
	head, _, _ := strings.Cut(d.Message, "\n")
	return head
}

var codes = [...]diag.Code{
	Unknown:         diag.BndUnknown,
	ModuleAttribute: diag.BndModuleAttribute,
	RemoteCall:      diag.BndRemoteCall,
	BinaryOrUnaryOp: diag.BndOperator,
	LocalCall:       diag.BndLocalCall,
	TuplePattern:    diag.BndTuplePattern,
	ListLiteral:     diag.BndListLiteral,
	StringLiteral:   diag.BndStringLiteral,
	NumberLiteral:   diag.BndNumberLiteral,
	AtomLiteral:     diag.BndAtomLiteral,
}

// Code maps a classification to its BND diagnostic code.
func (c Classification) Code() diag.Code {
	if int(c) < len(codes) {
		return codes[c]
	}
	return diag.BndUnknown
}

// FromCode is the inverse of Classification.Code.
func FromCode(code diag.Code) (Classification, bool) {
	for i, cc := range codes {
		if cc == code {
			return Classification(i), true
		}
	}
	return Unknown, false
}
