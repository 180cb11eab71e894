package ast

import (
	"pipebind/internal/source"
)

// Node is a syntax node of the host language. The set of variants is closed:
// only this package implements Node.
type Node interface {
	Span() source.Span
	node()
}

// Ident is a bare variable name. Context is the lexical context tag attached
// by macro hygiene; empty means none.
type Ident struct {
	Pos     source.Span
	Name    string
	Context string
}

// Literal is a scalar literal; Value keeps the raw source text.
// Interp holds the expressions of #{...} interpolations, in source order.
type Literal struct {
	Pos    source.Span
	Kind   LitKind
	Value  string
	Interp []Node
}

// ListLit is `[a, b]` or `[a: 1]`. Implicit lists have no brackets in source:
// trailing keyword arguments and stab clause heads.
type ListLit struct {
	Pos      source.Span
	Elems    []Node
	Keywords []Pair
	Implicit bool
}

type TupleLit struct {
	Pos   source.Span
	Elems []Node
}

// MapLit is `%{k => v}`, `%{a: 1}`, `%Struct{...}` or `%{m | a: 1}`.
type MapLit struct {
	Pos    source.Span
	Struct Node // nil for plain maps
	Update Node // nil unless `%{m | ...}`
	Pairs  []Pair
}

// Pair is one map or keyword entry. For keyword pairs Key is an atom literal.
type Pair struct {
	Key     Node
	Value   Node
	Keyword bool
}

// Alias is a dotted module name such as `Enum` or `MyApp.Repo`.
type Alias struct {
	Pos      source.Span
	Segments []string
}

// AttrRef is a module attribute read: `@name`.
type AttrRef struct {
	Pos  source.Span
	Name string
}

// Call is a function or macro invocation with or without parentheses.
// Do holds an attached `do ... end` block.
type Call struct {
	Pos    source.Span
	Callee Node
	Args   []Node
	Parens bool
	Do     *Block
}

// Dot is a qualified path `Left.Name`. An empty Name is the anonymous call
// form `fun.(args)`.
type Dot struct {
	Pos  source.Span
	Left Node
	Name string
}

// OpApp applies an operator to one (unary) or two (binary) operands.
type OpApp struct {
	Pos      source.Span
	Op       string
	Operands []Node
}

// Block is a `do ... end` or `fn ... end` body. Sections hold labelled
// continuations (else, after, rescue, catch).
type Block struct {
	Pos      source.Span
	Kind     BlockKind
	Body     []Node
	Sections []Section
}

type Section struct {
	Label string
	Body  []Node
}

// Bad marks a region that failed to parse.
type Bad struct {
	Pos source.Span
}

func (n *Ident) Span() source.Span    { return n.Pos }
func (n *Literal) Span() source.Span  { return n.Pos }
func (n *ListLit) Span() source.Span  { return n.Pos }
func (n *TupleLit) Span() source.Span { return n.Pos }
func (n *MapLit) Span() source.Span   { return n.Pos }
func (n *Alias) Span() source.Span    { return n.Pos }
func (n *AttrRef) Span() source.Span  { return n.Pos }
func (n *Call) Span() source.Span     { return n.Pos }
func (n *Dot) Span() source.Span      { return n.Pos }
func (n *OpApp) Span() source.Span    { return n.Pos }
func (n *Block) Span() source.Span    { return n.Pos }
func (n *Bad) Span() source.Span      { return n.Pos }

func (*Ident) node()    {}
func (*Literal) node()  {}
func (*ListLit) node()  {}
func (*TupleLit) node() {}
func (*MapLit) node()   {}
func (*Alias) node()    {}
func (*AttrRef) node()  {}
func (*Call) node()     {}
func (*Dot) node()      {}
func (*OpApp) node()    {}
func (*Block) node()    {}
func (*Bad) node()      {}

// IsUnary reports whether the application has a single operand.
func (n *OpApp) IsUnary() bool { return len(n.Operands) == 1 }

// CalleeName returns the name of an unqualified callee, or "".
func (n *Call) CalleeName() string {
	if id, ok := n.Callee.(*Ident); ok {
		return id.Name
	}
	return ""
}
