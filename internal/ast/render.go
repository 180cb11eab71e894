package ast

import (
	"strings"
)

// Render prints n as canonical host source text. Parentheses are inserted
// only where operator precedence requires them.
func Render(n Node) string {
	if n == nil {
		return ""
	}
	var r renderer
	r.node(n)
	return r.sb.String()
}

type renderer struct {
	sb strings.Builder
}

func (r *renderer) node(n Node) {
	switch n := n.(type) {
	case *Ident:
		r.sb.WriteString(n.Name)
	case *Literal:
		r.literal(n)
	case *ListLit:
		if !n.Implicit {
			r.sb.WriteByte('[')
		}
		r.list(n.Elems)
		if len(n.Elems) > 0 && len(n.Keywords) > 0 {
			r.sb.WriteString(", ")
		}
		r.pairs(n.Keywords)
		if !n.Implicit {
			r.sb.WriteByte(']')
		}
	case *TupleLit:
		r.sb.WriteByte('{')
		r.list(n.Elems)
		r.sb.WriteByte('}')
	case *MapLit:
		r.sb.WriteByte('%')
		if n.Struct != nil {
			r.node(n.Struct)
		}
		r.sb.WriteByte('{')
		if n.Update != nil {
			r.node(n.Update)
			r.sb.WriteString(" | ")
		}
		r.pairs(n.Pairs)
		r.sb.WriteByte('}')
	case *Alias:
		r.sb.WriteString(strings.Join(n.Segments, "."))
	case *AttrRef:
		r.sb.WriteByte('@')
		r.sb.WriteString(n.Name)
	case *Dot:
		r.operand(n.Left, PrecUnary+1, false)
		r.sb.WriteByte('.')
		r.sb.WriteString(n.Name)
	case *Call:
		r.call(n)
	case *OpApp:
		r.opApp(n)
	case *Block:
		r.block(n)
	case *Bad:
		r.sb.WriteString("<invalid>")
	default:
		r.sb.WriteString("<unknown>")
	}
}

func (r *renderer) literal(n *Literal) {
	if n.Value != "" {
		r.sb.WriteString(n.Value)
		return
	}
	switch n.Kind {
	case LitNil:
		r.sb.WriteString("nil")
	case LitString:
		r.sb.WriteString(`""`)
	case LitCharlist:
		r.sb.WriteString(`''`)
	}
}

func (r *renderer) list(elems []Node) {
	for i, e := range elems {
		if i > 0 {
			r.sb.WriteString(", ")
		}
		r.node(e)
	}
}

func (r *renderer) pairs(ps []Pair) {
	for i, p := range ps {
		if i > 0 {
			r.sb.WriteString(", ")
		}
		if p.Keyword {
			r.sb.WriteString(KeywordName(p.Key))
			r.sb.WriteString(": ")
		} else {
			r.node(p.Key)
			r.sb.WriteString(" => ")
		}
		r.node(p.Value)
	}
}

// KeywordName returns the key text of a keyword pair key (`:a` → `a`).
func KeywordName(key Node) string {
	if lit, ok := key.(*Literal); ok {
		return strings.TrimPrefix(lit.Value, ":")
	}
	return Render(key)
}

func (r *renderer) call(n *Call) {
	r.operand(n.Callee, PrecUnary+1, false)
	switch {
	case n.Parens:
		r.sb.WriteByte('(')
		r.list(n.Args)
		r.sb.WriteByte(')')
	case len(n.Args) > 0:
		r.sb.WriteByte(' ')
		r.list(n.Args)
	}
	if n.Do != nil {
		r.sb.WriteByte(' ')
		r.block(n.Do)
	}
}

func (r *renderer) opApp(n *OpApp) {
	if n.IsUnary() {
		if name, arity, ok := captureRef(n); ok {
			r.sb.WriteByte('&')
			r.operand(name, PrecMult, false)
			r.sb.WriteByte('/')
			r.node(arity)
			return
		}
		r.sb.WriteString(n.Op)
		if IsWordOp(n.Op) {
			r.sb.WriteByte(' ')
		}
		r.operand(n.Operands[0], opPrec(n), false)
		return
	}
	if n.Op == "[]" && len(n.Operands) == 2 {
		r.operand(n.Operands[0], PrecUnary+1, false)
		r.sb.WriteByte('[')
		r.node(n.Operands[1])
		r.sb.WriteByte(']')
		return
	}
	if n.Op == "->" && len(n.Operands) == 2 {
		r.node(n.Operands[0])
		r.sb.WriteString(" -> ")
		r.node(n.Operands[1])
		return
	}
	prec, right, _ := BinaryPrec(n.Op)
	if n.Op == "..//" && len(n.Operands) == 3 {
		r.operand(n.Operands[0], prec, right)
		r.sb.WriteString("..")
		r.operand(n.Operands[1], prec, true)
		r.sb.WriteString("//")
		r.operand(n.Operands[2], prec, !right)
		return
	}
	for i, o := range n.Operands {
		if i > 0 && compactOps[n.Op] {
			r.sb.WriteString(n.Op)
		} else if i > 0 {
			r.sb.WriteByte(' ')
			r.sb.WriteString(n.Op)
			r.sb.WriteByte(' ')
		}
		// у левоассоциативного оператора правый операнд того же уровня в скобках, и наоборот
		strict := (i == 0) == right
		r.operand(o, prec, strict)
	}
}

// captureRef matches `&name/arity` and `&Mod.fun/arity`.
func captureRef(n *OpApp) (name, arity Node, ok bool) {
	if n.Op != "&" {
		return nil, nil, false
	}
	div, isOp := n.Operands[0].(*OpApp)
	if !isOp || div.Op != "/" || len(div.Operands) != 2 {
		return nil, nil, false
	}
	lit, isLit := div.Operands[1].(*Literal)
	if !isLit || lit.Kind != LitInt {
		return nil, nil, false
	}
	switch div.Operands[0].(type) {
	case *Ident, *Dot, *Call:
		return div.Operands[0], lit, true
	}
	return nil, nil, false
}

// operand renders n, wrapping it in parentheses when it binds weaker than prec.
func (r *renderer) operand(n Node, prec int, strict bool) {
	op, ok := n.(*OpApp)
	if !ok || op.Op == "->" {
		r.node(n)
		return
	}
	p := opPrec(op)
	if p < prec || (strict && p == prec) {
		r.sb.WriteByte('(')
		r.node(n)
		r.sb.WriteByte(')')
		return
	}
	r.node(n)
}

func (r *renderer) block(n *Block) {
	switch n.Kind {
	case BlockClause:
		r.stmts(n.Body)
		return
	case BlockFn:
		r.sb.WriteString("fn ")
	default:
		r.sb.WriteString("do ")
	}
	r.stmts(n.Body)
	for _, s := range n.Sections {
		r.sb.WriteByte(' ')
		r.sb.WriteString(s.Label)
		r.sb.WriteByte(' ')
		r.stmts(s.Body)
	}
	if len(n.Body) > 0 || len(n.Sections) > 0 {
		r.sb.WriteByte(' ')
	}
	r.sb.WriteString("end")
}

func (r *renderer) stmts(body []Node) {
	for i, s := range body {
		if i > 0 {
			r.sb.WriteString("; ")
		}
		r.node(s)
	}
}
