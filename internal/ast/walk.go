package ast

// Inspect traverses the tree rooted at n in depth-first order. It calls f(n);
// if f returns true, Inspect descends into the children of n.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}

// Children returns the direct child nodes of n in source order.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *ListLit:
		out := append([]Node(nil), n.Elems...)
		return appendPairs(out, n.Keywords)
	case *TupleLit:
		return n.Elems
	case *MapLit:
		var out []Node
		if n.Struct != nil {
			out = append(out, n.Struct)
		}
		if n.Update != nil {
			out = append(out, n.Update)
		}
		return appendPairs(out, n.Pairs)
	case *Call:
		out := make([]Node, 0, len(n.Args)+2)
		out = append(out, n.Callee)
		out = append(out, n.Args...)
		if n.Do != nil {
			out = append(out, n.Do)
		}
		return out
	case *Literal:
		return n.Interp
	case *Dot:
		return []Node{n.Left}
	case *OpApp:
		return n.Operands
	case *Block:
		out := append([]Node(nil), n.Body...)
		for _, s := range n.Sections {
			out = append(out, s.Body...)
		}
		return out
	default:
		return nil
	}
}

func appendPairs(out []Node, ps []Pair) []Node {
	for _, p := range ps {
		out = append(out, p.Key, p.Value)
	}
	return out
}
