package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"pipebind/internal/ast"
	"pipebind/internal/source"
)

type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Role     string          `json:"role,omitempty"`
	Start    uint32          `json:"start"`
	End      uint32          `json:"end"`
	Text     string          `json:"text,omitempty"`
	Fields   map[string]any  `json:"fields,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

type treeNode struct {
	label    string
	children []*treeNode
}

// child is a node with the role it plays in its parent ("callee", "do", ...).
type child struct {
	role string
	node ast.Node
}

// describe returns the node's type name, scalar fields and sub-nodes.
func describe(n ast.Node) (string, map[string]any, []child) {
	switch n := n.(type) {
	case *ast.Ident:
		f := map[string]any{"name": n.Name}
		if n.Context != "" {
			f["context"] = n.Context
		}
		return "Ident", f, nil
	case *ast.Literal:
		return "Literal", map[string]any{"kind": n.Kind.String(), "value": n.Value}, elems("interp", n.Interp)
	case *ast.ListLit:
		f := map[string]any{}
		if n.Implicit {
			f["implicit"] = true
		}
		return "List", f, append(elems("", n.Elems), pairs(n.Keywords)...)
	case *ast.TupleLit:
		return "Tuple", nil, elems("", n.Elems)
	case *ast.MapLit:
		var cs []child
		if n.Struct != nil {
			cs = append(cs, child{"struct", n.Struct})
		}
		if n.Update != nil {
			cs = append(cs, child{"update", n.Update})
		}
		return "Map", nil, append(cs, pairs(n.Pairs)...)
	case *ast.Alias:
		return "Alias", map[string]any{"name": strings.Join(n.Segments, ".")}, nil
	case *ast.AttrRef:
		return "Attr", map[string]any{"name": n.Name}, nil
	case *ast.Call:
		cs := []child{{"callee", n.Callee}}
		cs = append(cs, elems("arg", n.Args)...)
		if n.Do != nil {
			cs = append(cs, child{"do", n.Do})
		}
		return "Call", map[string]any{"parens": n.Parens}, cs
	case *ast.Dot:
		return "Dot", map[string]any{"name": n.Name}, []child{{"left", n.Left}}
	case *ast.OpApp:
		return "Op", map[string]any{"op": n.Op}, elems("", n.Operands)
	case *ast.Block:
		cs := elems("", n.Body)
		for _, s := range n.Sections {
			for _, st := range s.Body {
				cs = append(cs, child{s.Label, st})
			}
		}
		return "Block", map[string]any{"kind": n.Kind.String()}, cs
	case *ast.Bad:
		return "Bad", nil, nil
	case nil:
		return "<nil>", nil, nil
	default:
		return fmt.Sprintf("%T", n), nil, nil
	}
}

func elems(role string, ns []ast.Node) []child {
	out := make([]child, 0, len(ns))
	for _, n := range ns {
		out = append(out, child{role, n})
	}
	return out
}

func pairs(ps []ast.Pair) []child {
	out := make([]child, 0, 2*len(ps))
	for _, p := range ps {
		out = append(out, child{"key", p.Key}, child{"value", p.Value})
	}
	return out
}

func nodeSpan(n ast.Node) source.Span {
	if n == nil {
		return source.Span{}
	}
	return n.Span()
}

func buildTreeNode(n ast.Node, role string, fs *source.FileSet) *treeNode {
	typ, fields, children := describe(n)
	var sb strings.Builder
	if role != "" {
		sb.WriteString(role)
		sb.WriteString(": ")
	}
	sb.WriteString(typ)
	for _, k := range []string{"name", "op", "kind", "value", "context", "parens", "implicit"} {
		if v, ok := fields[k]; ok {
			fmt.Fprintf(&sb, " %s=%v", k, v)
		}
	}
	fmt.Fprintf(&sb, " (span: %s)", formatSpan(nodeSpan(n), fs))
	tn := &treeNode{label: sb.String()}
	for _, c := range children {
		tn.children = append(tn.children, buildTreeNode(c.node, c.role, fs))
	}
	return tn
}

func writeTree(w io.Writer, n *treeNode, prefix string, last bool, root bool) {
	switch {
	case root:
		fmt.Fprintln(w, n.label)
	case last:
		fmt.Fprintf(w, "%s└─ %s\n", prefix, n.label)
		prefix += "   "
	default:
		fmt.Fprintf(w, "%s├─ %s\n", prefix, n.label)
		prefix += "│  "
	}
	for i, c := range n.children {
		writeTree(w, c, prefix, i == len(n.children)-1, false)
	}
}

// FormatASTPretty prints the file as an indented tree.
func FormatASTPretty(w io.Writer, file *ast.File, fs *source.FileSet) error {
	if file == nil {
		return fmt.Errorf("file not found")
	}
	header := "File"
	if fs != nil && int(file.ID) < fs.Len() {
		header = fs.Get(file.ID).FormatPath("auto", fs.BaseDir())
	}
	root := &treeNode{label: fmt.Sprintf("%s (span: %s)", header, formatSpan(file.Span, fs))}
	for i, n := range file.Body {
		root.children = append(root.children, buildTreeNode(n, fmt.Sprintf("[%d]", i), fs))
	}
	writeTree(w, root, "", true, true)
	return nil
}

func buildJSONNode(n ast.Node, role string) ASTNodeOutput {
	typ, fields, children := describe(n)
	sp := nodeSpan(n)
	out := ASTNodeOutput{
		Type:   typ,
		Role:   role,
		Start:  sp.Start,
		End:    sp.End,
		Text:   ast.Render(n),
		Fields: fields,
	}
	if len(out.Fields) == 0 {
		out.Fields = nil
	}
	for _, c := range children {
		out.Children = append(out.Children, buildJSONNode(c.node, c.role))
	}
	return out
}

// FormatASTJSON writes the file as a JSON tree.
func FormatASTJSON(w io.Writer, file *ast.File) error {
	if file == nil {
		return fmt.Errorf("file not found")
	}
	output := ASTNodeOutput{
		Type:  "File",
		Start: file.Span.Start,
		End:   file.Span.End,
	}
	for _, n := range file.Body {
		output.Children = append(output.Children, buildJSONNode(n, ""))
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
