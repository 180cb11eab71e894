package ast_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"pipebind/internal/ast"
)

func TestInspectOrder(t *testing.T) {
	// x |> assign_to(y)
	tree := bin("|>", id("x"), &ast.Call{Callee: id("assign_to"), Parens: true, Args: []ast.Node{id("y")}})

	var names []string
	ast.Inspect(tree, func(n ast.Node) bool {
		if i, ok := n.(*ast.Ident); ok {
			names = append(names, i.Name)
		}
		return true
	})
	if diff := cmp.Diff([]string{"x", "assign_to", "y"}, names); diff != "" {
		t.Errorf("visit order mismatch (-want +got):\n%s", diff)
	}
}

func TestInspectPrune(t *testing.T) {
	tree := &ast.TupleLit{Elems: []ast.Node{
		&ast.ListLit{Elems: []ast.Node{id("hidden")}},
		id("seen"),
	}}
	var names []string
	ast.Inspect(tree, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.ListLit:
			return false
		case *ast.Ident:
			names = append(names, n.Name)
		}
		return true
	})
	if diff := cmp.Diff([]string{"seen"}, names); diff != "" {
		t.Errorf("prune mismatch (-want +got):\n%s", diff)
	}
}

func TestChildrenMapAndBlock(t *testing.T) {
	m := &ast.MapLit{
		Update: id("m"),
		Pairs:  []ast.Pair{{Key: lit(ast.LitAtom, ":a"), Value: id("v"), Keyword: true}},
	}
	if got := len(ast.Children(m)); got != 3 {
		t.Errorf("map children = %d, want 3", got)
	}
	b := &ast.Block{Body: []ast.Node{id("a")}, Sections: []ast.Section{{Label: "else", Body: []ast.Node{id("b"), id("c")}}}}
	if got := len(ast.Children(b)); got != 3 {
		t.Errorf("block children = %d, want 3", got)
	}
}
