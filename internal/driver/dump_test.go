package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"pipebind/internal/ast"
	"pipebind/internal/token"
)

func TestTokenizeSource(t *testing.T) {
	res := TokenizeSource("t.ex", []byte("x |> assign_to(y)\n"), 0)
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %d", res.Bag.Len())
	}
	if last := res.Tokens[len(res.Tokens)-1]; last.Kind != token.EOF {
		t.Errorf("last token = %v", last.Kind)
	}
	var texts []string
	for _, tok := range res.Tokens {
		if tok.Kind == token.Ident {
			texts = append(texts, tok.Text)
		}
	}
	if diff := cmp.Diff([]string{"x", "assign_to", "y"}, texts); diff != "" {
		t.Errorf("idents (-want +got):\n%s", diff)
	}
}

func TestParse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.ex")
	if err := os.WriteFile(path, []byte("a = 1\nb = a + 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	res, err := Parse(path, 10)
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.Len() != 0 || len(res.AST.Body) != 2 {
		t.Fatalf("body=%d diags=%d", len(res.AST.Body), res.Bag.Len())
	}
	if got := ast.Render(res.AST.Body[1]); got != "b = a + 2" {
		t.Errorf("render = %q", got)
	}
	if _, err := Parse(filepath.Join(t.TempDir(), "missing.ex"), 10); err == nil {
		t.Error("expected load error")
	}
}

func TestParseExpr(t *testing.T) {
	node, res := ParseExpr(`Map.get(m, :k)`)
	if res.Bag.Len() != 0 {
		t.Fatalf("diags = %d", res.Bag.Len())
	}
	if _, ok := node.(*ast.Call); !ok {
		t.Errorf("node = %T", node)
	}
}

func TestDiscoverSingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.txt")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := Discover(path, []string{".ex"})
	if err != nil || len(got) != 1 || got[0] != path {
		t.Errorf("Discover = %v, %v", got, err)
	}
}
