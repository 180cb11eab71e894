package target_test

import (
	"testing"

	"pipebind/internal/ast"
	"pipebind/internal/diag"
	"pipebind/internal/lexer"
	"pipebind/internal/parser"
	"pipebind/internal/source"
)

// parseNode разбирает одно выражение хост-языка.
func parseNode(t *testing.T, src string) ast.Node {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("target.ex", []byte(src)))
	bag := diag.NewBag(16)
	rep := diag.BagReporter{Bag: bag}
	n, ok := parser.ParseExpr(lexer.New(file, lexer.Options{Reporter: rep}), parser.Options{Reporter: rep})
	if !ok {
		for _, d := range bag.Items() {
			t.Logf("%s: %s", d.Code.ID(), d.Message)
		}
		t.Fatalf("cannot parse %q", src)
	}
	return n
}
