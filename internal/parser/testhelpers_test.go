package parser

import (
	"fmt"
	"strings"
	"testing"

	"pipebind/internal/ast"
	"pipebind/internal/diag"
	"pipebind/internal/lexer"
	"pipebind/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseSource(t *testing.T, src string) (*ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.ex", []byte(src)))
	bag := diag.NewBag(100)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	res := ParseFile(fs, lx, Options{Reporter: rep, MaxErrors: 100})
	return res.File, bag
}

// parseOK парсит исходник и требует отсутствия ошибок.
func parseOK(t *testing.T, src string) *ast.File {
	t.Helper()
	f, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics for %q: %s", src, diagnosticsSummary(bag))
	}
	return f
}

func parseOneExpr(t *testing.T, src string) ast.Node {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("expr.ex", []byte(src)))
	bag := diag.NewBag(100)
	rep := diag.BagReporter{Bag: bag}
	n, ok := ParseExpr(lexer.New(file, lexer.Options{Reporter: rep}), Options{Reporter: rep})
	if !ok {
		t.Fatalf("ParseExpr(%q) failed: %s", src, diagnosticsSummary(bag))
	}
	return n
}
