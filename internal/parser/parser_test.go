package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"pipebind/internal/ast"
	"pipebind/internal/diag"
)

func renderAll(nodes []ast.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, ast.Render(n))
	}
	return out
}

func TestParseFile_Statements(t *testing.T) {
	src := "a = 1\nb = a + 2; c = b\n\n# comment\nfoo(c)\n"
	f := parseOK(t, src)
	want := []string{"a = 1", "b = a + 2", "c = b", "foo(c)"}
	if diff := cmp.Diff(want, renderAll(f.Body)); diff != "" {
		t.Errorf("statements mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFile_PipelineContinuation(t *testing.T) {
	src := `conn
|> fetch_user()
|> assign_to(user)
|> render()
`
	f := parseOK(t, src)
	if len(f.Body) != 1 {
		t.Fatalf("want 1 statement, got %d: %v", len(f.Body), renderAll(f.Body))
	}
	if got := ast.Render(f.Body[0]); got != "conn |> fetch_user() |> assign_to(user) |> render()" {
		t.Errorf("render = %q", got)
	}
}

func TestParseFile_MinusOnNewLineStartsStatement(t *testing.T) {
	f := parseOK(t, "a\n-b\n")
	if diff := cmp.Diff([]string{"a", "-b"}, renderAll(f.Body)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestParseFile_NewlinesInsideDelimiters(t *testing.T) {
	f := parseOK(t, "foo(\n  a,\n  b\n)\n[1,\n 2]\n")
	if diff := cmp.Diff([]string{"foo(a, b)", "[1, 2]"}, renderAll(f.Body)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestParseFile_ModuleAndDefs(t *testing.T) {
	src := `defmodule MyApp.Accounts do
  @moduledoc false

  def get(id) do
    id
    |> fetch()
    |> assign_to(user)
    user
  end

  defp helper(x) when x > 0, do: x
end
`
	f := parseOK(t, src)
	if len(f.Body) != 1 {
		t.Fatalf("want 1 top-level node, got %v", renderAll(f.Body))
	}
	mod, ok := f.Body[0].(*ast.Call)
	if !ok || mod.CalleeName() != "defmodule" || mod.Do == nil {
		t.Fatalf("defmodule = %#v", f.Body[0])
	}
	if got := ast.Render(mod.Args[0]); got != "MyApp.Accounts" {
		t.Errorf("module name = %q", got)
	}
	if len(mod.Do.Body) != 3 {
		t.Fatalf("module body = %v", renderAll(mod.Do.Body))
	}

	def, ok := mod.Do.Body[1].(*ast.Call)
	if !ok || def.CalleeName() != "def" || def.Do == nil {
		t.Fatalf("def = %#v", mod.Do.Body[1])
	}
	if diff := cmp.Diff([]string{"id |> fetch() |> assign_to(user)", "user"}, renderAll(def.Do.Body)); diff != "" {
		t.Errorf("def body (-want +got):\n%s", diff)
	}

	defp := mod.Do.Body[2].(*ast.Call)
	if got := ast.Render(defp); got != "defp helper(x) when x > 0, do: x" {
		t.Errorf("defp = %q", got)
	}
}

func TestParseFile_IfElse(t *testing.T) {
	f := parseOK(t, "if ok? do\n  a\nelse\n  b\nend\n")
	call := f.Body[0].(*ast.Call)
	if call.Do == nil || len(call.Do.Sections) != 1 || call.Do.Sections[0].Label != "else" {
		t.Fatalf("if = %#v", call)
	}
	if got := ast.Render(call); got != "if ok? do a else b end" {
		t.Errorf("render = %q", got)
	}
}

func TestParseFile_CaseClauses(t *testing.T) {
	src := `case result do
  {:ok, value} ->
    value
    |> assign_to(v)
  {:error, _} -> nil
end
`
	f := parseOK(t, src)
	call := f.Body[0].(*ast.Call)
	if call.Do == nil || len(call.Do.Body) != 2 {
		t.Fatalf("case clauses = %v", renderAll(call.Do.Body))
	}
	first := call.Do.Body[0].(*ast.OpApp)
	if first.Op != "->" {
		t.Fatalf("clause op = %q", first.Op)
	}
	body := first.Operands[1].(*ast.Block)
	if diff := cmp.Diff([]string{"value |> assign_to(v)"}, renderAll(body.Body)); diff != "" {
		t.Errorf("clause body (-want +got):\n%s", diff)
	}
}

func TestParseFile_NoParensCalls(t *testing.T) {
	f := parseOK(t, "import Foo.Bar\nalias MyApp.Repo, as: R\nassign_to value, x\n")
	want := []string{"import Foo.Bar", "alias MyApp.Repo, as: R", "assign_to value, x"}
	if diff := cmp.Diff(want, renderAll(f.Body)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	call := f.Body[2].(*ast.Call)
	if call.Parens || len(call.Args) != 2 {
		t.Errorf("assign_to call = %#v", call)
	}
}

func TestParseFile_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"unclosed paren", "foo(a, b\n", diag.SynUnclosedParen},
		{"unclosed bracket", "[1, 2\n", diag.SynUnclosedBracket},
		{"unclosed tuple", "{1, 2\n", diag.SynUnclosedBrace},
		{"missing end", "def f do\n  x\n", diag.SynUnclosedBlock},
		{"stray end", "x\nend\n", diag.SynUnexpectedToken},
		{"junk after expr", "a = 1 )\n", diag.SynUnexpectedToken},
		{"missing operand", "a = \n", diag.SynExpectExpression},
		{"bad map entry", "%{1 2}\n", diag.SynBadMapEntry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag := parseSource(t, tt.src)
			if !bag.HasErrors() {
				t.Fatalf("expected errors for %q", tt.src)
			}
			found := false
			for _, d := range bag.Items() {
				if d.Code == tt.code {
					found = true
				}
			}
			if !found {
				t.Errorf("want %s, got %s", tt.code.ID(), diagnosticsSummary(bag))
			}
		})
	}
}

func TestParseFile_RecoversAfterError(t *testing.T) {
	f, bag := parseSource(t, "a = (1\nb = 2\n")
	if !bag.HasErrors() {
		t.Fatal("expected an error")
	}
	if len(f.Body) == 0 {
		t.Fatal("expected partial tree")
	}
}

func TestParseFile_Interpolation(t *testing.T) {
	src := "IO.puts(\"got #{a + b} and #{c}\")\n"
	f := parseOK(t, src)
	call, ok := f.Body[0].(*ast.Call)
	if !ok || len(call.Args) != 1 {
		t.Fatalf("body = %v", renderAll(f.Body))
	}
	lit, ok := call.Args[0].(*ast.Literal)
	if !ok {
		t.Fatalf("arg = %T", call.Args[0])
	}
	if diff := cmp.Diff([]string{"a + b", "c"}, renderAll(lit.Interp)); diff != "" {
		t.Errorf("interpolation (-want +got):\n%s", diff)
	}
	sp := lit.Interp[1].Span()
	if got := src[sp.Start:sp.End]; got != "c" {
		t.Errorf("span text = %q", got)
	}
	if got := ast.Render(lit); got != `"got #{a + b} and #{c}"` {
		t.Errorf("render = %q", got)
	}
}

func TestParseFile_InterpolationErrors(t *testing.T) {
	_, bag := parseSource(t, "x = \"a #{(} b\"\ny = 1\n")
	if !bag.HasErrors() {
		t.Fatal("expected a syntax error inside the interpolation")
	}
	for _, d := range bag.Items() {
		if d.Primary.Start < 7 || d.Primary.Start > 11 {
			t.Errorf("%s reported outside the interpolation at %d", d.Code.ID(), d.Primary.Start)
		}
	}
}
