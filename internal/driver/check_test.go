package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"pipebind/internal/diag"
)

func checkSrc(t *testing.T, src string, mutate func(*Options)) (*Result, []*diag.Diagnostic) {
	t.Helper()
	opts := Options{WarnUnused: true}
	if mutate != nil {
		mutate(&opts)
	}
	res, err := CheckSource(context.Background(), "test.ex", []byte(src), opts)
	if err != nil {
		t.Fatalf("CheckSource: %v", err)
	}
	return res, res.Diagnostics()
}

func codeIDs(diags []*diag.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Code.ID())
	}
	return out
}

func TestCheckBindings(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		mutate func(*Options)
		want   []string
	}{
		{
			name: "pipe form used later",
			src: `defmodule M do
  def run(v) do
    v |> assign_to(x)
    x
  end
end
`,
			want: []string{},
		},
		{
			name: "pipe form never read",
			src: `def run(v) do
  v |> assign_to(x)
  :ok
end
`,
			want: []string{"SCP4001"},
		},
		{
			name: "underscore name is never unused",
			src:  "1 |> assign_to(_ignored)\n",
			want: []string{},
		},
		{
			name: "unused warning disabled",
			src:  "1 |> assign_to(x)\n",
			mutate: func(o *Options) {
				o.WarnUnused = false
			},
			want: []string{},
		},
		{
			name: "direct form string target",
			src:  "assign_to(1, \"user\")\n",
			want: []string{"BND3007"},
		},
		{
			name: "pipe form attribute target",
			src:  "1 |> assign_to(@limit)\n",
			want: []string{"BND3001"},
		},
		{
			name: "remote call target",
			src:  "1 |> assign_to(Map.get(m, :k))\n",
			want: []string{"BND3002"},
		},
		{
			name: "tuple target",
			src:  "1 |> assign_to({a, b})\n",
			want: []string{"BND3005"},
		},
		{
			name: "qualified macro call",
			src:  "Pipebind.assign_to(1, :user)\n",
			want: []string{"BND3009"},
		},
		{
			name: "direct form with one argument",
			src:  "assign_to(x)\n",
			want: []string{"BND3099"},
		},
		{
			name: "piped with two arguments",
			src:  "1 |> assign_to(a, b)\n",
			want: []string{"BND3099"},
		},
		{
			name: "rebind reported when enabled",
			src: `def f(x) do
  1 |> assign_to(x)
  x
end
`,
			mutate: func(o *Options) {
				o.ReportRebind = true
			},
			want: []string{"SCP4002"},
		},
		{
			name: "rebind silent by default",
			src: `def f(x) do
  1 |> assign_to(x)
  x
end
`,
			want: []string{},
		},
		{
			name: "def bodies do not share scope",
			src: `def a do
  1 |> assign_to(x)
  x
end

def b do
  2 |> assign_to(x)
  x
end
`,
			mutate: func(o *Options) {
				o.ReportRebind = true
			},
			want: []string{},
		},
		{
			name: "clause bindings stay in the clause",
			src: `case v do
  {:ok, y} -> y |> assign_to(z)
end
z
`,
			want: []string{"SCP4001"},
		},
		{
			name: "shadowed before read",
			src: `1 |> assign_to(x)
2 |> assign_to(x)
x
`,
			want: []string{"SCP4001"},
		},
		{
			name: "read through match",
			src: `1 |> assign_to(x)
y = x + 1
y
`,
			want: []string{},
		},
		{
			name: "rebind never read is not unused",
			src: `def f(v) do
  x = v
  v |> g() |> assign_to(x)
  :ok
end
`,
			want: []string{},
		},
		{
			name: "read inside string interpolation",
			src: `def f(v) do
  v |> assign_to(u)
  IO.puts("got #{u}")
end
`,
			want: []string{},
		},
		{
			name: "read inside heredoc interpolation",
			src: "v |> assign_to(u)\n\"\"\"\nvalue: #{u}\n\"\"\"\n",
			want: []string{},
		},
		{
			name: "read inside sigil interpolation",
			src:  "v |> assign_to(u)\n~s(#{u})\n",
			want: []string{},
		},
		{
			name: "read inside quoted atom",
			src:  "v |> assign_to(u)\n:\"a#{u}\"\n",
			want: []string{},
		},
		{
			name: "read inside charlist interpolation",
			src:  "v |> assign_to(u)\n'a#{u}'\n",
			want: []string{},
		},
		{
			name: "nested interpolation",
			src:  "v |> assign_to(u)\n\"a#{\"b#{u}\"}\"\n",
			want: []string{},
		},
		{
			name: "uppercase sigil does not interpolate",
			src:  "v |> assign_to(u)\n~S(#{u})\n",
			want: []string{"SCP4001"},
		},
		{
			name: "quoted code is not checked for unused",
			src: `quote do
  1 |> assign_to(x)
end
`,
			want: []string{},
		},
		{
			name: "custom macro name",
			src: `1 |> bind(:x)
assign_to(1, :y)
`,
			mutate: func(o *Options) {
				o.Macro = "bind"
			},
			want: []string{"BND3009"},
		},
		{
			name: "syntax error still checks the rest",
			src: `x = (1
1 |> assign_to("user")
`,
			want: nil, // only checked for presence below
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := checkSrc(t, tt.src, tt.mutate)
			got := codeIDs(diags)
			if tt.want == nil {
				if len(got) == 0 {
					t.Fatal("expected diagnostics")
				}
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("codes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheckDiagnosticDetails(t *testing.T) {
	res, diags := checkSrc(t, "1 |> assign_to(\"user\")\n", nil)
	if len(diags) != 1 {
		t.Fatalf("want 1 diagnostic, got %v", codeIDs(diags))
	}
	d := diags[0]
	if d.Severity != diag.SevError {
		t.Errorf("severity = %v", d.Severity)
	}
	if got := res.FileSet.Text(d.Primary); got != `"user"` {
		t.Errorf("primary span text = %q", got)
	}
	if !strings.Contains(d.Message, "a string literal") || !strings.Contains(d.Message, "assign_to(value, my_var)") {
		t.Errorf("message = %q", d.Message)
	}
	if len(d.Fixes) != 1 || d.Fixes[0].Edits[0].NewText != "user" {
		t.Errorf("fixes = %+v", d.Fixes)
	}
}

func TestCheckMaxDiagnostics(t *testing.T) {
	src := "1 |> assign_to(\"a\")\n1 |> assign_to(\"b\")\n1 |> assign_to(\"c\")\n"
	res, diags := checkSrc(t, src, func(o *Options) { o.MaxDiagnostics = 2 })
	if len(diags) != 2 {
		t.Fatalf("diags = %v", codeIDs(diags))
	}
	if res.Dropped() != 1 {
		t.Errorf("Dropped = %d, want 1", res.Dropped())
	}
}

func TestCheckUnusedDetails(t *testing.T) {
	res, diags := checkSrc(t, "1 |> assign_to(total)\n", nil)
	if len(diags) != 1 || diags[0].Code != diag.ScpUnusedTarget {
		t.Fatalf("diags = %v", codeIDs(diags))
	}
	d := diags[0]
	if d.Severity != diag.SevWarning {
		t.Errorf("severity = %v", d.Severity)
	}
	if got := res.FileSet.Text(d.Primary); got != "total" {
		t.Errorf("primary span text = %q", got)
	}
	if len(d.Fixes) != 1 || d.Fixes[0].Edits[0].NewText != "_total" {
		t.Errorf("fixes = %+v", d.Fixes)
	}
}

func TestCheckRebindNote(t *testing.T) {
	src := "x = 1\n2 |> assign_to(x)\nx\n"
	res, diags := checkSrc(t, src, func(o *Options) { o.ReportRebind = true })
	if len(diags) != 1 || diags[0].Code != diag.ScpRebind {
		t.Fatalf("diags = %v", codeIDs(diags))
	}
	if len(diags[0].Notes) != 1 {
		t.Fatalf("notes = %+v", diags[0].Notes)
	}
	start, _ := res.FileSet.Resolve(diags[0].Notes[0].Span)
	if start.Line != 1 {
		t.Errorf("previous binding line = %d, want 1", start.Line)
	}
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
}

func TestCheckDir(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"lib/a.ex":        "1 |> assign_to(:user)\n",
		"lib/b.exs":       "1 |> assign_to(x)\nx\n",
		"deps/c.ex":       "assign_to(1, 2)\n",
		".elixir_ls/d.ex": "assign_to(1, 2)\n",
		"README.md":       "assign_to(1, 2)\n",
	})

	var (
		mu     sync.Mutex
		events []Event
	)
	opts := Options{
		WarnUnused: true,
		Jobs:       2,
		Progress: SinkFunc(func(e Event) {
			mu.Lock()
			events = append(events, e)
			mu.Unlock()
		}),
	}
	res, err := CheckDir(context.Background(), root, opts)
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}

	var paths []string
	for _, f := range res.Files {
		rel, _ := filepath.Rel(root, f.Path)
		paths = append(paths, filepath.ToSlash(rel))
	}
	if diff := cmp.Diff([]string{"lib/a.ex", "lib/b.exs"}, paths); diff != "" {
		t.Errorf("files (-want +got):\n%s", diff)
	}
	if !res.HasErrors() {
		t.Error("expected errors from lib/a.ex")
	}
	if got := codeIDs(res.Files[0].Bag.Items()); !cmp.Equal(got, []string{"BND3009"}) {
		t.Errorf("a.ex codes = %v", got)
	}
	if res.Files[1].Bag.Len() != 0 {
		t.Errorf("b.exs codes = %v", codeIDs(res.Files[1].Bag.Items()))
	}

	mu.Lock()
	defer mu.Unlock()
	if len(events) == 0 || events[len(events)-1].File != "" || events[len(events)-1].Status != StatusDone {
		t.Errorf("last event = %+v", events[len(events)-1])
	}
}

func TestCheckFileMissing(t *testing.T) {
	res, err := CheckFile(context.Background(), filepath.Join(t.TempDir(), "nope.ex"), Options{})
	if err != nil {
		t.Fatalf("CheckFile: %v", err)
	}
	diags := res.Diagnostics()
	if len(diags) != 1 || diags[0].Code != diag.IOLoadFileError {
		t.Fatalf("diags = %v", codeIDs(diags))
	}
	if res.Files[0].AST != nil {
		t.Error("AST must be nil for a file that failed to load")
	}
}

func TestCheckDirCancelled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.ex": "x = 1\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := CheckDir(ctx, root, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestCheckDirMissingRoot(t *testing.T) {
	if _, err := CheckDir(context.Background(), filepath.Join(t.TempDir(), "missing"), Options{}); err == nil {
		t.Fatal("expected error for a missing directory")
	}
}

func TestCheckTimings(t *testing.T) {
	res, diags := checkSrc(t, "x = 1\nx\n", func(o *Options) { o.EnableTimings = true })
	if len(diags) != 1 || diags[0].Code != diag.ObsTimings {
		t.Fatalf("diags = %v", codeIDs(diags))
	}
	if res.HasErrors() {
		t.Error("timings must not count as errors")
	}
	if len(diags[0].Notes) != 1 || !strings.Contains(diags[0].Notes[0].Msg, `"phases"`) {
		t.Errorf("timing note = %+v", diags[0].Notes)
	}
}
