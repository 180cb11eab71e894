package fix

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pipebind/internal/diag"
	"pipebind/internal/driver"
	"pipebind/internal/source"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "a.ex")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestApplyCheckFixes(t *testing.T) {
	path := writeFile(t, "1 |> assign_to(\"user\")\nuser\n2 |> assign_to(total)\n")
	res, err := driver.CheckFile(context.Background(), path, driver.Options{WarnUnused: true})
	if err != nil {
		t.Fatal(err)
	}
	diags := res.Diagnostics()

	out, err := Apply(res.FileSet, diags, ApplyOptions{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(out.Applied) != 2 || len(out.Skipped) != 0 {
		t.Fatalf("applied %d, skipped %+v", len(out.Applied), out.Skipped)
	}
	for _, d := range diags {
		if !out.Fixed(d) {
			t.Errorf("%s not fixed", d.Code.ID())
		}
	}
	if got, want := readFile(t, path), "1 |> assign_to(user)\nuser\n2 |> assign_to(_total)\n"; got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
	if len(out.FileChanges) != 1 || out.FileChanges[0].EditCount != 2 {
		t.Errorf("changes = %+v", out.FileChanges)
	}
}

func TestApplyCodeFilter(t *testing.T) {
	path := writeFile(t, "1 |> assign_to(\"user\")\nuser\n2 |> assign_to(total)\n")
	res, err := driver.CheckFile(context.Background(), path, driver.Options{WarnUnused: true})
	if err != nil {
		t.Fatal(err)
	}
	out, err := Apply(res.FileSet, res.Diagnostics(), ApplyOptions{Codes: []diag.Code{diag.ScpUnusedTarget}})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Applied) != 1 || out.Applied[0].Diagnostic.Code != diag.ScpUnusedTarget {
		t.Errorf("applied = %+v", out.Applied)
	}
	if got := readFile(t, path); got != "1 |> assign_to(\"user\")\nuser\n2 |> assign_to(_total)\n" {
		t.Errorf("content = %q", got)
	}
}

func loadDiag(t *testing.T, content string) (*source.FileSet, source.FileID, string) {
	t.Helper()
	path := writeFile(t, content)
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	return fs, id, path
}

func fixed(sp source.Span, newText, oldText string) *diag.Diagnostic {
	return &diag.Diagnostic{
		Code:    diag.BndStringLiteral,
		Primary: sp,
		Fixes:   []*diag.Fix{{Title: "t", Edits: []diag.FixEdit{{Span: sp, NewText: newText, OldText: oldText}}}},
	}
}

func TestApplySkipsConflictsAndStaleText(t *testing.T) {
	fs, id, path := loadDiag(t, "abcdef\n")
	diags := []*diag.Diagnostic{
		fixed(source.Span{File: id, Start: 0, End: 3}, "X", "abc"),
		fixed(source.Span{File: id, Start: 2, End: 4}, "Y", "cd"),
		fixed(source.Span{File: id, Start: 4, End: 6}, "Z", "zz"),
	}
	out, err := Apply(fs, diags, ApplyOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Applied) != 1 || len(out.Skipped) != 2 {
		t.Fatalf("applied %+v, skipped %+v", out.Applied, out.Skipped)
	}
	if out.Skipped[1].Reason != "existing text does not match expected content" {
		t.Errorf("reason = %q", out.Skipped[1].Reason)
	}
	if got := readFile(t, path); got != "Xdef\n" {
		t.Errorf("content = %q", got)
	}
}

func TestApplyRestoresCRLFAndDryRun(t *testing.T) {
	fs, id, path := loadDiag(t, "\xEF\xBB\xBFab\r\ncd\r\n")
	d := fixed(source.Span{File: id, Start: 3, End: 5}, "XY", "cd")

	out, err := Apply(fs, []*diag.Diagnostic{d}, ApplyOptions{DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	if got := string(out.FileChanges[0].Content); got != "\xEF\xBB\xBFab\r\nXY\r\n" {
		t.Errorf("content = %q", got)
	}
	if got := readFile(t, path); got != "\xEF\xBB\xBFab\r\ncd\r\n" {
		t.Errorf("dry run wrote the file: %q", got)
	}
}

func TestApplyNothing(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("mem.ex", []byte("abc"))
	_, err := Apply(fs, []*diag.Diagnostic{fixed(source.Span{File: id, Start: 0, End: 1}, "x", "")}, ApplyOptions{})
	if !errors.Is(err, ErrNoFixes) {
		t.Errorf("virtual file: err = %v", err)
	}
	if _, err := Apply(fs, nil, ApplyOptions{}); !errors.Is(err, ErrNoFixes) {
		t.Errorf("no diagnostics: err = %v", err)
	}
	if _, err := Apply(nil, nil, ApplyOptions{}); err == nil {
		t.Error("nil FileSet must fail")
	}
}

func TestSpansConflict(t *testing.T) {
	edit := func(start, end uint32) diag.FixEdit {
		return diag.FixEdit{Span: source.Span{Start: start, End: end}}
	}
	tests := []struct {
		a, b diag.FixEdit
		want bool
	}{
		{edit(0, 3), edit(3, 5), false},
		{edit(0, 3), edit(2, 5), true},
		{edit(2, 2), edit(2, 2), false},
		{edit(2, 2), edit(0, 3), true},
		{edit(0, 3), edit(3, 3), false},
	}
	for _, tt := range tests {
		if got := spansConflict(tt.a, tt.b); got != tt.want {
			t.Errorf("spansConflict(%v, %v) = %v", tt.a.Span, tt.b.Span, got)
		}
	}
}
