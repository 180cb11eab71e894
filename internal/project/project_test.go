package project

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	writeFile(t, path, `
[check]
macro = "bind"
report_rebind = true

[cache]
enabled = true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Defaults()
	want.Check.Macro = "bind"
	want.Check.ReportRebind = true
	want.Cache.Enabled = true
	want.Path = path
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejects(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"unknown key", "[check]\nmacros = \"x\"\n"},
		{"empty macro", "[check]\nmacro = \"\"\n"},
		{"negative jobs", "[check]\njobs = -1\n"},
		{"empty extensions", "[check]\nextensions = []\n"},
		{"bad extension", "[check]\nextensions = [\"ex\"]\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ConfigFileName)
			writeFile(t, path, tc.body)
			_, err := Load(path)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadSyntaxError(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, "[check\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ConfigFileName), "")
	nested := filepath.Join(root, "lib", "app")
	writeFile(t, filepath.Join(nested, "a.ex"), "x = 1\n")

	got, ok, err := Find(filepath.Join(nested, "a.ex"))
	if err != nil || !ok {
		t.Fatalf("Find: ok=%v err=%v", ok, err)
	}
	if got != filepath.Join(root, ConfigFileName) {
		t.Errorf("Find = %q", got)
	}
	cfg, err := LoadOrDefault(nested)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Root() != root {
		t.Errorf("Root = %q, want %q", cfg.Root(), root)
	}
	if got := cfg.Resolve(".cache"); got != filepath.Join(root, ".cache") {
		t.Errorf("Resolve = %q", got)
	}
	if got := Defaults(); got.Resolve("rel") != "rel" {
		t.Errorf("defaults must not resolve paths, got %q", got.Resolve("rel"))
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Defaults()
	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, buf.String())
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load encoded defaults: %v\n%s", err, buf.String())
	}
	back.Path = ""
	if diff := cmp.Diff(cfg, back); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestFingerprint(t *testing.T) {
	a := Defaults()
	b := Defaults()
	b.Check.Jobs = 8
	b.Cache.Enabled = true
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("jobs and cache must not affect the fingerprint")
	}
	b.Check.Macro = "bind"
	if a.Fingerprint() == b.Fingerprint() {
		t.Error("macro must affect the fingerprint")
	}
	if Combine(a.Fingerprint()) == Combine(a.Fingerprint(), b.Fingerprint()) {
		t.Error("Combine must depend on every part")
	}
	if len(a.Fingerprint().Hex()) != 64 {
		t.Error("hex digest length")
	}
	if Sum([]byte("ab"), []byte("c")) != Sum([]byte("abc")) {
		t.Error("Sum must hash the concatenation")
	}
	if d := Sum([]byte("x")); !strings.HasPrefix(d.Hex(), d.Short()) || len(d.Short()) != 12 {
		t.Errorf("Short = %q", d.Short())
	}
}
