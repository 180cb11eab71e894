package version

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func withVersion(t *testing.T, v, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = v, commit, date
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})
}

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestColoredPlain(t *testing.T) {
	withVersion(t, "1.2.3-rc.1", "", "")
	if got := Colored(false); got != "1.2.3-rc.1" {
		t.Errorf("Colored(false) = %q", got)
	}
}

func TestColoredKeepsSuffix(t *testing.T) {
	withVersion(t, "1.2.3-rc.1+build.7", "", "")
	got := Colored(true)
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("expected ANSI codes in %q", got)
	}
	if !strings.HasSuffix(got, "-rc.1+build.7") {
		t.Errorf("suffix lost: %q", got)
	}
}

func TestColoredNonSemver(t *testing.T) {
	withVersion(t, "nightly", "", "")
	if got := Colored(true); got != "nightly" {
		t.Errorf("Colored = %q", got)
	}
}

func TestWriteFull(t *testing.T) {
	withVersion(t, "1.0.0", "abc123", "2024-01-15T10:30:00Z")
	var buf bytes.Buffer
	if err := Write(&buf, true, false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"pipebind 1.0.0\n", "commit:   abc123", "built:    2024-01-15T10:30:00Z", "go:       go", "platform: "} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteShortOmitsOptionalFields(t *testing.T) {
	withVersion(t, "1.0.0", "", "")
	var buf bytes.Buffer
	if err := Write(&buf, false, false); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "pipebind 1.0.0\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	withVersion(t, "2.0.0", "", "")
	var buf bytes.Buffer
	if err := WriteJSON(&buf); err != nil {
		t.Fatal(err)
	}
	var info Info
	if err := json.Unmarshal(buf.Bytes(), &info); err != nil {
		t.Fatal(err)
	}
	if info.Version != "2.0.0" || info.GitCommit != "" || info.GoVersion == "" {
		t.Errorf("info = %+v", info)
	}
	if strings.Contains(buf.String(), "git_commit") {
		t.Error("empty commit must be omitted")
	}
}
