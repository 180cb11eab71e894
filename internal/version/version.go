package version

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/fatih/color"
)

// Build information. Overridden at build time via -ldflags "-X pipebind/internal/version.Version=...".
var (
	Version   = "0.1.0-dev"
	GitCommit = ""
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Info is the machine-readable form of the build information.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Current returns the build information of the running binary.
func Current() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Colored renders Version with each semver component in its own color.
// Pre-release and build suffixes are left plain.
func Colored(colorize bool) string {
	core, suffix := Version, ""
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core, suffix = core[:i], core[i:]
	}
	parts := strings.SplitN(core, ".", 3)
	if !colorize || len(parts) != 3 {
		return Version
	}
	cs := []*color.Color{versionMajorColor, versionMinorColor, versionPatchColor}
	for i, p := range parts {
		c := *cs[i]
		c.EnableColor()
		parts[i] = c.Sprint(p)
	}
	return strings.Join(parts, ".") + suffix
}

// Write prints the version in human form; full adds commit, date and toolchain.
func Write(w io.Writer, full, colorize bool) error {
	if _, err := fmt.Fprintf(w, "pipebind %s\n", Colored(colorize)); err != nil {
		return err
	}
	if !full {
		return nil
	}
	info := Current()
	if info.GitCommit != "" {
		fmt.Fprintf(w, "commit:   %s\n", info.GitCommit)
	}
	if info.BuildDate != "" {
		fmt.Fprintf(w, "built:    %s\n", info.BuildDate)
	}
	fmt.Fprintf(w, "go:       %s\n", info.GoVersion)
	_, err := fmt.Fprintf(w, "platform: %s\n", info.Platform)
	return err
}

// WriteJSON prints Current as indented JSON.
func WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Current())
}
