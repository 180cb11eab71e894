package diagfmt

import (
	"fmt"

	"pipebind/internal/diag"
	"pipebind/internal/source"
)

// hasLocation reports whether sp can be resolved against fs.
// Run-level diagnostics (timings) carry no location.
func hasLocation(d *diag.Diagnostic, fs *source.FileSet) bool {
	if fs == nil || int(d.Primary.File) >= fs.Len() {
		return false
	}
	return d.Code != diag.ObsTimings
}

func validSpan(sp source.Span, fs *source.FileSet) bool {
	return fs != nil && int(sp.File) < fs.Len()
}

func formatPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	f := fs.Get(id)
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	case PathModeAuto:
		return f.FormatPath("auto", "")
	default:
		return f.Path
	}
}

// formatSpan renders sp as "line:col-line:col"; without fs, as byte offsets.
func formatSpan(sp source.Span, fs *source.FileSet) string {
	if !validSpan(sp, fs) {
		return fmt.Sprintf("%d..%d", sp.Start, sp.End)
	}
	start, end := fs.Resolve(sp)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}
