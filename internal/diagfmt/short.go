package diagfmt

import (
	"cmp"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"pipebind/internal/diag"
	"pipebind/internal/source"
)

type shortLine struct {
	sev  string
	code string
	path string
	line uint32
	col  uint32
	msg  string
}

func (l shortLine) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.sev, l.code, l.path, l.line, l.col, l.msg)
}

// Short writes one line per diagnostic: `severity CODE path:line:col message`.
// Notes become `note` lines when includeNotes is set. Run-level entries without
// a location are skipped. Lines are sorted by location so the output is stable
// across parallel runs.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, includeNotes bool) error {
	var lines []shortLine
	for _, d := range bag.Items() {
		if !hasLocation(d, fs) {
			continue
		}
		lines = append(lines, newShortLine(fs, d.Severity.Label(), d.Code, d.Primary, d.Message))
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			if validSpan(n.Span, fs) {
				lines = append(lines, newShortLine(fs, "note", d.Code, n.Span, n.Msg))
			}
		}
	}
	slices.SortStableFunc(lines, func(a, b shortLine) int {
		return cmp.Or(
			cmp.Compare(a.path, b.path),
			cmp.Compare(a.line, b.line),
			cmp.Compare(a.col, b.col),
			cmp.Compare(a.code, b.code),
		)
	})
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

func newShortLine(fs *source.FileSet, sev string, code diag.Code, sp source.Span, msg string) shortLine {
	start, _ := fs.Resolve(sp)
	path := filepath.ToSlash(formatPath(fs, sp.File, PathModeRelative))
	return shortLine{
		sev:  sev,
		code: code.ID(),
		path: strings.TrimPrefix(path, "./"),
		line: start.Line,
		col:  start.Col,
		msg:  oneLine(msg),
	}
}

func oneLine(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	return strings.TrimSpace(strings.ReplaceAll(msg, "\n", " "))
}
