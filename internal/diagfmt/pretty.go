package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"pipebind/internal/diag"
	"pipebind/internal/source"
)

const tabWidth = 4

type palette struct {
	sev     map[diag.Severity]*color.Color
	path    *color.Color
	gutter  *color.Color
	caret   map[diag.Severity]*color.Color
	note    *color.Color
	fix     *color.Color
	removed *color.Color
	added   *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   mk(color.FgRed, color.Bold),
			diag.SevWarning: mk(color.FgYellow, color.Bold),
			diag.SevInfo:    mk(color.FgCyan, color.Bold),
		},
		caret: map[diag.Severity]*color.Color{
			diag.SevError:   mk(color.FgRed),
			diag.SevWarning: mk(color.FgYellow),
			diag.SevInfo:    mk(color.FgCyan),
		},
		path:    mk(color.Bold),
		gutter:  mk(color.FgBlue),
		note:    mk(color.FgGreen, color.Bold),
		fix:     mk(color.FgMagenta, color.Bold),
		removed: mk(color.FgRed),
		added:   mk(color.FgGreen),
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
// Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	head, rest, _ := strings.Cut(d.Message, "\n")
	sev := pal.sev[d.Severity].Sprint(d.Severity.String())

	located := hasLocation(d, fs)
	if located {
		start, _ := fs.Resolve(d.Primary)
		path := formatPath(fs, d.Primary.File, opts.PathMode)
		fmt.Fprintf(w, "%s: %s %s: %s\n", pal.path.Sprintf("%s:%d:%d", path, start.Line, start.Col), sev, d.Code.ID(), head)
	} else {
		fmt.Fprintf(w, "%s %s: %s\n", sev, d.Code.ID(), head)
	}
	if rest != "" {
		for _, line := range strings.Split(rest, "\n") {
			if line == "" {
				fmt.Fprintln(w)
				continue
			}
			fmt.Fprintf(w, "    %s\n", line)
		}
	}

	if located {
		writeSnippet(w, fs, d.Primary, int(opts.Context), int(opts.Width), pal.caret[d.Severity], pal)
	}

	if opts.ShowNotes || d.Code == diag.ObsTimings {
		for _, n := range d.Notes {
			label := pal.note.Sprint("note")
			if located && validSpan(n.Span, fs) && n.Span != d.Primary {
				start, _ := fs.Resolve(n.Span)
				path := formatPath(fs, n.Span.File, opts.PathMode)
				fmt.Fprintf(w, "  %s: %s: %s\n", label, pal.path.Sprintf("%s:%d:%d", path, start.Line, start.Col), n.Msg)
				continue
			}
			fmt.Fprintf(w, "  %s: %s\n", label, n.Msg)
		}
	}

	if opts.ShowFixes {
		for _, fx := range d.Fixes {
			fmt.Fprintf(w, "  %s: %s\n", pal.fix.Sprint("fix"), fx.Title)
			if !opts.ShowPreview {
				continue
			}
			for _, e := range fx.Edits {
				preview, err := buildFixEditPreview(fs, e)
				if err != nil {
					continue
				}
				for _, l := range preview.before {
					fmt.Fprintf(w, "    %s\n", pal.removed.Sprint("- "+l))
				}
				for _, l := range preview.after {
					fmt.Fprintf(w, "    %s\n", pal.added.Sprint("+ "+l))
				}
			}
		}
	}
}

// writeSnippet prints the primary line with context and a ^~~~ underline.
// Multi-line spans are underlined to the end of their first line.
func writeSnippet(w io.Writer, fs *source.FileSet, sp source.Span, ctxLines, width int, caret *color.Color, pal palette) {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	lineCount := f.LineCount()
	if lineCount == 0 {
		return
	}
	line := min(start.Line, lineCount)

	first := uint32(max(int(line)-ctxLines, 1))
	last := min(line+uint32(max(ctxLines, 0)), lineCount)
	gw := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		text := expandTabs(f.GetLine(ln))
		if width > 0 {
			text = runewidth.Truncate(text, width, "…")
		}
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gw, ln), text)
		if ln != line {
			continue
		}
		raw := f.GetLine(ln)
		from := clampCol(start.Col, raw)
		to := len(raw)
		if end.Line == start.Line {
			to = clampCol(end.Col, raw)
		}
		pad := runewidth.StringWidth(expandTabs(raw[:from]))
		n := max(runewidth.StringWidth(expandTabs(raw[from:max(to, from)])), 1)
		if width > 0 && pad+n > width {
			n = max(width-pad, 1)
		}
		underline := "^" + strings.Repeat("~", n-1)
		fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprintf("%*s |", gw, ""), strings.Repeat(" ", pad), caret.Sprint(underline))
	}
}

// clampCol turns a 1-based byte column into an offset within line.
func clampCol(col uint32, line string) int {
	if col == 0 {
		return 0
	}
	return min(int(col)-1, len(line))
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
