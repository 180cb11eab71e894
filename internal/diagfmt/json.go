package diagfmt

import (
	"encoding/json"
	"io"

	"pipebind/internal/diag"
	"pipebind/internal/source"
	"pipebind/internal/target"
)

// LocationJSON — координаты фрагмента. Line/col are present only when
// JSONOpts.IncludePositions is set.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
}

type FixEditJSON struct {
	Location    LocationJSON `json:"location"`
	NewText     string       `json:"new_text"`
	OldText     string       `json:"old_text,omitempty"`
	BeforeLines []string     `json:"before_lines,omitempty"`
	AfterLines  []string     `json:"after_lines,omitempty"`
}

type FixJSON struct {
	Title string        `json:"title"`
	Edits []FixEditJSON `json:"edits,omitempty"`
}

// DiagnosticJSON is one entry of the document. Category is the target
// classification behind a BND code, such as "StringLiteral".
type DiagnosticJSON struct {
	Severity string        `json:"severity"`
	Code     string        `json:"code"`
	Title    string        `json:"title"`
	Category string        `json:"category,omitempty"`
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
	Notes    []NoteJSON    `json:"notes,omitempty"`
	Fixes    []FixJSON     `json:"fixes,omitempty"`
}

// DiagnosticsOutput is the document written by JSON and Msgpack.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Errors      int              `json:"errors"`
	Warnings    int              `json:"warnings"`
	Infos       int              `json:"infos"`
}

type jsonBuilder struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (b jsonBuilder) location(sp source.Span) LocationJSON {
	loc := LocationJSON{
		File:      formatPath(b.fs, sp.File, b.opts.PathMode),
		StartByte: sp.Start,
		EndByte:   sp.End,
	}
	if b.opts.IncludePositions {
		start, end := b.fs.Resolve(sp)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

func (b jsonBuilder) diagnostic(d *diag.Diagnostic) DiagnosticJSON {
	out := DiagnosticJSON{
		Severity: d.Severity.Label(),
		Code:     d.Code.ID(),
		Title:    d.Code.Title(),
		Message:  d.Message,
	}
	if cls, ok := target.FromCode(d.Code); ok {
		out.Category = cls.String()
	}
	located := hasLocation(d, b.fs)
	if located {
		loc := b.location(d.Primary)
		out.Location = &loc
	}
	// у OBS7001 вся полезная нагрузка в заметке
	if b.opts.IncludeNotes || d.Code == diag.ObsTimings {
		out.Notes = b.notes(d.Notes, located)
	}
	if b.opts.IncludeFixes {
		out.Fixes = b.fixes(d.Fixes)
	}
	return out
}

func (b jsonBuilder) notes(notes []diag.Note, located bool) []NoteJSON {
	if len(notes) == 0 {
		return nil
	}
	out := make([]NoteJSON, len(notes))
	for i, n := range notes {
		out[i].Message = n.Msg
		if located && validSpan(n.Span, b.fs) {
			loc := b.location(n.Span)
			out[i].Location = &loc
		}
	}
	return out
}

func (b jsonBuilder) fixes(fixes []*diag.Fix) []FixJSON {
	var out []FixJSON
	for _, fx := range fixes {
		fj := FixJSON{Title: fx.Title}
		for _, e := range fx.Edits {
			if !validSpan(e.Span, b.fs) {
				continue
			}
			ej := FixEditJSON{Location: b.location(e.Span), NewText: e.NewText, OldText: e.OldText}
			if b.opts.IncludePreviews {
				if p, err := buildFixEditPreview(b.fs, e); err == nil {
					ej.BeforeLines, ej.AfterLines = p.before, p.after
				}
			}
			fj.Edits = append(fj.Edits, ej)
		}
		out = append(out, fj)
	}
	return out
}

// BuildDiagnosticsOutput builds the document without encoding it.
// opts.Max truncates the list; counts cover the emitted entries only.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	b := jsonBuilder{fs: fs, opts: opts}
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, len(items))}
	for _, d := range items {
		switch d.Severity {
		case diag.SevError:
			out.Errors++
		case diag.SevWarning:
			out.Warnings++
		default:
			out.Infos++
		}
		out.Diagnostics = append(out.Diagnostics, b.diagnostic(d))
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes the document as indented JSON.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
