package diag

import "pipebind/internal/source"

// Reporter receives diagnostics from a phase. The lexer, the parser and the
// binding checker only talk to a Reporter, never to a Bag directly.
type Reporter interface {
	Report(d *Diagnostic)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(d *Diagnostic)

func (f ReporterFunc) Report(d *Diagnostic) { f(d) }

// BagReporter — адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d *Diagnostic) {
	if r.Bag != nil && d != nil {
		r.Bag.Add(d)
	}
}

// ReportBuilder collects notes and fixes; nothing reaches the Reporter until Emit.
type ReportBuilder struct {
	to      Reporter
	d       *Diagnostic
	emitted bool
}

func newBuilder(r Reporter, sev Severity, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{to: r, d: &Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}}
}

func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return newBuilder(r, SevError, code, primary, msg)
}

func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return newBuilder(r, SevWarning, code, primary, msg)
}

func ReportInfo(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return newBuilder(r, SevInfo, code, primary, msg)
}

// WithNote attaches a secondary location.
func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	b.d.Notes = append(b.d.Notes, Note{Span: sp, Msg: msg})
	return b
}

// WithFix attaches a fix; the first fix is the one `check --fix` applies.
func (b *ReportBuilder) WithFix(title string, edits ...FixEdit) *ReportBuilder {
	b.d.Fixes = append(b.d.Fixes, &Fix{Title: title, Edits: edits})
	return b
}

// Emit hands the diagnostic over. Repeated calls are no-ops.
func (b *ReportBuilder) Emit() {
	if b.emitted {
		return
	}
	b.emitted = true
	if b.to != nil {
		b.to.Report(b.d)
	}
}
