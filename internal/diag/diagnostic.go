package diag

import "pipebind/internal/source"

// Note points at a related location, such as the earlier binding of a
// rebound name.
type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit replaces the text under Span with NewText.
// OldText, when set, guards the edit against stale sources.
type FixEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

type Fix struct {
	Title string
	Edits []FixEdit
}

// Diagnostic is one finding. Message may span several lines: the first is the
// headline, the rest is the explanation rendered under it.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []*Fix
}

// PreferredFix is the fix applied by `check --fix`, or nil.
func (d *Diagnostic) PreferredFix() *Fix {
	if d == nil || len(d.Fixes) == 0 || d.Fixes[0] == nil || len(d.Fixes[0].Edits) == 0 {
		return nil
	}
	return d.Fixes[0]
}
