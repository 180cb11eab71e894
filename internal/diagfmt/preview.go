package diagfmt

import (
	"fmt"
	"strings"

	"pipebind/internal/diag"
	"pipebind/internal/source"
)

// fixEditPreview holds the lines touched by an edit before and after applying it.
type fixEditPreview struct {
	before []string
	after  []string
}

func buildFixEditPreview(fs *source.FileSet, edit diag.FixEdit) (fixEditPreview, error) {
	if !validSpan(edit.Span, fs) {
		return fixEditPreview{}, fmt.Errorf("edit refers to unknown file %d", edit.Span.File)
	}
	f := fs.Get(edit.Span.File)
	if edit.Span.End < edit.Span.Start || int(edit.Span.End) > len(f.Content) {
		return fixEditPreview{}, fmt.Errorf("edit span %d..%d is out of range", edit.Span.Start, edit.Span.End)
	}
	start, end := fs.Resolve(edit.Span)

	var before []string
	for ln := start.Line; ln <= max(end.Line, start.Line); ln++ {
		before = append(before, f.GetLine(ln))
	}
	if len(before) == 0 {
		return fixEditPreview{}, nil
	}
	head := before[0][:clampCol(start.Col, before[0])]
	last := before[len(before)-1]
	tail := last[clampCol(end.Col, last):]
	after := strings.Split(head+edit.NewText+tail, "\n")
	return fixEditPreview{before: before, after: after}, nil
}
