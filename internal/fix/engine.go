// Package fix applies the edits attached to diagnostics back to source files.
package fix

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"

	"pipebind/internal/diag"
	"pipebind/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyOptions configures fix selection.
type ApplyOptions struct {
	// Codes limits fixing to these diagnostic codes; empty means all.
	Codes []diag.Code
	// DryRun computes the result without writing files.
	DryRun bool
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	Diagnostic *diag.Diagnostic
	Title      string
	Path       string
	EditCount  int
}

// SkippedFix captures a fix that was not applied, with a reason.
type SkippedFix struct {
	Diagnostic *diag.Diagnostic
	Title      string
	Reason     string
}

// FileChange summarises modifications performed on a file.
type FileChange struct {
	Path      string
	EditCount int
	// Content is the new file content, as written (or as it would be on DryRun).
	Content []byte
}

// ApplyResult aggregates applied fixes, skipped ones, and file changes.
type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

// Fixed reports whether d had a fix applied.
func (r *ApplyResult) Fixed(d *diag.Diagnostic) bool {
	for _, a := range r.Applied {
		if a.Diagnostic == d {
			return true
		}
	}
	return false
}

type candidate struct {
	diag  *diag.Diagnostic
	fix   *diag.Fix
	order int
}

// Apply takes the first fix of every matching diagnostic and applies it.
// Fixes whose edits overlap an already accepted fix, or whose OldText no
// longer matches the file, are skipped.
func Apply(fs *source.FileSet, diagnostics []*diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{}
	if fs == nil {
		return result, fmt.Errorf("fix: FileSet is nil")
	}

	candidates := gatherCandidates(diagnostics, opts.Codes)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}
	sortCandidates(candidates)

	if err := applyCandidates(fs, candidates, opts.DryRun, result); err != nil {
		return result, err
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	return result, nil
}

func gatherCandidates(diagnostics []*diag.Diagnostic, codes []diag.Code) []candidate {
	var cands []candidate
	for i, d := range diagnostics {
		fx := d.PreferredFix()
		if fx == nil {
			continue
		}
		if len(codes) > 0 && !slices.Contains(codes, d.Code) {
			continue
		}
		cands = append(cands, candidate{diag: d, fix: fx, order: i})
	}
	return cands
}

// sortCandidates orders by file, span, then input order.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := candidates[i].diag, candidates[j].diag
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		return candidates[i].order < candidates[j].order
	})
}

func applyCandidates(fs *source.FileSet, candidates []candidate, dryRun bool, result *ApplyResult) error {
	accepted := make(map[source.FileID][]diag.FixEdit)
	var touched []source.FileID

	for _, cand := range candidates {
		if reason := checkCandidate(fs, cand, accepted); reason != "" {
			result.Skipped = append(result.Skipped, SkippedFix{
				Diagnostic: cand.diag,
				Title:      cand.fix.Title,
				Reason:     reason,
			})
			continue
		}
		for _, e := range cand.fix.Edits {
			if len(accepted[e.Span.File]) == 0 {
				touched = append(touched, e.Span.File)
			}
			accepted[e.Span.File] = append(accepted[e.Span.File], e)
		}
		result.Applied = append(result.Applied, AppliedFix{
			Diagnostic: cand.diag,
			Title:      cand.fix.Title,
			Path:       formatFilePath(fs, cand.diag.Primary.File),
			EditCount:  len(cand.fix.Edits),
		})
	}

	sort.Slice(touched, func(i, j int) bool { return touched[i] < touched[j] })
	for _, id := range touched {
		file := fs.Get(id)
		content := restoreEncoding(file, applyEdits(file.Content, accepted[id]))
		if !dryRun {
			mode := os.FileMode(0o644)
			if info, err := os.Stat(file.Path); err == nil {
				mode = info.Mode()
			}
			if err := os.WriteFile(file.Path, content, mode); err != nil {
				return fmt.Errorf("write %s: %w", file.Path, err)
			}
		}
		result.FileChanges = append(result.FileChanges, FileChange{
			Path:      file.FormatPath("relative", fs.BaseDir()),
			EditCount: len(accepted[id]),
			Content:   content,
		})
	}
	return nil
}

// checkCandidate returns a skip reason, or "" when the fix can be applied.
func checkCandidate(fs *source.FileSet, cand candidate, accepted map[source.FileID][]diag.FixEdit) string {
	for i, e := range cand.fix.Edits {
		if int(e.Span.File) >= fs.Len() {
			return "edit refers to an unknown file"
		}
		file := fs.Get(e.Span.File)
		if file.Flags.Has(source.FileVirtual) {
			return "target file is virtual"
		}
		if e.Span.End < e.Span.Start || int(e.Span.End) > len(file.Content) {
			return "edit span out of range"
		}
		if e.OldText != "" && string(file.Content[e.Span.Start:e.Span.End]) != e.OldText {
			return "existing text does not match expected content"
		}
		for _, prev := range accepted[e.Span.File] {
			if spansConflict(prev, e) {
				return fmt.Sprintf("conflicts with another fix in %s", formatFilePath(fs, e.Span.File))
			}
		}
		for _, other := range cand.fix.Edits[:i] {
			if other.Span.File == e.Span.File && spansConflict(other, e) {
				return "fix has overlapping edits"
			}
		}
	}
	return ""
}

// applyEdits rewrites content; edits must not overlap.
func applyEdits(content []byte, edits []diag.FixEdit) []byte {
	sorted := append([]diag.FixEdit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Span.Start > sorted[j].Span.Start
	})
	out := append([]byte(nil), content...)
	for _, e := range sorted {
		suffix := append([]byte(nil), out[e.Span.End:]...)
		out = append(append(out[:e.Span.Start], e.NewText...), suffix...)
	}
	return out
}

// restoreEncoding puts back the BOM and CRLF line endings that Load removed.
func restoreEncoding(file *source.File, content []byte) []byte {
	if file.Flags.Has(source.FileNormalizedCRLF) {
		content = bytes.ReplaceAll(content, []byte("\n"), []byte("\r\n"))
	}
	if file.Flags.Has(source.FileHadBOM) {
		content = append([]byte{0xEF, 0xBB, 0xBF}, content...)
	}
	return content
}

// spansConflict reports whether two edits' spans overlap.
// Spans are half-open intervals [Start, End). Two insertions never conflict;
// an insertion conflicts with a span that strictly contains its position.
func spansConflict(a, b diag.FixEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End

	if aStart == aEnd && bStart == bEnd {
		return false
	}
	if aStart == aEnd {
		return bStart <= aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart <= bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}

func formatFilePath(fs *source.FileSet, fileID source.FileID) string {
	if fs == nil || int(fileID) >= fs.Len() {
		return ""
	}
	return fs.Get(fileID).FormatPath("auto", fs.BaseDir())
}
