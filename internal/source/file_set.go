package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet manages a collection of source files and resolves spans to positions.
// A FileSet is not safe for concurrent mutation; load every file before fanning out.
type FileSet struct {
	files   []File
	index   map[string]FileID // path -> latest id
	baseDir string            // base for relative paths
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return NewFileSetWithBase("")
}

// NewFileSetWithBase creates a FileSet whose relative paths are computed against baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{
		files:   make([]File, 0),
		index:   make(map[string]FileID),
		baseDir: baseDir,
	}
}

// SetBaseDir sets the directory used for relative path output.
func (set *FileSet) SetBaseDir(dir string) {
	set.baseDir = dir
}

// BaseDir returns the base directory, falling back to the working directory.
func (set *FileSet) BaseDir() string {
	if set.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return set.baseDir
}

// Len returns the number of files ever added.
func (set *FileSet) Len() int {
	return len(set.files)
}

// Add stores already normalized content, computes LineIdx and Hash and returns a new FileID.
// It always creates a new FileID even if a file with the same path already exists.
func (set *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	normalizedPath := normalizePath(path)
	n, err := safecast.Conv[uint32](len(set.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(n)
	set.files = append(set.files, File{
		ID:      id,
		Path:    normalizedPath,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	set.index[normalizedPath] = id
	return id
}

// Load reads a file from disk, strips a UTF-8 BOM, normalizes CRLF and calls Add.
func (set *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return set.Add(path, content, flags), nil
}

// AddVirtual adds an in-memory file with the FileVirtual flag.
func (set *FileSet) AddVirtual(name string, content []byte) FileID {
	return set.Add(name, content, FileVirtual)
}

// Get returns the file for id. It panics on an unknown id.
func (set *FileSet) Get(id FileID) *File {
	return &set.files[id]
}

// GetLatest returns the latest file ID registered for path.
func (set *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := set.index[normalizePath(path)]
	return id, ok
}

// Resolve converts a span into 1-based line/column positions.
func (set *FileSet) Resolve(span Span) (start, end LineCol) {
	f := &set.files[span.File]
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// Text returns the source text covered by span, clamped to the file content.
func (set *FileSet) Text(span Span) string {
	if int(span.File) >= len(set.files) {
		return ""
	}
	f := &set.files[span.File]
	n := uint32(len(f.Content))
	start, end := min(span.Start, n), min(span.End, n)
	if start >= end {
		return ""
	}
	return string(f.Content[start:end])
}

// lineBounds returns the byte range of line (1-based) without its newline.
func (f *File) lineBounds(line uint32) (start, end int, ok bool) {
	n := len(f.LineIdx)
	switch {
	case line == 0 || int(line) > n+1:
		return 0, 0, false
	case line > 1:
		start = int(f.LineIdx[line-2]) + 1
	}
	end = len(f.Content)
	if int(line) <= n {
		end = int(f.LineIdx[line-1])
	}
	return start, end, start <= end && start < len(f.Content)
}

// GetLine returns line lineNum (1-based) without its trailing newline, or ""
// past the end of the file.
func (f *File) GetLine(lineNum uint32) string {
	start, end, ok := f.lineBounds(lineNum)
	if !ok {
		return ""
	}
	return string(f.Content[start:end])
}

// LineCount returns the number of lines in the file; a trailing newline does not open a new line.
func (f *File) LineCount() uint32 {
	n := uint32(len(f.LineIdx))
	if len(f.Content) > 0 && f.Content[len(f.Content)-1] != '\n' {
		n++
	}
	return n
}

// FormatPath formats the file path according to mode:
// "absolute", "relative", "basename" or "auto".
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
		return f.Path
	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
		return f.Path
	case "basename":
		return BaseName(f.Path)
	case "auto":
		if len(f.Path) < 40 || !filepath.IsAbs(f.Path) {
			return f.Path
		}
		return BaseName(f.Path)
	default:
		return f.Path
	}
}
