package source

import "strings"

// FileID indexes a file inside its FileSet.
type FileID uint32

// FileFlags records how a file's content was obtained or normalized.
type FileFlags uint8

const (
	FileVirtual        FileFlags = 1 << iota // from memory: tests, classify arguments
	FileHadBOM                               // a UTF-8 BOM was stripped on load
	FileNormalizedCRLF                       // CRLF line endings were rewritten to LF
)

// Has reports whether every bit of flag is set.
func (f FileFlags) Has(flag FileFlags) bool { return f&flag == flag }

func (f FileFlags) String() string {
	var parts []string
	for _, n := range []struct {
		flag FileFlags
		name string
	}{{FileVirtual, "virtual"}, {FileHadBOM, "bom"}, {FileNormalizedCRLF, "crlf"}} {
		if f.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// File is a loaded source. Content is already normalized, spans index into it.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // позиции всех '\n'
	Hash    [32]byte // sha256 of Content
	Flags   FileFlags
}

// LineCol is a 1-based position; Col counts bytes.
type LineCol struct {
	Line uint32
	Col  uint32
}
