package ast

import "pipebind/internal/source"

// File is the parse result of one source file: its top-level expressions in order.
type File struct {
	ID   source.FileID
	Span source.Span
	Body []Node
}
