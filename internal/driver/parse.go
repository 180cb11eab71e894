package driver

import (
	"fortio.org/safecast"

	"pipebind/internal/ast"
	"pipebind/internal/diag"
	"pipebind/internal/lexer"
	"pipebind/internal/parser"
	"pipebind/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	AST     *ast.File
	Bag     *diag.Bag
}

// Parse loads and parses path without running the binding checks.
func Parse(filePath string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	return parseFile(fs, fs.Get(fileID), maxDiagnostics)
}

func parseFile(fs *source.FileSet, file *source.File, maxDiagnostics int) (*ParseResult, error) {
	bag := newBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})

	maxErrors, err := safecast.Conv[uint](max(maxDiagnostics, 0))
	if err != nil {
		return nil, err
	}

	opts := parser.Options{
		Reporter:  reporter,
		MaxErrors: maxErrors,
	}
	result := parser.ParseFile(fs, lx, opts)

	return &ParseResult{
		FileSet: fs,
		File:    file,
		AST:     result.File,
		Bag:     bag,
	}, nil
}

// ParseExpr parses a single expression, as `pipebind classify` does.
func ParseExpr(src string) (ast.Node, *ParseResult) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<expr>", []byte(src))
	file := fs.Get(id)
	bag := newBag(0)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	node, _ := parser.ParseExpr(lx, parser.Options{Reporter: reporter})
	return node, &ParseResult{FileSet: fs, File: file, Bag: bag}
}
