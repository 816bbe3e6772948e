package parser

import (
	"testgen/internal/ast"
	"testgen/internal/diag"
	"testgen/internal/source"
)

const defaultMaxDiagnostics = 64

// CSharp parses C# source text. The zero value is ready to use.
type CSharp struct {
	// MaxErrors stops recording syntax errors after this many; 0 means no limit.
	MaxErrors uint
	// MaxDiagnostics caps the bag size; 0 means 64.
	MaxDiagnostics int
}

// Parse lexes and parses text as one compilation unit. The returned bag holds
// lexical and syntax diagnostics sorted by position.
func (c CSharp) Parse(text string) (*ast.Tree, *diag.Bag) {
	limit := c.MaxDiagnostics
	if limit <= 0 {
		limit = defaultMaxDiagnostics
	}
	fs := source.NewFileSet()
	id := fs.AddVirtual("input.cs", []byte(text))
	bag := diag.NewBag(limit)
	res := ParseFile(fs, id, Options{
		MaxErrors: c.MaxErrors,
		Reporter:  diag.BagReporter{Bag: bag},
	})
	bag.Sort()
	bag.Dedup()
	return res.Tree, bag
}
