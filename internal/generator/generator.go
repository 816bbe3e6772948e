package generator

import (
	"fmt"
	"slices"

	"testgen/internal/ast"
	"testgen/internal/diag"
)

// Parser is the parsing capability the generator consumes.
type Parser interface {
	Parse(text string) (*ast.Tree, *diag.Bag)
}

// Printer renders a synthesized tree to text.
type Printer interface {
	Print(tree *ast.Tree) (string, error)
}

// TestUnit is the result for one source class. Name is the dotted full name
// of the class; Content is the rendered test file.
type TestUnit struct {
	Name    string
	Content string
}

// Generator is immutable after construction and safe for concurrent use when
// its Parser and Printer are.
type Generator struct {
	parser  Parser
	printer Printer
	cfg     Config
}

func New(p Parser, pr Printer, cfg Config) *Generator {
	return &Generator{parser: p, printer: pr, cfg: cfg.withDefaults()}
}

// Config returns the effective configuration.
func (g *Generator) Config() Config {
	cfg := g.cfg
	cfg.BaselineUsings = slices.Clone(cfg.BaselineUsings)
	return cfg
}

// Generate produces one TestUnit per public class of source, in source
// order. On error no units are returned.
func (g *Generator) Generate(source string) ([]TestUnit, error) {
	tree, bag := g.parser.Parse(source)
	if bag.HasErrors() || tree == nil {
		return nil, &Error{Kind: KindSyntax, Diagnostics: bag}
	}

	cands := Candidates(tree)
	if len(cands) == 0 {
		return nil, &Error{Kind: KindClassCount}
	}
	if dups := duplicateNames(cands); len(dups) > 0 {
		return nil, &Error{Kind: KindClassNameCollision, Names: dups}
	}

	var sourceUsings []ast.UsingDecl
	for _, id := range tree.UsingDirectives() {
		u, _ := tree.Using(id)
		sourceUsings = append(sourceUsings, *u)
	}

	units := make([]TestUnit, 0, len(cands))
	for _, cand := range cands {
		usings := Usings(g.cfg.BaselineUsings, sourceUsings, cand.NamespacePath)
		unit, err := synthesize(g.cfg, usings, cand)
		if err != nil {
			return nil, fmt.Errorf("synthesize tests for %s: %w", cand.FullName(), err)
		}
		content, err := g.printer.Print(unit)
		if err != nil {
			return nil, fmt.Errorf("render tests for %s: %w", cand.FullName(), err)
		}
		units = append(units, TestUnit{Name: cand.FullName(), Content: content})
	}
	return units, nil
}

// duplicateNames returns the simple names used by more than one candidate,
// sorted.
func duplicateNames(cands []ClassCandidate) []string {
	counts := make(map[string]int, len(cands))
	for _, c := range cands {
		counts[c.Name]++
	}
	var dups []string
	for name, n := range counts {
		if n > 1 {
			dups = append(dups, name)
		}
	}
	slices.Sort(dups)
	return dups
}
