package parser

import (
	"fmt"
	"strings"
	"testing"

	"testgen/internal/ast"
	"testgen/internal/diag"
)

func parseSource(t *testing.T, src string) (*ast.Tree, *diag.Bag) {
	t.Helper()
	return CSharp{}.Parse(src)
}

func mustParse(t *testing.T, src string) *ast.Tree {
	t.Helper()
	tree, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	return tree
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func classNames(tree *ast.Tree) []string {
	var names []string
	for _, id := range tree.Classes() {
		td, _ := tree.Type(id)
		names = append(names, td.Name)
	}
	return names
}

func methodNames(tree *ast.Tree, class ast.NodeID) []string {
	var names []string
	for _, id := range tree.MethodsOf(class) {
		md, _ := tree.Method(id)
		names = append(names, md.Name)
	}
	return names
}

// findClass returns the first class with the given simple name.
func findClass(t *testing.T, tree *ast.Tree, name string) ast.NodeID {
	t.Helper()
	for _, id := range tree.Classes() {
		if td, _ := tree.Type(id); td.Name == name {
			return id
		}
	}
	t.Fatalf("class %q not found among %v", name, classNames(tree))
	return ast.NoNodeID
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}
