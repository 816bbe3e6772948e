package generator

import (
	"strconv"
	"strings"

	"testgen/internal/ast"
	"testgen/internal/source"
)

const (
	testClassSuffix     = "Tests"
	testMethodSuffix    = "Test"
	fallbackNamespace   = "Tests"
	testMethodAttribute = "Fact"
)

// TestNamespace returns the namespace of the generated unit: the source path
// plus "Tests", or bare "Tests".
func TestNamespace(path []string) string {
	if len(path) == 0 {
		return fallbackNamespace
	}
	return strings.Join(path, ".") + "." + fallbackNamespace
}

// TestMethodNames maps source method names to test method names in order.
// Overloads get a numeric suffix starting at 2: FooTest, FooTest2, ...
func TestMethodNames(methods []MethodSignature) []string {
	names := make([]string, len(methods))
	used := make(map[string]bool, len(methods))
	for i, m := range methods {
		name := m.Name + testMethodSuffix
		for n := 2; used[name]; n++ {
			name = m.Name + testMethodSuffix + strconv.Itoa(n)
		}
		used[name] = true
		names[i] = name
	}
	return names
}

// Usings assembles the using directives of the generated unit as full
// directive texts: baseline, then non-static source usings verbatim, then
// one per namespace prefix. Duplicates keep their first position.
func Usings(baseline []string, source []ast.UsingDecl, path []string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(text string) {
		if !seen[text] {
			seen[text] = true
			out = append(out, text)
		}
	}
	for _, ns := range baseline {
		add("using " + ns + ";")
	}
	for _, u := range source {
		if u.Static {
			continue
		}
		add(usingText(u))
	}
	for i := range path {
		add("using " + strings.Join(path[:i+1], ".") + ";")
	}
	return out
}

func usingText(u ast.UsingDecl) string {
	if u.Text != "" {
		return u.Text
	}
	var b strings.Builder
	if u.Global {
		b.WriteString("global ")
	}
	b.WriteString("using ")
	if u.Alias != "" {
		b.WriteString(u.Alias + " = ")
	}
	b.WriteString(u.Name + ";")
	return b.String()
}

// synthesize builds the test unit tree for one class.
func synthesize(cfg Config, usings []string, cand ClassCandidate) (*ast.Tree, error) {
	tree := ast.NewTree(ast.Hints{
		Nodes: uint(len(usings) + 3 + len(cand.Methods)*12),
		Stmts: uint(len(cand.Methods) * 10),
	})
	for _, text := range usings {
		tree.NewUsing(tree.Root, source.Span{}, ast.UsingDecl{Text: text})
	}
	ns := tree.NewNamespace(tree.Root, source.Span{}, ast.NamespaceDecl{Name: TestNamespace(cand.NamespacePath)})
	cls := tree.NewType(ns, source.Span{}, ast.TypeDecl{
		Kind:      ast.TypeClass,
		Name:      cand.Name + testClassSuffix,
		Modifiers: ast.ModPublic,
	})
	for i, name := range TestMethodNames(cand.Methods) {
		m := tree.NewMethod(cls, source.Span{}, ast.MethodDecl{
			Name:       name,
			ReturnType: "void",
			Modifiers:  ast.ModPublic,
			Attrs:      []string{testMethodAttribute},
		}, nil)
		body, err := Body(cfg.Body, cand.Methods[i])
		if err != nil {
			return nil, err
		}
		for _, stmt := range body {
			tree.NewStmt(m, stmt)
		}
	}
	return tree, nil
}
