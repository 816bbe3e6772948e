package format

import (
	"slices"
	"strings"
	"testing"

	"testgen/internal/ast"
	"testgen/internal/parser"
	"testgen/internal/source"
)

func buildTestUnit() *ast.Tree {
	tree := ast.NewTree(ast.Hints{})
	for _, name := range []string{"System", "Xunit"} {
		tree.NewUsing(tree.Root, source.Span{}, ast.UsingDecl{Name: name})
	}
	ns := tree.NewNamespace(tree.Root, source.Span{}, ast.NamespaceDecl{Name: "N.Tests"})
	cls := tree.NewType(ns, source.Span{}, ast.TypeDecl{
		Kind:      ast.TypeClass,
		Name:      "MyClassTests",
		Modifiers: ast.ModPublic,
	})
	for _, name := range []string{"FooTest", "BarTest"} {
		m := tree.NewMethod(cls, source.Span{}, ast.MethodDecl{
			Name:       name,
			ReturnType: "void",
			Modifiers:  ast.ModPublic,
			Attrs:      []string{"Fact"},
		}, nil)
		tree.NewStmt(m, ast.StmtDecl{Kind: ast.StmtLine, Text: `Assert.True(false, "autogenerated");`})
	}
	return tree
}

func TestFormatTestUnit(t *testing.T) {
	got, err := FormatTree(buildTestUnit(), Options{})
	if err != nil {
		t.Fatalf("FormatTree: %v", err)
	}
	want := `using System;
using Xunit;

namespace N.Tests
{
    public class MyClassTests
    {
        [Fact]
        public void FooTest()
        {
            Assert.True(false, "autogenerated");
        }

        [Fact]
        public void BarTest()
        {
            Assert.True(false, "autogenerated");
        }
    }
}
`
	if string(got) != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatStatements(t *testing.T) {
	tree := ast.NewTree(ast.Hints{})
	cls := tree.NewType(tree.Root, source.Span{}, ast.TypeDecl{Kind: ast.TypeClass, Name: "C"})
	m := tree.NewMethod(cls, source.Span{}, ast.MethodDecl{Name: "M", ReturnType: "void"}, nil)
	tree.NewStmt(m, ast.StmtDecl{Kind: ast.StmtComment, Text: "Arrange"})
	tree.NewStmt(m, ast.StmtDecl{Kind: ast.StmtLine, Text: "int x = default;"})
	tree.NewStmt(m, ast.StmtDecl{Kind: ast.StmtBlank})
	tree.NewStmt(m, ast.StmtDecl{Kind: ast.StmtComment, Text: "Act"})

	got, err := FormatTree(tree, Options{IndentWidth: 2})
	if err != nil {
		t.Fatalf("FormatTree: %v", err)
	}
	want := "class C\n{\n  void M()\n  {\n    // Arrange\n    int x = default;\n\n    // Act\n  }\n}\n"
	if string(got) != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestFormatTabsAndFileScopedNamespace(t *testing.T) {
	tree := ast.NewTree(ast.Hints{})
	ns := tree.NewNamespace(tree.Root, source.Span{}, ast.NamespaceDecl{Name: "A.B", FileScoped: true})
	tree.NewType(ns, source.Span{}, ast.TypeDecl{Kind: ast.TypeClass, Name: "C", Modifiers: ast.ModPublic | ast.ModStatic})
	got, err := FormatTree(tree, Options{UseTabs: true})
	if err != nil {
		t.Fatalf("FormatTree: %v", err)
	}
	want := "namespace A.B;\n\npublic static class C\n{\n}\n"
	if string(got) != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestFormatMethodSignature(t *testing.T) {
	tree := ast.NewTree(ast.Hints{})
	cls := tree.NewType(tree.Root, source.Span{}, ast.TypeDecl{Kind: ast.TypeClass, Name: "C", TypeParams: []string{"T"}})
	tree.NewMethod(cls, source.Span{}, ast.MethodDecl{
		Name:       "Get",
		ReturnType: "T",
		Modifiers:  ast.ModPublic | ast.ModAbstract,
		TypeParams: []string{"U", "V"},
	}, []ast.ParamDecl{
		{Modifier: ast.ParamRef, Type: "int", Name: "a"},
		{Modifier: ast.ParamParams, Type: "string[]", Name: "rest"},
		{Type: "bool", Name: "flag", HasDefault: true},
	})
	got, err := FormatTree(tree, Options{})
	if err != nil {
		t.Fatalf("FormatTree: %v", err)
	}
	wantLine := "    public abstract T Get<U, V>(ref int a, params string[] rest, bool flag = default);\n"
	if !strings.Contains(string(got), wantLine) {
		t.Fatalf("signature line missing:\n%s", got)
	}
	if !strings.HasPrefix(string(got), "class C<T>\n") {
		t.Fatalf("type header missing:\n%s", got)
	}
}

func TestFormatNilTree(t *testing.T) {
	if _, err := FormatTree(nil, Options{}); err == nil {
		t.Fatal("expected error for nil tree")
	}
	if _, err := (Printer{}).Print(nil); err == nil {
		t.Fatal("expected error for nil tree")
	}
}

func TestPrinterIsDeterministic(t *testing.T) {
	tree := buildTestUnit()
	first, err := Printer{}.Print(tree)
	if err != nil {
		t.Fatal(err)
	}
	for range 3 {
		again, err := Printer{}.Print(tree)
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatalf("output changed between runs")
		}
	}
}

func TestRoundTrip(t *testing.T) {
	if ok, msg := checkRoundTrip(buildTestUnit(), Options{}); !ok {
		t.Fatalf("synthetic unit: %s", msg)
	}

	src := `using System;

namespace Shop.Orders
{
    public class Cart
    {
        public int Count { get; }
        public void Add(string sku, int qty) { }
        public static decimal Total(IEnumerable<decimal> prices) => 0;
    }

    public interface IStore { void Save(Cart cart); }
}
`
	tree, bag := parser.CSharp{}.Parse(src)
	if bag.HasErrors() {
		t.Fatalf("parse: %v", bag.Items())
	}
	if ok, msg := checkRoundTrip(tree, Options{}); !ok {
		t.Fatalf("parsed unit: %s", msg)
	}
}

// checkRoundTrip formats the tree, re-parses the output and checks that the
// declarations (namespaces, types and methods, in order) survived.
func checkRoundTrip(tree *ast.Tree, opt Options) (ok bool, msg string) {
	formatted, err := FormatTree(tree, opt)
	if err != nil {
		return false, "fmt-check: formatter failed: " + err.Error()
	}
	reparsed, bag := parser.CSharp{}.Parse(string(formatted))
	if bag.HasErrors() {
		first, _ := bag.FirstError()
		return false, "fmt-check: reparse failed: " + first.Message
	}
	if !slices.Equal(declShape(tree), declShape(reparsed)) {
		return false, "fmt-check: declarations differ after round-trip"
	}
	return true, "fmt-check: OK"
}

// declShape - последовательность "kind name" для namespace/type/method.
func declShape(tree *ast.Tree) []string {
	var shape []string
	tree.Walk(tree.Root, func(id ast.NodeID, n *ast.Node) bool {
		switch n.Kind {
		case ast.NodeNamespace:
			ns, _ := tree.Namespace(id)
			shape = append(shape, "namespace "+ns.Name)
		case ast.NodeType:
			td, _ := tree.Type(id)
			shape = append(shape, td.Kind.String()+" "+td.Name)
		case ast.NodeMethod:
			md, _ := tree.Method(id)
			shape = append(shape, "method "+md.Name)
			return false
		case ast.NodeUnit:
		case ast.NodeUsing, ast.NodeMember, ast.NodeStmt:
			return false
		}
		return true
	})
	return shape
}
