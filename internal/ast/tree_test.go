package ast

import (
	"slices"
	"testing"

	"testgen/internal/source"
)

// buildSample собирает дерево:
//
//	using System;
//	namespace A.B {
//	    namespace C {
//	        public class Outer {
//	            public Outer() {}
//	            public void Run(ref int x) {}
//	            public class Inner { public int Get() => 1; }
//	            public static void Stop() {}
//	        }
//	    }
//	}
func buildSample(t *testing.T) (*Tree, map[string]NodeID) {
	t.Helper()
	tr := NewTree(Hints{})
	ids := map[string]NodeID{}
	sp := source.Span{}

	ids["using"] = tr.NewUsing(tr.Root, sp, UsingDecl{Name: "System", Text: "using System;"})
	ab := tr.NewNamespace(tr.Root, sp, NamespaceDecl{Name: "A.B"})
	c := tr.NewNamespace(ab, sp, NamespaceDecl{Name: "C"})
	ids["inner-using"] = tr.NewUsing(c, sp, UsingDecl{Name: "System.IO", Text: "using System.IO;"})
	outer := tr.NewType(c, sp, TypeDecl{Kind: TypeClass, Name: "Outer", Modifiers: ModPublic})
	ids["outer"] = outer
	tr.NewMember(outer, sp, MemberDecl{Kind: MemberConstructor, Name: "Outer", Modifiers: ModPublic})
	ids["run"] = tr.NewMethod(outer, sp, MethodDecl{Name: "Run", ReturnType: "void", Modifiers: ModPublic},
		[]ParamDecl{{Modifier: ParamRef, Type: "int", Name: "x"}})
	inner := tr.NewType(outer, sp, TypeDecl{Kind: TypeClass, Name: "Inner", Modifiers: ModPublic})
	ids["inner"] = inner
	tr.NewMethod(inner, sp, MethodDecl{Name: "Get", ReturnType: "int", Modifiers: ModPublic}, nil)
	ids["stop"] = tr.NewMethod(outer, sp, MethodDecl{Name: "Stop", ReturnType: "void", Modifiers: ModPublic | ModStatic}, nil)
	tr.NewType(c, sp, TypeDecl{Kind: TypeStruct, Name: "Point", Modifiers: ModPublic})
	return tr, ids
}

func TestClassesIncludesNestedAndSkipsStructs(t *testing.T) {
	tr, ids := buildSample(t)
	got := tr.Classes()
	want := []NodeID{ids["outer"], ids["inner"]}
	if !slices.Equal(got, want) {
		t.Fatalf("Classes() = %v, want %v", got, want)
	}
}

func TestUsingDirectivesCollectsNamespaceScoped(t *testing.T) {
	tr, ids := buildSample(t)
	got := tr.UsingDirectives()
	want := []NodeID{ids["using"], ids["inner-using"]}
	if !slices.Equal(got, want) {
		t.Fatalf("UsingDirectives() = %v, want %v", got, want)
	}
}

func TestNamespacePathSplitsDottedNames(t *testing.T) {
	tr, ids := buildSample(t)
	if got := tr.NamespacePath(ids["inner"]); !slices.Equal(got, []string{"A", "B", "C"}) {
		t.Fatalf("NamespacePath = %v", got)
	}
	if got := tr.NamespaceChain(ids["outer"]); len(got) != 2 {
		t.Fatalf("NamespaceChain len = %d, want 2", len(got))
	}
	if got := tr.NamespacePath(ids["using"]); len(got) != 0 {
		t.Fatalf("top-level node must have empty path, got %v", got)
	}
}

func TestEnclosingTypes(t *testing.T) {
	tr, ids := buildSample(t)
	if got := tr.EnclosingTypes(ids["inner"]); !slices.Equal(got, []string{"Outer"}) {
		t.Fatalf("EnclosingTypes(inner) = %v", got)
	}
	if got := tr.EnclosingTypes(ids["outer"]); len(got) != 0 {
		t.Fatalf("EnclosingTypes(outer) = %v", got)
	}
}

func TestMethodsOfDirectOnly(t *testing.T) {
	tr, ids := buildSample(t)
	got := tr.MethodsOf(ids["outer"])
	want := []NodeID{ids["run"], ids["stop"]}
	if !slices.Equal(got, want) {
		t.Fatalf("MethodsOf = %v, want %v", got, want)
	}
	md, ok := tr.Method(ids["run"])
	if !ok {
		t.Fatalf("Run is not a method")
	}
	params := tr.MethodParams(md)
	if len(params) != 1 || params[0].Modifier.Keyword() != "ref" || params[0].Name != "x" {
		t.Fatalf("params = %+v", params)
	}
	if _, ok := tr.Type(ids["run"]); ok {
		t.Fatalf("method must not resolve as type")
	}
}

func TestModifiersRoundTrip(t *testing.T) {
	m, ok := LookupModifier("static")
	if !ok || m != ModStatic {
		t.Fatalf("LookupModifier(static) = %v, %v", m, ok)
	}
	if _, ok := LookupModifier("class"); ok {
		t.Fatalf("class is not a modifier")
	}
	if got := (ModStatic | ModPublic | ModPartial).String(); got != "public static partial" {
		t.Fatalf("String() = %q", got)
	}
}

func TestArenaOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil || a.Get(1) != nil {
		t.Fatalf("empty arena must return nil")
	}
	id := a.Allocate(7)
	if id != 1 || *a.Get(id) != 7 || a.Len() != 1 {
		t.Fatalf("unexpected arena state")
	}
}
