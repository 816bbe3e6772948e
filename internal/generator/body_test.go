package generator_test

import (
	"errors"
	"slices"
	"testing"

	"testgen/internal/ast"
	"testgen/internal/generator"
)

func stmtTexts(stmts []ast.StmtDecl) []string {
	out := make([]string, len(stmts))
	for i, s := range stmts {
		switch s.Kind {
		case ast.StmtLine:
			out[i] = s.Text
		case ast.StmtComment:
			out[i] = "// " + s.Text
		case ast.StmtBlank:
			out[i] = ""
		}
	}
	return out
}

func mustBody(t *testing.T, strategy generator.BodyStrategy, sig generator.MethodSignature) []string {
	t.Helper()
	stmts, err := generator.Body(strategy, sig)
	if err != nil {
		t.Fatalf("Body(%v): %v", strategy, err)
	}
	return stmtTexts(stmts)
}

func TestEmptyBody(t *testing.T) {
	got := mustBody(t, generator.BodyEmpty, generator.MethodSignature{Name: "Foo", Owner: "C"})
	if !slices.Equal(got, []string{`Assert.True(false, "autogenerated");`}) {
		t.Fatalf("body = %q", got)
	}
}

func TestTemplateBodyStatements(t *testing.T) {
	tests := []struct {
		name string
		sig  generator.MethodSignature
		want []string
	}{
		{
			name: "static void without params",
			sig:  generator.MethodSignature{Name: "Run", ReturnType: "void", Static: true, Owner: "Jobs"},
			want: []string{
				"// Act", "Jobs.Run();", "",
				"// Assert", "// TODO: replace the placeholder assertion", `Assert.True(false, "autogenerated");`,
			},
		},
		{
			name: "param names clash with locals",
			sig: generator.MethodSignature{
				Name: "Compare", ReturnType: "bool", Owner: "Cmp",
				Params: []ast.ParamDecl{{Type: "int", Name: "actual"}, {Type: "int", Name: "sut"}, {Type: "int"}},
			},
			want: []string{
				"// Arrange", "int actual2 = default;", "int sut2 = default;", "int arg3 = default;", "var sut = new Cmp();", "",
				"// Act", "var actual = sut.Compare(actual2, sut2, arg3);", "",
				"// Assert", "// TODO: replace the placeholder assertion", `Assert.True(false, "autogenerated");`,
			},
		},
		{
			name: "open generics are closed over object",
			sig: generator.MethodSignature{
				Name: "Map", ReturnType: "TOut", Owner: "Mapper<object>",
				TypeParams:     []string{"TOut"},
				OpenTypeParams: []string{"T"},
				Params: []ast.ParamDecl{
					{Type: "Dictionary<T, List<TOut>>", Name: "source"},
					{Modifier: ast.ParamRefReadonly, Type: "Other.T", Name: "hint"},
				},
			},
			want: []string{
				"// Arrange", "Dictionary<object, List<object>> source = default;", "Other.T hint = default;",
				"var sut = new Mapper<object>();", "",
				"// Act", "var actual = sut.Map<object>(source, in hint);", "",
				"// Assert", "// TODO: replace the placeholder assertion", `Assert.True(false, "autogenerated");`,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustBody(t, generator.BodyTemplate, tt.sig)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("body:\n got %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestUnknownBodyStrategy(t *testing.T) {
	stmts, err := generator.Body(generator.BodyStrategy(7), generator.MethodSignature{Name: "Foo", Owner: "C"})
	if !errors.Is(err, generator.ErrUnknownBody) {
		t.Fatalf("err = %v, want ErrUnknownBody", err)
	}
	if stmts != nil {
		t.Fatalf("stmts = %v, want nil", stmts)
	}

	g := newGenerator(generator.Config{Body: generator.BodyStrategy(7)})
	units, err := g.Generate("namespace N { public class C { public void M() { } } }")
	if !errors.Is(err, generator.ErrUnknownBody) || units != nil {
		t.Fatalf("Generate = %v, %v; want no units and ErrUnknownBody", units, err)
	}
}

func TestTestMethodNamesForOverloads(t *testing.T) {
	methods := []generator.MethodSignature{{Name: "Foo"}, {Name: "Bar"}, {Name: "Foo"}, {Name: "Foo"}}
	got := generator.TestMethodNames(methods)
	if !slices.Equal(got, []string{"FooTest", "BarTest", "FooTest2", "FooTest3"}) {
		t.Fatalf("names = %v", got)
	}
}

func TestTestNamespace(t *testing.T) {
	if got := generator.TestNamespace(nil); got != "Tests" {
		t.Fatalf("empty path: %q", got)
	}
	if got := generator.TestNamespace([]string{"A", "B"}); got != "A.B.Tests" {
		t.Fatalf("A.B: %q", got)
	}
}

func TestUsingsOrderAndDedup(t *testing.T) {
	src := []ast.UsingDecl{
		{Name: "System", Text: "using System;"},
		{Static: true, Name: "System.Math", Text: "using static System.Math;"},
		{Global: true, Name: "System.IO", Text: "global using System.IO;"},
		{Alias: "M", Name: "A.Model", Text: "using M = A.Model;"},
		{Name: "A", Text: "using A;"},
	}
	got := generator.Usings([]string{"System", "Xunit"}, src, []string{"A", "B"})
	want := []string{
		"using System;",
		"using Xunit;",
		"global using System.IO;",
		"using M = A.Model;",
		"using A;",
		"using A.B;",
	}
	if !slices.Equal(got, want) {
		t.Fatalf("usings:\n got %q\nwant %q", got, want)
	}
}

func TestParseBodyStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    generator.BodyStrategy
		wantErr bool
	}{
		{"", generator.BodyEmpty, false},
		{"empty", generator.BodyEmpty, false},
		{"Template", generator.BodyTemplate, false},
		{"templated", generator.BodyTemplate, false},
		{"full", generator.BodyEmpty, true},
	}
	for _, tt := range tests {
		got, err := generator.ParseBodyStrategy(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Fatalf("ParseBodyStrategy(%q) = %v, %v", tt.in, got, err)
		}
	}
}
