package fuzztests

import (
	"context"
	"testing"
	"time"

	"testgen/internal/diag"
	"testgen/internal/parser"
	"testgen/internal/source"
	"testgen/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func parseInput(input []byte) (parser.Result, *source.File) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("fuzz.cs", input)
	bag := diag.NewBag(128)
	res := parser.ParseFile(fs, fileID, parser.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: 128,
	})
	return res, fs.Get(fileID)
}

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		res, file := parseInput(clampInput(input))
		if res.Tree == nil {
			t.Fatalf("parser returned nil tree")
		}
		if err := testkit.CheckSpanInvariants(res.Tree, file); err != nil {
			t.Fatalf("span invariants: %v\ninput: %q", err, truncateForLog(input, 200))
		}
	})
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
// Error recovery skips by brace balance, so unbalanced input is the
// interesting part of the corpus.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	f.Add([]byte("public class A { public void M( { }"))                    // unclosed parameter list
	f.Add([]byte("namespace N { public class A { void M() { { { }"))        // unbalanced method body
	f.Add([]byte("public class A<T where T : new() { }"))                   // broken type parameter list
	f.Add([]byte("class A { string s = $\"{x} }\"; }"))                     // braces inside interpolation
	f.Add([]byte("namespace A; namespace B; class C { }"))                  // double file-scoped namespace
	f.Add([]byte("using static; using = X; global using;"))                 // malformed usings
	f.Add([]byte("public class A { public int this[int i] { get => i } }")) // indexer without semicolon

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = parseInput(input)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
