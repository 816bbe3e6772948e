package diag

import (
	"testing"

	"testgen/internal/source"
)

func TestBagLimitAndErrors(t *testing.T) {
	b := NewBag(2)
	sp := source.Span{}
	if !b.Add(New(SevWarning, SynInfo, sp, "w")) {
		t.Fatalf("first add rejected")
	}
	if b.HasErrors() {
		t.Fatalf("warning must not count as error")
	}
	if !b.HasWarnings() {
		t.Fatalf("expected warning")
	}
	if !b.Add(NewError(SynUnexpectedToken, sp, "e")) {
		t.Fatalf("second add rejected")
	}
	if b.Add(NewError(SynUnexpectedToken, sp, "dropped")) {
		t.Fatalf("limit not enforced")
	}
	if !b.HasErrors() {
		t.Fatalf("expected error")
	}
	d, ok := b.FirstError()
	if !ok || d.Message != "e" {
		t.Fatalf("FirstError = %+v, %v", d, ok)
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(10)
	b.Add(NewError(SynExpectSemicolon, source.Span{Start: 5, End: 6}, "b"))
	b.Add(New(SevWarning, SynInfo, source.Span{Start: 1, End: 2}, "w"))
	b.Add(NewError(SynUnexpectedToken, source.Span{Start: 1, End: 2}, "a"))
	b.Add(NewError(SynExpectSemicolon, source.Span{Start: 5, End: 6}, "dup"))
	b.Sort()
	b.Dedup()

	want := []Code{SynUnexpectedToken, SynInfo, SynExpectSemicolon}
	items := b.Items()
	if len(items) != len(want) {
		t.Fatalf("got %d items, want %d", len(items), len(want))
	}
	for i, c := range want {
		if items[i].Code != c {
			t.Fatalf("item %d: got %s, want %s", i, items[i].Code.ID(), c.ID())
		}
	}
}

func TestNilBagIsEmpty(t *testing.T) {
	var b *Bag
	if b.HasErrors() || b.Len() != 0 || b.Items() != nil {
		t.Fatalf("nil bag must behave as empty")
	}
}

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{LexUnknownChar, "LEX1001"},
		{SynUnclosedBrace, "SYN2002"},
		{IOLoadFileError, "IO4001"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("%d.ID() = %q, want %q", tt.code, got, tt.want)
		}
	}
}
