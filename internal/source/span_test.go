package source

import "testing"

func TestSpanEmpty(t *testing.T) {
	insertion := Span{File: 1, Start: 10, End: 10}
	if !insertion.Empty() {
		t.Fatal("expected a zero-width span to report Empty")
	}
	highlighted := Span{File: 1, Start: 10, End: 14}
	if highlighted.Empty() {
		t.Fatal("expected a non-zero-width span to not report Empty")
	}
}

func TestSpanLen(t *testing.T) {
	sp := Span{File: 1, Start: 10, End: 14}
	if sp.Len() != 4 {
		t.Fatalf("expected length 4, got %d", sp.Len())
	}
}

func TestSpanString(t *testing.T) {
	sp := Span{File: 2, Start: 5, End: 9}
	if got, want := sp.String(), "2:5-9"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
