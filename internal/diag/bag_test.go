package diag

import (
	"testing"

	"lumen/internal/source"
)

func mkDiag(code Code, sev Severity, file source.FileID, start uint32) *Diagnostic {
	return &Diagnostic{
		Code: code, Severity: sev,
		Primary: source.Span{File: file, Start: start, End: start + 1},
	}
}

func TestBagAddRespectsCapacity(t *testing.T) {
	b := NewBag(2)
	if !b.Add(mkDiag(TypeMismatch, SevError, 1, 0)) {
		t.Fatal("expected first Add to succeed")
	}
	if !b.Add(mkDiag(TypeMismatch, SevError, 1, 1)) {
		t.Fatal("expected second Add to succeed")
	}
	if b.Add(mkDiag(TypeMismatch, SevError, 1, 2)) {
		t.Fatal("expected third Add to be rejected at capacity 2")
	}
	if b.Add(nil) {
		t.Fatal("expected Add(nil) to be rejected")
	}
}

func TestBagHasErrorsAndWarnings(t *testing.T) {
	b := NewBag(4)
	b.Add(mkDiag(TypeMismatch, SevWarning, 1, 0))
	if b.HasErrors() {
		t.Fatal("expected no errors yet")
	}
	if !b.HasWarnings() {
		t.Fatal("expected a warning")
	}
	b.Add(mkDiag(NameCycle, SevError, 1, 1))
	if !b.HasErrors() {
		t.Fatal("expected an error after adding SevError")
	}
}

func TestBagSortOrdersByFileStartEndSeverityCode(t *testing.T) {
	b := NewBag(8)
	b.Add(mkDiag(TypeMismatch, SevWarning, 2, 5))
	b.Add(mkDiag(NameCycle, SevError, 1, 10))
	b.Add(mkDiag(TypeMismatch, SevError, 1, 0))
	b.Sort()

	items := b.Items()
	if items[0].Primary.File != 1 || items[0].Primary.Start != 0 {
		t.Fatalf("expected file 1 start 0 first, got %+v", items[0])
	}
	if items[1].Primary.File != 1 || items[1].Primary.Start != 10 {
		t.Fatalf("expected file 1 start 10 second, got %+v", items[1])
	}
	if items[2].Primary.File != 2 {
		t.Fatalf("expected file 2 last, got %+v", items[2])
	}
}

func TestBagDedupByCodeAndSpan(t *testing.T) {
	b := NewBag(8)
	b.Add(mkDiag(TypeMismatch, SevError, 1, 0))
	b.Add(mkDiag(TypeMismatch, SevError, 1, 0))
	b.Add(mkDiag(NameCycle, SevError, 1, 0))
	b.Dedup()
	if b.Len() != 2 {
		t.Fatalf("expected duplicate (code, span) pair collapsed, got %d items", b.Len())
	}
}

func TestBagFilterKeepsMatching(t *testing.T) {
	b := NewBag(8)
	b.Add(mkDiag(TypeMismatch, SevError, 1, 0))
	b.Add(mkDiag(TypeMismatch, SevWarning, 1, 1))
	b.Filter(func(d *Diagnostic) bool { return d.Severity >= SevError })
	if b.Len() != 1 {
		t.Fatalf("expected only the error to survive, got %d", b.Len())
	}
}

func TestBagTransformAppliesToEveryItem(t *testing.T) {
	b := NewBag(8)
	b.Add(mkDiag(TypeMismatch, SevWarning, 1, 0))
	b.Add(mkDiag(NameCycle, SevWarning, 1, 1))
	b.Transform(func(d *Diagnostic) *Diagnostic {
		d.Severity = SevError
		return d
	})
	for _, d := range b.Items() {
		if d.Severity != SevError {
			t.Fatalf("expected every item promoted to SevError, got %+v", d)
		}
	}
}

func TestBagTransformPanicsOnNil(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Transform to panic when transformer returns nil")
		}
	}()
	b := NewBag(4)
	b.Add(mkDiag(TypeMismatch, SevError, 1, 0))
	b.Transform(func(*Diagnostic) *Diagnostic { return nil })
}

func TestBagMergeGrowsCapacity(t *testing.T) {
	a := NewBag(1)
	b := NewBag(1)
	a.Add(mkDiag(TypeMismatch, SevError, 1, 0))
	b.Add(mkDiag(NameCycle, SevError, 2, 0))
	a.Merge(b)
	if a.Len() != 2 {
		t.Fatalf("expected merged bag to hold both diagnostics, got %d", a.Len())
	}
	if a.Cap() < 2 {
		t.Fatalf("expected capacity to grow to fit merged items, got %d", a.Cap())
	}
}
