package diag

import (
	"testing"

	"lumen/internal/source"
)

func TestBagReporterAddsToBag(t *testing.T) {
	bag := NewBag(8)
	r := BagReporter{Bag: bag}
	ReportError(r, TypeMismatch, source.Span{}, "expected i32, got bool").
		WithNote(source.Span{}, "declared here").
		Emit()

	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic in bag, got %d", bag.Len())
	}
	got := bag.Items()[0]
	if got.Code != TypeMismatch || got.Severity != SevError {
		t.Fatalf("unexpected diagnostic: %+v", got)
	}
	if len(got.Notes) != 1 || got.Notes[0].Msg != "declared here" {
		t.Fatalf("expected note to survive Emit, got %+v", got.Notes)
	}
}

func TestBagReporterNilBagIsNoop(t *testing.T) {
	r := BagReporter{}
	ReportWarning(r, NameCycle, source.Span{}, "cycle").Emit()
}

func TestNopReporterDiscards(t *testing.T) {
	ReportInfo(NopReporter{}, TypeMismatch, source.Span{}, "ignored").Emit()
}

func TestMultiReporterFansOutAndSkipsNil(t *testing.T) {
	a := NewBag(8)
	b := NewBag(8)
	fanout := MultiReporter{BagReporter{Bag: a}, nil, BagReporter{Bag: b}}
	ReportError(fanout, NameCycle, source.Span{}, "import cycle detected").Emit()

	if a.Len() != 1 || b.Len() != 1 {
		t.Fatalf("expected both bags to receive the diagnostic, got %d and %d", a.Len(), b.Len())
	}
}

func TestReportBuilderEmitsAtMostOnce(t *testing.T) {
	bag := NewBag(8)
	rb := ReportError(BagReporter{Bag: bag}, TypeMismatch, source.Span{}, "dup check")
	rb.Emit()
	rb.Emit()
	if bag.Len() != 1 {
		t.Fatalf("expected Emit to be idempotent, got %d diagnostics", bag.Len())
	}
}

func TestNilReportBuilderIsSafe(t *testing.T) {
	var rb *ReportBuilder
	rb.WithNote(source.Span{}, "x").WithFix("fix", TextEdit{}).Emit()
	got := rb.Diagnostic()
	if got.Code != 0 || got.Message != "" || got.Notes != nil {
		t.Fatalf("expected zero-value diagnostic from nil builder, got %+v", got)
	}
}
