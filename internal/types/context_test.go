package types

import (
	"testing"

	"lumen/internal/source"
)

func newTestContext() *TypeContext {
	return NewTypeContext(source.NewInterner(), 8)
}

func TestMakeConcreteDefaultsAnyInt(t *testing.T) {
	ctx := newTestContext()
	id := ctx.AnyInt(source.Span{})
	got := ctx.MakeConcrete(VarOf(id))
	want := ctx.MustLookup(ctx.Common.Int).Bound
	if got.Kind != want.Kind || got.Width != want.Width {
		t.Fatalf("expected default int, got %+v", got)
	}
}

func TestMakeConcreteDefaultsAnyFloat(t *testing.T) {
	ctx := newTestContext()
	id := ctx.AnyFloat(source.Span{})
	got := ctx.MakeConcrete(VarOf(id))
	want := ctx.MustLookup(ctx.Common.Float).Bound
	if got.Kind != want.Kind || got.Width != want.Width {
		t.Fatalf("expected default float, got %+v", got)
	}
}

func TestNormalizeChasesBoundChain(t *testing.T) {
	ctx := newTestContext()
	a := ctx.Var(source.Span{})
	b := ctx.Var(source.Span{})
	ctx.BindTy(a, VarOf(b))
	ctx.BindTy(b, Bool())

	got := ctx.Normalize(VarOf(a))
	if got.Kind != KindBool {
		t.Fatalf("expected bool after chasing chain, got %s", got.Kind)
	}
}

func TestMustLookupPanicsOnInvalidID(t *testing.T) {
	ctx := newTestContext()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on invalid TypeID")
		}
	}()
	ctx.MustLookup(TypeID(9999))
}
