package types

import (
	"testing"

	"lumen/internal/source"
)

func TestUnifyGroundMismatch(t *testing.T) {
	ctx := newTestContext()
	if err := Unify(ctx, Bool(), Int(Width32)); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestUnifyGroundIdenticalPrimitives(t *testing.T) {
	ctx := newTestContext()
	if err := Unify(ctx, Int(Width32), Int(Width32)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUnifyAnyIntWithConcreteInt(t *testing.T) {
	ctx := newTestContext()
	id := ctx.AnyInt(source.Span{})
	if err := Unify(ctx, VarOf(id), Int(Width32)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := ctx.Normalize(VarOf(id))
	if got.Kind != KindInt || got.Width != Width32 {
		t.Fatalf("expected bound to i32, got %+v", got)
	}
}

func TestUnifyAnyIntWithFloatFails(t *testing.T) {
	ctx := newTestContext()
	id := ctx.AnyInt(source.Span{})
	if err := Unify(ctx, VarOf(id), Float(Width32)); err == nil {
		t.Fatal("expected error unifying integer literal with float")
	}
}

func TestUnifyNeverIsBottom(t *testing.T) {
	ctx := newTestContext()
	if err := Unify(ctx, Never(), Bool()); err != nil {
		t.Fatalf("never should unify with anything: %v", err)
	}
	if err := Unify(ctx, Int(Width64), Never()); err != nil {
		t.Fatalf("never should unify with anything: %v", err)
	}
}

func TestUnifyOccursCheck(t *testing.T) {
	ctx := newTestContext()
	id := ctx.Var(source.Span{})
	elem := VarOf(id)
	ptr := Pointer(elem, false)
	err := Unify(ctx, VarOf(id), ptr)
	if err == nil {
		t.Fatal("expected occurs check failure")
	}
	uerr, ok := err.(*UnifyError)
	if !ok || !uerr.Occurs {
		t.Fatalf("expected occurs-check error, got %v", err)
	}
}

func TestUnifyStructNominalFastPath(t *testing.T) {
	ctx := newTestContext()
	a := Struct(&StructType{ID: 42, Field: []StructField{{Type: Bool()}}})
	b := Struct(&StructType{ID: 42, Field: nil}) // shape irrelevant once IDs match
	if err := Unify(ctx, a, b); err != nil {
		t.Fatalf("nominal structs with matching id should unify: %v", err)
	}
}

func TestUnifyStructFieldMismatch(t *testing.T) {
	ctx := newTestContext()
	strs := source.NewInterner()
	xName := strs.Intern("x")
	a := Struct(&StructType{Field: []StructField{{Name: xName, Type: Int(Width32)}}})
	b := Struct(&StructType{Field: []StructField{{Name: xName, Type: Bool()}}})
	if err := Unify(ctx, a, b); err == nil {
		t.Fatal("expected field type mismatch error")
	}
}

func TestUnifyFunctionArityMismatch(t *testing.T) {
	ctx := newTestContext()
	ret := Bool()
	a := Function(&FunctionType{Params: []FnParam{{Type: Int(Width32)}}, Return: &ret})
	b := Function(&FunctionType{Return: &ret})
	if err := Unify(ctx, a, b); err == nil {
		t.Fatal("expected arity mismatch error")
	}
}

func TestUnifyVariadicAgainstNonVariadicFunctionFails(t *testing.T) {
	ctx := newTestContext()
	ret := Bool()
	variadic := Function(&FunctionType{
		Params:  []FnParam{{Type: Int(Width32)}},
		Return:  &ret,
		Varargs: &Vararg{},
	})
	callSite := Function(&FunctionType{
		Params: []FnParam{{Type: Int(Width32)}, {Type: Int(Width32)}, {Type: Bool()}},
		Return: &ret,
	})
	if err := Unify(ctx, variadic, callSite); err == nil {
		t.Fatal("expected varargs presence mismatch, since callSite itself is not declared variadic")
	}
}

func TestUnifyVariadicFunctionsPairwiseUpToShorterLength(t *testing.T) {
	ctx := newTestContext()
	ret := Bool()
	a := Function(&FunctionType{
		Params:  []FnParam{{Type: Int(Width32)}},
		Return:  &ret,
		Varargs: &Vararg{},
	})
	b := Function(&FunctionType{
		Params:  []FnParam{{Type: Int(Width32)}, {Type: Int(Width32)}},
		Return:  &ret,
		Varargs: &Vararg{},
	})
	if err := Unify(ctx, a, b); err != nil {
		t.Fatalf("expected differing variadic param counts to unify pairwise, got %v", err)
	}
}
