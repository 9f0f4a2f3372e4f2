package types

import "testing"

func TestCanCastNumericCross(t *testing.T) {
	ctx := newTestContext()
	if !CanCast(ctx, 8, Int(Width32), Float(Width64)) {
		t.Fatal("expected int-to-float cast to be admissible")
	}
	if !CanCast(ctx, 8, Float(Width64), Uint(Width8)) {
		t.Fatal("expected float-to-uint cast to be admissible")
	}
}

func TestCanCastBoolIntegerRoundtrip(t *testing.T) {
	ctx := newTestContext()
	if !CanCast(ctx, 8, Bool(), Int(Width32)) {
		t.Fatal("expected bool-to-int cast to be admissible")
	}
	if !CanCast(ctx, 8, Int(Width32), Bool()) {
		t.Fatal("expected int-to-bool cast to be admissible")
	}
}

func TestCanCastStructsNotAdmissible(t *testing.T) {
	ctx := newTestContext()
	a := Struct(&StructType{ID: 1})
	b := Struct(&StructType{ID: 2})
	if CanCast(ctx, 8, a, b) {
		t.Fatal("distinct nominal structs should not be castable")
	}
}

func TestCanCastPointerReinterpret(t *testing.T) {
	ctx := newTestContext()
	a := Pointer(Int(Width32), false)
	b := Pointer(Bool(), true)
	if !CanCast(ctx, 8, a, b) {
		t.Fatal("expected pointer reinterpret cast to be admissible")
	}
}

func TestCanCastStrSliceRoundtrip(t *testing.T) {
	ctx := newTestContext()
	if !CanCast(ctx, 8, Str(), Slice(Uint(Width8))) {
		t.Fatal("expected str-to-[]u8 cast to be admissible")
	}
	if !CanCast(ctx, 8, Slice(Uint(Width8)), Str()) {
		t.Fatal("expected []u8-to-str cast to be admissible")
	}
}
