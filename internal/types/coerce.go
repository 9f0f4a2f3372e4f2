package types

// CoercionResult describes which side of a binary operand pair (or
// if/else branch pair) must be implicitly converted for the pair to share
// a single type, per §4.3.
type CoercionResult uint8

const (
	// NoCoercion means the two types cannot be reconciled implicitly; the
	// caller must report a type mismatch (an explicit `as` cast may still
	// be legal — see CanCast).
	NoCoercion CoercionResult = iota
	// CoerceEqual means the types already unify with no value conversion
	// (including literal-placeholder resolution).
	CoerceEqual
	// CoerceLeftToRight means the left operand must be converted to the
	// right operand's type.
	CoerceLeftToRight
	// CoerceRightToLeft means the right operand must be converted to the
	// left operand's type.
	CoerceRightToLeft
)

// Coerce attempts to find an implicit common type for left and right,
// mutating ctx for any literal placeholders it resolves along the way.
// Unlike Unify, Coerce also admits the asymmetric cases §4.3 calls out:
// integer widening, immutable-to-mutable pointer decay, and array-to-slice
// decay. wordSizeBytes resolves WidthWord for the widening comparison.
func Coerce(ctx *TypeContext, wordSizeBytes int, left, right Type) (CoercionResult, Type) {
	l := ctx.Normalize(left)
	r := ctx.Normalize(right)

	if err := Unify(ctx, l, r); err == nil {
		return CoerceEqual, ctx.Normalize(l)
	}

	if res, t, ok := coerceNumeric(wordSizeBytes, l, r); ok {
		return res, t
	}
	if res, t, ok := coercePointerMut(ctx, l, r); ok {
		return res, t
	}
	if res, t, ok := coerceArrayToSlice(ctx, l, r); ok {
		return res, t
	}
	if res, t, ok := coercePointerArrayDecay(ctx, l, r); ok {
		return res, t
	}
	return NoCoercion, Type{}
}

// CanCoerceMut reports whether a pointer annotated `from` may stand in for
// one annotated `to` (§4.2/§8.3): equal annotations always agree, and an
// immutable source may widen into a mutable target. Mutable-to-immutable
// narrowing is not admitted.
func CanCoerceMut(from, to bool) bool {
	return from == to || (!from && to)
}

func coerceNumeric(wordSizeBytes int, l, r Type) (CoercionResult, Type, bool) {
	if l.Kind != r.Kind {
		return NoCoercion, Type{}, false
	}
	if l.Kind != KindInt && l.Kind != KindUint && l.Kind != KindFloat {
		return NoCoercion, Type{}, false
	}
	lw := l.Width.SizeOf(wordSizeBytes)
	rw := r.Width.SizeOf(wordSizeBytes)
	switch {
	case lw == rw:
		return NoCoercion, Type{}, false // same width, different underlying Width tag: not coercible without a cast
	case lw < rw:
		return CoerceLeftToRight, r, true
	default:
		return CoerceRightToLeft, l, true
	}
}

// coercePointerMut handles the one pointer-mutability mismatch Unify itself
// rejects: an immutable pointer standing in for a mutable one. By the time
// this runs, Unify(l, r) has already failed, so if l is immutable and r is
// mutable the symmetric attempt (r standing in for l) is what's left to try.
func coercePointerMut(ctx *TypeContext, l, r Type) (CoercionResult, Type, bool) {
	if l.Kind != KindPointer || r.Kind != KindPointer {
		return NoCoercion, Type{}, false
	}
	if l.Mutable == r.Mutable {
		return NoCoercion, Type{}, false
	}
	if CanCoerceMut(r.Mutable, l.Mutable) && Unify(ctx, *l.Elem, *r.Elem) == nil {
		return CoerceRightToLeft, l, true
	}
	if CanCoerceMut(l.Mutable, r.Mutable) && Unify(ctx, *l.Elem, *r.Elem) == nil {
		return CoerceLeftToRight, r, true
	}
	return NoCoercion, Type{}, false
}

// coerceArrayToSlice allows a fixed-size array to decay to a slice of the
// same element type (never the reverse — a slice carries no static length).
func coerceArrayToSlice(ctx *TypeContext, l, r Type) (CoercionResult, Type, bool) {
	switch {
	case l.Kind == KindArray && r.Kind == KindSlice:
		if Unify(ctx, *l.Elem, *r.Elem) == nil {
			return CoerceLeftToRight, r, true
		}
	case r.Kind == KindArray && l.Kind == KindSlice:
		if Unify(ctx, *r.Elem, *l.Elem) == nil {
			return CoerceRightToLeft, l, true
		}
	}
	return NoCoercion, Type{}, false
}

// coercePointerArrayDecay extends array-to-slice decay through a pointer
// wrapper (§4.3 scenario: `let p: *[]int = &a` where a is `[3]int`), and
// additionally admits decay to a pointer-to-element, both gated by
// CanCoerceMut on the two pointers' mutability.
func coercePointerArrayDecay(ctx *TypeContext, l, r Type) (CoercionResult, Type, bool) {
	if l.Kind != KindPointer || r.Kind != KindPointer {
		return NoCoercion, Type{}, false
	}
	le, re := *l.Elem, *r.Elem

	if le.Kind == KindArray && re.Kind != KindArray {
		target := re
		if re.Kind == KindSlice {
			target = *re.Elem
		}
		if Unify(ctx, *le.Elem, target) == nil && CanCoerceMut(l.Mutable, r.Mutable) {
			return CoerceLeftToRight, r, true
		}
	}
	if re.Kind == KindArray && le.Kind != KindArray {
		target := le
		if le.Kind == KindSlice {
			target = *le.Elem
		}
		if Unify(ctx, *re.Elem, target) == nil && CanCoerceMut(r.Mutable, l.Mutable) {
			return CoerceRightToLeft, l, true
		}
	}
	return NoCoercion, Type{}, false
}
