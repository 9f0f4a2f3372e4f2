package types

// CanCast reports whether an explicit `as` cast from `from` to `to` is
// admissible (§4.4). Explicit casts are intentionally more permissive than
// Coerce: they allow narrowing, sign changes, numeric/pointer reinterprets,
// and bool<->integer conversions that would never be inferred implicitly.
func CanCast(ctx *TypeContext, wordSizeBytes int, from, to Type) bool {
	f := ctx.Normalize(from)
	t := ctx.Normalize(to)

	if f.Kind == t.Kind && sameShape(ctx, f, t) {
		return true
	}

	switch {
	case isNumericKind(f.Kind) && isNumericKind(t.Kind):
		return true
	case f.Kind == KindBool && isIntegerKind(t.Kind):
		return true
	case isIntegerKind(f.Kind) && t.Kind == KindBool:
		return true
	case f.Kind == KindPointer && t.Kind == KindPointer:
		// Reinterpret casts are always legal regardless of mutability,
		// unlike Coerce's one-directional CanCoerceMut admission.
		return true
	case f.Kind == KindPointer && isIntegerKind(t.Kind) && t.Width.SizeOf(wordSizeBytes) >= wordSizeBytes*8:
		return true
	case isIntegerKind(f.Kind) && t.Kind == KindPointer && f.Width.SizeOf(wordSizeBytes) >= wordSizeBytes*8:
		return true
	case f.Kind == KindStr && t.Kind == KindSlice && t.Elem != nil && t.Elem.Kind == KindUint && t.Elem.Width == Width8:
		return true
	case f.Kind == KindSlice && f.Elem != nil && f.Elem.Kind == KindUint && f.Elem.Width == Width8 && t.Kind == KindStr:
		return true
	case f.Kind == KindArray && t.Kind == KindSlice:
		return Unify(ctx, *f.Elem, *t.Elem) == nil
	default:
		return false
	}
}

func isIntegerKind(k Kind) bool {
	return k == KindInt || k == KindUint
}

func isNumericKind(k Kind) bool {
	return k == KindInt || k == KindUint || k == KindFloat
}

// sameShape is a cheap structural check used only to short-circuit CanCast
// for types that already unify (a cast to one's own type is always legal);
// it accepts exactly the pairs Unify accepts.
func sameShape(ctx *TypeContext, a, b Type) bool {
	return Unify(ctx, a, b) == nil
}
