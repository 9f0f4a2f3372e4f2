package types

import "fmt"

// UnifyError reports why two types could not be unified. Callers translate
// it into a diagnostic (diag.TypeMismatch / diag.TypeOccursCheck).
type UnifyError struct {
	Occurs   bool
	Expected Type
	Got      Type
	Reason   string
}

func (e *UnifyError) Error() string {
	if e.Occurs {
		return fmt.Sprintf("type occurs check failed: %s", e.Reason)
	}
	return fmt.Sprintf("cannot unify %s", e.Reason)
}

// Unify attempts to make a and b denote the same type, mutating ctx's
// union-find store as needed, and returns an error describing the mismatch
// otherwise. This is the monomorphic unifier of §4.2: no generalization, no
// subtyping — only literal-placeholder resolution and structural equality.
func Unify(ctx *TypeContext, a, b Type) error {
	a = ctx.Normalize(a)
	b = ctx.Normalize(b)

	// Rule: Never unifies with anything (bottom type, e.g. a `return`
	// expression's type in a unifying branch position).
	if a.Kind == KindNever {
		return nil
	}
	if b.Kind == KindNever {
		return nil
	}

	// Rule: AnyType (the top "don't care" type used by FFI signatures and
	// untyped constant contexts) unifies with anything.
	if a.Kind == KindAnyType || b.Kind == KindAnyType {
		return nil
	}

	aIsVar := a.Kind == KindVar || a.Kind == KindInfer
	bIsVar := b.Kind == KindVar || b.Kind == KindInfer

	switch {
	case aIsVar && bIsVar:
		return unifyVarVar(ctx, a, b)
	case aIsVar:
		return bindVar(ctx, a, b)
	case bIsVar:
		return bindVar(ctx, b, a)
	default:
		return unifyGround(ctx, a, b)
	}
}

func unifyVarVar(ctx *TypeContext, a, b Type) error {
	if a.Var == b.Var {
		return nil
	}
	av := ctx.MustLookup(a.Var)
	bv := ctx.MustLookup(b.Var)

	// Two literal placeholders of the same flavor: point one at the other,
	// keeping the default-resolution flavor (rule 3/4 of §4.2).
	switch {
	case av.Kind == Unbound:
		ctx.BindValue(a.Var, InferenceValue{Kind: Bound, Bound: VarOf(b.Var)})
		return nil
	case bv.Kind == Unbound:
		ctx.BindValue(b.Var, InferenceValue{Kind: Bound, Bound: VarOf(a.Var)})
		return nil
	case av.Kind == BoundAnyInt && bv.Kind == BoundAnyInt:
		ctx.BindValue(a.Var, InferenceValue{Kind: Bound, Bound: VarOf(b.Var)})
		return nil
	case av.Kind == BoundAnyFloat && bv.Kind == BoundAnyFloat:
		ctx.BindValue(a.Var, InferenceValue{Kind: Bound, Bound: VarOf(b.Var)})
		return nil
	case av.Kind == BoundAnyInt && bv.Kind == BoundAnyFloat, av.Kind == BoundAnyFloat && bv.Kind == BoundAnyInt:
		return &UnifyError{Expected: a, Got: b, Reason: "integer literal cannot unify with float literal"}
	default:
		// Should be unreachable: Bound slots normalize away, leaving only
		// Unbound/BoundAnyInt/BoundAnyFloat as var/infer payloads here.
		return &UnifyError{Expected: a, Got: b, Reason: "incompatible inference variables"}
	}
}

// bindVar unifies a variable/placeholder v against a ground (or
// partially-ground) type t, honoring the literal-defaulting rules and the
// occurs check.
func bindVar(ctx *TypeContext, v, t Type) error {
	vv := ctx.MustLookup(v.Var)

	if vv.Kind == BoundAnyInt {
		switch t.Kind {
		case KindInt, KindUint:
			ctx.BindValue(v.Var, InferenceValue{Kind: Bound, Bound: t})
			return nil
		default:
			if t.Kind == KindVar || t.Kind == KindInfer {
				break // handled by var-var path above; unreachable here
			}
			return &UnifyError{Expected: v, Got: t, Reason: "integer literal requires an integer type"}
		}
	}
	if vv.Kind == BoundAnyFloat {
		if t.Kind == KindFloat {
			ctx.BindValue(v.Var, InferenceValue{Kind: Bound, Bound: t})
			return nil
		}
		return &UnifyError{Expected: v, Got: t, Reason: "float literal requires a float type"}
	}

	if occursIn(ctx, v.Var, t) {
		return &UnifyError{Occurs: true, Expected: v, Got: t, Reason: "type refers to itself"}
	}
	ctx.BindTy(v.Var, t)
	return nil
}

func occursIn(ctx *TypeContext, id TypeID, t Type) bool {
	t = ctx.Normalize(t)
	switch t.Kind {
	case KindVar, KindInfer:
		return t.Var == id
	case KindPointer, KindSlice, KindStr, KindArray:
		return occursIn(ctx, id, *t.Elem)
	case KindTuple:
		for _, e := range t.Tuple {
			if occursIn(ctx, id, e) {
				return true
			}
		}
		return false
	case KindStruct:
		if t.Struct == nil {
			return false
		}
		for _, f := range t.Struct.Field {
			if occursIn(ctx, id, f.Type) {
				return true
			}
		}
		return false
	case KindFunction:
		if t.Function == nil {
			return false
		}
		for _, p := range t.Function.Params {
			if occursIn(ctx, id, p.Type) {
				return true
			}
		}
		if t.Function.Return != nil && occursIn(ctx, id, *t.Function.Return) {
			return true
		}
		return false
	default:
		return false
	}
}

func unifyGround(ctx *TypeContext, a, b Type) error {
	if a.Kind != b.Kind {
		return &UnifyError{Expected: a, Got: b, Reason: fmt.Sprintf("%s vs %s", a.Kind, b.Kind)}
	}

	switch a.Kind {
	case KindUnit, KindBool, KindStr:
		return nil

	case KindInt, KindUint, KindFloat:
		if a.Width != b.Width {
			return &UnifyError{Expected: a, Got: b, Reason: fmt.Sprintf("%s width %d vs %d", a.Kind, a.Width, b.Width)}
		}
		return nil

	case KindPointer:
		if !CanCoerceMut(a.Mutable, b.Mutable) {
			return &UnifyError{Expected: a, Got: b, Reason: "pointer mutability does not coerce"}
		}
		return Unify(ctx, *a.Elem, *b.Elem)

	case KindSlice:
		return Unify(ctx, *a.Elem, *b.Elem)

	case KindArray:
		if a.Count != b.Count {
			return &UnifyError{Expected: a, Got: b, Reason: fmt.Sprintf("array length %d vs %d", a.Count, b.Count)}
		}
		return Unify(ctx, *a.Elem, *b.Elem)

	case KindTuple:
		if len(a.Tuple) != len(b.Tuple) {
			return &UnifyError{Expected: a, Got: b, Reason: "tuple arity mismatch"}
		}
		for i := range a.Tuple {
			if err := Unify(ctx, a.Tuple[i], b.Tuple[i]); err != nil {
				return err
			}
		}
		return nil

	case KindStruct:
		return unifyStruct(ctx, a, b)

	case KindFunction:
		return unifyFunction(ctx, a, b)

	case KindModule:
		if a.Module != b.Module {
			return &UnifyError{Expected: a, Got: b, Reason: "distinct modules"}
		}
		return nil

	default:
		return &UnifyError{Expected: a, Got: b, Reason: "incomparable types"}
	}
}

// unifyStruct implements rule 6 of §4.2: nominal structs with matching
// binding IDs unify trivially (they are by construction the same shape);
// anonymous/structural structs compare field count, kind and per-field
// name+type in order.
func unifyStruct(ctx *TypeContext, a, b Type) error {
	as, bs := a.Struct, b.Struct
	if as == nil || bs == nil {
		if as == bs {
			return nil
		}
		return &UnifyError{Expected: a, Got: b, Reason: "struct shape missing"}
	}
	if as.ID != 0 && bs.ID != 0 {
		if as.ID == bs.ID {
			return nil
		}
		return &UnifyError{Expected: a, Got: b, Reason: "distinct nominal structs"}
	}
	if as.Kind != bs.Kind {
		return &UnifyError{Expected: a, Got: b, Reason: "struct kind mismatch"}
	}
	if len(as.Field) != len(bs.Field) {
		return &UnifyError{Expected: a, Got: b, Reason: "struct field count mismatch"}
	}
	for i := range as.Field {
		if as.Field[i].Name != bs.Field[i].Name {
			return &UnifyError{Expected: a, Got: b, Reason: "struct field name mismatch"}
		}
		if err := Unify(ctx, as.Field[i].Type, bs.Field[i].Type); err != nil {
			return err
		}
	}
	return nil
}

func unifyFunction(ctx *TypeContext, a, b Type) error {
	af, bf := a.Function, b.Function
	if af == nil || bf == nil {
		if af == bf {
			return nil
		}
		return &UnifyError{Expected: a, Got: b, Reason: "function shape missing"}
	}
	if (af.Return == nil) != (bf.Return == nil) {
		return &UnifyError{Expected: a, Got: b, Reason: "return type presence mismatch"}
	}
	if af.Return != nil {
		if err := Unify(ctx, *af.Return, *bf.Return); err != nil {
			return err
		}
	}

	// §4.2 rule 3: differing parameter counts are only a mismatch when
	// neither side is variadic; otherwise parameters unify pairwise up to
	// the shorter length. Both sides must still agree on being variadic
	// (checked below).
	if len(af.Params) != len(bf.Params) && af.Varargs == nil && bf.Varargs == nil {
		return &UnifyError{Expected: a, Got: b, Reason: "parameter count mismatch"}
	}
	shorter := len(af.Params)
	if len(bf.Params) < shorter {
		shorter = len(bf.Params)
	}
	for i := 0; i < shorter; i++ {
		if err := Unify(ctx, af.Params[i].Type, bf.Params[i].Type); err != nil {
			return err
		}
	}

	if (af.Varargs == nil) != (bf.Varargs == nil) {
		return &UnifyError{Expected: a, Got: b, Reason: "varargs presence mismatch"}
	}
	if af.Varargs != nil && af.Varargs.Type != nil && bf.Varargs.Type != nil {
		return Unify(ctx, *af.Varargs.Type, *bf.Varargs.Type)
	}
	return nil
}
