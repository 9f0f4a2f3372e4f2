package types

import (
	"fmt"

	"lumen/internal/source"
)

// InferValueKind tags what a TypeContext slot currently holds.
type InferValueKind uint8

const (
	// Unbound is a free variable with no constraint yet.
	Unbound InferValueKind = iota
	// BoundAnyInt is an unresolved integer literal (defaults to CommonTypes.Int
	// if never unified against a concrete numeric type).
	BoundAnyInt
	// BoundAnyFloat is an unresolved float literal (defaults to CommonTypes.Float).
	BoundAnyFloat
	// Bound holds a fully or partially ground Type.
	Bound
)

// InferenceValue is the payload of one TypeContext slot (§4.1: "value_of").
type InferenceValue struct {
	Kind  InferValueKind
	Bound Type
}

// CommonTypes caches the TypeIDs of frequently referenced ground types so
// callers don't re-bind identical types over and over (mirrors the
// teacher's convention of precomputing well-known interned values).
type CommonTypes struct {
	Unit    TypeID
	Never   TypeID
	Bool    TypeID
	Int     TypeID // default int width, word-sized
	Uint    TypeID // default uint width, word-sized
	Float   TypeID // default float width, word-sized
	I8      TypeID
	I16     TypeID
	I32     TypeID
	I64     TypeID
	U8      TypeID
	U16     TypeID
	U32     TypeID
	U64     TypeID
	F32     TypeID
	F64     TypeID
	Str     TypeID
	AnyType TypeID
}

// TypeContext is the union-find store over TypeIDs described in §4.1: every
// Var/Infer type ultimately resolves through here. Slot 0 (NoTypeID) is
// reserved and never allocated to a real type.
type TypeContext struct {
	slots   []InferenceValue
	spans   []source.Span
	Strings *source.Interner
	Common  CommonTypes
}

// NewTypeContext allocates a context and pre-binds CommonTypes, word-sized
// per wordSizeBytes (4 or 8, §6 target_metrics.word_size).
func NewTypeContext(strings *source.Interner, wordSizeBytes int) *TypeContext {
	ctx := &TypeContext{
		slots:   make([]InferenceValue, 1, 64), // index 0 reserved (NoTypeID)
		spans:   make([]source.Span, 1, 64),
		Strings: strings,
	}
	wordWidth := Width32
	if wordSizeBytes == 8 {
		wordWidth = Width64
	}
	ctx.Common = CommonTypes{
		Unit:    ctx.Bound(Unit(), source.Span{}),
		Never:   ctx.Bound(Never(), source.Span{}),
		Bool:    ctx.Bound(Bool(), source.Span{}),
		Int:     ctx.Bound(Int(wordWidth), source.Span{}),
		Uint:    ctx.Bound(Uint(wordWidth), source.Span{}),
		Float:   ctx.Bound(Float(wordWidth), source.Span{}),
		I8:      ctx.Bound(Int(Width8), source.Span{}),
		I16:     ctx.Bound(Int(Width16), source.Span{}),
		I32:     ctx.Bound(Int(Width32), source.Span{}),
		I64:     ctx.Bound(Int(Width64), source.Span{}),
		U8:      ctx.Bound(Uint(Width8), source.Span{}),
		U16:     ctx.Bound(Uint(Width16), source.Span{}),
		U32:     ctx.Bound(Uint(Width32), source.Span{}),
		U64:     ctx.Bound(Uint(Width64), source.Span{}),
		F32:     ctx.Bound(Float(Width32), source.Span{}),
		F64:     ctx.Bound(Float(Width64), source.Span{}),
		Str:     ctx.Bound(Str(), source.Span{}),
		AnyType: ctx.Bound(AnyType(), source.Span{}),
	}
	return ctx
}

func (ctx *TypeContext) alloc(v InferenceValue, span source.Span) TypeID {
	ctx.slots = append(ctx.slots, v)
	ctx.spans = append(ctx.spans, span)
	id, err := safeID(len(ctx.slots) - 1)
	if err != nil {
		panic(fmt.Errorf("types: type context exhausted: %w", err))
	}
	return id
}

// Var allocates a fresh, totally unconstrained inference variable.
func (ctx *TypeContext) Var(span source.Span) TypeID {
	return ctx.alloc(InferenceValue{Kind: Unbound}, span)
}

// AnyInt allocates a fresh integer-literal placeholder.
func (ctx *TypeContext) AnyInt(span source.Span) TypeID {
	return ctx.alloc(InferenceValue{Kind: BoundAnyInt}, span)
}

// AnyFloat allocates a fresh float-literal placeholder.
func (ctx *TypeContext) AnyFloat(span source.Span) TypeID {
	return ctx.alloc(InferenceValue{Kind: BoundAnyFloat}, span)
}

// Bound allocates a new slot pre-bound to a ground (or partially ground) Type.
func (ctx *TypeContext) Bound(t Type, span source.Span) TypeID {
	return ctx.alloc(InferenceValue{Kind: Bound, Bound: t}, span)
}

// MustLookup returns the slot for id, panicking on an out-of-range id — a
// caller holding a TypeID it didn't get from this context is a compiler bug.
func (ctx *TypeContext) MustLookup(id TypeID) InferenceValue {
	if int(id) <= 0 || int(id) >= len(ctx.slots) {
		panic(fmt.Errorf("types: invalid TypeID %d", id))
	}
	return ctx.slots[id]
}

// ValueOf is an alias for MustLookup matching §4.1's "value_of" operation name.
func (ctx *TypeContext) ValueOf(id TypeID) InferenceValue {
	return ctx.MustLookup(id)
}

// SpanOf returns the span the TypeID was allocated with, for diagnostics.
func (ctx *TypeContext) SpanOf(id TypeID) source.Span {
	if int(id) <= 0 || int(id) >= len(ctx.spans) {
		return source.Span{}
	}
	return ctx.spans[id]
}

// BindTy rebinds id to a ground Type, implementing the union-find "union"
// step. It overwrites the slot unconditionally, including an already-Bound
// one; callers unify first.
func (ctx *TypeContext) BindTy(id TypeID, t Type) {
	ctx.checkID(id)
	ctx.slots[id] = InferenceValue{Kind: Bound, Bound: t}
}

// BindValue rewrites id's InferenceValue directly (used to redirect one
// AnyInt/AnyFloat slot to point at another slot's resolution during unify).
func (ctx *TypeContext) BindValue(id TypeID, v InferenceValue) {
	ctx.checkID(id)
	ctx.slots[id] = v
}

func (ctx *TypeContext) checkID(id TypeID) {
	if int(id) <= 0 || int(id) >= len(ctx.slots) {
		panic(fmt.Errorf("types: invalid TypeID %d", id))
	}
}

func safeID(n int) (TypeID, error) {
	if n < 0 || n > int(^uint32(0)) {
		return 0, fmt.Errorf("type id %d out of range", n)
	}
	return TypeID(n), nil
}

// MakeConcrete resolves every AnyInt/AnyFloat/Unbound placeholder reachable
// from t to its context default (Common.Int / Common.Float, and Common.Unit
// for an Unbound placeholder), in place in the
// context, and returns the fully ground Type. It implements the "literal
// defaulting" step that runs once inference for a binding is otherwise
// complete (§4.1, §4.7 constant folding prerequisites).
func (ctx *TypeContext) MakeConcrete(t Type) Type {
	switch t.Kind {
	case KindVar, KindInfer:
		v := ctx.MustLookup(t.Var)
		switch v.Kind {
		case Bound:
			resolved := ctx.MakeConcrete(v.Bound)
			ctx.BindTy(t.Var, resolved)
			return resolved
		case BoundAnyInt:
			def := ctx.MustLookup(ctx.Common.Int).Bound
			ctx.BindTy(t.Var, def)
			return def
		case BoundAnyFloat:
			def := ctx.MustLookup(ctx.Common.Float).Bound
			ctx.BindTy(t.Var, def)
			return def
		default: // Unbound with no constraint at all; default to unit.
			def := ctx.MustLookup(ctx.Common.Unit).Bound
			ctx.BindTy(t.Var, def)
			return def
		}
	case KindPointer, KindSlice, KindStr, KindArray:
		elem := ctx.MakeConcrete(*t.Elem)
		t.Elem = &elem
		return t
	case KindTuple:
		elems := make([]Type, len(t.Tuple))
		for i, e := range t.Tuple {
			elems[i] = ctx.MakeConcrete(e)
		}
		t.Tuple = elems
		return t
	case KindStruct:
		if t.Struct == nil {
			return t
		}
		fields := make([]StructField, len(t.Struct.Field))
		for i, f := range t.Struct.Field {
			f.Type = ctx.MakeConcrete(f.Type)
			fields[i] = f
		}
		cp := *t.Struct
		cp.Field = fields
		t.Struct = &cp
		return t
	case KindFunction:
		if t.Function == nil {
			return t
		}
		params := make([]FnParam, len(t.Function.Params))
		for i, p := range t.Function.Params {
			p.Type = ctx.MakeConcrete(p.Type)
			params[i] = p
		}
		cp := *t.Function
		cp.Params = params
		if cp.Return != nil {
			ret := ctx.MakeConcrete(*cp.Return)
			cp.Return = &ret
		}
		t.Function = &cp
		return t
	default:
		return t
	}
}

// Normalize follows Var/Infer chains one level at a time until it reaches a
// Bound payload or an unresolved placeholder, without mutating the context
// (a read-only variant of path compression; compare artc's TypeCtx::normalize).
func (ctx *TypeContext) Normalize(t Type) Type {
	for t.Kind == KindVar || t.Kind == KindInfer {
		v := ctx.MustLookup(t.Var)
		if v.Kind != Bound {
			return t
		}
		t = v.Bound
	}
	return t
}
