// Package types defines the type lattice used by the inference engine: a
// compact sum of ground types, composite types, and inference-variable
// placeholders that are only ever resolved through a TypeContext.
package types

import (
	"fmt"

	"lumen/internal/source"
)

// TypeID is an opaque index into a TypeContext's union-find store. Equality
// for Var/Infer variants is by id only — two TypeIDs denote the same type
// iff they chase to the same Bound payload (see TypeContext.Normalize).
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates the variants of Type.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUnit
	KindNever
	KindBool
	KindInt
	KindUint
	KindFloat
	KindPointer
	KindSlice
	KindStr
	KindArray
	KindTuple
	KindStruct
	KindFunction
	KindModule
	KindAnyType
	KindVar   // unresolved inference variable
	KindInfer // inference variable carrying a numeric-literal or partial hint
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnit:
		return "unit"
	case KindNever:
		return "never"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindPointer:
		return "pointer"
	case KindSlice:
		return "slice"
	case KindStr:
		return "str"
	case KindArray:
		return "array"
	case KindTuple:
		return "tuple"
	case KindStruct:
		return "struct"
	case KindFunction:
		return "function"
	case KindModule:
		return "module"
	case KindAnyType:
		return "anytype"
	case KindVar:
		return "var"
	case KindInfer:
		return "infer"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Width captures the bit-width of a numeric primitive. WidthWord means the
// type takes its width from the target's configured word size (§4.1
// CommonTypes, §6 word_size).
type Width uint8

const (
	WidthWord Width = 0
	Width8    Width = 8
	Width16   Width = 16
	Width32   Width = 32
	Width64   Width = 64
)

// SizeOf returns the storage width in bits at the configured word size
// (4 or 8 bytes), used by coercion's "same-or-bigger" rule.
func (w Width) SizeOf(wordSizeBytes int) int {
	if w == WidthWord {
		return wordSizeBytes * 8
	}
	return int(w)
}

// InferKind distinguishes the flavors of Infer placeholder (§3 data model:
// "Infer(TypeId, {AnyInt|AnyFloat|PartialStruct|PartialTuple})").
type InferKind uint8

const (
	InferAnyInt InferKind = iota
	InferAnyFloat
	InferPartialStruct
	InferPartialTuple
)

// StructKind distinguishes struct layout flavors that affect unification
// (§4.2 rule 6: field counts and kind must match) and cast/coercion rules.
type StructKind uint8

const (
	StructNormal StructKind = iota
	StructPacked
	StructUnion
)

// StructField is one ordered member of a struct type.
type StructField struct {
	Name source.StringID
	Type Type
	Span source.Span
}

// StructType describes a struct's identity and shape. ID, when non-zero,
// identifies the binding that declared this struct nominally; unify's
// fast path (§4.2 rule 6) short-circuits on matching IDs.
type StructType struct {
	ID    uint32 // 0 when anonymous/structural
	Name  source.StringID
	Kind  StructKind
	Field []StructField
}

// FnParam is one ordered, named parameter of a function type.
type FnParam struct {
	Name source.StringID
	Type Type
}

// Vararg describes a C-style variadic tail; Type is nil when untyped.
type Vararg struct {
	Type *Type
}

// FunctionType is the shape of Function(ordered params, return, varargs?).
type FunctionType struct {
	Params  []FnParam
	Return  *Type
	Varargs *Vararg
}

// ModuleID identifies a module (owned by the symbols package); types only
// need to carry it opaquely to model Type::Module(ModuleId).
type ModuleID uint32

// Type is the sum type described in spec §3. Only the fields relevant to
// Kind are populated; all others are zero.
type Type struct {
	Kind Kind

	Width   Width // Int / Uint / Float
	Mutable bool  // Pointer

	Elem *Type // Pointer / Slice / Str / Array element

	Count     uint32 // Array length
	HasLength bool   // distinguishes Array(T,0) from an unsized form

	Tuple []Type // Tuple elements, ordered

	Struct *StructType // Struct

	Function *FunctionType // Function

	Module ModuleID // Module

	Var   TypeID    // Var / Infer: referenced context id
	Infer InferKind // valid only when Kind == KindInfer
}

// Ground constructors ---------------------------------------------------

func Unit() Type    { return Type{Kind: KindUnit} }
func Never() Type   { return Type{Kind: KindNever} }
func Bool() Type    { return Type{Kind: KindBool} }
func AnyType() Type { return Type{Kind: KindAnyType} }

func Int(w Width) Type   { return Type{Kind: KindInt, Width: w} }
func Uint(w Width) Type  { return Type{Kind: KindUint, Width: w} }
func Float(w Width) Type { return Type{Kind: KindFloat, Width: w} }

func Pointer(elem Type, mutable bool) Type {
	return Type{Kind: KindPointer, Elem: &elem, Mutable: mutable}
}

func Slice(elem Type) Type {
	return Type{Kind: KindSlice, Elem: &elem}
}

// Str returns the "blessed slice of u8" string type (§3: "Str(Type) — a
// blessed slice of u8"). Elem is always Uint(Width8) but carried explicitly
// so normalize/unify treat it uniformly with other element-bearing kinds.
func Str() Type {
	elem := Uint(Width8)
	return Type{Kind: KindStr, Elem: &elem}
}

func Array(elem Type, length uint32) Type {
	return Type{Kind: KindArray, Elem: &elem, Count: length, HasLength: true}
}

func Tuple(elems ...Type) Type {
	return Type{Kind: KindTuple, Tuple: elems}
}

func Struct(st *StructType) Type {
	return Type{Kind: KindStruct, Struct: st}
}

func Function(fn *FunctionType) Type {
	return Type{Kind: KindFunction, Function: fn}
}

func Module(id ModuleID) Type {
	return Type{Kind: KindModule, Module: id}
}

func VarOf(id TypeID) Type {
	return Type{Kind: KindVar, Var: id}
}

func InferOf(id TypeID, k InferKind) Type {
	return Type{Kind: KindInfer, Var: id, Infer: k}
}

// IsGround reports whether t is not a Var/Infer placeholder (§ Glossary).
func (t Type) IsGround() bool {
	return t.Kind != KindVar && t.Kind != KindInfer
}

// IsNumeric reports whether t's ground kind is one of Int/Uint/Float.
func (t Type) IsNumeric() bool {
	switch t.Kind {
	case KindInt, KindUint, KindFloat:
		return true
	default:
		return false
	}
}
