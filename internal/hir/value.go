package hir

import "lumen/internal/source"

// ValueKind tags the payload of a compile-time Value.
type ValueKind uint8

const (
	ValueUnit ValueKind = iota
	ValueBool
	ValueInt   // signed, stored in Int64
	ValueUint  // unsigned, stored in Uint64
	ValueFloat
	ValueStr
	ValueTuple
	ValueArray
	ValueStruct
	ValuePointer // compile-time pointer, only meaningful inside the VM's own memory
)

// Value is the runtime representation used by the compile-time VM, both
// when executing a `static {}` block and when constant-folding an
// expression during type checking (§4.8, §4.7).
type Value struct {
	Kind ValueKind

	Bool   bool
	Int64  int64
	Uint64 uint64
	Float  float64
	Str    source.StringID

	// ValueTuple / ValueArray
	Elements []Value

	// ValueStruct
	FieldNames  []source.StringID
	FieldValues []Value

	// ValuePointer: an opaque handle into the VM's heap (§4.8); interpreted
	// only by the vm package.
	PointerHandle uint64
}

func Unit() Value                 { return Value{Kind: ValueUnit} }
func Bool(b bool) Value           { return Value{Kind: ValueBool, Bool: b} }
func Int(v int64) Value           { return Value{Kind: ValueInt, Int64: v} }
func Uint(v uint64) Value         { return Value{Kind: ValueUint, Uint64: v} }
func Float(v float64) Value       { return Value{Kind: ValueFloat, Float: v} }
func Str(s source.StringID) Value { return Value{Kind: ValueStr, Str: s} }
func Tuple(elems []Value) Value   { return Value{Kind: ValueTuple, Elements: elems} }
func Array(elems []Value) Value   { return Value{Kind: ValueArray, Elements: elems} }

func Struct(names []source.StringID, values []Value) Value {
	return Value{Kind: ValueStruct, FieldNames: names, FieldValues: values}
}

func Pointer(handle uint64) Value {
	return Value{Kind: ValuePointer, PointerHandle: handle}
}
