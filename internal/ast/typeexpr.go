package ast

import "lumen/internal/source"

// TypeExprKind enumerates the syntactic forms a type annotation can take
// before name resolution turns it into a types.Type.
type TypeExprKind uint8

const (
	// TypeExprName is a (possibly qualified) reference to a named type,
	// e.g. `i32`, `MyStruct`, `other::Thing`.
	TypeExprName TypeExprKind = iota
	TypeExprUnit
	TypeExprAnyType
	TypeExprPointer
	TypeExprSlice
	TypeExprArray
	TypeExprTuple
	TypeExprFunction
)

// QualifiedName is a possibly-namespaced identifier as written in source,
// e.g. `a::b::C` — segments in order, resolved against the symbol table.
type QualifiedName struct {
	Segments []source.StringID
	Span     source.Span
}

// TypeExpr is one node of a syntactic type tree.
type TypeExpr struct {
	Kind TypeExprKind
	Span source.Span

	// TypeExprName
	Name QualifiedName

	// TypeExprPointer / TypeExprSlice / TypeExprArray: element type.
	Elem TypeExprID

	// TypeExprPointer
	Mutable bool

	// TypeExprArray: literal length expression (constant-evaluated).
	Length ExprID

	// TypeExprTuple
	Elements []TypeExprID

	// TypeExprFunction
	Params     []TypeExprID
	ParamNames []source.StringID
	Return     TypeExprID // NoTypeExprID means unit
	Varargs    bool
	VarargType TypeExprID // NoTypeExprID means untyped varargs
}

// TypeExprs owns every TypeExpr allocated for a module.
type TypeExprs struct {
	Arena *Arena[TypeExpr]
}

func NewTypeExprs(capHint uint) *TypeExprs {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &TypeExprs{Arena: NewArena[TypeExpr](capHint)}
}

func (t *TypeExprs) Get(id TypeExprID) (*TypeExpr, bool) {
	n := t.Arena.Get(uint32(id))
	return n, n != nil
}

func (t *TypeExprs) NewName(name QualifiedName, span source.Span) TypeExprID {
	return TypeExprID(t.Arena.Allocate(TypeExpr{Kind: TypeExprName, Name: name, Span: span}))
}

func (t *TypeExprs) NewUnit(span source.Span) TypeExprID {
	return TypeExprID(t.Arena.Allocate(TypeExpr{Kind: TypeExprUnit, Span: span}))
}

func (t *TypeExprs) NewAnyType(span source.Span) TypeExprID {
	return TypeExprID(t.Arena.Allocate(TypeExpr{Kind: TypeExprAnyType, Span: span}))
}

func (t *TypeExprs) NewPointer(elem TypeExprID, mutable bool, span source.Span) TypeExprID {
	return TypeExprID(t.Arena.Allocate(TypeExpr{Kind: TypeExprPointer, Elem: elem, Mutable: mutable, Span: span}))
}

func (t *TypeExprs) NewSlice(elem TypeExprID, span source.Span) TypeExprID {
	return TypeExprID(t.Arena.Allocate(TypeExpr{Kind: TypeExprSlice, Elem: elem, Span: span}))
}

func (t *TypeExprs) NewArray(elem TypeExprID, length ExprID, span source.Span) TypeExprID {
	return TypeExprID(t.Arena.Allocate(TypeExpr{Kind: TypeExprArray, Elem: elem, Length: length, Span: span}))
}

func (t *TypeExprs) NewTuple(elems []TypeExprID, span source.Span) TypeExprID {
	return TypeExprID(t.Arena.Allocate(TypeExpr{Kind: TypeExprTuple, Elements: elems, Span: span}))
}

func (t *TypeExprs) NewFunction(params []TypeExprID, names []source.StringID, ret TypeExprID, varargs bool, varargType TypeExprID, span source.Span) TypeExprID {
	return TypeExprID(t.Arena.Allocate(TypeExpr{
		Kind: TypeExprFunction, Params: params, ParamNames: names,
		Return: ret, Varargs: varargs, VarargType: varargType, Span: span,
	}))
}
