package ast

import "lumen/internal/source"

// ItemKind enumerates top-level declaration forms (§4.5 names every
// top-level binding the resolver must discover before it can check bodies).
type ItemKind uint8

const (
	ItemLet ItemKind = iota
	ItemConst
	ItemFn
	ItemStruct
	ItemExtern
	ItemImport
)

func (k ItemKind) String() string {
	switch k {
	case ItemLet:
		return "let"
	case ItemConst:
		return "const"
	case ItemFn:
		return "fn"
	case ItemStruct:
		return "struct"
	case ItemExtern:
		return "extern"
	case ItemImport:
		return "import"
	default:
		return "unknown"
	}
}

// LetItem / ConstItem bind a pattern, with an optional type annotation and
// an optional initializer (consts always require one; the checker enforces
// that distinction, not the AST).
type LetItem struct {
	Pattern    PatternID
	Type       TypeExprID // NoTypeExprID when inferred
	Value      ExprID     // NoExprID when uninitialized (let only)
	Visibility Visibility
	Span       source.Span
}

// FnParamDecl is one declared function parameter.
type FnParamDecl struct {
	Name source.StringID
	Type TypeExprID
	Span source.Span
}

// FnItem declares a function: a typed signature plus a body expression
// (always an ExprBlock).
type FnItem struct {
	Name       source.StringID
	Params     []ParamID
	Return     TypeExprID // NoTypeExprID means unit
	Body       ExprID
	Visibility Visibility
	Span       source.Span
}

// StructFieldDecl is one declared field of a struct type.
type StructFieldDecl struct {
	Name source.StringID
	Type TypeExprID
	Span source.Span
}

// StructItem declares a struct type's shape.
type StructItem struct {
	Name       source.StringID
	Fields     []FieldID
	Packed     bool
	Union      bool
	Visibility Visibility
	Span       source.Span
}

// ExternMemberDecl is one function signature declared inside an `extern`
// block (§4.8 FFI: these are the call targets the VM resolves dynamically).
type ExternMemberDecl struct {
	Name   source.StringID
	Params []ParamID
	Return TypeExprID
	Span   source.Span
}

// ExternItem groups a set of foreign function signatures bound to a shared
// library name, resolved by name through the VM's extern Registry.
type ExternItem struct {
	LibraryName source.StringID
	Members     []ExternMemberID
	Span        source.Span
}

// ImportItem brings another module's public items into scope.
type ImportItem struct {
	Path  QualifiedName
	Alias source.StringID // NoStringID when unaliased
	Span  source.Span
}

// Item is one top-level declaration, tagged by Kind with its payload held
// in the matching Items.* arena.
type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload uint32 // 1-based index into the per-kind arena
}

// Items owns every top-level declaration and its payload data for one module.
type Items struct {
	Arena   *Arena[Item]
	Lets    *Arena[LetItem]
	Consts  *Arena[LetItem]
	Fns     *Arena[FnItem]
	Params  *Arena[FnParamDecl]
	Structs *Arena[StructItem]
	Fields  *Arena[StructFieldDecl]
	Externs *Arena[ExternItem]
	ExternMembers *Arena[ExternMemberDecl]
	Imports *Arena[ImportItem]
}

func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Items{
		Arena:         NewArena[Item](capHint),
		Lets:          NewArena[LetItem](capHint),
		Consts:        NewArena[LetItem](capHint),
		Fns:           NewArena[FnItem](capHint),
		Params:        NewArena[FnParamDecl](capHint),
		Structs:       NewArena[StructItem](capHint),
		Fields:        NewArena[StructFieldDecl](capHint),
		Externs:       NewArena[ExternItem](capHint),
		ExternMembers: NewArena[ExternMemberDecl](capHint),
		Imports:       NewArena[ImportItem](capHint),
	}
}

func (i *Items) Get(id ItemID) (*Item, bool) {
	n := i.Arena.Get(uint32(id))
	return n, n != nil
}

func (i *Items) Let(id ItemID) (*LetItem, bool) {
	item, ok := i.Get(id)
	if !ok || item.Kind != ItemLet {
		return nil, false
	}
	return i.Lets.Get(item.Payload), true
}

func (i *Items) Const(id ItemID) (*LetItem, bool) {
	item, ok := i.Get(id)
	if !ok || item.Kind != ItemConst {
		return nil, false
	}
	return i.Consts.Get(item.Payload), true
}

func (i *Items) Fn(id ItemID) (*FnItem, bool) {
	item, ok := i.Get(id)
	if !ok || item.Kind != ItemFn {
		return nil, false
	}
	return i.Fns.Get(item.Payload), true
}

func (i *Items) Struct(id ItemID) (*StructItem, bool) {
	item, ok := i.Get(id)
	if !ok || item.Kind != ItemStruct {
		return nil, false
	}
	return i.Structs.Get(item.Payload), true
}

func (i *Items) Extern(id ItemID) (*ExternItem, bool) {
	item, ok := i.Get(id)
	if !ok || item.Kind != ItemExtern {
		return nil, false
	}
	return i.Externs.Get(item.Payload), true
}

func (i *Items) Import(id ItemID) (*ImportItem, bool) {
	item, ok := i.Get(id)
	if !ok || item.Kind != ItemImport {
		return nil, false
	}
	return i.Imports.Get(item.Payload), true
}

func (i *Items) NewLet(l LetItem) ItemID {
	payload := i.Lets.Allocate(l)
	return ItemID(i.Arena.Allocate(Item{Kind: ItemLet, Span: l.Span, Payload: payload}))
}

func (i *Items) NewConst(c LetItem) ItemID {
	payload := i.Consts.Allocate(c)
	return ItemID(i.Arena.Allocate(Item{Kind: ItemConst, Span: c.Span, Payload: payload}))
}

func (i *Items) NewFn(f FnItem) ItemID {
	payload := i.Fns.Allocate(f)
	return ItemID(i.Arena.Allocate(Item{Kind: ItemFn, Span: f.Span, Payload: payload}))
}

func (i *Items) NewParam(p FnParamDecl) ParamID {
	return ParamID(i.Params.Allocate(p))
}

func (i *Items) Param(id ParamID) (*FnParamDecl, bool) {
	p := i.Params.Get(uint32(id))
	return p, p != nil
}

func (i *Items) NewStruct(s StructItem) ItemID {
	payload := i.Structs.Allocate(s)
	return ItemID(i.Arena.Allocate(Item{Kind: ItemStruct, Span: s.Span, Payload: payload}))
}

func (i *Items) NewField(f StructFieldDecl) FieldID {
	return FieldID(i.Fields.Allocate(f))
}

func (i *Items) Field(id FieldID) (*StructFieldDecl, bool) {
	f := i.Fields.Get(uint32(id))
	return f, f != nil
}

func (i *Items) NewExtern(e ExternItem) ItemID {
	payload := i.Externs.Allocate(e)
	return ItemID(i.Arena.Allocate(Item{Kind: ItemExtern, Span: e.Span, Payload: payload}))
}

func (i *Items) NewExternMember(m ExternMemberDecl) ExternMemberID {
	return ExternMemberID(i.ExternMembers.Allocate(m))
}

func (i *Items) ExternMember(id ExternMemberID) (*ExternMemberDecl, bool) {
	m := i.ExternMembers.Get(uint32(id))
	return m, m != nil
}

func (i *Items) NewImport(imp ImportItem) ItemID {
	payload := i.Imports.Allocate(imp)
	return ItemID(i.Arena.Allocate(Item{Kind: ItemImport, Span: imp.Span, Payload: payload}))
}
