package symbols

import (
	"lumen/internal/ast"
	"lumen/internal/source"
	"lumen/internal/types"
)

// BindingKind classifies what a name refers to (§ Glossary: "Binding — a
// named, typed entity introduced by a let/const/fn/struct/extern/import
// declaration or a pattern binder").
type BindingKind uint8

const (
	BindingInvalid BindingKind = iota
	BindingModule
	BindingImport
	BindingFn
	BindingLet
	BindingConst
	BindingStruct
	BindingParam
	BindingExternFn
)

func (k BindingKind) String() string {
	switch k {
	case BindingModule:
		return "module"
	case BindingImport:
		return "import"
	case BindingFn:
		return "fn"
	case BindingLet:
		return "let"
	case BindingConst:
		return "const"
	case BindingStruct:
		return "struct"
	case BindingParam:
		return "param"
	case BindingExternFn:
		return "extern-fn"
	default:
		return "invalid"
	}
}

// ScopeLevel distinguishes where a binding lives, which governs which
// resolution rules apply (top-level bindings get cycle detection; local
// bindings shadow by lexical position only).
type ScopeLevel uint8

const (
	LevelModule ScopeLevel = iota
	LevelFunction
	LevelBlock
)

// BindingDecl points back at the syntax that introduced a binding, for
// diagnostics and for the checker to re-enter the declaration's expression.
type BindingDecl struct {
	Module       types.ModuleID
	Item         ast.ItemID         // valid for top-level bindings
	Pattern      ast.PatternID      // valid when the binding came from a pattern binder
	Param        ast.ParamID        // valid for BindingParam
	ExternMember ast.ExternMemberID // valid for BindingExternFn
}

// BindingInfo is one resolved name: its kind, declared type, origin, and
// visibility. Top-level bindings additionally carry the module they belong
// to so the resolver can detect reference cycles across module boundaries.
type BindingInfo struct {
	Name       source.StringID
	Kind       BindingKind
	Level      ScopeLevel
	Module     types.ModuleID
	Visibility ast.Visibility
	Type       types.TypeID // NoTypeID until the checker resolves it
	Mutable    bool
	Decl       BindingDecl
	Span       source.Span

	// RefModule is valid for BindingModule/BindingImport: the module this
	// name refers to, used to continue a qualified-path lookup.
	RefModule types.ModuleID
}

// Bindings is the arena owning every BindingInfo in a Workspace.
type Bindings struct {
	data []BindingInfo
}

func NewBindings(capHint uint) *Bindings {
	return &Bindings{data: make([]BindingInfo, 1, capHint+1)} // index 0 reserved
}

func (b *Bindings) New(info BindingInfo) BindingID {
	b.data = append(b.data, info)
	return BindingID(len(b.data) - 1)
}

func (b *Bindings) Get(id BindingID) (*BindingInfo, bool) {
	if !id.IsValid() || int(id) >= len(b.data) {
		return nil, false
	}
	return &b.data[id], true
}

func (b *Bindings) MustGet(id BindingID) *BindingInfo {
	info, ok := b.Get(id)
	if !ok {
		panic("symbols: invalid BindingID")
	}
	return info
}

func (b *Bindings) SetType(id BindingID, t types.TypeID) {
	info, ok := b.Get(id)
	if !ok {
		panic("symbols: invalid BindingID")
	}
	info.Type = t
}

// Count returns the number of allocated bindings, including the reserved
// zero index. Callers walk IDs 1..Count()-1 to visit every real binding
// (e.g. to snapshot a checked workspace for an on-disk cache).
func (b *Bindings) Count() int {
	return len(b.data)
}
