package sema

import (
	"fmt"

	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/source"
	"lumen/internal/symbols"
	"lumen/internal/types"
)

// PatternBinder binds an ast.Pattern tree against an expected (possibly
// still-inferring) type, declaring one BindingInfo per name introduced and
// reporting the Unpack* family of diagnostics when the pattern's shape
// cannot match the value's type.
type PatternBinder struct {
	WS     *symbols.Workspace
	Ctx    *types.TypeContext
	Diags  *diag.Bag
	Module types.ModuleID
}

// NewPatternBinder creates a binder sharing ws's symbol tables and ctx's
// inference state.
func NewPatternBinder(ws *symbols.Workspace, ctx *types.TypeContext, diags *diag.Bag, module types.ModuleID) *PatternBinder {
	return &PatternBinder{WS: ws, Ctx: ctx, Diags: diags, Module: module}
}

// Bind walks pat (taken from patterns) against expected, declaring bindings
// into scope at level. mutable marks every introduced binding's mutability
// (a `let mut` vs a plain `let`). It returns the set of BindingIDs created,
// in pattern-tree order.
func (p *PatternBinder) Bind(patterns *ast.Patterns, pat ast.PatternID, expected types.Type, scope symbols.ScopeID, level symbols.ScopeLevel, kind symbols.BindingKind, mutable bool, decl symbols.BindingDecl) []symbols.BindingID {
	node, ok := patterns.Get(pat)
	if !ok {
		return nil
	}
	switch node.Kind {
	case ast.PatternWildcard:
		return nil

	case ast.PatternName:
		return []symbols.BindingID{p.declare(node.Name, expected, scope, level, kind, mutable, decl, node.Span)}

	case ast.PatternHybrid:
		whole := p.declare(node.Name, expected, scope, level, kind, mutable, decl, node.Span)
		inner := p.Bind(patterns, node.Inner, expected, scope, level, kind, mutable, decl)
		return append([]symbols.BindingID{whole}, inner...)

	case ast.PatternTupleUnpack:
		return p.bindTuple(patterns, node, expected, scope, level, kind, mutable, decl)

	case ast.PatternStructUnpack:
		return p.bindStruct(patterns, node, expected, scope, level, kind, mutable, decl)

	default:
		return nil
	}
}

func (p *PatternBinder) bindTuple(patterns *ast.Patterns, node *ast.Pattern, expected types.Type, scope symbols.ScopeID, level symbols.ScopeLevel, kind symbols.BindingKind, mutable bool, decl symbols.BindingDecl) []symbols.BindingID {
	ground := p.Ctx.Normalize(expected)
	if ground.Kind != types.KindTuple {
		p.Diags.Add(ptr(diag.NewError(diag.UnpackNotTuple, node.Span,
			fmt.Sprintf("cannot destructure %s as a tuple", types.Display(p.Ctx, ground)))))
		return p.bindAllAsInvalid(patterns, node.Elements, scope, level, kind, mutable, decl)
	}
	if len(node.Elements) != len(ground.Tuple) {
		p.Diags.Add(ptr(diag.NewError(diag.UnpackTooMany, node.Span,
			fmt.Sprintf("tuple pattern has %d elements but the value has %d", len(node.Elements), len(ground.Tuple)))))
	}
	var out []symbols.BindingID
	for i, elem := range node.Elements {
		var elemTy types.Type
		if i < len(ground.Tuple) {
			elemTy = ground.Tuple[i]
		} else {
			elemTy = types.AnyType()
		}
		out = append(out, p.Bind(patterns, elem, elemTy, scope, level, kind, mutable, decl)...)
	}
	return out
}

func (p *PatternBinder) bindStruct(patterns *ast.Patterns, node *ast.Pattern, expected types.Type, scope symbols.ScopeID, level symbols.ScopeLevel, kind symbols.BindingKind, mutable bool, decl symbols.BindingDecl) []symbols.BindingID {
	ground := p.Ctx.Normalize(expected)
	if ground.Kind != types.KindStruct || ground.Struct == nil {
		p.Diags.Add(ptr(diag.NewError(diag.UnpackNotStructLike, node.Span,
			fmt.Sprintf("cannot destructure %s as a struct", types.Display(p.Ctx, ground)))))
		var out []symbols.BindingID
		for _, fid := range node.Fields {
			field, ok := patterns.Field(fid)
			if !ok {
				continue
			}
			out = append(out, p.Bind(patterns, field.BindAs, types.AnyType(), scope, level, kind, mutable, decl)...)
		}
		return out
	}

	seen := make(map[source.StringID]bool, len(node.Fields))
	var out []symbols.BindingID
	for _, fid := range node.Fields {
		field, ok := patterns.Field(fid)
		if !ok {
			continue
		}
		if seen[field.FieldName] {
			p.Diags.Add(ptr(diag.NewError(diag.UnpackFieldTwice, field.Span,
				"field bound more than once in this pattern")))
			continue
		}
		seen[field.FieldName] = true

		fieldTy, found := lookupStructField(ground.Struct, field.FieldName)
		if !found {
			name, _ := p.WS.Strings.Lookup(field.FieldName)
			p.Diags.Add(ptr(diag.NewError(diag.UnpackFieldNotFound, field.Span,
				fmt.Sprintf("struct %s has no field %q", structName(p.WS.Strings, ground.Struct), name))))
			fieldTy = types.AnyType()
		}
		out = append(out, p.Bind(patterns, field.BindAs, fieldTy, scope, level, kind, mutable, decl)...)
	}
	return out
}

func (p *PatternBinder) bindAllAsInvalid(patterns *ast.Patterns, elems []ast.PatternID, scope symbols.ScopeID, level symbols.ScopeLevel, kind symbols.BindingKind, mutable bool, decl symbols.BindingDecl) []symbols.BindingID {
	var out []symbols.BindingID
	for _, e := range elems {
		out = append(out, p.Bind(patterns, e, types.AnyType(), scope, level, kind, mutable, decl)...)
	}
	return out
}

func (p *PatternBinder) declare(name source.StringID, ty types.Type, scope symbols.ScopeID, level symbols.ScopeLevel, kind symbols.BindingKind, mutable bool, decl symbols.BindingDecl, span source.Span) symbols.BindingID {
	typeID := p.Ctx.Bound(ty, span)
	id := p.WS.Bindings.New(symbols.BindingInfo{
		Name: name, Kind: kind, Level: level, Module: p.Module,
		Visibility: ast.VisPrivate, Type: typeID, Mutable: mutable, Decl: decl, Span: span,
	})
	if !p.WS.Scopes.Declare(scope, name, id) {
		nameStr, _ := p.WS.Strings.Lookup(name)
		p.Diags.Add(ptr(diag.NewError(diag.NameDuplicate, span,
			fmt.Sprintf("%q is already bound in this scope", nameStr))))
	}
	return id
}

func lookupStructField(st *types.StructType, name source.StringID) (types.Type, bool) {
	for _, f := range st.Field {
		if f.Name == name {
			return f.Type, true
		}
	}
	return types.Type{}, false
}

func structName(strs *source.Interner, st *types.StructType) string {
	if st.Name == source.NoStringID {
		return "<anonymous struct>"
	}
	name, _ := strs.Lookup(st.Name)
	return name
}
