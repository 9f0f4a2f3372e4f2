// Package sema implements the semantic analysis passes that sit between a
// parsed ast.Module and a checked hir.Module: top-level name resolution
// with cycle detection, pattern binding, unification-driven type checking,
// and the constant folding that dispatches into the compile-time VM.
package sema

import (
	"fmt"

	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/source"
	"lumen/internal/symbols"
	"lumen/internal/types"
)

// Resolver discovers top-level bindings across every module registered in a
// Workspace, wires up imports, and detects both module-level import cycles
// and (via the checker's hir.Cache) binding-level dependency cycles.
type Resolver struct {
	WS    *symbols.Workspace
	Diags *diag.Bag
}

// NewResolver creates a Resolver reporting into diags.
func NewResolver(ws *symbols.Workspace, diags *diag.Bag) *Resolver {
	return &Resolver{WS: ws, Diags: diags}
}

// DeclareModule registers every top-level item of tree as a BindingInfo in
// the module's scope, reporting diag.NameDuplicate for repeated names. It
// does not resolve types or imports — see ResolveImports and the checker.
func (r *Resolver) DeclareModule(info *symbols.ModuleInfo) {
	tree := info.AST
	for _, itemID := range tree.Items {
		item, ok := tree.ItemData.Get(itemID)
		if !ok {
			continue
		}
		switch item.Kind {
		case ast.ItemLet:
			l, _ := tree.ItemData.Let(itemID)
			r.declarePattern(info, tree, l.Pattern, symbols.BindingLet, l.Visibility, itemID)
		case ast.ItemConst:
			c, _ := tree.ItemData.Const(itemID)
			r.declarePattern(info, tree, c.Pattern, symbols.BindingConst, c.Visibility, itemID)
		case ast.ItemFn:
			fn, _ := tree.ItemData.Fn(itemID)
			r.declareName(info, fn.Name, symbols.BindingFn, fn.Visibility,
				symbols.BindingDecl{Module: info.ID, Item: itemID}, fn.Span)
		case ast.ItemStruct:
			st, _ := tree.ItemData.Struct(itemID)
			r.declareName(info, st.Name, symbols.BindingStruct, st.Visibility,
				symbols.BindingDecl{Module: info.ID, Item: itemID}, st.Span)
		case ast.ItemExtern:
			ext, _ := tree.ItemData.Extern(itemID)
			for _, memberID := range ext.Members {
				member, ok := tree.ItemData.ExternMember(memberID)
				if !ok {
					continue
				}
				r.declareName(info, member.Name, symbols.BindingExternFn, ast.VisPublic,
					symbols.BindingDecl{Module: info.ID, Item: itemID, ExternMember: memberID}, member.Span)
			}
		case ast.ItemImport:
			// Imports are wired in a second pass (ResolveImports) once every
			// module in the program has been declared.
		}
	}
}

func (r *Resolver) declarePattern(info *symbols.ModuleInfo, tree *ast.Module, pid ast.PatternID, kind symbols.BindingKind, vis ast.Visibility, item ast.ItemID) {
	pat, ok := tree.Patterns.Get(pid)
	if !ok {
		return
	}
	switch pat.Kind {
	case ast.PatternWildcard:
		// binds nothing
	case ast.PatternName:
		r.declareName(info, pat.Name, kind, vis, symbols.BindingDecl{Module: info.ID, Item: item, Pattern: pid}, pat.Span)
	case ast.PatternHybrid:
		r.declareName(info, pat.Name, kind, vis, symbols.BindingDecl{Module: info.ID, Item: item, Pattern: pid}, pat.Span)
		r.declarePattern(info, tree, pat.Inner, kind, vis, item)
	case ast.PatternTupleUnpack:
		for _, e := range pat.Elements {
			r.declarePattern(info, tree, e, kind, vis, item)
		}
	case ast.PatternStructUnpack:
		for _, fid := range pat.Fields {
			field, ok := tree.Patterns.Field(fid)
			if !ok {
				continue
			}
			r.declarePattern(info, tree, field.BindAs, kind, vis, item)
		}
	}
}

func (r *Resolver) declareName(info *symbols.ModuleInfo, name source.StringID, kind symbols.BindingKind, vis ast.Visibility, decl symbols.BindingDecl, span source.Span) symbols.BindingID {
	id := r.WS.Bindings.New(symbols.BindingInfo{
		Name: name, Kind: kind, Level: symbols.LevelModule,
		Module: info.ID, Visibility: vis, Decl: decl, Span: span,
	})
	if !r.WS.Scopes.Declare(info.Scope, name, id) {
		nameStr, _ := r.WS.Strings.Lookup(name)
		r.Diags.Add(ptr(diag.NewError(diag.NameDuplicate, span,
			fmt.Sprintf("%q is already declared in this module", nameStr))))
	}
	return id
}

// ResolveImports walks every module's import items, linking them to already
// registered target modules and declaring a BindingModule/BindingImport
// alias for each. Call this only after every module has been registered and
// DeclareModule'd.
func (r *Resolver) ResolveImports() {
	for _, info := range r.WS.Modules() {
		tree := info.AST
		for _, itemID := range tree.Items {
			item, ok := tree.ItemData.Get(itemID)
			if !ok || item.Kind != ast.ItemImport {
				continue
			}
			imp, _ := tree.ItemData.Import(itemID)
			path := qualifiedNameToPath(r.WS.Strings, imp.Path)
			target, ok := r.WS.Lookup(path)
			if !ok {
				r.Diags.Add(ptr(diag.NewError(diag.NameNotFound, imp.Span,
					fmt.Sprintf("module %q not found", path))))
				continue
			}
			info.Imports = append(info.Imports, target.ID)

			alias := imp.Alias
			if alias == source.NoStringID {
				alias = imp.Path.Segments[len(imp.Path.Segments)-1]
			}
			r.declareName(info, alias, symbols.BindingImport, ast.VisPrivate,
				symbols.BindingDecl{Module: info.ID, Item: itemID}, imp.Span)
			// Point the freshly declared binding at its target module.
			if bid, found := r.WS.Scopes.Lookup(info.Scope, alias); found {
				b := r.WS.Bindings.MustGet(bid)
				b.RefModule = target.ID
			}
		}
	}
}

// CheckImportCycles reports diag.NameCycle for any cycle in the
// module-import graph (§4.5: modules that transitively import themselves).
func (r *Resolver) CheckImportCycles() {
	state := make(map[types.ModuleID]symbols.ModuleResolveState)
	var trail []types.ModuleID

	var visit func(id types.ModuleID)
	visit = func(id types.ModuleID) {
		switch state[id] {
		case symbols.ModuleResolved:
			return
		case symbols.ModuleInProgress:
			r.reportImportCycle(append(trail, id))
			return
		}
		state[id] = symbols.ModuleInProgress
		trail = append(trail, id)
		info := r.WS.Module(id)
		if info != nil {
			for _, dep := range info.Imports {
				visit(dep)
			}
		}
		trail = trail[:len(trail)-1]
		state[id] = symbols.ModuleResolved
	}

	for _, info := range r.WS.Modules() {
		if state[info.ID] == symbols.ModuleUnresolved {
			visit(info.ID)
		}
	}
}

func (r *Resolver) reportImportCycle(trail []types.ModuleID) {
	if len(trail) == 0 {
		return
	}
	head := r.WS.Module(trail[0])
	if head == nil {
		return
	}
	r.Diags.Add(ptr(diag.NewError(diag.NameCycle, head.AST.Span,
		fmt.Sprintf("import cycle detected starting at module %q", head.Path))))
}

// LookupQualified resolves a (possibly multi-segment) name against scope.
// A single segment is a plain scope lookup. Multiple segments walk the
// first segment to a BindingModule/BindingImport binding and continue
// resolution into that module's own top-level scope, checking Visibility
// at each hop (§4.5: only VisPublic bindings are reachable across a module
// boundary).
func (r *Resolver) LookupQualified(scope symbols.ScopeID, qn ast.QualifiedName) (symbols.BindingID, bool) {
	if len(qn.Segments) == 0 {
		return symbols.NoBindingID, false
	}
	if len(qn.Segments) == 1 {
		id, ok := r.WS.Scopes.Lookup(scope, qn.Segments[0])
		if !ok {
			r.reportNotFound(qn)
		}
		return id, ok
	}

	head, ok := r.WS.Scopes.Lookup(scope, qn.Segments[0])
	if !ok {
		r.reportNotFound(qn)
		return symbols.NoBindingID, false
	}
	binding := r.WS.Bindings.MustGet(head)
	if binding.Kind != symbols.BindingModule && binding.Kind != symbols.BindingImport {
		r.Diags.Add(ptr(diag.NewError(diag.NameNotAModule, qn.Span,
			fmt.Sprintf("%s is not a module", segmentName(r.WS.Strings, qn.Segments[0])))))
		return symbols.NoBindingID, false
	}

	cur := binding.RefModule
	for _, seg := range qn.Segments[1 : len(qn.Segments)-1] {
		info := r.WS.Module(cur)
		if info == nil {
			r.reportNotFound(qn)
			return symbols.NoBindingID, false
		}
		next, ok := r.WS.Scopes.Lookup(info.Scope, seg)
		if !ok {
			r.reportNotFound(qn)
			return symbols.NoBindingID, false
		}
		nb := r.WS.Bindings.MustGet(next)
		if nb.Kind != symbols.BindingModule && nb.Kind != symbols.BindingImport {
			r.Diags.Add(ptr(diag.NewError(diag.NameNotAModule, qn.Span,
				fmt.Sprintf("%s is not a module", segmentName(r.WS.Strings, seg)))))
			return symbols.NoBindingID, false
		}
		cur = nb.RefModule
	}

	info := r.WS.Module(cur)
	if info == nil {
		r.reportNotFound(qn)
		return symbols.NoBindingID, false
	}
	last := qn.Segments[len(qn.Segments)-1]
	final, ok := r.WS.Scopes.Lookup(info.Scope, last)
	if !ok {
		r.reportNotFound(qn)
		return symbols.NoBindingID, false
	}
	finalInfo := r.WS.Bindings.MustGet(final)
	if finalInfo.Visibility != ast.VisPublic {
		r.Diags.Add(ptr(diag.NewError(diag.NamePrivate, qn.Span,
			fmt.Sprintf("%s is private to its module", segmentName(r.WS.Strings, last)))))
		return symbols.NoBindingID, false
	}
	return final, true
}

func (r *Resolver) reportNotFound(qn ast.QualifiedName) {
	path := qualifiedNameToPath(r.WS.Strings, qn)
	r.Diags.Add(ptr(diag.NewError(diag.NameNotFound, qn.Span, fmt.Sprintf("name %q not found", path))))
}

func segmentName(strs *source.Interner, id source.StringID) string {
	s, _ := strs.Lookup(id)
	return s
}

func qualifiedNameToPath(strs *source.Interner, qn ast.QualifiedName) string {
	path := ""
	for i, seg := range qn.Segments {
		if i > 0 {
			path += "::"
		}
		s, _ := strs.Lookup(seg)
		path += s
	}
	return path
}

func ptr(d diag.Diagnostic) *diag.Diagnostic { return &d }
