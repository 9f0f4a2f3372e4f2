package sema

import (
	"testing"

	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/hir"
	"lumen/internal/source"
	"lumen/internal/symbols"
	"lumen/internal/types"
)

func checkedMainModule(t *testing.T, fnName string) (*symbols.Workspace, *diag.Bag, *types.TypeContext, *symbols.ModuleInfo) {
	t.Helper()
	strs := source.NewInterner()
	ws := symbols.NewWorkspace(strs)
	ctx := types.NewTypeContext(strs, 8)
	diags := diag.NewBag(64)
	nodes := hir.NewNodes(16)
	cache := hir.NewCache()

	nameID := strs.Intern("main")
	tree := ast.NewModule(1, nameID, source.Span{})
	exprs := ast.NewExprs(4)
	tree.Exprs = exprs
	body := exprs.NewBlock(nil, source.Span{})
	fnItem := tree.ItemData.NewFn(ast.FnItem{Name: strs.Intern(fnName), Body: body, Visibility: ast.VisPublic})
	tree.AddItem(fnItem)
	info := ws.AddModule(nameID, "main", 1, tree)

	r := NewResolver(ws, diags)
	r.DeclareModule(info)

	fnBinding, _ := ws.Scopes.Lookup(info.Scope, strs.Intern(fnName))
	structTypes := make(map[symbols.BindingID]*types.StructType)
	c := NewChecker(ws, ctx, nodes, cache, diags, info.ID, tree, r, structTypes, 8)
	c.CheckFunction(info.Scope, fnItem, fnBinding)

	return ws, diags, ctx, info
}

func TestCheckEntryPointValidMainPasses(t *testing.T) {
	ws, diags, ctx, info := checkedMainModule(t, "main")
	CheckEntryPoint(ws, diags, ctx, info, "main")
	if diags.HasErrors() {
		t.Fatalf("expected no errors for a valid entry point, got %+v", diags.Items())
	}
}

func TestCheckEntryPointMissingReportsError(t *testing.T) {
	ws, diags, ctx, info := checkedMainModule(t, "start")
	CheckEntryPoint(ws, diags, ctx, info, "main")
	found := false
	for _, d := range diags.Items() {
		if d.Code == diag.EntryPointMissing {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected EntryPointMissing, got %+v", diags.Items())
	}
}
