package sema

import (
	"fmt"
	"testing"

	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/source"
	"lumen/internal/symbols"
)

func buildModule(strs *source.Interner, ws *symbols.Workspace, path string, fnNames []string) *symbols.ModuleInfo {
	nameID := strs.Intern(path)
	tree := ast.NewModule(1, nameID, source.Span{})
	for _, fn := range fnNames {
		id := strs.Intern(fn)
		item := tree.ItemData.NewFn(ast.FnItem{Name: id, Visibility: ast.VisPublic})
		tree.AddItem(item)
	}
	return ws.AddModule(nameID, path, 1, tree)
}

func TestResolverDeclareModuleBindsTopLevelNames(t *testing.T) {
	strs := source.NewInterner()
	ws := symbols.NewWorkspace(strs)
	diags := diag.NewBag(64)
	r := NewResolver(ws, diags)

	info := buildModule(strs, ws, "main", []string{"entry", "helper"})
	r.DeclareModule(info)

	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %+v", diags.Items())
	}
	entryName := strs.Intern("entry")
	if _, ok := ws.Scopes.Lookup(info.Scope, entryName); !ok {
		t.Fatal("expected entry to be declared in module scope")
	}
}

func TestResolverDeclareModuleReportsDuplicate(t *testing.T) {
	strs := source.NewInterner()
	ws := symbols.NewWorkspace(strs)
	diags := diag.NewBag(64)
	r := NewResolver(ws, diags)

	info := buildModule(strs, ws, "main", []string{"entry", "entry"})
	r.DeclareModule(info)

	if !diags.HasErrors() {
		t.Fatal("expected a NameDuplicate diagnostic for the repeated fn name")
	}
	found := false
	for _, d := range diags.Items() {
		if d.Code == diag.NameDuplicate {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected NameDuplicate among diagnostics, got %+v", diags.Items())
	}
}

func TestResolverDeclareModuleDuplicateGoldenFormat(t *testing.T) {
	strs := source.NewInterner()
	ws := symbols.NewWorkspace(strs)
	diags := diag.NewBag(64)
	r := NewResolver(ws, diags)

	info := buildModule(strs, ws, "main", []string{"entry", "entry"})
	r.DeclareModule(info)

	files := source.NewFileSet()
	files.AddVirtual("main.lumen", []byte("fn entry() {}\nfn entry() {}\n"))

	got := diag.FormatGoldenDiagnostics(diags.Items(), files, false)
	want := fmt.Sprintf("error %s main.lumen:1:1 \"entry\" is already declared in this module", diag.NameDuplicate.ID())
	if got != want {
		t.Fatalf("golden diagnostic mismatch:\n got:  %q\n want: %q", got, want)
	}
}

func TestResolverImportCycleDetected(t *testing.T) {
	strs := source.NewInterner()
	ws := symbols.NewWorkspace(strs)
	diags := diag.NewBag(64)
	r := NewResolver(ws, diags)

	a := buildModule(strs, ws, "a", nil)
	b := buildModule(strs, ws, "b", nil)

	addImport := func(info *symbols.ModuleInfo, target string) {
		seg := strs.Intern(target)
		item := info.AST.ItemData.NewImport(ast.ImportItem{Path: ast.QualifiedName{Segments: []source.StringID{seg}}})
		info.AST.AddItem(item)
	}
	addImport(a, "b")
	addImport(b, "a")

	r.ResolveImports()
	if diags.HasErrors() {
		t.Fatalf("import resolution itself should not fail: %+v", diags.Items())
	}

	r.CheckImportCycles()
	found := false
	for _, d := range diags.Items() {
		if d.Code == diag.NameCycle {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an import cycle between a and b to be reported, got %+v", diags.Items())
	}
}

func TestResolverImportMissingModuleReportsNotFound(t *testing.T) {
	strs := source.NewInterner()
	ws := symbols.NewWorkspace(strs)
	diags := diag.NewBag(64)
	r := NewResolver(ws, diags)

	a := buildModule(strs, ws, "a", nil)
	seg := strs.Intern("does_not_exist")
	item := a.AST.ItemData.NewImport(ast.ImportItem{Path: ast.QualifiedName{Segments: []source.StringID{seg}}})
	a.AST.AddItem(item)

	r.ResolveImports()
	found := false
	for _, d := range diags.Items() {
		if d.Code == diag.NameNotFound {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected NameNotFound for unresolved import, got %+v", diags.Items())
	}
}
