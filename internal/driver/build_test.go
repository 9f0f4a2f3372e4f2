package driver

import (
	"context"
	"testing"

	"lumen/internal/ast"
	"lumen/internal/config"
	"lumen/internal/diag"
	"lumen/internal/source"
)

func mainOnlyModule(strs *source.Interner, path, name string) SourceModule {
	tree := ast.NewModule(1, strs.Intern(name), source.Span{})
	body := tree.Exprs.NewBlock(nil, source.Span{})
	fnItem := tree.ItemData.NewFn(ast.FnItem{Name: strs.Intern("main"), Body: body, Visibility: ast.VisPublic})
	tree.AddItem(fnItem)
	return SourceModule{Path: path, Name: name, Tree: tree}
}

func TestBuildValidEntryPointProducesNoErrors(t *testing.T) {
	strs := source.NewInterner()
	diags := diag.NewBag(64)
	modules := []SourceModule{mainOnlyModule(strs, "main.lumen", "main")}

	res, err := Build(context.Background(), config.Default(), strs, modules, diags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Root == nil {
		t.Fatal("expected a root module")
	}
	if diags.HasErrors() {
		t.Fatalf("expected no diagnostics, got %+v", diags.Items())
	}
}

func TestBuildMissingEntryPointReportsError(t *testing.T) {
	strs := source.NewInterner()
	diags := diag.NewBag(64)
	tree := ast.NewModule(1, strs.Intern("lib"), source.Span{})
	modules := []SourceModule{{Path: "lib.lumen", Name: "lib", Tree: tree}}

	_, err := Build(context.Background(), config.Default(), strs, modules, diags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, d := range diags.Items() {
		if d.Code == diag.EntryPointMissing {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected EntryPointMissing diagnostic, got %+v", diags.Items())
	}
}

func TestBuildRejectsEmptyModuleSet(t *testing.T) {
	strs := source.NewInterner()
	diags := diag.NewBag(8)
	if _, err := Build(context.Background(), config.Default(), strs, nil, diags); err == nil {
		t.Fatal("expected an error for an empty module set")
	}
}
