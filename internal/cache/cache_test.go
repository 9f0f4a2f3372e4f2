package cache

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"lumen/internal/ast"
	"lumen/internal/config"
	"lumen/internal/diag"
	"lumen/internal/driver"
	"lumen/internal/source"
)

func TestHashModulesIsOrderIndependent(t *testing.T) {
	a := []driver.SourceModule{{Path: "b.lumen"}, {Path: "a.lumen"}}
	b := []driver.SourceModule{{Path: "a.lumen"}, {Path: "b.lumen"}}
	if HashModules(a) != HashModules(b) {
		t.Fatal("expected hash to be independent of module order")
	}
}

func TestHashModulesDiffersOnModuleSetChange(t *testing.T) {
	a := []driver.SourceModule{{Path: "a.lumen"}}
	b := []driver.SourceModule{{Path: "a.lumen"}, {Path: "b.lumen"}}
	if HashModules(a) == HashModules(b) {
		t.Fatal("expected different module sets to hash differently")
	}
}

func TestStoreLoadRoundTrip(t *testing.T) {
	strs := source.NewInterner()
	diags := diag.NewBag(16)
	tree := ast.NewModule(1, strs.Intern("main"), source.Span{})
	body := tree.Exprs.NewBlock(nil, source.Span{})
	fnItem := tree.ItemData.NewFn(ast.FnItem{Name: strs.Intern("main"), Body: body, Visibility: ast.VisPublic})
	tree.AddItem(fnItem)
	modules := []driver.SourceModule{{Path: "main.lumen", Name: "main", Tree: tree}}

	res, err := driver.Build(context.Background(), config.Default(), strs, modules, diags)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	hash := HashModules(modules)
	snap := BuildSnapshot(hash, res.Workspace, res.TypeCtx, diags.HasErrors())
	if !snap.Fresh(hash) {
		t.Fatal("expected freshly built snapshot to match its own hash")
	}

	path := filepath.Join(t.TempDir(), "lumen.cache")
	if err := Store(path, snap); err != nil {
		t.Fatalf("store: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.InputHash != hash {
		t.Fatalf("expected hash %q, got %q", hash, loaded.InputHash)
	}
	if len(loaded.Bindings) != len(snap.Bindings) {
		t.Fatalf("expected %d bindings, got %d", len(snap.Bindings), len(loaded.Bindings))
	}
}

func TestLoadMissingFileReportsNotExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.cache"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}
