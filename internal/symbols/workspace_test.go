package symbols

import (
	"testing"

	"lumen/internal/ast"
	"lumen/internal/source"
)

func TestWorkspaceAddAndLookupModule(t *testing.T) {
	strs := source.NewInterner()
	ws := NewWorkspace(strs)
	name := strs.Intern("main")
	tree := ast.NewModule(1, name, source.Span{})

	info := ws.AddModule(name, "main", 1, tree)
	if info.ID == 0 {
		t.Fatal("expected non-zero module id")
	}

	got, ok := ws.Lookup("main")
	if !ok || got.ID != info.ID {
		t.Fatalf("expected to find registered module, got %v ok=%v", got, ok)
	}
}

func TestWorkspaceAddModuleDuplicatePanics(t *testing.T) {
	strs := source.NewInterner()
	ws := NewWorkspace(strs)
	name := strs.Intern("main")
	tree := ast.NewModule(1, name, source.Span{})
	ws.AddModule(name, "main", 1, tree)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate module path")
		}
	}()
	ws.AddModule(name, "main", 1, tree)
}

func TestScopeDeclareAndLookupShadowing(t *testing.T) {
	strs := source.NewInterner()
	ws := NewWorkspace(strs)
	xName := strs.Intern("x")

	outer := ws.Scopes.New(LevelModule, NoScopeID, 0)
	inner := ws.Scopes.New(LevelBlock, outer, 0)

	outerBinding := ws.Bindings.New(BindingInfo{Name: xName, Kind: BindingLet})
	innerBinding := ws.Bindings.New(BindingInfo{Name: xName, Kind: BindingLet})

	if !ws.Scopes.Declare(outer, xName, outerBinding) {
		t.Fatal("expected outer declare to succeed")
	}
	if !ws.Scopes.Declare(inner, xName, innerBinding) {
		t.Fatal("expected inner declare (shadowing) to succeed")
	}
	if ws.Scopes.Declare(outer, xName, innerBinding) {
		t.Fatal("expected redeclare in the same scope to fail")
	}

	got, ok := ws.Scopes.Lookup(inner, xName)
	if !ok || got != innerBinding {
		t.Fatalf("expected inner lookup to shadow outer binding, got %v", got)
	}
}
