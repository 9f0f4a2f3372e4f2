package sema

import (
	"testing"

	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/source"
	"lumen/internal/symbols"
	"lumen/internal/types"
)

func newBinderFixture(t *testing.T) (*source.Interner, *symbols.Workspace, *types.TypeContext, *diag.Bag, symbols.ScopeID) {
	t.Helper()
	strs := source.NewInterner()
	ws := symbols.NewWorkspace(strs)
	ctx := types.NewTypeContext(strs, 8)
	diags := diag.NewBag(64)
	scope := ws.Scopes.New(symbols.LevelBlock, symbols.NoScopeID, 0)
	return strs, ws, ctx, diags, scope
}

func TestPatternBinderSimpleName(t *testing.T) {
	strs, ws, ctx, diags, scope := newBinderFixture(t)
	patterns := ast.NewPatterns(0)
	xName := strs.Intern("x")
	pat := patterns.NewName(xName, source.Span{})

	binder := NewPatternBinder(ws, ctx, diags, 0)
	ids := binder.Bind(patterns, pat, types.Int(types.Width32), scope, symbols.LevelBlock, symbols.BindingLet, false, symbols.BindingDecl{})

	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %+v", diags.Items())
	}
	if len(ids) != 1 {
		t.Fatalf("expected exactly one binding, got %d", len(ids))
	}
	info := ws.Bindings.MustGet(ids[0])
	if info.Name != xName {
		t.Fatalf("expected binding for x, got %+v", info)
	}
}

func TestPatternBinderTupleUnpackBindsEachElement(t *testing.T) {
	strs, ws, ctx, diags, scope := newBinderFixture(t)
	patterns := ast.NewPatterns(0)
	aName, bName := strs.Intern("a"), strs.Intern("b")
	aPat := patterns.NewName(aName, source.Span{})
	bPat := patterns.NewName(bName, source.Span{})
	tuplePat := patterns.NewTupleUnpack([]ast.PatternID{aPat, bPat}, source.Span{})

	expected := types.Tuple(types.Int(types.Width32), types.Bool())
	binder := NewPatternBinder(ws, ctx, diags, 0)
	ids := binder.Bind(patterns, tuplePat, expected, scope, symbols.LevelBlock, symbols.BindingLet, false, symbols.BindingDecl{})

	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %+v", diags.Items())
	}
	if len(ids) != 2 {
		t.Fatalf("expected two bindings, got %d", len(ids))
	}
}

func TestPatternBinderTupleArityMismatchReportsUnpackTooMany(t *testing.T) {
	_, ws, ctx, diags, scope := newBinderFixture(t)
	patterns := ast.NewPatterns(0)
	pat := patterns.NewTupleUnpack([]ast.PatternID{
		patterns.NewWildcard(source.Span{}),
		patterns.NewWildcard(source.Span{}),
		patterns.NewWildcard(source.Span{}),
	}, source.Span{})

	expected := types.Tuple(types.Int(types.Width32), types.Bool())
	binder := NewPatternBinder(ws, ctx, diags, 0)
	binder.Bind(patterns, pat, expected, scope, symbols.LevelBlock, symbols.BindingLet, false, symbols.BindingDecl{})

	found := false
	for _, d := range diags.Items() {
		if d.Code == diag.UnpackTooMany {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected UnpackTooMany, got %+v", diags.Items())
	}
}

func TestPatternBinderTupleAgainstNonTupleReportsUnpackNotTuple(t *testing.T) {
	_, ws, ctx, diags, scope := newBinderFixture(t)
	patterns := ast.NewPatterns(0)
	pat := patterns.NewTupleUnpack([]ast.PatternID{patterns.NewWildcard(source.Span{})}, source.Span{})

	binder := NewPatternBinder(ws, ctx, diags, 0)
	binder.Bind(patterns, pat, types.Int(types.Width32), scope, symbols.LevelBlock, symbols.BindingLet, false, symbols.BindingDecl{})

	found := false
	for _, d := range diags.Items() {
		if d.Code == diag.UnpackNotTuple {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected UnpackNotTuple, got %+v", diags.Items())
	}
}

func TestPatternBinderStructUnpackFieldNotFound(t *testing.T) {
	strs, ws, ctx, diags, scope := newBinderFixture(t)
	patterns := ast.NewPatterns(0)
	missing := strs.Intern("missing")
	bindAs := patterns.NewWildcard(source.Span{})
	field := patterns.NewField(missing, bindAs, source.Span{})
	pat := patterns.NewStructUnpack([]ast.PatternFieldID{field}, source.Span{})

	st := &types.StructType{ID: 1, Name: strs.Intern("Point"), Kind: types.StructNormal, Field: []types.StructField{
		{Name: strs.Intern("x"), Type: types.Int(types.Width32)},
	}}
	binder := NewPatternBinder(ws, ctx, diags, 0)
	binder.Bind(patterns, pat, types.Struct(st), scope, symbols.LevelBlock, symbols.BindingLet, false, symbols.BindingDecl{})

	found := false
	for _, d := range diags.Items() {
		if d.Code == diag.UnpackFieldNotFound {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected UnpackFieldNotFound, got %+v", diags.Items())
	}
}

func TestPatternBinderStructUnpackFieldTwice(t *testing.T) {
	strs, ws, ctx, diags, scope := newBinderFixture(t)
	patterns := ast.NewPatterns(0)
	xName := strs.Intern("x")
	f1 := patterns.NewField(xName, patterns.NewWildcard(source.Span{}), source.Span{})
	f2 := patterns.NewField(xName, patterns.NewWildcard(source.Span{}), source.Span{})
	pat := patterns.NewStructUnpack([]ast.PatternFieldID{f1, f2}, source.Span{})

	st := &types.StructType{ID: 1, Name: strs.Intern("Point"), Kind: types.StructNormal, Field: []types.StructField{
		{Name: xName, Type: types.Int(types.Width32)},
	}}
	binder := NewPatternBinder(ws, ctx, diags, 0)
	binder.Bind(patterns, pat, types.Struct(st), scope, symbols.LevelBlock, symbols.BindingLet, false, symbols.BindingDecl{})

	found := false
	for _, d := range diags.Items() {
		if d.Code == diag.UnpackFieldTwice {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected UnpackFieldTwice, got %+v", diags.Items())
	}
}
