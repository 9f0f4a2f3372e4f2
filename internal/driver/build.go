// Package driver orchestrates the semantic-analysis core end to end: the
// concurrent ingestion worker pool, the single-threaded resolve/check
// pipeline, and entry-point validation (§5 CONCURRENCY & RESOURCE MODEL).
package driver

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"lumen/internal/ast"
	"lumen/internal/config"
	"lumen/internal/diag"
	"lumen/internal/hir"
	"lumen/internal/sema"
	"lumen/internal/source"
	"lumen/internal/symbols"
	"lumen/internal/types"
)

// Result is everything the core produces (§6 "Output from the core"): the
// Workspace (binding infos with resolved types), the TypeContext (all
// resolved inference variables), and the HIR Cache plus node arena.
type Result struct {
	Workspace *symbols.Workspace
	TypeCtx   *types.TypeContext
	Cache     *hir.Cache
	Nodes     *hir.Nodes
	Root      *symbols.ModuleInfo
}

// Build runs the full pipeline over an already-parsed module set: a
// bounded worker pool registers every module into a shared Workspace
// (§5's parse-stage analog, since lexing/parsing are external collaborators
// per §1's Non-goals), then resolution, checking, and entry-point
// validation proceed single-threaded. The first module in modules is
// treated as the program's root module for entry-point purposes.
func Build(ctx context.Context, cfg config.Config, strs *source.Interner, modules []SourceModule, diags *diag.Bag) (*Result, error) {
	if len(modules) == 0 {
		return nil, fmt.Errorf("driver: no modules to build")
	}

	ws := symbols.NewWorkspace(strs)
	pcache := NewParserCache(diags)

	jobs := runtime.GOMAXPROCS(0)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(modules)))

	var mu sync.Mutex
	infos := make([]*symbols.ModuleInfo, len(modules))

	for i, m := range modules {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			nameID := strs.Intern(m.Name)

			mu.Lock()
			info, exists := ws.Lookup(m.Path)
			if !exists {
				info = ws.AddModule(nameID, m.Path, source.FileID(i+1), m.Tree)
			}
			mu.Unlock()

			pcache.MarkParsed(m.Path, countItems(m.Tree))
			infos[i] = info
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("driver: module ingestion: %w", err)
	}

	// From here on, resolution, checking, and the compile-time VM run
	// strictly single-threaded (§5).
	res := sema.NewResolver(ws, diags)
	for _, info := range infos {
		res.DeclareModule(info)
	}
	res.ResolveImports()
	res.CheckImportCycles()

	ctxTypes := types.NewTypeContext(strs, cfg.WordSize)
	cache := hir.NewCache()
	nodes := hir.NewNodes(256)
	structTypes := make(map[symbols.BindingID]*types.StructType)

	checkers := make(map[types.ModuleID]*sema.Checker, len(infos))
	checkerFor := func(info *symbols.ModuleInfo) *sema.Checker {
		if c, ok := checkers[info.ID]; ok {
			return c
		}
		c := sema.NewChecker(ws, ctxTypes, nodes, cache, diags, info.ID, info.AST, res, structTypes, cfg.WordSize)
		checkers[info.ID] = c
		return c
	}

	// Pass A: struct shapes must be known before any type expression that
	// names them is resolved (§9: "install a placeholder before elaborating
	// fields" — here that placeholder is simply "checked before bodies").
	for _, info := range infos {
		c := checkerFor(info)
		forEachItem(info.AST, ast.ItemStruct, func(itemID ast.ItemID, item *ast.Item) {
			st, ok := info.AST.ItemData.Struct(itemID)
			if !ok {
				return
			}
			binding, _ := ws.Scopes.Lookup(info.Scope, st.Name)
			c.CheckStruct(info.Scope, itemID, binding)
		})
	}

	// Pass B: everything else, in source-declaration order per module
	// (§5: "binding checking order within a module is the source-
	// declaration order").
	for _, info := range infos {
		c := checkerFor(info)
		for _, itemID := range info.AST.Items {
			item, ok := info.AST.ItemData.Get(itemID)
			if !ok {
				continue
			}
			switch item.Kind {
			case ast.ItemFn:
				fn, _ := info.AST.ItemData.Fn(itemID)
				binding, _ := ws.Scopes.Lookup(info.Scope, fn.Name)
				c.CheckFunction(info.Scope, itemID, binding)
			case ast.ItemExtern:
				ext, _ := info.AST.ItemData.Extern(itemID)
				for _, memberID := range ext.Members {
					member, ok := info.AST.ItemData.ExternMember(memberID)
					if !ok {
						continue
					}
					binding, _ := ws.Scopes.Lookup(info.Scope, member.Name)
					c.CheckExtern(info.Scope, memberID, binding)
				}
			case ast.ItemLet, ast.ItemConst:
				checkGlobalPattern(c, ws, info, itemID)
			}
		}
	}

	sema.CheckEntryPoint(ws, diags, ctxTypes, infos[0], cfg.EntryPointFunction)

	return &Result{Workspace: ws, TypeCtx: ctxTypes, Cache: cache, Nodes: nodes, Root: infos[0]}, nil
}

// checkGlobalPattern runs CheckGlobal for a top-level let/const whose
// pattern is a plain Name. For any other pattern kind (tuple, struct,
// hybrid, wildcard) it returns without checking the item, so the bindings
// the resolver declared for that pattern keep their unresolved type.
func checkGlobalPattern(c *sema.Checker, ws *symbols.Workspace, info *symbols.ModuleInfo, itemID ast.ItemID) {
	var l *ast.LetItem
	if let, ok := info.AST.ItemData.Let(itemID); ok {
		l = let
	} else if cst, ok := info.AST.ItemData.Const(itemID); ok {
		l = cst
	} else {
		return
	}
	pat, ok := info.AST.Patterns.Get(l.Pattern)
	if !ok || pat.Kind != ast.PatternName {
		return
	}
	binding, ok := ws.Scopes.Lookup(info.Scope, pat.Name)
	if !ok {
		return
	}
	c.CheckGlobal(info.Scope, binding, l.Value, l.Type, l.Span)
}

func forEachItem(tree *ast.Module, kind ast.ItemKind, fn func(ast.ItemID, *ast.Item)) {
	for _, id := range tree.Items {
		item, ok := tree.ItemData.Get(id)
		if !ok || item.Kind != kind {
			continue
		}
		fn(id, item)
	}
}

func countItems(tree *ast.Module) int {
	return len(tree.Items)
}
