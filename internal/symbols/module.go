package symbols

import (
	"lumen/internal/ast"
	"lumen/internal/source"
	"lumen/internal/types"
)

// ModuleResolveState tracks a module's progress through the top-level
// resolver's cycle-detecting queue (§4.5; mirrors the discriminated states
// a QueuedModule moves through: not yet visited, in progress, done).
type ModuleResolveState uint8

const (
	ModuleUnresolved ModuleResolveState = iota
	ModuleInProgress
	ModuleResolved
)

// ModuleInfo is one compiled source module: its AST, its own top-level
// scope, and bookkeeping the resolver needs to detect import/reference
// cycles.
type ModuleInfo struct {
	ID    types.ModuleID
	Name  source.StringID
	Path  string
	File  source.FileID
	AST   *ast.Module
	Scope ScopeID

	State ModuleResolveState

	// Imports lists modules this module's import items reference, resolved
	// by path during the discovery pass.
	Imports []types.ModuleID
}

// NewModuleInfo wires a freshly parsed ast.Module into the symbol table,
// allocating its module-level scope.
func NewModuleInfo(id types.ModuleID, name source.StringID, path string, file source.FileID, tree *ast.Module, scope ScopeID) *ModuleInfo {
	return &ModuleInfo{
		ID:    id,
		Name:  name,
		Path:  path,
		File:  file,
		AST:   tree,
		Scope: scope,
	}
}
