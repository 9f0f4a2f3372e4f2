package symbols

import (
	"fmt"

	"lumen/internal/ast"
	"lumen/internal/source"
	"lumen/internal/types"
)

// Workspace is the whole-program symbol table: every loaded module, every
// binding (top-level and local) it declares, and the scope chains that
// resolve identifier references to them. It is the shared state the
// top-level resolver (internal/sema) mutates while walking the module
// dependency graph.
type Workspace struct {
	Strings *source.Interner

	modules   []*ModuleInfo
	byPath    map[string]types.ModuleID
	Bindings  *Bindings
	Scopes    *Scopes
}

// NewWorkspace creates an empty Workspace sharing strs for all name lookups.
func NewWorkspace(strs *source.Interner) *Workspace {
	return &Workspace{
		Strings:  strs,
		modules:  make([]*ModuleInfo, 1), // index 0 reserved so ModuleID 0 is invalid
		byPath:   make(map[string]types.ModuleID),
		Bindings: NewBindings(256),
		Scopes:   NewScopes(64),
	}
}

// AddModule registers tree under path, allocates its module-level scope,
// and returns the new ModuleInfo. Re-adding the same path panics: callers
// are expected to check Lookup first.
func (w *Workspace) AddModule(name source.StringID, path string, file source.FileID, tree *ast.Module) *ModuleInfo {
	if _, exists := w.byPath[path]; exists {
		panic(fmt.Sprintf("symbols: module %q already registered", path))
	}
	id, err := safeModuleID(len(w.modules))
	if err != nil {
		panic(err)
	}
	scope := w.Scopes.New(LevelModule, NoScopeID, uint32(id))
	info := NewModuleInfo(id, name, path, file, tree, scope)
	w.modules = append(w.modules, info)
	w.byPath[path] = id
	return info
}

func safeModuleID(n int) (types.ModuleID, error) {
	if n < 0 {
		return 0, fmt.Errorf("negative module index")
	}
	return types.ModuleID(n), nil
}

// Module returns the ModuleInfo for id, or nil if id is out of range.
func (w *Workspace) Module(id types.ModuleID) *ModuleInfo {
	if int(id) <= 0 || int(id) >= len(w.modules) {
		return nil
	}
	return w.modules[id]
}

// Lookup finds a previously registered module by its import path.
func (w *Workspace) Lookup(path string) (*ModuleInfo, bool) {
	id, ok := w.byPath[path]
	if !ok {
		return nil, false
	}
	return w.Module(id), true
}

// Modules returns every registered module in registration order (index 0
// is always nil and is skipped).
func (w *Workspace) Modules() []*ModuleInfo {
	return w.modules[1:]
}
