package vm

import "lumen/internal/hir"

// ExternFunc is a host-provided implementation of one `extern` declaration.
// Its argument and return Values have already been checked against the
// extern signature the checker validated; ExternFunc only needs to do the
// actual foreign call (or, in tests, simulate one).
type ExternFunc func(args []hir.Value) (hir.Value, error)

// Registry binds extern function names (as declared in an `extern "lib" {
// ... }` block, see ast.ExternItem) to host implementations.
//
// No dynamic-library-loading mechanism (dlopen/dlsym plus a libffi-style
// calling-convention trampoline) ships here: doing that safely in Go
// requires either cgo (an external C toolchain, unavailable to this build)
// or a purpose-built FFI library, and no such library appears anywhere in
// the example corpus this module was grounded on. Embedding programs that
// need real foreign calls register ExternFuncs that perform them (e.g. via
// their own cgo shim); the VM itself only dispatches by name.
type Registry struct {
	fns map[string]ExternFunc
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{fns: make(map[string]ExternFunc)}
}

// Register binds name to fn, replacing any previous binding.
func (r *Registry) Register(name string, fn ExternFunc) {
	r.fns[name] = fn
}

// Lookup returns the implementation bound to name, if any.
func (r *Registry) Lookup(name string) (ExternFunc, bool) {
	fn, ok := r.fns[name]
	return fn, ok
}
