package symbols

// BindingID identifies a binding (top-level or local) inside a Workspace's
// binding arena.
type BindingID uint32

// NoBindingID marks the absence of a binding reference.
const NoBindingID BindingID = 0

func (id BindingID) IsValid() bool { return id != NoBindingID }

// ScopeID identifies a lexical scope inside a Workspace's scope arena.
type ScopeID uint32

// NoScopeID marks the absence of a scope reference (e.g. a module's root).
const NoScopeID ScopeID = 0

func (id ScopeID) IsValid() bool { return id != NoScopeID }
