// Package hir is the typed intermediate representation produced by the
// checker: every node carries a resolved types.TypeID, and names have been
// replaced by symbols.BindingID references. It is also the form the
// compile-time VM executes, whether for a `static {}` block or for constant
// folding during type checking.
package hir

// NodeID identifies one HIR expression node within a Module's node arena.
type NodeID uint32

// NoNodeID marks the absence of a node.
const NoNodeID NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNodeID }

// FuncID identifies a lowered function within a Module.
type FuncID uint32

const NoFuncID FuncID = 0

func (id FuncID) IsValid() bool { return id != NoFuncID }

// LocalID identifies a function-local slot (parameter or let-bound local),
// addressed positionally by the VM's frame.
type LocalID uint32

const NoLocalID LocalID = 0

func (id LocalID) IsValid() bool { return id != NoLocalID }
