package hir

import (
	"lumen/internal/source"
	"lumen/internal/types"
)

// LocalSlot describes one function-local (parameter or let-bound local) by
// its position in the frame the VM allocates when calling the function.
type LocalSlot struct {
	Name source.StringID
	Type types.TypeID
}

// Func is a fully checked function: its resolved signature and lowered body.
type Func struct {
	ID     FuncID
	Name   source.StringID
	Locals []LocalSlot // index 0..len(Params)-1 are parameters
	Params int         // number of leading Locals that are parameters
	Return types.TypeID
	Body   NodeID
	Span   source.Span
}
