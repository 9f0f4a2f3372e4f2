package hir

import (
	"lumen/internal/symbols"
	"lumen/internal/types"
)

// Global is a fully checked top-level let/const: its resolved type and,
// for consts, the folded compile-time Value.
type Global struct {
	Binding symbols.BindingID
	Type    types.TypeID
	Init    NodeID // NoNodeID when uninitialized (let without a value)
	Const   bool
	Value   Value // valid when Const is true
}

// Module is the lowered form of one ast.Module: every item's body has been
// type-checked and lowered to Nodes, addressed through the shared arena.
type Module struct {
	Nodes   *Nodes
	Funcs   []*Func
	Globals []*Global
}

// NewModule creates an empty lowered module.
func NewModule() *Module {
	return &Module{Nodes: NewNodes(0)}
}

func (m *Module) AddFunc(f *Func) {
	m.Funcs = append(m.Funcs, f)
}

func (m *Module) AddGlobal(g *Global) {
	m.Globals = append(m.Globals, g)
}
