package ast

import "lumen/internal/source"

// Module is one compiled source file's worth of already-parsed syntax: a
// flat, arena-backed forest of items, patterns, expressions and type
// expressions, addressed by the ID types in this package.
type Module struct {
	File  source.FileID
	Name  source.StringID // module's own name, used to build qualified paths
	Items []ItemID         // top-level declarations, in source order

	ItemData  *Items
	Patterns  *Patterns
	Exprs     *Exprs
	TypeExprs *TypeExprs

	Span source.Span
}

// NewModule creates an empty Module backed by freshly allocated arenas.
func NewModule(file source.FileID, name source.StringID, span source.Span) *Module {
	return &Module{
		File:      file,
		Name:      name,
		ItemData:  NewItems(0),
		Patterns:  NewPatterns(0),
		Exprs:     NewExprs(0),
		TypeExprs: NewTypeExprs(0),
		Span:      span,
	}
}

// AddItem appends id to the module's top-level item list.
func (m *Module) AddItem(id ItemID) {
	m.Items = append(m.Items, id)
}
