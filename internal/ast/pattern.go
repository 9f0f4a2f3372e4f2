package ast

import "lumen/internal/source"

// PatternKind enumerates the binder-pattern shapes a `let`/`const`/function
// parameter may use for destructuring (§4.6).
type PatternKind uint8

const (
	// PatternName binds the whole value to a single identifier.
	PatternName PatternKind = iota
	// PatternWildcard discards the value (`_`).
	PatternWildcard
	// PatternTupleUnpack destructures a tuple positionally: `(a, b, c)`.
	PatternTupleUnpack
	// PatternStructUnpack destructures a struct by field name: `{x, y: q}`.
	PatternStructUnpack
	// PatternHybrid binds the whole value to a name AND destructures it,
	// e.g. `whole @ (a, b)`.
	PatternHybrid
)

func (k PatternKind) String() string {
	switch k {
	case PatternName:
		return "name"
	case PatternWildcard:
		return "wildcard"
	case PatternTupleUnpack:
		return "tuple-unpack"
	case PatternStructUnpack:
		return "struct-unpack"
	case PatternHybrid:
		return "hybrid"
	default:
		return "unknown"
	}
}

// PatternField is one `name` or `name: alias` binder inside a struct-unpack
// pattern.
type PatternField struct {
	FieldName source.StringID // the struct field being matched
	BindAs    PatternID       // sub-pattern bound to that field's value
	Span      source.Span
}

// Pattern is one node of a (possibly nested) binder pattern tree.
type Pattern struct {
	Kind PatternKind
	Span source.Span

	// PatternName / PatternHybrid
	Name source.StringID

	// PatternTupleUnpack
	Elements []PatternID

	// PatternStructUnpack
	Fields []PatternFieldID

	// PatternHybrid: the sub-pattern destructured alongside Name.
	Inner PatternID
}

// Patterns owns every Pattern/PatternField allocated for a module.
type Patterns struct {
	Arena  *Arena[Pattern]
	Fields *Arena[PatternField]
}

// NewPatterns creates a Patterns store with arenas sized to capHint.
func NewPatterns(capHint uint) *Patterns {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Patterns{
		Arena:  NewArena[Pattern](capHint),
		Fields: NewArena[PatternField](capHint),
	}
}

func (p *Patterns) Get(id PatternID) (*Pattern, bool) {
	n := p.Arena.Get(uint32(id))
	return n, n != nil
}

func (p *Patterns) Field(id PatternFieldID) (*PatternField, bool) {
	f := p.Fields.Get(uint32(id))
	return f, f != nil
}

func (p *Patterns) NewName(name source.StringID, span source.Span) PatternID {
	return PatternID(p.Arena.Allocate(Pattern{Kind: PatternName, Name: name, Span: span}))
}

func (p *Patterns) NewWildcard(span source.Span) PatternID {
	return PatternID(p.Arena.Allocate(Pattern{Kind: PatternWildcard, Span: span}))
}

func (p *Patterns) NewTupleUnpack(elems []PatternID, span source.Span) PatternID {
	return PatternID(p.Arena.Allocate(Pattern{Kind: PatternTupleUnpack, Elements: elems, Span: span}))
}

func (p *Patterns) NewStructUnpack(fields []PatternFieldID, span source.Span) PatternID {
	return PatternID(p.Arena.Allocate(Pattern{Kind: PatternStructUnpack, Fields: fields, Span: span}))
}

func (p *Patterns) NewHybrid(name source.StringID, inner PatternID, span source.Span) PatternID {
	return PatternID(p.Arena.Allocate(Pattern{Kind: PatternHybrid, Name: name, Inner: inner, Span: span}))
}

func (p *Patterns) NewField(fieldName source.StringID, bindAs PatternID, span source.Span) PatternFieldID {
	return PatternFieldID(p.Fields.Allocate(PatternField{FieldName: fieldName, BindAs: bindAs, Span: span}))
}
