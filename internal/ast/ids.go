package ast

type (
	// ItemID identifies a top-level item within a single Module.
	ItemID uint32
	// PatternID identifies a binding pattern.
	PatternID uint32
	// PatternFieldID identifies one field of a struct-unpack pattern.
	PatternFieldID uint32
	// ExprID identifies an expression.
	ExprID uint32
	// ExprFieldID identifies one field of a struct-literal expression.
	ExprFieldID uint32
	// TypeExprID identifies a syntactic type expression.
	TypeExprID uint32
	// ParamID identifies a function parameter.
	ParamID uint32
	// FieldID identifies a struct-type field declaration.
	FieldID uint32
	// ExternMemberID identifies one declaration inside an extern block.
	ExternMemberID uint32
)

const (
	NoItemID         ItemID         = 0
	NoPatternID      PatternID      = 0
	NoPatternFieldID PatternFieldID = 0
	NoExprID         ExprID         = 0
	NoExprFieldID    ExprFieldID    = 0
	NoTypeExprID     TypeExprID     = 0
	NoParamID        ParamID        = 0
	NoFieldID        FieldID        = 0
	NoExternMemberID ExternMemberID = 0
)

func (id ItemID) IsValid() bool         { return id != NoItemID }
func (id PatternID) IsValid() bool      { return id != NoPatternID }
func (id PatternFieldID) IsValid() bool { return id != NoPatternFieldID }
func (id ExprID) IsValid() bool         { return id != NoExprID }
func (id ExprFieldID) IsValid() bool    { return id != NoExprFieldID }
func (id TypeExprID) IsValid() bool     { return id != NoTypeExprID }
func (id ParamID) IsValid() bool        { return id != NoParamID }
func (id FieldID) IsValid() bool        { return id != NoFieldID }
func (id ExternMemberID) IsValid() bool { return id != NoExternMemberID }
