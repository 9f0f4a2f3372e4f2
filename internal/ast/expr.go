package ast

import "lumen/internal/source"

// ExprKind enumerates the syntactic expression forms the checker consumes.
// Parsing is out of scope; callers construct these nodes directly (e.g.
// from a TOML fixture or an embedding tool) via the Exprs builder methods.
type ExprKind uint8

const (
	ExprIntLit ExprKind = iota
	ExprFloatLit
	ExprBoolLit
	ExprStrLit
	ExprIdent
	ExprBinary
	ExprUnary
	ExprCall
	ExprMemberAccess
	ExprIndex
	ExprCast
	ExprBlock
	ExprIf
	ExprStaticEval
	ExprStructLit
	ExprTupleLit
	ExprArrayLit
)

func (k ExprKind) String() string {
	switch k {
	case ExprIntLit:
		return "int-lit"
	case ExprFloatLit:
		return "float-lit"
	case ExprBoolLit:
		return "bool-lit"
	case ExprStrLit:
		return "str-lit"
	case ExprIdent:
		return "ident"
	case ExprBinary:
		return "binary"
	case ExprUnary:
		return "unary"
	case ExprCall:
		return "call"
	case ExprMemberAccess:
		return "member-access"
	case ExprIndex:
		return "index"
	case ExprCast:
		return "cast"
	case ExprBlock:
		return "block"
	case ExprIf:
		return "if"
	case ExprStaticEval:
		return "static-eval"
	case ExprStructLit:
		return "struct-lit"
	case ExprTupleLit:
		return "tuple-lit"
	case ExprArrayLit:
		return "array-lit"
	default:
		return "unknown"
	}
}

// BinaryOp enumerates the binary operators the checker type-checks and the
// VM can execute during constant folding.
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
)

// UnaryOp enumerates the unary operators.
type UnaryOp uint8

const (
	OpNeg UnaryOp = iota
	OpNot
	OpBitNot
	OpAddr // &expr / &mut expr, see Expr.Mutable
	OpDeref
)

// ExprField is one `name: value` pair inside a struct literal.
type ExprField struct {
	Name  source.StringID
	Value ExprID
	Span  source.Span
}

// Expr is one node of an expression tree, addressed by ExprID.
type Expr struct {
	Kind ExprKind
	Span source.Span

	// ExprIntLit
	IntValue uint64
	// ExprFloatLit
	FloatValue float64
	// ExprBoolLit
	BoolValue bool
	// ExprStrLit
	StrValue source.StringID

	// ExprIdent
	Name QualifiedName

	// ExprBinary
	BinOp BinaryOp
	Lhs   ExprID
	Rhs   ExprID

	// ExprUnary
	UnOp    UnaryOp
	Operand ExprID
	Mutable bool // ExprUnary(OpAddr): &mut vs &

	// ExprCall
	Callee ExprID
	Args   []ExprID

	// ExprMemberAccess
	Base  ExprID
	Field source.StringID

	// ExprIndex: Base already set above; Index is the subscript expr.
	Index ExprID

	// ExprCast: Operand already set above.
	Target TypeExprID

	// ExprBlock: a sequence of expressions evaluated for effect; the last
	// entry's value is the block's value (unit if empty).
	Stmts []ExprID

	// ExprIf
	Cond ExprID
	Then ExprID
	Else ExprID // NoExprID when there is no else branch

	// ExprStaticEval: Operand (above) holds the wrapped block, evaluated by
	// the compile-time VM instead of carried to runtime.
	// ExprStructLit
	StructName QualifiedName
	Fields     []ExprFieldID

	// ExprTupleLit / ExprArrayLit
	Elements []ExprID
}

// Exprs owns every Expr/ExprField allocated for a module.
type Exprs struct {
	Arena  *Arena[Expr]
	Fields *Arena[ExprField]
}

func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:  NewArena[Expr](capHint),
		Fields: NewArena[ExprField](capHint),
	}
}

func (e *Exprs) Get(id ExprID) (*Expr, bool) {
	n := e.Arena.Get(uint32(id))
	return n, n != nil
}

func (e *Exprs) Field(id ExprFieldID) (*ExprField, bool) {
	f := e.Fields.Get(uint32(id))
	return f, f != nil
}

func (e *Exprs) NewIntLit(v uint64, span source.Span) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: ExprIntLit, IntValue: v, Span: span}))
}

func (e *Exprs) NewFloatLit(v float64, span source.Span) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: ExprFloatLit, FloatValue: v, Span: span}))
}

func (e *Exprs) NewBoolLit(v bool, span source.Span) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: ExprBoolLit, BoolValue: v, Span: span}))
}

func (e *Exprs) NewStrLit(v source.StringID, span source.Span) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: ExprStrLit, StrValue: v, Span: span}))
}

func (e *Exprs) NewIdent(name QualifiedName, span source.Span) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: ExprIdent, Name: name, Span: span}))
}

func (e *Exprs) NewBinary(op BinaryOp, lhs, rhs ExprID, span source.Span) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: ExprBinary, BinOp: op, Lhs: lhs, Rhs: rhs, Span: span}))
}

func (e *Exprs) NewUnary(op UnaryOp, operand ExprID, mutable bool, span source.Span) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: ExprUnary, UnOp: op, Operand: operand, Mutable: mutable, Span: span}))
}

func (e *Exprs) NewCall(callee ExprID, args []ExprID, span source.Span) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: ExprCall, Callee: callee, Args: args, Span: span}))
}

func (e *Exprs) NewMemberAccess(base ExprID, field source.StringID, span source.Span) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: ExprMemberAccess, Base: base, Field: field, Span: span}))
}

func (e *Exprs) NewIndex(base, index ExprID, span source.Span) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: ExprIndex, Base: base, Index: index, Span: span}))
}

func (e *Exprs) NewCast(operand ExprID, target TypeExprID, span source.Span) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: ExprCast, Operand: operand, Target: target, Span: span}))
}

func (e *Exprs) NewBlock(stmts []ExprID, span source.Span) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: ExprBlock, Stmts: stmts, Span: span}))
}

func (e *Exprs) NewIf(cond, then, els ExprID, span source.Span) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: ExprIf, Cond: cond, Then: then, Else: els, Span: span}))
}

func (e *Exprs) NewStaticEval(body ExprID, span source.Span) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: ExprStaticEval, Operand: body, Span: span}))
}

func (e *Exprs) NewStructLit(name QualifiedName, fields []ExprFieldID, span source.Span) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: ExprStructLit, StructName: name, Fields: fields, Span: span}))
}

func (e *Exprs) NewTupleLit(elems []ExprID, span source.Span) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: ExprTupleLit, Elements: elems, Span: span}))
}

func (e *Exprs) NewArrayLit(elems []ExprID, span source.Span) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: ExprArrayLit, Elements: elems, Span: span}))
}

func (e *Exprs) NewField(name source.StringID, value ExprID, span source.Span) ExprFieldID {
	return ExprFieldID(e.Fields.Allocate(ExprField{Name: name, Value: value, Span: span}))
}
