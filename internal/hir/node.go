package hir

import (
	"lumen/internal/ast"
	"lumen/internal/source"
	"lumen/internal/symbols"
	"lumen/internal/types"
)

// NodeKind enumerates HIR expression forms. Every AST expression lowers to
// exactly one of these, with names replaced by resolved references and a
// types.TypeID attached to the node itself.
type NodeKind uint8

const (
	// NodeConst is a fully folded compile-time value (see Value).
	NodeConst NodeKind = iota
	// NodeLocalRef reads a function-local (parameter or let binding).
	NodeLocalRef
	// NodeBindingRef reads a top-level binding (global let/const/fn).
	NodeBindingRef
	NodeUnary
	NodeBinary
	NodeCall
	NodeMemberAccess
	NodeIndex
	NodeCast
	// NodeSequence is a block: evaluate each element for effect, the last
	// one's value is the sequence's value (unit if empty).
	NodeSequence
	NodeIf
	NodeStructLit
	NodeTupleLit
	NodeArrayLit
	// NodeStaticEval marks a sub-tree that must be fully evaluated by the
	// compile-time VM rather than carried to runtime (§4.8).
	NodeStaticEval
)

func (k NodeKind) String() string {
	switch k {
	case NodeConst:
		return "const"
	case NodeLocalRef:
		return "local-ref"
	case NodeBindingRef:
		return "binding-ref"
	case NodeUnary:
		return "unary"
	case NodeBinary:
		return "binary"
	case NodeCall:
		return "call"
	case NodeMemberAccess:
		return "member-access"
	case NodeIndex:
		return "index"
	case NodeCast:
		return "cast"
	case NodeSequence:
		return "sequence"
	case NodeIf:
		return "if"
	case NodeStructLit:
		return "struct-lit"
	case NodeTupleLit:
		return "tuple-lit"
	case NodeArrayLit:
		return "array-lit"
	case NodeStaticEval:
		return "static-eval"
	default:
		return "unknown"
	}
}

// BinaryOp / UnaryOp reuse ast's operator vocabulary directly: lowering
// never changes what an operator means, only how its operands are named.
type BinaryOp = ast.BinaryOp
type UnaryOp = ast.UnaryOp

// Field is one resolved `name: value` entry of a struct literal.
type Field struct {
	Name  source.StringID
	Value NodeID
}

// Node is one HIR expression, always carrying its resolved type.
type Node struct {
	Kind NodeKind
	Type types.TypeID
	Span source.Span

	// NodeConst
	Value Value

	// NodeLocalRef
	Local LocalID
	// NodeBindingRef
	Binding symbols.BindingID

	// NodeUnary / NodeCast / NodeStaticEval / NodeIndex(base)
	Operand NodeID
	UnOp    UnaryOp
	Mutable bool // NodeUnary address-of mutability

	// NodeCast: the fully resolved (ground) target type, already
	// concretized by the checker — the VM never needs a TypeContext.
	CastTarget types.Type

	// NodeBinary
	BinOp BinaryOp
	Lhs   NodeID
	Rhs   NodeID

	// NodeCall
	Callee NodeID
	Args   []NodeID

	// NodeMemberAccess: Operand is the base.
	FieldName source.StringID

	// NodeIndex: Operand is the base, Index is the subscript.
	Index NodeID

	// NodeSequence
	Elements []NodeID

	// NodeIf
	Cond NodeID
	Then NodeID
	Else NodeID

	// NodeStructLit
	StructFields []Field

	// NodeTupleLit / NodeArrayLit reuse Elements above.
}

// Nodes is the arena owning every Node in a Module.
type Nodes struct {
	data []Node
}

func NewNodes(capHint uint) *Nodes {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Nodes{data: make([]Node, 1, capHint+1)} // index 0 reserved
}

func (n *Nodes) New(node Node) NodeID {
	n.data = append(n.data, node)
	return NodeID(len(n.data) - 1)
}

func (n *Nodes) Get(id NodeID) (*Node, bool) {
	if !id.IsValid() || int(id) >= len(n.data) {
		return nil, false
	}
	return &n.data[id], true
}

func (n *Nodes) MustGet(id NodeID) *Node {
	node, ok := n.Get(id)
	if !ok {
		panic("hir: invalid NodeID")
	}
	return node
}
