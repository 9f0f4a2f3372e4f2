// Package vm implements the compile-time bytecode machine: a stack-based
// interpreter used both to run `static {}` blocks and to fold constant
// expressions the checker encounters along the way (§4.8).
package vm

// Opcode enumerates the bytecode machine's instruction set. Operands are
// carried inline on the Instr rather than as a following byte stream — an
// array-of-structs encoding, not a packed byte encoding, which keeps the
// compiler and interpreter straightforward without sacrificing the
// stack-machine execution model §4.8 calls for.
type Opcode uint8

const (
	OpNop Opcode = iota

	// Constants and locals/globals.
	OpConst      // push Chunk.Constants[A]
	OpLoadLocal  // push Frame.Locals[A]
	OpStoreLocal // Frame.Locals[A] = pop()
	OpLoadGlobal // push Globals[A]

	// Arithmetic / comparison / logical (operate on the top one or two
	// stack slots, signedness and width taken from the static types the
	// checker already verified).
	OpAdd
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
	OpNeg
	OpNot
	OpBitNot

	// Control flow.
	OpJump        // ip = A
	OpJumpIfFalse // if !pop().Bool { ip = A }

	// Calls.
	OpCall       // call Chunk.Funcs[A] with top B stack values as args
	OpCallExtern // dispatch to the FFI registry entry named Chunk.Externs[A]
	OpReturn

	// Composite construction and access.
	OpMakeTuple  // pop A values, push Tuple
	OpMakeArray  // pop A values, push Array
	OpMakeStruct // pop A (name,value) pairs, push Struct
	OpGetField   // pop struct, push named field (Chunk.Names[A])
	OpGetIndex   // pop index, pop array/tuple, push element

	OpCast // reinterpret top-of-stack per Chunk.CastTypes[A]

	OpPop
	OpDup
	OpHalt
)

func (op Opcode) String() string {
	switch op {
	case OpNop:
		return "nop"
	case OpConst:
		return "const"
	case OpLoadLocal:
		return "load_local"
	case OpStoreLocal:
		return "store_local"
	case OpLoadGlobal:
		return "load_global"
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	case OpMod:
		return "mod"
	case OpEq:
		return "eq"
	case OpNe:
		return "ne"
	case OpLt:
		return "lt"
	case OpLe:
		return "le"
	case OpGt:
		return "gt"
	case OpGe:
		return "ge"
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpBitAnd:
		return "bit_and"
	case OpBitOr:
		return "bit_or"
	case OpBitXor:
		return "bit_xor"
	case OpShl:
		return "shl"
	case OpShr:
		return "shr"
	case OpNeg:
		return "neg"
	case OpNot:
		return "not"
	case OpBitNot:
		return "bit_not"
	case OpJump:
		return "jump"
	case OpJumpIfFalse:
		return "jump_if_false"
	case OpCall:
		return "call"
	case OpCallExtern:
		return "call_extern"
	case OpReturn:
		return "return"
	case OpMakeTuple:
		return "make_tuple"
	case OpMakeArray:
		return "make_array"
	case OpMakeStruct:
		return "make_struct"
	case OpGetField:
		return "get_field"
	case OpGetIndex:
		return "get_index"
	case OpCast:
		return "cast"
	case OpPop:
		return "pop"
	case OpDup:
		return "dup"
	case OpHalt:
		return "halt"
	default:
		return "unknown"
	}
}

// Instr is one bytecode instruction. A and B are general-purpose operands
// (constant/local/global index, jump target, arity) whose meaning depends
// on Op.
type Instr struct {
	Op Opcode
	A  int32
	B  int32
}
