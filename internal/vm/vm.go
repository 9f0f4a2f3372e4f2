package vm

import (
	"fmt"
	"math"

	"lumen/internal/hir"
	"lumen/internal/source"
	"lumen/internal/types"
)

// RuntimeError wraps a VM invariant violation. Every RuntimeError indicates
// mistyped or malformed bytecode — the checker is expected to prevent these
// for any program it accepted, so callers surface them as the
// diag.IsCompilerBug() diagnostic class rather than a user-facing type error.
type RuntimeError struct {
	Kind string // "stack-overflow" | "bad-operand" | "unsupported-ffi" | "frame-overflow"
	Msg  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("vm runtime error (%s): %s", e.Kind, e.Msg)
}

func badOperand(format string, args ...any) error {
	return &RuntimeError{Kind: "bad-operand", Msg: fmt.Sprintf(format, args...)}
}

const (
	maxStack  = 1 << 16
	maxFrames = 1 << 10
)

// Frame is one function activation: its local slots and the instruction
// pointer to resume at within its Chunk.
type frame struct {
	chunk  *Chunk
	ip     int
	locals []hir.Value
	base   int // stack index where this frame's operand stack begins
}

// VM executes compiled Chunks against a shared value stack and an optional
// FFI registry for OpCallExtern.
type VM struct {
	stack   []hir.Value
	globals []hir.Value
	externs *Registry
}

// New creates a VM with the given global slots (already initialized by the
// checker's constant-folding pass) and an FFI registry (nil disables extern
// calls entirely — every OpCallExtern then fails as unsupported).
func New(globals []hir.Value, externs *Registry) *VM {
	return &VM{globals: globals, externs: externs}
}

// Run executes chunk to completion and returns its final value (the operand
// left on the stack by its trailing OpReturn).
func (m *VM) Run(chunk *Chunk) (result hir.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			if re, ok := r.(*RuntimeError); ok {
				err = re
				return
			}
			err = &RuntimeError{Kind: "bad-operand", Msg: fmt.Sprintf("%v", r)}
		}
	}()

	frames := []*frame{{chunk: chunk, locals: make([]hir.Value, chunk.NumLocals)}}
	for len(frames) > 0 {
		f := frames[len(frames)-1]
		if f.ip >= len(f.chunk.Code) {
			return hir.Unit(), nil
		}
		instr := f.chunk.Code[f.ip]
		f.ip++

		switch instr.Op {
		case OpNop:
			// no-op

		case OpConst:
			m.push(f.chunk.Constants[instr.A])

		case OpLoadLocal:
			if int(instr.A) >= len(f.locals) {
				return hir.Value{}, badOperand("local slot %d out of range", instr.A)
			}
			m.push(f.locals[instr.A])

		case OpStoreLocal:
			v := m.pop()
			if int(instr.A) >= len(f.locals) {
				return hir.Value{}, badOperand("local slot %d out of range", instr.A)
			}
			f.locals[instr.A] = v

		case OpLoadGlobal:
			if int(instr.A) >= len(m.globals) {
				return hir.Value{}, badOperand("global slot %d out of range", instr.A)
			}
			m.push(m.globals[instr.A])

		case OpAdd, OpSub, OpMul, OpDiv, OpMod,
			OpEq, OpNe, OpLt, OpLe, OpGt, OpGe,
			OpAnd, OpOr, OpBitAnd, OpBitOr, OpBitXor, OpShl, OpShr:
			rhs := m.pop()
			lhs := m.pop()
			v, err := binaryOp(instr.Op, lhs, rhs)
			if err != nil {
				return hir.Value{}, err
			}
			m.push(v)

		case OpNeg, OpNot, OpBitNot:
			operand := m.pop()
			v, err := unaryOp(instr.Op, operand)
			if err != nil {
				return hir.Value{}, err
			}
			m.push(v)

		case OpJump:
			f.ip = int(instr.A)

		case OpJumpIfFalse:
			cond := m.pop()
			if cond.Kind != hir.ValueBool {
				return hir.Value{}, badOperand("jump_if_false requires a bool, got %v", cond.Kind)
			}
			if !cond.Bool {
				f.ip = int(instr.A)
			}

		case OpCall:
			callee := f.chunk.Funcs[instr.A]
			argc := int(instr.B)
			if argc > len(m.stack) {
				return hir.Value{}, badOperand("call expects %d args, stack underflow", argc)
			}
			args := append([]hir.Value(nil), m.stack[len(m.stack)-argc:]...)
			m.stack = m.stack[:len(m.stack)-argc]
			if len(frames) >= maxFrames {
				return hir.Value{}, &RuntimeError{Kind: "frame-overflow", Msg: "call depth exceeded"}
			}
			locals := make([]hir.Value, callee.NumLocals)
			copy(locals, args)
			frames = append(frames, &frame{chunk: callee, locals: locals, base: len(m.stack)})
			continue

		case OpReturn:
			var rv hir.Value
			if len(m.stack) > f.base {
				rv = m.stack[len(m.stack)-1]
				m.stack = m.stack[:f.base]
			} else {
				rv = hir.Unit()
			}
			frames = frames[:len(frames)-1]
			if len(frames) == 0 {
				return rv, nil
			}
			m.push(rv)

		case OpMakeTuple, OpMakeArray:
			n := int(instr.A)
			if n > len(m.stack) {
				return hir.Value{}, badOperand("composite of %d elements, stack underflow", n)
			}
			elems := append([]hir.Value(nil), m.stack[len(m.stack)-n:]...)
			m.stack = m.stack[:len(m.stack)-n]
			if instr.Op == OpMakeTuple {
				m.push(hir.Tuple(elems))
			} else {
				m.push(hir.Array(elems))
			}

		case OpMakeStruct:
			n := int(instr.A)
			if 2*n > len(m.stack) {
				return hir.Value{}, badOperand("struct literal of %d fields, stack underflow", n)
			}
			pairs := m.stack[len(m.stack)-2*n:]
			m.stack = m.stack[:len(m.stack)-2*n]
			names := make([]source.StringID, n)
			values := make([]hir.Value, n)
			for i := 0; i < n; i++ {
				nv, vv := pairs[2*i], pairs[2*i+1]
				if nv.Kind != hir.ValueStr {
					return hir.Value{}, badOperand("struct field name must be a str constant")
				}
				names[i] = nv.Str
				values[i] = vv
			}
			m.push(hir.Struct(names, values))

		case OpGetField:
			base := m.pop()
			if base.Kind != hir.ValueStruct {
				return hir.Value{}, badOperand("get_field requires a struct, got %v", base.Kind)
			}
			found := false
			var v hir.Value
			for i, n := range base.FieldNames {
				if n == f.chunk.Names[instr.A] {
					v = base.FieldValues[i]
					found = true
					break
				}
			}
			if !found {
				return hir.Value{}, badOperand("struct has no such field")
			}
			m.push(v)

		case OpGetIndex:
			idx := m.pop()
			base := m.pop()
			n, err := asIndex(idx)
			if err != nil {
				return hir.Value{}, err
			}
			if base.Kind != hir.ValueArray && base.Kind != hir.ValueTuple {
				return hir.Value{}, badOperand("get_index requires an array or tuple, got %v", base.Kind)
			}
			if n < 0 || n >= len(base.Elements) {
				return hir.Value{}, badOperand("index %d out of range", n)
			}
			m.push(base.Elements[n])

		case OpCast:
			operand := m.pop()
			v, err := castValue(operand, f.chunk.CastTypes[instr.A])
			if err != nil {
				return hir.Value{}, err
			}
			m.push(v)

		case OpCallExtern:
			name := f.chunk.Externs[instr.A]
			argc := int(instr.B)
			if argc > len(m.stack) {
				return hir.Value{}, badOperand("extern call expects %d args, stack underflow", argc)
			}
			args := append([]hir.Value(nil), m.stack[len(m.stack)-argc:]...)
			m.stack = m.stack[:len(m.stack)-argc]
			if m.externs == nil {
				return hir.Value{}, &RuntimeError{Kind: "unsupported-ffi", Msg: fmt.Sprintf("no FFI registry configured for %q", name)}
			}
			fn, ok := m.externs.Lookup(name)
			if !ok {
				return hir.Value{}, &RuntimeError{Kind: "unsupported-ffi", Msg: fmt.Sprintf("extern function %q is not registered", name)}
			}
			rv, callErr := fn(args)
			if callErr != nil {
				return hir.Value{}, &RuntimeError{Kind: "unsupported-ffi", Msg: callErr.Error()}
			}
			m.push(rv)

		case OpPop:
			m.pop()

		case OpDup:
			top := m.peek()
			m.push(top)

		case OpHalt:
			if len(m.stack) == 0 {
				return hir.Unit(), nil
			}
			return m.pop(), nil

		default:
			return hir.Value{}, badOperand("unknown opcode %d", instr.Op)
		}
	}
	return hir.Unit(), nil
}

func (m *VM) push(v hir.Value) {
	if len(m.stack) >= maxStack {
		panic(&RuntimeError{Kind: "stack-overflow", Msg: "operand stack exceeded capacity"})
	}
	m.stack = append(m.stack, v)
}

func (m *VM) pop() hir.Value {
	if len(m.stack) == 0 {
		panic(&RuntimeError{Kind: "bad-operand", Msg: "pop from empty stack"})
	}
	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return v
}

func (m *VM) peek() hir.Value {
	if len(m.stack) == 0 {
		panic(&RuntimeError{Kind: "bad-operand", Msg: "peek on empty stack"})
	}
	return m.stack[len(m.stack)-1]
}

func asIndex(v hir.Value) (int, error) {
	switch v.Kind {
	case hir.ValueInt:
		return int(v.Int64), nil
	case hir.ValueUint:
		return int(v.Uint64), nil
	default:
		return 0, badOperand("index must be an integer, got %v", v.Kind)
	}
}

func castValue(v hir.Value, target types.Type) (hir.Value, error) {
	switch target.Kind {
	case types.KindInt:
		switch v.Kind {
		case hir.ValueInt:
			return hir.Int(v.Int64), nil
		case hir.ValueUint:
			return hir.Int(int64(v.Uint64)), nil
		case hir.ValueFloat:
			return hir.Int(int64(v.Float)), nil
		case hir.ValueBool:
			return hir.Int(boolToInt(v.Bool)), nil
		}
	case types.KindUint:
		switch v.Kind {
		case hir.ValueInt:
			return hir.Uint(uint64(v.Int64)), nil
		case hir.ValueUint:
			return hir.Uint(v.Uint64), nil
		case hir.ValueFloat:
			return hir.Uint(uint64(v.Float)), nil
		case hir.ValueBool:
			return hir.Uint(uint64(boolToInt(v.Bool))), nil
		}
	case types.KindFloat:
		switch v.Kind {
		case hir.ValueInt:
			return hir.Float(float64(v.Int64)), nil
		case hir.ValueUint:
			return hir.Float(float64(v.Uint64)), nil
		case hir.ValueFloat:
			return hir.Float(v.Float), nil
		}
	case types.KindBool:
		switch v.Kind {
		case hir.ValueInt:
			return hir.Bool(v.Int64 != 0), nil
		case hir.ValueUint:
			return hir.Bool(v.Uint64 != 0), nil
		case hir.ValueBool:
			return v, nil
		}
	case types.KindStr, types.KindSlice, types.KindArray, types.KindPointer:
		return v, nil // representation-preserving reinterpret casts
	}
	return hir.Value{}, badOperand("unsupported cast from %v to %s", v.Kind, target.Kind)
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func binaryOp(op Opcode, lhs, rhs hir.Value) (hir.Value, error) {
	if lhs.Kind != rhs.Kind {
		return hir.Value{}, badOperand("operand kind mismatch: %v vs %v", lhs.Kind, rhs.Kind)
	}
	switch lhs.Kind {
	case hir.ValueInt:
		return intBinaryOp(op, lhs.Int64, rhs.Int64)
	case hir.ValueUint:
		return uintBinaryOp(op, lhs.Uint64, rhs.Uint64)
	case hir.ValueFloat:
		return floatBinaryOp(op, lhs.Float, rhs.Float)
	case hir.ValueBool:
		return boolBinaryOp(op, lhs.Bool, rhs.Bool)
	default:
		return hir.Value{}, badOperand("binary operator not supported for %v", lhs.Kind)
	}
}

func intBinaryOp(op Opcode, a, b int64) (hir.Value, error) {
	switch op {
	case OpAdd:
		return hir.Int(a + b), nil
	case OpSub:
		return hir.Int(a - b), nil
	case OpMul:
		return hir.Int(a * b), nil
	case OpDiv:
		if b == 0 {
			return hir.Value{}, badOperand("integer division by zero")
		}
		return hir.Int(a / b), nil
	case OpMod:
		if b == 0 {
			return hir.Value{}, badOperand("integer division by zero")
		}
		return hir.Int(a % b), nil
	case OpEq:
		return hir.Bool(a == b), nil
	case OpNe:
		return hir.Bool(a != b), nil
	case OpLt:
		return hir.Bool(a < b), nil
	case OpLe:
		return hir.Bool(a <= b), nil
	case OpGt:
		return hir.Bool(a > b), nil
	case OpGe:
		return hir.Bool(a >= b), nil
	case OpBitAnd:
		return hir.Int(a & b), nil
	case OpBitOr:
		return hir.Int(a | b), nil
	case OpBitXor:
		return hir.Int(a ^ b), nil
	case OpShl:
		return hir.Int(a << uint64(b)), nil
	case OpShr:
		return hir.Int(a >> uint64(b)), nil
	default:
		return hir.Value{}, badOperand("operator %s not valid for int", op)
	}
}

func uintBinaryOp(op Opcode, a, b uint64) (hir.Value, error) {
	switch op {
	case OpAdd:
		return hir.Uint(a + b), nil
	case OpSub:
		return hir.Uint(a - b), nil
	case OpMul:
		return hir.Uint(a * b), nil
	case OpDiv:
		if b == 0 {
			return hir.Value{}, badOperand("integer division by zero")
		}
		return hir.Uint(a / b), nil
	case OpMod:
		if b == 0 {
			return hir.Value{}, badOperand("integer division by zero")
		}
		return hir.Uint(a % b), nil
	case OpEq:
		return hir.Bool(a == b), nil
	case OpNe:
		return hir.Bool(a != b), nil
	case OpLt:
		return hir.Bool(a < b), nil
	case OpLe:
		return hir.Bool(a <= b), nil
	case OpGt:
		return hir.Bool(a > b), nil
	case OpGe:
		return hir.Bool(a >= b), nil
	case OpBitAnd:
		return hir.Uint(a & b), nil
	case OpBitOr:
		return hir.Uint(a | b), nil
	case OpBitXor:
		return hir.Uint(a ^ b), nil
	case OpShl:
		return hir.Uint(a << b), nil
	case OpShr:
		return hir.Uint(a >> b), nil
	default:
		return hir.Value{}, badOperand("operator %s not valid for uint", op)
	}
}

func floatBinaryOp(op Opcode, a, b float64) (hir.Value, error) {
	switch op {
	case OpAdd:
		return hir.Float(a + b), nil
	case OpSub:
		return hir.Float(a - b), nil
	case OpMul:
		return hir.Float(a * b), nil
	case OpDiv:
		return hir.Float(a / b), nil
	case OpMod:
		return hir.Float(math.Mod(a, b)), nil
	case OpEq:
		return hir.Bool(a == b), nil
	case OpNe:
		return hir.Bool(a != b), nil
	case OpLt:
		return hir.Bool(a < b), nil
	case OpLe:
		return hir.Bool(a <= b), nil
	case OpGt:
		return hir.Bool(a > b), nil
	case OpGe:
		return hir.Bool(a >= b), nil
	default:
		return hir.Value{}, badOperand("operator %s not valid for float", op)
	}
}

func boolBinaryOp(op Opcode, a, b bool) (hir.Value, error) {
	switch op {
	case OpAnd:
		return hir.Bool(a && b), nil
	case OpOr:
		return hir.Bool(a || b), nil
	case OpEq:
		return hir.Bool(a == b), nil
	case OpNe:
		return hir.Bool(a != b), nil
	default:
		return hir.Value{}, badOperand("operator %s not valid for bool", op)
	}
}

func unaryOp(op Opcode, v hir.Value) (hir.Value, error) {
	switch op {
	case OpNeg:
		switch v.Kind {
		case hir.ValueInt:
			return hir.Int(-v.Int64), nil
		case hir.ValueFloat:
			return hir.Float(-v.Float), nil
		default:
			return hir.Value{}, badOperand("negation requires int or float, got %v", v.Kind)
		}
	case OpNot:
		if v.Kind != hir.ValueBool {
			return hir.Value{}, badOperand("logical not requires bool, got %v", v.Kind)
		}
		return hir.Bool(!v.Bool), nil
	case OpBitNot:
		switch v.Kind {
		case hir.ValueInt:
			return hir.Int(^v.Int64), nil
		case hir.ValueUint:
			return hir.Uint(^v.Uint64), nil
		default:
			return hir.Value{}, badOperand("bitwise not requires int or uint, got %v", v.Kind)
		}
	default:
		return hir.Value{}, badOperand("opcode %s is not a unary operator", op)
	}
}
