package vm

import (
	"fmt"

	"lumen/internal/ast"
	"lumen/internal/hir"
	"lumen/internal/symbols"
)

// CompileContext carries the cross-references a compiler needs beyond the
// single node tree it is flattening: where a top-level binding's value
// lives (a global slot, or another function's compiled Chunk).
type CompileContext struct {
	Nodes   *hir.Nodes
	Globals map[symbols.BindingID]int32
	Funcs   map[symbols.BindingID]*Chunk
}

// Compile flattens body (and everything it references) into a Chunk ready
// for Run. numLocals is the function/block's local-slot count (0 for a
// `static {}` block with no parameters).
func Compile(ctx *CompileContext, body hir.NodeID, numLocals int) (*Chunk, error) {
	c := NewChunk(numLocals)
	if err := compileNode(ctx, c, body); err != nil {
		return nil, err
	}
	c.emit(OpReturn, 0, 0)
	return c, nil
}

func compileNode(ctx *CompileContext, c *Chunk, id hir.NodeID) error {
	if !id.IsValid() {
		c.emit(OpConst, c.addConst(hir.Unit()), 0)
		return nil
	}
	node := ctx.Nodes.MustGet(id)

	switch node.Kind {
	case hir.NodeConst:
		c.emit(OpConst, c.addConst(node.Value), 0)

	case hir.NodeLocalRef:
		c.emit(OpLoadLocal, int32(node.Local), 0)

	case hir.NodeBindingRef:
		idx, ok := ctx.Globals[node.Binding]
		if !ok {
			return fmt.Errorf("vm: compile: unresolved global binding %d", node.Binding)
		}
		c.emit(OpLoadGlobal, idx, 0)

	case hir.NodeUnary:
		if err := compileNode(ctx, c, node.Operand); err != nil {
			return err
		}
		op, err := unaryOpcode(node.UnOp)
		if err != nil {
			return err
		}
		c.emit(op, 0, 0)

	case hir.NodeBinary:
		if err := compileNode(ctx, c, node.Lhs); err != nil {
			return err
		}
		if err := compileNode(ctx, c, node.Rhs); err != nil {
			return err
		}
		op, err := binaryOpcode(node.BinOp)
		if err != nil {
			return err
		}
		c.emit(op, 0, 0)

	case hir.NodeCall:
		for _, arg := range node.Args {
			if err := compileNode(ctx, c, arg); err != nil {
				return err
			}
		}
		callee := ctx.Nodes.MustGet(node.Callee)
		if callee.Kind != hir.NodeBindingRef {
			return fmt.Errorf("vm: compile: indirect calls are not supported by the compile-time VM")
		}
		fn, ok := ctx.Funcs[callee.Binding]
		if !ok {
			return fmt.Errorf("vm: compile: unresolved call target %d", callee.Binding)
		}
		c.emit(OpCall, c.addFunc(fn), int32(len(node.Args)))

	case hir.NodeMemberAccess:
		if err := compileNode(ctx, c, node.Operand); err != nil {
			return err
		}
		c.emit(OpGetField, c.addName(node.FieldName), 0)

	case hir.NodeIndex:
		if err := compileNode(ctx, c, node.Operand); err != nil {
			return err
		}
		if err := compileNode(ctx, c, node.Index); err != nil {
			return err
		}
		c.emit(OpGetIndex, 0, 0)

	case hir.NodeCast:
		if err := compileNode(ctx, c, node.Operand); err != nil {
			return err
		}
		c.emit(OpCast, c.addCastType(node.CastTarget), 0)

	case hir.NodeSequence:
		if len(node.Elements) == 0 {
			c.emit(OpConst, c.addConst(hir.Unit()), 0)
			break
		}
		for i, elem := range node.Elements {
			if err := compileNode(ctx, c, elem); err != nil {
				return err
			}
			if i != len(node.Elements)-1 {
				c.emit(OpPop, 0, 0)
			}
		}

	case hir.NodeIf:
		if err := compileNode(ctx, c, node.Cond); err != nil {
			return err
		}
		jumpElse := c.emit(OpJumpIfFalse, 0, 0)
		if err := compileNode(ctx, c, node.Then); err != nil {
			return err
		}
		jumpEnd := c.emit(OpJump, 0, 0)
		c.patchJump(jumpElse)
		if node.Else.IsValid() {
			if err := compileNode(ctx, c, node.Else); err != nil {
				return err
			}
		} else {
			c.emit(OpConst, c.addConst(hir.Unit()), 0)
		}
		c.patchJump(jumpEnd)

	case hir.NodeStructLit:
		for _, f := range node.StructFields {
			c.emit(OpConst, c.addConst(hir.Str(f.Name)), 0)
			if err := compileNode(ctx, c, f.Value); err != nil {
				return err
			}
		}
		c.emit(OpMakeStruct, int32(len(node.StructFields)), 0)

	case hir.NodeTupleLit:
		for _, e := range node.Elements {
			if err := compileNode(ctx, c, e); err != nil {
				return err
			}
		}
		c.emit(OpMakeTuple, int32(len(node.Elements)), 0)

	case hir.NodeArrayLit:
		for _, e := range node.Elements {
			if err := compileNode(ctx, c, e); err != nil {
				return err
			}
		}
		c.emit(OpMakeArray, int32(len(node.Elements)), 0)

	case hir.NodeStaticEval:
		return compileNode(ctx, c, node.Operand)

	default:
		return fmt.Errorf("vm: compile: unhandled node kind %s", node.Kind)
	}
	return nil
}

func binaryOpcode(op ast.BinaryOp) (Opcode, error) {
	switch op {
	case ast.OpAdd:
		return OpAdd, nil
	case ast.OpSub:
		return OpSub, nil
	case ast.OpMul:
		return OpMul, nil
	case ast.OpDiv:
		return OpDiv, nil
	case ast.OpMod:
		return OpMod, nil
	case ast.OpEq:
		return OpEq, nil
	case ast.OpNe:
		return OpNe, nil
	case ast.OpLt:
		return OpLt, nil
	case ast.OpLe:
		return OpLe, nil
	case ast.OpGt:
		return OpGt, nil
	case ast.OpGe:
		return OpGe, nil
	case ast.OpAnd:
		return OpAnd, nil
	case ast.OpOr:
		return OpOr, nil
	case ast.OpBitAnd:
		return OpBitAnd, nil
	case ast.OpBitOr:
		return OpBitOr, nil
	case ast.OpBitXor:
		return OpBitXor, nil
	case ast.OpShl:
		return OpShl, nil
	case ast.OpShr:
		return OpShr, nil
	default:
		return OpNop, fmt.Errorf("vm: compile: unknown binary operator %d", op)
	}
}

func unaryOpcode(op ast.UnaryOp) (Opcode, error) {
	switch op {
	case ast.OpNeg:
		return OpNeg, nil
	case ast.OpNot:
		return OpNot, nil
	case ast.OpBitNot:
		return OpBitNot, nil
	default:
		return OpNop, fmt.Errorf("vm: compile: unary operator %d has no compile-time effect", op)
	}
}
