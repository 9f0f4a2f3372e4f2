package vm

import (
	"testing"

	"lumen/internal/hir"
)

func runChunk(t *testing.T, c *Chunk) hir.Value {
	t.Helper()
	m := New(nil, nil)
	v, err := m.Run(c)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	return v
}

func TestRunSimpleArithmetic(t *testing.T) {
	// 2 + 3 * 4 => push const 2, const 3, const 4, mul, add, return
	c := NewChunk(0)
	c.emit(OpConst, c.addConst(hir.Int(2)), 0)
	c.emit(OpConst, c.addConst(hir.Int(3)), 0)
	c.emit(OpConst, c.addConst(hir.Int(4)), 0)
	c.emit(OpMul, 0, 0)
	c.emit(OpAdd, 0, 0)
	c.emit(OpReturn, 0, 0)

	got := runChunk(t, c)
	if got.Kind != hir.ValueInt || got.Int64 != 14 {
		t.Fatalf("expected 14, got %+v", got)
	}
}

func TestRunDivisionByZeroIsRuntimeError(t *testing.T) {
	c := NewChunk(0)
	c.emit(OpConst, c.addConst(hir.Int(1)), 0)
	c.emit(OpConst, c.addConst(hir.Int(0)), 0)
	c.emit(OpDiv, 0, 0)
	c.emit(OpReturn, 0, 0)

	m := New(nil, nil)
	_, err := m.Run(c)
	if err == nil {
		t.Fatal("expected division by zero to produce a runtime error")
	}
}

func TestRunIfElse(t *testing.T) {
	c := NewChunk(0)
	c.emit(OpConst, c.addConst(hir.Bool(false)), 0)
	jumpElse := c.emit(OpJumpIfFalse, 0, 0)
	c.emit(OpConst, c.addConst(hir.Int(1)), 0)
	jumpEnd := c.emit(OpJump, 0, 0)
	c.patchJump(jumpElse)
	c.emit(OpConst, c.addConst(hir.Int(2)), 0)
	c.patchJump(jumpEnd)
	c.emit(OpReturn, 0, 0)

	got := runChunk(t, c)
	if got.Kind != hir.ValueInt || got.Int64 != 2 {
		t.Fatalf("expected else branch value 2, got %+v", got)
	}
}

func TestRunCallExternUnregisteredFails(t *testing.T) {
	c := NewChunk(0)
	c.emit(OpCallExtern, c.addExtern("missing_fn"), 0)
	c.emit(OpReturn, 0, 0)

	m := New(nil, NewRegistry())
	_, err := m.Run(c)
	if err == nil {
		t.Fatal("expected unregistered extern call to fail")
	}
}

func TestRunCallExternRegistered(t *testing.T) {
	reg := NewRegistry()
	reg.Register("double", func(args []hir.Value) (hir.Value, error) {
		return hir.Int(args[0].Int64 * 2), nil
	})

	c := NewChunk(0)
	c.emit(OpConst, c.addConst(hir.Int(21)), 0)
	c.emit(OpCallExtern, c.addExtern("double"), 1)
	c.emit(OpReturn, 0, 0)

	m := New(nil, reg)
	got, err := m.Run(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Kind != hir.ValueInt || got.Int64 != 42 {
		t.Fatalf("expected 42, got %+v", got)
	}
}

func TestRunStackUnderflowIsRuntimeError(t *testing.T) {
	c := NewChunk(0)
	c.emit(OpPop, 0, 0)
	c.emit(OpReturn, 0, 0)

	m := New(nil, nil)
	_, err := m.Run(c)
	if err == nil {
		t.Fatal("expected pop on empty stack to produce a runtime error")
	}
}
