package vm

import (
	"lumen/internal/hir"
	"lumen/internal/source"
	"lumen/internal/types"
)

// Chunk is one compiled unit of bytecode: a function body or a `static {}`
// block, plus the constant/side tables its instructions index into.
type Chunk struct {
	Code      []Instr
	Constants []hir.Value
	Names     []source.StringID // OpGetField / OpMakeStruct field names
	Externs   []string          // OpCallExtern target names
	CastTypes []types.Type      // OpCast targets
	Funcs     []*Chunk          // OpCall targets, indexed by A
	NumLocals int
}

// NewChunk returns an empty Chunk sized for numLocals local slots.
func NewChunk(numLocals int) *Chunk {
	return &Chunk{NumLocals: numLocals}
}

func (c *Chunk) emit(op Opcode, a, b int32) int {
	c.Code = append(c.Code, Instr{Op: op, A: a, B: b})
	return len(c.Code) - 1
}

func (c *Chunk) addConst(v hir.Value) int32 {
	c.Constants = append(c.Constants, v)
	return int32(len(c.Constants) - 1)
}

func (c *Chunk) addName(name source.StringID) int32 {
	c.Names = append(c.Names, name)
	return int32(len(c.Names) - 1)
}

func (c *Chunk) addExtern(name string) int32 {
	for i, n := range c.Externs {
		if n == name {
			return int32(i)
		}
	}
	c.Externs = append(c.Externs, name)
	return int32(len(c.Externs) - 1)
}

func (c *Chunk) addCastType(t types.Type) int32 {
	c.CastTypes = append(c.CastTypes, t)
	return int32(len(c.CastTypes) - 1)
}

func (c *Chunk) addFunc(fn *Chunk) int32 {
	c.Funcs = append(c.Funcs, fn)
	return int32(len(c.Funcs) - 1)
}

// patchJump rewrites the A operand of the jump instruction at idx to the
// current end of Code (used for forward jumps over if/else branches).
func (c *Chunk) patchJump(idx int) {
	c.Code[idx].A = int32(len(c.Code))
}
