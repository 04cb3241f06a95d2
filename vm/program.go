package vm

import (
	"fmt"
	"strings"

	"github.com/viur-framework/logics/types"
)

// Instruction is one compiled bytecode step. A and S are the two operand
// slots every opcode needs at most one of: A is a jump target / item
// count / constant index, S is a name (variable, attribute, function, or
// the comparison-link operator it applies).
//
// Grounded on the teacher's packed-byte `vm/program.go` Program.Code, but
// kept as a typed instruction slice rather than a raw byte stream — this
// Language's bytecode has no fixed-width operand encoding to pack,
// having no object/verb IDs, and a typed slice keeps the compiler and VM
// straightforward to read side by side.
type Instruction struct {
	Op OpCode
	A  int
	S  string
}

// Program is a compiled, flat bytecode sequence plus its constant pool.
type Program struct {
	Code      []Instruction
	Constants []types.Value
}

// addConst appends v to the constant pool and returns its index.
func (p *Program) addConst(v types.Value) int {
	p.Constants = append(p.Constants, v)
	return len(p.Constants) - 1
}

// emit appends an instruction and returns its index (useful for
// backpatching a forward jump's A operand once the target is known).
func (p *Program) emit(instr Instruction) int {
	p.Code = append(p.Code, instr)
	return len(p.Code) - 1
}

// here returns the index the next emitted instruction will occupy.
func (p *Program) here() int {
	return len(p.Code)
}

// Disassemble renders the program as human-readable text — grounded on
// the teacher's opcode-name debug printing convention in `vm/opcodes.go`.
func (p *Program) Disassemble() string {
	var b strings.Builder
	for i, instr := range p.Code {
		fmt.Fprintf(&b, "%4d  %-14s", i, instr.Op)
		if instr.S != "" {
			fmt.Fprintf(&b, " %q", instr.S)
		}
		switch instr.Op {
		case OpPushConst:
			fmt.Fprintf(&b, " const[%d]=%s", instr.A, p.Constants[instr.A].String())
		case OpJump, OpJumpIfFalse, OpJumpIfTrue, OpCmpLink, OpIterNext, OpIterSkip:
			fmt.Fprintf(&b, " -> %d", instr.A)
		case OpMakeList, OpConcat, OpCall:
			fmt.Fprintf(&b, " n=%d", instr.A)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
