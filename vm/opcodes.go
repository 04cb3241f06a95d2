// Package vm implements an optional alternate evaluator backend: a
// compiler from the same parser.Node tree eval.Evaluator walks down to a
// flat bytecode Program, and a small stack machine that runs it. It is
// not wired into any CLI path by default — eval.Evaluator remains the
// primary, polished interpreter — but produces identical results for
// any Logics expression, per spec.md §1's "alternate evaluator backend
// that emits target code from the same AST is an allowed extension."
//
// Grounded on the teacher's `vm/opcodes.go`/`vm/vm.go`/`vm/compiler.go`
// (OpCode-byte enum, Program{Code,Constants}, stack-machine Run loop),
// trimmed to the Language's closed emit set: no object/verb/property
// opcodes, no exception handlers, no fork/task scheduling — this
// Language has none of those concepts.
package vm

// OpCode identifies one bytecode instruction. Grounded on the teacher's
// `vm/opcodes.go` OpCode-byte-enum shape, re-scoped to the emits
// eval.Evaluator's switch handles (spec.md §6's closed emit set) instead
// of MOO's statement/verb/object instruction set.
type OpCode byte

const (
	OpPushConst OpCode = iota // push Constants[A]
	OpLoad                    // push env[S]
	OpPop                     // discard top of stack
	OpDup                     // duplicate top of stack

	OpJump        // unconditional jump to A
	OpJumpIfFalse // pop; jump to A if falsy
	OpJumpIfTrue  // pop; jump to A if truthy

	OpMakeList // pop A items (reverse order), push List
	OpConcat   // pop A items, push concatenated Str

	OpAttr  // pop object, push object[S] (attribute-as-key lookup)
	OpIndex // pop key, pop object, push object[key]
	OpSlice // pop end, pop start, pop object, push slice

	OpCall // pop A args, call function named S (or the `vars` special form)

	OpAdd
	OpSub
	OpMul
	OpDiv
	OpIDiv
	OpMod
	OpPow
	OpPos
	OpNeg
	OpInvert
	OpNot

	OpCmpLink // chained-comparison link: pop right, pop left, compare per S; on failure push False and jump to A, else push right back as the new left

	OpIterBegin  // pop iterable, push a comprehension loop frame bound to S (the loop variable name)
	OpIterNext   // if the current frame is exhausted (or hit MaxForIterations), jump to A; else bind S to the next element and advance
	OpIterSkip   // pop test result; if falsy, jump to A (back to the matching OpIterNext)
	OpIterCollect // pop a value, append it to the current loop frame's results
	OpIterEnd    // pop the current loop frame, push its results as a List, restore the shadowed binding
)

var opcodeNames = map[OpCode]string{
	OpPushConst:   "PUSH_CONST",
	OpLoad:        "LOAD",
	OpPop:         "POP",
	OpDup:         "DUP",
	OpJump:        "JUMP",
	OpJumpIfFalse: "JUMP_IF_FALSE",
	OpJumpIfTrue:  "JUMP_IF_TRUE",
	OpMakeList:    "MAKE_LIST",
	OpConcat:      "CONCAT",
	OpAttr:        "ATTR",
	OpIndex:       "INDEX",
	OpSlice:       "SLICE",
	OpCall:        "CALL",
	OpAdd:         "ADD",
	OpSub:         "SUB",
	OpMul:         "MUL",
	OpDiv:         "DIV",
	OpIDiv:        "IDIV",
	OpMod:         "MOD",
	OpPow:         "POW",
	OpPos:         "POS",
	OpNeg:         "NEG",
	OpInvert:      "INVERT",
	OpNot:         "NOT",
	OpCmpLink:     "CMP_LINK",
	OpIterBegin:   "ITER_BEGIN",
	OpIterNext:    "ITER_NEXT",
	OpIterSkip:    "ITER_SKIP",
	OpIterCollect: "ITER_COLLECT",
	OpIterEnd:     "ITER_END",
}

// String renders an opcode's mnemonic, used by Program.Disassemble.
func (op OpCode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return "UNKNOWN"
}
