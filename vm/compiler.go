package vm

import (
	"fmt"
	"strings"

	"github.com/viur-framework/logics/parser"
	"github.com/viur-framework/logics/types"
)

// Compile walks node and produces a flat Program. It never fails on a
// well-formed tree produced by parser.ParseExpression/template.Compile;
// the only error path is an unrecognized Emit, mirroring eval.Evaluator's
// "not implemented" fail-stop for a broken AST (spec.md §4.3/§7).
func Compile(node *parser.Node) (*Program, error) {
	p := &Program{}
	if err := compileNode(p, node); err != nil {
		return nil, err
	}
	return p, nil
}

func compileNode(p *Program, node *parser.Node) error {
	if node == nil {
		p.emit(Instruction{Op: OpPushConst, A: p.addConst(types.None)})
		return nil
	}

	switch node.Emit {
	case parser.EmitNone:
		p.emit(Instruction{Op: OpPushConst, A: p.addConst(types.None)})
		return nil
	case parser.EmitTrue:
		p.emit(Instruction{Op: OpPushConst, A: p.addConst(types.NewBool(true))})
		return nil
	case parser.EmitFalse:
		p.emit(Instruction{Op: OpPushConst, A: p.addConst(types.NewBool(false))})
		return nil
	case parser.EmitNumber:
		p.emit(Instruction{Op: OpPushConst, A: p.addConst(types.Optimize(node.Match))})
		return nil
	case parser.EmitString:
		p.emit(Instruction{Op: OpPushConst, A: p.addConst(types.Optimize(types.Unescape(node.Match)))})
		return nil
	case parser.EmitLoad:
		p.emit(Instruction{Op: OpLoad, S: node.Match})
		return nil
	case parser.EmitAnd:
		return compileAnd(p, node)
	case parser.EmitOr:
		return compileOr(p, node)
	case parser.EmitIf:
		return compileIf(p, node)
	case parser.EmitCmp:
		return compileCmp(p, node)
	case parser.EmitCall:
		return compileCall(p, node)
	case parser.EmitComprehension:
		return compileComprehension(p, node)
	}

	for _, c := range node.Children {
		if err := compileNode(p, c); err != nil {
			return err
		}
	}

	switch node.Emit {
	case parser.EmitAttr:
		p.emit(Instruction{Op: OpAttr, S: node.Match})
	case parser.EmitIndex:
		p.emit(Instruction{Op: OpIndex})
	case parser.EmitSlice:
		p.emit(Instruction{Op: OpSlice})
	case parser.EmitEntity:
		// identity passthrough: the single child's value is already on
		// the stack, nothing to emit.
	case parser.EmitList:
		p.emit(Instruction{Op: OpMakeList, A: len(node.Children)})
	case parser.EmitStrings:
		p.emit(Instruction{Op: OpConcat, A: len(node.Children)})
	case parser.EmitAdd:
		p.emit(Instruction{Op: OpAdd})
	case parser.EmitSub:
		p.emit(Instruction{Op: OpSub})
	case parser.EmitMul:
		p.emit(Instruction{Op: OpMul})
	case parser.EmitDiv:
		p.emit(Instruction{Op: OpDiv})
	case parser.EmitIDiv:
		p.emit(Instruction{Op: OpIDiv})
	case parser.EmitMod:
		p.emit(Instruction{Op: OpMod})
	case parser.EmitPow:
		p.emit(Instruction{Op: OpPow})
	case parser.EmitPos:
		p.emit(Instruction{Op: OpPos})
	case parser.EmitNeg:
		p.emit(Instruction{Op: OpNeg})
	case parser.EmitInvert:
		p.emit(Instruction{Op: OpInvert})
	case parser.EmitNot:
		p.emit(Instruction{Op: OpNot})
	default:
		return fmt.Errorf("vm: compile: not implemented: unknown emit %q", node.Emit)
	}
	return nil
}

// compileAnd emits: <left>; DUP; JUMP_IF_FALSE end; POP; <right>; end:
// — on a falsy left, the duplicate is consumed by the test and the
// original left is left on the stack as the (short-circuited) result.
func compileAnd(p *Program, node *parser.Node) error {
	if err := compileNode(p, node.Children[0]); err != nil {
		return err
	}
	p.emit(Instruction{Op: OpDup})
	jmp := p.emit(Instruction{Op: OpJumpIfFalse})
	p.emit(Instruction{Op: OpPop})
	if err := compileNode(p, node.Children[1]); err != nil {
		return err
	}
	p.Code[jmp].A = p.here()
	return nil
}

// compileOr mirrors compileAnd with the truthy/falsy test flipped.
func compileOr(p *Program, node *parser.Node) error {
	if err := compileNode(p, node.Children[0]); err != nil {
		return err
	}
	p.emit(Instruction{Op: OpDup})
	jmp := p.emit(Instruction{Op: OpJumpIfTrue})
	p.emit(Instruction{Op: OpPop})
	if err := compileNode(p, node.Children[1]); err != nil {
		return err
	}
	p.Code[jmp].A = p.here()
	return nil
}

// compileIf implements the ternary (Children = [then, cond, else]).
func compileIf(p *Program, node *parser.Node) error {
	if err := compileNode(p, node.Children[1]); err != nil {
		return err
	}
	elseJmp := p.emit(Instruction{Op: OpJumpIfFalse})
	if err := compileNode(p, node.Children[0]); err != nil {
		return err
	}
	endJmp := p.emit(Instruction{Op: OpJump})
	p.Code[elseJmp].A = p.here()
	if err := compileNode(p, node.Children[2]); err != nil {
		return err
	}
	p.Code[endJmp].A = p.here()
	return nil
}

// compileCmp implements Python-style chained comparison. Each OpCmpLink
// leaves the right operand on the stack as the next link's left operand
// on success, or pushes False and jumps straight past the final
// "pop+push True" tail on the first failure — see opcodes.go's OpCmpLink
// doc comment.
func compileCmp(p *Program, node *parser.Node) error {
	ops := splitOps(node.Match)
	if err := compileNode(p, node.Children[0]); err != nil {
		return err
	}

	var failJumps []int
	for i, op := range ops {
		if err := compileNode(p, node.Children[i+1]); err != nil {
			return err
		}
		idx := p.emit(Instruction{Op: OpCmpLink, S: op})
		failJumps = append(failJumps, idx)
	}

	p.emit(Instruction{Op: OpPop})
	p.emit(Instruction{Op: OpPushConst, A: p.addConst(types.NewBool(true))})
	end := p.here()
	for _, idx := range failJumps {
		p.Code[idx].A = end
	}
	return nil
}

// splitOps mirrors eval.splitOps: node.Match holds the chain's
// comparison operators space-joined ("lt lt" for "1 < x < 10").
func splitOps(match string) []string {
	var ops []string
	start := 0
	for i := 0; i <= len(match); i++ {
		if i == len(match) || match[i] == ' ' {
			if i > start {
				ops = append(ops, match[start:i])
			}
			start = i + 1
		}
	}
	return ops
}

// compileCall implements function application: node.Match is the callee
// name (or "vars", a special form the VM handles directly), Children
// are the argument expressions.
func compileCall(p *Program, node *parser.Node) error {
	for _, c := range node.Children {
		if err := compileNode(p, c); err != nil {
			return err
		}
	}
	p.emit(Instruction{Op: OpCall, S: node.Match, A: len(node.Children)})
	return nil
}

// compileComprehension implements `[each for name in items if test]`.
// Children = [items, each, test-or-None]; Match is the loop variable.
func compileComprehension(p *Program, node *parser.Node) error {
	if err := compileNode(p, node.Children[0]); err != nil {
		return err
	}
	p.emit(Instruction{Op: OpIterBegin, S: node.Match})

	loopStart := p.here()
	nextIdx := p.emit(Instruction{Op: OpIterNext})

	hasTest := node.Children[2].Emit != parser.EmitNone
	if hasTest {
		if err := compileNode(p, node.Children[2]); err != nil {
			return err
		}
		p.emit(Instruction{Op: OpIterSkip, A: loopStart})
	}

	if err := compileNode(p, node.Children[1]); err != nil {
		return err
	}
	p.emit(Instruction{Op: OpIterCollect})
	p.emit(Instruction{Op: OpJump, A: loopStart})

	p.Code[nextIdx].A = p.here()
	p.emit(Instruction{Op: OpIterEnd})
	return nil
}

// Dump renders every instruction's mnemonic on one line, a cheap
// alternative to Program.Disassemble.
func Dump(p *Program) string {
	names := make([]string, len(p.Code))
	for i, instr := range p.Code {
		names[i] = instr.Op.String()
	}
	return strings.Join(names, " ")
}
