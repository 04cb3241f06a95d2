package vm

import (
	"fmt"
	"sort"

	"github.com/viur-framework/logics/builtins"
	"github.com/viur-framework/logics/eval"
	"github.com/viur-framework/logics/types"
)

// loopFrame tracks one in-flight comprehension loop: the elements being
// iterated, the current position, the accumulated results, and the
// pre-loop binding of the loop variable name so OpIterEnd can restore it
// exactly as eval.evalComprehension's Save/Restore does.
type loopFrame struct {
	name    string
	items   []types.Value
	idx     int
	results []types.Value
	saved   eval.Binding
}

// VM runs a compiled Program against an Environment and Registry,
// producing identical results to eval.Evaluator for the same source
// tree. Grounded on the teacher's `vm/vm.go` stack-machine Run loop
// (explicit value stack, instruction pointer, switch-dispatched
// opcodes), with the MOO object/verb/property/exception machinery
// stripped out — this Language has none of it.
type VM struct {
	stack  []types.Value
	frames []*loopFrame
}

// Run executes program against env/registry and returns the single
// resulting Value, or the stack's lone remaining value if the top-level
// node left more than a bare result (never happens for a well-formed
// compile, mirrored here only as a defensive final step).
func Run(program *Program, env *eval.Environment, registry *builtins.Registry) (types.Value, error) {
	m := &VM{}
	if err := m.run(program, env, registry); err != nil {
		return types.None, err
	}
	if len(m.stack) == 0 {
		return types.None, nil
	}
	return m.stack[len(m.stack)-1], nil
}

func (m *VM) push(v types.Value) {
	m.stack = append(m.stack, v)
}

func (m *VM) pop() types.Value {
	n := len(m.stack)
	v := m.stack[n-1]
	m.stack = m.stack[:n-1]
	return v
}

func (m *VM) peek() types.Value {
	return m.stack[len(m.stack)-1]
}

var cmpOps = map[string]func(a, b types.Value) bool{
	"eq":    types.Equal,
	"neq":   func(a, b types.Value) bool { return !types.Equal(a, b) },
	"lt":    types.Less,
	"lteq":  types.LessEq,
	"gt":    types.Greater,
	"gteq":  types.GreaterEq,
	"in":    types.In,
	"outer": func(a, b types.Value) bool { return !types.In(a, b) },
}

func (m *VM) run(p *Program, env *eval.Environment, registry *builtins.Registry) error {
	ip := 0
	for ip < len(p.Code) {
		instr := p.Code[ip]
		switch instr.Op {
		case OpPushConst:
			m.push(p.Constants[instr.A])
		case OpLoad:
			m.push(env.Get(instr.S))
		case OpPop:
			m.pop()
		case OpDup:
			m.push(m.peek())
		case OpJump:
			ip = instr.A
			continue
		case OpJumpIfFalse:
			if !m.pop().Truthy() {
				ip = instr.A
				continue
			}
		case OpJumpIfTrue:
			if m.pop().Truthy() {
				ip = instr.A
				continue
			}
		case OpMakeList:
			items := make([]types.Value, instr.A)
			for i := instr.A - 1; i >= 0; i-- {
				items[i] = m.pop()
			}
			m.push(types.NewList(items))
		case OpConcat:
			items := make([]types.Value, instr.A)
			for i := instr.A - 1; i >= 0; i-- {
				items[i] = m.pop()
			}
			out := ""
			for _, v := range items {
				out += v.String()
			}
			m.push(types.NewStr(out))
		case OpAttr:
			obj := m.pop()
			m.push(types.Attr(obj, instr.S))
		case OpIndex:
			key := m.pop()
			obj := m.pop()
			m.push(types.Index(obj, key))
		case OpSlice:
			end := m.pop()
			start := m.pop()
			obj := m.pop()
			m.push(types.Slice(obj, sliceBound(start), sliceBound(end)))
		case OpCall:
			args := make([]types.Value, instr.A)
			for i := instr.A - 1; i >= 0; i-- {
				args[i] = m.pop()
			}
			m.push(m.call(instr.S, args, env, registry))
		case OpAdd:
			b, a := m.pop(), m.pop()
			m.push(types.Add(a, b))
		case OpSub:
			b, a := m.pop(), m.pop()
			m.push(types.Sub(a, b))
		case OpMul:
			b, a := m.pop(), m.pop()
			m.push(types.Mul(a, b))
		case OpDiv:
			b, a := m.pop(), m.pop()
			m.push(types.Div(a, b))
		case OpIDiv:
			b, a := m.pop(), m.pop()
			m.push(types.IDiv(a, b))
		case OpMod:
			b, a := m.pop(), m.pop()
			m.push(types.Mod(a, b))
		case OpPow:
			b, a := m.pop(), m.pop()
			m.push(types.Pow(a, b))
		case OpPos:
			m.push(types.Pos(m.pop()))
		case OpNeg:
			m.push(types.Neg(m.pop()))
		case OpInvert:
			m.push(types.Invert(m.pop()))
		case OpNot:
			m.push(types.NewBool(!m.pop().Truthy()))
		case OpCmpLink:
			right := m.pop()
			left := m.pop()
			cmpFn := cmpOps[instr.S]
			if cmpFn == nil || !cmpFn(left, right) {
				m.push(types.NewBool(false))
				ip = instr.A
				continue
			}
			m.push(right)
		case OpIterBegin:
			items := iterableElements(m.pop())
			m.frames = append(m.frames, &loopFrame{
				name:  instr.S,
				items: items,
				saved: env.Save(instr.S),
			})
		case OpIterNext:
			f := m.frames[len(m.frames)-1]
			if f.idx >= len(f.items) || f.idx >= eval.MaxForIterations {
				ip = instr.A
				continue
			}
			env.Set(f.name, f.items[f.idx])
			f.idx++
		case OpIterSkip:
			if !m.pop().Truthy() {
				ip = instr.A
				continue
			}
		case OpIterCollect:
			f := m.frames[len(m.frames)-1]
			f.results = append(f.results, m.pop())
		case OpIterEnd:
			f := m.frames[len(m.frames)-1]
			m.frames = m.frames[:len(m.frames)-1]
			env.Restore(f.saved)
			m.push(types.NewList(f.results))
		default:
			return fmt.Errorf("vm: run: not implemented: unknown opcode %q", instr.Op)
		}
		ip++
	}
	return nil
}

// call dispatches a compiled OpCall: the "vars" special form, then the
// registry, matching eval.evalCall's #ERR sentinel contract exactly
// (spec.md §4.3's "call" flow node).
func (m *VM) call(name string, args []types.Value, env *eval.Environment, registry *builtins.Registry) types.Value {
	if name == "vars" {
		return evalVars(args, env)
	}
	fn, ok := registry.Lookup(name)
	if !ok {
		return types.Err(fmt.Sprintf("Call to unknown function %s()", name))
	}
	result, err := fn(args)
	if err != nil {
		return types.Err(fmt.Sprintf("Invalid call to %s()", name))
	}
	return result
}

func sliceBound(v types.Value) *int64 {
	if v.Kind() == types.KindNone {
		return nil
	}
	n := v.Int()
	if v.Kind() == types.KindFloat {
		n = int64(v.Float())
	}
	return &n
}

// iterableElements mirrors eval.iterableElements via the shared
// types.Iterate helper: a List yields its elements, a Dict its keys, a
// Str its runes, anything else a single-element sequence containing
// itself.
func iterableElements(v types.Value) []types.Value {
	return types.Iterate(v)
}

// evalVars mirrors eval.Evaluator.evalVars: with one string argument it
// looks up that single binding (or None if unbound); with zero
// arguments it reports every bound name, sorted for determinism, as a
// List of Str.
func evalVars(args []types.Value, env *eval.Environment) types.Value {
	if len(args) == 1 && args[0].Kind() == types.KindStr {
		return env.Get(args[0].Str())
	}
	snap := env.Snapshot()
	names := make([]string, 0, len(snap))
	for n := range snap {
		names = append(names, n)
	}
	sort.Strings(names)
	elems := make([]types.Value, len(names))
	for i, n := range names {
		elems[i] = types.NewStr(n)
	}
	return types.NewList(elems)
}
