package eval

import (
	"fmt"
	"sort"

	"github.com/viur-framework/logics/builtins"
	"github.com/viur-framework/logics/parser"
	"github.com/viur-framework/logics/types"
)

// MaxForIterations caps a comprehension's iteration count, guarding
// against runaway expressions the way MAX_STRING_LENGTH guards string
// growth. Grounded on
// `original_source/logics-py/logics/logics.py`'s `MAX_FOR_ITERATIONS =
// 4*1024`.
const MaxForIterations = 4 * 1024

// TraceFunc is called after every node evaluation when non-nil,
// wired to the trace package for -D/--debug output.
type TraceFunc func(node *parser.Node, result types.Value)

// Evaluator is a tree-walking interpreter over parser.Node. It has no
// internal value stack of its own — Go's call stack plays that role,
// the same structural choice the teacher's Evaluator makes (eval.go's
// recursive Eval, not an explicit stack machine; the explicit bytecode
// stack machine lives in the optional vm package instead).
type Evaluator struct {
	Env      *Environment
	Registry *builtins.Registry
	Trace    TraceFunc

	// EmptyValue substitutes for a None Value produced by a template's
	// inline expression tag. Set from template.Options.EmptyValue by the
	// caller that renders a compiled template; plain expression
	// evaluation never touches it.
	EmptyValue string
}

// NewEvaluator builds an Evaluator bound to env and registry.
func NewEvaluator(env *Environment, registry *builtins.Registry) *Evaluator {
	return &Evaluator{Env: env, Registry: registry}
}

// Run evaluates node to a Value. The only error it can return is an
// internal "not implemented" error for an unrecognized Emit tag — a
// parser/evaluator mismatch bug, never a user-facing condition. All
// user-visible failures (division by zero, unknown function, bad
// argument types, string-length overflow) are communicated as "#ERR..."
// sentinel Values, per spec.md §7.
func (e *Evaluator) Run(node *parser.Node) (types.Value, error) {
	return e.eval(node)
}

// eval evaluates one node and reports it to Trace, if set.
func (e *Evaluator) eval(node *parser.Node) (types.Value, error) {
	v, err := e.evalNode(node)
	if err == nil && e.Trace != nil && node != nil {
		e.Trace(node, v)
	}
	return v, err
}

func (e *Evaluator) evalNode(node *parser.Node) (types.Value, error) {
	if node == nil {
		return types.None, nil
	}

	// Flow forms: these control which children actually get evaluated
	// (short-circuiting / conditional / iterating), so they must run
	// pre-order rather than have their children evaluated up front.
	switch node.Emit {
	case parser.EmitAnd:
		return e.evalAnd(node)
	case parser.EmitOr:
		return e.evalOr(node)
	case parser.EmitIf:
		return e.evalIf(node)
	case parser.EmitCmp:
		return e.evalCmp(node)
	case parser.EmitCall:
		return e.evalCall(node)
	case parser.EmitComprehension:
		return e.evalComprehension(node)
	case parser.EmitTLoop:
		return e.evalTLoop(node)
	case parser.EmitTBlock:
		return e.renderTBlock(node)
	}

	// Everything else evaluates post-order: gather child values first,
	// then apply the operator named by Emit.
	return e.evalPostOrder(node)
}

func (e *Evaluator) evalChildren(node *parser.Node) ([]types.Value, error) {
	vals := make([]types.Value, len(node.Children))
	for i, c := range node.Children {
		v, err := e.eval(c)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

func (e *Evaluator) evalAnd(node *parser.Node) (types.Value, error) {
	left, err := e.eval(node.Children[0])
	if err != nil {
		return types.None, err
	}
	if !left.Truthy() {
		return left, nil
	}
	return e.eval(node.Children[1])
}

func (e *Evaluator) evalOr(node *parser.Node) (types.Value, error) {
	left, err := e.eval(node.Children[0])
	if err != nil {
		return types.None, err
	}
	if left.Truthy() {
		return left, nil
	}
	return e.eval(node.Children[1])
}

// evalIf implements the ternary: Children = [then, cond, else].
func (e *Evaluator) evalIf(node *parser.Node) (types.Value, error) {
	cond, err := e.eval(node.Children[1])
	if err != nil {
		return types.None, err
	}
	if cond.Truthy() {
		return e.eval(node.Children[0])
	}
	return e.eval(node.Children[2])
}

var cmpOpNames = map[string]func(a, b types.Value) bool{
	"eq":    types.Equal,
	"neq":   func(a, b types.Value) bool { return !types.Equal(a, b) },
	"lt":    types.Less,
	"lteq":  types.LessEq,
	"gt":    types.Greater,
	"gteq":  types.GreaterEq,
	"in":    types.In,
	"outer": func(a, b types.Value) bool { return !types.In(a, b) },
}

// evalCmp implements Python-style chained comparison: `a < b < c`
// evaluates each operand exactly once and short-circuits on the first
// false link, per spec.md's "cmp" flow form.
func (e *Evaluator) evalCmp(node *parser.Node) (types.Value, error) {
	ops := splitOps(node.Match)

	left, err := e.eval(node.Children[0])
	if err != nil {
		return types.None, err
	}

	for i, op := range ops {
		right, err := e.eval(node.Children[i+1])
		if err != nil {
			return types.None, err
		}
		cmpFn := cmpOpNames[op]
		if cmpFn == nil || !cmpFn(left, right) {
			return types.NewBool(false), nil
		}
		left = right
	}
	return types.NewBool(true), nil
}

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

// evalCall implements function dispatch: Match is the callee name,
// Children are argument expressions. The "vars" form is a special case
// the registry never sees — see evalVars for its one-argument lookup and
// zero-argument list of bound names.
func (e *Evaluator) evalCall(node *parser.Node) (types.Value, error) {
	args, err := e.evalChildren(node)
	if err != nil {
		return types.None, err
	}

	if node.Match == "vars" {
		return e.evalVars(args), nil
	}

	fn, ok := e.Registry.Lookup(node.Match)
	if !ok {
		return types.Err(fmt.Sprintf("Call to unknown function %s()", node.Match)), nil
	}

	result, callErr := fn(args)
	if callErr != nil {
		return types.Err(fmt.Sprintf("Invalid call to %s()", node.Match)), nil
	}
	return result, nil
}

// evalVars implements the "vars" special form: with one string argument
// it looks up that single binding (or None if unbound, per spec.md §4.3
// and the `vars("missing")` scenario of spec.md §8); with zero arguments
// it reports every bound name, sorted for determinism, as a List of Str.
func (e *Evaluator) evalVars(args []types.Value) types.Value {
	if len(args) == 1 && args[0].Kind() == types.KindStr {
		return e.Env.Get(args[0].Str())
	}
	names := make([]string, 0, len(e.Env.vars))
	for n := range e.Env.vars {
		names = append(names, n)
	}
	sort.Strings(names)
	elems := make([]types.Value, len(names))
	for i, n := range names {
		elems[i] = types.NewStr(n)
	}
	return types.NewList(elems)
}

// evalComprehension implements `[each for name in items if test]`.
// Children = [items, each, test-or-None]; Match is the loop variable
// name. The loop variable is shadowed via Environment.Save/Restore so
// the comprehension never leaks or permanently clobbers an outer
// binding of the same name, matching spec.md §5.
func (e *Evaluator) evalComprehension(node *parser.Node) (types.Value, error) {
	items, err := e.eval(node.Children[0])
	if err != nil {
		return types.None, err
	}

	elements := iterableElements(items)
	saved := e.Env.Save(node.Match)
	defer e.Env.Restore(saved)

	out := make([]types.Value, 0, len(elements))
	for i, item := range elements {
		if i >= MaxForIterations {
			break
		}
		e.Env.Set(node.Match, item)

		if node.Children[2].Emit != parser.EmitNone {
			test, err := e.eval(node.Children[2])
			if err != nil {
				return types.None, err
			}
			if !test.Truthy() {
				continue
			}
		}

		val, err := e.eval(node.Children[1])
		if err != nil {
			return types.None, err
		}
		out = append(out, val)
	}
	return types.NewList(out), nil
}

// iterableElements returns the elements a comprehension/loop iterates
// over: a List's own elements, a Dict's keys, a Str's characters, or —
// for any other kind — a single-element slice containing the value
// itself (mirroring `value.py`'s `__iter__` fallback).
func iterableElements(v types.Value) []types.Value {
	return types.Iterate(v)
}

// evalPostOrder evaluates every child first, then applies the operator
// named by Emit. This is the closed post-order tag set: literals,
// load/attr/index/slice/entity, list/strings, and every arithmetic/
// unary operator.
func (e *Evaluator) evalPostOrder(node *parser.Node) (types.Value, error) {
	switch node.Emit {
	case parser.EmitNone:
		return types.None, nil
	case parser.EmitTrue:
		return types.NewBool(true), nil
	case parser.EmitFalse:
		return types.NewBool(false), nil
	case parser.EmitNumber:
		return types.Optimize(node.Match), nil
	case parser.EmitString:
		return types.Optimize(types.Unescape(node.Match)), nil
	case parser.EmitLoad:
		return e.Env.Get(node.Match), nil
	}

	vals, err := e.evalChildren(node)
	if err != nil {
		return types.None, err
	}

	switch node.Emit {
	case parser.EmitAttr:
		return types.Attr(vals[0], node.Match), nil
	case parser.EmitIndex:
		return types.Index(vals[0], vals[1]), nil
	case parser.EmitSlice:
		return evalSlice(vals), nil
	case parser.EmitEntity:
		return vals[0], nil
	case parser.EmitList:
		return types.NewList(vals), nil
	case parser.EmitStrings:
		return evalStrings(vals), nil
	case parser.EmitAdd:
		return types.Add(vals[0], vals[1]), nil
	case parser.EmitSub:
		return types.Sub(vals[0], vals[1]), nil
	case parser.EmitMul:
		return types.Mul(vals[0], vals[1]), nil
	case parser.EmitDiv:
		return types.Div(vals[0], vals[1]), nil
	case parser.EmitIDiv:
		return types.IDiv(vals[0], vals[1]), nil
	case parser.EmitMod:
		return types.Mod(vals[0], vals[1]), nil
	case parser.EmitPow:
		return types.Pow(vals[0], vals[1]), nil
	case parser.EmitPos:
		return types.Pos(vals[0]), nil
	case parser.EmitNeg:
		return types.Neg(vals[0]), nil
	case parser.EmitInvert:
		return types.Invert(vals[0]), nil
	case parser.EmitNot:
		return types.NewBool(!vals[0].Truthy()), nil
	default:
		return types.None, fmt.Errorf("eval: not implemented: unknown emit %q", node.Emit)
	}
}

func evalSlice(vals []types.Value) types.Value {
	container := vals[0]
	start := sliceBound(vals[1])
	end := sliceBound(vals[2])
	return types.Slice(container, start, end)
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

func evalStrings(vals []types.Value) types.Value {
	out := ""
	for _, v := range vals {
		out += v.String()
	}
	return types.NewStr(out)
}
