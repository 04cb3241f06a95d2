package eval

import (
	"strings"

	"github.com/viur-framework/logics/parser"
	"github.com/viur-framework/logics/types"
)

// renderTBlock evaluates a tblock's children in order and
// concatenates their string renderings, substituting EmptyValue for a
// None result. Grounded on
// `original_source/logics/vistache.py`'s `post_tblock` (which builds
// the same concatenation via stack pops; the net order is identical,
// done here directly without a stack).
func (e *Evaluator) renderTBlock(node *parser.Node) (types.Value, error) {
	var b strings.Builder
	for _, c := range node.Children {
		v, err := e.eval(c)
		if err != nil {
			return types.None, err
		}
		if v.Kind() == types.KindNone {
			b.WriteString(e.EmptyValue)
			continue
		}
		b.WriteString(v.String())
	}
	return types.NewStr(b.String()), nil
}

// evalTLoop implements the "tloop" block form: Children = [condition,
// then-tblock, else-tblock-or-nil]. Grounded on
// `original_source/logics/vistache.py`'s `loop_tloop`/`post_tloop`.
// Unlike the Python original's partial-merge bookkeeping (which leaks a
// loop-item dict key that happens to collide with a pre-existing
// binding past the iteration that set it), this restores the
// pre-iteration environment in full before every iteration — matching
// spec.md §4.5's plain-language description ("its keys are scoped to
// the iteration and removed when the next iteration starts") rather
// than the original's accidental leak.
func (e *Evaluator) evalTLoop(node *parser.Node) (types.Value, error) {
	cond, err := e.eval(node.Children[0])
	if err != nil {
		return types.None, err
	}
	thenNode := node.Children[1]
	var elseNode *parser.Node
	if len(node.Children) > 2 {
		elseNode = node.Children[2]
	}

	switch cond.Kind() {
	case types.KindList:
		items := cond.List()
		if len(items) == 0 {
			return e.evalBranchOrEmpty(elseNode)
		}
		return e.evalLoopOverList(items, thenNode)
	case types.KindDict:
		if !cond.Truthy() {
			return e.evalBranchOrEmpty(elseNode)
		}
		return e.evalWithMergedDict(cond.Dict(), thenNode)
	default:
		if cond.Truthy() {
			return e.eval(thenNode)
		}
		return e.evalBranchOrEmpty(elseNode)
	}
}

func (e *Evaluator) evalBranchOrEmpty(branch *parser.Node) (types.Value, error) {
	if branch == nil {
		return types.NewStr(""), nil
	}
	return e.eval(branch)
}

func copyVars(m map[string]types.Value) map[string]types.Value {
	cp := make(map[string]types.Value, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

// evalLoopOverList renders thenNode once per item, injecting a `loop`
// Dict (length/index/index0/first/last/item/parent) and, when item is
// itself a Dict, that item's own keys. MaxForIterations bounds the
// iteration count, same cap as comprehension.
func (e *Evaluator) evalLoopOverList(items []types.Value, thenNode *parser.Node) (types.Value, error) {
	base := e.Env.Snapshot()
	defer e.Env.RestoreSnapshot(copyVars(base))

	parent := e.Env.Get("loop")
	if parent.Kind() != types.KindDict {
		parent = types.None
	}

	n := len(items)
	var out strings.Builder
	for i, item := range items {
		if i >= MaxForIterations {
			break
		}
		e.Env.RestoreSnapshot(copyVars(base))

		loop := types.NewEmptyDict()
		loop.Set(types.NewStr("length"), types.NewInt(int64(n)))
		loop.Set(types.NewStr("index"), types.NewInt(int64(i+1)))
		loop.Set(types.NewStr("index0"), types.NewInt(int64(i)))
		loop.Set(types.NewStr("first"), types.NewBool(i == 0))
		loop.Set(types.NewStr("last"), types.NewBool(i == n-1))
		loop.Set(types.NewStr("item"), item)
		loop.Set(types.NewStr("parent"), parent)
		e.Env.Set("loop", types.NewDict(loop))

		if item.Kind() == types.KindDict {
			for _, pair := range item.Dict().Pairs() {
				if pair.Key.Kind() == types.KindStr {
					e.Env.Set(pair.Key.Str(), pair.Value)
				}
			}
		}

		val, err := e.eval(thenNode)
		if err != nil {
			return types.None, err
		}
		out.WriteString(val.String())
	}
	return types.NewStr(out.String()), nil
}

// evalWithMergedDict renders thenNode once with d's entries merged into
// the environment, restoring the pre-merge bindings on exit.
func (e *Evaluator) evalWithMergedDict(d *types.Dict, thenNode *parser.Node) (types.Value, error) {
	base := e.Env.Snapshot()
	defer e.Env.RestoreSnapshot(copyVars(base))

	for _, pair := range d.Pairs() {
		if pair.Key.Kind() == types.KindStr {
			e.Env.Set(pair.Key.Str(), pair.Value)
		}
	}
	return e.eval(thenNode)
}
