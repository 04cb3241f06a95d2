package eval

import (
	"testing"

	"github.com/viur-framework/logics/builtins"
	"github.com/viur-framework/logics/parser"
	"github.com/viur-framework/logics/types"
)

func mustEval(t *testing.T, src string, vars map[string]types.Value) types.Value {
	t.Helper()
	node, err := parser.ParseExpression(src)
	if err != nil {
		t.Fatalf("ParseExpression(%q) error: %v", src, err)
	}
	if vars == nil {
		vars = map[string]types.Value{}
	}
	ev := NewEvaluator(NewEnvironmentFrom(vars), builtins.NewRegistry())
	v, err := ev.Run(node)
	if err != nil {
		t.Fatalf("Run(%q) error: %v", src, err)
	}
	return v
}

func TestEvalArithmetic(t *testing.T) {
	v := mustEval(t, "1 + 2 * 3", nil)
	if v.Int() != 7 {
		t.Fatalf("1 + 2 * 3 = %v, want 7", v)
	}
}

func TestEvalDivisionByZeroSentinel(t *testing.T) {
	v := mustEval(t, "1 / 0", nil)
	if !v.IsError() {
		t.Fatalf("1 / 0 should be a sentinel error, got %v", v)
	}
}

func TestEvalShortCircuitAnd(t *testing.T) {
	// The right operand must never be evaluated (it would error if it were).
	v := mustEval(t, "False and (1/0)", nil)
	if v.Truthy() {
		t.Fatalf("expected falsy result")
	}
}

func TestEvalShortCircuitOr(t *testing.T) {
	v := mustEval(t, "True or (1/0)", nil)
	if !v.Truthy() {
		t.Fatalf("expected truthy result")
	}
}

func TestEvalTernary(t *testing.T) {
	v := mustEval(t, `"yes" if 1 < 2 else "no"`, nil)
	if v.Str() != "yes" {
		t.Fatalf("ternary = %q, want yes", v.Str())
	}
}

func TestEvalNotVsInvert(t *testing.T) {
	if v := mustEval(t, "not False", nil); !v.Truthy() {
		t.Fatalf("not False should be True")
	}
	if v := mustEval(t, "~0", nil); v.Int() != -1 {
		t.Fatalf("~0 = %v, want -1", v)
	}
}

func TestEvalChainedComparison(t *testing.T) {
	v := mustEval(t, "1 < 5 < 10", nil)
	if !v.Truthy() {
		t.Fatalf("1 < 5 < 10 should be true")
	}
	v = mustEval(t, "1 < 5 < 3", nil)
	if v.Truthy() {
		t.Fatalf("1 < 5 < 3 should be false")
	}
}

func TestEvalComprehension(t *testing.T) {
	vars := map[string]types.Value{
		"items": types.NewList([]types.Value{
			types.NewInt(0), types.NewInt(1), types.NewInt(2), types.NewInt(3), types.NewInt(4),
		}),
	}
	v := mustEval(t, "[x * x for x in items]", vars)
	if v.Len() != 5 || v.List()[4].Int() != 16 {
		t.Fatalf("comprehension result = %v", v)
	}
}

func TestEvalComprehensionFilter(t *testing.T) {
	vars := map[string]types.Value{
		"items": types.NewList([]types.Value{
			types.NewInt(1), types.NewInt(2), types.NewInt(3), types.NewInt(4),
		}),
	}
	v := mustEval(t, "[x for x in items if x > 2]", vars)
	if v.Len() != 2 {
		t.Fatalf("filtered comprehension len = %d, want 2", v.Len())
	}
}

func TestEvalComprehensionDoesNotLeakLoopVar(t *testing.T) {
	vars := map[string]types.Value{
		"x":     types.NewInt(99),
		"items": types.NewList([]types.Value{types.NewInt(1), types.NewInt(2)}),
	}
	node, err := parser.ParseExpression("[x for x in items]")
	if err != nil {
		t.Fatal(err)
	}
	env := NewEnvironmentFrom(vars)
	ev := NewEvaluator(env, builtins.NewRegistry())
	if _, err := ev.Run(node); err != nil {
		t.Fatal(err)
	}
	if env.Get("x").Int() != 99 {
		t.Fatalf("outer x binding leaked: got %v", env.Get("x"))
	}
}

func TestEvalComprehensionIterationCap(t *testing.T) {
	huge := make([]types.Value, MaxForIterations+500)
	for i := range huge {
		huge[i] = types.NewInt(1)
	}
	vars := map[string]types.Value{"items": types.NewList(huge)}
	v := mustEval(t, "[x for x in items]", vars)
	if v.Len() != MaxForIterations {
		t.Fatalf("comprehension should cap at %d iterations, got %d", MaxForIterations, v.Len())
	}
}

func TestEvalUnknownFunctionSentinel(t *testing.T) {
	v := mustEval(t, "nope(1)", nil)
	if !v.IsError() {
		t.Fatalf("calling an unknown function should yield a sentinel error")
	}
}

func TestEvalIndexAndAttr(t *testing.T) {
	d := types.NewEmptyDict()
	d.Set(types.NewStr("name"), types.NewStr("ann"))
	vars := map[string]types.Value{"user": types.NewDict(d)}

	if v := mustEval(t, "user.name", vars); v.Str() != "ann" {
		t.Fatalf("user.name = %q", v.Str())
	}
	if v := mustEval(t, `user["name"]`, vars); v.Str() != "ann" {
		t.Fatalf(`user["name"] = %q`, v.Str())
	}
}

func TestEvalSlice(t *testing.T) {
	vars := map[string]types.Value{
		"xs": types.NewList([]types.Value{
			types.NewInt(0), types.NewInt(1), types.NewInt(2), types.NewInt(3),
		}),
	}
	v := mustEval(t, "xs[1:3]", vars)
	if v.Len() != 2 || v.List()[0].Int() != 1 {
		t.Fatalf("slice result = %v", v)
	}
}

func TestEvalVarsBuiltin(t *testing.T) {
	vars := map[string]types.Value{"a": types.NewInt(1), "b": types.NewInt(2)}
	v := mustEval(t, "vars()", vars)
	if v.Len() != 2 {
		t.Fatalf("vars() should report 2 bound names, got %v", v)
	}
}

func TestRunReportsUnknownEmit(t *testing.T) {
	node := parser.NewLeaf("bogus-emit", "", parser.Position{})
	ev := NewEvaluator(NewEnvironment(), builtins.NewRegistry())
	if _, err := ev.Run(node); err == nil {
		t.Fatalf("expected an internal error for an unrecognized emit tag")
	}
}
