package vm

import (
	"testing"

	"github.com/viur-framework/logics/builtins"
	"github.com/viur-framework/logics/eval"
	"github.com/viur-framework/logics/parser"
	"github.com/viur-framework/logics/types"
)

func mustRun(t *testing.T, src string, vars map[string]types.Value) types.Value {
	t.Helper()
	node, err := parser.ParseExpression(src)
	if err != nil {
		t.Fatalf("ParseExpression(%q) error: %v", src, err)
	}
	prog, err := Compile(node)
	if err != nil {
		t.Fatalf("Compile(%q) error: %v", src, err)
	}
	if vars == nil {
		vars = map[string]types.Value{}
	}
	v, err := Run(prog, eval.NewEnvironmentFrom(vars), builtins.NewRegistry())
	if err != nil {
		t.Fatalf("Run(%q) error: %v", src, err)
	}
	return v
}

// TestVMMatchesEvaluator runs the same spec.md §8 scenarios through both
// backends and checks the vm produces the identical rendering, per
// spec.md §1's allowance for "an alternate evaluator backend that emits
// target code from the same AST."
func TestVMMatchesEvaluator(t *testing.T) {
	cases := []struct {
		name string
		src  string
		vars map[string]types.Value
	}{
		{"arithmetic", "1 + 2 * 3", nil},
		{"string repeat", `"hello" * 3`, nil},
		{"comprehension", "[x*x for x in range(5)]", nil},
		{"chained comparison fails", "1 < 2 < 3 < 2", nil},
		{"short circuit and", "False and (1/0)", nil},
		{"short circuit or", "True or (1/0)", nil},
		{"ternary", `"yes" if 1 < 2 else "no"`, nil},
		{"division by zero sentinel", "1 / 0", nil},
		{"vars one-arg miss", `vars("missing")`, map[string]types.Value{}},
		{"attr chain", `user.name`, map[string]types.Value{"user": dictOf(t, "name", types.NewStr("ann"))}},
		{"comprehension with filter", "[x for x in items if x > 2]",
			map[string]types.Value{"items": types.NewList([]types.Value{types.NewInt(1), types.NewInt(2), types.NewInt(3), types.NewInt(4)})}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			node, err := parser.ParseExpression(c.src)
			if err != nil {
				t.Fatalf("ParseExpression(%q) error: %v", c.src, err)
			}

			vars := c.vars
			if vars == nil {
				vars = map[string]types.Value{}
			}
			want, err := eval.NewEvaluator(eval.NewEnvironmentFrom(vars), builtins.NewRegistry()).Run(node)
			if err != nil {
				t.Fatalf("eval.Run(%q) error: %v", c.src, err)
			}

			got := mustRun(t, c.src, c.vars)
			if got.String() != want.String() {
				t.Fatalf("vm.Run(%q) = %v, want %v (eval.Evaluator)", c.src, got, want)
			}
		})
	}
}

func TestVMComprehensionIterationCap(t *testing.T) {
	huge := make([]types.Value, 10000)
	for i := range huge {
		huge[i] = types.NewInt(int64(i))
	}
	v := mustRun(t, "[x for x in items]", map[string]types.Value{"items": types.NewList(huge)})
	if v.Len() != eval.MaxForIterations {
		t.Fatalf("comprehension length = %d, want %d", v.Len(), eval.MaxForIterations)
	}
}

func dictOf(t *testing.T, key string, val types.Value) types.Value {
	t.Helper()
	d := types.NewEmptyDict()
	d.Set(types.NewStr(key), val)
	return types.NewDict(d)
}
