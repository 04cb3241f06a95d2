package conformance

import (
	"fmt"
	"strings"

	"github.com/viur-framework/logics/builtins"
	"github.com/viur-framework/logics/eval"
	"github.com/viur-framework/logics/parser"
	"github.com/viur-framework/logics/template"
	"github.com/viur-framework/logics/types"
)

// TestResult is the outcome of running one scenario.
type TestResult struct {
	Test       LoadedTest
	Passed     bool
	Skipped    bool
	SkipReason string
	Error      error
}

// Runner executes conformance scenarios against fresh Evaluators. It
// carries no state across runs — unlike the teacher's Runner (which held
// a shared MOO object-database Store across a suite's setup/teardown),
// this Language has no persistent store to set up or tear down.
type Runner struct{}

// NewRunner returns a Runner. Grounded on the teacher's
// `conformance/runner.go` NewRunner shape, minus the database load:
// this Language's only "fixture" is the per-test `vars` map.
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes a single scenario.
func (r *Runner) Run(test LoadedTest) TestResult {
	if skipped, reason := test.Test.IsSkipped(); skipped {
		return TestResult{Test: test, Skipped: true, SkipReason: reason}
	}

	tc := test.Test
	vars := make(map[string]types.Value, len(tc.Vars))
	for k, v := range tc.Vars {
		vars[k] = types.New(v)
	}

	var result types.Value
	var err error
	switch {
	case tc.Expression != "":
		result, err = runExpression(tc.Expression, vars)
	case tc.Template != "":
		result, err = runTemplate(tc.Template, vars)
	default:
		return TestResult{Test: test, Skipped: true, SkipReason: "no expression/template"}
	}
	if err != nil {
		return TestResult{Test: test, Passed: false, Error: err}
	}

	passed, checkErr := checkExpectation(tc.Expect, result)
	return TestResult{Test: test, Passed: passed, Error: checkErr}
}

func runExpression(src string, vars map[string]types.Value) (types.Value, error) {
	node, err := parser.ParseExpression(src)
	if err != nil {
		return types.None, fmt.Errorf("parse error: %w", err)
	}
	ev := eval.NewEvaluator(eval.NewEnvironmentFrom(vars), builtins.NewRegistry())
	v, err := ev.Run(node)
	if err != nil {
		return types.None, fmt.Errorf("eval error: %w", err)
	}
	return v, nil
}

func runTemplate(src string, vars map[string]types.Value) (types.Value, error) {
	opts := template.DefaultOptions()
	root, err := template.Compile(src, opts)
	if err != nil {
		return types.None, fmt.Errorf("template compile error: %w", err)
	}
	ev := eval.NewEvaluator(eval.NewEnvironmentFrom(vars), builtins.NewTemplateRegistry())
	ev.EmptyValue = opts.EmptyValue
	v, err := ev.Run(root)
	if err != nil {
		return types.None, fmt.Errorf("template render error: %w", err)
	}
	return v, nil
}

// RunAll executes every loaded test.
func (r *Runner) RunAll(tests []LoadedTest) []TestResult {
	results := make([]TestResult, len(tests))
	for i, t := range tests {
		results[i] = r.Run(t)
	}
	return results
}

// SummaryStats tallies a result set.
type SummaryStats struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
}

// ComputeStats tallies results into a SummaryStats.
func ComputeStats(results []TestResult) SummaryStats {
	stats := SummaryStats{Total: len(results)}
	for _, r := range results {
		switch {
		case r.Skipped:
			stats.Skipped++
		case r.Passed:
			stats.Passed++
		default:
			stats.Failed++
		}
	}
	return stats
}

// FormatStats renders a one-line human-readable summary.
func FormatStats(stats SummaryStats) string {
	return fmt.Sprintf("%d passed, %d failed, %d skipped (%d total)",
		stats.Passed, stats.Failed, stats.Skipped, stats.Total)
}

// checkExpectation compares result against expect, in priority order
// IsError > Value > Type > Contains.
func checkExpectation(expect Expectation, result types.Value) (bool, error) {
	if expect.IsError {
		if !result.IsError() {
			return false, fmt.Errorf("expected an #ERR sentinel, got %v", result.String())
		}
		return true, nil
	}

	if expect.Value != nil {
		want := types.New(expect.Value)
		if !types.Equal(result, want) {
			return false, fmt.Errorf("expected %v, got %v", want.String(), result.String())
		}
		return true, nil
	}

	if expect.Type != "" {
		if !strings.EqualFold(result.Kind().String(), expect.Type) {
			return false, fmt.Errorf("expected type %s, got %s", expect.Type, result.Kind().String())
		}
		return true, nil
	}

	if expect.Contains != "" {
		if !strings.Contains(result.String(), expect.Contains) {
			return false, fmt.Errorf("expected result to contain %q, got %v", expect.Contains, result.String())
		}
		return true, nil
	}

	return false, fmt.Errorf("no expectation specified")
}
