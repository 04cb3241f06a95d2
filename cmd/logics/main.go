// Command logics is the expression-language CLI: it parses and, with
// -r/--run, evaluates a Logics expression against a set of `-v`/
// -e-supplied variable bindings. Grounded on the teacher's
// `cmd/barn/main.go` (stdlib `flag`, fmt.Fprintf(os.Stderr, ...) plus
// os.Exit for error reporting — no third-party CLI framework), re-pointed
// at parser.ParseExpression/eval.Evaluator instead of the MOO
// parser/object store.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/viur-framework/logics/builtins"
	"github.com/viur-framework/logics/clisupport"
	"github.com/viur-framework/logics/eval"
	"github.com/viur-framework/logics/parser"
	"github.com/viur-framework/logics/trace"
	"github.com/viur-framework/logics/types"
)

const version = "logics 0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := clisupport.ParseArgs("logics", args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if opts.Version {
		fmt.Println(version)
		return 0
	}

	src := clisupport.ResolveSource(opts.Source)
	vars := clisupport.BuildEnvironment(opts)

	node, err := parser.ParseExpression(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logics: parse error: %v\n", err)
		return 1
	}

	if opts.Debug {
		printDebug(src, vars)
		trace.Init(true, nil, os.Stderr)
	}

	if !opts.Run {
		fmt.Print(clisupport.DumpNode(node))
		return 0
	}

	env := eval.NewEnvironmentFrom(vars)
	ev := eval.NewEvaluator(env, builtins.NewRegistry())
	if opts.Debug {
		ev.Trace = func(n *parser.Node, result types.Value) {
			trace.Node(n.Emit, n.Match, result)
		}
	}

	result, err := ev.Run(node)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logics: evaluation error: %v\n", err)
		return 1
	}
	fmt.Println(result.String())
	return 0
}

func printDebug(src string, vars map[string]types.Value) {
	fmt.Fprintf(os.Stderr, "[debug] expression: %s\n", src)
	names := make([]string, 0, len(vars))
	for n := range vars {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(os.Stderr, "[debug] %s = %s\n", n, vars[n].String())
	}
}
