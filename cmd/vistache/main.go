// Command vistache is the template-engine CLI: it compiles and, with
// -r/--run, renders a Vistache template against a set of `-v`/
// -e-supplied variable bindings. Shares its flag surface and binding
// resolution with cmd/logics via the clisupport package; grounded on the
// teacher's `cmd/barn/main.go` idiom the same way.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/viur-framework/logics/builtins"
	"github.com/viur-framework/logics/clisupport"
	"github.com/viur-framework/logics/eval"
	"github.com/viur-framework/logics/parser"
	"github.com/viur-framework/logics/template"
	"github.com/viur-framework/logics/trace"
	"github.com/viur-framework/logics/types"
)

const version = "vistache 0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := clisupport.ParseArgs("vistache", args)
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

	templateOpts := template.DefaultOptions()
	root, err := template.Compile(src, templateOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vistache: compile error: %v\n", err)
		return 1
	}

	if opts.Debug {
		printDebug(src, vars)
		trace.Init(true, nil, os.Stderr)
	}

	if !opts.Run {
		fmt.Print(clisupport.DumpNode(root))
		return 0
	}

	env := eval.NewEnvironmentFrom(vars)
	ev := eval.NewEvaluator(env, builtins.NewTemplateRegistry())
	ev.EmptyValue = templateOpts.EmptyValue
	if opts.Debug {
		ev.Trace = func(n *parser.Node, result types.Value) {
			trace.Node(n.Emit, n.Match, result)
		}
	}

	result, err := ev.Run(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vistache: render error: %v\n", err)
		return 1
	}
	fmt.Print(result.String())
	return 0
}

func printDebug(src string, vars map[string]types.Value) {
	fmt.Fprintf(os.Stderr, "[debug] template: %s\n", src)
	names := make([]string, 0, len(vars))
	for n := range vars {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(os.Stderr, "[debug] %s = %s\n", n, vars[n].String())
	}
}
