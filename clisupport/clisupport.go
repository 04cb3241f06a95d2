// Package clisupport holds the flag-parsing and binding-resolution logic
// shared by cmd/logics and cmd/vistache: the two commands differ only in
// whether the positional source compiles through parser.ParseExpression
// or template.Compile, so everything else — -v bindings, -e/--environment,
// -r/--run vs AST dump, -D/--debug, -V/--version, exit codes — lives here
// once. Grounded on the teacher's `cmd/barn/main.go` (stdlib `flag`,
// `log.Fatalf`/`os.Exit` for error reporting, no third-party CLI
// framework).
package clisupport

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/viur-framework/logics/types"
)

// Binding is one `-v NAME VALUE` occurrence, in the order given.
type Binding struct {
	Name  string
	Value string
}

// Options is the parsed flag surface shared by both commands.
type Options struct {
	Run         bool
	Debug       bool
	Environment bool
	Version     bool
	Source      string // positional argument, unresolved (path or literal)
	Bindings    []Binding
}

// errUsage marks a usage/parse failure that should exit nonzero without a
// stack of wrapped context noise.
type errUsage struct{ msg string }

func (e *errUsage) Error() string { return e.msg }

// ParseArgs extracts `-v NAME VALUE` pairs (stdlib flag.FlagSet only
// supports one token per flag, so these are pulled out before the
// FlagSet sees the rest) and parses everything else through a FlagSet
// named prog. Exactly one positional argument (the expression or
// template source) is required unless -V/--version was given.
func ParseArgs(prog string, args []string) (Options, error) {
	bindings, remainder, err := extractVarFlags(args)
	if err != nil {
		return Options{}, &errUsage{err.Error()}
	}

	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	run := fs.Bool("run", false, "execute the source instead of dumping its parsed AST")
	fs.BoolVar(run, "r", false, "shorthand for -run")
	debug := fs.Bool("debug", false, "print the parsed source and bindings before running")
	fs.BoolVar(debug, "D", false, "shorthand for -debug")
	environment := fs.Bool("environment", false, "import the process environment into the bindings")
	fs.BoolVar(environment, "e", false, "shorthand for -environment")
	version := fs.Bool("version", false, "print the version and exit")
	fs.BoolVar(version, "V", false, "shorthand for -version")

	if err := fs.Parse(remainder); err != nil {
		return Options{}, &errUsage{err.Error()}
	}

	opts := Options{
		Run:         *run,
		Debug:       *debug,
		Environment: *environment,
		Version:     *version,
		Bindings:    bindings,
	}
	if opts.Version {
		return opts, nil
	}

	rest := fs.Args()
	if len(rest) != 1 {
		return Options{}, &errUsage{fmt.Sprintf("%s: expected exactly one positional argument (expression/template source), got %d", prog, len(rest))}
	}
	opts.Source = rest[0]
	return opts, nil
}

// IsUsageError reports whether err came from flag parsing rather than
// evaluation, so callers can print it without a "Fatalf"-style prefix.
func IsUsageError(err error) bool {
	_, ok := err.(*errUsage)
	return ok
}

// extractVarFlags pulls every "-v NAME VALUE" / "--var NAME VALUE" triple
// out of args, in order, returning the untouched remainder.
func extractVarFlags(args []string) ([]Binding, []string, error) {
	var bindings []Binding
	var remainder []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "-v" || a == "--var" {
			if i+2 >= len(args) {
				return nil, nil, fmt.Errorf("%s requires a NAME and a VALUE argument", a)
			}
			bindings = append(bindings, Binding{Name: args[i+1], Value: args[i+2]})
			i += 2
			continue
		}
		remainder = append(remainder, a)
	}
	return bindings, remainder, nil
}

// ResolveSource returns src's file contents if src names a readable
// file, otherwise src itself — the positional argument's "file path or
// literal" rule.
func ResolveSource(src string) string {
	data, err := os.ReadFile(src)
	if err != nil {
		return src
	}
	return string(data)
}

// ResolveBinding implements the `-v VAR VALUE` rule: VALUE is read as a
// file and JSON-decoded when it names a readable file (None on decode
// failure), otherwise VALUE is bound as the literal string.
func ResolveBinding(b Binding) types.Value {
	data, err := os.ReadFile(b.Value)
	if err != nil {
		return types.NewStr(b.Value)
	}
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return types.None
	}
	return types.New(raw)
}

// BuildEnvironment resolves opts' -e/--environment and -v bindings into a
// single vars map, ready for eval.NewEnvironmentFrom. Process environment
// variables are applied first so that explicit -v bindings always win.
func BuildEnvironment(opts Options) map[string]types.Value {
	vars := make(map[string]types.Value)
	if opts.Environment {
		for _, kv := range os.Environ() {
			parts := strings.SplitN(kv, "=", 2)
			if len(parts) == 2 {
				vars[parts[0]] = types.NewStr(parts[1])
			}
		}
	}
	for _, b := range opts.Bindings {
		vars[b.Name] = ResolveBinding(b)
	}
	return vars
}
