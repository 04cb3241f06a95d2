package builtins

import (
	"fmt"

	"github.com/viur-framework/logics/types"
)

// Func is a registered builtin's shape: it receives its already-evaluated
// arguments and returns a Value, or an error when the call itself is
// malformed (wrong arity, wrong argument kind). The eval package turns
// that error into the `#ERR:Invalid call to NAME()` sentinel — a Func
// never returns a sentinel string itself, it returns a Go error and lets
// the caller name the function.
type Func func(args []types.Value) (types.Value, error)

// Registry is the fixed, case-sensitive, string-keyed builtin function
// map required by spec.md §4.4. Grounded on the teacher's
// `builtins/registry.go` Registry shape (map + Register/Get), stripped
// of the MOO-specific by-ID dispatch table and verb-caller indirection
// this Language has no use for (no verbs, no call_function(id)).
type Registry struct {
	funcs map[string]Func
}

// NewRegistry builds a Registry with every spec.md §4.4 entry registered.
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]Func)}

	r.Register("bool", builtinBool)
	r.Register("int", builtinInt)
	r.Register("float", builtinFloat)
	r.Register("str", builtinStr)
	r.Register("len", builtinLen)

	r.Register("upper", builtinUpper)
	r.Register("lower", builtinLower)
	r.Register("strip", builtinStrip)
	r.Register("lstrip", builtinLstrip)
	r.Register("rstrip", builtinRstrip)
	r.Register("lfill", builtinLfill)
	r.Register("rfill", builtinRfill)
	r.Register("replace", builtinReplace)
	r.Register("split", builtinSplit)
	r.Register("join", builtinJoin)
	r.Register("startswith", builtinStartswith)
	r.Register("endswith", builtinEndswith)

	r.Register("keys", builtinKeys)
	r.Register("values", builtinValues)
	r.Register("min", builtinMin)
	r.Register("max", builtinMax)
	r.Register("sum", builtinSum)

	r.Register("round", builtinRound)
	r.Register("range", builtinRange)
	r.Register("currency", builtinCurrency)

	return r
}

// Register adds or overwrites a builtin under name.
func (r *Registry) Register(name string, fn Func) {
	r.funcs[name] = fn
}

// Lookup retrieves a builtin by name.
func (r *Registry) Lookup(name string) (Func, bool) {
	fn, ok := r.funcs[name]
	return fn, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.funcs[name]
	return ok
}

// NewTemplateRegistry builds a Registry with every expression builtin
// plus the Template engine's two additional registrations: a generator
// function `htmlInsertImage` and `formatCurrency`, a bare alias of
// `currency` kept only for Vistache-template compatibility — grounded on
// `original_source/logics/vistache.py`'s
// `self.addFunction("formatCurrency", self.functions["currency"])`.
func NewTemplateRegistry() *Registry {
	r := NewRegistry()
	r.Register("htmlInsertImage", builtinHTMLInsertImage)
	r.Register("formatCurrency", builtinCurrency)
	return r
}

func errArity(name string) error {
	return fmt.Errorf("builtins: %s: wrong number of arguments", name)
}
