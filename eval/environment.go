package eval

import "github.com/viur-framework/logics/types"

// Environment is the variable binding table an evaluation runs against.
// It is a single flat map, not a parent-chained scope stack: the
// comprehension flow form shadows its one rebound loop variable for the
// duration of each iteration via Save/Restore rather than pushing a
// whole nested scope. This mirrors the teacher's Environment shape
// (map + Get/Set) minus the parent-scope chain, which this Language
// never needs since it has no nested function/verb scopes.
type Environment struct {
	vars map[string]types.Value
}

// NewEnvironment returns an empty Environment.
func NewEnvironment() *Environment {
	return &Environment{vars: make(map[string]types.Value)}
}

// NewEnvironmentFrom builds an Environment pre-populated with vars —
// the CLI's `-v NAME VALUE`/`-e` flags, conformance fixture input, and
// the template renderer's initial context all go through this.
func NewEnvironmentFrom(vars map[string]types.Value) *Environment {
	e := NewEnvironment()
	for k, v := range vars {
		e.vars[k] = v
	}
	return e
}

// Get returns the binding for name, or None if name is unbound. A
// missing variable is not a runtime error in this Language (unlike
// MOO's E_VARNF) — it silently reads as None, matching
// `original_source/logics-py/logics/logics.py`'s `values.get(name)`.
func (e *Environment) Get(name string) types.Value {
	if v, ok := e.vars[name]; ok {
		return v
	}
	return types.None
}

// Set creates or overwrites a binding.
func (e *Environment) Set(name string, v types.Value) {
	e.vars[name] = v
}

// Binding captures a name's value (and whether it existed at all) prior
// to a shadowing assignment, so Restore can undo it precisely. Exported
// so the vm package's comprehension opcodes can shadow/restore a loop
// variable the same way eval.evalComprehension does.
type Binding struct {
	name    string
	value   types.Value
	existed bool
}

// Save captures name's current binding.
func (e *Environment) Save(name string) Binding {
	v, ok := e.vars[name]
	return Binding{name: name, value: v, existed: ok}
}

// Restore undoes a shadowing assignment captured by Save.
func (e *Environment) Restore(b Binding) {
	if b.existed {
		e.vars[b.name] = b.value
	} else {
		delete(e.vars, b.name)
	}
}

// Snapshot returns a shallow copy of every current binding. The
// template renderer's `loop` context injection rebinds several names
// at once (index/index0/first/last/item/length/parent) and needs to
// restore the whole set afterward, not just one name.
func (e *Environment) Snapshot() map[string]types.Value {
	cp := make(map[string]types.Value, len(e.vars))
	for k, v := range e.vars {
		cp[k] = v
	}
	return cp
}

// RestoreSnapshot replaces the entire binding set with a prior Snapshot.
func (e *Environment) RestoreSnapshot(snap map[string]types.Value) {
	e.vars = snap
}
