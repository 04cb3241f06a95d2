package builtins

import (
	"testing"

	"github.com/viur-framework/logics/types"
)

func mustCall(t *testing.T, r *Registry, name string, args ...types.Value) types.Value {
	t.Helper()
	fn, ok := r.Lookup(name)
	if !ok {
		t.Fatalf("%s not registered", name)
	}
	v, err := fn(args)
	if err != nil {
		t.Fatalf("%s(...) error: %v", name, err)
	}
	return v
}

func TestConversionBuiltins(t *testing.T) {
	r := NewRegistry()

	if v := mustCall(t, r, "bool", types.NewInt(0)); v.Truthy() {
		t.Fatalf("bool(0) should be falsy")
	}
	if v := mustCall(t, r, "int", types.NewStr("3.7")); v.Int() != 3 {
		t.Fatalf("int(\"3.7\") = %v, want 3", v)
	}
	if v := mustCall(t, r, "str", types.NewInt(42)); v.String() != "42" {
		t.Fatalf("str(42) = %q", v.String())
	}
	if v := mustCall(t, r, "len", types.NewStr("hello")); v.Int() != 5 {
		t.Fatalf("len(\"hello\") = %v", v)
	}
}

func TestStringBuiltins(t *testing.T) {
	r := NewRegistry()

	if v := mustCall(t, r, "upper", types.NewStr("go")); v.String() != "GO" {
		t.Fatalf("upper = %q", v.String())
	}
	if v := mustCall(t, r, "strip", types.NewStr("  hi  ")); v.String() != "hi" {
		t.Fatalf("strip = %q", v.String())
	}
	if v := mustCall(t, r, "lfill", types.NewStr("7"), types.NewInt(3), types.NewStr("0")); v.String() != "007" {
		t.Fatalf("lfill = %q", v.String())
	}
	if v := mustCall(t, r, "rfill", types.NewStr("7"), types.NewInt(3), types.NewStr("0")); v.String() != "700" {
		t.Fatalf("rfill = %q", v.String())
	}
	if v := mustCall(t, r, "replace", types.NewStr("aabbaa"), types.NewStr("a"), types.NewStr("x")); v.String() != "xxbbxx" {
		t.Fatalf("replace = %q", v.String())
	}
	if v := mustCall(t, r, "startswith", types.NewStr("hello"), types.NewStr("he")); !v.Truthy() {
		t.Fatalf("startswith should be true")
	}

	split := mustCall(t, r, "split", types.NewStr("a,b,c"))
	if split.Len() != 3 {
		t.Fatalf("split len = %d, want 3", split.Len())
	}

	joined := mustCall(t, r, "join", split, types.NewStr("-"))
	if joined.String() != "a-b-c" {
		t.Fatalf("join = %q", joined.String())
	}
}

func TestCollectionBuiltins(t *testing.T) {
	r := NewRegistry()
	list := types.NewList([]types.Value{types.NewInt(3), types.NewInt(1), types.NewInt(2)})

	if v := mustCall(t, r, "min", list); v.Int() != 1 {
		t.Fatalf("min = %v", v)
	}
	if v := mustCall(t, r, "max", list); v.Int() != 3 {
		t.Fatalf("max = %v", v)
	}
	if v := mustCall(t, r, "sum", list); v.Int() != 6 {
		t.Fatalf("sum = %v", v)
	}

	mixed := types.NewList([]types.Value{types.NewInt(1), types.NewStr("skip"), types.NewFloat(1.5)})
	if v := mustCall(t, r, "sum", mixed); v.Float() != 2.5 {
		t.Fatalf("sum with non-numeric entry = %v, want 2.5", v)
	}

	if v := mustCall(t, r, "sum", types.NewStr("123")); v.Int() != 6 {
		t.Fatalf("sum over a Str's digits = %v, want 6", v)
	}
}

func TestRoundAndRange(t *testing.T) {
	r := NewRegistry()

	if v := mustCall(t, r, "round", types.NewFloat(3.456), types.NewInt(2)); v.Float() != 3.46 {
		t.Fatalf("round = %v", v)
	}
	if v := mustCall(t, r, "round", types.NewFloat(3.2)); v.Kind() != types.KindInt || v.Int() != 3 {
		t.Fatalf("round with no digits should collapse to Int, got %v", v)
	}

	rng := mustCall(t, r, "range", types.NewInt(5))
	if rng.Len() != 5 {
		t.Fatalf("range(5) len = %d", rng.Len())
	}
	if rng.List()[4].Int() != 4 {
		t.Fatalf("range(5)[4] = %v, want 4", rng.List()[4])
	}
}

func TestCurrencyFormatting(t *testing.T) {
	r := NewRegistry()

	v := mustCall(t, r, "currency", types.NewFloat(1234567.891))
	if v.String() != "1.234.567,89 €" {
		t.Fatalf("currency = %q", v.String())
	}

	v = mustCall(t, r, "currency", types.NewFloat(-42.5), types.NewStr("."), types.NewStr(","), types.NewStr(""))
	if v.String() != "-42.50" {
		t.Fatalf("currency with custom separators = %q", v.String())
	}
}

func TestUnknownFunctionNotRegistered(t *testing.T) {
	r := NewRegistry()
	if r.Has("notarealfunction") {
		t.Fatalf("unexpected builtin registered")
	}
}

func TestTemplateRegistryAddsExtras(t *testing.T) {
	r := NewTemplateRegistry()
	if !r.Has("htmlInsertImage") || !r.Has("formatCurrency") {
		t.Fatalf("template registry missing extras")
	}
	if !r.Has("upper") {
		t.Fatalf("template registry should still carry expression builtins")
	}
}
