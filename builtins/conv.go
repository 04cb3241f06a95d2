package builtins

import "github.com/viur-framework/logics/types"

// builtinBool implements `bool(x)`: boolean coercion via Value truthiness.
// Grounded on `original_source/logics/logics.py`'s
// `addFunction("bool", lambda x: bool(x))`.
func builtinBool(args []types.Value) (types.Value, error) {
	if len(args) != 1 {
		return types.None, errArity("bool")
	}
	return types.NewBool(args[0].Truthy()), nil
}

// builtinInt implements `int(x)`, grounded on
// `addFunction("int", lambda x: parseInt(parseFloat(x)))` — parse as
// float first so "3.7" truncates to 3 rather than failing to parse.
func builtinInt(args []types.Value) (types.Value, error) {
	if len(args) != 1 {
		return types.None, errArity("int")
	}
	f := types.ParseFloat(args[0].String(), 0)
	return types.NewInt(int64(f)), nil
}

// builtinFloat implements `float(x)`.
func builtinFloat(args []types.Value) (types.Value, error) {
	if len(args) != 1 {
		return types.None, errArity("float")
	}
	return types.NewFloat(types.ParseFloat(args[0].String(), 0)), nil
}

// builtinStr implements `str(x)`: plain, non-optimizing string
// rendering (unlike a String literal, the result is never re-parsed
// back into Int/Float).
func builtinStr(args []types.Value) (types.Value, error) {
	if len(args) != 1 {
		return types.None, errArity("str")
	}
	return types.NewStr(args[0].String()), nil
}

// builtinLen implements `len(x)` under the §4.1 length rule: rune count
// for Str, element count for List/Dict, and the rune count of the string
// rendering for every other kind.
func builtinLen(args []types.Value) (types.Value, error) {
	if len(args) != 1 {
		return types.None, errArity("len")
	}
	return types.NewInt(int64(args[0].Len())), nil
}
