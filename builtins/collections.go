package builtins

import "github.com/viur-framework/logics/types"

// builtinKeys implements `keys(d)`: List projection of a Dict's keys,
// in insertion order.
func builtinKeys(args []types.Value) (types.Value, error) {
	if len(args) != 1 || args[0].Kind() != types.KindDict {
		return types.None, errArity("keys")
	}
	return types.NewList(args[0].Dict().Keys()), nil
}

// builtinValues implements `values(d)`.
func builtinValues(args []types.Value) (types.Value, error) {
	if len(args) != 1 || args[0].Kind() != types.KindDict {
		return types.None, errArity("values")
	}
	return types.NewList(args[0].Dict().Values()), nil
}

// sequenceElements returns the elements min/max/sum reduce over, via the
// same types.Iterate a comprehension or template loop iterates with: a
// List's own elements, a Dict's keys, a Str's runes, and any other kind
// as a one-element sequence containing itself.
func sequenceElements(v types.Value) []types.Value {
	return types.Iterate(v)
}

// builtinMax implements `max(x)` over a sequence.
func builtinMax(args []types.Value) (types.Value, error) {
	if len(args) != 1 {
		return types.None, errArity("max")
	}
	elems := sequenceElements(args[0])
	if len(elems) == 0 {
		return types.None, nil
	}
	best := elems[0]
	for _, e := range elems[1:] {
		if types.Greater(e, best) {
			best = e
		}
	}
	return best, nil
}

// builtinMin implements `min(x)` over a sequence.
func builtinMin(args []types.Value) (types.Value, error) {
	if len(args) != 1 {
		return types.None, errArity("min")
	}
	elems := sequenceElements(args[0])
	if len(elems) == 0 {
		return types.None, nil
	}
	best := elems[0]
	for _, e := range elems[1:] {
		if types.Less(e, best) {
			best = e
		}
	}
	return best, nil
}

// builtinSum implements `sum(x)`, skipping non-numeric entries by
// coercing them to 0. Grounded on
// `original_source/logics/logics.py`'s
// `sum([optimizeValue(_, allow=[bool, int, float], default=0) for _ in v])`.
func builtinSum(args []types.Value) (types.Value, error) {
	if len(args) != 1 {
		return types.None, errArity("sum")
	}
	elems := sequenceElements(args[0])

	isFloat := false
	var fsum float64
	var isum int64
	for _, e := range elems {
		switch e.Kind() {
		case types.KindInt:
			isum += e.Int()
			fsum += float64(e.Int())
		case types.KindBool:
			if e.Bool() {
				isum++
				fsum++
			}
		case types.KindFloat:
			isFloat = true
			fsum += e.Float()
		default:
			// Non-numeric entries coerce to 0, but a numeric-looking
			// string (e.g. a comprehension over "123"'s runes) still
			// contributes its value, matching the original's
			// optimizeValue(..., allow=[bool, int, float], default=0).
			switch opt := types.Optimize(e.String()); opt.Kind() {
			case types.KindInt:
				isum += opt.Int()
				fsum += float64(opt.Int())
			case types.KindFloat:
				isFloat = true
				fsum += opt.Float()
			}
		}
	}
	if isFloat {
		return types.NewFloat(fsum), nil
	}
	return types.NewInt(isum), nil
}
