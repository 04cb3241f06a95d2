package builtins

import "github.com/viur-framework/logics/types"

// builtinRange implements `range(a, b=None, step=None)`, mirroring
// Python's range(): one argument is an exclusive upper bound from 0,
// two give [start, end), three add a step (which may be negative).
// Grounded on `original_source/logics/logics.py`'s `_range`.
func builtinRange(args []types.Value) (types.Value, error) {
	if len(args) < 1 || len(args) > 3 {
		return types.None, errArity("range")
	}

	var start, end, step int64
	switch len(args) {
	case 1:
		start, end, step = 0, types.ParseInt(args[0].String(), 0), 1
	case 2:
		start = types.ParseInt(args[0].String(), 0)
		end = types.ParseInt(args[1].String(), 0)
		step = 1
	case 3:
		start = types.ParseInt(args[0].String(), 0)
		end = types.ParseInt(args[1].String(), 0)
		step = types.ParseInt(args[2].String(), 0)
	}
	if step == 0 {
		return types.None, errArity("range")
	}

	var out []types.Value
	if step > 0 {
		for i := start; i < end; i += step {
			out = append(out, types.NewInt(i))
		}
	} else {
		for i := start; i > end; i += step {
			out = append(out, types.NewInt(i))
		}
	}
	return types.NewList(out), nil
}
