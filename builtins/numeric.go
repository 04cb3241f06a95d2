package builtins

import (
	"math"

	"github.com/viur-framework/logics/types"
)

// builtinRound implements `round(f, digits=0)`. Grounded on
// `original_source/logics/logics.py`'s
// `addFunction("round", lambda f, deci=0: optimizeValue(round(parseFloat(f), parseInt(deci))))`
// — a digits=0 round collapses back to Int, matching `types.Optimize`'s
// float-that-equals-its-truncated-int rule, applied here directly
// rather than through string round-tripping.
func builtinRound(args []types.Value) (types.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return types.None, errArity("round")
	}
	f := types.ParseFloat(args[0].String(), 0)
	digits := int64(0)
	if len(args) == 2 {
		digits = types.ParseInt(args[1].String(), 0)
	}

	mult := math.Pow(10, float64(digits))
	rounded := math.Round(f*mult) / mult

	if digits <= 0 && rounded == math.Trunc(rounded) {
		return types.NewInt(int64(rounded)), nil
	}
	return types.NewFloat(rounded), nil
}
