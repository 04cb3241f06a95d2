package builtins

import (
	"fmt"
	"strings"

	"github.com/viur-framework/logics/types"
)

// builtinCurrency implements
// `currency(v, decimal=",", thousands=".", symbol="€")`: two decimal
// digits, thousands grouping every three digits from the right, an
// optional trailing symbol after a space. Grounded on
// `original_source/logics/logics.py`'s `currency` closure.
func builtinCurrency(args []types.Value) (types.Value, error) {
	if len(args) < 1 || len(args) > 4 {
		return types.None, errArity("currency")
	}
	var value float64
	switch args[0].Kind() {
	case types.KindFloat:
		value = args[0].Float()
	case types.KindInt:
		value = float64(args[0].Int())
	default:
		value = types.ParseFloat(args[0].String(), 0)
	}
	decimal, thousands, symbol := ",", ".", "€"
	if len(args) >= 2 {
		decimal = args[1].String()
	}
	if len(args) >= 3 {
		thousands = args[2].String()
	}
	if len(args) >= 4 {
		symbol = args[3].String()
	}

	neg := value < 0
	if neg {
		value = -value
	}

	formatted := fmt.Sprintf("%.2f", value)
	before, behind, _ := strings.Cut(formatted, ".")

	grouped := groupThousands(before, thousands)

	ret := grouped + decimal + behind
	if neg {
		ret = "-" + ret
	}
	if symbol != "" {
		ret += " " + symbol
	}
	return types.NewStr(strings.TrimSpace(ret)), nil
}

// groupThousands inserts sep every three digits counting from the
// right of digits.
func groupThousands(digits, sep string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
