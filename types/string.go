package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// String returns the display representation of v: the form produced by
// the str() builtin and by string-concatenation ("strings" emit nodes).
// A top-level Str renders unquoted; Str elements nested inside a List or
// Dict render quoted, through Repr.
func (v Value) String() string {
	switch v.kind {
	case KindNone:
		return ""
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return formatFloat(v.f)
	case KindStr:
		return v.s
	case KindList:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.Repr()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindDict:
		pairs := v.dict.Pairs()
		parts := make([]string, len(pairs))
		for i, p := range pairs {
			parts[i] = fmt.Sprintf("%s: %s", p.Key.Repr(), p.Value.Repr())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return ""
	}
}

// Repr is the debug/nested representation: strings are quoted, other
// kinds match String(). Used when rendering list/dict elements.
func (v Value) Repr() string {
	if v.kind == KindStr {
		return strconv.Quote(v.s)
	}
	return v.String()
}

func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return "nan"
	}
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
