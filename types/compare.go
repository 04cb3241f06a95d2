package types

// Equal implements the "eq" comparison: deep structural equality across
// kinds, with numeric cross-promotion (Int(1) == Float(1.0)).
func Equal(a, b Value) bool {
	if a.kind == KindNone || b.kind == KindNone {
		return a.kind == b.kind
	}
	if isNumeric(a) && isNumeric(b) {
		return toFloat(a) == toFloat(b)
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindBool:
		return a.b == b.b
	case KindStr:
		return a.s == b.s
	case KindList:
		if len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !Equal(a.list[i], b.list[i]) {
				return false
			}
		}
		return true
	case KindDict:
		if a.dict.Len() != b.dict.Len() {
			return false
		}
		for _, p := range a.dict.Pairs() {
			bv, ok := b.dict.Get(p.Key)
			if !ok || !Equal(p.Value, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func isNumeric(v Value) bool {
	return v.kind == KindInt || v.kind == KindFloat || v.kind == KindBool
}

// Less implements ordered comparison ("<"). Incomparable kinds (e.g.
// Dict vs Dict, or mismatched non-numeric kinds) return false rather
// than erroring, matching the Language's no-exceptions contract.
func Less(a, b Value) bool {
	if isNumeric(a) && isNumeric(b) {
		return toFloat(a) < toFloat(b)
	}
	if a.kind == KindStr && b.kind == KindStr {
		return a.s < b.s
	}
	if a.kind == KindList && b.kind == KindList {
		n := len(a.list)
		if len(b.list) < n {
			n = len(b.list)
		}
		for i := 0; i < n; i++ {
			if Equal(a.list[i], b.list[i]) {
				continue
			}
			return Less(a.list[i], b.list[i])
		}
		return len(a.list) < len(b.list)
	}
	return false
}

// Greater is the mirror of Less.
func Greater(a, b Value) bool {
	return Less(b, a)
}

// LessEq is "<=".
func LessEq(a, b Value) bool {
	return Less(a, b) || Equal(a, b)
}

// GreaterEq is ">=".
func GreaterEq(a, b Value) bool {
	return Greater(a, b) || Equal(a, b)
}

// In implements the "in" emit node: membership of a in the collection b
// (List element or Dict key). Any non-collection b falls back to the
// original's `str(item) in str(self)`: both sides are stringified and
// checked as a substring, so `2 in "123"` and `"2" in 12345` are both
// true.
func In(a, b Value) bool {
	switch b.kind {
	case KindList:
		for _, e := range b.list {
			if Equal(a, e) {
				return true
			}
		}
		return false
	case KindDict:
		_, ok := b.dict.Get(a)
		return ok
	default:
		return containsSubstr(b.String(), a.String())
	}
}

func containsSubstr(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	n, m := len(haystack), len(needle)
	if m > n {
		return false
	}
	for i := 0; i+m <= n; i++ {
		if haystack[i:i+m] == needle {
			return true
		}
	}
	return false
}
