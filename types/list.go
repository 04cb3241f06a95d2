package types

// listIndex returns the 0-based element at i, or None if i is out of range.
// Negative indices count from the end, matching Python slicing semantics.
func listIndex(list []Value, i int64) Value {
	n := int64(len(list))
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return None
	}
	return list[i]
}

// listSlice returns list[start:end] with Python slice semantics: either
// bound may be omitted (nil), negative indices count from the end, and
// out-of-range bounds clamp rather than error.
func listSlice(list []Value, start, end *int64) []Value {
	n := int64(len(list))

	lo := int64(0)
	if start != nil {
		lo = normalizeSliceIndex(*start, n)
	}
	hi := n
	if end != nil {
		hi = normalizeSliceIndex(*end, n)
	}
	if hi < lo {
		hi = lo
	}

	out := make([]Value, hi-lo)
	copy(out, list[lo:hi])
	return out
}

func normalizeSliceIndex(i, n int64) int64 {
	if i < 0 {
		i += n
	}
	if i < 0 {
		i = 0
	}
	if i > n {
		i = n
	}
	return i
}

// Concat returns a fresh list with b's elements appended after a's.
func Concat(a, b []Value) []Value {
	out := make([]Value, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

// Iterate returns the elements v yields as a sequence: a List's own
// elements, a Dict's keys, a Str's runes (each as a one-rune Str), and
// any other kind (None included) as a single-element sequence
// containing itself. Shared by eval's comprehension/template-loop
// iteration and the min/max/sum builtins so both agree on what counts
// as "iterable" (spec.md §3).
func Iterate(v Value) []Value {
	switch v.kind {
	case KindList:
		return v.list
	case KindDict:
		return v.dict.Keys()
	case KindStr:
		runes := []rune(v.s)
		out := make([]Value, len(runes))
		for i, r := range runes {
			out[i] = NewStr(string(r))
		}
		return out
	default:
		return []Value{v}
	}
}
