package types

// Index implements the "index" emit node: container[key]. Dict does a
// key lookup (None on miss), List/Str do an integer element/char lookup
// with Python-style negative indexing (None out of range), and any other
// container kind falls back to indexing its string rendering.
func Index(container, key Value) Value {
	switch container.kind {
	case KindDict:
		v, ok := container.dict.Get(key)
		if !ok {
			return None
		}
		return v
	case KindList:
		return listIndex(container.list, toInt(key))
	case KindStr:
		return strIndex(container.s, toInt(key))
	default:
		return strIndex(container.String(), toInt(key))
	}
}

// Attr implements the "attr" emit node: container.name. There is no
// object system here, so this is Dict-only key access by name; any other
// container kind yields None.
func Attr(container Value, name string) Value {
	if container.kind != KindDict {
		return None
	}
	v, ok := container.dict.Get(NewStr(name))
	if !ok {
		return None
	}
	return v
}

// Slice implements the "slice" emit node: container[start:end]. Dict is
// not sliceable (None). List/Str slice with Python bounds semantics; any
// other container kind falls back to slicing its string rendering.
func Slice(container Value, start, end *int64) Value {
	switch container.kind {
	case KindDict:
		return None
	case KindList:
		return NewList(listSlice(container.list, start, end))
	case KindStr:
		return NewStr(strSlice(container.s, start, end))
	default:
		return NewStr(strSlice(container.String(), start, end))
	}
}

func strIndex(s string, i int64) Value {
	runes := []rune(s)
	n := int64(len(runes))
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return None
	}
	return NewStr(string(runes[i]))
}

func strSlice(s string, start, end *int64) string {
	runes := []rune(s)
	n := int64(len(runes))

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
	return string(runes[lo:hi])
}
