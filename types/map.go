package types

import "strconv"

// Pair is a single Dict entry, returned by Dict.Pairs for iteration and
// by the keys()/values() builtins' in-order walk.
type Pair struct {
	Key   Value
	Value Value
}

// Dict is an insertion-ordered mapping from scalar Values (None, Bool,
// Int, Float, Str) to Values. Lists and Dicts are not valid keys.
type Dict struct {
	keys   []Value
	values []Value
	index  map[string]int
}

// NewEmptyDict returns an empty Dict ready for Set calls.
func NewEmptyDict() *Dict {
	return &Dict{index: make(map[string]int)}
}

// dictKey derives a comparable Go map key from a scalar Value. Kind is
// folded into the hash so that, e.g., Int(1) and Float(1.0) never collide
// even though their String() forms might.
func dictKey(v Value) string {
	return strconv.Itoa(int(v.kind)) + ":" + v.String()
}

// Set inserts or updates key -> val, preserving first-insertion order.
func (d *Dict) Set(key, val Value) {
	h := dictKey(key)
	if i, ok := d.index[h]; ok {
		d.values[i] = val
		return
	}
	d.index[h] = len(d.keys)
	d.keys = append(d.keys, key)
	d.values = append(d.values, val)
}

// Get looks up key, returning (None, false) on a miss.
func (d *Dict) Get(key Value) (Value, bool) {
	if i, ok := d.index[dictKey(key)]; ok {
		return d.values[i], true
	}
	return None, false
}

// Len returns the number of entries.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []Value {
	return d.keys
}

// Values returns the values in the same order as Keys.
func (d *Dict) Values() []Value {
	return d.values
}

// Pairs returns all entries in insertion order.
func (d *Dict) Pairs() []Pair {
	pairs := make([]Pair, len(d.keys))
	for i := range d.keys {
		pairs[i] = Pair{Key: d.keys[i], Value: d.values[i]}
	}
	return pairs
}

// Clone returns an independent copy; the Language never mutates a Dict
// that another Value still references.
func (d *Dict) Clone() *Dict {
	nd := &Dict{
		keys:   append([]Value(nil), d.keys...),
		values: append([]Value(nil), d.values...),
		index:  make(map[string]int, len(d.index)),
	}
	for k, v := range d.index {
		nd.index[k] = v
	}
	return nd
}

// IsValidKey reports whether v may be used as a Dict key: scalars only.
func IsValidKey(v Value) bool {
	switch v.kind {
	case KindNone, KindBool, KindInt, KindFloat, KindStr:
		return true
	default:
		return false
	}
}
