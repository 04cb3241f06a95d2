package types

import (
	"fmt"
)

// MaxStringLength is the maximum number of bytes a Str value may hold.
// A Str operation that would exceed it collapses to the ErrStringLimit
// sentinel instead of failing.
const MaxStringLength = 32 * 1024

// ErrStringLimit is the sentinel returned whenever a string operation
// would exceed MaxStringLength.
var ErrStringLimit = Value{kind: KindStr, s: fmt.Sprintf("#ERR limit of %d reached", MaxStringLength)}

// None is the single canonical None value.
var None = Value{kind: KindNone}

// True and False are the canonical Bool values.
var True = Value{kind: KindBool, b: true}
var False = Value{kind: KindBool, b: false}

// Value is the single tagged-union type every Logics expression produces
// and consumes. Exactly one payload field is meaningful at a time,
// selected by Kind. Operators switch on the (lhs.Kind, rhs.Kind) pair
// rather than dispatching through an interface.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	list []Value
	dict *Dict
}

// Kind reports the tag of v.
func (v Value) Kind() Kind {
	return v.kind
}

// Type is the Logics-visible type name, the same as Kind().String().
func (v Value) Type() string {
	return v.kind.String()
}

// NewNone returns the None value.
func NewNone() Value {
	return None
}

// NewBool wraps a bool.
func NewBool(b bool) Value {
	if b {
		return True
	}
	return False
}

// NewInt wraps an int64.
func NewInt(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// NewFloat wraps a float64.
func NewFloat(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// NewStr wraps a string, collapsing to ErrStringLimit on overflow.
func NewStr(s string) Value {
	if len(s) > MaxStringLength {
		return ErrStringLimit
	}
	return Value{kind: KindStr, s: s}
}

// NewList wraps a slice of Values. The slice is taken as-is, not copied;
// callers that need isolation should copy before calling.
func NewList(elems []Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: KindList, list: elems}
}

// NewDict wraps a *Dict. A nil dict is treated as empty.
func NewDict(d *Dict) Value {
	if d == nil {
		d = NewEmptyDict()
	}
	return Value{kind: KindDict, dict: d}
}

// New builds a Value from a raw Go value (used at the environment/JSON
// boundary: CLI -v flags, JSON-decoded variables, conformance fixtures).
// Unrecognized types stringify via fmt.Sprintf("%v", ...).
func New(raw interface{}) Value {
	switch x := raw.(type) {
	case nil:
		return None
	case Value:
		return x
	case bool:
		return NewBool(x)
	case int:
		return NewInt(int64(x))
	case int64:
		return NewInt(x)
	case float64:
		return NewFloat(x)
	case string:
		return NewStr(x)
	case []interface{}:
		elems := make([]Value, len(x))
		for i, e := range x {
			elems[i] = New(e)
		}
		return NewList(elems)
	case map[string]interface{}:
		d := NewEmptyDict()
		for k, v := range x {
			d.Set(NewStr(k), New(v))
		}
		return NewDict(d)
	default:
		return NewStr(fmt.Sprintf("%v", x))
	}
}

// Bool returns the raw bool payload (valid only when Kind() == KindBool).
func (v Value) Bool() bool { return v.b }

// Int returns the raw int64 payload (valid only when Kind() == KindInt).
func (v Value) Int() int64 { return v.i }

// Float returns the raw float64 payload (valid only when Kind() == KindFloat).
func (v Value) Float() float64 { return v.f }

// Str returns the raw string payload (valid only when Kind() == KindStr).
func (v Value) Str() string { return v.s }

// List returns the backing slice (valid only when Kind() == KindList).
func (v Value) List() []Value { return v.list }

// Dict returns the backing dict (valid only when Kind() == KindDict).
func (v Value) Dict() *Dict { return v.dict }

// Truthy implements the Logics truthiness rules: None and zero/empty
// values of every kind are falsy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNone:
		return false
	case KindBool:
		return v.b
	case KindInt:
		return v.i != 0
	case KindFloat:
		return v.f != 0
	case KindStr:
		return v.s != ""
	case KindList:
		return len(v.list) > 0
	case KindDict:
		return v.dict.Len() > 0
	default:
		return false
	}
}

// Len returns the element count for Str/List/Dict; any other kind falls
// back to the length of its string rendering (so Len(123) is 3,
// Len(true) is 4).
func (v Value) Len() int {
	switch v.kind {
	case KindStr:
		return len([]rune(v.s))
	case KindList:
		return len(v.list)
	case KindDict:
		return v.dict.Len()
	default:
		return len([]rune(v.String()))
	}
}

// IsError reports whether v is one of the "#ERR..." sentinel strings
// produced by a failed operation.
func (v Value) IsError() bool {
	return v.kind == KindStr && len(v.s) > 4 && v.s[:4] == "#ERR"
}

// Err builds an "#ERR:msg" sentinel Value.
func Err(msg string) Value {
	return NewStr("#ERR:" + msg)
}
