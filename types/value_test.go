package types

import "testing"

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"none", None, false},
		{"false", NewBool(false), false},
		{"true", NewBool(true), true},
		{"zero int", NewInt(0), false},
		{"nonzero int", NewInt(1), true},
		{"zero float", NewFloat(0), false},
		{"empty str", NewStr(""), false},
		{"nonempty str", NewStr("x"), true},
		{"empty list", NewList(nil), false},
		{"nonempty list", NewList([]Value{NewInt(1)}), true},
		{"empty dict", NewDict(NewEmptyDict()), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Truthy(); got != tt.want {
				t.Errorf("Truthy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLenFallsBackToStringRendering(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want int
	}{
		{"int", NewInt(123), 3},
		{"bool", NewBool(true), 4},
		{"none", None, 0},
		{"str unaffected", NewStr("ab"), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Len(); got != tt.want {
				t.Errorf("Len() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStringRendering(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{NewInt(42), "42"},
		{NewFloat(3), "3.0"},
		{NewFloat(3.5), "3.5"},
		{NewBool(true), "True"},
		{NewBool(false), "False"},
		{None, ""},
		{NewStr("hi"), "hi"},
		{NewList([]Value{NewInt(1), NewStr("a")}), `[1, "a"]`},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestStringOverflowSentinel(t *testing.T) {
	big := make([]byte, MaxStringLength+1)
	for i := range big {
		big[i] = 'a'
	}
	got := NewStr(string(big))
	if !got.IsError() {
		t.Fatalf("expected overflow sentinel, got %q", got.String())
	}
}

func TestDictRoundtrip(t *testing.T) {
	d := NewEmptyDict()
	d.Set(NewStr("a"), NewInt(1))
	d.Set(NewStr("b"), NewInt(2))
	d.Set(NewStr("a"), NewInt(3))

	if got := d.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
	v, ok := d.Get(NewStr("a"))
	if !ok || v.Int() != 3 {
		t.Fatalf("Get(a) = %v, %v, want 3, true", v, ok)
	}
	keys := d.Keys()
	if len(keys) != 2 || keys[0].Str() != "a" || keys[1].Str() != "b" {
		t.Fatalf("unexpected key order: %v", keys)
	}
}
