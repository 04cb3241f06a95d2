package types

import "testing"

func TestInStringifiesBothSidesForScalars(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"int in str", NewInt(2), NewStr("123"), true},
		{"str in int", NewStr("2"), NewInt(12345), true},
		{"int not in str", NewInt(9), NewStr("123"), false},
		{"bool in str rendering", NewBool(true), NewStr("is True"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := In(tt.a, tt.b); got != tt.want {
				t.Errorf("In(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestInCollections(t *testing.T) {
	list := NewList([]Value{NewInt(1), NewInt(2), NewInt(3)})
	if !In(NewInt(2), list) {
		t.Error("In(2, [1,2,3]) = false, want true")
	}
	if In(NewInt(9), list) {
		t.Error("In(9, [1,2,3]) = true, want false")
	}

	d := NewEmptyDict()
	d.Set(NewStr("a"), NewInt(1))
	dict := NewDict(d)
	if !In(NewStr("a"), dict) {
		t.Error(`In("a", dict) = false, want true`)
	}
}
