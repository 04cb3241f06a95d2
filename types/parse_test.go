package types

import "testing"

func TestParseInt(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"42", 42},
		{"  42abc", 42},
		{"-3", -3},
		{"abc", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := ParseInt(tt.in, 0); got != tt.want {
			t.Errorf("ParseInt(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"3.14", 3.14},
		{"3.14.15", 3.14},
		{"abc", 0},
	}
	for _, tt := range tests {
		if got := ParseFloat(tt.in, 0); got != tt.want {
			t.Errorf("ParseFloat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOptimize(t *testing.T) {
	tests := []struct {
		in       string
		wantKind Kind
	}{
		{"42", KindInt},
		{"3.5", KindFloat},
		{"007", KindStr},
		{"hello", KindStr},
		{"3.0", KindInt},
	}
	for _, tt := range tests {
		if got := Optimize(tt.in).Kind(); got != tt.wantKind {
			t.Errorf("Optimize(%q).Kind() = %v, want %v", tt.in, got, tt.wantKind)
		}
	}
}
