package parser

import "testing"

func mustParse(t *testing.T, src string) *Node {
	t.Helper()
	n, err := ParseExpression(src)
	if err != nil {
		t.Fatalf("ParseExpression(%q) error: %v", src, err)
	}
	return n
}

func TestParseArithmeticPrecedence(t *testing.T) {
	n := mustParse(t, "1 + 2 * 3")
	if n.Emit != EmitAdd {
		t.Fatalf("root emit = %s, want add", n.Emit)
	}
	if n.Children[1].Emit != EmitMul {
		t.Fatalf("right child emit = %s, want mul", n.Children[1].Emit)
	}
}

func TestParsePowerRightAssociative(t *testing.T) {
	n := mustParse(t, "2 ** 3 ** 2")
	if n.Emit != EmitPow {
		t.Fatalf("root emit = %s, want pow", n.Emit)
	}
	if n.Children[1].Emit != EmitPow {
		t.Fatalf("power should be right-associative, got %s", n.Children[1].Emit)
	}
}

func TestParseTernary(t *testing.T) {
	n := mustParse(t, "1 if x else 2")
	if n.Emit != EmitIf {
		t.Fatalf("emit = %s, want if", n.Emit)
	}
	if n.Children[0].Match != "1" || n.Children[2].Match != "2" {
		t.Fatalf("then/else children wrong: %+v", n.Children)
	}
}

func TestParseChainedComparison(t *testing.T) {
	n := mustParse(t, "1 < x < 10")
	if n.Emit != EmitCmp {
		t.Fatalf("emit = %s, want cmp", n.Emit)
	}
	if n.Match != "lt lt" {
		t.Fatalf("match = %q, want %q", n.Match, "lt lt")
	}
	if len(n.Children) != 3 {
		t.Fatalf("expected 3 operands, got %d", len(n.Children))
	}
}

func TestParseAttrIndexCallChain(t *testing.T) {
	n := mustParse(t, "a.b[0](1, 2)")
	if n.Emit != EmitEntity {
		t.Fatalf("root emit = %s, want entity", n.Emit)
	}
	call := n.Children[0]
	if call.Emit != EmitCall || len(call.Children) != 2 {
		t.Fatalf("expected call with 2 args, got %+v", call)
	}
}

func TestParseListLiteral(t *testing.T) {
	n := mustParse(t, "[1, 2, 3]")
	if n.Emit != EmitList || len(n.Children) != 3 {
		t.Fatalf("unexpected node: %+v", n)
	}
}

func TestParseComprehension(t *testing.T) {
	n := mustParse(t, "[x * 2 for x in items if x > 0]")
	if n.Emit != EmitComprehension {
		t.Fatalf("emit = %s, want comprehension", n.Emit)
	}
	if n.Match != "x" {
		t.Fatalf("loop var = %q, want x", n.Match)
	}
	if n.Children[0].Emit != EmitLoad || n.Children[0].Match != "items" {
		t.Fatalf("iterable child wrong: %+v", n.Children[0])
	}
	if n.Children[2].Emit != EmitCmp {
		t.Fatalf("filter child wrong: %+v", n.Children[2])
	}
}

func TestParseStringConcat(t *testing.T) {
	n := mustParse(t, `"a" "b"`)
	if n.Emit != EmitStrings || len(n.Children) != 2 {
		t.Fatalf("unexpected node: %+v", n)
	}
}

func TestParseSlice(t *testing.T) {
	n := mustParse(t, "a[1:2]").Children[0]
	if n.Emit != EmitSlice {
		t.Fatalf("emit = %s, want slice", n.Emit)
	}
}

func TestParseOpenSlice(t *testing.T) {
	n := mustParse(t, "a[:2]").Children[0]
	if n.Emit != EmitSlice {
		t.Fatalf("emit = %s, want slice", n.Emit)
	}
	if n.Children[1].Emit != EmitNone {
		t.Fatalf("expected omitted start to be None leaf, got %s", n.Children[1].Emit)
	}
}

func TestParseLogicalNotVsBitwiseInvert(t *testing.T) {
	n := mustParse(t, "not x")
	if n.Emit != EmitNot {
		t.Fatalf("emit = %s, want not", n.Emit)
	}

	n = mustParse(t, "~x")
	if n.Emit != EmitInvert {
		t.Fatalf("emit = %s, want invert", n.Emit)
	}
}

func TestParseNotIn(t *testing.T) {
	n := mustParse(t, "x not in items")
	if n.Emit != EmitCmp || n.Match != "outer" {
		t.Fatalf("emit/match = %s/%q, want cmp/outer", n.Emit, n.Match)
	}
}
