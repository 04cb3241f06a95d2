package clisupport

import (
	"fmt"
	"strings"

	"github.com/viur-framework/logics/parser"
)

// DumpNode renders node as an indented tree, for the `-r`-less AST-dump
// mode: `emit "match"` per line, children indented two spaces deeper.
func DumpNode(node *parser.Node) string {
	var b strings.Builder
	dumpNode(&b, node, 0)
	return b.String()
}

func dumpNode(b *strings.Builder, node *parser.Node, depth int) {
	if node == nil {
		return
	}
	b.WriteString(strings.Repeat("  ", depth))
	if node.Match != "" {
		fmt.Fprintf(b, "%s %q\n", node.Emit, node.Match)
	} else {
		fmt.Fprintf(b, "%s\n", node.Emit)
	}
	for _, c := range node.Children {
		dumpNode(b, c, depth+1)
	}
}
