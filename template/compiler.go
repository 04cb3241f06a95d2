// Package template implements the Vistache-style mustache template
// engine: a `{{`/`}}` delimiter scanner that compiles template text into
// the same generic parser.Node tree the expression language uses,
// composed from three template-only node kinds (tstring/tblock/tloop),
// then rendered by eval.Evaluator. Grounded on
// `original_source/logics/vistache.py`'s `Template.parse`/`render`; this
// package has no teacher counterpart (MongooseMoo-barn has no template
// engine), so it is written fresh in the teacher's idiom rather than
// adapted from an existing file.
package template

import (
	"fmt"
	"strings"

	"github.com/viur-framework/logics/parser"
)

// Options configures the template scanner's delimiters and behavior.
// Grounded on `original_source/logics/vistache.py`'s `Template.__init__`
// keyword arguments.
type Options struct {
	StartDelimiter string
	EndDelimiter   string
	StripLeft      string
	StripRight     string
	StartBlock     string
	AltBlock       string
	EndBlock       string

	// EmptyValue substitutes for a None Value rendered by an inline
	// expression tag. Defaults to "" (spec.md §4.5), diverging from the
	// Python original's emptyValue=None default (which would literally
	// print the text "None").
	EmptyValue string

	// ReplaceCharRefs rewrites "&gt;"/"&lt;" to ">"/"<" inside tag
	// contents before parsing, matching a pre-processing step present
	// in `original_source/logics/vistache.py` but silent in spec.md.
	ReplaceCharRefs bool
}

// DefaultOptions returns the standard Mustache-flavored delimiter set.
func DefaultOptions() Options {
	return Options{
		StartDelimiter: "{{",
		EndDelimiter:   "}}",
		StripLeft:      "-",
		StripRight:     "-",
		StartBlock:     "#",
		AltBlock:       "|",
		EndBlock:       "/",
		EmptyValue:     "",
	}
}

// blockFrame tracks one open `{{#...}}` block while scanning: the
// tblock being built before the block opened (to append the finished
// tloop chain into), and the parallel condition/body lists accumulated
// as `{{|...}}` alternative branches are seen. conds[i] always pairs
// with bodies[i] — the body that immediately followed that condition's
// opening tag.
type blockFrame struct {
	parent *parser.Node
	conds  []*parser.Node // nil entry marks a bare "else" branch
	bodies []*parser.Node
}

// Compile scans src and returns the root tblock Node. Parse errors
// (unmatched alt/end markers, blocks left open, a second bare else) are
// returned as plain errors — template compilation is fatal on failure,
// per spec.md §4.5.
func Compile(src string, opts Options) (*parser.Node, error) {
	if opts.StartDelimiter == "" || opts.EndDelimiter == "" || opts.StartBlock == "" ||
		opts.AltBlock == "" || opts.EndBlock == "" || opts.StripLeft == "" || opts.StripRight == "" {
		return nil, fmt.Errorf("template: Options delimiters must not be empty")
	}

	block := parser.New(parser.EmitTBlock, "", parser.Position{})
	var stack []*blockFrame

	s := src
	for s != "" {
		start := strings.Index(s, opts.StartDelimiter)
		if start < 0 {
			break
		}
		estart := start + len(opts.StartDelimiter)

		relEnd := strings.Index(s[estart:], opts.EndDelimiter)
		if relEnd < 0 {
			break
		}
		end := estart + relEnd
		eend := end

		stripRight := strings.HasSuffix(s[:end], opts.StripRight)
		if stripRight {
			eend -= len(opts.StripRight)
		}

		tagEnd := end + len(opts.EndDelimiter)
		if stripRight {
			for tagEnd < len(s) && isTemplateSpace(s[tagEnd]) {
				tagEnd++
			}
		}

		if start > 0 {
			prefix := s[:start]
			if strings.HasPrefix(s[estart:], opts.StripLeft) {
				estart += len(opts.StripLeft)
				prefix = strings.TrimRight(prefix, " \t\r\n")
			}
			block.Children = append(block.Children, parser.NewLeaf(parser.EmitTString, prefix, parser.Position{}))
		}

		expr := s[estart:eend]
		if opts.ReplaceCharRefs {
			expr = strings.NewReplacer("&gt;", ">", "&lt;", "<").Replace(expr)
		}

		var err error
		block, stack, err = step(block, stack, expr, opts)
		if err != nil {
			return nil, err
		}

		s = s[tagEnd:]
	}

	if len(stack) > 0 {
		return nil, fmt.Errorf("template: %d block(s) still open, expecting %s%s%s", len(stack), opts.StartDelimiter, opts.EndBlock, opts.EndDelimiter)
	}
	if s != "" {
		block.Children = append(block.Children, parser.NewLeaf(parser.EmitTString, s, parser.Position{}))
	}
	return block, nil
}

// step processes one tag's content (already isolated and char-ref
// resolved) and returns the current accumulator block and block stack.
func step(block *parser.Node, stack []*blockFrame, expr string, opts Options) (*parser.Node, []*blockFrame, error) {
	switch {
	case strings.HasPrefix(expr, opts.StartBlock):
		cond, err := parser.ParseExpression(expr[len(opts.StartBlock):])
		if err != nil {
			return nil, nil, err
		}
		stack = append(stack, &blockFrame{parent: block, conds: []*parser.Node{cond}})
		return parser.New(parser.EmitTBlock, "", parser.Position{}), stack, nil

	case strings.HasPrefix(expr, opts.AltBlock):
		if len(stack) == 0 {
			return nil, nil, fmt.Errorf("template: alternative block without opening block")
		}
		frame := stack[len(stack)-1]
		frame.bodies = append(frame.bodies, block)

		rest := strings.TrimSpace(expr[len(opts.AltBlock):])
		if rest != "" {
			cond, err := parser.ParseExpression(rest)
			if err != nil {
				return nil, nil, err
			}
			frame.conds = append(frame.conds, cond)
		} else if len(frame.conds) > 0 && frame.conds[len(frame.conds)-1] == nil {
			return nil, nil, fmt.Errorf("template: multiple alternative blocks without condition are not allowed")
		} else {
			frame.conds = append(frame.conds, nil)
		}
		return parser.New(parser.EmitTBlock, "", parser.Position{}), stack, nil

	case strings.HasPrefix(expr, opts.EndBlock):
		if len(stack) == 0 {
			return nil, nil, fmt.Errorf("template: closing block without opening block")
		}
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		frame.bodies = append(frame.bodies, block)

		var node *parser.Node
		for i := len(frame.conds) - 1; i >= 0; i-- {
			if frame.conds[i] == nil {
				node = frame.bodies[i]
				continue
			}
			node = parser.New(parser.EmitTLoop, "", parser.Position{}, frame.conds[i], frame.bodies[i], node)
		}
		frame.parent.Children = append(frame.parent.Children, node)
		return frame.parent, stack, nil

	default:
		node, err := parser.ParseExpression(expr)
		if err != nil {
			return nil, nil, err
		}
		block.Children = append(block.Children, node)
		return block, stack, nil
	}
}

func isTemplateSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}
