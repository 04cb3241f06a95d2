package parser

// Node is the single, generic AST node type every Logics and Vistache
// tree is built from: a closed vocabulary of Emit tags, an optional
// Match payload (a literal's source text, an identifier/attribute name,
// a function name, a chained-comparison operator list), and child
// subtrees. There is no per-node-kind Go type — eval.Evaluator dispatches
// on Emit with a single switch, exactly as spec.md's "closed emit set"
// calls for.
type Node struct {
	Emit     string
	Match    string
	Children []*Node
	Pos      Position
}

// Emit tag vocabulary. Every tag eval.Evaluator and template.Compile
// switch on is listed here so the full set is visible in one place.
const (
	// Literals. Match holds the literal's original source text for
	// Number/String (so eval can re-run types.Optimize/types.Unescape);
	// True/False/None carry no Match.
	EmitNone   = "None"
	EmitTrue   = "True"
	EmitFalse  = "False"
	EmitNumber = "Number"
	EmitString = "String"

	// Variable access. Match is the variable name.
	EmitLoad = "load"

	// Chain operators.
	EmitAttr   = "attr"   // Children: [object]; Match: attribute name
	EmitIndex  = "index"  // Children: [object, key]
	EmitSlice  = "slice"  // Children: [object, start, end]; an omitted bound is a none leaf
	EmitEntity = "entity" // Children: [wrapped]; identity passthrough

	// Aggregates.
	EmitList    = "list"    // Children: elements
	EmitStrings = "strings" // Children: parts to concatenate

	// Flow (pre-order / short-circuiting) forms.
	EmitAnd           = "and"           // Children: [left, right]
	EmitOr            = "or"            // Children: [left, right]
	EmitIf            = "if"            // Children: [then, cond, else]
	EmitCmp           = "cmp"           // Children: operands; Match: space-joined ops
	EmitCall          = "call"          // Children: args; Match: function name
	EmitComprehension = "comprehension" // Children: [items, each, test-or-none-leaf]; Match: loop var

	// Arithmetic / unary, evaluated post-order.
	EmitAdd    = "add"
	EmitSub    = "sub"
	EmitMul    = "mul"
	EmitDiv    = "div"
	EmitIDiv   = "idiv"
	EmitMod    = "mod"
	EmitPow    = "pow"
	EmitPos    = "pos"
	EmitNeg    = "neg"
	EmitInvert = "invert" // unary "~": bitwise/integer complement
	EmitNot    = "not"    // unary "not": boolean negation of Truthy()

	// Vistache template composite nodes (constructed by the template
	// package's compiler, walked by the same generic Node machinery).
	EmitTString = "tstring" // Match: literal text run
	EmitTBlock  = "tblock"  // Children: static-run/expression/nested-tloop parts, in order
	EmitTLoop   = "tloop"   // Children: [condition, then-tblock, else-tblock-or-nil]
)

// NewLeaf builds a childless Node.
func NewLeaf(emit, match string, pos Position) *Node {
	return &Node{Emit: emit, Match: match, Pos: pos}
}

// New builds a Node with children.
func New(emit, match string, pos Position, children ...*Node) *Node {
	return &Node{Emit: emit, Match: match, Children: children, Pos: pos}
}
