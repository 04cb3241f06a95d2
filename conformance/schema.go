// Package conformance runs YAML-described scenarios (expressions and
// templates, their input environment, and an expected value or
// rendering) through the real eval.Evaluator/template.Compile stack.
// Grounded on the teacher's `conformance/{schema,loader,runner}.go`
// (YAML-driven TestSuite/TestCase/Expectation shape via
// `gopkg.in/yaml.v3`), retargeted from MOO database-backed verb/
// statement suites to Logics-expression and Vistache-template suites —
// this Language has no persistent object database to set up or tear
// down, so Requires/Setup/Teardown/Permission/Verb are dropped.
package conformance

// TestSuite is one YAML file: a named group of related scenarios.
type TestSuite struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Tests       []TestCase `yaml:"tests"`
}

// TestCase is a single scenario. Exactly one of Expression/Template is
// set: Expression runs through parser.ParseExpression + eval.Evaluator,
// Template runs through template.Compile + the template renderer.
type TestCase struct {
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description,omitempty"`
	Skip        interface{}            `yaml:"skip,omitempty"` // bool or string reason
	Expression  string                 `yaml:"expression,omitempty"`
	Template    string                 `yaml:"template,omitempty"`
	Vars        map[string]interface{} `yaml:"vars,omitempty"`
	Expect      Expectation            `yaml:"expect"`
}

// Expectation describes the result a test must produce. Only the first
// field that is set is checked, in the order IsError, Value, Type,
// Contains; a null Value counts as unset. Value is compared with
// types.Equal against the actual result (the rendered text for
// templates).
type Expectation struct {
	Value    interface{} `yaml:"value,omitempty"`    // types.Equal match
	Type     string      `yaml:"type,omitempty"`     // expected types.Kind name
	Contains string      `yaml:"contains,omitempty"` // substring match
	IsError  bool        `yaml:"is_error,omitempty"` // expect an #ERR sentinel
}

// IsSkipped reports whether tc should be skipped, and why.
func (tc *TestCase) IsSkipped() (bool, string) {
	if tc.Skip == nil {
		return false, ""
	}
	switch v := tc.Skip.(type) {
	case bool:
		if v {
			return true, "skipped"
		}
		return false, ""
	case string:
		return true, v
	default:
		return false, ""
	}
}
