package model

import "strings"

// TestCase is an immutable ordered tuple of generated argument values, one
// per declared parameter. Identity is by argument content so duplicate
// tuples collapse.
type TestCase struct {
	Args []Value
}

// NewTestCase creates a TestCase from the given arguments.
func NewTestCase(args []Value) TestCase { return TestCase{Args: args} }

// Key returns the canonical identity of the test case.
func (tc TestCase) Key() string {
	parts := make([]string, 0, len(tc.Args))
	for _, arg := range tc.Args {
		parts = append(parts, arg.Key())
	}

	return strings.Join(parts, "|")
}

// ArgsLiteral returns the comma-separated Python literals of the arguments.
func (tc TestCase) ArgsLiteral() string {
	parts := make([]string, 0, len(tc.Args))
	for _, arg := range tc.Args {
		parts = append(parts, arg.Literal())
	}

	return strings.Join(parts, ", ")
}

// CallExpr returns the Python call expression invoking funcName on the
// test case's arguments.
func (tc TestCase) CallExpr(funcName string) string {
	return funcName + "(" + tc.ArgsLiteral() + ")"
}

// Evaluation pairs a test case with the reference output observed for it
// and the set of candidate identifiers whose output mismatched. The kill
// relation is a plain value so the minimizer carries no hidden state.
type Evaluation struct {
	Case     TestCase
	Expected string
	Kills    map[string]struct{}
}

// KillCount returns the number of candidates killed by this test case.
func (e Evaluation) KillCount() int { return len(e.Kills) }

// Candidate identifies one implementation under test.
type Candidate struct {
	ID       string
	FullPath Path
}
