package smt_test

import (
	"testing"

	"github.com/leapstack-labs/satchel/pkg/sexpr"
	"github.com/leapstack-labs/satchel/pkg/smt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, input string) sexpr.Node {
	t.Helper()
	node, err := sexpr.NewParser(input).Parse()
	require.NoError(t, err)
	return node
}

func TestElaborateNumerals(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "integer", input: "42", want: "42"},
		{name: "zero", input: "0", want: "0"},
		{name: "trailing point-zero stripped", input: "2.0", want: "2"},
		{name: "large numeral", input: "340282366920938463463374607431768211456", want: "340282366920938463463374607431768211456"},
		{name: "fraction rejected", input: "1.5", wantErr: true},
		{name: "leading dot rejected", input: ".5", wantErr: true},
		{name: "bare point-zero rejected", input: ".0", wantErr: true},
		{name: "garbage after digit rejected", input: "1x", wantErr: true},
	}

	env := smt.NewSortEnv()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := smt.Elaborate(parseOne(t, tt.input), env)
			if tt.wantErr {
				var malformed *smt.MalformedExpressionError
				require.ErrorAs(t, err, &malformed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, expr.Name)
			assert.Equal(t, smt.SortReal, expr.Sort)
			assert.Empty(t, expr.Args)
		})
	}
}

func TestElaborateVariableLookup(t *testing.T) {
	env := smt.NewSortEnv()
	env.Declare("x", smt.SortReal)
	env.Declare("p", smt.SortBool)

	expr, err := smt.Elaborate(parseOne(t, "x"), env)
	require.NoError(t, err)
	assert.Equal(t, smt.SortReal, expr.Sort)

	expr, err = smt.Elaborate(parseOne(t, "p"), env)
	require.NoError(t, err)
	assert.Equal(t, smt.SortBool, expr.Sort)

	_, err = smt.Elaborate(parseOne(t, "y"), env)
	var malformed *smt.MalformedExpressionError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, err.Error(), "undeclared variable")
}

func TestElaborateUndeclaredInApplication(t *testing.T) {
	_, err := smt.Elaborate(parseOne(t, "(= x 1)"), smt.NewSortEnv())
	var malformed *smt.MalformedExpressionError
	require.ErrorAs(t, err, &malformed)
}

func TestElaborateOperatorSorts(t *testing.T) {
	env := smt.NewSortEnv()
	env.Declare("x", smt.SortReal)
	env.Declare("y", smt.SortReal)
	env.Declare("p", smt.SortBool)

	tests := []struct {
		name  string
		input string
		want  smt.Sort
	}{
		{name: "comparison", input: "(> x 0)", want: smt.SortBool},
		{name: "equality", input: "(= x y)", want: smt.SortBool},
		{name: "conjunction", input: "(and p (< x y))", want: smt.SortBool},
		{name: "implication", input: "(=> p p)", want: smt.SortBool},
		{name: "negation", input: "(not p)", want: smt.SortBool},
		{name: "arithmetic takes last operand sort", input: "(+ x y)", want: smt.SortReal},
		{name: "unknown operator takes last operand sort", input: "(ite p x y)", want: smt.SortReal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := smt.Elaborate(parseOne(t, tt.input), env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, expr.Sort)
		})
	}
}

func TestElaborateStructuralErrors(t *testing.T) {
	env := smt.NewSortEnv()
	env.Declare("x", smt.SortReal)

	tests := []struct {
		name  string
		input string
	}{
		{name: "empty list", input: "()"},
		{name: "non-atom operator", input: "((f) x)"},
		{name: "zero-arg non-boolean operator", input: "(+)"},
		{name: "let without body", input: "(let ((x 1)))"},
		{name: "let with extra element", input: "(let ((x 1)) x x)"},
		{name: "let bindings not a list", input: "(let x x)"},
		{name: "let binding not a pair", input: "(let ((x 1 2)) x)"},
		{name: "let binding name not an atom", input: "(let (((x) 1)) x)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := smt.Elaborate(parseOne(t, tt.input), env)
			var malformed *smt.MalformedExpressionError
			require.ErrorAs(t, err, &malformed)
		})
	}
}

func TestElaborateLet(t *testing.T) {
	// No prior declarations needed: the binding introduces x.
	expr, err := smt.Elaborate(parseOne(t, "(let ((x 1)) (= x 1))"), smt.NewSortEnv())
	require.NoError(t, err)
	assert.Equal(t, smt.SortBool, expr.Sort)

	// Flattened shape: let(x(1), =(x, 1))
	assert.Equal(t, "let", expr.Name)
	require.Len(t, expr.Args, 2)

	binding := expr.Args[0]
	assert.Equal(t, "x", binding.Name)
	assert.Equal(t, smt.SortReal, binding.Sort)
	require.Len(t, binding.Args, 1)
	assert.Equal(t, "1", binding.Args[0].Name)

	body := expr.Args[1]
	assert.Equal(t, "=", body.Name)
	assert.Equal(t, smt.SortBool, body.Sort)
}

func TestElaborateLetSortFollowsBody(t *testing.T) {
	expr, err := smt.Elaborate(parseOne(t, "(let ((x 1)) (+ x 2))"), smt.NewSortEnv())
	require.NoError(t, err)
	assert.Equal(t, smt.SortReal, expr.Sort)
}

func TestElaborateLetSiblingBindingsIsolated(t *testing.T) {
	// Plain let, not let*: y's value is elaborated against the
	// pre-extension environment where x does not exist.
	_, err := smt.Elaborate(parseOne(t, "(let ((x 1) (y x)) y)"), smt.NewSortEnv())
	var malformed *smt.MalformedExpressionError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, err.Error(), `undeclared variable "x"`)
}

func TestElaborateLetDoesNotLeakBindings(t *testing.T) {
	env := smt.NewSortEnv()
	_, err := smt.Elaborate(parseOne(t, "(let ((x 1)) (= x 1))"), env)
	require.NoError(t, err)

	// The enclosing environment is untouched.
	assert.Equal(t, 0, env.Len())
	_, err = smt.Elaborate(parseOne(t, "x"), env)
	require.Error(t, err)
}

func TestElaborateNestedLetShadowing(t *testing.T) {
	env := smt.NewSortEnv()
	env.Declare("p", smt.SortBool)

	// The inner binding shadows the outer p with a Real; the outer
	// declaration is unaffected afterwards.
	expr, err := smt.Elaborate(parseOne(t, "(let ((p 1)) (+ p p))"), env)
	require.NoError(t, err)
	assert.Equal(t, smt.SortReal, expr.Sort)

	got, ok := env.Lookup("p")
	require.True(t, ok)
	assert.Equal(t, smt.SortBool, got)
}
