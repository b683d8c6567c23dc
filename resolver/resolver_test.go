/*
File    : treewalk/resolver/resolver_test.go
*/
package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treewalk/ast"
	"treewalk/lexer"
	"treewalk/parser"
)

func resolve(t *testing.T, src string) (map[int]int, bool) {
	t.Helper()
	tokens, lexDiags := lexer.New(src).ScanTokens()
	require.False(t, lexDiags.HasErrors(), "unexpected lex errors: %v", lexDiags.Items())
	stmts, parseDiags := parser.New(tokens).Parse()
	require.False(t, parseDiags.HasErrors(), "unexpected parse errors: %v", parseDiags.Items())
	distances, diags := New().Resolve(stmts)
	return distances, diags.HasErrors()
}

func TestResolve_GlobalReferenceGetsNoDistance(t *testing.T) {
	distances, hasErrors := resolve(t, "var a = 1; print a;")
	assert.False(t, hasErrors)
	assert.Empty(t, distances)
}

func TestResolve_LocalReferenceGetsDistanceZero(t *testing.T) {
	distances, hasErrors := resolve(t, "{ var a = 1; print a; }")
	assert.False(t, hasErrors)
	require.Len(t, distances, 1)
	for _, d := range distances {
		assert.Equal(t, 0, d)
	}
}

func TestResolve_NestedBlockReferenceGetsDistanceForDepth(t *testing.T) {
	distances, hasErrors := resolve(t, "{ var a = 1; { print a; } }")
	assert.False(t, hasErrors)
	require.Len(t, distances, 1)
	for _, d := range distances {
		assert.Equal(t, 1, d)
	}
}

func TestResolve_SelfReferentialInitializerIsAnError(t *testing.T) {
	_, hasErrors := resolve(t, "{ var a = a; }")
	assert.True(t, hasErrors)
}

func TestResolve_DuplicateLocalDeclarationIsAnError(t *testing.T) {
	_, hasErrors := resolve(t, "{ var a = 1; var a = 2; }")
	assert.True(t, hasErrors)
}

func TestResolve_DuplicateGlobalDeclarationIsAllowed(t *testing.T) {
	_, hasErrors := resolve(t, "var a = 1; var a = 2;")
	assert.False(t, hasErrors)
}

func TestResolve_ReturnOutsideFunctionIsAnError(t *testing.T) {
	_, hasErrors := resolve(t, "return 1;")
	assert.True(t, hasErrors)
}

func TestResolve_ReturnInsideFunctionIsFine(t *testing.T) {
	_, hasErrors := resolve(t, "function f() { return 1; }")
	assert.False(t, hasErrors)
}

func TestResolve_ValueReturnFromInitializerIsAnError(t *testing.T) {
	_, hasErrors := resolve(t, "class A { init() { return 1; } }")
	assert.True(t, hasErrors)
}

func TestResolve_BareReturnFromInitializerIsFine(t *testing.T) {
	_, hasErrors := resolve(t, "class A { init() { return; } }")
	assert.False(t, hasErrors)
}

func TestResolve_ThisOutsideClassIsAnError(t *testing.T) {
	_, hasErrors := resolve(t, "print this;")
	assert.True(t, hasErrors)
}

func TestResolve_ThisInsideMethodIsFine(t *testing.T) {
	_, hasErrors := resolve(t, "class A { greet() { print this; } }")
	assert.False(t, hasErrors)
}

func TestResolve_SuperOutsideClassIsAnError(t *testing.T) {
	_, hasErrors := resolve(t, "print super.greet();")
	assert.True(t, hasErrors)
}

func TestResolve_SuperInClassWithNoSuperclassIsAnError(t *testing.T) {
	_, hasErrors := resolve(t, "class A { greet() { super.greet(); } }")
	assert.True(t, hasErrors)
}

func TestResolve_SuperInSubclassIsFine(t *testing.T) {
	_, hasErrors := resolve(t, "class A { greet() { print 1; } } class B < A { greet() { super.greet(); } }")
	assert.False(t, hasErrors)
}

func TestResolve_ClassInheritingItselfIsAnError(t *testing.T) {
	_, hasErrors := resolve(t, "class X < X {}")
	assert.True(t, hasErrors)
}

func TestResolve_ClosureCapturesDeclarationTimeEnvironment(t *testing.T) {
	// Regression shape for the classic "counter" closure: the inner function's
	// reference to `count` resolves one scope out from its own body scope,
	// not from whatever scope happens to be active when it's later called.
	src := `
	function makeCounter() {
		var count = 0;
		function increment() {
			count = count + 1;
			return count;
		}
		return increment;
	}`
	distances, hasErrors := resolve(t, src)
	assert.False(t, hasErrors)
	assert.NotEmpty(t, distances)
}

func TestResolve_ExpressionIDsAreStableAcrossCalls(t *testing.T) {
	tokens, _ := lexer.New("{ var a = 1; print a; }").ScanTokens()
	stmts, _ := parser.New(tokens).Parse()
	block := stmts[0].(*ast.Block)
	printStmt := block.Stmts[1].(*ast.Print)
	variable := printStmt.Expr.(*ast.Variable)

	distances, diags := New().Resolve(stmts)
	require.False(t, diags.HasErrors())
	d, ok := distances[variable.ID()]
	require.True(t, ok)
	assert.Equal(t, 0, d)
}
