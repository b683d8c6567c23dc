/*
File    : treewalk/interpreter/interpreter_test.go
*/
package interpreter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treewalk/lexer"
	"treewalk/parser"
	"treewalk/resolver"
)

func run(t *testing.T, src string) (string, *Interpreter) {
	t.Helper()
	tokens, lexDiags := lexer.New(src).ScanTokens()
	require.False(t, lexDiags.HasErrors(), "unexpected lex errors: %v", lexDiags.Items())
	stmts, parseDiags := parser.New(tokens).Parse()
	require.False(t, parseDiags.HasErrors(), "unexpected parse errors: %v", parseDiags.Items())
	distances, resolveDiags := resolver.New().Resolve(stmts)
	require.False(t, resolveDiags.HasErrors(), "unexpected resolve errors: %v", resolveDiags.Items())

	var buf bytes.Buffer
	interp := New()
	interp.Writer = &buf
	interp.AddDistances(distances)
	errDiag := interp.Interpret(stmts)
	require.Nil(t, errDiag, "unexpected runtime error: %v", errDiag)
	return buf.String(), interp
}

func TestInterpret_PrintArithmetic(t *testing.T) {
	out, _ := run(t, "print 1 + 2;")
	assert.Equal(t, "3\n", out)
}

func TestInterpret_GlobalRedeclarationIsAllowed(t *testing.T) {
	out, _ := run(t, "var a = 1; var a = 2; print a;")
	assert.Equal(t, "2\n", out)
}

func TestInterpret_NestedBlockShadowing(t *testing.T) {
	out, _ := run(t, `
	var a = "outer";
	{
		var a = "inner";
		print a;
	}
	print a;`)
	assert.Equal(t, "inner\nouter\n", out)
}

func TestInterpret_ClosureCounter(t *testing.T) {
	out, _ := run(t, `
	function makeCounter() {
		var count = 0;
		function increment() {
			count = count + 1;
			return count;
		}
		return increment;
	}
	var counter = makeCounter();
	print counter();
	print counter();
	print counter();`)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestInterpret_ClassInheritanceWithSuper(t *testing.T) {
	out, _ := run(t, `
	class Animal {
		speak() {
			print "...";
		}
	}
	class Dog < Animal {
		speak() {
			super.speak();
			print "Woof";
		}
	}
	Dog().speak();`)
	assert.Equal(t, "...\nWoof\n", out)
}

func TestInterpret_InitializerAlwaysReturnsThis(t *testing.T) {
	out, _ := run(t, `
	class Point {
		init(x, y) {
			this.x = x;
			this.y = y;
		}
	}
	var p = Point(3, 4);
	print p.x;
	print p.y;`)
	assert.Equal(t, "3\n4\n", out)
}

func TestInterpret_UndefinedVariableIsRuntimeError(t *testing.T) {
	tokens, _ := lexer.New("print missing;").ScanTokens()
	stmts, _ := parser.New(tokens).Parse()
	distances, _ := resolver.New().Resolve(stmts)

	interp := New()
	interp.AddDistances(distances)
	errDiag := interp.Interpret(stmts)
	require.NotNil(t, errDiag)
	assert.Contains(t, errDiag.Error(), "undefined variable")
}

func TestInterpret_StringConcatenation(t *testing.T) {
	out, _ := run(t, `print "hello" + " " + "world";`)
	assert.Equal(t, "hello world\n", out)
}

func TestInterpret_DivisionByZeroFollowsIEEE754(t *testing.T) {
	out, _ := run(t, "print 1 / 0; print -1 / 0; print 0 / 0;")
	assert.Equal(t, "+Inf\n-Inf\nNaN\n", out)
}

func TestInterpret_ExecuteBlockRestoresEnvironmentOnPanic(t *testing.T) {
	out, interp := run(t, `
	function early() {
		{
			return "done";
		}
		print "unreachable";
	}
	print early();`)
	assert.Equal(t, "done\n", out)
	assert.Same(t, interp.Globals, interp.env)
}
