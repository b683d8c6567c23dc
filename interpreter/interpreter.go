/*
File    : treewalk/interpreter/interpreter.go

Package interpreter implements a tree-walking evaluator over an environment
chain, using the resolver's expression-id -> depth side table to resolve
every variable reference in O(1) instead of walking the chain.
*/
package interpreter

import (
	"io"
	"os"

	"treewalk/ast"
	"treewalk/diag"
	"treewalk/environment"
	"treewalk/natives"
)

// Interpreter holds the mutable state of one evaluation session: the global
// scope, the environment currently in effect, the resolver's side table, and
// the writer `print` statements write to (swappable in tests).
type Interpreter struct {
	Globals   *environment.Environment
	env       *environment.Environment
	distances map[int]int
	Writer    io.Writer
}

// New creates an Interpreter whose global scope holds only the native
// functions (see natives.Register), with os.Stdout as the default print target.
func New() *Interpreter {
	globals := environment.New(nil)
	natives.Register(globals)
	return &Interpreter{
		Globals:   globals,
		env:       globals,
		distances: make(map[int]int),
		Writer:    os.Stdout,
	}
}

// AddDistances merges a newly resolved side table into the interpreter's
// own, supplementing rather than replacing it. The REPL resolves one line at
// a time against the same persistent Interpreter, so each line's resolution
// must add to, not discard, the distances recorded for earlier lines.
func (i *Interpreter) AddDistances(distances map[int]int) {
	for id, depth := range distances {
		i.distances[id] = depth
	}
}

// Interpret runs a whole program (or one REPL line's worth of statements)
// against the interpreter's current environment, halting at the first
// runtime error — unlike the lexer/parser/resolver, which may accumulate, a
// runtime error happens mid-execution with real side effects already
// performed, so there is nothing sound to keep evaluating past it.
func (i *Interpreter) Interpret(stmts []ast.Stmt) *diag.Diagnostic {
	for _, stmt := range stmts {
		if errDiag := i.execute(stmt); errDiag != nil {
			return errDiag
		}
	}
	return nil
}

// ExecuteBlock runs stmts against env, then restores the interpreter's
// previous environment on every exit path, including a panic (a
// values.ReturnSignal unwinding through a nested block). This is the method
// values.Interp requires so *values.Function can call back into whatever
// satisfies that interface without the values package importing this one.
func (i *Interpreter) ExecuteBlock(stmts []ast.Stmt, env *environment.Environment) (errDiag *diag.Diagnostic) {
	previous := i.env
	i.env = env
	defer func() { i.env = previous }()

	for _, stmt := range stmts {
		if errDiag = i.execute(stmt); errDiag != nil {
			return errDiag
		}
	}
	return nil
}

func runtimeError(line int, format string, args ...any) *diag.Diagnostic {
	return diag.New(diag.Runtime, line, format, args...)
}
