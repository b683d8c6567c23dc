/*
File    : treewalk/resolver/resolver.go

Package resolver implements a static pre-pass over the AST: it walks the
tree once, maintaining a stack of block scopes, and records for every
variable-reference expression (Variable, Assign, This, Super) the number of
enclosing scopes to skip to reach its declaration. The result is a side
table keyed by ast.Expr.ID, never a mutation of the tree itself — the
resolver is read-only with respect to the AST.

It also enforces this pass's static rules: no reading a local variable from
inside its own initializer, no redeclaring a name in the same local scope,
`return` only inside a function, no value-returning `return` from an
initializer, `this`/`super` only inside a class (`super` only when that
class has a superclass), and no class inheriting from itself.
*/
package resolver

import (
	"treewalk/ast"
	"treewalk/diag"
	"treewalk/lexer"
)

type functionKind int

const (
	fnNone functionKind = iota
	fnFunction
	fnMethod
	fnInitializer
)

type classKind int

const (
	classNone classKind = iota
	classClass
	classSubclass
)

// Resolver performs the scope-distance analysis described above.
type Resolver struct {
	scopes          []map[string]bool
	distances       map[int]int
	diags           diag.List
	currentFunction functionKind
	currentClass    classKind
}

// New creates a Resolver ready to resolve a program.
func New() *Resolver {
	return &Resolver{distances: make(map[int]int)}
}

// Resolve walks stmts (a whole program, or one REPL-fragment's worth of
// statements resolved against a pre-existing global scope) and returns the
// expression-id -> depth side table plus any diagnostics. Resolve does not
// stop at the first error: it keeps walking afterward to surface as many
// static mistakes as possible in one pass.
func (r *Resolver) Resolve(stmts []ast.Stmt) (map[int]int, *diag.List) {
	r.resolveStmts(stmts)
	return r.distances, &r.diags
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare marks name as present-but-not-yet-initialized in the innermost
// scope. Redeclaring a name already declared in that same scope is a
// static error; the global scope is exempt, so top-level `var a` twice is
// allowed.
func (r *Resolver) declare(name lexer.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.diags.Add(diag.New(diag.Resolve, name.Line, "already a variable named '%s' in this scope", name.Lexeme))
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name lexer.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// resolveLocal walks the scope stack top-down looking for name, recording
// the distance on first match. No match leaves no entry, meaning the
// interpreter resolves the reference via globals.
func (r *Resolver) resolveLocal(id int, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.distances[id] = len(r.scopes) - 1 - i
			return
		}
	}
}
