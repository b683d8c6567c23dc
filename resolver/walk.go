/*
File    : treewalk/resolver/walk.go

Type-switch traversal of every statement and expression variant, mirroring
the interpreter's own dispatch shape so the two passes stay easy to compare.
*/
package resolver

import (
	"treewalk/ast"
	"treewalk/diag"
)

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Expression:
		r.resolveExpr(s.Expr)
	case *ast.Print:
		r.resolveExpr(s.Expr)
	case *ast.Var:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(s.Stmts)
		r.endScope()
	case *ast.If:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.ElseBranch != nil {
			r.resolveStmt(s.ElseBranch)
		}
	case *ast.While:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)
	case *ast.Function:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, fnFunction)
	case *ast.Return:
		if r.currentFunction == fnNone {
			r.diags.Add(diag.New(diag.Resolve, s.Keyword.Line, "can't return from top-level code"))
		}
		if s.Value != nil {
			if r.currentFunction == fnInitializer {
				r.diags.Add(diag.New(diag.Resolve, s.Keyword.Line, "can't return a value from an initializer"))
			}
			r.resolveExpr(s.Value)
		}
	case *ast.Class:
		r.resolveClass(s)
	default:
		panic("resolver: unhandled statement type")
	}
}

func (r *Resolver) resolveFunction(fn *ast.Function, kind functionKind) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind
	defer func() { r.currentFunction = enclosingFunction }()

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()
}

func (r *Resolver) resolveClass(class *ast.Class) {
	enclosingClass := r.currentClass
	r.currentClass = classClass
	defer func() { r.currentClass = enclosingClass }()

	r.declare(class.Name)
	r.define(class.Name)

	if class.Superclass != nil {
		if class.Superclass.Name.Lexeme == class.Name.Lexeme {
			r.diags.Add(diag.New(diag.Resolve, class.Superclass.Name.Line, "a class can't inherit from itself"))
		}

		r.currentClass = classSubclass
		r.resolveExpr(class.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
		defer r.endScope()
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true
	defer r.endScope()

	for _, method := range class.Methods {
		kind := fnMethod
		if method.Name.Lexeme == "init" {
			kind = fnInitializer
		}
		r.resolveFunction(method, kind)
	}
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Literal:
		// No sub-expressions, no reference to resolve.
	case *ast.Grouping:
		r.resolveExpr(e.Inner)
	case *ast.Unary:
		r.resolveExpr(e.Right)
	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Args {
			r.resolveExpr(arg)
		}
	case *ast.Get:
		r.resolveExpr(e.Object)
	case *ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, declared := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; declared && !defined {
				r.diags.Add(diag.New(diag.Resolve, e.Name.Line, "can't read local variable '%s' in its own initializer", e.Name.Lexeme))
			}
		}
		r.resolveLocal(e.ID(), e.Name.Lexeme)
	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e.ID(), e.Name.Lexeme)
	case *ast.This:
		if r.currentClass == classNone {
			r.diags.Add(diag.New(diag.Resolve, e.Keyword.Line, "can't use 'this' outside of a class"))
			return
		}
		r.resolveLocal(e.ID(), "this")
	case *ast.Super:
		switch r.currentClass {
		case classNone:
			r.diags.Add(diag.New(diag.Resolve, e.Keyword.Line, "can't use 'super' outside of a class"))
		case classClass:
			r.diags.Add(diag.New(diag.Resolve, e.Keyword.Line, "can't use 'super' in a class with no superclass"))
		}
		r.resolveLocal(e.ID(), "super")
	default:
		panic("resolver: unhandled expression type")
	}
}
