package interpreter

import (
	"fmt"

	"treewalk/ast"
	"treewalk/diag"
	"treewalk/environment"
	"treewalk/values"
)

func (i *Interpreter) execute(stmt ast.Stmt) *diag.Diagnostic {
	switch s := stmt.(type) {
	case *ast.Expression:
		_, errDiag := i.eval(s.Expr)
		return errDiag
	case *ast.Print:
		v, errDiag := i.eval(s.Expr)
		if errDiag != nil {
			return errDiag
		}
		fmt.Fprintln(i.Writer, stringify(v))
		return nil
	case *ast.Var:
		var value values.Value = values.Nil{}
		if s.Initializer != nil {
			var errDiag *diag.Diagnostic
			value, errDiag = i.eval(s.Initializer)
			if errDiag != nil {
				return errDiag
			}
		}
		i.env.Define(s.Name.Lexeme, value)
		return nil
	case *ast.Block:
		return i.ExecuteBlock(s.Stmts, environment.New(i.env))
	case *ast.If:
		cond, errDiag := i.eval(s.Cond)
		if errDiag != nil {
			return errDiag
		}
		switch {
		case values.IsTruthy(cond):
			return i.execute(s.Then)
		case s.ElseBranch != nil:
			return i.execute(s.ElseBranch)
		}
		return nil
	case *ast.While:
		for {
			cond, errDiag := i.eval(s.Cond)
			if errDiag != nil {
				return errDiag
			}
			if !values.IsTruthy(cond) {
				return nil
			}
			if errDiag := i.execute(s.Body); errDiag != nil {
				return errDiag
			}
		}
	case *ast.Function:
		fn := &values.Function{Declaration: s, Closure: i.env}
		i.env.Define(s.Name.Lexeme, fn)
		return nil
	case *ast.Return:
		var value values.Value = values.Nil{}
		if s.Value != nil {
			var errDiag *diag.Diagnostic
			value, errDiag = i.eval(s.Value)
			if errDiag != nil {
				return errDiag
			}
		}
		panic(values.ReturnSignal{Value: value})
	case *ast.Class:
		return i.executeClass(s)
	default:
		panic(fmt.Sprintf("interpreter: unhandled statement type %T", stmt))
	}
	return nil
}

// executeClass evaluates a class declaration: resolves the optional
// superclass, builds the method table (each method closing over a scope
// that has `super` bound when there is a superclass), and binds the
// resulting *values.Class to the class's name.
func (i *Interpreter) executeClass(s *ast.Class) *diag.Diagnostic {
	var superclass *values.Class
	if s.Superclass != nil {
		superVal, errDiag := i.eval(s.Superclass)
		if errDiag != nil {
			return errDiag
		}
		class, ok := superVal.(*values.Class)
		if !ok {
			return runtimeError(s.Superclass.Name.Line, "superclass must be a class")
		}
		superclass = class
	}

	i.env.Define(s.Name.Lexeme, values.Nil{})

	methodEnv := i.env
	if superclass != nil {
		methodEnv = environment.New(i.env)
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]*values.Function)
	for _, method := range s.Methods {
		methods[method.Name.Lexeme] = &values.Function{
			Declaration:   method,
			Closure:       methodEnv,
			IsInitializer: method.Name.Lexeme == "init",
		}
	}

	class := &values.Class{Name: s.Name.Lexeme, Superclass: superclass, Methods: methods}
	i.env.Assign(s.Name.Lexeme, class)
	return nil
}

// stringify renders a Value the way `print` displays it: nil prints as
// "nil", numbers drop a trailing ".0" for whole values (handled in
// values.Number.String), everything else uses its own String method.
func stringify(v values.Value) string {
	return v.String()
}
