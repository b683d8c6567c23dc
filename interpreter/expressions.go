package interpreter

import (
	"fmt"
	"math"

	"treewalk/ast"
	"treewalk/diag"
	"treewalk/lexer"
	"treewalk/values"
)

func (i *Interpreter) eval(expr ast.Expr) (values.Value, *diag.Diagnostic) {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalValue(e.Value), nil
	case *ast.Grouping:
		return i.eval(e.Inner)
	case *ast.Unary:
		return i.evalUnary(e)
	case *ast.Binary:
		return i.evalBinary(e)
	case *ast.Logical:
		return i.evalLogical(e)
	case *ast.Variable:
		return i.lookUpVariable(e.Name, e.ID())
	case *ast.Assign:
		return i.evalAssign(e)
	case *ast.Call:
		return i.evalCall(e)
	case *ast.Get:
		return i.evalGet(e)
	case *ast.Set:
		return i.evalSet(e)
	case *ast.This:
		return i.lookUpVariable(e.Keyword, e.ID())
	case *ast.Super:
		return i.evalSuper(e)
	default:
		panic(fmt.Sprintf("interpreter: unhandled expression type %T", expr))
	}
}

func literalValue(v any) values.Value {
	switch t := v.(type) {
	case nil:
		return values.Nil{}
	case bool:
		return values.Bool(t)
	case float64:
		return values.Number(t)
	case string:
		return values.String(t)
	default:
		panic(fmt.Sprintf("interpreter: unrecognized literal payload %T", v))
	}
}

// lookUpVariable resolves name either at the resolver-recorded distance, or
// by walking to globals when the resolver found no local binding (a
// top-level reference, or one the REPL resolved against a later global).
func (i *Interpreter) lookUpVariable(name lexer.Token, id int) (values.Value, *diag.Diagnostic) {
	if distance, ok := i.distances[id]; ok {
		return i.env.GetAt(distance, name.Lexeme).(values.Value), nil
	}
	v, ok := i.Globals.Get(name.Lexeme)
	if !ok {
		return nil, runtimeError(name.Line, "undefined variable '%s'", name.Lexeme)
	}
	return v.(values.Value), nil
}

func (i *Interpreter) evalAssign(e *ast.Assign) (values.Value, *diag.Diagnostic) {
	value, errDiag := i.eval(e.Value)
	if errDiag != nil {
		return nil, errDiag
	}
	if distance, ok := i.distances[e.ID()]; ok {
		i.env.AssignAt(distance, e.Name.Lexeme, value)
		return value, nil
	}
	if !i.Globals.Assign(e.Name.Lexeme, value) {
		return nil, runtimeError(e.Name.Line, "undefined variable '%s'", e.Name.Lexeme)
	}
	return value, nil
}

func (i *Interpreter) evalUnary(e *ast.Unary) (values.Value, *diag.Diagnostic) {
	right, errDiag := i.eval(e.Right)
	if errDiag != nil {
		return nil, errDiag
	}
	switch e.Op.Kind {
	case lexer.MINUS:
		n, ok := right.(values.Number)
		if !ok {
			return nil, runtimeError(e.Op.Line, "operand must be a number")
		}
		return -n, nil
	case lexer.BANG:
		return values.Bool(!values.IsTruthy(right)), nil
	default:
		panic(fmt.Sprintf("interpreter: unhandled unary operator %v", e.Op.Kind))
	}
}

func (i *Interpreter) evalLogical(e *ast.Logical) (values.Value, *diag.Diagnostic) {
	left, errDiag := i.eval(e.Left)
	if errDiag != nil {
		return nil, errDiag
	}
	if e.Op.Kind == lexer.OR {
		if values.IsTruthy(left) {
			return left, nil
		}
	} else {
		if !values.IsTruthy(left) {
			return left, nil
		}
	}
	return i.eval(e.Right)
}

func (i *Interpreter) evalBinary(e *ast.Binary) (values.Value, *diag.Diagnostic) {
	left, errDiag := i.eval(e.Left)
	if errDiag != nil {
		return nil, errDiag
	}
	right, errDiag := i.eval(e.Right)
	if errDiag != nil {
		return nil, errDiag
	}

	switch e.Op.Kind {
	case lexer.PLUS:
		if ln, lok := left.(values.Number); lok {
			if rn, rok := right.(values.Number); rok {
				return ln + rn, nil
			}
		}
		_, lstr := left.(values.String)
		_, rstr := right.(values.String)
		if lstr || rstr {
			return values.String(left.String() + right.String()), nil
		}
		return nil, runtimeError(e.Op.Line, "operands must be two numbers or include a string")
	case lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT,
		lexer.GREATER, lexer.GREATER_EQUAL, lexer.LESS, lexer.LESS_EQUAL:
		ln, lok := left.(values.Number)
		rn, rok := right.(values.Number)
		if !lok || !rok {
			return nil, runtimeError(e.Op.Line, "operands must be numbers")
		}
		switch e.Op.Kind {
		case lexer.MINUS:
			return ln - rn, nil
		case lexer.STAR:
			return ln * rn, nil
		case lexer.SLASH:
			// Division by zero follows IEEE-754 (producing +-Inf or NaN), per
			// spec's boundary behaviors -- not a runtime error.
			return ln / rn, nil
		case lexer.PERCENT:
			return values.Number(math.Mod(float64(ln), float64(rn))), nil
		case lexer.GREATER:
			return values.Bool(ln > rn), nil
		case lexer.GREATER_EQUAL:
			return values.Bool(ln >= rn), nil
		case lexer.LESS:
			return values.Bool(ln < rn), nil
		case lexer.LESS_EQUAL:
			return values.Bool(ln <= rn), nil
		}
	case lexer.EQUAL_EQUAL:
		return values.Bool(values.Equals(left, right)), nil
	case lexer.BANG_EQUAL:
		return values.Bool(!values.Equals(left, right)), nil
	}
	panic(fmt.Sprintf("interpreter: unhandled binary operator %v", e.Op.Kind))
}

func (i *Interpreter) evalCall(e *ast.Call) (values.Value, *diag.Diagnostic) {
	callee, errDiag := i.eval(e.Callee)
	if errDiag != nil {
		return nil, errDiag
	}

	args := make([]values.Value, len(e.Args))
	for idx, arg := range e.Args {
		v, errDiag := i.eval(arg)
		if errDiag != nil {
			return nil, errDiag
		}
		args[idx] = v
	}

	callable, ok := callee.(values.Callable)
	if !ok {
		return nil, runtimeError(e.Paren.Line, "can only call functions and classes")
	}
	if len(args) != callable.Arity() {
		return nil, runtimeError(e.Paren.Line, "expected %d arguments but got %d", callable.Arity(), len(args))
	}
	return callable.Call(i, args)
}

func (i *Interpreter) evalGet(e *ast.Get) (values.Value, *diag.Diagnostic) {
	object, errDiag := i.eval(e.Object)
	if errDiag != nil {
		return nil, errDiag
	}
	instance, ok := object.(*values.Instance)
	if !ok {
		return nil, runtimeError(e.Name.Line, "only instances have properties")
	}
	v, ok := instance.Get(e.Name.Lexeme)
	if !ok {
		return nil, runtimeError(e.Name.Line, "undefined property '%s'", e.Name.Lexeme)
	}
	return v, nil
}

func (i *Interpreter) evalSet(e *ast.Set) (values.Value, *diag.Diagnostic) {
	object, errDiag := i.eval(e.Object)
	if errDiag != nil {
		return nil, errDiag
	}
	instance, ok := object.(*values.Instance)
	if !ok {
		return nil, runtimeError(e.Name.Line, "only instances have fields")
	}
	value, errDiag := i.eval(e.Value)
	if errDiag != nil {
		return nil, errDiag
	}
	instance.Set(e.Name.Lexeme, value)
	return value, nil
}

// evalSuper resolves `super.method` to a Function bound to the current
// `this`, looked up on the superclass's method table: `super` and `this`
// are both recorded by the resolver as bindings in fixed-distance enclosing
// scopes relative to the method body, `super` one scope further out than
// `this`.
func (i *Interpreter) evalSuper(e *ast.Super) (values.Value, *diag.Diagnostic) {
	distance := i.distances[e.ID()]
	superclass := i.env.GetAt(distance, "super").(*values.Class)
	instance := i.env.GetAt(distance-1, "this").(*values.Instance)

	method, ok := superclass.FindMethod(e.Method.Lexeme)
	if !ok {
		return nil, runtimeError(e.Method.Line, "undefined property '%s'", e.Method.Lexeme)
	}
	return method.Bind(instance), nil
}
