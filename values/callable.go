/*
File    : treewalk/values/callable.go

Function, Class, and Instance — the three Callable/object-graph runtime
types. Function and Class need a live *environment.Environment and a way to
run a function body, but importing the interpreter package directly would
create an interpreter -> values -> interpreter cycle (the interpreter needs
Function/Class/Instance). Interp below is the minimal structural interface
the interpreter satisfies; values never imports the interpreter package.
*/
package values

import (
	"fmt"

	"treewalk/ast"
	"treewalk/diag"
	"treewalk/environment"
)

// Interp is the slice of interpreter behavior a Function needs to run its
// body: execute a block of statements against a given environment.
type Interp interface {
	ExecuteBlock(stmts []ast.Stmt, env *environment.Environment) *diag.Diagnostic
}

// Callable is any Value that can appear as the callee of a Call expression.
type Callable interface {
	Value
	Arity() int
	Call(interp Interp, args []Value) (Value, *diag.Diagnostic)
}

// ReturnSignal is panicked by the interpreter's Return-statement handling
// and recovered in Function.Call; it carries a return value through an
// arbitrary number of stack frames without threading it through every
// intermediate return.
type ReturnSignal struct {
	Value Value
}

// Function is a user-defined function or method: its declaration plus the
// environment captured at definition time, which is what makes closures and
// `this`-binding work.
type Function struct {
	Declaration   *ast.Function
	Closure       *environment.Environment
	IsInitializer bool
}

func (*Function) Type() string { return "function" }

func (f *Function) String() string {
	return fmt.Sprintf("<fn %s>", f.Declaration.Name.Lexeme)
}

func (f *Function) Arity() int {
	return len(f.Declaration.Params)
}

// Call binds parameters in a fresh environment over the closure, runs the
// body, and recovers a ReturnSignal panic as the call's result. An
// initializer always yields `this`, regardless of what (if anything) the
// body explicitly returned.
func (f *Function) Call(interp Interp, args []Value) (result Value, errDiag *diag.Diagnostic) {
	callEnv := environment.New(f.Closure)
	for i, param := range f.Declaration.Params {
		callEnv.Define(param.Lexeme, args[i])
	}

	result = Nil{}
	func() {
		defer func() {
			if r := recover(); r != nil {
				if ret, ok := r.(ReturnSignal); ok {
					result = ret.Value
					return
				}
				panic(r)
			}
		}()
		errDiag = interp.ExecuteBlock(f.Declaration.Body, callEnv)
	}()

	if errDiag != nil {
		return Nil{}, errDiag
	}
	if f.IsInitializer {
		return f.Closure.GetAt(0, "this").(Value), nil
	}
	return result, nil
}

// Bind returns a fresh Function whose closure is a new environment wrapping
// f's closure with `this` bound to instance. It is fresh per access (never
// stored on the instance), so no this->closure->instance retain cycle is
// created.
func (f *Function) Bind(instance *Instance) *Function {
	env := environment.New(f.Closure)
	env.Define("this", instance)
	return &Function{Declaration: f.Declaration, Closure: env, IsInitializer: f.IsInitializer}
}

// Class is a runtime class value: a name, an optional superclass, and its
// own method table (method lookup on an Instance walks this chain).
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func (*Class) Type() string     { return "class" }
func (c *Class) String() string { return c.Name }

// FindMethod looks up name on this class, then walks the superclass chain.
func (c *Class) FindMethod(name string) (*Function, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

// Arity is the arity of `init` if the class declares one, else 0 (a class
// with no initializer can still be instantiated with no arguments).
func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call constructs a new Instance and, if the class (or an ancestor) defines
// `init`, runs it bound to the new instance before returning it.
func (c *Class) Call(interp Interp, args []Value) (Value, *diag.Diagnostic) {
	instance := &Instance{Class: c, Fields: make(map[string]Value)}
	if init, ok := c.FindMethod("init"); ok {
		if _, errDiag := init.Bind(instance).Call(interp, args); errDiag != nil {
			return Nil{}, errDiag
		}
	}
	return instance, nil
}

// Instance is a runtime object: an immutable class reference and a mutable
// field map.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

func (*Instance) Type() string     { return "instance" }
func (i *Instance) String() string { return fmt.Sprintf("<%s> instance", i.Class.Name) }

// Get resolves a property: fields shadow methods, and a method retrieved
// off an instance comes back bound to it.
func (i *Instance) Get(name string) (Value, bool) {
	if v, ok := i.Fields[name]; ok {
		return v, true
	}
	if method, ok := i.Class.FindMethod(name); ok {
		return method.Bind(i), true
	}
	return nil, false
}

// Set writes a field unconditionally; treewalk has no field declarations to
// validate against.
func (i *Instance) Set(name string, value Value) {
	i.Fields[name] = value
}

// NativeFunction wraps a Go function as a callable value, used for builtins
// like `clock`.
type NativeFunction struct {
	Name string
	Arg  int
	Fn   func(args []Value) Value
}

func (*NativeFunction) Type() string     { return "native" }
func (n *NativeFunction) String() string { return fmt.Sprintf("<native fn %s>", n.Name) }
func (n *NativeFunction) Arity() int     { return n.Arg }

func (n *NativeFunction) Call(_ Interp, args []Value) (Value, *diag.Diagnostic) {
	return n.Fn(args), nil
}
