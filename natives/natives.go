/*
File    : treewalk/natives/natives.go

Package natives seeds an Interpreter's global environment with the
language's built-in functions: currently just `clock`, a zero-arg function
returning current wall-clock time in milliseconds as a Number, used by
scripts to measure elapsed time.
*/
package natives

import (
	"time"

	"treewalk/environment"
	"treewalk/values"
)

// Register defines every native function into globals.
func Register(globals *environment.Environment) {
	globals.Define("clock", &values.NativeFunction{
		Name: "clock",
		Arg:  0,
		Fn: func(_ []values.Value) values.Value {
			return values.Number(float64(time.Now().UnixMilli()))
		},
	})
}
