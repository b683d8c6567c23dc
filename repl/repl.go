/*
File    : treewalk/repl/repl.go

Package repl implements the line-at-a-time Read-Eval-Print Loop: lex, parse,
resolve, and interpret one line against a persistent Interpreter, so
declarations and state from earlier lines stay visible to later ones.
*/
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"treewalk/interpreter"
	"treewalk/lexer"
	"treewalk/parser"
	"treewalk/resolver"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl is one interactive session's visual configuration.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string
}

// NewRepl creates a Repl ready to Start.
func NewRepl(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo prints the startup banner and usage instructions.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Type your code and press enter")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the REPL loop until the user exits or input ends. One
// Interpreter lives for the whole session, so `var`/`function`/`class`
// declarations from one line are visible on the next; each line gets a
// fresh Resolver (every line resolves at global scope) whose distances are
// merged into that Interpreter. Input is read by readline from the
// process's stdin; reader is not read.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	interp := interpreter.New()
	interp.Writer = writer

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good bye!\n"))
			break
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good bye!\n"))
			break
		}

		rl.SaveHistory(line)
		r.runLine(writer, line, interp)
	}
}

// runLine drives one line through lex/parse/resolve/interpret, reporting
// every diagnostic of the first stage that fails. A lex, parse, or resolve
// failure leaves interp untouched; a runtime error stops the line, and the
// effects of the statements that already ran remain.
func (r *Repl) runLine(writer io.Writer, line string, interp *interpreter.Interpreter) {
	tokens, lexDiags := lexer.New(line).ScanTokens()
	if lexDiags.HasErrors() {
		for _, d := range lexDiags.Items() {
			redColor.Fprintf(writer, "%s\n", d.Error())
		}
		return
	}

	stmts, parseDiags := parser.New(tokens).Parse()
	if parseDiags.HasErrors() {
		for _, d := range parseDiags.Items() {
			redColor.Fprintf(writer, "%s\n", d.Error())
		}
		return
	}

	distances, resolveDiags := resolver.New().Resolve(stmts)
	if resolveDiags.HasErrors() {
		for _, d := range resolveDiags.Items() {
			redColor.Fprintf(writer, "%s\n", d.Error())
		}
		return
	}
	interp.AddDistances(distances)

	if errDiag := interp.Interpret(stmts); errDiag != nil {
		redColor.Fprintf(writer, "%s\n", errDiag.Error())
	}
}
