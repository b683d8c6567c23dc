/*
File    : treewalk/cmd/treewalk/main.go

Command treewalk is the CLI driver: `treewalk run <file>` executes a script,
`treewalk repl` starts an interactive session, `treewalk version` prints
build identity. Running `treewalk` with no subcommand starts the REPL.
*/
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"treewalk/interpreter"
	"treewalk/lexer"
	"treewalk/parser"
	"treewalk/pkg/version"
	"treewalk/repl"
	"treewalk/resolver"
)

const (
	banner = `
  _                            _ _
 | |_ _ __ ___  _____      ____ _| | | __
 | __| '__/ _ \/ _ \ \ /\ / / _' | | |/ /
 | |_| | |  __/  __/\ V  V / (_| | |   <
  \__|_|  \___|\___| \_/\_/ \__,_|_|_|\_\
`
	line    = "----------------------------------------------------------------"
	author  = "treewalk contributors"
	license = "MIT"
	prompt  = "treewalk >>> "
)

var redColor = color.New(color.FgRed)

func main() {
	root := &cobra.Command{
		Use:     "treewalk",
		Short:   "treewalk is a tree-walking interpreter for a small scripting language",
		Version: version.String(),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			startRepl()
			return nil
		},
	}

	root.AddCommand(runCmd(), replCmd(), versionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Execute a script file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(args[0])
		},
	}
}

func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			startRepl()
			return nil
		},
	}
}

// startRepl launches an interactive session on stdin/stdout, used both by
// `treewalk repl` and by running `treewalk` with no subcommand at all.
func startRepl() {
	r := repl.NewRepl(banner, version.Version, author, line, license, prompt)
	r.Start(os.Stdin, os.Stdout)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(version.String())
			return nil
		},
	}
}

// runFile reads source, then lexes/parses/resolves/interprets it in one
// pipeline, reporting diagnostics from whichever stage first reports one.
func runFile(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not read file '%s': %v\n", path, err)
		os.Exit(1)
	}

	tokens, lexDiags := lexer.New(string(source)).ScanTokens()
	if lexDiags.HasErrors() {
		for _, d := range lexDiags.Items() {
			redColor.Fprintf(os.Stderr, "%s\n", d.Error())
		}
		os.Exit(65)
	}

	stmts, parseDiags := parser.New(tokens).Parse()
	if parseDiags.HasErrors() {
		for _, d := range parseDiags.Items() {
			redColor.Fprintf(os.Stderr, "%s\n", d.Error())
		}
		os.Exit(65)
	}

	distances, resolveDiags := resolver.New().Resolve(stmts)
	if resolveDiags.HasErrors() {
		for _, d := range resolveDiags.Items() {
			redColor.Fprintf(os.Stderr, "%s\n", d.Error())
		}
		os.Exit(65)
	}

	interp := interpreter.New()
	interp.AddDistances(distances)
	if errDiag := interp.Interpret(stmts); errDiag != nil {
		redColor.Fprintf(os.Stderr, "%s\n", errDiag.Error())
		os.Exit(70)
	}
	return nil
}
