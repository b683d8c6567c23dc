/*
File    : treewalk/diag/diag.go

Package diag defines the structured diagnostics produced across the
lexer/parser/resolver/interpreter pipeline. Every stage reports failures
through a Diagnostic rather than an ad hoc string, so the CLI and REPL
layers can format, color, and count them uniformly.
*/
package diag

import "fmt"

// Stage identifies which pipeline phase raised a Diagnostic.
type Stage int

const (
	// Lex marks a diagnostic raised while scanning source text into tokens.
	Lex Stage = iota
	// Parse marks a diagnostic raised while building the AST from tokens.
	Parse
	// Resolve marks a diagnostic raised while computing scope distances.
	Resolve
	// Runtime marks a diagnostic raised while evaluating the AST.
	Runtime
)

// String renders the Stage name that Error wraps in brackets for CLI output,
// e.g. "PARSE" (shown as "[PARSE]").
func (s Stage) String() string {
	switch s {
	case Lex:
		return "LEX"
	case Parse:
		return "PARSE"
	case Resolve:
		return "RESOLVE"
	case Runtime:
		return "RUNTIME"
	default:
		return "UNKNOWN"
	}
}

// Diagnostic is a single reported failure, tagged with the stage that raised
// it and the 1-based source line it concerns (0 when no line applies).
type Diagnostic struct {
	Stage   Stage
	Line    int
	Message string
}

// New builds a Diagnostic for the given stage and line with a formatted message.
func New(stage Stage, line int, format string, args ...any) *Diagnostic {
	return &Diagnostic{Stage: stage, Line: line, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface so a Diagnostic can be returned and
// handled anywhere ordinary Go errors are.
func (d *Diagnostic) Error() string {
	if d.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s", d.Stage, d.Line, d.Message)
	}
	return fmt.Sprintf("[%s] %s", d.Stage, d.Message)
}

// List is an accumulator of diagnostics produced by a stage that does not
// fail fast (the lexer, parser, and resolver), so a single run can report
// more than one mistake.
type List struct {
	items []*Diagnostic
}

// Add appends a diagnostic to the list.
func (l *List) Add(d *Diagnostic) {
	l.items = append(l.items, d)
}

// HasErrors reports whether any diagnostic has been accumulated.
func (l *List) HasErrors() bool {
	return len(l.items) > 0
}

// Items returns the accumulated diagnostics in report order.
func (l *List) Items() []*Diagnostic {
	return l.items
}
