/*
File    : treewalk/parser/helpers.go

Token-stream primitives shared by the statement and expression parsers, and
the error/synchronize machinery.
*/
package parser

import (
	"treewalk/diag"
	"treewalk/lexer"
)

func (p *Parser) check(kind lexer.Kind) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == kind
}

// match advances past the current token and returns true if it is one of
// kinds; otherwise the position is left unchanged.
func (p *Parser) match(kinds ...lexer.Kind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances past the current token if it has the expected kind,
// otherwise it records a diagnostic and unwinds via parseError to the
// nearest declaration boundary.
func (p *Parser) consume(kind lexer.Kind, message string) lexer.Token {
	if p.check(kind) {
		return p.advance()
	}
	p.error(p.peek(), message)
	panic(parseError{})
}

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == lexer.EOF
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() lexer.Token {
	return p.tokens[p.current-1]
}

// error records a Parse diagnostic at tok's line without unwinding; callers
// that need to abandon the current production panic(parseError{}) themselves.
func (p *Parser) error(tok lexer.Token, message string) {
	if tok.Kind == lexer.EOF {
		p.diags.Add(diag.New(diag.Parse, tok.Line, "at end: %s", message))
		return
	}
	p.diags.Add(diag.New(diag.Parse, tok.Line, "at '%s': %s", tok.Lexeme, message))
}

// synchronize discards tokens until it has just consumed a ';' or sits at
// the start of one of class/function/var/for/if/while/print/return, the
// set of likely statement boundaries. This lets one parse report multiple
// independent syntax errors instead of stopping at the first.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == lexer.SEMICOLON {
			return
		}
		switch p.peek().Kind {
		case lexer.CLASS, lexer.FUNCTION, lexer.VAR, lexer.FOR,
			lexer.IF, lexer.WHILE, lexer.PRINT, lexer.RETURN:
			return
		}
		p.advance()
	}
}
