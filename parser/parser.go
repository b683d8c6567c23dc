/*
File    : treewalk/parser/parser.go

Package parser implements a recursive-descent, Pratt-style parser: one
token of lookahead, a precedence climb from assignment down to primary, and
panic-based error recovery caught at the declaration boundary so a single
parse can report more than one syntax error.
*/
package parser

import (
	"treewalk/ast"
	"treewalk/diag"
	"treewalk/lexer"
)

const maxArgs = 255

// parseError unwinds out of the current declaration on a syntax error; it
// carries no payload because the diagnostic has already been recorded in
// Parser.diags at the point of failure.
type parseError struct{}

// Parser consumes a token slice produced by the lexer and builds a program
// (slice of ast.Stmt), accumulating diagnostics along the way.
type Parser struct {
	tokens  []lexer.Token
	current int
	diags   diag.List
}

// New creates a Parser over tokens.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse runs `program → declaration* EOF` and returns the resulting
// statement list along with any accumulated diagnostics. Errors within one
// declaration do not stop the parse: synchronize() recovers at the next
// likely statement boundary.
func (p *Parser) Parse() ([]ast.Stmt, *diag.List) {
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		if stmt, ok := p.declaration(); ok {
			stmts = append(stmts, stmt)
		}
	}
	return stmts, &p.diags
}

// declaration dispatches to the classDecl/funcDecl/varDecl productions or
// falls through to a plain statement, recovering via synchronize on error.
func (p *Parser) declaration() (stmt ast.Stmt, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isParseErr := r.(parseError); !isParseErr {
				panic(r)
			}
			p.synchronize()
			stmt, ok = nil, false
		}
	}()

	switch {
	case p.match(lexer.CLASS):
		return p.classDeclaration(), true
	case p.match(lexer.FUNCTION):
		return p.function("function"), true
	case p.match(lexer.VAR):
		return p.varDeclaration(), true
	default:
		return p.statement(), true
	}
}

// classDeclaration parses `"class" IDENT ( "<" IDENT )? "{" function* "}"`.
func (p *Parser) classDeclaration() ast.Stmt {
	name := p.consume(lexer.IDENTIFIER, "expect class name")

	// Self-inheritance (`class A < A`) is a name-equality check that needs no
	// scope information, but it is reported as a resolve error, not a parse
	// error, so the check itself lives in the resolver's Class case, not here.
	var superclass *ast.Variable
	if p.match(lexer.LESS) {
		superName := p.consume(lexer.IDENTIFIER, "expect superclass name")
		superclass = ast.NewVariable(superName)
	}

	p.consume(lexer.LEFT_BRACE, "expect '{' before class body")
	var methods []*ast.Function
	for !p.check(lexer.RIGHT_BRACE) && !p.isAtEnd() {
		methods = append(methods, p.function("method"))
	}
	p.consume(lexer.RIGHT_BRACE, "expect '}' after class body")

	return &ast.Class{Name: name, Superclass: superclass, Methods: methods}
}

// function parses `IDENT "(" params? ")" block`, shared by funcDecl and
// class method declarations (kind is only used for error messages).
func (p *Parser) function(kind string) *ast.Function {
	name := p.consume(lexer.IDENTIFIER, "expect "+kind+" name")
	p.consume(lexer.LEFT_PAREN, "expect '(' after "+kind+" name")

	var params []lexer.Token
	if !p.check(lexer.RIGHT_PAREN) {
		for {
			if len(params) >= maxArgs {
				p.error(p.peek(), "can't have more than 255 parameters")
			}
			params = append(params, p.consume(lexer.IDENTIFIER, "expect parameter name"))
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	p.consume(lexer.RIGHT_PAREN, "expect ')' after parameters")
	p.consume(lexer.LEFT_BRACE, "expect '{' before "+kind+" body")
	body := p.block()
	return &ast.Function{Name: name, Params: params, Body: body}
}

// varDeclaration parses `"var" IDENT ( "=" expression )? ";"`.
func (p *Parser) varDeclaration() ast.Stmt {
	name := p.consume(lexer.IDENTIFIER, "expect variable name")
	var initializer ast.Expr
	if p.match(lexer.EQUAL) {
		initializer = p.expression()
	}
	p.consume(lexer.SEMICOLON, "expect ';' after variable declaration")
	return &ast.Var{Name: name, Initializer: initializer}
}

// statement dispatches among the non-declaration statement productions.
func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(lexer.IF):
		return p.ifStatement()
	case p.match(lexer.FOR):
		return p.forStatement()
	case p.match(lexer.PRINT):
		return p.printStatement()
	case p.match(lexer.RETURN):
		return p.returnStatement()
	case p.match(lexer.WHILE):
		return p.whileStatement()
	case p.match(lexer.LEFT_BRACE):
		return &ast.Block{Stmts: p.block()}
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(lexer.RIGHT_BRACE) && !p.isAtEnd() {
		if stmt, ok := p.declaration(); ok {
			stmts = append(stmts, stmt)
		}
	}
	p.consume(lexer.RIGHT_BRACE, "expect '}' after block")
	return stmts
}

func (p *Parser) printStatement() ast.Stmt {
	value := p.expression()
	p.consume(lexer.SEMICOLON, "expect ';' after value")
	return &ast.Print{Expr: value}
}

func (p *Parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	p.consume(lexer.SEMICOLON, "expect ';' after expression")
	return &ast.Expression{Expr: expr}
}

func (p *Parser) ifStatement() ast.Stmt {
	p.consume(lexer.LEFT_PAREN, "expect '(' after 'if'")
	cond := p.expression()
	p.consume(lexer.RIGHT_PAREN, "expect ')' after if condition")

	then := p.statement()
	var elseBranch ast.Stmt
	if p.match(lexer.ELSE) {
		elseBranch = p.statement()
	}
	return &ast.If{Cond: cond, Then: then, ElseBranch: elseBranch}
}

func (p *Parser) whileStatement() ast.Stmt {
	p.consume(lexer.LEFT_PAREN, "expect '(' after 'while'")
	cond := p.expression()
	p.consume(lexer.RIGHT_PAREN, "expect ')' after condition")
	body := p.statement()
	return &ast.While{Cond: cond, Body: body}
}

// forStatement parses the C-style for loop and desugars it into the
// equivalent `{ init; while (cond) { body; inc; } }`.
func (p *Parser) forStatement() ast.Stmt {
	p.consume(lexer.LEFT_PAREN, "expect '(' after 'for'")

	var initializer ast.Stmt
	switch {
	case p.match(lexer.SEMICOLON):
		initializer = nil
	case p.match(lexer.VAR):
		initializer = p.varDeclaration()
	default:
		initializer = p.expressionStatement()
	}

	var cond ast.Expr
	if !p.check(lexer.SEMICOLON) {
		cond = p.expression()
	}
	p.consume(lexer.SEMICOLON, "expect ';' after loop condition")

	var increment ast.Expr
	if !p.check(lexer.RIGHT_PAREN) {
		increment = p.expression()
	}
	p.consume(lexer.RIGHT_PAREN, "expect ')' after for clauses")

	body := p.statement()

	if increment != nil {
		body = &ast.Block{Stmts: []ast.Stmt{body, &ast.Expression{Expr: increment}}}
	}
	if cond == nil {
		cond = ast.NewLiteral(true)
	}
	body = &ast.While{Cond: cond, Body: body}

	if initializer != nil {
		body = &ast.Block{Stmts: []ast.Stmt{initializer, body}}
	}
	return body
}

func (p *Parser) returnStatement() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(lexer.SEMICOLON) {
		value = p.expression()
	}
	p.consume(lexer.SEMICOLON, "expect ';' after return value")
	return &ast.Return{Keyword: keyword, Value: value}
}
