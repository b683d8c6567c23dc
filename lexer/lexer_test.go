/*
File    : treewalk/lexer/lexer_test.go
*/
package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"treewalk/diag"
)

// kindsOf strips lexemes/literals so tests can assert on token shape alone.
func kindsOf(tokens []Token) []Kind {
	kinds := make([]Kind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	return kinds
}

func TestScanTokens_Punctuation(t *testing.T) {
	tokens, diags := New(`(){},.-+;*/ %`).ScanTokens()
	assert.False(t, diags.HasErrors())
	assert.Equal(t, []Kind{
		LEFT_PAREN, RIGHT_PAREN, LEFT_BRACE, RIGHT_BRACE, COMMA, DOT,
		MINUS, PLUS, SEMICOLON, STAR, SLASH, PERCENT, EOF,
	}, kindsOf(tokens))
}

func TestScanTokens_TwoCharOperators(t *testing.T) {
	tokens, diags := New(`! != = == > >= < <=`).ScanTokens()
	assert.False(t, diags.HasErrors())
	assert.Equal(t, []Kind{
		BANG, BANG_EQUAL, EQUAL, EQUAL_EQUAL, GREATER, GREATER_EQUAL, LESS, LESS_EQUAL, EOF,
	}, kindsOf(tokens))
}

func TestScanTokens_KeywordsVsIdentifiers(t *testing.T) {
	tokens, diags := New(`class super this return foobar`).ScanTokens()
	assert.False(t, diags.HasErrors())
	assert.Equal(t, []Kind{CLASS, SUPER, THIS, RETURN, IDENTIFIER, EOF}, kindsOf(tokens))
}

func TestScanTokens_NumberLiteral(t *testing.T) {
	tokens, _ := New(`123 3.14`).ScanTokens()
	assert.Equal(t, 123.0, tokens[0].Literal)
	assert.Equal(t, 3.14, tokens[1].Literal)
}

func TestScanTokens_StringLiteral(t *testing.T) {
	tokens, diags := New(`"hello world"`).ScanTokens()
	assert.False(t, diags.HasErrors())
	assert.Equal(t, "hello world", tokens[0].Literal)
}

func TestScanTokens_StringSpansLines(t *testing.T) {
	tokens, diags := New("\"line1\nline2\"\nprint;").ScanTokens()
	assert.False(t, diags.HasErrors())
	assert.Equal(t, "line1\nline2", tokens[0].Literal)
	// The token after the multi-line string should report the advanced line.
	printTok := tokens[1]
	assert.Equal(t, PRINT, printTok.Kind)
	assert.Equal(t, 3, printTok.Line)
}

func TestScanTokens_UnterminatedString(t *testing.T) {
	_, diags := New(`"never closed`).ScanTokens()
	assert.True(t, diags.HasErrors())
	assert.Equal(t, diag.Lex, diags.Items()[0].Stage)
}

func TestScanTokens_UnexpectedCharacter(t *testing.T) {
	_, diags := New(`@`).ScanTokens()
	assert.True(t, diags.HasErrors())
}

func TestScanTokens_CommentsAndWhitespaceSkipped(t *testing.T) {
	tokens, diags := New("// a comment\nvar a = 1; // trailing\n").ScanTokens()
	assert.False(t, diags.HasErrors())
	assert.Equal(t, []Kind{VAR, IDENTIFIER, EQUAL, NUMBER, SEMICOLON, EOF}, kindsOf(tokens))
}

func TestScanTokens_EmptySourceYieldsOnlyEOF(t *testing.T) {
	tokens, diags := New("").ScanTokens()
	assert.False(t, diags.HasErrors())
	assert.Equal(t, []Kind{EOF}, kindsOf(tokens))
}
