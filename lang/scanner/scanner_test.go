package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/loxi/lang/scanner"
	"github.com/mna/loxi/lang/token"
)

func TestScanTokens(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []token.Kind
	}{
		{"empty", "", []token.Kind{token.EOF}},
		{
			"punctuation",
			"(){},.-+;*",
			[]token.Kind{
				token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE, token.COMMA,
				token.DOT, token.MINUS, token.PLUS, token.SEMICOLON, token.STAR, token.EOF,
			},
		},
		{
			"two char operators",
			"! != = == < <= > >=",
			[]token.Kind{
				token.BANG, token.BANG_EQUAL, token.EQUAL, token.EQUAL_EQUAL,
				token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL, token.EOF,
			},
		},
		{
			"comment is ignored",
			"var x = 1; // trailing comment\nprint x;",
			[]token.Kind{
				token.VAR, token.IDENT, token.EQUAL, token.NUMBER, token.SEMICOLON,
				token.PRINT, token.IDENT, token.SEMICOLON, token.EOF,
			},
		},
		{
			"keywords vs identifiers",
			"and classy class",
			[]token.Kind{token.AND, token.IDENT, token.CLASS, token.EOF},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			toks, err := scanner.Scan([]byte(tc.src))
			require.NoError(t, err)
			kinds := make([]token.Kind, len(toks))
			for i, tok := range toks {
				kinds[i] = tok.Kind
			}
			assert.Equal(t, tc.want, kinds)
		})
	}
}

func TestScanNumber(t *testing.T) {
	toks, err := scanner.Scan([]byte("123 45.67 8."))
	require.NoError(t, err)

	require.Len(t, toks, 5) // 123, 45.67, 8, ., EOF
	assert.Equal(t, 123.0, toks[0].Literal)
	assert.Equal(t, 45.67, toks[1].Literal)
	assert.Equal(t, 8.0, toks[2].Literal)
	assert.Equal(t, token.DOT, toks[3].Kind)
}

func TestScanString(t *testing.T) {
	toks, err := scanner.Scan([]byte(`"hello world"`))
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, "hello world", toks[0].Literal)
	assert.Equal(t, "hello world", toks[0].Lexeme)
}

func TestScanStringSpansNewlines(t *testing.T) {
	toks, err := scanner.Scan([]byte("\"line one\nline two\"\nprint 1;"))
	require.NoError(t, err)
	require.Len(t, toks, 5) // string, print, 1, ;, EOF
	assert.Equal(t, 2, toks[0].Line)
	assert.Equal(t, 3, toks[1].Line)
}

func TestScanUnterminatedString(t *testing.T) {
	_, err := scanner.Scan([]byte(`"unterminated`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unterminated string.")
}

func TestScanUnexpectedCharacter(t *testing.T) {
	_, err := scanner.Scan([]byte("var x = @;"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unexpected character '@'")
}

func TestScanAccumulatesMultipleErrors(t *testing.T) {
	_, err := scanner.Scan([]byte("@ # $"))
	require.Error(t, err)
	merr, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok)
	assert.Len(t, merr.Unwrap(), 3)
}
