package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/loxi/lang/ast"
	"github.com/mna/loxi/lang/parser"
)

// TestParserPrecedence exercises invariant #1: re-stringifying a parsed
// expression via the pretty-printer preserves operator precedence and
// grouping.
func TestParserPrecedence(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3;", "(+ 1 (* 2 3))"},
		{"(1 + 2) * 3;", "(* (group (+ 1 2)) 3)"},
		{"-1 + 2;", "(+ (- 1) 2)"},
		{"1 < 2 == 3 < 4;", "(== (< 1 2) (< 3 4))"},
		{"a = b = 1;", "(= a (= b 1))"},
		{"1 or 2 and 3;", "(or 1 (and 2 3))"},
	}

	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			stmts, err := parser.Parse([]byte(tc.src))
			require.NoError(t, err)
			require.Len(t, stmts, 1)
			es, ok := stmts[0].(*ast.Expression)
			require.True(t, ok)
			assert.Equal(t, tc.want, ast.Print(es.Expr))
		})
	}
}

func TestParserStatements(t *testing.T) {
	src := `
		var a = 1;
		fun add(x, y) { return x + y; }
		class Greeter < Base {
			hello() { print "hi"; }
		}
		if (a) { print a; } else { print "no"; }
		while (a < 10) { a = a + 1; }
		for (var i = 0; i < 3; i = i + 1) print i;
	`
	stmts, err := parser.Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, stmts, 6)

	v, ok := stmts[0].(*ast.Var)
	require.True(t, ok)
	assert.Equal(t, "a", v.Name.Lexeme)

	fn, ok := stmts[1].(*ast.Function)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name.Lexeme)
	assert.Len(t, fn.Params, 2)

	cls, ok := stmts[2].(*ast.Class)
	require.True(t, ok)
	assert.Equal(t, "Greeter", cls.Name.Lexeme)
	require.NotNil(t, cls.Superclass)
	assert.Equal(t, "Base", cls.Superclass.Name.Lexeme)
	require.Len(t, cls.Methods, 1)
	assert.Equal(t, "hello", cls.Methods[0].Name.Lexeme)

	// the for loop desugars to a block wrapping a while loop.
	forBlock, ok := stmts[5].(*ast.Block)
	require.True(t, ok)
	require.Len(t, forBlock.Statements, 2)
	_, ok = forBlock.Statements[1].(*ast.While)
	assert.True(t, ok)
}

func TestParserErrorRecoverySynchronizes(t *testing.T) {
	src := `
		var a = ;
		var b = 2;
	`
	_, err := parser.Parse([]byte(src))
	require.Error(t, err)
	merr, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok)
	// only the malformed declaration should produce an error; synchronize
	// must skip past it and let "var b = 2;" parse cleanly.
	assert.Len(t, merr.Unwrap(), 1)
}

func TestParserInvalidAssignmentTarget(t *testing.T) {
	_, err := parser.Parse([]byte("1 + 2 = 3;"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid assignment target.")
}

func TestParserErrorMessageShape(t *testing.T) {
	_, err := parser.Parse([]byte("(1 + 2;"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[line 1] Error: Expect ')' after expression.")
}
