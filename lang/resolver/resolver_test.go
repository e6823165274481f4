package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/loxi/lang/ast"
	"github.com/mna/loxi/lang/parser"
	"github.com/mna/loxi/lang/resolver"
)

func mustParse(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	stmts, err := parser.Parse([]byte(src))
	require.NoError(t, err)
	return stmts
}

func TestResolverDepth(t *testing.T) {
	// the inner `a` read is 0 hops (same block), the print of the outer `a`
	// is 0 hops from the top level (no entry: it is a global).
	stmts := mustParse(t, `var a=1; { var a=2; print a; } print a;`)
	locals, err := resolver.Resolve(stmts)
	require.NoError(t, err)

	block := stmts[1].(*ast.Block)
	innerPrint := block.Statements[1].(*ast.Print)
	innerVar := innerPrint.Expr.(*ast.Variable)
	depth, ok := locals[innerVar]
	require.True(t, ok)
	assert.Equal(t, 0, depth)

	outerPrint := stmts[2].(*ast.Print)
	outerVar := outerPrint.Expr.(*ast.Variable)
	_, ok = locals[outerVar]
	assert.False(t, ok, "top-level global reads are not recorded in the side table")
}

func TestResolverClosureDepth(t *testing.T) {
	// x is read from inside f's body. f is declared at the top level, so
	// that read resolves to the global x (no side-table entry); the
	// block-local x next to the call site is not in f's lexical scope. The
	// test checks that the program resolves without error.
	stmts := mustParse(t, `var x="a"; fun f(){ print x; } { var x="b"; f(); }`)
	_, err := resolver.Resolve(stmts)
	require.NoError(t, err)
}

func TestResolverReadOwnInitializer(t *testing.T) {
	stmts := mustParse(t, `{ var a = a; }`)
	_, err := resolver.Resolve(stmts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't read local variable in its own initializer.")
}

func TestResolverDuplicateLocal(t *testing.T) {
	stmts := mustParse(t, `{ var a = 1; var a = 2; }`)
	_, err := resolver.Resolve(stmts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Already a variable with this name in this scope.")
}

func TestResolverReturnAtTopLevel(t *testing.T) {
	stmts := mustParse(t, `return 0;`)
	_, err := resolver.Resolve(stmts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't return from top-level code.")
}

func TestResolverReturnValueFromInitializer(t *testing.T) {
	stmts := mustParse(t, `class A { init(){ return 0; } }`)
	_, err := resolver.Resolve(stmts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't return a value from an initializer.")
}

func TestResolverSelfInheritance(t *testing.T) {
	stmts := mustParse(t, `class A < A {}`)
	_, err := resolver.Resolve(stmts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "A class can't inherit from itself.")
}

func TestResolverThisOutsideClass(t *testing.T) {
	stmts := mustParse(t, `print this;`)
	_, err := resolver.Resolve(stmts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't use 'this' outside of a class.")
}

func TestResolverErrorMessageShape(t *testing.T) {
	stmts := mustParse(t, `print this;`)
	_, err := resolver.Resolve(stmts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[line 1] Error at 'this': Can't use 'this' outside of a class.")
}
