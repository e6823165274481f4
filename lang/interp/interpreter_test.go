package interp_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/loxi/lang/interp"
	"github.com/mna/loxi/lang/parser"
	"github.com/mna/loxi/lang/resolver"
)

func run(t *testing.T, src string) (string, error) {
	t.Helper()

	stmts, err := parser.Parse([]byte(src))
	require.NoError(t, err)

	locals, err := resolver.Resolve(stmts)
	require.NoError(t, err)

	var buf bytes.Buffer
	in := interp.New(&buf)
	err = in.Interpret(stmts, locals)
	return buf.String(), err
}

func TestInterpretArithmeticPrecedence(t *testing.T) {
	out, err := run(t, `print 1 + 2 * 3;`)
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestInterpretBlockShadowing(t *testing.T) {
	out, err := run(t, `var a=1; { var a=2; print a; } print a;`)
	require.NoError(t, err)
	assert.Equal(t, "2\n1\n", out)
}

func TestInterpretRecursion(t *testing.T) {
	out, err := run(t, `fun fib(n){ if (n<2) return n; return fib(n-1)+fib(n-2); } print fib(10);`)
	require.NoError(t, err)
	assert.Equal(t, "55\n", out)
}

func TestInterpretClosureCounters(t *testing.T) {
	src := `
		fun makeCounter(){
			var n=0;
			fun c(){ n=n+1; return n; }
			return c;
		}
		var c1 = makeCounter();
		var c2 = makeCounter();
		print c1();
		print c1();
		print c2();
		print c1();
	`
	out, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n1\n3\n", out)
}

func TestInterpretClassesAndInheritance(t *testing.T) {
	src := `class A{ m(){print "A";} } class B<A{ m(){ super.m(); print "B"; } } B().m();`
	out, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, "A\nB\n", out)
}

func TestInterpretInitializerBindsFields(t *testing.T) {
	out, err := run(t, `class C{ init(x){ this.x=x; } } var c=C(7); print c.x;`)
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestInterpretThisSurvivesDetachedCall(t *testing.T) {
	src := `
		class A {
			hi() { print this.name; }
		}
		var a = A();
		a.name = "Ax";
		var detached = a.hi;
		detached();
	`
	out, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, "Ax\n", out)
}

func TestInterpretLexicalScoping(t *testing.T) {
	out, err := run(t, `var x="a"; fun f(){ print x; } { var x="b"; f(); }`)
	require.NoError(t, err)
	assert.Equal(t, "a\n", out)
}

func TestInterpretReturnUnwindsThroughLoopsAndBlocks(t *testing.T) {
	src := `
		fun firstAtLeast(limit){
			for (var i=0; i<100; i=i+1){
				{
					if (i >= limit) return i;
				}
			}
			return -1;
		}
		print firstAtLeast(10);
	`
	out, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, "10\n", out)
}

func TestInterpretOperandTypeErrors(t *testing.T) {
	_, err := run(t, `print -"x";`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Operand must be a number.")

	_, err = run(t, `"a" - 1;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Operands must be a number.")
}

func TestInterpretStringConcatenation(t *testing.T) {
	out, err := run(t, `print "foo" + "bar";`)
	require.NoError(t, err)
	assert.Equal(t, "foobar\n", out)
}

func TestInterpretConcatenationTypeMismatch(t *testing.T) {
	_, err := run(t, `"a" + 1;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Operands must be two numbers or two strings.")
}

func TestInterpretUndefinedVariable(t *testing.T) {
	_, err := run(t, `print missing;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined Variable 'missing'.")
}

func TestInterpretNotCallable(t *testing.T) {
	_, err := run(t, `var x = 1; x();`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can only call functions and classes.")
}

func TestInterpretArityMismatch(t *testing.T) {
	_, err := run(t, `fun f(a,b){ return a+b; } f(1);`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected 2 arguments but got 1.")
}

func TestInterpretSuperclassMustBeClass(t *testing.T) {
	_, err := run(t, `var NotAClass = 1; class B < NotAClass {}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Superclass must be a class.")
}

func TestInterpretPrintInstance(t *testing.T) {
	out, err := run(t, `class Point{} print Point();`)
	require.NoError(t, err)
	assert.Equal(t, "Point instance\n", out)
}
