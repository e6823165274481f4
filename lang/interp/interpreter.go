// Package interp implements the tree-walking evaluator: given a resolved
// AST, it executes statements and evaluates expressions directly, without
// compiling to any intermediate bytecode.
package interp

import (
	"fmt"
	"io"

	"github.com/mna/loxi/lang/ast"
	"github.com/mna/loxi/lang/resolver"
	"github.com/mna/loxi/lang/token"
)

// Interpreter walks a resolved program once, left to right, top to bottom.
// It is single-threaded and synchronous: every operation either produces a
// value, raises a RuntimeError, or triggers a returnSignal unwind caught at
// the nearest function call.
type Interpreter struct {
	globals *Environment
	env     *Environment
	locals  resolver.Locals
	stdout  io.Writer
}

// New returns an Interpreter with clock() bound in the global scope and
// print output directed to stdout.
func New(stdout io.Writer) *Interpreter {
	globals := NewEnvironment(nil)
	globals.Define("clock", nativeClock{})
	return &Interpreter{globals: globals, env: globals, stdout: stdout}
}

// Interpret runs a resolved program to completion or until the first
// RuntimeError, matching the specification's "all other kinds abort
// immediately" rule (unlike scanning and parsing, which accumulate and
// continue).
func (in *Interpreter) Interpret(stmts []ast.Stmt, locals resolver.Locals) error {
	in.locals = locals
	for _, s := range stmts {
		if err := in.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) execute(s ast.Stmt) error {
	return s.Accept(in)
}

func (in *Interpreter) evaluate(e ast.Expr) (Value, error) {
	return e.Accept(in)
}

// executeBlock runs stmts in env, restoring the interpreter's previous
// environment on the way out (including on error or return unwind) so a
// function call never leaks its locals into the caller.
func (in *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) error {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, s := range stmts {
		if err := in.execute(s); err != nil {
			return err
		}
	}
	return nil
}

// lookUpVariable resolves e's binding using the distance the resolver
// computed, falling back to the global scope for names it left unresolved
// (true globals, as opposed to a resolver bug — the resolver is expected
// to have already rejected every other unresolved case).
func (in *Interpreter) lookUpVariable(name token.Token, e ast.Expr) (Value, error) {
	if distance, ok := in.locals[e]; ok {
		return in.env.GetAt(distance, name.Lexeme), nil
	}
	return in.globals.Get(name)
}

// --- StmtVisitor ---

func (in *Interpreter) VisitExpression(s *ast.Expression) error {
	_, err := in.evaluate(s.Expr)
	return err
}

func (in *Interpreter) VisitPrint(s *ast.Print) error {
	v, err := in.evaluate(s.Expr)
	if err != nil {
		return err
	}
	fmt.Fprintln(in.stdout, stringify(v))
	return nil
}

func (in *Interpreter) VisitVar(s *ast.Var) error {
	var value Value
	if s.Initializer != nil {
		v, err := in.evaluate(s.Initializer)
		if err != nil {
			return err
		}
		value = v
	}
	in.env.Define(s.Name.Lexeme, value)
	return nil
}

func (in *Interpreter) VisitBlock(s *ast.Block) error {
	return in.executeBlock(s.Statements, NewEnvironment(in.env))
}

func (in *Interpreter) VisitIf(s *ast.If) error {
	cond, err := in.evaluate(s.Cond)
	if err != nil {
		return err
	}
	switch {
	case isTruthy(cond):
		return in.execute(s.Then)
	case s.Else != nil:
		return in.execute(s.Else)
	default:
		return nil
	}
}

func (in *Interpreter) VisitWhile(s *ast.While) error {
	for {
		cond, err := in.evaluate(s.Cond)
		if err != nil {
			return err
		}
		if !isTruthy(cond) {
			return nil
		}
		if err := in.execute(s.Body); err != nil {
			return err
		}
	}
}

func (in *Interpreter) VisitFunction(s *ast.Function) error {
	in.env.Define(s.Name.Lexeme, newFunction(s, in.env, false))
	return nil
}

func (in *Interpreter) VisitReturn(s *ast.Return) error {
	var value Value
	if s.Value != nil {
		v, err := in.evaluate(s.Value)
		if err != nil {
			return err
		}
		value = v
	}
	return &returnSignal{Value: value}
}

func (in *Interpreter) VisitClass(s *ast.Class) error {
	var super *LoxClass
	if s.Superclass != nil {
		v, err := in.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*LoxClass)
		if !ok {
			return &RuntimeError{Tok: s.Superclass.Name, Message: "Superclass must be a class."}
		}
		super = sc
	}

	in.env.Define(s.Name.Lexeme, nil)

	// methods of a subclass close over an extra environment binding
	// `super`, mirroring the scope the resolver opens for it; a class with
	// no superclass gets no such environment.
	env := in.env
	if super != nil {
		env = NewEnvironment(in.env)
		env.Define("super", super)
	}

	methods := make(map[string]*LoxFunction, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = newFunction(m, env, m.Name.Lexeme == "init")
	}

	class := newClass(s.Name.Lexeme, super, methods)
	return in.env.Assign(s.Name, class)
}

// --- ExprVisitor ---

func (in *Interpreter) VisitLiteral(e *ast.Literal) (Value, error) {
	return e.Value, nil
}

func (in *Interpreter) VisitGrouping(e *ast.Grouping) (Value, error) {
	return in.evaluate(e.Inner)
}

func (in *Interpreter) VisitUnary(e *ast.Unary) (Value, error) {
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Op.Kind {
	case token.MINUS:
		f, ok := right.(float64)
		if !ok {
			return nil, &RuntimeError{Tok: e.Op, Message: "Operand must be a number."}
		}
		return -f, nil
	case token.BANG:
		return !isTruthy(right), nil
	}
	panic("unreachable unary operator " + e.Op.Kind.String())
}

func (in *Interpreter) VisitBinary(e *ast.Binary) (Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Kind {
	case token.PLUS:
		if lf, ok := left.(float64); ok {
			if rf, ok := right.(float64); ok {
				return lf + rf, nil
			}
		}
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs, nil
			}
		}
		return nil, &RuntimeError{Tok: e.Op, Message: "Operands must be two numbers or two strings."}
	case token.MINUS:
		lf, rf, err := in.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return lf - rf, nil
	case token.SLASH:
		lf, rf, err := in.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return lf / rf, nil
	case token.STAR:
		lf, rf, err := in.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return lf * rf, nil
	case token.GREATER:
		lf, rf, err := in.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return lf > rf, nil
	case token.GREATER_EQUAL:
		lf, rf, err := in.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return lf >= rf, nil
	case token.LESS:
		lf, rf, err := in.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return lf < rf, nil
	case token.LESS_EQUAL:
		lf, rf, err := in.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return lf <= rf, nil
	case token.BANG_EQUAL:
		return !isEqual(left, right), nil
	case token.EQUAL_EQUAL:
		return isEqual(left, right), nil
	}
	panic("unreachable binary operator " + e.Op.Kind.String())
}

// numberOperands requires both operands to be numbers, reporting the
// specification's deliberately singular "Operands must be a number."
func (in *Interpreter) numberOperands(op token.Token, left, right Value) (float64, float64, error) {
	lf, lok := left.(float64)
	rf, rok := right.(float64)
	if !lok || !rok {
		return 0, 0, &RuntimeError{Tok: op, Message: "Operands must be a number."}
	}
	return lf, rf, nil
}

func (in *Interpreter) VisitLogical(e *ast.Logical) (Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Op.Kind == token.OR {
		if isTruthy(left) {
			return left, nil
		}
	} else if !isTruthy(left) {
		return left, nil
	}
	return in.evaluate(e.Right)
}

func (in *Interpreter) VisitVariable(e *ast.Variable) (Value, error) {
	return in.lookUpVariable(e.Name, e)
}

func (in *Interpreter) VisitAssign(e *ast.Assign) (Value, error) {
	value, err := in.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	if distance, ok := in.locals[e]; ok {
		in.env.AssignAt(distance, e.Name.Lexeme, value)
	} else if err := in.globals.Assign(e.Name, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (in *Interpreter) VisitCall(e *ast.Call) (Value, error) {
	callee, err := in.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, &RuntimeError{Tok: e.Paren, Message: "Can only call functions and classes."}
	}

	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		v, err := in.evaluate(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	if len(args) != fn.Arity() {
		return nil, &RuntimeError{
			Tok:     e.Paren,
			Message: fmt.Sprintf("Expected %d arguments but got %d.", fn.Arity(), len(args)),
		}
	}
	return fn.Call(in, args)
}

func (in *Interpreter) VisitGet(e *ast.Get) (Value, error) {
	obj, err := in.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*LoxInstance)
	if !ok {
		return nil, &RuntimeError{Tok: e.Name, Message: "Only instances have properties."}
	}
	return inst.Get(e.Name)
}

func (in *Interpreter) VisitSet(e *ast.Set) (Value, error) {
	obj, err := in.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*LoxInstance)
	if !ok {
		return nil, &RuntimeError{Tok: e.Name, Message: "Only instances have fields."}
	}
	value, err := in.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	inst.Set(e.Name, value)
	return value, nil
}

func (in *Interpreter) VisitThis(e *ast.This) (Value, error) {
	return in.lookUpVariable(e.Keyword, e)
}

func (in *Interpreter) VisitSuper(e *ast.Super) (Value, error) {
	distance := in.locals[e]
	super := in.env.GetAt(distance, "super").(*LoxClass)
	// the instance is always bound exactly one scope closer to the method
	// than its class's `super`, a fixed offset baked in by VisitClass's
	// environment nesting.
	this := in.env.GetAt(distance-1, "this").(*LoxInstance)

	method, ok := super.FindMethod(e.Method.Lexeme)
	if !ok {
		return nil, &RuntimeError{Tok: e.Method, Message: "Undefined property '" + e.Method.Lexeme + "'."}
	}
	return method.Bind(this), nil
}

var (
	_ ast.StmtVisitor = (*Interpreter)(nil)
	_ ast.ExprVisitor = (*Interpreter)(nil)
)
