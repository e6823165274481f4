// Package resolver performs a static pass over the parsed tree between
// parsing and interpretation. For every variable reference it computes how
// many enclosing scopes separate the reference from the scope that declares
// it, and records that "hop distance" in a side table keyed by the AST node
// itself (pointer identity, never by name or position). The interpreter
// consults this table instead of doing a dynamic walk up the environment
// chain, which keeps closures correct in the presence of shadowing.
//
// The resolver also doubles as a semantic checker: it rejects `return`
// outside a function, `this`/`super` outside a method, self-inheriting
// classes, and reads of a local variable from within its own initializer.
package resolver

import (
	"fmt"

	"github.com/mna/loxi/lang/ast"
	"github.com/mna/loxi/lang/token"
)

// Error is a single resolver-time error, formatted to match the wire
// contract in the specification: "[line N] Error at 'lexeme': message".
type Error struct {
	Line    int
	Lexeme  string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Line, e.Lexeme, e.Message)
}

type functionKind int

const (
	noFunction functionKind = iota
	inFunction
	inInitializer
	inMethod
)

type classKind int

const (
	noClass classKind = iota
	inClass
	inSubclass
)

// Locals is the side table produced by Resolve: for every Expr that reads or
// assigns a named binding, it records the number of enclosing scopes between
// that expression and the scope declaring the name. An Expr absent from the
// table is either a global or an unresolved (erroneous) reference.
type Locals map[ast.Expr]int

// Resolve statically analyzes stmts and returns the computed hop-distance
// table. Unlike the scanner and parser, the resolver does not accumulate
// errors across the whole program: it reports only the first semantic
// error it encounters, matching the rest of the pipeline's "abort
// immediately on anything past parsing" contract.
func Resolve(stmts []ast.Stmt) (Locals, error) {
	r := &resolver{locals: make(Locals)}
	r.resolveStmts(stmts)
	return r.locals, r.err
}

// resolver walks the tree once, tracking a stack of lexical scopes. Each
// scope maps a name to whether its declaration has finished (false while the
// initializer of that same name is still being resolved, which is how
// `var a = a;` is caught).
type resolver struct {
	scopes []map[string]bool
	locals Locals
	err    error

	currentFunction functionKind
	currentClass    classKind
}

func (r *resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *resolver) resolveStmt(s ast.Stmt) {
	_ = s.Accept(r)
}

func (r *resolver) resolveExpr(e ast.Expr) {
	_, _ = e.Accept(r)
}

func (r *resolver) beginScope() {
	r.scopes = append(r.scopes, map[string]bool{})
}

func (r *resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.error(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// resolveLocal records, for expr, the number of scopes between the
// innermost one and the scope declaring name, if found. An unresolved name
// is left absent from the table and treated as global at interpretation.
func (r *resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *resolver) resolveFunction(fn *ast.Function, kind functionKind) {
	enclosing := r.currentFunction
	r.currentFunction = kind
	defer func() { r.currentFunction = enclosing }()

	r.beginScope()
	defer r.endScope()

	for _, p := range fn.Params {
		r.declare(p)
		r.define(p)
	}
	r.resolveStmts(fn.Body)
}

func (r *resolver) error(tok token.Token, message string) {
	if r.err != nil {
		return
	}
	lexeme := tok.Lexeme
	if tok.Kind == token.EOF {
		lexeme = "end"
	}
	r.err = &Error{Line: tok.Line, Lexeme: lexeme, Message: message}
}

// --- StmtVisitor ---

func (r *resolver) VisitBlock(s *ast.Block) error {
	r.beginScope()
	r.resolveStmts(s.Statements)
	r.endScope()
	return nil
}

func (r *resolver) VisitVar(s *ast.Var) error {
	r.declare(s.Name)
	if s.Initializer != nil {
		r.resolveExpr(s.Initializer)
	}
	r.define(s.Name)
	return nil
}

func (r *resolver) VisitFunction(s *ast.Function) error {
	r.declare(s.Name)
	r.define(s.Name)
	r.resolveFunction(s, inFunction)
	return nil
}

func (r *resolver) VisitExpression(s *ast.Expression) error {
	r.resolveExpr(s.Expr)
	return nil
}

func (r *resolver) VisitIf(s *ast.If) error {
	r.resolveExpr(s.Cond)
	r.resolveStmt(s.Then)
	if s.Else != nil {
		r.resolveStmt(s.Else)
	}
	return nil
}

func (r *resolver) VisitPrint(s *ast.Print) error {
	r.resolveExpr(s.Expr)
	return nil
}

func (r *resolver) VisitReturn(s *ast.Return) error {
	if r.currentFunction == noFunction {
		r.error(s.Keyword, "Can't return from top-level code.")
	}
	if s.Value != nil {
		if r.currentFunction == inInitializer {
			r.error(s.Keyword, "Can't return a value from an initializer.")
		}
		r.resolveExpr(s.Value)
	}
	return nil
}

func (r *resolver) VisitWhile(s *ast.While) error {
	r.resolveExpr(s.Cond)
	r.resolveStmt(s.Body)
	return nil
}

func (r *resolver) VisitClass(s *ast.Class) error {
	enclosingClass := r.currentClass
	r.currentClass = inClass
	defer func() { r.currentClass = enclosingClass }()

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.error(s.Superclass.Name, "A class can't inherit from itself.")
		} else {
			r.resolveExpr(s.Superclass)
		}
		r.currentClass = inSubclass

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
		defer r.endScope()
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true
	defer r.endScope()

	for _, m := range s.Methods {
		kind := inMethod
		if m.Name.Lexeme == "init" {
			kind = inInitializer
		}
		r.resolveFunction(m, kind)
	}
	return nil
}

// --- ExprVisitor ---

func (r *resolver) VisitVariable(e *ast.Variable) (any, error) {
	if len(r.scopes) > 0 {
		if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
			r.error(e.Name, "Can't read local variable in its own initializer.")
		}
	}
	r.resolveLocal(e, e.Name)
	return nil, nil
}

func (r *resolver) VisitAssign(e *ast.Assign) (any, error) {
	r.resolveExpr(e.Value)
	r.resolveLocal(e, e.Name)
	return nil, nil
}

func (r *resolver) VisitBinary(e *ast.Binary) (any, error) {
	r.resolveExpr(e.Left)
	r.resolveExpr(e.Right)
	return nil, nil
}

func (r *resolver) VisitLogical(e *ast.Logical) (any, error) {
	r.resolveExpr(e.Left)
	r.resolveExpr(e.Right)
	return nil, nil
}

func (r *resolver) VisitCall(e *ast.Call) (any, error) {
	r.resolveExpr(e.Callee)
	for _, a := range e.Args {
		r.resolveExpr(a)
	}
	return nil, nil
}

func (r *resolver) VisitGet(e *ast.Get) (any, error) {
	r.resolveExpr(e.Object)
	return nil, nil
}

func (r *resolver) VisitSet(e *ast.Set) (any, error) {
	r.resolveExpr(e.Value)
	r.resolveExpr(e.Object)
	return nil, nil
}

func (r *resolver) VisitSuper(e *ast.Super) (any, error) {
	switch r.currentClass {
	case noClass:
		r.error(e.Keyword, "Can't use 'super' outside of a class.")
	case inClass:
		r.error(e.Keyword, "Can't use 'super' in a class with no superclass.")
	}
	r.resolveLocal(e, e.Keyword)
	return nil, nil
}

func (r *resolver) VisitThis(e *ast.This) (any, error) {
	if r.currentClass == noClass {
		r.error(e.Keyword, "Can't use 'this' outside of a class.")
		return nil, nil
	}
	r.resolveLocal(e, e.Keyword)
	return nil, nil
}

func (r *resolver) VisitGrouping(e *ast.Grouping) (any, error) {
	r.resolveExpr(e.Inner)
	return nil, nil
}

func (r *resolver) VisitLiteral(e *ast.Literal) (any, error) {
	return nil, nil
}

func (r *resolver) VisitUnary(e *ast.Unary) (any, error) {
	r.resolveExpr(e.Right)
	return nil, nil
}

var (
	_ ast.StmtVisitor = (*resolver)(nil)
	_ ast.ExprVisitor = (*resolver)(nil)
)
