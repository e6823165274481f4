package ast

import "github.com/mna/loxi/lang/token"

type (
	// Literal is a number, string, boolean or nil constant.
	Literal struct {
		Token token.Token
		Value any // float64 | string | bool | nil
	}

	// Grouping is a parenthesized expression, e.g. (1 + 2).
	Grouping struct {
		Paren token.Token
		Inner Expr
	}

	// Unary is a prefix operator expression, e.g. -x or !done.
	Unary struct {
		Op    token.Token
		Right Expr
	}

	// Binary is an infix arithmetic or comparison expression, e.g. x + y.
	Binary struct {
		Left  Expr
		Op    token.Token
		Right Expr
	}

	// Logical is "and"/"or", kept distinct from Binary because both
	// short-circuit and never raise a runtime error.
	Logical struct {
		Left  Expr
		Op    token.Token
		Right Expr
	}

	// Variable is a read of a named binding, e.g. x.
	Variable struct {
		Name token.Token
	}

	// Assign is x = value.
	Assign struct {
		Name  token.Token
		Value Expr
	}

	// Call is callee(args...).
	Call struct {
		Callee Expr
		Paren  token.Token // closing ')', used to anchor call errors to a line
		Args   []Expr
	}

	// Get is object.name, a property or (unbound) method read.
	Get struct {
		Object Expr
		Name   token.Token
	}

	// Set is object.name = value.
	Set struct {
		Object Expr
		Name   token.Token
		Value  Expr
	}

	// This is the `this` keyword inside a method body.
	This struct {
		Keyword token.Token
	}

	// Super is `super.method` inside a subclass method body.
	Super struct {
		Keyword token.Token
		Method  token.Token
	}
)

func (e *Literal) exprNode()  {}
func (e *Grouping) exprNode() {}
func (e *Unary) exprNode()    {}
func (e *Binary) exprNode()   {}
func (e *Logical) exprNode()  {}
func (e *Variable) exprNode() {}
func (e *Assign) exprNode()   {}
func (e *Call) exprNode()     {}
func (e *Get) exprNode()      {}
func (e *Set) exprNode()      {}
func (e *This) exprNode()     {}
func (e *Super) exprNode()    {}

func (e *Literal) Pos() token.Token  { return e.Token }
func (e *Grouping) Pos() token.Token { return e.Paren }
func (e *Unary) Pos() token.Token    { return e.Op }
func (e *Binary) Pos() token.Token   { return e.Op }
func (e *Logical) Pos() token.Token  { return e.Op }
func (e *Variable) Pos() token.Token { return e.Name }
func (e *Assign) Pos() token.Token   { return e.Name }
func (e *Call) Pos() token.Token     { return e.Paren }
func (e *Get) Pos() token.Token      { return e.Name }
func (e *Set) Pos() token.Token      { return e.Name }
func (e *This) Pos() token.Token     { return e.Keyword }
func (e *Super) Pos() token.Token    { return e.Keyword }

func (e *Literal) Accept(v ExprVisitor) (any, error)  { return v.VisitLiteral(e) }
func (e *Grouping) Accept(v ExprVisitor) (any, error) { return v.VisitGrouping(e) }
func (e *Unary) Accept(v ExprVisitor) (any, error)    { return v.VisitUnary(e) }
func (e *Binary) Accept(v ExprVisitor) (any, error)   { return v.VisitBinary(e) }
func (e *Logical) Accept(v ExprVisitor) (any, error)  { return v.VisitLogical(e) }
func (e *Variable) Accept(v ExprVisitor) (any, error) { return v.VisitVariable(e) }
func (e *Assign) Accept(v ExprVisitor) (any, error)   { return v.VisitAssign(e) }
func (e *Call) Accept(v ExprVisitor) (any, error)     { return v.VisitCall(e) }
func (e *Get) Accept(v ExprVisitor) (any, error)      { return v.VisitGet(e) }
func (e *Set) Accept(v ExprVisitor) (any, error)      { return v.VisitSet(e) }
func (e *This) Accept(v ExprVisitor) (any, error)     { return v.VisitThis(e) }
func (e *Super) Accept(v ExprVisitor) (any, error)    { return v.VisitSuper(e) }

var (
	_ Expr = (*Literal)(nil)
	_ Expr = (*Grouping)(nil)
	_ Expr = (*Unary)(nil)
	_ Expr = (*Binary)(nil)
	_ Expr = (*Logical)(nil)
	_ Expr = (*Variable)(nil)
	_ Expr = (*Assign)(nil)
	_ Expr = (*Call)(nil)
	_ Expr = (*Get)(nil)
	_ Expr = (*Set)(nil)
	_ Expr = (*This)(nil)
	_ Expr = (*Super)(nil)
)
