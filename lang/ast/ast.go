// Package ast defines the abstract syntax tree produced by the parser and
// consumed by the resolver and interpreter.
//
// Node identity matters here: the resolver's side table (see lang/resolver)
// is keyed by the address of the Expr that references a name, not by its
// contents — two syntactically identical variable reads at different source
// positions are different keys. Every Expr and Stmt is therefore always
// handled through its pointer type, never copied by value.
package ast

import "github.com/mna/loxi/lang/token"

// Node is implemented by every AST node. Pos reports the token most
// representative of the node's source location.
type Node interface {
	Pos() token.Token
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
	Accept(v ExprVisitor) (any, error)
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
	Accept(v StmtVisitor) error
}

// ExprVisitor dispatches over the concrete type of an Expr. Implemented by
// the Resolver and the Interpreter, each of which folds the tree down to its
// own result type packed into the `any` return value.
type ExprVisitor interface {
	VisitLiteral(e *Literal) (any, error)
	VisitGrouping(e *Grouping) (any, error)
	VisitUnary(e *Unary) (any, error)
	VisitBinary(e *Binary) (any, error)
	VisitLogical(e *Logical) (any, error)
	VisitVariable(e *Variable) (any, error)
	VisitAssign(e *Assign) (any, error)
	VisitCall(e *Call) (any, error)
	VisitGet(e *Get) (any, error)
	VisitSet(e *Set) (any, error)
	VisitThis(e *This) (any, error)
	VisitSuper(e *Super) (any, error)
}

// StmtVisitor dispatches over the concrete type of a Stmt.
type StmtVisitor interface {
	VisitExpression(s *Expression) error
	VisitPrint(s *Print) error
	VisitVar(s *Var) error
	VisitBlock(s *Block) error
	VisitIf(s *If) error
	VisitWhile(s *While) error
	VisitFunction(s *Function) error
	VisitReturn(s *Return) error
	VisitClass(s *Class) error
}
