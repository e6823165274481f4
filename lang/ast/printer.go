package ast

import (
	"fmt"
	"strings"
)

// Printer renders expressions as fully-parenthesized prefix notation, e.g.
// "1 + 2 * 3" becomes "(+ 1 (* 2 3))". It exists to make operator precedence
// and grouping mechanically checkable in tests, the role played by the
// reference module's ast.Printer for its own (much richer) AST.
//
// Printer implements ExprVisitor; every Visit* method returns a string
// wrapped in `any` to satisfy the shared interface used by the resolver and
// interpreter.
type Printer struct{}

// Print renders e as a parenthesized prefix string.
func Print(e Expr) string {
	var p Printer
	s, err := e.Accept(p)
	if err != nil {
		// Printer never returns an error from any Visit* method.
		panic(err)
	}
	return s.(string)
}

func (p Printer) parenthesize(name string, exprs ...Expr) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteByte(' ')
		s, _ := e.Accept(p)
		b.WriteString(s.(string))
	}
	b.WriteByte(')')
	return b.String()
}

func (p Printer) VisitLiteral(e *Literal) (any, error) {
	if e.Value == nil {
		return "nil", nil
	}
	switch v := e.Value.(type) {
	case string:
		return v, nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

func (p Printer) VisitGrouping(e *Grouping) (any, error) {
	return p.parenthesize("group", e.Inner), nil
}

func (p Printer) VisitUnary(e *Unary) (any, error) {
	return p.parenthesize(e.Op.Lexeme, e.Right), nil
}

func (p Printer) VisitBinary(e *Binary) (any, error) {
	return p.parenthesize(e.Op.Lexeme, e.Left, e.Right), nil
}

func (p Printer) VisitLogical(e *Logical) (any, error) {
	return p.parenthesize(e.Op.Lexeme, e.Left, e.Right), nil
}

func (p Printer) VisitVariable(e *Variable) (any, error) {
	return e.Name.Lexeme, nil
}

func (p Printer) VisitAssign(e *Assign) (any, error) {
	return p.parenthesize("= "+e.Name.Lexeme, e.Value), nil
}

func (p Printer) VisitCall(e *Call) (any, error) {
	return p.parenthesize("call", append([]Expr{e.Callee}, e.Args...)...), nil
}

func (p Printer) VisitGet(e *Get) (any, error) {
	return p.parenthesize("get "+e.Name.Lexeme, e.Object), nil
}

func (p Printer) VisitSet(e *Set) (any, error) {
	return p.parenthesize("set "+e.Name.Lexeme, e.Object, e.Value), nil
}

func (p Printer) VisitThis(e *This) (any, error) {
	return "this", nil
}

func (p Printer) VisitSuper(e *Super) (any, error) {
	return "(super " + e.Method.Lexeme + ")", nil
}

var _ ExprVisitor = Printer{}
