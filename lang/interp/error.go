package interp

import (
	"fmt"

	"github.com/mna/loxi/lang/token"
)

// RuntimeError is raised by the interpreter when an operation is
// well-formed but cannot be carried out at runtime: a type mismatch, an
// undefined name, an arity mismatch, and so on. It aborts evaluation of the
// current statement and unwinds straight to Interpret, unlike returnSignal
// which unwinds only to the nearest function call.
type RuntimeError struct {
	Tok     token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[line %d] %s", e.Tok.Line, e.Message)
}

// returnSignal carries a `return` statement's value up the call stack. It
// satisfies the error interface purely so it can travel through the same
// (error) return channel as genuine errors, but the interpreter never
// treats one as a real error: it is caught and unwrapped at exactly one
// place, LoxFunction.Call.
type returnSignal struct {
	Value Value
}

func (r *returnSignal) Error() string {
	return "return outside of a function call (internal error)"
}
