package interp

import (
	"github.com/dolthub/swiss"

	"github.com/mna/loxi/lang/token"
)

// LoxInstance is an object: a class pointer plus a mutable field table. The
// same instance may be reachable through several references (a local
// variable and a captured `this`, say); mutation is visible through all of
// them because the field table lives behind a pointer.
type LoxInstance struct {
	class  *LoxClass
	fields *swiss.Map[string, Value]
}

func newInstance(class *LoxClass) *LoxInstance {
	return &LoxInstance{class: class, fields: swiss.NewMap[string, Value](4)}
}

// Get reads a field first, then falls back to a bound method of the
// instance's class, and reports an error if neither exists.
func (i *LoxInstance) Get(name token.Token) (Value, error) {
	if v, ok := i.fields.Get(name.Lexeme); ok {
		return v, nil
	}
	if m, ok := i.class.FindMethod(name.Lexeme); ok {
		return m.Bind(i), nil
	}
	return nil, &RuntimeError{Tok: name, Message: "Undefined property '" + name.Lexeme + "'."}
}

// Set always defines or overwrites the field, regardless of whether a
// method of the same name exists — Lox has no notion of shadowing a method
// with a field beyond "fields win".
func (i *LoxInstance) Set(name token.Token, value Value) {
	i.fields.Put(name.Lexeme, value)
}

func (i *LoxInstance) String() string { return i.class.Name + " instance" }
