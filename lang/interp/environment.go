package interp

import (
	"github.com/dolthub/swiss"

	"github.com/mna/loxi/lang/token"
)

// Environment is a single lexical scope's binding table. Child scopes hold
// a non-owning reference to their parent, walked by Get/Assign; the parent
// chain is rooted at the interpreter's globals, which outlives every call
// frame and closure that may still reference an intermediate scope.
type Environment struct {
	enclosing *Environment
	values    *swiss.Map[string, Value]
}

// NewEnvironment returns a scope with no bindings, enclosed by parent (nil
// for the global scope).
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{enclosing: parent, values: swiss.NewMap[string, Value](8)}
}

// Define binds name to value in this scope, overwriting any existing
// binding of the same name — redeclaration is legal at the top level
// (`var a = 1; var a = 2;`); the resolver rejects it in local scopes.
func (e *Environment) Define(name string, value Value) {
	e.values.Put(name, value)
}

// Get reads the value bound to name, walking enclosing scopes as needed.
func (e *Environment) Get(name token.Token) (Value, error) {
	if v, ok := e.values.Get(name.Lexeme); ok {
		return v, nil
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return nil, &RuntimeError{Tok: name, Message: "Undefined Variable '" + name.Lexeme + "'."}
}

// Assign rebinds name in the nearest enclosing scope where it is already
// defined. Unlike Define, it never creates a new binding.
func (e *Environment) Assign(name token.Token, value Value) error {
	if _, ok := e.values.Get(name.Lexeme); ok {
		e.values.Put(name.Lexeme, value)
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, value)
	}
	return &RuntimeError{Tok: name, Message: "Undefined Variable '" + name.Lexeme + "'."}
}

// ancestor walks exactly distance links up the parent chain.
func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}
	return env
}

// GetAt reads name from the scope exactly distance hops up the chain, with
// no fallback — the resolver guarantees the binding exists there.
func (e *Environment) GetAt(distance int, name string) Value {
	v, _ := e.ancestor(distance).values.Get(name)
	return v
}

// AssignAt writes name in the scope exactly distance hops up the chain. If
// the binding does not yet exist there, it is created — the path used to
// bind `this` and `super` into a method's closure scope at distance 0.
func (e *Environment) AssignAt(distance int, name string, value Value) {
	e.ancestor(distance).values.Put(name, value)
}
