package interp

import (
	"github.com/mna/loxi/lang/ast"
)

// LoxFunction is a function or method value: the declaration it was built
// from, plus the environment that was live at the point of declaration
// (its closure). Calling it runs its body in a fresh child of that
// closure, never of the caller's environment — this is what makes closures
// lexically scoped rather than dynamically scoped.
type LoxFunction struct {
	decl          *ast.Function
	closure       *Environment
	isInitializer bool
}

func newFunction(decl *ast.Function, closure *Environment, isInitializer bool) *LoxFunction {
	return &LoxFunction{decl: decl, closure: closure, isInitializer: isInitializer}
}

// Bind returns a copy of f whose closure has `this` bound to instance, used
// when a method is looked up via Get so that later calls (even detached
// ones, stored in a variable and called later) still see the right
// receiver.
func (f *LoxFunction) Bind(instance *LoxInstance) *LoxFunction {
	env := NewEnvironment(f.closure)
	env.AssignAt(0, "this", instance)
	return newFunction(f.decl, env, f.isInitializer)
}

func (f *LoxFunction) Arity() int { return len(f.decl.Params) }

func (f *LoxFunction) String() string { return "<fn " + f.decl.Name.Lexeme + ">" }

func (f *LoxFunction) Call(in *Interpreter, args []Value) (Value, error) {
	env := NewEnvironment(f.closure)
	for i, param := range f.decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	err := in.executeBlock(f.decl.Body, env)
	if ret, ok := err.(*returnSignal); ok {
		if f.isInitializer {
			return f.closure.GetAt(0, "this"), nil
		}
		return ret.Value, nil
	}
	if err != nil {
		return nil, err
	}
	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	return nil, nil
}

var _ Callable = (*LoxFunction)(nil)
