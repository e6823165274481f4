package interp

// LoxClass is a class value: its name, its methods, and an optional
// superclass to fall back to when a method lookup misses. Calling a class
// constructs a new instance and, if an `init` method exists, runs it.
type LoxClass struct {
	Name       string
	Superclass *LoxClass
	Methods    map[string]*LoxFunction
}

func newClass(name string, superclass *LoxClass, methods map[string]*LoxFunction) *LoxClass {
	return &LoxClass{Name: name, Superclass: superclass, Methods: methods}
}

// FindMethod looks up name in this class, falling back to the superclass
// chain. It does not bind `this`; callers needing a bound method (anything
// but a plain internal lookup) should call Bind on the result.
func (c *LoxClass) FindMethod(name string) (*LoxFunction, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

func (c *LoxClass) String() string { return c.Name }

func (c *LoxClass) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

func (c *LoxClass) Call(in *Interpreter, args []Value) (Value, error) {
	instance := newInstance(c)
	if init, ok := c.FindMethod("init"); ok {
		if _, err := init.Bind(instance).Call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

var _ Callable = (*LoxClass)(nil)
