package lang

import "fmt"

// Env implements a lexical environment chain. Environments are shared by
// pointer and never copied, so every closure holding one sees the same
// bindings.
type Env struct {
	parent *Env
	values map[string]Value
}

// UndefinedVariableError is returned when no scope in the chain binds a name.
type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("Undefined variable '%s'.", e.Name)
}

// NewEnv creates an environment with optional parent.
func NewEnv(parent *Env) *Env {
	return &Env{
		parent: parent,
		values: make(map[string]Value),
	}
}

// Define binds name to value in this frame only, replacing any previous
// binding of the same name here.
func (e *Env) Define(name string, val Value) {
	e.values[name] = val
}

// Assign updates the nearest existing binding. It never creates one.
func (e *Env) Assign(name string, val Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			env.values[name] = val
			return nil
		}
	}
	return &UndefinedVariableError{Name: name}
}

// Get retrieves a binding, searching parents if necessary.
func (e *Env) Get(name string) (Value, error) {
	for env := e; env != nil; env = env.parent {
		if val, ok := env.values[name]; ok {
			return val, nil
		}
	}
	return Value{}, &UndefinedVariableError{Name: name}
}

// Lookup reports whether name is bound in this frame, without searching parents.
func (e *Env) Lookup(name string) (Value, bool) {
	val, ok := e.values[name]
	return val, ok
}

// Parent returns the enclosing environment.
func (e *Env) Parent() *Env {
	return e.parent
}
