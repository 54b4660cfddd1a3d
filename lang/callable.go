package lang

import (
	"fmt"

	"github.com/sergev/golox/parser"
)

// Callable is implemented by every value that can be applied to arguments.
// Equality between callables is identity: both implementations are used by
// pointer.
type Callable interface {
	Arity() int
	Call(in *Interpreter, args []Value) (Value, error)
	String() string
}

// NativeFunc is the Go signature of a host-provided function.
type NativeFunc func(in *Interpreter, args []Value) (Value, error)

// Native wraps a host function with a fixed arity.
type Native struct {
	Name  string
	NArgs int
	Fn    NativeFunc
}

func (n *Native) Arity() int { return n.NArgs }

func (n *Native) Call(in *Interpreter, args []Value) (Value, error) {
	return n.Fn(in, args)
}

func (n *Native) String() string { return "<native fn>" }

// Function is a user-defined function together with the environment that was
// current when its declaration executed.
type Function struct {
	Decl    *parser.FunctionStmt
	Closure *Env
}

// NewFunction captures env as the defining scope of decl.
func NewFunction(decl *parser.FunctionStmt, env *Env) *Function {
	return &Function{Decl: decl, Closure: env}
}

func (f *Function) Arity() int { return len(f.Decl.Params) }

// Call binds the arguments in a fresh scope enclosing the defining scope, runs
// the body there and turns a return signal into the call's result.
func (f *Function) Call(in *Interpreter, args []Value) (Value, error) {
	env := NewEnv(f.Closure)
	for i, param := range f.Decl.Params {
		env.Define(param.Lexeme, args[i])
	}
	c, err := in.executeBlock(f.Decl.Body, env)
	if err != nil {
		return Value{}, err
	}
	if c.flow == flowReturn {
		return c.value, nil
	}
	return Nil, nil
}

func (f *Function) String() string {
	return fmt.Sprintf("<fn %s>", f.Decl.Name.Lexeme)
}
