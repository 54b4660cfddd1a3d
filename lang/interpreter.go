package lang

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sergev/golox/parser"
)

// DefaultMaxCallDepth bounds nested function calls before a runtime error.
const DefaultMaxCallDepth = 4096

// Interpreter executes parsed Lox programs. It is not safe for concurrent use.
type Interpreter struct {
	Global *Env

	env      *Env
	depth    int
	maxDepth int

	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithStdout sets the writer that print statements write to.
func WithStdout(w io.Writer) Option {
	return func(in *Interpreter) {
		in.stdout = w
	}
}

// WithStderr sets the writer runtime errors are reported to.
func WithStderr(w io.Writer) Option {
	return func(in *Interpreter) {
		in.stderr = w
	}
}

// WithLogger sets the structured logger used for debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(in *Interpreter) {
		in.logger = logger
	}
}

// WithMaxCallDepth limits recursion; n <= 0 selects DefaultMaxCallDepth.
func WithMaxCallDepth(n int) Option {
	return func(in *Interpreter) {
		in.maxDepth = n
	}
}

// NewInterpreter constructs an interpreter rooted at a new global environment.
func NewInterpreter(opts ...Option) *Interpreter {
	global := NewEnv(nil)
	in := &Interpreter{
		Global: global,
		env:    global,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(in)
	}
	if in.logger == nil {
		in.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if in.maxDepth <= 0 {
		in.maxDepth = DefaultMaxCallDepth
	}
	return in
}

// Logger returns the interpreter's logger.
func (in *Interpreter) Logger() *slog.Logger {
	return in.logger
}

// DefineNative registers a host function in the global scope.
func (in *Interpreter) DefineNative(name string, arity int, fn NativeFunc) {
	if _, ok := in.Global.Lookup(name); ok {
		in.logger.Warn("native replaces existing global", "name", name)
	}
	in.Global.Define(name, CallableValue(&Native{
		Name:  name,
		NArgs: arity,
		Fn:    fn,
	}))
	in.logger.Debug("native registered", "name", name, "arity", arity)
}

// Interpret executes statements in order, reporting the first runtime error
// to the diagnostic writer. It reports whether execution completed without
// error.
func (in *Interpreter) Interpret(stmts []parser.Stmt) bool {
	if err := in.Execute(stmts); err != nil {
		fmt.Fprintln(in.stderr, err)
		return false
	}
	return true
}

// Execute executes statements in order and returns the first runtime error.
// Bindings made at top level persist in Global across calls.
func (in *Interpreter) Execute(stmts []parser.Stmt) error {
	in.env = in.Global
	in.depth = 0
	for _, stmt := range stmts {
		c, err := in.execute(stmt)
		if err != nil {
			in.logger.Debug("runtime error", "line", stmt.Pos().Line, "err", err)
			return err
		}
		if c.flow != flowNormal {
			in.logger.Debug("control signal reached top level", "line", stmt.Pos().Line)
		}
	}
	return nil
}

// Call applies a callable value to arguments from host code.
func (in *Interpreter) Call(callee Value, args []Value) (Value, error) {
	fn := callee.Callable()
	if fn == nil {
		return Value{}, newRuntimeError(parser.Token{}, "Can only call functions.")
	}
	if len(args) != fn.Arity() {
		return Value{}, newRuntimeError(parser.Token{}, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}
	return fn.Call(in, args)
}

type flow int

const (
	flowNormal flow = iota
	flowBreak
	flowReturn
)

// completion is the non-error outcome of executing a statement. Break and
// return travel upward in it until the loop or call boundary that owns them.
type completion struct {
	flow  flow
	value Value
}

func (in *Interpreter) execute(stmt parser.Stmt) (completion, error) {
	switch s := stmt.(type) {
	case *parser.ExprStmt:
		_, err := in.evaluate(s.Expr)
		return completion{}, err
	case *parser.PrintStmt:
		val, err := in.evaluate(s.Expr)
		if err != nil {
			return completion{}, err
		}
		fmt.Fprintln(in.stdout, val.String())
		return completion{}, nil
	case *parser.VarStmt:
		val := Nil
		if s.Init != nil {
			v, err := in.evaluate(s.Init)
			if err != nil {
				return completion{}, err
			}
			val = v
		}
		in.env.Define(s.Name.Lexeme, val)
		return completion{}, nil
	case *parser.BlockStmt:
		return in.executeBlock(s.Stmts, NewEnv(in.env))
	case *parser.IfStmt:
		cond, err := in.evaluate(s.Cond)
		if err != nil {
			return completion{}, err
		}
		if IsTruthy(cond) {
			return in.execute(s.Then)
		}
		if s.Else != nil {
			return in.execute(s.Else)
		}
		return completion{}, nil
	case *parser.WhileStmt:
		return in.executeWhile(s)
	case *parser.FunctionStmt:
		in.env.Define(s.Name.Lexeme, CallableValue(NewFunction(s, in.env)))
		return completion{}, nil
	case *parser.ReturnStmt:
		val := Nil
		if s.Value != nil {
			v, err := in.evaluate(s.Value)
			if err != nil {
				return completion{}, err
			}
			val = v
		}
		return completion{flow: flowReturn, value: val}, nil
	case *parser.BreakStmt:
		return completion{flow: flowBreak}, nil
	default:
		return completion{}, fmt.Errorf("unknown statement type %T", stmt)
	}
}

func (in *Interpreter) executeWhile(s *parser.WhileStmt) (completion, error) {
	for {
		cond, err := in.evaluate(s.Cond)
		if err != nil {
			return completion{}, err
		}
		if !IsTruthy(cond) {
			return completion{}, nil
		}
		c, err := in.execute(s.Body)
		if err != nil {
			return completion{}, err
		}
		switch c.flow {
		case flowBreak:
			return completion{}, nil
		case flowReturn:
			return c, nil
		}
	}
}

// executeBlock runs stmts with env as the current scope and restores the
// previous scope on every exit path.
func (in *Interpreter) executeBlock(stmts []parser.Stmt, env *Env) (completion, error) {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, stmt := range stmts {
		c, err := in.execute(stmt)
		if err != nil || c.flow != flowNormal {
			return c, err
		}
	}
	return completion{}, nil
}

func (in *Interpreter) evaluate(expr parser.Expr) (Value, error) {
	switch e := expr.(type) {
	case *parser.LiteralExpr:
		return FromLiteral(e.Value), nil
	case *parser.GroupingExpr:
		return in.evaluate(e.Expr)
	case *parser.UnaryExpr:
		return in.evalUnary(e)
	case *parser.LogicalExpr:
		return in.evalLogical(e)
	case *parser.BinaryExpr:
		left, err := in.evaluate(e.Left)
		if err != nil {
			return Value{}, err
		}
		right, err := in.evaluate(e.Right)
		if err != nil {
			return Value{}, err
		}
		return binary(e.Op, left, right)
	case *parser.VariableExpr:
		val, err := in.env.Get(e.Name.Lexeme)
		if err != nil {
			return Value{}, in.wrapEnvError(e.Name, err)
		}
		return val, nil
	case *parser.AssignExpr:
		val, err := in.evaluate(e.Value)
		if err != nil {
			return Value{}, err
		}
		if err := in.env.Assign(e.Name.Lexeme, val); err != nil {
			return Value{}, in.wrapEnvError(e.Name, err)
		}
		return val, nil
	case *parser.CallExpr:
		return in.evalCall(e)
	default:
		return Value{}, fmt.Errorf("unknown expression type %T", expr)
	}
}

func (in *Interpreter) wrapEnvError(name parser.Token, err error) error {
	var undef *UndefinedVariableError
	if errors.As(err, &undef) {
		return newRuntimeError(name, "%s", undef.Error())
	}
	return err
}

func (in *Interpreter) evalUnary(e *parser.UnaryExpr) (Value, error) {
	right, err := in.evaluate(e.Right)
	if err != nil {
		return Value{}, err
	}
	switch e.Op.Type {
	case parser.Minus:
		if right.Type != TypeNumber {
			return Value{}, newRuntimeError(e.Op, "Operand must be a number.")
		}
		return NumberValue(-right.Number()), nil
	case parser.Bang:
		return BoolValue(!IsTruthy(right)), nil
	default:
		return Value{}, newRuntimeError(e.Op, "Unknown unary operator.")
	}
}

func (in *Interpreter) evalLogical(e *parser.LogicalExpr) (Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return Value{}, err
	}
	if e.Op.Type == parser.Or {
		if IsTruthy(left) {
			return left, nil
		}
	} else if !IsTruthy(left) {
		return left, nil
	}
	return in.evaluate(e.Right)
}

func (in *Interpreter) evalCall(e *parser.CallExpr) (Value, error) {
	callee, err := in.evaluate(e.Callee)
	if err != nil {
		return Value{}, err
	}
	fn := callee.Callable()
	if fn == nil {
		return Value{}, newRuntimeError(e.Paren, "Can only call functions.")
	}
	args := make([]Value, 0, len(e.Args))
	for _, argExpr := range e.Args {
		arg, err := in.evaluate(argExpr)
		if err != nil {
			return Value{}, err
		}
		args = append(args, arg)
	}
	if len(args) != fn.Arity() {
		return Value{}, newRuntimeError(e.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}

	if in.depth >= in.maxDepth {
		return Value{}, newRuntimeError(e.Paren, "Stack overflow.")
	}
	in.depth++
	defer func() { in.depth-- }()

	val, err := fn.Call(in, args)
	if err != nil {
		return Value{}, tagCallError(e.Paren, err)
	}
	return val, nil
}

// tagCallError passes interpreter errors through and wraps anything else a
// native returned as a SystemError located at the call.
func tagCallError(paren parser.Token, err error) error {
	var rerr *RuntimeError
	if errors.As(err, &rerr) {
		if rerr.Token.Pos.Line == 0 {
			rerr.Token = paren
		}
		return err
	}
	var serr *SystemError
	if errors.As(err, &serr) {
		return err
	}
	return &SystemError{Token: paren, Err: err}
}
