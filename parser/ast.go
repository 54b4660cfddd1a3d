package parser

// Node represents any AST node with a source position.
type Node interface {
	Pos() Position
}

// Expr represents an expression. The set of implementations is closed: only
// types in this file satisfy it.
type Expr interface {
	Node
	exprNode()
}

// Stmt represents a statement. Like Expr, the set is closed.
type Stmt interface {
	Node
	stmtNode()
}

// LiteralExpr holds a constant: float64, string, bool, or nil.
type LiteralExpr struct {
	Value interface{}
	Posn  Position
}

func (e *LiteralExpr) Pos() Position { return e.Posn }
func (*LiteralExpr) exprNode()       {}

// GroupingExpr is a parenthesized expression.
type GroupingExpr struct {
	Expr Expr
	Posn Position
}

func (e *GroupingExpr) Pos() Position { return e.Posn }
func (*GroupingExpr) exprNode()       {}

// UnaryExpr represents prefix operator application.
type UnaryExpr struct {
	Op    Token
	Right Expr
}

func (e *UnaryExpr) Pos() Position { return e.Op.Pos }
func (*UnaryExpr) exprNode()       {}

// BinaryExpr represents infix arithmetic, comparison and equality.
type BinaryExpr struct {
	Left  Expr
	Op    Token
	Right Expr
}

func (e *BinaryExpr) Pos() Position { return e.Op.Pos }
func (*BinaryExpr) exprNode()       {}

// LogicalExpr is `and` or `or`; the right side is evaluated only when needed.
type LogicalExpr struct {
	Left  Expr
	Op    Token
	Right Expr
}

func (e *LogicalExpr) Pos() Position { return e.Op.Pos }
func (*LogicalExpr) exprNode()       {}

// VariableExpr refers to a variable or function name.
type VariableExpr struct {
	Name Token
}

func (e *VariableExpr) Pos() Position { return e.Name.Pos }
func (*VariableExpr) exprNode()       {}

// AssignExpr mutates an existing binding.
type AssignExpr struct {
	Name  Token
	Value Expr
}

func (e *AssignExpr) Pos() Position { return e.Name.Pos }
func (*AssignExpr) exprNode()       {}

// CallExpr invokes an expression with arguments. Paren is the closing
// parenthesis, used to locate runtime errors of the call.
type CallExpr struct {
	Callee Expr
	Paren  Token
	Args   []Expr
}

func (e *CallExpr) Pos() Position { return e.Paren.Pos }
func (*CallExpr) exprNode()       {}

// ExprStmt evaluates an expression for side-effects.
type ExprStmt struct {
	Expr Expr
}

func (s *ExprStmt) Pos() Position { return s.Expr.Pos() }
func (*ExprStmt) stmtNode()       {}

// PrintStmt writes the rendering of a value followed by a newline.
type PrintStmt struct {
	Expr    Expr
	Keyword Token
}

func (s *PrintStmt) Pos() Position { return s.Keyword.Pos }
func (*PrintStmt) stmtNode()       {}

// VarStmt declares a binding in the current scope, optionally initialised.
type VarStmt struct {
	Name Token
	Init Expr // may be nil
}

func (s *VarStmt) Pos() Position { return s.Name.Pos }
func (*VarStmt) stmtNode()       {}

// BlockStmt is a braced block with its own scope.
type BlockStmt struct {
	Stmts []Stmt
	Posn  Position
}

func (s *BlockStmt) Pos() Position { return s.Posn }
func (*BlockStmt) stmtNode()       {}

// IfStmt conditionally executes one branch.
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt // may be nil
	Posn Position
}

func (s *IfStmt) Pos() Position { return s.Posn }
func (*IfStmt) stmtNode()       {}

// WhileStmt repeats while the condition is truthy.
type WhileStmt struct {
	Cond Expr
	Body Stmt
	Posn Position
}

func (s *WhileStmt) Pos() Position { return s.Posn }
func (*WhileStmt) stmtNode()       {}

// FunctionStmt declares a named function.
type FunctionStmt struct {
	Name   Token
	Params []Token
	Body   []Stmt
}

func (s *FunctionStmt) Pos() Position { return s.Name.Pos }
func (*FunctionStmt) stmtNode()       {}

// ReturnStmt exits the current function, optionally with a value.
type ReturnStmt struct {
	Keyword Token
	Value   Expr // may be nil
}

func (s *ReturnStmt) Pos() Position { return s.Keyword.Pos }
func (*ReturnStmt) stmtNode()       {}

// BreakStmt exits the innermost loop.
type BreakStmt struct {
	Keyword Token
}

func (s *BreakStmt) Pos() Position { return s.Keyword.Pos }
func (*BreakStmt) stmtNode()       {}
