package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// Sprint renders a node in parenthesized prefix form, e.g. (+ 1 (* 2 3)).
// It is a debugging aid only.
func Sprint(node Node) string {
	var sb strings.Builder
	writeNode(&sb, node)
	return sb.String()
}

// PrintProgram renders each statement on its own line.
func PrintProgram(stmts []Stmt) string {
	var sb strings.Builder
	for _, stmt := range stmts {
		writeNode(&sb, stmt)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func writeNode(sb *strings.Builder, node Node) {
	switch n := node.(type) {
	case *LiteralExpr:
		sb.WriteString(literalText(n.Value))
	case *GroupingExpr:
		parenthesize(sb, "group", n.Expr)
	case *UnaryExpr:
		parenthesize(sb, n.Op.Lexeme, n.Right)
	case *BinaryExpr:
		parenthesize(sb, n.Op.Lexeme, n.Left, n.Right)
	case *LogicalExpr:
		parenthesize(sb, n.Op.Lexeme, n.Left, n.Right)
	case *VariableExpr:
		sb.WriteString(n.Name.Lexeme)
	case *AssignExpr:
		parenthesize(sb, "= "+n.Name.Lexeme, n.Value)
	case *CallExpr:
		nodes := make([]Node, 0, len(n.Args)+1)
		nodes = append(nodes, n.Callee)
		for _, arg := range n.Args {
			nodes = append(nodes, arg)
		}
		parenthesize(sb, "call", nodes...)
	case *ExprStmt:
		parenthesize(sb, ";", n.Expr)
	case *PrintStmt:
		parenthesize(sb, "print", n.Expr)
	case *VarStmt:
		if n.Init == nil {
			parenthesize(sb, "var "+n.Name.Lexeme)
		} else {
			parenthesize(sb, "var "+n.Name.Lexeme, n.Init)
		}
	case *BlockStmt:
		parenthesize(sb, "block", stmtNodes(n.Stmts)...)
	case *IfStmt:
		if n.Else == nil {
			parenthesize(sb, "if", n.Cond, n.Then)
		} else {
			parenthesize(sb, "if-else", n.Cond, n.Then, n.Else)
		}
	case *WhileStmt:
		parenthesize(sb, "while", n.Cond, n.Body)
	case *FunctionStmt:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.Lexeme
		}
		head := fmt.Sprintf("fun %s(%s)", n.Name.Lexeme, strings.Join(params, " "))
		parenthesize(sb, head, stmtNodes(n.Body)...)
	case *ReturnStmt:
		if n.Value == nil {
			sb.WriteString("(return)")
		} else {
			parenthesize(sb, "return", n.Value)
		}
	case *BreakStmt:
		sb.WriteString("(break)")
	default:
		fmt.Fprintf(sb, "<unknown %T>", node)
	}
}

func parenthesize(sb *strings.Builder, name string, nodes ...Node) {
	sb.WriteByte('(')
	sb.WriteString(name)
	for _, n := range nodes {
		sb.WriteByte(' ')
		writeNode(sb, n)
	}
	sb.WriteByte(')')
}

func stmtNodes(stmts []Stmt) []Node {
	nodes := make([]Node, len(stmts))
	for i, s := range stmts {
		nodes[i] = s
	}
	return nodes
}

func literalText(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		return strconv.Quote(val)
	default:
		return fmt.Sprint(val)
	}
}
