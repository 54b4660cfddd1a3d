package parser

import "fmt"

// TokenType enumerates lexical categories recognised by the Lox scanner.
type TokenType int

const (
	EOF TokenType = iota

	Identifier
	Number
	String

	// Keywords
	And
	Break
	Else
	False
	For
	Fun
	If
	Nil
	Or
	Print
	Return
	True
	Var
	While

	// Operators and punctuation
	LeftParen    // (
	RightParen   // )
	LeftBrace    // {
	RightBrace   // }
	Comma        // ,
	Semicolon    // ;
	Minus        // -
	Plus         // +
	Slash        // /
	Star         // *
	Bang         // !
	BangEqual    // !=
	Equal        // =
	EqualEqual   // ==
	Greater      // >
	GreaterEqual // >=
	Less         // <
	LessEqual    // <=
)

func (tt TokenType) String() string {
	switch tt {
	case EOF:
		return "EOF"
	case Identifier:
		return "identifier"
	case Number:
		return "number"
	case String:
		return "string"
	case And:
		return "and"
	case Break:
		return "break"
	case Else:
		return "else"
	case False:
		return "false"
	case For:
		return "for"
	case Fun:
		return "fun"
	case If:
		return "if"
	case Nil:
		return "nil"
	case Or:
		return "or"
	case Print:
		return "print"
	case Return:
		return "return"
	case True:
		return "true"
	case Var:
		return "var"
	case While:
		return "while"
	case LeftParen:
		return "("
	case RightParen:
		return ")"
	case LeftBrace:
		return "{"
	case RightBrace:
		return "}"
	case Comma:
		return ","
	case Semicolon:
		return ";"
	case Minus:
		return "-"
	case Plus:
		return "+"
	case Slash:
		return "/"
	case Star:
		return "*"
	case Bang:
		return "!"
	case BangEqual:
		return "!="
	case Equal:
		return "="
	case EqualEqual:
		return "=="
	case Greater:
		return ">"
	case GreaterEqual:
		return ">="
	case Less:
		return "<"
	case LessEqual:
		return "<="
	default:
		return "unknown"
	}
}

// Position tracks a source location within a Lox source file.
type Position struct {
	Offset int // zero-based byte offset
	Line   int // one-based line number
	Column int // one-based column number (rune count)
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical unit produced by the scanner. Tokens are plain
// values; copying one is how the parser retains it past consumption.
type Token struct {
	Type    TokenType
	Lexeme  string      // source text of the token
	Literal interface{} // decoded literal: float64 for numbers, string for strings
	Pos     Position
}

// Line returns the one-based source line of the token.
func (t Token) Line() int {
	return t.Pos.Line
}

func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%s %s %v", t.Type, t.Lexeme, t.Literal)
	}
	return fmt.Sprintf("%s %s", t.Type, t.Lexeme)
}
