package lang

import (
	"fmt"

	"github.com/sergev/golox/parser"
)

// RuntimeError aborts the current top-level statement. It carries the token
// nearest to the failure.
type RuntimeError struct {
	Token parser.Token
	Msg   string
}

func (e *RuntimeError) Error() string {
	if e == nil {
		return ""
	}
	return locate(e.Token) + e.Msg
}

// SystemError reports a host failure raised by a native function.
type SystemError struct {
	Token parser.Token
	Err   error
}

func (e *SystemError) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}
	return locate(e.Token) + "system error: " + e.Err.Error()
}

func (e *SystemError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func locate(tok parser.Token) string {
	switch {
	case tok.Pos.Line == 0:
		return "Error: "
	case tok.Type == parser.EOF:
		return fmt.Sprintf("[line %d] Error at end: ", tok.Pos.Line)
	default:
		return fmt.Sprintf("[line %d] Error at '%s': ", tok.Pos.Line, tok.Lexeme)
	}
}

func newRuntimeError(tok parser.Token, format string, args ...interface{}) error {
	return &RuntimeError{
		Token: tok,
		Msg:   fmt.Sprintf(format, args...),
	}
}
