package parser

import (
	"errors"
	"fmt"
	"strings"
)

// Error represents a scan or parse error tagged with its source location.
type Error struct {
	Pos        Position
	Where      string // " at end", " at 'lexeme'", or empty for lexical errors
	Msg        string
	Incomplete bool // input ended before the construct was closed
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("[line %d] Error%s: %s", e.Pos.Line, e.Where, e.Msg)
}

// ErrorList collects every error found during one scan or parse pass.
type ErrorList []*Error

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	lines := make([]string, len(l))
	for i, e := range l {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

// Err returns nil for an empty list, the list otherwise.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

func (l *ErrorList) add(e *Error) {
	*l = append(*l, e)
}

func newTokenError(tok Token, msg string) *Error {
	if tok.Type == EOF {
		return &Error{
			Pos:        tok.Pos,
			Where:      " at end",
			Msg:        msg,
			Incomplete: true,
		}
	}
	return &Error{
		Pos:   tok.Pos,
		Where: fmt.Sprintf(" at '%s'", tok.Lexeme),
		Msg:   msg,
	}
}

func newLexError(pos Position, msg string) *Error {
	return &Error{Pos: pos, Msg: msg}
}

func newIncompleteLexError(pos Position, msg string) *Error {
	return &Error{Pos: pos, Msg: msg, Incomplete: true}
}

// IsIncomplete reports whether the supplied error only describes input that
// ended too early, so that more lines could complete it.
func IsIncomplete(err error) bool {
	var list ErrorList
	if errors.As(err, &list) {
		if len(list) == 0 {
			return false
		}
		for _, e := range list {
			if !e.Incomplete {
				return false
			}
		}
		return true
	}
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Incomplete
	}
	return false
}
