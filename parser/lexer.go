package parser

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var errInvalidUTF8 = errors.New("invalid UTF-8 encoding")

// Scan splits Lox source text into tokens. The returned slice always ends in
// an EOF token. Lexical errors do not stop the scan; they are collected and
// returned together as an ErrorList alongside the tokens that were produced.
func Scan(src string) ([]Token, error) {
	lx := newLexer(src)
	var (
		tokens []Token
		errs   ErrorList
	)
	for {
		tok, err := lx.nextToken()
		if err != nil {
			errs.add(err)
			continue
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			break
		}
	}
	return tokens, errs.Err()
}

type lexer struct {
	src    string
	pos    int
	line   int
	column int
}

func newLexer(src string) *lexer {
	return &lexer{
		src:    src,
		line:   1,
		column: 1,
	}
}

type runeState struct {
	pos    int
	line   int
	column int
}

func (lx *lexer) mark() runeState {
	return runeState{
		pos:    lx.pos,
		line:   lx.line,
		column: lx.column,
	}
}

func (lx *lexer) restore(state runeState) {
	lx.pos = state.pos
	lx.line = state.line
	lx.column = state.column
}

func (lx *lexer) readRune() (rune, runeState, error) {
	state := lx.mark()
	if lx.pos >= len(lx.src) {
		return 0, state, io.EOF
	}
	r, w := utf8.DecodeRuneInString(lx.src[lx.pos:])
	lx.pos += w
	if r == utf8.RuneError && w == 1 {
		lx.column++
		return 0, state, errInvalidUTF8
	}
	if r == '\n' {
		lx.line++
		lx.column = 1
	} else {
		lx.column++
	}
	return r, state, nil
}

func (lx *lexer) unread(state runeState) {
	lx.restore(state)
}

func (lx *lexer) peekRune() rune {
	state := lx.mark()
	r, _, err := lx.readRune()
	lx.restore(state)
	if err != nil {
		return 0
	}
	return r
}

func (lx *lexer) match(expected rune) bool {
	state := lx.mark()
	r, _, err := lx.readRune()
	if err != nil {
		lx.unread(state)
		return false
	}
	if r != expected {
		lx.unread(state)
		return false
	}
	return true
}

func (lx *lexer) skipWhitespace() *Error {
	for {
		r, state, err := lx.readRune()
		if err != nil {
			lx.unread(state)
			return nil
		}
		switch {
		case unicode.IsSpace(r):
			continue
		case r == '/':
			next, nextState, err := lx.readRune()
			if err != nil {
				lx.unread(state)
				return nil
			}
			if next == '/' {
				lx.skipLine()
				continue
			}
			if next == '*' {
				if err := lx.skipBlockComment(state); err != nil {
					return err
				}
				continue
			}
			lx.unread(nextState)
			lx.unread(state)
			return nil
		default:
			lx.unread(state)
			return nil
		}
	}
}

func (lx *lexer) skipLine() {
	for {
		r, _, err := lx.readRune()
		if err == io.EOF {
			return
		}
		if r == '\n' {
			return
		}
	}
}

func (lx *lexer) skipBlockComment(start runeState) *Error {
	for {
		r, _, err := lx.readRune()
		if err == io.EOF {
			return newIncompleteLexError(positionFromState(start), "Unterminated block comment.")
		}
		if r == '*' && lx.match('/') {
			return nil
		}
	}
}

func (lx *lexer) nextToken() (Token, *Error) {
	if err := lx.skipWhitespace(); err != nil {
		return Token{}, err
	}

	start := lx.mark()
	r, _, err := lx.readRune()
	if err == io.EOF {
		return Token{
			Type: EOF,
			Pos:  positionFromState(start),
		}, nil
	}
	if err != nil {
		return Token{}, newLexError(positionFromState(start), "Invalid UTF-8 encoding.")
	}

	switch {
	case isIdentifierStart(r):
		lx.scanIdentifier()
		return lx.makeIdentifierToken(start), nil
	case isDigit(r):
		return lx.scanNumber(start), nil
	case r == '"':
		return lx.scanString(start)
	}

	var tt TokenType
	switch r {
	case '(':
		tt = LeftParen
	case ')':
		tt = RightParen
	case '{':
		tt = LeftBrace
	case '}':
		tt = RightBrace
	case ',':
		tt = Comma
	case ';':
		tt = Semicolon
	case '-':
		tt = Minus
	case '+':
		tt = Plus
	case '/':
		tt = Slash
	case '*':
		tt = Star
	case '!':
		if lx.match('=') {
			tt = BangEqual
		} else {
			tt = Bang
		}
	case '=':
		if lx.match('=') {
			tt = EqualEqual
		} else {
			tt = Equal
		}
	case '<':
		if lx.match('=') {
			tt = LessEqual
		} else {
			tt = Less
		}
	case '>':
		if lx.match('=') {
			tt = GreaterEqual
		} else {
			tt = Greater
		}
	default:
		return Token{}, newLexError(positionFromState(start), "Unexpected character "+strconv.QuoteRune(r)+".")
	}
	return lx.token(tt, start, nil), nil
}

func (lx *lexer) token(tt TokenType, start runeState, literal interface{}) Token {
	return Token{
		Type:    tt,
		Lexeme:  lx.src[start.pos:lx.pos],
		Literal: literal,
		Pos:     positionFromState(start),
	}
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentifierPart(r rune) bool {
	return unicode.IsLetter(r) || isDigit(r) || r == '_'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func (lx *lexer) scanIdentifier() {
	for {
		r, state, err := lx.readRune()
		if err != nil || !isIdentifierPart(r) {
			lx.unread(state)
			return
		}
	}
}

func (lx *lexer) makeIdentifierToken(start runeState) Token {
	lexeme := lx.src[start.pos:lx.pos]
	if keywordType, ok := keywords[lexeme]; ok {
		return lx.token(keywordType, start, nil)
	}
	return lx.token(Identifier, start, nil)
}

var keywords = map[string]TokenType{
	"and":    And,
	"break":  Break,
	"else":   Else,
	"false":  False,
	"for":    For,
	"fun":    Fun,
	"if":     If,
	"nil":    Nil,
	"or":     Or,
	"print":  Print,
	"return": Return,
	"true":   True,
	"var":    Var,
	"while":  While,
}

func (lx *lexer) scanNumber(start runeState) Token {
	lx.skipDigits()
	// A fraction needs at least one digit after the dot.
	if lx.peekRune() == '.' {
		state := lx.mark()
		lx.readRune()
		if isDigit(lx.peekRune()) {
			lx.skipDigits()
		} else {
			lx.unread(state)
		}
	}
	lexeme := lx.src[start.pos:lx.pos]
	value, _ := strconv.ParseFloat(lexeme, 64)
	return lx.token(Number, start, value)
}

func (lx *lexer) skipDigits() {
	for isDigit(lx.peekRune()) {
		lx.readRune()
	}
}

func (lx *lexer) scanString(start runeState) (Token, *Error) {
	var (
		builder strings.Builder
		bad     *Error
	)
	for {
		r, _, err := lx.readRune()
		if err == io.EOF {
			return Token{}, newIncompleteLexError(positionFromState(start), "Unterminated string.")
		}
		if err != nil {
			// Keep going to the closing quote so the rest of the line scans normally.
			if bad == nil {
				bad = newLexError(positionFromState(start), "Invalid UTF-8 encoding.")
			}
			continue
		}
		if r == '"' {
			break
		}
		if r == '\\' {
			esc, _, err := lx.readRune()
			if err == io.EOF {
				return Token{}, newIncompleteLexError(positionFromState(start), "Unterminated string.")
			}
			if err != nil {
				if bad == nil {
					bad = newLexError(positionFromState(start), "Invalid UTF-8 encoding.")
				}
				continue
			}
			switch esc {
			case 'n':
				builder.WriteRune('\n')
			case 't':
				builder.WriteRune('\t')
			case '\\':
				builder.WriteRune('\\')
			case '"':
				builder.WriteRune('"')
			default:
				builder.WriteRune('\\')
				builder.WriteRune(esc)
			}
			continue
		}
		builder.WriteRune(r)
	}
	if bad != nil {
		return Token{}, bad
	}
	return lx.token(String, start, builder.String()), nil
}

func positionFromState(state runeState) Position {
	return Position{
		Offset: state.pos,
		Line:   state.line,
		Column: state.column,
	}
}
