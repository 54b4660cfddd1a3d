package parser

import (
	"errors"
	"testing"
)

func lexAllTokens(t *testing.T, src string) []Token {
	t.Helper()
	tokens, err := Scan(src)
	if err != nil {
		t.Fatalf("unexpected scan error after %d tokens: %v", len(tokens), err)
	}
	return tokens
}

func TestLexerIdentifiersAndKeywords(t *testing.T) {
	src := "and break else false for fun if nil or print return true var while foo _bar baz123"
	tokens := lexAllTokens(t, src)
	tokens = tokens[:len(tokens)-1] // drop EOF

	want := []struct {
		typ    TokenType
		lexeme string
	}{
		{And, "and"},
		{Break, "break"},
		{Else, "else"},
		{False, "false"},
		{For, "for"},
		{Fun, "fun"},
		{If, "if"},
		{Nil, "nil"},
		{Or, "or"},
		{Print, "print"},
		{Return, "return"},
		{True, "true"},
		{Var, "var"},
		{While, "while"},
		{Identifier, "foo"},
		{Identifier, "_bar"},
		{Identifier, "baz123"},
	}

	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(tokens))
	}
	for i, tt := range want {
		tok := tokens[i]
		if tok.Type != tt.typ {
			t.Errorf("token %d: expected type %v, got %v", i, tt.typ, tok.Type)
		}
		if tok.Lexeme != tt.lexeme {
			t.Errorf("token %d: expected lexeme %q, got %q", i, tt.lexeme, tok.Lexeme)
		}
	}
}

func TestLexerOperators(t *testing.T) {
	tokens := lexAllTokens(t, "(){},;- + / * ! != = == > >= < <=")
	want := []TokenType{
		LeftParen, RightParen, LeftBrace, RightBrace, Comma, Semicolon,
		Minus, Plus, Slash, Star, Bang, BangEqual, Equal, EqualEqual,
		Greater, GreaterEqual, Less, LessEqual, EOF,
	}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(tokens))
	}
	for i, tt := range want {
		if tokens[i].Type != tt {
			t.Errorf("token %d: expected %v, got %v", i, tt, tokens[i].Type)
		}
	}
}

func TestLexerNumberLiterals(t *testing.T) {
	tests := []struct {
		src  string
		want float64
	}{
		{"0", 0},
		{"42", 42},
		{"3.25", 3.25},
	}
	for _, tt := range tests {
		tokens := lexAllTokens(t, tt.src)
		if len(tokens) != 2 {
			t.Fatalf("%q: expected number and EOF, got %d tokens", tt.src, len(tokens))
		}
		if tokens[0].Type != Number || tokens[0].Literal.(float64) != tt.want {
			t.Fatalf("%q: expected number %v, got %v %v", tt.src, tt.want, tokens[0].Type, tokens[0].Literal)
		}
	}

	// A trailing dot is not part of the number.
	tokens, err := Scan("7.")
	if err == nil {
		t.Fatalf("expected error for stray '.'")
	}
	if tokens[0].Type != Number || tokens[0].Lexeme != "7" {
		t.Fatalf("expected number 7 before the dot, got %v", tokens[0])
	}
}

func TestLexerStringLiterals(t *testing.T) {
	tokens := lexAllTokens(t, "\"hi\\n\\t\\\"x\\\"\" \"two\nlines\"")
	if tokens[0].Type != String || tokens[0].Literal != "hi\n\t\"x\"" {
		t.Fatalf("unexpected escaped string %#v", tokens[0].Literal)
	}
	if tokens[1].Literal != "two\nlines" {
		t.Fatalf("unexpected multi-line string %#v", tokens[1].Literal)
	}
	if tokens[2].Type != EOF || tokens[2].Pos.Line != 2 {
		t.Fatalf("expected EOF on line 2, got %v", tokens[2])
	}
}

func TestLexerCommentsAndPositions(t *testing.T) {
	src := "// comment\nvar /* block\ncomment */ x"
	tokens := lexAllTokens(t, src)
	if len(tokens) != 3 {
		t.Fatalf("expected var, x, EOF; got %v", tokens)
	}
	if tokens[0].Type != Var || tokens[0].Pos.Line != 2 || tokens[0].Pos.Column != 1 {
		t.Fatalf("unexpected var token %v at %s", tokens[0], tokens[0].Pos)
	}
	if tokens[1].Lexeme != "x" || tokens[1].Pos.Line != 3 {
		t.Fatalf("unexpected identifier token %v at %s", tokens[1], tokens[1].Pos)
	}
}

func TestLexerBlockComments(t *testing.T) {
	tokens := lexAllTokens(t, "a /* c */ b")
	if len(tokens) != 3 || tokens[0].Lexeme != "a" || tokens[1].Lexeme != "b" || tokens[1].Type != Identifier {
		t.Fatalf("expected identifiers a and b around the comment, got %v", tokens)
	}

	_, err := Scan("x /* open")
	var list ErrorList
	if !errors.As(err, &list) || len(list) != 1 {
		t.Fatalf("expected a single error, got %v", err)
	}
	if got, want := list[0].Error(), "[line 1] Error: Unterminated block comment."; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if !IsIncomplete(err) {
		t.Fatalf("unterminated comment should be incomplete")
	}
}

func TestLexerInvalidUTF8InString(t *testing.T) {
	tokens, err := Scan("print \"a\xffb\";\nprint 2;")
	var list ErrorList
	if !errors.As(err, &list) || len(list) != 1 {
		t.Fatalf("expected a single error, got %v", err)
	}
	if got, want := list[0].Error(), "[line 1] Error: Invalid UTF-8 encoding."; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if IsIncomplete(err) {
		t.Fatalf("bad encoding is not incomplete input")
	}
	want := []TokenType{Print, Semicolon, Print, Number, Semicolon, EOF}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens after skipping the bad string, got %v", len(want), tokens)
	}
	for i, tt := range want {
		if tokens[i].Type != tt {
			t.Errorf("token %d: expected %v, got %v", i, tt, tokens[i].Type)
		}
	}
	if tokens[2].Pos.Line != 2 {
		t.Fatalf("expected second print on line 2, got %s", tokens[2].Pos)
	}
}

func TestLexerCollectsErrors(t *testing.T) {
	tokens, err := Scan("var a = @;\nvar b = #;")
	var list ErrorList
	if !errors.As(err, &list) {
		t.Fatalf("expected ErrorList, got %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(list), list)
	}
	if got, want := list[0].Error(), "[line 1] Error: Unexpected character '@'."; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if list[1].Pos.Line != 2 {
		t.Fatalf("expected second error on line 2, got %d", list[1].Pos.Line)
	}
	if tokens[len(tokens)-1].Type != EOF {
		t.Fatalf("expected token stream to end with EOF")
	}
	if IsIncomplete(err) {
		t.Fatalf("bad characters must not be reported as incomplete input")
	}
}

func TestLexerUnterminatedInputIsIncomplete(t *testing.T) {
	for _, src := range []string{`print "abc`, "/* never closed", `"tail\`} {
		_, err := Scan(src)
		if err == nil {
			t.Fatalf("%q: expected error", src)
		}
		if !IsIncomplete(err) {
			t.Fatalf("%q: expected incomplete error, got %v", src, err)
		}
	}
}
