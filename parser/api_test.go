package parser

import (
	"errors"
	"strings"
	"testing"
)

func TestParseStringProducesStatements(t *testing.T) {
	src := `
var answer = 41;
answer + 1;
`
	stmts, err := ParseString(src)
	if err != nil {
		t.Fatalf("ParseString returned error: %v", err)
	}
	if len(stmts) != 2 {
		t.Fatalf("expected two statements, got %d", len(stmts))
	}

	decl, ok := stmts[0].(*VarStmt)
	if !ok {
		t.Fatalf("expected VarStmt, got %T", stmts[0])
	}
	if decl.Name.Lexeme != "answer" {
		t.Fatalf("expected declaration of answer, got %s", decl.Name.Lexeme)
	}
	lit, ok := decl.Init.(*LiteralExpr)
	if !ok || lit.Value != 41.0 {
		t.Fatalf("expected initializer 41, got %#v", decl.Init)
	}
	if stmts[1].Pos().Line != 3 {
		t.Fatalf("expected expression statement on line 3, got %d", stmts[1].Pos().Line)
	}
}

func TestParseStringMergesScanAndSyntaxErrors(t *testing.T) {
	_, err := ParseString("print 1 +;\nvar @x = 2;\nprint 3;")
	var list ErrorList
	if !errors.As(err, &list) {
		t.Fatalf("expected ErrorList, got %v", err)
	}
	if len(list) < 2 {
		t.Fatalf("expected errors from both passes, got %v", list)
	}
	if list[0].Pos.Line != 1 || list[1].Pos.Line != 2 {
		t.Fatalf("expected errors ordered by position, got %v", list)
	}
	if !strings.Contains(list[1].Msg, "Unexpected character") {
		t.Fatalf("expected the lexical error second, got %v", list[1])
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("boom")
}

func TestParseReaderHandlesIOReturns(t *testing.T) {
	if _, err := ParseReader(failingReader{}); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected underlying IO error, got %v", err)
	}

	reader := strings.NewReader("var value = 5; print value;")
	stmts, err := ParseReader(reader)
	if err != nil {
		t.Fatalf("ParseReader returned error: %v", err)
	}
	if len(stmts) != 2 {
		t.Fatalf("expected two statements from reader, got %d", len(stmts))
	}
}
