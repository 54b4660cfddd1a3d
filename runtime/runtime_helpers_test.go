package runtime

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sergev/golox/lang"
	"github.com/sergev/golox/parser"
)

func TestReadFileSkippingShebang(t *testing.T) {
	dir := t.TempDir()

	withShebang := filepath.Join(dir, "script.lox")
	if err := os.WriteFile(withShebang, []byte("#!/usr/bin/env golox\nprint 1;\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	data, err := readFileSkippingShebang(withShebang)
	if err != nil {
		t.Fatalf("readFileSkippingShebang error: %v", err)
	}
	if string(data) != "\nprint 1;\n" {
		t.Fatalf("expected shebang to be blanked, got %q", data)
	}

	onlyShebang := filepath.Join(dir, "only_shebang.lox")
	if err := os.WriteFile(onlyShebang, []byte("#!/bin/true"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	data, err = readFileSkippingShebang(onlyShebang)
	if err != nil {
		t.Fatalf("readFileSkippingShebang error: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected empty body for shebang-only script, got %q", data)
	}

	noShebang := filepath.Join(dir, "plain.lox")
	if err := os.WriteFile(noShebang, []byte(`print "hi";`), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	data, err = readFileSkippingShebang(noShebang)
	if err != nil {
		t.Fatalf("readFileSkippingShebang error: %v", err)
	}
	if string(data) != `print "hi";` {
		t.Fatalf("expected content unchanged, got %q", data)
	}
}

func TestEvaluateFileKeepsLineNumbers(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "prog.lox")
	src := "#!/usr/bin/env golox\nfun inc(n) {\n\treturn n + 1;\n}\nprint inc(41);\nprint missing;\n"
	if err := os.WriteFile(script, []byte(src), 0o600); err != nil {
		t.Fatalf("write script: %v", err)
	}

	var out bytes.Buffer
	in := NewInterpreter(lang.WithStdout(&out))
	err := EvaluateFile(in, script)
	if err == nil || err.Error() != "[line 6] Error at 'missing': Undefined variable 'missing'." {
		t.Fatalf("unexpected error %v", err)
	}
	if out.String() != "42\n" {
		t.Fatalf("expected 42 before the error, got %q", out.String())
	}

	if err := EvaluateFile(in, filepath.Join(dir, "absent.lox")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestEvaluateStringParseErrorsSkipExecution(t *testing.T) {
	var out bytes.Buffer
	in := NewInterpreter(lang.WithStdout(&out))
	err := EvaluateString(in, "print 1;\nprint ;\nvar = 2;\n")
	var list parser.ErrorList
	if !errors.As(err, &list) || len(list) != 2 {
		t.Fatalf("expected two parse errors, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("nothing should run after a parse error, got %q", out.String())
	}
}

func TestEvaluateReader(t *testing.T) {
	var out bytes.Buffer
	in := NewInterpreter(lang.WithStdout(&out))
	if err := EvaluateReader(in, strings.NewReader(`var s = "a"; print s + "b";`)); err != nil {
		t.Fatalf("EvaluateReader error: %v", err)
	}
	if out.String() != "ab\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestLoadPrelude(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.lox")
	second := filepath.Join(dir, "second.lox")
	if err := os.WriteFile(first, []byte("fun square(x) { return x * x; }"), 0o600); err != nil {
		t.Fatalf("write prelude: %v", err)
	}
	if err := os.WriteFile(second, []byte("var nine = square(3);"), 0o600); err != nil {
		t.Fatalf("write prelude: %v", err)
	}

	var out bytes.Buffer
	in := NewInterpreter(lang.WithStdout(&out))
	if err := LoadPrelude(in, []string{first, second}); err != nil {
		t.Fatalf("LoadPrelude error: %v", err)
	}
	if err := EvaluateString(in, "print nine + square(2);"); err != nil {
		t.Fatalf("EvaluateString error: %v", err)
	}
	if out.String() != "13\n" {
		t.Fatalf("unexpected output %q", out.String())
	}

	broken := filepath.Join(dir, "broken.lox")
	if err := os.WriteFile(broken, []byte("var;"), 0o600); err != nil {
		t.Fatalf("write prelude: %v", err)
	}
	err := LoadPrelude(in, []string{broken})
	var list parser.ErrorList
	if !errors.As(err, &list) || !strings.HasPrefix(err.Error(), "prelude "+broken+": ") {
		t.Fatalf("expected wrapped parse error, got %v", err)
	}
}
