package runtime

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/sergev/golox/lang"
	"github.com/sergev/golox/parser"
)

// NewInterpreter constructs an interpreter with the standard natives installed.
func NewInterpreter(opts ...lang.Option) *lang.Interpreter {
	in := lang.NewInterpreter(opts...)
	installNatives(in)
	return in
}

// LoadPrelude evaluates each script in order into the interpreter's globals.
func LoadPrelude(in *lang.Interpreter, paths []string) error {
	for _, path := range paths {
		in.Logger().Debug("loading prelude", "path", path)
		if err := EvaluateFile(in, path); err != nil {
			return fmt.Errorf("prelude %s: %w", path, err)
		}
	}
	return nil
}

func readFileSkippingShebang(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(data, []byte("#!")) {
		if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
			// Keep the newline so line numbers stay aligned with the file.
			return data[idx:], nil
		}
		return []byte{}, nil
	}
	return data, nil
}

// EvaluateString parses and executes Lox source. Parse errors are returned as
// a parser.ErrorList and nothing is executed; otherwise the first runtime
// error, if any, is returned.
func EvaluateString(in *lang.Interpreter, src string) error {
	stmts, err := parser.ParseString(src)
	if err != nil {
		return err
	}
	return in.Execute(stmts)
}

// EvaluateReader consumes all source from the reader and executes it.
func EvaluateReader(in *lang.Interpreter, r io.Reader) error {
	stmts, err := parser.ParseReader(r)
	if err != nil {
		return err
	}
	return in.Execute(stmts)
}

// EvaluateFile loads and executes a Lox file, allowing a #! shebang line.
func EvaluateFile(in *lang.Interpreter, path string) error {
	data, err := readFileSkippingShebang(path)
	if err != nil {
		return err
	}
	in.Logger().Debug("evaluating file", "path", path, "bytes", len(data))
	return EvaluateReader(in, bytes.NewReader(data))
}
