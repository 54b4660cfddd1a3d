package parser

import (
	"errors"
	"io"
	"sort"
)

// ParseString scans and parses Lox source text. Lexical and syntax errors
// from the whole source are returned together in one ErrorList.
func ParseString(src string) ([]Stmt, error) {
	tokens, scanErr := Scan(src)
	stmts, parseErr := Parse(tokens)

	var errs ErrorList
	for _, err := range []error{scanErr, parseErr} {
		var list ErrorList
		if errors.As(err, &list) {
			errs = append(errs, list...)
		}
	}
	if len(errs) > 0 {
		sort.SliceStable(errs, func(i, j int) bool {
			return errs[i].Pos.Offset < errs[j].Pos.Offset
		})
		return nil, errs
	}
	return stmts, nil
}

// ParseReader consumes Lox source from an io.Reader and parses it.
func ParseReader(r io.Reader) ([]Stmt, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseString(string(data))
}
