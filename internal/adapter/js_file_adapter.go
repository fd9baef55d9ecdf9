package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mockhoist.dev/pkg/mockhoist/internal/jsast"
	"mockhoist.dev/pkg/mockhoist/internal/jsast/parser"
	"mockhoist.dev/pkg/mockhoist/internal/jsast/printer"
)

// JSFileAdapter encapsulates JavaScript parsing and printing so the domain
// layer only deals with syntax trees.
type JSFileAdapter interface {
	// Parse builds a syntax tree for the provided filename/source pair.
	Parse(ctx context.Context, filename string, src []byte) (*jsast.Program, error)

	// Print renders a syntax tree back to source, keeping the text of every
	// node the transform left in place.
	Print(prog *jsast.Program) ([]byte, error)

	// CodeFrame renders the lines around a 1-based position of src with a
	// caret under the column.
	CodeFrame(src []byte, line, col int) string
}

// LocalJSFileAdapter provides a concrete JSFileAdapter backed by the
// tree-sitter parser and the source-preserving printer.
type LocalJSFileAdapter struct{}

// NewLocalJSFileAdapter constructs a LocalJSFileAdapter.
func NewLocalJSFileAdapter() *LocalJSFileAdapter {
	return &LocalJSFileAdapter{}
}

// Parse builds a syntax tree. A syntax error is returned as *parser.Error.
func (a *LocalJSFileAdapter) Parse(ctx context.Context, filename string, src []byte) (*jsast.Program, error) {
	prog, err := parser.Parse(ctx, filename, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	return prog, nil
}

// Print renders prog with a trailing newline.
func (a *LocalJSFileAdapter) Print(prog *jsast.Program) ([]byte, error) {
	out, err := printer.Print(prog)
	if err != nil {
		return nil, fmt.Errorf("print: %w", err)
	}

	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}

	return []byte(out), nil
}

// CodeFrame shows at most one line before and one line after the
// position. Coordinates are clamped to the source bounds.
func (a *LocalJSFileAdapter) CodeFrame(src []byte, line, col int) string {
	return CodeFrame(string(src), line, col)
}

// CodeFrame is the function form of LocalJSFileAdapter.CodeFrame.
func CodeFrame(src string, line, col int) string {
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")

	line = min(max(line, 1), len(lines))
	col = max(col, 1)

	var b strings.Builder

	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}

	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))

	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}

	return b.String()
}

// SyntaxError extracts the parser error from err, if any.
func SyntaxError(err error) (*parser.Error, bool) {
	var perr *parser.Error
	if errors.As(err, &perr) {
		return perr, true
	}

	return nil, false
}
