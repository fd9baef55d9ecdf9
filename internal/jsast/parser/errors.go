package parser

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"mockhoist.dev/pkg/mockhoist/internal/jsast"
)

// Error is a syntax error at a 1-based line and column.
type Error struct {
	File string
	Line int
	Col  int
	Msg  string
}

func newError(p jsast.Pos, format string, args ...any) *Error {
	return &Error{Line: p.Line, Col: p.Col, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
	}

	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Col, e.Msg)
}

// Pos returns the error location.
func (e *Error) Pos() jsast.Pos {
	return jsast.Pos{Line: e.Line, Col: e.Col}
}

// syntaxError reports the first error or missing node of a tree that
// failed to parse cleanly.
func (c *converter) syntaxError(root *sitter.Node) *Error {
	bad := firstError(root)
	if bad == nil {
		bad = root
	}

	if bad.IsMissing() {
		if bad.IsNamed() {
			return newError(c.loc(bad), "missing %s", strings.ReplaceAll(bad.Type(), "_", " "))
		}

		return newError(c.loc(bad), "missing %q", bad.Type())
	}

	return newError(c.loc(bad), "unexpected %s", c.describe(bad))
}

func firstError(n *sitter.Node) *sitter.Node {
	for i := range int(n.ChildCount()) {
		ch := n.Child(i)

		switch {
		case ch.IsMissing(), ch.IsError():
			return ch
		case ch.HasError():
			if bad := firstError(ch); bad != nil {
				return bad
			}
		}
	}

	return nil
}

// describe quotes the first line of n, shortened.
func (c *converter) describe(n *sitter.Node) string {
	text := c.text(n)
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		text = text[:i]
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "end of input"
	}

	if r := []rune(text); len(r) > 20 {
		text = string(r[:20]) + "..."
	}

	return fmt.Sprintf("%q", text)
}

// unsupported names a construct the hoister does not handle.
func unsupported(kind string) string {
	switch {
	case strings.HasPrefix(kind, "jsx_"):
		return "JSX"
	case kind == "with_statement":
		return "with statement"
	case kind == "glimmer_template":
		return "template tag"
	}

	return strings.ReplaceAll(kind, "_", " ")
}
