// Package parser turns JavaScript source into a jsast.Program.
//
// Parsing is done by tree-sitter's JavaScript grammar; the concrete syntax
// tree is then lowered to jsast nodes. Every node keeps its byte span in
// Program.Spans so that printing can reproduce untouched source, comments
// included.
package parser

import (
	"context"
	"slices"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"mockhoist.dev/pkg/mockhoist/internal/jsast"
)

// ParseFile parses src as a module. Syntax errors are returned as *Error.
func ParseFile(filename, src string) (*jsast.Program, error) {
	return Parse(context.Background(), filename, []byte(src))
}

// Parse is ParseFile for byte input that stops when ctx is done.
func Parse(ctx context.Context, filename string, src []byte) (*jsast.Program, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := sitter.NewParser()
	defer p.Close()

	p.SetLanguage(javascript.GetLanguage())

	tree, err := p.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	c := newConverter(src)
	root := tree.RootNode()

	if root.HasError() {
		perr := c.syntaxError(root)
		perr.File = filename

		return nil, perr
	}

	prog := c.program(root)
	if c.err != nil {
		c.err.File = filename

		return nil, c.err
	}

	return prog, nil
}

type converter struct {
	src   []byte
	lines []int
	spans map[jsast.Node]jsast.Span
	err   *Error
}

func newConverter(src []byte) *converter {
	lines := []int{0}

	for i, b := range src {
		if b == '\n' {
			lines = append(lines, i+1)
		}
	}

	return &converter{
		src:   src,
		lines: lines,
		spans: make(map[jsast.Node]jsast.Span),
	}
}

// pos converts a byte offset to a 1-based line and a rune column.
func (c *converter) pos(off int) jsast.Pos {
	i, found := slices.BinarySearch(c.lines, off)
	if !found {
		i--
	}

	return jsast.Pos{Line: i + 1, Col: utf8.RuneCount(c.src[c.lines[i]:off]) + 1}
}

func (c *converter) loc(n *sitter.Node) jsast.Pos {
	return c.pos(start(n))
}

func (c *converter) text(n *sitter.Node) string {
	return string(c.src[start(n):end(n)])
}

func (c *converter) fail(n *sitter.Node, format string, args ...any) {
	if c.err == nil {
		c.err = newError(c.loc(n), format, args...)
	}
}

// mark records the source span of a freshly built node.
func mark[T jsast.Node](c *converter, node T, n *sitter.Node) T {
	c.spans[node] = jsast.Span{Start: start(n), End: end(n)}

	return node
}

func start(n *sitter.Node) int { return int(n.StartByte()) }

func end(n *sitter.Node) int { return int(n.EndByte()) }

// named returns the named children of n without comments.
func named(n *sitter.Node) []*sitter.Node {
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)

	for i := range count {
		if ch := n.NamedChild(i); !ch.IsExtra() {
			out = append(out, ch)
		}
	}

	return out
}

// only returns the first named child of n that is not a comment.
func only(n *sitter.Node) *sitter.Node {
	if list := named(n); len(list) > 0 {
		return list[0]
	}

	return nil
}

// field returns every child of n stored under name.
func field(n *sitter.Node, name string) []*sitter.Node {
	var out []*sitter.Node

	for i := range int(n.ChildCount()) {
		if n.FieldNameForChild(i) == name {
			out = append(out, n.Child(i))
		}
	}

	return out
}

// hasToken reports whether n has an anonymous child spelled tok.
func hasToken(n *sitter.Node, tok string) bool {
	for i := range int(n.ChildCount()) {
		if ch := n.Child(i); !ch.IsNamed() && ch.Type() == tok {
			return true
		}
	}

	return false
}
