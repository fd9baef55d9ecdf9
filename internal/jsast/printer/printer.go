// Package printer renders a jsast tree back to JavaScript source.
//
// A tree that came from the parser is printed from its source text. Nodes
// that still sit where they were parsed are copied verbatim, with their
// comments and formatting; statements that moved inside their block carry
// their leading comments along. Nodes built after parsing are laid out
// with one statement per line, two-space indentation and double-quoted
// strings.
package printer

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"mockhoist.dev/pkg/mockhoist/internal/jsast"
)

// ErrUnprintable is returned for a synthesized node the printer cannot lay
// out on its own.
var ErrUnprintable = errors.New("cannot print synthesized node")

// Print renders prog.
func Print(prog *jsast.Program) (string, error) {
	p := &printer{src: prog.Source, spans: prog.Spans}

	if sp, ok := prog.Spans[prog]; ok && prog.Source != nil {
		p.list(prog, sp, 0, len(prog.Source))
	} else {
		for _, s := range prog.Body {
			p.gen(s)
			p.write("\n")
		}
	}

	if p.err != nil {
		return "", p.err
	}

	return p.b.String(), nil
}

type printer struct {
	b      strings.Builder
	src    []byte
	spans  map[jsast.Node]jsast.Span
	indent string
	err    error
}

func (p *printer) write(s string) {
	p.b.WriteString(s)
}

func (p *printer) copy(from, to int) {
	if from < to {
		p.b.Write(p.src[from:to])
	}
}

func (p *printer) fail(n jsast.Node) {
	if p.err == nil {
		p.err = fmt.Errorf("%w: %s", ErrUnprintable, n.Type())
	}
}

// parsed returns the span of n if n can be copied from source.
func (p *printer) parsed(n jsast.Node) (jsast.Span, bool) {
	sp, ok := p.spans[n]
	return sp, ok && !sp.Synthetic
}

func (p *printer) node(n jsast.Node) {
	sp, ok := p.parsed(n)
	if !ok {
		p.gen(n)
		return
	}

	switch n := n.(type) {
	case *jsast.BlockStatement:
		p.list(n, sp, sp.Start, sp.End)
	case *jsast.VariableDeclaration:
		p.declaration(n, sp)
	default:
		p.splice(n, sp)
	}
}

// splice copies the source of n, printing each child in the gap it came
// from. Children that overlap one already printed stay in the copied text.
func (p *printer) splice(n jsast.Node, sp jsast.Span) {
	cursor := sp.Start

	for _, c := range jsast.Children(n) {
		csp, ok := p.spans[c]
		if !ok || csp.Start < cursor || csp.End > sp.End {
			continue
		}

		p.copy(cursor, csp.Start)
		p.node(c)
		cursor = csp.End
	}

	p.copy(cursor, sp.End)
}

// list prints a program or block whose text runs from..to. Statements
// still preceded by their original neighbor keep their leading trivia as
// is; the others are separated with a newline.
func (p *printer) list(b jsast.Block, sp jsast.Span, from, to int) {
	_, top := b.(*jsast.Program)
	stmts := b.Statements()

	p.copy(from, sp.Head)

	indent := p.indentOf(stmts, sp, top)
	saved := p.indent
	p.indent = indent

	// breakNext is set when the next statement must start on a new line.
	prevTrail, breakNext := -1, top && sp.Head > 0

	for i, s := range stmts {
		ssp, ok := p.parsed(s)
		if !ok {
			if i > 0 || sp.Head > 0 || !top {
				p.write("\n" + indent)
			}

			p.gen(s)

			prevTrail, breakNext = -1, true

			continue
		}

		lead := string(p.src[ssp.Lead:ssp.Start])

		inPlace := (i == 0 && ssp.Lead == sp.Head) || (i > 0 && ssp.Lead == prevTrail)
		if !inPlace {
			lead = relead(lead, i == 0 && top && sp.Head == 0, breakNext, indent)
		}

		p.write(lead)
		p.node(s)
		p.copy(ssp.End, ssp.Trail)

		prevTrail = ssp.Trail
		breakNext = bytes.Contains(p.src[ssp.End:ssp.Trail], []byte("//"))
	}

	p.indent = saved
	p.copy(sp.Tail, to)
}

// relead adjusts the trivia before a statement that moved. A lead that
// stays on the previous line is kept unless a line break is required.
func relead(lead string, fileStart, breakNext bool, indent string) string {
	trimmed := strings.TrimLeft(lead, " \t")

	switch {
	case fileStart:
		return strings.TrimLeft(lead, " \t\r\n")
	case strings.HasPrefix(trimmed, "\n"), strings.HasPrefix(trimmed, "\r\n"):
		return lead
	case trimmed == "" && lead != "" && !breakNext:
		return lead
	}

	return "\n" + indent + trimmed
}

// indentOf returns the indentation used by the statements of a list.
func (p *printer) indentOf(stmts []jsast.Stmt, sp jsast.Span, top bool) string {
	for _, s := range stmts {
		ssp, ok := p.parsed(s)
		if !ok {
			continue
		}

		ls := lineStart(p.src, ssp.Start)
		if ws := p.src[ls:ssp.Start]; len(bytes.Trim(ws, " \t")) == 0 {
			return string(ws)
		}
	}

	if top {
		return ""
	}

	ls := lineStart(p.src, sp.Start)
	line := p.src[ls:sp.Start]

	return string(line[:len(line)-len(bytes.TrimLeft(line, " \t"))]) + "  "
}

func lineStart(src []byte, off int) int {
	return bytes.LastIndexByte(src[:off], '\n') + 1
}

// declaration prints a variable declaration whose declarator list may
// have lost members.
func (p *printer) declaration(d *jsast.VariableDeclaration, sp jsast.Span) {
	p.copy(sp.Start, sp.Head)

	prevEnd := -1

	for i, decl := range d.Declarations {
		dsp, ok := p.parsed(decl)

		switch {
		case ok && ((i == 0 && dsp.Lead == sp.Head) || (i > 0 && dsp.Lead == prevEnd)):
			p.copy(dsp.Lead, dsp.Start)
		case i > 0:
			p.write(", ")
		}

		p.node(decl)

		prevEnd = -1
		if ok {
			prevEnd = dsp.End
		}
	}

	p.copy(sp.Tail, sp.End)
}
