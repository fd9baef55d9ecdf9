package parser

import (
	"bytes"

	sitter "github.com/smacker/go-tree-sitter"

	"mockhoist.dev/pkg/mockhoist/internal/jsast"
)

func (c *converter) program(root *sitter.Node) *jsast.Program {
	prog := &jsast.Program{Loc: jsast.Pos{Line: 1, Col: 1}, Source: c.src, Spans: c.spans}

	head := 0
	items := make([]*sitter.Node, 0, root.NamedChildCount())

	for _, ch := range named(root) {
		if ch.Type() == "hash_bang_line" {
			head = end(ch)
			continue
		}

		items = append(items, ch)
	}

	var tail int

	prog.Body, tail = c.list(items, head)
	c.spans[prog] = jsast.Span{End: len(c.src), Head: head, Tail: tail}

	return prog
}

// list converts a statement list whose leading trivia starts at head. It
// returns the statements and the offset where the last one's trailing
// comment ends.
func (c *converter) list(items []*sitter.Node, head int) ([]jsast.Stmt, int) {
	out := make([]jsast.Stmt, 0, len(items))
	lead := head

	for _, it := range items {
		s := c.stmt(it)
		if s == nil {
			continue
		}

		sp := c.spans[s]
		sp.Lead = lead
		sp.Trail = c.trail(sp.End)
		c.spans[s] = sp

		lead = sp.Trail
		out = append(out, s)
	}

	return out, lead
}

// trail extends off over comments that follow it on the same line.
func (c *converter) trail(off int) int {
	for {
		i := off
		for i < len(c.src) && (c.src[i] == ' ' || c.src[i] == '\t') {
			i++
		}

		rest := c.src[i:]

		switch {
		case bytes.HasPrefix(rest, []byte("//")):
			eol := bytes.IndexByte(rest, '\n')
			if eol < 0 {
				return len(c.src)
			}

			if eol > 0 && rest[eol-1] == '\r' {
				eol--
			}

			return i + eol
		case bytes.HasPrefix(rest, []byte("/*")):
			closing := bytes.Index(rest[2:], []byte("*/"))
			if closing < 0 || bytes.IndexByte(rest[2:2+closing], '\n') >= 0 {
				return off
			}

			off = i + 2 + closing + 2
		default:
			return off
		}
	}
}

func (c *converter) block(n *sitter.Node) *jsast.BlockStatement {
	if n == nil {
		return nil
	}

	b := &jsast.BlockStatement{Loc: c.loc(n)}
	head := start(n) + 1

	var tail int

	b.Body, tail = c.list(named(n), head)
	c.spans[b] = jsast.Span{Start: start(n), End: end(n), Head: head, Tail: tail}

	return b
}

//nolint:cyclop,gocyclo,funlen // one case per statement kind
func (c *converter) stmt(n *sitter.Node) jsast.Stmt {
	if n == nil {
		return nil
	}

	loc := c.loc(n)

	switch n.Type() {
	case "expression_statement":
		return mark(c, &jsast.ExpressionStatement{Loc: loc, Expression: c.expr(only(n))}, n)
	case "statement_block":
		return c.block(n)
	case "empty_statement":
		return mark(c, &jsast.EmptyStatement{Loc: loc}, n)
	case "lexical_declaration", "variable_declaration":
		return c.varDecl(n)
	case "function_declaration", "generator_function_declaration":
		return mark(c, &jsast.FunctionDeclaration{
			Loc:       loc,
			ID:        c.ident(n.ChildByFieldName("name")),
			Params:    c.params(n.ChildByFieldName("parameters")),
			Body:      c.block(n.ChildByFieldName("body")),
			Async:     hasToken(n, "async"),
			Generator: hasToken(n, "*"),
		}, n)
	case "class_declaration":
		cls := &jsast.ClassDeclaration{Loc: loc, ID: c.ident(n.ChildByFieldName("name"))}
		cls.SuperClass, cls.Body = c.class(n)

		return mark(c, cls, n)
	case "return_statement":
		return mark(c, &jsast.ReturnStatement{Loc: loc, Argument: c.expr(only(n))}, n)
	case "throw_statement":
		return mark(c, &jsast.ThrowStatement{Loc: loc, Argument: c.expr(only(n))}, n)
	case "if_statement":
		s := &jsast.IfStatement{
			Loc:        loc,
			Test:       c.expr(n.ChildByFieldName("condition")),
			Consequent: c.stmt(n.ChildByFieldName("consequence")),
		}

		if alt := n.ChildByFieldName("alternative"); alt != nil {
			s.Alternate = c.stmt(only(alt))
		}

		return mark(c, s, n)
	case "for_statement":
		return mark(c, &jsast.ForStatement{
			Loc:    loc,
			Init:   c.forInit(n.ChildByFieldName("initializer")),
			Test:   c.forExpr(n.ChildByFieldName("condition")),
			Update: c.forExpr(n.ChildByFieldName("increment")),
			Body:   c.stmt(n.ChildByFieldName("body")),
		}, n)
	case "for_in_statement":
		return c.forIn(n)
	case "while_statement":
		return mark(c, &jsast.WhileStatement{
			Loc:  loc,
			Test: c.expr(n.ChildByFieldName("condition")),
			Body: c.stmt(n.ChildByFieldName("body")),
		}, n)
	case "do_statement":
		return mark(c, &jsast.DoWhileStatement{
			Loc:  loc,
			Body: c.stmt(n.ChildByFieldName("body")),
			Test: c.expr(n.ChildByFieldName("condition")),
		}, n)
	case "break_statement":
		return mark(c, &jsast.BreakStatement{Loc: loc, Label: c.label(n)}, n)
	case "continue_statement":
		return mark(c, &jsast.ContinueStatement{Loc: loc, Label: c.label(n)}, n)
	case "labeled_statement":
		parts := named(n)
		if len(parts) < 2 {
			c.fail(n, "malformed labeled statement")
			return nil
		}

		return mark(c, &jsast.LabeledStatement{
			Loc:   loc,
			Label: c.text(parts[0]),
			Body:  c.stmt(parts[len(parts)-1]),
		}, n)
	case "debugger_statement":
		return mark(c, &jsast.DebuggerStatement{Loc: loc}, n)
	case "try_statement":
		return c.try(n)
	case "switch_statement":
		return c.switchStmt(n)
	case "import_statement":
		return c.importDecl(n)
	case "export_statement":
		return c.exportDecl(n)
	}

	c.fail(n, "unsupported syntax: %s", unsupported(n.Type()))

	return nil
}

func (c *converter) label(n *sitter.Node) string {
	if l := n.ChildByFieldName("label"); l != nil {
		return c.text(l)
	}

	return ""
}

func (c *converter) varDecl(n *sitter.Node) *jsast.VariableDeclaration {
	d := &jsast.VariableDeclaration{Loc: c.loc(n), Kind: jsast.Var}
	if k := n.ChildByFieldName("kind"); k != nil {
		d.Kind = jsast.VarKind(k.Type())
	}

	sp := jsast.Span{Start: start(n), End: end(n)}

	for i, ch := range named(n) {
		decl := &jsast.VariableDeclarator{Loc: c.loc(ch), ID: c.pattern(ch.ChildByFieldName("name"))}
		if v := ch.ChildByFieldName("value"); v != nil {
			decl.Init = c.expr(v)
		}

		dsp := jsast.Span{Start: start(ch), End: end(ch), Lead: start(ch)}
		if i == 0 {
			sp.Head = dsp.Start
		} else {
			dsp.Lead = sp.Tail
		}

		sp.Tail = dsp.End
		c.spans[decl] = dsp
		d.Declarations = append(d.Declarations, decl)
	}

	c.spans[d] = sp

	return d
}

// forInit converts the first clause of a for loop.
func (c *converter) forInit(n *sitter.Node) jsast.Node {
	if n == nil || !n.IsNamed() {
		return nil
	}

	switch n.Type() {
	case "lexical_declaration", "variable_declaration":
		return c.varDecl(n)
	case "empty_statement":
		return nil
	}

	if e := c.forExpr(n); e != nil {
		return e
	}

	return nil
}

func (c *converter) forExpr(n *sitter.Node) jsast.Expr {
	if n == nil || !n.IsNamed() {
		return nil
	}

	switch n.Type() {
	case "empty_statement":
		return nil
	case "expression_statement":
		return c.expr(only(n))
	}

	return c.expr(n)
}

// forIn converts both `for (left in right)` and `for (left of right)`.
func (c *converter) forIn(n *sitter.Node) jsast.Stmt {
	left := n.ChildByFieldName("left")
	if left == nil {
		c.fail(n, "malformed for statement")
		return nil
	}

	var head jsast.Node

	if k := n.ChildByFieldName("kind"); k != nil {
		decl := &jsast.VariableDeclarator{Loc: c.loc(left), ID: c.pattern(left)}
		declEnd := end(left)

		if v := n.ChildByFieldName("value"); v != nil {
			decl.Init = c.expr(v)
			declEnd = end(v)
		}

		c.spans[decl] = jsast.Span{Start: start(left), End: declEnd, Lead: start(left)}

		vd := &jsast.VariableDeclaration{
			Loc:          c.loc(k),
			Kind:         jsast.VarKind(k.Type()),
			Declarations: []*jsast.VariableDeclarator{decl},
		}
		c.spans[vd] = jsast.Span{Start: start(k), End: declEnd, Head: start(left), Tail: declEnd}
		head = vd
	} else if p := c.pattern(left); p != nil {
		head = p
	}

	right := c.expr(n.ChildByFieldName("right"))
	body := c.stmt(n.ChildByFieldName("body"))

	if op := n.ChildByFieldName("operator"); op != nil && op.Type() == "of" {
		return mark(c, &jsast.ForOfStatement{
			Loc:   c.loc(n),
			Left:  head,
			Right: right,
			Body:  body,
			Await: hasToken(n, "await"),
		}, n)
	}

	return mark(c, &jsast.ForInStatement{Loc: c.loc(n), Left: head, Right: right, Body: body}, n)
}

func (c *converter) try(n *sitter.Node) jsast.Stmt {
	s := &jsast.TryStatement{Loc: c.loc(n), Block: c.block(n.ChildByFieldName("body"))}

	if h := n.ChildByFieldName("handler"); h != nil {
		clause := &jsast.CatchClause{Loc: c.loc(h), Body: c.block(h.ChildByFieldName("body"))}
		if p := h.ChildByFieldName("parameter"); p != nil {
			clause.Param = c.pattern(p)
		}

		s.Handler = mark(c, clause, h)
	}

	if f := n.ChildByFieldName("finalizer"); f != nil {
		s.Finalizer = c.block(f.ChildByFieldName("body"))
	}

	return mark(c, s, n)
}

func (c *converter) switchStmt(n *sitter.Node) jsast.Stmt {
	s := &jsast.SwitchStatement{Loc: c.loc(n), Discriminant: c.expr(n.ChildByFieldName("value"))}

	body := n.ChildByFieldName("body")
	if body == nil {
		return mark(c, s, n)
	}

	for _, ch := range named(body) {
		sc := &jsast.SwitchCase{Loc: c.loc(ch)}
		if ch.Type() == "switch_case" {
			sc.Test = c.expr(ch.ChildByFieldName("value"))
		}

		for _, st := range field(ch, "body") {
			if st.IsExtra() {
				continue
			}

			if converted := c.stmt(st); converted != nil {
				sc.Consequent = append(sc.Consequent, converted)
			}
		}

		s.Cases = append(s.Cases, mark(c, sc, ch))
	}

	return mark(c, s, n)
}

func (c *converter) importDecl(n *sitter.Node) jsast.Stmt {
	d := &jsast.ImportDeclaration{Loc: c.loc(n)}

	if src := n.ChildByFieldName("source"); src != nil {
		if lit, ok := c.expr(src).(*jsast.StringLiteral); ok {
			d.Source = lit
		}
	}

	for _, ch := range named(n) {
		if ch.Type() != "import_clause" {
			continue
		}

		for _, part := range named(ch) {
			switch part.Type() {
			case "identifier":
				d.Specifiers = append(d.Specifiers, mark(c, &jsast.ImportDefaultSpecifier{
					Loc:   c.loc(part),
					Local: c.ident(part),
				}, part))
			case "namespace_import":
				d.Specifiers = append(d.Specifiers, mark(c, &jsast.ImportNamespaceSpecifier{
					Loc:   c.loc(part),
					Local: c.ident(only(part)),
				}, part))
			case "named_imports":
				for _, spec := range named(part) {
					d.Specifiers = append(d.Specifiers, c.importSpec(spec))
				}
			}
		}
	}

	return mark(c, d, n)
}

func (c *converter) importSpec(n *sitter.Node) jsast.ImportSpec {
	name := n.ChildByFieldName("name")
	spec := &jsast.ImportSpecifier{Loc: c.loc(n), Imported: c.moduleName(name)}

	if alias := n.ChildByFieldName("alias"); alias != nil {
		spec.Local = c.ident(alias)
	} else {
		spec.Local = c.ident(name)
	}

	return mark(c, spec, n)
}

// moduleName returns an import or export name, which may be a string.
func (c *converter) moduleName(n *sitter.Node) string {
	if n == nil {
		return ""
	}

	if n.Type() == "string" {
		return c.stringValue(n)
	}

	return c.text(n)
}

func (c *converter) exportDecl(n *sitter.Node) jsast.Stmt {
	decl := n.ChildByFieldName("declaration")

	if hasToken(n, "default") {
		d := &jsast.ExportDefaultDeclaration{Loc: c.loc(n)}

		if decl != nil {
			if s := c.stmt(decl); s != nil {
				d.Declaration = s
			}
		} else if e := c.expr(n.ChildByFieldName("value")); e != nil {
			d.Declaration = e
		}

		return mark(c, d, n)
	}

	d := &jsast.ExportNamedDeclaration{Loc: c.loc(n)}
	if decl != nil {
		d.Declaration = c.stmt(decl)
	}

	return mark(c, d, n)
}
