package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"mockhoist.dev/pkg/mockhoist/internal/jsast"
)

//nolint:cyclop,gocyclo,funlen // one case per expression kind
func (c *converter) expr(n *sitter.Node) jsast.Expr {
	if n == nil {
		return nil
	}

	loc := c.loc(n)

	switch n.Type() {
	case "parenthesized_expression":
		return c.expr(only(n))
	case "identifier", "undefined", "private_property_identifier", "property_identifier":
		return c.ident(n)
	case "this":
		return mark(c, &jsast.ThisExpression{Loc: loc}, n)
	case "super":
		return mark(c, &jsast.Super{Loc: loc}, n)
	case "true", "false":
		return mark(c, &jsast.BooleanLiteral{Loc: loc, Value: n.Type() == "true"}, n)
	case "null":
		return mark(c, &jsast.NullLiteral{Loc: loc}, n)
	case "number":
		raw := c.text(n)
		return mark(c, &jsast.NumericLiteral{Loc: loc, Value: numberValue(raw), Raw: raw}, n)
	case "string":
		return mark(c, &jsast.StringLiteral{Loc: loc, Value: c.stringValue(n)}, n)
	case "template_string":
		return c.template(n)
	case "regex":
		re := &jsast.RegExpLiteral{Loc: loc}
		if p := n.ChildByFieldName("pattern"); p != nil {
			re.Pattern = c.text(p)
		}

		if f := n.ChildByFieldName("flags"); f != nil {
			re.Flags = c.text(f)
		}

		return mark(c, re, n)
	case "array":
		arr := &jsast.ArrayExpression{Loc: loc}
		c.elements(n, func(el *sitter.Node) {
			if el == nil {
				arr.Elements = append(arr.Elements, nil)
				return
			}

			arr.Elements = append(arr.Elements, c.expr(el))
		})

		return mark(c, arr, n)
	case "object":
		return c.object(n)
	case "function_expression", "generator_function":
		return mark(c, &jsast.FunctionExpression{
			Loc:       loc,
			ID:        c.ident(n.ChildByFieldName("name")),
			Params:    c.params(n.ChildByFieldName("parameters")),
			Body:      c.block(n.ChildByFieldName("body")),
			Async:     hasToken(n, "async"),
			Generator: hasToken(n, "*"),
		}, n)
	case "arrow_function":
		return c.arrow(n)
	case "class":
		cls := &jsast.ClassExpression{Loc: loc, ID: c.ident(n.ChildByFieldName("name"))}
		cls.SuperClass, cls.Body = c.class(n)

		return mark(c, cls, n)
	case "call_expression":
		return c.call(n)
	case "new_expression":
		ne := &jsast.NewExpression{Loc: loc, Callee: c.expr(n.ChildByFieldName("constructor"))}
		if args := n.ChildByFieldName("arguments"); args != nil {
			ne.Arguments = c.args(args)
		}

		return mark(c, ne, n)
	case "member_expression":
		return mark(c, &jsast.MemberExpression{
			Loc:      loc,
			Object:   c.expr(n.ChildByFieldName("object")),
			Property: c.ident(n.ChildByFieldName("property")),
			Optional: n.ChildByFieldName("optional_chain") != nil,
		}, n)
	case "subscript_expression":
		return mark(c, &jsast.MemberExpression{
			Loc:      loc,
			Object:   c.expr(n.ChildByFieldName("object")),
			Property: c.expr(n.ChildByFieldName("index")),
			Computed: true,
			Optional: n.ChildByFieldName("optional_chain") != nil,
		}, n)
	case "await_expression":
		return mark(c, &jsast.AwaitExpression{Loc: loc, Argument: c.expr(only(n))}, n)
	case "yield_expression":
		return mark(c, &jsast.YieldExpression{Loc: loc, Argument: c.expr(only(n)), Delegate: hasToken(n, "*")}, n)
	case "spread_element":
		return mark(c, &jsast.SpreadElement{Loc: loc, Argument: c.expr(only(n))}, n)
	case "unary_expression":
		return mark(c, &jsast.UnaryExpression{
			Loc:      loc,
			Operator: c.operator(n),
			Argument: c.expr(n.ChildByFieldName("argument")),
		}, n)
	case "update_expression":
		arg := n.ChildByFieldName("argument")
		op := n.ChildByFieldName("operator")

		return mark(c, &jsast.UpdateExpression{
			Loc:      loc,
			Operator: c.operator(n),
			Prefix:   op != nil && arg != nil && start(op) < start(arg),
			Argument: c.expr(arg),
		}, n)
	case "binary_expression":
		op := c.operator(n)
		left := c.expr(n.ChildByFieldName("left"))
		right := c.expr(n.ChildByFieldName("right"))

		switch op {
		case "&&", "||", "??":
			return mark(c, &jsast.LogicalExpression{Loc: loc, Operator: op, Left: left, Right: right}, n)
		}

		return mark(c, &jsast.BinaryExpression{Loc: loc, Operator: op, Left: left, Right: right}, n)
	case "ternary_expression":
		return mark(c, &jsast.ConditionalExpression{
			Loc:        loc,
			Test:       c.expr(n.ChildByFieldName("condition")),
			Consequent: c.expr(n.ChildByFieldName("consequence")),
			Alternate:  c.expr(n.ChildByFieldName("alternative")),
		}, n)
	case "assignment_expression", "augmented_assignment_expression":
		op := "="
		if n.Type() == "augmented_assignment_expression" {
			op = c.operator(n)
		}

		return mark(c, &jsast.AssignmentExpression{
			Loc:      loc,
			Operator: op,
			Left:     c.pattern(n.ChildByFieldName("left")),
			Right:    c.expr(n.ChildByFieldName("right")),
		}, n)
	case "sequence_expression":
		seq := &jsast.SequenceExpression{Loc: loc}
		c.flatten(n, seq)

		return mark(c, seq, n)
	case "meta_property":
		meta, prop, _ := strings.Cut(strings.ReplaceAll(c.text(n), " ", ""), ".")
		return mark(c, &jsast.MetaProperty{Loc: loc, Meta: meta, Property: prop}, n)
	}

	c.fail(n, "unsupported syntax: %s", unsupported(n.Type()))

	return nil
}

func (c *converter) ident(n *sitter.Node) *jsast.Identifier {
	if n == nil {
		return nil
	}

	return mark(c, &jsast.Identifier{Loc: c.loc(n), Name: c.text(n)}, n)
}

func (c *converter) operator(n *sitter.Node) string {
	if op := n.ChildByFieldName("operator"); op != nil {
		return op.Type()
	}

	return ""
}

func (c *converter) flatten(n *sitter.Node, seq *jsast.SequenceExpression) {
	for _, ch := range named(n) {
		if ch.Type() == "sequence_expression" {
			c.flatten(ch, seq)
			continue
		}

		if e := c.expr(ch); e != nil {
			seq.Expressions = append(seq.Expressions, e)
		}
	}
}

// elements walks an array or array pattern, passing nil for each hole.
func (c *converter) elements(n *sitter.Node, fn func(*sitter.Node)) {
	filled := false

	for i := range int(n.ChildCount()) {
		ch := n.Child(i)

		switch {
		case ch.IsExtra():
		case ch.IsNamed():
			fn(ch)

			filled = true
		case ch.Type() == ",":
			if !filled {
				fn(nil)
			}

			filled = false
		}
	}
}

func (c *converter) args(n *sitter.Node) []jsast.Expr {
	list := named(n)
	out := make([]jsast.Expr, 0, len(list))

	for _, a := range list {
		if e := c.expr(a); e != nil {
			out = append(out, e)
		}
	}

	return out
}

func (c *converter) call(n *sitter.Node) jsast.Expr {
	loc := c.loc(n)
	fn := n.ChildByFieldName("function")
	args := n.ChildByFieldName("arguments")

	if args != nil && args.Type() == "template_string" {
		tagged := &jsast.TaggedTemplateExpression{Loc: loc, Tag: c.expr(fn)}
		if q, ok := c.template(args).(*jsast.TemplateLiteral); ok {
			tagged.Quasi = q
		}

		return mark(c, tagged, n)
	}

	var list []jsast.Expr
	if args != nil {
		list = c.args(args)
	}

	if fn != nil && fn.Type() == "import" {
		imp := &jsast.ImportExpression{Loc: loc}
		if len(list) > 0 {
			imp.Source = list[0]
		}

		if len(list) > 1 {
			imp.Options = list[1]
		}

		return mark(c, imp, n)
	}

	return mark(c, &jsast.CallExpression{
		Loc:       loc,
		Callee:    c.expr(fn),
		Arguments: list,
		Optional:  n.ChildByFieldName("optional_chain") != nil,
	}, n)
}

func (c *converter) template(n *sitter.Node) jsast.Expr {
	t := &jsast.TemplateLiteral{Loc: c.loc(n)}
	from := start(n) + 1

	for i := range int(n.ChildCount()) {
		ch := n.Child(i)
		if ch.Type() != "template_substitution" {
			continue
		}

		t.Quasis = append(t.Quasis, string(c.src[from:start(ch)]))
		t.Expressions = append(t.Expressions, c.expr(only(ch)))
		from = end(ch)
	}

	t.Quasis = append(t.Quasis, string(c.src[from:max(from, end(n)-1)]))

	return mark(c, t, n)
}

func (c *converter) arrow(n *sitter.Node) jsast.Expr {
	fn := &jsast.ArrowFunctionExpression{Loc: c.loc(n), Async: hasToken(n, "async")}

	if p := n.ChildByFieldName("parameter"); p != nil {
		fn.Params = []jsast.Pattern{c.ident(p)}
	} else {
		fn.Params = c.params(n.ChildByFieldName("parameters"))
	}

	body := n.ChildByFieldName("body")
	if body != nil && body.Type() == "statement_block" {
		fn.Body = c.block(body)
	} else {
		fn.ExprBody = c.expr(body)
	}

	return mark(c, fn, n)
}

func (c *converter) params(n *sitter.Node) []jsast.Pattern {
	if n == nil {
		return nil
	}

	list := named(n)
	out := make([]jsast.Pattern, 0, len(list))

	for _, p := range list {
		if pat := c.pattern(p); pat != nil {
			out = append(out, pat)
		}
	}

	return out
}

// key converts a property name and reports whether it was computed.
func (c *converter) key(n *sitter.Node) (jsast.Expr, bool) {
	if n == nil {
		return nil, false
	}

	if n.Type() == "computed_property_name" {
		return c.expr(only(n)), true
	}

	return c.expr(n), false
}

func (c *converter) object(n *sitter.Node) jsast.Expr {
	obj := &jsast.ObjectExpression{Loc: c.loc(n)}

	for _, ch := range named(n) {
		switch ch.Type() {
		case "pair":
			k, computed := c.key(ch.ChildByFieldName("key"))
			obj.Properties = append(obj.Properties, mark(c, &jsast.Property{
				Loc:      c.loc(ch),
				Key:      k,
				Value:    c.expr(ch.ChildByFieldName("value")),
				Computed: computed,
			}, ch))
		case "shorthand_property_identifier":
			id := c.ident(ch)
			obj.Properties = append(obj.Properties, mark(c, &jsast.Property{
				Loc:       id.Loc,
				Key:       id,
				Value:     id,
				Shorthand: true,
			}, ch))
		case "spread_element":
			obj.Properties = append(obj.Properties, c.expr(ch))
		case "method_definition":
			kind, k, computed, fn := c.method(ch)

			prop := &jsast.Property{Loc: c.loc(ch), Key: k, Value: fn, Computed: computed}
			if kind == "get" || kind == "set" {
				prop.Kind = kind
			} else {
				prop.Method = true
			}

			obj.Properties = append(obj.Properties, mark(c, prop, ch))
		default:
			c.fail(ch, "unsupported syntax: %s", unsupported(ch.Type()))
		}
	}

	return mark(c, obj, n)
}

// method converts a method_definition into its kind, key and function.
func (c *converter) method(n *sitter.Node) (string, jsast.Expr, bool, *jsast.FunctionExpression) {
	kind := "method"

	switch {
	case hasToken(n, "get"):
		kind = "get"
	case hasToken(n, "set"):
		kind = "set"
	}

	k, computed := c.key(n.ChildByFieldName("name"))
	params := n.ChildByFieldName("parameters")
	body := n.ChildByFieldName("body")

	fn := &jsast.FunctionExpression{
		Params:    c.params(params),
		Body:      c.block(body),
		Async:     hasToken(n, "async"),
		Generator: hasToken(n, "*"),
	}

	if params != nil && body != nil {
		fn.Loc = c.loc(params)
		c.spans[fn] = jsast.Span{Start: start(params), End: end(body)}
	}

	return kind, k, computed, fn
}

// class converts the heritage clause and body shared by class
// declarations and class expressions.
func (c *converter) class(n *sitter.Node) (jsast.Expr, []*jsast.ClassMember) {
	var super jsast.Expr

	for _, ch := range named(n) {
		if ch.Type() == "class_heritage" {
			super = c.expr(only(ch))
		}
	}

	body := n.ChildByFieldName("body")
	if body == nil {
		return super, nil
	}

	var members []*jsast.ClassMember

	for _, ch := range named(body) {
		m := &jsast.ClassMember{Loc: c.loc(ch), Static: hasToken(ch, "static")}

		switch ch.Type() {
		case "method_definition":
			var fn *jsast.FunctionExpression

			m.Kind, m.Key, m.Computed, fn = c.method(ch)
			m.Value = fn
		case "field_definition":
			m.Kind = "field"
			m.Key, m.Computed = c.key(ch.ChildByFieldName("property"))

			if v := c.expr(ch.ChildByFieldName("value")); v != nil {
				m.Value = v
			}
		case "class_static_block":
			m.Kind = "static"
			m.Static = true
			m.Value = c.block(ch.ChildByFieldName("body"))
		default:
			continue
		}

		members = append(members, mark(c, m, ch))
	}

	return super, members
}

//nolint:cyclop // one case per pattern kind
func (c *converter) pattern(n *sitter.Node) jsast.Pattern {
	if n == nil {
		return nil
	}

	loc := c.loc(n)

	switch n.Type() {
	case "identifier", "undefined", "shorthand_property_identifier_pattern":
		return c.ident(n)
	case "parenthesized_expression":
		return c.pattern(only(n))
	case "member_expression", "subscript_expression":
		if m, ok := c.expr(n).(*jsast.MemberExpression); ok {
			return m
		}

		return nil
	case "assignment_pattern":
		return mark(c, &jsast.AssignmentPattern{
			Loc:   loc,
			Left:  c.pattern(n.ChildByFieldName("left")),
			Right: c.expr(n.ChildByFieldName("right")),
		}, n)
	case "rest_pattern":
		return mark(c, &jsast.RestElement{Loc: loc, Argument: c.pattern(only(n))}, n)
	case "array_pattern":
		arr := &jsast.ArrayPattern{Loc: loc}
		c.elements(n, func(el *sitter.Node) {
			arr.Elements = append(arr.Elements, c.pattern(el))
		})

		return mark(c, arr, n)
	case "object_pattern":
		return c.objectPattern(n)
	}

	c.fail(n, "unsupported syntax: %s", unsupported(n.Type()))

	return nil
}

func (c *converter) objectPattern(n *sitter.Node) jsast.Pattern {
	obj := &jsast.ObjectPattern{Loc: c.loc(n)}

	for _, ch := range named(n) {
		loc := c.loc(ch)

		switch ch.Type() {
		case "pair_pattern":
			k, computed := c.key(ch.ChildByFieldName("key"))
			obj.Properties = append(obj.Properties, mark(c, &jsast.Property{
				Loc:      loc,
				Key:      k,
				Value:    c.pattern(ch.ChildByFieldName("value")),
				Computed: computed,
			}, ch))
		case "shorthand_property_identifier_pattern":
			id := c.ident(ch)
			obj.Properties = append(obj.Properties, mark(c, &jsast.Property{
				Loc:       loc,
				Key:       id,
				Value:     id,
				Shorthand: true,
			}, ch))
		case "object_assignment_pattern":
			left := c.ident(ch.ChildByFieldName("left"))
			if left == nil {
				c.fail(ch, "unsupported syntax: %s", unsupported(ch.Type()))
				continue
			}

			// The key repeats the binding name; it has no span of its own.
			key := &jsast.Identifier{Loc: left.Loc, Name: left.Name}
			def := mark(c, &jsast.AssignmentPattern{
				Loc:   loc,
				Left:  left,
				Right: c.expr(ch.ChildByFieldName("right")),
			}, ch)

			obj.Properties = append(obj.Properties, mark(c, &jsast.Property{
				Loc:       loc,
				Key:       key,
				Value:     def,
				Shorthand: true,
			}, ch))
		case "rest_pattern":
			obj.Properties = append(obj.Properties, c.pattern(ch))
		default:
			c.fail(ch, "unsupported syntax: %s", unsupported(ch.Type()))
		}
	}

	return mark(c, obj, n)
}
