package printer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"mockhoist.dev/pkg/mockhoist/internal/jsast"
)

// gen lays out a node that has no source text. Children that do have
// source are still copied from it.
//
//nolint:cyclop,gocyclo,funlen // one case per node kind
func (p *printer) gen(n jsast.Node) {
	switch n := n.(type) {
	case *jsast.EmptyStatement:
		p.write(";")
	case *jsast.ExpressionStatement:
		p.node(n.Expression)
		p.write(";")
	case *jsast.ReturnStatement:
		p.write("return")

		if n.Argument != nil {
			p.write(" ")
			p.node(n.Argument)
		}

		p.write(";")
	case *jsast.VariableDeclaration:
		p.write(string(n.Kind) + " ")

		for i, d := range n.Declarations {
			if i > 0 {
				p.write(", ")
			}

			p.node(d)
		}

		p.write(";")
	case *jsast.VariableDeclarator:
		p.node(n.ID)

		if n.Init != nil {
			p.write(" = ")
			p.node(n.Init)
		}
	case *jsast.FunctionDeclaration:
		p.write("function")

		if n.Generator {
			p.write("*")
		}

		p.write(" ")

		if n.ID != nil {
			p.node(n.ID)
		}

		p.params(n.Params)
		p.write(" ")
		p.node(n.Body)
	case *jsast.BlockStatement:
		p.block(n.Body)
	case *jsast.Identifier:
		p.write(n.Name)
	case *jsast.StringLiteral:
		p.write(quote(n.Value))
	case *jsast.NumericLiteral:
		if n.Raw != "" {
			p.write(n.Raw)
		} else {
			p.write(strconv.FormatFloat(n.Value, 'g', -1, 64))
		}
	case *jsast.BooleanLiteral:
		p.write(strconv.FormatBool(n.Value))
	case *jsast.NullLiteral:
		p.write("null")
	case *jsast.ThisExpression:
		p.write("this")
	case *jsast.CallExpression:
		p.node(n.Callee)
		p.args(n.Arguments)
	case *jsast.MemberExpression:
		p.node(n.Object)

		if n.Computed {
			p.write("[")
			p.node(n.Property)
			p.write("]")
		} else {
			p.write(".")
			p.node(n.Property)
		}
	case *jsast.AssignmentExpression:
		p.node(n.Left)
		p.write(" " + n.Operator + " ")
		p.node(n.Right)
	case *jsast.ArrowFunctionExpression:
		if n.Async {
			p.write("async ")
		}

		p.params(n.Params)
		p.write(" => ")

		if n.Body != nil {
			p.node(n.Body)
		} else {
			p.node(n.ExprBody)
		}
	case *jsast.ObjectPattern:
		p.properties(n.Properties)
	case *jsast.ObjectExpression:
		p.properties(n.Properties)
	case *jsast.Property:
		p.node(n.Key)

		if !n.Shorthand {
			p.write(": ")
			p.node(n.Value)
		}
	default:
		p.fail(n)
	}
}

func (p *printer) block(list []jsast.Stmt) {
	if len(list) == 0 {
		p.write("{}")
		return
	}

	saved := p.indent
	p.indent += "  "

	p.write("{")

	for _, s := range list {
		p.write("\n" + p.indent)
		p.node(s)
	}

	p.indent = saved
	p.write("\n" + p.indent + "}")
}

func (p *printer) params(list []jsast.Pattern) {
	p.write("(")

	for i, param := range list {
		if i > 0 {
			p.write(", ")
		}

		p.node(param)
	}

	p.write(")")
}

func (p *printer) args(list []jsast.Expr) {
	p.write("(")

	for i, a := range list {
		if i > 0 {
			p.write(", ")
		}

		p.node(a)
	}

	p.write(")")
}

func (p *printer) properties(list []jsast.Node) {
	if len(list) == 0 {
		p.write("{}")
		return
	}

	p.write("{ ")

	for i, prop := range list {
		if i > 0 {
			p.write(", ")
		}

		p.node(prop)
	}

	p.write(" }")
}

// quote renders s as a double-quoted string literal.
func quote(s string) string {
	var b strings.Builder

	b.WriteByte('"')

	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\u2028', '\u2029':
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			if r < 0x20 || r == utf8.RuneError {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}

			b.WriteRune(r)
		}
	}

	b.WriteByte('"')

	return b.String()
}
