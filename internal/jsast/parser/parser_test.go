package parser

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mockhoist.dev/pkg/mockhoist/internal/jsast"
)

func TestParseFile_Statements(t *testing.T) {
	src := "import { a } from \"a\";\n" +
		"export const b = 1;\n" +
		"async function f(x = 1, ...rest) {\n" +
		"  for (const k of rest) {\n" +
		"    await k?.run();\n" +
		"  }\n" +
		"}\n" +
		"let { c, d: [e] } = obj;\n" +
		"if (a) b(); else f();\n" +
		"const re = /x+/g;\n" +
		"const t = `v=${b}`;\n" +
		"class Box extends Base {\n" +
		"  static count = 0;\n" +
		"  get size() { return 1; }\n" +
		"}\n" +
		"outer: for (;;) { break outer; }\n"

	prog, err := ParseFile("f.test.js", src)
	require.NoError(t, err)

	want := []jsast.NodeType{
		jsast.ImportDeclarationType,
		jsast.ExportNamedDeclarationType,
		jsast.FunctionDeclarationType,
		jsast.VariableDeclarationType,
		jsast.IfStatementType,
		jsast.VariableDeclarationType,
		jsast.VariableDeclarationType,
		jsast.ClassDeclarationType,
		jsast.LabeledStatementType,
	}

	require.Len(t, prog.Body, len(want))

	for i, typ := range want {
		assert.Equal(t, typ, prog.Body[i].Type(), "statement %d", i)
	}

	cls, ok := prog.Body[7].(*jsast.ClassDeclaration)
	require.True(t, ok)
	assert.Equal(t, "Box", cls.ID.Name)
	require.Len(t, cls.Body, 2)
	assert.Equal(t, "field", cls.Body[0].Kind)
	assert.True(t, cls.Body[0].Static)
	assert.Equal(t, "get", cls.Body[1].Kind)
}

func TestParseFile_Literals(t *testing.T) {
	prog, err := ParseFile("f.test.js", "f('a\\'b', \"\\u0041\\x42\\n\", 0x10, 1_000, `x${y}z`, [1, , 2]);\n")
	require.NoError(t, err)

	stmt, ok := prog.Body[0].(*jsast.ExpressionStatement)
	require.True(t, ok)

	call, ok := stmt.Expression.(*jsast.CallExpression)
	require.True(t, ok)
	require.Len(t, call.Arguments, 6)

	assert.Equal(t, "a'b", call.Arguments[0].(*jsast.StringLiteral).Value)
	assert.Equal(t, "AB\n", call.Arguments[1].(*jsast.StringLiteral).Value)
	assert.InDelta(t, 16.0, call.Arguments[2].(*jsast.NumericLiteral).Value, 0)
	assert.InDelta(t, 1000.0, call.Arguments[3].(*jsast.NumericLiteral).Value, 0)

	tmpl := call.Arguments[4].(*jsast.TemplateLiteral)
	assert.Equal(t, []string{"x", "z"}, tmpl.Quasis)
	require.Len(t, tmpl.Expressions, 1)

	arr := call.Arguments[5].(*jsast.ArrayExpression)
	require.Len(t, arr.Elements, 3)
	assert.Nil(t, arr.Elements[1])
}

func TestParseFile_Positions(t *testing.T) {
	prog, err := ParseFile("f.test.js", "a();\n  jest.mock(\"m\");\n")
	require.NoError(t, err)

	stmt, ok := prog.Body[1].(*jsast.ExpressionStatement)
	require.True(t, ok)

	call, ok := stmt.Expression.(*jsast.CallExpression)
	require.True(t, ok)

	lit, ok := call.Arguments[0].(*jsast.StringLiteral)
	require.True(t, ok)
	assert.Equal(t, "m", lit.Value)
	assert.Equal(t, jsast.Pos{Line: 2, Col: 13}, lit.Loc)

	text, ok := prog.Text(lit)
	require.True(t, ok)
	assert.Equal(t, "\"m\"", text)
}

func TestParseFile_PositionsCountRunes(t *testing.T) {
	prog, err := ParseFile("f.test.js", "é(); ü();\n")
	require.NoError(t, err)
	require.Len(t, prog.Body, 2)
	assert.Equal(t, jsast.Pos{Line: 1, Col: 6}, prog.Body[1].Start())
}

func TestParseFile_Spans(t *testing.T) {
	src := "#!/usr/bin/env node\n" +
		"a(); // first\n" +
		"/* lead */\n" +
		"const x = 1, y = 2;\n"

	prog, err := ParseFile("f.test.js", src)
	require.NoError(t, err)
	require.Len(t, prog.Body, 2)

	root := prog.Spans[prog]
	assert.Equal(t, len("#!/usr/bin/env node"), root.Head)
	assert.Equal(t, len(src)-1, root.Tail)

	first := prog.Spans[prog.Body[0]]
	assert.Equal(t, root.Head, first.Lead)
	assert.Equal(t, "a(); // first", src[first.Start:first.Trail])

	second := prog.Spans[prog.Body[1]]
	assert.Equal(t, first.Trail, second.Lead)
	assert.Equal(t, "\n/* lead */\n", src[second.Lead:second.Start])

	decl, ok := prog.Body[1].(*jsast.VariableDeclaration)
	require.True(t, ok)
	require.Len(t, decl.Declarations, 2)
	assert.Equal(t, "x = 1", src[second.Head:prog.Spans[decl.Declarations[0]].End])
	assert.Equal(t, ", ", src[prog.Spans[decl.Declarations[1]].Lead:prog.Spans[decl.Declarations[1]].Start])
	assert.Equal(t, ";", src[second.Tail:second.End])
}

func TestParseFile_Errors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantLine int
	}{
		{name: "missing binding", src: "const = 1;\n", wantLine: 1},
		{name: "unterminated string", src: "a();\nb(\"open);\n"},
		{name: "unbalanced brace", src: "function f() {\n  a();\n"},
		{name: "jsx", src: "const el = <div />;\n", wantLine: 1},
		{name: "with statement", src: "with (o) { a(); }\n", wantLine: 1},
		{name: "unexpected token", src: "a(;\n", wantLine: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := ParseFile("bad.test.js", tt.src)
			require.Error(t, err)
			assert.Nil(t, prog)

			var perr *Error
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, "bad.test.js", perr.File)
			assert.Positive(t, perr.Line)
			assert.Positive(t, perr.Col)
			assert.Contains(t, err.Error(), "bad.test.js:")

			if tt.wantLine > 0 {
				assert.Equal(t, tt.wantLine, perr.Line)
			}
		})
	}
}

func TestParse_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Parse(ctx, "a.test.js", []byte("a();\n"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestError_Error(t *testing.T) {
	err := &Error{Line: 3, Col: 4, Msg: "boom"}
	assert.Equal(t, "3:4: boom", err.Error())
	assert.Equal(t, jsast.Pos{Line: 3, Col: 4}, err.Pos())

	err.File = "x.js"
	assert.Equal(t, "x.js:3:4: boom", err.Error())
}
