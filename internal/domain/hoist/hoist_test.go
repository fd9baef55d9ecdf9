package hoist_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mockhoist.dev/pkg/mockhoist/internal/domain/hoist"
	"mockhoist.dev/pkg/mockhoist/internal/jsast"
	"mockhoist.dev/pkg/mockhoist/internal/jsast/parser"
	"mockhoist.dev/pkg/mockhoist/internal/jsast/printer"
)

func getterDecl(name string) string {
	return "function " + name + "() {\n" +
		"  const { jest } = require(\"@jest/globals\");\n" +
		"  " + name + " = () => jest;\n" +
		"  return jest;\n" +
		"}\n"
}

var getter = getterDecl("_getJestObj")

func parse(t *testing.T, src string) *jsast.Program {
	t.Helper()

	prog, err := parser.ParseFile("test.js", src)
	require.NoError(t, err)

	return prog
}

func render(t *testing.T, prog *jsast.Program) string {
	t.Helper()

	out, err := printer.Print(prog)
	require.NoError(t, err)

	return out
}

func apply(t *testing.T, src string) (string, hoist.Result) {
	t.Helper()

	prog := parse(t, src)
	res, err := hoist.Apply(prog, hoist.Options{})
	require.NoError(t, err)

	return render(t, prog), res
}

func applyErr(t *testing.T, src string) *hoist.Error {
	t.Helper()

	prog := parse(t, src)
	before := render(t, prog)

	_, err := hoist.Apply(prog, hoist.Options{})
	require.Error(t, err)
	assert.Equal(t, before, render(t, prog), "tree must be untouched on error")

	var herr *hoist.Error
	require.ErrorAs(t, err, &herr)

	return herr
}

func TestApply_HoistsCallsAboveOtherStatements(t *testing.T) {
	out, res := apply(t, "a();\njest.mock(\"x\");\nb();\njest.mock(\"y\");\n")

	assert.Equal(t, getter+
		"_getJestObj().mock(\"x\");\n"+
		"_getJestObj().mock(\"y\");\n"+
		"a();\n"+
		"b();\n", out)
	assert.Equal(t, hoist.Result{Getter: "_getJestObj", Rewritten: 2, HoistedCalls: 2}, res)
	assert.True(t, res.Changed())
}

func TestApply_NoJestCalls(t *testing.T) {
	src := "import x from \"x\";\nconst a = 1;\nx(a);\n"

	out, res := apply(t, src)

	assert.Equal(t, src, out)
	assert.False(t, res.Changed())
	assert.Empty(t, res.Getter)
}

func TestApply_Idempotent(t *testing.T) {
	src := "import { foo } from \"./foo\";\n" +
		"const mockValue = 1;\n" +
		"const pure = \"p\";\n" +
		"foo();\n" +
		"jest.mock(\"./foo\", () => ({ foo: mockValue, pure }));\n" +
		"describe(\"x\", () => {\n" +
		"  it(\"works\", () => {\n" +
		"    foo();\n" +
		"    jest.unmock(\"./bar\");\n" +
		"  });\n" +
		"});\n"

	once, _ := apply(t, src)
	twice, res := apply(t, once)

	assert.Equal(t, once, twice)
	assert.False(t, res.Changed())
}

func TestApply_MethodRules(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "mock with template literal",
			src:  "a();\njest.mock(`x`);\n",
			want: getter + "_getJestObj().mock(`x`);\na();\n",
		},
		{
			name: "mock with factory and options",
			src:  "a();\njest.mock(\"m\", () => ({}), { virtual: true });\n",
			want: getter + "_getJestObj().mock(\"m\", () => ({}), { virtual: true });\na();\n",
		},
		{
			name: "mock with function expression factory",
			src:  "a();\njest.mock(\"m\", function () {\n  return 1;\n});\n",
			want: getter + "_getJestObj().mock(\"m\", function () {\n  return 1;\n});\na();\n",
		},
		{
			name: "unmock and deepUnmock",
			src:  "a();\njest.unmock(\"x\");\njest.deepUnmock(\"y\");\n",
			want: getter + "_getJestObj().unmock(\"x\");\n_getJestObj().deepUnmock(\"y\");\na();\n",
		},
		{
			name: "automock toggles",
			src:  "a();\njest.enableAutomock();\njest.disableAutomock();\n",
			want: getter + "_getJestObj().enableAutomock();\n_getJestObj().disableAutomock();\na();\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _ := apply(t, tt.src)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestApply_LeavesLookalikesAlone(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "other object", src: "foo.mock(\"x\");\n"},
		{name: "computed method", src: "jest[\"mock\"](\"x\");\n"},
		{name: "optional call", src: "jest.mock?.(\"x\");\n"},
		{name: "optional member", src: "jest?.mock(\"x\");\n"},
		{name: "unknown method", src: "jest.fn();\n"},
		{name: "mock without arguments", src: "jest.mock();\n"},
		{name: "mock with identifier", src: "jest.mock(name);\n"},
		{name: "mock with identifier and factory", src: "const name = \"m\";\njest.mock(name, () => ({}));\n"},
		{name: "other object with invalid factory", src: "foo.mock(\"m\", 42);\n"},
		{name: "other object with impure factory", src: "foo.mock(\"m\", () => x);\n"},
		{name: "mock on a jest call result", src: "jest.fn().mock(\"m\", 42);\n"},
		{name: "unmock with template", src: "jest.unmock(`x`);\n"},
		{name: "unmock with two arguments", src: "jest.unmock(\"x\", \"y\");\n"},
		{name: "automock with argument", src: "jest.enableAutomock(true);\n"},
		{name: "not a statement", src: "const m = jest.mock(\"x\");\n"},
		{name: "bare jest", src: "jest;\n"},
		{name: "shadowed by parameter", src: "function t(jest) {\n  jest.mock(\"x\");\n}\n"},
		{name: "shadowed by declaration", src: "const jest = fake();\njest.mock(\"x\");\n"},
		{name: "namespace of another module", src: "import * as g from \"other\";\ng.jest.mock(\"x\");\n"},
		{name: "other export of globals", src: "import { expect } from \"@jest/globals\";\nexpect.mock(\"x\");\n"},
		{name: "chain with unknown tail", src: "jest.mock(\"a\").fn();\n"},
		{name: "chain with rejected head", src: "jest.mock(name).unmock(\"b\");\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, res := apply(t, tt.src)
			assert.Equal(t, tt.src, out)
			assert.False(t, res.Changed())
		})
	}
}

func TestApply_Chains(t *testing.T) {
	out, res := apply(t, "a();\njest.unmock(\"a\").mock(\"b\").enableAutomock();\n")

	assert.Equal(t, getter+"_getJestObj().unmock(\"a\").mock(\"b\").enableAutomock();\na();\n", out)
	assert.Equal(t, 1, res.Rewritten)
	assert.Equal(t, 1, res.HoistedCalls)
}

func TestApply_ImportedJest(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "named import",
			src:  "import { jest } from \"@jest/globals\";\na();\njest.mock(\"x\");\n",
			want: getter + "_getJestObj().mock(\"x\");\nimport { jest } from \"@jest/globals\";\na();\n",
		},
		{
			name: "aliased import",
			src:  "import { jest as j } from \"@jest/globals\";\na();\nj.mock(\"x\", () => j.fn());\n",
			want: getter + "_getJestObj().mock(\"x\", () => j.fn());\nimport { jest as j } from \"@jest/globals\";\na();\n",
		},
		{
			name: "namespace import",
			src:  "import * as g from \"@jest/globals\";\na();\ng.jest.mock(\"x\");\n",
			want: getter + "_getJestObj().mock(\"x\");\nimport * as g from \"@jest/globals\";\na();\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, res := apply(t, tt.src)
			assert.Equal(t, tt.want, out)
			assert.Equal(t, 1, res.Rewritten)
		})
	}
}

func TestApply_NestedBlocks(t *testing.T) {
	src := "function f() {\n" +
		"  a();\n" +
		"  jest.mock(\"x\");\n" +
		"  if (c) {\n" +
		"    b();\n" +
		"    jest.mock(\"y\");\n" +
		"  }\n" +
		"}\n" +
		"if (d) jest.mock(\"z\");\n" +
		"e();\n"

	out, res := apply(t, src)

	assert.Equal(t, getter+
		"function f() {\n"+
		"  _getJestObj().mock(\"x\");\n"+
		"  a();\n"+
		"  if (c) {\n"+
		"    _getJestObj().mock(\"y\");\n"+
		"    b();\n"+
		"  }\n"+
		"}\n"+
		"if (d) _getJestObj().mock(\"z\");\n"+
		"e();\n", out)
	assert.Equal(t, 3, res.Rewritten)
	assert.Equal(t, 2, res.HoistedCalls)
}

func TestApply_KeepsComments(t *testing.T) {
	out, _ := apply(t, "a(); // first\n/* factory */\njest.mock('m', () => ({})); // mocked\n")

	assert.Equal(t, getter+
		"/* factory */\n"+
		"_getJestObj().mock('m', () => ({})); // mocked\n"+
		"a(); // first\n", out)
}

func TestApply_UnhoistedStatementKeepsDeclarations(t *testing.T) {
	t.Run("nothing hoisted", func(t *testing.T) {
		src := "a();\nconst x = 1;\njest.mock(\"m\", () => x).fn();\n"

		out, res := apply(t, src)

		assert.Equal(t, src, out)
		assert.False(t, res.Changed())
		assert.Zero(t, res.HoistedVars)
	})

	t.Run("only declarations of hoisted calls move", func(t *testing.T) {
		out, res := apply(t, "a();\n"+
			"const x = 1;\n"+
			"const y = 2;\n"+
			"jest.mock(\"m\", () => x).fn();\n"+
			"jest.mock(\"n\", () => y);\n")

		assert.Equal(t, getter+
			"const y = 2;\n"+
			"_getJestObj().mock(\"n\", () => y);\n"+
			"a();\n"+
			"const x = 1;\n"+
			"jest.mock(\"m\", () => x).fn();\n", out)
		assert.Equal(t, 1, res.Rewritten)
		assert.Equal(t, 1, res.HoistedVars)
	})
}

func TestApply_GetterNameIsUnique(t *testing.T) {
	out, res := apply(t, "const _getJestObj = 1;\nconst _getJestObj2 = 2;\njest.mock(\"x\");\n")

	assert.Equal(t, "_getJestObj3", res.Getter)
	assert.Equal(t, getterDecl("_getJestObj3")+
		"_getJestObj3().mock(\"x\");\n"+
		"const _getJestObj = 1;\n"+
		"const _getJestObj2 = 2;\n", out)
}

func TestApply_KeepsDirectivesFirst(t *testing.T) {
	out, _ := apply(t, "\"use strict\";\na();\njest.mock(\"x\");\n")

	assert.Equal(t, "\"use strict\";\n"+getter+"_getJestObj().mock(\"x\");\na();\n", out)
}

func TestApply_FactoryReferences(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		want     string
		wantVars int
	}{
		{
			name: "mock prefix",
			src:  "const mockFoo = compute();\njest.mock(\"m\", () => mockFoo);\n",
			want: getter + "_getJestObj().mock(\"m\", () => mockFoo);\nconst mockFoo = compute();\n",
		},
		{
			name: "mock prefix is case insensitive",
			src:  "let MockFoo;\njest.mock(\"m\", () => MockFoo);\n",
			want: getter + "_getJestObj().mock(\"m\", () => MockFoo);\nlet MockFoo;\n",
		},
		{
			name: "coverage counters",
			src:  "jest.mock(\"m\", () => [__coverage__, cov_1x]);\n",
			want: getter + "_getJestObj().mock(\"m\", () => [__coverage__, cov_1x]);\n",
		},
		{
			name: "allow-listed globals",
			src:  "jest.mock(\"m\", () => ({ fn: jest.fn(), json: JSON, req: require(\"x\") }));\n",
			want: getter + "_getJestObj().mock(\"m\", () => ({ fn: jest.fn(), json: JSON, req: require(\"x\") }));\n",
		},
		{
			name: "factory locals and parameters",
			src: "jest.mock(\"m\", (a) => {\n" +
				"  const x = 1;\n" +
				"  function g(y) {\n" +
				"    return y + a;\n" +
				"  }\n" +
				"  return { x, g };\n" +
				"});\n",
			want: getter + "_getJestObj().mock(\"m\", (a) => {\n" +
				"  const x = 1;\n" +
				"  function g(y) {\n" +
				"    return y + a;\n" +
				"  }\n" +
				"  return { x, g };\n" +
				"});\n",
		},
		{
			name: "pure constant is hoisted",
			src:  "a();\nconst value = 42;\njest.mock(\"m\", () => value);\n",
			want: getter + "const value = 42;\n_getJestObj().mock(\"m\", () => value);\na();\n",
			wantVars: 1,
		},
		{
			name: "pure var is hoisted",
			src:  "a();\nvar value = { n: 1, s: `t` };\njest.mock(\"m\", () => value);\n",
			want: getter + "var value = { n: 1, s: `t` };\n_getJestObj().mock(\"m\", () => value);\na();\n",
			wantVars: 1,
		},
		{
			name: "multi declarator is split",
			src:  "const a = 1, b = compute();\njest.mock(\"m\", () => a);\n",
			want: getter + "const a = 1;\n_getJestObj().mock(\"m\", () => a);\nconst b = compute();\n",
			wantVars: 1,
		},
		{
			name: "hoisted constant used later",
			src:  "const value = \"v\";\nuse(value);\njest.mock(\"m\", () => value);\nuse(value);\n",
			want: getter + "const value = \"v\";\n_getJestObj().mock(\"m\", () => value);\nuse(value);\nuse(value);\n",
			wantVars: 1,
		},
		{
			name: "jest import inside factory",
			src:  "import { jest as j } from \"@jest/globals\";\njest.mock(\"m\", () => j.fn());\n",
			want: getter + "_getJestObj().mock(\"m\", () => j.fn());\nimport { jest as j } from \"@jest/globals\";\n",
		},
		{
			name: "constant in nested block",
			src:  "test(\"t\", () => {\n  a();\n  const v = null;\n  jest.mock(\"m\", () => v);\n});\n",
			want: getter + "test(\"t\", () => {\n  const v = null;\n  _getJestObj().mock(\"m\", () => v);\n  a();\n});\n",
			wantVars: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, res := apply(t, tt.src)

			assert.Equal(t, tt.want, out)
			assert.Equal(t, tt.wantVars, res.HoistedVars)
		})
	}
}

func TestApply_OutOfScopeReference(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantName string
		wantPos  jsast.Pos
	}{
		{
			name:     "impure initializer",
			src:      "const value = compute();\njest.mock(\"m\", () => value);\n",
			wantName: "value",
			wantPos:  jsast.Pos{Line: 2, Col: 22},
		},
		{
			name:     "reassigned variable",
			src:      "let v = 1;\nv = 2;\njest.mock(\"m\", () => v);\n",
			wantName: "v",
			wantPos:  jsast.Pos{Line: 3, Col: 22},
		},
		{
			name:     "declaration without initializer",
			src:      "let v;\njest.mock(\"m\", () => v);\n",
			wantName: "v",
			wantPos:  jsast.Pos{Line: 2, Col: 22},
		},
		{
			name:     "unknown global",
			src:      "jest.mock(\"m\", () => someGlobal);\n",
			wantName: "someGlobal",
			wantPos:  jsast.Pos{Line: 1, Col: 22},
		},
		{
			name:     "binding of an outer scope",
			src:      "const v = 1;\nfunction f() {\n  jest.mock(\"m\", () => v);\n}\n",
			wantName: "v",
			wantPos:  jsast.Pos{Line: 3, Col: 24},
		},
		{
			name:     "assignment inside factory",
			src:      "let count = 0;\njest.mock(\"m\", () => {\n  count = 1;\n});\n",
			wantName: "count",
			wantPos:  jsast.Pos{Line: 3, Col: 3},
		},
		{
			name:     "variable declared in a for head",
			src:      "for (const v = 1; ; ) {\n  jest.mock(\"m\", () => v);\n}\n",
			wantName: "v",
			wantPos:  jsast.Pos{Line: 2, Col: 24},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			herr := applyErr(t, tt.src)

			assert.Equal(t, hoist.OutOfScopeReference, herr.Kind)
			assert.Equal(t, tt.wantName, herr.Name)
			assert.Equal(t, tt.wantPos, herr.Pos)
			assert.True(t, errors.Is(herr, hoist.ErrOutOfScopeReference))
			assert.False(t, errors.Is(herr, hoist.ErrInvalidFactoryArgument))
			assert.Contains(t, herr.Message, "Invalid variable access: "+tt.wantName)
			assert.Contains(t, herr.Message, "prefixed with `mock`")
		})
	}
}

func TestApply_InvalidFactoryArgument(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantPos jsast.Pos
	}{
		{name: "number", src: "jest.mock(\"m\", 42);\n", wantPos: jsast.Pos{Line: 1, Col: 16}},
		{name: "identifier", src: "jest.mock(\"m\", factory, {});\n", wantPos: jsast.Pos{Line: 1, Col: 16}},
		{name: "inside chain", src: "jest.unmock(\"a\").mock(\"m\", {});\n", wantPos: jsast.Pos{Line: 1, Col: 28}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			herr := applyErr(t, tt.src)

			assert.Equal(t, hoist.InvalidFactoryArgument, herr.Kind)
			assert.Equal(t, tt.wantPos, herr.Pos)
			assert.ErrorIs(t, herr, hoist.ErrInvalidFactoryArgument)
			assert.Equal(t, "The second argument of `jest.mock` must be an inline function.", herr.Message)
		})
	}
}

func TestError_Error(t *testing.T) {
	err := &hoist.Error{Kind: hoist.InvalidFactoryArgument, Pos: jsast.Pos{Line: 3, Col: 7}, Message: "boom"}
	assert.Equal(t, "3:7: boom", err.Error())

	err.Pos = jsast.Pos{}
	assert.Equal(t, "boom", err.Error())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "InvalidFactoryArgument", hoist.InvalidFactoryArgument.String())
	assert.Equal(t, "OutOfScopeReference", hoist.OutOfScopeReference.String())
	assert.Equal(t, "Kind(9)", hoist.Kind(9).String())
}

func TestAllowedIdentifiers(t *testing.T) {
	ids := hoist.AllowedIdentifiers()

	assert.IsNonDecreasing(t, ids)
	assert.Contains(t, ids, "jest")
	assert.Contains(t, ids, "require")
	assert.Contains(t, ids, "__dirname")
	assert.NotContains(t, ids, "window")

	ids[0] = "mutated"
	assert.NotEqual(t, "mutated", hoist.AllowedIdentifiers()[0])
}
