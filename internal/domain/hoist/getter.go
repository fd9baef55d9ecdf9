package hoist

import (
	"mockhoist.dev/pkg/mockhoist/internal/jsast"
)

// getOrCreateGetter returns the name of the jest object accessor, declaring
// it at the top of the program on first use.
func (t *transform) getOrCreateGetter() string {
	if t.getterDecl != nil {
		return t.getter
	}

	t.getter = t.info.UniqueName(getterBase)
	t.getterDecl = buildGetter(t.getter)

	if head := directivePrologue(t.prog); head != nil {
		// cannot fail, head is a direct child of the program
		_ = jsast.InsertAfter(t.prog, head, t.getterDecl)
	} else {
		jsast.Unshift(t.prog, t.getterDecl)
	}

	t.log.Debug("declared jest object getter", "name", t.getter)

	return t.getter
}

// buildGetter returns
//
//	function name() {
//	  const { jest } = require("@jest/globals");
//	  name = () => jest;
//	  return jest;
//	}
//
// The first call requires the globals module and replaces the accessor
// with a closure over the result.
func buildGetter(name string) *jsast.FunctionDeclaration {
	jestID := func() *jsast.Identifier { return jsast.NewIdentifier(JestName) }

	require := &jsast.VariableDeclaration{
		Kind: jsast.Const,
		Declarations: []*jsast.VariableDeclarator{{
			ID: &jsast.ObjectPattern{Properties: []jsast.Node{
				&jsast.Property{Key: jestID(), Value: jestID(), Shorthand: true},
			}},
			Init: jsast.NewCall(jsast.NewIdentifier("require"), &jsast.StringLiteral{Value: GlobalsModule}),
		}},
	}

	replace := &jsast.ExpressionStatement{
		Expression: &jsast.AssignmentExpression{
			Operator: "=",
			Left:     jsast.NewIdentifier(name),
			Right:    &jsast.ArrowFunctionExpression{ExprBody: jestID()},
		},
	}

	return &jsast.FunctionDeclaration{
		ID: jsast.NewIdentifier(name),
		Body: &jsast.BlockStatement{Body: []jsast.Stmt{
			require,
			replace,
			&jsast.ReturnStatement{Argument: jestID()},
		}},
	}
}

// directivePrologue returns the last leading string literal statement of
// prog, such as "use strict", or nil.
func directivePrologue(prog *jsast.Program) jsast.Stmt {
	var last jsast.Stmt

	for _, s := range prog.Body {
		es, ok := s.(*jsast.ExpressionStatement)
		if !ok {
			break
		}

		if _, ok := es.Expression.(*jsast.StringLiteral); !ok {
			break
		}

		last = s
	}

	return last
}
