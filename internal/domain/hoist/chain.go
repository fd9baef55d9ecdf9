package hoist

import (
	"mockhoist.dev/pkg/mockhoist/internal/jsast"
)

// isJestObject reports whether e denotes the jest object: the unbound
// global, any local name of the `jest` export of the globals module, or
// `ns.jest` on a namespace import of that module.
func (t *transform) isJestObject(e jsast.Expr) bool {
	switch e := e.(type) {
	case *jsast.Identifier:
		if e.Name == JestName && t.info.Resolve(e) == nil {
			return true
		}

		return t.info.ReferencesImport(e, GlobalsModule, JestName)
	case *jsast.MemberExpression:
		if e.Computed || e.Optional {
			return false
		}

		prop, ok := e.Property.(*jsast.Identifier)
		if !ok || prop.Name != JestName {
			return false
		}

		return t.info.ReferencesImport(e.Object, GlobalsModule, "*")
	}

	return false
}

// extract returns the member expression whose object is the jest object
// reference when e is a hoistable call, nil otherwise. The receiver is
// resolved before the method rule runs, so rules only ever see calls made
// on the jest object. An error from a rule is terminal.
func (t *transform) extract(e jsast.Expr) (*jsast.MemberExpression, error) {
	call, ok := e.(*jsast.CallExpression)
	if !ok || call.Optional {
		return nil, nil
	}

	callee, ok := call.Callee.(*jsast.MemberExpression)
	if !ok || callee.Computed || callee.Optional {
		return nil, nil
	}

	method, ok := callee.Property.(*jsast.Identifier)
	if !ok {
		return nil, nil
	}

	site := callee
	if !t.isJestObject(callee.Object) {
		inner, err := t.extract(callee.Object)
		if err != nil || inner == nil {
			return nil, err
		}

		site = inner
	}

	accept, found := t.rules[method.Name]
	if !found {
		return nil, nil
	}

	ok, err := accept(call.Arguments)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, nil
	}

	return site, nil
}
