package hoist

import (
	"mockhoist.dev/pkg/mockhoist/internal/jsast"
)

// rule decides whether a call with the given arguments may be hoisted.
type rule func(args []jsast.Expr) (bool, error)

// newRules returns the method table. Methods missing from it never hoist.
func (t *transform) newRules() map[string]rule {
	return map[string]rule{
		"mock":            t.mockRule,
		"unmock":          singleStringArgument,
		"deepUnmock":      singleStringArgument,
		"enableAutomock":  noArguments,
		"disableAutomock": noArguments,
	}
}

// mockRule accepts a module name literal alone, or a module name literal
// followed by an inline factory and an optional options argument. The
// factory must pass the free-variable check.
func (t *transform) mockRule(args []jsast.Expr) (bool, error) {
	switch len(args) {
	case 1:
		return jsast.IsLiteral(args[0]), nil
	case 2, 3:
		if !jsast.IsLiteral(args[0]) {
			return false, nil
		}

		factory := args[1]
		if !jsast.IsFunction(factory) {
			return false, invalidFactory(factory)
		}

		if err := t.validateFactory(factory); err != nil {
			return false, err
		}

		return true, nil
	}

	return false, nil
}

func singleStringArgument(args []jsast.Expr) (bool, error) {
	if len(args) != 1 {
		return false, nil
	}

	_, ok := args[0].(*jsast.StringLiteral)

	return ok, nil
}

func noArguments(args []jsast.Expr) (bool, error) {
	return len(args) == 0, nil
}
