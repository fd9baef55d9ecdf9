package jsast

// IsPure reports whether evaluating e can neither have side effects nor
// observe state that may change between the hoisted and the original
// position of an initializer.
//
// The predicate is conservative: literals, templates and operators over pure
// operands, function expressions, and array or object literals without
// spreads or computed keys. Identifiers are pure only when they name the
// globals undefined, NaN or Infinity, or a never-reassigned function
// declaration. Any other variable read is impure so that a moved
// initializer cannot observe a binding before its own declaration runs.
//
//nolint:cyclop // one case per expression kind
func (in *Info) IsPure(e Expr) bool {
	if isNil(e) {
		return true
	}

	switch e := e.(type) {
	case *StringLiteral, *NumericLiteral, *BooleanLiteral, *NullLiteral:
		return true
	case *FunctionExpression, *ArrowFunctionExpression:
		return true
	case *TemplateLiteral:
		return in.allPure(e.Expressions)
	case *Identifier:
		return in.pureIdentifier(e)
	case *ArrayExpression:
		for _, el := range e.Elements {
			if _, spread := el.(*SpreadElement); spread {
				return false
			}
		}

		return in.allPure(e.Elements)
	case *ObjectExpression:
		for _, p := range e.Properties {
			prop, ok := p.(*Property)
			if !ok || prop.Computed {
				return false
			}

			v, ok := prop.Value.(Expr)
			if !ok || !in.IsPure(v) {
				return false
			}
		}

		return true
	case *UnaryExpression:
		return e.Operator != "delete" && in.IsPure(e.Argument)
	case *BinaryExpression:
		return in.IsPure(e.Left) && in.IsPure(e.Right)
	case *LogicalExpression:
		return in.IsPure(e.Left) && in.IsPure(e.Right)
	case *ConditionalExpression:
		return in.IsPure(e.Test) && in.IsPure(e.Consequent) && in.IsPure(e.Alternate)
	case *SequenceExpression:
		return in.allPure(e.Expressions)
	}

	return false
}

func (in *Info) allPure(list []Expr) bool {
	for _, e := range list {
		if !in.IsPure(e) {
			return false
		}
	}

	return true
}

func (in *Info) pureIdentifier(id *Identifier) bool {
	b := in.Resolve(id)
	if b == nil {
		switch id.Name {
		case "undefined", "NaN", "Infinity":
			return true
		}

		return false
	}

	return b.Kind == FunctionBinding && b.Constant()
}
