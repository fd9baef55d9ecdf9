package hoist

import (
	"mockhoist.dev/pkg/mockhoist/internal/jsast"
)

// validateFactory checks every variable the factory reads or writes. Once
// the call moves to the top of its block, anything the factory captures
// from the call's scope may not be initialized yet, so only names that are
// local to the factory, allow-listed globals, names following the mock
// convention, hoistable constants and the jest import itself are accepted.
//
// Hoistable constants are queued in t.pending; they join the eligible set
// only if the statement turns out to be hoisted.
func (t *transform) validateFactory(factory jsast.Expr) error {
	callScope := t.info.ScopeOf(factory)

	for _, id := range t.info.References(factory) {
		if t.resolvesInside(id, callScope) {
			continue
		}

		if t.acceptCaptured(id, callScope) {
			continue
		}

		t.log.Debug("out-of-scope reference in factory", "name", id.Name, "line", id.Loc.Line)

		return outOfScope(id)
	}

	return nil
}

// resolvesInside reports whether id is bound in a scope between its own
// scope and callScope, callScope excluded.
func (t *transform) resolvesInside(id *jsast.Identifier, callScope *jsast.Scope) bool {
	for s := t.info.ScopeOf(id); s != nil && s != callScope; s = s.Parent {
		if s.OwnBinding(id.Name) != nil {
			return true
		}
	}

	return false
}

func (t *transform) acceptCaptured(id *jsast.Identifier, callScope *jsast.Scope) bool {
	if t.info.Resolve(id) == nil && isAllowListed(id.Name) {
		return true
	}

	if isConventionName(id.Name) {
		return true
	}

	if callScope == nil {
		return false
	}

	b := callScope.OwnBinding(id.Name)
	if b == nil {
		return false
	}

	switch {
	case b.Declarator != nil:
		return t.markHoistable(b)
	case b.Kind == jsast.ImportBinding:
		return b.Import != nil && b.Import.Source != nil &&
			b.Import.Source.Value == GlobalsModule && b.Imported == JestName
	}

	return false
}

// markHoistable queues the declarator of b when it can move ahead of the
// calls without changing what it evaluates to.
func (t *transform) markHoistable(b *jsast.Binding) bool {
	d := b.Declarator
	if d.Init == nil || !b.Constant() || !t.info.IsPure(d.Init) {
		return false
	}

	switch t.info.DeclarationOwner(b.Declaration).(type) {
	case *jsast.Program, *jsast.BlockStatement:
	default:
		return false
	}

	t.pending = append(t.pending, d)

	return true
}
