// Package hoist rewrites calls on the jest object so that they run before
// anything else in their block.
//
// Apply walks every expression statement of a program. A statement whose
// expression is a (possibly chained) call on the jest object, through a
// method that accepts its arguments, is rewritten to reach the object
// through a lazily initialized getter, and the statement is then moved to
// the front of its enclosing block. Mock factories are checked for
// references to variables that would not yet be initialized once the call
// moves; constant variables with pure initializers are moved along with the
// call, anything else aborts the transform.
package hoist

import (
	"fmt"
	"log/slog"

	"mockhoist.dev/pkg/mockhoist/internal/jsast"
)

// Fixed names of the jest object and the module that exports it.
const (
	JestName      = "jest"
	GlobalsModule = "@jest/globals"
	getterBase    = "_getJestObj"
)

// Options configures one Apply call.
type Options struct {
	// Logger receives debug events. Nil discards them.
	Logger *slog.Logger
}

// Result summarizes the rewrite of one program.
type Result struct {
	// Getter is the name of the synthesized accessor, empty when no call
	// was rewritten.
	Getter string
	// Rewritten counts jest object references replaced by a getter call.
	Rewritten int
	// HoistedCalls counts statements moved to the front of their block.
	HoistedCalls int
	// HoistedVars counts declarators moved ahead of the calls that read them.
	HoistedVars int
}

// Changed reports whether the program was modified.
func (r Result) Changed() bool {
	return r.Rewritten > 0 || r.HoistedCalls > 0 || r.HoistedVars > 0
}

// transform is the state of one Apply call.
type transform struct {
	prog *jsast.Program
	info *jsast.Info
	log  *slog.Logger

	rules map[string]rule

	// hoistVars is the hoist-eligible declarator set. It only grows until
	// the hoister consumes it.
	hoistVars map[*jsast.VariableDeclarator]struct{}
	// pending holds the declarators read by the factories of the statement
	// being examined.
	pending []*jsast.VariableDeclarator
	// sites are the members whose object is the jest object reference.
	sites []*jsast.MemberExpression

	getter     string
	getterDecl *jsast.FunctionDeclaration
}

// Apply rewrites prog in place. When it returns an error, prog is left
// exactly as it was passed in.
func Apply(prog *jsast.Program, opts Options) (Result, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	t := &transform{
		prog:      prog,
		info:      jsast.Analyze(prog),
		log:       log,
		hoistVars: make(map[*jsast.VariableDeclarator]struct{}),
	}
	t.rules = t.newRules()

	if err := t.detect(); err != nil {
		log.Debug("transform rejected", "error", err)
		return Result{}, err
	}

	res := Result{Rewritten: len(t.sites)}

	if len(t.sites) == 0 {
		return res, nil
	}

	getter := t.getOrCreateGetter()
	for _, site := range t.sites {
		call := jsast.NewCall(jsast.NewIdentifier(getter))
		prog.Replace(site.Object, call)
		site.Object = call
	}

	res.Getter = getter

	calls, vars, err := t.hoistAll()
	if err != nil {
		return Result{}, fmt.Errorf("hoisting statements: %w", err)
	}

	res.HoistedCalls, res.HoistedVars = calls, vars

	log.Debug("transform applied",
		"getter", res.Getter,
		"rewritten", res.Rewritten,
		"hoistedCalls", res.HoistedCalls,
		"hoistedVars", res.HoistedVars)

	return res, nil
}

// detect visits every expression statement in document order and records
// the jest object reference of each hoistable call. Nothing is mutated
// here, so a terminal error leaves the tree untouched.
func (t *transform) detect() error {
	var err error

	jsast.Inspect(t.prog, func(n jsast.Node) bool {
		if err != nil {
			return false
		}

		stmt, ok := n.(*jsast.ExpressionStatement)
		if !ok {
			return true
		}

		t.pending = t.pending[:0]

		site, derr := t.extract(stmt.Expression)
		if derr != nil {
			err = derr
			return false
		}

		if site != nil {
			for _, d := range t.pending {
				t.hoistVars[d] = struct{}{}
			}

			t.sites = append(t.sites, site)
			t.log.Debug("hoistable call", "line", stmt.Loc.Line, "col", stmt.Loc.Col)
		}

		return true
	})

	return err
}
