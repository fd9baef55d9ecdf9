package hoist

import (
	"fmt"

	"mockhoist.dev/pkg/mockhoist/internal/jsast"
)

// nestedBlocks keeps the per-block traversal inside the block: calls and
// declarations in nested blocks are handled when that block is visited.
var nestedBlocks = []jsast.NodeType{jsast.BlockStatementType}

// hoistAll runs the hoister on the program and then on every block
// statement in document order. The getter body is left alone.
func (t *transform) hoistAll() (int, int, error) {
	var calls, vars int

	blocks := []jsast.Block{t.prog}

	jsast.Inspect(t.prog, func(n jsast.Node) bool {
		if n == jsast.Node(t.getterDecl) {
			return false
		}

		if b, ok := n.(*jsast.BlockStatement); ok {
			blocks = append(blocks, b)
		}

		return true
	})

	for _, b := range blocks {
		c, v, err := t.hoistBlock(b)
		if err != nil {
			return calls, vars, err
		}

		calls += c
		vars += v
	}

	return calls, vars, nil
}

// hoistBlock moves the getter call statements and eligible declarators that
// belong directly to b to its front: declarators first, then calls, each
// group in source order.
func (t *transform) hoistBlock(b jsast.Block) (int, int, error) {
	varsAnchor, callsAnchor := &jsast.EmptyStatement{}, &jsast.EmptyStatement{}

	if err := t.insertAnchors(b, varsAnchor, callsAnchor); err != nil {
		return 0, 0, err
	}

	stmts, decls := t.collect(b)

	for _, s := range stmts {
		if err := jsast.RemoveStmt(b, s); err != nil {
			return 0, 0, err
		}

		if err := jsast.InsertBefore(b, callsAnchor, s); err != nil {
			return 0, 0, err
		}
	}

	for _, d := range decls {
		if err := t.moveDeclarator(b, d, varsAnchor); err != nil {
			return 0, 0, err
		}
	}

	if err := jsast.RemoveStmt(b, varsAnchor); err != nil {
		return 0, 0, err
	}

	if err := jsast.RemoveStmt(b, callsAnchor); err != nil {
		return 0, 0, err
	}

	return len(stmts), len(decls), nil
}

// insertAnchors puts both anchors at the front of b. At the program root
// they go after the getter, or after the directive prologue when there is
// no getter.
func (t *transform) insertAnchors(b jsast.Block, anchors ...jsast.Stmt) error {
	if b != jsast.Block(t.prog) {
		jsast.Unshift(b, anchors...)
		return nil
	}

	var head jsast.Stmt
	if t.getterDecl != nil {
		head = t.getterDecl
	} else {
		head = directivePrologue(t.prog)
	}

	if head == nil {
		jsast.Unshift(b, anchors...)
		return nil
	}

	return jsast.InsertAfter(b, head, anchors...)
}

type varMove struct {
	decl        *jsast.VariableDeclarator
	declaration *jsast.VariableDeclaration
}

// collect finds, in visit order, the statements of b that call the getter
// and the eligible declarators whose declaration is a statement of b.
func (t *transform) collect(b jsast.Block) ([]jsast.Stmt, []varMove) {
	var (
		stmts []jsast.Stmt
		decls []varMove
	)

	seen := make(map[jsast.Stmt]struct{})

	jsast.Traverse(b, nestedBlocks, func(c *jsast.Cursor) bool {
		switch n := c.Node().(type) {
		case *jsast.CallExpression:
			if !t.callsGetter(n) {
				return true
			}

			sc := c.StatementParent()
			if sc == nil || sc.Parent() == nil || sc.Parent().Node() != jsast.Node(b) {
				return true
			}

			s, _ := sc.Node().(jsast.Stmt)
			if _, dup := seen[s]; dup {
				return true
			}

			seen[s] = struct{}{}
			stmts = append(stmts, s)
		case *jsast.VariableDeclarator:
			if _, ok := t.hoistVars[n]; !ok {
				return true
			}

			parent := c.Parent()
			if parent == nil || parent.Parent() == nil || parent.Parent().Node() != jsast.Node(b) {
				return true
			}

			if d, ok := parent.Node().(*jsast.VariableDeclaration); ok {
				decls = append(decls, varMove{decl: n, declaration: d})
			}
		}

		return true
	})

	return stmts, decls
}

func (t *transform) callsGetter(call *jsast.CallExpression) bool {
	if t.getter == "" {
		return false
	}

	id, ok := call.Callee.(*jsast.Identifier)

	return ok && id.Name == t.getter
}

// moveDeclarator moves m.decl right before anchor. A declaration holding
// only m.decl moves as a whole, with its comments; otherwise m.decl is
// detached and re-declared on its own with the same kind.
func (t *transform) moveDeclarator(b jsast.Block, m varMove, anchor jsast.Stmt) error {
	delete(t.hoistVars, m.decl)

	if len(m.declaration.Declarations) == 1 {
		if err := jsast.RemoveStmt(b, m.declaration); err != nil {
			return err
		}

		return jsast.InsertBefore(b, anchor, m.declaration)
	}

	if !jsast.RemoveDeclarator(m.declaration, m.decl) {
		return fmt.Errorf("declarator not found in its declaration: %w", jsast.ErrNotInBlock)
	}

	moved := &jsast.VariableDeclaration{
		Loc:          m.declaration.Loc,
		Kind:         m.declaration.Kind,
		Declarations: []*jsast.VariableDeclarator{m.decl},
	}

	return jsast.InsertBefore(b, anchor, moved)
}
