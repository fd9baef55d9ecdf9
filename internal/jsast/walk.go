package jsast

// Children returns the direct children of n in source order. Absent optional
// children (nil interfaces, nil pointers, array holes) are omitted.
//
//nolint:cyclop,gocyclo,funlen // one case per node type
func Children(n Node) []Node {
	var out []Node

	add := func(c Node) {
		if !isNil(c) {
			out = append(out, c)
		}
	}

	switch n := n.(type) {
	case *Program:
		for _, s := range n.Body {
			add(s)
		}
	case *BlockStatement:
		for _, s := range n.Body {
			add(s)
		}
	case *ExpressionStatement:
		add(n.Expression)
	case *VariableDeclaration:
		for _, d := range n.Declarations {
			add(d)
		}
	case *VariableDeclarator:
		add(n.ID)
		add(n.Init)
	case *FunctionDeclaration:
		add(n.ID)

		for _, p := range n.Params {
			add(p)
		}

		add(n.Body)
	case *ReturnStatement:
		add(n.Argument)
	case *IfStatement:
		add(n.Test)
		add(n.Consequent)
		add(n.Alternate)
	case *ForStatement:
		add(n.Init)
		add(n.Test)
		add(n.Update)
		add(n.Body)
	case *ForInStatement:
		add(n.Left)
		add(n.Right)
		add(n.Body)
	case *ForOfStatement:
		add(n.Left)
		add(n.Right)
		add(n.Body)
	case *WhileStatement:
		add(n.Test)
		add(n.Body)
	case *DoWhileStatement:
		add(n.Body)
		add(n.Test)
	case *ThrowStatement:
		add(n.Argument)
	case *TryStatement:
		add(n.Block)
		add(n.Handler)
		add(n.Finalizer)
	case *CatchClause:
		add(n.Param)
		add(n.Body)
	case *SwitchStatement:
		add(n.Discriminant)

		for _, c := range n.Cases {
			add(c)
		}
	case *SwitchCase:
		add(n.Test)

		for _, s := range n.Consequent {
			add(s)
		}
	case *ImportDeclaration:
		for _, s := range n.Specifiers {
			add(s)
		}

		add(n.Source)
	case *ImportSpecifier:
		add(n.Local)
	case *ImportDefaultSpecifier:
		add(n.Local)
	case *ImportNamespaceSpecifier:
		add(n.Local)
	case *LabeledStatement:
		add(n.Body)
	case *ClassDeclaration:
		add(n.ID)
		add(n.SuperClass)

		for _, m := range n.Body {
			add(m)
		}
	case *ClassExpression:
		add(n.ID)
		add(n.SuperClass)

		for _, m := range n.Body {
			add(m)
		}
	case *ClassMember:
		add(n.Key)
		add(n.Value)
	case *ExportNamedDeclaration:
		add(n.Declaration)
	case *ExportDefaultDeclaration:
		add(n.Declaration)
	case *TemplateLiteral:
		for _, e := range n.Expressions {
			add(e)
		}
	case *ArrayExpression:
		for _, e := range n.Elements {
			add(e)
		}
	case *ObjectExpression:
		for _, p := range n.Properties {
			add(p)
		}
	case *Property:
		add(n.Key)

		if !n.Shorthand || n.Key != n.Value {
			add(n.Value)
		}
	case *SpreadElement:
		add(n.Argument)
	case *FunctionExpression:
		add(n.ID)

		for _, p := range n.Params {
			add(p)
		}

		add(n.Body)
	case *ArrowFunctionExpression:
		for _, p := range n.Params {
			add(p)
		}

		add(n.Body)
		add(n.ExprBody)
	case *TaggedTemplateExpression:
		add(n.Tag)
		add(n.Quasi)
	case *CallExpression:
		add(n.Callee)

		for _, a := range n.Arguments {
			add(a)
		}
	case *NewExpression:
		add(n.Callee)

		for _, a := range n.Arguments {
			add(a)
		}
	case *MemberExpression:
		add(n.Object)
		add(n.Property)
	case *UnaryExpression:
		add(n.Argument)
	case *UpdateExpression:
		add(n.Argument)
	case *BinaryExpression:
		add(n.Left)
		add(n.Right)
	case *LogicalExpression:
		add(n.Left)
		add(n.Right)
	case *ConditionalExpression:
		add(n.Test)
		add(n.Consequent)
		add(n.Alternate)
	case *AssignmentExpression:
		add(n.Left)
		add(n.Right)
	case *SequenceExpression:
		for _, e := range n.Expressions {
			add(e)
		}
	case *AwaitExpression:
		add(n.Argument)
	case *YieldExpression:
		add(n.Argument)
	case *ImportExpression:
		add(n.Source)
		add(n.Options)
	case *ObjectPattern:
		for _, p := range n.Properties {
			add(p)
		}
	case *ArrayPattern:
		for _, e := range n.Elements {
			add(e)
		}
	case *AssignmentPattern:
		add(n.Left)
		add(n.Right)
	case *RestElement:
		add(n.Argument)
	}

	return out
}

// isNil reports whether n is a nil interface or an interface holding a nil pointer.
//
//nolint:cyclop // typed-nil checks for every optional child type
func isNil(n Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *Identifier:
		return v == nil
	case *BlockStatement:
		return v == nil
	case *CatchClause:
		return v == nil
	case *StringLiteral:
		return v == nil
	case *TemplateLiteral:
		return v == nil
	case *VariableDeclaration:
		return v == nil
	case *VariableDeclarator:
		return v == nil
	case *SwitchCase:
		return v == nil
	case *Property:
		return v == nil
	case *ClassMember:
		return v == nil
	}

	return false
}

// Inspect traverses the tree rooted at n in depth-first order, calling fn for
// every node including n. Children are skipped when fn returns false.
func Inspect(n Node, fn func(Node) bool) {
	if isNil(n) || !fn(n) {
		return
	}

	for _, c := range Children(n) {
		Inspect(c, fn)
	}
}

// Cursor is a position in a traversal: the current node and the chain of
// ancestors that led to it.
type Cursor struct {
	node   Node
	parent *Cursor
}

// Node returns the node at the cursor.
func (c *Cursor) Node() Node { return c.node }

// Parent returns the cursor of the parent node, or nil at the traversal root.
func (c *Cursor) Parent() *Cursor { return c.parent }

// StatementParent returns the nearest cursor, starting with c itself, whose
// node is a statement. It returns nil if the cursor is not inside a statement.
func (c *Cursor) StatementParent() *Cursor {
	for cur := c; cur != nil; cur = cur.parent {
		if _, ok := cur.node.(Stmt); ok {
			return cur
		}
	}

	return nil
}

// Traverse walks the descendants of root depth-first, in source order. Nodes
// whose type is in skip are neither visited nor descended into; root itself
// is never skipped and never passed to fn. When fn returns false the
// children of the current node are not visited.
//
// fn must not detach or insert nodes while the traversal is running; collect
// edits and apply them after Traverse returns.
func Traverse(root Node, skip []NodeType, fn func(c *Cursor) bool) {
	blocked := make(map[NodeType]bool, len(skip))
	for _, t := range skip {
		blocked[t] = true
	}

	rootCursor := &Cursor{node: root}

	var walk func(parent *Cursor)

	walk = func(parent *Cursor) {
		for _, child := range Children(parent.node) {
			if blocked[child.Type()] {
				continue
			}

			c := &Cursor{node: child, parent: parent}
			if fn(c) {
				walk(c)
			}
		}
	}

	walk(rootCursor)
}
