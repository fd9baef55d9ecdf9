package jsast

import (
	"errors"
	"slices"
)

// ErrNotInBlock is returned when an edit names a statement that is not a
// direct child of the block being edited.
var ErrNotInBlock = errors.New("statement is not a direct child of the block")

// Block is a node holding a statement list: *Program or *BlockStatement.
type Block interface {
	Node
	Statements() []Stmt
	SetStatements(list []Stmt)
}

// Statements returns the top-level statements.
func (p *Program) Statements() []Stmt { return p.Body }

// SetStatements replaces the top-level statements.
func (p *Program) SetStatements(list []Stmt) { p.Body = list }

// Statements returns the statements inside the braces.
func (b *BlockStatement) Statements() []Stmt { return b.Body }

// SetStatements replaces the statements inside the braces.
func (b *BlockStatement) SetStatements(list []Stmt) { b.Body = list }

// IndexOf returns the position of s in b, or -1.
func IndexOf(b Block, s Stmt) int {
	for i, cur := range b.Statements() {
		if cur == s {
			return i
		}
	}

	return -1
}

// Unshift prepends stmts to b.
func Unshift(b Block, stmts ...Stmt) {
	b.SetStatements(slices.Insert(b.Statements(), 0, stmts...))
}

// InsertBefore inserts stmts immediately before anchor.
func InsertBefore(b Block, anchor Stmt, stmts ...Stmt) error {
	i := IndexOf(b, anchor)
	if i < 0 {
		return ErrNotInBlock
	}

	b.SetStatements(slices.Insert(b.Statements(), i, stmts...))

	return nil
}

// InsertAfter inserts stmts immediately after anchor.
func InsertAfter(b Block, anchor Stmt, stmts ...Stmt) error {
	i := IndexOf(b, anchor)
	if i < 0 {
		return ErrNotInBlock
	}

	b.SetStatements(slices.Insert(b.Statements(), i+1, stmts...))

	return nil
}

// RemoveStmt detaches s from b.
func RemoveStmt(b Block, s Stmt) error {
	i := IndexOf(b, s)
	if i < 0 {
		return ErrNotInBlock
	}

	b.SetStatements(slices.Delete(b.Statements(), i, i+1))

	return nil
}

// RemoveDeclarator detaches decl from d and reports whether it was there.
// A declaration left without declarators must be removed by the caller.
func RemoveDeclarator(d *VariableDeclaration, decl *VariableDeclarator) bool {
	i := slices.Index(d.Declarations, decl)
	if i < 0 {
		return false
	}

	d.Declarations = slices.Delete(d.Declarations, i, i+1)

	return true
}
