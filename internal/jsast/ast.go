// Package jsast defines the JavaScript syntax tree that mockhoist rewrites,
// together with the traversal, scope and editing primitives the hoist core
// relies on.
//
// The node set follows ESTree naming for the subset of the language the
// parser accepts. Nodes are plain pointer structs; a node is never shared
// between two parents, so moving a statement means detaching it first.
package jsast

// Pos is a 1-based line/column pair. The zero value marks synthesized nodes.
type Pos struct {
	Line int
	Col  int
}

// IsValid reports whether p points into real source.
func (p Pos) IsValid() bool { return p.Line > 0 }

// Node is implemented by every tree node.
type Node interface {
	Type() NodeType
	Start() Pos
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Pattern is a binding or assignment target.
type Pattern interface {
	Node
	patternNode()
}

// VarKind is the declaration keyword of a VariableDeclaration.
type VarKind string

// Declaration keywords.
const (
	Var   VarKind = "var"
	Let   VarKind = "let"
	Const VarKind = "const"
)

// ---------------------------------------------------------------------------
// Statements

type (
	// Program is the root of a parsed file. Source and Spans are set by the
	// parser; a Program built by hand has neither.
	Program struct {
		Loc    Pos
		Body   []Stmt
		Source []byte
		Spans  map[Node]Span
	}

	// BlockStatement is a braced statement list.
	BlockStatement struct {
		Loc  Pos
		Body []Stmt
	}

	// EmptyStatement is a lone semicolon. The hoister also uses it as an anchor.
	EmptyStatement struct {
		Loc Pos
	}

	ExpressionStatement struct {
		Loc        Pos
		Expression Expr
	}

	VariableDeclaration struct {
		Loc          Pos
		Kind         VarKind
		Declarations []*VariableDeclarator
	}

	VariableDeclarator struct {
		Loc  Pos
		ID   Pattern
		Init Expr
	}

	FunctionDeclaration struct {
		Loc       Pos
		ID        *Identifier
		Params    []Pattern
		Body      *BlockStatement
		Async     bool
		Generator bool
	}

	ReturnStatement struct {
		Loc      Pos
		Argument Expr
	}

	IfStatement struct {
		Loc        Pos
		Test       Expr
		Consequent Stmt
		Alternate  Stmt
	}

	// ForStatement is a C-style loop. Init is a *VariableDeclaration, an Expr, or nil.
	ForStatement struct {
		Loc    Pos
		Init   Node
		Test   Expr
		Update Expr
		Body   Stmt
	}

	// ForInStatement iterates keys. Left is a *VariableDeclaration or a Pattern.
	ForInStatement struct {
		Loc   Pos
		Left  Node
		Right Expr
		Body  Stmt
	}

	// ForOfStatement iterates values. Left is a *VariableDeclaration or a Pattern.
	ForOfStatement struct {
		Loc   Pos
		Left  Node
		Right Expr
		Body  Stmt
		Await bool
	}

	WhileStatement struct {
		Loc  Pos
		Test Expr
		Body Stmt
	}

	DoWhileStatement struct {
		Loc  Pos
		Body Stmt
		Test Expr
	}

	BreakStatement struct {
		Loc   Pos
		Label string
	}

	ContinueStatement struct {
		Loc   Pos
		Label string
	}

	LabeledStatement struct {
		Loc   Pos
		Label string
		Body  Stmt
	}

	DebuggerStatement struct {
		Loc Pos
	}

	ThrowStatement struct {
		Loc      Pos
		Argument Expr
	}

	TryStatement struct {
		Loc       Pos
		Block     *BlockStatement
		Handler   *CatchClause
		Finalizer *BlockStatement
	}

	// CatchClause is the catch part of a try statement. Param may be nil.
	CatchClause struct {
		Loc   Pos
		Param Pattern
		Body  *BlockStatement
	}

	SwitchStatement struct {
		Loc          Pos
		Discriminant Expr
		Cases        []*SwitchCase
	}

	// SwitchCase is one case clause; Test is nil for default.
	SwitchCase struct {
		Loc        Pos
		Test       Expr
		Consequent []Stmt
	}

	ImportDeclaration struct {
		Loc        Pos
		Specifiers []ImportSpec
		Source     *StringLiteral
	}

	// ClassDeclaration is `class ID extends SuperClass { Body }`.
	ClassDeclaration struct {
		Loc        Pos
		ID         *Identifier
		SuperClass Expr
		Body       []*ClassMember
	}

	// ExportNamedDeclaration wraps `export <declaration>`. Declaration is nil
	// for export lists and re-exports.
	ExportNamedDeclaration struct {
		Loc         Pos
		Declaration Stmt
	}

	// ExportDefaultDeclaration wraps `export default <expr|function>`.
	ExportDefaultDeclaration struct {
		Loc         Pos
		Declaration Node
	}
)

// ClassMember is one element of a class body. Value is a
// *FunctionExpression for methods and accessors, an Expr or nil for fields,
// and a *BlockStatement for static blocks, which have no Key.
type ClassMember struct {
	Loc      Pos
	Kind     string // "method", "get", "set", "field" or "static"
	Key      Expr
	Value    Node
	Static   bool
	Computed bool
}

// ImportSpec is one of the three import specifier forms.
type ImportSpec interface {
	Node
	LocalName() *Identifier
	importSpec()
}

type (
	// ImportSpecifier is `{ imported as local }`.
	ImportSpecifier struct {
		Loc      Pos
		Imported string
		Local    *Identifier
	}

	// ImportDefaultSpecifier is `local` in `import local from "m"`.
	ImportDefaultSpecifier struct {
		Loc   Pos
		Local *Identifier
	}

	// ImportNamespaceSpecifier is `* as local`.
	ImportNamespaceSpecifier struct {
		Loc   Pos
		Local *Identifier
	}
)

// ---------------------------------------------------------------------------
// Expressions

type (
	Identifier struct {
		Loc  Pos
		Name string
	}

	StringLiteral struct {
		Loc   Pos
		Value string
	}

	// NumericLiteral keeps the source spelling in Raw for printing.
	NumericLiteral struct {
		Loc   Pos
		Value float64
		Raw   string
	}

	BooleanLiteral struct {
		Loc   Pos
		Value bool
	}

	NullLiteral struct {
		Loc Pos
	}

	RegExpLiteral struct {
		Loc     Pos
		Pattern string
		Flags   string
	}

	// TemplateLiteral holds len(Expressions)+1 raw quasis.
	TemplateLiteral struct {
		Loc         Pos
		Quasis      []string
		Expressions []Expr
	}

	// ArrayExpression elements are nil for holes.
	ArrayExpression struct {
		Loc      Pos
		Elements []Expr
	}

	// ObjectExpression properties are *Property or *SpreadElement.
	ObjectExpression struct {
		Loc        Pos
		Properties []Node
	}

	// Property is an object literal member or an object pattern member.
	// Value is an Expr in literals and a Pattern in patterns. Kind is "get"
	// or "set" for accessors and empty otherwise.
	Property struct {
		Loc       Pos
		Key       Expr
		Value     Node
		Kind      string
		Computed  bool
		Shorthand bool
		Method    bool
	}

	SpreadElement struct {
		Loc      Pos
		Argument Expr
	}

	FunctionExpression struct {
		Loc       Pos
		ID        *Identifier
		Params    []Pattern
		Body      *BlockStatement
		Async     bool
		Generator bool
	}

	// ArrowFunctionExpression has either a block Body or an expression ExprBody.
	ArrowFunctionExpression struct {
		Loc      Pos
		Params   []Pattern
		Body     *BlockStatement
		ExprBody Expr
		Async    bool
	}

	// TaggedTemplateExpression is tag`quasi`.
	TaggedTemplateExpression struct {
		Loc   Pos
		Tag   Expr
		Quasi *TemplateLiteral
	}

	// CallExpression is a call; Optional marks `callee?.()`.
	CallExpression struct {
		Loc       Pos
		Callee    Expr
		Arguments []Expr
		Optional  bool
	}

	NewExpression struct {
		Loc       Pos
		Callee    Expr
		Arguments []Expr
	}

	// MemberExpression is `object.property` or `object[property]`; Optional
	// marks the `?.` forms.
	MemberExpression struct {
		Loc      Pos
		Object   Expr
		Property Expr
		Computed bool
		Optional bool
	}

	UnaryExpression struct {
		Loc      Pos
		Operator string
		Argument Expr
	}

	UpdateExpression struct {
		Loc      Pos
		Operator string
		Prefix   bool
		Argument Expr
	}

	BinaryExpression struct {
		Loc      Pos
		Operator string
		Left     Expr
		Right    Expr
	}

	LogicalExpression struct {
		Loc      Pos
		Operator string
		Left     Expr
		Right    Expr
	}

	ConditionalExpression struct {
		Loc        Pos
		Test       Expr
		Consequent Expr
		Alternate  Expr
	}

	AssignmentExpression struct {
		Loc      Pos
		Operator string
		Left     Pattern
		Right    Expr
	}

	SequenceExpression struct {
		Loc         Pos
		Expressions []Expr
	}

	ThisExpression struct {
		Loc Pos
	}

	AwaitExpression struct {
		Loc      Pos
		Argument Expr
	}

	YieldExpression struct {
		Loc      Pos
		Argument Expr
		Delegate bool
	}

	ClassExpression struct {
		Loc        Pos
		ID         *Identifier
		SuperClass Expr
		Body       []*ClassMember
	}

	// MetaProperty is `new.target` or `import.meta`.
	MetaProperty struct {
		Loc      Pos
		Meta     string
		Property string
	}

	Super struct {
		Loc Pos
	}

	// ImportExpression is a dynamic `import(source)`.
	ImportExpression struct {
		Loc     Pos
		Source  Expr
		Options Expr
	}
)

// ---------------------------------------------------------------------------
// Patterns

type (
	// ObjectPattern properties are *Property (with Pattern values) or *RestElement.
	ObjectPattern struct {
		Loc        Pos
		Properties []Node
	}

	// ArrayPattern elements are nil for holes.
	ArrayPattern struct {
		Loc      Pos
		Elements []Pattern
	}

	AssignmentPattern struct {
		Loc   Pos
		Left  Pattern
		Right Expr
	}

	RestElement struct {
		Loc      Pos
		Argument Pattern
	}
)

// ---------------------------------------------------------------------------
// Marker methods

func (*BlockStatement) stmtNode()           {}
func (*EmptyStatement) stmtNode()           {}
func (*ExpressionStatement) stmtNode()      {}
func (*VariableDeclaration) stmtNode()      {}
func (*FunctionDeclaration) stmtNode()      {}
func (*ReturnStatement) stmtNode()          {}
func (*IfStatement) stmtNode()              {}
func (*ForStatement) stmtNode()             {}
func (*ForInStatement) stmtNode()           {}
func (*ForOfStatement) stmtNode()           {}
func (*WhileStatement) stmtNode()           {}
func (*DoWhileStatement) stmtNode()         {}
func (*BreakStatement) stmtNode()           {}
func (*ContinueStatement) stmtNode()        {}
func (*LabeledStatement) stmtNode()         {}
func (*DebuggerStatement) stmtNode()        {}
func (*ClassDeclaration) stmtNode()         {}
func (*ThrowStatement) stmtNode()           {}
func (*TryStatement) stmtNode()             {}
func (*SwitchStatement) stmtNode()          {}
func (*ImportDeclaration) stmtNode()        {}
func (*ExportNamedDeclaration) stmtNode()   {}
func (*ExportDefaultDeclaration) stmtNode() {}

func (*Identifier) exprNode()               {}
func (*StringLiteral) exprNode()            {}
func (*NumericLiteral) exprNode()           {}
func (*BooleanLiteral) exprNode()           {}
func (*NullLiteral) exprNode()              {}
func (*RegExpLiteral) exprNode()            {}
func (*TemplateLiteral) exprNode()          {}
func (*ArrayExpression) exprNode()          {}
func (*ObjectExpression) exprNode()         {}
func (*SpreadElement) exprNode()            {}
func (*FunctionExpression) exprNode()       {}
func (*ArrowFunctionExpression) exprNode()  {}
func (*TaggedTemplateExpression) exprNode() {}
func (*CallExpression) exprNode()           {}
func (*NewExpression) exprNode()            {}
func (*MemberExpression) exprNode()         {}
func (*UnaryExpression) exprNode()          {}
func (*UpdateExpression) exprNode()         {}
func (*BinaryExpression) exprNode()         {}
func (*LogicalExpression) exprNode()        {}
func (*ConditionalExpression) exprNode()    {}
func (*AssignmentExpression) exprNode()     {}
func (*SequenceExpression) exprNode()       {}
func (*ThisExpression) exprNode()           {}
func (*AwaitExpression) exprNode()          {}
func (*YieldExpression) exprNode()          {}
func (*ClassExpression) exprNode()          {}
func (*MetaProperty) exprNode()             {}
func (*Super) exprNode()                    {}
func (*ImportExpression) exprNode()         {}

func (*Identifier) patternNode()        {}
func (*MemberExpression) patternNode()  {}
func (*ObjectPattern) patternNode()     {}
func (*ArrayPattern) patternNode()      {}
func (*AssignmentPattern) patternNode() {}
func (*RestElement) patternNode()       {}

func (*ImportSpecifier) importSpec()          {}
func (*ImportDefaultSpecifier) importSpec()   {}
func (*ImportNamespaceSpecifier) importSpec() {}

// LocalName returns the binding introduced by the specifier.
func (s *ImportSpecifier) LocalName() *Identifier { return s.Local }

// LocalName returns the binding introduced by the specifier.
func (s *ImportDefaultSpecifier) LocalName() *Identifier { return s.Local }

// LocalName returns the binding introduced by the specifier.
func (s *ImportNamespaceSpecifier) LocalName() *Identifier { return s.Local }

// ---------------------------------------------------------------------------
// Helpers used by the hoist core

// IsLiteral reports whether e is a literal in the ESTree sense, template
// literals included.
func IsLiteral(e Expr) bool {
	switch e.(type) {
	case *StringLiteral, *NumericLiteral, *BooleanLiteral, *NullLiteral, *RegExpLiteral, *TemplateLiteral:
		return true
	}

	return false
}

// IsFunction reports whether e is a function or arrow function expression.
func IsFunction(e Expr) bool {
	switch e.(type) {
	case *FunctionExpression, *ArrowFunctionExpression:
		return true
	}

	return false
}

// NewIdentifier builds a synthesized identifier.
func NewIdentifier(name string) *Identifier {
	return &Identifier{Name: name}
}

// NewCall builds a synthesized call expression.
func NewCall(callee Expr, args ...Expr) *CallExpression {
	return &CallExpression{Callee: callee, Arguments: args}
}
