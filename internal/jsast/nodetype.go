package jsast

// NodeType identifies the concrete type of a Node. Traversal blacklists are
// expressed in node types.
type NodeType uint8

// Node types, one per concrete node struct.
const (
	InvalidNode NodeType = iota
	ProgramType
	BlockStatementType
	EmptyStatementType
	ExpressionStatementType
	VariableDeclarationType
	VariableDeclaratorType
	FunctionDeclarationType
	ReturnStatementType
	IfStatementType
	ForStatementType
	ForInStatementType
	ForOfStatementType
	WhileStatementType
	DoWhileStatementType
	BreakStatementType
	ContinueStatementType
	ThrowStatementType
	TryStatementType
	CatchClauseType
	SwitchStatementType
	SwitchCaseType
	ImportDeclarationType
	ImportSpecifierType
	ImportDefaultSpecifierType
	ImportNamespaceSpecifierType
	ExportNamedDeclarationType
	ExportDefaultDeclarationType
	IdentifierType
	StringLiteralType
	NumericLiteralType
	BooleanLiteralType
	NullLiteralType
	RegExpLiteralType
	TemplateLiteralType
	ArrayExpressionType
	ObjectExpressionType
	PropertyType
	SpreadElementType
	FunctionExpressionType
	ArrowFunctionExpressionType
	TaggedTemplateExpressionType
	CallExpressionType
	NewExpressionType
	MemberExpressionType
	UnaryExpressionType
	UpdateExpressionType
	BinaryExpressionType
	LogicalExpressionType
	ConditionalExpressionType
	AssignmentExpressionType
	SequenceExpressionType
	ThisExpressionType
	AwaitExpressionType
	ObjectPatternType
	ArrayPatternType
	AssignmentPatternType
	RestElementType
	LabeledStatementType
	DebuggerStatementType
	ClassDeclarationType
	ClassMemberType
	YieldExpressionType
	ClassExpressionType
	MetaPropertyType
	SuperType
	ImportExpressionType
)

var nodeTypeNames = [...]string{
	InvalidNode:                  "Invalid",
	ProgramType:                  "Program",
	BlockStatementType:           "BlockStatement",
	EmptyStatementType:           "EmptyStatement",
	ExpressionStatementType:      "ExpressionStatement",
	VariableDeclarationType:      "VariableDeclaration",
	VariableDeclaratorType:       "VariableDeclarator",
	FunctionDeclarationType:      "FunctionDeclaration",
	ReturnStatementType:          "ReturnStatement",
	IfStatementType:              "IfStatement",
	ForStatementType:             "ForStatement",
	ForInStatementType:           "ForInStatement",
	ForOfStatementType:           "ForOfStatement",
	WhileStatementType:           "WhileStatement",
	DoWhileStatementType:         "DoWhileStatement",
	BreakStatementType:           "BreakStatement",
	ContinueStatementType:        "ContinueStatement",
	ThrowStatementType:           "ThrowStatement",
	TryStatementType:             "TryStatement",
	CatchClauseType:              "CatchClause",
	SwitchStatementType:          "SwitchStatement",
	SwitchCaseType:               "SwitchCase",
	ImportDeclarationType:        "ImportDeclaration",
	ImportSpecifierType:          "ImportSpecifier",
	ImportDefaultSpecifierType:   "ImportDefaultSpecifier",
	ImportNamespaceSpecifierType: "ImportNamespaceSpecifier",
	ExportNamedDeclarationType:   "ExportNamedDeclaration",
	ExportDefaultDeclarationType: "ExportDefaultDeclaration",
	IdentifierType:               "Identifier",
	StringLiteralType:            "StringLiteral",
	NumericLiteralType:           "NumericLiteral",
	BooleanLiteralType:           "BooleanLiteral",
	NullLiteralType:              "NullLiteral",
	RegExpLiteralType:            "RegExpLiteral",
	TemplateLiteralType:          "TemplateLiteral",
	ArrayExpressionType:          "ArrayExpression",
	ObjectExpressionType:         "ObjectExpression",
	PropertyType:                 "Property",
	SpreadElementType:            "SpreadElement",
	FunctionExpressionType:       "FunctionExpression",
	ArrowFunctionExpressionType:  "ArrowFunctionExpression",
	TaggedTemplateExpressionType: "TaggedTemplateExpression",
	CallExpressionType:           "CallExpression",
	NewExpressionType:            "NewExpression",
	MemberExpressionType:         "MemberExpression",
	UnaryExpressionType:          "UnaryExpression",
	UpdateExpressionType:         "UpdateExpression",
	BinaryExpressionType:         "BinaryExpression",
	LogicalExpressionType:        "LogicalExpression",
	ConditionalExpressionType:    "ConditionalExpression",
	AssignmentExpressionType:     "AssignmentExpression",
	SequenceExpressionType:       "SequenceExpression",
	ThisExpressionType:           "ThisExpression",
	AwaitExpressionType:          "AwaitExpression",
	ObjectPatternType:            "ObjectPattern",
	ArrayPatternType:             "ArrayPattern",
	AssignmentPatternType:        "AssignmentPattern",
	RestElementType:              "RestElement",
	LabeledStatementType:         "LabeledStatement",
	DebuggerStatementType:        "DebuggerStatement",
	ClassDeclarationType:         "ClassDeclaration",
	ClassMemberType:              "ClassMember",
	YieldExpressionType:          "YieldExpression",
	ClassExpressionType:          "ClassExpression",
	MetaPropertyType:             "MetaProperty",
	SuperType:                    "Super",
	ImportExpressionType:         "ImportExpression",
}

func (t NodeType) String() string {
	if int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}

	return "Invalid"
}

func (*Program) Type() NodeType                  { return ProgramType }
func (*BlockStatement) Type() NodeType           { return BlockStatementType }
func (*EmptyStatement) Type() NodeType           { return EmptyStatementType }
func (*ExpressionStatement) Type() NodeType      { return ExpressionStatementType }
func (*VariableDeclaration) Type() NodeType      { return VariableDeclarationType }
func (*VariableDeclarator) Type() NodeType       { return VariableDeclaratorType }
func (*FunctionDeclaration) Type() NodeType      { return FunctionDeclarationType }
func (*ReturnStatement) Type() NodeType          { return ReturnStatementType }
func (*IfStatement) Type() NodeType              { return IfStatementType }
func (*ForStatement) Type() NodeType             { return ForStatementType }
func (*ForInStatement) Type() NodeType           { return ForInStatementType }
func (*ForOfStatement) Type() NodeType           { return ForOfStatementType }
func (*WhileStatement) Type() NodeType           { return WhileStatementType }
func (*DoWhileStatement) Type() NodeType         { return DoWhileStatementType }
func (*BreakStatement) Type() NodeType           { return BreakStatementType }
func (*ContinueStatement) Type() NodeType        { return ContinueStatementType }
func (*ThrowStatement) Type() NodeType           { return ThrowStatementType }
func (*TryStatement) Type() NodeType             { return TryStatementType }
func (*CatchClause) Type() NodeType              { return CatchClauseType }
func (*SwitchStatement) Type() NodeType          { return SwitchStatementType }
func (*SwitchCase) Type() NodeType               { return SwitchCaseType }
func (*ImportDeclaration) Type() NodeType        { return ImportDeclarationType }
func (*ImportSpecifier) Type() NodeType          { return ImportSpecifierType }
func (*ImportDefaultSpecifier) Type() NodeType   { return ImportDefaultSpecifierType }
func (*ImportNamespaceSpecifier) Type() NodeType { return ImportNamespaceSpecifierType }
func (*ExportNamedDeclaration) Type() NodeType   { return ExportNamedDeclarationType }
func (*ExportDefaultDeclaration) Type() NodeType { return ExportDefaultDeclarationType }
func (*Identifier) Type() NodeType               { return IdentifierType }
func (*StringLiteral) Type() NodeType            { return StringLiteralType }
func (*NumericLiteral) Type() NodeType           { return NumericLiteralType }
func (*BooleanLiteral) Type() NodeType           { return BooleanLiteralType }
func (*NullLiteral) Type() NodeType              { return NullLiteralType }
func (*RegExpLiteral) Type() NodeType            { return RegExpLiteralType }
func (*TemplateLiteral) Type() NodeType          { return TemplateLiteralType }
func (*ArrayExpression) Type() NodeType          { return ArrayExpressionType }
func (*ObjectExpression) Type() NodeType         { return ObjectExpressionType }
func (*Property) Type() NodeType                 { return PropertyType }
func (*SpreadElement) Type() NodeType            { return SpreadElementType }
func (*FunctionExpression) Type() NodeType       { return FunctionExpressionType }
func (*ArrowFunctionExpression) Type() NodeType  { return ArrowFunctionExpressionType }
func (*TaggedTemplateExpression) Type() NodeType { return TaggedTemplateExpressionType }
func (*CallExpression) Type() NodeType           { return CallExpressionType }
func (*NewExpression) Type() NodeType            { return NewExpressionType }
func (*MemberExpression) Type() NodeType         { return MemberExpressionType }
func (*UnaryExpression) Type() NodeType          { return UnaryExpressionType }
func (*UpdateExpression) Type() NodeType         { return UpdateExpressionType }
func (*BinaryExpression) Type() NodeType         { return BinaryExpressionType }
func (*LogicalExpression) Type() NodeType        { return LogicalExpressionType }
func (*ConditionalExpression) Type() NodeType    { return ConditionalExpressionType }
func (*AssignmentExpression) Type() NodeType     { return AssignmentExpressionType }
func (*SequenceExpression) Type() NodeType       { return SequenceExpressionType }
func (*ThisExpression) Type() NodeType           { return ThisExpressionType }
func (*AwaitExpression) Type() NodeType          { return AwaitExpressionType }
func (*ObjectPattern) Type() NodeType            { return ObjectPatternType }
func (*ArrayPattern) Type() NodeType             { return ArrayPatternType }
func (*AssignmentPattern) Type() NodeType        { return AssignmentPatternType }
func (*RestElement) Type() NodeType              { return RestElementType }
func (*LabeledStatement) Type() NodeType         { return LabeledStatementType }
func (*DebuggerStatement) Type() NodeType        { return DebuggerStatementType }
func (*ClassDeclaration) Type() NodeType         { return ClassDeclarationType }
func (*ClassMember) Type() NodeType              { return ClassMemberType }
func (*YieldExpression) Type() NodeType          { return YieldExpressionType }
func (*ClassExpression) Type() NodeType          { return ClassExpressionType }
func (*MetaProperty) Type() NodeType             { return MetaPropertyType }
func (*Super) Type() NodeType                    { return SuperType }
func (*ImportExpression) Type() NodeType         { return ImportExpressionType }

func (n *Program) Start() Pos                  { return n.Loc }
func (n *BlockStatement) Start() Pos           { return n.Loc }
func (n *EmptyStatement) Start() Pos           { return n.Loc }
func (n *ExpressionStatement) Start() Pos      { return n.Loc }
func (n *VariableDeclaration) Start() Pos      { return n.Loc }
func (n *VariableDeclarator) Start() Pos       { return n.Loc }
func (n *FunctionDeclaration) Start() Pos      { return n.Loc }
func (n *ReturnStatement) Start() Pos          { return n.Loc }
func (n *IfStatement) Start() Pos              { return n.Loc }
func (n *ForStatement) Start() Pos             { return n.Loc }
func (n *ForInStatement) Start() Pos           { return n.Loc }
func (n *ForOfStatement) Start() Pos           { return n.Loc }
func (n *WhileStatement) Start() Pos           { return n.Loc }
func (n *DoWhileStatement) Start() Pos         { return n.Loc }
func (n *BreakStatement) Start() Pos           { return n.Loc }
func (n *ContinueStatement) Start() Pos        { return n.Loc }
func (n *ThrowStatement) Start() Pos           { return n.Loc }
func (n *TryStatement) Start() Pos             { return n.Loc }
func (n *CatchClause) Start() Pos              { return n.Loc }
func (n *SwitchStatement) Start() Pos          { return n.Loc }
func (n *SwitchCase) Start() Pos               { return n.Loc }
func (n *ImportDeclaration) Start() Pos        { return n.Loc }
func (n *ImportSpecifier) Start() Pos          { return n.Loc }
func (n *ImportDefaultSpecifier) Start() Pos   { return n.Loc }
func (n *ImportNamespaceSpecifier) Start() Pos { return n.Loc }
func (n *ExportNamedDeclaration) Start() Pos   { return n.Loc }
func (n *ExportDefaultDeclaration) Start() Pos { return n.Loc }
func (n *Identifier) Start() Pos               { return n.Loc }
func (n *StringLiteral) Start() Pos            { return n.Loc }
func (n *NumericLiteral) Start() Pos           { return n.Loc }
func (n *BooleanLiteral) Start() Pos           { return n.Loc }
func (n *NullLiteral) Start() Pos              { return n.Loc }
func (n *RegExpLiteral) Start() Pos            { return n.Loc }
func (n *TemplateLiteral) Start() Pos          { return n.Loc }
func (n *ArrayExpression) Start() Pos          { return n.Loc }
func (n *ObjectExpression) Start() Pos         { return n.Loc }
func (n *Property) Start() Pos                 { return n.Loc }
func (n *SpreadElement) Start() Pos            { return n.Loc }
func (n *FunctionExpression) Start() Pos       { return n.Loc }
func (n *ArrowFunctionExpression) Start() Pos  { return n.Loc }
func (n *TaggedTemplateExpression) Start() Pos { return n.Loc }
func (n *CallExpression) Start() Pos           { return n.Loc }
func (n *NewExpression) Start() Pos            { return n.Loc }
func (n *MemberExpression) Start() Pos         { return n.Loc }
func (n *UnaryExpression) Start() Pos          { return n.Loc }
func (n *UpdateExpression) Start() Pos         { return n.Loc }
func (n *BinaryExpression) Start() Pos         { return n.Loc }
func (n *LogicalExpression) Start() Pos        { return n.Loc }
func (n *ConditionalExpression) Start() Pos    { return n.Loc }
func (n *AssignmentExpression) Start() Pos     { return n.Loc }
func (n *SequenceExpression) Start() Pos       { return n.Loc }
func (n *ThisExpression) Start() Pos           { return n.Loc }
func (n *AwaitExpression) Start() Pos          { return n.Loc }
func (n *ObjectPattern) Start() Pos            { return n.Loc }
func (n *ArrayPattern) Start() Pos             { return n.Loc }
func (n *AssignmentPattern) Start() Pos        { return n.Loc }
func (n *RestElement) Start() Pos              { return n.Loc }
func (n *LabeledStatement) Start() Pos         { return n.Loc }
func (n *DebuggerStatement) Start() Pos        { return n.Loc }
func (n *ClassDeclaration) Start() Pos         { return n.Loc }
func (n *ClassMember) Start() Pos              { return n.Loc }
func (n *YieldExpression) Start() Pos          { return n.Loc }
func (n *ClassExpression) Start() Pos          { return n.Loc }
func (n *MetaProperty) Start() Pos             { return n.Loc }
func (n *Super) Start() Pos                    { return n.Loc }
func (n *ImportExpression) Start() Pos         { return n.Loc }
