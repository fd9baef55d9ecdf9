package jsast

import "strconv"

// ScopeKind classifies lexical scopes.
type ScopeKind uint8

// Scope kinds.
const (
	ProgramScope ScopeKind = iota
	FunctionScope
	BlockScope
)

var scopeKindNames = [...]string{
	ProgramScope:  "program",
	FunctionScope: "function",
	BlockScope:    "block",
}

func (k ScopeKind) String() string { return scopeKindNames[k] }

// Scope is one lexical scope. Function bodies share the scope of their
// function; every other block, loop head, catch clause and switch body gets
// its own block scope.
type Scope struct {
	Kind     ScopeKind
	Node     Node
	Parent   *Scope
	Bindings map[string]*Binding
	Children []*Scope
}

func newScope(kind ScopeKind, node Node, parent *Scope) *Scope {
	s := &Scope{
		Kind:     kind,
		Node:     node,
		Parent:   parent,
		Bindings: make(map[string]*Binding),
	}

	if parent != nil {
		parent.Children = append(parent.Children, s)
	}

	return s
}

// OwnBinding returns the binding declared directly in s, or nil.
func (s *Scope) OwnBinding(name string) *Binding {
	return s.Bindings[name]
}

// Lookup resolves name from s outwards and returns nil for globals.
func (s *Scope) Lookup(name string) *Binding {
	for cur := s; cur != nil; cur = cur.Parent {
		if b, ok := cur.Bindings[name]; ok {
			return b
		}
	}

	return nil
}

// HasBinding reports whether name resolves from s.
func (s *Scope) HasBinding(name string) bool {
	return s.Lookup(name) != nil
}

// varScope returns the scope that receives `var` declarations made in s.
func (s *Scope) varScope() *Scope {
	cur := s
	for cur.Kind == BlockScope && cur.Parent != nil {
		cur = cur.Parent
	}

	return cur
}

// BindingKind classifies how a name was introduced.
type BindingKind uint8

// Binding kinds.
const (
	VarBinding BindingKind = iota
	LetBinding
	ConstBinding
	ParamBinding
	FunctionBinding
	ImportBinding
	CatchBinding
	LocalBinding
	ClassBinding
)

var bindingKindNames = [...]string{
	VarBinding:      "var",
	LetBinding:      "let",
	ConstBinding:    "const",
	ParamBinding:    "param",
	FunctionBinding: "function",
	ImportBinding:   "module",
	CatchBinding:    "catch",
	LocalBinding:    "local",
	ClassBinding:    "class",
}

func (k BindingKind) String() string { return bindingKindNames[k] }

// Binding ties together the declaration of a name and every identifier that
// refers to it.
type Binding struct {
	Name  string
	Kind  BindingKind
	Ident *Identifier
	Scope *Scope

	// Declarator and Declaration are set for var/let/const bindings.
	Declarator  *VariableDeclarator
	Declaration *VariableDeclaration

	// Function is set for function declaration bindings.
	Function *FunctionDeclaration

	// Import and Imported are set for import bindings. Imported is the
	// exported name, "default" or "*".
	Import   *ImportDeclaration
	Imported string

	References []*Identifier

	// Violations lists every node that writes the binding after its
	// declaration: assignments, updates and redeclarations.
	Violations []Node
}

// Constant reports whether the binding is never written after declaration.
func (b *Binding) Constant() bool {
	return len(b.Violations) == 0
}

// Info is the result of scope analysis over one program.
type Info struct {
	Program *Program
	Root    *Scope

	created   map[Node]*Scope
	enclosing map[Node]*Scope
	refs      map[*Identifier]*Scope
	resolved  map[*Identifier]*Binding
	declared  map[*Identifier]*Binding
	owners    map[*VariableDeclaration]Node
	names     map[string]struct{}
	globals   map[string][]*Identifier
}

// ScopeOf returns the innermost scope containing n. For nodes that create
// a scope this is the scope around them, not their own.
func (in *Info) ScopeOf(n Node) *Scope {
	return in.enclosing[n]
}

// ScopeFor returns the scope created by n, or nil.
func (in *Info) ScopeFor(n Node) *Scope {
	return in.created[n]
}

// IsReference reports whether id is read or written as a variable, as
// opposed to declaring a name or naming a property.
func (in *Info) IsReference(id *Identifier) bool {
	_, ok := in.refs[id]
	return ok
}

// Resolve returns the binding id refers to or declares. It returns nil for
// globals and for nodes unknown to the analysis.
func (in *Info) Resolve(id *Identifier) *Binding {
	if b, ok := in.resolved[id]; ok {
		return b
	}

	return in.declared[id]
}

// IsGlobal reports whether name is referenced somewhere without a binding.
func (in *Info) IsGlobal(name string) bool {
	_, ok := in.globals[name]
	return ok
}

// DeclarationOwner returns the node whose body lists d: a *Program, a
// *BlockStatement, a *SwitchCase, or the loop/export statement holding it.
func (in *Info) DeclarationOwner(d *VariableDeclaration) Node {
	return in.owners[d]
}

// References returns the reference identifiers inside root in source order.
func (in *Info) References(root Node) []*Identifier {
	var ids []*Identifier

	Inspect(root, func(n Node) bool {
		if id, ok := n.(*Identifier); ok && in.IsReference(id) {
			ids = append(ids, id)
		}

		return true
	})

	return ids
}

// ReferencesImport reports whether e is an identifier bound by an import of
// name from module. name is "default" for default imports and "*" for
// namespace imports.
func (in *Info) ReferencesImport(e Expr, module, name string) bool {
	id, ok := e.(*Identifier)
	if !ok {
		return false
	}

	b := in.resolved[id]
	if b == nil || b.Kind != ImportBinding || b.Import == nil || b.Import.Source == nil {
		return false
	}

	return b.Import.Source.Value == module && b.Imported == name
}

// UniqueName returns base, or base followed by a counter, such that the
// result collides with no name used in the program. The name is reserved so
// later calls never return it again.
func (in *Info) UniqueName(base string) string {
	name := base

	for i := 2; ; i++ {
		if _, taken := in.names[name]; !taken {
			break
		}

		name = base + strconv.Itoa(i)
	}

	in.names[name] = struct{}{}

	return name
}

// Analyze builds scopes and bindings for p and resolves every reference.
func Analyze(p *Program) *Info {
	in := &Info{
		Program:   p,
		created:   make(map[Node]*Scope),
		enclosing: make(map[Node]*Scope),
		refs:      make(map[*Identifier]*Scope),
		resolved:  make(map[*Identifier]*Binding),
		declared:  make(map[*Identifier]*Binding),
		owners:    make(map[*VariableDeclaration]Node),
		names:     make(map[string]struct{}),
		globals:   make(map[string][]*Identifier),
	}

	Inspect(p, func(n Node) bool {
		if id, ok := n.(*Identifier); ok {
			in.names[id.Name] = struct{}{}
		}

		return true
	})

	a := &analyzer{info: in}
	in.Root = a.scope(ProgramScope, p, nil)
	a.stmts(p.Body, in.Root, p)
	a.resolve()

	return in
}

type pendingRef struct {
	id        *Identifier
	scope     *Scope
	violation Node
}

type analyzer struct {
	info    *Info
	pending []pendingRef
}

func (a *analyzer) scope(kind ScopeKind, n Node, parent *Scope) *Scope {
	s := newScope(kind, n, parent)
	a.info.created[n] = s

	return s
}

func (a *analyzer) enter(n Node, s *Scope) {
	if !isNil(n) {
		a.info.enclosing[n] = s
	}
}

func (a *analyzer) declare(id *Identifier, s *Scope, kind BindingKind) *Binding {
	a.enter(id, s)

	if existing, ok := s.Bindings[id.Name]; ok {
		existing.Violations = append(existing.Violations, id)
		a.info.declared[id] = existing

		return existing
	}

	b := &Binding{Name: id.Name, Kind: kind, Ident: id, Scope: s}
	s.Bindings[id.Name] = b
	a.info.declared[id] = b

	return b
}

func (a *analyzer) ref(id *Identifier, s *Scope, violation Node) {
	a.enter(id, s)
	a.info.refs[id] = s
	a.pending = append(a.pending, pendingRef{id: id, scope: s, violation: violation})
}

func (a *analyzer) resolve() {
	for _, r := range a.pending {
		b := r.scope.Lookup(r.id.Name)
		if b == nil {
			a.info.globals[r.id.Name] = append(a.info.globals[r.id.Name], r.id)
			continue
		}

		a.info.resolved[r.id] = b
		b.References = append(b.References, r.id)

		if r.violation != nil {
			b.Violations = append(b.Violations, r.violation)
		}
	}
}

func (a *analyzer) stmts(list []Stmt, s *Scope, owner Node) {
	for _, st := range list {
		a.stmt(st, s, owner)
	}
}

//nolint:cyclop,gocyclo,funlen // one case per statement type
func (a *analyzer) stmt(st Stmt, s *Scope, owner Node) {
	if isNil(st) {
		return
	}

	a.enter(st, s)

	switch st := st.(type) {
	case *BlockStatement:
		a.stmts(st.Body, a.scope(BlockScope, st, s), st)
	case *ExpressionStatement:
		a.expr(st.Expression, s)
	case *VariableDeclaration:
		a.varDecl(st, s, owner)
	case *FunctionDeclaration:
		if st.ID != nil {
			b := a.declare(st.ID, s, FunctionBinding)
			if b.Function == nil {
				b.Function = st
			}
		}

		a.function(st, nil, st.Params, st.Body, nil, s)
	case *ReturnStatement:
		a.expr(st.Argument, s)
	case *ThrowStatement:
		a.expr(st.Argument, s)
	case *IfStatement:
		a.expr(st.Test, s)
		a.stmt(st.Consequent, s, st)
		a.stmt(st.Alternate, s, st)
	case *ForStatement:
		fs := a.scope(BlockScope, st, s)

		switch init := st.Init.(type) {
		case *VariableDeclaration:
			a.enter(init, fs)
			a.varDecl(init, fs, st)
		case Expr:
			a.expr(init, fs)
		}

		a.expr(st.Test, fs)
		a.expr(st.Update, fs)
		a.stmt(st.Body, fs, st)
	case *ForInStatement:
		a.forEach(st, st.Left, st.Right, st.Body, s)
	case *ForOfStatement:
		a.forEach(st, st.Left, st.Right, st.Body, s)
	case *WhileStatement:
		a.expr(st.Test, s)
		a.stmt(st.Body, s, st)
	case *DoWhileStatement:
		a.stmt(st.Body, s, st)
		a.expr(st.Test, s)
	case *TryStatement:
		a.stmt(st.Block, s, st)

		if st.Handler != nil {
			a.enter(st.Handler, s)
			cs := a.scope(BlockScope, st.Handler, s)

			if st.Handler.Param != nil {
				a.bindPattern(st.Handler.Param, cs, cs, CatchBinding, nil)
			}

			a.stmt(st.Handler.Body, cs, st.Handler)
		}

		if st.Finalizer != nil {
			a.stmt(st.Finalizer, s, st)
		}
	case *SwitchStatement:
		a.expr(st.Discriminant, s)
		ss := a.scope(BlockScope, st, s)

		for _, c := range st.Cases {
			a.enter(c, ss)
			a.expr(c.Test, ss)
			a.stmts(c.Consequent, ss, c)
		}
	case *LabeledStatement:
		a.stmt(st.Body, s, st)
	case *ClassDeclaration:
		if st.ID != nil {
			a.declare(st.ID, s, ClassBinding)
		}

		a.class(st, nil, st.SuperClass, st.Body, s)
	case *ImportDeclaration:
		a.importDecl(st, s)
	case *ExportNamedDeclaration:
		a.stmt(st.Declaration, s, st)
	case *ExportDefaultDeclaration:
		switch d := st.Declaration.(type) {
		case Stmt:
			a.stmt(d, s, st)
		case Expr:
			a.expr(d, s)
		}
	}
}

func (a *analyzer) forEach(st Stmt, left Node, right Expr, body Stmt, s *Scope) {
	fs := a.scope(BlockScope, st, s)

	switch left := left.(type) {
	case *VariableDeclaration:
		a.enter(left, fs)
		a.varDecl(left, fs, st)
	case Pattern:
		a.assignTarget(left, fs, st)
	}

	a.expr(right, fs)
	a.stmt(body, fs, st)
}

func (a *analyzer) importDecl(d *ImportDeclaration, s *Scope) {
	a.enter(d.Source, s)

	for _, spec := range d.Specifiers {
		a.enter(spec, s)

		imported := "default"

		switch spec := spec.(type) {
		case *ImportSpecifier:
			imported = spec.Imported
		case *ImportNamespaceSpecifier:
			imported = "*"
		}

		local := spec.LocalName()
		if local == nil {
			continue
		}

		b := a.declare(local, s, ImportBinding)
		if b.Import == nil {
			b.Import = d
			b.Imported = imported
		}
	}
}

func (a *analyzer) varDecl(d *VariableDeclaration, s *Scope, owner Node) {
	a.info.owners[d] = owner

	kind := VarBinding
	target := s.varScope()

	switch d.Kind {
	case Let:
		kind, target = LetBinding, s
	case Const:
		kind, target = ConstBinding, s
	case Var:
	}

	for _, decl := range d.Declarations {
		a.enter(decl, s)
		a.bindPattern(decl.ID, target, s, kind, func(b *Binding) {
			if b.Declarator == nil {
				b.Declarator = decl
				b.Declaration = d
			}
		})
		a.expr(decl.Init, s)
	}
}

// bindPattern declares every identifier of p in target. Default values and
// computed keys are evaluated in s.
func (a *analyzer) bindPattern(p Pattern, target, s *Scope, kind BindingKind, setup func(*Binding)) {
	if isNil(p) {
		return
	}

	a.enter(p, s)

	switch p := p.(type) {
	case *Identifier:
		b := a.declare(p, target, kind)
		if setup != nil {
			setup(b)
		}
	case *ObjectPattern:
		for _, prop := range p.Properties {
			a.enter(prop, s)

			switch prop := prop.(type) {
			case *Property:
				if prop.Computed {
					a.expr(prop.Key, s)
				} else {
					a.enter(prop.Key, s)
				}

				if v, ok := prop.Value.(Pattern); ok {
					a.bindPattern(v, target, s, kind, setup)
				}
			case *RestElement:
				a.bindPattern(prop.Argument, target, s, kind, setup)
			}
		}
	case *ArrayPattern:
		for _, el := range p.Elements {
			a.bindPattern(el, target, s, kind, setup)
		}
	case *AssignmentPattern:
		a.bindPattern(p.Left, target, s, kind, setup)
		a.expr(p.Right, s)
	case *RestElement:
		a.bindPattern(p.Argument, target, s, kind, setup)
	case *MemberExpression:
		a.expr(p, s)
	}
}

// assignTarget records writes through p, attributing them to violation.
func (a *analyzer) assignTarget(p Pattern, s *Scope, violation Node) {
	if isNil(p) {
		return
	}

	switch p := p.(type) {
	case *Identifier:
		a.ref(p, s, violation)
	case *MemberExpression:
		a.expr(p, s)
	case *ObjectPattern:
		a.enter(p, s)

		for _, prop := range p.Properties {
			a.enter(prop, s)

			switch prop := prop.(type) {
			case *Property:
				if prop.Computed {
					a.expr(prop.Key, s)
				} else {
					a.enter(prop.Key, s)
				}

				if v, ok := prop.Value.(Pattern); ok {
					a.assignTarget(v, s, violation)
				}
			case *RestElement:
				a.assignTarget(prop.Argument, s, violation)
			}
		}
	case *ArrayPattern:
		a.enter(p, s)

		for _, el := range p.Elements {
			a.assignTarget(el, s, violation)
		}
	case *AssignmentPattern:
		a.enter(p, s)
		a.assignTarget(p.Left, s, violation)
		a.expr(p.Right, s)
	case *RestElement:
		a.enter(p, s)
		a.assignTarget(p.Argument, s, violation)
	}
}

// function analyzes a function-like node. name is the expression name of a
// named function expression, bound inside the function's own scope.
func (a *analyzer) function(fn Node, name *Identifier, params []Pattern, body *BlockStatement, exprBody Expr, s *Scope) {
	fs := a.scope(FunctionScope, fn, s)

	if name != nil {
		a.declare(name, fs, LocalBinding)
	}

	for _, p := range params {
		a.bindPattern(p, fs, fs, ParamBinding, nil)
	}

	if body != nil {
		a.enter(body, fs)
		a.stmts(body.Body, fs, body)
	}

	a.expr(exprBody, fs)
}

//nolint:cyclop,gocyclo // one case per expression type
func (a *analyzer) expr(e Expr, s *Scope) {
	if isNil(e) {
		return
	}

	a.enter(e, s)

	switch e := e.(type) {
	case *Identifier:
		a.ref(e, s, nil)
	case *TemplateLiteral:
		for _, x := range e.Expressions {
			a.expr(x, s)
		}
	case *ArrayExpression:
		for _, x := range e.Elements {
			a.expr(x, s)
		}
	case *ObjectExpression:
		for _, prop := range e.Properties {
			a.enter(prop, s)

			switch prop := prop.(type) {
			case *Property:
				if prop.Computed {
					a.expr(prop.Key, s)
				} else {
					a.enter(prop.Key, s)
				}

				if v, ok := prop.Value.(Expr); ok {
					a.expr(v, s)
				}
			case *SpreadElement:
				a.expr(prop.Argument, s)
			}
		}
	case *SpreadElement:
		a.expr(e.Argument, s)
	case *FunctionExpression:
		a.function(e, e.ID, e.Params, e.Body, nil, s)
	case *ArrowFunctionExpression:
		a.function(e, nil, e.Params, e.Body, e.ExprBody, s)
	case *TaggedTemplateExpression:
		a.expr(e.Tag, s)
		a.expr(e.Quasi, s)
	case *CallExpression:
		a.expr(e.Callee, s)

		for _, x := range e.Arguments {
			a.expr(x, s)
		}
	case *NewExpression:
		a.expr(e.Callee, s)

		for _, x := range e.Arguments {
			a.expr(x, s)
		}
	case *MemberExpression:
		a.expr(e.Object, s)

		if e.Computed {
			a.expr(e.Property, s)
		} else {
			a.enter(e.Property, s)
		}
	case *UnaryExpression:
		a.expr(e.Argument, s)
	case *UpdateExpression:
		if p, ok := e.Argument.(Pattern); ok {
			a.assignTarget(p, s, e)
		} else {
			a.expr(e.Argument, s)
		}
	case *BinaryExpression:
		a.expr(e.Left, s)
		a.expr(e.Right, s)
	case *LogicalExpression:
		a.expr(e.Left, s)
		a.expr(e.Right, s)
	case *ConditionalExpression:
		a.expr(e.Test, s)
		a.expr(e.Consequent, s)
		a.expr(e.Alternate, s)
	case *AssignmentExpression:
		a.assignTarget(e.Left, s, e)
		a.expr(e.Right, s)
	case *SequenceExpression:
		for _, x := range e.Expressions {
			a.expr(x, s)
		}
	case *AwaitExpression:
		a.expr(e.Argument, s)
	case *YieldExpression:
		a.expr(e.Argument, s)
	case *ClassExpression:
		a.class(e, e.ID, e.SuperClass, e.Body, s)
	case *ImportExpression:
		a.expr(e.Source, s)
		a.expr(e.Options, s)
	}
}

// class analyzes a class body. The heritage expression is evaluated outside
// the class scope; name is the inner binding of a named class expression.
func (a *analyzer) class(cls Node, name *Identifier, super Expr, body []*ClassMember, s *Scope) {
	a.expr(super, s)

	cs := a.scope(BlockScope, cls, s)
	if name != nil {
		a.declare(name, cs, LocalBinding)
	}

	for _, m := range body {
		a.enter(m, cs)

		if m.Computed {
			a.expr(m.Key, cs)
		} else {
			a.enter(m.Key, cs)
		}

		switch v := m.Value.(type) {
		case *BlockStatement:
			a.stmt(v, cs, m)
		case Expr:
			a.expr(v, cs)
		}
	}
}
