package ast

import "github.com/aemlang/aemc/internal/lexer"

// Node represents any AST node with an associated source span.
type Node interface {
	Span() lexer.Span
}

// Expr represents an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt represents a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Decl represents a top-level declaration.
type Decl interface {
	Node
	declNode()
}

// TypeExpr represents a type annotation expression.
type TypeExpr interface {
	Node
	typeNode()
}

// Type is a resolved semantic type attached to nodes by the resolver. The
// concrete representations live in internal/types; AST consumers only need
// to display them.
type Type interface {
	String() string
}

// SymbolKind classifies what a symbol names.
type SymbolKind string

const (
	SymbolVar   SymbolKind = "variable"
	SymbolParam SymbolKind = "parameter"
	SymbolFunc  SymbolKind = "function"
)

// Symbol is the resolver's record for a named entity. It lives in this
// package so identifier references can carry their binding without a
// dependency cycle between the AST and the resolver.
type Symbol struct {
	Name    string
	Kind    SymbolKind
	Type    Type
	DefNode Node // the AST node where this symbol is declared
	Depth   int  // lexical scope depth, 0 = global
}

// Program represents a parsed translation unit.
type Program struct {
	Decls []Decl
	span  lexer.Span
}

// Span returns the span covering the entire unit.
func (p *Program) Span() lexer.Span { return p.span }

// NewProgram constructs a program node with the provided span.
func NewProgram(span lexer.Span) *Program {
	return &Program{span: span}
}

// SetSpan updates the program span.
func (p *Program) SetSpan(span lexer.Span) {
	p.span = span
}

// FunctionDecl represents a function declaration.
type FunctionDecl struct {
	Name       *Ident
	Params     []*Param
	ReturnType TypeExpr // nil means void
	Body       *Block
	Sym        *Symbol // attached during hoisting
	span       lexer.Span
}

// Span returns the declaration span.
func (d *FunctionDecl) Span() lexer.Span { return d.span }

// NewFunctionDecl constructs a function declaration node.
func NewFunctionDecl(name *Ident, params []*Param, returnType TypeExpr, body *Block, span lexer.Span) *FunctionDecl {
	return &FunctionDecl{
		Name:       name,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
		span:       span,
	}
}

// SetSpan updates the function declaration span.
func (d *FunctionDecl) SetSpan(span lexer.Span) {
	d.span = span
}

// declNode marks FunctionDecl as a declaration.
func (*FunctionDecl) declNode() {}

// Param represents a function parameter.
type Param struct {
	Name *Ident
	Type TypeExpr
	Sym  *Symbol
	span lexer.Span
}

// Span returns the parameter span.
func (p *Param) Span() lexer.Span { return p.span }

// NewParam constructs a parameter node.
func NewParam(name *Ident, typ TypeExpr, span lexer.Span) *Param {
	return &Param{
		Name: name,
		Type: typ,
		span: span,
	}
}

// VarDecl represents a variable declaration. It appears both at the top
// level and in statement position.
type VarDecl struct {
	Name     *Ident
	DeclType TypeExpr
	Value    Expr // optional initializer
	Sym      *Symbol
	span     lexer.Span
}

// Span returns the declaration span.
func (d *VarDecl) Span() lexer.Span { return d.span }

// NewVarDecl constructs a variable declaration node.
func NewVarDecl(name *Ident, typ TypeExpr, value Expr, span lexer.Span) *VarDecl {
	return &VarDecl{
		Name:     name,
		DeclType: typ,
		Value:    value,
		span:     span,
	}
}

// SetSpan updates the variable declaration span.
func (d *VarDecl) SetSpan(span lexer.Span) {
	d.span = span
}

func (*VarDecl) declNode() {}
func (*VarDecl) stmtNode() {}

// Block represents a braced sequence of statements.
type Block struct {
	Stmts []Stmt
	span  lexer.Span
}

// Span returns the block span.
func (b *Block) Span() lexer.Span { return b.span }

// NewBlock constructs a block node.
func NewBlock(stmts []Stmt, span lexer.Span) *Block {
	return &Block{
		Stmts: stmts,
		span:  span,
	}
}

// SetSpan updates the block span.
func (b *Block) SetSpan(span lexer.Span) {
	b.span = span
}

// stmtNode marks Block as a statement.
func (*Block) stmtNode() {}

// ReturnStmt represents a return statement.
type ReturnStmt struct {
	Value Expr // nil for a bare return
	span  lexer.Span
}

// Span returns the statement span.
func (s *ReturnStmt) Span() lexer.Span { return s.span }

// NewReturnStmt constructs a return statement node.
func NewReturnStmt(value Expr, span lexer.Span) *ReturnStmt {
	return &ReturnStmt{
		Value: value,
		span:  span,
	}
}

// stmtNode marks ReturnStmt as a statement.
func (*ReturnStmt) stmtNode() {}

// IfStmt represents an if statement with an optional else branch. Else is
// either a *Block or another *IfStmt (else-if chain).
type IfStmt struct {
	Cond Expr
	Then *Block
	Else Stmt
	span lexer.Span
}

// Span returns the statement span.
func (s *IfStmt) Span() lexer.Span { return s.span }

// NewIfStmt constructs an if statement node.
func NewIfStmt(cond Expr, then *Block, els Stmt, span lexer.Span) *IfStmt {
	return &IfStmt{
		Cond: cond,
		Then: then,
		Else: els,
		span: span,
	}
}

// stmtNode marks IfStmt as a statement.
func (*IfStmt) stmtNode() {}

// WhileStmt represents a while loop.
type WhileStmt struct {
	Cond Expr
	Body *Block
	span lexer.Span
}

// Span returns the statement span.
func (s *WhileStmt) Span() lexer.Span { return s.span }

// NewWhileStmt constructs a while statement node.
func NewWhileStmt(cond Expr, body *Block, span lexer.Span) *WhileStmt {
	return &WhileStmt{
		Cond: cond,
		Body: body,
		span: span,
	}
}

// stmtNode marks WhileStmt as a statement.
func (*WhileStmt) stmtNode() {}

// ExprStmt represents an expression statement.
type ExprStmt struct {
	Expr Expr
	span lexer.Span
}

// Span returns the statement span.
func (s *ExprStmt) Span() lexer.Span { return s.span }

// NewExprStmt constructs an expression statement node.
func NewExprStmt(expr Expr, span lexer.Span) *ExprStmt {
	return &ExprStmt{
		Expr: expr,
		span: span,
	}
}

// stmtNode marks ExprStmt as a statement.
func (*ExprStmt) stmtNode() {}

// Ident represents an identifier reference.
type Ident struct {
	Name string
	Sym  *Symbol // binding attached by the resolver
	Typ  Type
	span lexer.Span
}

// Span returns the identifier span.
func (i *Ident) Span() lexer.Span { return i.span }

// NewIdent constructs an identifier node.
func NewIdent(name string, span lexer.Span) *Ident {
	return &Ident{
		Name: name,
		span: span,
	}
}

// SetSpan updates the identifier span.
func (i *Ident) SetSpan(span lexer.Span) {
	i.span = span
}

// exprNode marks Ident as an expression.
func (*Ident) exprNode() {}

// IntegerLit represents an integer literal.
type IntegerLit struct {
	Text string
	Typ  Type
	span lexer.Span
}

// Span returns the literal span.
func (l *IntegerLit) Span() lexer.Span { return l.span }

// NewIntegerLit constructs an integer literal node.
func NewIntegerLit(text string, span lexer.Span) *IntegerLit {
	return &IntegerLit{
		Text: text,
		span: span,
	}
}

// SetSpan updates the literal span.
func (l *IntegerLit) SetSpan(span lexer.Span) {
	l.span = span
}

// exprNode marks IntegerLit as an expression.
func (*IntegerLit) exprNode() {}

// FloatLit represents a floating-point literal.
type FloatLit struct {
	Text string
	Typ  Type
	span lexer.Span
}

// Span returns the literal span.
func (l *FloatLit) Span() lexer.Span { return l.span }

// NewFloatLit constructs a float literal node.
func NewFloatLit(text string, span lexer.Span) *FloatLit {
	return &FloatLit{
		Text: text,
		span: span,
	}
}

// SetSpan updates the literal span.
func (l *FloatLit) SetSpan(span lexer.Span) {
	l.span = span
}

// exprNode marks FloatLit as an expression.
func (*FloatLit) exprNode() {}

// StringLit represents a string literal. Value holds the decoded text,
// without quotes or escapes.
type StringLit struct {
	Value string
	Typ   Type
	span  lexer.Span
}

// Span returns the literal span.
func (l *StringLit) Span() lexer.Span { return l.span }

// NewStringLit constructs a string literal node.
func NewStringLit(value string, span lexer.Span) *StringLit {
	return &StringLit{
		Value: value,
		span:  span,
	}
}

// SetSpan updates the literal span.
func (l *StringLit) SetSpan(span lexer.Span) {
	l.span = span
}

// exprNode marks StringLit as an expression.
func (*StringLit) exprNode() {}

// BoolLit represents a boolean literal.
type BoolLit struct {
	Value bool
	Typ   Type
	span  lexer.Span
}

// Span returns the literal span.
func (l *BoolLit) Span() lexer.Span { return l.span }

// NewBoolLit constructs a boolean literal node.
func NewBoolLit(value bool, span lexer.Span) *BoolLit {
	return &BoolLit{
		Value: value,
		span:  span,
	}
}

// SetSpan updates the literal span.
func (l *BoolLit) SetSpan(span lexer.Span) {
	l.span = span
}

// exprNode marks BoolLit as an expression.
func (*BoolLit) exprNode() {}

// PrefixExpr represents a prefix (unary) expression.
type PrefixExpr struct {
	Op   lexer.TokenType
	Expr Expr
	Typ  Type
	span lexer.Span
}

// Span returns the expression span.
func (e *PrefixExpr) Span() lexer.Span { return e.span }

// NewPrefixExpr constructs a prefix expression node.
func NewPrefixExpr(op lexer.TokenType, expr Expr, span lexer.Span) *PrefixExpr {
	return &PrefixExpr{
		Op:   op,
		Expr: expr,
		span: span,
	}
}

// SetSpan updates the prefix expression span.
func (e *PrefixExpr) SetSpan(span lexer.Span) {
	e.span = span
}

// exprNode marks PrefixExpr as an expression.
func (*PrefixExpr) exprNode() {}

// InfixExpr represents an infix binary expression.
type InfixExpr struct {
	Op    lexer.TokenType
	Left  Expr
	Right Expr
	Typ   Type
	span  lexer.Span
}

// Span returns the expression span.
func (e *InfixExpr) Span() lexer.Span { return e.span }

// NewInfixExpr constructs a binary expression node.
func NewInfixExpr(op lexer.TokenType, left, right Expr, span lexer.Span) *InfixExpr {
	return &InfixExpr{
		Op:    op,
		Left:  left,
		Right: right,
		span:  span,
	}
}

// SetSpan updates the infix expression span.
func (e *InfixExpr) SetSpan(span lexer.Span) {
	e.span = span
}

// exprNode marks InfixExpr as an expression.
func (*InfixExpr) exprNode() {}

// AssignExpr represents an assignment expression.
type AssignExpr struct {
	Target Expr
	Value  Expr
	Typ    Type
	span   lexer.Span
}

// Span returns the expression span.
func (e *AssignExpr) Span() lexer.Span { return e.span }

// NewAssignExpr constructs an assignment expression node.
func NewAssignExpr(target, value Expr, span lexer.Span) *AssignExpr {
	return &AssignExpr{
		Target: target,
		Value:  value,
		span:   span,
	}
}

// SetSpan updates the assignment expression span.
func (e *AssignExpr) SetSpan(span lexer.Span) {
	e.span = span
}

// exprNode marks AssignExpr as an expression.
func (*AssignExpr) exprNode() {}

// CallExpr represents a function call.
type CallExpr struct {
	Callee *Ident
	Args   []Expr
	Typ    Type
	span   lexer.Span
}

// Span returns the expression span.
func (e *CallExpr) Span() lexer.Span { return e.span }

// NewCallExpr constructs a call expression node.
func NewCallExpr(callee *Ident, args []Expr, span lexer.Span) *CallExpr {
	return &CallExpr{
		Callee: callee,
		Args:   args,
		span:   span,
	}
}

// SetSpan updates the call expression span.
func (e *CallExpr) SetSpan(span lexer.Span) {
	e.span = span
}

// exprNode marks CallExpr as an expression.
func (*CallExpr) exprNode() {}

// NamedType represents a named type reference.
type NamedType struct {
	Name     *Ident
	Resolved Type // attached by the resolver
	span     lexer.Span
}

// Span returns the type span.
func (t *NamedType) Span() lexer.Span { return t.span }

// NewNamedType constructs a named type node.
func NewNamedType(name *Ident, span lexer.Span) *NamedType {
	return &NamedType{
		Name: name,
		span: span,
	}
}

// typeNode marks NamedType as a type expression.
func (*NamedType) typeNode() {}
