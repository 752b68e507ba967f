package types

import (
	"fmt"

	"github.com/aemlang/aemc/internal/ast"
	"github.com/aemlang/aemc/internal/diag"
	"github.com/aemlang/aemc/internal/lexer"
)

// Resolver binds identifiers to symbols and checks types across the AST.
// Resolution runs in two passes: first all top-level declarations are
// collected into the global scope so functions may reference each other
// regardless of declaration order, then every body is checked against the
// collected signatures. Nodes are annotated in place (Sym, Typ, Resolved
// fields) for the code generator to consume.
type Resolver struct {
	GlobalScope *Scope
	Errors      []diag.Diagnostic
}

// NewResolver creates a resolver with an empty global scope.
func NewResolver() *Resolver {
	return &Resolver{
		GlobalScope: NewScope(nil),
		Errors:      []diag.Diagnostic{},
	}
}

// Resolve validates the given translation unit.
func (r *Resolver) Resolve(program *ast.Program) {
	// Pass 1: Collect declarations
	r.collectDecls(program)

	// Pass 2: Check bodies
	r.checkBodies(program)
}

func (r *Resolver) report(code diag.Code, msg string, span lexer.Span) {
	r.Errors = append(r.Errors, diag.Diagnostic{
		Stage:    diag.StageResolve,
		Severity: diag.SeverityError,
		Code:     code,
		Message:  msg,
		Span: diag.Span{
			Filename: span.Filename,
			Line:     span.Line,
			Column:   span.Column,
			Start:    span.Start,
			End:      span.End,
		},
	})
}

func (r *Resolver) reportf(code diag.Code, span lexer.Span, format string, args ...any) {
	r.report(code, fmt.Sprintf(format, args...), span)
}

// resolveType maps a type annotation to its semantic type. Unknown names are
// reported and yield nil; callers treat nil as "already diagnosed".
func (r *Resolver) resolveType(typ ast.TypeExpr) Type {
	named, ok := typ.(*ast.NamedType)
	if !ok {
		return nil
	}

	t := Lookup(named.Name.Name)
	if t == nil {
		r.reportf(diag.CodeResolveUnknownType, named.Span(), "unknown type '%s'", named.Name.Name)
		return nil
	}

	named.Resolved = t

	return t
}

func (r *Resolver) collectDecls(program *ast.Program) {
	for _, decl := range program.Decls {
		switch d := decl.(type) {
		case *ast.FunctionDecl:
			var params []Type
			for _, p := range d.Params {
				params = append(params, r.resolveType(p.Type))
			}

			var returnType Type = TypeVoid
			if d.ReturnType != nil {
				if t := r.resolveType(d.ReturnType); t != nil {
					returnType = t
				}
			}

			if prev := r.GlobalScope.LookupLocal(d.Name.Name); prev != nil {
				r.reportf(diag.CodeResolveRedeclared, d.Name.Span(),
					"'%s' redeclared; previous declaration is a %s", d.Name.Name, prev.Kind)
				continue
			}

			sym := &ast.Symbol{
				Name:    d.Name.Name,
				Kind:    ast.SymbolFunc,
				Type:    &Function{Params: params, Return: returnType},
				DefNode: d,
			}
			r.GlobalScope.Insert(d.Name.Name, sym)
			d.Sym = sym
			d.Name.Sym = sym
		case *ast.VarDecl:
			t := r.resolveType(d.DeclType)

			if prev := r.GlobalScope.LookupLocal(d.Name.Name); prev != nil {
				r.reportf(diag.CodeResolveRedeclared, d.Name.Span(),
					"'%s' redeclared; previous declaration is a %s", d.Name.Name, prev.Kind)
				continue
			}

			sym := &ast.Symbol{
				Name:    d.Name.Name,
				Kind:    ast.SymbolVar,
				Type:    t,
				DefNode: d,
			}
			r.GlobalScope.Insert(d.Name.Name, sym)
			d.Sym = sym
			d.Name.Sym = sym
		}
	}
}

func (r *Resolver) checkBodies(program *ast.Program) {
	for _, decl := range program.Decls {
		switch d := decl.(type) {
		case *ast.FunctionDecl:
			r.checkFunction(d)
		case *ast.VarDecl:
			if d.Sym == nil {
				continue // collection failed, already diagnosed
			}
			r.checkVarInitializer(d, r.GlobalScope)
		}
	}
}

func (r *Resolver) checkFunction(d *ast.FunctionDecl) {
	if d.Sym == nil {
		return
	}

	fnType := d.Sym.Type.(*Function)
	scope := NewScope(r.GlobalScope)

	for i, p := range d.Params {
		if prev := scope.LookupLocal(p.Name.Name); prev != nil {
			r.reportf(diag.CodeResolveRedeclared, p.Name.Span(),
				"duplicate parameter '%s'", p.Name.Name)
			continue
		}

		sym := &ast.Symbol{
			Name:    p.Name.Name,
			Kind:    ast.SymbolParam,
			Type:    fnType.Params[i],
			DefNode: p,
		}
		scope.Insert(p.Name.Name, sym)
		p.Sym = sym
		p.Name.Sym = sym
	}

	r.checkBlockInScope(d.Body, NewScope(scope), fnType.Return)
}

func (r *Resolver) checkVarInitializer(d *ast.VarDecl, scope *Scope) {
	if d.Value == nil {
		return
	}

	valueType := r.checkExpr(d.Value, scope)
	declType, _ := d.Sym.Type.(Type)

	if valueType == nil || declType == nil {
		return
	}

	if !AssignableTo(valueType, declType) {
		r.reportf(diag.CodeResolveTypeMismatch, d.Value.Span(),
			"type mismatch: expected %s, found %s", declType, valueType)
	}
}

// checkBlock opens a fresh child scope so declarations inside the block
// shadow outer names and expire at the closing brace.
func (r *Resolver) checkBlock(block *ast.Block, parent *Scope, returnType Type) {
	r.checkBlockInScope(block, NewScope(parent), returnType)
}

func (r *Resolver) checkBlockInScope(block *ast.Block, scope *Scope, returnType Type) {
	if block == nil {
		return
	}

	for _, stmt := range block.Stmts {
		r.checkStmt(stmt, scope, returnType)
	}
}

func (r *Resolver) checkStmt(stmt ast.Stmt, scope *Scope, returnType Type) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		r.checkLocalVarDecl(s, scope)
	case *ast.ReturnStmt:
		r.checkReturn(s, scope, returnType)
	case *ast.IfStmt:
		r.checkCondition(s.Cond, scope, "if")
		r.checkBlock(s.Then, scope, returnType)
		if s.Else != nil {
			r.checkStmt(s.Else, scope, returnType)
		}
	case *ast.WhileStmt:
		r.checkCondition(s.Cond, scope, "while")
		r.checkBlock(s.Body, scope, returnType)
	case *ast.Block:
		r.checkBlock(s, scope, returnType)
	case *ast.ExprStmt:
		r.checkExpr(s.Expr, scope)
	}
}

func (r *Resolver) checkLocalVarDecl(d *ast.VarDecl, scope *Scope) {
	t := r.resolveType(d.DeclType)

	// Shadowing an outer binding is allowed; a duplicate in the same scope
	// is not.
	if prev := scope.LookupLocal(d.Name.Name); prev != nil {
		r.reportf(diag.CodeResolveRedeclared, d.Name.Span(),
			"'%s' redeclared in this scope", d.Name.Name)
		return
	}

	sym := &ast.Symbol{
		Name:    d.Name.Name,
		Kind:    ast.SymbolVar,
		Type:    t,
		DefNode: d,
	}
	scope.Insert(d.Name.Name, sym)
	d.Sym = sym
	d.Name.Sym = sym

	r.checkVarInitializer(d, scope)
}

func (r *Resolver) checkReturn(s *ast.ReturnStmt, scope *Scope, returnType Type) {
	wantsValue := returnType != nil && !Equals(returnType, TypeVoid)

	if s.Value == nil {
		if wantsValue {
			r.reportf(diag.CodeResolveMissingReturnValue, s.Span(),
				"missing return value: function returns %s", returnType)
		}
		return
	}

	valueType := r.checkExpr(s.Value, scope)

	if !wantsValue {
		r.report(diag.CodeResolveUnexpectedReturnValue,
			"unexpected return value in void function", s.Value.Span())
		return
	}

	if valueType == nil {
		return
	}

	if !AssignableTo(valueType, returnType) {
		r.reportf(diag.CodeResolveTypeMismatch, s.Value.Span(),
			"type mismatch: expected %s, found %s", returnType, valueType)
	}
}

func (r *Resolver) checkCondition(cond ast.Expr, scope *Scope, stmtName string) {
	condType := r.checkExpr(cond, scope)
	if condType == nil {
		return
	}

	if !Equals(condType, TypeBool) {
		r.reportf(diag.CodeResolveTypeMismatch, cond.Span(),
			"type mismatch: %s condition expected bool, found %s", stmtName, condType)
	}
}

// checkExpr resolves and type-checks an expression, annotating it with its
// type. A nil result means the expression failed to check and has already
// been reported; callers suppress follow-on errors for nil operands.
func (r *Resolver) checkExpr(expr ast.Expr, scope *Scope) Type {
	switch e := expr.(type) {
	case *ast.Ident:
		sym := scope.Lookup(e.Name)
		if sym == nil {
			r.reportf(diag.CodeResolveUndeclaredIdentifier, e.Span(),
				"undeclared identifier '%s'", e.Name)
			return nil
		}
		e.Sym = sym
		if t, ok := sym.Type.(Type); ok {
			e.Typ = t
			return t
		}
		return nil
	case *ast.IntegerLit:
		e.Typ = TypeInt
		return TypeInt
	case *ast.FloatLit:
		e.Typ = TypeFloat
		return TypeFloat
	case *ast.StringLit:
		e.Typ = TypeString
		return TypeString
	case *ast.BoolLit:
		e.Typ = TypeBool
		return TypeBool
	case *ast.PrefixExpr:
		return r.checkPrefixExpr(e, scope)
	case *ast.InfixExpr:
		return r.checkInfixExpr(e, scope)
	case *ast.AssignExpr:
		return r.checkAssignExpr(e, scope)
	case *ast.CallExpr:
		return r.checkCallExpr(e, scope)
	default:
		return nil
	}
}

func (r *Resolver) checkPrefixExpr(e *ast.PrefixExpr, scope *Scope) Type {
	operand := r.checkExpr(e.Expr, scope)
	if operand == nil {
		return nil
	}

	switch e.Op {
	case lexer.MINUS:
		if !IsNumeric(operand) {
			r.reportf(diag.CodeResolveInvalidOperation, e.Span(),
				"invalid operation: unary '-' on %s", operand)
			return nil
		}
		e.Typ = operand
		return operand
	case lexer.BANG:
		if !Equals(operand, TypeBool) {
			r.reportf(diag.CodeResolveInvalidOperation, e.Span(),
				"invalid operation: '!' on %s", operand)
			return nil
		}
		e.Typ = TypeBool
		return TypeBool
	default:
		return nil
	}
}

func (r *Resolver) checkInfixExpr(e *ast.InfixExpr, scope *Scope) Type {
	left := r.checkExpr(e.Left, scope)
	right := r.checkExpr(e.Right, scope)
	if left == nil || right == nil {
		return nil
	}

	switch e.Op {
	case lexer.PLUS, lexer.MINUS, lexer.ASTERISK, lexer.SLASH:
		if !IsNumeric(left) || !IsNumeric(right) {
			r.reportf(diag.CodeResolveInvalidOperation, e.Span(),
				"invalid operation: '%s' on %s and %s", string(e.Op), left, right)
			return nil
		}
		// int widens to float when operands mix.
		result := left
		if Equals(left, TypeFloat) || Equals(right, TypeFloat) {
			result = TypeFloat
		}
		e.Typ = result
		return result
	case lexer.PERCENT:
		if !Equals(left, TypeInt) || !Equals(right, TypeInt) {
			r.reportf(diag.CodeResolveInvalidOperation, e.Span(),
				"invalid operation: '%%' on %s and %s", left, right)
			return nil
		}
		e.Typ = TypeInt
		return TypeInt
	case lexer.LT, lexer.LE, lexer.GT, lexer.GE:
		if !IsNumeric(left) || !IsNumeric(right) {
			r.reportf(diag.CodeResolveInvalidOperation, e.Span(),
				"invalid operation: '%s' on %s and %s", string(e.Op), left, right)
			return nil
		}
		e.Typ = TypeBool
		return TypeBool
	case lexer.EQ, lexer.NOT_EQ:
		comparable := Equals(left, right) ||
			(IsNumeric(left) && IsNumeric(right))
		if !comparable {
			r.reportf(diag.CodeResolveInvalidOperation, e.Span(),
				"invalid operation: '%s' on %s and %s", string(e.Op), left, right)
			return nil
		}
		e.Typ = TypeBool
		return TypeBool
	case lexer.AND, lexer.OR:
		if !Equals(left, TypeBool) || !Equals(right, TypeBool) {
			r.reportf(diag.CodeResolveInvalidOperation, e.Span(),
				"invalid operation: '%s' on %s and %s", string(e.Op), left, right)
			return nil
		}
		e.Typ = TypeBool
		return TypeBool
	default:
		return nil
	}
}

func (r *Resolver) checkAssignExpr(e *ast.AssignExpr, scope *Scope) Type {
	target, ok := e.Target.(*ast.Ident)
	if !ok {
		r.report(diag.CodeResolveInvalidAssignTarget,
			"invalid assignment target: expected a variable", e.Target.Span())
		r.checkExpr(e.Value, scope)
		return nil
	}

	targetType := r.checkExpr(target, scope)
	valueType := r.checkExpr(e.Value, scope)

	if target.Sym != nil && target.Sym.Kind == ast.SymbolFunc {
		r.reportf(diag.CodeResolveInvalidAssignTarget,
			e.Target.Span(), "cannot assign to function '%s'", target.Name)
		return nil
	}

	if targetType == nil || valueType == nil {
		return nil
	}

	if !AssignableTo(valueType, targetType) {
		r.reportf(diag.CodeResolveTypeMismatch, e.Value.Span(),
			"type mismatch: expected %s, found %s", targetType, valueType)
		return nil
	}

	e.Typ = targetType
	return targetType
}

func (r *Resolver) checkCallExpr(e *ast.CallExpr, scope *Scope) Type {
	calleeType := r.checkExpr(e.Callee, scope)
	if calleeType == nil {
		// Still check the arguments so their errors surface.
		for _, arg := range e.Args {
			r.checkExpr(arg, scope)
		}
		return nil
	}

	fnType, ok := calleeType.(*Function)
	if !ok {
		r.reportf(diag.CodeResolveCallOfNonFunction, e.Callee.Span(),
			"cannot call '%s': it is a %s, not a function", e.Callee.Name, calleeType)
		for _, arg := range e.Args {
			r.checkExpr(arg, scope)
		}
		return nil
	}

	if len(e.Args) != len(fnType.Params) {
		r.reportf(diag.CodeResolveArityMismatch, e.Span(),
			"'%s' expects %d argument(s), found %d", e.Callee.Name, len(fnType.Params), len(e.Args))
		for _, arg := range e.Args {
			r.checkExpr(arg, scope)
		}
		return fnType.Return
	}

	for i, arg := range e.Args {
		argType := r.checkExpr(arg, scope)
		if argType == nil || fnType.Params[i] == nil {
			continue
		}
		if !AssignableTo(argType, fnType.Params[i]) {
			r.reportf(diag.CodeResolveArgumentTypeMismatch, arg.Span(),
				"argument %d of '%s': expected %s, found %s", i+1, e.Callee.Name, fnType.Params[i], argType)
		}
	}

	e.Typ = fnType.Return
	return fnType.Return
}
