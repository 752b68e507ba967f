package codegen

import (
	"fmt"
	"strings"

	"github.com/aemlang/aemc/internal/ast"
	"github.com/aemlang/aemc/internal/lexer"
	"github.com/aemlang/aemc/internal/types"
)

// C++ expression precedence, loosest first. Used to decide where emitted
// expressions need parentheses; the ladder mirrors the C++ operator table
// for the subset AEM can produce.
const (
	precLowest = iota
	precAssign
	precOr
	precAnd
	precEquality
	precRelational
	precAdditive
	precMultiplicative
	precUnary
	precPrimary
)

var infixPrec = map[lexer.TokenType]int{
	lexer.OR:       precOr,
	lexer.AND:      precAnd,
	lexer.EQ:       precEquality,
	lexer.NOT_EQ:   precEquality,
	lexer.LT:       precRelational,
	lexer.LE:       precRelational,
	lexer.GT:       precRelational,
	lexer.GE:       precRelational,
	lexer.PLUS:     precAdditive,
	lexer.MINUS:    precAdditive,
	lexer.ASTERISK: precMultiplicative,
	lexer.SLASH:    precMultiplicative,
	lexer.PERCENT:  precMultiplicative,
}

// cppType maps a resolved AEM type to its C++ spelling.
func cppType(t types.Type) string {
	p, ok := t.(*types.Primitive)
	if !ok {
		panic(fmt.Sprintf("codegen: no C++ spelling for type %v", t))
	}

	switch p.Kind {
	case types.Int:
		return "int"
	case types.Float:
		return "double"
	case types.Bool:
		return "bool"
	case types.String:
		return "std::string"
	case types.Void:
		return "void"
	default:
		panic(fmt.Sprintf("codegen: no C++ spelling for primitive %q", p.Kind))
	}
}

// resolvedType extracts the semantic type the resolver attached to a type
// annotation. Reaching an unresolved annotation means codegen ran on a
// unit that failed resolution, which the pipeline must never allow.
func resolvedType(t ast.TypeExpr) types.Type {
	named, ok := t.(*ast.NamedType)
	if !ok {
		panic(fmt.Sprintf("codegen: unexpected type annotation %T", t))
	}

	resolved, ok := named.Resolved.(types.Type)
	if !ok || resolved == nil {
		panic(fmt.Sprintf("codegen: unresolved type annotation '%s'", named.Name.Name))
	}

	return resolved
}

// expr renders an expression, parenthesizing whenever its own binding is
// looser than the context demands.
func (g *Generator) expr(e ast.Expr, parent int) string {
	switch ex := e.(type) {
	case *ast.Ident:
		return ex.Name
	case *ast.IntegerLit:
		return ex.Text
	case *ast.FloatLit:
		return ex.Text
	case *ast.BoolLit:
		if ex.Value {
			return "true"
		}
		return "false"
	case *ast.StringLit:
		return quoteCpp(ex.Value)
	case *ast.PrefixExpr:
		operand := g.expr(ex.Expr, precUnary)
		// A doubled "-" would tokenize as C++ predecrement.
		if strings.HasPrefix(operand, string(ex.Op)) {
			operand = "(" + operand + ")"
		}
		return paren(string(ex.Op)+operand, precUnary, parent)
	case *ast.InfixExpr:
		prec, ok := infixPrec[ex.Op]
		if !ok {
			panic(fmt.Sprintf("codegen: unexpected operator %q", ex.Op))
		}
		left := g.expr(ex.Left, prec)
		right := g.expr(ex.Right, prec+1)
		return paren(left+" "+string(ex.Op)+" "+right, prec, parent)
	case *ast.AssignExpr:
		target := g.expr(ex.Target, precAssign+1)
		value := g.expr(ex.Value, precAssign)
		return paren(target+" = "+value, precAssign, parent)
	case *ast.CallExpr:
		var args []string
		for _, arg := range ex.Args {
			args = append(args, g.expr(arg, precAssign))
		}
		return ex.Callee.Name + "(" + strings.Join(args, ", ") + ")"
	default:
		panic(fmt.Sprintf("codegen: unexpected expression %T", e))
	}
}

func paren(text string, prec, parent int) string {
	if prec < parent {
		return "(" + text + ")"
	}
	return text
}

// quoteCpp renders a decoded string value as a C++ string literal.
func quoteCpp(value string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range value {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// usesString reports whether any declaration, local, or literal in the unit
// involves the string type. The header needs <string> exactly when this
// holds, and the source inherits the include through the header.
func usesString(program *ast.Program) bool {
	for _, decl := range program.Decls {
		switch d := decl.(type) {
		case *ast.VarDecl:
			if typeIsString(d.DeclType) || exprUsesString(d.Value) {
				return true
			}
		case *ast.FunctionDecl:
			if typeIsString(d.ReturnType) {
				return true
			}
			for _, p := range d.Params {
				if typeIsString(p.Type) {
					return true
				}
			}
			if blockUsesString(d.Body) {
				return true
			}
		}
	}
	return false
}

func typeIsString(t ast.TypeExpr) bool {
	named, ok := t.(*ast.NamedType)
	if !ok {
		return false
	}
	resolved, ok := named.Resolved.(types.Type)
	return ok && types.Equals(resolved, types.TypeString)
}

func blockUsesString(b *ast.Block) bool {
	if b == nil {
		return false
	}
	for _, stmt := range b.Stmts {
		if stmtUsesString(stmt) {
			return true
		}
	}
	return false
}

func stmtUsesString(stmt ast.Stmt) bool {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		return typeIsString(s.DeclType) || exprUsesString(s.Value)
	case *ast.ReturnStmt:
		return exprUsesString(s.Value)
	case *ast.IfStmt:
		return exprUsesString(s.Cond) || blockUsesString(s.Then) ||
			(s.Else != nil && stmtUsesString(s.Else))
	case *ast.WhileStmt:
		return exprUsesString(s.Cond) || blockUsesString(s.Body)
	case *ast.Block:
		return blockUsesString(s)
	case *ast.ExprStmt:
		return exprUsesString(s.Expr)
	default:
		return false
	}
}

func exprUsesString(e ast.Expr) bool {
	switch ex := e.(type) {
	case nil:
		return false
	case *ast.StringLit:
		return true
	case *ast.PrefixExpr:
		return exprUsesString(ex.Expr)
	case *ast.InfixExpr:
		return exprUsesString(ex.Left) || exprUsesString(ex.Right)
	case *ast.AssignExpr:
		return exprUsesString(ex.Target) || exprUsesString(ex.Value)
	case *ast.CallExpr:
		for _, arg := range ex.Args {
			if exprUsesString(arg) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
