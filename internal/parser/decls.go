package parser

import (
	"github.com/aemlang/aemc/internal/ast"
	"github.com/aemlang/aemc/internal/lexer"
)

func (p *Parser) parseDecl() ast.Decl {
	switch p.curTok.Type {
	case lexer.FUNCTION:
		return p.parseFunctionDecl()
	case lexer.VAR:
		stmt := p.parseVarDecl()
		if stmt == nil {
			return nil
		}
		return stmt.(*ast.VarDecl)
	default:
		p.reportExpectedError("'function' or 'var' declaration", p.curTok)
		return nil
	}
}

// parseFunctionDecl parses: function name(a: type, b: type) -> type { ... }
// The return type clause is optional; omitting it declares a void function.
func (p *Parser) parseFunctionDecl() ast.Decl {
	start := p.curTok.Span

	if !p.expect(lexer.IDENT) {
		return nil
	}

	nameTok := p.curTok
	name := ast.NewIdent(nameTok.Value, nameTok.Span)

	if !p.expect(lexer.LPAREN) {
		return nil
	}

	params := make([]*ast.Param, 0)

	if p.peekTok.Type != lexer.RPAREN {
		p.nextToken() // move to first parameter token

		items, ok := parseDelimited[*ast.Param](p, delimitedConfig{
			Closing:             lexer.RPAREN,
			Separator:           lexer.COMMA,
			MissingElementMsg:   "expected parameter declaration",
			MissingSeparatorMsg: "expected ',' or ')' in parameter list",
		}, func(int) (*ast.Param, bool) {
			param := p.parseParam()
			if param == nil {
				return nil, false
			}
			return param, true
		})
		if !ok {
			return nil
		}

		params = items
	} else {
		if !p.expect(lexer.RPAREN) {
			return nil
		}
	}

	var returnType ast.TypeExpr
	if p.peekTok.Type == lexer.ARROW {
		p.nextToken() // move to '->'
		p.nextToken() // move to return type start

		returnType = p.parseType()
		if returnType == nil {
			return nil
		}
	}

	if !p.expect(lexer.LBRACE) {
		return nil
	}

	body := p.parseBlock()
	if body == nil {
		return nil
	}

	span := mergeSpan(start, body.Span())

	return ast.NewFunctionDecl(name, params, returnType, body, span)
}

// parseParam parses a single "name: type" parameter with curTok on the name.
// On success curTok rests on the last token of the type.
func (p *Parser) parseParam() *ast.Param {
	if p.curTok.Type != lexer.IDENT {
		p.reportExpectedError("parameter name", p.curTok)
		return nil
	}

	nameTok := p.curTok
	name := ast.NewIdent(nameTok.Value, nameTok.Span)

	if !p.expect(lexer.COLON) {
		return nil
	}

	p.nextToken() // move to type start

	typ := p.parseType()
	if typ == nil {
		return nil
	}

	span := mergeSpan(nameTok.Span, typ.Span())

	return ast.NewParam(name, typ, span)
}

// parseVarDecl parses: var name: type [= expr];
// It serves both top-level declarations and statements.
func (p *Parser) parseVarDecl() ast.Stmt {
	start := p.curTok.Span

	if !p.expect(lexer.IDENT) {
		return nil
	}

	nameTok := p.curTok
	name := ast.NewIdent(nameTok.Value, nameTok.Span)

	if !p.expect(lexer.COLON) {
		return nil
	}

	p.nextToken() // move to type start

	typ := p.parseType()
	if typ == nil {
		help := "variable declarations need an explicit type\n\nExample:\n  var " + nameTok.Value + ": int = 5;"
		p.reportErrorWithHelp("expected type in declaration of '"+nameTok.Value+"'", p.curTok.Span, help)
		return nil
	}

	var value ast.Expr
	if p.peekTok.Type == lexer.ASSIGN {
		p.nextToken() // move to '='
		p.nextToken() // move to initializer start

		value = p.parseExpr()
		if value == nil {
			return nil
		}
	}

	if !p.expect(lexer.SEMICOLON) {
		return nil
	}

	span := mergeSpan(start, p.curTok.Span)
	decl := ast.NewVarDecl(name, typ, value, span)

	p.nextToken()

	return decl
}

// parseType parses a type annotation. AEM types are bare names resolved
// against the primitive table later; the parser only checks shape.
func (p *Parser) parseType() ast.TypeExpr {
	if p.curTok.Type != lexer.IDENT {
		p.reportExpectedError("type name", p.curTok)
		return nil
	}

	nameTok := p.curTok
	name := ast.NewIdent(nameTok.Value, nameTok.Span)

	return ast.NewNamedType(name, nameTok.Span)
}
