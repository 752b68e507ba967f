package parser

import (
	"github.com/aemlang/aemc/internal/ast"
	"github.com/aemlang/aemc/internal/lexer"
)

// parseStmt dispatches on the leading token. Every statement parser is
// entered with curTok on the statement's first token and returns with curTok
// on the next statement's first token.
func (p *Parser) parseStmt() ast.Stmt {
	switch p.curTok.Type {
	case lexer.VAR:
		return p.parseVarDecl()
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.LBRACE:
		return p.parseBlock()
	default:
		return p.parseExprStmt()
	}
}

// parseBlock parses a braced statement sequence with curTok on '{'. On
// success curTok rests on the token after the closing '}'.
func (p *Parser) parseBlock() *ast.Block {
	start := p.curTok.Span

	if p.curTok.Type != lexer.LBRACE {
		p.reportExpectedError("'{' to start block", p.curTok)
		return nil
	}

	block := ast.NewBlock(nil, start)

	p.nextToken()

	for p.curTok.Type != lexer.RBRACE && p.curTok.Type != lexer.EOF {
		prevTok := p.curTok
		stmt := p.parseStmt()
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
			continue
		}

		if p.curTok.Type == lexer.RBRACE || p.curTok.Type == lexer.EOF {
			break
		}

		p.recoverStatement(prevTok)
	}

	if p.curTok.Type != lexer.RBRACE {
		p.reportExpectedError("'}' to close block", p.curTok)
		return block
	}

	block.SetSpan(mergeSpan(start, p.curTok.Span))

	p.nextToken()

	return block
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	start := p.curTok.Span

	if p.peekTok.Type == lexer.SEMICOLON {
		if !p.expect(lexer.SEMICOLON) {
			return nil
		}

		span := mergeSpan(start, p.curTok.Span)
		stmt := ast.NewReturnStmt(nil, span)

		p.nextToken()

		return stmt
	}

	p.nextToken()

	value := p.parseExpr()
	if value == nil {
		return nil
	}

	if !p.expect(lexer.SEMICOLON) {
		return nil
	}

	span := mergeSpan(start, value.Span())
	span = mergeSpan(span, p.curTok.Span)
	stmt := ast.NewReturnStmt(value, span)

	p.nextToken()

	return stmt
}

func (p *Parser) parseIfStmt() ast.Stmt {
	start := p.curTok.Span

	p.nextToken()

	cond := p.parseExpr()
	if cond == nil {
		return nil
	}

	if !p.expect(lexer.LBRACE) {
		return nil
	}

	then := p.parseBlock()
	if then == nil {
		return nil
	}

	span := mergeSpan(start, then.Span())

	var els ast.Stmt
	if p.curTok.Type == lexer.ELSE {
		switch p.peekTok.Type {
		case lexer.IF:
			p.nextToken() // move to 'if'
			els = p.parseIfStmt()
		case lexer.LBRACE:
			p.nextToken() // move to '{'
			els = p.parseBlock()
		default:
			p.reportExpectedError("'{' or 'if' after 'else'", p.peekTok)
			return nil
		}

		if els == nil {
			return nil
		}
		span = mergeSpan(span, els.Span())
	}

	return ast.NewIfStmt(cond, then, els, span)
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	start := p.curTok.Span

	p.nextToken()

	cond := p.parseExpr()
	if cond == nil {
		return nil
	}

	if !p.expect(lexer.LBRACE) {
		return nil
	}

	body := p.parseBlock()
	if body == nil {
		return nil
	}

	span := mergeSpan(start, body.Span())

	return ast.NewWhileStmt(cond, body, span)
}

func (p *Parser) parseExprStmt() ast.Stmt {
	expr := p.parseExpr()
	if expr == nil {
		return nil
	}

	if p.peekTok.Type != lexer.SEMICOLON {
		help := "statements must end with a semicolon `;`\n\nExample:\n  var x: int = 5;\n  x = 10;"
		p.reportErrorWithHelp("expected ';' after expression", p.peekTok.Span, help)
		return nil
	}

	p.nextToken() // move to ';'

	span := mergeSpan(expr.Span(), p.curTok.Span)
	stmt := ast.NewExprStmt(expr, span)

	p.nextToken()

	return stmt
}
