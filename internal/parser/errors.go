package parser

import (
	"fmt"

	"github.com/aemlang/aemc/internal/diag"
	"github.com/aemlang/aemc/internal/lexer"
)

// ParseError captures a recoverable parsing error with location context.
type ParseError struct {
	Message  string
	Span     lexer.Span
	Severity diag.Severity
	Code     diag.Code
	Help     string
}

// ToDiagnostic converts a parse error into a shared diagnostic structure.
func (e ParseError) ToDiagnostic() diag.Diagnostic {
	code := e.Code
	if code == "" {
		code = diag.CodeParseUnexpectedToken
	}
	return diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: e.Severity,
		Code:     code,
		Message:  e.Message,
		Span: diag.Span{
			Filename: e.Span.Filename,
			Line:     e.Span.Line,
			Column:   e.Span.Column,
			Start:    e.Span.Start,
			End:      e.Span.End,
		},
		Help: e.Help,
	}
}

// emitParseDiagnostic records a recoverable diagnostic without aborting
// parsing. Call sites must supply the best-effort span available at the
// failure site so batch reports point at the right source.
func (p *Parser) emitParseDiagnostic(msg string, span lexer.Span, severity diag.Severity, code diag.Code, help string) {
	if span.Filename == "" && p.filename != "" {
		span.Filename = p.filename
	}

	p.errors = append(p.errors, ParseError{
		Message:  msg,
		Span:     span,
		Severity: severity,
		Code:     code,
		Help:     help,
	})
}

// reportError reports a simple error.
func (p *Parser) reportError(msg string, span lexer.Span) {
	p.emitParseDiagnostic(msg, span, diag.SeverityError, diag.CodeParseUnexpectedToken, "")
}

// reportErrorWithHelp reports an error with help text.
func (p *Parser) reportErrorWithHelp(msg string, span lexer.Span, help string) {
	p.emitParseDiagnostic(msg, span, diag.SeverityError, diag.CodeParseUnexpectedToken, help)
}

// reportExpectedError reports an error when an expected token is missing.
func (p *Parser) reportExpectedError(expected string, found lexer.Token) {
	foundStr := found.Value
	if foundStr == "" {
		foundStr = string(found.Type)
	}

	if found.Type == lexer.EOF {
		msg := fmt.Sprintf("expected %s, found end of input", expected)
		help := "This might be due to:\n  - Missing closing brace `}`\n  - Missing semicolon `;`\n  - Incomplete expression"
		p.emitParseDiagnostic(msg, found.Span, diag.SeverityError, diag.CodeParseUnexpectedEOF, help)
		return
	}

	msg := fmt.Sprintf("expected %s, found `%s`", expected, foundStr)
	p.emitParseDiagnostic(msg, found.Span, diag.SeverityError, diag.CodeParseUnexpectedToken, "")
}
