package parser

import (
	"strings"
	"testing"

	"github.com/aemlang/aemc/internal/ast"
	"github.com/aemlang/aemc/internal/diag"
)

func TestErrorRecovery_ContinuesAfterBadDecl(t *testing.T) {
	input := `function (a: int) { }

function good() { }`

	p := New(input)
	program := p.ParseProgram()

	if len(p.Errors()) == 0 {
		t.Fatal("expected parse errors for the malformed declaration")
	}

	// The malformed declaration must not prevent the next one from parsing.
	found := false
	for _, decl := range program.Decls {
		if fn, ok := decl.(*ast.FunctionDecl); ok && fn.Name.Name == "good" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected 'good' to be parsed after recovery")
	}
}

func TestErrorRecovery_CollectsMultipleErrors(t *testing.T) {
	input := `function f( { }

var x int = 1;

function g() { }`

	p := New(input)
	program := p.ParseProgram()

	if len(p.Errors()) < 2 {
		t.Fatalf("expected at least 2 parse errors, got %d", len(p.Errors()))
	}

	found := false
	for _, decl := range program.Decls {
		if fn, ok := decl.(*ast.FunctionDecl); ok && fn.Name.Name == "g" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected 'g' to be parsed after recovery")
	}
}

func TestErrorRecovery_InsideBlock(t *testing.T) {
	input := `function f() {
    var x: int = ;
    var y: int = 2;
}`

	p := New(input)
	program := p.ParseProgram()

	if len(p.Errors()) == 0 {
		t.Fatal("expected parse errors for the missing initializer")
	}

	fn, ok := program.Decls[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected function declaration, got %T", program.Decls[0])
	}

	// The statement after the bad one must survive.
	found := false
	for _, stmt := range fn.Body.Stmts {
		if v, ok := stmt.(*ast.VarDecl); ok && v.Name.Name == "y" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected 'y' declaration to be parsed after recovery")
	}
}

func TestMissingSemicolonError(t *testing.T) {
	input := `function f() {
    var x: int = 1
}`

	p := New(input)
	p.ParseProgram()

	if len(p.Errors()) == 0 {
		t.Fatal("expected parse error for the missing semicolon")
	}
}

func TestUnexpectedEOFError(t *testing.T) {
	input := `function f() {
    return 1 +`

	p := New(input)
	p.ParseProgram()

	if len(p.Errors()) == 0 {
		t.Fatal("expected parse errors for truncated input")
	}

	foundEOF := false
	for _, e := range p.Errors() {
		if e.ToDiagnostic().Code == diag.CodeParseUnexpectedEOF {
			foundEOF = true
		}
	}
	if !foundEOF {
		t.Errorf("expected a %s diagnostic, got %v", diag.CodeParseUnexpectedEOF, p.Errors())
	}
}

func TestExpectedTokenMessageNamesBoth(t *testing.T) {
	input := `var x int = 1;`

	p := New(input)
	p.ParseProgram()

	if len(p.Errors()) == 0 {
		t.Fatal("expected a parse error")
	}

	msg := p.Errors()[0].Message
	if !strings.Contains(msg, "':'") || !strings.Contains(msg, "int") {
		t.Errorf("expected message naming ':' and the found token, got %q", msg)
	}
}

func TestParserNeverLoopsOnGarbage(t *testing.T) {
	// A soup of tokens with no valid declaration must terminate.
	inputs := []string{
		")))",
		"}{)(",
		"; ; ;",
		"-> -> ->",
		"function",
		"var",
	}

	for _, input := range inputs {
		p := New(input)
		p.ParseProgram() // must not hang

		if len(p.Errors()) == 0 {
			t.Errorf("input %q - expected parse errors", input)
		}
	}
}

func TestFilenameAttachedToErrorSpans(t *testing.T) {
	p := New("var x int;", WithFilename("bad.aem"))
	p.ParseProgram()

	if len(p.Errors()) == 0 {
		t.Fatal("expected a parse error")
	}
	if p.Errors()[0].Span.Filename != "bad.aem" {
		t.Errorf("expected filename %q on error span, got %q", "bad.aem", p.Errors()[0].Span.Filename)
	}
}
