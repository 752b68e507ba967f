package lexer

import (
	"testing"
)

func TestNextToken_Basic(t *testing.T) {
	input := `var x: int = 10;`

	tests := []struct {
		expectedType  TokenType
		expectedValue string
	}{
		{VAR, "var"},
		{IDENT, "x"},
		{COLON, ":"},
		{IDENT, "int"},
		{ASSIGN, "="},
		{INT, "10"},
		{SEMICOLON, ";"},
		{EOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Value != tt.expectedValue {
			t.Fatalf("tests[%d] - value wrong. expected=%q, got=%q",
				i, tt.expectedValue, tok.Value)
		}
	}
}

func TestNextToken_Operators(t *testing.T) {
	input := `= + - * / % == != < > <= >= && || ! ->`

	tests := []struct {
		expectedType  TokenType
		expectedValue string
	}{
		{ASSIGN, "="},
		{PLUS, "+"},
		{MINUS, "-"},
		{ASTERISK, "*"},
		{SLASH, "/"},
		{PERCENT, "%"},
		{EQ, "=="},
		{NOT_EQ, "!="},
		{LT, "<"},
		{GT, ">"},
		{LE, "<="},
		{GE, ">="},
		{AND, "&&"},
		{OR, "||"},
		{BANG, "!"},
		{ARROW, "->"},
		{EOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Value != tt.expectedValue {
			t.Fatalf("tests[%d] - value wrong. expected=%q, got=%q",
				i, tt.expectedValue, tok.Value)
		}
	}
}

func TestNextToken_Keywords(t *testing.T) {
	input := `function var return if else while true false`

	expected := []TokenType{
		FUNCTION, VAR, RETURN, IF, ELSE, WHILE, TRUE, FALSE, EOF,
	}

	l := New(input)

	for i, typ := range expected {
		tok := l.NextToken()
		if tok.Type != typ {
			t.Fatalf("step %d - expected token %q, got %q", i, typ, tok.Type)
		}
	}
}

func TestNextToken_FunctionDecl(t *testing.T) {
	input := `function add(a: int, b: int) -> int {
    return a + b;
}`

	tests := []struct {
		expectedType  TokenType
		expectedValue string
	}{
		{FUNCTION, "function"},
		{IDENT, "add"},
		{LPAREN, "("},
		{IDENT, "a"},
		{COLON, ":"},
		{IDENT, "int"},
		{COMMA, ","},
		{IDENT, "b"},
		{COLON, ":"},
		{IDENT, "int"},
		{RPAREN, ")"},
		{ARROW, "->"},
		{IDENT, "int"},
		{LBRACE, "{"},
		{RETURN, "return"},
		{IDENT, "a"},
		{PLUS, "+"},
		{IDENT, "b"},
		{SEMICOLON, ";"},
		{RBRACE, "}"},
		{EOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Value != tt.expectedValue {
			t.Fatalf("tests[%d] - value wrong. expected=%q, got=%q",
				i, tt.expectedValue, tok.Value)
		}
	}
}

func TestNextToken_Numbers(t *testing.T) {
	tests := []struct {
		input         string
		expectedType  TokenType
		expectedValue string
	}{
		{"0", INT, "0"},
		{"1343456", INT, "1343456"},
		{"3.14", FLOAT, "3.14"},
		{"1e9", FLOAT, "1e9"},
		{"2.5e-3", FLOAT, "2.5e-3"},
		{"1E+2", FLOAT, "1E+2"},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Errorf("input %q - tokentype wrong. expected=%q, got=%q",
				tt.input, tt.expectedType, tok.Type)
		}

		if tok.Value != tt.expectedValue {
			t.Errorf("input %q - value wrong. expected=%q, got=%q",
				tt.input, tt.expectedValue, tok.Value)
		}
	}
}

func TestNextToken_DotWithoutDigitsStaysInt(t *testing.T) {
	// "5." is an int followed by an unexpected rune, not a float.
	l := New("5.")

	tok := l.NextToken()
	if tok.Type != INT || tok.Value != "5" {
		t.Fatalf("expected INT 5, got %q %q", tok.Type, tok.Value)
	}
}

func TestNextToken_StringLiteral(t *testing.T) {
	input := `"hello" "a\nb" "quote: \" done"`

	tests := []struct {
		expectedRaw   string
		expectedValue string
	}{
		{`"hello"`, "hello"},
		{`"a\nb"`, "a\nb"},
		{`"quote: \" done"`, `quote: " done`},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != STRING {
			t.Fatalf("tests[%d] - expected STRING, got %q", i, tok.Type)
		}

		if tok.Raw != tt.expectedRaw {
			t.Errorf("tests[%d] - raw wrong. expected=%q, got=%q",
				i, tt.expectedRaw, tok.Raw)
		}

		if tok.Value != tt.expectedValue {
			t.Errorf("tests[%d] - value wrong. expected=%q, got=%q",
				i, tt.expectedValue, tok.Value)
		}
	}
}

func TestNextToken_CommentsAreSkipped(t *testing.T) {
	input := `var x: int; // trailing comment
/* block
comment */ var y: int;
/* nested /* inner */ still outer */ var z: int;`

	expected := []TokenType{
		VAR, IDENT, COLON, IDENT, SEMICOLON,
		VAR, IDENT, COLON, IDENT, SEMICOLON,
		VAR, IDENT, COLON, IDENT, SEMICOLON,
		EOF,
	}

	l := New(input)

	for i, typ := range expected {
		tok := l.NextToken()
		if tok.Type != typ {
			t.Fatalf("step %d - expected token %q, got %q (value %q)", i, typ, tok.Type, tok.Value)
		}
	}

	if len(l.Errors) != 0 {
		t.Fatalf("expected no lexer errors, got %v", l.Errors)
	}
}

func TestTriviaMode_EmitsCommentsAndWhitespace(t *testing.T) {
	input := "var x; // note\n"

	expected := []TokenType{
		VAR,
		WHITESPACE,
		IDENT,
		SEMICOLON,
		WHITESPACE,
		LINE_COMMENT,
		NEWLINE,
		EOF,
	}

	l := NewWithTrivia(input)

	for i, typ := range expected {
		tok := l.NextToken()
		if tok.Type != typ {
			t.Fatalf("step %d - expected token %q, got %q", i, typ, tok.Type)
		}
	}
}

func TestSpans_LineAndColumn(t *testing.T) {
	input := "var x;\nvar yy;"

	tests := []struct {
		expectedType TokenType
		line         int
		column       int
	}{
		{VAR, 1, 1},
		{IDENT, 1, 5},
		{SEMICOLON, 1, 6},
		{VAR, 2, 1},
		{IDENT, 2, 5},
		{SEMICOLON, 2, 7},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Span.Line != tt.line || tok.Span.Column != tt.column {
			t.Errorf("tests[%d] - span wrong. expected %d:%d, got %d:%d",
				i, tt.line, tt.column, tok.Span.Line, tok.Span.Column)
		}
	}
}

func TestSpans_Filename(t *testing.T) {
	l := New("var x;")
	l.SetFilename("main.aem")

	tok := l.NextToken()
	if tok.Span.Filename != "main.aem" {
		t.Fatalf("expected filename %q, got %q", "main.aem", tok.Span.Filename)
	}
}

func TestNextToken_UnicodeIdentifiers(t *testing.T) {
	l := New("naïve _under x1")

	tests := []string{"naïve", "_under", "x1"}
	for i, want := range tests {
		tok := l.NextToken()
		if tok.Type != IDENT || tok.Value != want {
			t.Fatalf("tests[%d] - expected IDENT %q, got %q %q", i, want, tok.Type, tok.Value)
		}
	}
}
