package diag

import "fmt"

// Stage identifies which pipeline phase produced the diagnostic.
type Stage string

const (
	StageLexer   Stage = "lexer"
	StageParser  Stage = "parser"
	StageResolve Stage = "resolve"
	StageCodegen Stage = "codegen"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Code is a stable identifier for a diagnostic.
type Code string

const (
	// Lexer errors
	CodeLexerUnterminatedString       Code = "LEXER_UNTERMINATED_STRING"
	CodeLexerUnterminatedBlockComment Code = "LEXER_UNTERMINATED_BLOCK_COMMENT"
	CodeLexerIllegalRune              Code = "LEXER_ILLEGAL_RUNE"
	CodeLexerMalformedNumber          Code = "LEXER_MALFORMED_NUMBER"

	// Parser errors
	CodeParseUnexpectedToken Code = "PARSE_UNEXPECTED_TOKEN"
	CodeParseUnexpectedEOF   Code = "PARSE_UNEXPECTED_EOF"

	// Resolver errors
	CodeResolveUndeclaredIdentifier  Code = "RESOLVE_UNDECLARED_IDENTIFIER"
	CodeResolveUnknownType           Code = "RESOLVE_UNKNOWN_TYPE"
	CodeResolveTypeMismatch          Code = "RESOLVE_TYPE_MISMATCH"
	CodeResolveArityMismatch         Code = "RESOLVE_ARITY_MISMATCH"
	CodeResolveArgumentTypeMismatch  Code = "RESOLVE_ARGUMENT_TYPE_MISMATCH"
	CodeResolveRedeclared            Code = "RESOLVE_REDECLARED"
	CodeResolveInvalidAssignTarget   Code = "RESOLVE_INVALID_ASSIGN_TARGET"
	CodeResolveInvalidOperation      Code = "RESOLVE_INVALID_OPERATION"
	CodeResolveCallOfNonFunction     Code = "RESOLVE_CALL_OF_NON_FUNCTION"
	CodeResolveMissingReturnValue    Code = "RESOLVE_MISSING_RETURN_VALUE"
	CodeResolveUnexpectedReturnValue Code = "RESOLVE_UNEXPECTED_RETURN_VALUE"

	// Pipeline invariant violations. Never a user input error.
	CodeInternal Code = "INTERNAL"
)

// Span represents a location in source code.
type Span struct {
	Filename string
	Line     int
	Column   int
	Start    int
	End      int
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid returns true if the span has valid location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Diagnostic is a pipeline diagnostic surfaced to end-users.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
	Span     Span
	Notes    []string // Additional notes to display
	Help     string   // Help text, may include example code
}

// WithNote adds a note to the diagnostic.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// WithHelp adds help text to the diagnostic.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}

// HasErrors reports whether any diagnostic in the slice is an error.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
