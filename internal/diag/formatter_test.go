package diag

import (
	"strings"
	"testing"
)

func TestFormatter_HeaderLine(t *testing.T) {
	var out strings.Builder
	f := NewFormatter(&out)

	f.Format(Diagnostic{
		Severity: SeverityError,
		Code:     CodeResolveUndeclaredIdentifier,
		Message:  "undeclared identifier 'missing'",
	})

	got := out.String()
	want := "error[RESOLVE_UNDECLARED_IDENTIFIER]: undeclared identifier 'missing'\n"
	if got != want {
		t.Errorf("header mismatch.\nwant: %q\ngot:  %q", want, got)
	}
}

func TestFormatter_ExcerptWithUnderline(t *testing.T) {
	src := "var x: int = missing;\n"

	var out strings.Builder
	f := NewFormatter(&out)
	f.AddSource("main.aem", src)

	f.Format(Diagnostic{
		Severity: SeverityError,
		Code:     CodeResolveUndeclaredIdentifier,
		Message:  "undeclared identifier 'missing'",
		Span: Span{
			Filename: "main.aem",
			Line:     1,
			Column:   14,
			Start:    13,
			End:      20,
		},
	})

	got := out.String()

	if !strings.Contains(got, "--> main.aem:1:14") {
		t.Errorf("expected location line, got:\n%s", got)
	}
	if !strings.Contains(got, "var x: int = missing;") {
		t.Errorf("expected source excerpt, got:\n%s", got)
	}
	if !strings.Contains(got, "^^^^^^^") {
		t.Errorf("expected 7-wide underline, got:\n%s", got)
	}
}

func TestFormatter_UnknownSourceFallsBackToLocation(t *testing.T) {
	var out strings.Builder
	f := NewFormatter(&out)

	f.Format(Diagnostic{
		Severity: SeverityError,
		Message:  "boom",
		Span:     Span{Filename: "other.aem", Line: 2, Column: 3},
	})

	got := out.String()
	if !strings.Contains(got, "--> other.aem:2:3") {
		t.Errorf("expected bare location, got:\n%s", got)
	}
	if strings.Contains(got, "|") {
		t.Errorf("did not expect an excerpt gutter, got:\n%s", got)
	}
}

func TestFormatter_NotesAndHelp(t *testing.T) {
	var out strings.Builder
	f := NewFormatter(&out)

	d := Diagnostic{Severity: SeverityError, Message: "bad"}
	d = d.WithNote("a note").WithHelp("a hint")
	f.Format(d)

	got := out.String()
	if !strings.Contains(got, "= note: a note") {
		t.Errorf("expected note line, got:\n%s", got)
	}
	if !strings.Contains(got, "help: a hint") {
		t.Errorf("expected help line, got:\n%s", got)
	}
}

func TestFormatAll_SeparatesDiagnostics(t *testing.T) {
	var out strings.Builder
	f := NewFormatter(&out)

	f.FormatAll([]Diagnostic{
		{Severity: SeverityError, Message: "first"},
		{Severity: SeverityError, Message: "second"},
	})

	got := out.String()
	if !strings.Contains(got, "error: first\n\nerror: second\n") {
		t.Errorf("expected blank line between diagnostics, got:\n%s", got)
	}
}
