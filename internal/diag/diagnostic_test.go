package diag

import "testing"

func TestHasErrors(t *testing.T) {
	tests := []struct {
		name  string
		diags []Diagnostic
		want  bool
	}{
		{"empty", nil, false},
		{"only warnings", []Diagnostic{{Severity: SeverityWarning}}, false},
		{"one error", []Diagnostic{{Severity: SeverityWarning}, {Severity: SeverityError}}, true},
	}

	for _, tt := range tests {
		if got := HasErrors(tt.diags); got != tt.want {
			t.Errorf("%s - HasErrors = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSpanString(t *testing.T) {
	s := Span{Filename: "main.aem", Line: 3, Column: 7}
	if got := s.String(); got != "main.aem:3:7" {
		t.Errorf("Span.String() = %q", got)
	}

	s = Span{Line: 3, Column: 7}
	if got := s.String(); got != "3:7" {
		t.Errorf("Span.String() without filename = %q", got)
	}
}

func TestSpanIsValid(t *testing.T) {
	if (Span{}).IsValid() {
		t.Error("zero span must be invalid")
	}
	if !(Span{Line: 1, Column: 1}).IsValid() {
		t.Error("1:1 span must be valid")
	}
}

func TestWithNoteAndHelp(t *testing.T) {
	d := Diagnostic{Message: "base"}
	d = d.WithNote("first").WithNote("second").WithHelp("try this")

	if len(d.Notes) != 2 || d.Notes[0] != "first" || d.Notes[1] != "second" {
		t.Errorf("unexpected notes %v", d.Notes)
	}
	if d.Help != "try this" {
		t.Errorf("unexpected help %q", d.Help)
	}
}
