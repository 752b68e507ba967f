package diag

import (
	"fmt"
	"io"
	"strings"
)

// Formatter renders diagnostics in a Rust-style format with source snippets.
type Formatter struct {
	w       io.Writer
	sources map[string]string // source text by filename
}

// NewFormatter creates a formatter writing to w.
func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{
		w:       w,
		sources: make(map[string]string),
	}
}

// AddSource registers source text so spans from filename can be excerpted.
func (f *Formatter) AddSource(filename, src string) {
	if filename == "" {
		return
	}
	f.sources[filename] = src
}

// Format renders a single diagnostic.
func (f *Formatter) Format(d Diagnostic) {
	f.printHeader(d)

	src, ok := f.sources[d.Span.Filename]
	if !ok || !d.Span.IsValid() {
		if d.Span.IsValid() {
			fmt.Fprintf(f.w, "  --> %s\n", d.Span.String())
		}
		f.printFooter(d)
		return
	}

	f.printExcerpt(src, d.Span)
	f.printFooter(d)
}

// FormatAll renders a batch of diagnostics in order.
func (f *Formatter) FormatAll(diags []Diagnostic) {
	for i, d := range diags {
		if i > 0 {
			fmt.Fprintln(f.w)
		}
		f.Format(d)
	}
}

// printHeader prints the error header (error[CODE]: message).
func (f *Formatter) printHeader(d Diagnostic) {
	severity := string(d.Severity)
	if severity == "" {
		severity = "error"
	}

	if d.Code != "" {
		fmt.Fprintf(f.w, "%s[%s]: %s\n", severity, d.Code, d.Message)
	} else {
		fmt.Fprintf(f.w, "%s: %s\n", severity, d.Message)
	}
}

// printExcerpt prints the offending line with a ^ underline beneath the span.
func (f *Formatter) printExcerpt(src string, span Span) {
	lines := strings.Split(src, "\n")
	if span.Line < 1 || span.Line > len(lines) {
		fmt.Fprintf(f.w, "  --> %s\n", span.String())
		return
	}

	lineContent := lines[span.Line-1]
	lineNumStr := fmt.Sprintf("%d", span.Line)
	pad := strings.Repeat(" ", len(lineNumStr))

	fmt.Fprintf(f.w, "  --> %s\n", span.String())
	fmt.Fprintf(f.w, " %s |\n", pad)
	fmt.Fprintf(f.w, " %s | %s\n", lineNumStr, lineContent)

	width := span.End - span.Start
	if width < 1 {
		width = 1
	}
	col := span.Column - 1
	if col < 0 {
		col = 0
	}
	if col > len(lineContent) {
		col = len(lineContent)
	}
	if col+width > len(lineContent)+1 {
		width = len(lineContent) + 1 - col
		if width < 1 {
			width = 1
		}
	}

	fmt.Fprintf(f.w, " %s | %s%s\n", pad, strings.Repeat(" ", col), strings.Repeat("^", width))
	fmt.Fprintf(f.w, " %s |\n", pad)
}

// printFooter prints trailing notes and help text.
func (f *Formatter) printFooter(d Diagnostic) {
	for _, note := range d.Notes {
		fmt.Fprintf(f.w, "  = note: %s\n", note)
	}
	if d.Help != "" {
		fmt.Fprintf(f.w, "help: %s\n", d.Help)
	}
}
