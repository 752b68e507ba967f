// Package compiler wires the transpilation pipeline: lexing and parsing,
// symbol resolution, and C++ emission. It is the single entry point the CLI
// and embedding tools go through.
package compiler

import (
	"github.com/aemlang/aemc/internal/codegen"
	"github.com/aemlang/aemc/internal/diag"
	"github.com/aemlang/aemc/internal/parser"
	"github.com/aemlang/aemc/internal/types"
)

// Config carries per-invocation settings for the pipeline.
type Config struct {
	// Filename attributes diagnostic spans to a source path. Optional.
	Filename string

	Codegen codegen.Config
}

// Artifacts holds the text of the generated C++ translation unit.
type Artifacts struct {
	Header string
	Source string
}

// Transpile compiles a single AEM unit to C++. It returns nil artifacts when
// any stage reports an error; diagnostics from the failing stage are
// returned in source order. Later stages never run on input an earlier
// stage rejected, so codegen only ever sees a fully resolved tree.
//
// Transpile is stateless: the same unit name, source, and config always
// produce byte-identical artifacts.
func Transpile(unitName, source string, cfg Config) (*Artifacts, []diag.Diagnostic) {
	var opts []parser.Option
	if cfg.Filename != "" {
		opts = append(opts, parser.WithFilename(cfg.Filename))
	}

	p := parser.New(source, opts...)
	program := p.ParseProgram()

	var diags []diag.Diagnostic
	for _, lexErr := range p.LexErrors() {
		diags = append(diags, lexErr.ToDiagnostic())
	}
	for _, parseErr := range p.Errors() {
		diags = append(diags, parseErr.ToDiagnostic())
	}

	if diag.HasErrors(diags) {
		return nil, diags
	}

	r := types.NewResolver()
	r.Resolve(program)
	diags = append(diags, r.Errors...)

	if diag.HasErrors(diags) {
		return nil, diags
	}

	g := codegen.New(unitName, cfg.Codegen)
	artifacts := &Artifacts{
		Header: g.GenerateHeader(program),
		Source: g.GenerateSource(program),
	}

	return artifacts, diags
}
