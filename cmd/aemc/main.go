package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aemlang/aemc/internal/codegen"
	"github.com/aemlang/aemc/internal/compiler"
	"github.com/aemlang/aemc/internal/diag"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("aemc", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	outDir := fs.String("o", "", "output directory (defaults to the source file's directory)")
	guard := fs.String("guard", "pragma", "header include guard style: pragma or macro")
	indent := fs.Int("indent", 4, "indentation width of the generated C++")
	lineDirectives := fs.Bool("g", false, "emit #line directives pointing back at the AEM source")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: aemc [options] <file.aem>\n")
		fmt.Fprintf(os.Stderr, "\nTranspiles an AEM source file to a C++ header/source pair.\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	var guardStyle codegen.GuardStyle
	switch *guard {
	case "pragma":
		guardStyle = codegen.GuardPragmaOnce
	case "macro":
		guardStyle = codegen.GuardMacro
	default:
		fmt.Fprintf(os.Stderr, "aemc: invalid -guard value %q (want pragma or macro)\n", *guard)
		return 2
	}

	inputPath := fs.Arg(0)

	source, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "aemc: %v\n", err)
		return 1
	}

	unit := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))

	cfg := compiler.Config{
		Filename: inputPath,
		Codegen: codegen.Config{
			IncludeGuardStyle:  guardStyle,
			IndentWidth:        *indent,
			EmitLineDirectives: *lineDirectives,
		},
	}

	artifacts, diags := compiler.Transpile(unit, string(source), cfg)

	if len(diags) > 0 {
		formatter := diag.NewFormatter(os.Stderr)
		formatter.AddSource(inputPath, string(source))
		formatter.FormatAll(diags)
	}

	// No partial output: artifacts are only written when every stage
	// succeeded.
	if artifacts == nil || diag.HasErrors(diags) {
		return 1
	}

	dir := *outDir
	if dir == "" {
		dir = filepath.Dir(inputPath)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "aemc: %v\n", err)
		return 1
	}

	headerPath := filepath.Join(dir, unit+".h")
	sourcePath := filepath.Join(dir, unit+".cpp")

	if err := os.WriteFile(headerPath, []byte(artifacts.Header), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "aemc: %v\n", err)
		return 1
	}
	if err := os.WriteFile(sourcePath, []byte(artifacts.Source), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "aemc: %v\n", err)
		return 1
	}

	return 0
}
