package codegen

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/aemlang/aemc/internal/ast"
)

// GuardStyle selects how the generated header protects against double
// inclusion.
type GuardStyle string

const (
	GuardPragmaOnce GuardStyle = "pragma-once"
	GuardMacro      GuardStyle = "macro-guard"
)

// Config controls the shape of the generated C++.
type Config struct {
	IncludeGuardStyle  GuardStyle
	IndentWidth        int
	EmitLineDirectives bool
}

// DefaultConfig returns the configuration used when callers pass the zero
// value.
func DefaultConfig() Config {
	return Config{
		IncludeGuardStyle: GuardPragmaOnce,
		IndentWidth:       4,
	}
}

func (c Config) normalized() Config {
	if c.IncludeGuardStyle == "" {
		c.IncludeGuardStyle = GuardPragmaOnce
	}
	if c.IndentWidth <= 0 {
		c.IndentWidth = 4
	}
	return c
}

// Generator emits C++ from a fully resolved AST. Output is deterministic:
// declarations are emitted in source order and the same input always yields
// byte-identical text.
//
// The generator assumes the resolver ran without errors. Missing type
// annotations are pipeline invariant violations and panic rather than
// producing silently wrong C++.
type Generator struct {
	unit string
	cfg  Config

	buf    strings.Builder
	indent int
}

// New creates a generator for the named translation unit. The unit name
// becomes the header basename and the include guard.
func New(unit string, cfg Config) *Generator {
	return &Generator{
		unit: unit,
		cfg:  cfg.normalized(),
	}
}

// GenerateHeader emits the C++ header for the unit: include guard, interface
// includes, extern declarations for globals, and one prototype per function.
func (g *Generator) GenerateHeader(program *ast.Program) string {
	g.buf.Reset()
	g.indent = 0

	macro := guardMacro(g.unit)

	switch g.cfg.IncludeGuardStyle {
	case GuardMacro:
		g.write("#ifndef %s\n", macro)
		g.write("#define %s\n", macro)
	default:
		g.write("#pragma once\n")
	}
	g.write("\n")

	if usesString(program) {
		g.write("#include <string>\n")
		g.write("\n")
	}

	for _, decl := range program.Decls {
		switch d := decl.(type) {
		case *ast.VarDecl:
			g.write("extern %s %s;\n", g.declType(d), d.Name.Name)
		case *ast.FunctionDecl:
			g.write("%s;\n", g.signature(d))
		}
	}

	if g.cfg.IncludeGuardStyle == GuardMacro {
		g.write("\n#endif // %s\n", macro)
	}

	return g.buf.String()
}

// GenerateSource emits the C++ source for the unit. It includes the
// generated header and emits global definitions and function bodies in
// declaration order.
func (g *Generator) GenerateSource(program *ast.Program) string {
	g.buf.Reset()
	g.indent = 0

	g.write("#include \"%s.h\"\n", g.unit)
	g.write("\n")

	for i, decl := range program.Decls {
		if i > 0 {
			g.write("\n")
		}

		switch d := decl.(type) {
		case *ast.VarDecl:
			g.lineDirective(d.Span().Line, d.Span().Filename)
			if d.Value != nil {
				g.write("%s %s = %s;\n", g.declType(d), d.Name.Name, g.expr(d.Value, precLowest))
			} else {
				g.write("%s %s;\n", g.declType(d), d.Name.Name)
			}
		case *ast.FunctionDecl:
			g.lineDirective(d.Span().Line, d.Span().Filename)
			g.write("%s {\n", g.signature(d))
			g.indent++
			g.block(d.Body)
			g.indent--
			g.write("}\n")
		default:
			panic(fmt.Sprintf("codegen: unexpected declaration %T", decl))
		}
	}

	return g.buf.String()
}

func (g *Generator) write(format string, args ...any) {
	fmt.Fprintf(&g.buf, format, args...)
}

func (g *Generator) writeIndent() {
	g.buf.WriteString(strings.Repeat(" ", g.indent*g.cfg.IndentWidth))
}

func (g *Generator) lineDirective(line int, filename string) {
	if !g.cfg.EmitLineDirectives || line <= 0 {
		return
	}
	if filename == "" {
		filename = g.unit + ".aem"
	}
	g.write("#line %d \"%s\"\n", line, filename)
}

// signature renders "ret name(type arg, ...)" without a trailing semicolon,
// shared between the prototype and the definition so the two always agree.
func (g *Generator) signature(d *ast.FunctionDecl) string {
	var sb strings.Builder

	ret := "void"
	if d.ReturnType != nil {
		ret = cppType(resolvedType(d.ReturnType))
	}

	sb.WriteString(ret)
	sb.WriteString(" ")
	sb.WriteString(d.Name.Name)
	sb.WriteString("(")

	for i, p := range d.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(cppType(resolvedType(p.Type)))
		sb.WriteString(" ")
		sb.WriteString(p.Name.Name)
	}

	sb.WriteString(")")

	return sb.String()
}

func (g *Generator) declType(d *ast.VarDecl) string {
	return cppType(resolvedType(d.DeclType))
}

func (g *Generator) block(b *ast.Block) {
	if b == nil {
		return
	}
	for _, stmt := range b.Stmts {
		g.stmt(stmt)
	}
}

func (g *Generator) stmt(stmt ast.Stmt) {
	g.lineDirective(stmt.Span().Line, stmt.Span().Filename)

	switch s := stmt.(type) {
	case *ast.VarDecl:
		g.writeIndent()
		if s.Value != nil {
			g.write("%s %s = %s;\n", g.declType(s), s.Name.Name, g.expr(s.Value, precLowest))
		} else {
			g.write("%s %s;\n", g.declType(s), s.Name.Name)
		}
	case *ast.ReturnStmt:
		g.writeIndent()
		if s.Value != nil {
			g.write("return %s;\n", g.expr(s.Value, precLowest))
		} else {
			g.write("return;\n")
		}
	case *ast.IfStmt:
		g.writeIndent()
		g.ifChain(s)
	case *ast.WhileStmt:
		g.writeIndent()
		g.write("while (%s) {\n", g.expr(s.Cond, precLowest))
		g.indent++
		g.block(s.Body)
		g.indent--
		g.writeIndent()
		g.write("}\n")
	case *ast.Block:
		g.writeIndent()
		g.write("{\n")
		g.indent++
		g.block(s)
		g.indent--
		g.writeIndent()
		g.write("}\n")
	case *ast.ExprStmt:
		g.writeIndent()
		g.write("%s;\n", g.expr(s.Expr, precLowest))
	default:
		panic(fmt.Sprintf("codegen: unexpected statement %T", stmt))
	}
}

// ifChain renders if/else-if/else without re-indenting the chained branches,
// matching how a C++ author would write the cascade.
func (g *Generator) ifChain(s *ast.IfStmt) {
	g.write("if (%s) {\n", g.expr(s.Cond, precLowest))
	g.indent++
	g.block(s.Then)
	g.indent--
	g.writeIndent()

	switch els := s.Else.(type) {
	case nil:
		g.write("}\n")
	case *ast.IfStmt:
		g.write("} else ")
		g.ifChain(els)
	case *ast.Block:
		g.write("} else {\n")
		g.indent++
		g.block(els)
		g.indent--
		g.writeIndent()
		g.write("}\n")
	default:
		panic(fmt.Sprintf("codegen: unexpected else branch %T", s.Else))
	}
}

// guardMacro derives the macro-guard identifier from the unit name, e.g.
// "fast_trig" becomes "FAST_TRIG_H".
func guardMacro(unit string) string {
	var sb strings.Builder
	for _, r := range unit {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(unicode.ToUpper(r))
		} else {
			sb.WriteRune('_')
		}
	}
	sb.WriteString("_H")
	return sb.String()
}
