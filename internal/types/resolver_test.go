package types

import (
	"strings"
	"testing"

	"github.com/aemlang/aemc/internal/ast"
	"github.com/aemlang/aemc/internal/diag"
	"github.com/aemlang/aemc/internal/parser"
)

func resolveSource(t *testing.T, input string) (*ast.Program, *Resolver) {
	t.Helper()

	p := parser.New(input)
	program := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}

	r := NewResolver()
	r.Resolve(program)
	return program, r
}

func resolveOK(t *testing.T, input string) *ast.Program {
	t.Helper()

	program, r := resolveSource(t, input)
	if len(r.Errors) != 0 {
		for _, d := range r.Errors {
			t.Errorf("resolve error: [%s] %s", d.Code, d.Message)
		}
		t.FailNow()
	}
	return program
}

func expectCode(t *testing.T, r *Resolver, code diag.Code) diag.Diagnostic {
	t.Helper()

	for _, d := range r.Errors {
		if d.Code == code {
			return d
		}
	}
	t.Fatalf("expected a %s diagnostic, got %v", code, r.Errors)
	return diag.Diagnostic{}
}

func TestForwardReference_FunctionsAreHoisted(t *testing.T) {
	input := `function caller() -> int {
    return callee();
}

function callee() -> int {
    return 42;
}`

	resolveOK(t, input)
}

func TestMutualRecursionResolves(t *testing.T) {
	input := `function even(n: int) -> bool {
    if n == 0 {
        return true;
    }
    return odd(n - 1);
}

function odd(n: int) -> bool {
    if n == 0 {
        return false;
    }
    return even(n - 1);
}`

	resolveOK(t, input)
}

func TestForwardReference_GlobalsAreHoisted(t *testing.T) {
	input := `function get() -> int {
    return counter;
}

var counter: int = 0;`

	resolveOK(t, input)
}

func TestUndeclaredIdentifier(t *testing.T) {
	input := `function f() -> int {
    return missing;
}`

	_, r := resolveSource(t, input)

	d := expectCode(t, r, diag.CodeResolveUndeclaredIdentifier)
	if !strings.Contains(d.Message, "missing") {
		t.Errorf("expected message naming 'missing', got %q", d.Message)
	}
}

func TestUnknownType(t *testing.T) {
	input := `var x: quux;`

	_, r := resolveSource(t, input)

	d := expectCode(t, r, diag.CodeResolveUnknownType)
	if !strings.Contains(d.Message, "quux") {
		t.Errorf("expected message naming 'quux', got %q", d.Message)
	}
}

func TestTypeMismatch_NamesExpectedAndActual(t *testing.T) {
	input := `var x: int = "oops";`

	_, r := resolveSource(t, input)

	d := expectCode(t, r, diag.CodeResolveTypeMismatch)
	if !strings.Contains(d.Message, "expected int") || !strings.Contains(d.Message, "found string") {
		t.Errorf("expected message naming expected/actual types, got %q", d.Message)
	}
}

func TestIntWidensToFloat(t *testing.T) {
	input := `var ratio: float = 1;

function scale(f: float) -> float {
    return f * 2.0;
}

function use() -> float {
    return scale(3);
}`

	resolveOK(t, input)
}

func TestFloatDoesNotNarrowToInt(t *testing.T) {
	input := `var n: int = 1.5;`

	_, r := resolveSource(t, input)
	expectCode(t, r, diag.CodeResolveTypeMismatch)
}

func TestMixedArithmeticWidens(t *testing.T) {
	input := `function f(a: int, b: float) -> float {
    return a + b;
}`

	program := resolveOK(t, input)

	fn := program.Decls[0].(*ast.FunctionDecl)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	infix := ret.Value.(*ast.InfixExpr)

	typ, ok := infix.Typ.(Type)
	if !ok || !Equals(typ, TypeFloat) {
		t.Fatalf("expected a + b to have type float, got %v", infix.Typ)
	}
}

func TestRedeclaredTopLevel(t *testing.T) {
	input := `function f() { }

var f: int;`

	_, r := resolveSource(t, input)
	expectCode(t, r, diag.CodeResolveRedeclared)
}

func TestRedeclaredInSameScope(t *testing.T) {
	input := `function f() {
    var x: int = 1;
    var x: int = 2;
}`

	_, r := resolveSource(t, input)
	expectCode(t, r, diag.CodeResolveRedeclared)
}

func TestShadowingInNestedBlockIsAllowed(t *testing.T) {
	input := `function f() -> int {
    var x: int = 1;
    {
        var x: string = "inner";
    }
    return x;
}`

	resolveOK(t, input)
}

func TestShadowBindingExpiresWithBlock(t *testing.T) {
	input := `function f() -> string {
    var x: int = 1;
    {
        var x: string = "inner";
    }
    return x;
}`

	// After the block closes, x is the outer int again.
	_, r := resolveSource(t, input)
	expectCode(t, r, diag.CodeResolveTypeMismatch)
}

func TestParamShadowedByLocal(t *testing.T) {
	input := `function f(x: int) -> string {
    var x: string = "local";
    return x;
}`

	resolveOK(t, input)
}

func TestDuplicateParameter(t *testing.T) {
	input := `function f(x: int, x: int) { }`

	_, r := resolveSource(t, input)
	expectCode(t, r, diag.CodeResolveRedeclared)
}

func TestArityMismatch(t *testing.T) {
	input := `function add(a: int, b: int) -> int {
    return a + b;
}

function use() -> int {
    return add(1);
}`

	_, r := resolveSource(t, input)

	d := expectCode(t, r, diag.CodeResolveArityMismatch)
	if !strings.Contains(d.Message, "2") || !strings.Contains(d.Message, "1") {
		t.Errorf("expected message naming expected and found counts, got %q", d.Message)
	}
}

func TestArgumentTypeMismatch(t *testing.T) {
	input := `function greet(name: string) { }

function use() {
    greet(42);
}`

	_, r := resolveSource(t, input)

	d := expectCode(t, r, diag.CodeResolveArgumentTypeMismatch)
	if !strings.Contains(d.Message, "expected string") || !strings.Contains(d.Message, "found int") {
		t.Errorf("expected message naming expected/actual types, got %q", d.Message)
	}
}

func TestCallOfNonFunction(t *testing.T) {
	input := `var x: int = 1;

function use() {
    x(1);
}`

	_, r := resolveSource(t, input)
	expectCode(t, r, diag.CodeResolveCallOfNonFunction)
}

func TestAssignToFunctionRejected(t *testing.T) {
	input := `function f() { }

function use() {
    f = f;
}`

	_, r := resolveSource(t, input)
	expectCode(t, r, diag.CodeResolveInvalidAssignTarget)
}

func TestAssignTargetMustBeVariable(t *testing.T) {
	input := `function use() {
    1 = 2;
}`

	_, r := resolveSource(t, input)
	expectCode(t, r, diag.CodeResolveInvalidAssignTarget)
}

func TestMissingReturnValue(t *testing.T) {
	input := `function f() -> int {
    return;
}`

	_, r := resolveSource(t, input)
	expectCode(t, r, diag.CodeResolveMissingReturnValue)
}

func TestUnexpectedReturnValue(t *testing.T) {
	input := `function f() {
    return 1;
}`

	_, r := resolveSource(t, input)
	expectCode(t, r, diag.CodeResolveUnexpectedReturnValue)
}

func TestConditionMustBeBool(t *testing.T) {
	tests := []string{
		`function f() { if 1 { } }`,
		`function f() { while "x" { } }`,
	}

	for _, input := range tests {
		_, r := resolveSource(t, input)
		d := expectCode(t, r, diag.CodeResolveTypeMismatch)
		if !strings.Contains(d.Message, "expected bool") {
			t.Errorf("input %q - expected message naming bool, got %q", input, d.Message)
		}
	}
}

func TestInvalidOperations(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"logical and on ints", `function f() { var b: bool = 1 && 2; }`},
		{"not on int", `function f() { var b: bool = !1; }`},
		{"minus on string", `function f() { var s: string = -"x"; }`},
		{"modulo on floats", `function f() { var x: float = 1.5 % 2.0; }`},
		{"plus on bools", `function f() { var b: bool = true + false; }`},
		{"less-than on strings", `function f() { var b: bool = "a" < "b"; }`},
	}

	for _, tt := range tests {
		_, r := resolveSource(t, tt.input)
		if len(r.Errors) == 0 {
			t.Errorf("%s - expected a resolve error", tt.name)
			continue
		}
		found := false
		for _, d := range r.Errors {
			if d.Code == diag.CodeResolveInvalidOperation {
				found = true
			}
		}
		if !found {
			t.Errorf("%s - expected %s, got %v", tt.name, diag.CodeResolveInvalidOperation, r.Errors)
		}
	}
}

func TestEqualityOnMatchingTypes(t *testing.T) {
	input := `function f(a: string, b: string) -> bool {
    return a == b;
}`

	resolveOK(t, input)
}

func TestErrorsAccumulateAcrossFunctions(t *testing.T) {
	input := `function f() -> int {
    return missing_one;
}

function g() -> int {
    return missing_two;
}`

	_, r := resolveSource(t, input)

	if len(r.Errors) != 2 {
		t.Fatalf("expected 2 resolve errors, got %d: %v", len(r.Errors), r.Errors)
	}
}

func TestAnnotations_AttachedForCodegen(t *testing.T) {
	input := `function add(a: int, b: int) -> int {
    return a + b;
}`

	program := resolveOK(t, input)

	fn := program.Decls[0].(*ast.FunctionDecl)
	if fn.Sym == nil {
		t.Fatal("expected function symbol to be attached")
	}
	if fn.Sym.Kind != ast.SymbolFunc {
		t.Errorf("expected function symbol kind, got %v", fn.Sym.Kind)
	}

	fnType, ok := fn.Sym.Type.(*Function)
	if !ok {
		t.Fatalf("expected *Function symbol type, got %T", fn.Sym.Type)
	}
	if len(fnType.Params) != 2 || !Equals(fnType.Return, TypeInt) {
		t.Errorf("unexpected function type %v", fnType)
	}

	for _, p := range fn.Params {
		if p.Sym == nil {
			t.Fatalf("expected parameter symbol for %q", p.Name.Name)
		}
		named := p.Type.(*ast.NamedType)
		if named.Resolved == nil {
			t.Fatalf("expected resolved annotation for %q", p.Name.Name)
		}
	}

	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	ident := ret.Value.(*ast.InfixExpr).Left.(*ast.Ident)
	if ident.Sym == nil || ident.Sym.Kind != ast.SymbolParam {
		t.Fatalf("expected 'a' to bind to its parameter, got %v", ident.Sym)
	}
}
