package compiler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"kestrel/colors"
)

func noColors(t *testing.T) {
	t.Helper()
	prev := colors.Enabled()
	colors.SetEnabled(false)
	t.Cleanup(func() { colors.SetEnabled(prev) })
}

func TestCompile_InMemorySimpleCode(t *testing.T) {
	noColors(t)

	result := Compile(Options{Code: "struct P { x: int; y: int; }"})

	if !result.Success {
		t.Fatalf("Expected successful compilation, got:\n%s", result.Output)
	}
	want := "token count: 13\nnode count: 8\ntype count: 4\n"
	if result.Output != want {
		t.Errorf("Expected output %q, got %q", want, result.Output)
	}
	if result.Context.FilePath != "main.kes" {
		t.Errorf("Expected default name main.kes, got %s", result.Context.FilePath)
	}
}

func TestCompile_InMemoryWithSyntaxError(t *testing.T) {
	noColors(t)

	result := Compile(Options{Code: "fn main() { x = ; }"})

	if result.Success {
		t.Fatal("Expected compilation failure for syntax error")
	}

	want := "1:17: error: expecting an expression before ';'\n" +
		"\t | fn main() { x = ; }\n" +
		"\t |                 ^\n" +
		"Compilation failed with 1 error(s)\n"
	if !strings.HasPrefix(result.Output, "token count: 10\n") {
		t.Errorf("Expected token count first, got:\n%s", result.Output)
	}
	if !strings.HasSuffix(result.Output, want) {
		t.Errorf("Expected diagnostics:\n%s\ngot:\n%s", want, result.Output)
	}
	if strings.Contains(result.Output, "type count") {
		t.Error("Expected no type count when resolution did not run")
	}
}

func TestCompile_LexErrorStopsBeforeParsing(t *testing.T) {
	noColors(t)

	result := Compile(Options{Code: "fn main() { # }"})

	if result.Success {
		t.Fatal("Expected compilation failure")
	}
	if strings.Contains(result.Output, "node count") {
		t.Errorf("Expected no node count after lex errors, got:\n%s", result.Output)
	}
	if !strings.Contains(result.Output, "error: unsupported character '#'") {
		t.Errorf("Expected lex diagnostic, got:\n%s", result.Output)
	}
}

func TestCompile_ShowAST(t *testing.T) {
	noColors(t)

	result := Compile(Options{Code: "fn f() { }", ShowAST: true})
	if !result.Success {
		t.Fatalf("Expected success, got:\n%s", result.Output)
	}
	for _, want := range []string{"program:", "function def: 'f'", "statement block: '{empty}'"} {
		if !strings.Contains(result.Output, want) {
			t.Errorf("Expected AST dump to contain %q, got:\n%s", want, result.Output)
		}
	}
}

func TestCompile_ShowTokens(t *testing.T) {
	noColors(t)

	result := Compile(Options{Code: "fn f() { }", ShowTokens: true, Name: "t.kes"})
	if !strings.Contains(result.Output, "t.kes:1:1:0 fn (keyword), size: 2") {
		t.Errorf("Expected token listing, got:\n%s", result.Output)
	}
}

func TestCompile_TypeCheckOptions(t *testing.T) {
	noColors(t)

	src := "fn f(a: int) { let b: int = a; b = 1; }"

	plain := Compile(Options{Code: src})
	if !plain.Success {
		t.Errorf("Expected success without -check, got:\n%s", plain.Output)
	}

	checked := Compile(Options{Code: src, TypeCheck: true})
	if checked.Success || !strings.Contains(checked.Output, "undefined identifier 'b'") {
		t.Errorf("Expected untracked local to be undefined, got:\n%s", checked.Output)
	}

	locals := Compile(Options{Code: src, TypeCheck: true, TrackLocals: true})
	if !locals.Success {
		t.Errorf("Expected success with tracked locals, got:\n%s", locals.Output)
	}
}

func TestCompile_TypedExpressionReport(t *testing.T) {
	noColors(t)

	src := "fn f(): bool { return 1 < 2; }"

	plain := Compile(Options{Code: src})
	if strings.Contains(plain.Output, "typed expression count") {
		t.Errorf("Expected no typed expression report without -check, got:\n%s", plain.Output)
	}

	checked := Compile(Options{Code: src, TypeCheck: true})
	if !checked.Success || !strings.Contains(checked.Output, "typed expression count: 3\n") {
		t.Errorf("Expected 3 typed expressions, got:\n%s", checked.Output)
	}

	listed := Compile(Options{Code: src, TypeCheck: true, ShowAST: true})
	want := "1:23 operator: bool\n1:23 integer const: int\n1:27 integer const: int\n"
	if !strings.Contains(listed.Output, want) {
		t.Errorf("Expected typed expression listing %q, got:\n%s", want, listed.Output)
	}
}

func TestCompile_WarningsDoNotFail(t *testing.T) {
	noColors(t)

	result := Compile(Options{Code: "fn f(a: int) {\n    while false { a = 1; }\n}", TypeCheck: true})
	if !result.Success {
		t.Fatalf("Expected success with only warnings, got:\n%s", result.Output)
	}
	if !strings.Contains(result.Output, "2:11: warning: condition is always false\n") {
		t.Errorf("Expected constant condition warning, got:\n%s", result.Output)
	}
	if !strings.HasSuffix(result.Output, "Compilation succeeded with 1 warning(s)\n") {
		t.Errorf("Expected warning summary, got:\n%s", result.Output)
	}
}

func TestCompile_FromFile(t *testing.T) {
	noColors(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "list.kes")
	if err := os.WriteFile(path, []byte("struct A { x: Missing; }\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	result := Compile(Options{EntryFile: path, ShowPath: true})
	if result.Success {
		t.Fatal("Expected failure for unknown type")
	}
	if !strings.Contains(result.Output, path+":1:15: error: unknown type 'Missing'") {
		t.Errorf("Expected path-prefixed diagnostic, got:\n%s", result.Output)
	}
}

func TestCompile_MissingFile(t *testing.T) {
	noColors(t)

	result := Compile(Options{EntryFile: filepath.Join(t.TempDir(), "nope.kes")})
	if result.Success {
		t.Fatal("Expected failure for a missing file")
	}
	if !strings.HasPrefix(result.Output, "error: source file does not exist") {
		t.Errorf("Unexpected output:\n%s", result.Output)
	}
	if !strings.HasSuffix(result.Output, "Compilation failed with 1 error(s)\n") {
		t.Errorf("Expected summary line, got:\n%s", result.Output)
	}
}

func TestCompileAll_KeepsOrderAndIsolation(t *testing.T) {
	noColors(t)

	opts := []Options{
		{Code: "struct A { x: int; }", Name: "a.kes"},
		{Code: "struct A { x: Nope; }", Name: "b.kes"},
		{Code: "fn A() { }", Name: "c.kes"},
	}
	for i := 0; i < 20; i++ {
		opts = append(opts, Options{Code: "struct S { x: int; } fn f(s: S): int { return s.x; }", Name: "many.kes", TypeCheck: true})
	}

	results := CompileAll(opts)

	if len(results) != len(opts) {
		t.Fatalf("Expected %d results, got %d", len(opts), len(results))
	}
	for i, r := range results {
		if r.Context.FilePath != opts[i].Name {
			t.Errorf("Result %d: expected %s, got %s", i, opts[i].Name, r.Context.FilePath)
		}
	}
	if !results[0].Success || results[1].Success || !results[2].Success {
		t.Errorf("Unexpected outcomes: %v %v %v", results[0].Success, results[1].Success, results[2].Success)
	}
	// c.kes defines A as a function; a.kes's struct A must not leak into it.
	for _, r := range results[3:] {
		if !r.Success || r.Context.TypeCount() != 5 {
			t.Errorf("Expected an isolated successful unit with 5 types, got %v with %d", r.Success, r.Context.TypeCount())
		}
	}
}
