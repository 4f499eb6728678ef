package resolver

import (
	"strings"
	"testing"

	"kestrel/internal/context_v2"
	"kestrel/internal/diagnostics"
	"kestrel/internal/frontend/lexer"
	"kestrel/internal/frontend/parser"
	"kestrel/internal/phase"
	"kestrel/internal/types"
)

// parseSource lexes and parses src into a fresh context ready for resolution.
func parseSource(t *testing.T, src string) *context_v2.CompilerContext {
	t.Helper()

	ctx := context_v2.New(nil, false)
	ctx.SetSource("test.kes", src)
	ctx.Tokens = lexer.Tokenize(ctx.FilePath, src, ctx.Diagnostics)
	ctx.AdvancePhase(phase.PhaseLexed)
	ctx.Root = parser.Parse(ctx.Tokens, ctx.Arena, ctx.FilePath, ctx.Diagnostics)
	ctx.AdvancePhase(phase.PhaseParsed)

	if ctx.HasErrors() {
		t.Fatalf("Unexpected syntax errors in %q: %v", src, messages(ctx))
	}
	return ctx
}

func resolveSource(t *testing.T, src string) *context_v2.CompilerContext {
	t.Helper()
	ctx := parseSource(t, src)
	Resolve(ctx)
	return ctx
}

func messages(ctx *context_v2.CompilerContext) []string {
	var out []string
	for _, d := range ctx.Diagnostics.Diagnostics() {
		out = append(out, d.Message)
	}
	return out
}

func mustLookup(t *testing.T, ctx *context_v2.CompilerContext, name string) *types.Type {
	t.Helper()
	h, ok := ctx.Types.Lookup(name)
	if !ok {
		t.Fatalf("Expected type '%s' in table", name)
	}
	return ctx.Types.Get(h)
}

func TestResolve_SelfReferentialStruct(t *testing.T) {
	ctx := resolveSource(t, "struct Node { value: int; next: Node; }")

	if ctx.HasErrors() {
		t.Fatalf("Unexpected errors: %v", messages(ctx))
	}

	h, _ := ctx.Types.Lookup("Node")
	node := ctx.Types.Get(h)
	if node.Kind != types.KindStruct {
		t.Errorf("Expected struct kind, got %s", node.Kind)
	}
	if node.Size != 2 {
		t.Errorf("Expected size 2, got %d", node.Size)
	}
	if next, ok := node.Field("next"); !ok || next.Type != h {
		t.Errorf("Expected field next to refer to Node (%d), got %+v", h, next)
	}
	if ctx.Phase != phase.PhaseResolved {
		t.Errorf("Expected phase Resolved, got %s", ctx.Phase)
	}
}

func TestResolve_StructSizes(t *testing.T) {
	src := `
struct Point { x: int; y: int; }
struct Line { a: Point; b: Point; flags: [bool]; }
struct Empty { }
`
	ctx := resolveSource(t, src)
	if ctx.HasErrors() {
		t.Fatalf("Unexpected errors: %v", messages(ctx))
	}

	tests := []struct {
		name string
		size int
	}{
		{"Point", 2},
		{"Line", 5},
		{"Empty", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustLookup(t, ctx, tt.name).Size; got != tt.size {
				t.Errorf("Expected size %d, got %d", tt.size, got)
			}
		})
	}

	flags, _ := mustLookup(t, ctx, "Line").Field("flags")
	if !flags.IsArray || flags.Type != types.Bool {
		t.Errorf("Expected flags to be [bool], got %+v", flags)
	}
}

func TestResolve_Functions(t *testing.T) {
	src := `
struct P { x: int; }
fn show(p: P, xs: [int]) { }
fn first(xs: [int]): int { return 0; }
fn all(): [bool] { }
`
	ctx := resolveSource(t, src)
	if ctx.HasErrors() {
		t.Fatalf("Unexpected errors: %v", messages(ctx))
	}

	show := mustLookup(t, ctx, "show")
	if show.Kind != types.KindFunction || show.Size != types.SIZE_FUNCTION {
		t.Errorf("Expected function of size 1, got %s of size %d", show.Kind, show.Size)
	}
	if show.Return != types.Void {
		t.Errorf("Expected default return void, got %d", show.Return)
	}
	if len(show.Params) != 2 || show.Params[0].Name != "p" || !show.Params[1].IsArray {
		t.Errorf("Unexpected params %+v", show.Params)
	}

	if got := mustLookup(t, ctx, "first").Return; got != types.Int {
		t.Errorf("Expected return int, got %d", got)
	}
	if ref := mustLookup(t, ctx, "all").ReturnRef(); ref != (types.Ref{Type: types.Bool, IsArray: true}) {
		t.Errorf("Expected return [bool], got %+v", ref)
	}
}

func TestResolve_FunctionsSeeLaterStructs(t *testing.T) {
	ctx := resolveSource(t, "fn f(p: P) { } struct P { x: int; }")
	if ctx.HasErrors() {
		t.Fatalf("Unexpected errors: %v", messages(ctx))
	}
	mustLookup(t, ctx, "f")
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		message string
		code    string
	}{
		{"duplicate struct", "struct A { x: int; } struct A { y: int; }", "duplicate definition of 'A'", diagnostics.ErrRedeclaredSymbol},
		{"duplicate function", "fn add() { } fn add() { }", "duplicate definition of 'add'", diagnostics.ErrRedeclaredSymbol},
		{"function shadows struct", "struct A { x: int; } fn A() { }", "duplicate definition of 'A'", diagnostics.ErrRedeclaredSymbol},
		{"function shadows primitive", "fn int() { }", "duplicate definition of 'int'", diagnostics.ErrRedeclaredSymbol},
		{"unknown field type", "struct A { x: Foo; }", "unknown type 'Foo'", diagnostics.ErrUnknownType},
		{"struct defined later", "struct A { b: B; } struct B { x: int; }", "unknown type 'B'", diagnostics.ErrUnknownType},
		{"unknown param type", "fn f(a: Foo) { }", "unknown type 'Foo'", diagnostics.ErrUnknownType},
		{"unknown return type", "fn f(): Foo { }", "unknown type 'Foo'", diagnostics.ErrUnknownType},
		{"void field", "struct A { x: void; }", "field 'x' cannot have type 'void'", diagnostics.ErrInvalidType},
		{"void param", "fn f(a: [void]) { }", "parameter 'a' cannot have type 'void'", diagnostics.ErrInvalidType},
		{"function as type", "fn g() { } fn f(a: g) { }", "'g' is not a type", diagnostics.ErrInvalidType},
		{"duplicate field", "struct A { x: int; x: bool; }", "duplicate field 'x' in struct 'A'", diagnostics.ErrDuplicateField},
		{"duplicate parameter", "fn f(a: int, a: bool) { }", "duplicate parameter 'a' in function 'f'", diagnostics.ErrDuplicateParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := resolveSource(t, tt.src)
			diags := ctx.Diagnostics.Diagnostics()
			if len(diags) != 1 {
				t.Fatalf("Expected 1 error, got %d: %v", len(diags), messages(ctx))
			}
			if diags[0].Message != tt.message {
				t.Errorf("Expected message %q, got %q", tt.message, diags[0].Message)
			}
			if diags[0].Code != tt.code {
				t.Errorf("Expected code %s, got %s", tt.code, diags[0].Code)
			}
		})
	}
}

func TestResolve_DuplicatePointsAtFirstDefinition(t *testing.T) {
	ctx := resolveSource(t, "fn add() { }\nfn add() { }")

	diag := ctx.Diagnostics.Diagnostics()[0]
	if len(diag.Labels) != 2 {
		t.Fatalf("Expected primary and secondary labels, got %d", len(diag.Labels))
	}
	if line, _ := diag.Position(); line != 2 {
		t.Errorf("Expected error on line 2, got %d", line)
	}
	if diag.Labels[1].Location.Start.Line != 0 {
		t.Errorf("Expected secondary label on line 1, got %d", diag.Labels[1].Location.Start.Line+1)
	}

	count := 0
	for i := 0; i < ctx.Types.Len(); i++ {
		if ctx.Types.Get(types.Handle(i)).Name == "add" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected 'add' once in the table, got %d", count)
	}
}

func TestResolve_CollectsAllErrors(t *testing.T) {
	src := `
struct A { x: Missing; }
struct B { y: int; y: int; }
struct C { z: int; }
fn f(a: A) { }
fn g(c: C): int { }
`
	ctx := resolveSource(t, src)

	got := messages(ctx)
	want := []string{
		"unknown type 'Missing'",
		"duplicate field 'y' in struct 'B'",
		"unknown type 'A'",
	}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Expected errors %v, got %v", want, got)
	}

	// Definitions without errors still land in the table.
	mustLookup(t, ctx, "C")
	mustLookup(t, ctx, "g")
	if _, ok := ctx.Types.Lookup("A"); ok {
		t.Error("Expected struct A with an error to be left out")
	}
	if _, ok := ctx.Types.Lookup("f"); ok {
		t.Error("Expected function f with an error to be left out")
	}
}

func TestResolve_RequiresParsedPhase(t *testing.T) {
	ctx := context_v2.New(nil, false)
	Resolve(ctx)

	if ctx.Phase != phase.PhaseNotStarted {
		t.Errorf("Expected phase to stay NotStarted, got %s", ctx.Phase)
	}
	if ctx.TypeCount() != 3 {
		t.Errorf("Expected only primitives, got %d types", ctx.TypeCount())
	}
}
