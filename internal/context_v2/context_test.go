package context_v2

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"kestrel/internal/frontend/ast"
	"kestrel/internal/phase"
	"kestrel/internal/tokens"
	"kestrel/internal/types"
)

func TestNewContext(t *testing.T) {
	ctx := New(nil, false)

	if ctx == nil {
		t.Fatal("Expected non-nil context")
	}
	if ctx.Config.Extension != ".kes" {
		t.Errorf("Expected default extension '.kes', got '%s'", ctx.Config.Extension)
	}
	if ctx.Phase != phase.PhaseNotStarted {
		t.Errorf("Expected phase NotStarted, got %s", ctx.Phase)
	}
	if ctx.Root != ast.NoHandle {
		t.Errorf("Expected no root, got %d", ctx.Root)
	}
	if ctx.TypeCount() != 3 {
		t.Errorf("Expected 3 primitive types, got %d", ctx.TypeCount())
	}
	if _, ok := ctx.Types.Lookup("bool"); !ok {
		t.Error("Expected bool type to be registered")
	}
}

func TestContextsAreIndependent(t *testing.T) {
	a := New(nil, false)
	b := New(nil, false)

	a.Types.Add(types.Type{Name: "Point", Kind: types.KindStruct, Size: 2})
	a.ReportError("boom", nil)

	if _, ok := b.Types.Lookup("Point"); ok {
		t.Error("Expected type tables not to be shared")
	}
	if b.HasErrors() {
		t.Error("Expected diagnostics not to be shared")
	}
}

func TestAdvancePhase(t *testing.T) {
	ctx := New(nil, false)

	if ctx.AdvancePhase(phase.PhaseParsed) {
		t.Error("Expected parsing to require lexing first")
	}
	if !ctx.AdvancePhase(phase.PhaseLexed) {
		t.Fatal("Expected lexing to be allowed")
	}
	if !ctx.CanProcessPhase(phase.PhaseParsed) {
		t.Error("Expected parsing to be allowed after lexing")
	}
	if ctx.AdvancePhase(phase.PhaseLexed) {
		t.Error("Expected a phase not to run twice")
	}
	if ctx.Phase != phase.PhaseLexed {
		t.Errorf("Expected phase Lexed, got %s", ctx.Phase)
	}
}

func TestSetSource(t *testing.T) {
	ctx := New(nil, false)
	ctx.SetSource("mem.kes", "fn main() {}")

	if ctx.FilePath != "mem.kes" || ctx.Source != "fn main() {}" {
		t.Errorf("Unexpected source state %q %q", ctx.FilePath, ctx.Source)
	}
	ctx.ReportError("boom", nil)
	if got := ctx.Diagnostics.Diagnostics()[0].FilePath; got != "mem.kes" {
		t.Errorf("Expected diagnostics bound to mem.kes, got %s", got)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "main.kes")
	bad := filepath.Join(dir, "main.txt")
	if err := os.WriteFile(good, []byte("struct A { x: int; }"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := New(nil, false)
	if err := ctx.LoadFile(good); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ctx.Source != "struct A { x: int; }" {
		t.Errorf("Unexpected source %q", ctx.Source)
	}

	err := New(nil, false).LoadFile(bad)
	if err == nil || !strings.Contains(err.Error(), ".kes") {
		t.Errorf("Expected extension error, got %v", err)
	}

	err = New(nil, false).LoadFile(filepath.Join(dir, "missing.kes"))
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("Expected missing file error, got %v", err)
	}

	err = New(nil, false).LoadFile(dir)
	if err == nil || !strings.Contains(err.Error(), "is a directory") {
		t.Errorf("Expected directory error, got %v", err)
	}
}

func TestTypedExpressions(t *testing.T) {
	ctx := New(nil, false)
	if got := ctx.TypedExpressions(); len(got) != 0 {
		t.Errorf("Expected no typed expressions before parsing, got %v", got)
	}

	one := ctx.Arena.Push(&ast.IntegerConstant{Value: 1})
	two := ctx.Arena.Push(&ast.IntegerConstant{Value: 2})
	ctx.Root = ctx.Arena.Push(&ast.Operator{Op: tokens.OpAdd, Left: one, Right: two})
	ctx.ExprTypes[two] = types.Ref{Type: types.Int}
	ctx.ExprTypes[ctx.Root] = types.Ref{Type: types.Int}

	got := ctx.TypedExpressions()
	if len(got) != 2 || got[0] != ctx.Root || got[1] != two {
		t.Errorf("Expected [root, second operand] in pre-order, got %v", got)
	}
}

func TestReportError(t *testing.T) {
	ctx := New(nil, false)
	ctx.SetSource("a.kes", "x")
	ctx.ReportError("something broke", nil)

	if !ctx.HasErrors() {
		t.Fatal("Expected an error")
	}
	if got := ctx.Diagnostics.Diagnostics()[0].Message; got != "something broke" {
		t.Errorf("Expected message 'something broke', got %q", got)
	}
}

func TestEmitDiagnostics(t *testing.T) {
	ctx := New(nil, false)
	ctx.SetSource("a.kes", "fn f() { }")

	var clean bytes.Buffer
	ctx.EmitDiagnostics(&clean, false)
	if clean.Len() != 0 {
		t.Errorf("Expected no output without diagnostics, got %q", clean.String())
	}

	ctx.ReportError("first", nil)
	ctx.ReportError("second", nil)

	var out bytes.Buffer
	ctx.EmitDiagnostics(&out, false)
	if !strings.HasSuffix(out.String(), "Compilation failed with 2 error(s)\n") {
		t.Errorf("Expected failure summary, got %q", out.String())
	}
}
