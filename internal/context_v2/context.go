// Package context_v2 provides the compilation context for one kestrel source
// file.
//
// Every stage reads and writes only the context it is handed, so separate
// files can be compiled side by side without sharing any state. A context
// moves through the phases in internal/phase; each stage checks the phase
// before it runs.
package context_v2

import (
	"fmt"
	"io"

	"kestrel/internal/diagnostics"
	"kestrel/internal/frontend/ast"
	"kestrel/internal/phase"
	"kestrel/internal/source"
	"kestrel/internal/tokens"
	"kestrel/internal/types"
	"kestrel/internal/utils/fs"
)

// Config holds compiler configuration
type Config struct {
	Extension string // Source file extension (default: ".kes")

	// TypeCheck runs the expression type-check walk after resolution.
	TypeCheck bool
	// TrackLocals makes `let` bindings visible to the type-check walk.
	// Without it identifiers resolve against function parameters only.
	TrackLocals bool
}

// CompilerContext holds all state of one compilation unit
type CompilerContext struct {
	FilePath string
	Source   string

	Tokens []tokens.Token
	Arena  *ast.Arena
	Root   ast.Handle

	Types     *types.Table
	ExprTypes map[ast.Handle]types.Ref

	Diagnostics *diagnostics.DiagnosticBag

	Phase phase.ModulePhase

	Config *Config
	Debug  bool
}

// New creates a new compiler context
func New(config *Config, debug bool) *CompilerContext {
	if config == nil {
		config = &Config{}
	}
	if config.Extension == "" {
		config.Extension = ".kes"
	}

	return &CompilerContext{
		Arena:       ast.NewArena(256),
		Root:        ast.NoHandle,
		Types:       types.NewTable(),
		ExprTypes:   make(map[ast.Handle]types.Ref),
		Diagnostics: diagnostics.NewDiagnosticBag(""),
		Phase:       phase.PhaseNotStarted,
		Config:      config,
		Debug:       debug,
	}
}

// SetSource installs in-memory code under a virtual path
func (ctx *CompilerContext) SetSource(filePath, code string) {
	ctx.FilePath = filePath
	ctx.Source = code
	ctx.Diagnostics = diagnostics.NewDiagnosticBag(filePath)
	ctx.Diagnostics.AddSourceContent(filePath, code)
}

// LoadFile reads the unit's source from disk
func (ctx *CompilerContext) LoadFile(filePath string) error {
	if fs.IsDir(filePath) {
		return fmt.Errorf("source path %s is a directory", filePath)
	}
	if !fs.IsValidFile(filePath) {
		return fmt.Errorf("source file does not exist: %s", filePath)
	}
	if !fs.HasExtension(filePath, ctx.Config.Extension) {
		return fmt.Errorf("source file %s must have the %s extension", filePath, ctx.Config.Extension)
	}

	code, err := source.ReadFile(filePath)
	if err != nil {
		return err
	}
	ctx.SetSource(filePath, code)
	return nil
}

// CanProcessPhase checks if the unit is ready for a specific phase
func (ctx *CompilerContext) CanProcessPhase(target phase.ModulePhase) bool {
	return phase.CanAdvance(ctx.Phase, target)
}

// AdvancePhase moves the unit to target if its prerequisite is met
func (ctx *CompilerContext) AdvancePhase(target phase.ModulePhase) bool {
	if !ctx.CanProcessPhase(target) {
		return false
	}
	ctx.Phase = target
	return true
}

// HasErrors returns true if any errors have been reported
func (ctx *CompilerContext) HasErrors() bool {
	return ctx.Diagnostics.HasErrors()
}

// ReportError adds an error diagnostic
func (ctx *CompilerContext) ReportError(message string, location *source.Location) {
	diag := diagnostics.NewError(message)
	if location != nil {
		diag.WithPrimaryLabel(location, "")
	}
	ctx.Diagnostics.Add(diag)
}

// EmitDiagnostics writes all diagnostics to w, then the summary line if
// any of them is an error. showPath prefixes each header with the file path.
func (ctx *CompilerContext) EmitDiagnostics(w io.Writer, showPath bool) {
	ctx.Diagnostics.Emit(w, showPath)
	if ctx.HasErrors() || ctx.Diagnostics.WarningCount() > 0 {
		diagnostics.PrintSummary(w, ctx.Diagnostics.ErrorCount(), ctx.Diagnostics.WarningCount())
	}
}

// NodeCount returns the number of nodes the parser produced
func (ctx *CompilerContext) NodeCount() int {
	return ctx.Arena.Len()
}

// TypeCount returns the number of entries in the type table, primitives included
func (ctx *CompilerContext) TypeCount() int {
	return ctx.Types.Len()
}

// ExprType returns the recorded type of an expression node
func (ctx *CompilerContext) ExprType(h ast.Handle) (types.Ref, bool) {
	ref, ok := ctx.ExprTypes[h]
	return ref, ok
}

// TypedExpressions lists the nodes under Root that have a recorded type, in
// source order.
func (ctx *CompilerContext) TypedExpressions() []ast.Handle {
	var typed []ast.Handle
	if !ctx.Arena.Valid(ctx.Root) {
		return typed
	}
	ast.Walk(ctx.Arena, ctx.Root, func(h ast.Handle, _ ast.Node) bool {
		if _, ok := ctx.ExprType(h); ok {
			typed = append(typed, h)
		}
		return true
	})
	return typed
}
