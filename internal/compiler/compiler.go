package compiler

import (
	"bytes"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"kestrel/internal/context_v2"
	"kestrel/internal/diagnostics"
	"kestrel/internal/frontend/ast"
	"kestrel/internal/phase"
	"kestrel/internal/pipeline"
)

// Options for compilation
type Options struct {
	// For file-based compilation
	EntryFile string
	// For in-memory compilation; Name is the virtual path (default "main.kes")
	Code string
	Name string

	// Debug output
	Debug bool
	// Report sections
	ShowTokens bool
	ShowAST    bool
	// Prefix diagnostic headers with the file path
	ShowPath bool

	TypeCheck   bool
	TrackLocals bool
}

// Result of compilation
type Result struct {
	Success bool
	// Output is the report for this unit, ready to print
	Output string
	// Context is the unit after the run, nil if it never started
	Context *context_v2.CompilerContext
}

// Compile runs one unit through the pipeline and renders its report. It
// never writes to the process output; the caller decides where Output goes.
func Compile(opts Options) Result {
	config := &context_v2.Config{
		Extension:   ".kes",
		TypeCheck:   opts.TypeCheck,
		TrackLocals: opts.TrackLocals,
	}
	ctx := context_v2.New(config, opts.Debug)

	if opts.EntryFile != "" {
		if err := ctx.LoadFile(opts.EntryFile); err != nil {
			ctx.Diagnostics.Add(diagnostics.NewError(err.Error()).WithCode(diagnostics.ErrFileNotReadable))
			var out bytes.Buffer
			ctx.EmitDiagnostics(&out, false)
			return Result{Success: false, Output: out.String(), Context: ctx}
		}
	} else {
		name := opts.Name
		if name == "" {
			name = "main.kes"
		}
		ctx.SetSource(name, opts.Code)
	}

	p := pipeline.New(ctx)
	err := p.Run()

	var out bytes.Buffer
	report(&out, ctx, opts)
	if ctx.Debug {
		p.PrintSummary(&out)
	}

	return Result{Success: err == nil && !ctx.HasErrors(), Output: out.String(), Context: ctx}
}

// report writes the counts for every stage the unit reached, the optional
// token and AST listings, then its diagnostics.
func report(out *bytes.Buffer, ctx *context_v2.CompilerContext, opts Options) {
	reached := func(target phase.ModulePhase) bool {
		return ctx.Phase >= target
	}

	if reached(phase.PhaseLexed) {
		if opts.ShowTokens {
			for i := range ctx.Tokens {
				ctx.Tokens[i].Debug(out, ctx.FilePath)
			}
		}
		fmt.Fprintf(out, "token count: %d\n", len(ctx.Tokens))
	}

	if reached(phase.PhaseParsed) {
		if opts.ShowAST && ctx.Arena.Valid(ctx.Root) {
			ast.Dump(out, ctx.Arena, ctx.Root)
		}
		fmt.Fprintf(out, "node count: %d\n", ctx.NodeCount())
	}

	if reached(phase.PhaseResolved) {
		fmt.Fprintf(out, "type count: %d\n", ctx.TypeCount())
	}

	if reached(phase.PhaseTypeChecked) {
		typed := ctx.TypedExpressions()
		if opts.ShowAST {
			for _, h := range typed {
				ref, _ := ctx.ExprType(h)
				line, col := ctx.Arena.Get(h).Loc().Start.Human()
				fmt.Fprintf(out, "%d:%d %s: %s\n", line, col, ctx.Arena.Get(h).Kind(), ctx.Types.RefName(ref))
			}
		}
		fmt.Fprintf(out, "typed expression count: %d\n", len(typed))
	}

	ctx.EmitDiagnostics(out, opts.ShowPath)
}

// CompileAll compiles every unit concurrently, one context per unit.
// Results come back in the order of opts.
func CompileAll(opts []Options) []Result {
	results := make([]Result, len(opts))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, o := range opts {
		i, o := i, o
		g.Go(func() error {
			results[i] = Compile(o)
			return nil
		})
	}
	_ = g.Wait()

	return results
}
