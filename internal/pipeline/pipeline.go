package pipeline

import (
	"fmt"
	"io"
	"os"

	"kestrel/colors"
	"kestrel/internal/context_v2"
	"kestrel/internal/frontend/lexer"
	"kestrel/internal/frontend/parser"
	"kestrel/internal/phase"
	"kestrel/internal/semantics/resolver"
	"kestrel/internal/semantics/typechecker"
)

// Pipeline runs the stages of one compilation unit in order. A stage that
// reports errors stops the run, so later stages only ever see clean input.
type Pipeline struct {
	ctx *context_v2.CompilerContext

	// trace receives debug output when ctx.Debug is set
	trace io.Writer
}

// New creates a new compilation pipeline
func New(ctx *context_v2.CompilerContext) *Pipeline {
	return &Pipeline{
		ctx:   ctx,
		trace: os.Stderr,
	}
}

// SetTrace redirects debug output
func (p *Pipeline) SetTrace(w io.Writer) {
	p.trace = w
}

// Run executes the full compilation pipeline
func (p *Pipeline) Run() error {
	p.phaseHeader(1, "Lex")
	if err := p.runLexPhase(); err != nil {
		return err
	}

	p.phaseHeader(2, "Parse")
	if err := p.runParsePhase(); err != nil {
		return err
	}

	p.phaseHeader(3, "Resolution")
	if err := p.runResolverPhase(); err != nil {
		return err
	}

	if p.ctx.Config.TypeCheck {
		p.phaseHeader(4, "Type Checking")
		if err := p.runTypeCheckerPhase(); err != nil {
			return err
		}
	}

	if p.ctx.Debug {
		colors.GREEN.Fprintf(p.trace, "\n✓ Compilation successful! (%s)\n", p.ctx.FilePath)
	}

	return nil
}

func (p *Pipeline) phaseHeader(n int, name string) {
	if p.ctx.Debug {
		colors.CYAN.Fprintf(p.trace, "\n[Phase %d] %s\n", n, name)
	}
}

func (p *Pipeline) done(detail string) {
	if p.ctx.Debug {
		colors.PURPLE.Fprintf(p.trace, "  ✓ %s (%s)\n", p.ctx.FilePath, detail)
	}
}

// advance moves the unit to target or reports why it could not.
func (p *Pipeline) advance(target phase.ModulePhase) error {
	if !p.ctx.AdvancePhase(target) {
		p.ctx.ReportError(fmt.Sprintf("cannot advance %s from %s to %s", p.ctx.FilePath, p.ctx.Phase, target), nil)
		return fmt.Errorf("invalid phase transition to %s", target)
	}
	return nil
}

func (p *Pipeline) runLexPhase() error {
	p.ctx.Tokens = lexer.Tokenize(p.ctx.FilePath, p.ctx.Source, p.ctx.Diagnostics)

	if err := p.advance(phase.PhaseLexed); err != nil {
		return err
	}
	if p.ctx.HasErrors() {
		return fmt.Errorf("lexing failed with errors")
	}

	p.done(fmt.Sprintf("%d tokens", len(p.ctx.Tokens)))
	return nil
}

func (p *Pipeline) runParsePhase() error {
	p.ctx.Root = parser.Parse(p.ctx.Tokens, p.ctx.Arena, p.ctx.FilePath, p.ctx.Diagnostics)

	if err := p.advance(phase.PhaseParsed); err != nil {
		return err
	}
	if p.ctx.HasErrors() {
		return fmt.Errorf("parsing failed with errors")
	}

	p.done(fmt.Sprintf("%d nodes", p.ctx.NodeCount()))
	return nil
}

func (p *Pipeline) runResolverPhase() error {
	resolver.Resolve(p.ctx)

	if p.ctx.Phase != phase.PhaseResolved {
		return fmt.Errorf("cannot resolve %s in phase %s", p.ctx.FilePath, p.ctx.Phase)
	}
	if p.ctx.HasErrors() {
		return fmt.Errorf("resolution failed with errors")
	}

	p.done(fmt.Sprintf("%d types", p.ctx.TypeCount()))
	return nil
}

func (p *Pipeline) runTypeCheckerPhase() error {
	typechecker.Check(p.ctx)

	if p.ctx.Phase != phase.PhaseTypeChecked {
		return fmt.Errorf("cannot type check %s in phase %s", p.ctx.FilePath, p.ctx.Phase)
	}
	if p.ctx.HasErrors() {
		return fmt.Errorf("type checking failed with errors")
	}

	p.done(fmt.Sprintf("%d typed expressions", len(p.ctx.TypedExpressions())))
	return nil
}
