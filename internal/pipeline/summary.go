package pipeline

import (
	"fmt"
	"io"

	"kestrel/colors"
	"kestrel/internal/types"
)

// PrintSummary prints a summary of the compilation unit
func (p *Pipeline) PrintSummary(w io.Writer) {
	fmt.Fprintln(w)
	colors.CYAN.Fprintln(w, "═══════════════════════════════════════")
	colors.CYAN.Fprintln(w, "        COMPILATION SUMMARY")
	colors.CYAN.Fprintln(w, "═══════════════════════════════════════")

	fmt.Fprintf(w, "File: %s\n", p.ctx.FilePath)
	fmt.Fprintf(w, "Phase: %s\n", p.ctx.Phase)
	fmt.Fprintf(w, "Tokens: %d\n", len(p.ctx.Tokens))
	fmt.Fprintf(w, "AST Nodes: %d\n", p.ctx.NodeCount())
	fmt.Fprintf(w, "Types: %d\n\n", p.ctx.TypeCount())

	for i := 0; i < p.ctx.Types.Len(); i++ {
		fmt.Fprintf(w, " - %s\n", p.ctx.Types.Describe(types.Handle(i)))
	}
}
