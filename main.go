package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"kestrel/colors"
	"kestrel/internal/compiler"
	"kestrel/internal/diagnostics"
	"kestrel/internal/frontend/ast"
	"kestrel/internal/frontend/lexer"
	"kestrel/internal/frontend/parser"
	str "kestrel/internal/utils/strings"
)

const version = "0.1.0"

// demoExpression is parsed and dumped when no file is given.
const demoExpression = "c < b != 10 * 100 + 10"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("kestrel", flag.ContinueOnError)
	flags.SetOutput(stderr)

	// Define flags
	debug := flags.Bool("d", false, "Enable debug output")
	showVersion := flags.Bool("v", false, "Show version")
	flags.BoolVar(debug, "debug", false, "Enable debug output")
	flags.BoolVar(showVersion, "version", false, "Show version")
	showAST := flags.Bool("ast", false, "Print the syntax tree of each file")
	showTokens := flags.Bool("tokens", false, "List the tokens of each file")
	check := flags.Bool("check", false, "Run the expression type check")
	locals := flags.Bool("locals", false, "Make let-bound locals visible to the type check (implies -check)")
	colorMode := flags.String("color", "auto", "Colorize output: auto, always or never")

	if err := flags.Parse(args); err != nil {
		return 2
	}

	mode, ok := colors.ParseMode(*colorMode)
	if !ok {
		fmt.Fprintf(stderr, "invalid -color value %q\n", *colorMode)
		return 2
	}
	colors.Configure(mode, stdout)

	// Handle version
	if *showVersion {
		fmt.Fprintf(stdout, "kestrel version %s\n", version)
		return 0
	}

	files := flags.Args()
	if len(files) == 0 {
		fmt.Fprintln(stdout, "Usage: kestrel [options] <file.kes>...")
		fmt.Fprintln(stdout, "\nOptions:")
		flags.SetOutput(stdout)
		flags.PrintDefaults()
		demo(stdout)
		return 0
	}

	opts := make([]compiler.Options, len(files))
	for i, file := range files {
		opts[i] = compiler.Options{
			EntryFile:   file,
			Debug:       *debug,
			ShowTokens:  *showTokens,
			ShowAST:     *showAST,
			ShowPath:    len(files) > 1,
			TypeCheck:   *check || *locals,
			TrackLocals: *locals,
		}
	}

	failed := 0
	for i, result := range compiler.CompileAll(opts) {
		if len(files) > 1 {
			colors.BOLD_CYAN.Fprintf(stdout, "==> %s\n", files[i])
		}
		io.WriteString(stdout, result.Output)
		if !result.Success {
			failed++
		}
	}

	if failed == 0 {
		return 0
	}
	if len(files) > 1 {
		colors.RED.Fprintf(stdout, "%d of %s failed\n", failed, str.Count(len(files), "file", "files"))
	}
	return 1
}

// demo parses demoExpression on its own and prints its tree.
func demo(w io.Writer) {
	const name = "demo"

	diag := diagnostics.NewDiagnosticBag(name)
	diag.AddSourceContent(name, demoExpression)

	toks := lexer.Tokenize(name, demoExpression, diag)
	arena := ast.NewArena(16)
	root := parser.ParseExpression(toks, arena, name, diag)

	fmt.Fprintf(w, "\ndemo: %s\n", demoExpression)
	if diag.HasErrors() {
		diag.EmitAll(w)
		return
	}
	ast.Dump(w, arena, root)
}
