package diagnostics

import (
	"io"
	"sync"

	"kestrel/colors"
)

const (
	compileFailedMsg          = "Compilation failed with %d error(s)"
	andWarningMsg             = " and %d warning(s)"
	compileSuccessWithWarning = "Compilation succeeded with %d warning(s)\n"
)

// DiagnosticBag collects diagnostics during compilation of one unit
type DiagnosticBag struct {
	filepath    string
	diagnostics []*Diagnostic
	mu          sync.Mutex
	errorCount  int
	warnCount   int
	sourceCache *SourceCache
}

// NewDiagnosticBag creates a new diagnostic bag for a file
func NewDiagnosticBag(filepath string) *DiagnosticBag {
	return &DiagnosticBag{
		filepath:    filepath,
		diagnostics: make([]*Diagnostic, 0),
		sourceCache: NewSourceCache(),
	}
}

// AddSourceContent adds source content for a file path (for in-memory compilation)
func (db *DiagnosticBag) AddSourceContent(filepath, content string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.sourceCache.AddSource(filepath, content)
}

// Add adds a diagnostic to the bag
func (db *DiagnosticBag) Add(diag *Diagnostic) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if diag.FilePath == "" {
		diag.FilePath = db.filepath
	}
	db.diagnostics = append(db.diagnostics, diag)

	switch diag.Severity {
	case Error:
		db.errorCount++
	case Warning:
		db.warnCount++
	}
}

// HasErrors returns true if there are any errors
func (db *DiagnosticBag) HasErrors() bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.errorCount > 0
}

// ErrorCount returns the number of errors
func (db *DiagnosticBag) ErrorCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.errorCount
}

// WarningCount returns the number of warnings
func (db *DiagnosticBag) WarningCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.warnCount
}

// Diagnostics returns a copy of all diagnostics
func (db *DiagnosticBag) Diagnostics() []*Diagnostic {
	db.mu.Lock()
	defer db.mu.Unlock()
	result := make([]*Diagnostic, len(db.diagnostics))
	copy(result, db.diagnostics)
	return result
}

// EmitAll writes every diagnostic followed by the summary line.
func (db *DiagnosticBag) EmitAll(w io.Writer) {
	db.Emit(w, false)
	db.printSummary(w)
}

// Emit writes the diagnostics without a summary. showPath prefixes each
// header with the file path.
func (db *DiagnosticBag) Emit(w io.Writer, showPath bool) {
	db.mu.Lock()
	diagnostics := make([]*Diagnostic, len(db.diagnostics))
	copy(diagnostics, db.diagnostics)
	emitter := NewEmitterWithCache(w, db.sourceCache)
	db.mu.Unlock()

	emitter.ShowPath = showPath
	for _, diag := range diagnostics {
		emitter.Emit(diag)
	}
}

func (db *DiagnosticBag) printSummary(w io.Writer) {
	db.mu.Lock()
	defer db.mu.Unlock()
	PrintSummary(w, db.errorCount, db.warnCount)
}

// PrintSummary writes the closing line for a run with the given counts.
func PrintSummary(w io.Writer, errors, warnings int) {
	if errors > 0 {
		colors.RED.Fprintf(w, compileFailedMsg, errors)
		if warnings > 0 {
			colors.RED.Fprintf(w, andWarningMsg, warnings)
		}
		io.WriteString(w, "\n")
	} else if warnings > 0 {
		colors.ORANGE.Fprintf(w, compileSuccessWithWarning, warnings)
	}
}

// Clear removes all diagnostics
func (db *DiagnosticBag) Clear() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.diagnostics = make([]*Diagnostic, 0)
	db.errorCount = 0
	db.warnCount = 0
	db.warnCount = 0
}
