package diagnostics

import (
	"fmt"
	"io"
	"strings"

	"kestrel/colors"
	"kestrel/internal/source"
)

const (
	gutter     = "\t | "
	noteMarker = "\t = "
)

// SourceCache caches source file lines for error reporting
type SourceCache struct {
	files map[string][]string
}

func NewSourceCache() *SourceCache {
	return &SourceCache{
		files: make(map[string][]string),
	}
}

// AddSource registers in-memory content for a path
func (sc *SourceCache) AddSource(filepath, content string) {
	sc.files[filepath] = source.GetSourceLines(content)
}

// GetLine retrieves a 1-based line from a source file, loading it from disk
// when the content was not registered.
func (sc *SourceCache) GetLine(filepath string, line int) (string, error) {
	lines, ok := sc.files[filepath]
	if !ok {
		content, err := source.ReadFile(filepath)
		if err != nil {
			return "", err
		}
		lines = source.GetSourceLines(content)
		sc.files[filepath] = lines
	}
	if line > 0 && line <= len(lines) {
		return lines[line-1], nil
	}
	// a position just past a trailing newline sits on an empty line
	if line == len(lines)+1 {
		return "", nil
	}
	return "", fmt.Errorf("line %d out of range", line)
}

// Emitter handles the rendering and output of diagnostics
type Emitter struct {
	cache       *SourceCache
	writer      io.Writer
	highlighter *SyntaxHighlighter
	// ShowPath prefixes the header with the file path, used when several
	// files report into the same stream.
	ShowPath bool
}

// NewEmitter creates an emitter that writes to a specific writer
func NewEmitter(w io.Writer) *Emitter {
	return NewEmitterWithCache(w, NewSourceCache())
}

func NewEmitterWithCache(w io.Writer, cache *SourceCache) *Emitter {
	return &Emitter{
		cache:       cache,
		writer:      w,
		highlighter: NewSyntaxHighlighter(colors.Enabled()),
	}
}

// Emit renders one diagnostic:
//
//	<line>:<column>: error: <message>
//		 | <source line>
//		 | <padding>^---
func (e *Emitter) Emit(diag *Diagnostic) {
	e.printHeader(diag)

	for _, label := range diag.Labels {
		e.printLabel(diag.FilePath, label)
	}

	for _, note := range diag.Notes {
		e.printNote("note", note.Message)
	}

	if diag.Help != "" {
		e.printNote("help", diag.Help)
	}
}

func (e *Emitter) printHeader(diag *Diagnostic) {
	var color colors.COLOR
	switch diag.Severity {
	case Error:
		color = colors.BOLD_RED
	case Warning:
		color = colors.BOLD_YELLOW
	default:
		color = colors.BOLD_CYAN
	}

	if p := diag.Primary(); p != nil && p.Location != nil {
		if e.ShowPath && diag.FilePath != "" {
			fmt.Fprintf(e.writer, "%s:", diag.FilePath)
		}
		line, col := p.Location.Start.Human()
		fmt.Fprintf(e.writer, "%d:%d: ", line, col)
	} else if e.ShowPath && diag.FilePath != "" {
		fmt.Fprintf(e.writer, "%s: ", diag.FilePath)
	}

	color.Fprintf(e.writer, "%s:", diag.Severity)
	fmt.Fprintf(e.writer, " %s\n", diag.Message)
}

func (e *Emitter) printLabel(filepath string, label Label) {
	if label.Location == nil {
		return
	}
	if label.Location.Filename != "" {
		filepath = label.Location.Filename
	}

	line, _ := label.Location.Start.Human()
	text, err := e.cache.GetLine(filepath, line)
	if err != nil {
		return
	}

	colors.GREY.Fprint(e.writer, gutter)
	fmt.Fprintln(e.writer, e.highlighter.HighlightLine(text))

	colors.GREY.Fprint(e.writer, gutter)
	pad, mark := Underline(text, label.Location.Start.Column, label.Location.Length, label.Style)
	fmt.Fprint(e.writer, pad)
	if label.Style == Primary {
		colors.RED.Fprint(e.writer, mark)
	} else {
		colors.BLUE.Fprint(e.writer, mark)
	}
	if label.Message != "" {
		fmt.Fprintf(e.writer, " %s", label.Message)
	}
	fmt.Fprintln(e.writer)
}

func (e *Emitter) printNote(kind, message string) {
	colors.GREY.Fprint(e.writer, noteMarker)
	colors.BOLD_CYAN.Fprintf(e.writer, "%s:", kind)
	fmt.Fprintf(e.writer, " %s\n", message)
}

// Underline returns the padding that lines a marker up under column col of
// line, and the marker itself. Tabs in the prefix are kept so the marker
// aligns however the terminal expands them. The marker is clamped to the end
// of the line and is never shorter than one character.
func Underline(line string, col, length int, style LabelStyle) (string, string) {
	var pad strings.Builder
	for i := 0; i < col; i++ {
		if i < len(line) && line[i] == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteByte(' ')
		}
	}

	width := length
	if col < len(line) && col+width > len(line) {
		width = len(line) - col
	}
	if width < 1 {
		width = 1
	}

	if style == Primary {
		return pad.String(), "^" + strings.Repeat("-", width-1)
	}
	return pad.String(), strings.Repeat("-", width)
}
