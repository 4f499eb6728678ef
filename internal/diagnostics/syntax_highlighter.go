package diagnostics

import (
	"io"
	"strings"

	"kestrel/colors"
	"kestrel/internal/tokens"
	"kestrel/internal/types"
)

// SyntaxHighlighter colors kestrel source lines shown under diagnostics
type SyntaxHighlighter struct {
	enabled bool
}

// NewSyntaxHighlighter creates a new syntax highlighter
func NewSyntaxHighlighter(enabled bool) *SyntaxHighlighter {
	return &SyntaxHighlighter{enabled: enabled}
}

func (sh *SyntaxHighlighter) IsEnabled() bool {
	return sh.enabled
}

// Span is a run of source text with its color
type Span struct {
	Text  string
	Color colors.COLOR
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Highlight splits a line into colored spans. Concatenating the span texts
// gives back the line unchanged.
func (sh *SyntaxHighlighter) Highlight(line string) []Span {
	if !sh.enabled {
		return []Span{{Text: line, Color: colors.WHITE}}
	}

	var spans []Span
	i := 0
	for i < len(line) {
		start := i
		c := line[i]

		switch {
		case c == ' ' || c == '\t' || c == '\r':
			for i < len(line) && (line[i] == ' ' || line[i] == '\t' || line[i] == '\r') {
				i++
			}
			spans = append(spans, Span{Text: line[start:i], Color: colors.WHITE})

		case c == '"' || c == '\'':
			i++
			for i < len(line) && line[i] != c {
				i++
			}
			if i < len(line) {
				i++
			}
			color := colors.GREEN
			if c == '\'' {
				color = colors.YELLOW
			}
			spans = append(spans, Span{Text: line[start:i], Color: color})

		case isDigit(c):
			for i < len(line) && isDigit(line[i]) {
				i++
			}
			spans = append(spans, Span{Text: line[start:i], Color: colors.YELLOW})

		case isIdentStart(c):
			for i < len(line) && (isIdentStart(line[i]) || isDigit(line[i])) {
				i++
			}
			word := line[start:i]
			color := colors.WHITE
			if tokens.IsKeyword(word) {
				color = colors.PURPLE
			} else if types.IsPrimitive(word) {
				color = colors.ORANGE
			}
			spans = append(spans, Span{Text: word, Color: color})

		case c == '/' && i+1 < len(line) && (line[i+1] == '/' || line[i+1] == '*'):
			spans = append(spans, Span{Text: line[i:], Color: colors.GREY})
			i = len(line)

		default:
			i++
			spans = append(spans, Span{Text: line[start:i], Color: colors.WHITE})
		}
	}

	return spans
}

// HighlightLine returns a highlighted line ready for printing
func (sh *SyntaxHighlighter) HighlightLine(line string) string {
	if !sh.enabled {
		return line
	}

	var result strings.Builder
	for _, span := range sh.Highlight(line) {
		span.Color.Fprint(&result, span.Text)
	}
	return result.String()
}

// HighlightWithColor writes the highlighted line to writer
func (sh *SyntaxHighlighter) HighlightWithColor(line string, writer io.Writer) {
	io.WriteString(writer, sh.HighlightLine(line))
}
