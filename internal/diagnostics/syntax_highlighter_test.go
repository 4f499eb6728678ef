package diagnostics

import (
	"bytes"
	"strings"
	"testing"

	"kestrel/colors"
)

func TestSyntaxHighlighter_Keywords(t *testing.T) {
	defer colors.SetEnabled(colors.Enabled())
	colors.SetEnabled(true)

	sh := NewSyntaxHighlighter(true)

	tests := []struct {
		name  string
		input string
		word  string
		color colors.COLOR
	}{
		{"let keyword", "let x: int = 42;", "let", colors.PURPLE},
		{"fn keyword", "fn hello() {}", "fn", colors.PURPLE},
		{"primitive type", "let x: bool;", "bool", colors.ORANGE},
		{"number", "return 42;", "42", colors.YELLOW},
		{"string", "let s = \"hi\";", "\"hi\"", colors.GREEN},
		{"comment", "x = 1; // set", "// set", colors.GREY},
		{"identifier", "count", "count", colors.WHITE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := false
			for _, span := range sh.Highlight(tt.input) {
				if span.Text == tt.word {
					found = true
					if span.Color != tt.color {
						t.Errorf("Expected %q colored %q, got %q", tt.word, tt.color, span.Color)
					}
				}
			}
			if !found {
				t.Errorf("Expected a span for %q", tt.word)
			}
		})
	}
}

func TestSyntaxHighlighter_RoundTrip(t *testing.T) {
	sh := NewSyntaxHighlighter(true)
	lines := []string{
		"fn main(a: int, b: [Node]): bool { return a < 10 && b[0].ok; }",
		"\tlet c: int = 'x';",
		"while (i != 3) { i = i + 1; } /* tail",
	}

	for _, line := range lines {
		var sb strings.Builder
		for _, span := range sh.Highlight(line) {
			sb.WriteString(span.Text)
		}
		if sb.String() != line {
			t.Errorf("Expected spans to rebuild %q, got %q", line, sb.String())
		}
	}
}

func TestSyntaxHighlighter_Disabled(t *testing.T) {
	sh := NewSyntaxHighlighter(false)
	line := "fn main() {}"

	if sh.IsEnabled() {
		t.Error("Expected highlighter to be disabled")
	}
	if got := sh.HighlightLine(line); got != line {
		t.Errorf("Expected unchanged line, got %q", got)
	}

	var buf bytes.Buffer
	sh.HighlightWithColor(line, &buf)
	if buf.String() != line {
		t.Errorf("Expected unchanged output, got %q", buf.String())
	}
}

func TestSyntaxHighlighter_ColorsInOutput(t *testing.T) {
	defer colors.SetEnabled(colors.Enabled())
	colors.SetEnabled(true)

	sh := NewSyntaxHighlighter(true)
	out := sh.HighlightLine("struct Node {}")
	if !strings.Contains(out, "\x1b[") {
		t.Errorf("Expected ANSI codes in %q", out)
	}
	if colors.StripANSI(out) != "struct Node {}" {
		t.Errorf("Expected stripped output to match input, got %q", colors.StripANSI(out))
	}
}
