package source

import (
	"fmt"
	"os"
)

// Location represents a span of source code: a start position and a byte length.
type Location struct {
	Filename string
	Start    Position
	Length   int
}

// NewLocation creates a new Location starting at start and spanning length bytes.
func NewLocation(filename string, start Position, length int) *Location {
	return &Location{
		Filename: filename,
		Start:    start,
		Length:   length,
	}
}

// End returns the offset one past the last byte of the span.
func (l *Location) End() int {
	return l.Start.Offset + l.Length
}

// Contains reports whether the byte offset falls inside this location.
func (l *Location) Contains(offset int) bool {
	return offset >= l.Start.Offset && offset < l.End()
}

func (l *Location) String() string {
	if l == nil {
		return "location(unknown)"
	}
	line, col := l.Start.Human()
	return fmt.Sprintf("%s:%d:%d", l.Filename, line, col)
}

// Text extracts the spanned text from src.
// Returns empty string if the span does not fit inside src.
func (l *Location) Text(src string) string {
	if l == nil || l.Start.Offset < 0 || l.Length < 0 || l.End() > len(src) {
		return ""
	}
	return src[l.Start.Offset:l.End()]
}

// LineAt returns the full line (without its terminating newline) that
// contains the byte offset.
func LineAt(src string, offset int) string {
	if offset < 0 || offset > len(src) {
		return ""
	}
	start := offset
	for start > 0 && src[start-1] != '\n' {
		start--
	}
	end := offset
	for end < len(src) && src[end] != '\n' {
		end++
	}
	line := src[start:end]
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return line
}

// GetSourceLines splits src into lines, dropping the terminators.
func GetSourceLines(src string) []string {
	if len(src) == 0 {
		return []string{}
	}

	var lines []string
	start := 0
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			line := src[start:i]
			if n := len(line); n > 0 && line[n-1] == '\r' {
				line = line[:n-1]
			}
			lines = append(lines, line)
			start = i + 1
		}
	}
	// Add the last line if there's remaining content
	if start < len(src) {
		lines = append(lines, src[start:])
	}
	return lines
}

// ReadFile loads a source file as text.
func ReadFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(content), nil
}
