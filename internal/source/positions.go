package source

// Position represents a specific location in the source code.
// Line and Column are 0-based; use Human for the 1-based pair shown to users.
type Position struct {
	Offset int // Byte offset in the source code.
	Line   int // Line number, starting at 0.
	Column int // Column number, starting at 0.
}

// Advance updates the Position by consuming a single byte.
// A newline increments the line and resets the column; every other byte,
// tabs included, advances the column by one.
func (p *Position) Advance(b byte) *Position {
	p.Offset++
	if b == '\n' {
		p.Line++
		p.Column = 0
		return p
	}
	p.Column++
	return p
}

// AdvanceString advances the Position over every byte of s.
func (p *Position) AdvanceString(s string) *Position {
	for i := 0; i < len(s); i++ {
		p.Advance(s[i])
	}
	return p
}

// Human returns the 1-based line and column.
func (p Position) Human() (line, column int) {
	return p.Line + 1, p.Column + 1
}
