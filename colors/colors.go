package colors

import (
	"io"
	"os"
	"sync/atomic"

	"golang.org/x/term"
)

// COLOR is an ANSI escape sequence.
type COLOR string

const (
	RESET COLOR = "\033[0m"

	RED    COLOR = "\033[31m"
	GREEN  COLOR = "\033[32m"
	YELLOW COLOR = "\033[33m"
	BLUE   COLOR = "\033[34m"
	PURPLE COLOR = "\033[35m"
	CYAN   COLOR = "\033[36m"
	WHITE  COLOR = "\033[37m"
	GREY   COLOR = "\033[90m"

	BOLD_RED    COLOR = "\033[1;31m"
	BOLD_GREEN  COLOR = "\033[1;32m"
	BOLD_YELLOW COLOR = "\033[1;33m"
	BOLD_CYAN   COLOR = "\033[1;36m"

	ORANGE COLOR = "\033[38;5;208m"
	BROWN  COLOR = "\033[38;5;130m"
)

// Mode selects when escape sequences are written.
type Mode int

const (
	Auto Mode = iota
	Always
	Never
)

// ParseMode maps a flag value to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "auto", "":
		return Auto, true
	case "always":
		return Always, true
	case "never":
		return Never, true
	}
	return Auto, false
}

var enabled atomic.Bool

// Enabled reports whether color output is on.
func Enabled() bool {
	return enabled.Load()
}

// SetEnabled switches color output globally.
func SetEnabled(on bool) {
	enabled.Store(on)
}

// Configure applies mode for output going to w.
// Auto turns colors on only when w is a terminal.
func Configure(mode Mode, w io.Writer) {
	switch mode {
	case Always:
		SetEnabled(true)
	case Never:
		SetEnabled(false)
	default:
		SetEnabled(IsTerminal(w))
	}
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func (c COLOR) wrap(s string) string {
	if !Enabled() {
		return s
	}
	return string(c) + s + string(RESET)
}
