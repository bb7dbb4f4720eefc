package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether v (an *os.File or anything with an Fd method,
// reader or writer) refers to a terminal.
func IsTerminal(v any) bool {
	if f, ok := v.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// ColorEnabled decides whether ANSI colors go to w. NO_COLOR and TERM=dumb
// turn colors off; CLICOLOR_FORCE turns them on even when w is not a
// terminal.
func ColorEnabled(w io.Writer) bool {
	return colorEnabled(IsTerminal(w))
}

func colorEnabled(tty bool) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if v := os.Getenv("CLICOLOR_FORCE"); v != "" && v != "0" {
		return true
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return tty
}
