package terminal

import (
	"os"

	"github.com/mattn/go-isatty"
)

// StreamMode records which standard streams are attached to something other
// than an interactive terminal.
type StreamMode struct {
	StdinRedirected  bool
	StdoutRedirected bool
}

// Detect inspects the process's stdin and stdout once.
func Detect() StreamMode {
	return StreamMode{
		StdinRedirected:  !IsTerminal(os.Stdin),
		StdoutRedirected: !IsTerminal(os.Stdout),
	}
}

func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
