package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Console narrates generation progress on stderr, keeping diagnostics off
// the data stream so piped changelogs stay clean.
type Console struct {
	// Quiet drops informational narration. Warnings always print.
	Quiet bool
	// Err is the diagnostic sink, os.Stderr when nil.
	Err io.Writer
}

// NewConsole creates a stderr-backed progress console.
func NewConsole(quiet bool) *Console {
	return &Console{Quiet: quiet, Err: os.Stderr}
}

// Infof prints one line of narration unless the console is quiet.
func (c *Console) Infof(format string, args ...any) {
	if c.Quiet {
		return
	}
	fmt.Fprintf(c.sink(), format+"\n", args...)
}

// Warnf prints one warning line. Warnings survive quiet mode.
func (c *Console) Warnf(format string, args ...any) {
	fmt.Fprintf(c.sink(), "%s\n", color.RedString(" !! "+format, args...))
}

func (c *Console) sink() io.Writer {
	if c.Err != nil {
		return c.Err
	}
	return os.Stderr
}
