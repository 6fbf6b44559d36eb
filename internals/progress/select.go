package progress

import (
	"os"

	"github.com/mattn/go-isatty"
)

// Closer is implemented by sinks that need to be stopped
type Closer interface {
	Close()
}

// ForTerminal picks a sink for stdout. Interactive terminals get the progress bar,
// everything else plain lines.
func ForTerminal(nonInteractive bool) Sink {
	tty := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if nonInteractive || !tty || os.Getenv("CI") != "" {
		return NewSpinnerSink(os.Stdout, false)
	}
	return NewFancySink(os.Stdout)
}

// Close closes sink if it needs to be closed
func Close(sink Sink) {
	if c, ok := sink.(Closer); ok {
		c.Close()
	}
}
