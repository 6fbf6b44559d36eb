package cmdlog

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jwalton/gchalk"
)

// Logger loggs pretty stuff to the console
type Logger struct {
	out       io.Writer
	emojis    bool
	indention int
}

// helper for indention
func (l *Logger) println(a string) {
	fmt.Fprintln(l.out, strings.Repeat(" ", l.indention)+a)
}

// printEmoji prints string e only when emojis are enabled
func (l *Logger) printEmoji(e string) {
	if l.emojis {
		fmt.Fprint(l.out, e+" ")
	}
}

func (l *Logger) sprintEmoji(e string) string {
	if l.emojis {
		return e
	}
	return ""
}

// Headline prints a blue line
func (l *Logger) Headline(s string) {
	fmt.Fprintln(l.out, gchalk.WithBold().Cyan(s))
}

// Info prints a "normal" line
func (l *Logger) Info(s string) {
	l.println(s)
}

// Log prints a gray line
func (l *Logger) Log(s string) {
	l.println(gchalk.Gray(s))
}

// Warn will print a warning
func (l *Logger) Warn(s string) {
	l.printEmoji("⚠️ ")
	fmt.Fprintln(l.out, gchalk.WithBold().Yellow(s))
}

// Error prints an error without exiting
func (l *Logger) Error(s string) {
	l.printEmoji("💣")
	fmt.Fprint(l.out, gchalk.WithBold().Red("Error: "))
	fmt.Fprintln(l.out, gchalk.Bold(s))
}

// NewTask returns a new Task logger
func (l *Logger) NewTask(end int) *Task {
	logger := *l
	logger.indention = 2
	return &Task{Logger: &logger, end: end}
}

// New returns a new Logger writing to stdout
func New() *Logger {
	return NewWithWriter(os.Stdout)
}

// NewWithWriter returns a new Logger writing to w
func NewWithWriter(w io.Writer) *Logger {
	emojis := runtime.GOOS != "windows"

	// disable color for CI
	if os.Getenv("CI") != "" {
		emojis = false
		DisableColor()
	}
	return &Logger{out: w, emojis: emojis}
}

// DisableColor turns off all colors (--no-color)
func DisableColor() {
	gchalk.SetLevel(gchalk.LevelNone)
}

// Task logs but with progress
type Task struct {
	*Logger
	current int
	end     int
}

// Step prints progress
func (l *Task) Step(e string, s string) {
	l.current++
	text := gchalk.Cyan(fmt.Sprintf(
		"[%d / %d] %s %s",
		l.current,
		l.end,
		l.sprintEmoji(e),
		s,
	))

	// we don't use l.println here, because step headlines should have no indentation
	fmt.Fprintln(l.out, text)
}

// HumanBytes returns the size in a human readable format
func HumanBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// HumanRate formats a bytes per second value
func HumanRate(bytesPerSecond int64) string {
	return HumanBytes(bytesPerSecond) + "/s"
}
