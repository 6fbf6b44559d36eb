// Package commands wraps cobra commands and renders their errors.
package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Command is a cobra command whose errors are rendered as error boxes
type Command struct {
	*cobra.Command
	runner Runner
}

// Runner runs a command
type Runner interface {
	RunE(cmd *cobra.Command, args []string) error
}

// RunnerFunc is a func used as Runner
type RunnerFunc func(cmd *cobra.Command, args []string) error

// RunE calls f
func (f RunnerFunc) RunE(cmd *cobra.Command, args []string) error { return f(cmd, args) }

// exit is replaced in tests
var exit = os.Exit

func New(cmd *cobra.Command, run Runner) *Command {
	build := &Command{
		cmd,
		run,
	}
	build.Command.Run = func(cmd *cobra.Command, args []string) {
		err := run.RunE(cmd, args)
		if err != nil {
			Render(os.Stdout, err)
			exit(1)
		}
	}

	return build
}

// Render writes err to w. CliErrors get their help and suggestions rendered
func Render(w io.Writer, err error) {
	var asCliErr *CliError
	if errors.As(err, &asCliErr) {
		fmt.Fprintln(w, asCliErr.RichError()+"\n")
		return
	}
	fmt.Fprintln(w, ErrorBox(err.Error(), ""))
}
