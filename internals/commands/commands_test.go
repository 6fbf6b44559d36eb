package commands

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func TestRender(t *testing.T) {
	EmojiEnabled = false
	tests := []struct {
		name  string
		err   error
		wants []string
	}{
		{"plain", errors.New("disk full"), []string{"Error: disk full"}},
		{
			"cli error",
			&CliError{Text: "version 1.2.3 not found", Code: "missing-ancestor", Help: "check the version", Suggestions: []string{"run minelaunch versions"}},
			[]string{"Error: version 1.2.3 not found", "code: missing-ancestor", "check the version", "Suggestion:", "run minelaunch versions"},
		},
		{
			"wrapped cli error",
			errors.Wrap(&CliError{Text: "inner", Suggestions: []string{"a", "b"}}, "outer"),
			[]string{"Error: inner", "Suggestions:"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			Render(out, tt.err)
			for _, want := range tt.wants {
				if !strings.Contains(out.String(), want) {
					t.Errorf("output is missing %q:\n%s", want, out.String())
				}
			}
		})
	}
}

func TestNew_ExitsOnError(t *testing.T) {
	code := -1
	exit = func(c int) { code = c }
	defer func() { exit = os.Exit }()

	cmd := New(&cobra.Command{Use: "fail"}, RunnerFunc(func(cmd *cobra.Command, args []string) error {
		return errors.New("nope")
	}))
	cmd.Run(cmd.Command, nil)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}

	code = -1
	ok := New(&cobra.Command{Use: "ok"}, RunnerFunc(func(cmd *cobra.Command, args []string) error { return nil }))
	ok.Run(ok.Command, nil)
	if code != -1 {
		t.Error("exit should not be called on success")
	}
}
