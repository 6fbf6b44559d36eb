package config

import (
	"fmt"

	"github.com/jwalton/gchalk"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/minepkg/minelaunch/internals/commands"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Lists all global config values",
		Args:    cobra.NoArgs,
	}, &listRunner{})

	SubCmd.AddCommand(cmd.Command)
}

type listRunner struct{}

func (i *listRunner) RunE(cmd *cobra.Command, args []string) error {
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Println(gchalk.Gray("Config file: " + used))
	}
	for _, e := range entries {
		value := viper.Get(e.key)
		shown := fmt.Sprintf("%v", value)
		switch {
		case value == nil:
			shown = gchalk.Gray("(unset)")
		case e.key == "download.sftp.password":
			shown = "****"
		}
		fmt.Printf("  %s: %s\n", gchalk.Bold(e.key), shown)
		fmt.Println(gchalk.Gray("    " + e.help))
	}
	return nil
}
