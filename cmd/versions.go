package cmd

import (
	"fmt"
	"os"

	"github.com/jwalton/gchalk"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/minepkg/minelaunch/internals/commands"
	"github.com/minepkg/minelaunch/internals/mojang"
	"github.com/minepkg/minelaunch/internals/utils"
)

func init() {
	runner := &versionsRunner{}
	cmd := commands.New(&cobra.Command{
		Use:     "versions",
		Aliases: []string{"ls-remote"},
		Short:   "Lists available Minecraft versions",
		Args:    cobra.NoArgs,
	}, runner)

	cmd.Flags().BoolVarP(&runner.snapshots, "snapshots", "s", false, "Include snapshots")
	cmd.Flags().BoolVarP(&runner.all, "all", "a", false, "Include snapshots and old alpha & beta versions")
	cmd.Flags().IntVarP(&runner.limit, "limit", "n", 20, "Number of versions to list. 0 lists all")

	rootCmd.AddCommand(cmd.Command)
}

type versionsRunner struct {
	snapshots bool
	all       bool
	limit     int
}

func (v *versionsRunner) types() []string {
	switch {
	case v.all:
		return nil
	case v.snapshots:
		return []string{mojang.TypeRelease, mojang.TypeSnapshot}
	}
	return []string{mojang.TypeRelease}
}

func (v *versionsRunner) RunE(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	manifest, err := a.loader.Manifest(cmd.Context())
	if err != nil {
		return err
	}

	releases := manifest.Filter(v.types()...)
	if v.limit > 0 && len(releases) > v.limit {
		releases = releases[:v.limit]
	}

	for _, r := range releases {
		line := r.ID
		switch r.ID {
		case manifest.Latest.Release:
			line += gchalk.Green(" (latest release)")
		case manifest.Latest.Snapshot:
			line += gchalk.Yellow(" (latest snapshot)")
		}
		if r.Type != mojang.TypeRelease {
			line += gchalk.Gray(" " + r.Type)
		}
		if _, err := os.Stat(a.env.Layout.VersionJSON(r.ID)); err == nil {
			line += gchalk.Cyan(" [installed]")
		}
		fmt.Println(line)
	}
	return nil
}

// selectVersion lets the user pick a release
func selectVersion(manifest *mojang.VersionManifest) (string, error) {
	if viper.GetBool("nonInteractive") {
		return "", &commands.CliError{
			Text:        "no version given",
			Suggestions: []string{"Pass a version like `1.20.1` or `latest`"},
		}
	}

	releases := manifest.Filter(mojang.TypeRelease)
	items := make([]string, len(releases))
	for i, r := range releases {
		items[i] = r.ID
	}

	prompt := promptui.Select{
		Label:             "Minecraft version",
		Items:             items,
		Size:              10,
		StartInSearchMode: true,
		Searcher: func(input string, index int) bool {
			return len(input) <= len(items[index]) && items[index][:len(input)] == input
		},
	}
	return utils.SelectPrompt(&prompt)
}
