package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/minepkg/minelaunch/internals/commands"
	"github.com/minepkg/minelaunch/internals/install"
	"github.com/minepkg/minelaunch/internals/progress"
)

func init() {
	runner := &installRunner{}
	cmd := commands.New(&cobra.Command{
		Use:     "install [version]",
		Aliases: []string{"i"},
		Short:   "Downloads a Minecraft version with all libraries and assets",
		Long: `Downloads a Minecraft version with all libraries and assets.
Without a version you can pick one interactively.
Existing files are verified and only missing or corrupt files get downloaded.`,
		Example: `
  minelaunch install 1.20.1
  minelaunch install latest --loader fabric
  minelaunch install 1.19.2 --loader forge --loaderVersion 43.2.0`,
		Args: cobra.MaximumNArgs(1),
	}, runner)

	cmd.Flags().StringVarP(&runner.loader, "loader", "l", "vanilla", "Mod loader to install (vanilla, fabric, quilt, forge)")
	cmd.Flags().StringVar(&runner.loaderVersion, "loaderVersion", "", "Mod loader version or constraint. Defaults to the latest stable version")
	cmd.Flags().BoolVar(&runner.full, "full", false, "Hash check every file, even if it was verified before")
	cmd.Flags().StringVar(&runner.instance, "instance", "", "Use the verification markers of this instance")

	cmd.ValidArgsFunction = completeVersion
	rootCmd.AddCommand(cmd.Command)
}

type installRunner struct {
	loader        string
	loaderVersion string
	full          bool
	instance      string
}

func (i *installRunner) RunE(cmd *cobra.Command, args []string) error {
	loader, err := install.ParseModLoaderType(i.loader)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()
	ctx := cmd.Context()

	var version string
	if len(args) == 0 {
		manifest, err := a.loader.Manifest(ctx)
		if err != nil {
			return err
		}
		if version, err = selectVersion(manifest); err != nil {
			return err
		}
	} else if version, err = a.versionID(ctx, args[0]); err != nil {
		return err
	}

	if i.instance != "" {
		instance, err := a.instances.Get(i.instance)
		if err != nil {
			return cliError(err)
		}
		a.installer.Markers = install.Markers{Dir: instance.Dir}
	}
	a.installer.IgnoreMarkers = i.full

	title := "Installing Minecraft " + version
	if loader != install.Vanilla {
		title += " with " + loader.String()
	}
	logger.Headline(title)

	sink := newSink()
	a.installer.SetSink(sink)
	outcome, err := a.installer.Install(ctx, install.Request{
		Version:       version,
		Loader:        loader,
		LoaderVersion: i.loaderVersion,
	})
	progress.Close(sink)
	if err != nil {
		return cliError(err)
	}

	logger.Info(fmt.Sprintf(
		"%d files checked, %d missing, %d downloaded (%s)",
		outcome.Planned,
		outcome.Missing,
		outcome.Result.Fetched,
		humanize.IBytes(uint64(outcome.Result.Bytes)),
	))
	logger.Info("Installed " + outcome.Installation.ID)
	return nil
}
