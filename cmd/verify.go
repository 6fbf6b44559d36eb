package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minepkg/minelaunch/internals/commands"
	"github.com/minepkg/minelaunch/internals/install"
	"github.com/minepkg/minelaunch/internals/progress"
)

func init() {
	runner := &verifyRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "verify <instance>",
		Short: "Hash checks every file of an instance",
		Long: `Hash checks every file of the instance version, even if it was verified before.
Missing or corrupt files are listed and can be downloaded again with --fix.`,
		Args: cobra.ExactArgs(1),
	}, runner)

	cmd.Flags().BoolVar(&runner.fix, "fix", false, "Download missing or corrupt files")

	cmd.ValidArgsFunction = completeInstance
	rootCmd.AddCommand(cmd.Command)
}

type verifyRunner struct {
	fix bool
}

func (v *verifyRunner) RunE(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	instance, err := a.instances.Get(args[0])
	if err != nil {
		return cliError(err)
	}
	a.installer.Markers = install.Markers{Dir: instance.Dir}
	a.selectInstance(instance.Name)

	version := instance.Settings.InstalledVersion()
	if instance.Settings.Installed == "" && instance.Settings.Loader != "" && instance.Settings.Loader != "vanilla" {
		logger.Warn("The " + instance.Settings.Loader + " files are only verified after the instance was launched once")
	}

	logger.Headline("Verifying " + instance.Name + " (" + version + ")")
	sink := newSink()
	a.installer.SetSink(sink)
	missing, err := a.installer.Verify(cmd.Context(), version)
	if err != nil {
		progress.Close(sink)
		return cliError(err)
	}

	if len(missing) == 0 || !v.fix {
		progress.Close(sink)
	}
	if len(missing) == 0 {
		logger.Info("All files are fine")
		return nil
	}

	if !v.fix {
		for _, f := range missing {
			logger.Log(fmt.Sprintf("%s %s", f.Category, f.Target))
		}
		return &commands.CliError{
			Text:        fmt.Sprintf("%d files are missing or corrupt", len(missing)),
			Code:        "verify-failed",
			Suggestions: []string{"Run `minelaunch verify --fix " + instance.Name + "` to download them again"},
		}
	}

	sink.Phase(progress.StepDownload)
	result, err := a.installer.Engine.Run(cmd.Context(), missing)
	sink.Finish(progress.StepDownload, err)
	progress.Close(sink)
	if err != nil {
		return cliError(err)
	}
	for _, marker := range []string{install.AssetsVerifiedMarker, install.LibrariesVerifiedMarker} {
		if err := a.installer.Markers.Set(marker); err != nil {
			logger.Warn("Could not write " + marker + ": " + err.Error())
		}
	}
	logger.Info(fmt.Sprintf("Downloaded %d files", result.Fetched))
	return nil
}
