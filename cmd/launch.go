package cmd

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/minepkg/minelaunch/internals/commands"
	"github.com/minepkg/minelaunch/internals/instances"
	"github.com/minepkg/minelaunch/internals/launcher"
)

func init() {
	runner := &launchRunner{}
	cmd := commands.New(&cobra.Command{
		Use:     "launch <instance>",
		Aliases: []string{"run", "start", "play"},
		Short:   "Installs and launches an instance",
		Long: `Installs everything the instance needs and starts the game.
The instance is created when it does not exist and --minecraft is set.`,
		Example: `
  minelaunch launch survival
  minelaunch launch modded -m 1.20.1 --loader fabric
  minelaunch launch survival --server mc.example.com:25565`,
		Args: cobra.ExactArgs(1),
	}, runner)

	runner.overwrites = launcher.CmdOverwriteFlags(cmd.Command)
	cmd.Flags().BoolVar(&runner.offline, "offline", false, "Only use versions that are already installed")

	cmd.ValidArgsFunction = completeInstance
	rootCmd.AddCommand(cmd.Command)
}

type launchRunner struct {
	overwrites *launcher.OverwriteFlags
	offline    bool
}

func (l *launchRunner) RunE(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()
	ctx := cmd.Context()
	a.loader.Offline = l.offline

	if l.overwrites.McVersion != "" && !l.offline {
		if l.overwrites.McVersion, err = a.versionID(ctx, l.overwrites.McVersion); err != nil {
			return err
		}
	}

	instance, err := l.instance(a, args[0])
	if err != nil {
		return cliError(err)
	}
	if !l.offline {
		if instance.Settings.Version, err = a.versionID(ctx, instance.Settings.Version); err != nil {
			return err
		}
	}
	if instance.Settings.Launch.Java == "" {
		instance.Settings.Launch.Java = viper.GetString("launch.java")
	}

	provider, err := a.auth.Provider()
	if err != nil {
		return cliError(err)
	}

	a.selectInstance(instance.Name)

	cliLauncher := &launcher.Launcher{
		Env:        a.env,
		Instance:   instance,
		Installer:  a.installer,
		Java:       a.java,
		Auth:       provider,
		Version:    Version,
		Overwrites: l.overwrites,
		NewSink:    newSink,
	}

	if err := cliLauncher.Prepare(ctx); err != nil {
		return cliError(err)
	}
	if err := a.instances.SetInstalled(instance.Name, cliLauncher.Installation().ID); err != nil {
		logger.Warn("Could not update " + instances.SettingsFile + ": " + err.Error())
	}
	if _, err := cliLauncher.Run(ctx); err != nil {
		if errors.Is(err, launcher.ErrGameCrashed) {
			return &commands.CliError{
				Text: "Minecraft crashed",
				Code: "game-crashed",
				Help: "The crash report was written to " + filepath.Join(instance.GameDir(), "crash-reports"),
				Err:  err,
			}
		}
		return cliError(err)
	}
	return nil
}

// instance returns the instance `name`. Missing instances are created if a version is given
func (l *launchRunner) instance(a *app, name string) (*instances.Instance, error) {
	instance, err := a.instances.Get(name)
	if !errors.Is(err, instances.ErrNoInstance) || l.overwrites.McVersion == "" {
		return instance, err
	}

	logger.Info("Creating instance " + name)
	return a.instances.Create(name, &instances.Settings{
		Version:       l.overwrites.McVersion,
		Loader:        l.overwrites.Loader,
		LoaderVersion: l.overwrites.LoaderVersion,
	})
}
