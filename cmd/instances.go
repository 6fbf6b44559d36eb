package cmd

import (
	"fmt"

	"github.com/jwalton/gchalk"
	"github.com/spf13/cobra"

	"github.com/minepkg/minelaunch/internals/commands"
	"github.com/minepkg/minelaunch/internals/install"
	"github.com/minepkg/minelaunch/internals/instances"
)

var instancesCmd = &cobra.Command{
	Use:     "instances",
	Aliases: []string{"instance"},
	Short:   "Manage instances",
}

func init() {
	list := commands.New(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Lists all instances",
		Args:    cobra.NoArgs,
	}, commands.RunnerFunc(listInstances))

	create := &createRunner{}
	createCmd := commands.New(&cobra.Command{
		Use:   "create <name>",
		Short: "Creates a new instance",
		Args:  cobra.ExactArgs(1),
	}, create)
	createCmd.Flags().StringVarP(&create.version, "minecraft", "m", "latest", "Minecraft version")
	createCmd.Flags().StringVarP(&create.loader, "loader", "l", "", "Mod loader (vanilla, fabric, quilt, forge)")
	createCmd.Flags().StringVar(&create.loaderVersion, "loaderVersion", "", "Mod loader version or constraint")
	createCmd.Flags().IntVar(&create.ram, "ram", 0, "Maximum memory in MiB")

	instancesCmd.AddCommand(list.Command, createCmd.Command)
	rootCmd.AddCommand(instancesCmd)
}

func listInstances(cmd *cobra.Command, args []string) error {
	l, err := newLayout()
	if err != nil {
		return err
	}
	manager := instances.NewManager(l)

	names, err := manager.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		logger.Info("No instances yet. Create one with `minelaunch instances create <name>`")
		return nil
	}

	for _, name := range names {
		instance, err := manager.Get(name)
		if err != nil {
			fmt.Printf("%s %s\n", name, gchalk.Red("("+err.Error()+")"))
			continue
		}
		version := instance.Settings.Version
		if instance.Settings.Loader != "" {
			version += " " + instance.Settings.Loader
		}
		fmt.Printf("%s %s\n", gchalk.Bold(name), gchalk.Gray(version))
	}
	return nil
}

type createRunner struct {
	version       string
	loader        string
	loaderVersion string
	ram           int
}

func (c *createRunner) RunE(cmd *cobra.Command, args []string) error {
	if _, err := install.ParseModLoaderType(c.loader); err != nil {
		return err
	}

	l, err := newLayout()
	if err != nil {
		return err
	}
	settings := &instances.Settings{
		Version:       c.version,
		Loader:        c.loader,
		LoaderVersion: c.loaderVersion,
	}
	settings.Launch.MaxMemory = c.ram

	instance, err := instances.NewManager(l).Create(args[0], settings)
	if err != nil {
		return err
	}
	logger.Info("Created " + instance.Name + " in " + instance.Dir)
	logger.Log("Launch it with `minelaunch launch " + instance.Name + "`")
	return nil
}
