package launcher

import (
	"github.com/spf13/cobra"

	"github.com/minepkg/minelaunch/internals/instances"
)

// OverwriteFlags are cli flags used to overwrite launch behavior
type OverwriteFlags struct {
	McVersion     string
	Loader        string
	LoaderVersion string
	Java          string
	Ram           int
	Server        string
	Demo          bool
	Fullscreen    bool
}

// CmdOverwriteFlags registers the overwrite flags on cmd
func CmdOverwriteFlags(cmd *cobra.Command) *OverwriteFlags {
	flags := OverwriteFlags{}
	cmd.Flags().StringVarP(&flags.McVersion, "minecraft", "m", "", "Overwrite the Minecraft version")
	cmd.Flags().StringVar(&flags.Loader, "loader", "", "Overwrite the mod loader (vanilla, fabric, quilt, forge)")
	cmd.Flags().StringVar(&flags.LoaderVersion, "loaderVersion", "", "Overwrite the mod loader version")
	cmd.Flags().IntVar(&flags.Ram, "ram", 0, "Overwrite the amount of RAM in MiB to use")
	cmd.Flags().StringVar(&flags.Java, "java", "", "Overwrite the Java runtime. A path to a java binary or \"system\"")
	cmd.Flags().StringVar(&flags.Server, "server", "", "Join this server after startup")
	cmd.Flags().BoolVar(&flags.Demo, "demo", false, "Start the game in demo mode")
	cmd.Flags().BoolVar(&flags.Fullscreen, "fullscreen", false, "Start the game in fullscreen")

	return &flags
}

// apply writes the set flags into the instance settings (not persisted) and launch settings
func (o *OverwriteFlags) apply(i *instances.Settings, s *Settings) {
	if o == nil {
		return
	}
	if o.McVersion != "" {
		i.Version = o.McVersion
	}
	if o.Loader != "" {
		i.Loader = o.Loader
	}
	if o.LoaderVersion != "" {
		i.LoaderVersion = o.LoaderVersion
	}
	if o.Java != "" {
		i.Launch.Java = o.Java
	}
	if o.Ram != 0 {
		s.MaxMemory = o.Ram
	}
	if o.Server != "" {
		s.Server = o.Server
	}
	s.Demo = s.Demo || o.Demo
	s.Fullscreen = s.Fullscreen || o.Fullscreen
}
