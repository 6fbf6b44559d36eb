package instances

import (
	"strings"

	"github.com/magiconair/properties"
	"github.com/pkg/errors"
)

// ImportLegacy reads a MultiMC style instance.cfg
func ImportLegacy(file string) (*Settings, error) {
	cfg, err := properties.LoadFile(file, properties.UTF8)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	settings := &Settings{
		Version: cfg.GetString("IntendedVersion", ""),
		Launch: Launch{
			MinMemory:  cfg.GetInt("MinMemAlloc", 0),
			MaxMemory:  cfg.GetInt("MaxMemAlloc", 0),
			JVMArgs:    strings.Fields(cfg.GetString("JvmArgs", "")),
			Width:      cfg.GetInt("MinecraftWinWidth", 0),
			Height:     cfg.GetInt("MinecraftWinHeight", 0),
			Fullscreen: cfg.GetBool("LaunchMaximized", false),
		},
	}
	if cfg.GetBool("OverrideJavaLocation", false) || cfg.GetString("JavaPath", "") != "" {
		settings.Launch.Java = cfg.GetString("JavaPath", "")
	}
	if cfg.GetBool("OverrideCommands", true) {
		settings.Hooks = Hooks{
			PreLaunch: cfg.GetString("PreLaunchCommand", ""),
			Wrapper:   cfg.GetString("WrapperCommand", ""),
			PostExit:  cfg.GetString("PostExitCommand", ""),
		}
	}
	return settings, nil
}
