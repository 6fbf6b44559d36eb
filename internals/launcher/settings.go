package launcher

import (
	"fmt"
	"strings"

	"github.com/minepkg/minelaunch/internals/instances"
	"github.com/minepkg/minelaunch/internals/minecraft"
)

// GC is a garbage collector preset
type GC uint8

const (
	G1 GC = iota
	Serial
	Parallel
	ParallelOld
	Z
)

// ParseGC parses names like "g1" or "ParallelOld". Empty is G1
func ParseGC(s string) (GC, error) {
	switch strings.ToLower(s) {
	case "", "g1", "g1gc":
		return G1, nil
	case "serial":
		return Serial, nil
	case "parallel":
		return Parallel, nil
	case "parallelold", "parallel-old":
		return ParallelOld, nil
	case "z", "zgc":
		return Z, nil
	}
	return G1, fmt.Errorf("unknown garbage collector %q", s)
}

func (g GC) String() string {
	switch g {
	case Serial:
		return "serial"
	case Parallel:
		return "parallel"
	case ParallelOld:
		return "parallel-old"
	case Z:
		return "z"
	}
	return "g1"
}

// Flags returns the jvm flags for this collector
func (g GC) Flags() []string {
	switch g {
	case Serial:
		return []string{"-XX:+UseSerialGC"}
	case Parallel:
		return []string{"-XX:+UseParallelGC"}
	case ParallelOld:
		return []string{"-XX:+UseParallelGC", "-XX:+UseParallelOldGC"}
	case Z:
		return []string{"-XX:+UnlockExperimentalVMOptions", "-XX:+UseZGC"}
	}
	return []string{
		"-XX:+UnlockExperimentalVMOptions",
		"-XX:+UseG1GC",
		"-XX:G1NewSizePercent=20",
		"-XX:G1ReservePercent=20",
		"-XX:MaxGCPauseMillis=50",
		"-XX:G1HeapRegionSize=32M",
	}
}

// Settings are the user settings of a launch
type Settings struct {
	// MinMemory and MaxMemory are in MiB. MaxMemory 0 uses DefaultMaxMemory
	MinMemory     int
	MaxMemory     int
	GC            GC
	ExtraJVMArgs  []string
	ExtraGameArgs []string
	Width         int
	Height        int
	Fullscreen    bool
	Demo          bool
	Server        string
	Port          int

	PreLaunch string
	Wrapper   string
	PostExit  string
}

// SettingsFrom converts instance settings
func SettingsFrom(i *instances.Instance) (Settings, error) {
	launch := i.Settings.Launch
	gc, err := ParseGC(launch.GC)
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		MinMemory:     launch.MinMemory,
		MaxMemory:     launch.MaxMemory,
		GC:            gc,
		ExtraJVMArgs:  launch.JVMArgs,
		ExtraGameArgs: launch.GameArgs,
		Width:         launch.Width,
		Height:        launch.Height,
		Fullscreen:    launch.Fullscreen,
		Demo:          launch.Demo,
		Server:        launch.Server,
		Port:          launch.Port,
		PreLaunch:     i.Settings.Hooks.PreLaunch,
		Wrapper:       i.Settings.Hooks.Wrapper,
		PostExit:      i.Settings.Hooks.PostExit,
	}, nil
}

// Features returns the rule features enabled by these settings
func (s Settings) Features() minecraft.Features {
	return minecraft.Features{
		"is_demo_user":          s.Demo,
		"has_custom_resolution": s.Width > 0 && s.Height > 0,
	}
}
