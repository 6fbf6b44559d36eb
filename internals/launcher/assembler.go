// Package launcher assembles the java command line of an installation and runs it.
package launcher

import (
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/minepkg/minelaunch/internals/auth"
	"github.com/minepkg/minelaunch/internals/layout"
	"github.com/minepkg/minelaunch/internals/minecraft"
	"github.com/minepkg/minelaunch/internals/platform"
)

const windowsHeapDump = "-XX:HeapDumpPath=MojangTricksIntelDriversForPerformance_javaw.exe_minecraft.exe.heapdump"

var variableRegex = regexp.MustCompile(`\$\{([a-zA-Z0-9_]+)\}`)

// Assembler builds the java arguments of an installation
type Assembler struct {
	Layout          *layout.Layout
	Platform        platform.Info
	LauncherName    string
	LauncherVersion string
	// GameDir overwrites the game directory (the instance directory)
	GameDir string
}

// Assemble returns all arguments passed to java (without the binary itself)
func (a *Assembler) Assemble(inst *minecraft.ResolvedInstallation, settings Settings, creds *auth.Credentials) ([]string, error) {
	if creds == nil {
		return nil, auth.ErrNoCredentials
	}

	maxMemory := settings.MaxMemory
	if maxMemory <= 0 {
		maxMemory = DefaultMaxMemory()
	}

	args := make([]string, 0, 64)
	if settings.MinMemory > 0 {
		args = append(args, fmt.Sprintf("-Xms%dM", settings.MinMemory))
	}
	args = append(args, fmt.Sprintf("-Xmx%dM", maxMemory))
	args = append(args, settings.GC.Flags()...)

	switch a.Platform.OSFamily {
	case platform.Macos:
		if !slices.Contains(inst.Arguments.JVM, "-XstartOnFirstThread") {
			args = append(args, "-XstartOnFirstThread")
		}
	case platform.Windows:
		args = append(args, windowsHeapDump)
	}

	if logging, ok := inst.ClientLogging(); ok && logging.Argument != "" && logging.File.ID != "" {
		path := a.Layout.LoggingConfigPath(inst.ID, logging.File.ID)
		args = append(args, strings.ReplaceAll(logging.Argument, "${path}", path))
	}
	args = append(args, settings.ExtraJVMArgs...)

	jvmValues := a.jvmValues(inst)
	for _, arg := range inst.Arguments.JVM {
		args = append(args, substitute(arg, jvmValues, false))
	}

	args = append(args, inst.MainClass)

	gameValues := a.gameValues(inst, settings, creds)
	for _, arg := range inst.Arguments.Game {
		args = append(args, substitute(arg, gameValues, true))
	}
	args = append(args, settings.ExtraGameArgs...)

	if settings.Server != "" {
		host, port := settings.Server, settings.Port
		if h, p, err := net.SplitHostPort(settings.Server); err == nil {
			host = h
			port, _ = strconv.Atoi(p)
		}
		if port == 0 {
			port = 25565
		}
		if inst.QuickPlay {
			args = append(args, "--quickPlayMultiplayer", net.JoinHostPort(host, strconv.Itoa(port)))
		} else {
			args = append(args, "--server", host, "--port", strconv.Itoa(port))
		}
	}
	if settings.Fullscreen && !slices.Contains(args, "--fullscreen") {
		args = append(args, "--fullscreen")
	}
	if settings.Demo && !slices.Contains(args, "--demo") {
		args = append(args, "--demo")
	}
	return args, nil
}

// Classpath returns all non native libraries (sorted, without duplicates) and the game jar
func (a *Assembler) Classpath(inst *minecraft.ResolvedInstallation) string {
	set := make(map[string]struct{}, len(inst.Libraries))
	for _, lib := range inst.Libraries {
		if lib.IsNative {
			continue
		}
		set[a.Layout.LibraryPath(lib.Download.Path)] = struct{}{}
	}
	paths := maps.Keys(set)
	slices.Sort(paths)
	paths = append(paths, a.Layout.VersionJar(inst.JarID))

	return strings.Join(paths, a.Platform.OSFamily.PathListSeparator())
}

func (a *Assembler) gameDir() string {
	if a.GameDir != "" {
		return a.GameDir
	}
	return a.Layout.GameDir
}

func (a *Assembler) jvmValues(inst *minecraft.ResolvedInstallation) map[string]string {
	return map[string]string{
		"natives_directory":   a.Layout.NativesDir(inst.ID),
		"launcher_name":       a.LauncherName,
		"launcher_version":    a.LauncherVersion,
		"classpath":           a.Classpath(inst),
		"classpath_separator": a.Platform.OSFamily.PathListSeparator(),
		"library_directory":   a.Layout.LibrariesDir(),
		"version_name":        inst.ID,
	}
}

func (a *Assembler) gameValues(inst *minecraft.ResolvedInstallation, settings Settings, creds *auth.Credentials) map[string]string {
	values := map[string]string{
		"auth_player_name":  creds.PlayerName,
		"auth_uuid":         creds.UUID,
		"auth_access_token": creds.AccessToken,
		"auth_session":      creds.AccessToken,
		"auth_xuid":         creds.XUID,
		"clientid":          creds.ClientID,
		"user_type":         creds.UserType,
		"user_properties":   "{}",
		"assets_root":       a.Layout.AssetsDir(),
		"game_assets":       a.Layout.AssetsDir(),
		"assets_index_name": inst.AssetsID,
		"version_name":      inst.ID,
		"version_type":      inst.Type,
		"game_directory":    a.gameDir(),
	}
	if settings.Width > 0 && settings.Height > 0 {
		values["resolution_width"] = strconv.Itoa(settings.Width)
		values["resolution_height"] = strconv.Itoa(settings.Height)
	}
	return values
}

// substitute replaces ${name} with values[name]. Unknown names are kept.
// With quote set, values containing spaces are wrapped in quotes
func substitute(template string, values map[string]string, quote bool) string {
	return variableRegex.ReplaceAllStringFunc(template, func(match string) string {
		name := match[2 : len(match)-1]
		value, ok := values[name]
		if !ok {
			return match
		}
		if quote && strings.Contains(value, " ") {
			return `"` + value + `"`
		}
		return value
	})
}
