package launcher

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/jwalton/gchalk"

	"github.com/minepkg/minelaunch/internals/auth"
	"github.com/minepkg/minelaunch/internals/commands"
	"github.com/minepkg/minelaunch/internals/install"
	"github.com/minepkg/minelaunch/internals/instances"
	"github.com/minepkg/minelaunch/internals/java"
	"github.com/minepkg/minelaunch/internals/launchenv"
	"github.com/minepkg/minelaunch/internals/logparser"
	"github.com/minepkg/minelaunch/internals/minecraft"
	"github.com/minepkg/minelaunch/internals/progress"
)

// Launcher prepares and launches an instance with CLI output
type Launcher struct {
	Env       *launchenv.Env
	Instance  *instances.Instance
	Installer *install.Installer
	Java      *java.Factory
	Auth      auth.Provider
	// Version is the version of this launcher
	Version string
	// Overwrites are applied on top of the instance settings
	Overwrites *OverwriteFlags
	Output     io.Writer
	// NewSink creates the sink used while installing. It is called after the intro was printed
	NewSink func() progress.Sink

	settings     Settings
	installation *minecraft.ResolvedInstallation
	javaBin      string
}

var pipeText = lipgloss.NewStyle().
	Border(lipgloss.Border{Left: "│"}, false).
	BorderLeft(true).
	Padding(0, 1)

func (l *Launcher) out() io.Writer {
	if l.Output == nil {
		return os.Stdout
	}
	return l.Output
}

// Installation is the resolved installation. It is set after Prepare
func (l *Launcher) Installation() *minecraft.ResolvedInstallation {
	return l.installation
}

// Prepare installs everything needed to launch the instance
func (l *Launcher) Prepare(ctx context.Context) error {
	settings, err := SettingsFrom(l.Instance)
	if err != nil {
		return err
	}
	l.settings = settings
	l.Overwrites.apply(l.Instance.Settings, &l.settings)

	l.printIntro()

	loader, err := install.ParseModLoaderType(l.Instance.Settings.Loader)
	if err != nil {
		return err
	}

	l.Installer.Resolver.Features = l.settings.Features()
	l.Installer.Markers = install.Markers{Dir: l.Instance.Dir}
	if l.NewSink != nil {
		l.Installer.SetSink(l.NewSink())
	}
	outcome, err := l.Installer.Install(ctx, install.Request{
		Version:       l.Instance.Settings.Version,
		Loader:        loader,
		LoaderVersion: l.Instance.Settings.LoaderVersion,
	})
	progress.Close(l.Installer.Sink)
	if err != nil {
		return err
	}
	l.installation = outcome.Installation

	fmt.Fprintln(l.out(), pipeText.Render(fmt.Sprintf(
		"%d files checked, %d downloaded (%s)",
		outcome.Planned,
		outcome.Result.Fetched,
		humanize.IBytes(uint64(outcome.Result.Bytes)),
	)))

	major := java.WantedMajor(outcome.Base.ID, l.installation.JavaMajorVersion())
	javaBin, err := l.Java.Binary(ctx, l.Instance.Settings.Launch.Java, major)
	if err != nil {
		return err
	}
	l.javaBin = javaBin

	l.printOutro()
	return nil
}

// Run launches the prepared instance and blocks until the game exited
func (l *Launcher) Run(ctx context.Context) (*Exit, error) {
	if l.installation == nil {
		return nil, fmt.Errorf("instance %s is not prepared", l.Instance.Name)
	}

	creds, err := l.Auth.Credentials(ctx)
	if err != nil {
		return nil, err
	}

	asm := &Assembler{
		Layout:          l.Env.Layout,
		Platform:        l.Env.Platform,
		LauncherName:    "minelaunch",
		LauncherVersion: l.Version,
		GameDir:         l.Instance.GameDir(),
	}
	if err := os.MkdirAll(asm.GameDir, os.ModePerm); err != nil {
		return nil, err
	}

	settings := l.settings
	if settings.MaxMemory <= 0 {
		settings.MaxMemory = DefaultMaxMemory()
	}
	CheckFreeMemory(settings.MaxMemory)

	if err := asm.ExtractNatives(l.installation); err != nil {
		return nil, err
	}
	args, err := asm.Assemble(l.installation, settings, creds)
	if err != nil {
		return nil, err
	}
	script, err := asm.WriteScript(l.Instance.Name, l.installation, l.javaBin, args, settings)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(l.out(), "│")
	fmt.Fprintln(l.out(), lipgloss.JoinHorizontal(
		0.5,
		gchalk.Hex("#7a563b")("│"+"\n"+"┕"),
		commands.StyleGrass.Render(commands.Emoji("⛏  ")+"Launching Minecraft"),
	))

	supervisor := &Supervisor{
		Output: l.out(),
		Stdin:  os.Stdin,
		OnEvent: func(kind logparser.Kind, line string) {
			if kind == logparser.GameCrashed {
				fmt.Fprintln(l.out(), gchalk.Red("The game crashed: ")+line)
			}
		},
	}
	exit, err := supervisor.Run(ctx, script)
	if err == nil && exit != nil {
		fmt.Fprintf(l.out(), "\nMinecraft was stopped normally (exit code %d).\n", exit.Code)
	}
	return exit, err
}

func (l *Launcher) printIntro() {
	title := lipgloss.NewStyle().
		Border(lipgloss.Border{Left: "┃"}, false).
		BorderLeft(true).
		Background(lipgloss.Color("#FFF")).
		Foreground(lipgloss.Color("#000")).
		Padding(0, 1).
		Render(l.Instance.Name)

	fmt.Fprintln(l.out(), title)
	fmt.Fprintln(l.out(), "│")
	fmt.Fprintln(l.out(), "│ Directory: "+l.Instance.Dir)
	version := l.Instance.Settings.Version
	if l.Instance.Settings.Loader != "" {
		version += " (" + l.Instance.Settings.Loader + ")"
	}
	fmt.Fprintln(l.out(), "│ Minecraft "+version)
}

func (l *Launcher) printOutro() {
	fmt.Fprintln(l.out(), "│ minelaunch "+l.Version)
	fmt.Fprintln(l.out(), "│ Java "+l.javaBin)
}
