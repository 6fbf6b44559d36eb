package cmd

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/minepkg/minelaunch/internals/auth"
	"github.com/minepkg/minelaunch/internals/downloadmgr"
	"github.com/minepkg/minelaunch/internals/install"
	"github.com/minepkg/minelaunch/internals/instances"
	"github.com/minepkg/minelaunch/internals/java"
	"github.com/minepkg/minelaunch/internals/launchenv"
	"github.com/minepkg/minelaunch/internals/layout"
	"github.com/minepkg/minelaunch/internals/mojang"
	"github.com/minepkg/minelaunch/internals/ownhttp"
	"github.com/minepkg/minelaunch/internals/progress"
)

// app holds everything a command needs. It is built from the global config
type app struct {
	env       *launchenv.Env
	loader    *mojang.Loader
	installer *install.Installer
	java      *java.Factory
	instances *instances.Manager
	auth      *auth.Store
	sftp      *downloadmgr.SFTPFetcher
	// selection is the instance the app works on. Integrity scans of an
	// instance stop once another one gets selected
	selection instances.Selection
}

func newLayout() (*layout.Layout, error) {
	l, err := layout.Default()
	if err != nil {
		return nil, err
	}
	if dir := viper.GetString("gameDir"); dir != "" {
		l.GameDir = dir
	}
	if dir := viper.GetString("dataDir"); dir != "" {
		l.DataDir = dir
	}
	return l, l.EnsureDirs()
}

func newHTTPClient() *http.Client {
	return ownhttp.New(ownhttp.Options{
		RequestsPerSecond: viper.GetFloat64("download.requestsPerSecond"),
	})
}

// newSink returns the progress sink for the terminal. It has to be closed with progress.Close
func newSink() progress.Sink {
	return progress.ForTerminal(viper.GetBool("nonInteractive"))
}

// newApp wires the app. The installer reports to a Nop sink until SetSink is called
func newApp() (*app, error) {
	l, err := newLayout()
	if err != nil {
		return nil, err
	}
	client := newHTTPClient()
	env := launchenv.New(l, client, nil)

	a := &app{
		env:       env,
		loader:    mojang.NewLoader(l, mojang.NewClient(client)),
		java:      java.NewFactory(l.JavaDir(), client, env.Platform),
		instances: instances.NewManager(l),
		auth:      auth.NewStore(l.DataDir),
		sftp: &downloadmgr.SFTPFetcher{
			User:     viper.GetString("download.sftp.user"),
			Password: viper.GetString("download.sftp.password"),
		},
	}

	fetchers := downloadmgr.NewFetchers(client)
	fetchers["sftp"] = a.sftp
	engine := &downloadmgr.Engine{
		Fetchers:       fetchers,
		MaxConcurrency: viper.GetInt("download.concurrency"),
		MaxRate:        viper.GetInt64("download.maxRate"),
	}

	installer := install.NewInstaller(env, a.loader, &mojang.AssetIndexFetcher{HTTP: client, Layout: l}, engine)
	installer.Planner.LibraryMirror = viper.GetString("download.libraryMirror")
	installer.Planner.AssetMirror = viper.GetString("download.assetMirror")
	installer.Loaders[install.Fabric] = install.NewFabric(l, client)
	installer.Loaders[install.Quilt] = install.NewQuilt(l, client)
	installer.Loaders[install.Forge] = &install.ForgeInstaller{
		Layout:     l,
		HTTP:       client,
		Downloader: engine,
		JavaPath:   a.javaPath,
	}
	a.installer = installer

	return a, nil
}

// javaPath returns the globally configured java for a major version
func (a *app) javaPath(ctx context.Context, major int) (string, error) {
	return a.java.Binary(ctx, viper.GetString("launch.java"), major)
}

// versionID resolves aliases like "latest" or "latest-snapshot" using the version manifest
func (a *app) versionID(ctx context.Context, id string) (string, error) {
	switch id {
	case "latest", "latest-release", "latest-snapshot":
	default:
		return id, nil
	}
	manifest, err := a.loader.Manifest(ctx)
	if err != nil {
		return "", err
	}
	release, ok := manifest.Find(id)
	if !ok {
		return "", errors.Errorf("the version manifest has no %s version", id)
	}
	return release.ID, nil
}

// selectInstance makes name the active instance and ties the integrity scan to it
func (a *app) selectInstance(name string) {
	a.selection.Set(name)
	a.installer.Filter.Abort = a.selection.Changed(name)
}

// Close releases open mirror connections
func (a *app) Close() {
	a.sftp.Close()
}
