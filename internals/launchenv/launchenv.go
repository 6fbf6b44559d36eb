// Package launchenv bundles what every install and launch step needs.
package launchenv

import (
	"net/http"

	"github.com/minepkg/minelaunch/internals/layout"
	"github.com/minepkg/minelaunch/internals/platform"
	"github.com/minepkg/minelaunch/internals/progress"
)

// Env is created once per command and passed to constructors
type Env struct {
	Platform platform.Info
	Layout   *layout.Layout
	HTTP     *http.Client
	Sink     progress.Sink
}

// New returns an Env for the running platform
func New(l *layout.Layout, client *http.Client, sink progress.Sink) *Env {
	if sink == nil {
		sink = progress.Nop{}
	}
	return &Env{
		Platform: platform.Detect(),
		Layout:   l,
		HTTP:     client,
		Sink:     sink,
	}
}
