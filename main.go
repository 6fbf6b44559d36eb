package main

import (
	"net/http"

	"github.com/minepkg/minelaunch/cmd"
	"github.com/minepkg/minelaunch/internals/ownhttp"
)

// set by goreleaser
var (
	version string
	commit  string
)

func main() {
	if version != "" {
		cmd.Version = version
	}
	cmd.Commit = commit

	// replace default http client
	http.DefaultClient = ownhttp.New()

	cmd.Execute()
}
