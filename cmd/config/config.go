// Package config contains the `config` sub commands
package config

import (
	"strings"

	"github.com/spf13/cobra"
)

const (
	configKindString = iota
	configKindBool
	configKindInt
)

type configEntry struct {
	key  string
	kind int
	help string
}

var entries = []configEntry{
	{"gameDir", configKindString, "shared directory for versions, libraries & assets"},
	{"dataDir", configKindString, "directory for instances and caches"},
	{"download.concurrency", configKindInt, "parallel downloads (default 64)"},
	{"download.maxRate", configKindInt, "download limit in bytes per second. 0 is unlimited"},
	{"download.requestsPerSecond", configKindInt, "request limit. 0 is unlimited"},
	{"download.libraryMirror", configKindString, "replaces https://libraries.minecraft.net/"},
	{"download.assetMirror", configKindString, "replaces https://resources.download.minecraft.net"},
	{"download.sftp.user", configKindString, "user for sftp:// mirrors"},
	{"download.sftp.password", configKindString, "password for sftp:// mirrors"},
	{"launch.java", configKindString, "\"system\", a path to java or empty for a managed runtime"},
	{"verboseLogging", configKindBool, "print diagnostic messages"},
	{"nonInteractive", configKindBool, "never prompt and disable the progress bar"},
}

// lookup finds an entry ignoring case (viper keys are case insensitive)
func lookup(key string) (configEntry, bool) {
	for _, e := range entries {
		if strings.EqualFold(e.key, key) {
			return e, true
		}
	}
	return configEntry{}, false
}

var SubCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage global config options",
}
