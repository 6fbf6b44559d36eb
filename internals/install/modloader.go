package install

import (
	"context"
	"fmt"
	"strings"

	"github.com/minepkg/minelaunch/internals/minecraft"
)

// ModLoaderType is the mod loader of an installation
type ModLoaderType uint8

const (
	Vanilla ModLoaderType = iota
	Fabric
	Quilt
	Forge
)

func (t ModLoaderType) String() string {
	switch t {
	case Fabric:
		return "fabric"
	case Quilt:
		return "quilt"
	case Forge:
		return "forge"
	}
	return "vanilla"
}

// ParseModLoaderType parses names like "fabric" or "Forge". An empty string is Vanilla
func ParseModLoaderType(s string) (ModLoaderType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "vanilla", "none":
		return Vanilla, nil
	case "fabric":
		return Fabric, nil
	case "quilt":
		return Quilt, nil
	case "forge":
		return Forge, nil
	}
	return Vanilla, fmt.Errorf("unknown mod loader %q", s)
}

// ModLoader installs a mod loader on top of an already downloaded base installation.
// It returns the id of the version descriptor it created.
type ModLoader interface {
	Install(ctx context.Context, base *minecraft.ResolvedInstallation, loaderVersion string) (string, error)
}
