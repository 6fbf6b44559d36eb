package java

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/minepkg/minelaunch/internals/ownhttp"
	"github.com/minepkg/minelaunch/internals/platform"
)

// AdoptiumAPI is the api used to find java runtimes
const AdoptiumAPI = "https://api.adoptium.net/v3"

// AdoptAsset is one release returned by the adoptium api
type AdoptAsset struct {
	Binary struct {
		Architecture string `json:"architecture"`
		ImageType    string `json:"image_type"`
		JvmImpl      string `json:"jvm_impl"`
		Os           string `json:"os"`
		Package      struct {
			Checksum string `json:"checksum"`
			Link     string `json:"link"`
			Name     string `json:"name"`
			Size     int64  `json:"size"`
		} `json:"package"`
	} `json:"binary"`
	ReleaseName string `json:"release_name"`
	Vendor      string `json:"vendor"`
	Version     struct {
		Major    int    `json:"major"`
		Minor    int    `json:"minor"`
		Security int    `json:"security"`
		Semver   string `json:"semver"`
	} `json:"version"`
}

func (j *Factory) getAssets(ctx context.Context, major int) ([]AdoptAsset, error) {
	params := url.Values{}
	params.Add("architecture", archMap(j.Platform.Arch))
	params.Add("image_type", "jre")
	params.Add("os", osMap(j.Platform.OSFamily))
	params.Add("vendor", "eclipse")

	p := fmt.Sprintf("%s/assets/latest/%d/hotspot?%s", j.apiBase(), major, params.Encode())

	assets := make([]AdoptAsset, 0, 1)
	if err := ownhttp.GetJSON(ctx, j.HTTP, p, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

func osMap(family platform.OSFamily) string {
	switch family {
	case platform.Windows:
		return "windows"
	case platform.Macos:
		return "mac"
	}
	// alpine needs a musl build
	if _, err := os.Stat("/etc/alpine-release"); err == nil {
		return "alpine-linux"
	}
	return "linux"
}

func archMap(arch string) string {
	theMap := map[string]string{
		"x86_64": "x64",
		"arm64":  "aarch64",
		"x86":    "x86",
		"arm32":  "arm",
	}

	mapped, ok := theMap[arch]
	if !ok {
		return arch
	}
	return mapped
}
