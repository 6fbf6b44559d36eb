package minecraft

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DefaultAssetBase is the official asset object server
const DefaultAssetBase = "https://resources.download.minecraft.net"

// AssetIndex is just a map containing AssetObjects
type AssetIndex struct {
	Objects map[string]AssetObject `json:"objects"`
	// Virtual is set for very old (pre 1.7) indexes
	Virtual bool `json:"virtual,omitempty"`
}

// Names returns the logical asset names in sorted order
func (a *AssetIndex) Names() []string {
	names := maps.Keys(a.Objects)
	slices.Sort(names)
	return names
}

// AssetObject is one minecraft asset
type AssetObject struct {
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

// UnixPath returns the path including the folder
// example: fe/fe32f3b8…
func (a *AssetObject) UnixPath() string {
	if len(a.Hash) < 2 {
		return a.Hash
	}
	return a.Hash[:2] + "/" + a.Hash
}

// DownloadURL returns the download url for this asset on `base`.
// An empty base uses the official server.
func (a *AssetObject) DownloadURL(base string) string {
	if base == "" {
		base = DefaultAssetBase
	}
	for len(base) != 0 && base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	return base + "/" + a.UnixPath()
}
