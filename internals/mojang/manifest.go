// Package mojang talks to the official version metadata servers and keeps
// a disk copy of everything it fetched.
package mojang

import (
	"context"
	"net/http"

	"github.com/minepkg/minelaunch/internals/ownhttp"
)

// VersionManifestURL lists every released version
const VersionManifestURL = "https://piston-meta.mojang.com/mc/game/version_manifest_v2.json"

const (
	// TypeSnapshot is a snapshot release
	TypeSnapshot = "snapshot"
	// TypeRelease is a full "normal" release
	TypeRelease = "release"
	// TypeOldBeta is a "old_beta" release
	TypeOldBeta = "old_beta"
	// TypeOldAlpha is a "old_alpha" release
	TypeOldAlpha = "old_alpha"
)

// Release is a released minecraft version
type Release struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	URL             string `json:"url"`
	Time            string `json:"time"`
	ReleaseTime     string `json:"releaseTime"`
	Sha1            string `json:"sha1"`
	ComplianceLevel int    `json:"complianceLevel"`
}

// VersionManifest is the response of the version manifest endpoint
type VersionManifest struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
	Versions []Release `json:"versions"`
}

// Find returns the release with the given id
func (m *VersionManifest) Find(id string) (*Release, bool) {
	switch id {
	case "latest", "latest-release":
		id = m.Latest.Release
	case "latest-snapshot":
		id = m.Latest.Snapshot
	}
	for i := range m.Versions {
		if m.Versions[i].ID == id {
			return &m.Versions[i], true
		}
	}
	return nil, false
}

// Filter returns all releases of the given types. No types returns everything
func (m *VersionManifest) Filter(types ...string) []Release {
	if len(types) == 0 {
		return m.Versions
	}
	filtered := make([]Release, 0, len(m.Versions))
	for _, v := range m.Versions {
		for _, t := range types {
			if v.Type == t {
				filtered = append(filtered, v)
				break
			}
		}
	}
	return filtered
}

// Client fetches version metadata
type Client struct {
	HTTP *http.Client
	// ManifestURL overwrites VersionManifestURL
	ManifestURL string
}

// NewClient returns a new Client
func NewClient(client *http.Client) *Client {
	return &Client{HTTP: client, ManifestURL: VersionManifestURL}
}

// GetVersionManifest returns all available Minecraft releases
func (c *Client) GetVersionManifest(ctx context.Context) (*VersionManifest, error) {
	url := c.ManifestURL
	if url == "" {
		url = VersionManifestURL
	}
	manifest := &VersionManifest{}
	if err := ownhttp.GetJSON(ctx, c.HTTP, url, manifest); err != nil {
		return nil, err
	}
	return manifest, nil
}
