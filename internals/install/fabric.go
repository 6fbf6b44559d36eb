package install

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"

	"github.com/minepkg/minelaunch/internals/layout"
	"github.com/minepkg/minelaunch/internals/minecraft"
	"github.com/minepkg/minelaunch/internals/ownhttp"
)

const (
	// FabricMeta is the fabric meta api
	FabricMeta = "https://meta.fabricmc.net/v2"
	// QuiltMeta is the quilt meta api
	QuiltMeta = "https://meta.quiltmc.org/v3"
)

// ErrNoLoader is returned when no loader version matches
var ErrNoLoader = errors.New("no matching loader version")

type loaderEntry struct {
	Loader struct {
		Version string `json:"version"`
		Build   int    `json:"build"`
		Maven   string `json:"maven"`
		// quilt does not set stable
		Stable *bool `json:"stable"`
	} `json:"loader"`
}

// MetaLoader installs loaders that publish launcher profiles on a meta api (fabric & quilt)
type MetaLoader struct {
	Name   string
	Meta   string
	HTTP   *http.Client
	Layout *layout.Layout
}

// NewFabric returns the fabric installer
func NewFabric(l *layout.Layout, client *http.Client) *MetaLoader {
	return &MetaLoader{Name: "fabric", Meta: FabricMeta, HTTP: client, Layout: l}
}

// NewQuilt returns the quilt installer
func NewQuilt(l *layout.Layout, client *http.Client) *MetaLoader {
	return &MetaLoader{Name: "quilt", Meta: QuiltMeta, HTTP: client, Layout: l}
}

// Install writes the loader profile as a new version descriptor
func (m *MetaLoader) Install(ctx context.Context, base *minecraft.ResolvedInstallation, loaderVersion string) (string, error) {
	loader, err := m.LoaderVersion(ctx, base.ID, loaderVersion)
	if err != nil {
		return "", err
	}

	profileURL := fmt.Sprintf(
		"%s/versions/loader/%s/%s/profile/json",
		m.Meta,
		url.PathEscape(base.ID),
		url.PathEscape(loader),
	)
	raw, err := ownhttp.Get(ctx, m.HTTP, profileURL)
	if err != nil {
		return "", errors.Wrapf(err, "could not fetch %s profile", m.Name)
	}
	profile, err := minecraft.ParseDescriptor(raw)
	if err != nil {
		return "", errors.Wrapf(err, "invalid %s profile", m.Name)
	}

	target := m.Layout.VersionJSON(profile.ID)
	if !m.Layout.ValidVersionID(profile.ID) {
		return "", errors.Errorf("%s profile has an invalid id %q", m.Name, profile.ID)
	}
	if err := os.MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
		return "", err
	}
	if err := os.WriteFile(target, raw, 0644); err != nil {
		return "", err
	}
	return profile.ID, nil
}

// LoaderVersion picks a loader version for a game version. `wanted` is either empty,
// "latest" or a semver constraint like "^0.14". The meta api lists newest loaders first.
func (m *MetaLoader) LoaderVersion(ctx context.Context, gameVersion string, wanted string) (string, error) {
	entries := make([]loaderEntry, 0)
	p := fmt.Sprintf("%s/versions/loader/%s", m.Meta, url.PathEscape(gameVersion))
	if err := ownhttp.GetJSON(ctx, m.HTTP, p, &entries); err != nil {
		return "", errors.Wrapf(err, "could not list %s loaders", m.Name)
	}
	if len(entries) == 0 {
		return "", errors.Wrapf(ErrNoLoader, "%s does not support %s", m.Name, gameVersion)
	}

	if wanted == "" || wanted == "latest" {
		for _, e := range entries {
			if e.Loader.Stable == nil || *e.Loader.Stable {
				return e.Loader.Version, nil
			}
		}
		return entries[0].Loader.Version, nil
	}

	constraint, err := semver.NewConstraint(wanted)
	if err != nil {
		return "", errors.Wrapf(err, "invalid %s version %q", m.Name, wanted)
	}
	for _, e := range entries {
		v, err := semver.NewVersion(e.Loader.Version)
		if err != nil {
			continue
		}
		if constraint.Check(v) {
			return e.Loader.Version, nil
		}
	}
	return "", errors.Wrapf(ErrNoLoader, "%s %s for %s", m.Name, wanted, gameVersion)
}
