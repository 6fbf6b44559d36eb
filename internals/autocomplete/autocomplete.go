// Package autocomplete completes Minecraft versions in the shell.
package autocomplete

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/minepkg/minelaunch/internals/layout"
	"github.com/minepkg/minelaunch/internals/mojang"
)

// maxAge is how long the cached manifest is used without fetching it again
const maxAge = time.Hour

type AutoCompleter struct {
	Client *mojang.Client
	Layout *layout.Layout
	// CacheDir defaults to the cache directory of Layout
	CacheDir string

	storage struct {
		LastFetch time.Time
		Manifest  *mojang.VersionManifest
	}
}

func (a *AutoCompleter) cacheFile() string {
	dir := a.CacheDir
	if dir == "" {
		dir = a.Layout.CacheDir()
	}
	return filepath.Join(dir, "versions.json")
}

func (a *AutoCompleter) isOutdated() bool {
	return time.Since(a.storage.LastFetch) > maxAge
}

// GetManifest tries to read the manifest from the local cache
// if that fails it will fetch it
func (a *AutoCompleter) GetManifest(ctx context.Context) (*mojang.VersionManifest, error) {
	if a.storage.Manifest == nil {
		raw, err := os.ReadFile(a.cacheFile())
		if err != nil {
			return a.fetchManifest(ctx)
		}
		// a corrupt file is fetched again
		if err := json.Unmarshal(raw, &a.storage); err != nil || a.storage.Manifest == nil {
			return a.fetchManifest(ctx)
		}
	}

	if a.isOutdated() {
		manifest, err := a.fetchManifest(ctx)
		if err == nil {
			return manifest, nil
		}
		// offline: the old manifest is still better than nothing
	}
	return a.storage.Manifest, nil
}

func (a *AutoCompleter) fetchManifest(ctx context.Context) (*mojang.VersionManifest, error) {
	manifest, err := a.Client.GetVersionManifest(ctx)
	if err != nil {
		return nil, err
	}

	a.storage.Manifest = manifest
	a.storage.LastFetch = time.Now()

	raw, err := json.Marshal(&a.storage)
	if err != nil {
		return manifest, err
	}
	if err := os.MkdirAll(filepath.Dir(a.cacheFile()), os.ModePerm); err != nil {
		return manifest, err
	}
	return manifest, os.WriteFile(a.cacheFile(), raw, 0644)
}

// Complete returns all versions starting with toComplete. Snapshots are only
// included once toComplete can not match a release anymore
func (a *AutoCompleter) Complete(toComplete string) ([]string, cobra.ShellCompDirective) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// errors can not be shown in completions
	manifest, _ := a.GetManifest(ctx)
	if manifest == nil {
		manifest = &mojang.VersionManifest{}
	}
	return a.shellAutocomplete(manifest, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func (a *AutoCompleter) shellAutocomplete(manifest *mojang.VersionManifest, toComplete string) []string {
	matches := []string{}
	if strings.HasPrefix("latest", toComplete) {
		matches = append(matches, "latest\t"+manifest.Latest.Release, "latest-snapshot\t"+manifest.Latest.Snapshot)
	}

	releases := manifest.Filter(mojang.TypeRelease)
	if !hasPrefix(releases, toComplete) {
		releases = manifest.Versions
	}
	for _, r := range releases {
		if !strings.HasPrefix(r.ID, toComplete) {
			continue
		}
		matches = append(matches, fmt.Sprintf("%s\t%s", r.ID, a.describe(r)))
	}
	return matches
}

func (a *AutoCompleter) describe(r mojang.Release) string {
	kind := lipgloss.NewStyle().Width(9).Render(r.Type)
	description := kind
	if released, err := time.Parse(time.RFC3339, r.ReleaseTime); err == nil {
		description += " | " + humanize.Time(released)
	}
	if a.Layout != nil {
		if _, err := os.Stat(a.Layout.VersionJSON(r.ID)); err == nil {
			description += " | installed"
		}
	}
	return description
}

func hasPrefix(releases []mojang.Release, prefix string) bool {
	for _, r := range releases {
		if strings.HasPrefix(r.ID, prefix) {
			return true
		}
	}
	return false
}
