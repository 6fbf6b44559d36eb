// Package install computes which files a version needs and gets them onto disk.
package install

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/minepkg/minelaunch/internals/downloadmgr"
	"github.com/minepkg/minelaunch/internals/layout"
	"github.com/minepkg/minelaunch/internals/minecraft"
)

// clientURLPattern is used when the client download has no url
const clientURLPattern = "https://piston-data.mojang.com/v1/objects/%s/client.jar"

// AssetIndexFetcher returns the asset index of an installation
type AssetIndexFetcher interface {
	FetchAssetIndex(ctx context.Context, ref *minecraft.AssetIndexRef, assetsID string) (*minecraft.AssetIndex, error)
}

// Planner computes the files an installation needs
type Planner struct {
	Layout *layout.Layout
	Assets AssetIndexFetcher
	// LibraryMirror replaces https://libraries.minecraft.net/ in library urls
	LibraryMirror string
	// AssetMirror replaces https://resources.download.minecraft.net
	AssetMirror string
}

// Plan returns every file of the installation: client jar, libraries, asset
// objects, the asset index and the logging config. Targets are unique, the
// first entry wins. The asset index is fetched but no asset is downloaded.
func (p *Planner) Plan(ctx context.Context, inst *minecraft.ResolvedInstallation) ([]downloadmgr.PlannedFile, error) {
	files, err := p.PlanLibraries(inst)
	if err != nil {
		return nil, err
	}

	assets, err := p.PlanAssets(ctx, inst)
	if err != nil {
		return nil, err
	}
	files = append(files, assets...)

	logging, ok, err := p.planLogging(inst)
	if err != nil {
		return nil, err
	}
	if ok {
		files = append(files, logging)
	}
	return dedupe(files), nil
}

// PlanLibraries returns the client jar and all libraries. Libraries whose path
// leaves the libraries directory are skipped, a client jar outside of the
// versions directory is a PlanningError.
func (p *Planner) PlanLibraries(inst *minecraft.ResolvedInstallation) ([]downloadmgr.PlannedFile, error) {
	files := make([]downloadmgr.PlannedFile, 0, len(inst.Libraries)+1)

	if client, ok := inst.ClientDownload(); ok {
		url := client.URL
		if url == "" {
			url = fmt.Sprintf(clientURLPattern, client.Sha1)
		}
		target := p.Layout.VersionJar(inst.JarID)
		if !below(p.Layout.VersionsDir(), target) {
			return nil, &PlanningError{Err: fmt.Errorf("client jar of %q is outside of the versions directory", inst.JarID)}
		}
		files = append(files, downloadmgr.PlannedFile{
			URL:      url,
			Target:   target,
			Sha1:     client.Sha1,
			Size:     client.Size,
			Category: downloadmgr.CategoryClient,
		})
	}

	for _, lib := range inst.Libraries {
		planned := downloadmgr.PlannedFile{
			URL:      p.libraryURL(lib),
			Target:   p.Layout.LibraryPath(lib.Download.Path),
			Sha1:     lib.Download.Sha1,
			Size:     lib.Download.Size,
			Category: downloadmgr.CategoryLibrary,
		}
		if lib.IsNative {
			planned.Category = downloadmgr.CategoryNative
		}
		if planned.URL == "" {
			log.Printf("[WARN] skipping %s: no download url", lib.Name)
			continue
		}
		if !below(p.Layout.LibrariesDir(), planned.Target) {
			log.Printf("[WARN] skipping %s: path %q leaves the libraries directory", lib.Name, lib.Download.Path)
			continue
		}
		files = append(files, planned)
	}
	return dedupe(files), nil
}

// PlanAssets fetches the asset index and returns one file per object plus the index itself
func (p *Planner) PlanAssets(ctx context.Context, inst *minecraft.ResolvedInstallation) ([]downloadmgr.PlannedFile, error) {
	if inst.AssetIndex == nil {
		return nil, &PlanningError{Err: fmt.Errorf("%s has no asset index", inst.ID)}
	}
	indexTarget := p.Layout.AssetIndexPath(inst.AssetsID)
	if !below(p.Layout.AssetsDir(), indexTarget) {
		return nil, &PlanningError{Err: fmt.Errorf("invalid asset index id %q", inst.AssetsID)}
	}
	index, err := p.Assets.FetchAssetIndex(ctx, inst.AssetIndex, inst.AssetsID)
	if err != nil {
		return nil, &PlanningError{Err: err}
	}

	objects := filepath.Join(p.Layout.AssetsDir(), "objects")
	files := make([]downloadmgr.PlannedFile, 0, len(index.Objects)+1)
	for _, name := range index.Names() {
		object := index.Objects[name]
		target := p.Layout.AssetObjectPath(object.Hash)
		if !below(objects, target) {
			return nil, &PlanningError{Err: fmt.Errorf("asset %s has an invalid hash %q", name, object.Hash)}
		}
		files = append(files, downloadmgr.PlannedFile{
			URL:      object.DownloadURL(p.AssetMirror),
			Target:   target,
			Sha1:     object.Hash,
			Size:     object.Size,
			Category: downloadmgr.CategoryAsset,
		})
	}

	files = append(files, downloadmgr.PlannedFile{
		URL:      inst.AssetIndex.URL,
		Target:   indexTarget,
		Category: downloadmgr.CategoryAssetIndex,
	})
	return dedupe(files), nil
}

func (p *Planner) planLogging(inst *minecraft.ResolvedInstallation) (downloadmgr.PlannedFile, bool, error) {
	cfg, ok := inst.ClientLogging()
	if !ok || cfg.File.URL == "" {
		return downloadmgr.PlannedFile{}, false, nil
	}
	target := p.Layout.LoggingConfigPath(inst.ID, cfg.File.ID)
	if !below(p.Layout.VersionDir(inst.ID), target) || !below(p.Layout.VersionsDir(), target) {
		return downloadmgr.PlannedFile{}, false, &PlanningError{Err: fmt.Errorf("invalid logging config id %q", cfg.File.ID)}
	}
	return downloadmgr.PlannedFile{
		URL:      cfg.File.URL,
		Target:   target,
		Sha1:     cfg.File.Sha1,
		Size:     cfg.File.Size,
		Category: downloadmgr.CategoryLogging,
	}, true, nil
}

// libraryURL keeps native urls, everything else is moved to the library mirror
func (p *Planner) libraryURL(lib minecraft.ResolvedLibrary) string {
	if lib.IsNative {
		return lib.Download.URL
	}

	mirror := p.LibraryMirror
	if mirror == "" {
		mirror = minecraft.DefaultLibraryBase
	}
	if !strings.HasSuffix(mirror, "/") {
		mirror += "/"
	}

	url := lib.Download.URL
	switch {
	case url == "":
		return mirror + lib.Download.Path
	case strings.HasPrefix(url, minecraft.DefaultLibraryBase):
		return mirror + strings.TrimPrefix(url, minecraft.DefaultLibraryBase)
	default:
		return url
	}
}

// below reports if target is a path inside root (and not root itself)
func below(root string, target string) bool {
	return filepath.Clean(target) != filepath.Clean(root) && layout.Contains(root, target)
}

func dedupe(files []downloadmgr.PlannedFile) []downloadmgr.PlannedFile {
	seen := make(map[string]bool, len(files))
	unique := files[:0:0]
	for _, f := range files {
		if seen[f.Target] {
			continue
		}
		seen[f.Target] = true
		unique = append(unique, f)
	}
	return unique
}
