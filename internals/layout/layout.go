// Package layout computes every path the launcher reads or writes.
// It never touches the disk except for EnsureDirs.
package layout

import (
	"os"
	"path/filepath"
	"strings"
)

// Layout is rooted in a game directory (shared versions, libraries & assets)
// and an application data directory (instances, caches, temporary files)
type Layout struct {
	GameDir string
	DataDir string
}

// New returns a new Layout
func New(gameDir string, dataDir string) *Layout {
	return &Layout{GameDir: gameDir, DataDir: dataDir}
}

// Default returns the layout rooted in $HOME/.minelaunch
func Default() (*Layout, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	root := filepath.Join(home, ".minelaunch")
	return New(filepath.Join(root, "minecraft"), root), nil
}

// VersionsDir returns the path to the versions directory
func (l *Layout) VersionsDir() string {
	return filepath.Join(l.GameDir, "versions")
}

// VersionDir returns the directory of a single version
func (l *Layout) VersionDir(id string) string {
	return filepath.Join(l.VersionsDir(), id)
}

// VersionJSON returns the path of the version descriptor
func (l *Layout) VersionJSON(id string) string {
	return filepath.Join(l.VersionDir(id), id+".json")
}

// ValidVersionID reports if id names exactly one directory below the versions directory
func (l *Layout) ValidVersionID(id string) bool {
	return filepath.Dir(filepath.Dir(l.VersionJSON(id))) == l.VersionsDir()
}

// VersionJar returns the path of the client jar
func (l *Layout) VersionJar(id string) string {
	return filepath.Join(l.VersionDir(id), id+".jar")
}

// NativesDir is where native libraries get extracted to before launch
func (l *Layout) NativesDir(id string) string {
	return filepath.Join(l.VersionDir(id), "natives")
}

// LoggingConfigPath returns the path of a log4j configuration of a version
func (l *Layout) LoggingConfigPath(id string, file string) string {
	return filepath.Join(l.VersionDir(id), file)
}

// LibrariesDir returns the path to the libraries directory
func (l *Layout) LibrariesDir() string {
	return filepath.Join(l.GameDir, "libraries")
}

// LibraryPath returns the local path of a library. `p` uses forward slashes.
func (l *Layout) LibraryPath(p string) string {
	return filepath.Join(l.LibrariesDir(), filepath.FromSlash(p))
}

// AssetsDir returns the path to the assets directory
func (l *Layout) AssetsDir() string {
	return filepath.Join(l.GameDir, "assets")
}

// AssetIndexPath returns the path of an asset index document
func (l *Layout) AssetIndexPath(id string) string {
	return filepath.Join(l.AssetsDir(), "indexes", id+".json")
}

// AssetObjectPath returns the content addressed path of an asset
func (l *Layout) AssetObjectPath(hash string) string {
	if len(hash) < 2 {
		return filepath.Join(l.AssetsDir(), "objects", hash)
	}
	return filepath.Join(l.AssetsDir(), "objects", hash[:2], hash)
}

// InstancesDir returns the path to the instances directory
func (l *Layout) InstancesDir() string {
	return filepath.Join(l.DataDir, "instances")
}

// InstanceDir returns the root of a single instance
func (l *Layout) InstanceDir(name string) string {
	return filepath.Join(l.InstancesDir(), name)
}

// CacheDir returns the cache directory
func (l *Layout) CacheDir() string {
	return filepath.Join(l.DataDir, "cache")
}

// InstanceCacheDir contains generated files of one instance (launch scripts)
func (l *Layout) InstanceCacheDir(name string) string {
	return filepath.Join(l.CacheDir(), name)
}

// TempDir returns the temp directory
func (l *Layout) TempDir() string {
	return filepath.Join(l.DataDir, "temp")
}

// JavaDir contains downloaded java runtimes
func (l *Layout) JavaDir() string {
	return filepath.Join(l.DataDir, "java")
}

// Within reports if p is inside the game or data directory
func (l *Layout) Within(p string) bool {
	return Contains(l.GameDir, p) || Contains(l.DataDir, p)
}

// Contains reports if p is root or below it. Both paths are cleaned first,
// so `root/a/../../b` is outside.
func Contains(root string, p string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(p))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// EnsureDirs creates all top level directories. It is safe to call multiple times.
func (l *Layout) EnsureDirs() error {
	dirs := []string{
		l.VersionsDir(),
		l.LibrariesDir(),
		l.AssetsDir(),
		l.InstancesDir(),
		l.CacheDir(),
		l.TempDir(),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
	}
	return nil
}
