package mojang

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/minepkg/minelaunch/internals/layout"
	"github.com/minepkg/minelaunch/internals/minecraft"
	"github.com/minepkg/minelaunch/internals/ownhttp"
)

// ErrUnknownVersion is returned when a version is neither on disk nor in the version manifest
var ErrUnknownVersion = errors.New("unknown version")

// Loader loads descriptors from `versions/{id}/{id}.json` and falls back
// to the version manifest. Fetched descriptors are written to disk.
type Loader struct {
	Layout *layout.Layout
	Client *Client
	// Offline disables remote lookups
	Offline bool

	once     sync.Once
	manifest *VersionManifest
	err      error
}

// NewLoader returns a new Loader
func NewLoader(l *layout.Layout, client *Client) *Loader {
	return &Loader{Layout: l, Client: client}
}

// Load implements minecraft.DescriptorLoader
func (l *Loader) Load(ctx context.Context, id string) (*minecraft.VersionDescriptor, error) {
	path := l.Layout.VersionJSON(id)
	if !l.Layout.ValidVersionID(id) {
		return nil, errors.Wrapf(ErrUnknownVersion, "invalid version id %q", id)
	}
	desc, err := minecraft.ReadDescriptor(path)
	switch {
	case err == nil:
		return desc, nil
	case !os.IsNotExist(errors.Cause(err)):
		// corrupt files get fetched again
		log.Printf("[WARN] ignoring invalid descriptor %s: %s", path, err)
	}

	if l.Offline || l.Client == nil {
		return nil, errors.Wrapf(ErrUnknownVersion, "%s is not installed", id)
	}

	manifest, err := l.Manifest(ctx)
	if err != nil {
		return nil, err
	}
	release, ok := manifest.Find(id)
	if !ok {
		return nil, errors.Wrap(ErrUnknownVersion, id)
	}

	data, err := ownhttp.Get(ctx, l.Client.HTTP, release.URL)
	if err != nil {
		return nil, errors.Wrapf(err, "could not fetch version %s", id)
	}
	desc, err = minecraft.ParseDescriptor(data)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, err
	}
	desc.Source = path
	return desc, nil
}

// Manifest returns the version manifest. It is fetched once per Loader
func (l *Loader) Manifest(ctx context.Context) (*VersionManifest, error) {
	l.once.Do(func() {
		l.manifest, l.err = l.Client.GetVersionManifest(ctx)
	})
	return l.manifest, l.err
}
