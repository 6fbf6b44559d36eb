package java

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/minepkg/minelaunch/internals/platform"
)

// ErrNoRuntime is returned when no runtime is available for the platform
var ErrNoRuntime = errors.New("no java runtime found")

// Factory finds (and downloads) java runtimes in BaseDir
type Factory struct {
	BaseDir  string
	HTTP     *http.Client
	Platform platform.Info
	// API overwrites AdoptiumAPI (tests)
	API string
}

// NewFactory returns a new Factory
func NewFactory(baseDir string, client *http.Client, p platform.Info) *Factory {
	return &Factory{BaseDir: baseDir, HTTP: client, Platform: p}
}

func (j *Factory) apiBase() string {
	if j.API != "" {
		return j.API
	}
	return AdoptiumAPI
}

// Version returns the runtime for a major java version. It might need to be downloaded with Update
func (j *Factory) Version(ctx context.Context, major int) (*Java, error) {
	fullName := fmt.Sprintf("%d-jre-hotspot", major)
	p, err := filepath.Abs(filepath.Join(j.BaseDir, fullName))
	if err != nil {
		return nil, err
	}

	if asset, err := readAssetFile(filepath.Join(p, "asset.json")); err == nil {
		return &Java{dir: p, asset: asset, platform: j.Platform, http: j.HTTP}, nil
	}

	// no cached version, downloading
	assets, err := j.getAssets(ctx, major)
	if err != nil {
		return nil, err
	}
	if len(assets) == 0 {
		return nil, errors.Wrapf(ErrNoRuntime, "java %d", major)
	}

	return &Java{dir: p, asset: &assets[0], needsDownloading: true, platform: j.Platform, http: j.HTTP}, nil
}

// Binary returns the java binary to use. `setting` can be a path to a java binary,
// "system" for the java in PATH or empty for a managed runtime.
func (j *Factory) Binary(ctx context.Context, setting string, major int) (string, error) {
	switch setting {
	case "":
		java, err := j.Version(ctx, major)
		if err != nil {
			return "", err
		}
		if java.NeedsDownloading() {
			if err := java.Update(ctx); err != nil {
				return "", err
			}
		}
		return java.Bin(), nil
	case "system":
		return exec.LookPath("java")
	default:
		if _, err := os.Stat(setting); err != nil {
			return "", errors.Wrap(err, "configured java binary not found")
		}
		return setting, nil
	}
}

func readAssetFile(file string) (*AdoptAsset, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	asset := &AdoptAsset{}
	if err := json.NewDecoder(f).Decode(asset); err != nil {
		return nil, err
	}
	return asset, nil
}
